package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	corecfg "github.com/aevon-lab/machine-events/internal/core/config"
	"github.com/aevon-lab/machine-events/internal/core/keylock"
	"github.com/aevon-lab/machine-events/internal/core/storage"
	"github.com/aevon-lab/machine-events/internal/core/storage/memory"
	"github.com/aevon-lab/machine-events/internal/core/storage/postgres"
	"github.com/aevon-lab/machine-events/internal/ingestion"
	"github.com/aevon-lab/machine-events/internal/migrations"
	"github.com/aevon-lab/machine-events/internal/server"
	"github.com/aevon-lab/machine-events/internal/stats"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", corecfg.DefaultPath, "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded config",
		"database_type", cfg.Database.Type,
		"max_batch_size", cfg.Ingestion.MaxBatchSize,
		"lock_shards", cfg.Locks.Shards)

	maxDuration, futureTolerance, err := cfg.Ingestion.Limits()
	if err != nil {
		slog.Error("Invalid ingestion limits", "error", err)
		os.Exit(1)
	}

	// 2. Initialize Storage
	store, closeStore, err := openStore(cfg.Database)
	if err != nil {
		slog.Error("Failed to initialize event store", "error", err, "type", cfg.Database.Type)
		os.Exit(1)
	}
	defer closeStore()

	// 3. Metrics registry shared by every component
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// 4. Initialize Ingestion
	locks := keylock.NewRegistry(cfg.Locks.Shards)
	ingestion.RegisterLockGauge(reg, locks)

	engine := ingestion.NewEngine(
		store,
		locks,
		ingestion.NewValidator(maxDuration, futureTolerance),
		ingestion.NewMetrics(reg),
	)
	ingestionSvc := ingestion.NewService(engine, store, cfg.Server.MaxBodySizeMB, cfg.Ingestion.MaxBatchSize)

	// 5. Initialize Stats (query API)
	statsSvc := stats.NewService(store, cfg.Stats.DefaultTopLimit)

	// 6. Initialize Server
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), store, cfg.Server.Mode, reg)
	ingestionSvc.RegisterRoutes(srv.Engine)
	statsSvc.RegisterRoutes(srv.Engine)

	// 7. Run until a signal arrives
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Signal received, shutting down...")
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		closeStore()
		os.Exit(1)
	}

	slog.Info("Shutdown complete")
}

// openStore builds the configured EventStore. The returned close func is safe to call twice.
func openStore(cfg corecfg.DatabaseConfig) (storage.EventStore, func(), error) {
	if cfg.Type == corecfg.DatabaseMemory {
		slog.Warn("Using in-memory event store; data is lost on restart")
		return memory.NewStore(), func() {}, nil
	}

	db, err := postgres.OpenDB(cfg.DSN, cfg.MaxOpenConns, cfg.MaxIdleConns)
	if err != nil {
		return nil, nil, err
	}

	if err := migrations.RunMigrations(db, cfg.AutoMigrate); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run database migrations: %w", err)
	}

	adapter, err := postgres.NewAdapter(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	closed := false
	return adapter, func() {
		if closed {
			return
		}
		closed = true
		if err := adapter.Close(); err != nil {
			slog.Error("Failed to close event store", "error", err)
		}
	}, nil
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
