package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	v1 "github.com/aevon-lab/machine-events/internal/api/v1"
	"github.com/aevon-lab/machine-events/internal/loadgen"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// rootOptions holds global flags for all commands.
type rootOptions struct {
	Verbose bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "loadgen",
		Short: "Generate and replay synthetic machine-event batches",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if opts.Verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(newGenerateCommand())
	cmd.AddCommand(newSendCommand())

	return cmd
}

type generateOptions struct {
	Count    int
	Out      string
	Seed     int64
	BaseTime string
	Prefix   string
}

func newGenerateCommand() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a JSON array of synthetic events",
		Long: `Generate synthetic machine events ten seconds apart across machines
M-001..M-005, lines LINE-1..LINE-3 and factory F01.

Examples:
  loadgen generate --count 1000 --out test-1000-events.json
  loadgen generate --count 50 --seed 42 --prefix RUN1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Count, "count", 1000, "number of events")
	cmd.Flags().StringVar(&opts.Out, "out", "-", "output file (- for stdout)")
	cmd.Flags().Int64Var(&opts.Seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().StringVar(&opts.BaseTime, "base-time", loadgen.DefaultBaseTime.Format(time.RFC3339), "eventTime of the first event (RFC3339)")
	cmd.Flags().StringVar(&opts.Prefix, "prefix", "", "event id prefix (default: random run id)")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	if opts.Count <= 0 {
		return fmt.Errorf("--count must be > 0")
	}
	base, err := time.Parse(time.RFC3339, opts.BaseTime)
	if err != nil {
		return fmt.Errorf("invalid --base-time: %w", err)
	}

	prefix := opts.Prefix
	if prefix == "" {
		prefix = strings.ToUpper(uuid.NewString()[:8])
	}

	events := loadgen.Generate(loadgen.Options{
		Count:    opts.Count,
		BaseTime: base,
		Seed:     opts.Seed,
		IDPrefix: prefix,
	})

	out := cmd.OutOrStdout()
	if opts.Out != "-" {
		f, err := os.Create(opts.Out)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(events); err != nil {
		return fmt.Errorf("write events: %w", err)
	}

	slog.Info("[Loadgen] Events generated", "count", len(events), "prefix", prefix, "out", opts.Out)
	return nil
}

type sendOptions struct {
	URL         string
	File        string
	Count       int
	BatchSize   int
	Concurrency int
	Timeout     time.Duration
}

func newSendCommand() *cobra.Command {
	opts := &sendOptions{}

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Post events to a running service in concurrent batches",
		Long: `Post events to POST /events/batch and print the summed outcome.
Events come from --file, or are generated on the fly with --count.

Examples:
  loadgen send --file test-1000-events.json --batch-size 200 --concurrency 4
  loadgen send --count 5000 --url http://localhost:8080/events/batch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSend(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.URL, "url", "http://localhost:8080/events/batch", "batch ingestion endpoint")
	cmd.Flags().StringVar(&opts.File, "file", "", "JSON array of events to send")
	cmd.Flags().IntVar(&opts.Count, "count", 1000, "events to generate when --file is not given")
	cmd.Flags().IntVar(&opts.BatchSize, "batch-size", 500, "events per request")
	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", 4, "requests in flight")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 30*time.Second, "per-request timeout")

	return cmd
}

func runSend(cmd *cobra.Command, opts *sendOptions) error {
	events, err := loadEvents(opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sender := loadgen.NewSender(&http.Client{Timeout: opts.Timeout}, opts.URL)
	summary, err := sender.Send(ctx, events, opts.BatchSize, opts.Concurrency)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	slog.Info("[Loadgen] Send complete",
		"events", len(events),
		"batches", summary.Batches,
		"elapsed", summary.Elapsed)
	return nil
}

func loadEvents(opts *sendOptions) ([]v1.EventRequest, error) {
	if opts.File == "" {
		return loadgen.Generate(loadgen.Options{
			Count:    opts.Count,
			Seed:     time.Now().UnixNano(),
			IDPrefix: strings.ToUpper(uuid.NewString()[:8]),
		}), nil
	}

	raw, err := os.ReadFile(opts.File)
	if err != nil {
		return nil, fmt.Errorf("read events file: %w", err)
	}
	var events []v1.EventRequest
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, fmt.Errorf("parse events file: %w", err)
	}
	return events, nil
}
