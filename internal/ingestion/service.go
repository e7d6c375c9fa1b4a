package ingestion

import (
	"context"
	"fmt"
	"time"

	v1 "github.com/aevon-lab/machine-events/internal/api/v1"
	"github.com/aevon-lab/machine-events/internal/core/storage"
	"github.com/gin-gonic/gin"
)

// DefaultMaxBatchSize caps the number of events accepted in one request.
const DefaultMaxBatchSize = 10000

type Service struct {
	engine           *Engine
	store            storage.EventStore
	maxBodySizeBytes int
	maxBatchSize     int
	nowFn            func() time.Time
}

func NewService(engine *Engine, repo storage.EventStore, maxBodySizeMB, maxBatchSize int) *Service {
	if engine == nil {
		panic("ingestion: engine must not be nil")
	}
	if repo == nil {
		panic("ingestion: store must not be nil")
	}
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 1 // default to 1MB
	}
	if maxBatchSize <= 0 {
		maxBatchSize = DefaultMaxBatchSize
	}
	return &Service{
		engine:           engine,
		store:            repo,
		maxBodySizeBytes: maxBodySizeMB * 1024 * 1024,
		maxBatchSize:     maxBatchSize,
		nowFn:            time.Now,
	}
}

// RegisterRoutes registers the ingestion service routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/events/batch", s.IngestBatchHandler)
	r.GET("/events/:event_id", s.GetEventHandler)

	// Versioned alias for producers that already prefix their paths.
	r.POST("/v1/events/batch", s.IngestBatchHandler)
}

// GetEvent returns the stored record for eventID or storage.ErrNotFound.
func (s *Service) GetEvent(ctx context.Context, eventID string) (*v1.MachineEvent, error) {
	found, err := s.store.FindByEventIDs(ctx, []string{eventID})
	if err != nil {
		return nil, fmt.Errorf("%w: find event: %w", ErrStore, err)
	}
	for _, evt := range found {
		if evt.EventID == eventID {
			return evt, nil
		}
	}
	return nil, storage.ErrNotFound
}
