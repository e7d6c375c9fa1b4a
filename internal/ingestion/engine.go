package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	v1 "github.com/aevon-lab/machine-events/internal/api/v1"
	"github.com/aevon-lab/machine-events/internal/core/keylock"
	"github.com/aevon-lab/machine-events/internal/core/storage"
)

var (
	// ErrStore marks a batch that failed because the event store did. No
	// partial outcome is returned with it.
	ErrStore = errors.New("event store failure")

	// ErrLockWait marks a batch abandoned while waiting for a key lock.
	ErrLockWait = errors.New("waiting for event lock")
)

// BatchOutcome is the per-batch summary returned to callers.
type BatchOutcome = v1.BatchResponse

type outcome int

const (
	outcomeAccepted outcome = iota
	outcomeDeduped
	outcomeUpdated
)

func (o outcome) String() string {
	switch o {
	case outcomeAccepted:
		return "accepted"
	case outcomeDeduped:
		return "deduped"
	case outcomeUpdated:
		return "updated"
	default:
		return "unknown"
	}
}

// Engine resolves each incoming event against the stored record with the same
// event id: insert, discard as duplicate, overwrite as a correction, or ignore
// as a stale rewrite.
//
// Every valid event id in a batch is locked (in sorted order) before the bulk
// lookup and stays locked until the bulk write commits. Two batches touching
// the same id therefore never both decide against the same snapshot, while
// batches with disjoint ids run fully in parallel.
type Engine struct {
	store     storage.EventStore
	locks     keylock.Locker
	validator *Validator
	metrics   *Metrics
	nowFn     func() time.Time
}

// NewEngine wires an engine. metrics may be nil.
func NewEngine(store storage.EventStore, locks keylock.Locker, validator *Validator, metrics *Metrics) *Engine {
	if store == nil {
		panic("ingestion: store must not be nil")
	}
	if locks == nil {
		panic("ingestion: locker must not be nil")
	}
	if validator == nil {
		panic("ingestion: validator must not be nil")
	}
	return &Engine{
		store:     store,
		locks:     locks,
		validator: validator,
		metrics:   metrics,
		nowFn:     time.Now,
	}
}

// ProcessBatch ingests events in input order and returns the outcome counts.
// Validation failures are reported per event and never abort the batch; a store
// failure aborts the whole batch with an error wrapping ErrStore.
func (e *Engine) ProcessBatch(ctx context.Context, events []v1.EventRequest) (*BatchOutcome, error) {
	started := time.Now()
	batchTime := v1.NormalizeTime(e.nowFn())

	out := &BatchOutcome{Rejections: []v1.RejectionDetail{}}

	incoming := make([]*v1.MachineEvent, 0, len(events))
	ids := make([]string, 0, len(events))
	seen := make(map[string]struct{}, len(events))

	for i := range events {
		req := &events[i]
		if reason := e.validator.Validate(req); reason != "" {
			out.Rejected++
			out.Rejections = append(out.Rejections, v1.RejectionDetail{EventID: req.EventID, Reason: reason})
			slog.Debug("[Ingestion] Event rejected", "event_id", req.EventID, "reason", reason)
			continue
		}

		record := toRecord(req, batchTime)
		incoming = append(incoming, record)
		if _, dup := seen[record.EventID]; !dup {
			seen[record.EventID] = struct{}{}
			ids = append(ids, record.EventID)
		}
	}

	if len(incoming) > 0 {
		if err := e.resolveAndPersist(ctx, incoming, ids, out); err != nil {
			return nil, err
		}
	}

	e.metrics.observe(out)
	if e.metrics != nil {
		e.metrics.BatchDuration.Observe(time.Since(started).Seconds())
	}

	slog.Info("[Ingestion] Batch processed",
		"batch_size", len(events),
		"accepted", out.Accepted,
		"deduped", out.Deduped,
		"updated", out.Updated,
		"rejected", out.Rejected)

	return out, nil
}

func (e *Engine) resolveAndPersist(ctx context.Context, incoming []*v1.MachineEvent, ids []string, out *BatchOutcome) error {
	unlock, err := e.locks.LockAll(ctx, ids)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLockWait, err)
	}
	defer unlock()

	existing, err := e.store.FindByEventIDs(ctx, ids)
	if err != nil {
		e.metrics.storeFailed()
		slog.Error("[Ingestion] Bulk lookup failed", "error", err, "ids", len(ids))
		return fmt.Errorf("%w: lookup existing events: %w", ErrStore, err)
	}

	snapshot := make(map[string]*v1.MachineEvent, len(existing))
	for _, evt := range existing {
		snapshot[evt.EventID] = evt
	}

	st := newStaging(len(incoming))
	for _, record := range incoming {
		switch resolve(snapshot, record) {
		case outcomeAccepted:
			out.Accepted++
			st.add(snapshot[record.EventID])
		case outcomeUpdated:
			out.Updated++
			st.add(snapshot[record.EventID])
		case outcomeDeduped:
			out.Deduped++
		}
	}

	if st.len() == 0 {
		return nil
	}

	if err := e.store.SaveAll(ctx, st.records()); err != nil {
		e.metrics.storeFailed()
		slog.Error("[Ingestion] Bulk persist failed", "error", err, "records", st.len())
		return fmt.Errorf("%w: persist batch: %w", ErrStore, err)
	}
	return nil
}

// resolve decides what to do with record given the current snapshot, and
// applies the decision to the snapshot so a later occurrence of the same id in
// the batch sees it.
func resolve(snapshot map[string]*v1.MachineEvent, record *v1.MachineEvent) outcome {
	current, ok := snapshot[record.EventID]
	if !ok {
		snapshot[record.EventID] = record
		return outcomeAccepted
	}

	if current.SamePayload(record) {
		return outcomeDeduped
	}

	if record.ReceivedTime.After(current.ReceivedTime) {
		current.Overwrite(record)
		return outcomeUpdated
	}

	// Equal or older receipt time: a stale rewrite, silently ignored.
	return outcomeDeduped
}

// staging collects records to write, once per id, in first-staged order.
type staging struct {
	order []*v1.MachineEvent
	index map[string]struct{}
}

func newStaging(capacity int) *staging {
	return &staging{
		order: make([]*v1.MachineEvent, 0, capacity),
		index: make(map[string]struct{}, capacity),
	}
}

// add stages evt. The snapshot pointer is shared, so a later overwrite of the
// same id in this batch is already reflected in the staged record.
func (s *staging) add(evt *v1.MachineEvent) {
	if _, ok := s.index[evt.EventID]; ok {
		return
	}
	s.index[evt.EventID] = struct{}{}
	s.order = append(s.order, evt)
}

func (s *staging) len() int { return len(s.order) }

func (s *staging) records() []*v1.MachineEvent { return s.order }

// toRecord converts a validated request into a storable record. A missing
// receivedTime falls back to the batch entry time and a missing defectCount to 0.
func toRecord(req *v1.EventRequest, batchTime time.Time) *v1.MachineEvent {
	received := batchTime
	if req.ReceivedTime != nil {
		received = v1.NormalizeTime(*req.ReceivedTime)
	}

	defects := 0
	if req.DefectCount != nil {
		defects = *req.DefectCount
	}

	evt := &v1.MachineEvent{
		EventID:      req.EventID,
		EventTime:    v1.NormalizeTime(*req.EventTime),
		ReceivedTime: received,
		MachineID:    req.MachineID,
		DurationMs:   *req.DurationMs,
		DefectCount:  defects,
	}
	if req.LineID != nil {
		line := *req.LineID
		evt.LineID = &line
	}
	if req.FactoryID != nil {
		factory := *req.FactoryID
		evt.FactoryID = &factory
	}
	return evt
}
