package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	v1 "github.com/aevon-lab/machine-events/internal/api/v1"
	coreagg "github.com/aevon-lab/machine-events/internal/core/aggregation"
)

// Store is an in-memory implementation of storage.EventStore.
// Useful for testing and single-process development runs.
type Store struct {
	mu     sync.RWMutex
	events map[string]*v1.MachineEvent
}

// NewStore creates an empty in-memory event store.
func NewStore() *Store {
	return &Store{
		events: make(map[string]*v1.MachineEvent),
	}
}

func (s *Store) FindByEventIDs(ctx context.Context, ids []string) ([]*v1.MachineEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*v1.MachineEvent, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if evt, ok := s.events[id]; ok {
			result = append(result, evt.Clone())
		}
	}
	return result, nil
}

// SaveAll mirrors the postgres upsert guard: an existing record is replaced only
// when the incoming ReceivedTime is strictly later.
func (s *Store) SaveAll(ctx context.Context, events []*v1.MachineEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, evt := range events {
		existing, ok := s.events[evt.EventID]
		if ok && !evt.ReceivedTime.After(existing.ReceivedTime) {
			continue
		}
		s.events[evt.EventID] = evt.Clone()
	}
	return nil
}

func (s *Store) FindByMachineAndTimeRange(ctx context.Context, machineID string, start, end time.Time) ([]*v1.MachineEvent, error) {
	window := coreagg.NewWindow(start, end)
	return s.filter(func(e *v1.MachineEvent) bool {
		return e.MachineID == machineID && window.Contains(e.EventTime)
	}), nil
}

func (s *Store) FindByFactoryAndTimeRange(ctx context.Context, factoryID string, from, to time.Time) ([]*v1.MachineEvent, error) {
	window := coreagg.NewWindow(from, to)
	return s.filter(func(e *v1.MachineEvent) bool {
		return e.FactoryID != nil && *e.FactoryID == factoryID &&
			e.LineID != nil &&
			window.Contains(e.EventTime)
	}), nil
}

func (s *Store) Ping(ctx context.Context) error {
	return nil
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// Get returns a copy of one record.
func (s *Store) Get(eventID string) (*v1.MachineEvent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	evt, ok := s.events[eventID]
	if !ok {
		return nil, false
	}
	return evt.Clone(), true
}

func (s *Store) filter(match func(e *v1.MachineEvent) bool) []*v1.MachineEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*v1.MachineEvent
	for _, evt := range s.events {
		if match(evt) {
			result = append(result, evt.Clone())
		}
	}

	// Match the postgres adapter's ORDER BY event_time, event_id.
	sort.Slice(result, func(i, j int) bool {
		if !result[i].EventTime.Equal(result[j].EventTime) {
			return result[i].EventTime.Before(result[j].EventTime)
		}
		return result[i].EventID < result[j].EventID
	})
	return result
}
