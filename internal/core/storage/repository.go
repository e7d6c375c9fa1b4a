package storage

import (
	"context"
	"errors"
	"time"

	v1 "github.com/aevon-lab/machine-events/internal/api/v1"
)

// ErrNotFound is returned when a single-record lookup finds nothing.
var ErrNotFound = errors.New("event not found")

// EventStore is the keyed store of machine events.
// Each record write is atomic on its own; a bulk call is not a transaction from
// the caller's point of view, so conflict resolution stays with the ingestion engine.
type EventStore interface {
	// FindByEventIDs returns every stored record whose event_id is in ids.
	// Missing ids are simply absent from the result.
	FindByEventIDs(ctx context.Context, ids []string) ([]*v1.MachineEvent, error)

	// SaveAll upserts records keyed by event_id. An existing row is only
	// overwritten by a record with a strictly newer ReceivedTime.
	SaveAll(ctx context.Context, events []*v1.MachineEvent) error

	// FindByMachineAndTimeRange returns records for machineID with
	// start <= event_time < end.
	FindByMachineAndTimeRange(ctx context.Context, machineID string, start, end time.Time) ([]*v1.MachineEvent, error)

	// FindByFactoryAndTimeRange returns records for factoryID that carry a
	// line_id, with from <= event_time < to.
	FindByFactoryAndTimeRange(ctx context.Context, factoryID string, from, to time.Time) ([]*v1.MachineEvent, error)

	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error
}
