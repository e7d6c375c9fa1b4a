// Package loadgen produces synthetic machine-event batches and replays them
// against a running service.
package loadgen

import (
	"fmt"
	"math/rand"
	"time"

	v1 "github.com/aevon-lab/machine-events/internal/api/v1"
)

var (
	// DefaultBaseTime is the eventTime of the first generated event.
	DefaultBaseTime = time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

	Machines  = []string{"M-001", "M-002", "M-003", "M-004", "M-005"}
	Lines     = []string{"LINE-1", "LINE-2", "LINE-3"}
	Factories = []string{"F01"}
)

const (
	eventSpacing  = 10 * time.Second
	minDurationMs = 500
	maxDurationMs = 5000
	maxDefects    = 10
)

// Options controls event generation. Equal options produce equal events.
type Options struct {
	Count    int
	BaseTime time.Time
	Seed     int64
	// IDPrefix namespaces event ids so separate runs do not collide.
	IDPrefix string
}

// Generate returns opts.Count events spaced ten seconds apart.
func Generate(opts Options) []v1.EventRequest {
	if opts.Count <= 0 {
		return []v1.EventRequest{}
	}
	base := opts.BaseTime
	if base.IsZero() {
		base = DefaultBaseTime
	}
	prefix := opts.IDPrefix
	if prefix == "" {
		prefix = "PERF"
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	events := make([]v1.EventRequest, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		eventTime := base.Add(time.Duration(i) * eventSpacing)
		duration := int64(minDurationMs + rng.Intn(maxDurationMs-minDurationMs+1))
		defects := rng.Intn(maxDefects + 1)
		line := Lines[rng.Intn(len(Lines))]
		factory := Factories[rng.Intn(len(Factories))]

		events = append(events, v1.EventRequest{
			EventID:     fmt.Sprintf("E-%s-%d", prefix, i+1),
			EventTime:   &eventTime,
			MachineID:   Machines[rng.Intn(len(Machines))],
			DurationMs:  &duration,
			DefectCount: &defects,
			LineID:      &line,
			FactoryID:   &factory,
		})
	}
	return events
}

// Chunk splits events into consecutive batches of at most size events.
func Chunk(events []v1.EventRequest, size int) [][]v1.EventRequest {
	if size <= 0 {
		size = len(events)
	}
	var batches [][]v1.EventRequest
	for start := 0; start < len(events); start += size {
		end := start + size
		if end > len(events) {
			end = len(events)
		}
		batches = append(batches, events[start:end])
	}
	return batches
}
