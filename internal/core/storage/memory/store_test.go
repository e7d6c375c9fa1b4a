package memory

import (
	"context"
	"testing"
	"time"

	v1 "github.com/aevon-lab/machine-events/internal/api/v1"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func mustGet(t *testing.T, store *Store, id string) *v1.MachineEvent {
	t.Helper()
	evt, ok := store.Get(id)
	require.True(t, ok, "event %s not stored", id)
	return evt
}

func TestStore_SaveAllKeepsNewestReceivedTime(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

	require.NoError(t, store.SaveAll(ctx, []*v1.MachineEvent{
		{EventID: "E-1", EventTime: now, ReceivedTime: now, MachineID: "M-001", DurationMs: 100},
	}))

	// Older and equal receipt times never overwrite.
	require.NoError(t, store.SaveAll(ctx, []*v1.MachineEvent{
		{EventID: "E-1", EventTime: now, ReceivedTime: now.Add(-time.Second), MachineID: "M-001", DurationMs: 200},
		{EventID: "E-1", EventTime: now, ReceivedTime: now, MachineID: "M-001", DurationMs: 300},
	}))
	require.Equal(t, int64(100), mustGet(t, store, "E-1").DurationMs)

	require.NoError(t, store.SaveAll(ctx, []*v1.MachineEvent{
		{EventID: "E-1", EventTime: now, ReceivedTime: now.Add(time.Second), MachineID: "M-001", DurationMs: 400},
	}))
	require.Equal(t, int64(400), mustGet(t, store, "E-1").DurationMs)
	require.Equal(t, 1, store.Len())
}

func TestStore_FindByEventIDsReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveAll(ctx, []*v1.MachineEvent{
		{EventID: "E-1", EventTime: now, ReceivedTime: now, MachineID: "M-001"},
		{EventID: "E-2", EventTime: now, ReceivedTime: now, MachineID: "M-002"},
	}))

	found, err := store.FindByEventIDs(ctx, []string{"E-1", "E-1", "E-missing"})
	require.NoError(t, err)
	require.Len(t, found, 1)

	found[0].MachineID = "mutated"
	require.Equal(t, "M-001", mustGet(t, store, "E-1").MachineID)
}

func TestStore_RangeQueriesAreHalfOpen(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	start := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	require.NoError(t, store.SaveAll(ctx, []*v1.MachineEvent{
		{EventID: "at-start", EventTime: start, ReceivedTime: start, MachineID: "M-001", LineID: strPtr("L1"), FactoryID: strPtr("F01")},
		{EventID: "inside", EventTime: start.Add(time.Minute), ReceivedTime: start, MachineID: "M-001", FactoryID: strPtr("F01")},
		{EventID: "at-end", EventTime: end, ReceivedTime: start, MachineID: "M-001", LineID: strPtr("L1"), FactoryID: strPtr("F01")},
		{EventID: "other-machine", EventTime: start, ReceivedTime: start, MachineID: "M-002", LineID: strPtr("L2"), FactoryID: strPtr("F02")},
	}))

	byMachine, err := store.FindByMachineAndTimeRange(ctx, "M-001", start, end)
	require.NoError(t, err)
	require.Len(t, byMachine, 2)
	require.Equal(t, "at-start", byMachine[0].EventID)
	require.Equal(t, "inside", byMachine[1].EventID)

	byFactory, err := store.FindByFactoryAndTimeRange(ctx, "F01", start, end)
	require.NoError(t, err)
	require.Len(t, byFactory, 1, "events without a line are not returned")
	require.Equal(t, "at-start", byFactory[0].EventID)
}
