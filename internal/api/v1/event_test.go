package v1

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestMachineEvent_SamePayload(t *testing.T) {
	base := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

	newEvent := func() *MachineEvent {
		return &MachineEvent{
			EventID:      "E-1",
			EventTime:    base,
			ReceivedTime: base.Add(time.Second),
			MachineID:    "M-001",
			DurationMs:   1000,
			DefectCount:  2,
			LineID:       strPtr("LINE-1"),
			FactoryID:    strPtr("F01"),
		}
	}

	tests := []struct {
		name   string
		mutate func(e *MachineEvent)
		want   bool
	}{
		{name: "identical", mutate: func(e *MachineEvent) {}, want: true},
		{name: "different event id is ignored", mutate: func(e *MachineEvent) { e.EventID = "E-2" }, want: true},
		{name: "different received time is ignored", mutate: func(e *MachineEvent) { e.ReceivedTime = base.Add(time.Hour) }, want: true},
		{name: "same instant in another zone", mutate: func(e *MachineEvent) { e.EventTime = base.In(time.FixedZone("X", 3600)) }, want: true},
		{name: "event time differs", mutate: func(e *MachineEvent) { e.EventTime = base.Add(time.Millisecond) }, want: false},
		{name: "machine differs", mutate: func(e *MachineEvent) { e.MachineID = "M-002" }, want: false},
		{name: "duration differs", mutate: func(e *MachineEvent) { e.DurationMs = 1001 }, want: false},
		{name: "defects differ", mutate: func(e *MachineEvent) { e.DefectCount = UnknownDefectCount }, want: false},
		{name: "line cleared", mutate: func(e *MachineEvent) { e.LineID = nil }, want: false},
		{name: "factory differs", mutate: func(e *MachineEvent) { e.FactoryID = strPtr("F02") }, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			other := newEvent()
			tc.mutate(other)
			require.Equal(t, tc.want, newEvent().SamePayload(other))
		})
	}
}

func TestMachineEvent_OverwriteKeepsIdentity(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	stored := &MachineEvent{EventID: "E-1", EventTime: now, ReceivedTime: now, MachineID: "M-001", DurationMs: 10}
	incoming := &MachineEvent{
		EventID:      "E-other",
		EventTime:    now.Add(time.Minute),
		ReceivedTime: now.Add(time.Hour),
		MachineID:    "M-002",
		DurationMs:   20,
		DefectCount:  4,
		LineID:       strPtr("LINE-2"),
	}

	stored.Overwrite(incoming)

	require.Equal(t, "E-1", stored.EventID)
	require.True(t, stored.SamePayload(incoming))
	require.Equal(t, incoming.ReceivedTime, stored.ReceivedTime)

	*incoming.LineID = "mutated"
	require.Equal(t, "LINE-2", *stored.LineID)
}

func TestMachineEvent_CloneIsDeep(t *testing.T) {
	orig := &MachineEvent{EventID: "E-1", LineID: strPtr("LINE-1")}
	c := orig.Clone()
	*c.LineID = "LINE-9"
	c.DurationMs = 99

	require.Equal(t, "LINE-1", *orig.LineID)
	require.Equal(t, int64(0), orig.DurationMs)
}

func TestNormalizeTime(t *testing.T) {
	in := time.Date(2026, 1, 15, 10, 0, 0, 123456789, time.FixedZone("X", 7200))
	got := NormalizeTime(in)
	require.Equal(t, time.UTC, got.Location())
	require.Equal(t, 123456000, got.Nanosecond())
	require.True(t, got.Equal(in.Truncate(time.Microsecond)))
}
