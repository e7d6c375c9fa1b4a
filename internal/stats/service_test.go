package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	v1 "github.com/aevon-lab/machine-events/internal/api/v1"
	"github.com/aevon-lab/machine-events/internal/core/storage/memory"
	storagemocks "github.com/aevon-lab/machine-events/internal/mocks/storage"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var windowStart = time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func seed(t *testing.T, events ...*v1.MachineEvent) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.SaveAll(context.Background(), events))
	return store
}

func machineEvent(id, machine string, at time.Time, defects int) *v1.MachineEvent {
	return &v1.MachineEvent{
		EventID:      id,
		EventTime:    at,
		ReceivedTime: at,
		MachineID:    machine,
		DurationMs:   1000,
		DefectCount:  defects,
	}
}

func lineEvent(id, line, factory string, at time.Time, defects int) *v1.MachineEvent {
	evt := machineEvent(id, "M-001", at, defects)
	evt.LineID = strPtr(line)
	evt.FactoryID = strPtr(factory)
	return evt
}

func TestNewService(t *testing.T) {
	require.Panics(t, func() { NewService(nil, 10) })
	require.Equal(t, DefaultTopLimit, NewService(memory.NewStore(), 0).DefaultLimit())
	require.Equal(t, 3, NewService(memory.NewStore(), 3).DefaultLimit())
}

func TestMachineStats(t *testing.T) {
	tests := []struct {
		name        string
		events      []*v1.MachineEvent
		end         time.Time
		wantEvents  int64
		wantDefects int64
		wantRate    float64
		wantStatus  string
	}{
		{
			name: "unknown defect counts are excluded from the total",
			events: []*v1.MachineEvent{
				machineEvent("E-1", "M-001", windowStart.Add(time.Minute), 5),
				machineEvent("E-2", "M-001", windowStart.Add(2*time.Minute), -1),
				machineEvent("E-3", "M-001", windowStart.Add(3*time.Minute), 3),
			},
			end:         windowStart.Add(24 * time.Hour),
			wantEvents:  3,
			wantDefects: 8,
			wantRate:    0.33,
			wantStatus:  v1.StatusHealthy,
		},
		{
			name: "eight defects over two hours is a warning",
			events: []*v1.MachineEvent{
				machineEvent("E-1", "M-001", windowStart, 8),
			},
			end:         windowStart.Add(2 * time.Hour),
			wantEvents:  1,
			wantDefects: 8,
			wantRate:    4.00,
			wantStatus:  v1.StatusWarning,
		},
		{
			name: "exactly at threshold is a warning",
			events: []*v1.MachineEvent{
				machineEvent("E-1", "M-001", windowStart, 2),
			},
			end:         windowStart.Add(time.Hour),
			wantEvents:  1,
			wantDefects: 2,
			wantRate:    2.00,
			wantStatus:  v1.StatusWarning,
		},
		{
			name: "rate just under threshold shows 2.00 but stays healthy",
			events: []*v1.MachineEvent{
				machineEvent("E-1", "M-001", windowStart, 499),
			},
			// 499 defects over 250 hours = 1.996/h
			end:         windowStart.Add(250 * time.Hour),
			wantEvents:  1,
			wantDefects: 499,
			wantRate:    2.00,
			wantStatus:  v1.StatusHealthy,
		},
		{
			name: "rate rounds half up",
			events: []*v1.MachineEvent{
				machineEvent("E-1", "M-001", windowStart, 1),
			},
			// 1 defect over 8 hours = 0.125/h
			end:         windowStart.Add(8 * time.Hour),
			wantEvents:  1,
			wantDefects: 1,
			wantRate:    0.13,
			wantStatus:  v1.StatusHealthy,
		},
		{
			name: "half-open window includes start and excludes end",
			events: []*v1.MachineEvent{
				machineEvent("E-1", "M-001", windowStart, 1),
				machineEvent("E-2", "M-001", windowStart.Add(time.Hour), 10),
			},
			end:         windowStart.Add(time.Hour),
			wantEvents:  1,
			wantDefects: 1,
			wantRate:    1.00,
			wantStatus:  v1.StatusHealthy,
		},
		{
			name: "other machines are ignored",
			events: []*v1.MachineEvent{
				machineEvent("E-1", "M-002", windowStart, 50),
			},
			end:        windowStart.Add(time.Hour),
			wantStatus: v1.StatusHealthy,
		},
		{
			name: "reversed window is empty",
			events: []*v1.MachineEvent{
				machineEvent("E-1", "M-001", windowStart, 5),
			},
			end:        windowStart.Add(-time.Hour),
			wantStatus: v1.StatusHealthy,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewService(seed(t, tc.events...), 0)

			resp, err := svc.MachineStats(context.Background(), "M-001", windowStart, tc.end)
			require.NoError(t, err)
			require.Equal(t, "M-001", resp.MachineID)
			require.Equal(t, tc.wantEvents, resp.EventsCount)
			require.Equal(t, tc.wantDefects, resp.DefectsCount)
			require.InDelta(t, tc.wantRate, resp.AvgDefectRate, 1e-9)
			require.Equal(t, tc.wantStatus, resp.Status)
		})
	}
}

func TestMachineStats_EmptyWindowSkipsStore(t *testing.T) {
	mockStore := storagemocks.NewEventStore(t)
	svc := NewService(mockStore, 0)

	resp, err := svc.MachineStats(context.Background(), "M-001", windowStart, windowStart)
	require.NoError(t, err)
	require.Zero(t, resp.EventsCount)
	require.Zero(t, resp.AvgDefectRate)
}

func TestMachineStats_Errors(t *testing.T) {
	mockStore := storagemocks.NewEventStore(t)
	mockStore.EXPECT().
		FindByMachineAndTimeRange(mock.Anything, "M-001", mock.Anything, mock.Anything).
		Return(nil, errors.New("db down")).
		Once()
	svc := NewService(mockStore, 0)

	_, err := svc.MachineStats(context.Background(), "", windowStart, windowStart.Add(time.Hour))
	require.ErrorIs(t, err, ErrInvalidQuery)

	_, err = svc.MachineStats(context.Background(), "M-001", windowStart, windowStart.Add(time.Hour))
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInvalidQuery)
}

func TestTopDefectLines(t *testing.T) {
	store := seed(t,
		lineEvent("E-1", "LINE-1", "F01", windowStart, 4),
		lineEvent("E-2", "LINE-1", "F01", windowStart.Add(time.Minute), -1),
		lineEvent("E-3", "LINE-2", "F01", windowStart.Add(2*time.Minute), 9),
		lineEvent("E-4", "LINE-3", "F01", windowStart.Add(3*time.Minute), 4),
		lineEvent("E-5", "LINE-9", "F02", windowStart, 100),
		lineEvent("E-6", "LINE-2", "F01", windowStart.Add(time.Hour), 100), // at `to`, excluded
		machineEvent("E-7", "M-001", windowStart, 7),                       // no line
	)
	svc := NewService(store, 0)

	rows, err := svc.TopDefectLines(context.Background(), "F01", windowStart, windowStart.Add(time.Hour), 10)
	require.NoError(t, err)
	require.Equal(t, []v1.TopDefectLine{
		{LineID: "LINE-2", TotalDefects: 9, EventCount: 1, DefectsPercent: 900},
		{LineID: "LINE-1", TotalDefects: 4, EventCount: 2, DefectsPercent: 200},
		{LineID: "LINE-3", TotalDefects: 4, EventCount: 1, DefectsPercent: 400},
	}, rows)

	limited, err := svc.TopDefectLines(context.Background(), "F01", windowStart, windowStart.Add(time.Hour), 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	require.Equal(t, "LINE-2", limited[0].LineID)
}

func TestTopDefectLines_PercentRounding(t *testing.T) {
	store := seed(t,
		lineEvent("E-1", "LINE-1", "F01", windowStart, 1),
		lineEvent("E-2", "LINE-1", "F01", windowStart.Add(time.Second), 0),
		lineEvent("E-3", "LINE-1", "F01", windowStart.Add(2*time.Second), 0),
	)
	svc := NewService(store, 0)

	rows, err := svc.TopDefectLines(context.Background(), "F01", windowStart, windowStart.Add(time.Hour), 5)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.InDelta(t, 33.33, rows[0].DefectsPercent, 1e-9)
}

func TestTopDefectLines_InvalidInput(t *testing.T) {
	svc := NewService(storagemocks.NewEventStore(t), 0)

	_, err := svc.TopDefectLines(context.Background(), "F01", windowStart, windowStart.Add(time.Hour), 0)
	require.ErrorIs(t, err, ErrInvalidQuery)

	_, err = svc.TopDefectLines(context.Background(), "F01", windowStart, windowStart.Add(time.Hour), -3)
	require.ErrorIs(t, err, ErrInvalidQuery)

	_, err = svc.TopDefectLines(context.Background(), "", windowStart, windowStart.Add(time.Hour), 5)
	require.ErrorIs(t, err, ErrInvalidQuery)

	rows, err := svc.TopDefectLines(context.Background(), "F01", windowStart.Add(time.Hour), windowStart, 5)
	require.NoError(t, err)
	require.NotNil(t, rows)
	require.Empty(t, rows)
}
