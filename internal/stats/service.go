// Package stats answers windowed health questions over stored machine events.
package stats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	v1 "github.com/aevon-lab/machine-events/internal/api/v1"
	coreagg "github.com/aevon-lab/machine-events/internal/core/aggregation"
	"github.com/aevon-lab/machine-events/internal/core/storage"
	"github.com/shopspring/decimal"
)

// DefaultTopLimit is the number of lines returned when the caller gives none.
const DefaultTopLimit = 10

var (
	// ErrInvalidQuery marks request validation errors that should return HTTP 400.
	ErrInvalidQuery = errors.New("invalid stats query")

	// warningThreshold is the defects-per-hour rate at which a machine turns Warning.
	warningThreshold = decimal.NewFromInt(2)
)

// Service implements the read-side aggregation queries.
type Service struct {
	store        storage.EventStore
	machinePol   coreagg.DefectPolicy
	linePol      coreagg.DefectPolicy
	defaultLimit int
}

// NewService creates a stats service. defaultLimit <= 0 falls back to DefaultTopLimit.
func NewService(store storage.EventStore, defaultLimit int) *Service {
	if store == nil {
		panic("stats: store must not be nil")
	}
	if defaultLimit <= 0 {
		defaultLimit = DefaultTopLimit
	}
	return &Service{
		store:        store,
		machinePol:   coreagg.Policies[coreagg.PolicyExclude],
		linePol:      coreagg.Policies[coreagg.PolicyClamp],
		defaultLimit: defaultLimit,
	}
}

// MachineStats summarises one machine over [start, end). Unknown defect counts
// are left out of the defect total but the events still count.
func (s *Service) MachineStats(ctx context.Context, machineID string, start, end time.Time) (*v1.StatsResponse, error) {
	if machineID == "" {
		return nil, invalidQueryf("machineId is required")
	}

	window := coreagg.NewWindow(start, end)
	resp := &v1.StatsResponse{
		MachineID: machineID,
		Start:     window.Start,
		End:       window.End,
		Status:    v1.StatusHealthy,
	}
	if window.Empty() {
		return resp, nil
	}

	events, err := s.store.FindByMachineAndTimeRange(ctx, machineID, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("query machine events: %w", err)
	}

	totals := coreagg.SumDefects(events, s.machinePol)
	rate := coreagg.RatePerHour(totals.Defects, window.Seconds())

	resp.EventsCount = totals.Events
	resp.DefectsCount = totals.Defects
	resp.AvgDefectRate = rate.InexactFloat64()
	if coreagg.RateAtLeast(totals.Defects, window.Seconds(), warningThreshold) {
		resp.Status = v1.StatusWarning
	}

	slog.Debug("[Stats] Machine stats computed",
		"machine_id", machineID,
		"events", totals.Events,
		"reporting_events", totals.ReportingEvents,
		"defects", totals.Defects,
		"rate", rate.String())

	return resp, nil
}

// TopDefectLines ranks the lines of a factory by summed defects over [from, to).
// Unknown defect counts contribute zero but the event still counts toward the
// line. Ties are broken by lineId so the ranking is stable. limit <= 0 is
// rejected; callers wanting the default pass DefaultLimit().
func (s *Service) TopDefectLines(ctx context.Context, factoryID string, from, to time.Time, limit int) ([]v1.TopDefectLine, error) {
	if factoryID == "" {
		return nil, invalidQueryf("factoryId is required")
	}
	if limit <= 0 {
		return nil, invalidQueryf("limit must be a positive integer, got %d", limit)
	}

	window := coreagg.NewWindow(from, to)
	if window.Empty() {
		return []v1.TopDefectLine{}, nil
	}

	events, err := s.store.FindByFactoryAndTimeRange(ctx, factoryID, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("query factory events: %w", err)
	}

	byLine := make(map[string][]*v1.MachineEvent)
	for _, evt := range events {
		if evt.LineID == nil {
			continue
		}
		byLine[*evt.LineID] = append(byLine[*evt.LineID], evt)
	}

	rows := make([]v1.TopDefectLine, 0, len(byLine))
	for lineID, lineEvents := range byLine {
		totals := coreagg.SumDefects(lineEvents, s.linePol)
		rows = append(rows, v1.TopDefectLine{
			LineID:         lineID,
			TotalDefects:   totals.Defects,
			EventCount:     totals.Events,
			DefectsPercent: coreagg.PerHundred(totals.Defects, totals.Events).InexactFloat64(),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalDefects != rows[j].TotalDefects {
			return rows[i].TotalDefects > rows[j].TotalDefects
		}
		return rows[i].LineID < rows[j].LineID
	})

	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// DefaultLimit is the configured limit for top-defect-lines queries.
func (s *Service) DefaultLimit() int {
	return s.defaultLimit
}

func invalidQueryf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuery, fmt.Sprintf(format, args...))
}
