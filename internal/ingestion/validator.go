package ingestion

import (
	"time"

	v1 "github.com/aevon-lab/machine-events/internal/api/v1"
)

const (
	// DefaultMaxDuration is the longest durationMs accepted (6 hours).
	DefaultMaxDuration = 6 * time.Hour

	// DefaultFutureTolerance is how far ahead of the server clock an eventTime may be.
	DefaultFutureTolerance = 15 * time.Minute
)

// Validator checks one incoming event. It has no side effects beyond reading the clock.
type Validator struct {
	maxDurationMs   int64
	futureTolerance time.Duration
	nowFn           func() time.Time
}

// NewValidator builds a validator. Non-positive limits fall back to the defaults.
func NewValidator(maxDuration, futureTolerance time.Duration) *Validator {
	if maxDuration <= 0 {
		maxDuration = DefaultMaxDuration
	}
	if futureTolerance <= 0 {
		futureTolerance = DefaultFutureTolerance
	}
	return &Validator{
		maxDurationMs:   maxDuration.Milliseconds(),
		futureTolerance: futureTolerance,
		nowFn:           time.Now,
	}
}

// Validate returns the rejection reason for req, or "" when it is valid.
// Checks run in a fixed order and the first failure wins, so a given event
// always reports the same reason.
func (v *Validator) Validate(req *v1.EventRequest) string {
	if req.DurationMs == nil || *req.DurationMs < 0 {
		return v1.ReasonInvalidDuration
	}
	if *req.DurationMs > v.maxDurationMs {
		return v1.ReasonDurationTooLong
	}
	if req.EventTime != nil && req.EventTime.After(v.nowFn().Add(v.futureTolerance)) {
		return v1.ReasonFutureEventTime
	}
	if req.EventID == "" {
		return v1.ReasonMissingEventID
	}
	if req.MachineID == "" {
		return v1.ReasonMissingMachineID
	}
	if req.EventTime == nil {
		return v1.ReasonMissingEventTime
	}
	return ""
}
