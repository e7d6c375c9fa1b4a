package v1

import (
	"time"
)

// EventRequest is one telemetry event as submitted by a factory-floor producer.
// Pointer fields distinguish "absent" from the zero value so the validator can
// report missing fields precisely.
type EventRequest struct {
	// EventID is the caller-assigned identifier. It is the natural key for
	// deduplication and is never rewritten once stored.
	EventID string `json:"eventId"`

	// EventTime is when the machine says the event happened (producer clock).
	EventTime *time.Time `json:"eventTime"`

	// ReceivedTime is the server receipt time. The transport stamps it when the
	// producer leaves it out. It only breaks ties between conflicting payloads.
	ReceivedTime *time.Time `json:"receivedTime,omitempty"`

	MachineID   string  `json:"machineId"`
	DurationMs  *int64  `json:"durationMs"`
	DefectCount *int    `json:"defectCount"` // -1 means unknown
	LineID      *string `json:"lineId,omitempty"`
	FactoryID   *string `json:"factoryId,omitempty"`
}

// MachineEvent is the stored record. At most one exists per EventID.
type MachineEvent struct {
	EventID      string    `json:"eventId"`
	EventTime    time.Time `json:"eventTime"`
	ReceivedTime time.Time `json:"receivedTime"`
	MachineID    string    `json:"machineId"`
	DurationMs   int64     `json:"durationMs"`
	DefectCount  int       `json:"defectCount"`
	LineID       *string   `json:"lineId,omitempty"`
	FactoryID    *string   `json:"factoryId,omitempty"`
}

// UnknownDefectCount is the sentinel producers send when defects were not counted.
const UnknownDefectCount = -1

// SamePayload reports whether two records carry the same telemetry.
// EventID and ReceivedTime are excluded: the first is identity, the second is
// only a conflict tie-breaker.
func (e *MachineEvent) SamePayload(other *MachineEvent) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.EventTime.Equal(other.EventTime) &&
		e.MachineID == other.MachineID &&
		e.DurationMs == other.DurationMs &&
		e.DefectCount == other.DefectCount &&
		equalOptional(e.LineID, other.LineID) &&
		equalOptional(e.FactoryID, other.FactoryID)
}

// Overwrite copies every field except EventID from src.
func (e *MachineEvent) Overwrite(src *MachineEvent) {
	e.EventTime = src.EventTime
	e.ReceivedTime = src.ReceivedTime
	e.MachineID = src.MachineID
	e.DurationMs = src.DurationMs
	e.DefectCount = src.DefectCount
	e.LineID = cloneOptional(src.LineID)
	e.FactoryID = cloneOptional(src.FactoryID)
}

// Clone returns a deep copy so callers can mutate it without touching shared state.
func (e *MachineEvent) Clone() *MachineEvent {
	c := *e
	c.LineID = cloneOptional(e.LineID)
	c.FactoryID = cloneOptional(e.FactoryID)
	return &c
}

// NormalizeTime converts t to the precision the durable store keeps (UTC,
// microseconds) so a value read back compares equal to the value written.
func NormalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func cloneOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
