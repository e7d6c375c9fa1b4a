package v1

import "time"

// Rejection reasons, reported in the order the validator checks them.
const (
	ReasonInvalidDuration  = "INVALID_DURATION"
	ReasonDurationTooLong  = "DURATION_TOO_LONG"
	ReasonFutureEventTime  = "FUTURE_EVENT_TIME"
	ReasonMissingEventID   = "MISSING_EVENT_ID"
	ReasonMissingMachineID = "MISSING_MACHINE_ID"
	ReasonMissingEventTime = "MISSING_EVENT_TIME"
)

// RejectionDetail names one event that failed validation and why.
type RejectionDetail struct {
	EventID string `json:"eventId"`
	Reason  string `json:"reason"`
}

// BatchResponse summarises one ingestion call. It is never persisted.
type BatchResponse struct {
	Accepted   int               `json:"accepted"`
	Deduped    int               `json:"deduped"`
	Updated    int               `json:"updated"`
	Rejected   int               `json:"rejected"`
	Rejections []RejectionDetail `json:"rejections"`
}

// Health classifications for a machine window.
const (
	StatusHealthy = "Healthy"
	StatusWarning = "Warning"
)

// StatsResponse is the health summary of one machine over a half-open window.
type StatsResponse struct {
	MachineID     string    `json:"machineId"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	EventsCount   int64     `json:"eventsCount"`
	DefectsCount  int64     `json:"defectsCount"`
	AvgDefectRate float64   `json:"avgDefectRate"`
	Status        string    `json:"status"`
}

// TopDefectLine is one ranked row of the top-defect-lines query.
type TopDefectLine struct {
	LineID         string  `json:"lineId"`
	TotalDefects   int64   `json:"totalDefects"`
	EventCount     int64   `json:"eventCount"`
	DefectsPercent float64 `json:"defectsPercent"`
}
