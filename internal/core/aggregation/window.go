package aggregation

import "time"

// Window is a half-open time range [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow builds a window. An End at or before Start yields an empty window.
func NewWindow(start, end time.Time) Window {
	return Window{Start: start.UTC(), End: end.UTC()}
}

// Contains reports whether t falls inside the window: start inclusive, end exclusive.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Empty reports whether no instant can fall inside the window.
func (w Window) Empty() bool {
	return !w.End.After(w.Start)
}

// Seconds is the window length in whole seconds; sub-second remainders are dropped.
func (w Window) Seconds() int64 {
	return int64(w.End.Sub(w.Start) / time.Second)
}
