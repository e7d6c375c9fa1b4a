package aggregation

import v1 "github.com/aevon-lab/machine-events/internal/api/v1"

// Defect-count policies. Both treat a negative defect count (the "unknown"
// sentinel) as carrying no defects; they differ in whether such an event still
// counts as having reported defects.
//
// Machine stats use PolicyExclude while top-defect-lines uses PolicyClamp.
const (
	PolicyExclude = "exclude"
	PolicyClamp   = "clamp"
)

// DefectPolicy decides how a single record contributes to a defect total.
type DefectPolicy interface {
	// Reports reports whether the record's defect count is known under this policy.
	Reports(defectCount int) bool

	// Defects returns the record's contribution to the defect sum.
	Defects(defectCount int) int64
}

// Policies is the registry of supported defect policies.
var Policies = map[string]DefectPolicy{
	PolicyExclude: excludeUnknown{},
	PolicyClamp:   clampUnknown{},
}

// DefectTotals is the result of folding records through a DefectPolicy.
type DefectTotals struct {
	Events          int64 // every record, whatever its defect count
	ReportingEvents int64 // records whose defect count the policy accepted
	Defects         int64
}

// SumDefects folds events through policy.
func SumDefects(events []*v1.MachineEvent, policy DefectPolicy) DefectTotals {
	var totals DefectTotals
	for _, evt := range events {
		totals.Events++
		if policy.Reports(evt.DefectCount) {
			totals.ReportingEvents++
		}
		totals.Defects += policy.Defects(evt.DefectCount)
	}
	return totals
}

// excludeUnknown drops sentinel/negative counts from the total entirely.
type excludeUnknown struct{}

func (excludeUnknown) Reports(n int) bool { return n >= 0 }
func (excludeUnknown) Defects(n int) int64 {
	if n < 0 {
		return 0
	}
	return int64(n)
}

// clampUnknown keeps the event and treats its defect count as zero.
type clampUnknown struct{}

func (clampUnknown) Reports(int) bool { return true }
func (clampUnknown) Defects(n int) int64 {
	if n < 0 {
		return 0
	}
	return int64(n)
}
