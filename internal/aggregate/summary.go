package aggregate

import (
	"github.com/jask/qualityrs/internal/complaint"
	"github.com/jask/qualityrs/internal/drill"
	"github.com/jask/qualityrs/internal/filter"
)

// Summary holds the headline KPIs of a dashboard snapshot.
type Summary struct {
	Occurrences   int
	Late          int
	OnTime        int
	Unspecified   int
	LatePercent   float64
	Reasons       int
	ReferenceYear int
	HasReference  bool
}

// ReferenceYear is the year the whole-year lateness chart covers: the year
// pinned by the filter or the drill, else the latest year in base.
func ReferenceYear(base complaint.Dataset, sel filter.Selection, state drill.State) (int, bool) {
	if sel.Year != nil {
		return *sel.Year, true
	}
	if state.Year != nil {
		return *state.Year, true
	}
	return base.LatestYear()
}

// Summarize computes KPIs for the subset the dashboard is showing.
func Summarize(subset, base complaint.Dataset, sel filter.Selection, state drill.State) Summary {
	s := Summary{Occurrences: subset.Len()}
	for _, r := range subset.Records() {
		switch r.Situation {
		case complaint.SituationLate:
			s.Late++
		case complaint.SituationOnTime:
			s.OnTime++
		default:
			s.Unspecified++
		}
	}
	if s.Occurrences > 0 {
		s.LatePercent = float64(s.Late) * 100 / float64(s.Occurrences)
	}
	s.Reasons = len(subset.Distinct(complaint.FieldReason))
	s.ReferenceYear, s.HasReference = ReferenceYear(base, sel, state)
	return s
}
