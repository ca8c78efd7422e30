package dashboard

import (
	"strconv"
	"time"

	"github.com/jask/qualityrs/internal/aggregate"
	"github.com/jask/qualityrs/internal/complaint"
	"github.com/jask/qualityrs/internal/drill"
	"github.com/jask/qualityrs/internal/filter"
)

// Snapshot is the result of one recomputation pass. It is an ephemeral
// value: renderers and exporters read it and drop it.
type Snapshot struct {
	Source    string
	Selection filter.Selection
	State     drill.State
	Focus     drill.Focus
	Level     drill.Level
	Year      *int
	Month     *time.Month
	CanBack   bool

	// View is the filtered view, Scoped the drill-scoped subset and
	// TableRows the scoped subset narrowed by the table focus.
	View      complaint.Dataset
	Scoped    complaint.Dataset
	TableRows complaint.Dataset

	Summary     aggregate.Summary
	Timeline    aggregate.Table
	Reasons     aggregate.Table
	Responsible aggregate.Table
	Lateness    aggregate.Table
	Categories  aggregate.Table
	Situations  aggregate.Table
}

// Charts returns the four tables shared by the dashboard and the exports,
// in display order.
func (s Snapshot) Charts() []aggregate.Table {
	return []aggregate.Table{s.Timeline, s.Reasons, s.Responsible, s.Lateness}
}

// Breadcrumb renders the drill path, e.g. "Todos › 2024 › Fev".
func (s Snapshot) Breadcrumb() string {
	out := "Todos"
	if s.Year != nil {
		out += " › " + strconv.Itoa(*s.Year)
	}
	if s.Month != nil {
		out += " › " + complaint.MonthAbbrev(*s.Month)
	}
	if s.Focus.Set() {
		out += " [" + s.Focus.Describe() + "]"
	}
	return out
}
