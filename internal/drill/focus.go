package drill

import (
	"github.com/jask/qualityrs/internal/complaint"
)

// Focus narrows the row-level table to one clicked bar. The zero value
// means no focus.
type Focus struct {
	Level Level
	Value string
}

// Set reports whether a focus is active.
func (f Focus) Set() bool { return f.Level != LevelAuto && f.Value != "" }

// Apply narrows ctx to the focused bar. A value that no longer parses is
// treated as stale: ctx is returned unchanged and the focus is kept.
func (f Focus) Apply(ctx complaint.Dataset) complaint.Dataset {
	if !f.Set() {
		return ctx
	}
	c, err := ParseClick(f.Level, f.Value)
	if err != nil {
		return ctx
	}
	switch f.Level {
	case LevelYear:
		return ctx.Where(func(r complaint.Record) bool { return r.Year() == c.Year })
	case LevelMonth:
		return ctx.Where(func(r complaint.Record) bool { return r.Month() == c.Month })
	case LevelWeek:
		return ctx.Where(func(r complaint.Record) bool { return r.Week() == c.Week })
	}
	return ctx
}

// Describe renders the focus for breadcrumbs, e.g. "Semana 2ª".
func (f Focus) Describe() string {
	if !f.Set() {
		return ""
	}
	return f.Level.Label() + " " + f.Value
}
