// Package drill implements the hierarchical Year → Month → Week drill-down
// and the table focus overlay that narrows the row-level table to the last
// clicked bar.
package drill

import (
	"errors"
	"fmt"
	"time"

	"github.com/jask/qualityrs/internal/complaint"
	"github.com/jask/qualityrs/internal/filter"
)

// Level is a drill granularity.
type Level int

const (
	// LevelAuto resolves to a concrete level from the top-level filter.
	LevelAuto Level = iota
	LevelYear
	LevelMonth
	LevelWeek
)

func (l Level) String() string {
	switch l {
	case LevelAuto:
		return "auto"
	case LevelYear:
		return "year"
	case LevelMonth:
		return "month"
	case LevelWeek:
		return "week"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Label is the Portuguese axis title for the level.
func (l Level) Label() string {
	switch l {
	case LevelYear:
		return "Ano"
	case LevelMonth:
		return "Mês"
	case LevelWeek:
		return "Semana"
	default:
		return ""
	}
}

// State is the drill cursor. Year is only set at LevelMonth or LevelWeek,
// Month only at LevelWeek.
type State struct {
	Level Level
	Year  *int
	Month *time.Month
}

// Initial returns the AUTO state with nothing selected.
func Initial() State { return State{Level: LevelAuto} }

// Resolve maps the state to the concrete level to render.
func (s State) Resolve(sel filter.Selection) Level {
	switch s.Level {
	case LevelYear:
		return LevelYear
	case LevelMonth:
		if s.year(sel) != nil {
			return LevelMonth
		}
	case LevelWeek:
		if s.year(sel) != nil && s.month(sel) != nil {
			return LevelWeek
		}
	}
	switch {
	case sel.Year == nil:
		return LevelYear
	case sel.Month == nil:
		return LevelMonth
	default:
		return LevelWeek
	}
}

// year is the effective year: drilled, else pinned by the filter.
func (s State) year(sel filter.Selection) *int {
	if s.Year != nil {
		return s.Year
	}
	return sel.Year
}

func (s State) month(sel filter.Selection) *time.Month {
	if s.Month != nil {
		return s.Month
	}
	return sel.Month
}

// Path returns the effective year and month for the resolved level.
func (s State) Path(sel filter.Selection) (year *int, month *time.Month) {
	switch s.Resolve(sel) {
	case LevelMonth:
		return s.year(sel), nil
	case LevelWeek:
		return s.year(sel), s.month(sel)
	default:
		return nil, nil
	}
}

// Scope restricts the filtered view to the rows the resolved level covers.
func (s State) Scope(view complaint.Dataset, sel filter.Selection) complaint.Dataset {
	year, month := s.Path(sel)
	if year == nil {
		return view
	}
	return view.Where(func(r complaint.Record) bool {
		if r.Year() != *year {
			return false
		}
		return month == nil || r.Month() == *month
	})
}

// ErrInvalidClick reports a bar label outside the domain of the level.
var ErrInvalidClick = errors.New("drill: invalid click value")

// Click is a parsed chart-bar click.
type Click struct {
	Level Level
	Year  int
	Month time.Month
	Week  int
	Label string
}

// ParseClick interprets a bar label clicked at level.
func ParseClick(level Level, label string) (Click, error) {
	c := Click{Level: level, Label: label}
	switch level {
	case LevelYear:
		y, ok := complaint.ParseYear(label)
		if !ok {
			return Click{}, fmt.Errorf("%w: year %q", ErrInvalidClick, label)
		}
		c.Year = y
	case LevelMonth:
		m, ok := complaint.ParseMonthAbbrev(label)
		if !ok {
			return Click{}, fmt.Errorf("%w: month %q", ErrInvalidClick, label)
		}
		c.Month = m
	case LevelWeek:
		w, ok := complaint.ParseWeekLabel(label)
		if !ok {
			return Click{}, fmt.Errorf("%w: week %q", ErrInvalidClick, label)
		}
		c.Week = w
	default:
		return Click{}, fmt.Errorf("%w: level %s", ErrInvalidClick, level)
	}
	return c, nil
}

// Outcome is the effect of a click on the drill cursor and table focus.
type Outcome struct {
	State   State
	Focus   Focus
	Drilled bool
}

// Click applies a bar click at the resolved level. A click that drills
// deeper clears the table focus; a click that cannot drill (week level, or
// a dimension already pinned by the filter) focuses the table on the bar.
// Unparseable labels return ErrInvalidClick and leave everything as is.
func (s State) Click(sel filter.Selection, label string) (Outcome, error) {
	level := s.Resolve(sel)
	c, err := ParseClick(level, label)
	if err != nil {
		return Outcome{State: s}, err
	}
	focus := Focus{Level: level, Value: c.Label}

	switch level {
	case LevelYear:
		if sel.Year != nil {
			return Outcome{State: s, Focus: focus}, nil
		}
		y := c.Year
		return Outcome{State: State{Level: LevelMonth, Year: &y}, Drilled: true}, nil
	case LevelMonth:
		if sel.Month != nil {
			return Outcome{State: s, Focus: focus}, nil
		}
		m := c.Month
		next := State{Level: LevelWeek, Year: copyInt(s.Year), Month: &m}
		return Outcome{State: next, Drilled: true}, nil
	default:
		return Outcome{State: s, Focus: focus}, nil
	}
}

// CanBack reports whether Back would move up a level.
func (s State) CanBack(sel filter.Selection) bool {
	_, ok := s.Back(sel)
	return ok
}

// Back pops one drilled level. Only levels reached by drilling can be
// popped; a level pinned by the top-level filter cannot.
func (s State) Back(sel filter.Selection) (State, bool) {
	switch s.Resolve(sel) {
	case LevelWeek:
		if s.Month == nil || sel.Month != nil {
			return s, false
		}
		return State{Level: LevelMonth, Year: copyInt(s.Year)}, true
	case LevelMonth:
		if s.Year == nil || sel.Year != nil {
			return s, false
		}
		return State{Level: LevelYear}, true
	default:
		return s, false
	}
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
