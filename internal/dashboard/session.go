// Package dashboard holds the per-session state of one user interaction
// loop and computes the snapshot every renderer and exporter consumes.
package dashboard

import (
	"errors"
	"log/slog"

	"github.com/jask/qualityrs/internal/aggregate"
	"github.com/jask/qualityrs/internal/auth"
	"github.com/jask/qualityrs/internal/complaint"
	"github.com/jask/qualityrs/internal/drill"
	"github.com/jask/qualityrs/internal/filter"
)

// ErrLocked is returned by operations attempted before login.
var ErrLocked = errors.New("dashboard: not authenticated")

// ErrNoData is returned when a snapshot is requested before a file loads.
var ErrNoData = errors.New("dashboard: no dataset loaded")

// Session is the state owned by one dashboard user. It is not safe for
// concurrent use; interactions are processed one at a time.
type Session struct {
	authenticated bool
	base          complaint.Dataset
	source        string
	loaded        bool
	selection     filter.Selection
	state         drill.State
	focus         drill.Focus
	reasonLimit   int
}

// NewSession returns a locked session with no data.
func NewSession(reasonLimit int) *Session {
	return &Session{
		selection:   filter.NewSelection(),
		state:       drill.Initial(),
		reasonLimit: reasonLimit,
	}
}

// Login unlocks the session when password passes the gate.
func (s *Session) Login(gate auth.Gate, password string) error {
	if err := gate.Check(password); err != nil {
		slog.Warn("login rejected")
		return err
	}
	s.authenticated = true
	return nil
}

// Authenticated reports whether Login succeeded.
func (s *Session) Authenticated() bool { return s.authenticated }

// Load admits a new base dataset and starts from a clean selection.
func (s *Session) Load(ds complaint.Dataset, source string) error {
	if !s.authenticated {
		return ErrLocked
	}
	s.base = ds
	s.source = source
	s.loaded = true
	s.selection = filter.NewSelection()
	s.Reset()
	return nil
}

// Loaded reports whether a dataset is available.
func (s *Session) Loaded() bool { return s.loaded }

// Base returns the loaded dataset.
func (s *Session) Base() complaint.Dataset { return s.base }

// Source names the loaded file.
func (s *Session) Source() string { return s.source }

// Selection returns the current top-level filter selection.
func (s *Session) Selection() filter.Selection { return s.selection }

// State returns the drill cursor.
func (s *Session) State() drill.State { return s.state }

// Focus returns the table focus.
func (s *Session) Focus() drill.Focus { return s.focus }

// SetSelection replaces the filter selection. Pinning or unpinning the
// year or month invalidates the drill path, so the drill is reset too.
func (s *Session) SetSelection(sel filter.Selection) {
	if !sel.SameCalendar(s.selection) {
		s.Reset()
	}
	s.selection = sel
}

// Click handles a bar click on the time chart. Labels that do not parse
// for the current level are ignored.
func (s *Session) Click(label string) {
	out, err := s.state.Click(s.selection, label)
	if err != nil {
		slog.Debug("click ignored", "label", label, "err", err)
		return
	}
	s.state = out.State
	s.focus = out.Focus
}

// CanBack reports whether Back would move up a level.
func (s *Session) CanBack() bool { return s.state.CanBack(s.selection) }

// Back pops one drilled level and clears the table focus.
func (s *Session) Back() bool {
	next, ok := s.state.Back(s.selection)
	if !ok {
		return false
	}
	s.state = next
	s.focus = drill.Focus{}
	return true
}

// Reset returns the drill to AUTO and clears the table focus.
func (s *Session) Reset() {
	s.state = drill.Initial()
	s.focus = drill.Focus{}
}

// ClearFocus drops the table focus only.
func (s *Session) ClearFocus() { s.focus = drill.Focus{} }

// Snapshot runs one full recomputation pass over the current state.
func (s *Session) Snapshot() (Snapshot, error) {
	if !s.authenticated {
		return Snapshot{}, ErrLocked
	}
	if !s.loaded {
		return Snapshot{}, ErrNoData
	}
	return Compute(s.base, s.source, s.selection, s.state, s.focus, s.reasonLimit), nil
}

// Compute derives a snapshot from explicit state. The CLI uses it to
// render a non-interactive drill path.
func Compute(base complaint.Dataset, source string, sel filter.Selection, state drill.State, focus drill.Focus, reasonLimit int) Snapshot {
	view := filter.Apply(base, sel)
	level := state.Resolve(sel)
	scoped := state.Scope(view, sel)
	rows := focus.Apply(scoped)
	year, month := state.Path(sel)

	snap := Snapshot{
		Source:    source,
		Selection: sel,
		State:     state,
		Focus:     focus,
		Level:     level,
		Year:      year,
		Month:     month,
		View:      view,
		Scoped:    scoped,
		TableRows: rows,
		CanBack:   state.CanBack(sel),
		Summary:   aggregate.Summarize(scoped, base, sel, state),
	}
	snap.Timeline = aggregate.ForLevel(level, scoped)
	snap.Reasons = aggregate.ByReason(scoped, reasonLimit)
	snap.Responsible = aggregate.ByResponsible(scoped)
	snap.Categories = aggregate.ByCategory(scoped)
	snap.Situations = aggregate.BySituation(scoped)
	if snap.Summary.HasReference {
		snap.Lateness = aggregate.LatenessByResponsible(base, snap.Summary.ReferenceYear)
	} else {
		snap.Lateness = aggregate.LatenessByResponsible(base.None(), 0)
		snap.Lateness.Title = "Atrasos por responsável"
	}
	return snap
}
