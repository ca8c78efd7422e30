package filter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jask/qualityrs/internal/complaint"
)

// Kind describes how a filter control restricts its field.
type Kind int

const (
	// Checklist keeps records whose value is in an allowed set.
	Checklist Kind = iota
	// Single keeps records whose value equals one chosen value.
	Single
)

// FieldSpec describes one filterable field and the control that drives it.
type FieldSpec struct {
	Field complaint.Field
	Label string
	Kind  Kind
}

// DefaultFields is the filter panel: one single-valued control for the
// raising party followed by a checklist per enumerable field.
var DefaultFields = []FieldSpec{
	{Field: complaint.FieldRaisedBy, Label: "Responsável (abertura)", Kind: Single},
	{Field: complaint.FieldStatus, Label: "Status", Kind: Checklist},
	{Field: complaint.FieldCategory, Label: "Categoria", Kind: Checklist},
	{Field: complaint.FieldClient, Label: "Cliente", Kind: Checklist},
	{Field: complaint.FieldReason, Label: "Motivo", Kind: Checklist},
	{Field: complaint.FieldRaisedBy, Label: "Responsável (abertura)", Kind: Checklist},
	{Field: complaint.FieldRootCause, Label: "Responsável (análise de causa)", Kind: Checklist},
	{Field: complaint.FieldShift, Label: "Turno", Kind: Checklist},
	{Field: complaint.FieldSituation, Label: "Situação", Kind: Checklist},
}

// Checklists returns the checklist entries of DefaultFields.
func Checklists() []FieldSpec {
	var out []FieldSpec
	for _, spec := range DefaultFields {
		if spec.Kind == Checklist {
			out = append(out, spec)
		}
	}
	return out
}

// Set is an explicit set of allowed values. A nil or empty Set allows
// nothing.
type Set map[string]struct{}

// NewSet builds a Set from values.
func NewSet(values ...string) Set {
	s := make(Set, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Has reports whether v is allowed.
func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Values returns the members sorted.
func (s Set) Values() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func (s Set) clone() Set {
	out := make(Set, len(s))
	for v := range s {
		out[v] = struct{}{}
	}
	return out
}

// Selection is the set of top-level filter choices. The zero value selects
// everything. Selections are values: the With* builders return modified
// copies and never share maps with the receiver.
type Selection struct {
	// Year restricts to one emission year; nil means all years.
	Year *int
	// Month restricts to one emission month; nil means all months.
	Month *time.Month
	// SingleField and SingleValue drive the single-valued control; an empty
	// SingleValue means all values.
	SingleField complaint.Field
	SingleValue string
	// allowed holds explicit checklist sets. A field absent from the map
	// has every value selected; a present field with an empty set selects
	// nothing.
	allowed map[complaint.Field]Set
}

// NewSelection returns the everything-selected selection with the single
// control bound to the raising party.
func NewSelection() Selection {
	return Selection{SingleField: complaint.FieldRaisedBy}
}

// WithYear pins the year; pass nil to select all years.
func (s Selection) WithYear(year *int) Selection {
	out := s.clone()
	if year != nil {
		y := *year
		out.Year = &y
	} else {
		out.Year = nil
	}
	return out
}

// WithMonth pins the month; pass nil to select all months.
func (s Selection) WithMonth(month *time.Month) Selection {
	out := s.clone()
	if month != nil {
		m := *month
		out.Month = &m
	} else {
		out.Month = nil
	}
	return out
}

// WithSingle sets the single-valued control; "" selects all values.
func (s Selection) WithSingle(value string) Selection {
	out := s.clone()
	out.SingleValue = value
	return out
}

// WithAllowed replaces the checklist of f with exactly values. An empty
// values list deliberately selects nothing.
func (s Selection) WithAllowed(f complaint.Field, values ...string) Selection {
	out := s.clone()
	if out.allowed == nil {
		out.allowed = map[complaint.Field]Set{}
	}
	out.allowed[f] = NewSet(values...)
	return out
}

// WithAll marks every value of f as selected.
func (s Selection) WithAll(f complaint.Field) Selection {
	out := s.clone()
	delete(out.allowed, f)
	return out
}

// Toggle flips one value of f's checklist. universe is the full list of
// values the control offers, used when the checklist is still "all".
func (s Selection) Toggle(f complaint.Field, value string, universe []string) Selection {
	out := s.clone()
	current, explicit := out.allowed[f]
	if !explicit {
		current = NewSet(universe...)
	}
	if current.Has(value) {
		delete(current, value)
	} else {
		current[value] = struct{}{}
	}
	if out.allowed == nil {
		out.allowed = map[complaint.Field]Set{}
	}
	if coversAll(current, universe) {
		delete(out.allowed, f)
	} else {
		out.allowed[f] = current
	}
	return out
}

func coversAll(s Set, universe []string) bool {
	if len(universe) == 0 || len(s) < len(universe) {
		return false
	}
	for _, v := range universe {
		if !s.Has(v) {
			return false
		}
	}
	return true
}

// Allowed returns the explicit set for f. ok is false when every value of
// f is selected.
func (s Selection) Allowed(f complaint.Field) (set Set, ok bool) {
	set, ok = s.allowed[f]
	if !ok {
		return nil, false
	}
	return set.clone(), true
}

// Selected reports whether value is selected in f's checklist.
func (s Selection) Selected(f complaint.Field, value string) bool {
	set, ok := s.allowed[f]
	return !ok || set.Has(value)
}

// IsAll reports whether the selection applies no restriction at all.
func (s Selection) IsAll() bool {
	return s.Year == nil && s.Month == nil && s.SingleValue == "" && len(s.allowed) == 0
}

// SameCalendar reports whether s and o pin the same year and month.
func (s Selection) SameCalendar(o Selection) bool {
	return equalInt(s.Year, o.Year) && equalMonth(s.Month, o.Month)
}

// Describe renders the selection for report headers and status lines.
func (s Selection) Describe() string {
	var parts []string
	if s.Year != nil {
		parts = append(parts, fmt.Sprintf("Ano=%d", *s.Year))
	} else {
		parts = append(parts, "Ano=Todos")
	}
	if s.Month != nil {
		parts = append(parts, "Mês="+complaint.MonthAbbrev(*s.Month))
	} else {
		parts = append(parts, "Mês=Todos")
	}
	if s.SingleValue != "" {
		parts = append(parts, fmt.Sprintf("%s=%s", s.SingleField.Label(), s.SingleValue))
	}
	fields := make([]complaint.Field, 0, len(s.allowed))
	for f := range s.allowed {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	for _, f := range fields {
		values := s.allowed[f].Values()
		if len(values) == 0 {
			parts = append(parts, f.Label()+"=(nenhum)")
			continue
		}
		parts = append(parts, f.Label()+"="+strings.Join(values, ", "))
	}
	return strings.Join(parts, " | ")
}

func (s Selection) clone() Selection {
	out := s
	if s.allowed != nil {
		out.allowed = make(map[complaint.Field]Set, len(s.allowed))
		for f, set := range s.allowed {
			out.allowed[f] = set.clone()
		}
	}
	return out
}

func equalInt(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func equalMonth(a, b *time.Month) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
