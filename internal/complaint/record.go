package complaint

import "time"

// Record is one quality complaint as loaded from the source spreadsheet.
type Record struct {
	ID        string
	Title     string
	Status    string
	Emitted   time.Time
	Reason    string
	Shift     string
	RaisedBy  string
	RootCause string
	Category  string
	Client    string
	Situation Situation
}

// Year of emission.
func (r Record) Year() int { return r.Emitted.Year() }

// Month of emission.
func (r Record) Month() time.Month { return r.Emitted.Month() }

// Week returns the week-of-month bucket of the emission date.
func (r Record) Week() int { return WeekOfMonth(r.Emitted) }

// Late reports whether the record was closed past its deadline.
func (r Record) Late() bool { return r.Situation == SituationLate }

// Field identifies one enumerable attribute of a Record.
type Field int

const (
	FieldStatus Field = iota
	FieldCategory
	FieldClient
	FieldReason
	FieldRaisedBy
	FieldRootCause
	FieldShift
	FieldSituation
	fieldCount
)

// Fields lists every enumerable field in display order.
var Fields = []Field{
	FieldStatus,
	FieldCategory,
	FieldClient,
	FieldReason,
	FieldRaisedBy,
	FieldRootCause,
	FieldShift,
	FieldSituation,
}

var fieldKeys = [fieldCount]string{
	FieldStatus:    "status",
	FieldCategory:  "category",
	FieldClient:    "client",
	FieldReason:    "reason",
	FieldRaisedBy:  "raised_by",
	FieldRootCause: "root_cause",
	FieldShift:     "shift",
	FieldSituation: "situation",
}

var fieldLabels = [fieldCount]string{
	FieldStatus:    "Status",
	FieldCategory:  "Categoria",
	FieldClient:    "Cliente",
	FieldReason:    "Motivo",
	FieldRaisedBy:  "Responsável (abertura)",
	FieldRootCause: "Responsável (análise de causa)",
	FieldShift:     "Turno",
	FieldSituation: "Situação",
}

// Key is the stable identifier used in config files and CLI flags.
func (f Field) Key() string {
	if f < 0 || f >= fieldCount {
		return ""
	}
	return fieldKeys[f]
}

// Label is the display name of the field.
func (f Field) Label() string {
	if f < 0 || f >= fieldCount {
		return ""
	}
	return fieldLabels[f]
}

func (f Field) String() string { return f.Key() }

// ParseField resolves a field key such as "raised_by".
func ParseField(key string) (Field, bool) {
	for _, f := range Fields {
		if f.Key() == key {
			return f, true
		}
	}
	return 0, false
}

// Value returns the record's value for f as a string.
func (f Field) Value(r Record) string {
	switch f {
	case FieldStatus:
		return r.Status
	case FieldCategory:
		return r.Category
	case FieldClient:
		return r.Client
	case FieldReason:
		return r.Reason
	case FieldRaisedBy:
		return r.RaisedBy
	case FieldRootCause:
		return r.RootCause
	case FieldShift:
		return r.Shift
	case FieldSituation:
		return string(r.Situation)
	default:
		return ""
	}
}

// FieldSet is a bitmask of fields present in a loaded source.
type FieldSet uint16

// AllFields has every enumerable field set.
const AllFields FieldSet = 1<<fieldCount - 1

// With returns s with f added.
func (s FieldSet) With(f Field) FieldSet { return s | 1<<f }

// Has reports whether f is in s.
func (s FieldSet) Has(f Field) bool { return s&(1<<f) != 0 }
