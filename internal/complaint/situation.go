package complaint

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Situation is the deadline outcome of a complaint. The closed values are
// SituationUnknown, SituationOnTime and SituationLate; any other value is an
// uppercased literal carried over from the source file.
type Situation string

const (
	SituationUnknown Situation = ""
	SituationOnTime  Situation = "ON_TIME"
	SituationLate    Situation = "LATE"
)

// Known reports whether s is one of the closed situation values.
func (s Situation) Known() bool {
	switch s {
	case SituationUnknown, SituationOnTime, SituationLate:
		return true
	}
	return false
}

// Label is the display text for s.
func (s Situation) Label() string {
	switch s {
	case SituationLate:
		return "Atrasada"
	case SituationOnTime:
		return "No prazo"
	case SituationUnknown:
		return Unspecified
	default:
		return string(s)
	}
}

// Unspecified labels a blank category value.
const Unspecified = "(não informado)"

var lateTokens = map[string]bool{
	"atrasado":      true,
	"atrasada":      true,
	"atrasados":     true,
	"atrasadas":     true,
	"atraso":        true,
	"em atraso":     true,
	"fora do prazo": true,
	"late":          true,
	"delayed":       true,
	"overdue":       true,
}

var onTimeTokens = map[string]bool{
	"no prazo":        true,
	"dentro do prazo": true,
	"em dia":          true,
	"pontual":         true,
	"on time":         true,
	"on_time":         true,
	"ontime":          true,
	"in time":         true,
}

var blankTokens = map[string]bool{
	"":     true,
	"none": true,
	"nan":  true,
	"nat":  true,
	"null": true,
	"nil":  true,
	"-":    true,
	"n/a":  true,
	"na":   true,

	// keys are folded, so accented spellings match too
	"nao informado":   true,
	"(nao informado)": true,
	"sem informacao":  true,
}

// NormalizeSituation maps a raw situation cell to a Situation. It never
// fails: unrecognised values pass through uppercased.
func NormalizeSituation(raw string) Situation {
	trimmed := NormalizeText(raw)
	key := Fold(trimmed)
	switch {
	case blankTokens[key]:
		return SituationUnknown
	case lateTokens[key]:
		return SituationLate
	case onTimeTokens[key]:
		return SituationOnTime
	}
	return Situation(strings.ToUpper(trimmed))
}

// NormalizeText trims s and collapses runs of whitespace to one space.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lowercases s, strips diacritics and collapses whitespace, so that
// "  Não  Informado" and "nao informado" compare equal.
func Fold(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(NormalizeText(out))
}
