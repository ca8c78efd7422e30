// Package report renders a dashboard snapshot into downloadable files.
package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/jask/qualityrs/internal/complaint"
	"github.com/jask/qualityrs/internal/dashboard"
)

// ErrExport wraps every rendering failure.
var ErrExport = errors.New("report: export failed")

// Kind is an export file type.
type Kind string

const (
	KindXLSX Kind = "xlsx"
	KindPDF  Kind = "pdf"
)

// ParseKind accepts "xlsx" or "pdf".
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindXLSX, KindPDF:
		return Kind(s), nil
	}
	return "", fmt.Errorf("report: unknown kind %q", s)
}

// Options carries presentation settings shared by every renderer.
type Options struct {
	Title string
	Now   time.Time
}

func (o Options) title() string {
	if o.Title == "" {
		return "INDICADORES QUALIDADE RS"
	}
	return o.Title
}

func (o Options) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

// FileName names an export generated at now.
func FileName(kind Kind, now time.Time) string {
	return fmt.Sprintf("indicadores_qualidade_%s.%s", now.Format("20060102_150405"), kind)
}

// Render dispatches on kind.
func Render(kind Kind, snap dashboard.Snapshot, opts Options) ([]byte, error) {
	switch kind {
	case KindXLSX:
		return Workbook(snap, opts)
	case KindPDF:
		return PDF(snap, opts)
	}
	return nil, fmt.Errorf("%w: unknown kind %q", ErrExport, kind)
}

func exportErr(step string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrExport, step, err)
}

// KPIs lists the headline figures in display order.
func KPIs(snap dashboard.Snapshot) [][2]string {
	s := snap.Summary
	ref := "-"
	if s.HasReference {
		ref = fmt.Sprint(s.ReferenceYear)
	}
	return [][2]string{
		{"Ocorrências", fmt.Sprint(s.Occurrences)},
		{"Atrasadas", fmt.Sprint(s.Late)},
		{"No prazo", fmt.Sprint(s.OnTime)},
		{"Sem situação", fmt.Sprint(s.Unspecified)},
		{"% atraso", fmt.Sprintf("%.1f%%", s.LatePercent)},
		{"Motivos distintos", fmt.Sprint(s.Reasons)},
		{"Ano de referência", ref},
	}
}

// RecordHeaders and RecordRow define the row-level extract layout.
var RecordHeaders = []string{
	"Número",
	"Título",
	"Status",
	"Data de emissão",
	"Motivo",
	"Turno",
	"Responsável (abertura)",
	"Responsável (análise de causa)",
	"Categoria",
	"Cliente",
	"Situação",
}

func RecordRow(r complaint.Record) []string {
	situation := ""
	if r.Situation != complaint.SituationUnknown {
		situation = r.Situation.Label()
	}
	return []string{
		r.ID,
		r.Title,
		r.Status,
		r.Emitted.Format("02/01/2006"),
		r.Reason,
		r.Shift,
		r.RaisedBy,
		r.RootCause,
		r.Category,
		r.Client,
		situation,
	}
}
