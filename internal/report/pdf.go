package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/jask/qualityrs/internal/aggregate"
	"github.com/jask/qualityrs/internal/dashboard"
)

// Page geometry in millimetres, A4 landscape.
const (
	pageW   = 297.0
	margin  = 10.0
	gridTop = 42.0
	gapX    = 8.0
	gapY    = 6.0
	panelH  = 72.0
)

var barColor = [3]int{31, 78, 120}

// PDF renders a one-page landscape snapshot: title, KPI strip and the four
// dashboard charts in a 2x2 grid.
func PDF(snap dashboard.Snapshot, opts Options) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(opts.title(), true)
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(barColor[0], barColor[1], barColor[2])
	pdf.CellFormat(0, 8, tr(opts.title()), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("%s  |  %s", snap.Breadcrumb(), snap.Selection.Describe())), "", 1, "L", false, 0, "")

	drawKPIs(pdf, tr, snap)

	panelW := (pageW - 2*margin - gapX) / 2
	for i, t := range snap.Charts() {
		x := margin + float64(i%2)*(panelW+gapX)
		y := gridTop + float64(i/2)*(panelH+gapY)
		drawBars(pdf, tr, t, x, y, panelW, panelH)
	}

	pdf.SetFont("Helvetica", "I", 7)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(margin, 200)
	pdf.CellFormat(0, 4, tr("Gerado em "+opts.now().Format("02/01/2006 15:04:05")+" - "+snap.Source), "", 0, "R", false, 0, "")

	if err := pdf.Error(); err != nil {
		return nil, exportErr("render pdf", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, exportErr("write pdf", err)
	}
	return buf.Bytes(), nil
}

func drawKPIs(pdf *fpdf.Fpdf, tr func(string) string, snap dashboard.Snapshot) {
	items := KPIs(snap)
	w := (pageW - 2*margin) / float64(len(items))
	y := 24.0
	for i, k := range items {
		x := margin + float64(i)*w
		pdf.SetFillColor(235, 241, 247)
		pdf.Rect(x+1, y, w-2, 14, "F")
		pdf.SetTextColor(80, 80, 80)
		pdf.SetFont("Helvetica", "", 7)
		pdf.SetXY(x+1, y+1)
		pdf.CellFormat(w-2, 4, tr(k[0]), "", 0, "C", false, 0, "")
		pdf.SetTextColor(barColor[0], barColor[1], barColor[2])
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetXY(x+1, y+6)
		pdf.CellFormat(w-2, 6, tr(k[1]), "", 0, "C", false, 0, "")
	}
}

// drawBars draws t as vertical bars inside the given panel.
func drawBars(pdf *fpdf.Fpdf, tr func(string) string, t aggregate.Table, x, y, w, h float64) {
	pdf.SetDrawColor(200, 200, 200)
	pdf.Rect(x, y, w, h, "D")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(40, 40, 40)
	pdf.SetXY(x+2, y+1)
	pdf.CellFormat(w-4, 5, tr(t.Title), "", 0, "L", false, 0, "")

	const labelH, valueH, top = 10.0, 4.0, 8.0
	plotH := h - top - labelH - valueH
	base := y + h - labelH
	n := len(t.Rows)
	if n == 0 {
		return
	}
	slot := (w - 4) / float64(n)
	barW := slot * 0.7
	peak := t.Max()

	pdf.SetFillColor(barColor[0], barColor[1], barColor[2])
	for i, r := range t.Rows {
		bx := x + 2 + float64(i)*slot + (slot-barW)/2
		bh := 0.0
		if peak > 0 {
			bh = plotH * float64(r.Count) / float64(peak)
		}
		if bh > 0 {
			pdf.Rect(bx, base-bh, barW, bh, "F")
		}

		pdf.SetFont("Helvetica", "", 6)
		pdf.SetTextColor(40, 40, 40)
		pdf.SetXY(bx-1, base-bh-valueH)
		pdf.CellFormat(barW+2, valueH, fmt.Sprint(r.Count), "", 0, "C", false, 0, "")

		pdf.SetXY(x+2+float64(i)*slot, base+1)
		pdf.CellFormat(slot, 3, tr(truncate(r.Label, slot)), "", 0, "C", false, 0, "")
	}
}

// truncate shortens label to roughly fit width millimetres at 6pt.
func truncate(label string, width float64) string {
	limit := int(width / 1.3)
	if limit < 3 {
		limit = 3
	}
	r := []rune(label)
	if len(r) <= limit {
		return label
	}
	return string(r[:limit-1]) + "…"
}
