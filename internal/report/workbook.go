package report

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/360EntSecGroup-Skylar/excelize"

	"github.com/jask/qualityrs/internal/complaint"
	"github.com/jask/qualityrs/internal/dashboard"
)

// Sheet names of the exported workbook.
const (
	SheetSummary = "Resumo"
	SheetTables  = "Tabelas"
	SheetCharts  = "Graficos"
	SheetRecords = "Ocorrencias"
)

const (
	titleStyle  = `{"font":{"bold":true,"size":16,"color":"#1F4E78"}}`
	headerStyle = `{"font":{"bold":true,"color":"#FFFFFF"},"fill":{"type":"pattern","color":["#1F4E78"],"pattern":1},"alignment":{"horizontal":"center"},"border":[{"type":"bottom","color":"#000000","style":1}]}`
	labelStyle  = `{"font":{"bold":true}}`
	lateStyle   = `{"font":{"color":"#9A0511"},"fill":{"type":"pattern","color":["#FEC7CE"],"pattern":1}}`
)

// cell converts zero-based column and one-based row to an A1 reference.
func cell(col, row int) string {
	return excelize.ToAlphaString(col) + strconv.Itoa(row)
}

type styles struct {
	title, header, label int
}

// Workbook renders snap as an xlsx workbook with a summary sheet, the
// aggregate tables, native bar charts over them and the row-level extract
// of the table rows.
func Workbook(snap dashboard.Snapshot, opts Options) ([]byte, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", SheetSummary)
	f.NewSheet(SheetTables)
	f.NewSheet(SheetCharts)
	f.NewSheet(SheetRecords)

	var (
		st  styles
		err error
	)
	if st.title, err = f.NewStyle(titleStyle); err != nil {
		return nil, exportErr("title style", err)
	}
	if st.header, err = f.NewStyle(headerStyle); err != nil {
		return nil, exportErr("header style", err)
	}
	if st.label, err = f.NewStyle(labelStyle); err != nil {
		return nil, exportErr("label style", err)
	}

	writeSummary(f, snap, opts, st)
	refs := writeTables(f, snap, st)
	if err := writeCharts(f, refs); err != nil {
		return nil, err
	}
	if err := writeRecords(f, snap, st); err != nil {
		return nil, err
	}

	f.SetActiveSheet(1)
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, exportErr("write workbook", err)
	}
	return buf.Bytes(), nil
}

func writeSummary(f *excelize.File, snap dashboard.Snapshot, opts Options, st styles) {
	sh := SheetSummary
	f.SetCellValue(sh, "A1", opts.title())
	f.SetCellStyle(sh, "A1", "A1", st.title)

	meta := [][2]string{
		{"Gerado em", opts.now().Format("02/01/2006 15:04:05")},
		{"Arquivo", snap.Source},
		{"Filtros", snap.Selection.Describe()},
		{"Caminho", snap.Breadcrumb()},
		{"Nível", snap.Level.Label()},
	}
	row := 3
	for _, m := range meta {
		f.SetCellValue(sh, cell(0, row), m[0])
		f.SetCellValue(sh, cell(1, row), m[1])
		f.SetCellStyle(sh, cell(0, row), cell(0, row), st.label)
		row++
	}

	row++
	f.SetCellValue(sh, cell(0, row), "Indicador")
	f.SetCellValue(sh, cell(1, row), "Valor")
	f.SetCellStyle(sh, cell(0, row), cell(1, row), st.header)
	row++
	for _, k := range KPIs(snap) {
		f.SetCellValue(sh, cell(0, row), k[0])
		f.SetCellValue(sh, cell(1, row), k[1])
		row++
	}
	f.SetColWidth(sh, "A", "A", 22)
	f.SetColWidth(sh, "B", "B", 60)
}

// tableRef locates one aggregate table on the tables sheet.
type tableRef struct {
	title    string
	labelCol int
	firstRow int
	lastRow  int
}

func (r tableRef) categories() string {
	col := excelize.ToAlphaString(r.labelCol)
	return fmt.Sprintf("%s!$%s$%d:$%s$%d", SheetTables, col, r.firstRow, col, r.lastRow)
}

func (r tableRef) values() string {
	col := excelize.ToAlphaString(r.labelCol + 1)
	return fmt.Sprintf("%s!$%s$%d:$%s$%d", SheetTables, col, r.firstRow, col, r.lastRow)
}

// writeTables lays the tables side by side, two columns each with a
// spacer column between them.
func writeTables(f *excelize.File, snap dashboard.Snapshot, st styles) []tableRef {
	sh := SheetTables
	tables := append(snap.Charts(), snap.Categories, snap.Situations)
	refs := make([]tableRef, 0, len(tables))
	for i, t := range tables {
		col := i * 3
		f.SetCellValue(sh, cell(col, 1), t.Title)
		f.SetCellStyle(sh, cell(col, 1), cell(col, 1), st.label)
		f.SetCellValue(sh, cell(col, 2), t.Dimension)
		f.SetCellValue(sh, cell(col+1, 2), "Ocorrências")
		f.SetCellStyle(sh, cell(col, 2), cell(col+1, 2), st.header)
		for j, r := range t.Rows {
			f.SetCellValue(sh, cell(col, j+3), r.Label)
			f.SetCellValue(sh, cell(col+1, j+3), r.Count)
		}
		f.SetColWidth(sh, excelize.ToAlphaString(col), excelize.ToAlphaString(col), 28)
		refs = append(refs, tableRef{
			title:    t.Title,
			labelCol: col,
			firstRow: 3,
			lastRow:  3 + max(len(t.Rows), 1) - 1,
		})
	}
	return refs
}

type chartSeries struct {
	Name       string `json:"name"`
	Categories string `json:"categories"`
	Values     string `json:"values"`
}

// writeCharts places the first four tables as column charts in a 2x2 grid.
func writeCharts(f *excelize.File, refs []tableRef) error {
	anchors := []string{"A1", "K1", "A22", "K22"}
	for i, ref := range refs {
		if i >= len(anchors) {
			break
		}
		format, err := chartFormat(ref)
		if err != nil {
			return exportErr("chart format", err)
		}
		if err := f.AddChart(SheetCharts, anchors[i], format); err != nil {
			return exportErr("add chart "+ref.title, err)
		}
	}
	return nil
}

func chartFormat(ref tableRef) (string, error) {
	spec := map[string]any{
		"type": "col",
		"series": []chartSeries{{
			Name:       ref.title,
			Categories: ref.categories(),
			Values:     ref.values(),
		}},
		"title":  map[string]string{"name": ref.title},
		"legend": map[string]any{"position": "bottom", "show_legend_key": false},
		"format": map[string]any{"x_scale": 1.0, "y_scale": 1.0},
	}
	b, err := json.Marshal(spec)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func writeRecords(f *excelize.File, snap dashboard.Snapshot, st styles) error {
	sh := SheetRecords
	last := excelize.ToAlphaString(len(RecordHeaders) - 1)
	for i, h := range RecordHeaders {
		f.SetCellValue(sh, cell(i, 1), h)
	}
	f.SetCellStyle(sh, "A1", last+"1", st.header)

	rows := snap.TableRows
	for i := 0; i < rows.Len(); i++ {
		for j, v := range RecordRow(rows.At(i)) {
			f.SetCellValue(sh, cell(j, i+2), v)
		}
	}
	f.SetColWidth(sh, "A", last, 18)
	f.SetColWidth(sh, "B", "B", 40)

	if rows.Len() == 0 {
		return nil
	}
	late, err := f.NewConditionalStyle(lateStyle)
	if err != nil {
		return exportErr("conditional style", err)
	}
	area := fmt.Sprintf("A2:%s%d", last, rows.Len()+1)
	rule := fmt.Sprintf(`[{"type":"formula","criteria":"$%s2=\"%s\"","format":%d}]`, last, complaint.SituationLate.Label(), late)
	if err := f.SetConditionalFormat(sh, area, rule); err != nil {
		return exportErr("conditional format", err)
	}
	return nil
}
