// Package ingest turns an uploaded spreadsheet into a complaint dataset.
package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/h2non/filetype"
	"github.com/jfyne/csvd"
	"github.com/tealeg/xlsx"

	"github.com/jask/qualityrs/internal/complaint"
)

var (
	// ErrEmptyFile is returned for sources with no bytes or no data rows.
	ErrEmptyFile = errors.New("ingest: empty file")
	// ErrUnsupportedFormat is returned for binary files that are not workbooks.
	ErrUnsupportedFormat = errors.New("ingest: unsupported file format")
	// ErrSheetNotFound is returned when the configured sheet is absent from
	// a workbook holding several sheets.
	ErrSheetNotFound = errors.New("ingest: sheet not found")
)

// Format names the detected source kind.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// Result describes one load.
type Result struct {
	Format  Format
	Sheet   string
	Rows    int
	Dropped int
	Headers map[string]string
}

// Loader reads complaint exports. The zero value is not usable; call
// NewLoader.
type Loader struct {
	Columns     ColumnMap
	Sheet       string
	DateLayouts []string
	Location    *time.Location
}

// NewLoader returns a loader with the default column names, sheet and
// date layouts.
func NewLoader() *Loader {
	return &Loader{
		Columns:     DefaultColumns(),
		Sheet:       "Sheet1",
		DateLayouts: DefaultDateLayouts,
		Location:    time.UTC,
	}
}

// LoadFile reads path and loads it.
func (l *Loader) LoadFile(ctx context.Context, path string) (complaint.Dataset, Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return complaint.Dataset{}, Result{}, fmt.Errorf("read %s: %w", path, err)
	}
	return l.Load(ctx, filepath.Base(path), data)
}

// Load parses data. name is only used to log and to break format ties.
func (l *Loader) Load(ctx context.Context, name string, data []byte) (complaint.Dataset, Result, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return complaint.Dataset{}, Result{}, ErrEmptyFile
	}

	format, err := sniff(name, data)
	if err != nil {
		return complaint.Dataset{}, Result{}, err
	}

	res := Result{Format: format}
	var (
		rows   [][]string
		parser = dateParser{layouts: l.DateLayouts, loc: l.location()}
	)
	switch format {
	case FormatXLSX:
		var date1904 bool
		rows, res.Sheet, date1904, err = l.readWorkbook(data)
		parser.serials = true
		parser.date1904 = date1904
	default:
		rows, err = readCSV(data)
	}
	if err != nil {
		return complaint.Dataset{}, Result{}, err
	}
	if len(rows) == 0 {
		return complaint.Dataset{}, Result{}, ErrEmptyFile
	}

	at := headerRow(rows)
	headers := rows[at]
	idx, err := resolve(l.Columns, headers)
	if err != nil {
		return complaint.Dataset{}, Result{}, err
	}
	res.Headers = make(map[string]string, len(idx))
	for key, i := range idx {
		res.Headers[key] = strings.TrimSpace(headers[i])
	}

	fields := complaint.FieldSet(0).With(complaint.FieldStatus).With(complaint.FieldReason)
	for _, key := range Optional {
		if _, ok := idx[key]; ok {
			f, _ := complaint.ParseField(key)
			fields = fields.With(f)
		}
	}

	get := func(row []string, key string) string {
		i, ok := idx[key]
		if !ok || i >= len(row) {
			return ""
		}
		return complaint.NormalizeText(row[i])
	}

	records := make([]complaint.Record, 0, len(rows)-at-1)
	for n, row := range rows[at+1:] {
		if n%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return complaint.Dataset{}, Result{}, err
			}
		}
		if blank(row) {
			continue
		}
		emitted, ok := parser.parse(get(row, ColEmitted))
		if !ok {
			res.Dropped++
			continue
		}
		records = append(records, complaint.Record{
			ID:        get(row, ColID),
			Title:     get(row, ColTitle),
			Status:    get(row, complaint.FieldStatus.Key()),
			Emitted:   emitted,
			Reason:    get(row, complaint.FieldReason.Key()),
			Shift:     get(row, complaint.FieldShift.Key()),
			RaisedBy:  get(row, complaint.FieldRaisedBy.Key()),
			RootCause: get(row, complaint.FieldRootCause.Key()),
			Category:  get(row, complaint.FieldCategory.Key()),
			Client:    get(row, complaint.FieldClient.Key()),
			Situation: complaint.NormalizeSituation(get(row, complaint.FieldSituation.Key())),
		})
	}
	res.Rows = len(records)

	slog.Info("source loaded",
		"name", name,
		"format", res.Format,
		"sheet", res.Sheet,
		"rows", res.Rows,
		"dropped", res.Dropped,
	)
	return complaint.NewDataset(records, fields), res, nil
}

func (l *Loader) location() *time.Location {
	if l.Location == nil {
		return time.UTC
	}
	return l.Location
}

// sniff classifies data. Zip containers are treated as workbooks, other
// recognised binary types are rejected and anything unknown is read as
// delimited text.
func sniff(name string, data []byte) (Format, error) {
	kind, _ := filetype.Match(data)
	switch {
	case kind.Extension == "xlsx" || kind.Extension == "zip":
		return FormatXLSX, nil
	case kind == filetype.Unknown:
		if strings.EqualFold(filepath.Ext(name), ".xlsx") {
			return FormatXLSX, nil
		}
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, kind.Extension)
	}
}

func (l *Loader) readWorkbook(data []byte) ([][]string, string, bool, error) {
	book, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, "", false, fmt.Errorf("open workbook: %w", err)
	}
	sheet, ok := book.Sheet[l.Sheet]
	if !ok {
		if len(book.Sheets) != 1 {
			return nil, "", false, fmt.Errorf("%w: %q", ErrSheetNotFound, l.Sheet)
		}
		sheet = book.Sheets[0]
		slog.Warn("configured sheet missing, using the only sheet", "want", l.Sheet, "got", sheet.Name)
	}

	rows := make([][]string, 0, len(sheet.Rows))
	for _, r := range sheet.Rows {
		if r == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, len(r.Cells))
		for i, c := range r.Cells {
			if c != nil {
				cells[i] = c.Value
			}
		}
		rows = append(rows, cells)
	}
	return rows, sheet.Name, book.Date1904, nil
}

func readCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	r := csvd.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rows, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
