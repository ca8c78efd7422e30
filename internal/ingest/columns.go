package ingest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/qualityrs/internal/complaint"
)

// Column keys understood by the loader. The optional ones reuse the
// complaint field keys.
const (
	ColID      = "id"
	ColTitle   = "title"
	ColEmitted = "emitted"
)

// Required lists the columns a source must carry.
var Required = []string{ColID, ColTitle, complaint.FieldStatus.Key(), ColEmitted, complaint.FieldReason.Key()}

// Optional lists the columns that default to empty values when absent.
var Optional = []string{
	complaint.FieldShift.Key(),
	complaint.FieldRaisedBy.Key(),
	complaint.FieldRootCause.Key(),
	complaint.FieldCategory.Key(),
	complaint.FieldClient.Key(),
	complaint.FieldSituation.Key(),
}

// maxHeaderDistance bounds the fuzzy header match, after folding.
const maxHeaderDistance = 2

// headerScanRows is how many leading rows may hold the header.
const headerScanRows = 10

// ColumnMap maps a column key to the header expected in the source.
type ColumnMap map[string]string

// DefaultColumns mirrors the headers of the quality team's export.
func DefaultColumns() ColumnMap {
	return ColumnMap{
		ColID:                          "Número",
		ColTitle:                       "Título",
		complaint.FieldStatus.Key():    "Status",
		ColEmitted:                     "Data de emissão",
		complaint.FieldReason.Key():    "Motivo Reclamação",
		complaint.FieldShift.Key():     "Turno",
		complaint.FieldRaisedBy.Key():  "Responsável",
		complaint.FieldRootCause.Key(): "Responsável da análise de causa",
		complaint.FieldCategory.Key():  "Categoria",
		complaint.FieldClient.Key():    "Cliente",
		complaint.FieldSituation.Key(): "Situação",
	}
}

// MissingColumnsError reports required headers that could not be found.
type MissingColumnsError struct {
	Missing []string
	Headers []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("ingest: missing required columns: %s", strings.Join(e.Missing, ", "))
}

// resolve maps each configured column key to its index in headers. Exact
// folded matches win; otherwise the closest unused header within
// maxHeaderDistance is taken.
func resolve(cols ColumnMap, headers []string) (map[string]int, error) {
	folded := make([]string, len(headers))
	for i, h := range headers {
		folded[i] = complaint.Fold(h)
	}

	used := make(map[int]bool)
	out := make(map[string]int)

	keys := append(append([]string(nil), Required...), Optional...)
	for _, key := range keys {
		want := complaint.Fold(cols[key])
		if want == "" {
			continue
		}
		for i, h := range folded {
			if !used[i] && h == want {
				out[key] = i
				used[i] = true
				break
			}
		}
	}

	for _, key := range keys {
		if _, ok := out[key]; ok {
			continue
		}
		want := complaint.Fold(cols[key])
		if want == "" {
			continue
		}
		best, bestDist := -1, maxHeaderDistance+1
		for i, h := range folded {
			if used[i] || h == "" {
				continue
			}
			if d := levenshtein.ComputeDistance(want, h); d < bestDist {
				best, bestDist = i, d
			}
		}
		if best >= 0 {
			out[key] = best
			used[best] = true
		}
	}

	var missing []string
	for _, key := range Required {
		if _, ok := out[key]; !ok {
			label := cols[key]
			if label == "" {
				label = key
			}
			missing = append(missing, label)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &MissingColumnsError{Missing: missing, Headers: headers}
	}
	return out, nil
}

// headerRow picks the row with the most non-empty cells among the first
// headerScanRows rows. Exports sometimes carry a title line above it.
func headerRow(rows [][]string) int {
	at, most := 0, -1
	for i, row := range rows {
		if i >= headerScanRows {
			break
		}
		n := 0
		for _, c := range row {
			if strings.TrimSpace(c) != "" {
				n++
			}
		}
		if n > most {
			at, most = i, n
		}
	}
	return at
}
