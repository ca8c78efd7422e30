// Package aggregate turns a subset of complaints into small ordered
// (category, count) tables. The same functions feed the on-screen charts
// and the exported reports.
package aggregate

import (
	"sort"
	"strconv"

	"github.com/jask/qualityrs/internal/complaint"
	"github.com/jask/qualityrs/internal/drill"
)

// DefaultReasonLimit caps the reasons table.
const DefaultReasonLimit = 12

// Placeholder labels the single zero row emitted for empty input.
const Placeholder = "Sem dados"

// Row is one category and its occurrence count.
type Row struct {
	Label string
	Count int
}

// Table is an ordered aggregation result.
type Table struct {
	Title     string
	Dimension string
	Rows      []Row
}

// Total sums every row.
func (t Table) Total() int {
	n := 0
	for _, r := range t.Rows {
		n += r.Count
	}
	return n
}

// Max returns the largest count, at least 0.
func (t Table) Max() int {
	m := 0
	for _, r := range t.Rows {
		if r.Count > m {
			m = r.Count
		}
	}
	return m
}

// Labels returns the row labels in order.
func (t Table) Labels() []string {
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Label
	}
	return out
}

// Count returns the count for label, 0 when absent.
func (t Table) Count(label string) int {
	for _, r := range t.Rows {
		if r.Label == label {
			return r.Count
		}
	}
	return 0
}

// ByYear counts occurrences per emission year, ascending.
func ByYear(ds complaint.Dataset) Table {
	t := Table{Title: "Ocorrências por ano", Dimension: "Ano"}
	counts := map[int]int{}
	for _, r := range ds.Records() {
		counts[r.Year()]++
	}
	for _, y := range ds.Years() {
		t.Rows = append(t.Rows, Row{Label: strconv.Itoa(y), Count: counts[y]})
	}
	return withPlaceholder(t)
}

// ByMonth always emits the 12 calendar months in order, zero-filled.
func ByMonth(ds complaint.Dataset) Table {
	t := Table{Title: "Ocorrências por mês", Dimension: "Mês"}
	var counts [12]int
	for _, r := range ds.Records() {
		counts[r.Month()-1]++
	}
	for i, label := range complaint.MonthAbbrevs {
		t.Rows = append(t.Rows, Row{Label: label, Count: counts[i]})
	}
	return t
}

// ByWeek always emits week ordinals 1ª..5ª in order, zero-filled.
func ByWeek(ds complaint.Dataset) Table {
	t := Table{Title: "Ocorrências por semana", Dimension: "Semana"}
	var counts [complaint.WeeksPerMonth]int
	for _, r := range ds.Records() {
		counts[r.Week()-1]++
	}
	for i := range counts {
		t.Rows = append(t.Rows, Row{Label: complaint.WeekLabel(i + 1), Count: counts[i]})
	}
	return t
}

// ForLevel picks the time bucket aggregation for a resolved drill level.
func ForLevel(level drill.Level, ds complaint.Dataset) Table {
	switch level {
	case drill.LevelMonth:
		return ByMonth(ds)
	case drill.LevelWeek:
		return ByWeek(ds)
	default:
		return ByYear(ds)
	}
}

// ByResponsible counts participation of each root-cause party.
func ByResponsible(ds complaint.Dataset) Table {
	t := countBy(ds, complaint.FieldRootCause, 0)
	t.Title, t.Dimension = "Participação por responsável", complaint.FieldRootCause.Label()
	return t
}

// ByRaisedBy counts complaints per raising party.
func ByRaisedBy(ds complaint.Dataset) Table {
	t := countBy(ds, complaint.FieldRaisedBy, 0)
	t.Title, t.Dimension = "Ocorrências por responsável (abertura)", complaint.FieldRaisedBy.Label()
	return t
}

// ByCategory counts complaints per category.
func ByCategory(ds complaint.Dataset) Table {
	t := countBy(ds, complaint.FieldCategory, 0)
	t.Title, t.Dimension = "Ocorrências por categoria", complaint.FieldCategory.Label()
	return t
}

// ByReason counts complaints per reason, keeping the limit most frequent.
// A limit of 0 or less uses DefaultReasonLimit.
func ByReason(ds complaint.Dataset, limit int) Table {
	if limit <= 0 {
		limit = DefaultReasonLimit
	}
	t := countBy(ds, complaint.FieldReason, limit)
	t.Title, t.Dimension = "Principais motivos", complaint.FieldReason.Label()
	return t
}

// BySituation splits complaints by deadline outcome.
func BySituation(ds complaint.Dataset) Table {
	t := Table{Title: "Situação", Dimension: complaint.FieldSituation.Label()}
	order := []string{}
	counts := map[string]int{}
	for _, r := range ds.Records() {
		label := r.Situation.Label()
		if _, ok := counts[label]; !ok {
			order = append(order, label)
		}
		counts[label]++
	}
	for _, label := range order {
		t.Rows = append(t.Rows, Row{Label: label, Count: counts[label]})
	}
	sortDesc(t.Rows)
	return withPlaceholder(t)
}

// LatenessByResponsible answers how late each root-cause party was over a
// whole reference year. It reads base directly and ignores any filter or
// drill state on purpose.
func LatenessByResponsible(base complaint.Dataset, refYear int) Table {
	late := base.Where(func(r complaint.Record) bool {
		return r.Year() == refYear && r.Late()
	})
	t := countBy(late, complaint.FieldRootCause, 0)
	t.Title = "Atrasos por responsável em " + strconv.Itoa(refYear)
	t.Dimension = complaint.FieldRootCause.Label()
	return t
}

// countBy groups by f in first-seen order, sorts by descending count with
// ties kept in first-seen order, and truncates to limit when positive.
func countBy(ds complaint.Dataset, f complaint.Field, limit int) Table {
	var t Table
	index := map[string]int{}
	for _, r := range ds.Records() {
		label := complaint.NormalizeText(f.Value(r))
		if label == "" {
			label = complaint.Unspecified
		}
		i, ok := index[label]
		if !ok {
			i = len(t.Rows)
			index[label] = i
			t.Rows = append(t.Rows, Row{Label: label})
		}
		t.Rows[i].Count++
	}
	sortDesc(t.Rows)
	if limit > 0 && len(t.Rows) > limit {
		t.Rows = t.Rows[:limit]
	}
	return withPlaceholder(t)
}

func sortDesc(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Count > rows[j].Count })
}

func withPlaceholder(t Table) Table {
	if len(t.Rows) == 0 {
		t.Rows = []Row{{Label: Placeholder, Count: 0}}
	}
	return t
}
