package complaint

import "sort"

// Dataset is a read-only collection of records. Operations that narrow a
// dataset return a new value and never touch the receiver, so one loaded
// dataset can be shared by every consumer of a session.
type Dataset struct {
	records []Record
	fields  FieldSet
}

// NewDataset wraps records. fields lists the enumerable columns the source
// actually carried; filters on absent fields are skipped.
func NewDataset(records []Record, fields FieldSet) Dataset {
	out := make([]Record, len(records))
	copy(out, records)
	return Dataset{records: out, fields: fields}
}

// Len is the number of records.
func (d Dataset) Len() int { return len(d.records) }

// Empty reports whether the dataset has no records.
func (d Dataset) Empty() bool { return len(d.records) == 0 }

// At returns the i-th record.
func (d Dataset) At(i int) Record { return d.records[i] }

// Records returns a copy of the underlying records.
func (d Dataset) Records() []Record {
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}

// Fields reports which enumerable columns the source carried.
func (d Dataset) Fields() FieldSet { return d.fields }

// Where returns the records matching keep, preserving order.
func (d Dataset) Where(keep func(Record) bool) Dataset {
	out := make([]Record, 0, len(d.records))
	for _, r := range d.records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return Dataset{records: out, fields: d.fields}
}

// None returns an empty dataset with the same field set.
func (d Dataset) None() Dataset {
	return Dataset{records: []Record{}, fields: d.fields}
}

// Years lists the distinct emission years in ascending order.
func (d Dataset) Years() []int {
	seen := map[int]bool{}
	var years []int
	for _, r := range d.records {
		y := r.Year()
		if !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	sort.Ints(years)
	return years
}

// LatestYear returns the most recent emission year.
func (d Dataset) LatestYear() (int, bool) {
	if len(d.records) == 0 {
		return 0, false
	}
	latest := d.records[0].Year()
	for _, r := range d.records[1:] {
		if y := r.Year(); y > latest {
			latest = y
		}
	}
	return latest, true
}

// Distinct lists the non-blank values of f, sorted.
func (d Dataset) Distinct(f Field) []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range d.records {
		v := f.Value(r)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// CountLate counts records whose situation is LATE.
func (d Dataset) CountLate() int {
	n := 0
	for _, r := range d.records {
		if r.Late() {
			n++
		}
	}
	return n
}
