package filter

import "github.com/jask/qualityrs/internal/complaint"

// Apply narrows base to the records matching every active filter in sel.
// Filters compose with logical AND. A checklist explicitly emptied by the
// user suppresses every row rather than being ignored.
func Apply(base complaint.Dataset, sel Selection) complaint.Dataset {
	if sel.IsAll() {
		return base
	}
	present := base.Fields()
	for _, spec := range Checklists() {
		if !present.Has(spec.Field) {
			continue
		}
		if set, ok := sel.allowed[spec.Field]; ok && len(set) == 0 {
			return base.None()
		}
	}

	return base.Where(func(r complaint.Record) bool {
		if sel.Year != nil && r.Year() != *sel.Year {
			return false
		}
		if sel.Month != nil && r.Month() != *sel.Month {
			return false
		}
		if sel.SingleValue != "" && sel.SingleField.Value(r) != sel.SingleValue {
			return false
		}
		for f, set := range sel.allowed {
			if !present.Has(f) {
				continue
			}
			if !set.Has(f.Value(r)) {
				return false
			}
		}
		return true
	})
}
