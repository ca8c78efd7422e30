package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jask/qualityrs/internal/complaint"
	"github.com/jask/qualityrs/internal/drill"
	"github.com/jask/qualityrs/internal/filter"
)

// viewFlags are the filter and drill flags shared by summary and export.
type viewFlags struct {
	year     int
	month    string
	raisedBy string
	only     []string
	drill    []string
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.year, "year", 0, "restrict to one emission year")
	cmd.Flags().StringVar(&f.month, "month", "", "restrict to one month (1-12 or Jan..Dez)")
	cmd.Flags().StringVar(&f.raisedBy, "raised-by", "", "restrict to one raising party")
	cmd.Flags().StringArrayVar(&f.only, "only", nil, "keep only field=value (repeatable; fields: status, category, client, reason, raised_by, root_cause, shift, situation)")
	cmd.Flags().StringArrayVar(&f.drill, "drill", nil, "click a time-chart bar by label (repeatable, applied in order)")
}

// selection builds the top-level filter selection.
func (f *viewFlags) selection() (filter.Selection, error) {
	sel := filter.NewSelection()
	if f.year != 0 {
		y := f.year
		sel = sel.WithYear(&y)
	}
	if f.month != "" {
		m, err := parseMonth(f.month)
		if err != nil {
			return filter.Selection{}, err
		}
		sel = sel.WithMonth(&m)
	}
	if f.raisedBy != "" {
		sel = sel.WithSingle(complaint.NormalizeText(f.raisedBy))
	}

	allowed := map[complaint.Field][]string{}
	var order []complaint.Field
	for _, kv := range f.only {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return filter.Selection{}, fmt.Errorf("--only %q: want field=value", kv)
		}
		field, ok := complaint.ParseField(strings.TrimSpace(key))
		if !ok {
			return filter.Selection{}, fmt.Errorf("--only %q: unknown field %q", kv, key)
		}
		if _, seen := allowed[field]; !seen {
			order = append(order, field)
		}
		v := complaint.NormalizeText(value)
		if field == complaint.FieldSituation {
			v = string(complaint.NormalizeSituation(value))
		}
		allowed[field] = append(allowed[field], v)
	}
	for _, field := range order {
		sel = sel.WithAllowed(field, allowed[field]...)
	}
	return sel, nil
}

// resolve applies the drill clicks in order on top of sel.
func (f *viewFlags) resolve(sel filter.Selection) (drill.State, drill.Focus, error) {
	state := drill.Initial()
	var focus drill.Focus
	for _, label := range f.drill {
		out, err := state.Click(sel, label)
		if err != nil {
			return drill.State{}, drill.Focus{}, fmt.Errorf("--drill %q: %w", label, err)
		}
		state, focus = out.State, out.Focus
	}
	return state, focus, nil
}

func parseMonth(s string) (time.Month, error) {
	m, ok := complaint.ParseMonthAbbrev(s)
	if !ok {
		return 0, fmt.Errorf("--month %q: unknown month", s)
	}
	return m, nil
}
