package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/qualityrs/internal/complaint"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sample() complaint.Dataset {
	return complaint.NewDataset([]complaint.Record{
		{ID: "1", Emitted: day(2023, time.December, 4), RaisedBy: "Ana", RootCause: "Produção", Category: "Embalagem", Situation: complaint.SituationLate},
		{ID: "2", Emitted: day(2024, time.January, 2), RaisedBy: "Ana", RootCause: "Logística", Category: "Transporte", Situation: complaint.SituationOnTime},
		{ID: "3", Emitted: day(2024, time.January, 20), RaisedBy: "Bruno", RootCause: "Produção", Category: "Embalagem"},
		{ID: "4", Emitted: day(2024, time.February, 9), RaisedBy: "Carla", RootCause: "Qualidade", Category: "Rotulagem", Situation: complaint.SituationLate},
	}, complaint.AllFields)
}

func ids(ds complaint.Dataset) []string {
	out := make([]string, 0, ds.Len())
	for _, r := range ds.Records() {
		out = append(out, r.ID)
	}
	return out
}

func intp(v int) *int { return &v }

func monthp(m time.Month) *time.Month { return &m }

func TestApplyIdentity(t *testing.T) {
	base := sample()
	got := Apply(base, NewSelection())
	require.Equal(t, ids(base), ids(got))
}

func TestApplyEmptyChecklistSuppressesEverything(t *testing.T) {
	base := sample()
	for _, spec := range Checklists() {
		sel := NewSelection().WithYear(intp(2024)).WithAllowed(spec.Field)
		require.Zero(t, Apply(base, sel).Len(), "field %s", spec.Field)
	}
}

func TestApplyEmptyChecklistOnAbsentFieldIsSkipped(t *testing.T) {
	fields := complaint.AllFields &^ (1 << complaint.FieldCategory)
	base := complaint.NewDataset(sample().Records(), fields)
	got := Apply(base, NewSelection().WithAllowed(complaint.FieldCategory))
	require.Equal(t, 4, got.Len())
}

func TestApplyYearAndMonthIndependently(t *testing.T) {
	base := sample()

	require.Equal(t, []string{"2", "3", "4"}, ids(Apply(base, NewSelection().WithYear(intp(2024)))))
	require.Equal(t, []string{"2", "3"}, ids(Apply(base, NewSelection().WithMonth(monthp(time.January)))))
	require.Equal(t, []string{"4"}, ids(Apply(base, NewSelection().WithYear(intp(2024)).WithMonth(monthp(time.February)))))
	require.Empty(t, ids(Apply(base, NewSelection().WithYear(intp(2023)).WithMonth(monthp(time.January)))))
}

func TestApplySingleAndChecklists(t *testing.T) {
	base := sample()

	require.Equal(t, []string{"1", "2"}, ids(Apply(base, NewSelection().WithSingle("Ana"))))

	sel := NewSelection().WithAllowed(complaint.FieldRootCause, "Produção", "Qualidade")
	require.Equal(t, []string{"1", "3", "4"}, ids(Apply(base, sel)))

	sel = sel.WithAllowed(complaint.FieldSituation, string(complaint.SituationLate))
	require.Equal(t, []string{"1", "4"}, ids(Apply(base, sel)))

	sel = sel.WithSingle("Carla")
	require.Equal(t, []string{"4"}, ids(Apply(base, sel)))
}

func TestSelectionIsValue(t *testing.T) {
	a := NewSelection().WithAllowed(complaint.FieldReason, "x")
	b := a.WithAllowed(complaint.FieldReason, "y")
	setA, ok := a.Allowed(complaint.FieldReason)
	require.True(t, ok)
	require.Equal(t, []string{"x"}, setA.Values())
	setB, _ := b.Allowed(complaint.FieldReason)
	require.Equal(t, []string{"y"}, setB.Values())
}

func TestToggle(t *testing.T) {
	universe := []string{"A", "B", "C"}
	sel := NewSelection().Toggle(complaint.FieldShift, "B", universe)
	require.False(t, sel.Selected(complaint.FieldShift, "B"))
	require.True(t, sel.Selected(complaint.FieldShift, "A"))

	sel = sel.Toggle(complaint.FieldShift, "B", universe)
	_, explicit := sel.Allowed(complaint.FieldShift)
	require.False(t, explicit, "toggling back to full coverage restores all")
	require.True(t, sel.IsAll())
}

func TestSameCalendarAndDescribe(t *testing.T) {
	a := NewSelection().WithYear(intp(2024))
	require.True(t, a.SameCalendar(NewSelection().WithYear(intp(2024)).WithSingle("Ana")))
	require.False(t, a.SameCalendar(a.WithMonth(monthp(time.March))))

	desc := a.WithMonth(monthp(time.March)).WithAllowed(complaint.FieldShift).Describe()
	require.Contains(t, desc, "Ano=2024")
	require.Contains(t, desc, "Mês=Mar")
	require.Contains(t, desc, "Turno=(nenhum)")
}
