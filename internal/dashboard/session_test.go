package dashboard

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/qualityrs/internal/aggregate"
	"github.com/jask/qualityrs/internal/auth"
	"github.com/jask/qualityrs/internal/complaint"
	"github.com/jask/qualityrs/internal/drill"
	"github.com/jask/qualityrs/internal/filter"
)

func marchRecords() []complaint.Record {
	var recs []complaint.Record
	for i, d := range []int{1, 3, 8, 9, 10, 14, 16, 20, 29, 30} {
		recs = append(recs, complaint.Record{
			ID:        fmt.Sprintf("RC-%02d", i),
			Emitted:   time.Date(2024, time.March, d, 8, 0, 0, 0, time.UTC),
			Reason:    fmt.Sprintf("motivo-%d", i%3),
			RootCause: []string{"Produção", "Logística"}[i%2],
		})
	}
	recs = append(recs, complaint.Record{ID: "RC-old", Emitted: time.Date(2023, time.July, 2, 0, 0, 0, 0, time.UTC)})
	return recs
}

func openSession(t *testing.T) *Session {
	t.Helper()
	gate, err := auth.NewGate("QualidadeRS", "")
	require.NoError(t, err)
	s := NewSession(aggregate.DefaultReasonLimit)
	require.NoError(t, s.Login(gate, "QualidadeRS"))
	require.NoError(t, s.Load(complaint.NewDataset(marchRecords(), complaint.AllFields), "sample.xlsx"))
	return s
}

func TestSessionLocked(t *testing.T) {
	gate, err := auth.NewGate("QualidadeRS", "")
	require.NoError(t, err)
	s := NewSession(12)
	require.ErrorIs(t, s.Load(complaint.NewDataset(nil, complaint.AllFields), "x"), ErrLocked)
	_, err = s.Snapshot()
	require.ErrorIs(t, err, ErrLocked)
	require.ErrorIs(t, s.Login(gate, "wrong"), auth.ErrInvalidPassword)
	require.False(t, s.Authenticated())

	require.NoError(t, s.Login(gate, "QualidadeRS"))
	_, err = s.Snapshot()
	require.ErrorIs(t, err, ErrNoData)
}

func TestSessionFocusNarrowsTableOnly(t *testing.T) {
	s := openSession(t)
	s.Click("2024")
	s.Click("Mar")
	snap, err := s.Snapshot()
	require.NoError(t, err)
	require.Equal(t, drill.LevelWeek, snap.Level)
	require.Equal(t, 10, snap.Scoped.Len())
	require.Equal(t, "Todos › 2024 › Mar", snap.Breadcrumb())

	s.Click("2ª")
	snap, err = s.Snapshot()
	require.NoError(t, err)
	require.Equal(t, drill.LevelWeek, snap.Level, "week is the deepest level")
	require.Equal(t, 4, snap.TableRows.Len())
	require.Equal(t, 10, snap.Reasons.Total(), "charts use the drill-scoped subset")
	require.Equal(t, 10, snap.Responsible.Total())
	require.Equal(t, 10, snap.Timeline.Total())
	require.Contains(t, snap.Breadcrumb(), "Semana 2ª")
}

func TestSessionBackClearsFocus(t *testing.T) {
	s := openSession(t)
	s.Click("2024")
	s.Click("Mar")
	s.Click("3ª")
	require.True(t, s.Focus().Set())

	require.True(t, s.Back())
	require.False(t, s.Focus().Set())
	require.Equal(t, drill.LevelMonth, s.State().Level)

	require.True(t, s.Back())
	require.Equal(t, drill.LevelYear, s.State().Level)
	require.Nil(t, s.State().Year)
	require.False(t, s.CanBack())
	require.False(t, s.Back())
}

func TestSessionResetIsIdempotent(t *testing.T) {
	s := openSession(t)
	s.Click("2024")
	s.Click("Mar")
	s.Click("1ª")
	for i := 0; i < 2; i++ {
		s.Reset()
		require.Equal(t, drill.Initial(), s.State())
		require.Equal(t, drill.Focus{}, s.Focus())
	}
}

func TestSessionIgnoresBadClick(t *testing.T) {
	s := openSession(t)
	s.Click("2024")
	before := s.State()
	s.Click("Foo")
	require.Equal(t, before, s.State())
	require.False(t, s.Focus().Set())
}

func TestSessionSelectionChangeResetsDrill(t *testing.T) {
	s := openSession(t)
	s.Click("2024")
	require.Equal(t, drill.LevelMonth, s.State().Level)

	s.SetSelection(s.Selection().WithSingle("Ana"))
	require.Equal(t, drill.LevelMonth, s.State().Level, "non-calendar filters keep the drill")

	y := 2023
	s.SetSelection(s.Selection().WithYear(&y))
	require.Equal(t, drill.Initial(), s.State())

	snap, err := s.Snapshot()
	require.NoError(t, err)
	require.Equal(t, drill.LevelMonth, snap.Level)
	require.Zero(t, snap.Summary.Occurrences, "Ana raised nothing")
}

func TestSnapshotLatenessUsesReferenceYear(t *testing.T) {
	recs := marchRecords()
	recs[0].Situation = complaint.SituationLate
	recs[1].Situation = complaint.SituationLate
	recs[10].Situation = complaint.SituationLate
	base := complaint.NewDataset(recs, complaint.AllFields)

	sel := filter.NewSelection().WithAllowed(complaint.FieldRootCause)
	snap := Compute(base, "x", sel, drill.Initial(), drill.Focus{}, 12)
	require.Zero(t, snap.View.Len(), "empty checklist suppresses the view")
	require.Equal(t, 2024, snap.Summary.ReferenceYear)
	require.Equal(t, 2, snap.Lateness.Total(), "lateness reads the base dataset")
	require.Len(t, snap.Charts(), 4)
}
