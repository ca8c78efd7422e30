package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/qualityrs/internal/auth"
	"github.com/jask/qualityrs/internal/complaint"
	"github.com/jask/qualityrs/internal/config"
	"github.com/jask/qualityrs/internal/database"
	"github.com/jask/qualityrs/internal/database/repository"
	"github.com/jask/qualityrs/internal/drill"
	"github.com/jask/qualityrs/internal/ingest"
	"github.com/jask/qualityrs/internal/service"
	"github.com/jask/qualityrs/internal/testdata"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keySpace = tea.KeyMsg{Type: tea.KeySpace}
)

func testConfig() config.Config {
	var cfg config.Config
	cfg.App.Name = "Qualidade"
	cfg.Report.ReasonLimit = 12
	return cfg
}

func demoApp(t *testing.T, services Services) *App {
	t.Helper()
	ds := testdata.Dataset(7, 240, []int{2023, 2024})
	a := New(context.Background(), testConfig(), auth.Gate{}, services, &Preload{Dataset: ds, Source: "demo.xlsx"})
	require.Equal(t, viewDashboard, a.state)
	return a
}

// press sends msg and runs any returned command once, feeding its message
// back into Update.
func press(t *testing.T, a *App, msg tea.Msg) {
	t.Helper()
	_, cmd := a.Update(msg)
	if cmd == nil {
		return
	}
	if out := cmd(); out != nil {
		if _, ok := out.(tea.BatchMsg); ok {
			return
		}
		a.Update(out)
	}
}

func TestLoginGate(t *testing.T) {
	gate, err := auth.NewGate("segredo", "")
	require.NoError(t, err)
	a := New(context.Background(), testConfig(), gate, Services{}, nil)
	require.Equal(t, viewLogin, a.state)

	a.password.SetValue("errada")
	press(t, a, keyEnter)
	require.Equal(t, viewLogin, a.state)
	require.Contains(t, a.status, auth.ErrInvalidPassword.Error())
	require.False(t, a.session.Authenticated())

	a.password.SetValue("segredo")
	a.Update(keyEnter)
	require.Equal(t, viewImport, a.state)
	require.True(t, a.session.Authenticated())
	require.Empty(t, a.password.Value())
}

func TestDrillWithKeys(t *testing.T) {
	a := demoApp(t, Services{})
	require.Equal(t, drill.LevelYear, a.snap.Level)
	require.Equal(t, []string{"2023", "2024"}, a.snap.Timeline.Labels())

	press(t, a, keyRight)
	require.Equal(t, 1, a.chart.cursor)
	press(t, a, keyEnter)
	require.Equal(t, drill.LevelMonth, a.snap.Level)
	require.Equal(t, "Todos › 2024", a.snap.Breadcrumb())
	require.Equal(t, 0, a.chart.cursor)
	require.Len(t, a.snap.Timeline.Rows, 12)

	press(t, a, keyEnter)
	require.Equal(t, drill.LevelWeek, a.snap.Level)
	require.Equal(t, "Todos › 2024 › Jan", a.snap.Breadcrumb())

	press(t, a, keyEnter)
	require.True(t, a.snap.Focus.Set())
	require.Equal(t, drill.LevelWeek, a.snap.Level)
	require.LessOrEqual(t, a.snap.TableRows.Len(), a.snap.Scoped.Len())

	press(t, a, runes("c"))
	require.False(t, a.snap.Focus.Set())

	press(t, a, runes("b"))
	require.Equal(t, drill.LevelMonth, a.snap.Level)
	press(t, a, runes("r"))
	require.Equal(t, drill.LevelYear, a.snap.Level)
	require.Equal(t, "Todos", a.snap.Breadcrumb())

	view := a.View()
	require.Contains(t, view, "Qualidade")
	require.Contains(t, view, a.snap.Timeline.Title)
}

func TestMouseClickDrills(t *testing.T) {
	a := demoApp(t, Services{})
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	_ = a.View()
	require.Positive(t, a.chartTop)

	x := a.chart.barWidth + barGap
	a.Update(tea.MouseMsg{X: x, Y: a.chartTop + 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.Equal(t, drill.LevelMonth, a.snap.Level)
	require.Equal(t, "Todos › 2024", a.snap.Breadcrumb())

	a.Update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.Equal(t, drill.LevelMonth, a.snap.Level)
}

func TestFilterPanel(t *testing.T) {
	a := demoApp(t, Services{})
	total := a.session.Base().Len()

	press(t, a, runes("f"))
	require.Equal(t, viewFilters, a.state)

	press(t, a, keyRight)
	require.NotNil(t, a.session.Selection().Year)
	require.Equal(t, 2023, *a.session.Selection().Year)
	require.Equal(t, drill.LevelMonth, a.snap.Level)

	press(t, a, keyDown)
	press(t, a, keyRight)
	require.Equal(t, time.January, *a.session.Selection().Month)
	require.Equal(t, drill.LevelWeek, a.snap.Level)

	press(t, a, runes("r"))
	require.True(t, a.session.Selection().IsAll())
	require.Equal(t, total, a.snap.View.Len())

	// move to the first checklist row (status) and drop every value
	press(t, a, keyDown)
	press(t, a, keyDown)
	press(t, a, keyEnter)
	require.Equal(t, modalChecklist, a.modal)
	require.Equal(t, complaint.FieldStatus, a.check.spec.Field)
	require.Contains(t, a.View(), "╭")

	press(t, a, runes("n"))
	require.Zero(t, a.snap.View.Len())
	require.Equal(t, drill.LevelYear, a.snap.Level)

	press(t, a, keySpace)
	first := a.check.values[0]
	require.Equal(t, a.session.Base().Where(func(r complaint.Record) bool { return r.Status == first }).Len(), a.snap.View.Len())

	press(t, a, runes("a"))
	require.Equal(t, total, a.snap.View.Len())

	press(t, a, keyEsc)
	require.Equal(t, modalNone, a.modal)
	press(t, a, keyEsc)
	require.Equal(t, viewDashboard, a.state)
}

func TestFilterPanelAfterNarrowerReload(t *testing.T) {
	a := demoApp(t, Services{})
	press(t, a, runes("f"))
	for range 20 {
		press(t, a, keyDown)
	}
	require.Equal(t, fixedFilterRows+len(a.checklists())-1, a.filterCursor)
	press(t, a, keyEsc)

	fields := complaint.FieldSet(0).With(complaint.FieldStatus).With(complaint.FieldReason)
	narrow := complaint.NewDataset(testdata.Generate(5, 20, []int{2024}, time.UTC), fields)
	press(t, a, importedMsg{imported: service.Imported{ID: "imp-2", Dataset: narrow}, path: "curto.csv"})
	require.Zero(t, a.filterCursor)
	require.Equal(t, "imp-2", a.importID)

	press(t, a, runes("f"))
	require.Len(t, a.checklists(), 2)

	// a cursor left past the shorter list is pulled back onto its last row
	a.filterCursor = 20
	press(t, a, keyEnter)
	require.Equal(t, modalChecklist, a.modal)
	require.Equal(t, complaint.FieldReason, a.check.spec.Field)
	require.Equal(t, fixedFilterRows+1, a.filterCursor)

	press(t, a, keyEsc)
	a.filterCursor = 20
	require.NotPanics(t, func() { _ = a.View() })
	require.Equal(t, fixedFilterRows+1, a.filterCursor)
}

func TestTableView(t *testing.T) {
	a := demoApp(t, Services{})
	press(t, a, runes("t"))
	require.Equal(t, viewTable, a.state)
	require.Len(t, a.rows.Rows(), a.snap.TableRows.Len())
	require.Contains(t, a.View(), "Ocorrências")
	press(t, a, keyEsc)
	require.Equal(t, viewDashboard, a.state)
}

func TestImportExportHistory(t *testing.T) {
	svc := newServiceFixture(t)
	a := New(context.Background(), testConfig(), auth.Gate{}, svc, nil)
	require.Equal(t, viewImport, a.state)

	dir := t.TempDir()
	path := filepath.Join(dir, "reclamacoes.csv")
	data, err := testdata.CSV(testdata.Generate(3, 50, []int{2024}, time.UTC))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	a.path.SetValue(path)
	press(t, a, keyEnter)
	require.Equal(t, viewDashboard, a.state)
	require.Equal(t, "reclamacoes.csv", a.session.Source())
	require.Equal(t, 50, a.session.Base().Len())
	require.NotEmpty(t, a.importID)
	require.Empty(t, svc.Export.ImportID, "the shared service is not mutated")

	press(t, a, runes("x"))
	require.Contains(t, a.status, "relatório salvo")
	entries, err := os.ReadDir(svc.Export.Dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.True(t, strings.HasSuffix(entries[0].Name(), ".xlsx"))

	press(t, a, runes("h"))
	require.Equal(t, viewHistory, a.state)
	require.Len(t, a.history.Imports, 1)
	require.Len(t, a.history.Exports, 1)
	require.Equal(t, a.importID, *a.history.Exports[0].ImportID)
	require.Contains(t, a.View(), "reclamacoes.csv")

	press(t, a, runes("D"))
	require.Equal(t, modalConfirmClear, a.modal)
	press(t, a, runes("n"))
	require.Equal(t, modalNone, a.modal)
	require.Len(t, a.history.Imports, 1)

	press(t, a, runes("D"))
	press(t, a, runes("y"))
	require.Equal(t, "histórico apagado", a.status)
	h, err := svc.History.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Empty(t, h.Imports)
	require.Empty(t, h.Exports)
}

func TestImportFailureKeepsView(t *testing.T) {
	svc := newServiceFixture(t)
	a := New(context.Background(), testConfig(), auth.Gate{}, svc, nil)
	a.path.SetValue(filepath.Join(t.TempDir(), "nao-existe.xlsx"))
	press(t, a, keyEnter)
	require.Equal(t, viewImport, a.state)
	require.Contains(t, a.status, "erro")
	require.False(t, a.session.Loaded())
}

func newServiceFixture(t *testing.T) Services {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	imports := repository.NewImportRepo(db)
	exports := repository.NewExportRepo(db)
	return Services{
		Ingest:      &service.IngestService{Loader: ingest.NewLoader(), Imports: imports},
		Export:      &service.ExportService{Dir: filepath.Join(dir, "out"), Title: "Qualidade", Exports: exports},
		History:     &service.HistoryService{Imports: imports, Exports: exports},
		Maintenance: &service.MaintenanceService{DB: db},
	}
}
