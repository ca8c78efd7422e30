package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jask/qualityrs/internal/auth"
	"github.com/jask/qualityrs/internal/complaint"
	"github.com/jask/qualityrs/internal/config"
	"github.com/jask/qualityrs/internal/drill"
	"github.com/jask/qualityrs/internal/testdata"
)

// isolate points config, database and exports at a temp HOME.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("QUALITYRS_CONFIG", filepath.Join(home, "config.toml"))
	t.Setenv("QUALITYRS_SOURCE_TIMEZONE", "UTC")
	t.Setenv("QUALITYRS_LOG_LEVEL", "error")
	return home
}

func writeSample(t *testing.T, dir string, n int, years []int) string {
	t.Helper()
	data, err := testdata.CSV(testdata.Generate(11, n, years, time.UTC))
	require.NoError(t, err)
	path := filepath.Join(dir, "reclamacoes.csv")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestViewFlagsSelection(t *testing.T) {
	f := viewFlags{
		year:  2024,
		month: "fev",
		only:  []string{"status=Aberta", "status= Encerrada ", "situation=em atraso"},
	}
	sel, err := f.selection()
	require.NoError(t, err)
	require.Equal(t, 2024, *sel.Year)
	require.Equal(t, time.February, *sel.Month)

	set, ok := sel.Allowed(complaint.FieldStatus)
	require.True(t, ok)
	require.Equal(t, []string{"Aberta", "Encerrada"}, set.Values())
	require.True(t, sel.Selected(complaint.FieldSituation, string(complaint.SituationLate)))
	require.False(t, sel.Selected(complaint.FieldSituation, string(complaint.SituationOnTime)))

	_, err = (&viewFlags{only: []string{"color=red"}}).selection()
	require.ErrorContains(t, err, "unknown field")
	_, err = (&viewFlags{only: []string{"status"}}).selection()
	require.ErrorContains(t, err, "field=value")
	_, err = (&viewFlags{month: "13"}).selection()
	require.Error(t, err)
}

func TestViewFlagsDrill(t *testing.T) {
	f := viewFlags{drill: []string{"2024", "Mar"}}
	sel, err := f.selection()
	require.NoError(t, err)
	state, focus, err := f.resolve(sel)
	require.NoError(t, err)
	require.Equal(t, drill.LevelWeek, state.Level)
	require.Equal(t, 2024, *state.Year)
	require.Equal(t, time.March, *state.Month)
	require.False(t, focus.Set())

	f.drill = append(f.drill, "2ª")
	_, focus, err = f.resolve(sel)
	require.NoError(t, err)
	require.True(t, focus.Set())

	_, _, err = (&viewFlags{drill: []string{"ontem"}}).resolve(sel)
	require.ErrorIs(t, err, drill.ErrInvalidClick)
}

func TestSummaryCmdYAML(t *testing.T) {
	home := isolate(t)
	path := writeSample(t, home, 80, []int{2023, 2024})

	var out bytes.Buffer
	cmd := NewSummaryCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path, "--format", "yaml", "--year", "2024"})
	require.NoError(t, cmd.Execute())

	var doc summaryDoc
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &doc))
	require.Equal(t, "reclamacoes.csv", doc.Source)
	require.Equal(t, 80, doc.Rows)
	require.Equal(t, "Ano=2024 | Mês=Todos", doc.Filters)
	require.Equal(t, "Mês", doc.Level)
	require.Equal(t, "Todos › 2024", doc.Breadcrumb)
	require.Len(t, doc.KPIs, 7)
	require.Len(t, doc.Tables, 6)
	require.Len(t, doc.Tables[0].Rows, 12)
}

func TestSummaryCmdText(t *testing.T) {
	home := isolate(t)
	path := writeSample(t, home, 30, []int{2024})

	var out bytes.Buffer
	cmd := NewSummaryCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path})
	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "Indicadores:")
	require.Contains(t, out.String(), "Principais motivos:")

	cmd = NewSummaryCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{path, "--format", "json"})
	require.ErrorContains(t, cmd.Execute(), "unsupported format")
}

func TestExportAndHistoryCmds(t *testing.T) {
	home := isolate(t)
	path := writeSample(t, home, 40, []int{2024})
	outDir := filepath.Join(home, "out")

	var out bytes.Buffer
	cmd := NewExportCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path, "--kind", "all", "--dir", outDir, "--drill", "2024", "--drill", "Mar"})
	require.NoError(t, cmd.Execute())

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		require.True(t, strings.HasPrefix(e.Name(), "indicadores_qualidade_"))
	}

	out.Reset()
	cmd = NewHistoryCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--format", "yaml"})
	require.NoError(t, cmd.Execute())
	var doc historyDoc
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &doc))
	require.Len(t, doc.Imports, 1)
	require.Len(t, doc.Exports, 2)
	require.Equal(t, doc.Imports[0].ID, doc.Exports[0].ImportID)
	require.Equal(t, "reclamacoes.csv", doc.Imports[0].FileName)

	out.Reset()
	cmd = NewHistoryCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--clear"})
	require.NoError(t, cmd.Execute())

	out.Reset()
	cmd = NewHistoryCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	require.Equal(t, 2, strings.Count(out.String(), "nenhuma"))
}

func TestExportCmdRejectsKind(t *testing.T) {
	isolate(t)
	cmd := NewExportCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"x.csv", "--kind", "docx"})
	require.Error(t, cmd.Execute())
}

func TestHashPasswordCmd(t *testing.T) {
	isolate(t)
	var out bytes.Buffer
	cmd := NewHashPasswordCmd()
	cmd.SetIn(strings.NewReader("segredo\n"))
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	gate, err := auth.NewGate("", strings.TrimSpace(out.String()))
	require.NoError(t, err)
	require.NoError(t, gate.Check("segredo"))
	require.ErrorIs(t, gate.Check("outra"), auth.ErrInvalidPassword)
}

func TestDashboardGateNeedsSecret(t *testing.T) {
	var cfg config.Config

	_, err := DashboardGate(cfg, false)
	require.ErrorIs(t, err, ErrNoSecret)

	gate, err := DashboardGate(cfg, true)
	require.NoError(t, err)
	require.True(t, gate.Open())

	cfg.Auth.Password = "segredo"
	gate, err = DashboardGate(cfg, false)
	require.NoError(t, err)
	require.False(t, gate.Open())
	require.NoError(t, gate.Check("segredo"))
}
