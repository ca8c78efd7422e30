package report

import (
	"bytes"
	"strconv"
	"testing"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/stretchr/testify/require"

	"github.com/jask/qualityrs/internal/dashboard"
	"github.com/jask/qualityrs/internal/drill"
	"github.com/jask/qualityrs/internal/filter"
	"github.com/jask/qualityrs/internal/testdata"
)

func sampleSnapshot(t *testing.T) dashboard.Snapshot {
	t.Helper()
	base := testdata.Dataset(42, 120, []int{2023, 2024})
	y := 2024
	sel := filter.NewSelection().WithYear(&y)
	return dashboard.Compute(base, "reclamacoes.xlsx", sel, drill.Initial(), drill.Focus{}, 12)
}

func TestFileName(t *testing.T) {
	now := time.Date(2024, time.March, 5, 9, 7, 3, 0, time.UTC)
	require.Equal(t, "indicadores_qualidade_20240305_090703.xlsx", FileName(KindXLSX, now))
	require.Equal(t, "indicadores_qualidade_20240305_090703.pdf", FileName(KindPDF, now))
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("pdf")
	require.NoError(t, err)
	require.Equal(t, KindPDF, k)
	_, err = ParseKind("docx")
	require.Error(t, err)
}

func TestWorkbook(t *testing.T) {
	snap := sampleSnapshot(t)
	require.Equal(t, drill.LevelMonth, snap.Level)

	data, err := Workbook(snap, Options{Title: "Qualidade", Now: time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)

	names := map[string]bool{}
	for _, n := range f.GetSheetMap() {
		names[n] = true
	}
	for _, want := range []string{SheetSummary, SheetTables, SheetCharts, SheetRecords} {
		require.True(t, names[want], want)
	}

	require.Equal(t, "Qualidade", f.GetCellValue(SheetSummary, "A1"))
	require.Equal(t, "01/04/2024 08:00:00", f.GetCellValue(SheetSummary, "B3"))
	require.Equal(t, "Ano=2024 | Mês=Todos", f.GetCellValue(SheetSummary, "B5"))

	require.Equal(t, snap.Timeline.Title, f.GetCellValue(SheetTables, "A1"))
	require.Equal(t, "Jan", f.GetCellValue(SheetTables, "A3"))
	require.Equal(t, "Dez", f.GetCellValue(SheetTables, "A14"))

	require.Equal(t, "Número", f.GetCellValue(SheetRecords, "A1"))
	require.Equal(t, snap.TableRows.At(0).ID, f.GetCellValue(SheetRecords, "A2"))
	last := "A" + strconv.Itoa(snap.TableRows.Len()+1)
	require.NotEmpty(t, f.GetCellValue(SheetRecords, last))
	require.Empty(t, f.GetCellValue(SheetRecords, "A"+strconv.Itoa(snap.TableRows.Len()+2)))
}

func TestWorkbookEmptySelection(t *testing.T) {
	base := testdata.Dataset(1, 10, []int{2024})
	y := 1999
	snap := dashboard.Compute(base, "x.csv", filter.NewSelection().WithYear(&y), drill.Initial(), drill.Focus{}, 12)
	require.Zero(t, snap.TableRows.Len())

	data, err := Workbook(snap, Options{})
	require.NoError(t, err)
	require.NotEmpty(t, data)
}

func TestPDF(t *testing.T) {
	data, err := PDF(sampleSnapshot(t), Options{Now: time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	require.Contains(t, string(data), "%%EOF")
}

func TestRenderDispatch(t *testing.T) {
	snap := sampleSnapshot(t)
	for _, k := range []Kind{KindXLSX, KindPDF} {
		data, err := Render(k, snap, Options{})
		require.NoError(t, err)
		require.NotEmpty(t, data)
	}
	_, err := Render(Kind("odt"), snap, Options{})
	require.ErrorIs(t, err, ErrExport)
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "Jan", truncate("Jan", 20))
	require.Equal(t, "Produto f…", truncate("Produto fora de especificação", 13.5))
}
