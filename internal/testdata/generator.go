// Package testdata builds sample complaint exports for demos and tests.
package testdata

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/tealeg/xlsx"

	"github.com/jask/qualityrs/internal/complaint"
)

// Headers is the header row written by WriteXLSX and WriteCSV, in the
// order the quality team's export uses.
var Headers = []string{
	"Número",
	"Título",
	"Status",
	"Data de emissão",
	"Motivo Reclamação",
	"Turno",
	"Responsável",
	"Responsável da análise de causa",
	"Categoria",
	"Cliente",
	"Situação",
}

var (
	reasons = []string{
		"Avaria na embalagem",
		"Produto fora de especificação",
		"Atraso na entrega",
		"Quantidade divergente",
		"Contaminação",
		"Rótulo incorreto",
		"Produto vencido",
		"Temperatura inadequada",
		"Documentação incompleta",
		"Peso divergente",
		"Corpo estranho",
		"Lote trocado",
		"Vazamento",
		"Cor fora do padrão",
	}
	shifts     = []string{"1º Turno", "2º Turno", "3º Turno"}
	raisers    = []string{"Ana Souza", "Bruno Lima", "Carla Dias", "Diego Alves"}
	rootCauses = []string{"Produção", "Logística", "Qualidade", "Expedição", "Manutenção"}
	categories = []string{"Produto", "Serviço", "Entrega"}
	clients    = []string{"Mercado Sul", "Atacadão RS", "Super Serra", "Rede Pampa", "Distribuidora Guaíba"}
	statuses   = []string{"Aberta", "Em análise", "Encerrada"}
	situations = []string{"Atrasada", "No prazo", "atrasado", "NO PRAZO", ""}
)

const dateLayout = "02/01/2006"

// Generate returns n deterministic complaints spread over years, all
// emitted in loc.
func Generate(seed int64, n int, years []int, loc *time.Location) []complaint.Record {
	if len(years) == 0 {
		years = []int{time.Now().Year()}
	}
	if loc == nil {
		loc = time.UTC
	}
	rng := rand.New(rand.NewSource(seed))
	pick := func(xs []string) string { return xs[rng.Intn(len(xs))] }

	out := make([]complaint.Record, 0, n)
	for i := 0; i < n; i++ {
		year := years[rng.Intn(len(years))]
		month := time.Month(rng.Intn(12) + 1)
		day := rng.Intn(28) + 1
		out = append(out, complaint.Record{
			ID:        fmt.Sprintf("RC-%d-%04d", year, i+1),
			Title:     "Reclamação " + uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprint(seed, i))).String()[:8],
			Status:    pick(statuses),
			Emitted:   time.Date(year, month, day, rng.Intn(24), 0, 0, 0, loc),
			Reason:    pick(reasons),
			Shift:     pick(shifts),
			RaisedBy:  pick(raisers),
			RootCause: pick(rootCauses),
			Category:  pick(categories),
			Client:    pick(clients),
			Situation: complaint.NormalizeSituation(pick(situations)),
		})
	}
	return out
}

// Dataset wraps Generate into a dataset carrying every field.
func Dataset(seed int64, n int, years []int) complaint.Dataset {
	return complaint.NewDataset(Generate(seed, n, years, time.UTC), complaint.AllFields)
}

func row(r complaint.Record) []string {
	situation := ""
	if r.Situation != complaint.SituationUnknown {
		situation = r.Situation.Label()
	}
	return []string{
		r.ID,
		r.Title,
		r.Status,
		r.Emitted.Format(dateLayout),
		r.Reason,
		r.Shift,
		r.RaisedBy,
		r.RootCause,
		r.Category,
		r.Client,
		situation,
	}
}

// WriteCSV writes records with Headers as a semicolon separated file, the
// way spreadsheet tools in pt-BR locales export.
func WriteCSV(w io.Writer, records []complaint.Record) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	if err := cw.Write(Headers); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(row(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes records into sheet. Emission dates are stored as Excel
// serials when serials is true, as dd/mm/yyyy text otherwise.
func WriteXLSX(w io.Writer, sheetName string, records []complaint.Record, serials bool) error {
	book := xlsx.NewFile()
	sheet, err := book.AddSheet(sheetName)
	if err != nil {
		return err
	}
	header := sheet.AddRow()
	for _, h := range Headers {
		header.AddCell().SetString(h)
	}
	for _, r := range records {
		xr := sheet.AddRow()
		for i, v := range row(r) {
			c := xr.AddCell()
			if i == 3 && serials {
				c.SetFloat(xlsx.TimeToExcelTime(r.Emitted))
				continue
			}
			c.SetString(v)
		}
	}
	return book.Write(w)
}

// XLSX is WriteXLSX into memory.
func XLSX(sheetName string, records []complaint.Record, serials bool) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, sheetName, records, serials); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CSV is WriteCSV into memory.
func CSV(records []complaint.Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
