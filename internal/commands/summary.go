package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jask/qualityrs/internal/aggregate"
	"github.com/jask/qualityrs/internal/dashboard"
	"github.com/jask/qualityrs/internal/ingest"
	"github.com/jask/qualityrs/internal/report"
)

// NewSummaryCmd creates the summary command.
func NewSummaryCmd() *cobra.Command {
	var (
		flags  viewFlags
		format string
	)
	cmd := &cobra.Command{
		Use:   "summary FILE",
		Short: "Print KPIs and aggregate tables for a complaints file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			loader, err := NewLoader(cfg)
			if err != nil {
				return err
			}
			snap, res, err := computeSnapshot(cmd.Context(), loader, args[0], &flags, cfg.Report.ReasonLimit)
			if err != nil {
				return err
			}
			return writeSummary(cmd.OutOrStdout(), format, snap, res)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&format, "format", "text", "output format: text or yaml")
	return cmd
}

// computeSnapshot loads path and derives the snapshot for the flags.
func computeSnapshot(ctx context.Context, loader *ingest.Loader, path string, flags *viewFlags, reasonLimit int) (dashboard.Snapshot, ingest.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	sel, err := flags.selection()
	if err != nil {
		return dashboard.Snapshot{}, ingest.Result{}, err
	}
	state, focus, err := flags.resolve(sel)
	if err != nil {
		return dashboard.Snapshot{}, ingest.Result{}, err
	}
	ds, res, err := loader.LoadFile(ctx, path)
	if err != nil {
		return dashboard.Snapshot{}, ingest.Result{}, err
	}
	return dashboard.Compute(ds, filepath.Base(path), sel, state, focus, reasonLimit), res, nil
}

type summaryDoc struct {
	Source     string     `yaml:"source"`
	Rows       int        `yaml:"rows"`
	Dropped    int        `yaml:"dropped"`
	Filters    string     `yaml:"filters"`
	Breadcrumb string     `yaml:"breadcrumb"`
	Level      string     `yaml:"level"`
	KPIs       []kpiDoc   `yaml:"kpis"`
	Tables     []tableDoc `yaml:"tables"`
}

type kpiDoc struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

type tableDoc struct {
	Title string   `yaml:"title"`
	Rows  []rowDoc `yaml:"rows"`
}

type rowDoc struct {
	Label string `yaml:"label"`
	Count int    `yaml:"count"`
}

func summaryTables(snap dashboard.Snapshot) []aggregate.Table {
	return append(snap.Charts(), snap.Categories, snap.Situations)
}

func newSummaryDoc(snap dashboard.Snapshot, res ingest.Result) summaryDoc {
	doc := summaryDoc{
		Source:     snap.Source,
		Rows:       res.Rows,
		Dropped:    res.Dropped,
		Filters:    snap.Selection.Describe(),
		Breadcrumb: snap.Breadcrumb(),
		Level:      snap.Level.Label(),
	}
	for _, k := range report.KPIs(snap) {
		doc.KPIs = append(doc.KPIs, kpiDoc{Name: k[0], Value: k[1]})
	}
	for _, t := range summaryTables(snap) {
		td := tableDoc{Title: t.Title, Rows: []rowDoc{}}
		for _, r := range t.Rows {
			td.Rows = append(td.Rows, rowDoc{Label: r.Label, Count: r.Count})
		}
		doc.Tables = append(doc.Tables, td)
	}
	return doc
}

func writeSummary(w io.Writer, format string, snap dashboard.Snapshot, res ingest.Result) error {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newSummaryDoc(snap, res)); err != nil {
			return fmt.Errorf("encoding summary: %w", err)
		}
		return enc.Close()
	case "text", "":
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}

	bold := color.New(color.Bold)
	_, _ = bold.Fprintf(w, "%s\n", snap.Source)
	fmt.Fprintf(w, "  %d linhas carregadas, %d descartadas\n", res.Rows, res.Dropped)
	fmt.Fprintf(w, "  Filtros: %s\n", snap.Selection.Describe())
	fmt.Fprintf(w, "  Caminho: %s (%s)\n\n", snap.Breadcrumb(), snap.Level.Label())

	_, _ = bold.Fprintln(w, "Indicadores:")
	for _, k := range report.KPIs(snap) {
		value := k[1]
		if k[0] == "Atrasadas" && snap.Summary.Late > 0 {
			value = color.RedString(value)
		}
		fmt.Fprintf(w, "  %-20s %s\n", k[0], value)
	}

	for _, t := range summaryTables(snap) {
		fmt.Fprintln(w)
		_, _ = bold.Fprintln(w, t.Title+":")
		if len(t.Rows) == 0 {
			fmt.Fprintln(w, "  "+color.YellowString("(sem dados)"))
			continue
		}
		for _, r := range t.Rows {
			fmt.Fprintf(w, "  %-32s %6d\n", r.Label, r.Count)
		}
	}
	return nil
}
