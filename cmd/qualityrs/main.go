package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata" // source.timezone must resolve on hosts without zoneinfo

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/qualityrs/internal/commands"
	"github.com/jask/qualityrs/internal/config"
	"github.com/jask/qualityrs/internal/database/repository"
	"github.com/jask/qualityrs/internal/service"
	"github.com/jask/qualityrs/internal/testdata"
	"github.com/jask/qualityrs/internal/tui"
)

var version = "dev"

func main() {
	var (
		demo bool
		file string
	)
	root := &cobra.Command{
		Use:   "qualityrs",
		Short: "Quality complaints dashboard",
		Long: `qualityrs loads the complaints spreadsheet exported by the quality system
and opens an interactive dashboard: KPIs, a Year > Month > Week drill-down,
reason and responsible charts, filters, and xlsx/pdf exports.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd.Context(), demo, file)
		},
	}
	root.Flags().BoolVar(&demo, "demo", false, "start with a generated sample dataset")
	root.Flags().StringVarP(&file, "file", "f", "", "load this file right after login")

	root.AddCommand(
		commands.NewSummaryCmd(),
		commands.NewExportCmd(),
		commands.NewHistoryCmd(),
		commands.NewHashPasswordCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runDashboard(ctx context.Context, demo bool, file string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Log.Path), 0o755); err != nil {
		return fmt.Errorf("mkdir log dir: %w", err)
	}
	logFile, err := tea.LogToFile(cfg.Log.Path, "qualityrs")
	if err != nil {
		return fmt.Errorf("log file: %w", err)
	}
	defer logFile.Close()
	commands.SetupLogging(cfg, logFile)

	gate, err := commands.DashboardGate(cfg, demo)
	if err != nil {
		return err
	}

	loader, err := commands.NewLoader(cfg)
	if err != nil {
		return err
	}
	db, err := commands.OpenStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	imports := repository.NewImportRepo(db)
	exports := repository.NewExportRepo(db)
	services := tui.Services{
		Ingest:      &service.IngestService{Loader: loader, Imports: imports},
		Export:      &service.ExportService{Dir: cfg.Export.Dir, Title: cfg.App.Name, Exports: exports},
		History:     &service.HistoryService{Imports: imports, Exports: exports},
		Maintenance: &service.MaintenanceService{DB: db},
	}

	var preload *tui.Preload
	switch {
	case file != "":
		preload = &tui.Preload{Path: file}
	case demo:
		now := time.Now().Year()
		preload = &tui.Preload{Dataset: testdata.Dataset(int64(now), 600, []int{now - 2, now - 1, now}), Source: "demo"}
	}

	p := tea.NewProgram(tui.New(ctx, cfg, gate, services, preload), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}
