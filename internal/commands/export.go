package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jask/qualityrs/internal/dashboard"
	"github.com/jask/qualityrs/internal/database/repository"
	"github.com/jask/qualityrs/internal/report"
	"github.com/jask/qualityrs/internal/service"
)

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	var (
		flags viewFlags
		kind  string
		dir   string
	)
	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Write the xlsx report and/or pdf snapshot for a complaints file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds, err := parseKinds(kind)
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if dir != "" {
				cfg.Export.Dir = dir
			}
			loader, err := NewLoader(cfg)
			if err != nil {
				return err
			}
			db, err := OpenStore(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			sel, err := flags.selection()
			if err != nil {
				return err
			}
			state, focus, err := flags.resolve(sel)
			if err != nil {
				return err
			}

			ingester := &service.IngestService{Loader: loader, Imports: repository.NewImportRepo(db)}
			imp, err := ingester.ImportFile(ctx, args[0])
			if err != nil {
				return err
			}
			snap := dashboard.Compute(imp.Dataset, filepath.Base(args[0]), sel, state, focus, cfg.Report.ReasonLimit)

			exporter := &service.ExportService{
				Dir:      cfg.Export.Dir,
				Title:    cfg.App.Name,
				Exports:  repository.NewExportRepo(db),
				ImportID: imp.ID,
			}
			out := cmd.OutOrStdout()
			for _, k := range kinds {
				res, err := exporter.Export(ctx, k, snap)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s %s (%d linhas)\n", color.GreenString("✔"), res.Path, res.Rows)
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&kind, "kind", "all", "report kind: xlsx, pdf or all")
	cmd.Flags().StringVar(&dir, "dir", "", "output directory (defaults to export.dir)")
	return cmd
}

func parseKinds(s string) ([]report.Kind, error) {
	if strings.EqualFold(strings.TrimSpace(s), "all") {
		return []report.Kind{report.KindXLSX, report.KindPDF}, nil
	}
	k, err := report.ParseKind(s)
	if err != nil {
		return nil, err
	}
	return []report.Kind{k}, nil
}
