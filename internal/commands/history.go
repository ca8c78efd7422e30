package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jask/qualityrs/internal/database/repository"
	"github.com/jask/qualityrs/internal/service"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	var (
		limit  int
		wipe   bool
		format string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent imports and exports from the activity log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
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
			if wipe {
				m := &service.MaintenanceService{DB: db}
				if err := m.ClearHistory(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), color.YellowString("histórico apagado"))
				return nil
			}
			svc := &service.HistoryService{Imports: repository.NewImportRepo(db), Exports: repository.NewExportRepo(db)}
			h, err := svc.Recent(ctx, limit)
			if err != nil {
				return err
			}
			return writeHistory(cmd.OutOrStdout(), format, h)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "entries per section")
	cmd.Flags().BoolVar(&wipe, "clear", false, "delete the whole activity log")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text or yaml")
	return cmd
}

type historyDoc struct {
	Imports []importDoc `yaml:"imports"`
	Exports []exportDoc `yaml:"exports"`
}

type importDoc struct {
	ID          string `yaml:"id"`
	FileName    string `yaml:"file_name"`
	Format      string `yaml:"format"`
	Sheet       string `yaml:"sheet,omitempty"`
	RowsLoaded  int    `yaml:"rows_loaded"`
	RowsDropped int    `yaml:"rows_dropped"`
	ImportedAt  string `yaml:"imported_at"`
}

type exportDoc struct {
	ID        string `yaml:"id"`
	ImportID  string `yaml:"import_id,omitempty"`
	Kind      string `yaml:"kind"`
	FileName  string `yaml:"file_name"`
	Rows      int    `yaml:"rows"`
	Filters   string `yaml:"filters"`
	CreatedAt string `yaml:"created_at"`
}

const historyTimeLayout = "2006-01-02 15:04:05"

func writeHistory(w io.Writer, format string, h service.History) error {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		doc := historyDoc{Imports: []importDoc{}, Exports: []exportDoc{}}
		for _, im := range h.Imports {
			doc.Imports = append(doc.Imports, importDoc{
				ID: im.ID, FileName: im.FileName, Format: im.Format, Sheet: im.Sheet,
				RowsLoaded: im.RowsLoaded, RowsDropped: im.RowsDropped,
				ImportedAt: im.ImportedAt.Local().Format(historyTimeLayout),
			})
		}
		for _, ex := range h.Exports {
			d := exportDoc{
				ID: ex.ID, Kind: ex.Kind, FileName: ex.FileName, Rows: ex.Rows,
				Filters: ex.Filters, CreatedAt: ex.CreatedAt.Local().Format(historyTimeLayout),
			}
			if ex.ImportID != nil {
				d.ImportID = *ex.ImportID
			}
			doc.Exports = append(doc.Exports, d)
		}
		out, err := yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("encoding history: %w", err)
		}
		_, err = w.Write(out)
		return err
	case "text", "":
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}

	bold := color.New(color.Bold)
	_, _ = bold.Fprintln(w, "Importações:")
	if len(h.Imports) == 0 {
		fmt.Fprintln(w, "  nenhuma")
	}
	for _, im := range h.Imports {
		fmt.Fprintf(w, "  %s  %-32s %-4s %6d linhas  %s\n",
			im.ImportedAt.Local().Format(historyTimeLayout), im.FileName, im.Format, im.RowsLoaded,
			color.YellowString("%d descartadas", im.RowsDropped))
	}
	fmt.Fprintln(w)
	_, _ = bold.Fprintln(w, "Exportações:")
	if len(h.Exports) == 0 {
		fmt.Fprintln(w, "  nenhuma")
	}
	for _, ex := range h.Exports {
		fmt.Fprintf(w, "  %s  %-4s %-44s %6d linhas  %s\n",
			ex.CreatedAt.Local().Format(historyTimeLayout), ex.Kind, ex.FileName, ex.Rows, ex.Filters)
	}
	return nil
}
