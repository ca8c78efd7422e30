package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/jask/qualityrs/internal/dashboard"
	"github.com/jask/qualityrs/internal/database"
	"github.com/jask/qualityrs/internal/database/repository"
	"github.com/jask/qualityrs/internal/report"
)

// ExportService writes report files into Dir and logs them.
type ExportService struct {
	Dir     string
	Title   string
	Exports *repository.ExportRepo
	Now     func() time.Time

	// ImportID links exports to the dataset they were cut from.
	ImportID string
}

// Exported describes a written report.
type Exported struct {
	ID   string
	Kind report.Kind
	Path string
	Rows int
}

func (s *ExportService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ExportWorkbook writes the xlsx report for snap.
func (s *ExportService) ExportWorkbook(ctx context.Context, snap dashboard.Snapshot) (Exported, error) {
	return s.Export(ctx, report.KindXLSX, snap)
}

// ExportPDF writes the pdf snapshot for snap.
func (s *ExportService) ExportPDF(ctx context.Context, snap dashboard.Snapshot) (Exported, error) {
	return s.Export(ctx, report.KindPDF, snap)
}

// Export renders snap as kind, linked to s.ImportID.
func (s *ExportService) Export(ctx context.Context, kind report.Kind, snap dashboard.Snapshot) (Exported, error) {
	return s.ExportFor(ctx, s.ImportID, kind, snap)
}

// ExportFor renders snap as kind and logs it against importID. The log row
// is written only once the file is in place; a failed render, rename or log
// write leaves neither a file nor a row behind.
func (s *ExportService) ExportFor(ctx context.Context, importID string, kind report.Kind, snap dashboard.Snapshot) (Exported, error) {
	now := s.now()
	data, err := report.Render(kind, snap, report.Options{Title: s.Title, Now: now})
	if err != nil {
		return Exported{}, err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return Exported{}, fmt.Errorf("%w: mkdir export dir: %v", report.ErrExport, err)
	}

	name := report.FileName(kind, now)
	path := filepath.Join(s.Dir, name)
	tmp, err := os.CreateTemp(s.Dir, "."+name+".*")
	if err != nil {
		return Exported{}, fmt.Errorf("%w: %v", report.ErrExport, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return Exported{}, fmt.Errorf("%w: %v", report.ErrExport, err)
	}
	if err := tmp.Close(); err != nil {
		return Exported{}, fmt.Errorf("%w: %v", report.ErrExport, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return Exported{}, fmt.Errorf("%w: %v", report.ErrExport, err)
	}

	out := Exported{ID: uuid.NewString(), Kind: kind, Path: path, Rows: snap.TableRows.Len()}
	if s.Exports != nil {
		var linked *string
		if importID != "" {
			linked = &importID
		}
		err := s.Exports.Insert(ctx, repository.Export{
			ID:        out.ID,
			ImportID:  linked,
			Kind:      string(kind),
			FileName:  name,
			Rows:      out.Rows,
			Filters:   snap.Selection.Describe(),
			CreatedAt: database.Now(),
		})
		if err != nil {
			_ = os.Remove(path)
			return Exported{}, fmt.Errorf("record export: %w", err)
		}
	}
	slog.Info("report exported", "kind", kind, "path", path, "rows", out.Rows)
	return out, nil
}
