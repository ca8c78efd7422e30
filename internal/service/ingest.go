package service

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/jask/qualityrs/internal/complaint"
	"github.com/jask/qualityrs/internal/database"
	"github.com/jask/qualityrs/internal/database/repository"
	"github.com/jask/qualityrs/internal/ingest"
)

// IngestService loads complaint exports and records each successful load.
type IngestService struct {
	Loader  *ingest.Loader
	Imports *repository.ImportRepo
}

// Imported is a loaded dataset plus its log entry.
type Imported struct {
	ID      string
	Dataset complaint.Dataset
	Result  ingest.Result
}

// ImportFile loads path. Failed loads are not logged.
func (s *IngestService) ImportFile(ctx context.Context, path string) (Imported, error) {
	ds, res, err := s.Loader.LoadFile(ctx, path)
	if err != nil {
		return Imported{}, err
	}
	return s.record(ctx, filepath.Base(path), ds, res)
}

// ImportBytes loads an in-memory upload named name.
func (s *IngestService) ImportBytes(ctx context.Context, name string, data []byte) (Imported, error) {
	ds, res, err := s.Loader.Load(ctx, name, data)
	if err != nil {
		return Imported{}, err
	}
	return s.record(ctx, name, ds, res)
}

func (s *IngestService) record(ctx context.Context, name string, ds complaint.Dataset, res ingest.Result) (Imported, error) {
	out := Imported{ID: uuid.NewString(), Dataset: ds, Result: res}
	if s.Imports == nil {
		return out, nil
	}
	err := s.Imports.Insert(ctx, repository.Import{
		ID:          out.ID,
		FileName:    name,
		Format:      string(res.Format),
		Sheet:       res.Sheet,
		RowsLoaded:  res.Rows,
		RowsDropped: res.Dropped,
		ImportedAt:  database.Now(),
	})
	if err != nil {
		return Imported{}, fmt.Errorf("record import: %w", err)
	}
	return out, nil
}
