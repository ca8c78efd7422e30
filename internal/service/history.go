package service

import (
	"context"

	"github.com/jask/qualityrs/internal/database/repository"
)

// History is the recent activity shown by the history view.
type History struct {
	Imports []repository.Import
	Exports []repository.Export
}

// HistoryService reads the activity log.
type HistoryService struct {
	Imports *repository.ImportRepo
	Exports *repository.ExportRepo
}

// Recent returns up to limit imports and limit exports, newest first.
func (s *HistoryService) Recent(ctx context.Context, limit int) (History, error) {
	var h History
	var err error
	if h.Imports, err = s.Imports.ListRecent(ctx, limit); err != nil {
		return History{}, err
	}
	if h.Exports, err = s.Exports.ListRecent(ctx, limit); err != nil {
		return History{}, err
	}
	return h, nil
}
