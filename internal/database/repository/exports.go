package repository

import (
	"context"
	"database/sql"
)

// ExportRepo handles the export log.
type ExportRepo struct {
	db *sql.DB
}

func NewExportRepo(db *sql.DB) *ExportRepo { return &ExportRepo{db: db} }

func (r *ExportRepo) Insert(ctx context.Context, e Export) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO exports(id, import_id, kind, file_name, rows, filters, created_at)
	VALUES(?, ?, ?, ?, ?, ?, ?);
	`, e.ID, e.ImportID, e.Kind, e.FileName, e.Rows, e.Filters, e.CreatedAt)
	return err
}

// ListRecent returns up to limit exports, newest first.
func (r *ExportRepo) ListRecent(ctx context.Context, limit int) ([]Export, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, import_id, kind, file_name, rows, filters, created_at
	FROM exports
	ORDER BY created_at DESC, rowid DESC
	LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Export
	for rows.Next() {
		var e Export
		var importID sql.NullString
		if err := rows.Scan(&e.ID, &importID, &e.Kind, &e.FileName, &e.Rows, &e.Filters, &e.CreatedAt); err != nil {
			return nil, err
		}
		if importID.Valid {
			e.ImportID = &importID.String
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
