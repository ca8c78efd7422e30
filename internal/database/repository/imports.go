package repository

import (
	"context"
	"database/sql"
)

// ImportRepo handles the import log.
type ImportRepo struct {
	db *sql.DB
}

func NewImportRepo(db *sql.DB) *ImportRepo { return &ImportRepo{db: db} }

func (r *ImportRepo) Insert(ctx context.Context, i Import) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO imports(id, file_name, format, sheet, rows_loaded, rows_dropped, imported_at)
	VALUES(?, ?, ?, ?, ?, ?, ?);
	`, i.ID, i.FileName, i.Format, i.Sheet, i.RowsLoaded, i.RowsDropped, i.ImportedAt)
	return err
}

// ListRecent returns up to limit imports, newest first.
func (r *ImportRepo) ListRecent(ctx context.Context, limit int) ([]Import, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, file_name, format, sheet, rows_loaded, rows_dropped, imported_at
	FROM imports
	ORDER BY imported_at DESC, rowid DESC
	LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Import
	for rows.Next() {
		var i Import
		if err := rows.Scan(&i.ID, &i.FileName, &i.Format, &i.Sheet, &i.RowsLoaded, &i.RowsDropped, &i.ImportedAt); err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

func (r *ImportRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM imports`).Scan(&n)
	return n, err
}
