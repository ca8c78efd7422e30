package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/qualityrs/internal/database"
)

// MaintenanceService houses destructive/ops actions surfaced through the CLI and TUI.
type MaintenanceService struct {
	DB *sql.DB
}

// ClearHistory wipes the activity log. It keeps the schema intact so the app can continue running.
func (s *MaintenanceService) ClearHistory(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: db not configured")
	}
	if err := database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		for _, t := range []string{"exports", "imports"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
				return fmt.Errorf("clear table %s: %w", t, err)
			}
		}
		return nil
	}); err != nil {
		return err
	}
	_, _ = s.DB.ExecContext(ctx, "VACUUM")
	return nil
}
