// Package commands implements the CLI subcommands for the qualityrs binary.
package commands

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jask/qualityrs/internal/auth"
	"github.com/jask/qualityrs/internal/complaint"
	"github.com/jask/qualityrs/internal/config"
	"github.com/jask/qualityrs/internal/database"
	"github.com/jask/qualityrs/internal/ingest"
)

// ErrNoSecret is returned when the dashboard would start without a password.
var ErrNoSecret = errors.New("no dashboard password configured: set auth.password_hash (see `qualityrs hash-password --save`) or start with --demo")

// DashboardGate builds the login gate. Only the demo mode may run without
// a configured secret.
func DashboardGate(cfg config.Config, demo bool) (auth.Gate, error) {
	gate, err := auth.NewGate(cfg.Auth.Password, cfg.Auth.PasswordHash)
	if err != nil {
		return auth.Gate{}, err
	}
	if gate.Open() {
		if !demo {
			return auth.Gate{}, ErrNoSecret
		}
		slog.Warn("demo mode without auth.password or auth.password_hash; dashboard is open")
	}
	return gate, nil
}

// NewLoader builds an ingest loader from the source settings.
func NewLoader(cfg config.Config) (*ingest.Loader, error) {
	loc := time.Local
	if tz := strings.TrimSpace(cfg.Source.Timezone); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("source.timezone: %w", err)
		}
		loc = l
	}
	c := cfg.Source.Columns
	cols := ingest.DefaultColumns()
	set := func(key, header string) {
		if header = strings.TrimSpace(header); header != "" {
			cols[key] = header
		}
	}
	set(ingest.ColID, c.ID)
	set(ingest.ColTitle, c.Title)
	set(ingest.ColEmitted, c.Emitted)
	set(complaint.FieldStatus.Key(), c.Status)
	set(complaint.FieldReason.Key(), c.Reason)
	set(complaint.FieldShift.Key(), c.Shift)
	set(complaint.FieldRaisedBy.Key(), c.RaisedBy)
	set(complaint.FieldRootCause.Key(), c.RootCause)
	set(complaint.FieldCategory.Key(), c.Category)
	set(complaint.FieldClient.Key(), c.Client)
	set(complaint.FieldSituation.Key(), c.Situation)

	l := ingest.NewLoader()
	l.Columns = cols
	l.Location = loc
	if cfg.Source.Sheet != "" {
		l.Sheet = cfg.Source.Sheet
	}
	if len(cfg.Source.DateLayouts) > 0 {
		l.DateLayouts = cfg.Source.DateLayouts
	}
	return l, nil
}

// OpenStore migrates and opens the activity log database.
func OpenStore(cfg config.Config) (*sql.DB, error) {
	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return db, nil
}

// SetupLogging installs a text slog handler writing to w at the
// configured level.
func SetupLogging(cfg config.Config, w io.Writer) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("loading config: %w", err)
	}
	SetupLogging(cfg, os.Stderr)
	return cfg, nil
}
