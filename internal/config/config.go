package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/jask/qualityrs/internal/ingest"
)

// Config holds application configuration.
type Config struct {
	App      AppConfig
	Auth     AuthConfig
	Source   SourceConfig
	Database DatabaseConfig
	Export   ExportConfig
	Report   ReportConfig
	Log      LogConfig
}

// AppConfig holds presentation settings.
type AppConfig struct {
	Name string
}

// AuthConfig holds the shared dashboard secret. PasswordHash is a bcrypt
// hash and wins over Password when both are set.
type AuthConfig struct {
	Password     string
	PasswordHash string `mapstructure:"password_hash"`
}

// SourceConfig describes the uploaded spreadsheet.
type SourceConfig struct {
	Sheet       string
	Timezone    string
	DateLayouts []string `mapstructure:"date_layouts"`
	Columns     ColumnsConfig
}

// ColumnsConfig maps record attributes to spreadsheet headers.
type ColumnsConfig struct {
	ID        string
	Title     string
	Status    string
	Emitted   string
	Reason    string
	Shift     string
	RaisedBy  string `mapstructure:"raised_by"`
	RootCause string `mapstructure:"root_cause"`
	Category  string
	Client    string
	Situation string
}

// DatabaseConfig holds sqlite settings for the activity log.
type DatabaseConfig struct {
	Path string
}

// ExportConfig holds report output settings.
type ExportConfig struct {
	Dir string
}

// ReportConfig holds aggregation settings.
type ReportConfig struct {
	ReasonLimit int `mapstructure:"reason_limit"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Path  string
	Level string
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "qualityrs")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "INDICADORES QUALIDADE RS")
	v.SetDefault("auth.password", "")
	v.SetDefault("auth.password_hash", "")
	v.SetDefault("source.sheet", "Sheet1")
	v.SetDefault("source.timezone", "America/Sao_Paulo")
	v.SetDefault("source.date_layouts", slices.Clone(ingest.DefaultDateLayouts))
	v.SetDefault("source.columns.id", "Número")
	v.SetDefault("source.columns.title", "Título")
	v.SetDefault("source.columns.status", "Status")
	v.SetDefault("source.columns.emitted", "Data de emissão")
	v.SetDefault("source.columns.reason", "Motivo Reclamação")
	v.SetDefault("source.columns.shift", "Turno")
	v.SetDefault("source.columns.raised_by", "Responsável")
	v.SetDefault("source.columns.root_cause", "Responsável da análise de causa")
	v.SetDefault("source.columns.category", "Categoria")
	v.SetDefault("source.columns.client", "Cliente")
	v.SetDefault("source.columns.situation", "Situação")
	v.SetDefault("database.path", filepath.Join(dataDir(), "qualityrs.db"))
	v.SetDefault("export.dir", filepath.Join(os.Getenv("HOME"), "qualityrs-relatorios"))
	v.SetDefault("report.reason_limit", 12)
	v.SetDefault("log.path", filepath.Join(dataDir(), "qualityrs.log"))
	v.SetDefault("log.level", "info")
}

// Path returns the config file location: QUALITYRS_CONFIG when set, else
// ~/.config/qualityrs/config.toml.
func Path() string {
	if p := os.Getenv("QUALITYRS_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "qualityrs", "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix QUALITYRS_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("QUALITYRS_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "qualityrs"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("QUALITYRS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the dashboard cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Source.Columns.Emitted) == "" {
		return errors.New("config: source.columns.emitted is required")
	}
	if strings.TrimSpace(c.Source.Sheet) == "" {
		return errors.New("config: source.sheet is required")
	}
	if len(c.Source.DateLayouts) == 0 {
		return errors.New("config: source.date_layouts must not be empty")
	}
	if c.Report.ReasonLimit < 1 {
		return fmt.Errorf("config: report.reason_limit must be positive, got %d", c.Report.ReasonLimit)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log.level %q", c.Log.Level)
	}
	return nil
}

// Save writes the provided config to disk, creating the config directory if needed.
// The plain password is never written; set auth.password_hash instead.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("app.name", cfg.App.Name)
	v.Set("auth.password_hash", cfg.Auth.PasswordHash)
	v.Set("source.sheet", cfg.Source.Sheet)
	v.Set("source.timezone", cfg.Source.Timezone)
	v.Set("source.date_layouts", cfg.Source.DateLayouts)
	v.Set("source.columns.id", cfg.Source.Columns.ID)
	v.Set("source.columns.title", cfg.Source.Columns.Title)
	v.Set("source.columns.status", cfg.Source.Columns.Status)
	v.Set("source.columns.emitted", cfg.Source.Columns.Emitted)
	v.Set("source.columns.reason", cfg.Source.Columns.Reason)
	v.Set("source.columns.shift", cfg.Source.Columns.Shift)
	v.Set("source.columns.raised_by", cfg.Source.Columns.RaisedBy)
	v.Set("source.columns.root_cause", cfg.Source.Columns.RootCause)
	v.Set("source.columns.category", cfg.Source.Columns.Category)
	v.Set("source.columns.client", cfg.Source.Columns.Client)
	v.Set("source.columns.situation", cfg.Source.Columns.Situation)
	v.Set("database.path", cfg.Database.Path)
	v.Set("export.dir", cfg.Export.Dir)
	v.Set("report.reason_limit", cfg.Report.ReasonLimit)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
