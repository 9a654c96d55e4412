// Package config loads the migration settings from the environment
// (populated from .env in main.go) on top of fixed relative defaults.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/BartekS5/barberia/pkg/database"
)

// Config holds all configuration for the migration run.
type Config struct {
	Legacy    LegacyConfig
	Target    TargetConfig
	Log       LogConfig
	Migration MigrationConfig
	Archive   ArchiveConfig
	Report    ReportConfig
}

// LegacyConfig locates the pre-migration store.
type LegacyConfig struct {
	Driver string // sqlite or sqlserver
	Path   string // sqlite file
	DSN    string // sqlserver connection string
}

// TargetConfig locates the store to rebuild and its DDL script.
type TargetConfig struct {
	Path   string
	Schema string
}

type LogConfig struct {
	Level  string
	Format string
	Output string
}

// MigrationConfig holds the row policies that depend on the business.
type MigrationConfig struct {
	CashCustomerName     string
	BirthDatePlaceholder string
}

// ArchiveConfig enables copying non-migratable tables to MongoDB.
type ArchiveConfig struct {
	MongoURI string
	Database string
}

func (a ArchiveConfig) Enabled() bool { return a.MongoURI != "" }

type ReportConfig struct {
	XLSXPath string
}

// LoadConfig reads BARBERIA_* environment variables over the defaults.
func LoadConfig() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("BARBERIA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Legacy: LegacyConfig{
			Driver: v.GetString("legacy.driver"),
			Path:   v.GetString("legacy.path"),
			DSN:    v.GetString("legacy.dsn"),
		},
		Target: TargetConfig{
			Path:   v.GetString("target.path"),
			Schema: v.GetString("target.schema"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Migration: MigrationConfig{
			CashCustomerName:     v.GetString("migration.cash_customer"),
			BirthDatePlaceholder: v.GetString("migration.birth_date_placeholder"),
		},
		Archive: ArchiveConfig{
			MongoURI: v.GetString("archive.mongo_uri"),
			Database: v.GetString("archive.mongo_db"),
		},
		Report: ReportConfig{
			XLSXPath: v.GetString("report.xlsx"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("legacy.driver", database.DriverSQLite)
	v.SetDefault("legacy.path", "db/barberia_legacy.db")
	v.SetDefault("legacy.dsn", "")
	v.SetDefault("target.path", "db/barberia.db")
	v.SetDefault("target.schema", "db/schema.sql")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("migration.cash_customer", "Cliente Contado")
	v.SetDefault("migration.birth_date_placeholder", "01/01/1900")
	v.SetDefault("archive.mongo_uri", "")
	v.SetDefault("archive.mongo_db", "barberia_legacy")
	v.SetDefault("report.xlsx", "")
}

// Validate rejects settings the run cannot start with.
func (c *Config) Validate() error {
	switch c.Legacy.Driver {
	case database.DriverSQLite:
		if c.Legacy.Path == "" {
			return errors.New("BARBERIA_LEGACY_PATH must not be empty")
		}
	case database.DriverSQLServer:
		if c.Legacy.DSN == "" {
			return errors.New("BARBERIA_LEGACY_DSN must be set for the sqlserver driver")
		}
	default:
		return fmt.Errorf("unsupported legacy driver %q", c.Legacy.Driver)
	}
	if c.Target.Path == "" || c.Target.Schema == "" {
		return errors.New("target path and schema must not be empty")
	}
	if c.Legacy.Driver == database.DriverSQLite {
		same, err := samePath(c.Legacy.Path, c.Target.Path)
		if err != nil {
			return err
		}
		if same {
			// The target is deleted before each run.
			return fmt.Errorf("BARBERIA_TARGET_PATH must differ from BARBERIA_LEGACY_PATH (%s)", c.Legacy.Path)
		}
	}
	if strings.TrimSpace(c.Migration.CashCustomerName) == "" {
		return errors.New("BARBERIA_MIGRATION_CASH_CUSTOMER must not be empty")
	}
	return nil
}

func samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(filepath.Clean(a))
	if err != nil {
		return false, err
	}
	absB, err := filepath.Abs(filepath.Clean(b))
	if err != nil {
		return false, err
	}
	return absA == absB, nil
}
