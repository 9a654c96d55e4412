package etl

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/BartekS5/barberia/internal/config"
	"github.com/BartekS5/barberia/pkg/database"
	"github.com/BartekS5/barberia/pkg/models"
)

// SQLExtractor scans tables of the legacy store. It never issues writes.
type SQLExtractor struct {
	DB      *sql.DB
	Dialect database.Dialect
}

// OpenSource connects to the legacy store described by cfg. A missing
// SQLite file yields ErrMissingDatabase.
func OpenSource(cfg config.LegacyConfig) (*SQLExtractor, error) {
	dialect, err := database.DialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	var db *sql.DB
	switch cfg.Driver {
	case database.DriverSQLServer:
		db, err = database.ConnectSQL(cfg.DSN)
	default:
		if _, statErr := os.Stat(cfg.Path); os.IsNotExist(statErr) {
			return nil, fmt.Errorf("%w: %s", ErrMissingDatabase, cfg.Path)
		}
		db, err = database.OpenSQLite(cfg.Path, database.WithQueryOnly())
	}
	if err != nil {
		return nil, err
	}
	return &SQLExtractor{DB: db, Dialect: dialect}, nil
}

func (s *SQLExtractor) Close() error {
	return s.DB.Close()
}

// Scan returns every row of table. On SQLite rows are in insertion order,
// so the first of several duplicates is the one kept.
func (s *SQLExtractor) Scan(ctx context.Context, table string) ([]models.Row, error) {
	quoted, err := s.checkTable(ctx, table)
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, s.Dialect.SelectAllQuery(quoted))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	raw, err := database.ScanRows(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", table, err)
	}

	out := make([]models.Row, 0, len(raw))
	for _, r := range raw {
		out = append(out, models.Row(r))
	}
	return out, nil
}

// Count returns the number of rows in table.
func (s *SQLExtractor) Count(ctx context.Context, table string) (int, error) {
	quoted, err := s.checkTable(ctx, table)
	if err != nil {
		return 0, err
	}

	var n int
	if err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+quoted).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}

func (s *SQLExtractor) checkTable(ctx context.Context, table string) (string, error) {
	quoted, err := s.Dialect.Quote(table)
	if err != nil {
		return "", err
	}

	var n int
	if err := s.DB.QueryRowContext(ctx, s.Dialect.TableExistsQuery(), table).Scan(&n); err != nil {
		return "", fmt.Errorf("failed to look up table %s: %w", table, err)
	}
	if n == 0 {
		return "", fmt.Errorf("%w: %s", ErrMissingTable, table)
	}
	return quoted, nil
}
