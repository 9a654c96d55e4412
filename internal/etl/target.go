package etl

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BartekS5/barberia/internal/config"
	"github.com/BartekS5/barberia/pkg/database"
	"github.com/BartekS5/barberia/pkg/models"
)

// SQLLoader inserts rows into the freshly built target store.
type SQLLoader struct {
	DB      *sql.DB
	Dialect database.Dialect
}

func NewSQLLoader(db *sql.DB) *SQLLoader {
	return &SQLLoader{DB: db, Dialect: database.Dialect{Driver: database.DriverSQLite}}
}

// OpenTarget deletes any store at path, creates an empty one with foreign
// keys enforced and applies the DDL script found at schemaPath.
func OpenTarget(ctx context.Context, path, schemaPath string) (*SQLLoader, error) {
	ddl, err := config.LoadSchema(schemaPath)
	if err != nil {
		return nil, err
	}

	for _, suffix := range []string{"", "-wal", "-shm", "-journal"} {
		if err := os.Remove(path + suffix); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove old target %s: %w", path+suffix, err)
		}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create target directory: %w", err)
		}
	}

	db, err := database.OpenSQLite(path, database.WithForeignKeys())
	if err != nil {
		return nil, err
	}

	l := NewSQLLoader(db)
	if err := l.ApplySchema(ctx, ddl); err != nil {
		db.Close()
		return nil, err
	}
	return l, nil
}

func (l *SQLLoader) Close() error {
	return l.DB.Close()
}

// ApplySchema executes the DDL script verbatim.
func (l *SQLLoader) ApplySchema(ctx context.Context, ddl string) error {
	if _, err := l.DB.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to apply target schema: %w", err)
	}
	return nil
}

// ExistsByKey reports whether table holds a row matching all key columns.
func (l *SQLLoader) ExistsByKey(ctx context.Context, table string, keyColumns []string, keyValues []interface{}) (bool, error) {
	if len(keyColumns) == 0 || len(keyColumns) != len(keyValues) {
		return false, fmt.Errorf("key columns and values mismatch for %s", table)
	}

	quoted, err := l.Dialect.Quote(table)
	if err != nil {
		return false, err
	}
	where := make([]string, len(keyColumns))
	for i, c := range keyColumns {
		qc, err := l.Dialect.Quote(c)
		if err != nil {
			return false, err
		}
		where[i] = fmt.Sprintf("%s = %s", qc, l.Dialect.Placeholder(i+1))
	}

	query := fmt.Sprintf("SELECT 1 FROM %s WHERE %s", quoted, strings.Join(where, " AND "))

	var exists int
	err = l.DB.QueryRowContext(ctx, query, keyValues...).Scan(&exists)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("error checking row existence in %s: %w", table, err)
	}
	return true, nil
}

// Insert writes one row as a single statement and returns its row id.
// UNIQUE and PRIMARY KEY violations are reported as ErrDuplicateKey.
func (l *SQLLoader) Insert(ctx context.Context, table string, rec *models.Record) (int64, error) {
	if rec == nil || len(rec.Columns) == 0 {
		return 0, fmt.Errorf("empty record for %s", table)
	}

	quoted, err := l.Dialect.Quote(table)
	if err != nil {
		return 0, err
	}
	colNames := make([]string, len(rec.Columns))
	for i, c := range rec.Columns {
		if colNames[i], err = l.Dialect.Quote(c); err != nil {
			return 0, err
		}
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoted, strings.Join(colNames, ", "), l.Dialect.Placeholders(1, len(rec.Values)))

	res, err := l.DB.ExecContext(ctx, query, rec.Values...)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return 0, fmt.Errorf("%w in %s: %v", ErrDuplicateKey, table, err)
		}
		return 0, fmt.Errorf("error inserting into %s: %w", table, err)
	}
	return res.LastInsertId()
}
