package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	mssql "github.com/microsoft/go-mssqldb"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrUniqueViolation is returned by Store.Exec when a statement breaks a
// UNIQUE or PRIMARY KEY constraint.
var ErrUniqueViolation = errors.New("unique constraint violation")

// Store exposes the two primitives the application uses on the migrated
// database: a row query and a parameterized write.
type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

// Query runs a read statement and returns each row as column -> value.
func (s *Store) Query(ctx context.Context, query string, args ...interface{}) ([]map[string]interface{}, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return ScanRows(rows)
}

// Exec runs a write statement and returns the number of affected rows.
func (s *Store) Exec(ctx context.Context, query string, args ...interface{}) (int64, error) {
	res, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		if IsUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %v", ErrUniqueViolation, err)
		}
		return 0, err
	}
	return res.RowsAffected()
}

// ScanRows drains rows into column -> value maps. Byte slices are
// returned as strings.
func ScanRows(rows *sql.Rows) ([]map[string]interface{}, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []map[string]interface{}
	for rows.Next() {
		columns := make([]interface{}, len(cols))
		columnPointers := make([]interface{}, len(cols))
		for i := range columns {
			columnPointers[i] = &columns[i]
		}
		if err := rows.Scan(columnPointers...); err != nil {
			return nil, err
		}

		m := make(map[string]interface{}, len(cols))
		for i, colName := range cols {
			val := columns[i]
			if b, ok := val.([]byte); ok {
				m[colName] = string(b)
			} else {
				m[colName] = val
			}
		}
		results = append(results, m)
	}
	return results, rows.Err()
}

// IsUniqueViolation reports whether err is a UNIQUE or PRIMARY KEY failure
// from SQLite or SQL Server.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUniqueViolation) {
		return true
	}

	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}

	var me mssql.Error
	if errors.As(err, &me) {
		// 2601: duplicate key in unique index, 2627: unique/PK constraint.
		return me.Number == 2601 || me.Number == 2627
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
