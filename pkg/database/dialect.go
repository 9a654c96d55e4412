package database

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	DriverSQLite    = "sqlite"
	DriverSQLServer = "sqlserver"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Dialect covers the few places where SQLite and SQL Server syntax differ.
type Dialect struct {
	Driver string
}

// DialectFor returns the dialect of a registered driver name.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case DriverSQLite, DriverSQLServer:
		return Dialect{Driver: driver}, nil
	}
	return Dialect{}, fmt.Errorf("unsupported database driver %q", driver)
}

// Placeholder returns the bind marker for the n-th argument (1-based).
func (d Dialect) Placeholder(n int) string {
	if d.Driver == DriverSQLServer {
		return fmt.Sprintf("@p%d", n)
	}
	return "?"
}

// Quote validates and quotes a table or column name. Identifiers come from
// fixed mappings, never from data, but are still checked.
func (d Dialect) Quote(ident string) (string, error) {
	if !identRe.MatchString(ident) {
		return "", fmt.Errorf("invalid identifier %q", ident)
	}
	if d.Driver == DriverSQLServer {
		return "[" + ident + "]", nil
	}
	return `"` + ident + `"`, nil
}

// TableExistsQuery returns a statement counting tables named by its only argument.
func (d Dialect) TableExistsQuery() string {
	if d.Driver == DriverSQLServer {
		return "SELECT COUNT(*) FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_NAME = @p1"
	}
	return "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?"
}

// SelectAllQuery returns a statement reading every row of an already quoted
// table. SQLite rows come back in rowid order, i.e. insertion order.
func (d Dialect) SelectAllQuery(quoted string) string {
	if d.Driver == DriverSQLServer {
		return "SELECT * FROM " + quoted
	}
	return "SELECT * FROM " + quoted + " ORDER BY rowid"
}

// Placeholders returns n comma separated bind markers starting at from.
func (d Dialect) Placeholders(from, n int) string {
	marks := make([]string, n)
	for i := range marks {
		marks[i] = d.Placeholder(from + i)
	}
	return strings.Join(marks, ", ")
}
