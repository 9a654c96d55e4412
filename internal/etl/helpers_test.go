package etl

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BartekS5/barberia/internal/config"
	"github.com/BartekS5/barberia/pkg/database"
)

const schemaPath = "../../db/schema.sql"

const legacyDDL = `
CREATE TABLE clientes (id INTEGER PRIMARY KEY, nombres TEXT, apellidos TEXT, cedula TEXT, correo TEXT, telefono TEXT);
CREATE TABLE empleados (id INTEGER PRIMARY KEY, nombres TEXT, apellidos TEXT, cedula TEXT, telefono TEXT, fecha_nacimiento TEXT);
CREATE TABLE productos (id INTEGER PRIMARY KEY, nombre TEXT, cantidad_disponible INTEGER, precio_usd REAL, precio_ves REAL);
CREATE TABLE servicios (id INTEGER PRIMARY KEY, nombre TEXT, descripcion TEXT, precio_usd REAL);
CREATE TABLE tasas_dia (id INTEGER PRIMARY KEY, fecha_creacion TEXT, tasa REAL);
CREATE TABLE ventas (id INTEGER PRIMARY KEY, cliente TEXT, total REAL, fecha TEXT);
CREATE TABLE pagos_nomina (id INTEGER PRIMARY KEY, empleado TEXT, monto REAL);
`

// newLegacyDB creates a legacy SQLite file from ddl plus the given
// statements and returns its path.
func newLegacyDB(t *testing.T, ddl string, stmts ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "legacy.db")

	db, err := database.OpenSQLite(path)
	require.NoError(t, err)
	defer db.Close()

	if ddl != "" {
		_, err = db.Exec(ddl)
		require.NoError(t, err)
	}
	for _, s := range stmts {
		_, err = db.Exec(s)
		require.NoError(t, err, s)
	}
	return path
}

func openSource(t *testing.T, path string) *SQLExtractor {
	t.Helper()
	src, err := OpenSource(config.LegacyConfig{Driver: database.DriverSQLite, Path: path})
	require.NoError(t, err)
	t.Cleanup(func() { src.Close() })
	return src
}

func openTarget(t *testing.T, path string) *SQLLoader {
	t.Helper()
	dst, err := OpenTarget(context.Background(), path, schemaPath)
	require.NoError(t, err)
	t.Cleanup(func() { dst.Close() })
	return dst
}

func newTestPipeline(src Extractor, dst Loader) *Pipeline {
	return NewPipeline(src, dst, NewValidator("Cliente Contado"), NewTransformer("01/01/1900"))
}

func countRows(t *testing.T, l *SQLLoader, table string) int {
	t.Helper()
	var n int
	require.NoError(t, l.DB.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}
