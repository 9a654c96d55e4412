package etl

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BartekS5/barberia/internal/config"
	"github.com/BartekS5/barberia/pkg/database"
)

func TestOpenSourceMissingDatabase(t *testing.T) {
	_, err := OpenSource(config.LegacyConfig{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "nope.db"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingDatabase))
}

func TestOpenSourceUnknownDriver(t *testing.T) {
	_, err := OpenSource(config.LegacyConfig{Driver: "oracle", Path: "x"})
	assert.Error(t, err)
}

func TestSQLExtractorScan(t *testing.T) {
	path := newLegacyDB(t, legacyDDL,
		`INSERT INTO clientes (id, nombres, apellidos, cedula) VALUES (1, 'Ana', 'Perez', 'V101')`,
		`INSERT INTO clientes (id, nombres, apellidos, cedula) VALUES (2, 'Luis', NULL, '')`,
	)
	src := openSource(t, path)

	rows, err := src.Scan(context.Background(), "clientes")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byID := map[int64]map[string]interface{}{}
	for _, r := range rows {
		byID[r["id"].(int64)] = r
	}
	assert.Equal(t, "Ana", byID[1]["nombres"])
	assert.Equal(t, "V101", byID[1]["cedula"])
	assert.Nil(t, byID[2]["apellidos"])
}

func TestSQLExtractorMissingTable(t *testing.T) {
	path := newLegacyDB(t, `CREATE TABLE clientes (id INTEGER PRIMARY KEY)`)
	src := openSource(t, path)

	_, err := src.Scan(context.Background(), "empleados")
	assert.True(t, errors.Is(err, ErrMissingTable))

	_, err = src.Count(context.Background(), "ventas")
	assert.True(t, errors.Is(err, ErrMissingTable))
}

func TestSQLExtractorCount(t *testing.T) {
	path := newLegacyDB(t, legacyDDL,
		`INSERT INTO ventas (cliente, total, fecha) VALUES ('Ana', 10, '2024-01-01')`,
		`INSERT INTO ventas (cliente, total, fecha) VALUES ('Luis', 12, '2024-01-02')`,
	)
	src := openSource(t, path)

	n, err := src.Count(context.Background(), "ventas")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSQLExtractorIsReadOnly(t *testing.T) {
	path := newLegacyDB(t, legacyDDL)
	src := openSource(t, path)

	_, err := src.DB.Exec(`INSERT INTO clientes (nombres) VALUES ('x')`)
	assert.Error(t, err)
}

func TestSQLExtractorScanInInsertionOrder(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()
	src := &SQLExtractor{DB: db, Dialect: database.Dialect{Driver: database.DriverSQLite}}

	mock.ExpectQuery("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?").
		WithArgs("clientes").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectQuery(`SELECT * FROM "clientes" ORDER BY rowid`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "cedula"}).
			AddRow(int64(1), "V101").
			AddRow(int64(2), "v-101"))

	rows, err := src.Scan(context.Background(), "clientes")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "V101", rows[0]["cedula"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
