package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteEnforcesForeignKeys(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "fk.db"), WithForeignKeys())
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE padre (id INTEGER PRIMARY KEY);
		CREATE TABLE hijo (id INTEGER PRIMARY KEY, padre_id INTEGER NOT NULL REFERENCES padre(id))`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO hijo (id, padre_id) VALUES (1, 99)`)
	assert.Error(t, err)
}

func TestOpenSQLiteQueryOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ro.db")

	rw, err := OpenSQLite(path)
	require.NoError(t, err)
	_, err = rw.Exec(`CREATE TABLE t (id INTEGER)`)
	require.NoError(t, err)
	require.NoError(t, rw.Close())

	ro, err := OpenSQLite(path, WithQueryOnly())
	require.NoError(t, err)
	defer ro.Close()

	_, err = ro.Exec(`INSERT INTO t (id) VALUES (1)`)
	assert.Error(t, err)

	var n int
	require.NoError(t, ro.QueryRow(`SELECT COUNT(*) FROM t`).Scan(&n))
	assert.Equal(t, 0, n)
}

func TestStoreQueryAndExec(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	store := NewStore(db)

	_, err = store.Exec(ctx, `CREATE TABLE Clientes (id INTEGER PRIMARY KEY, nombre TEXT, cedula INTEGER UNIQUE)`)
	require.NoError(t, err)

	n, err := store.Exec(ctx, `INSERT INTO Clientes (id, nombre, cedula) VALUES (?, ?, ?)`, 1, "Ana", 101)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = store.Exec(ctx, `INSERT INTO Clientes (id, nombre, cedula) VALUES (?, ?, ?)`, 2, "Luis", 101)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUniqueViolation))

	rows, err := store.Query(ctx, `SELECT id, nombre, cedula FROM Clientes`)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ana", rows[0]["nombre"])
	assert.Equal(t, int64(101), rows[0]["cedula"])
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: TasasCambio.fecha")))
	assert.True(t, IsUniqueViolation(ErrUniqueViolation))
	assert.False(t, IsUniqueViolation(errors.New("FOREIGN KEY constraint failed")))
}

func TestDialect(t *testing.T) {
	lite, err := DialectFor(DriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, "?, ?", lite.Placeholders(1, 2))
	q, err := lite.Quote("Clientes")
	require.NoError(t, err)
	assert.Equal(t, `"Clientes"`, q)

	mss, err := DialectFor(DriverSQLServer)
	require.NoError(t, err)
	assert.Equal(t, "@p2, @p3", mss.Placeholders(2, 2))
	q, err = mss.Quote("tasas_dia")
	require.NoError(t, err)
	assert.Equal(t, "[tasas_dia]", q)
	assert.Contains(t, mss.TableExistsQuery(), "INFORMATION_SCHEMA")
	assert.Equal(t, `SELECT * FROM "clientes" ORDER BY rowid`, lite.SelectAllQuery(`"clientes"`))
	assert.Equal(t, "SELECT * FROM [ventas]", mss.SelectAllQuery("[ventas]"))

	_, err = lite.Quote("x; DROP TABLE y")
	assert.Error(t, err)

	_, err = DialectFor("postgres")
	assert.Error(t, err)
}
