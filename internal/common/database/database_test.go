package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"homecare-admin/internal/common/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectDSNType(t *testing.T) {
	assert.Equal(t, Postgres, DetectDSNType("postgres://u:p@localhost/db"))
	assert.Equal(t, Postgres, DetectDSNType("postgresql://localhost/db"))
	assert.Equal(t, Postgres, DetectDSNType("host=localhost port=5432 dbname=db"))
	assert.Equal(t, SQLite, DetectDSNType("/var/lib/homecare/homecare.db"))
	assert.Equal(t, SQLite, DetectDSNType("homecare.db"))
}

func TestRebind(t *testing.T) {
	q := "SELECT * FROM t WHERE a = ? AND b LIKE '%?%' AND c IN (?, ?)"
	assert.Equal(t, "SELECT * FROM t WHERE a = $1 AND b LIKE '%?%' AND c IN ($2, $3)", Rebind(Postgres, q))
	assert.Equal(t, q, Rebind(SQLite, q))
}

func openTestSQLite(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), &config.DatabaseConfig{DSN: filepath.Join(t.TempDir(), "nested", "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestOpen_SQLiteEnablesForeignKeys(t *testing.T) {
	db := openTestSQLite(t)
	assert.Equal(t, SQLite, db.Dialect())

	var on int
	require.NoError(t, db.QueryRow("PRAGMA foreign_keys").Scan(&on))
	assert.Equal(t, 1, on)
}

func TestOpen_SQLiteUnicodeLower(t *testing.T) {
	db := openTestSQLite(t)

	var lowered string
	var isNull bool
	require.NoError(t, db.QueryRow(`SELECT `+Lower(SQLite, "?")+`, `+Lower(SQLite, "NULL")+` IS NULL`, "Élan CARE Ørsted").Scan(&lowered, &isNull))
	assert.Equal(t, "élan care ørsted", lowered)
	assert.True(t, isNull)

	assert.Equal(t, "LOWER(name)", Lower(Postgres, "name"))
}

func TestOpen_EmptyDSN(t *testing.T) {
	_, err := Open(context.Background(), &config.DatabaseConfig{})
	assert.Error(t, err)
}

func TestWithinTx_RollbackAndCommit(t *testing.T) {
	db := openTestSQLite(t)
	ctx := context.Background()
	_, err := db.ExecContext(ctx, `CREATE TABLE items (name TEXT NOT NULL)`)
	require.NoError(t, err)

	boom := errors.New("boom")
	err = db.WithinTx(ctx, func(tx *Tx) error {
		_, err := tx.ExecContext(ctx, tx.Rebind(`INSERT INTO items (name) VALUES (?)`), "rolled back")
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	err = db.WithinTx(ctx, func(tx *Tx) error {
		_, err := tx.ExecContext(ctx, tx.Rebind(`INSERT INTO items (name) VALUES (?)`), "kept")
		return err
	})
	require.NoError(t, err)

	var names []string
	rows, err := db.QueryContext(ctx, `SELECT name FROM items`)
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		var n string
		require.NoError(t, rows.Scan(&n))
		names = append(names, n)
	}
	assert.Equal(t, []string{"kept"}, names)
}
