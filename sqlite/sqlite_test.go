package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fwojciec/appcat/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func pragma(t *testing.T, db *sqlite.DB, name string) string {
	t.Helper()
	var v string
	require.NoError(t, db.QueryRowContext(context.Background(), "PRAGMA "+name).Scan(&v))
	return v
}

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("migrates a fresh database", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()

		rows, err := db.QueryContext(ctx, `SELECT name FROM sqlite_master WHERE type IN ('table', 'index') AND name NOT LIKE 'sqlite_%' ORDER BY name`)
		require.NoError(t, err)
		defer rows.Close()
		var objects []string
		for rows.Next() {
			var name string
			require.NoError(t, rows.Scan(&name))
			objects = append(objects, name)
		}
		require.NoError(t, rows.Err())

		assert.Equal(t, []string{"idx_records_name", "idx_snapshots_label", "records", "snapshots"}, objects)

		v, err := db.SchemaVersion(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, v)
	})

	t.Run("connection pragmas", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		assert.Equal(t, "1", pragma(t, db, "foreign_keys"))
		assert.Equal(t, "5000", pragma(t, db, "busy_timeout"))
		assert.Equal(t, "memory", pragma(t, db, "journal_mode"))
	})

	t.Run("file databases use WAL", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(filepath.Join(t.TempDir(), "catalog.db"))
		require.NoError(t, db.Open())
		t.Cleanup(func() { db.Close() })

		assert.Equal(t, "wal", pragma(t, db, "journal_mode"))
	})

	t.Run("reopen keeps snapshots", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "catalog.db")
		ctx := context.Background()

		db := sqlite.NewDB(path)
		require.NoError(t, db.Open())
		_, err := db.ExecContext(ctx, `INSERT INTO snapshots (id, label, created_at) VALUES ('s1', 'scrape', '2026-01-01T00:00:00Z')`)
		require.NoError(t, err)
		require.NoError(t, db.Close())

		db = sqlite.NewDB(path)
		require.NoError(t, db.Open())
		t.Cleanup(func() { db.Close() })

		var label string
		require.NoError(t, db.QueryRowContext(ctx, `SELECT label FROM snapshots WHERE id = 's1'`).Scan(&label))
		assert.Equal(t, "scrape", label)
	})

	t.Run("refuses a newer schema", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "future.db")
		db := sqlite.NewDB(path)
		require.NoError(t, db.Open())
		_, err := db.ExecContext(context.Background(), "PRAGMA user_version = 99")
		require.NoError(t, err)
		require.NoError(t, db.Close())

		err = sqlite.NewDB(path).Open()

		require.ErrorContains(t, err, "schema version 99 is newer than supported version 1")
	})

	t.Run("unwritable path", func(t *testing.T) {
		t.Parallel()

		err := sqlite.NewDB(filepath.Join(t.TempDir(), "missing", "catalog.db")).Open()

		require.Error(t, err)
	})
}

func TestDB_Close_Unopened(t *testing.T) {
	t.Parallel()

	assert.NoError(t, sqlite.NewDB(":memory:").Close())
}
