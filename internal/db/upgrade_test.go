package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMigrate_UpgradePath_TasksWithoutSource simulates a database created
// before tasks tracked their source file. Existing rows must survive and
// pick up the default source.
func TestMigrate_UpgradePath_TasksWithoutSource(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE tasks (
		id          TEXT PRIMARY KEY,
		uid         TEXT NOT NULL DEFAULT '',
		summary     TEXT NOT NULL DEFAULT '',
		status      TEXT NOT NULL DEFAULT '',
		dtstart     TEXT,
		duration    TEXT,
		due         TEXT,
		completed   TEXT,
		created     TEXT,
		raw         TEXT NOT NULL DEFAULT '',
		imported_at TEXT NOT NULL
	)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO tasks (id, uid, summary, due, imported_at)
		VALUES ('t1', 'legacy-uid', 'Legacy task', '2024-03-01T00:00:00Z', '2024-01-01T00:00:00Z')`)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db), "upgrade must be re-runnable")

	var uid, due, source string
	err = db.QueryRow(`SELECT uid, due, source FROM tasks WHERE id = 't1'`).Scan(&uid, &due, &source)
	require.NoError(t, err)
	assert.Equal(t, "legacy-uid", uid)
	assert.Equal(t, "2024-03-01T00:00:00Z", due)
	assert.Equal(t, "", source)

	var dueTZ sql.NullString
	require.NoError(t, db.QueryRow(`SELECT due_tz FROM tasks WHERE id = 't1'`).Scan(&dueTZ))
	assert.False(t, dueTZ.Valid, "legacy rows have no zone name")
}
