package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDB_MigratesAndIsRerunnable(t *testing.T) {
	sdb, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer sdb.Close()

	// Re-running migrations on an up-to-date schema must be a no-op.
	require.NoError(t, Migrate(sdb))

	for _, table := range []string{
		"work_categories", "work_types", "checklist_templates", "checklist_items",
		"work_sessions", "session_items", "session_issues", "salaries",
		"emergency_contacts", "user_settings",
	} {
		var name string
		err := sdb.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestOpenDB_OneOpenSessionIndex(t *testing.T) {
	sdb, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer sdb.Close()

	_, err = sdb.Exec(`INSERT INTO work_types (id, user_id, name, created_at, updated_at)
		VALUES ('wt1', 'u1', 'Warehouse', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)

	insert := `INSERT INTO work_sessions (id, user_id, work_type_id, started_at, status, created_at, updated_at)
		VALUES (?, 'u1', 'wt1', '2025-01-02T09:00:00Z', ?, '2025-01-02T09:00:00Z', '2025-01-02T09:00:00Z')`

	_, err = sdb.Exec(insert, "s1", "active")
	require.NoError(t, err)

	_, err = sdb.Exec(insert, "s2", "paused")
	require.Error(t, err, "second open session for the same user must violate the partial unique index")

	_, err = sdb.Exec(insert, "s3", "completed")
	require.NoError(t, err, "terminal sessions are not limited")
}
