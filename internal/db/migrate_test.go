package db

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// A second run must be a no-op.
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	var versions []int
	require.NoError(t, db.Select(&versions, `SELECT version FROM schema_version ORDER BY version`))
	assert.Equal(t, []int{1}, versions)
}

func TestMigrate_CreatesTodosTable(t *testing.T) {
	db := openTestDB(t)

	var name string
	err := db.Get(&name, `SELECT name FROM sqlite_master WHERE type='table' AND name='todos'`)
	require.NoError(t, err)
	assert.Equal(t, "todos", name)

	err = db.Get(&name, `SELECT name FROM sqlite_master WHERE type='index' AND name='ix_todos_id'`)
	require.NoError(t, err)
	assert.Equal(t, "ix_todos_id", name)
}

func TestMigrate_TodosColumns(t *testing.T) {
	db := openTestDB(t)

	type column struct {
		Name    string  `db:"name"`
		Type    string  `db:"type"`
		NotNull int     `db:"notnull"`
		Default *string `db:"dflt_value"`
		PK      int     `db:"pk"`
		CID     int     `db:"cid"`
	}
	var cols []column
	require.NoError(t, db.Select(&cols, `PRAGMA table_info(todos)`))

	byName := make(map[string]column, len(cols))
	for _, c := range cols {
		byName[c.Name] = c
	}
	require.Len(t, byName, 4)
	assert.Equal(t, 1, byName["id"].PK)
	assert.Equal(t, 1, byName["title"].NotNull)
	assert.Equal(t, 0, byName["description"].NotNull)
	require.NotNil(t, byName["completed"].Default)
	assert.Equal(t, "0", *byName["completed"].Default)
}

func TestOpenDB_FileDatabasePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "todos.db")

	first, err := OpenDB(path)
	require.NoError(t, err)
	_, err = first.Exec(`INSERT INTO todos (title) VALUES ('persisted')`)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := OpenDB(path)
	require.NoError(t, err)
	defer second.Close()

	var title string
	require.NoError(t, second.Get(&title, `SELECT title FROM todos WHERE id = 1`))
	assert.Equal(t, "persisted", title)
}

func TestOpenDB_EmptyPath(t *testing.T) {
	_, err := OpenDB("")
	require.Error(t, err)
}
