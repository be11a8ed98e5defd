package database

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/familyllc/recipe-manager/backend/internal/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenSQLite("file::memory:?_foreign_keys=on", &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func testMigrations() fstest.MapFS {
	return fstest.MapFS{
		"0001_widgets.sql":          {Data: []byte("CREATE TABLE widgets (id INTEGER PRIMARY KEY, name TEXT NOT NULL);")},
		"0001_widgets_rollback.sql": {Data: []byte("DROP TABLE widgets;")},
		"0002_gadgets.sql": {Data: []byte(
			"CREATE TABLE gadgets (id INTEGER PRIMARY KEY);\nCREATE INDEX idx_gadgets_id ON gadgets (id);")},
		"0002_gadgets_rollback.sql": {Data: []byte("DROP TABLE gadgets;")},
		"README.md":                 {Data: []byte("not a migration")},
	}
}

func TestRunMigrationsAppliesOnce(t *testing.T) {
	db := openTestDB(t)
	log := logger.NewNop()

	applied, err := RunMigrations(db, testMigrations(), log)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_widgets.sql", "0002_gadgets.sql"}, applied)
	assert.True(t, db.Migrator().HasTable("widgets"))
	assert.True(t, db.Migrator().HasTable("gadgets"))

	applied, err = RunMigrations(db, testMigrations(), log)
	require.NoError(t, err)
	assert.Empty(t, applied)

	rows, err := Applied(db)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "0001_widgets.sql", rows[0].Name)
}

func TestRollbackLast(t *testing.T) {
	db := openTestDB(t)
	log := logger.NewNop()

	_, err := RunMigrations(db, testMigrations(), log)
	require.NoError(t, err)

	name, err := RollbackLast(db, testMigrations(), log)
	require.NoError(t, err)
	assert.Equal(t, "0002_gadgets.sql", name)
	assert.False(t, db.Migrator().HasTable("gadgets"))
	assert.True(t, db.Migrator().HasTable("widgets"))

	_, err = RollbackLast(db, testMigrations(), log)
	require.NoError(t, err)
	_, err = RollbackLast(db, testMigrations(), log)
	assert.EqualError(t, err, "no migrations to rollback")
}

func TestMigrateUsesAutoMigrateOnSQLite(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db, fstest.MapFS{}, logger.NewNop()))
	for _, table := range []string{"recipes", "ingredients", "instructions", "tasks"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}
