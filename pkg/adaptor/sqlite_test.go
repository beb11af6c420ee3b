package adaptor_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/pseudomuto/movine/pkg/adaptor"
	"github.com/pseudomuto/movine/pkg/config"
	"github.com/pseudomuto/movine/pkg/migrator"
	"github.com/pseudomuto/movine/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteAdaptor(t *testing.T) *adaptor.SQLiteAdaptor {
	t.Helper()

	a, err := adaptor.NewSQLiteAdaptor(&config.SQLite{
		File: filepath.Join(t.TempDir(), "movine.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	return a
}

func testMigration(t *testing.T, name, up, down string) *migrator.Migration {
	t.Helper()

	m, err := migrator.Build(name, time.Date(2023, 4, 1, 12, 0, 0, 0, time.UTC), utils.Ptr(up), utils.Ptr(down))
	require.NoError(t, err)

	return m
}

func TestSQLiteAdaptor_InitIsIdempotent(t *testing.T) {
	a := newSQLiteAdaptor(t)
	ctx := context.Background()

	require.NoError(t, a.Init(ctx))
	require.NoError(t, a.Init(ctx))

	migrations, err := a.LoadMigrations(ctx)
	require.NoError(t, err)
	assert.Empty(t, migrations)
}

func TestSQLiteAdaptor_RunUpRecordsTrackingRow(t *testing.T) {
	a := newSQLiteAdaptor(t)
	ctx := context.Background()
	require.NoError(t, a.Init(ctx))

	m := testMigration(t, "create_users",
		"CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT)",
		"DROP TABLE users",
	)
	require.NoError(t, a.RunUp(ctx, m))

	migrations, err := a.LoadMigrations(ctx)
	require.NoError(t, err)
	require.Len(t, migrations, 1)

	got := migrations[0]
	assert.Equal(t, m.Key(), got.Key())
	assert.Nil(t, got.UpSQL, "tracking rows carry the up hash, never the up SQL")
	require.NotNil(t, got.UpHash)
	assert.Equal(t, *m.UpHash, *got.UpHash)
	require.NotNil(t, got.DownSQL)
	assert.Equal(t, *m.DownSQL, *got.DownSQL)
}

func TestSQLiteAdaptor_RunUpDuplicateKeyFails(t *testing.T) {
	a := newSQLiteAdaptor(t)
	ctx := context.Background()
	require.NoError(t, a.Init(ctx))

	m := testMigration(t, "create_users", "CREATE TABLE users (id INTEGER)", "DROP TABLE users")
	require.NoError(t, a.RunUp(ctx, m))

	dup := testMigration(t, "create_users", "CREATE TABLE others (id INTEGER)", "DROP TABLE others")
	err := a.RunUp(ctx, dup)
	require.Error(t, err)
	assert.True(t, migrator.IsKind(err, migrator.KindDB))
}

func TestSQLiteAdaptor_RunUpRollsBackAtomically(t *testing.T) {
	a := newSQLiteAdaptor(t)
	ctx := context.Background()
	require.NoError(t, a.Init(ctx))

	bad := testMigration(t, "broken", "THIS IS NOT SQL", "DROP TABLE nothing")
	err := a.RunUp(ctx, bad)
	require.Error(t, err)
	assert.True(t, migrator.IsKind(err, migrator.KindDB))

	migrations, err := a.LoadMigrations(ctx)
	require.NoError(t, err)
	assert.Empty(t, migrations, "failed up must not leave a tracking row behind")
}

func TestSQLiteAdaptor_RunDownRemovesTrackingRow(t *testing.T) {
	a := newSQLiteAdaptor(t)
	ctx := context.Background()
	require.NoError(t, a.Init(ctx))

	m := testMigration(t, "create_users", "CREATE TABLE users (id INTEGER)", "DROP TABLE users")
	require.NoError(t, a.RunUp(ctx, m))
	require.NoError(t, a.RunDown(ctx, m))

	migrations, err := a.LoadMigrations(ctx)
	require.NoError(t, err)
	assert.Empty(t, migrations)

	// The user table is gone again, so the same up can be replayed.
	require.NoError(t, a.RunUp(ctx, m))
}

func TestSQLiteAdaptor_EmptyPayloadsAreRecordedWithoutExecuting(t *testing.T) {
	a := newSQLiteAdaptor(t)
	ctx := context.Background()
	require.NoError(t, a.Init(ctx))

	bootstrap, err := migrator.Build(migrator.EpochMigrationName, migrator.EpochTimestamp, utils.Ptr(""), utils.Ptr(""))
	require.NoError(t, err)

	require.NoError(t, a.RunUp(ctx, bootstrap))

	migrations, err := a.LoadMigrations(ctx)
	require.NoError(t, err)
	require.Len(t, migrations, 1)
	assert.Equal(t, "1970-01-01-000000_"+migrator.EpochMigrationName, migrations[0].Key())

	require.NoError(t, a.RunDown(ctx, bootstrap))
}

func TestSQLiteAdaptor_InitSQL(t *testing.T) {
	a := newSQLiteAdaptor(t)

	assert.Contains(t, a.InitUpSQL(), "CREATE TABLE IF NOT EXISTS movine_migrations")
	assert.Contains(t, a.InitDownSQL(), "DROP TABLE IF EXISTS movine_migrations")
}
