package testutil

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

// ProjectFixture is an isolated temp directory holding a movine.toml and a
// migrations tree, suitable for exercising FileStore and the CLI commands
// without touching the working directory.
type ProjectFixture struct {
	Dir string
	t   *testing.T
}

// SQLiteProject creates a fixture configured for the SQLite adaptor, backed
// by a file under the fixture's own temp directory.
func SQLiteProject(t *testing.T) *ProjectFixture {
	t.Helper()

	dir := t.TempDir()
	fixture := &ProjectFixture{Dir: dir, t: t}

	toml := "dir = \"migrations\"\n\n[sqlite]\nfile = \"" + filepath.Join(dir, "movine.db") + "\"\n"
	fixture.writeConfig(toml)

	return fixture
}

// PostgresProject creates a fixture configured for the Postgres adaptor
// pointed at the given running container.
func PostgresProject(t *testing.T, pg *PostgresContainer) *ProjectFixture {
	t.Helper()

	dir := t.TempDir()
	fixture := &ProjectFixture{Dir: dir, t: t}

	toml := "dir = \"migrations\"\n\n[postgres]\n" +
		"user = \"" + pg.User + "\"\n" +
		"password = \"" + pg.Password + "\"\n" +
		"database = \"" + pg.Database + "\"\n" +
		"host = \"" + pg.Host + "\"\n" +
		"port = " + strconv.Itoa(pg.Port) + "\n"
	fixture.writeConfig(toml)

	return fixture
}

func (p *ProjectFixture) writeConfig(toml string) {
	p.t.Helper()
	err := os.WriteFile(p.ConfigPath(), []byte(toml), 0o644)
	require.NoError(p.t, err, "failed to write movine.toml")
}

// ConfigPath returns the path to the fixture's movine.toml.
func (p *ProjectFixture) ConfigPath() string {
	return filepath.Join(p.Dir, "movine.toml")
}

// MigrationsDir returns the path to the fixture's migrations directory.
func (p *ProjectFixture) MigrationsDir() string {
	return filepath.Join(p.Dir, "migrations")
}

// WriteMigration writes an up.sql/down.sql pair under the fixture's
// migrations directory, keyed by the given canonical key.
func (p *ProjectFixture) WriteMigration(key, upSQL, downSQL string) *ProjectFixture {
	p.t.Helper()

	dir := filepath.Join(p.MigrationsDir(), key)
	require.NoError(p.t, os.MkdirAll(dir, 0o755), "failed to create migration directory")

	if upSQL != "" {
		require.NoError(p.t, os.WriteFile(filepath.Join(dir, "up.sql"), []byte(upSQL), 0o644))
	}
	if downSQL != "" {
		require.NoError(p.t, os.WriteFile(filepath.Join(dir, "down.sql"), []byte(downSQL), 0o644))
	}

	return p
}
