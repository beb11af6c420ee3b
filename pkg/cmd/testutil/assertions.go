package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// RequireFileExists asserts that a file exists and optionally checks its content.
func RequireFileExists(t *testing.T, path string, checks ...func(content string)) {
	t.Helper()

	require.FileExists(t, path, "File should exist: %s", path)

	if len(checks) > 0 {
		content, err := os.ReadFile(path)
		require.NoError(t, err, "Failed to read file: %s", path)

		contentStr := string(content)
		for _, check := range checks {
			check(contentStr)
		}
	}
}

// RequireFileContains returns a check function that verifies file contains text.
func RequireFileContains(t *testing.T, expected string) func(string) {
	return func(content string) {
		require.Contains(t, content, expected, "File should contain: %s", expected)
	}
}

// RequireFileNotContains returns a check function that verifies file doesn't contain text.
func RequireFileNotContains(t *testing.T, unexpected string) func(string) {
	return func(content string) {
		require.NotContains(t, content, unexpected, "File should not contain: %s", unexpected)
	}
}

// RequireMigrationPairExists asserts that a migration directory for key
// exists under migrationsDir with both an up.sql and down.sql file.
func RequireMigrationPairExists(t *testing.T, migrationsDir, key string) {
	t.Helper()

	dir := filepath.Join(migrationsDir, key)
	require.DirExists(t, dir, "migration directory should exist: %s", key)
	require.FileExists(t, filepath.Join(dir, "up.sql"))
	require.FileExists(t, filepath.Join(dir, "down.sql"))
}

// RequireNoFile asserts that a file does not exist.
func RequireNoFile(t *testing.T, path string) {
	t.Helper()

	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err), "File should not exist: %s", path)
}

// RequireNoDir asserts that a directory does not exist.
func RequireNoDir(t *testing.T, path string) {
	t.Helper()

	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err), "Directory should not exist: %s", path)
}

// RequireError asserts that an error occurred and optionally checks the message.
func RequireError(t *testing.T, err error, msgContains ...string) {
	t.Helper()

	require.Error(t, err, "Expected an error")

	for _, msg := range msgContains {
		require.Contains(t, err.Error(), msg, "Error message should contain: %s", msg)
	}
}

// RequireDirEmpty asserts that a directory is empty.
func RequireDirEmpty(t *testing.T, dirPath string) {
	t.Helper()

	entries, err := os.ReadDir(dirPath)
	require.NoError(t, err, "Failed to read directory")
	require.Empty(t, entries, "Directory should be empty: %s", dirPath)
}

// RequireDirNotEmpty asserts that a directory is not empty.
func RequireDirNotEmpty(t *testing.T, dirPath string) {
	t.Helper()

	entries, err := os.ReadDir(dirPath)
	require.NoError(t, err, "Failed to read directory")
	require.NotEmpty(t, entries, "Directory should not be empty: %s", dirPath)
}
