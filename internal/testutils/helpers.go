package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TempDir returns an absolute temporary directory removed when the test ends.
func TempDir(t *testing.T) string {
	t.Helper()

	abs, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")
	return abs
}

// WriteFile writes content to name inside a fresh temp dir and returns its path.
// It fails the test immediately on error.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(TempDir(t), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "Failed to write %s", name)
	return path
}
