package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/require"
)

// WriteScripts writes the given documents (relative path to content) into a fresh
// temporary directory and returns its absolute path.
func WriteScripts(t *testing.T, files map[string]string) string {
	t.Helper()

	tmpDir, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	for name, content := range files {
		path := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return tmpDir
}

// SetupScriptRepo writes the documents and initializes a Loam repository over them.
// It fails the test immediately on error.
func SetupScriptRepo(t *testing.T, files map[string]string, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	dir := WriteScripts(t, files)
	if len(opts) == 0 {
		opts = []loam.Option{loam.WithVersioning(false)}
	}

	repo, err := loam.Init(dir, opts...)
	require.NoError(t, err, "Failed to init loam repo")

	return dir, repo
}
