package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}

func TestEnsureParentDir_CreatesDirectoryInCWD(t *testing.T) {
	tmp, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	defer chdir(t, tmp)()

	got, err := EnsureParentDir(filepath.Join("data", "notes.db"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(tmp, "data", "notes.db"), got)

	fi, err := os.Stat(filepath.Join(tmp, "data"))
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	_, err = os.Stat(got)
	require.True(t, os.IsNotExist(err), "the file itself is left to the caller")

	if runtime.GOOS != "windows" {
		perm := fi.Mode().Perm()
		require.Equal(t, os.FileMode(0o700), perm&0o700)
	}
}

func TestEnsureParentDir_Idempotent(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "a", "b", "notes.db")

	first, err := EnsureParentDir(path)
	require.NoError(t, err)
	second, err := EnsureParentDir(path)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestEnsureParentDir_FailsIfFileBlocksTheDirectory(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "data"), []byte("x"), 0o660))

	_, err := EnsureParentDir(filepath.Join(tmp, "data", "notes.db"))
	require.Error(t, err)
}
