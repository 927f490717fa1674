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

func TestEnsureDir_CreatesDirectoryInCWD(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	got, err := EnsureDir("data")
	require.NoError(t, err)

	want := filepath.Join(tmp, "data")
	require.Equal(t, want, got)

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		perm := fi.Mode().Perm()
		require.Equal(t, os.FileMode(0o700), perm&0o700)
	}
}

func TestEnsureDir_AbsoluteAndNested(t *testing.T) {
	want := filepath.Join(t.TempDir(), "a", "b")

	got, err := EnsureDir(want)
	require.NoError(t, err)
	require.Equal(t, want, got)

	again, err := EnsureDir(want)
	require.NoError(t, err)
	require.Equal(t, got, again)
}

func TestEnsureDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	require.NoError(t, os.WriteFile("data", []byte("x"), 0o660))

	_, err := EnsureDir("data")
	require.Error(t, err, "should fail when a file exists with the same name")
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.png")
	require.NoError(t, os.WriteFile(path, []byte("12345"), 0o600))

	data, err := ReadFile(path, 5)
	require.NoError(t, err)
	require.Equal(t, []byte("12345"), data)

	data, err = ReadFile(path, 0)
	require.NoError(t, err)
	require.Len(t, data, 5)

	_, err = ReadFile(path, 4)
	require.ErrorIs(t, err, ErrTooLarge)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing"), 10)
	require.ErrorIs(t, err, os.ErrNotExist)
}
