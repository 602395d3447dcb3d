package afero

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndReadFile(t *testing.T) {
	fs := NewMemMapFs()

	require.NoError(t, WriteFile(fs, "/data/out.txt", []byte("hello"), 0o644))

	data, err := ReadFile(fs, "/data/out.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)
}

func TestExists(t *testing.T) {
	fs := NewMemMapFs()

	ok, err := Exists(fs, "/missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, WriteFile(fs, "/present", []byte("x"), 0o644))
	ok, err = Exists(fs, "/present")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEnsureParentDir(t *testing.T) {
	fs := NewMemMapFs()

	require.NoError(t, EnsureParentDir(fs, "/a/b/c/file.bin"))

	ok, err := Exists(fs, "/a/b/c")
	require.NoError(t, err)
	assert.True(t, ok)
}
