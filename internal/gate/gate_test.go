package gate

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_NoPathsSkipsConfirm(t *testing.T) {
	called := false
	g := New(func(paths []string) (bool, error) {
		called = true
		return true, nil
	})
	deleted, err := g.Run(nil, func(string) error { return nil })
	require.NoError(t, err)
	assert.Nil(t, deleted)
	assert.False(t, called)
}

func TestRun_ConfirmsOnceOverWholeBatch(t *testing.T) {
	var seen []string
	calls := 0
	g := New(func(paths []string) (bool, error) {
		calls++
		seen = paths
		return true, nil
	})
	var deletedCalls []string
	deleted, err := g.Run([]string{"a", "b", "c"}, func(p string) error {
		deletedCalls = append(deletedCalls, p)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{"a", "b", "c"}, seen)
	assert.Equal(t, []string{"a", "b", "c"}, deleted)
	assert.Equal(t, []string{"a", "b", "c"}, deletedCalls)
}

func TestRun_DeclinedConfirmationDeletesNothing(t *testing.T) {
	g := New(func(paths []string) (bool, error) { return false, nil })
	called := false
	deleted, err := g.Run([]string{"a"}, func(string) error { called = true; return nil })
	require.NoError(t, err)
	assert.Nil(t, deleted)
	assert.False(t, called)
}

func TestRun_StopsAtFirstDeleteError(t *testing.T) {
	g := New(func(paths []string) (bool, error) { return true, nil })
	boom := errors.New("boom")
	deleted, err := g.Run([]string{"a", "b"}, func(p string) error {
		if p == "b" {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a"}, deleted)
}

func TestDeleteFile_RemovesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	require.NoError(t, DeleteFile(path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
