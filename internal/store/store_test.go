package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"nodenotes/internal/apperr"
)

func newStore(t *testing.T) *Store {
	return New(zaptest.NewLogger(t))
}

func TestReadWriteRoundTrip(t *testing.T) {
	s := newStore(t)
	path := filepath.Join(t.TempDir(), "a.txt")

	require.NoError(t, s.WriteAll(path, "first version, longer"))
	require.NoError(t, s.WriteAll(path, "second"))

	got, err := s.ReadAll(path)
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestReadAllMissingIsUnreadable(t *testing.T) {
	s := newStore(t)
	_, err := s.ReadAll(filepath.Join(t.TempDir(), "nope.txt"))

	require.ErrorIs(t, err, apperr.ErrFileUnreadable)
	assert.True(t, apperr.Fatal(err))
}

func TestWriteAllIntoMissingDirIsUnwritable(t *testing.T) {
	s := newStore(t)
	err := s.WriteAll(filepath.Join(t.TempDir(), "missing", "a.txt"), "x")

	require.ErrorIs(t, err, apperr.ErrFileUnwritable)
	assert.False(t, apperr.Fatal(err))
}

func TestCreateEmptyAndDelete(t *testing.T) {
	s := newStore(t)
	path := filepath.Join(t.TempDir(), "n.txt")

	require.NoError(t, s.CreateEmpty(path))
	assert.True(t, s.Exists(path))
	content, err := s.ReadAll(path)
	require.NoError(t, err)
	assert.Empty(t, content)

	require.NoError(t, s.Delete(path))
	assert.False(t, s.Exists(path))

	err = s.Delete(path)
	require.ErrorIs(t, err, apperr.ErrDeleteFailed)
	assert.True(t, apperr.Fatal(err))
}

func TestRename(t *testing.T) {
	s := newStore(t)
	dir := t.TempDir()
	from := filepath.Join(dir, "foo.txt")
	to := filepath.Join(dir, "bar.txt")
	require.NoError(t, os.WriteFile(from, []byte("x"), 0o644))

	require.NoError(t, s.Rename(from, to))
	assert.False(t, s.Exists(from))
	assert.True(t, s.Exists(to))

	err := s.Rename(from, to)
	assert.ErrorIs(t, err, apperr.ErrRenameFailed)
}

func TestListNotesFiltersAndSorts(t *testing.T) {
	s := newStore(t)
	dir := t.TempDir()
	for _, name := range []string{"b.txt", "a.txt", ".graph", "image.png", "c.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.txt"), 0o755))

	notes, err := s.ListNotes(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "b.txt"),
		filepath.Join(dir, "c.txt"),
	}, notes)
}

func TestListNotesMissingDir(t *testing.T) {
	s := newStore(t)
	_, err := s.ListNotes(filepath.Join(t.TempDir(), "gone"))
	assert.ErrorIs(t, err, apperr.ErrDirectoryUnreadable)
}

func TestTitleOf(t *testing.T) {
	assert.Equal(t, "my note", TitleOf(NotePath("/g", "my note")))
}
