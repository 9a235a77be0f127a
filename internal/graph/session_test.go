package graph

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"nodenotes/internal/apperr"
	"nodenotes/internal/metadata"
	"nodenotes/internal/node"
	"nodenotes/internal/store"
)

const side = 25

func newSession(t *testing.T) *Session {
	log := zaptest.NewLogger(t)
	return NewSession(store.New(log), side, log)
}

func writeNotes(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
	}
}

func titles(s *Session) []string {
	var out []string
	for _, v := range s.Nodes() {
		out = append(out, v.Title)
	}
	return out
}

func positionOf(t *testing.T, s *Session, title string) image.Point {
	t.Helper()
	for _, v := range s.Nodes() {
		if v.Title == title {
			return image.Pt(v.X, v.Y)
		}
	}
	t.Fatalf("node %q not loaded", title)
	return image.Point{}
}

func TestOpenWithoutPositionsUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeNotes(t, dir, "c.txt", "a.txt", "b.txt", "readme.md")
	s := newSession(t)

	require.NoError(t, s.Open(dir))

	assert.Equal(t, []string{"a", "b", "c"}, titles(s))
	assert.Equal(t, image.Pt(100, 100), positionOf(t, s, "a"))
	assert.Equal(t, image.Pt(150, 100), positionOf(t, s, "b"))
	assert.Equal(t, image.Pt(200, 100), positionOf(t, s, "c"))
}

func TestOpenUsesRecordedPositions(t *testing.T) {
	dir := t.TempDir()
	writeNotes(t, dir, "a.txt", "b.txt")
	require.NoError(t, os.WriteFile(metadata.Path(dir), []byte("b at 40,60\n"), 0o644))
	s := newSession(t)

	require.NoError(t, s.Open(dir))

	assert.Equal(t, image.Pt(100, 100), positionOf(t, s, "a"))
	assert.Equal(t, image.Pt(40, 60), positionOf(t, s, "b"))
}

func TestOpenMissingDirectory(t *testing.T) {
	s := newSession(t)
	err := s.Open(filepath.Join(t.TempDir(), "missing"))

	assert.ErrorIs(t, err, apperr.ErrDirectoryUnreadable)
	assert.False(t, s.IsOpen())
}

func TestCloseWritesPositionsAndIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeNotes(t, dir, "a.txt")
	s := newSession(t)
	require.NoError(t, s.Open(dir))

	id, ok := s.HitTest(100, 100)
	require.True(t, ok)
	s.Move(id, 300, 400)

	require.NoError(t, s.Close())
	assert.False(t, s.IsOpen())
	assert.Zero(t, s.Len())
	require.NoError(t, s.Close())

	positions, err := metadata.ReadFile(metadata.Path(dir))
	require.NoError(t, err)
	assert.Equal(t, metadata.Positions{"a": image.Pt(300, 400)}, positions)

	require.NoError(t, s.Open(dir))
	assert.Equal(t, image.Pt(300, 400), positionOf(t, s, "a"))
}

func TestCreateNodeSelectsAndHovers(t *testing.T) {
	dir := t.TempDir()
	s := newSession(t)
	require.NoError(t, s.Open(dir))

	id, err := s.CreateNode("idea", 50, 70)
	require.NoError(t, err)

	assert.Equal(t, id, s.Target())
	assert.Equal(t, id, s.Hover())
	n, ok := s.Node(id)
	require.True(t, ok)
	assert.True(t, n.Selected())
	assert.True(t, n.Hovered())
	assert.FileExists(t, filepath.Join(dir, "idea.txt"))
}

func TestCreateNodeRejectsDuplicatesAndBadNames(t *testing.T) {
	dir := t.TempDir()
	writeNotes(t, dir, "taken.txt")
	s := newSession(t)
	require.NoError(t, s.Open(dir))

	_, err := s.CreateNode("taken", 0, 0)
	assert.ErrorIs(t, err, apperr.ErrDuplicateName)

	for _, bad := range []string{"", "a/b", "lunch at noon", " padded", "line\nbreak", ".."} {
		_, err := s.CreateNode(bad, 0, 0)
		assert.ErrorIs(t, err, apperr.ErrInvalidName, bad)
	}
	assert.Equal(t, 1, s.Len())
}

func TestTitlesStayUniqueAcrossCreateAndRename(t *testing.T) {
	dir := t.TempDir()
	s := newSession(t)
	require.NoError(t, s.Open(dir))

	a, err := s.CreateNode("a", 0, 0)
	require.NoError(t, err)
	_, err = s.CreateNode("b", 100, 0)
	require.NoError(t, err)

	assert.ErrorIs(t, s.RenameNode(a, "b"), apperr.ErrDuplicateName)
	_, err = s.CreateNode("a", 0, 0)
	assert.ErrorIs(t, err, apperr.ErrDuplicateName)
	require.NoError(t, s.RenameNode(a, "c"))
	_, err = s.CreateNode("a", 0, 0)
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, title := range titles(s) {
		assert.False(t, seen[title], "duplicate title %q", title)
		seen[title] = true
	}
}

func TestRenameNodeMovesFile(t *testing.T) {
	dir := t.TempDir()
	writeNotes(t, dir, "foo.txt")
	s := newSession(t)
	require.NoError(t, s.Open(dir))
	id, _ := s.HitTest(100, 100)

	require.NoError(t, s.RenameNode(id, "bar"))

	n, _ := s.Node(id)
	assert.Equal(t, "bar", n.Title())
	assert.Equal(t, filepath.Join(dir, "bar.txt"), n.Path())
	assert.NoFileExists(t, filepath.Join(dir, "foo.txt"))
	assert.FileExists(t, filepath.Join(dir, "bar.txt"))
}

func TestRenameNodeFailureKeepsTitle(t *testing.T) {
	dir := t.TempDir()
	writeNotes(t, dir, "foo.txt")
	s := newSession(t)
	require.NoError(t, s.Open(dir))
	id, _ := s.HitTest(100, 100)

	// The backing file disappears underneath the session, so the rename fails.
	require.NoError(t, os.Remove(filepath.Join(dir, "foo.txt")))
	err := s.RenameNode(id, "bar")

	assert.ErrorIs(t, err, apperr.ErrRenameFailed)
	n, _ := s.Node(id)
	assert.Equal(t, "foo", n.Title())
	assert.Equal(t, filepath.Join(dir, "foo.txt"), n.Path())
	assert.NoFileExists(t, filepath.Join(dir, "bar.txt"))
}

func TestDeleteThenReopen(t *testing.T) {
	dir := t.TempDir()
	s := newSession(t)
	require.NoError(t, s.Open(dir))
	id, err := s.CreateNode("doomed", 100, 100)
	require.NoError(t, err)
	n, _ := s.Node(id)
	require.NoError(t, os.WriteFile(n.Path(), []byte("content"), 0o644))

	require.NoError(t, s.DeleteNode(id))
	assert.True(t, s.Target().IsZero())
	assert.True(t, s.Hover().IsZero())
	require.NoError(t, s.Close())

	require.NoError(t, s.Open(dir))
	assert.Empty(t, titles(s))
	assert.NoFileExists(t, filepath.Join(dir, "doomed.txt"))
}

func TestDeleteNodeFailureIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeNotes(t, dir, "a.txt")
	s := newSession(t)
	require.NoError(t, s.Open(dir))
	id, _ := s.HitTest(100, 100)
	require.NoError(t, os.Remove(filepath.Join(dir, "a.txt")))

	err := s.DeleteNode(id)

	assert.ErrorIs(t, err, apperr.ErrDeleteFailed)
	assert.True(t, apperr.Fatal(err))
	assert.Equal(t, 1, s.Len())
}

func TestHitTest(t *testing.T) {
	dir := t.TempDir()
	writeNotes(t, dir, "a.txt")
	s := newSession(t)
	require.NoError(t, s.Open(dir))

	id, ok := s.HitTest(100, 100)
	assert.True(t, ok)
	assert.False(t, id.IsZero())

	_, ok = s.HitTest(100+side, 100)
	assert.False(t, ok)
}

func TestHitTestIgnoresHoverEnlargement(t *testing.T) {
	dir := t.TempDir()
	writeNotes(t, dir, "a.txt")
	s := newSession(t)
	require.NoError(t, s.Open(dir))
	id, _ := s.HitTest(100, 100)
	s.SetHover(id)
	s.Select(id)

	// Just outside the base square but inside the drawn, enlarged one.
	_, ok := s.HitTest(100+side/2+2, 100)
	assert.False(t, ok)
}

func TestHitTestFirstMatchWins(t *testing.T) {
	dir := t.TempDir()
	writeNotes(t, dir, "a.txt", "b.txt")
	require.NoError(t, os.WriteFile(metadata.Path(dir), []byte("a at 100,100\nb at 105,100\n"), 0o644))
	s := newSession(t)
	require.NoError(t, s.Open(dir))

	id, ok := s.HitTest(103, 100)
	require.True(t, ok)
	n, _ := s.Node(id)
	assert.Equal(t, "a", n.Title())
}

func TestHoverAndSelectionAreIndependent(t *testing.T) {
	dir := t.TempDir()
	writeNotes(t, dir, "a.txt", "b.txt")
	s := newSession(t)
	require.NoError(t, s.Open(dir))
	a, _ := s.HitTest(100, 100)
	b, _ := s.HitTest(150, 100)

	s.Select(a)
	s.SetHover(b)

	na, _ := s.Node(a)
	nb, _ := s.Node(b)
	assert.True(t, na.Selected())
	assert.False(t, na.Hovered())
	assert.True(t, nb.Hovered())
	assert.False(t, nb.Selected())

	s.Select(b)
	assert.False(t, na.Selected())
	assert.True(t, nb.Selected())

	s.Deselect()
	assert.False(t, nb.Selected())
	assert.False(t, nb.Hovered())
	assert.True(t, s.Hover().IsZero())
	assert.True(t, s.Target().IsZero())
}

func TestEnsureUniqueNameLoopsUntilFree(t *testing.T) {
	dir := t.TempDir()
	writeNotes(t, dir, "a.txt", "b.txt")
	s := newSession(t)
	require.NoError(t, s.Open(dir))

	answers := []string{"b", "bad at name", "c"}
	var rejected []string
	name, ok := s.EnsureUniqueName("a", func(candidate string, reason error) (string, bool) {
		rejected = append(rejected, candidate)
		next := answers[0]
		answers = answers[1:]
		return next, true
	})

	assert.True(t, ok)
	assert.Equal(t, "c", name)
	assert.Equal(t, []string{"a", "b", "bad at name"}, rejected)
}

func TestEnsureUniqueNameAbandoned(t *testing.T) {
	dir := t.TempDir()
	writeNotes(t, dir, "a.txt")
	s := newSession(t)
	require.NoError(t, s.Open(dir))

	_, ok := s.EnsureUniqueName("a", func(string, error) (string, bool) { return "", false })
	assert.False(t, ok)
}

func TestSyncPicksUpExternalChanges(t *testing.T) {
	dir := t.TempDir()
	writeNotes(t, dir, "a.txt", "b.txt")
	s := newSession(t)
	require.NoError(t, s.Open(dir))
	b, _ := s.HitTest(150, 100)
	s.Select(b)

	require.NoError(t, os.Remove(filepath.Join(dir, "b.txt")))
	writeNotes(t, dir, "c.txt")

	added, removed, err := s.Sync()
	require.NoError(t, err)
	assert.Len(t, added, 1)
	assert.Equal(t, []node.ID{b}, removed)
	assert.Equal(t, []string{"a", "c"}, titles(s))
	assert.True(t, s.Target().IsZero())
	c := positionOf(t, s, "c")
	hit, ok := s.HitTest(c.X, c.Y)
	require.True(t, ok)
	assert.Equal(t, added[0], hit)

	added, removed, err = s.Sync()
	require.NoError(t, err)
	assert.Empty(t, added)
	assert.Empty(t, removed)
}

func TestSyncPlacesNewNotesClearOfLoadedOnes(t *testing.T) {
	dir := t.TempDir()
	writeNotes(t, dir, "b.txt", "c.txt", "d.txt")
	s := newSession(t)
	require.NoError(t, s.Open(dir))

	writeNotes(t, dir, "a.txt", "e.txt")
	added, _, err := s.Sync()
	require.NoError(t, err)
	require.Len(t, added, 2)

	assert.Equal(t, image.Pt(250, 100), positionOf(t, s, "a"))
	assert.Equal(t, image.Pt(300, 100), positionOf(t, s, "e"))
	hit, ok := s.HitTest(250, 100)
	require.True(t, ok)
	assert.Equal(t, added[0], hit)
	hit, _ = s.HitTest(100, 100)
	assert.NotEqual(t, added[0], hit)
}
