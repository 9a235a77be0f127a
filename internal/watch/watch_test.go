package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRelevant(t *testing.T) {
	assert.True(t, Relevant(fsnotify.Event{Name: "g/a.txt", Op: fsnotify.Create}))
	assert.True(t, Relevant(fsnotify.Event{Name: "g/a.txt", Op: fsnotify.Remove}))
	assert.True(t, Relevant(fsnotify.Event{Name: "g/a.txt", Op: fsnotify.Rename}))
	assert.False(t, Relevant(fsnotify.Event{Name: "g/a.txt", Op: fsnotify.Write}))
	assert.False(t, Relevant(fsnotify.Event{Name: "g/.graph", Op: fsnotify.Create}))
}

func TestNotifiesOnceForABurst(t *testing.T) {
	dir := t.TempDir()
	fired := make(chan struct{}, 10)
	w, err := New(50*time.Millisecond, func() { fired <- struct{}{} }, zap.NewNop())
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Watch(dir))

	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("no notification")
	}
}

func TestWatchSwitchesAndStops(t *testing.T) {
	w, err := New(time.Millisecond, func() {}, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, w.Watch(t.TempDir()))
	require.NoError(t, w.Watch(t.TempDir()))
	require.NoError(t, w.Watch(""))
	assert.Error(t, w.Watch(filepath.Join(t.TempDir(), "missing")))

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}
