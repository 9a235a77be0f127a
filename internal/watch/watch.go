// Package watch notices notes being added to or removed from the open graph
// directory by other programs.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"nodenotes/internal/store"
)

// Watcher follows at most one directory. Bursts of changes are reported once,
// after the directory has been quiet for the configured period.
type Watcher struct {
	fs     *fsnotify.Watcher
	log    *zap.Logger
	quiet  time.Duration
	notify func()

	mu   sync.Mutex
	dir  string
	done chan struct{}
	once sync.Once
}

// New starts a watcher that calls notify after each burst of changes.
func New(quiet time.Duration, notify func(), log *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	w := &Watcher{
		fs:     fw,
		log:    log,
		quiet:  quiet,
		notify: notify,
		done:   make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Watch switches to dir. An empty dir stops watching.
func (w *Watcher) Watch(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.dir == dir {
		return nil
	}
	if w.dir != "" {
		if err := w.fs.Remove(w.dir); err != nil {
			w.log.Debug("stop watching", zap.String("dir", w.dir), zap.Error(err))
		}
	}
	w.dir = ""
	if dir == "" {
		return nil
	}
	if err := w.fs.Add(dir); err != nil {
		return err
	}
	w.dir = dir
	w.log.Info("watching graph directory", zap.String("dir", dir))
	return nil
}

// Close stops the watcher. notify is not called afterwards.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}

// Relevant reports whether e can change which notes exist.
func Relevant(e fsnotify.Event) bool {
	if filepath.Ext(e.Name) != store.Ext {
		return false
	}
	return e.Has(fsnotify.Create) || e.Has(fsnotify.Remove) || e.Has(fsnotify.Rename)
}

func (w *Watcher) loop() {
	timer := time.NewTimer(w.quiet)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-w.done:
			return
		case e, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if Relevant(e) {
				w.log.Debug("note changed", zap.String("path", e.Name), zap.String("op", e.Op.String()))
				timer.Reset(w.quiet)
			}
		case <-timer.C:
			select {
			case <-w.done:
				return
			default:
			}
			w.notify()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Error("watcher error", zap.Error(err))
		}
	}
}
