// Package store reads and writes the plain-text files backing notes.
package store

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"nodenotes/internal/apperr"
)

// Ext is the extension every note file carries.
const Ext = ".txt"

// Store performs note file I/O. All failures come back as *apperr.Error.
type Store struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{log: log}
}

// NotePath returns the path of the note called title inside dir.
func NotePath(dir, title string) string {
	return filepath.Join(dir, title+Ext)
}

// TitleOf strips the directory and extension from a note path.
func TitleOf(path string) string {
	return strings.TrimSuffix(filepath.Base(path), Ext)
}

// ReadAll returns the whole content of path.
func (s *Store) ReadAll(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		s.log.Error("note unreadable", zap.String("path", path), zap.Error(err))
		return "", apperr.New(apperr.KindFileUnreadable, path, err)
	}
	return string(data), nil
}

// WriteAll truncates path and writes content.
func (s *Store) WriteAll(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		s.log.Warn("note unwritable", zap.String("path", path), zap.Error(err))
		return apperr.New(apperr.KindFileUnwritable, path, err)
	}
	return nil
}

// CreateEmpty creates an empty note at path, truncating an existing one.
func (s *Store) CreateEmpty(path string) error {
	f, err := os.Create(path)
	if err != nil {
		s.log.Warn("note not created", zap.String("path", path), zap.Error(err))
		return apperr.New(apperr.KindFileUnwritable, path, err)
	}
	return f.Close()
}

// Delete removes the note at path.
func (s *Store) Delete(path string) error {
	if err := os.Remove(path); err != nil {
		s.log.Error("note not deleted", zap.String("path", path), zap.Error(err))
		return apperr.New(apperr.KindDeleteFailed, path, err)
	}
	return nil
}

// Rename moves a note file.
func (s *Store) Rename(oldPath, newPath string) error {
	if err := os.Rename(oldPath, newPath); err != nil {
		s.log.Warn("note not renamed",
			zap.String("from", oldPath),
			zap.String("to", newPath),
			zap.Error(err))
		return apperr.New(apperr.KindRenameFailed, oldPath, err)
	}
	return nil
}

// Exists reports whether anything lives at path.
func (s *Store) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, os.ErrNotExist)
}

// ListNotes returns the note files in dir, sorted by name.
func (s *Store) ListNotes(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		s.log.Warn("graph directory unreadable", zap.String("dir", dir), zap.Error(err))
		return nil, apperr.New(apperr.KindDirectoryUnreadable, dir, err)
	}

	var notes []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if strings.HasSuffix(entry.Name(), Ext) {
			notes = append(notes, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(notes)
	return notes, nil
}
