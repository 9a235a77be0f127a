package graph

import (
	"errors"
	"os"
	"path/filepath"
	"sort"

	"nodenotes/internal/apperr"
	"nodenotes/internal/metadata"
	"nodenotes/internal/store"
)

// Library is the directory every graph lives under, one subdirectory each.
type Library struct {
	root  string
	store *store.Store
}

// Summary describes one graph for listings.
type Summary struct {
	Name         string
	Path         string
	Notes        int
	HasPositions bool
}

func NewLibrary(root string, st *store.Store) *Library {
	return &Library{root: root, store: st}
}

func (l *Library) Root() string { return l.root }

// Path returns the directory of the graph called name.
func (l *Library) Path(name string) string {
	return filepath.Join(l.root, name)
}

// List returns the graph names, creating the root on first use.
func (l *Library) List() ([]string, error) {
	if err := os.MkdirAll(l.root, 0o755); err != nil {
		return nil, apperr.New(apperr.KindDirectoryUnreadable, l.root, err)
	}
	entries, err := os.ReadDir(l.root)
	if err != nil {
		return nil, apperr.New(apperr.KindDirectoryUnreadable, l.root, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Create makes an empty graph directory and returns its path.
func (l *Library) Create(name string) (string, error) {
	if err := ValidateTitle(name); err != nil {
		return "", err
	}
	dir := l.Path(name)
	if _, err := os.Stat(dir); err == nil {
		return "", apperr.New(apperr.KindDuplicateName, name, nil)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", apperr.New(apperr.KindFileUnwritable, dir, err)
	}
	return dir, nil
}

// Summarize counts the notes of the graph called name.
func (l *Library) Summarize(name string) (Summary, error) {
	dir := l.Path(name)
	notes, err := l.store.ListNotes(dir)
	if err != nil {
		return Summary{}, err
	}
	_, statErr := os.Stat(metadata.Path(dir))
	return Summary{
		Name:         name,
		Path:         dir,
		Notes:        len(notes),
		HasPositions: !errors.Is(statErr, os.ErrNotExist),
	}, nil
}
