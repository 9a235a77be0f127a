// Package graph owns the nodes of the open graph directory and the library
// of graph directories.
package graph

import (
	"errors"
	"image"
	"strings"

	"go.uber.org/zap"

	"nodenotes/internal/apperr"
	"nodenotes/internal/metadata"
	"nodenotes/internal/node"
	"nodenotes/internal/store"
)

// Session is one open graph. Nodes are kept in load order, which is also the
// order hit-testing walks.
type Session struct {
	store *store.Store
	log   *zap.Logger
	side  int

	dir    string
	open   bool
	nodes  []*node.Node
	hover  node.ID
	target node.ID

	undo, redo []move
}

// NewSession returns a closed session whose nodes are squares of side nodeSide.
func NewSession(st *store.Store, nodeSide int, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{store: st, log: log, side: nodeSide}
}

func (s *Session) Dir() string     { return s.dir }
func (s *Session) IsOpen() bool    { return s.open }
func (s *Session) NodeSide() int   { return s.side }
func (s *Session) Target() node.ID { return s.target }
func (s *Session) Hover() node.ID  { return s.hover }
func (s *Session) Len() int        { return len(s.nodes) }

// ValidateTitle rejects titles that cannot name a note file or that would
// not survive the positions file.
func ValidateTitle(title string) error {
	if !metadata.ValidTitle(title) ||
		strings.ContainsAny(title, `/\`) ||
		title == "." || title == ".." ||
		strings.TrimSpace(title) != title {
		return apperr.New(apperr.KindInvalidName, title, nil)
	}
	return nil
}

// Open loads every note in dir. An already open graph is closed first.
func (s *Session) Open(dir string) error {
	if s.open {
		if err := s.Close(); err != nil {
			return err
		}
	}

	paths, err := s.store.ListNotes(dir)
	if err != nil {
		return err
	}

	positions, err := metadata.ReadFile(metadata.Path(dir))
	if err != nil {
		s.log.Warn("positions unreadable, using defaults", zap.String("dir", dir), zap.Error(err))
		positions = metadata.Positions{}
	}

	s.nodes = make([]*node.Node, 0, len(paths))
	for i, path := range paths {
		title := store.TitleOf(path)
		pos, ok := positions[title]
		if !ok {
			pos = metadata.DefaultPosition(i)
		}
		s.nodes = append(s.nodes, node.New(title, path, pos.X, pos.Y))
	}

	s.dir = dir
	s.open = true
	s.hover = node.ID{}
	s.target = node.ID{}
	s.forgetHistory()
	s.log.Info("graph opened", zap.String("dir", dir), zap.Int("nodes", len(s.nodes)))
	return nil
}

// Close records every node position and forgets the nodes. If the positions
// cannot be written the session stays open so the caller can retry.
func (s *Session) Close() error {
	if !s.open {
		return nil
	}

	entries := make([]metadata.Entry, 0, len(s.nodes))
	for _, n := range s.nodes {
		p := n.Position()
		entries = append(entries, metadata.Entry{Title: n.Title(), X: p.X, Y: p.Y})
	}
	path := metadata.Path(s.dir)
	if err := metadata.WriteFile(path, entries); err != nil {
		s.log.Error("positions not saved", zap.String("path", path), zap.Error(err))
		return apperr.New(apperr.KindFileUnwritable, path, err)
	}

	s.log.Info("graph closed", zap.String("dir", s.dir), zap.Int("nodes", len(s.nodes)))
	s.nodes = nil
	s.hover = node.ID{}
	s.target = node.ID{}
	s.dir = ""
	s.open = false
	s.forgetHistory()
	return nil
}

// Node returns the loaded node with the given id.
func (s *Session) Node(id node.ID) (*node.Node, bool) {
	if id.IsZero() {
		return nil, false
	}
	for _, n := range s.nodes {
		if n.ID() == id {
			return n, true
		}
	}
	return nil, false
}

// Nodes returns a drawing snapshot in load order.
func (s *Session) Nodes() []node.View {
	views := make([]node.View, len(s.nodes))
	for i, n := range s.nodes {
		views[i] = n.View()
	}
	return views
}

// Taken reports whether title is loaded or already has a file on disk.
func (s *Session) Taken(title string) bool {
	for _, n := range s.nodes {
		if n.Title() == title {
			return true
		}
	}
	return s.store.Exists(store.NotePath(s.dir, title))
}

func (s *Session) checkName(title string) error {
	if err := ValidateTitle(title); err != nil {
		return err
	}
	if s.Taken(title) {
		return apperr.New(apperr.KindDuplicateName, title, nil)
	}
	return nil
}

// EnsureUniqueName asks reprompt for another name until the candidate is a
// valid, free title. reprompt gets the rejected candidate and why it was
// rejected; returning false abandons the loop.
func (s *Session) EnsureUniqueName(candidate string, reprompt func(rejected string, reason error) (string, bool)) (string, bool) {
	for {
		err := s.checkName(candidate)
		if err == nil {
			return candidate, true
		}
		next, ok := reprompt(candidate, err)
		if !ok {
			return "", false
		}
		candidate = next
	}
}

// CreateNode makes an empty note called title centred on (x, y). The new node
// becomes both the hover target and the selected target.
func (s *Session) CreateNode(title string, x, y int) (node.ID, error) {
	if err := s.checkName(title); err != nil {
		return node.ID{}, err
	}
	path := store.NotePath(s.dir, title)
	if err := s.store.CreateEmpty(path); err != nil {
		return node.ID{}, err
	}

	n := node.New(title, path, x, y)
	s.nodes = append(s.nodes, n)
	s.Select(n.ID())
	s.SetHover(n.ID())
	s.log.Info("node created", zap.String("title", title), zap.Int("x", x), zap.Int("y", y))
	return n.ID(), nil
}

// RenameNode gives the node a new title and backing file. On failure the node
// keeps its old title and file.
func (s *Session) RenameNode(id node.ID, newTitle string) error {
	n, ok := s.Node(id)
	if !ok {
		return errors.New("rename: unknown node")
	}
	if n.Title() == newTitle {
		return nil
	}
	if err := s.checkName(newTitle); err != nil {
		return err
	}
	old := n.Title()
	if err := n.Rename(s.store, newTitle); err != nil {
		return err
	}
	s.log.Info("node renamed", zap.String("from", old), zap.String("to", newTitle))
	return nil
}

// DeleteNode removes the note file and the node. A failed delete is fatal to
// the caller and leaves the node loaded.
func (s *Session) DeleteNode(id node.ID) error {
	n, ok := s.Node(id)
	if !ok {
		return errors.New("delete: unknown node")
	}
	if err := s.store.Delete(n.Path()); err != nil {
		return err
	}
	s.drop(id)
	s.log.Info("node deleted", zap.String("title", n.Title()))
	return nil
}

func (s *Session) drop(id node.ID) {
	for i, n := range s.nodes {
		if n.ID() == id {
			s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)
			break
		}
	}
	if s.hover == id {
		s.hover = node.ID{}
	}
	if s.target == id {
		s.target = node.ID{}
	}
}

// HitTest returns the first node whose square contains (x, y). The enlarged
// square drawn for hovered and selected nodes is not used here.
func (s *Session) HitTest(x, y int) (node.ID, bool) {
	for _, n := range s.nodes {
		if n.Contains(x, y, s.side) {
			return n.ID(), true
		}
	}
	return node.ID{}, false
}

// SetHover moves the hover flag to id. The zero ID clears it.
func (s *Session) SetHover(id node.ID) {
	if s.hover == id {
		return
	}
	if old, ok := s.Node(s.hover); ok {
		old.SetHovered(false)
	}
	s.hover = node.ID{}
	if n, ok := s.Node(id); ok {
		n.SetHovered(true)
		s.hover = id
	}
}

// Select makes id the target. Any previous target is released first.
func (s *Session) Select(id node.ID) {
	if s.target == id {
		return
	}
	s.Deselect()
	if n, ok := s.Node(id); ok {
		n.SetSelected(true)
		s.target = id
	}
}

// Deselect releases the target, clearing its hover flag too.
func (s *Session) Deselect() {
	n, ok := s.Node(s.target)
	s.target = node.ID{}
	if !ok {
		return
	}
	n.Deselect()
	if s.hover == n.ID() {
		s.hover = node.ID{}
	}
}

// Sync reconciles the loaded nodes with the note files currently in the
// directory. Files that appeared become nodes at the first free default
// position, nodes whose file vanished are dropped.
func (s *Session) Sync() (added, removed []node.ID, err error) {
	if !s.open {
		return nil, nil, nil
	}
	paths, err := s.store.ListNotes(s.dir)
	if err != nil {
		return nil, nil, err
	}

	onDisk := make(map[string]bool, len(paths))
	for _, p := range paths {
		onDisk[p] = true
	}
	loaded := make(map[string]bool, len(s.nodes))
	for _, n := range append([]*node.Node(nil), s.nodes...) {
		loaded[n.Path()] = true
		if !onDisk[n.Path()] {
			removed = append(removed, n.ID())
			s.drop(n.ID())
		}
	}
	for _, p := range paths {
		if loaded[p] {
			continue
		}
		pos := s.freeSlot()
		n := node.New(store.TitleOf(p), p, pos.X, pos.Y)
		s.nodes = append(s.nodes, n)
		added = append(added, n.ID())
	}

	if len(added) > 0 || len(removed) > 0 {
		s.log.Info("graph resynced",
			zap.String("dir", s.dir),
			zap.Int("added", len(added)),
			zap.Int("removed", len(removed)))
	}
	return added, removed, nil
}

// freeSlot is the first default position whose square overlaps no loaded node.
func (s *Session) freeSlot() image.Point {
	for i := 0; ; i++ {
		pos := metadata.DefaultPosition(i)
		topLeft := pos.Sub(image.Pt(s.side/2, s.side/2))
		r := image.Rectangle{Min: topLeft, Max: topLeft.Add(image.Pt(s.side, s.side))}
		taken := false
		for _, n := range s.nodes {
			if n.Bounds(s.side).Overlaps(r) {
				taken = true
				break
			}
		}
		if !taken {
			return pos
		}
	}
}
