// Package node holds the note entity shown on the canvas.
package node

import (
	"image"
	"path/filepath"

	"github.com/google/uuid"

	"nodenotes/internal/store"
)

// ID identifies a node for as long as it is loaded. Hover and selection are
// tracked by ID so nothing dangles after a delete.
type ID struct {
	value string
}

// NewID returns a fresh random ID.
func NewID() ID {
	return ID{value: uuid.New().String()}
}

func (id ID) String() string {
	return id.value
}

// IsZero reports whether id refers to no node.
func (id ID) IsZero() bool {
	return id.value == ""
}

// Renamer moves a backing file.
type Renamer interface {
	Rename(oldPath, newPath string) error
}

// Node is one note: a title, its backing file and a centre point.
type Node struct {
	id       ID
	title    string
	path     string
	pos      image.Point
	hovered  bool
	selected bool
}

// View is a read-only copy of a node for drawing.
type View struct {
	ID       ID
	Title    string
	Path     string
	X, Y     int
	Hovered  bool
	Selected bool
}

func New(title, path string, x, y int) *Node {
	return &Node{
		id:    NewID(),
		title: title,
		path:  path,
		pos:   image.Pt(x, y),
	}
}

func (n *Node) ID() ID                { return n.id }
func (n *Node) Title() string         { return n.title }
func (n *Node) Path() string          { return n.path }
func (n *Node) Position() image.Point { return n.pos }
func (n *Node) Hovered() bool         { return n.hovered }
func (n *Node) Selected() bool        { return n.selected }

// Move re-centres the node on (x, y).
func (n *Node) Move(x, y int) {
	n.pos = image.Pt(x, y)
}

// Rename moves the backing file next to itself under newTitle and adopts the
// new title. If the move fails nothing changes.
func (n *Node) Rename(fs Renamer, newTitle string) error {
	newPath := filepath.Join(filepath.Dir(n.path), newTitle+store.Ext)
	if err := fs.Rename(n.path, newPath); err != nil {
		return err
	}
	n.title = newTitle
	n.path = newPath
	return nil
}

func (n *Node) SetHovered(v bool)  { n.hovered = v }
func (n *Node) SetSelected(v bool) { n.selected = v }

// Deselect clears both hover and selection.
func (n *Node) Deselect() {
	n.hovered = false
	n.selected = false
}

// Bounds is the clickable square of the given side centred on the node.
func (n *Node) Bounds(side int) image.Rectangle {
	topLeft := n.pos.Sub(image.Pt(side/2, side/2))
	return image.Rectangle{Min: topLeft, Max: topLeft.Add(image.Pt(side, side))}
}

// Contains reports whether (x, y) falls inside Bounds(side).
func (n *Node) Contains(x, y, side int) bool {
	return image.Pt(x, y).In(n.Bounds(side))
}

func (n *Node) View() View {
	return View{
		ID:       n.id,
		Title:    n.title,
		Path:     n.path,
		X:        n.pos.X,
		Y:        n.pos.Y,
		Hovered:  n.hovered,
		Selected: n.selected,
	}
}
