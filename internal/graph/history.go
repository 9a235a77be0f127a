package graph

import (
	"image"

	"nodenotes/internal/node"
)

// move is one recorded change of a node's position.
type move struct {
	id       node.ID
	from, to image.Point
}

// Move re-centres a node and records the change for Undo.
func (s *Session) Move(id node.ID, x, y int) {
	n, ok := s.Node(id)
	if !ok {
		return
	}
	from := n.Position()
	if from == image.Pt(x, y) {
		return
	}
	n.Move(x, y)
	s.undo = append(s.undo, move{id: id, from: from, to: image.Pt(x, y)})
	s.redo = s.redo[:0]
}

// Undo puts the most recently moved node back where it was. Moves of nodes
// that have since been deleted are skipped.
func (s *Session) Undo() (node.ID, bool) {
	for len(s.undo) > 0 {
		last := s.undo[len(s.undo)-1]
		s.undo = s.undo[:len(s.undo)-1]
		n, ok := s.Node(last.id)
		if !ok {
			continue
		}
		n.Move(last.from.X, last.from.Y)
		s.redo = append(s.redo, last)
		return last.id, true
	}
	return node.ID{}, false
}

// Redo repeats the most recently undone move.
func (s *Session) Redo() (node.ID, bool) {
	for len(s.redo) > 0 {
		last := s.redo[len(s.redo)-1]
		s.redo = s.redo[:len(s.redo)-1]
		n, ok := s.Node(last.id)
		if !ok {
			continue
		}
		n.Move(last.to.X, last.to.Y)
		s.undo = append(s.undo, last)
		return last.id, true
	}
	return node.ID{}, false
}

func (s *Session) forgetHistory() {
	s.undo = nil
	s.redo = nil
}
