package interact

import (
	"fmt"

	"go.uber.org/zap"

	"nodenotes/internal/node"
	"nodenotes/internal/prompt"
)

// openNode makes id the target and loads its note. The previous note is
// flushed first; if that fails the previous note stays open.
func (m *Machine) openNode(id node.ID) error {
	if m.state == NodeSelected && !m.closeNode() {
		return nil
	}
	n, ok := m.session.Node(id)
	if !ok {
		return nil
	}
	if err := m.buf.Open(m.store, id, n.Path()); err != nil {
		return err
	}
	m.session.Select(id)
	m.state = NodeSelected
	return nil
}

// closeNode flushes the open note and releases the target. It reports false
// if the note could not be written, in which case it stays open.
func (m *Machine) closeNode() bool {
	if err := m.flush(); err != nil {
		m.fail(err)
		return false
	}
	m.session.Deselect()
	m.state = NoSelection
	return true
}

// flush writes and releases the open note. An unchanged note is released
// without writing.
func (m *Machine) flush() error {
	if !m.buf.Dirty() {
		m.buf.Discard()
		return nil
	}
	return m.buf.Close(m.store)
}

func (m *Machine) createAt(x, y int) error {
	if m.state == NodeSelected && !m.closeNode() {
		return nil
	}
	title, ok := m.askName("Name the new note", fmt.Sprintf("node_at_%d_and_%d", x, y), "")
	if !ok {
		return nil
	}
	id, err := m.session.CreateNode(title, x, y)
	if err != nil {
		return err
	}
	return m.openNode(id)
}

// nodeMenu is shown when the editor header is clicked.
func (m *Machine) nodeMenu() error {
	n, ok := m.session.Node(m.session.Target())
	if !ok {
		return nil
	}
	res := m.ask(prompt.NewChoice(fmt.Sprintf("Note %q", n.Title()), optRename, optDelete, optCancel))
	if res.Outcome != prompt.Answered {
		return nil
	}
	switch res.Text {
	case optRename:
		return m.rename()
	case optDelete:
		return m.confirmDelete()
	}
	return nil
}

func (m *Machine) rename() error {
	id := m.session.Target()
	n, ok := m.session.Node(id)
	if !ok {
		return nil
	}
	old := n.Title()
	title, ok := m.askName(fmt.Sprintf("Rename %q to", old), old, old)
	if !ok || title == old {
		return nil
	}
	if err := m.session.RenameNode(id, title); err != nil {
		return err
	}
	m.buf.Retarget(n.Path())
	m.status = fmt.Sprintf("renamed %q to %q", old, title)
	return nil
}

// confirmDelete removes the target and its file once the user agrees.
func (m *Machine) confirmDelete() error {
	id := m.session.Target()
	n, ok := m.session.Node(id)
	if !ok {
		return nil
	}
	title := n.Title()
	res := m.ask(prompt.NewChoice(fmt.Sprintf("Delete %q and its file?", title), optDelete, optCancel))
	if res.Outcome != prompt.Answered || res.Text != optDelete {
		return nil
	}
	if err := m.session.DeleteNode(id); err != nil {
		return err
	}
	m.buf.Discard()
	m.state = NoSelection
	m.status = fmt.Sprintf("deleted %q", title)
	return nil
}

func (m *Machine) save() error {
	if err := m.buf.Save(m.store); err != nil {
		return err
	}
	m.status = "saved"
	return nil
}

func (m *Machine) paste() error {
	if m.clip == nil {
		return nil
	}
	text, err := m.clip.ReadText()
	if err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	m.buf.InsertText(text)
	return nil
}

func (m *Machine) copy() error {
	if m.clip == nil {
		return nil
	}
	if err := m.clip.WriteText(m.buf.Content()); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	m.status = "copied"
	return nil
}

// resync reloads the directory listing after an outside change. An open note
// whose file went away is dropped without writing it back.
func (m *Machine) resync() error {
	if !m.session.IsOpen() {
		return nil
	}
	_, removed, err := m.session.Sync()
	if err != nil {
		return err
	}
	owner := m.buf.Owner()
	for _, id := range removed {
		if m.buf.IsOpen() && id == owner {
			m.log.Warn("open note removed outside the app", zap.String("path", m.buf.Path()))
			m.buf.Discard()
			m.state = NoSelection
			m.status = "the open note was removed outside the app"
		}
	}
	return nil
}
