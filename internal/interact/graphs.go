package interact

import (
	"path/filepath"

	"nodenotes/internal/prompt"
)

// Open loads the graph in dir. On failure the machine stays without a graph.
func (m *Machine) Open(dir string) error {
	if err := m.session.Open(dir); err != nil {
		return err
	}
	m.state = NoSelection
	m.status = "opened " + filepath.Base(dir)
	m.watch(dir)
	return nil
}

// chooseGraph is the screen shown while no graph is open.
func (m *Machine) chooseGraph() error {
	names, err := m.library.List()
	if err != nil {
		m.fail(err)
	}
	options := append(append([]string(nil), names...), optNewGraph, optExit)

	res := m.ask(prompt.NewChoice("Choose a graph", options...))
	if res.Outcome != prompt.Answered {
		return nil
	}
	switch {
	case res.Index < len(names):
		return m.Open(m.library.Path(names[res.Index]))
	case res.Text == optExit:
		m.state = ShuttingDown
		return nil
	}

	name := m.ask(prompt.NewTextInput("Name the new graph", ""))
	if name.Outcome != prompt.Answered {
		return nil
	}
	dir, err := m.library.Create(name.Text)
	if err != nil {
		return err
	}
	return m.Open(dir)
}

// closeGraph returns to the graph chooser, flushing the open note and the
// node positions. Nothing is closed if either write fails.
func (m *Machine) closeGraph() error {
	if m.state == NodeSelected && !m.closeNode() {
		return nil
	}
	if err := m.session.Close(); err != nil {
		return err
	}
	m.watch("")
	m.state = NoGraphOpen
	return nil
}

func (m *Machine) pauseMenu() error {
	res := m.ask(prompt.NewChoice("Paused", optResume, optBackToGraphs, optSaveAndExit))
	if res.Outcome != prompt.Answered {
		return nil
	}
	switch res.Text {
	case optBackToGraphs:
		return m.closeGraph()
	case optSaveAndExit:
		m.state = ShuttingDown
	}
	return nil
}
