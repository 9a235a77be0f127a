// Package interact is the controller of the application. It consumes one
// input event at a time, routes it to the open note or to the graph, and runs
// the modal prompts.
package interact

import (
	"errors"
	"fmt"
	"image"

	"go.uber.org/zap"

	"nodenotes/internal/apperr"
	"nodenotes/internal/editor"
	"nodenotes/internal/event"
	"nodenotes/internal/graph"
	"nodenotes/internal/node"
	"nodenotes/internal/prompt"
	"nodenotes/internal/render"
	"nodenotes/internal/store"
)

// Renderer receives a frame after every handled event.
type Renderer interface {
	Render(f render.Frame)
}

// Clipboard is the system clipboard as seen by the editor.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(text string) error
}

// DirWatcher follows the open graph directory. Watch("") stops watching.
type DirWatcher interface {
	Watch(dir string) error
}

// Deps wires a Machine. Clipboard and Watcher are optional.
type Deps struct {
	Store     *store.Store
	Library   *graph.Library
	Source    event.Source
	Renderer  Renderer
	Clipboard Clipboard
	Watcher   DirWatcher
	Log       *zap.Logger
	Theme     render.Theme
	Width     int
	Height    int
}

// Machine is single threaded: everything, including prompts, happens on the
// goroutine that calls Run.
type Machine struct {
	store   *store.Store
	library *graph.Library
	session *graph.Session
	buf     *editor.Buffer
	src     event.Source
	out     Renderer
	clip    Clipboard
	watcher DirWatcher
	log     *zap.Logger
	theme   render.Theme

	width, height int
	state         State
	prompt        *render.PromptView
	status        string
	pending       []event.Event

	// dragging is the node a press landed on; its release moves it.
	dragging node.ID
}

func New(d Deps) *Machine {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	width, height := d.Width, d.Height
	if width <= 0 || height <= 0 {
		width, height = 800, 600
	}
	return &Machine{
		store:   d.Store,
		library: d.Library,
		session: graph.NewSession(d.Store, d.Theme.NodeSide, log),
		buf:     editor.New(),
		src:     d.Source,
		out:     d.Renderer,
		clip:    d.Clipboard,
		watcher: d.Watcher,
		log:     log,
		theme:   d.Theme,
		width:   width,
		height:  height,
		state:   NoGraphOpen,
	}
}

func (m *Machine) State() State             { return m.state }
func (m *Machine) Session() *graph.Session  { return m.session }
func (m *Machine) Buffer() *editor.Buffer   { return m.buf }
func (m *Machine) Status() string           { return m.status }
func (m *Machine) Viewport() (int, int)     { return m.width, m.height }
func (m *Machine) Postpone(e event.Event)   { m.pending = append(m.pending, e) }
func (m *Machine) Resize(width, height int) { m.width, m.height = width, height }

// ShowPrompt draws the frame with v on top. Prompts call it once per event.
func (m *Machine) ShowPrompt(v *render.PromptView) {
	m.prompt = v
	m.render()
}

// Frame is a snapshot of what should be on screen.
func (m *Machine) Frame() render.Frame {
	f := render.Frame{
		Width:  m.width,
		Height: m.height,
		Nodes:  m.session.Nodes(),
		Prompt: m.prompt,
		Status: m.status,
	}
	if m.buf.IsOpen() {
		if n, ok := m.session.Node(m.buf.Owner()); ok {
			f.Editor = &render.EditorView{Title: n.Title(), Text: m.buf.Display()}
		}
	}
	return f
}

func (m *Machine) render() {
	if m.out != nil {
		m.out.Render(m.Frame())
	}
}

// Run processes events until the user quits or a fatal error occurs. Fatal
// errors are returned after an orderly shutdown.
func (m *Machine) Run() error {
	for m.state != ShuttingDown {
		var err error
		if m.state == NoGraphOpen {
			err = m.chooseGraph()
		} else {
			m.render()
			e := m.next()
			m.log.Debug("event", zap.Stringer("event", e), zap.Stringer("state", m.state))
			err = m.handle(e)
		}
		if err == nil {
			continue
		}
		if apperr.Fatal(err) {
			m.log.Error("fatal error, shutting down", zap.Error(err))
			return m.shutdown(err)
		}
		m.fail(err)
	}
	return m.shutdown(nil)
}

func (m *Machine) next() event.Event {
	if len(m.pending) > 0 {
		e := m.pending[0]
		m.pending = m.pending[1:]
		return e
	}
	return m.src.Next()
}

// shutdown flushes the open note and records positions. cause, if any, is
// returned ahead of anything that fails here.
func (m *Machine) shutdown(cause error) error {
	m.state = ShuttingDown
	var errs []error
	if cause != nil {
		errs = append(errs, cause)
	}
	if m.buf.IsOpen() {
		if err := m.flush(); err != nil {
			m.log.Error("note not flushed on exit", zap.String("path", m.buf.Path()), zap.Error(err))
			errs = append(errs, err)
		}
	}
	if err := m.session.Close(); err != nil {
		errs = append(errs, err)
	}
	m.watch("")
	m.log.Info("shut down", zap.Bool("clean", len(errs) == 0))
	return errors.Join(errs...)
}

// fail reports a recoverable error in the status line.
func (m *Machine) fail(err error) {
	m.log.Warn("operation failed", zap.Error(err))
	m.status = describe(err)
}

func describe(err error) string {
	var e *apperr.Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	switch e.Kind {
	case apperr.KindFileUnwritable:
		return fmt.Sprintf("could not write %s", e.Path)
	case apperr.KindRenameFailed:
		return fmt.Sprintf("could not rename %s", e.Path)
	case apperr.KindDirectoryUnreadable:
		return fmt.Sprintf("could not read %s", e.Path)
	case apperr.KindDuplicateName:
		return fmt.Sprintf("%q already exists", e.Path)
	case apperr.KindInvalidName:
		return fmt.Sprintf("%q is not a valid name", e.Path)
	}
	return err.Error()
}

func (m *Machine) watch(dir string) {
	if m.watcher == nil {
		return
	}
	if err := m.watcher.Watch(dir); err != nil {
		m.log.Warn("directory not watched", zap.String("dir", dir), zap.Error(err))
	}
}

// ask runs p to completion. A quit inside the prompt ends the machine.
func (m *Machine) ask(p prompt.Prompt) prompt.Result {
	prev := m.state
	m.state = ModalPrompt
	res := prompt.Run(m.src, m, p, m.theme)
	m.prompt = nil
	m.state = prev
	if res.Outcome == prompt.Quit {
		m.state = ShuttingDown
	}
	return res
}

// askName asks for a title that is valid and free in the open graph. An
// answer equal to current is accepted as is.
func (m *Machine) askName(message, initial, current string) (string, bool) {
	res := m.ask(prompt.NewTextInput(message, initial))
	if res.Outcome != prompt.Answered {
		return "", false
	}
	if current != "" && res.Text == current {
		return current, true
	}
	kept := false
	name, ok := m.session.EnsureUniqueName(res.Text, func(rejected string, reason error) (string, bool) {
		r := m.ask(prompt.NewTextInput(describe(reason)+", try another name", rejected))
		if r.Outcome == prompt.Answered && current != "" && r.Text == current {
			kept = true
			return "", false
		}
		return r.Text, r.Outcome == prompt.Answered
	})
	if kept {
		return current, true
	}
	return name, ok
}

func (m *Machine) handle(e event.Event) error {
	switch e.Kind {
	case event.Quit:
		m.state = ShuttingDown
	case event.Resize:
		m.Resize(e.Width, e.Height)
	case event.Rescan:
		return m.resync()
	case event.PointerMove:
		m.hover(e.X, e.Y)
	case event.PointerDown:
		if e.Button != event.ButtonLeft {
			return nil
		}
		m.status = ""
		return m.press(e.X, e.Y, e.Clicks)
	case event.PointerUp:
		m.release(e.X, e.Y)
	case event.KeyDown:
		m.status = ""
		return m.key(e.Key)
	case event.TextInput:
		if m.state == NodeSelected {
			m.buf.InsertText(e.Text)
		}
	}
	return nil
}

func (m *Machine) overPanel(x, y int) bool {
	return m.state == NodeSelected && image.Pt(x, y).In(m.theme.EditorPanel(m.width, m.height))
}

func (m *Machine) overHeader(x, y int) bool {
	return m.state == NodeSelected && image.Pt(x, y).In(m.theme.EditorHeader(m.width, m.height))
}

func (m *Machine) hover(x, y int) {
	if m.overPanel(x, y) {
		m.session.SetHover(node.ID{})
		return
	}
	id, _ := m.session.HitTest(x, y)
	m.session.SetHover(id)
}

func (m *Machine) press(x, y, clicks int) error {
	m.dragging = node.ID{}
	if m.overHeader(x, y) {
		return m.nodeMenu()
	}
	if m.overPanel(x, y) {
		return nil
	}

	if id, ok := m.session.HitTest(x, y); ok {
		m.dragging = id
		if id == m.session.Target() {
			return nil
		}
		return m.openNode(id)
	}
	if clicks >= 2 {
		return m.createAt(x, y)
	}
	if m.state == NodeSelected {
		m.closeNode()
	}
	return nil
}

func (m *Machine) release(x, y int) {
	id := m.dragging
	m.dragging = node.ID{}
	if id.IsZero() || m.state != NodeSelected || id != m.session.Target() || m.overPanel(x, y) {
		return
	}
	m.session.Move(id, x, y)
}

func (m *Machine) key(k string) error {
	switch k {
	case event.KeyUndo:
		m.session.Undo()
		return nil
	case event.KeyRedo:
		m.session.Redo()
		return nil
	}
	switch m.state {
	case NoSelection:
		if k == event.KeyEscape {
			return m.pauseMenu()
		}
	case NodeSelected:
		switch k {
		case event.KeyEscape:
			m.closeNode()
		case event.KeyDelete:
			return m.confirmDelete()
		case event.KeyBackspace:
			m.buf.Backspace()
		case event.KeyEnter:
			m.buf.Newline()
		case event.KeyTab:
			m.buf.InsertText("\t")
		case event.KeySave:
			return m.save()
		case event.KeyPaste:
			return m.paste()
		case event.KeyCopy:
			return m.copy()
		}
	}
	return nil
}
