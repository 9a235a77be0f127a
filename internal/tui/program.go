package tui

import (
	"errors"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"nodenotes/internal/clip"
	"nodenotes/internal/config"
	"nodenotes/internal/event"
	"nodenotes/internal/graph"
	"nodenotes/internal/interact"
	"nodenotes/internal/render"
	"nodenotes/internal/store"
	"nodenotes/internal/watch"
)

const rescanQuiet = 250 * time.Millisecond

type (
	frameMsg struct{}
	doneMsg  struct{}
)

// screen keeps the latest drawn frame. Render is called from the machine
// goroutine and never waits for the terminal.
type screen struct {
	theme  render.Theme
	cw, ch int
	send   func(tea.Msg)

	mu   sync.Mutex
	view string
}

func (s *screen) Render(f render.Frame) {
	g := NewGrid(f.Width/s.cw, f.Height/s.ch, s.cw, s.ch)
	render.Draw(g, f, s.theme)
	s.mu.Lock()
	s.view = g.String()
	s.mu.Unlock()
	if s.send != nil {
		go s.send(frameMsg{})
	}
}

func (s *screen) View() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

type model struct {
	screen  *screen
	in      translator
	events  chan<- event.Event
	stopped <-chan struct{}
}

// push hands e to the machine unless it has already stopped.
func (m model) push(e event.Event) {
	select {
	case m.events <- e:
	case <-m.stopped:
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.push(m.in.resize(msg.Width, msg.Height))
	case tea.KeyMsg:
		m.push(m.in.key(msg))
	case tea.MouseMsg:
		if e, ok := m.in.mouse(msg); ok {
			m.push(e)
		}
	}
	return m, nil
}

func (m model) View() string {
	return m.screen.View()
}

// Run opens the terminal UI and blocks until the user quits. The returned
// error is whatever ended the session abnormally.
func Run(cfg *config.Config, log *zap.Logger) error {
	theme := cfg.Theme()
	st := store.New(log)
	lib := graph.NewLibrary(cfg.Root, st)

	events := make(chan event.Event, 64)
	stopped := make(chan struct{})

	scr := &screen{theme: theme, cw: cfg.TUI.CellWidth, ch: cfg.TUI.CellHeight}
	deps := interact.Deps{
		Store:    st,
		Library:  lib,
		Source:   event.NewChan(events),
		Renderer: scr,
		Log:      log,
		Theme:    theme,
	}
	if clip.Available() {
		deps.Clipboard = clip.New(log)
	}
	if cfg.Watch {
		w, err := watch.New(rescanQuiet, func() {
			select {
			case events <- event.RescanEvent():
			case <-stopped:
			}
		}, log)
		if err != nil {
			log.Warn("file watching disabled", zap.Error(err))
		} else {
			defer w.Close()
			deps.Watcher = w
		}
	}

	machine := interact.New(deps)
	if cfg.GraphDir() != "" {
		if err := machine.Open(cfg.GraphDir()); err != nil {
			return err
		}
	}

	m := model{
		screen:  scr,
		in:      translator{cw: scr.cw, ch: scr.ch, clicks: NewClickTracker(time.Duration(cfg.TUI.DoubleClickMS) * time.Millisecond)},
		events:  events,
		stopped: stopped,
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	scr.send = p.Send

	result := make(chan error, 1)
	go func() {
		err := machine.Run()
		close(stopped)
		result <- err
		p.Send(doneMsg{})
	}()

	if _, err := p.Run(); err != nil {
		log.Error("terminal program failed", zap.Error(err))
		go func() {
			select {
			case events <- event.QuitEvent():
			case <-stopped:
			}
		}()
		return errors.Join(err, <-result)
	}
	return <-result
}
