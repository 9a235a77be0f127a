package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"nodenotes/internal/event"
)

// ClickTracker counts consecutive presses on the same cell.
type ClickTracker struct {
	window   time.Duration
	now      func() time.Time
	last     time.Time
	col, row int
	count    int
}

func NewClickTracker(window time.Duration) *ClickTracker {
	return &ClickTracker{window: window, now: time.Now}
}

// Press records a press on (col, row) and returns its click count.
func (c *ClickTracker) Press(col, row int) int {
	t := c.now()
	if c.count > 0 && col == c.col && row == c.row && t.Sub(c.last) <= c.window {
		c.count++
	} else {
		c.count = 1
	}
	c.last, c.col, c.row = t, col, row
	return c.count
}

// translator turns bubbletea messages into application events.
type translator struct {
	cw, ch int
	clicks *ClickTracker
}

func (t *translator) key(msg tea.KeyMsg) event.Event {
	switch msg.Type {
	case tea.KeyCtrlC:
		return event.QuitEvent()
	case tea.KeyRunes:
		return event.Text(string(msg.Runes))
	case tea.KeySpace:
		return event.Text(" ")
	}
	return event.Key(msg.String())
}

func (t *translator) mouse(msg tea.MouseMsg) (event.Event, bool) {
	x, y := msg.X*t.cw+t.cw/2, msg.Y*t.ch+t.ch/2
	switch msg.Action {
	case tea.MouseActionMotion:
		return event.Move(x, y), true
	case tea.MouseActionRelease:
		return event.Release(x, y), true
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return event.Event{}, false
		}
		return event.Press(x, y, t.clicks.Press(msg.X, msg.Y)), true
	}
	return event.Event{}, false
}

// resize maps a terminal of cols x rows cells to a viewport in pixels.
func (t *translator) resize(cols, rows int) event.Event {
	return event.Resized(cols*t.cw, rows*t.ch)
}
