// Package event defines the input events the interaction loop consumes.
package event

import "fmt"

// Kind identifies an event.
type Kind int

const (
	Quit Kind = iota
	KeyDown
	TextInput
	PointerMove
	PointerDown
	PointerUp
	Resize
	Rescan
)

func (k Kind) String() string {
	switch k {
	case Quit:
		return "quit"
	case KeyDown:
		return "key"
	case TextInput:
		return "text"
	case PointerMove:
		return "move"
	case PointerDown:
		return "down"
	case PointerUp:
		return "up"
	case Resize:
		return "resize"
	case Rescan:
		return "rescan"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Button is a pointer button.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// Key names, as produced by the terminal front end.
const (
	KeyEscape    = "esc"
	KeyEnter     = "enter"
	KeyBackspace = "backspace"
	KeyDelete    = "delete"
	KeyArrowUp   = "up"
	KeyArrowDown = "down"
	KeyTab       = "tab"
	KeySave      = "ctrl+s"
	KeyPaste     = "ctrl+v"
	KeyCopy      = "ctrl+y"
	KeyUndo      = "ctrl+z"
	KeyRedo      = "ctrl+r"
)

// Event is one input. Only the fields relevant to Kind are set; pointer
// coordinates are world pixels.
type Event struct {
	Kind   Kind
	Key    string
	Text   string
	X, Y   int
	Button Button
	Clicks int
	Width  int
	Height int
}

func QuitEvent() Event                { return Event{Kind: Quit} }
func Key(name string) Event           { return Event{Kind: KeyDown, Key: name} }
func Text(s string) Event             { return Event{Kind: TextInput, Text: s} }
func Move(x, y int) Event             { return Event{Kind: PointerMove, X: x, Y: y} }
func Release(x, y int) Event          { return Event{Kind: PointerUp, X: x, Y: y, Button: ButtonLeft} }
func Resized(width, height int) Event { return Event{Kind: Resize, Width: width, Height: height} }
func RescanEvent() Event              { return Event{Kind: Rescan} }

// Press is a left-button press with the given click count.
func Press(x, y, clicks int) Event {
	return Event{Kind: PointerDown, X: x, Y: y, Button: ButtonLeft, Clicks: clicks}
}

func (e Event) String() string {
	switch e.Kind {
	case KeyDown:
		return fmt.Sprintf("key %q", e.Key)
	case TextInput:
		return fmt.Sprintf("text %q", e.Text)
	case PointerMove, PointerUp:
		return fmt.Sprintf("%s (%d,%d)", e.Kind, e.X, e.Y)
	case PointerDown:
		return fmt.Sprintf("down (%d,%d) x%d", e.X, e.Y, e.Clicks)
	case Resize:
		return fmt.Sprintf("resize %dx%d", e.Width, e.Height)
	}
	return e.Kind.String()
}

// Source blocks until the next event is available.
type Source interface {
	Next() Event
}

// Script replays a fixed list of events, then reports Quit forever.
type Script struct {
	events []Event
	pos    int
}

func NewScript(events ...Event) *Script {
	return &Script{events: events}
}

func (s *Script) Next() Event {
	if s.pos >= len(s.events) {
		return QuitEvent()
	}
	e := s.events[s.pos]
	s.pos++
	return e
}

// Remaining is the number of events not yet delivered.
func (s *Script) Remaining() int {
	return len(s.events) - s.pos
}

// Chan reads events from a channel. A closed channel reads as Quit.
type Chan struct {
	ch <-chan Event
}

func NewChan(ch <-chan Event) *Chan {
	return &Chan{ch: ch}
}

func (c *Chan) Next() Event {
	e, ok := <-c.ch
	if !ok {
		return QuitEvent()
	}
	return e
}
