// Package prompt implements the modal dialogs: a list of choices or a single
// line of text input. Both run the same blocking loop until they are
// answered, cancelled or the application is asked to quit.
package prompt

import (
	"image"
	"strings"
	"unicode/utf8"

	"nodenotes/internal/event"
	"nodenotes/internal/render"
)

// Kind selects the payload of a prompt.
type Kind int

const (
	Choice Kind = iota
	TextInput
)

// Prompt describes one dialog.
type Prompt struct {
	Kind    Kind
	Message string
	Options []string
	Initial string
}

func NewChoice(message string, options ...string) Prompt {
	return Prompt{Kind: Choice, Message: message, Options: options}
}

func NewTextInput(message, initial string) Prompt {
	return Prompt{Kind: TextInput, Message: message, Initial: initial}
}

// Outcome says how a prompt ended.
type Outcome int

const (
	Answered Outcome = iota
	Cancelled
	Quit
)

func (o Outcome) String() string {
	switch o {
	case Answered:
		return "answered"
	case Cancelled:
		return "cancelled"
	}
	return "quit"
}

// Result of a prompt. Index is set for choices, Text for text input.
type Result struct {
	Outcome Outcome
	Index   int
	Text    string
}

// Host is what the loop draws to and learns the screen size from.
type Host interface {
	Viewport() (width, height int)
	Resize(width, height int)
	ShowPrompt(v *render.PromptView)
	// Postpone keeps an event the prompt does not consume for after it closes.
	Postpone(e event.Event)
}

// Layout positions p centred in a width x height viewport.
func Layout(p Prompt, width, height int, t render.Theme) render.PromptView {
	div := t.MenuWidthDivisor
	if div < 1 {
		div = 1
	}
	pad := t.MenuPadding
	w := width / div
	content := w - 2*pad

	h := 3*pad + t.MenuMessageHeight
	if p.Kind == TextInput {
		h += t.MenuInputHeight
	} else if n := len(p.Options); n > 0 {
		h += n*(t.MenuOptionHeight+t.MenuOptionSpacing) - t.MenuOptionSpacing
	}

	x0 := (width - w) / 2
	y0 := max((height-h)/2, 0)
	body := y0 + 2*pad + t.MenuMessageHeight

	v := render.PromptView{
		Message:     p.Message,
		Options:     p.Options,
		TextInput:   p.Kind == TextInput,
		Input:       p.Initial,
		Box:         image.Rect(x0, y0, x0+w, y0+h),
		MessageRect: image.Rect(x0+pad, y0+pad, x0+pad+content, y0+pad+t.MenuMessageHeight),
	}
	if v.TextInput {
		v.InputRect = image.Rect(x0+pad, body, x0+pad+content, body+t.MenuInputHeight)
		return v
	}
	v.OptionRects = make([]image.Rectangle, len(p.Options))
	for i := range p.Options {
		top := body + i*(t.MenuOptionHeight+t.MenuOptionSpacing)
		v.OptionRects[i] = image.Rect(x0+pad, top, x0+pad+content, top+t.MenuOptionHeight)
	}
	return v
}

// OptionAt returns the option under (x, y).
func OptionAt(v *render.PromptView, x, y int) (int, bool) {
	pt := image.Pt(x, y)
	for i, r := range v.OptionRects {
		if pt.In(r) {
			return i, true
		}
	}
	return -1, false
}

// Run shows p and blocks on src until the prompt resolves.
func Run(src event.Source, host Host, p Prompt, t render.Theme) Result {
	width, height := host.Viewport()
	v := Layout(p, width, height, t)

	for {
		host.ShowPrompt(&v)
		e := src.Next()

		switch e.Kind {
		case event.Quit:
			return Result{Outcome: Quit, Index: -1}
		case event.Resize:
			host.Resize(e.Width, e.Height)
			selected, input := v.Selected, v.Input
			v = Layout(p, e.Width, e.Height, t)
			v.Selected, v.Input = selected, input
			continue
		case event.Rescan:
			host.Postpone(e)
			continue
		case event.KeyDown:
			if e.Key == event.KeyEscape {
				return Result{Outcome: Cancelled, Index: -1}
			}
		}

		var (
			res  Result
			done bool
		)
		if p.Kind == TextInput {
			res, done = textStep(&v, e)
		} else {
			res, done = choiceStep(&v, e)
		}
		if done {
			return res
		}
	}
}

func choiceStep(v *render.PromptView, e event.Event) (Result, bool) {
	n := len(v.Options)
	if n == 0 {
		return Result{}, false
	}
	answer := func(i int) (Result, bool) {
		return Result{Outcome: Answered, Index: i, Text: v.Options[i]}, true
	}

	switch e.Kind {
	case event.KeyDown:
		switch e.Key {
		case event.KeyArrowUp:
			v.Selected = (v.Selected + n - 1) % n
		case event.KeyArrowDown, event.KeyTab:
			v.Selected = (v.Selected + 1) % n
		case event.KeyEnter:
			return answer(v.Selected)
		}
	case event.TextInput:
		if len(e.Text) == 1 && e.Text[0] >= '1' && e.Text[0] <= '9' {
			if i := int(e.Text[0] - '1'); i < n {
				return answer(i)
			}
		}
	case event.PointerMove:
		if i, ok := OptionAt(v, e.X, e.Y); ok {
			v.Selected = i
		}
	case event.PointerDown:
		if i, ok := OptionAt(v, e.X, e.Y); ok {
			return answer(i)
		}
	}
	return Result{}, false
}

func textStep(v *render.PromptView, e event.Event) (Result, bool) {
	switch e.Kind {
	case event.TextInput:
		v.Input += strings.Map(func(r rune) rune {
			if r == '\n' || r == '\r' {
				return -1
			}
			return r
		}, e.Text)
	case event.KeyDown:
		switch e.Key {
		case event.KeyBackspace:
			if v.Input != "" {
				_, size := utf8.DecodeLastRuneInString(v.Input)
				v.Input = v.Input[:len(v.Input)-size]
			}
		case event.KeyEnter:
			if v.Input != "" {
				return Result{Outcome: Answered, Index: -1, Text: v.Input}, true
			}
		}
	}
	return Result{}, false
}
