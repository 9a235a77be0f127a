package render

import (
	"image"

	"nodenotes/internal/node"
)

// Frame is everything needed to draw one screen.
type Frame struct {
	Width, Height int
	Nodes         []node.View
	Editor        *EditorView
	Prompt        *PromptView
	Status        string
}

// EditorView is the open note.
type EditorView struct {
	Title string
	Text  string
}

// PromptView is a modal prompt with its geometry already laid out.
type PromptView struct {
	Message   string
	Options   []string
	Selected  int
	TextInput bool
	Input     string

	Box         image.Rectangle
	MessageRect image.Rectangle
	OptionRects []image.Rectangle
	InputRect   image.Rectangle
}

// Draw paints f onto s: canvas and nodes first, then the editor panel, the
// status line and finally any prompt on top.
func Draw(s Surface, f Frame, t Theme) {
	s.Clear(t.Background)

	for _, n := range f.Nodes {
		drawNode(s, n, t)
	}
	if f.Editor != nil {
		drawEditor(s, f, t)
	}
	if f.Status != "" {
		s.DrawText(f.Status, t.TextInset, f.Height-t.StatusHeight, t.StatusSize, t.Status, TextOptions{})
	}
	if f.Prompt != nil {
		drawPrompt(s, f.Prompt, t)
	}
}

func drawNode(s Surface, n node.View, t Theme) {
	c := t.Node
	switch {
	case n.Selected:
		c = t.NodeSelected
	case n.Hovered:
		c = t.NodeHover
	}
	r := t.NodeRect(n.X, n.Y, n.Hovered || n.Selected)
	s.DrawRect(r, c)
	s.DrawText(n.Title, n.X, r.Max.Y+2, t.LabelSize, t.Label, TextOptions{Centered: true})
}

func drawEditor(s Surface, f Frame, t Theme) {
	panel := t.EditorPanel(f.Width, f.Height)
	header := t.EditorHeader(f.Width, f.Height)
	s.DrawRect(panel, t.Panel)
	s.DrawRect(header, t.Header)
	s.DrawText(f.Editor.Title, panel.Min.X+t.TextInset, header.Min.Y, t.TitleSize, t.Ink, TextOptions{})
	s.DrawText(f.Editor.Text, panel.Min.X+t.TextInset, header.Max.Y, t.BodySize, t.Ink,
		TextOptions{WrapWidth: panel.Dx() - 2*t.TextInset})
}

func drawPrompt(s Surface, p *PromptView, t Theme) {
	s.DrawRect(p.Box, t.Menu)
	s.DrawText(p.Message, p.MessageRect.Min.X, p.MessageRect.Min.Y, t.MessageSize, t.MenuText,
		TextOptions{WrapWidth: p.MessageRect.Dx()})

	if p.TextInput {
		s.DrawRect(p.InputRect, t.Input)
		s.DrawText(p.Input+"|", p.InputRect.Min.X+t.TextInset, p.InputRect.Min.Y, t.BodySize, t.Ink, TextOptions{})
		return
	}
	for i, r := range p.OptionRects {
		bg := t.Option
		if i == p.Selected {
			bg = t.OptionActive
		}
		s.DrawRect(r, bg)
		mid := r.Min.X + r.Dx()/2
		s.DrawText(p.Options[i], mid, r.Min.Y, t.OptionSize, t.Ink, TextOptions{Centered: true})
	}
}
