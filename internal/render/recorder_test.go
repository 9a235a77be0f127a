package render

import (
	"image"
	"image/color"
)

// Op is one recorded drawing call.
type Op struct {
	Rect  image.Rectangle
	Text  string
	At    image.Point
	Color color.Color
	Opts  TextOptions
}

// Recorder is a Surface that remembers what was drawn on it.
type Recorder struct {
	Width, Height int
	Background    color.Color
	Rects         []Op
	Texts         []Op
}

func NewRecorder(width, height int) *Recorder {
	return &Recorder{Width: width, Height: height}
}

func (r *Recorder) Size() (int, int) { return r.Width, r.Height }

func (r *Recorder) Clear(c color.Color) {
	r.Background = c
	r.Rects = r.Rects[:0]
	r.Texts = r.Texts[:0]
}

func (r *Recorder) DrawRect(rect image.Rectangle, c color.Color) {
	r.Rects = append(r.Rects, Op{Rect: rect, Color: c})
}

func (r *Recorder) DrawText(text string, x, y int, _ float64, c color.Color, opts TextOptions) {
	r.Texts = append(r.Texts, Op{Text: text, At: image.Pt(x, y), Color: c, Opts: opts})
}

// Strings returns every drawn text in order.
func (r *Recorder) Strings() []string {
	out := make([]string, len(r.Texts))
	for i, t := range r.Texts {
		out[i] = t.Text
	}
	return out
}
