package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"nodenotes/internal/node"
)

// PNGSurface draws into an in-memory image with gg.
type PNGSurface struct {
	dc    *gg.Context
	ttf   *truetype.Font
	faces map[float64]font.Face
}

func NewPNGSurface(width, height int) (*PNGSurface, error) {
	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &PNGSurface{
		dc:    gg.NewContext(width, height),
		ttf:   ttf,
		faces: make(map[float64]font.Face),
	}, nil
}

func (p *PNGSurface) Size() (int, int) {
	return p.dc.Width(), p.dc.Height()
}

func (p *PNGSurface) Clear(c color.Color) {
	p.dc.SetColor(c)
	p.dc.Clear()
}

func (p *PNGSurface) DrawRect(r image.Rectangle, c color.Color) {
	p.dc.SetColor(c)
	p.dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
	p.dc.Fill()
}

func (p *PNGSurface) DrawText(text string, x, y int, size float64, c color.Color, opts TextOptions) {
	if text == "" {
		return
	}
	p.dc.SetFontFace(p.face(size))
	p.dc.SetColor(c)

	ax := 0.0
	if opts.Centered {
		ax = 0.5
	}
	if opts.WrapWidth > 0 {
		align := gg.AlignLeft
		if opts.Centered {
			align = gg.AlignCenter
		}
		p.dc.DrawStringWrapped(text, float64(x), float64(y), ax, 0, float64(opts.WrapWidth), 1.2, align)
		return
	}
	p.dc.DrawStringAnchored(text, float64(x), float64(y), ax, 1)
}

func (p *PNGSurface) face(size float64) font.Face {
	if f, ok := p.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(p.ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	p.faces[size] = f
	return f
}

func (p *PNGSurface) Image() image.Image {
	return p.dc.Image()
}

func (p *PNGSurface) SavePNG(path string) error {
	return p.dc.SavePNG(path)
}

// ErrNothingToExport is returned when a graph has no nodes.
var ErrNothingToExport = errors.New("nothing to export")

// ExportPNG draws nodes onto an image just large enough to hold them and
// saves it to path.
func ExportPNG(path string, nodes []node.View, t Theme) error {
	surface, err := Snapshot(nodes, t)
	if err != nil {
		return err
	}
	return surface.SavePNG(path)
}

// Snapshot draws nodes onto a fresh PNGSurface cropped to their bounds.
func Snapshot(nodes []node.View, t Theme) (*PNGSurface, error) {
	if len(nodes) == 0 {
		return nil, ErrNothingToExport
	}

	bounds := image.Rectangle{}
	for i, n := range nodes {
		r := t.NodeRect(n.X, n.Y, true)
		// room for the label under the node
		r.Max.Y += int(t.LabelSize) + 4
		if i == 0 {
			bounds = r
			continue
		}
		bounds = bounds.Union(r)
	}

	padding := 4 * t.NodeSide
	bounds = bounds.Inset(-padding)
	shift := bounds.Min

	moved := make([]node.View, len(nodes))
	for i, n := range nodes {
		n.X -= shift.X
		n.Y -= shift.Y
		n.Hovered, n.Selected = false, false
		moved[i] = n
	}

	surface, err := NewPNGSurface(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}
	Draw(surface, Frame{Width: bounds.Dx(), Height: bounds.Dy(), Nodes: moved}, t)
	return surface, nil
}
