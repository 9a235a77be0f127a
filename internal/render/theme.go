package render

import (
	"image"
	"image/color"
)

// Theme carries every colour and metric the drawing code uses. Lengths are in
// world pixels.
type Theme struct {
	NodeSide     int
	NodeGrow     int
	HeaderHeight int
	PanelDivisor int
	TextInset    int
	StatusHeight int

	MenuWidthDivisor  int
	MenuPadding       int
	MenuMessageHeight int
	MenuOptionHeight  int
	MenuOptionSpacing int
	MenuInputHeight   int

	TitleSize   float64
	BodySize    float64
	LabelSize   float64
	MessageSize float64
	OptionSize  float64
	StatusSize  float64

	Background   color.RGBA
	Node         color.RGBA
	NodeHover    color.RGBA
	NodeSelected color.RGBA
	Label        color.RGBA
	Panel        color.RGBA
	Header       color.RGBA
	Ink          color.RGBA
	Menu         color.RGBA
	MenuText     color.RGBA
	Option       color.RGBA
	OptionActive color.RGBA
	Input        color.RGBA
	Status       color.RGBA
}

// DefaultTheme is the stock look.
func DefaultTheme() Theme {
	return Theme{
		NodeSide:     25,
		NodeGrow:     8,
		HeaderHeight: 40,
		PanelDivisor: 3,
		TextInset:    5,
		StatusHeight: 16,

		MenuWidthDivisor:  2,
		MenuPadding:       16,
		MenuMessageHeight: 48,
		MenuOptionHeight:  32,
		MenuOptionSpacing: 16,
		MenuInputHeight:   32,

		TitleSize:   28,
		BodySize:    20,
		LabelSize:   12,
		MessageSize: 28,
		OptionSize:  24,
		StatusSize:  14,

		Background:   color.RGBA{200, 200, 200, 255},
		Node:         color.RGBA{0, 0, 0, 255},
		NodeHover:    color.RGBA{40, 10, 40, 255},
		NodeSelected: color.RGBA{100, 10, 100, 255},
		Label:        color.RGBA{0, 0, 0, 255},
		Panel:        color.RGBA{255, 255, 255, 255},
		Header:       color.RGBA{200, 150, 200, 255},
		Ink:          color.RGBA{0, 0, 0, 255},
		Menu:         color.RGBA{100, 10, 100, 255},
		MenuText:     color.RGBA{255, 255, 255, 255},
		Option:       color.RGBA{200, 150, 200, 255},
		OptionActive: color.RGBA{255, 255, 255, 255},
		Input:        color.RGBA{255, 255, 255, 255},
		Status:       color.RGBA{60, 60, 60, 255},
	}
}

// EditorPanel is the area covered by the open note, flush with the left edge.
func (t Theme) EditorPanel(width, height int) image.Rectangle {
	div := t.PanelDivisor
	if div < 1 {
		div = 1
	}
	return image.Rect(0, 0, width/div, height)
}

// EditorHeader is the strip of the panel that shows the note title.
func (t Theme) EditorHeader(width, height int) image.Rectangle {
	panel := t.EditorPanel(width, height)
	return image.Rect(panel.Min.X, panel.Min.Y, panel.Max.X, panel.Min.Y+t.HeaderHeight)
}

// NodeRect is the drawn square of a node. Hovered and selected nodes are drawn
// larger; hit-testing does not use this.
func (t Theme) NodeRect(x, y int, emphasised bool) image.Rectangle {
	side := t.NodeSide
	if emphasised {
		side += t.NodeGrow
	}
	topLeft := image.Pt(x-side/2, y-side/2)
	return image.Rectangle{Min: topLeft, Max: topLeft.Add(image.Pt(side, side))}
}
