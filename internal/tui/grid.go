// Package tui runs the application in a terminal. Frames are drawn onto a
// grid of character cells, each standing for CellWidth x CellHeight pixels.
package tui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"nodenotes/internal/render"
)

type cell struct {
	r      rune
	fg, bg color.RGBA
}

// Grid is a render.Surface made of terminal cells.
type Grid struct {
	cols, rows int
	cw, ch     int
	cells      []cell
}

func NewGrid(cols, rows, cellWidth, cellHeight int) *Grid {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	if cellWidth < 1 || cellHeight < 1 {
		cellWidth, cellHeight = 1, 1
	}
	g := &Grid{
		cols:  cols,
		rows:  rows,
		cw:    cellWidth,
		ch:    cellHeight,
		cells: make([]cell, cols*rows),
	}
	g.Clear(color.Black)
	return g
}

func (g *Grid) Size() (int, int) { return g.cols * g.cw, g.rows * g.ch }

func (g *Grid) at(col, row int) *cell {
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return nil
	}
	return &g.cells[row*g.cols+col]
}

func (g *Grid) Clear(c color.Color) {
	bg := rgba(c)
	for i := range g.cells {
		g.cells[i] = cell{r: ' ', fg: bg, bg: bg}
	}
}

// DrawRect fills every cell the rectangle touches. A non-empty rectangle
// always covers at least one cell.
func (g *Grid) DrawRect(r image.Rectangle, c color.Color) {
	if r.Empty() {
		return
	}
	bg := rgba(c)
	x0, y0 := floorDiv(r.Min.X, g.cw), floorDiv(r.Min.Y, g.ch)
	x1, y1 := ceilDiv(r.Max.X, g.cw), ceilDiv(r.Max.Y, g.ch)
	for row := y0; row < y1; row++ {
		for col := x0; col < x1; col++ {
			if p := g.at(col, row); p != nil {
				*p = cell{r: ' ', fg: bg, bg: bg}
			}
		}
	}
}

// DrawText writes text one character per cell, keeping the background of
// the cells it lands on. The point size is ignored.
func (g *Grid) DrawText(text string, x, y int, _ float64, c color.Color, opts render.TextOptions) {
	fg := rgba(c)
	if opts.WrapWidth > 0 {
		width := opts.WrapWidth / g.cw
		if width < 1 {
			width = 1
		}
		text = wordwrap.String(text, width)
	}
	row := floorDiv(y, g.ch)
	for i, line := range strings.Split(text, "\n") {
		runes := []rune(line)
		col := floorDiv(x, g.cw)
		if opts.Centered {
			col -= len(runes) / 2
		}
		for j, r := range runes {
			if p := g.at(col+j, row+i); p != nil {
				p.r = r
				p.fg = fg
			}
		}
	}
}

// Plain returns the characters of the grid without colour.
func (g *Grid) Plain() string {
	var b strings.Builder
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			b.WriteRune(g.at(col, row).r)
		}
		if row < g.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// String renders the grid with colours, one lipgloss style per run of cells
// sharing the same colours.
func (g *Grid) String() string {
	var b strings.Builder
	for row := 0; row < g.rows; row++ {
		start := 0
		for col := 1; col <= g.cols; col++ {
			if col < g.cols && sameStyle(*g.at(col, row), *g.at(start, row)) {
				continue
			}
			first := g.at(start, row)
			run := make([]rune, 0, col-start)
			for i := start; i < col; i++ {
				run = append(run, g.at(i, row).r)
			}
			b.WriteString(lipgloss.NewStyle().
				Foreground(hex(first.fg)).
				Background(hex(first.bg)).
				Render(string(run)))
			start = col
		}
		if row < g.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func sameStyle(a, b cell) bool { return a.fg == b.fg && a.bg == b.bg }

func hex(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

func rgba(c color.Color) color.RGBA {
	if c == nil {
		return color.RGBA{}
	}
	return color.RGBAModel.Convert(c).(color.RGBA)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}
