// Package render draws a frame of the application onto a Surface.
package render

import (
	"image"
	"image/color"
)

// TextOptions controls how DrawText lays out its string.
type TextOptions struct {
	// WrapWidth wraps lines at this many pixels when positive.
	WrapWidth int
	// Centered centres each line on x instead of starting it there.
	Centered bool
}

// Surface is anything frames can be drawn on. (x, y) passed to DrawText is
// the top of the first line.
type Surface interface {
	Size() (width, height int)
	Clear(c color.Color)
	DrawRect(r image.Rectangle, c color.Color)
	DrawText(text string, x, y int, size float64, c color.Color, opts TextOptions)
}
