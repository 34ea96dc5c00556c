package gfx

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// DefaultFont is the small bitmap font used for overlay text.
var DefaultFont tinyfont.Fonter = &tinyfont.TomThumb

// TextDisplay adapts a Framebuffer to drivers.Displayer so tinyfont can
// draw into it. Text ignores and does not touch the depth buffer.
type TextDisplay struct {
	FB *Framebuffer
}

var _ drivers.Displayer = (*TextDisplay)(nil)

func (d *TextDisplay) Size() (x, y int16) {
	if d.FB == nil {
		return 0, 0
	}
	return int16(d.FB.Width()), int16(d.FB.Height())
}

func (d *TextDisplay) SetPixel(x, y int16, c color.RGBA) {
	if d.FB == nil {
		return
	}
	ix, iy := int(x), int(y)
	if ix < 0 || iy < 0 || ix >= d.FB.Width() || iy >= d.FB.Height() {
		return
	}
	d.FB.Set(ix, iy, Color{R: c.R, G: c.G, B: c.B})
}

func (d *TextDisplay) Display() error { return nil }

// DrawText writes s with its top-left corner near (x, y) in DefaultFont.
func DrawText(fb *Framebuffer, x, y int, s string, c Color) {
	if fb == nil || s == "" {
		return
	}
	d := &TextDisplay{FB: fb}
	tinyfont.WriteLine(d, DefaultFont, int16(x), int16(y)+int16(DefaultFont.GetYAdvance()), s, c.RGBA())
}
