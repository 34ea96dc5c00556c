package gfx

import (
	"image"
	"math"
)

// DepthCleared is the depth value of a cell nothing has been drawn into.
// Any fragment in the valid depth range is nearer.
const DepthCleared = math.MaxFloat32

const bytesPerPixel = 3

// Framebuffer owns a packed RGB color buffer and a float32 depth buffer of
// the same dimensions.
//
// Both buffers are row-major with index(x, y) = y*width + x and are always
// resized together. Pixel accessors do not bounds-check beyond what the
// slices do; callers clip first.
type Framebuffer struct {
	width  int
	height int
	pix    []byte
	depth  []float32
}

// NewFramebuffer allocates a framebuffer cleared to Black.
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{}
	fb.Resize(width, height)
	return fb
}

// Resize reallocates both buffers for the new size. Prior contents are not
// preserved; the buffers come back cleared to Black.
func (fb *Framebuffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	fb.width = width
	fb.height = height

	n := width * height
	if cap(fb.depth) < n {
		fb.depth = make([]float32, n)
	} else {
		fb.depth = fb.depth[:n]
	}
	if cap(fb.pix) < n*bytesPerPixel {
		fb.pix = make([]byte, n*bytesPerPixel)
	} else {
		fb.pix = fb.pix[:n*bytesPerPixel]
	}
	fb.Clear(Color{})
}

// Clear sets every color cell to c and every depth cell to DepthCleared.
// Call it once per frame before drawing.
func (fb *Framebuffer) Clear(c Color) {
	for i := range fb.depth {
		fb.depth[i] = DepthCleared
	}
	if len(fb.pix) == 0 {
		return
	}
	fb.pix[0], fb.pix[1], fb.pix[2] = c.R, c.G, c.B
	// Doubling copy fills the rest from the already written prefix.
	for filled := bytesPerPixel; filled < len(fb.pix); filled *= 2 {
		copy(fb.pix[filled:], fb.pix[:filled])
	}
}

func (fb *Framebuffer) Width() int  { return fb.width }
func (fb *Framebuffer) Height() int { return fb.height }

// Bytes returns the color buffer as row-major RGB bytes, three per pixel.
// The slice aliases the framebuffer and is valid until the next Resize.
func (fb *Framebuffer) Bytes() []byte { return fb.pix }

func (fb *Framebuffer) index(x, y int) int { return y*fb.width + x }

func (fb *Framebuffer) At(x, y int) Color {
	off := fb.index(x, y) * bytesPerPixel
	return Color{R: fb.pix[off], G: fb.pix[off+1], B: fb.pix[off+2]}
}

func (fb *Framebuffer) Set(x, y int, c Color) {
	off := fb.index(x, y) * bytesPerPixel
	fb.pix[off] = c.R
	fb.pix[off+1] = c.G
	fb.pix[off+2] = c.B
}

func (fb *Framebuffer) DepthAt(x, y int) float32 { return fb.depth[fb.index(x, y)] }

// plot writes c at (x, y) if z passes the bounds and depth test.
// Equal depth overwrites, so the later draw wins a tie.
func (fb *Framebuffer) plot(x, y int, z float32, c Color) {
	if x < 0 || y < 0 || x >= fb.width || y >= fb.height {
		return
	}
	if !(z >= 0 && z < 1) {
		return
	}
	i := fb.index(x, y)
	if z > fb.depth[i] {
		return
	}
	fb.depth[i] = z
	off := i * bytesPerPixel
	fb.pix[off] = c.R
	fb.pix[off+1] = c.G
	fb.pix[off+2] = c.B
}

// Image copies the color buffer into a new RGBA image.
func (fb *Framebuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	ExpandRGBA(img.Pix, fb.pix)
	return img
}

// ExpandRGBA converts packed RGB bytes into opaque RGBA bytes. It stops at
// whichever buffer runs out first.
func ExpandRGBA(dst, src []byte) {
	for i, j := 0, 0; i+2 < len(src) && j+3 < len(dst); i, j = i+3, j+4 {
		dst[j] = src[i]
		dst[j+1] = src[i+1]
		dst[j+2] = src[i+2]
		dst[j+3] = 0xFF
	}
}
