package gfx

import "github.com/go-gl/mathgl/mgl32"

// The geometry stages below are applied in a fixed order:
//
//	TransformVertices → RejectSegments → PerspectiveDivide → ViewportTransform
//
// Rejection looks at clip-space coordinates against their own w, so it must run
// before the divide. Each stage appends into dst (reset to length 0) so the
// caller can keep reusing scratch slices across frames.

// TransformVertices lifts every vertex to (x, y, z, 1) and multiplies it by m.
// Output index i corresponds to input index i.
func TransformVertices(dst []mgl32.Vec4, vertices []mgl32.Vec3, m mgl32.Mat4) []mgl32.Vec4 {
	dst = dst[:0]
	for _, v := range vertices {
		dst = append(dst, m.Mul4x1(v.Vec4(1)))
	}
	return dst
}

// TriviallyRejected reports whether the segment a-b lies entirely beyond one
// frustum plane: on some axis both endpoints satisfy coord > w, or both
// satisfy -coord > w. Segments straddling a plane are kept whole.
func TriviallyRejected(a, b mgl32.Vec4) bool {
	for i := 0; i < 3; i++ {
		if a[i] > a[3] && b[i] > b[3] {
			return true
		}
		if -a[i] > a[3] && -b[i] > b[3] {
			return true
		}
	}
	return false
}

// RejectSegments keeps the index pairs of clip whose segments survive
// TriviallyRejected. Pairs referencing vertices outside clip are dropped, as
// is a trailing unpaired index.
func RejectSegments(dst []uint32, clip []mgl32.Vec4, pairs []uint32) []uint32 {
	dst = dst[:0]
	n := uint32(len(clip))
	for i := 0; i+1 < len(pairs); i += 2 {
		a, b := pairs[i], pairs[i+1]
		if a >= n || b >= n {
			continue
		}
		if TriviallyRejected(clip[a], clip[b]) {
			continue
		}
		dst = append(dst, a, b)
	}
	return dst
}

// PerspectiveDivide maps clip coordinates to NDC. A w at or near zero is not
// special-cased; the resulting non-finite or huge values are discarded by the
// rasterizer.
func PerspectiveDivide(dst []mgl32.Vec3, clip []mgl32.Vec4) []mgl32.Vec3 {
	dst = dst[:0]
	for _, v := range clip {
		dst = append(dst, mgl32.Vec3{v[0] / v[3], v[1] / v[3], v[2] / v[3]})
	}
	return dst
}

// ViewportTransform maps NDC x and y in [-1, 1] to [0, width] and [0, height].
// Depth is passed through unchanged.
func ViewportTransform(dst []mgl32.Vec3, ndc []mgl32.Vec3, width, height int) []mgl32.Vec3 {
	dst = dst[:0]
	hw := float32(width) / 2
	hh := float32(height) / 2
	for _, v := range ndc {
		dst = append(dst, mgl32.Vec3{(v[0] + 1) * hw, (v[1] + 1) * hh, v[2]})
	}
	return dst
}

// Pipeline runs the geometry stages and rasterizes the result.
//
// Create it once and reuse it; it keeps its scratch buffers between calls.
// A Pipeline is not safe for concurrent use.
type Pipeline struct {
	clip   []mgl32.Vec4
	ndc    []mgl32.Vec3
	screen []mgl32.Vec3
	pairs  []uint32
	kept   []uint32
}

func NewPipeline() *Pipeline { return &Pipeline{} }

// DrawLineList draws vertices as disconnected segments (0,1), (2,3), ...
func (p *Pipeline) DrawLineList(fb *Framebuffer, vertices []mgl32.Vec3, transform mgl32.Mat4, c Color) {
	p.pairs = p.pairs[:0]
	for i := 0; i+1 < len(vertices); i += 2 {
		p.pairs = append(p.pairs, uint32(i), uint32(i+1))
	}
	p.draw(fb, vertices, p.pairs, transform, c)
}

// DrawLineStrip draws vertices as a connected polyline (i, i+1).
func (p *Pipeline) DrawLineStrip(fb *Framebuffer, vertices []mgl32.Vec3, transform mgl32.Mat4, c Color) {
	p.pairs = p.pairs[:0]
	for i := 0; i+1 < len(vertices); i++ {
		p.pairs = append(p.pairs, uint32(i), uint32(i+1))
	}
	p.draw(fb, vertices, p.pairs, transform, c)
}

// DrawLineListIndexed draws the segments named by consecutive index pairs in
// edges, all referencing the shared vertices slice.
func (p *Pipeline) DrawLineListIndexed(fb *Framebuffer, vertices []mgl32.Vec3, edges []uint32, transform mgl32.Mat4, c Color) {
	p.draw(fb, vertices, edges, transform, c)
}

func (p *Pipeline) draw(fb *Framebuffer, vertices []mgl32.Vec3, pairs []uint32, transform mgl32.Mat4, c Color) {
	if fb == nil || len(vertices) == 0 || len(pairs) < 2 {
		return
	}
	p.clip = TransformVertices(p.clip, vertices, transform)
	p.kept = RejectSegments(p.kept, p.clip, pairs)
	if len(p.kept) == 0 {
		return
	}
	p.ndc = PerspectiveDivide(p.ndc, p.clip)
	p.screen = ViewportTransform(p.screen, p.ndc, fb.Width(), fb.Height())
	DrawSegments(fb, p.screen, p.kept, c)
}
