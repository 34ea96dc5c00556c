package gfx

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// maxScreenCoord bounds screen-space x/y handed to the integer walk. Beyond
// it float32 has no integer precision left; such values come from a
// perspective divide by a w close to zero, and DrawLine pulls them back
// along the segment first.
const maxScreenCoord = 1 << 24

// DrawSegments rasterizes each consecutive index pair of pairs as one
// segment of screen. Pairs with an index outside screen are skipped.
func DrawSegments(fb *Framebuffer, screen []mgl32.Vec3, pairs []uint32, c Color) {
	n := uint32(len(screen))
	for i := 0; i+1 < len(pairs); i += 2 {
		a, b := pairs[i], pairs[i+1]
		if a >= n || b >= n {
			continue
		}
		DrawLine(fb, screen[a], screen[b], c)
	}
}

// DrawLineStrip rasterizes screen as a connected polyline.
func DrawLineStrip(fb *Framebuffer, screen []mgl32.Vec3, c Color) {
	for i := 0; i+1 < len(screen); i++ {
		DrawLine(fb, screen[i], screen[i+1], c)
	}
}

// DrawLine rasterizes one depth-tested segment between two screen-space
// points. x and y are truncated toward zero; z must be in [0, 1) to be drawn.
//
// Depth is interpolated linearly per unit step of the stepping axis, not
// along the segment's length. Endpoints farther than maxScreenCoord are
// moved along the segment onto that bound, so the visible part still
// draws. Segments with non-finite coordinates, and segments that collapse
// to a single pixel, draw nothing.
func DrawLine(fb *Framebuffer, from, to mgl32.Vec3, c Color) {
	if fb == nil {
		return
	}
	from, to, ok := clampSegment(from, to)
	if !ok {
		return
	}
	x0, y0 := int(from[0]), int(from[1])
	x1, y1 := int(to[0]), int(to[1])
	z0, z1 := from[2], to[2]

	run := x1 - x0
	rise := y1 - y0
	switch {
	case run == 0 && rise == 0:
		return
	case run == 0:
		if y0 > y1 {
			y0, y1 = y1, y0
			z0, z1 = z1, z0
		}
		dz := (z1 - z0) / float32(y1-y0)
		lo, hi := clampSpan(y0, y1, fb.height)
		for y := lo; y <= hi; y++ {
			fb.plot(x0, y, z0+float32(y-y0)*dz, c)
		}
	case absInt(rise) < absInt(run):
		walk(fb, x0, y0, z0, x1, y1, z1, false, c)
	default:
		walk(fb, y0, x0, z0, y1, x1, z1, true, c)
	}
}

// walk is Bresenham along the major axis a with minor axis b. When swapped
// is set, a is y and b is x.
//
// The minor axis advances by one whenever the error accumulator k*delta
// crosses the threshold da*(2n+1), which gives the closed form
// n = (k*delta + da) / (2*da) after k steps. That lets the walk start and
// stop at the framebuffer edge instead of at the endpoints.
func walk(fb *Framebuffer, a0, b0 int, z0 float32, a1, b1 int, z1 float32, swapped bool, c Color) {
	if a0 > a1 {
		a0, a1 = a1, a0
		b0, b1 = b1, b0
		z0, z1 = z1, z0
	}
	da := a1 - a0
	db := b1 - b0
	step := 1
	if db < 0 {
		step = -1
		db = -db
	}
	delta := int64(db) * 2
	threshold := int64(da)
	dz := (z1 - z0) / float32(da)

	limit := fb.width
	if swapped {
		limit = fb.height
	}
	lo, hi := clampSpan(a0, a1, limit)
	for a := lo; a <= hi; a++ {
		k := int64(a - a0)
		n := (k*delta + threshold) / (2 * threshold)
		b := b0 + step*int(n)
		z := z0 + float32(k)*dz
		if swapped {
			fb.plot(b, a, z, c)
		} else {
			fb.plot(a, b, z, c)
		}
	}
}

// clampSpan intersects [lo, hi] with [0, limit).
// The result is empty (lo > hi) when they do not overlap.
func clampSpan(lo, hi, limit int) (int, int) {
	if lo < 0 {
		lo = 0
	}
	if hi > limit-1 {
		hi = limit - 1
	}
	return lo, hi
}

// clampSegment cuts the segment a-b to the square |x|, |y| <= maxScreenCoord
// by parameter (Liang-Barsky), interpolating z the same way. It reports false
// when a coordinate is not finite or the segment misses the square.
func clampSegment(a, b mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3, bool) {
	inside := true
	for i := 0; i < 2; i++ {
		for _, f := range [2]float32{a[i], b[i]} {
			if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
				return a, b, false
			}
			if f < -maxScreenCoord || f > maxScreenCoord {
				inside = false
			}
		}
	}
	if inside {
		return a, b, true
	}

	t0, t1 := 0.0, 1.0
	for i := 0; i < 2; i++ {
		p0 := float64(a[i])
		d := float64(b[i]) - p0
		for _, edge := range [2]struct{ p, q float64 }{
			{-d, p0 + maxScreenCoord},
			{d, maxScreenCoord - p0},
		} {
			if edge.p == 0 {
				if edge.q < 0 {
					return a, b, false
				}
				continue
			}
			r := edge.q / edge.p
			if edge.p < 0 {
				t0 = math.Max(t0, r)
			} else {
				t1 = math.Min(t1, r)
			}
		}
	}
	if t0 > t1 {
		return a, b, false
	}
	at := func(t float64) mgl32.Vec3 {
		var v mgl32.Vec3
		for i := range v {
			v[i] = float32(float64(a[i]) + t*(float64(b[i])-float64(a[i])))
			if i < 2 {
				v[i] = float32(math.Max(-maxScreenCoord, math.Min(maxScreenCoord, float64(v[i]))))
			}
		}
		return v
	}
	return at(t0), at(t1), true
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
