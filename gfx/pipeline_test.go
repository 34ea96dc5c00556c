package gfx

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestTransformVerticesPreservesOrder(t *testing.T) {
	verts := []mgl32.Vec3{{1, 0, 0}, {0, 2, 0}, {0, 0, 3}}
	m := mgl32.Translate3D(1, 1, 1)
	got := TransformVertices(nil, verts, m)
	want := []mgl32.Vec4{{2, 1, 1, 1}, {1, 3, 1, 1}, {1, 1, 4, 1}}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("clip[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTriviallyRejected(t *testing.T) {
	tests := []struct {
		name string
		a, b mgl32.Vec4
		want bool
	}{
		{"both right of x", mgl32.Vec4{2, 0, 0, 1}, mgl32.Vec4{3, 0.5, 0, 1}, true},
		{"both left of x", mgl32.Vec4{-2, 0, 0, 1}, mgl32.Vec4{-3, 0, 0, 1}, true},
		{"both above y", mgl32.Vec4{0, 5, 0, 2}, mgl32.Vec4{0, 2.5, 0, 2}, true},
		{"both below y", mgl32.Vec4{0, -5, 0, 2}, mgl32.Vec4{0, -2.5, 0, 2}, true},
		{"both beyond far z", mgl32.Vec4{0, 0, 4, 1}, mgl32.Vec4{0, 0, 2, 1}, true},
		{"both beyond near z", mgl32.Vec4{0, 0, -4, 1}, mgl32.Vec4{0, 0, -2, 1}, true},
		{"opposite sides of x", mgl32.Vec4{2, 0, 0, 1}, mgl32.Vec4{-2, 0, 0, 1}, false},
		{"different planes", mgl32.Vec4{2, 0, 0, 1}, mgl32.Vec4{0, 2, 0, 1}, false},
		{"straddling", mgl32.Vec4{2, 0, 0, 1}, mgl32.Vec4{0, 0, 0, 1}, false},
		{"inside", mgl32.Vec4{-1, -1, 0, 1}, mgl32.Vec4{1, 1, 1, 1}, false},
		{"on boundary", mgl32.Vec4{1, 0, 0, 1}, mgl32.Vec4{1, 0, 0, 1}, false},
	}
	for _, tt := range tests {
		if got := TriviallyRejected(tt.a, tt.b); got != tt.want {
			t.Fatalf("%s: TriviallyRejected(%v, %v) = %v, want %v", tt.name, tt.a, tt.b, got, tt.want)
		}
	}
}

func TestRejectSegmentsKeepsInsideUnmodified(t *testing.T) {
	clip := []mgl32.Vec4{
		{-1, -1, 0, 1},
		{1, 1, 0.5, 1},
		{3, 0, 0, 1},
		{4, 0, 0, 1},
	}
	before := append([]mgl32.Vec4(nil), clip...)
	got := RejectSegments(nil, clip, []uint32{0, 1, 2, 3, 1, 2, 0, 9, 3})
	want := []uint32{0, 1, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("RejectSegments = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("RejectSegments = %v, want %v", got, want)
		}
	}
	for i := range clip {
		if clip[i] != before[i] {
			t.Fatalf("clip[%d] modified: %v, was %v", i, clip[i], before[i])
		}
	}
}

func TestPerspectiveDivideAndViewport(t *testing.T) {
	clip := []mgl32.Vec4{{-2, -2, 0, 2}, {2, 2, 1, 2}, {0, 0, 0.5, 1}}
	ndc := PerspectiveDivide(nil, clip)
	want := []mgl32.Vec3{{-1, -1, 0}, {1, 1, 0.5}, {0, 0, 0.5}}
	for i := range want {
		if ndc[i] != want[i] {
			t.Fatalf("ndc[%d] = %v, want %v", i, ndc[i], want[i])
		}
	}

	screen := ViewportTransform(nil, ndc, 4, 4)
	wantScreen := []mgl32.Vec3{{0, 0, 0}, {4, 4, 0.5}, {2, 2, 0.5}}
	for i := range wantScreen {
		if screen[i] != wantScreen[i] {
			t.Fatalf("screen[%d] = %v, want %v", i, screen[i], wantScreen[i])
		}
	}
}

func TestPerspectiveDivideZeroW(t *testing.T) {
	ndc := PerspectiveDivide(nil, []mgl32.Vec4{{1, 0, 0, 0}})
	if !math.IsInf(float64(ndc[0][0]), 1) || !math.IsNaN(float64(ndc[0][1])) {
		t.Fatalf("ndc = %v, want +Inf and NaN components", ndc[0])
	}
}

func diagonalPixels(t *testing.T, fb *Framebuffer, c Color, want [][2]int) {
	t.Helper()
	set := make(map[[2]int]bool, len(want))
	for _, p := range want {
		set[p] = true
	}
	for y := 0; y < fb.Height(); y++ {
		for x := 0; x < fb.Width(); x++ {
			got := fb.At(x, y)
			if set[[2]int{x, y}] {
				if got != c {
					t.Fatalf("At(%d, %d) = %v, want %v", x, y, got, c)
				}
			} else if got != Black {
				t.Fatalf("At(%d, %d) = %v, want clear color", x, y, got)
			}
		}
	}
}

func TestPipelineDrawLineListEndToEnd(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.Clear(Black)
	p := NewPipeline()
	verts := []mgl32.Vec3{{-1, -1, 0}, {1, 1, 0}}
	p.DrawLineList(fb, verts, mgl32.Ident4(), Red)

	diagonalPixels(t, fb, Red, [][2]int{{0, 0}, {1, 1}, {2, 2}, {3, 3}})
}

func TestPipelineDrawLineListIgnoresTrailingVertex(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	p := NewPipeline()
	verts := []mgl32.Vec3{{-1, -1, 0}, {1, 1, 0}, {-1, 1, 0}}
	p.DrawLineList(fb, verts, mgl32.Ident4(), Red)

	diagonalPixels(t, fb, Red, [][2]int{{0, 0}, {1, 1}, {2, 2}, {3, 3}})
}

func TestPipelineDrawLineStrip(t *testing.T) {
	fb := NewFramebuffer(8, 8)
	p := NewPipeline()
	// (0,0) -> (6,0) -> (6,6) in screen space.
	verts := []mgl32.Vec3{{-1, -1, 0.5}, {0.5, -1, 0.5}, {0.5, 0.5, 0.5}}
	p.DrawLineStrip(fb, verts, mgl32.Ident4(), Lime)

	for x := 0; x <= 6; x++ {
		if got := fb.At(x, 0); got != Lime {
			t.Fatalf("At(%d, 0) = %v, want Lime", x, got)
		}
	}
	for y := 0; y <= 6; y++ {
		if got := fb.At(6, y); got != Lime {
			t.Fatalf("At(6, %d) = %v, want Lime", y, got)
		}
	}
	if got := fb.At(3, 3); got != Black {
		t.Fatalf("At(3, 3) = %v, want Black", got)
	}
}

func TestPipelineRejectsOffscreenSegment(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	p := NewPipeline()
	// Both endpoints have x > w: the pair must not reach the rasterizer.
	verts := []mgl32.Vec3{{2, -1, 0}, {3, 1, 0}}
	p.DrawLineList(fb, verts, mgl32.Ident4(), Red)
	if len(p.kept) != 0 {
		t.Fatalf("kept = %v, want none", p.kept)
	}
	diagonalPixels(t, fb, Red, nil)
}

func TestPipelineIndexedUsesSharedVertices(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	p := NewPipeline()
	verts := []mgl32.Vec3{{-1, -1, 0}, {1, 1, 0}, {1, -1, 0}}
	// Screen: 0=(0,0) 1=(4,4) 2=(4,0). Edge 0-2 is the bottom row.
	p.DrawLineListIndexed(fb, verts, []uint32{0, 2}, mgl32.Ident4(), Orange)
	diagonalPixels(t, fb, Orange, [][2]int{{0, 0}, {1, 0}, {2, 0}, {3, 0}})
}

func TestPipelineTransformApplied(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	p := NewPipeline()
	verts := []mgl32.Vec3{{-1, -1, 0}, {1, 1, 0}}
	// Scaling x and y by 1/2 maps the diagonal to screen (1,1)-(3,3).
	p.DrawLineList(fb, verts, mgl32.Scale3D(0.5, 0.5, 1), Red)
	diagonalPixels(t, fb, Red, [][2]int{{1, 1}, {2, 2}, {3, 3}})
}
