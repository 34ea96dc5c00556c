package gfx

import "testing"

func checkCleared(t *testing.T, fb *Framebuffer, c Color) {
	t.Helper()
	w, h := fb.Width(), fb.Height()
	if got, want := len(fb.Bytes()), w*h*3; got != want {
		t.Fatalf("len(Bytes()) = %d, want %d", got, want)
	}
	if got, want := len(fb.depth), w*h; got != want {
		t.Fatalf("len(depth) = %d, want %d", got, want)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if got := fb.At(x, y); got != c {
				t.Fatalf("At(%d, %d) = %v, want %v", x, y, got, c)
			}
			if got := fb.DepthAt(x, y); got != DepthCleared {
				t.Fatalf("DepthAt(%d, %d) = %v, want sentinel", x, y, got)
			}
		}
	}
}

func TestNewFramebufferDefaults(t *testing.T) {
	fb := NewFramebuffer(7, 5)
	checkCleared(t, fb, Black)
}

func TestFramebufferClearAfterNewAndResize(t *testing.T) {
	sizes := [][2]int{{1, 1}, {4, 4}, {3, 9}, {640, 3}, {0, 12}}
	for _, s := range sizes {
		fb := NewFramebuffer(s[0], s[1])
		fb.Clear(Wheat)
		checkCleared(t, fb, Wheat)

		fb.Resize(s[1]+2, s[0]+1)
		checkCleared(t, fb, Black)
		fb.Clear(DarkCyan)
		checkCleared(t, fb, DarkCyan)
	}
}

func TestFramebufferResizeDropsContents(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.Set(1, 1, Red)
	fb.Resize(8, 2)
	fb.Resize(4, 4)
	if got := fb.At(1, 1); got != Black {
		t.Fatalf("At(1, 1) = %v after resize, want Black", got)
	}
}

func TestFramebufferNegativeSize(t *testing.T) {
	fb := NewFramebuffer(-3, 10)
	if fb.Width() != 0 || len(fb.Bytes()) != 0 {
		t.Fatalf("negative width gave %dx%d with %d bytes", fb.Width(), fb.Height(), len(fb.Bytes()))
	}
}

func TestFramebufferIndexInjective(t *testing.T) {
	const w, h = 13, 7
	fb := NewFramebuffer(w, h)
	seen := make(map[int][2]int, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := fb.index(x, y)
			if i != y*w+x {
				t.Fatalf("index(%d, %d) = %d, want %d", x, y, i, y*w+x)
			}
			if prev, ok := seen[i]; ok {
				t.Fatalf("index(%d, %d) collides with %v", x, y, prev)
			}
			seen[i] = [2]int{x, y}
		}
	}
}

func TestFramebufferBytesLayout(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.Set(2, 1, RGB(1, 2, 3))
	b := fb.Bytes()
	off := (1*3 + 2) * 3
	if b[off] != 1 || b[off+1] != 2 || b[off+2] != 3 {
		t.Fatalf("Bytes()[%d:%d] = %v, want [1 2 3]", off, off+3, b[off:off+3])
	}
}

func TestFramebufferImage(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.Clear(Navy)
	fb.Set(0, 1, Gold)
	img := fb.Image()
	if got := img.RGBAAt(0, 1); got != Gold.RGBA() {
		t.Fatalf("RGBAAt(0, 1) = %v, want %v", got, Gold.RGBA())
	}
	if got := img.RGBAAt(1, 0); got != Navy.RGBA() {
		t.Fatalf("RGBAAt(1, 0) = %v, want %v", got, Navy.RGBA())
	}
}

func TestColorByName(t *testing.T) {
	tests := []struct {
		name string
		want Color
	}{
		{"DarkCyan", DarkCyan},
		{"dark_cyan", DarkCyan},
		{"Light Goldenrod Yellow", LightGoldenrodYellow},
		{"wheat", Wheat},
	}
	for _, tt := range tests {
		got, ok := ColorByName(tt.name)
		if !ok || got != tt.want {
			t.Fatalf("ColorByName(%q) = %v, %v, want %v", tt.name, got, ok, tt.want)
		}
	}
	if _, ok := ColorByName("octarine"); ok {
		t.Fatalf("ColorByName(octarine) ok = true, want false")
	}
	if got := Crimson.Hex(); got != "#dc143c" {
		t.Fatalf("Crimson.Hex() = %q, want #dc143c", got)
	}
}
