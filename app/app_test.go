package app

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"wirespin/gfx"
	"wirespin/hal"
	"wirespin/scene/gltfasset"
)

type testLogger struct{ lines []string }

func (l *testLogger) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *testLogger) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }

func (l *testLogger) contains(sub string) bool {
	for _, s := range l.lines {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

type testSurface struct {
	w, h      int
	pix       []byte
	upW, upH  int
	uploads   int
	panicNext bool
}

func (s *testSurface) Size() (int, int) {
	if s.panicNext {
		s.panicNext = false
		panic("surface lost")
	}
	return s.w, s.h
}

func (s *testSurface) Upload(pix []byte, w, h int) error {
	s.pix = append(s.pix[:0], pix...)
	s.upW, s.upH = w, h
	s.uploads++
	return nil
}

func (s *testSurface) at(x, y int) gfx.Color {
	i := (y*s.upW + x) * 3
	return gfx.Color{R: s.pix[i], G: s.pix[i+1], B: s.pix[i+2]}
}

func (s *testSurface) count(c gfx.Color) int {
	n := 0
	for y := 0; y < s.upH; y++ {
		for x := 0; x < s.upW; x++ {
			if s.at(x, y) == c {
				n++
			}
		}
	}
	return n
}

type testClock struct{ now time.Duration }

func (c *testClock) Now() time.Duration { return c.now }

type testKeyboard struct{ ch chan hal.KeyEvent }

func (k *testKeyboard) Events() <-chan hal.KeyEvent { return k.ch }

func (k *testKeyboard) press(codes ...hal.KeyCode) {
	for _, c := range codes {
		k.ch <- hal.KeyEvent{Code: c, Press: true}
	}
}

type testHAL struct {
	log   *testLogger
	surf  *testSurface
	clock *testClock
	keys  *testKeyboard
}

func newTestHAL(w, h int) *testHAL {
	return &testHAL{
		log:   &testLogger{},
		surf:  &testSurface{w: w, h: h},
		clock: &testClock{},
		keys:  &testKeyboard{ch: make(chan hal.KeyEvent, 16)},
	}
}

func (h *testHAL) Logger() hal.Logger   { return h.log }
func (h *testHAL) Display() hal.Surface { return h.surf }
func (h *testHAL) Clock() hal.Clock     { return h.clock }
func (h *testHAL) Keyboard() hal.Keyboard {
	return h.keys
}

func quietConfig(shape string) Config {
	cfg := DefaultConfig()
	cfg.Shape = shape
	cfg.ShowHUD = false
	cfg.SpinRate = 0
	return cfg
}

func TestStepDrawsAndUploads(t *testing.T) {
	h := newTestHAL(32, 24)
	a, err := New(h, quietConfig("tetrahedron"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !h.log.contains("Tetrahedron loaded: 1 nodes, 1 meshes, 4 vertices, 6 edges") {
		t.Fatalf("load not logged: %q", h.log.lines)
	}
	if err := a.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if h.surf.uploads != 1 || h.surf.upW != 32 || h.surf.upH != 24 {
		t.Fatalf("upload %d frames of %dx%d", h.surf.uploads, h.surf.upW, h.surf.upH)
	}
	wheat := h.surf.count(gfx.Wheat)
	black := h.surf.count(gfx.Black)
	if wheat == 0 {
		t.Fatalf("no wireframe pixels drawn")
	}
	if wheat+black != 32*24 {
		t.Fatalf("unexpected colors: %d wheat + %d black of %d", wheat, black, 32*24)
	}

	h.surf.w, h.surf.h = 40, 30
	if err := a.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if h.surf.upW != 40 || h.surf.upH != 30 || len(h.surf.pix) != 40*30*3 {
		t.Fatalf("after resize uploaded %dx%d (%d bytes)", h.surf.upW, h.surf.upH, len(h.surf.pix))
	}
	if !h.log.contains("app: resize 40x30") {
		t.Fatalf("resize not logged: %q", h.log.lines)
	}
}

func TestDonutChildColors(t *testing.T) {
	h := newTestHAL(96, 72)
	cfg := quietConfig("donut")
	cfg.ClearColor = "midnight blue"
	a, err := New(h, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := a.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if h.surf.count(gfx.Wheat) == 0 || h.surf.count(gfx.DarkCyan) == 0 {
		t.Fatalf("want both Wheat dough and DarkCyan icing pixels")
	}
	if h.surf.at(0, 0) != gfx.MidnightBlue {
		t.Fatalf("corner = %v, want MidnightBlue", h.surf.at(0, 0))
	}
}

func TestSpinFollowsClock(t *testing.T) {
	h := newTestHAL(16, 16)
	cfg := quietConfig("cube")
	cfg.SpinRate = 1
	f, err := newFrameLoop(h, cfg)
	if err != nil {
		t.Fatalf("newFrameLoop: %v", err)
	}
	h.clock.now = 3 * time.Second
	if err := f.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if f.root.Rotation() != mgl32.QuatIdent() {
		t.Fatalf("first frame rotated: %v", f.root.Rotation())
	}
	h.clock.now += 500 * time.Millisecond
	if err := f.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	want := mgl32.QuatRotate(0.5, mgl32.Vec3{0, 1, 0})
	if !f.root.Rotation().ApproxEqualThreshold(want, 1e-5) {
		t.Fatalf("Rotation() = %v, want %v", f.root.Rotation(), want)
	}
}

func TestHUDDrawn(t *testing.T) {
	h := newTestHAL(64, 32)
	cfg := quietConfig("tetrahedron")
	cfg.ShowHUD = true
	cfg.HUDColor = "red"
	a, err := New(h, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := a.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if h.surf.count(gfx.Red) == 0 {
		t.Fatalf("HUD text not drawn")
	}
}

func TestNewErrors(t *testing.T) {
	h := newTestHAL(8, 8)

	cfg := quietConfig("donut")
	cfg.Color = "not a color"
	if _, err := New(h, cfg); !errors.Is(err, ErrUnknownColor) {
		t.Fatalf("bad color err = %v, want ErrUnknownColor", err)
	}

	cfg = quietConfig("donut")
	cfg.ChildColors = map[string]string{"Icing": "plaid"}
	if _, err := New(h, cfg); !errors.Is(err, ErrUnknownColor) {
		t.Fatalf("bad child color err = %v, want ErrUnknownColor", err)
	}

	if _, err := New(h, quietConfig("teapot")); err == nil || !strings.Contains(err.Error(), "teapot") {
		t.Fatalf("unknown shape err = %v", err)
	}

	cfg = quietConfig("donut")
	cfg.NodeName = "Sprinkles"
	if _, err := New(h, cfg); err == nil {
		t.Fatalf("missing node accepted")
	}

	cfg = quietConfig("")
	cfg.AssetPath = filepath.Join(t.TempDir(), "missing.glb")
	if _, err := New(h, cfg); err == nil {
		t.Fatalf("missing asset accepted")
	}
}

func TestNodeNameSelectsSubtree(t *testing.T) {
	h := newTestHAL(8, 8)
	cfg := quietConfig("DONUT")
	cfg.NodeName = "Icing"
	f, err := newFrameLoop(h, cfg)
	if err != nil {
		t.Fatalf("newFrameLoop: %v", err)
	}
	if f.root.Name() != "Icing" || f.root.Color() != gfx.DarkCyan {
		t.Fatalf("root = %q %v, want Icing DarkCyan", f.root.Name(), f.root.Color())
	}
}

func TestAssetFileDefaultScale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.glb")
	if err := gltfasset.Save(path, Cube()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	h := newTestHAL(8, 8)
	cfg := quietConfig("")
	cfg.AssetPath = path
	f, err := newFrameLoop(h, cfg)
	if err != nil {
		t.Fatalf("newFrameLoop: %v", err)
	}
	if f.root.Scale() != (mgl32.Vec3{16, 16, 16}) {
		t.Fatalf("Scale() = %v, want 16", f.root.Scale())
	}
	if f.stats.Edges != 18 {
		t.Fatalf("edges = %d, want 18", f.stats.Edges)
	}

	cfg.Scale = 0.5
	cfg.NodeName = "Cube"
	f, err = newFrameLoop(h, cfg)
	if err != nil {
		t.Fatalf("newFrameLoop: %v", err)
	}
	if f.root.Scale() != (mgl32.Vec3{0.5, 0.5, 0.5}) {
		t.Fatalf("Scale() = %v, want 0.5", f.root.Scale())
	}
}

func TestPanicHaltsWithScreen(t *testing.T) {
	h := newTestHAL(48, 32)
	a, err := New(h, quietConfig("tetrahedron"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.surf.panicNext = true
	if err := a.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if !h.log.contains("wirespin panic:") || !h.log.contains("surface lost") {
		t.Fatalf("panic not logged: %q", h.log.lines)
	}
	if h.surf.at(47, 31) != gfx.White || h.surf.count(gfx.Black) == 0 {
		t.Fatalf("panic screen not painted")
	}

	uploads := h.surf.uploads
	if err := a.Step(); err != nil {
		t.Fatalf("halted step: %v", err)
	}
	if h.surf.uploads != uploads+1 || h.surf.count(gfx.Wheat) != 0 {
		t.Fatalf("halted step rendered the scene")
	}
}

func TestFPSCounter(t *testing.T) {
	var c fpsCounter
	changed := false
	for i := 0; i <= 100; i++ {
		changed = c.tick(time.Duration(i) * 10 * time.Millisecond)
	}
	if !changed || c.fps != 100 {
		t.Fatalf("fps = %d (changed %v), want 100", c.fps, changed)
	}
	if c.tick(1010 * time.Millisecond) {
		t.Fatalf("fps changed mid-second")
	}
}

func TestTakeRunes(t *testing.T) {
	tests := []struct {
		in         string
		n          int
		head, tail string
	}{
		{"hello", 10, "hello", ""},
		{"hello", 2, "he", "llo"},
		{"héllo", 2, "hé", "llo"},
		{"", 3, "", ""},
	}
	for _, tt := range tests {
		head, tail := takeRunes(tt.in, tt.n)
		if head != tt.head || tail != tt.tail {
			t.Fatalf("takeRunes(%q, %d) = %q, %q, want %q, %q", tt.in, tt.n, head, tail, tt.head, tt.tail)
		}
	}
}
