// Package app runs the wireframe frame loop on top of a hal.HAL: it loads an
// asset into a scene graph, animates it, renders it through the gfx
// pipeline, and uploads each finished frame to the host surface.
package app

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"wirespin/gfx"
	"wirespin/hal"
	"wirespin/internal/buildinfo"
	"wirespin/scene"
	"wirespin/scene/gltfasset"
)

// rig is the camera supplier: a base camera, optionally moved by an orbit
// controller.
type rig struct {
	base  Camera
	orbit *OrbitController
}

func (r *rig) camera() Camera {
	c := r.base
	if r.orbit != nil {
		r.orbit.Apply(&c)
	}
	return c
}

type frameLoop struct {
	log   hal.Logger
	surf  hal.Surface
	clock hal.Clock
	keys  hal.Keyboard

	cfg    Config
	colors palette
	root   *scene.Node
	stats  scene.Stats
	script *script
	game   *dodgeGame

	fb   *gfx.Framebuffer
	pipe *gfx.Pipeline
	rig  rig

	started bool
	last    time.Duration
	fps     fpsCounter
	hud     []string

	halted bool
}

// New loads the configured asset and returns the frame loop as a hal.App.
func New(h hal.HAL, cfg Config) (hal.App, error) {
	f, err := newFrameLoop(h, cfg)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func newFrameLoop(h hal.HAL, cfg Config) (*frameLoop, error) {
	colors, err := cfg.resolveColors()
	if err != nil {
		return nil, err
	}

	asset, scale, err := loadAsset(cfg)
	if err != nil {
		return nil, err
	}
	root, err := scene.Build(asset, colors.node)
	if err != nil {
		return nil, fmt.Errorf("app: build scene: %w", err)
	}
	var game *dodgeGame
	if cfg.dodge() {
		if game, err = newDodgeGame(root, cfg.Seed, cfg.AutoPlay); err != nil {
			return nil, err
		}
	}
	for name, c := range colors.child {
		root.SetChildColor(name, c)
	}
	if scale != 1 {
		root.SetScale(root.Scale().Mul(scale))
	}

	f := &frameLoop{
		log:    h.Logger(),
		surf:   h.Display(),
		clock:  h.Clock(),
		keys:   h.Keyboard(),
		cfg:    cfg,
		colors: colors,
		root:   root,
		game:   game,
		stats:  root.Stats(),
		pipe:   gfx.NewPipeline(),
		rig:    rig{base: cfg.Camera},
	}
	if f.rig.base == (Camera{}) {
		f.rig.base = DefaultCamera()
	}
	if game != nil && f.rig.base == DefaultCamera() {
		f.rig.base = DodgeCamera()
	}

	w, hh := f.surf.Size()
	f.fb = gfx.NewFramebuffer(w, hh)

	if cfg.ScriptPath != "" || cfg.Script != "" {
		f.script, err = newScript(cfg.ScriptPath, cfg.Script, root, &f.rig, f.log)
		if err != nil {
			return nil, err
		}
	}

	f.logf("app: %s loaded: %d nodes, %d meshes, %d vertices, %d edges",
		root.Name(), f.stats.Nodes, f.stats.Meshes, f.stats.Vertices, f.stats.Edges)
	return f, nil
}

// loadAsset returns the asset tree and the root scale to apply.
func loadAsset(cfg Config) (scene.AssetNode, float32, error) {
	var (
		a   scene.AssetNode
		err error
	)
	scale := cfg.Scale

	switch {
	case cfg.AssetPath != "" && cfg.NodeName != "":
		a, err = gltfasset.LoadNode(cfg.AssetPath, cfg.NodeName)
	case cfg.AssetPath != "":
		a, err = gltfasset.Load(cfg.AssetPath)
	default:
		shape := cfg.Shape
		if shape == "" {
			shape = "donut"
		}
		var ok bool
		if a, ok = ShapeByName(shape); !ok {
			return a, 0, fmt.Errorf("app: unknown shape %q (have %s)", shape, strings.Join(ShapeNames(), ", "))
		}
		if cfg.NodeName != "" {
			if a, ok = findAsset(a, cfg.NodeName); !ok {
				return a, 0, fmt.Errorf("app: shape %q has no node %q", shape, cfg.NodeName)
			}
		}
		if scale == 0 {
			scale = 1
		}
	}
	if err != nil {
		return a, 0, err
	}
	if scale == 0 {
		scale = 16
	}
	return a, scale, nil
}

func (f *frameLoop) logf(format string, args ...any) {
	if f.log != nil {
		f.log.WriteLineString(fmt.Sprintf(format, args...))
	}
}

// Close releases the script state, if any.
func (f *frameLoop) Close() error {
	if f.script != nil {
		f.script.close()
		f.script = nil
	}
	return nil
}

// Step renders one frame. After a panic the loop halts and keeps uploading
// the panic screen.
func (f *frameLoop) Step() (err error) {
	if f.halted {
		return f.upload()
	}
	defer func() {
		if r := recover(); r != nil {
			f.halted = true
			panicScreen(f.log, f.fb, r, debug.Stack())
			err = f.upload()
		}
	}()
	return f.frame()
}

func (f *frameLoop) frame() error {
	w, h := f.surf.Size()
	if w != f.fb.Width() || h != f.fb.Height() {
		f.fb.Resize(w, h)
		f.logf("app: resize %dx%d", w, h)
	}
	f.fb.Clear(f.colors.clear)

	now := f.clock.Now()
	var dt time.Duration
	if f.started {
		dt = now - f.last
	}
	f.started = true
	f.last = now

	f.drainKeys()
	if err := f.animate(dt, now); err != nil {
		return err
	}

	f.root.Render(f.pipe, f.fb, f.viewProjection())

	if f.fps.tick(now) || f.hud == nil || f.game != nil {
		f.hud = f.hudLines()
	}
	if f.cfg.ShowHUD {
		y := 1
		for _, line := range f.hud {
			gfx.DrawText(f.fb, 1, y, line, f.colors.hud)
			y += int(gfx.DefaultFont.GetYAdvance())
		}
	}
	return f.upload()
}

// drainKeys hands every pending key event to the game. Without a game the
// events are discarded so the host queue never fills.
func (f *frameLoop) drainKeys() {
	if f.keys == nil {
		return
	}
	ch := f.keys.Events()
	for {
		select {
		case ev := <-ch:
			if f.game != nil {
				f.game.key(ev)
			}
		default:
			return
		}
	}
}

func (f *frameLoop) animate(dt, now time.Duration) error {
	if f.game != nil {
		f.game.advance(float32(dt.Seconds()))
		return nil
	}
	if f.script != nil {
		return f.script.call(dt.Seconds(), now.Seconds())
	}
	if f.cfg.SpinRate != 0 && dt > 0 {
		angle := f.cfg.SpinRate * float32(dt.Seconds())
		spin := mgl32.QuatRotate(angle, mgl32.Vec3{0, 1, 0})
		f.root.SetRotation(spin.Mul(f.root.Rotation()).Normalize())
	}
	return nil
}

func (f *frameLoop) viewProjection() mgl32.Mat4 {
	return f.rig.camera().ViewProjection(f.fb.Width(), f.fb.Height())
}

func (f *frameLoop) hudLines() []string {
	lines := []string{
		fmt.Sprintf("wirespin %s", buildinfo.Short()),
		fmt.Sprintf("%d fps", f.fps.fps),
		fmt.Sprintf("%d edges", f.stats.Edges),
	}
	if f.game != nil {
		lines = append(lines, f.game.hudLines()...)
	}
	return lines
}

func (f *frameLoop) upload() error {
	return f.surf.Upload(f.fb.Bytes(), f.fb.Width(), f.fb.Height())
}

// fpsCounter counts frames per elapsed second of host clock.
type fpsCounter struct {
	start  time.Duration
	frames int
	fps    int
	begun  bool
}

// tick records one frame at now and reports whether fps changed.
func (c *fpsCounter) tick(now time.Duration) bool {
	if !c.begun {
		c.begun = true
		c.start = now
		return false
	}
	c.frames++
	if now-c.start < time.Second {
		return false
	}
	changed := c.fps != c.frames
	c.fps = c.frames
	c.frames = 0
	c.start = now
	return changed
}
