package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"wirespin/app"
	"wirespin/hal"
	"wirespin/internal/buildinfo"
)

type colorFlags map[string]string

func (c colorFlags) String() string {
	parts := make([]string, 0, len(c))
	for k, v := range c {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

func (c colorFlags) Set(s string) error {
	name, color, ok := strings.Cut(s, "=")
	if !ok || name == "" || color == "" {
		return fmt.Errorf("want node=color, got %q", s)
	}
	c[name] = color
	return nil
}

func main() {
	var (
		headless hal.HeadlessConfig
		window   hal.WindowConfig
		terminal hal.TerminalConfig
		useTerm  bool
		version  bool
	)
	cfg := app.DefaultConfig()
	childColors := colorFlags(cfg.ChildColors)
	scale := float64(cfg.Scale)
	spin := float64(cfg.SpinRate)

	flag.BoolVar(&headless.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&headless.Hz, "hz", 60, "Tick rate in headless and terminal mode.")
	flag.Uint64Var(&headless.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&headless.Snapshot, "snapshot", "", "Write the last headless frame to this .bmp file.")
	flag.BoolVar(&useTerm, "term", false, "Draw into the terminal with half-block characters.")
	flag.IntVar(&window.Width, "width", 640, "Window (or headless surface) width.")
	flag.IntVar(&window.Height, "height", 480, "Window (or headless surface) height.")
	flag.IntVar(&window.ResScale, "res-scale", 2, "Window pixels per framebuffer pixel.")

	flag.StringVar(&cfg.AssetPath, "asset", "", "glTF asset (.gltf or .glb) to draw instead of a built-in shape.")
	flag.StringVar(&cfg.NodeName, "node", "", "Draw only the named node of the asset.")
	flag.StringVar(&cfg.Shape, "shape", cfg.Shape, "Built-in shape: "+strings.Join(app.ShapeNames(), "|")+".")
	flag.StringVar(&cfg.Color, "color", cfg.Color, "Wireframe color preset.")
	flag.StringVar(&cfg.ClearColor, "clear", cfg.ClearColor, "Background color preset.")
	flag.Var(childColors, "child-color", "Recolor nodes by name, as node=color (repeatable).")
	flag.Float64Var(&scale, "scale", 0, "Uniform root scale (0 = 16 for assets, 1 for shapes).")
	flag.Float64Var(&spin, "spin", spin, "Root spin about +Y in radians per second.")
	flag.StringVar(&cfg.ScriptPath, "script", "", "Lua script defining update(dt, t).")
	flag.Uint64Var(&cfg.Seed, "seed", 0, "Obstacle seed for -shape dodge (0 = time based).")
	flag.BoolVar(&cfg.AutoPlay, "autoplay", false, "Steer the dodge player automatically (always on when headless).")
	flag.BoolVar(&cfg.ShowHUD, "hud", cfg.ShowHUD, "Draw the frame counter overlay.")
	flag.BoolVar(&version, "version", false, "Print the build version and exit.")
	flag.Parse()

	if version {
		fmt.Println(buildinfo.Long())
		return
	}
	if window.ResScale <= 0 {
		window.ResScale = 1
	}
	cfg.Scale = float32(scale)
	cfg.SpinRate = float32(spin)
	terminal.Hz = headless.Hz
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	if headless.Enabled {
		cfg.AutoPlay = true
	}

	newApp := func(h hal.HAL) (hal.App, error) {
		return app.New(h, cfg)
	}

	var err error
	switch {
	case headless.Enabled:
		headless.Width, headless.Height = window.Width/window.ResScale, window.Height/window.ResScale
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err = hal.RunHeadless(ctx, newApp, headless)
	case useTerm:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err = hal.RunTerminal(ctx, newApp, terminal)
	default:
		err = hal.RunWindow(newApp, window)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
