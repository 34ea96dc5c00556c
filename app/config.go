package app

import (
	"errors"
	"fmt"
	"strings"

	"wirespin/gfx"
)

var ErrUnknownColor = errors.New("app: unknown color name")

// Config selects what is drawn and how it moves.
type Config struct {
	// AssetPath is a .gltf/.glb file. When empty the built-in Shape is used.
	AssetPath string
	// NodeName, when set, draws only the first node with that name.
	NodeName string
	Shape    string

	Color       string
	ChildColors map[string]string
	ClearColor  string
	HUDColor    string

	// Scale is applied uniformly to the root node. Zero picks 16 for asset
	// files and 1 for built-in shapes.
	Scale float32
	// SpinRate is the root's rotation about +Y in radians per second.
	SpinRate float32

	ScriptPath string
	// Script is inline Lua source, used when ScriptPath is empty.
	Script string

	ShowHUD bool
	Camera  Camera

	// Seed drives obstacle placement in the dodge game.
	Seed uint64
	// AutoPlay steers the dodge player without key input.
	AutoPlay bool
}

// dodge reports whether cfg selects the dodge game rather than a static
// shape.
func (c Config) dodge() bool {
	return c.AssetPath == "" && c.NodeName == "" && strings.EqualFold(c.Shape, "dodge")
}

// DefaultConfig returns the spinning donut setup.
func DefaultConfig() Config {
	return Config{
		Shape:       "donut",
		Color:       "Wheat",
		ChildColors: map[string]string{"Icing": "DarkCyan"},
		ClearColor:  "Black",
		HUDColor:    "White",
		SpinRate:    1.0 / 8,
		ShowHUD:     true,
		Camera:      DefaultCamera(),
	}
}

// palette holds a Config's color names resolved to presets.
type palette struct {
	node  gfx.Color
	clear gfx.Color
	hud   gfx.Color
	child map[string]gfx.Color
}

func (c Config) resolveColors() (palette, error) {
	var p palette
	var err error
	if p.node, err = lookupColor(c.Color, gfx.Wheat); err != nil {
		return p, err
	}
	if p.clear, err = lookupColor(c.ClearColor, gfx.Black); err != nil {
		return p, err
	}
	if p.hud, err = lookupColor(c.HUDColor, gfx.White); err != nil {
		return p, err
	}
	p.child = make(map[string]gfx.Color, len(c.ChildColors))
	for name, cn := range c.ChildColors {
		if p.child[name], err = lookupColor(cn, gfx.Black); err != nil {
			return p, fmt.Errorf("child %q: %w", name, err)
		}
	}
	return p, nil
}

func lookupColor(name string, def gfx.Color) (gfx.Color, error) {
	if name == "" {
		return def, nil
	}
	c, ok := gfx.ColorByName(name)
	if !ok {
		return gfx.Color{}, fmt.Errorf("%w: %q", ErrUnknownColor, name)
	}
	return c, nil
}
