package app

import (
	"math"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"wirespin/scene"
)

// Shapes lists the built-in procedural assets by name.
var Shapes = map[string]func() scene.AssetNode{
	"donut":       Donut,
	"torus":       func() scene.AssetNode { return Torus("Torus", 1, 0.38, 32, 16) },
	"tetrahedron": Tetrahedron,
	"cube":        Cube,
	"dodge":       Dodge,
}

// ShapeNames returns the Shapes keys in sorted order.
func ShapeNames() []string {
	names := make([]string, 0, len(Shapes))
	for n := range Shapes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ShapeByName looks up a built-in shape, ignoring case.
func ShapeByName(name string) (scene.AssetNode, bool) {
	fn, ok := Shapes[strings.ToLower(name)]
	if !ok {
		return scene.AssetNode{}, false
	}
	return fn(), true
}

// Donut is a torus ("Dough") under a half torus covering its top ("Icing").
func Donut() scene.AssetNode {
	dough := torusNode("Dough", 1, 0.38, 32, 16, 2*math.Pi)
	icing := torusNode("Icing", 1, 0.41, 32, 8, math.Pi)
	return scene.AssetNode{
		Name:     "Donut",
		Children: []scene.AssetNode{dough, icing},
	}
}

// Torus is a closed torus around +Y.
func Torus(name string, major, minor float32, segU, segV int) scene.AssetNode {
	return torusNode(name, major, minor, segU, segV, 2*math.Pi)
}

// torusNode sweeps a tube of radius minor around a circle of radius major.
// arc limits the tube cross-section to [0, arc]; with arc < 2*pi the tube
// is left open along its seam.
func torusNode(name string, major, minor float32, segU, segV int, arc float64) scene.AssetNode {
	if segU < 3 {
		segU = 3
	}
	if segV < 3 {
		segV = 3
	}
	closed := arc >= 2*math.Pi
	rows := segV
	if !closed {
		rows = segV + 1
	}

	verts := make([]mgl32.Vec3, 0, segU*rows)
	for u := 0; u < segU; u++ {
		theta := 2 * math.Pi * float64(u) / float64(segU)
		ct, st := float32(math.Cos(theta)), float32(math.Sin(theta))
		for v := 0; v < rows; v++ {
			phi := arc * float64(v) / float64(segV)
			cp, sp := float32(math.Cos(phi)), float32(math.Sin(phi))

			r := major + minor*cp
			verts = append(verts, mgl32.Vec3{r * ct, minor * sp, r * st})
		}
	}

	idx := func(u, v int) uint16 {
		return uint16((u%segU)*rows + v%rows)
	}

	indices := make([]uint16, 0, segU*segV*6)
	for u := 0; u < segU; u++ {
		for v := 0; v < segV; v++ {
			i0 := idx(u, v)
			i1 := idx(u+1, v)
			i2 := idx(u+1, v+1)
			i3 := idx(u, v+1)

			indices = append(indices, i0, i1, i2)
			indices = append(indices, i0, i2, i3)
		}
	}
	return meshNode(name, verts, indices)
}

func Tetrahedron() scene.AssetNode {
	verts := []mgl32.Vec3{
		{1, 1, 1},
		{1, -1, -1},
		{-1, 1, -1},
		{-1, -1, 1},
	}
	return meshNode("Tetrahedron", verts, []uint16{
		0, 1, 2,
		0, 3, 1,
		0, 2, 3,
		1, 3, 2,
	})
}

func Cube() scene.AssetNode {
	verts := []mgl32.Vec3{
		{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
		{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
	}
	return meshNode("Cube", verts, []uint16{
		0, 2, 1, 0, 3, 2, // back
		4, 5, 6, 4, 6, 7, // front
		0, 1, 5, 0, 5, 4, // bottom
		3, 7, 6, 3, 6, 2, // top
		0, 4, 7, 0, 7, 3, // left
		1, 2, 6, 1, 6, 5, // right
	})
}

func meshNode(name string, verts []mgl32.Vec3, indices []uint16) scene.AssetNode {
	return scene.AssetNode{
		Name: name,
		Primitives: []scene.AssetPrimitive{{
			Positions: scene.EncodePositions(verts),
			Indices:   scene.EncodeIndices16(indices),
		}},
	}
}

// findAsset returns the first node named name in depth-first order.
func findAsset(a scene.AssetNode, name string) (scene.AssetNode, bool) {
	if a.Name == name {
		return a, true
	}
	for _, c := range a.Children {
		if f, ok := findAsset(c, name); ok {
			return f, true
		}
	}
	return scene.AssetNode{}, false
}
