package gltfasset

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"

	"wirespin/gfx"
	"wirespin/scene"
)

func tetra(name string, width int, children ...scene.AssetNode) scene.AssetNode {
	tris := []uint32{0, 1, 2, 0, 3, 1, 1, 3, 2, 2, 3, 0}
	prim := scene.AssetPrimitive{
		Positions: scene.EncodePositions([]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}),
	}
	switch width {
	case 1:
		b := make([]byte, len(tris))
		for i, v := range tris {
			b[i] = byte(v)
		}
		prim.Indices = &scene.RawIndices{Width: 1, Data: b}
	case 2:
		ix := make([]uint16, len(tris))
		for i, v := range tris {
			ix[i] = uint16(v)
		}
		prim.Indices = scene.EncodeIndices16(ix)
	}
	return scene.AssetNode{Name: name, Primitives: []scene.AssetPrimitive{prim}, Children: children}
}

func sampleTree() scene.AssetNode {
	root := scene.AssetNode{
		Name:        "Donut",
		Translation: [3]float32{1, 2, 3},
		Children: []scene.AssetNode{
			tetra("Dough", 2),
			tetra("Icing", 1, tetra("Sprinkles", 0)),
		},
	}
	root.Scale = [3]float32{16, 16, 16}
	return root
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for _, name := range []string{"donut.glb", "donut.gltf"} {
		path := filepath.Join(t.TempDir(), name)
		if err := Save(path, sampleTree()); err != nil {
			t.Fatalf("%s: Save: %v", name, err)
		}

		a, err := Load(path)
		if err != nil {
			t.Fatalf("%s: Load: %v", name, err)
		}
		if a.Name != "Donut" || a.Translation != [3]float32{1, 2, 3} || a.Scale != [3]float32{16, 16, 16} {
			t.Fatalf("%s: root = %q T=%v S=%v", name, a.Name, a.Translation, a.Scale)
		}
		if a.Rotation != [4]float32{0, 0, 0, 1} {
			t.Fatalf("%s: root rotation = %v, want identity", name, a.Rotation)
		}
		if w := a.Children[1].Primitives[0].Indices.Width; w != 1 {
			t.Fatalf("%s: Icing index width = %d, want 1", name, w)
		}
		if a.Children[1].Children[0].Primitives[0].Indices != nil {
			t.Fatalf("%s: Sprinkles should be non-indexed", name)
		}

		root, err := scene.Build(a, gfx.Wheat)
		if err != nil {
			t.Fatalf("%s: Build: %v", name, err)
		}
		// The non-indexed tetrahedron contributes 4 vertices taken as one
		// triangle plus a remainder.
		want := scene.Stats{Nodes: 4, Meshes: 3, Vertices: 12, Edges: 15}
		if got := root.Stats(); got != want {
			t.Fatalf("%s: Stats() = %+v, want %+v", name, got, want)
		}
	}
}

func TestNamed(t *testing.T) {
	doc, err := Encode(sampleTree())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	a, err := Named(doc, "Icing")
	if err != nil {
		t.Fatalf("Named: %v", err)
	}
	if a.Name != "Icing" || len(a.Children) != 1 || a.Children[0].Name != "Sprinkles" {
		t.Fatalf("Named(Icing) = %+v", a)
	}
	if _, err := Named(doc, "Cube"); !errors.Is(err, ErrNodeNotFound) {
		t.Fatalf("Named(Cube) err = %v, want ErrNodeNotFound", err)
	}
}

func TestRootWrapsSeveralSceneRoots(t *testing.T) {
	doc, err := Encode(tetra("A", 2))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: "B", Mesh: doc.Nodes[0].Mesh})
	doc.Scenes[0].Nodes = appendIndex(doc.Scenes[0].Nodes, 1)
	doc.Scenes[0].Name = "Pair"

	a, err := Root(doc)
	if err != nil {
		t.Fatalf("Root: %v", err)
	}
	if a.Name != "Pair" || len(a.Children) != 2 || a.Children[1].Name != "B" {
		t.Fatalf("Root = %+v", a)
	}
	if len(a.Children[1].Primitives) != 1 {
		t.Fatalf("shared mesh not converted for B")
	}
}

func TestRootErrors(t *testing.T) {
	if _, err := Root(&gltf.Document{}); !errors.Is(err, ErrNoNodes) {
		t.Fatalf("empty document err = %v, want ErrNoNodes", err)
	}

	doc, err := Encode(tetra("Loop", 2, scene.AssetNode{Name: "Child"}))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	doc.Nodes[1].Children = appendIndex(doc.Nodes[1].Children[:0], 0)
	if _, err := Root(doc); !errors.Is(err, ErrNodeCycle) {
		t.Fatalf("cycle err = %v, want ErrNodeCycle", err)
	}
}

func TestFloatIndicesRejectedByBuild(t *testing.T) {
	doc, err := Encode(tetra("Cube", 2))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	prim := doc.Meshes[0].Primitives[0]
	doc.Accessors[*prim.Indices].ComponentType = gltf.ComponentFloat

	a, err := Root(doc)
	if err != nil {
		t.Fatalf("Root: %v", err)
	}
	if _, err := scene.Build(a, gfx.White); !errors.Is(err, scene.ErrUnsupportedIndexWidth) {
		t.Fatalf("Build err = %v, want ErrUnsupportedIndexWidth", err)
	}
}

func TestMatrixDecomposed(t *testing.T) {
	doc, err := Encode(scene.AssetNode{Name: "M"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	m := mgl32.Translate3D(4, 5, 6).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(90))).
		Mul4(mgl32.Scale3D(2, 3, 4))
	setFloats(doc.Nodes[0].Matrix[:], m[:]...)

	a, err := Root(doc)
	if err != nil {
		t.Fatalf("Root: %v", err)
	}
	if a.Translation != [3]float32{4, 5, 6} {
		t.Fatalf("Translation = %v, want (4,5,6)", a.Translation)
	}
	s := mgl32.Vec3(a.Scale)
	if !s.ApproxEqualThreshold(mgl32.Vec3{2, 3, 4}, 1e-5) {
		t.Fatalf("Scale = %v, want (2,3,4)", a.Scale)
	}

	n, err := scene.Build(a, gfx.White)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !n.LocalMatrix().ApproxEqualThreshold(m, 1e-5) {
		t.Fatalf("LocalMatrix() = %v, want %v", n.LocalMatrix(), m)
	}
}
