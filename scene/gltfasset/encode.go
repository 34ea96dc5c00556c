package gltfasset

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"wirespin/scene"
)

// Encode builds a glTF document whose default scene holds the tree rooted
// at root. Positions and indices are decoded and re-packed into the
// document's single buffer, keeping each primitive's index width.
func Encode(root scene.AssetNode) (*gltf.Document, error) {
	doc := gltf.NewDocument()
	idx, err := encodeNode(doc, root)
	if err != nil {
		return nil, err
	}
	if len(doc.Scenes) == 0 {
		doc.Scenes = append(doc.Scenes, &gltf.Scene{})
	}
	doc.Scenes[0].Nodes = appendIndex(doc.Scenes[0].Nodes[:0], idx)
	setIndex(&doc.Scene, 0)
	return doc, nil
}

// Save encodes root and writes it to path, as binary glTF when the
// extension is .glb and as JSON glTF otherwise.
func Save(path string, root scene.AssetNode) error {
	doc, err := Encode(root)
	if err != nil {
		return err
	}
	if strings.EqualFold(filepath.Ext(path), ".glb") {
		err = gltf.SaveBinary(doc, path)
	} else {
		for _, b := range doc.Buffers {
			if b.URI == "" {
				b.EmbeddedResource()
			}
		}
		err = gltf.Save(doc, path)
	}
	if err != nil {
		return fmt.Errorf("gltfasset: save %s: %w", path, err)
	}
	return nil
}

func encodeNode(doc *gltf.Document, a scene.AssetNode) (int, error) {
	rot, scale := a.Rotation, a.Scale
	if rot == ([4]float32{}) {
		rot = [4]float32{0, 0, 0, 1}
	}
	if scale == ([3]float32{}) {
		scale = [3]float32{1, 1, 1}
	}
	n := &gltf.Node{Name: a.Name}
	setFloats(n.Translation[:], a.Translation[:]...)
	setFloats(n.Rotation[:], rot[:]...)
	setFloats(n.Scale[:], scale[:]...)
	setFloats(n.Matrix[:], 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1)

	if len(a.Primitives) > 0 {
		mesh := &gltf.Mesh{Name: a.Name}
		for _, p := range a.Primitives {
			prim, err := encodePrimitive(doc, p)
			if err != nil {
				return 0, fmt.Errorf("gltfasset: node %q: %w", a.Name, err)
			}
			mesh.Primitives = append(mesh.Primitives, prim)
		}
		doc.Meshes = append(doc.Meshes, mesh)
		setIndex(&n.Mesh, len(doc.Meshes)-1)
	}

	doc.Nodes = append(doc.Nodes, n)
	self := len(doc.Nodes) - 1
	for _, c := range a.Children {
		ci, err := encodeNode(doc, c)
		if err != nil {
			return 0, err
		}
		n.Children = appendIndex(n.Children, ci)
	}
	return self, nil
}

func encodePrimitive(doc *gltf.Document, p scene.AssetPrimitive) (*gltf.Primitive, error) {
	pos, err := scene.DecodePositions(p.Positions)
	if err != nil {
		return nil, err
	}
	xyz := make([][3]float32, len(pos))
	for i, v := range pos {
		xyz[i] = v
	}
	prim := &gltf.Primitive{Mode: gltf.PrimitiveTriangles}
	setAttribute(&prim.Attributes, gltf.POSITION, int(modeler.WritePosition(doc, xyz)))
	if p.Indices == nil {
		return prim, nil
	}

	ix, err := scene.DecodeIndices(*p.Indices)
	if err != nil {
		return nil, err
	}
	var acc int
	switch ix := ix.(type) {
	case scene.Indices8:
		acc = int(modeler.WriteIndices(doc, []uint8(ix)))
	case scene.Indices16:
		acc = int(modeler.WriteIndices(doc, []uint16(ix)))
	case scene.Indices32:
		acc = int(modeler.WriteIndices(doc, []uint32(ix)))
	}
	setIndex(&prim.Indices, acc)
	return prim, nil
}

func setIndex[T index](dst **T, v int) {
	x := T(v)
	*dst = &x
}

func appendIndex[T index](s []T, v int) []T { return append(s, T(v)) }

func setAttribute[M ~map[string]T, T index](m *M, name string, v int) {
	if *m == nil {
		*m = make(M)
	}
	(*m)[name] = T(v)
}

func setFloats[T float32 | float64](dst []T, src ...float32) {
	for i := range dst {
		dst[i] = T(src[i])
	}
}
