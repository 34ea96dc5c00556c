// Package gltfasset reads glTF 2.0 documents (.gltf or .glb) into the
// format-neutral scene.AssetNode tree, and writes such trees back out.
package gltfasset

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"

	"wirespin/scene"
)

var (
	ErrNoNodes         = errors.New("gltfasset: document has no nodes")
	ErrNodeNotFound    = errors.New("gltfasset: node not found")
	ErrBadAccessor     = errors.New("gltfasset: accessor out of range")
	ErrPositionType    = errors.New("gltfasset: POSITION must be float32 VEC3")
	ErrNodeCycle       = errors.New("gltfasset: node hierarchy has a cycle")
	errMissingBufferVw = errors.New("gltfasset: accessor has no buffer view")
)

// Load opens path and converts the document's root node.
func Load(path string) (scene.AssetNode, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return scene.AssetNode{}, fmt.Errorf("gltfasset: open %s: %w", path, err)
	}
	return Root(doc)
}

// LoadNode opens path and converts the first node called name.
func LoadNode(path, name string) (scene.AssetNode, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return scene.AssetNode{}, fmt.Errorf("gltfasset: open %s: %w", path, err)
	}
	return Named(doc, name)
}

// Root converts the default scene (or scene 0, or node 0 when the document
// has no scenes). A scene with several root nodes is wrapped in one
// synthetic node named after the scene.
func Root(doc *gltf.Document) (scene.AssetNode, error) {
	var roots []int
	def := -1
	if doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes) {
		def = int(*doc.Scene)
	}
	switch {
	case def >= 0:
		roots = indices(doc.Scenes[def].Nodes)
	case len(doc.Scenes) > 0:
		roots = indices(doc.Scenes[0].Nodes)
	case len(doc.Nodes) > 0:
		roots = []int{0}
	}
	if len(roots) == 0 {
		return scene.AssetNode{}, ErrNoNodes
	}
	if len(roots) == 1 {
		return convertNode(doc, roots[0], map[int]bool{})
	}

	wrap := scene.AssetNode{Name: "Scene"}
	if def >= 0 && doc.Scenes[def].Name != "" {
		wrap.Name = doc.Scenes[def].Name
	}
	for _, i := range roots {
		child, err := convertNode(doc, i, map[int]bool{})
		if err != nil {
			return scene.AssetNode{}, err
		}
		wrap.Children = append(wrap.Children, child)
	}
	return wrap, nil
}

// Named converts the first node in document order called name.
func Named(doc *gltf.Document, name string) (scene.AssetNode, error) {
	for i, n := range doc.Nodes {
		if n != nil && n.Name == name {
			return convertNode(doc, i, map[int]bool{})
		}
	}
	return scene.AssetNode{}, fmt.Errorf("%w: %q", ErrNodeNotFound, name)
}

func convertNode(doc *gltf.Document, idx int, path map[int]bool) (scene.AssetNode, error) {
	if idx < 0 || idx >= len(doc.Nodes) || doc.Nodes[idx] == nil {
		return scene.AssetNode{}, fmt.Errorf("gltfasset: node index %d out of range", idx)
	}
	if path[idx] {
		return scene.AssetNode{}, fmt.Errorf("%w at node %d", ErrNodeCycle, idx)
	}
	path[idx] = true
	defer delete(path, idx)

	n := doc.Nodes[idx]
	a := scene.AssetNode{Name: n.Name}
	if a.Name == "" {
		a.Name = fmt.Sprintf("node%d", idx)
	}

	if hasMatrix(n.Matrix) {
		var m mgl32.Mat4
		for i, v := range n.Matrix {
			m[i] = float32(v)
		}
		a.Translation, a.Rotation, a.Scale = decompose(m)
	} else {
		a.Translation = [3]float32{float32(n.Translation[0]), float32(n.Translation[1]), float32(n.Translation[2])}
		a.Rotation = [4]float32{float32(n.Rotation[0]), float32(n.Rotation[1]), float32(n.Rotation[2]), float32(n.Rotation[3])}
		a.Scale = [3]float32{float32(n.Scale[0]), float32(n.Scale[1]), float32(n.Scale[2])}
	}

	if n.Mesh != nil {
		mi := int(*n.Mesh)
		if mi < 0 || mi >= len(doc.Meshes) {
			return scene.AssetNode{}, fmt.Errorf("gltfasset: node %q: mesh %d out of range", a.Name, mi)
		}
		for _, p := range doc.Meshes[mi].Primitives {
			prim, err := convertPrimitive(doc, p)
			if err != nil {
				return scene.AssetNode{}, fmt.Errorf("gltfasset: node %q: %w", a.Name, err)
			}
			a.Primitives = append(a.Primitives, prim)
		}
	}

	for _, ci := range indices(n.Children) {
		child, err := convertNode(doc, ci, path)
		if err != nil {
			return scene.AssetNode{}, err
		}
		a.Children = append(a.Children, child)
	}
	return a, nil
}

// convertPrimitive copies buffer references only; layout validation is left
// to scene.Build so that every asset source fails the same way.
func convertPrimitive(doc *gltf.Document, p *gltf.Primitive) (scene.AssetPrimitive, error) {
	var out scene.AssetPrimitive

	if pos, ok := p.Attributes[gltf.POSITION]; ok {
		acc, err := accessor(doc, int(pos))
		if err != nil {
			return out, err
		}
		if acc.ComponentType != gltf.ComponentFloat || acc.Type != gltf.AccessorVec3 {
			return out, ErrPositionType
		}
		data, stride, err := accessorBytes(doc, acc)
		if err != nil {
			return out, err
		}
		out.Positions = scene.RawPositions{Data: data, Stride: stride, Count: int(acc.Count)}
	}

	if p.Indices != nil {
		acc, err := accessor(doc, int(*p.Indices))
		if err != nil {
			return out, err
		}
		data, _, err := accessorBytes(doc, acc)
		if err != nil {
			return out, err
		}
		out.Indices = &scene.RawIndices{Width: indexWidth(acc.ComponentType), Data: data, Count: int(acc.Count)}
	}
	return out, nil
}

// indexWidth maps an index component type to its byte width. Types that are
// not valid for indices map to 0, which scene.Build rejects.
func indexWidth(ct gltf.ComponentType) int {
	switch ct {
	case gltf.ComponentUbyte:
		return 1
	case gltf.ComponentUshort:
		return 2
	case gltf.ComponentUint:
		return 4
	}
	return 0
}

func accessor(doc *gltf.Document, i int) (*gltf.Accessor, error) {
	if i < 0 || i >= len(doc.Accessors) || doc.Accessors[i] == nil {
		return nil, fmt.Errorf("%w: %d", ErrBadAccessor, i)
	}
	return doc.Accessors[i], nil
}

func accessorBytes(doc *gltf.Document, acc *gltf.Accessor) ([]byte, int, error) {
	if acc.BufferView == nil {
		return nil, 0, errMissingBufferVw
	}
	vi := int(*acc.BufferView)
	if vi < 0 || vi >= len(doc.BufferViews) || doc.BufferViews[vi] == nil {
		return nil, 0, fmt.Errorf("%w: buffer view %d", ErrBadAccessor, vi)
	}
	bv := doc.BufferViews[vi]
	bi := int(bv.Buffer)
	if bi < 0 || bi >= len(doc.Buffers) || doc.Buffers[bi] == nil {
		return nil, 0, fmt.Errorf("%w: buffer %d", ErrBadAccessor, bi)
	}
	data := doc.Buffers[bi].Data
	start := int(bv.ByteOffset) + int(acc.ByteOffset)
	end := int(bv.ByteOffset) + int(bv.ByteLength)
	if start < 0 || start > end || end > len(data) {
		return nil, 0, fmt.Errorf("%w: bytes [%d:%d] of %d", ErrBadAccessor, start, end, len(data))
	}
	return data[start:end], int(bv.ByteStride), nil
}

// index is the integer type glTF documents use for cross references.
type index interface{ ~int | ~uint32 }

func indices[T index](s []T) []int {
	out := make([]int, len(s))
	for i, v := range s {
		out[i] = int(v)
	}
	return out
}

func hasMatrix[T float32 | float64](m [16]T) bool {
	zero, ident := true, true
	for i, v := range m {
		if v != 0 {
			zero = false
		}
		want := T(0)
		if i%5 == 0 {
			want = 1
		}
		if v != want {
			ident = false
		}
	}
	return !zero && !ident
}

// decompose splits an affine column-major matrix without shear into TRS.
func decompose(m mgl32.Mat4) (t [3]float32, r [4]float32, s [3]float32) {
	t = [3]float32{m[12], m[13], m[14]}
	for c := 0; c < 3; c++ {
		col := mgl32.Vec3{m[c*4], m[c*4+1], m[c*4+2]}
		s[c] = col.Len()
	}
	if m.Mat3().Det() < 0 {
		s[0] = -s[0]
	}

	var rot mgl32.Mat4
	for c := 0; c < 3; c++ {
		k := s[c]
		if k == 0 || math.IsNaN(float64(k)) {
			k = 1
		}
		for row := 0; row < 3; row++ {
			rot[c*4+row] = m[c*4+row] / k
		}
	}
	rot[15] = 1
	q := mgl32.Mat4ToQuat(rot).Normalize()
	r = [4]float32{q.V[0], q.V[1], q.V[2], q.W}
	return t, r, s
}
