// Package scene holds the wireframe scene graph: a tree of nodes with local
// TRS transforms and optional edge meshes built from indexed triangles.
//
// The tree is built once from an AssetNode and keeps its shape afterwards;
// only the per-node transform and color fields change between frames.
package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"wirespin/gfx"
)

// Node is one scene graph node. A parent owns its children by value.
type Node struct {
	name        string
	color       gfx.Color
	translation mgl32.Vec3
	rotation    mgl32.Quat
	scale       mgl32.Vec3
	mesh        *Mesh
	children    []Node
}

// Build constructs the node tree rooted at a, drawing every mesh in c.
//
// Geometry problems are fatal: the whole build fails with the first error,
// wrapped with the offending node's name.
func Build(a AssetNode, c gfx.Color) (*Node, error) {
	n, err := build(a, c)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func build(a AssetNode, c gfx.Color) (Node, error) {
	n := Node{
		name:        a.Name,
		color:       c,
		translation: mgl32.Vec3(a.Translation),
		rotation:    mgl32.Quat{W: a.Rotation[3], V: mgl32.Vec3{a.Rotation[0], a.Rotation[1], a.Rotation[2]}},
		scale:       mgl32.Vec3(a.Scale),
	}
	if a.Rotation == ([4]float32{}) {
		n.rotation = mgl32.QuatIdent()
	}
	if a.Scale == ([3]float32{}) {
		n.scale = mgl32.Vec3{1, 1, 1}
	}

	switch len(a.Primitives) {
	case 0:
	case 1:
		m, err := newMesh(a.Primitives[0])
		if err != nil {
			return Node{}, fmt.Errorf("node %q: %w", a.Name, err)
		}
		n.mesh = m
	default:
		return Node{}, fmt.Errorf("node %q: %w (%d)", a.Name, ErrMultiplePrimitives, len(a.Primitives))
	}

	if len(a.Children) > 0 {
		n.children = make([]Node, 0, len(a.Children))
	}
	for _, ca := range a.Children {
		child, err := build(ca, c)
		if err != nil {
			return Node{}, err
		}
		n.children = append(n.children, child)
	}
	return n, nil
}

func (n *Node) Name() string                { return n.name }
func (n *Node) Color() gfx.Color            { return n.color }
func (n *Node) Translation() mgl32.Vec3     { return n.translation }
func (n *Node) Rotation() mgl32.Quat        { return n.rotation }
func (n *Node) Scale() mgl32.Vec3           { return n.scale }
func (n *Node) Mesh() *Mesh                 { return n.mesh }
func (n *Node) NumChildren() int            { return len(n.children) }
func (n *Node) Child(i int) *Node           { return &n.children[i] }
func (n *Node) SetColor(c gfx.Color)        { n.color = c }
func (n *Node) SetTranslation(v mgl32.Vec3) { n.translation = v }
func (n *Node) SetRotation(q mgl32.Quat)    { n.rotation = q }
func (n *Node) SetScale(v mgl32.Vec3)       { n.scale = v }

// SetChildColor sets the color of every node in the subtree, n included,
// whose name equals name.
func (n *Node) SetChildColor(name string, c gfx.Color) {
	if n.name == name {
		n.color = c
	}
	for i := range n.children {
		n.children[i].SetChildColor(name, c)
	}
}

// LocalMatrix returns translate(T) * rotate(R) * scale(S).
func (n *Node) LocalMatrix() mgl32.Mat4 {
	t := mgl32.Translate3D(n.translation[0], n.translation[1], n.translation[2])
	s := mgl32.Scale3D(n.scale[0], n.scale[1], n.scale[2])
	return t.Mul4(n.rotation.Mat4()).Mul4(s)
}

// Draw renders the subtree. parent is the inherited world transform and
// camera the combined view-projection matrix; each mesh is transformed by
// camera * world. Children are drawn in order after their parent, and the
// depth test lets the later draw win ties.
func (n *Node) Draw(p *gfx.Pipeline, fb *gfx.Framebuffer, parent, camera mgl32.Mat4) {
	world := parent.Mul4(n.LocalMatrix())
	if n.mesh != nil {
		p.DrawLineListIndexed(fb, n.mesh.Positions, n.mesh.Edges, camera.Mul4(world), n.color)
	}
	for i := range n.children {
		n.children[i].Draw(p, fb, world, camera)
	}
}

// Render draws the tree rooted at n with an identity parent transform.
func (n *Node) Render(p *gfx.Pipeline, fb *gfx.Framebuffer, camera mgl32.Mat4) {
	n.Draw(p, fb, mgl32.Ident4(), camera)
}

// Walk visits the subtree depth-first, parents before children.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for i := range n.children {
		n.children[i].Walk(fn)
	}
}

// Find returns the first node named name in depth-first order, or nil.
func (n *Node) Find(name string) *Node {
	if n.name == name {
		return n
	}
	for i := range n.children {
		if f := n.children[i].Find(name); f != nil {
			return f
		}
	}
	return nil
}

// Stats summarizes a subtree.
type Stats struct {
	Nodes    int
	Meshes   int
	Vertices int
	Edges    int
}

func (n *Node) Stats() Stats {
	var s Stats
	n.Walk(func(m *Node) {
		s.Nodes++
		if m.mesh == nil {
			return
		}
		s.Meshes++
		s.Vertices += len(m.mesh.Positions)
		s.Edges += m.mesh.EdgeCount()
	})
	return s
}
