package scene

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// Edge is an undirected mesh edge stored as (min, max).
type Edge struct {
	A, B uint32
}

func NewEdge(a, b uint32) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// Mesh is read-only wireframe geometry: vertex positions plus a flat list of
// deduplicated edge index pairs into them.
type Mesh struct {
	Positions []mgl32.Vec3
	Edges     []uint32
}

func (m *Mesh) EdgeCount() int { return len(m.Edges) / 2 }

// ExtractEdges groups triangles into (a, b, c) triples and returns the unique
// undirected edges as flat (min, max) pairs, sorted ascending. A trailing
// partial triangle is ignored.
func ExtractEdges(triangles []uint32) []uint32 {
	set := make(map[Edge]struct{}, len(triangles))
	for i := 0; i+2 < len(triangles); i += 3 {
		a, b, c := sort3(triangles[i], triangles[i+1], triangles[i+2])
		set[Edge{a, b}] = struct{}{}
		set[Edge{b, c}] = struct{}{}
		set[Edge{a, c}] = struct{}{}
	}

	edges := make([]Edge, 0, len(set))
	for e := range set {
		edges = append(edges, e)
	}
	slices.SortFunc(edges, func(x, y Edge) int {
		if c := cmp.Compare(x.A, y.A); c != 0 {
			return c
		}
		return cmp.Compare(x.B, y.B)
	})

	out := make([]uint32, 0, len(edges)*2)
	for _, e := range edges {
		out = append(out, e.A, e.B)
	}
	return out
}

func sort3(a, b, c uint32) (uint32, uint32, uint32) {
	if a > b {
		a, b = b, a
	}
	if a > c {
		a, c = c, a
	}
	if b > c {
		b, c = c, b
	}
	return a, b, c
}

func newMesh(p AssetPrimitive) (*Mesh, error) {
	positions, err := DecodePositions(p.Positions)
	if err != nil {
		return nil, err
	}

	var triangles []uint32
	if p.Indices == nil {
		triangles = make([]uint32, len(positions))
		for i := range triangles {
			triangles[i] = uint32(i)
		}
	} else {
		ix, err := DecodeIndices(*p.Indices)
		if err != nil {
			return nil, err
		}
		triangles = ix.Widen()
	}

	edges := ExtractEdges(triangles)
	n := uint32(len(positions))
	for _, i := range edges {
		if i >= n {
			return nil, fmt.Errorf("%w: index %d, %d vertices", ErrIndexOutOfRange, i, n)
		}
	}
	return &Mesh{Positions: positions, Edges: edges}, nil
}
