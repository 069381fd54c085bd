package engine

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jinzhu/copier"
)

// ErrBadIndex marks a face or edge that references a missing vertex.
var ErrBadIndex = errors.New("index out of range")

// Mesh is indexed polygon data in object space.
type Mesh struct {
	Vertices []mgl64.Vec3
	Faces    [][]int
	Edges    [][2]int
}

// HasFaces reports whether the mesh carries any polygons.
func (m *Mesh) HasFaces() bool {
	return m != nil && len(m.Faces) > 0
}

// ValidFace reports whether f has at least three indices, all in range.
func (m *Mesh) ValidFace(f []int) bool {
	if len(f) < 3 {
		return false
	}
	for _, i := range f {
		if i < 0 || i >= len(m.Vertices) {
			return false
		}
	}
	return true
}

// ValidEdge reports whether both endpoints of e are in range.
func (m *Mesh) ValidEdge(e [2]int) bool {
	n := len(m.Vertices)
	return e[0] >= 0 && e[0] < n && e[1] >= 0 && e[1] < n
}

// Validate returns an error describing the first face or edge that breaks
// the index invariant.
func (m *Mesh) Validate() error {
	for fi, f := range m.Faces {
		if len(f) < 3 {
			return fmt.Errorf("face %d has %d indices, need at least 3", fi, len(f))
		}
		if !m.ValidFace(f) {
			return fmt.Errorf("face %d: %w (vertices=%d)", fi, ErrBadIndex, len(m.Vertices))
		}
	}
	for ei, e := range m.Edges {
		if !m.ValidEdge(e) {
			return fmt.Errorf("edge %d: %w (vertices=%d)", ei, ErrBadIndex, len(m.Vertices))
		}
	}
	return nil
}

// Clone returns a deep copy.
func (m *Mesh) Clone() *Mesh {
	if m == nil {
		return nil
	}
	out := &Mesh{}
	if err := copier.CopyWithOption(out, m, copier.Option{DeepCopy: true}); err != nil {
		return m.copyManual()
	}
	return out
}

func (m *Mesh) copyManual() *Mesh {
	out := &Mesh{
		Vertices: append([]mgl64.Vec3(nil), m.Vertices...),
		Edges:    append([][2]int(nil), m.Edges...),
		Faces:    make([][]int, len(m.Faces)),
	}
	for i, f := range m.Faces {
		out.Faces[i] = append([]int(nil), f...)
	}
	return out
}

// Centroid returns the mean of all vertices, or the origin for an empty mesh.
func (m *Mesh) Centroid() mgl64.Vec3 {
	var c mgl64.Vec3
	if len(m.Vertices) == 0 {
		return c
	}
	for _, v := range m.Vertices {
		c = c.Add(v)
	}
	return c.Mul(1 / float64(len(m.Vertices)))
}

// WithoutVertices returns a copy of m with the given vertices removed.
// Faces and edges that reference a removed vertex are dropped and the
// surviving indices are remapped. Out-of-range indices are ignored.
func (m *Mesh) WithoutVertices(indices []int) *Mesh {
	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		if i >= 0 && i < len(m.Vertices) {
			drop[i] = true
		}
	}
	out := &Mesh{}
	remap := make([]int, len(m.Vertices))
	for i, v := range m.Vertices {
		if drop[i] {
			remap[i] = -1
			continue
		}
		remap[i] = len(out.Vertices)
		out.Vertices = append(out.Vertices, v)
	}

faces:
	for _, f := range m.Faces {
		if !m.ValidFace(f) {
			continue
		}
		nf := make([]int, len(f))
		for k, i := range f {
			if remap[i] < 0 {
				continue faces
			}
			nf[k] = remap[i]
		}
		out.Faces = append(out.Faces, nf)
	}
	for _, e := range m.Edges {
		if !m.ValidEdge(e) || remap[e[0]] < 0 || remap[e[1]] < 0 {
			continue
		}
		out.Edges = append(out.Edges, [2]int{remap[e[0]], remap[e[1]]})
	}
	return out
}

// SortedIndices returns the keys of set in ascending order.
func SortedIndices(set map[int]bool) []int {
	out := make([]int, 0, len(set))
	for i, ok := range set {
		if ok {
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out
}
