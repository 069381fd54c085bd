package engine

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// PrimitiveKind names a built-in mesh generator.
type PrimitiveKind string

const (
	PrimitiveCube   PrimitiveKind = "cube"
	PrimitiveSphere PrimitiveKind = "sphere"
)

const (
	DefaultSphereSegments = 16
	DefaultSphereRings    = 8
)

// NewPrimitive builds the named primitive with the given edge length or
// diameter.
func NewPrimitive(kind PrimitiveKind, size float64) (*Mesh, error) {
	switch kind {
	case PrimitiveCube:
		return NewCube(size), nil
	case PrimitiveSphere:
		return NewSphere(size, DefaultSphereSegments, DefaultSphereRings), nil
	}
	return nil, fmt.Errorf("unknown primitive %q", kind)
}

// NewCube returns an axis-aligned cube centred on the origin. Vertices 0-3
// are the back (-z) ring, 4-7 the front (+z) ring, each ordered
// bottom-left, bottom-right, top-right, top-left. Faces wind so that the
// first-edge cross product points outward.
func NewCube(size float64) *Mesh {
	h := size / 2
	return &Mesh{
		Vertices: []mgl64.Vec3{
			{-h, -h, -h},
			{h, -h, -h},
			{h, h, -h},
			{-h, h, -h},
			{-h, -h, h},
			{h, -h, h},
			{h, h, h},
			{-h, h, h},
		},
		Faces: [][]int{
			{0, 3, 2, 1}, // back
			{4, 5, 6, 7}, // front
			{0, 1, 5, 4}, // bottom
			{2, 3, 7, 6}, // top
			{0, 4, 7, 3}, // left
			{1, 2, 6, 5}, // right
		},
		Edges: [][2]int{
			{0, 1}, {1, 2}, {2, 3}, {3, 0},
			{4, 5}, {5, 6}, {6, 7}, {7, 4},
			{0, 4}, {1, 5}, {2, 6}, {3, 7},
		},
	}
}

// NewSphere returns a latitude/longitude sphere: a top pole, rings*segments
// ring vertices, and a bottom pole. Caps are triangles, bands are quads,
// all wound outward.
func NewSphere(size float64, segments, rings int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	if rings < 1 {
		rings = 1
	}
	r := size / 2
	m := &Mesh{}
	m.Vertices = append(m.Vertices, mgl64.Vec3{0, r, 0})
	for i := 0; i < rings; i++ {
		phi := math.Pi * float64(i+1) / float64(rings+1)
		for j := 0; j < segments; j++ {
			theta := 2 * math.Pi * float64(j) / float64(segments)
			m.Vertices = append(m.Vertices, mgl64.Vec3{
				r * math.Sin(phi) * math.Cos(theta),
				r * math.Cos(phi),
				r * math.Sin(phi) * math.Sin(theta),
			})
		}
	}
	bottom := len(m.Vertices)
	m.Vertices = append(m.Vertices, mgl64.Vec3{0, -r, 0})

	seen := make(map[[2]int]bool)
	edge := func(a, b int) {
		k := [2]int{min(a, b), max(a, b)}
		if seen[k] {
			return
		}
		seen[k] = true
		m.Edges = append(m.Edges, [2]int{a, b})
	}

	for i := 0; i < segments; i++ {
		next := (i + 1) % segments
		edge(0, i+1)
		edge(i+1, next+1)
		m.Faces = append(m.Faces, []int{0, next + 1, i + 1})
	}
	for ring := 0; ring < rings-1; ring++ {
		start := 1 + ring*segments
		nextStart := start + segments
		for i := 0; i < segments; i++ {
			cur := start + i
			nextInRing := start + (i+1)%segments
			below := nextStart + i
			belowNext := nextStart + (i+1)%segments
			edge(cur, nextInRing)
			edge(cur, below)
			m.Faces = append(m.Faces, []int{cur, nextInRing, belowNext, below})
		}
	}
	last := 1 + (rings-1)*segments
	for i := 0; i < segments; i++ {
		cur := last + i
		next := last + (i+1)%segments
		edge(cur, bottom)
		edge(cur, next)
		m.Faces = append(m.Faces, []int{bottom, cur, next})
	}
	return m
}
