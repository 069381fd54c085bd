package editor

import (
	"math"

	"meshedit/internal/engine"
	"meshedit/internal/logging"

	"github.com/go-gl/mathgl/mgl64"
)

// ActiveMesh is the mesh element selection and geometry drags apply to:
// the primary selection when it carries a mesh, otherwise the first mesh
// under the root. Switching meshes drops picked elements.
func (c *Controller) ActiveMesh() *engine.Node {
	scene := c.world.Scene
	n := scene.Primary()
	if n == nil || !n.HasMesh() || n.Parent() == nil {
		n = scene.FirstMesh()
	}
	if n != c.Selection.Mesh {
		c.Selection.Clear()
		c.Selection.Mesh = n
	}
	return n
}

func (c *Controller) hasPickedVertices() bool {
	for _, on := range c.Selection.Vertices {
		if on {
			return true
		}
	}
	return false
}

func (c *Controller) selectAt(p mgl64.Vec2, extend bool) {
	switch c.Mode {
	case ModeObject:
		c.selectObject(extend)
	case ModeVertex:
		c.pickElement(c.Selection.Vertices, c.nearestVertex(p), extend, "vertices")
	case ModeEdge:
		c.pickElement(c.Selection.Edges, c.nearestEdge(p), extend, "edges")
	case ModeFace:
		c.pickElement(c.Selection.Faces, c.frontFaceAt(p), extend, "faces")
	}
}

// selectObject picks the first mesh under the root. Picking is not
// occlusion aware.
func (c *Controller) selectObject(extend bool) {
	scene := c.world.Scene
	n := scene.FirstMesh()
	if n == nil {
		if !extend {
			scene.ClearSelection()
		}
		return
	}
	scene.SelectObject(n, extend)
	logging.Logger().Info("selected", "object", n.Name, "count", len(scene.Selected()))
}

// pickElement toggles idx in set. Without extend the set is cleared first.
// A miss (idx < 0) leaves the set alone.
func (c *Controller) pickElement(set map[int]bool, idx int, extend bool, what string) {
	if idx < 0 {
		return
	}
	if !extend {
		clear(set)
	}
	if set[idx] {
		delete(set, idx)
	} else {
		set[idx] = true
	}
	logging.Logger().Info("selected "+what, "indices", engine.SortedIndices(set))
}

// nearestVertex returns the vertex whose projection is closest to p within
// the selection radius, or -1.
func (c *Controller) nearestVertex(p mgl64.Vec2) int {
	n := c.ActiveMesh()
	if n == nil {
		return -1
	}
	pm := c.renderer.ProjectNode(n)
	best, bestDist := -1, math.Inf(1)
	for i, s := range pm.Screen {
		d := s.Sub(p).Len()
		if d < c.SelectionRadius && d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// nearestEdge picks by projected edge midpoint.
func (c *Controller) nearestEdge(p mgl64.Vec2) int {
	n := c.ActiveMesh()
	if n == nil {
		return -1
	}
	pm := c.renderer.ProjectNode(n)
	best, bestDist := -1, math.Inf(1)
	for i, e := range n.Mesh.Edges {
		if !n.Mesh.ValidEdge(e) {
			continue
		}
		mid := pm.Screen[e[0]].Add(pm.Screen[e[1]]).Mul(0.5)
		d := mid.Sub(p).Len()
		if d < c.SelectionRadius && d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// frontFaceAt returns the nearest face whose projected polygon contains p,
// or -1. Culled faces are not pickable.
func (c *Controller) frontFaceAt(p mgl64.Vec2) int {
	n := c.ActiveMesh()
	if n == nil {
		return -1
	}
	faces := c.renderer.BuildFaces(n, c.renderer.ProjectNode(n), nil)
	best, bestDepth := -1, math.Inf(1)
	for _, f := range faces {
		if f.Depth < bestDepth && pointInPolygon(p, f.Points) {
			best, bestDepth = f.Index, f.Depth
		}
	}
	return best
}

// pointInPolygon is the even-odd crossing test.
func pointInPolygon(p mgl64.Vec2, poly []mgl64.Vec2) bool {
	in := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y() > p.Y()) != (b.Y() > p.Y()) &&
			p.X() < (b.X()-a.X())*(p.Y()-a.Y())/(b.Y()-a.Y())+a.X() {
			in = !in
		}
	}
	return in
}
