// Package render is the software 3D pipeline: view projection, painter's
// algorithm face sorting, flat lighting and editor overlays, drawn through
// a 2D canvas.
package render

import (
	"image/color"
	"math"
	"sort"

	"meshedit/internal/engine"
	"meshedit/internal/logging"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

const (
	DefaultGridHalfExtent = 10
	DefaultGridSpacing    = 1.0

	ambientFloor = 0.3
)

var (
	lightDir   = mgl64.Vec3{0.5, -0.7, 1.0}.Normalize()
	forwardDir = mgl64.Vec3{0, 0, 1}
)

// Selection is the element-level selection the interaction layer keeps
// for the active mesh.
type Selection struct {
	Mesh     *engine.Node
	Vertices map[int]bool
	Edges    map[int]bool
	Faces    map[int]bool
}

// NewSelection returns an empty element selection.
func NewSelection() *Selection {
	return &Selection{
		Vertices: map[int]bool{},
		Edges:    map[int]bool{},
		Faces:    map[int]bool{},
	}
}

// Clear drops every picked element but keeps the active mesh.
func (s *Selection) Clear() {
	clear(s.Vertices)
	clear(s.Edges)
	clear(s.Faces)
}

func (s *Selection) on(n *engine.Node) bool {
	return s != nil && s.Mesh == n
}

// DrawFace is one polygon queued for the painter's pass.
type DrawFace struct {
	Index        int
	Points       []mgl64.Vec2
	Depth        float64
	Front        bool
	Fill         color.RGBA
	Outline      color.RGBA
	OutlineWidth float64
}

// SortFaces orders faces farthest first. Equal depths keep their input
// order.
func SortFaces(faces []DrawFace) {
	sort.SliceStable(faces, func(i, j int) bool {
		return faces[i].Depth > faces[j].Depth
	})
}

// ProjectedMesh holds a node's vertices in view space and on screen.
type ProjectedMesh struct {
	View   []mgl64.Vec3
	Screen []mgl64.Vec2
}

// Renderer draws a scene into a Canvas using a ViewState. It also keeps the
// screen-space gizmo and compass layout from the most recent pass for hit
// testing.
type Renderer struct {
	View           *ViewState
	GridHalfExtent int
	GridSpacing    float64

	face    text.Face
	gizmo   gizmoLayout
	compass []CompassRegion
	err     error
}

func New(view *ViewState) *Renderer {
	r := &Renderer{
		View:           view,
		GridHalfExtent: DefaultGridHalfExtent,
		GridSpacing:    DefaultGridSpacing,
	}
	r.layoutCompass()
	return r
}

// SetFont sets the face used for compass labels. A nil face skips labels.
func (r *Renderer) SetFont(face text.Face) {
	r.face = face
}

// Render draws one frame. Scene content is drawn only when the scene has
// an active camera; the grid is drawn regardless. The first canvas error
// is returned after the frame completes.
func (r *Renderer) Render(c Canvas, scene *engine.Scene, sel *Selection) error {
	r.err = nil
	if c.Width() != r.View.Width || c.Height() != r.View.Height {
		r.View.Resize(c.Width(), c.Height())
	}
	c.ClearWithColor(gg.FromColor(colorBackground))

	if r.View.ShowGrid {
		r.drawGrid(c)
	}

	if scene != nil && scene.ActiveCamera != nil {
		scene.Root.Walk(func(n *engine.Node) bool {
			if !n.Visible {
				return false
			}
			if n.HasMesh() {
				r.drawMesh(c, n, sel)
			}
			return true
		})
	}

	r.LayoutGizmo(scene)
	if r.gizmo.visible {
		r.drawGizmo(c)
	}

	r.layoutCompass()
	if r.View.ShowCompass {
		r.drawCompass(c)
	}
	return r.err
}

func (r *Renderer) fill(c Canvas) {
	if err := c.Fill(); err != nil && r.err == nil {
		r.err = err
	}
}

func (r *Renderer) stroke(c Canvas) {
	if err := c.Stroke(); err != nil && r.err == nil {
		r.err = err
	}
}

func (r *Renderer) line(c Canvas, a, b mgl64.Vec2, col color.Color, width float64) {
	c.SetColor(col)
	c.SetLineWidth(width)
	c.MoveTo(a.X(), a.Y())
	c.LineTo(b.X(), b.Y())
	r.stroke(c)
}

func (r *Renderer) disc(c Canvas, p mgl64.Vec2, radius float64, col color.Color) {
	c.SetColor(col)
	c.DrawCircle(p.X(), p.Y(), radius)
	r.fill(c)
}

func (r *Renderer) polygon(c Canvas, pts []mgl64.Vec2) {
	c.MoveTo(pts[0].X(), pts[0].Y())
	for _, p := range pts[1:] {
		c.LineTo(p.X(), p.Y())
	}
	c.ClosePath()
}

func (r *Renderer) drawGrid(c Canvas) {
	v := r.View
	n := r.GridHalfExtent
	ext := float64(n) * r.GridSpacing
	for i := -n; i <= n; i++ {
		k := float64(i) * r.GridSpacing
		// Parallel to X at z=k: the X axis when k is zero.
		r.gridLine(c, mgl64.Vec3{-ext, 0, k}, mgl64.Vec3{ext, 0, k})
		// Parallel to Z at x=k: the Z axis when k is zero.
		r.gridLine(c, mgl64.Vec3{k, 0, -ext}, mgl64.Vec3{k, 0, ext})
	}

	origin := v.ToView(mgl64.Vec3{})
	if v.Depth(origin) > NearEpsilon {
		r.disc(c, v.Project(origin), 4, colorOrigin)
	}
}

func (r *Renderer) gridLine(c Canvas, start, end mgl64.Vec3) {
	v := r.View
	a, b, ok := v.ClipSegment(v.ToView(start), v.ToView(end))
	if !ok {
		return
	}
	col, width := colorGrid, 1.0
	switch {
	case math.Abs(start.X()) < 0.01:
		col, width = colorGridZAxis, 2
	case math.Abs(start.Z()) < 0.01:
		col, width = colorGridXAxis, 2
	}
	r.line(c, v.Project(a), v.Project(b), col, width)
}

// ProjectNode applies the node's own scale and translation (rotation is not
// applied to mesh geometry), then the view rotation, then projects.
func (r *Renderer) ProjectNode(n *engine.Node) ProjectedMesh {
	if !n.HasMesh() {
		return ProjectedMesh{}
	}
	t := n.Transform
	out := ProjectedMesh{
		View:   make([]mgl64.Vec3, len(n.Mesh.Vertices)),
		Screen: make([]mgl64.Vec2, len(n.Mesh.Vertices)),
	}
	for i, p := range n.Mesh.Vertices {
		p = mgl64.Vec3{p.X() * t.Scale.X(), p.Y() * t.Scale.Y(), p.Z() * t.Scale.Z()}
		p = p.Add(t.Position)
		vp := r.View.ToView(p)
		out.View[i] = vp
		out.Screen[i] = r.View.Project(vp)
	}
	return out
}

// BuildFaces computes the lit, culled face list for n in input order.
func (r *Renderer) BuildFaces(n *engine.Node, pm ProjectedMesh, sel *Selection) []DrawFace {
	m := n.Mesh
	fill, outline, width := colorFace, colorOutline, 1.0
	if n.Selected {
		fill, outline, width = colorFaceSelected, colorOutlineSelected, 2.0
	}
	faces := make([]DrawFace, 0, len(m.Faces))
	for fi, f := range m.Faces {
		if !m.ValidFace(f) {
			logging.Logger().Debug("skipping invalid face", "node", n.Name, "face", fi)
			continue
		}
		v0, v1, v2 := pm.View[f[0]], pm.View[f[1]], pm.View[f[2]]
		normal := v1.Sub(v0).Cross(v2.Sub(v0))
		if l := normal.Len(); l > 0 {
			normal = normal.Mul(1 / l)
		}
		var center mgl64.Vec3
		pts := make([]mgl64.Vec2, len(f))
		for k, i := range f {
			center = center.Add(pm.View[i])
			pts[k] = pm.Screen[i]
		}
		center = center.Mul(1 / float64(len(f)))

		front := normal.Dot(forwardDir) < 0
		if r.View.BackfaceCulling && !front {
			continue
		}
		intensity := math.Max(ambientFloor, math.Min(1, math.Abs(normal.Dot(lightDir))))
		base := fill
		if sel.on(n) && sel.Faces[fi] {
			base = colorFacePicked
		}
		faces = append(faces, DrawFace{
			Index:        fi,
			Points:       pts,
			Depth:        center.Z(),
			Front:        front,
			Fill:         shade(base, intensity),
			Outline:      outline,
			OutlineWidth: width,
		})
	}
	return faces
}

func (r *Renderer) drawMesh(c Canvas, n *engine.Node, sel *Selection) {
	m := n.Mesh
	if len(m.Vertices) == 0 {
		return
	}
	pm := r.ProjectNode(n)

	if m.HasFaces() {
		faces := r.BuildFaces(n, pm, sel)
		SortFaces(faces)
		for _, f := range faces {
			if !r.View.Wireframe {
				c.SetColor(f.Fill)
				r.polygon(c, f.Points)
				r.fill(c)
			}
			c.SetColor(f.Outline)
			c.SetLineWidth(f.OutlineWidth)
			r.polygon(c, f.Points)
			r.stroke(c)
		}
	} else {
		col := colorEdge
		if n.Selected {
			col = colorEdgeSelected
		}
		for _, e := range m.Edges {
			if !m.ValidEdge(e) {
				continue
			}
			r.line(c, pm.Screen[e[0]], pm.Screen[e[1]], col, 1)
		}
	}

	if sel.on(n) {
		for ei := range sel.Edges {
			if ei < 0 || ei >= len(m.Edges) || !m.ValidEdge(m.Edges[ei]) {
				continue
			}
			e := m.Edges[ei]
			r.line(c, pm.Screen[e[0]], pm.Screen[e[1]], colorEdgePicked, 3)
		}
	}

	if r.View.ShowVertices {
		for i, p := range pm.Screen {
			switch {
			case sel.on(n) && sel.Vertices[i]:
				r.disc(c, p, 4, colorVertexPicked)
			case n.Selected:
				r.disc(c, p, 3, colorVertexObject)
			default:
				r.disc(c, p, 2, colorVertex)
			}
		}
	}
}
