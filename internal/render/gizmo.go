package render

import (
	"image/color"
	"math"

	"meshedit/internal/engine"

	"github.com/go-gl/mathgl/mgl64"
)

// Axis identifies a gizmo handle.
type Axis int

const (
	AxisNone Axis = iota
	AxisX
	AxisY
	AxisZ
	AxisCenter
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	case AxisCenter:
		return "center"
	}
	return ""
}

// Index returns 0, 1 or 2 for the X, Y and Z axes and -1 otherwise.
func (a Axis) Index() int {
	if a >= AxisX && a <= AxisZ {
		return int(a - AxisX)
	}
	return -1
}

const (
	gizmoLength       = 80.0
	gizmoHitThreshold = 8.0
	gizmoCenterRadius = 10.0
	gizmoHandleSize   = 10.0
	gizmoHeadLength   = 12.0
	gizmoHeadWidth    = 6.0
	axisEpsilon       = 1e-6
)

var (
	gizmoAxes   = [3]mgl64.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	gizmoColors = [3]color.RGBA{colorAxisX, colorAxisY, colorAxisZ}
)

type gizmoLayout struct {
	visible bool
	origin  mgl64.Vec2
	dirs    [3]mgl64.Vec2
	ends    [3]mgl64.Vec2
}

// LayoutGizmo recomputes the gizmo's screen geometry for the scene's
// primary selection.
func (r *Renderer) LayoutGizmo(scene *engine.Scene) {
	r.gizmo = gizmoLayout{}
	if scene == nil || !r.View.ShowGizmo() {
		return
	}
	target := scene.Primary()
	if target == nil {
		return
	}
	v := r.View
	r.gizmo.visible = true
	r.gizmo.origin = v.Project(v.ToView(target.WorldTransform().Position))
	for i, axis := range gizmoAxes {
		d := v.ToView(axis)
		d2 := mgl64.Vec2{d.X(), d.Y()}
		l := math.Max(d2.Len(), axisEpsilon)
		dir := d2.Mul(1 / l)
		r.gizmo.dirs[i] = dir
		r.gizmo.ends[i] = r.gizmo.origin.Add(dir.Mul(gizmoLength))
	}
}

// GizmoOrigin returns the projected pivot of the gizmo and whether it is
// currently shown.
func (r *Renderer) GizmoOrigin() (mgl64.Vec2, bool) {
	return r.gizmo.origin, r.gizmo.visible
}

// AxisDirection returns the normalised screen direction of an axis handle.
func (r *Renderer) AxisDirection(a Axis) mgl64.Vec2 {
	if i := a.Index(); i >= 0 {
		return r.gizmo.dirs[i]
	}
	return mgl64.Vec2{}
}

// AxisAt returns the gizmo handle under p. In scale mode the centre handle
// is tested before the axes.
func (r *Renderer) AxisAt(p mgl64.Vec2) Axis {
	g := r.gizmo
	if !g.visible {
		return AxisNone
	}
	if r.View.Gizmo == GizmoScale && p.Sub(g.origin).Len() <= gizmoCenterRadius {
		return AxisCenter
	}
	best, bestDist := AxisNone, gizmoHitThreshold
	for i := range gizmoAxes {
		d := PointSegmentDistance(p, g.origin, g.ends[i])
		if d <= bestDist {
			best, bestDist = AxisX+Axis(i), d
		}
	}
	return best
}

// PointSegmentDistance is the distance from p to the segment ab.
func PointSegmentDistance(p, a, b mgl64.Vec2) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 < axisEpsilon {
		return p.Sub(a).Len()
	}
	t := p.Sub(a).Dot(ab) / l2
	t = math.Max(0, math.Min(1, t))
	return p.Sub(a.Add(ab.Mul(t))).Len()
}

func (r *Renderer) axisColor(i int) color.RGBA {
	a := AxisX + Axis(i)
	if a == r.View.HoverAxis || a == r.View.ActiveAxis {
		return colorHighlight
	}
	return gizmoColors[i]
}

func (r *Renderer) drawGizmo(c Canvas) {
	g := r.gizmo
	for i := range gizmoAxes {
		col := r.axisColor(i)
		r.line(c, g.origin, g.ends[i], col, 3)
		dir := g.dirs[i]
		end := g.ends[i]
		switch r.View.Gizmo {
		case GizmoMove:
			perp := mgl64.Vec2{-dir.Y(), dir.X()}
			tip := end.Add(dir.Mul(gizmoHeadLength))
			left := end.Add(perp.Mul(gizmoHeadWidth))
			right := end.Sub(perp.Mul(gizmoHeadWidth))
			c.SetColor(col)
			r.polygon(c, []mgl64.Vec2{tip, left, right})
			r.fill(c)
		case GizmoScale:
			h := gizmoHandleSize / 2
			c.SetColor(col)
			c.DrawRectangle(end.X()-h, end.Y()-h, gizmoHandleSize, gizmoHandleSize)
			r.fill(c)
		}
	}
	if r.View.Gizmo == GizmoScale {
		col := colorCenter
		if r.View.HoverAxis == AxisCenter || r.View.ActiveAxis == AxisCenter {
			col = colorHighlight
		}
		r.disc(c, g.origin, gizmoCenterRadius, col)
	}
}
