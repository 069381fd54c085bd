package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultScale        = 30.0
	DefaultFocalLength  = 20.0
	DefaultCameraOffset = 5.0
	NearEpsilon         = 0.1

	MinScale = 10.0
	MaxScale = 500.0
)

// GizmoMode selects the transform manipulator drawn over the selection.
type GizmoMode int

const (
	GizmoNone GizmoMode = iota
	GizmoMove
	GizmoScale
)

func (g GizmoMode) String() string {
	switch g {
	case GizmoMove:
		return "move"
	case GizmoScale:
		return "scale"
	}
	return "none"
}

// ViewState is the per-viewport projection and display state. It is
// mutated by the interaction layer and read by the render pass.
type ViewState struct {
	Width, Height int

	Scale        float64
	Translate    mgl64.Vec2
	Rotation     mgl64.Mat3
	OrbitH       float64
	OrbitV       float64
	FocalLength  float64
	CameraOffset float64

	Wireframe       bool
	BackfaceCulling bool
	ShowGrid        bool
	ShowCompass     bool
	ShowVertices    bool

	Gizmo      GizmoMode
	HoverAxis  Axis
	ActiveAxis Axis
}

// NewViewState returns a view centred in a width x height viewport,
// looking from the home preset.
func NewViewState(width, height int) *ViewState {
	v := &ViewState{
		Width:        width,
		Height:       height,
		FocalLength:  DefaultFocalLength,
		CameraOffset: DefaultCameraOffset,
		ShowGrid:     true,
		ShowCompass:  true,
		ShowVertices: true,
	}
	v.Reset()
	return v
}

// ShowGizmo reports whether a manipulator mode is active.
func (v *ViewState) ShowGizmo() bool { return v.Gizmo != GizmoNone }

// Reset restores the home orientation, default zoom and centred pan.
func (v *ViewState) Reset() {
	v.Scale = DefaultScale
	v.Translate = mgl64.Vec2{float64(v.Width) / 2, float64(v.Height) / 2}
	v.SetStandardView(ViewHome)
}

// Resize keeps the pan offset relative to the viewport centre.
func (v *ViewState) Resize(width, height int) {
	v.Translate = v.Translate.Add(mgl64.Vec2{
		float64(width-v.Width) / 2,
		float64(height-v.Height) / 2,
	})
	v.Width, v.Height = width, height
}

// Orbit accumulates orbit angles and rebuilds the view rotation as
// Ry(h)·Rx(v). The vertical angle is not clamped; the view may flip over.
func (v *ViewState) Orbit(dh, dv float64) {
	v.OrbitH += dh
	v.OrbitV += dv
	v.Rotation = mgl64.Rotate3DY(v.OrbitH).Mul3(mgl64.Rotate3DX(v.OrbitV))
}

// Zoom scales the projection by 1+0.1*steps, clamped to [MinScale, MaxScale].
func (v *ViewState) Zoom(steps float64) {
	v.Scale *= 1 + 0.1*steps
	v.Scale = math.Max(MinScale, math.Min(MaxScale, v.Scale))
}

// Pan shifts the 2D screen offset.
func (v *ViewState) Pan(dx, dy float64) {
	v.Translate = v.Translate.Add(mgl64.Vec2{dx, dy})
}

// ToView rotates a world point into view space.
func (v *ViewState) ToView(p mgl64.Vec3) mgl64.Vec3 {
	return v.Rotation.Mul3x1(p)
}

// Project maps a view-space point to screen space. The divisor is clamped
// to NearEpsilon so points at or behind the eye stay finite.
func (v *ViewState) Project(p mgl64.Vec3) mgl64.Vec2 {
	depth := p.Z() + v.CameraOffset
	if depth <= NearEpsilon {
		depth = NearEpsilon
	}
	f := v.Scale * (v.FocalLength / depth)
	return mgl64.Vec2{p.X()*f + v.Translate.X(), p.Y()*f + v.Translate.Y()}
}

// Depth returns the eye distance of a view-space point.
func (v *ViewState) Depth(p mgl64.Vec3) float64 {
	return p.Z() + v.CameraOffset
}

// ClipSegment trims a view-space segment to the near plane. ok is false
// when both ends lie at or behind it.
func (v *ViewState) ClipSegment(a, b mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3, bool) {
	da, db := v.Depth(a), v.Depth(b)
	if da <= NearEpsilon && db <= NearEpsilon {
		return a, b, false
	}
	if da <= NearEpsilon {
		t := (NearEpsilon - da) / (db - da)
		a = a.Add(b.Sub(a).Mul(t))
	}
	if db <= NearEpsilon {
		t := (NearEpsilon - db) / (da - db)
		b = b.Add(a.Sub(b).Mul(t))
	}
	return a, b, true
}
