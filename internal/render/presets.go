package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Standard view tags, shared with the orientation compass.
const (
	ViewTop   = "top"
	ViewFront = "front"
	ViewLeft  = "left"
	ViewRight = "right"
	ViewBack  = "back"
	ViewHome  = "home"
)

type viewPreset struct {
	rotation mgl64.Mat3
	orbitH   float64
	orbitV   float64
}

const (
	invSqrt3 = 0.5773502691896258 // 1/√3
	invSqrt6 = 0.4082482904638631 // 1/√6
	sqrt2_3  = 0.816496580927726  // √(2/3)
	invSqrt2 = 0.7071067811865476 // 1/√2
)

// Each rotation equals Ry(orbitH)·Rx(orbitV) with the rounding noise
// removed, so orbiting away from a preset continues smoothly.
var viewPresets = map[string]viewPreset{
	ViewFront: {
		rotation: mgl64.Mat3FromRows(
			mgl64.Vec3{1, 0, 0},
			mgl64.Vec3{0, -1, 0},
			mgl64.Vec3{0, 0, -1},
		),
		orbitH: 0, orbitV: math.Pi,
	},
	ViewTop: {
		rotation: mgl64.Mat3FromRows(
			mgl64.Vec3{1, 0, 0},
			mgl64.Vec3{0, 0, 1},
			mgl64.Vec3{0, -1, 0},
		),
		orbitH: 0, orbitV: -math.Pi / 2,
	},
	ViewLeft: {
		rotation: mgl64.Mat3FromRows(
			mgl64.Vec3{0, 0, 1},
			mgl64.Vec3{0, -1, 0},
			mgl64.Vec3{1, 0, 0},
		),
		orbitH: -math.Pi / 2, orbitV: math.Pi,
	},
	ViewRight: {
		rotation: mgl64.Mat3FromRows(
			mgl64.Vec3{0, 0, -1},
			mgl64.Vec3{0, -1, 0},
			mgl64.Vec3{-1, 0, 0},
		),
		orbitH: math.Pi / 2, orbitV: math.Pi,
	},
	ViewBack: {
		rotation: mgl64.Mat3FromRows(
			mgl64.Vec3{-1, 0, 0},
			mgl64.Vec3{0, -1, 0},
			mgl64.Vec3{0, 0, 1},
		),
		orbitH: math.Pi, orbitV: math.Pi,
	},
	// Isometric: +X, +Y and +Z faces all toward the viewer.
	ViewHome: {
		rotation: mgl64.Mat3FromRows(
			mgl64.Vec3{sqrt2_3, -invSqrt6, -invSqrt6},
			mgl64.Vec3{0, -invSqrt2, invSqrt2},
			mgl64.Vec3{-invSqrt3, -invSqrt3, -invSqrt3},
		),
		orbitH: 0.6154797086703875, orbitV: -3 * math.Pi / 4,
	},
}

// HomeRotation returns the isometric home matrix.
func HomeRotation() mgl64.Mat3 {
	return viewPresets[ViewHome].rotation
}

// SetStandardView replaces the view rotation and orbit angles with a
// preset. Unknown tags leave the view untouched and return false.
func (v *ViewState) SetStandardView(tag string) bool {
	p, ok := viewPresets[tag]
	if !ok {
		return false
	}
	v.Rotation = p.rotation
	v.OrbitH = p.orbitH
	v.OrbitV = p.orbitV
	return true
}
