package engine

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform is a position/rotation/scale triple. Rotation holds Euler
// angles in radians.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Scale    mgl64.Vec3
}

// NewTransform returns the identity transform.
func NewTransform() Transform {
	return Transform{Scale: mgl64.Vec3{1, 1, 1}}
}

// Matrix composes T · Rz · Ry · Rx · S.
//
// The Y rotation keeps the legacy sign layout (m[0][2] = -sin, m[2][0] = +sin),
// which is the standard Y rotation by the negated angle. Downstream consumers
// of exported scenes depend on it.
func (t Transform) Matrix() mgl64.Mat4 {
	tr := mgl64.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rz := mgl64.HomogRotate3DZ(t.Rotation.Z())
	ry := mgl64.HomogRotate3DY(-t.Rotation.Y())
	rx := mgl64.HomogRotate3DX(t.Rotation.X())
	s := mgl64.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	return tr.Mul4(rz).Mul4(ry).Mul4(rx).Mul4(s)
}

// Invertible reports whether every scale component is non-zero and finite.
func (t Transform) Invertible() bool {
	for i := 0; i < 3; i++ {
		s := t.Scale[i]
		if s == 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			return false
		}
	}
	return true
}

// InverseMatrix returns the inverse of Matrix. ok is false for degenerate scale.
func (t Transform) InverseMatrix() (mgl64.Mat4, bool) {
	if !t.Invertible() {
		return mgl64.Mat4{}, false
	}
	return t.Matrix().Inv(), true
}

// Apply maps a local point through Matrix.
func (t Transform) Apply(p mgl64.Vec3) mgl64.Vec3 {
	return t.Matrix().Mul4x1(p.Vec4(1)).Vec3()
}

// Combine composes a parent and child transform: positions and rotations
// add, scales multiply component-wise. This is not a matrix concatenation;
// world-transform queries rely on exactly this rule.
func Combine(parent, child Transform) Transform {
	return Transform{
		Position: parent.Position.Add(child.Position),
		Rotation: parent.Rotation.Add(child.Rotation),
		Scale: mgl64.Vec3{
			parent.Scale.X() * child.Scale.X(),
			parent.Scale.Y() * child.Scale.Y(),
			parent.Scale.Z() * child.Scale.Z(),
		},
	}
}
