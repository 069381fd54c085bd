package render

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	compassMargin  = 15.0
	compassRadius  = 55.0
	compassSpacing = 32.0
	compassButton  = 13.0
)

// CompassRegion is one clickable disc of the orientation compass.
type CompassRegion struct {
	Tag    string
	Label  string
	Center mgl64.Vec2
	Radius float64
	Color  color.RGBA
}

// Contains reports whether p lies inside the region.
func (cr CompassRegion) Contains(p mgl64.Vec2) bool {
	return p.Sub(cr.Center).Len() <= cr.Radius
}

// CompassCenter is the widget's centre in the top-right corner.
func (r *Renderer) CompassCenter() mgl64.Vec2 {
	return mgl64.Vec2{
		float64(r.View.Width) - compassMargin - compassRadius,
		compassMargin + compassRadius,
	}
}

func (r *Renderer) layoutCompass() {
	c := r.CompassCenter()
	s := compassSpacing
	r.compass = []CompassRegion{
		{Tag: ViewTop, Label: "T", Center: c.Add(mgl64.Vec2{0, -s}), Color: colorCompassTop},
		{Tag: ViewFront, Label: "F", Center: c.Add(mgl64.Vec2{0, s}), Color: colorCompassFront},
		{Tag: ViewLeft, Label: "L", Center: c.Add(mgl64.Vec2{-s, 0}), Color: colorCompassLeft},
		{Tag: ViewRight, Label: "R", Center: c.Add(mgl64.Vec2{s, 0}), Color: colorCompassRight},
		{Tag: ViewHome, Label: "H", Center: c, Color: colorCompassHome},
	}
	for i := range r.compass {
		r.compass[i].Radius = compassButton
	}
}

// CompassRegions returns the regions recorded by the last layout.
func (r *Renderer) CompassRegions() []CompassRegion {
	return append([]CompassRegion(nil), r.compass...)
}

// CompassHit returns the tag of the first compass region under p, or ""
// when the compass is hidden or missed.
func (r *Renderer) CompassHit(p mgl64.Vec2) string {
	if !r.View.ShowCompass {
		return ""
	}
	for _, cr := range r.compass {
		if cr.Contains(p) {
			return cr.Tag
		}
	}
	return ""
}

func (r *Renderer) drawCompass(c Canvas) {
	center := r.CompassCenter()
	r.disc(c, center, compassRadius, colorCompassBg)
	if r.face != nil {
		c.SetFont(r.face)
	}
	for _, cr := range r.compass {
		r.disc(c, cr.Center, cr.Radius, cr.Color)
		if r.face != nil {
			c.SetColor(colorLabel)
			c.DrawStringAnchored(cr.Label, cr.Center.X(), cr.Center.Y(), 0.5, 0.5)
		}
	}
}
