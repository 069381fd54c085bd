package render

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

type op struct {
	kind   string // "fill", "stroke", "text"
	color  color.Color
	width  float64
	points []mgl64.Vec2
	circle bool
	label  string
}

// recorder is a Canvas that records every fill and stroke with the path
// that was active at the time.
type recorder struct {
	w, h   int
	col    color.Color
	width  float64
	path   []mgl64.Vec2
	circle bool
	ops    []op
	clears int
}

func newRecorder(w, h int) *recorder { return &recorder{w: w, h: h} }

func (r *recorder) Width() int             { return r.w }
func (r *recorder) Height() int            { return r.h }
func (r *recorder) ClearWithColor(gg.RGBA) { r.clears++ }
func (r *recorder) SetColor(c color.Color) { r.col = c }
func (r *recorder) SetLineWidth(w float64) { r.width = w }
func (r *recorder) MoveTo(x, y float64)    { r.path = append(r.path, mgl64.Vec2{x, y}) }
func (r *recorder) LineTo(x, y float64)    { r.path = append(r.path, mgl64.Vec2{x, y}) }
func (r *recorder) ClosePath()             {}
func (r *recorder) SetFont(text.Face)      {}
func (r *recorder) DrawRectangle(x, y, w, h float64) {
	r.path = append(r.path, mgl64.Vec2{x, y}, mgl64.Vec2{x + w, y + h})
}

func (r *recorder) DrawCircle(x, y, rad float64) {
	r.path = append(r.path, mgl64.Vec2{x, y})
	r.circle = true
}

func (r *recorder) flush(kind string) {
	r.ops = append(r.ops, op{kind: kind, color: r.col, width: r.width, points: r.path, circle: r.circle})
	r.path = nil
	r.circle = false
}

func (r *recorder) Fill() error   { r.flush("fill"); return nil }
func (r *recorder) Stroke() error { r.flush("stroke"); return nil }

func (r *recorder) DrawStringAnchored(s string, x, y, ax, ay float64) {
	r.ops = append(r.ops, op{kind: "text", label: s, points: []mgl64.Vec2{{x, y}}})
}

// polygonFills returns fills that were not circles, in draw order.
func (r *recorder) polygonFills() []op {
	var out []op
	for _, o := range r.ops {
		if o.kind == "fill" && !o.circle {
			out = append(out, o)
		}
	}
	return out
}

func (r *recorder) count(kind string) int {
	n := 0
	for _, o := range r.ops {
		if o.kind == kind {
			n++
		}
	}
	return n
}
