package render

import (
	"image/color"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// Canvas is the immediate-mode 2D surface the software pipeline draws on.
// *gg.Context satisfies it.
type Canvas interface {
	Width() int
	Height() int
	ClearWithColor(c gg.RGBA)
	SetColor(c color.Color)
	SetLineWidth(w float64)
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	DrawCircle(x, y, r float64)
	DrawRectangle(x, y, w, h float64)
	Fill() error
	Stroke() error
	SetFont(face text.Face)
	DrawStringAnchored(s string, x, y, ax, ay float64)
}

var _ Canvas = (*gg.Context)(nil)

var (
	colorBackground = color.RGBA{20, 20, 30, 255}

	colorFace            = color.RGBA{180, 180, 220, 255}
	colorFaceSelected    = color.RGBA{220, 180, 120, 255}
	colorFacePicked      = color.RGBA{255, 140, 60, 255}
	colorOutline         = color.RGBA{30, 30, 30, 255}
	colorOutlineSelected = color.RGBA{255, 200, 0, 255}
	colorEdge            = color.RGBA{255, 255, 255, 255}
	colorEdgeSelected    = color.RGBA{255, 170, 0, 255}
	colorEdgePicked      = color.RGBA{255, 230, 60, 255}
	colorVertex          = color.RGBA{255, 0, 0, 255}
	colorVertexObject    = color.RGBA{255, 140, 0, 255}
	colorVertexPicked    = color.RGBA{255, 255, 0, 255}

	colorGrid      = color.RGBA{80, 80, 80, 255}
	colorGridXAxis = color.RGBA{180, 50, 50, 255}
	colorGridZAxis = color.RGBA{50, 50, 180, 255}
	colorOrigin    = color.RGBA{255, 255, 0, 255}

	colorAxisX     = color.RGBA{230, 60, 60, 255}
	colorAxisY     = color.RGBA{60, 200, 60, 255}
	colorAxisZ     = color.RGBA{70, 110, 240, 255}
	colorHighlight = color.RGBA{255, 255, 0, 255}
	colorCenter    = color.RGBA{220, 220, 220, 255}

	colorCompassBg    = color.RGBA{40, 40, 55, 220}
	colorCompassTop   = color.RGBA{70, 170, 70, 255}
	colorCompassFront = color.RGBA{70, 100, 200, 255}
	colorCompassLeft  = color.RGBA{200, 70, 70, 255}
	colorCompassRight = color.RGBA{150, 50, 50, 255}
	colorCompassHome  = color.RGBA{120, 120, 130, 255}
	colorLabel        = color.RGBA{245, 245, 245, 255}
)

// shade scales the RGB channels of c by k in [0, 1].
func shade(c color.RGBA, k float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * k),
		G: uint8(float64(c.G) * k),
		B: uint8(float64(c.B) * k),
		A: c.A,
	}
}
