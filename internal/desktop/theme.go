package desktop

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Panels are lifted from the viewport background; the accent follows the
// renderer's selected outline.
var (
	colorBgDark    = rl.NewColor(20, 20, 30, 255)
	colorBgPanel   = lighten(colorBgDark, 8)
	colorBgElement = lighten(colorBgDark, 20)
	colorBgHover   = lighten(colorBgDark, 34)

	colorAccent    = rl.NewColor(255, 170, 0, 255)
	colorSelection = rl.Fade(colorAccent, 0.22)

	colorTextPrimary   = rl.NewColor(245, 245, 250, 255)
	colorTextSecondary = rl.NewColor(196, 196, 210, 255)
	colorTextMuted     = rl.NewColor(120, 120, 135, 255)

	colorBorder = lighten(colorBgDark, 48)
)

func lighten(c rl.Color, by uint8) rl.Color {
	up := func(v uint8) uint8 { return uint8(min(255, int(v)+int(by))) }
	return rl.NewColor(up(c.R), up(c.G), up(c.B), c.A)
}

func initStyle() {
	col := gui.NewColorPropertyValue
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, col(colorBgDark))
	gui.SetStyle(gui.DEFAULT, gui.LINE_COLOR, col(colorBorder))

	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, col(colorBgElement))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, col(colorBorder))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, col(colorTextSecondary))

	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, col(colorBgHover))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, col(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, col(colorTextPrimary))

	// Pressed toggles show dark text on the accent.
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, col(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_PRESSED, col(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, col(colorBgDark))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 14)
}
