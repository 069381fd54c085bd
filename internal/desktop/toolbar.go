package desktop

import (
	"fmt"

	"meshedit/internal/editor"
	"meshedit/internal/engine"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

var modeButtons = []struct {
	label string
	mode  editor.SelectionMode
}{
	{"Object", editor.ModeObject},
	{"Vertex", editor.ModeVertex},
	{"Edge", editor.ModeEdge},
	{"Face", editor.ModeFace},
}

// drawToolbar lays widgets out left to right along the top of the window.
func (a *App) drawToolbar() {
	w := int32(rl.GetScreenWidth())
	rl.DrawRectangle(0, 0, w, toolbarHeight, colorBgPanel)
	rl.DrawRectangle(0, toolbarHeight-1, w, 1, colorBorder)

	c := a.Session.Controller
	v := a.Session.View
	x := float32(8)
	const y, h = 6, 24

	next := func(width float32) rl.Rectangle {
		r := rl.Rectangle{X: x, Y: y, Width: width, Height: h}
		x += width + 4
		return r
	}

	for _, mb := range modeButtons {
		if gui.Toggle(next(58), mb.label, c.Mode == mb.mode) && c.Mode != mb.mode {
			c.SetMode(mb.mode)
		}
	}
	x += 8

	if gui.Button(next(78), "Add Cube") {
		c.AddPrimitive(engine.PrimitiveCube)
	}
	if gui.Button(next(84), "Add Sphere") {
		c.AddPrimitive(engine.PrimitiveSphere)
	}
	if gui.Button(next(50), "Undo") {
		c.Undo()
	}
	if gui.Button(next(50), "Redo") {
		c.Redo()
	}
	if gui.Button(next(50), "Save") {
		c.Save()
	}
	x += 8

	v.Wireframe = checkbox(next, "Wire", v.Wireframe)
	v.BackfaceCulling = checkbox(next, "Cull", v.BackfaceCulling)
	v.ShowGrid = checkbox(next, "Grid", v.ShowGrid)
	v.ShowCompass = checkbox(next, "Compass", v.ShowCompass)

	undo, redo := a.Session.World.History.Depth()
	info := fmt.Sprintf("history %d/%d", undo, redo)
	rl.DrawText(info, w-rl.MeasureText(info, 14)-10, 11, 14, colorTextMuted)
}

func checkbox(next func(float32) rl.Rectangle, label string, on bool) bool {
	box := next(16)
	box.Y += 4
	box.Height = 16
	checked := gui.CheckBox(box, "", on)
	r := next(float32(rl.MeasureText(label, 14)))
	rl.DrawText(label, int32(r.X)-2, int32(r.Y)+5, 14, colorTextSecondary)
	return checked
}
