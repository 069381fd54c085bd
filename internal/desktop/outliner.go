package desktop

import (
	"meshedit/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const outlinerItemHeight = 22

type outlinerRow struct {
	node  *engine.Node
	depth int
}

// outlinerRows flattens the scene tree below the root, depth first.
func outlinerRows(root *engine.Node) []outlinerRow {
	var rows []outlinerRow
	var walk func(n *engine.Node, depth int)
	walk = func(n *engine.Node, depth int) {
		for _, child := range n.Children() {
			rows = append(rows, outlinerRow{child, depth})
			walk(child, depth+1)
		}
	}
	walk(root, 0)
	return rows
}

// clampScroll keeps the scroll offset inside the list.
func clampScroll(scroll, rows, panelH int32) int32 {
	maxScroll := max(0, rows*outlinerItemHeight-panelH+30)
	return max(0, min(scroll, maxScroll))
}

// drawOutliner draws the scene hierarchy on the left. Clicking a row
// selects it; shift-click extends the selection.
func (a *App) drawOutliner() {
	panelX := int32(0)
	panelY := int32(toolbarHeight)
	panelW := int32(outlinerWidth)
	panelH := int32(rl.GetScreenHeight()) - panelY - statusHeight

	rl.DrawRectangle(panelX, panelY, panelW, panelH, colorBgPanel)
	rl.DrawRectangle(panelX+panelW-2, panelY, 2, panelH, colorBorder)
	rl.DrawText("Outliner", panelX+12, panelY+8, 16, colorTextSecondary)

	scene := a.Session.World.Scene
	rows := outlinerRows(scene.Root)

	mouse := rl.GetMousePosition()
	inPanel := mouse.X >= float32(panelX) && mouse.X < float32(panelX+panelW) &&
		mouse.Y >= float32(panelY) && mouse.Y < float32(panelY+panelH)
	if inPanel {
		a.outlinerScroll -= int32(rl.GetMouseWheelMove() * 20)
	}
	a.outlinerScroll = clampScroll(a.outlinerScroll, int32(len(rows)), panelH)

	top := panelY + 30
	rl.BeginScissorMode(panelX, top, panelW, panelH-30)
	defer rl.EndScissorMode()

	shift := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
	for i, row := range rows {
		itemY := top + int32(i)*outlinerItemHeight - a.outlinerScroll
		if itemY+outlinerItemHeight < top || itemY > panelY+panelH {
			continue
		}
		n := row.node
		hovered := inPanel && mouse.Y >= float32(itemY) && mouse.Y < float32(itemY+outlinerItemHeight)

		switch {
		case n.Selected:
			rl.DrawRectangle(panelX, itemY, panelW, outlinerItemHeight, colorSelection)
			rl.DrawRectangle(panelX, itemY, 3, outlinerItemHeight, colorAccent)
		case hovered:
			rl.DrawRectangle(panelX, itemY, panelW, outlinerItemHeight, colorBgHover)
		}

		if hovered && rl.IsMouseButtonPressed(rl.MouseLeftButton) {
			scene.SelectObject(n, shift)
		}

		col := colorTextSecondary
		if !n.Visible {
			col = colorTextMuted
		}
		label := n.Name
		if n.Kind == engine.KindCamera {
			label += " (camera)"
		}
		rl.DrawText(label, panelX+12+int32(row.depth)*14, itemY+4, 14, col)
	}
}
