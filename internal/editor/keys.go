package editor

import (
	"fmt"

	"meshedit/internal/render"
)

var standardViewKeys = map[Key]string{
	KeyF1:   render.ViewFront,
	KeyF2:   render.ViewTop,
	KeyF3:   render.ViewLeft,
	KeyF4:   render.ViewRight,
	KeyHome: render.ViewHome,
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (c *Controller) toggle(name string, flag *bool) {
	*flag = !*flag
	c.status(fmt.Sprintf("%s: %s", name, onOff(*flag)))
}

func (c *Controller) keyDown(ev Event) {
	v := c.view
	if ev.Mods.Has(ModCtrl) {
		switch ev.Key {
		case KeyZ:
			c.Undo()
		case KeyY:
			c.Redo()
		case KeyG:
			c.toggle("Grid", &v.ShowGrid)
		case KeyO:
			c.toggle("Compass", &v.ShowCompass)
		case KeyD:
			c.Duplicate()
		case KeyS:
			c.Save()
		case KeyF1:
			v.SetStandardView(render.ViewBack)
			c.status("View: " + render.ViewBack)
		}
		return
	}

	switch ev.Key {
	case Key1:
		c.SetMode(ModeObject)
	case Key2:
		c.SetMode(ModeVertex)
	case Key3:
		c.SetMode(ModeEdge)
	case Key4:
		c.SetMode(ModeFace)
	case KeyDelete:
		c.Delete()
	case KeyW:
		c.toggle("Wireframe", &v.Wireframe)
	case KeyB:
		c.toggle("Backface culling", &v.BackfaceCulling)
	case KeyV:
		c.toggle("Vertices", &v.ShowVertices)
	case KeyG:
		c.SetGizmo(render.GizmoMove)
	case KeyS:
		c.SetGizmo(render.GizmoScale)
	case KeyEscape:
		c.SetGizmo(render.GizmoNone)
	case KeyR:
		v.Reset()
		c.status("View reset")
	case KeyF1, KeyF2, KeyF3, KeyF4, KeyHome:
		tag := standardViewKeys[ev.Key]
		v.SetStandardView(tag)
		c.status("View: " + tag)
	}
}
