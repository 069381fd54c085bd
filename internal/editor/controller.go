// Package editor turns platform-neutral input events into selection
// changes, view manipulation and history commands.
package editor

import (
	"fmt"
	"math"

	"meshedit/internal/engine"
	"meshedit/internal/history"
	"meshedit/internal/logging"
	"meshedit/internal/render"
	"meshedit/internal/world"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultSelectionRadius  = 10.0
	DefaultGizmoSensitivity = 0.01

	orbitSpeed    = 0.01
	rotateSpeed   = 0.01
	vertexSpeed   = 0.1
	minScaleValue = 0.01
)

// State is the controller's drag state.
type State int

const (
	StateIdle State = iota
	StateDraggingView
	StateDraggingVertices
	StateDraggingGizmo
)

func (s State) String() string {
	switch s {
	case StateDraggingView:
		return "dragging-view"
	case StateDraggingVertices:
		return "dragging-vertices"
	case StateDraggingGizmo:
		return "dragging-gizmo"
	}
	return "idle"
}

// SelectionMode picks which elements a left click selects.
type SelectionMode int

const (
	ModeObject SelectionMode = iota
	ModeVertex
	ModeEdge
	ModeFace
)

func (m SelectionMode) String() string {
	switch m {
	case ModeVertex:
		return "Vertex"
	case ModeEdge:
		return "Edge"
	case ModeFace:
		return "Face"
	}
	return "Object"
}

// Controller is the interaction state machine. It mutates the view state
// directly and routes every scene edit through the world's history.
type Controller struct {
	world    *world.World
	renderer *render.Renderer
	view     *render.ViewState

	Mode      SelectionMode
	Selection *render.Selection

	SelectionRadius  float64
	GizmoSensitivity float64
	ScenePath        string

	// OnStatus receives short user-facing messages.
	OnStatus engine.EventWithArg[string]

	state  State
	button Button
	press  mgl64.Vec2
	last   mgl64.Vec2

	// Gizmo drag
	target   *engine.Node
	baseline mgl64.Vec3
	axisDir  mgl64.Vec2

	// Vertex positions when a vertex or rotate drag began.
	dragMesh  *engine.Node
	dragStart map[int]mgl64.Vec3
}

func NewController(w *world.World, r *render.Renderer) *Controller {
	return &Controller{
		world:            w,
		renderer:         r,
		view:             r.View,
		Selection:        render.NewSelection(),
		SelectionRadius:  DefaultSelectionRadius,
		GizmoSensitivity: DefaultGizmoSensitivity,
		ScenePath:        world.ScenePath,
	}
}

func (c *Controller) State() State { return c.state }

// dragging reports whether a drag is mutating the scene outside the
// history. Undo, redo and delete wait for it to finish.
func (c *Controller) dragging() bool {
	if c.state == StateIdle {
		return false
	}
	logging.Logger().Debug("ignoring history edit during drag", "state", c.state)
	return true
}

func (c *Controller) status(msg string) {
	logging.Logger().Info(msg)
	c.OnStatus.Invoke(msg)
}

// Handle processes one event.
func (c *Controller) Handle(ev Event) {
	switch ev.Type {
	case MouseDown:
		c.mouseDown(ev)
	case MouseMove:
		c.mouseMove(ev)
	case MouseUp:
		c.mouseUp(ev)
	case Wheel:
		c.view.Zoom(ev.Wheel)
	case KeyDown:
		c.keyDown(ev)
	}
}

func (c *Controller) mouseDown(ev Event) {
	if c.state != StateIdle {
		return
	}
	c.press, c.last = ev.Pos, ev.Pos

	if tag := c.renderer.CompassHit(ev.Pos); tag != "" {
		c.view.SetStandardView(tag)
		c.status("View: " + tag)
		return
	}

	c.renderer.LayoutGizmo(c.world.Scene)
	if axis := c.renderer.AxisAt(ev.Pos); axis != render.AxisNone {
		c.beginGizmo(axis)
		return
	}

	if ev.Button == ButtonLeft && !ev.Mods.Has(ModAlt) && !ev.Mods.Has(ModCtrl) {
		c.selectAt(ev.Pos, ev.Mods.Has(ModShift))
	} else {
		logging.Logger().Debug("click", "button", ev.Button, "x", ev.Pos.X(), "y", ev.Pos.Y())
	}

	c.button = ev.Button
	if ev.Mods.Has(ModAlt) && c.Mode == ModeVertex && c.hasPickedVertices() {
		c.state = StateDraggingVertices
		c.snapshotVertices(true)
		return
	}
	c.state = StateDraggingView
	if ev.Button == ButtonLeft {
		c.snapshotVertices(false)
	}
}

func (c *Controller) mouseMove(ev Event) {
	d := ev.Pos.Sub(c.last)
	c.last = ev.Pos

	switch c.state {
	case StateIdle:
		c.view.HoverAxis = render.AxisNone
		if c.view.ShowGizmo() {
			c.renderer.LayoutGizmo(c.world.Scene)
			c.view.HoverAxis = c.renderer.AxisAt(ev.Pos)
		}
	case StateDraggingGizmo:
		c.dragGizmo(ev.Pos)
	case StateDraggingVertices:
		c.dragVertices(d.X(), d.Y())
	case StateDraggingView:
		c.dragView(d.X(), d.Y())
	}
}

func (c *Controller) mouseUp(Event) {
	switch c.state {
	case StateDraggingVertices, StateDraggingView:
		c.commitVertexDrag()
	case StateDraggingGizmo:
		c.view.ActiveAxis = render.AxisNone
		c.target = nil
	}
	c.state = StateIdle
}

// --- Gizmo ---

func (c *Controller) beginGizmo(axis render.Axis) {
	target := c.world.Scene.Primary()
	if target == nil {
		return
	}
	c.state = StateDraggingGizmo
	c.target = target
	c.view.ActiveAxis = axis
	c.axisDir = c.renderer.AxisDirection(axis)
	if c.view.Gizmo == render.GizmoScale {
		c.baseline = target.Transform.Scale
	} else {
		c.baseline = target.Transform.Position
	}
	logging.Logger().Debug("gizmo drag", "mode", c.view.Gizmo, "axis", axis, "target", target.Name)
}

// gizmoMovement projects the total pointer travel since the press onto the
// grabbed handle. The centre handle uses the screen diagonal.
func (c *Controller) gizmoMovement(pos mgl64.Vec2) float64 {
	total := pos.Sub(c.press)
	if c.view.ActiveAxis == render.AxisCenter {
		return (total.X() - total.Y()) / math.Sqrt2
	}
	return total.Dot(c.axisDir)
}

func (c *Controller) dragGizmo(pos mgl64.Vec2) {
	n := c.target
	if n == nil || n.Parent() == nil {
		return
	}
	delta := c.gizmoMovement(pos) * c.GizmoSensitivity
	next := c.baseline
	axis := c.view.ActiveAxis

	switch c.view.Gizmo {
	case render.GizmoMove:
		if i := axis.Index(); i >= 0 {
			next[i] += delta
		}
		if next != n.Transform.Position {
			c.world.Execute(history.NewMoveObject(n, n.Transform.Position, next))
		}
	case render.GizmoScale:
		for i := range 3 {
			if axis == render.AxisCenter || axis.Index() == i {
				next[i] = math.Max(minScaleValue, next[i]+delta)
			}
		}
		if next != n.Transform.Scale {
			c.world.Execute(history.NewScaleObject(n, n.Transform.Scale, next))
		}
	}
}

// --- Vertex and view drags ---

func (c *Controller) snapshotVertices(pickedOnly bool) {
	n := c.ActiveMesh()
	c.dragMesh, c.dragStart = n, nil
	if n == nil {
		return
	}
	c.dragStart = map[int]mgl64.Vec3{}
	for i, v := range n.Mesh.Vertices {
		if pickedOnly && !c.Selection.Vertices[i] {
			continue
		}
		c.dragStart[i] = v
	}
}

func (c *Controller) dragVertices(dx, dy float64) {
	if c.dragMesh == nil {
		return
	}
	m := c.dragMesh.Mesh
	s := c.view.Scale
	for i := range c.dragStart {
		if i >= len(m.Vertices) {
			continue
		}
		m.Vertices[i][0] += dx / s * vertexSpeed
		m.Vertices[i][1] -= dy / s * vertexSpeed
	}
}

func (c *Controller) dragView(dx, dy float64) {
	switch c.button {
	case ButtonLeft:
		if c.dragMesh == nil {
			return
		}
		rot := mgl64.Rotate3DY(-dx * rotateSpeed).Mul3(mgl64.Rotate3DX(dy * rotateSpeed))
		m := c.dragMesh.Mesh
		for i, v := range m.Vertices {
			m.Vertices[i] = rot.Mul3x1(v)
		}
	case ButtonMiddle:
		c.view.Pan(dx, dy)
	case ButtonRight:
		c.view.Orbit(dx*orbitSpeed, -dy*orbitSpeed)
	}
}

// commitVertexDrag records the net change of a vertex or rotate drag as a
// single MoveVertices command.
func (c *Controller) commitVertexDrag() {
	n, start := c.dragMesh, c.dragStart
	c.dragMesh, c.dragStart = nil, nil
	if n == nil || n.Mesh == nil {
		return
	}
	deltas := map[int]history.VertexDelta{}
	for i, old := range start {
		if i >= len(n.Mesh.Vertices) {
			continue
		}
		if cur := n.Mesh.Vertices[i]; cur != old {
			deltas[i] = history.VertexDelta{Old: old, New: cur}
		}
	}
	if len(deltas) == 0 {
		return
	}
	c.world.Execute(history.NewMoveVertices(n, deltas))
}

// --- Commands invoked from keys and toolbars ---

// SetMode switches the selection mode and drops picked elements.
func (c *Controller) SetMode(m SelectionMode) {
	if c.Mode == m {
		return
	}
	c.Mode = m
	c.Selection.Clear()
	c.status("Selection mode: " + m.String())
}

// SetGizmo switches the transform manipulator.
func (c *Controller) SetGizmo(g render.GizmoMode) {
	c.view.Gizmo = g
	c.view.HoverAxis = render.AxisNone
	c.view.ActiveAxis = render.AxisNone
	if c.state == StateDraggingGizmo {
		c.state = StateIdle
		c.target = nil
	}
	c.status("Gizmo: " + g.String())
}

// AddPrimitive adds a cube or sphere through the history.
func (c *Controller) AddPrimitive(kind engine.PrimitiveKind) {
	n, err := c.world.AddPrimitive(kind)
	if err != nil {
		logging.Logger().Warn("add primitive failed", "kind", kind, "err", err)
		return
	}
	c.status("Added " + n.Name)
}

// Duplicate copies the primary selection.
func (c *Controller) Duplicate() {
	n := c.world.Duplicate(c.world.Scene.Primary())
	if n == nil {
		return
	}
	c.status("Duplicated " + n.Name)
}

// Delete removes the selected objects in object mode or the picked
// vertices in vertex mode.
func (c *Controller) Delete() {
	if c.dragging() {
		return
	}
	scene := c.world.Scene
	switch c.Mode {
	case ModeObject:
		for _, n := range scene.Selected() {
			// Deleting an ancestor already deselected n.
			if !scene.IsSelected(n) || n.Parent() == nil {
				continue
			}
			c.world.Execute(history.NewDeleteObject(scene, n))
		}
	case ModeVertex:
		n := c.ActiveMesh()
		if n == nil || !c.hasPickedVertices() {
			return
		}
		idx := engine.SortedIndices(c.Selection.Vertices)
		logging.Logger().Info("delete vertices requested", "mesh", n.Name, "vertices", idx)
		c.world.Execute(history.NewDeleteVertices(n, idx))
		c.Selection.Clear()
	}
}

func (c *Controller) Save() {
	if err := c.world.SaveScene(c.ScenePath); err != nil {
		logging.Logger().Error("save failed", "path", c.ScenePath, "err", err)
		c.OnStatus.Invoke(fmt.Sprintf("Save failed: %v", err))
		return
	}
	c.OnStatus.Invoke("Scene saved!")
}

func (c *Controller) Undo() {
	if c.dragging() {
		return
	}
	label := c.world.History.UndoLabel()
	if c.world.Undo() {
		c.status("Undo " + label)
	}
}

func (c *Controller) Redo() {
	if c.dragging() {
		return
	}
	if c.world.Redo() {
		c.status("Redo " + c.world.History.UndoLabel())
	}
}
