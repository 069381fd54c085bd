package editor

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"meshedit/internal/engine"
	"meshedit/internal/history"
	"meshedit/internal/render"
	"meshedit/internal/world"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture returns a controller over the default world (camera plus a unit
// cube at the origin) in an 800x600 home view. Nothing is selected.
func fixture(t *testing.T) (*Controller, *world.World, *engine.Node) {
	t.Helper()
	w := world.New(0)
	cube := w.Initialize()
	r := render.New(render.NewViewState(800, 600))
	return NewController(w, r), w, cube
}

func (c *Controller) run(events ...Event) {
	for _, ev := range events {
		c.Handle(ev)
	}
}

func screenOf(c *Controller, n *engine.Node, vertex int) mgl64.Vec2 {
	return c.renderer.ProjectNode(n).Screen[vertex]
}

func TestToggleKeys(t *testing.T) {
	c, _, _ := fixture(t)
	v := c.view

	c.run(KeyPress(KeyW, 0))
	assert.True(t, v.Wireframe)
	c.run(KeyPress(KeyW, 0))
	assert.False(t, v.Wireframe)

	c.run(KeyPress(KeyB, 0))
	assert.True(t, v.BackfaceCulling)

	c.run(KeyPress(KeyG, ModCtrl))
	assert.False(t, v.ShowGrid)
	assert.Equal(t, render.GizmoNone, v.Gizmo, "Ctrl+G is the grid, not the gizmo")

	c.run(KeyPress(KeyO, ModCtrl))
	assert.False(t, v.ShowCompass)

	c.run(KeyPress(KeyV, 0))
	assert.False(t, v.ShowVertices)

	c.run(KeyPress(KeyG, 0))
	assert.Equal(t, render.GizmoMove, v.Gizmo)
	c.run(KeyPress(KeyS, 0))
	assert.Equal(t, render.GizmoScale, v.Gizmo)
	c.run(KeyPress(KeyEscape, 0))
	assert.Equal(t, render.GizmoNone, v.Gizmo)
}

func TestModeKeys(t *testing.T) {
	c, _, _ := fixture(t)
	for key, mode := range map[Key]SelectionMode{
		Key2: ModeVertex,
		Key3: ModeEdge,
		Key4: ModeFace,
		Key1: ModeObject,
	} {
		c.run(KeyPress(key, 0))
		assert.Equal(t, mode, c.Mode)
	}
}

func TestViewKeys(t *testing.T) {
	c, _, _ := fixture(t)
	v := c.view

	c.run(KeyPress(KeyF1, 0))
	assert.Equal(t, mgl64.Vec3{0, 0, -1}, v.Rotation.Row(2), "front")
	c.run(KeyPress(KeyF1, ModCtrl))
	assert.Equal(t, mgl64.Vec3{0, 0, 1}, v.Rotation.Row(2), "back")
	c.run(KeyPress(KeyF2, 0))
	assert.Equal(t, mgl64.Vec3{0, -1, 0}, v.Rotation.Row(2), "top")
	c.run(KeyPress(KeyHome, 0))
	assert.Equal(t, render.HomeRotation(), v.Rotation)

	v.Pan(40, 40)
	v.Zoom(3)
	c.run(KeyPress(KeyF3, 0), KeyPress(KeyR, 0))
	assert.Equal(t, render.HomeRotation(), v.Rotation)
	assert.Equal(t, render.DefaultScale, v.Scale)
	assert.Equal(t, mgl64.Vec2{400, 300}, v.Translate)
}

func TestUndoRedoKeys(t *testing.T) {
	c, w, cube := fixture(t)
	w.Execute(history.NewMoveObject(cube, mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}))

	c.run(KeyPress(KeyZ, ModCtrl))
	assert.Equal(t, mgl64.Vec3{}, cube.Transform.Position)
	c.run(KeyPress(KeyY, ModCtrl))
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, cube.Transform.Position)

	// A fresh edit after undo discards the redo stack.
	c.run(KeyPress(KeyZ, ModCtrl))
	w.Execute(history.NewMoveObject(cube, mgl64.Vec3{}, mgl64.Vec3{0, 2, 0}))
	c.run(KeyPress(KeyY, ModCtrl))
	assert.Equal(t, mgl64.Vec3{0, 2, 0}, cube.Transform.Position)
	assert.False(t, w.History.CanRedo())
}

func TestCompassClickSetsView(t *testing.T) {
	c, w, _ := fixture(t)
	var front mgl64.Vec2
	for _, cr := range c.renderer.CompassRegions() {
		if cr.Tag == render.ViewFront {
			front = cr.Center
		}
	}

	c.run(Press(ButtonLeft, front.X(), front.Y(), 0))

	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, mgl64.Vec3{0, 0, -1}, c.view.Rotation.Row(2))
	assert.Empty(t, w.Scene.Selected(), "compass clicks do not select")
}

func TestGizmoMoveDrag(t *testing.T) {
	c, w, cube := fixture(t)
	w.Scene.SelectObject(cube, false)
	c.run(KeyPress(KeyG, 0))

	// Home view: the pivot sits at the viewport centre and +X points right.
	c.run(Press(ButtonLeft, 450, 300, 0))
	require.Equal(t, StateDraggingGizmo, c.State())
	assert.Equal(t, render.AxisX, c.view.ActiveAxis)

	c.run(Move(550, 300))
	assert.InDelta(t, 1.0, cube.Transform.Position.X(), 1e-9)
	c.run(Move(600, 310))
	assert.InDelta(t, 2.0, cube.Transform.Position.X(), 1e-9, "travel is measured from the press")
	assert.Zero(t, cube.Transform.Position.Y())

	c.run(Release(ButtonLeft, 600, 310))
	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, render.AxisNone, c.view.ActiveAxis)

	undo, _ := w.History.Depth()
	assert.Equal(t, 2, undo, "one command per motion sample")
	require.True(t, w.Undo())
	assert.InDelta(t, 1.0, cube.Transform.Position.X(), 1e-9)
	assert.Equal(t, []*engine.Node{cube}, w.Scene.Selected(), "gizmo drags keep the selection")
}

func TestGizmoScaleCenterAndClamp(t *testing.T) {
	c, w, cube := fixture(t)
	w.Scene.SelectObject(cube, false)
	c.run(KeyPress(KeyS, 0))

	c.run(Press(ButtonLeft, 403, 303, 0))
	require.Equal(t, render.AxisCenter, c.view.ActiveAxis)
	c.run(Move(503, 303), Release(ButtonLeft, 503, 303))

	want := 1 + 100/math.Sqrt2*DefaultGizmoSensitivity
	for i := range 3 {
		assert.InDelta(t, want, cube.Transform.Scale[i], 1e-9)
	}

	c.run(Press(ButtonLeft, 450, 300, 0))
	require.Equal(t, render.AxisX, c.view.ActiveAxis)
	c.run(Move(0, 300), Release(ButtonLeft, 0, 300))
	assert.Equal(t, minScaleValue, cube.Transform.Scale.X())
	assert.InDelta(t, want, cube.Transform.Scale.Y(), 1e-9)
}

func TestEscapeCancelsGizmoDrag(t *testing.T) {
	c, w, cube := fixture(t)
	w.Scene.SelectObject(cube, false)
	c.run(KeyPress(KeyG, 0), Press(ButtonLeft, 450, 300, 0))
	require.Equal(t, StateDraggingGizmo, c.State())

	c.run(KeyPress(KeyEscape, 0))
	assert.Equal(t, StateIdle, c.State())
	c.run(Move(600, 300))
	assert.Zero(t, cube.Transform.Position.X())
}

func TestHoverHighlightsAxis(t *testing.T) {
	c, w, cube := fixture(t)
	w.Scene.SelectObject(cube, false)
	c.run(KeyPress(KeyG, 0))

	c.run(Move(450, 302))
	assert.Equal(t, render.AxisX, c.view.HoverAxis)
	c.run(Move(100, 100))
	assert.Equal(t, render.AxisNone, c.view.HoverAxis)
}

func TestObjectSelection(t *testing.T) {
	c, w, cube := fixture(t)

	c.run(Press(ButtonLeft, 100, 500, 0), Release(ButtonLeft, 100, 500))
	assert.Equal(t, []*engine.Node{cube}, w.Scene.Selected())

	other := w.Scene.AddObject(engine.NewNode("Other"), nil)
	w.Scene.SelectObject(other, false)
	c.run(Press(ButtonLeft, 100, 500, ModShift), Release(ButtonLeft, 100, 500))
	assert.Equal(t, []*engine.Node{other, cube}, w.Scene.Selected(), "shift extends")
}

func TestVertexSelection(t *testing.T) {
	c, _, cube := fixture(t)
	c.run(KeyPress(Key2, 0))
	p1 := screenOf(c, cube, 1)
	p2 := screenOf(c, cube, 2)

	c.run(Press(ButtonLeft, p1.X()+3, p1.Y()-2, 0), Release(ButtonLeft, p1.X(), p1.Y()))
	assert.Equal(t, map[int]bool{1: true}, c.Selection.Vertices)
	assert.Equal(t, cube, c.Selection.Mesh)

	c.run(Press(ButtonLeft, p2.X(), p2.Y(), 0), Release(ButtonLeft, p2.X(), p2.Y()))
	assert.Equal(t, map[int]bool{2: true}, c.Selection.Vertices, "plain click replaces")

	c.run(Press(ButtonLeft, p1.X(), p1.Y(), ModShift), Release(ButtonLeft, p1.X(), p1.Y()))
	assert.Equal(t, map[int]bool{1: true, 2: true}, c.Selection.Vertices)

	c.run(Press(ButtonLeft, p2.X(), p2.Y(), ModShift), Release(ButtonLeft, p2.X(), p2.Y()))
	assert.Equal(t, map[int]bool{1: true}, c.Selection.Vertices, "shift toggles off")

	// Outside the radius nothing changes.
	c.run(Press(ButtonLeft, 5, 590, 0), Release(ButtonLeft, 5, 590))
	assert.Equal(t, map[int]bool{1: true}, c.Selection.Vertices)
}

func TestAltDragMovesVerticesAsOneCommand(t *testing.T) {
	c, w, cube := fixture(t)
	c.run(KeyPress(Key2, 0))
	p := screenOf(c, cube, 1)
	c.run(Press(ButtonLeft, p.X(), p.Y(), 0), Release(ButtonLeft, p.X(), p.Y()))
	before := cube.Mesh.Vertices[1]
	untouched := cube.Mesh.Vertices[0]

	c.run(Press(ButtonLeft, 100, 500, ModAlt))
	require.Equal(t, StateDraggingVertices, c.State())
	c.run(Move(115, 470), Move(130, 440))
	c.run(Release(ButtonLeft, 130, 440))

	// dx 30, dy -60 at scale 30: x += 0.1, y += 0.2
	got := cube.Mesh.Vertices[1]
	assert.InDelta(t, before.X()+0.1, got.X(), 1e-9)
	assert.InDelta(t, before.Y()+0.2, got.Y(), 1e-9)
	assert.Equal(t, before.Z(), got.Z())
	assert.Equal(t, untouched, cube.Mesh.Vertices[0])

	undo, _ := w.History.Depth()
	require.Equal(t, 1, undo)
	require.True(t, w.Undo())
	assert.Equal(t, before, cube.Mesh.Vertices[1])
}

func TestHistoryKeysWaitForDrag(t *testing.T) {
	c, w, cube := fixture(t)
	orig := cube.Mesh.Vertices[1]
	c.run(KeyPress(Key2, 0))
	p := screenOf(c, cube, 1)
	c.run(Press(ButtonLeft, p.X(), p.Y(), 0), Release(ButtonLeft, p.X(), p.Y()))
	c.run(Press(ButtonLeft, 100, 500, ModAlt), Move(130, 440), Release(ButtonLeft, 130, 440))
	moved := cube.Mesh.Vertices[1]
	require.NotEqual(t, orig, moved)

	c.run(Press(ButtonLeft, 100, 500, 0), Move(110, 500))
	require.Equal(t, StateDraggingView, c.State())
	c.run(KeyPress(KeyZ, ModCtrl), KeyPress(KeyY, ModCtrl), KeyPress(KeyDelete, 0))
	c.Undo()
	undo, redo := w.History.Depth()
	assert.Equal(t, 1, undo, "nothing undone mid-drag")
	assert.Zero(t, redo)
	assert.Len(t, cube.Mesh.Vertices, 8)

	c.run(Move(120, 500), Release(ButtonLeft, 120, 500))
	undo, _ = w.History.Depth()
	require.Equal(t, 2, undo)

	for w.Undo() {
	}
	assert.Equal(t, orig, cube.Mesh.Vertices[1], "every edit reverts")
	require.True(t, w.Redo())
	assert.Equal(t, moved, cube.Mesh.Vertices[1])
}

func TestAltDragWithoutPickedVerticesOrbits(t *testing.T) {
	c, _, _ := fixture(t)
	c.run(KeyPress(Key2, 0), Press(ButtonLeft, 100, 500, ModAlt))
	assert.Equal(t, StateDraggingView, c.State())
}

func TestLeftDragRotatesGeometry(t *testing.T) {
	c, w, cube := fixture(t)
	orig := append([]mgl64.Vec3(nil), cube.Mesh.Vertices...)
	view := c.view.Rotation

	c.run(Press(ButtonLeft, 100, 500, 0), Move(110, 500), Release(ButtonLeft, 110, 500))

	rot := mgl64.Rotate3DY(-0.1).Mul3(mgl64.Rotate3DX(0))
	for i, v := range orig {
		assert.True(t, rot.Mul3x1(v).ApproxEqualThreshold(cube.Mesh.Vertices[i], 1e-12), "vertex %d", i)
	}
	assert.Equal(t, view, c.view.Rotation, "view untouched")
	assert.Equal(t, mgl64.Vec3{}, cube.Transform.Rotation, "transform untouched")

	undo, _ := w.History.Depth()
	require.Equal(t, 1, undo)
	require.True(t, w.Undo())
	assert.Equal(t, orig, cube.Mesh.Vertices)
}

func TestClickWithoutMotionRecordsNothing(t *testing.T) {
	c, w, _ := fixture(t)
	c.run(Press(ButtonLeft, 100, 500, 0), Release(ButtonLeft, 100, 500))
	assert.False(t, w.History.CanUndo())
}

func TestPanOrbitZoom(t *testing.T) {
	c, w, _ := fixture(t)
	v := c.view
	h0, v0 := v.OrbitH, v.OrbitV

	c.run(Press(ButtonMiddle, 100, 500, 0), Move(110, 480), Release(ButtonMiddle, 110, 480))
	assert.Equal(t, mgl64.Vec2{410, 280}, v.Translate)

	c.run(Press(ButtonRight, 100, 500, 0), Move(110, 520), Release(ButtonRight, 110, 520))
	assert.InDelta(t, h0+0.1, v.OrbitH, 1e-12)
	assert.InDelta(t, v0-0.2, v.OrbitV, 1e-12)

	c.run(Scroll(1))
	assert.InDelta(t, 33, v.Scale, 1e-9)

	assert.False(t, w.History.CanUndo(), "view changes are not commands")
}

func TestDeleteObjects(t *testing.T) {
	c, w, cube := fixture(t)
	child := w.Scene.AddObject(engine.NewMeshNode("Child", engine.NewCube(0.5)), cube)
	w.Scene.SelectObject(cube, false)
	w.Scene.SelectObject(child, true)

	c.run(KeyPress(KeyDelete, 0))

	assert.Nil(t, cube.Parent())
	assert.Empty(t, w.Scene.Selected())
	undo, _ := w.History.Depth()
	assert.Equal(t, 1, undo, "descendants go with their ancestor")

	require.True(t, w.Undo())
	assert.Equal(t, w.Scene.Root, cube.Parent())
	assert.Equal(t, cube, child.Parent())
	assert.True(t, cube.Selected)
	assert.True(t, child.Selected, "selected descendant restored")
	assert.Equal(t, []*engine.Node{cube, child}, w.Scene.Selected())
}

func TestDeleteVertices(t *testing.T) {
	c, w, cube := fixture(t)
	c.run(KeyPress(Key2, 0))
	require.Equal(t, cube, c.ActiveMesh())
	c.Selection.Vertices[0] = true

	c.run(KeyPress(KeyDelete, 0))

	assert.Len(t, cube.Mesh.Vertices, 7)
	assert.Len(t, cube.Mesh.Faces, 3)
	assert.Empty(t, c.Selection.Vertices)
	require.True(t, w.Undo())
	assert.Len(t, cube.Mesh.Vertices, 8)
	assert.Len(t, cube.Mesh.Faces, 6)
}

func TestEdgeAndFacePicking(t *testing.T) {
	c, _, cube := fixture(t)
	c.run(KeyPress(Key3, 0))
	e := cube.Mesh.Edges[4]
	mid := screenOf(c, cube, e[0]).Add(screenOf(c, cube, e[1])).Mul(0.5)
	c.run(Press(ButtonLeft, mid.X(), mid.Y(), 0), Release(ButtonLeft, mid.X(), mid.Y()))
	assert.Equal(t, map[int]bool{4: true}, c.Selection.Edges)

	c.run(KeyPress(Key4, 0))
	assert.Empty(t, c.Selection.Edges, "mode switch drops picks")
	c.run(KeyPress(KeyF1, 0))
	c.run(Press(ButtonLeft, 400, 300, 0), Release(ButtonLeft, 400, 300))
	assert.Equal(t, map[int]bool{1: true}, c.Selection.Faces, "front face is nearest")
}

func TestDuplicateAndSave(t *testing.T) {
	c, w, cube := fixture(t)
	var msgs []string
	c.OnStatus.AddListener(func(s string) { msgs = append(msgs, s) })

	c.run(KeyPress(KeyD, ModCtrl))
	assert.Len(t, w.Scene.Root.Children(), 2, "nothing selected")

	w.Scene.SelectObject(cube, false)
	c.run(KeyPress(KeyD, ModCtrl))
	require.Len(t, w.Scene.Root.Children(), 3)
	assert.Equal(t, "Cube Copy", w.Scene.Primary().Name)

	c.ScenePath = filepath.Join(t.TempDir(), "scene.json")
	c.run(KeyPress(KeyS, ModCtrl))
	_, err := os.Stat(c.ScenePath)
	assert.NoError(t, err)
	assert.Equal(t, render.GizmoNone, c.view.Gizmo, "Ctrl+S does not pick the scale gizmo")
	assert.Contains(t, msgs, "Duplicated Cube Copy")
	assert.Contains(t, msgs, "Scene saved!")

	require.True(t, w.Undo())
	assert.Len(t, w.Scene.Root.Children(), 2)
	assert.Equal(t, []*engine.Node{cube}, w.Scene.Selected(), "undoing the copy reselects the source")
}

func TestAddPrimitiveReportsStatus(t *testing.T) {
	c, w, _ := fixture(t)
	var last string
	c.OnStatus.AddListener(func(s string) { last = s })

	c.AddPrimitive(engine.PrimitiveSphere)
	assert.Equal(t, "Added Sphere_1", last)
	assert.Len(t, w.Scene.Root.Children(), 3)

	c.AddPrimitive("torus")
	assert.Len(t, w.Scene.Root.Children(), 3)
}

func TestPointInPolygon(t *testing.T) {
	square := []mgl64.Vec2{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	assert.True(t, pointInPolygon(mgl64.Vec2{5, 5}, square))
	assert.False(t, pointInPolygon(mgl64.Vec2{15, 5}, square))
	assert.False(t, pointInPolygon(mgl64.Vec2{5, -1}, square))
}
