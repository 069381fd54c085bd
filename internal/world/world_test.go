package world

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"meshedit/internal/engine"
	"meshedit/internal/history"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	w := New(0)
	cube := w.Initialize()

	require.NotNil(t, cube)
	assert.Equal(t, "Cube", cube.Name)
	assert.Len(t, cube.Mesh.Vertices, 8)

	cam := w.Scene.ActiveCamera
	require.NotNil(t, cam)
	assert.Equal(t, "Main Camera", cam.Name)
	assert.Equal(t, mgl64.Vec3{0, 0, -10}, cam.Transform.Position)
	assert.Equal(t, []*engine.Node{cam, cube}, w.Scene.Root.Children())
}

func TestExecuteUndoRedo(t *testing.T) {
	w := New(0)
	cube := w.Initialize()

	w.Execute(history.NewMoveObject(cube, cube.Transform.Position, mgl64.Vec3{1, 2, 3}))
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, cube.Transform.Position)

	require.True(t, w.Undo())
	assert.Equal(t, mgl64.Vec3{}, cube.Transform.Position)
	assert.False(t, w.Undo())

	require.True(t, w.Redo())
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, cube.Transform.Position)
	assert.False(t, w.Redo())
}

type counter struct{ calls int }

func (c *counter) Update(*engine.Node, float64) { c.calls++ }

func TestUpdateRunsBehaviors(t *testing.T) {
	w := New(0)
	cube := w.Initialize()
	b := &counter{}
	cube.Behavior = b

	w.Update(1.0 / 60)
	w.Update(1.0 / 60)
	assert.Equal(t, 2, b.calls)
}

func TestAddPrimitive(t *testing.T) {
	w := New(0)
	w.Initialize()

	s1, err := w.AddPrimitive(engine.PrimitiveSphere)
	require.NoError(t, err)
	s2, err := w.AddPrimitive(engine.PrimitiveSphere)
	require.NoError(t, err)
	c1, err := w.AddPrimitive(engine.PrimitiveCube)
	require.NoError(t, err)

	assert.Equal(t, "Sphere_1", s1.Name)
	assert.Equal(t, "Sphere_2", s2.Name)
	assert.Equal(t, "Cube_1", c1.Name)
	assert.NotEqual(t, s1.Transform.Position, s2.Transform.Position)
	assert.Equal(t, []*engine.Node{c1}, w.Scene.Selected())

	require.True(t, w.Undo())
	assert.Nil(t, c1.Parent())
	assert.Len(t, w.Scene.Root.Children(), 4)
	assert.Equal(t, []*engine.Node{s2}, w.Scene.Selected())

	_, err = w.AddPrimitive("torus")
	assert.Error(t, err)
}

func TestDuplicateUndo(t *testing.T) {
	w := New(0)
	cube := w.Initialize()
	child := engine.NewMeshNode("Child", engine.NewCube(0.5))
	cube.AddChild(child)

	dup := w.Duplicate(cube)
	require.NotNil(t, dup)
	assert.Equal(t, "Cube Copy", dup.Name)
	assert.NotEqual(t, cube.UID, dup.UID)
	assert.Equal(t, w.Scene.Root, dup.Parent())
	assert.Len(t, dup.Children(), 1)
	assert.True(t, dup.Selected)

	// Deep copy: editing the duplicate leaves the source alone.
	dup.Mesh.Vertices[0] = mgl64.Vec3{9, 9, 9}
	assert.NotEqual(t, mgl64.Vec3{9, 9, 9}, cube.Mesh.Vertices[0])

	require.True(t, w.Undo())
	assert.Nil(t, dup.Parent())
	assert.Empty(t, w.Scene.Selected())
	assert.Len(t, w.Scene.Root.Children(), 2)

	assert.Nil(t, w.Duplicate(w.Scene.Root))
}

func TestExportShape(t *testing.T) {
	w := New(0)
	cube := w.Initialize()
	cube.Transform.Scale = mgl64.Vec3{2, 2, 2}
	// Nested meshes are not exported.
	cube.AddChild(engine.NewMeshNode("Nested", engine.NewCube(1)))

	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.FixedZone("X", 3600))
	doc := w.Export(now)

	assert.Equal(t, "2026-03-04T04:06:07Z", doc.GeneratedAt)
	require.Len(t, doc.Meshes, 1)
	assert.Equal(t, "Cube", doc.Meshes[0].Name)
	assert.Len(t, doc.Meshes[0].Vertices, 8)
	assert.Len(t, doc.Meshes[0].Faces, 6)
	assert.Equal(t, [3]float64{2, 2, 2}, doc.Meshes[0].Transform.Scale)
	require.NotNil(t, doc.Camera)
	assert.Equal(t, [3]float64{0, 0, -10}, doc.Camera.Transform.Position)

	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	var generic map[string]any
	require.NoError(t, json.Unmarshal(raw, &generic))
	assert.ElementsMatch(t, []string{"generated_at", "meshes", "camera"}, keys(generic))
	camTransform := generic["camera"].(map[string]any)["transform"].(map[string]any)
	assert.ElementsMatch(t, []string{"position", "rotation"}, keys(camTransform))

	// Export is a copy.
	doc.Meshes[0].Faces[0][0] = 99
	assert.NotEqual(t, 99, cube.Mesh.Faces[0][0])
}

func TestExportEmptyScene(t *testing.T) {
	raw, err := json.Marshal(New(0).Export(time.Unix(0, 0)))
	require.NoError(t, err)
	assert.JSONEq(t, `{"generated_at":"1970-01-01T00:00:00Z","meshes":[],"camera":null}`, string(raw))
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestSceneFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	w := New(0)
	cube := w.Initialize()
	cube.Transform.Position = mgl64.Vec3{1, 2, 3}
	cube.Transform.Rotation = mgl64.Vec3{0.1, 0.2, 0.3}
	cube.Transform.Scale = mgl64.Vec3{1, 2, 1}
	cube.Mesh.Vertices[0] = mgl64.Vec3{-2, -2, -2}
	group := w.Scene.AddObject(engine.NewNode("Group"), nil)
	group.Visible = false
	w.Scene.AddObject(engine.NewMeshNode("Ball", engine.NewSphere(1, 6, 3)), group)
	w.Scene.Lights = []engine.Light{{Name: "Sun", Direction: mgl64.Vec3{0, -1, 0}, Intensity: 0.8}}

	require.NoError(t, w.SaveScene(path))

	other := New(0)
	other.Initialize()
	other.Execute(history.NewMoveObject(other.Scene.Root.Children()[1], mgl64.Vec3{}, mgl64.Vec3{5, 5, 5}))
	require.NoError(t, other.LoadScene(path))

	assert.False(t, other.History.CanUndo(), "history cleared on load")
	roots := other.Scene.Root.Children()
	require.Len(t, roots, 3)
	assert.Equal(t, other.Scene.ActiveCamera, roots[0])
	assert.Equal(t, engine.KindCamera, roots[0].Kind)
	assert.NotNil(t, roots[0].Camera)

	got := roots[1]
	assert.Equal(t, "Cube", got.Name)
	assert.Equal(t, cube.Transform, got.Transform)
	assert.Equal(t, cube.Mesh.Vertices, got.Mesh.Vertices)
	assert.Equal(t, cube.Mesh.Faces, got.Mesh.Faces)
	assert.Equal(t, cube.Mesh.Edges, got.Mesh.Edges)

	assert.False(t, roots[2].Visible)
	require.Len(t, roots[2].Children(), 1)
	ball := roots[2].Children()[0]
	assert.Equal(t, "Ball", ball.Name)
	assert.True(t, ball.HasMesh())
	assert.NoError(t, ball.Mesh.Validate())
	assert.Equal(t, w.Scene.Lights, other.Scene.Lights)
}

func TestLoadSceneRejectsBadData(t *testing.T) {
	dir := t.TempDir()
	w := New(0)
	cube := w.Initialize()

	cases := map[string]string{
		"syntax":  `{"objects": [`,
		"kind":    `{"objects": [{"name": "X", "kind": "light"}]}`,
		"no mesh": `{"objects": [{"name": "X", "kind": "mesh"}]}`,
		"index":   `{"objects": [{"name": "X", "kind": "mesh", "mesh": {"vertices": [[0,0,0]], "faces": [[0,1,2]]}}]}`,
	}
	for name, body := range cases {
		path := filepath.Join(dir, name+".json")
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		assert.Error(t, w.LoadScene(path), name)
	}
	assert.Error(t, w.LoadScene(filepath.Join(dir, "absent.json")))

	// Failed loads leave the world alone.
	assert.Equal(t, cube, w.Scene.Root.Children()[1])
}

func TestLoadSceneDefaultsScale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	body := `{"objects": [{"name": "G", "kind": "group", "position": [1, 0, 0]}]}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	w := New(0)
	require.NoError(t, w.LoadScene(path))
	g := w.Scene.FindByName("G")
	require.NotNil(t, g)
	assert.Equal(t, mgl64.Vec3{1, 1, 1}, g.Transform.Scale)
	assert.True(t, g.Visible)
	assert.Nil(t, w.Scene.ActiveCamera)
}
