// Package world is the engine surface driven by the editor shells. It owns
// the scene graph and the command history that edits it.
package world

import (
	"fmt"
	"strings"

	"meshedit/internal/engine"
	"meshedit/internal/history"
	"meshedit/internal/logging"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	MainCameraName  = "Main Camera"
	DefaultCubeName = "Cube"

	// primitiveSpacing offsets each added primitive along X.
	primitiveSpacing = 1.5
)

type World struct {
	Scene   *engine.Scene
	History *history.Manager

	added map[engine.PrimitiveKind]int
}

// New returns an empty world whose history keeps at most historyLimit
// commands (0 keeps everything).
func New(historyLimit int) *World {
	scene := engine.NewScene("Main")
	return &World{
		Scene:   scene,
		History: history.NewManager(scene, historyLimit),
		added:   map[engine.PrimitiveKind]int{},
	}
}

// Initialize adds the default camera and a unit cube and returns the cube.
func (w *World) Initialize() *engine.Node {
	cam := engine.NewCameraNode(MainCameraName)
	cam.Transform.Position = mgl64.Vec3{0, 0, -10}
	w.Scene.AddObject(cam, nil)
	w.Scene.ActiveCamera = cam

	cube := engine.NewMeshNode(DefaultCubeName, engine.NewCube(1))
	w.Scene.AddObject(cube, nil)

	logging.Logger().Info("world initialized", "objects", len(w.Scene.Root.Children()))
	return cube
}

func (w *World) Update(dt float64) {
	w.Scene.Update(dt)
}

// Execute applies cmd through the history.
func (w *World) Execute(cmd history.Command) {
	w.History.Execute(cmd)
}

func (w *World) Undo() bool { return w.History.Undo() }
func (w *World) Redo() bool { return w.History.Redo() }

// AddPrimitive creates a primitive beside the previously added ones and
// attaches it under the root through an undoable command. The new node
// becomes the only selection.
func (w *World) AddPrimitive(kind engine.PrimitiveKind) (*engine.Node, error) {
	mesh, err := engine.NewPrimitive(kind, 1)
	if err != nil {
		return nil, err
	}
	w.added[kind]++
	n := w.added[kind]

	title := strings.ToUpper(string(kind[:1])) + string(kind[1:])
	node := engine.NewMeshNode(fmt.Sprintf("%s_%d", title, n), mesh)
	node.Transform.Position = mgl64.Vec3{primitiveSpacing * float64(n), 0, 0}

	w.Execute(history.NewAddObject(w.Scene, node, nil, true))
	return node, nil
}

// Duplicate deep-copies n next to its source and selects the copy. The
// copy shares n's parent.
func (w *World) Duplicate(n *engine.Node) *engine.Node {
	if n == nil || n == w.Scene.Root {
		return nil
	}
	dup := n.Clone()
	dup.Name = n.Name + " Copy"
	dup.Transform.Position = dup.Transform.Position.Add(mgl64.Vec3{1, 0, 0})
	w.Execute(history.NewAddObject(w.Scene, dup, n.Parent(), true))
	return dup
}

// Clear removes every object and forgets the history.
func (w *World) Clear() {
	w.Scene.ClearSelection()
	for _, c := range append([]*engine.Node(nil), w.Scene.Root.Children()...) {
		w.Scene.RemoveObject(c)
	}
	w.Scene.ActiveCamera = nil
	clear(w.added)
	w.History.Clear()
}
