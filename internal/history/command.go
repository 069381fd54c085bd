// Package history implements reversible scene edits and the undo/redo
// stacks that hold them.
package history

import (
	"fmt"

	"meshedit/internal/engine"

	"github.com/go-gl/mathgl/mgl64"
)

// Kind selects which snapshot fields of a Command are meaningful.
type Kind int

const (
	MoveObject Kind = iota
	ScaleObject
	MoveVertices
	DeleteObject
	AddObject
	EditTopology
)

func (k Kind) String() string {
	switch k {
	case MoveObject:
		return "Move"
	case ScaleObject:
		return "Scale"
	case MoveVertices:
		return "Move Vertices"
	case DeleteObject:
		return "Delete"
	case AddObject:
		return "Add"
	case EditTopology:
		return "Edit Mesh"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// VertexDelta is the before/after position of one vertex.
type VertexDelta struct {
	Old mgl64.Vec3
	New mgl64.Vec3
}

// Command is one reversible edit. Each Kind reads only its own fields;
// every field is a snapshot taken when the command was built.
type Command struct {
	Kind   Kind
	Target *engine.Node

	// MoveObject, ScaleObject
	OldVec mgl64.Vec3
	NewVec mgl64.Vec3

	// MoveVertices
	Vertices map[int]VertexDelta

	// DeleteObject, AddObject
	Parent    *engine.Node
	Index     int
	Children  []*engine.Node
	Selection []*engine.Node
	Select    bool

	// EditTopology
	OldMesh *engine.Mesh
	NewMesh *engine.Mesh
}

// NewMoveObject records a position change of n.
func NewMoveObject(n *engine.Node, from, to mgl64.Vec3) Command {
	return Command{Kind: MoveObject, Target: n, OldVec: from, NewVec: to}
}

// NewScaleObject records a scale change of n.
func NewScaleObject(n *engine.Node, from, to mgl64.Vec3) Command {
	return Command{Kind: ScaleObject, Target: n, OldVec: from, NewVec: to}
}

// NewMoveVertices records positions for a subset of n's vertices. The map
// is copied.
func NewMoveVertices(n *engine.Node, deltas map[int]VertexDelta) Command {
	cp := make(map[int]VertexDelta, len(deltas))
	for i, d := range deltas {
		cp[i] = d
	}
	return Command{Kind: MoveVertices, Target: n, Vertices: cp}
}

// NewDeleteObject snapshots n's parent, position among its siblings,
// children and the scene selection. Build it before n is removed.
func NewDeleteObject(scene *engine.Scene, n *engine.Node) Command {
	c := Command{
		Kind:      DeleteObject,
		Target:    n,
		Parent:    n.Parent(),
		Index:     -1,
		Children:  append([]*engine.Node(nil), n.Children()...),
		Selection: scene.Selected(),
	}
	if c.Parent != nil {
		c.Index = c.Parent.IndexOf(n)
	}
	return c
}

// NewAddObject attaches n under parent (root when nil) on execute and
// optionally makes it the only selection. Undo restores the selection
// held when the command was built.
func NewAddObject(scene *engine.Scene, n, parent *engine.Node, selectIt bool) Command {
	return Command{
		Kind:      AddObject,
		Target:    n,
		Parent:    parent,
		Index:     -1,
		Selection: scene.Selected(),
		Select:    selectIt,
	}
}

// NewDeleteVertices removes vertices from n's mesh, dropping any face or
// edge that used them.
func NewDeleteVertices(n *engine.Node, indices []int) Command {
	return Command{
		Kind:    EditTopology,
		Target:  n,
		OldMesh: n.Mesh,
		NewMesh: n.Mesh.WithoutVertices(indices),
	}
}

// Label is a short human-readable description.
func (c Command) Label() string {
	if c.Target == nil {
		return c.Kind.String()
	}
	return c.Kind.String() + " " + c.Target.Name
}

// Execute applies the edit.
func (c Command) Execute(scene *engine.Scene) {
	switch c.Kind {
	case MoveObject:
		c.Target.Transform.Position = c.NewVec
	case ScaleObject:
		c.Target.Transform.Scale = c.NewVec
	case MoveVertices:
		c.applyVertices(true)
	case DeleteObject:
		scene.Deselect(c.Target)
		scene.RemoveObject(c.Target)
	case AddObject:
		scene.AddObject(c.Target, c.Parent)
		if c.Select {
			scene.SelectObject(c.Target, false)
		}
	case EditTopology:
		c.Target.Mesh = c.NewMesh
	}
}

// Undo reverts the edit.
func (c Command) Undo(scene *engine.Scene) {
	switch c.Kind {
	case MoveObject:
		c.Target.Transform.Position = c.OldVec
	case ScaleObject:
		c.Target.Transform.Scale = c.OldVec
	case MoveVertices:
		c.applyVertices(false)
	case DeleteObject:
		parent := c.Parent
		if parent == nil {
			parent = scene.Root
		}
		parent.InsertChild(c.Target, c.Index)
		for _, child := range c.Children {
			c.Target.AddChild(child)
		}
		scene.SetSelection(c.Selection)
	case AddObject:
		scene.RemoveObject(c.Target)
		scene.SetSelection(c.Selection)
	case EditTopology:
		c.Target.Mesh = c.OldMesh
	}
}

func (c Command) applyVertices(forward bool) {
	m := c.Target.Mesh
	if m == nil {
		return
	}
	for i, d := range c.Vertices {
		if i < 0 || i >= len(m.Vertices) {
			continue
		}
		if forward {
			m.Vertices[i] = d.New
		} else {
			m.Vertices[i] = d.Old
		}
	}
}
