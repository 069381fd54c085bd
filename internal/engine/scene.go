package engine

import "github.com/go-gl/mathgl/mgl64"

// Light is a directional light kept as scene state. The software renderer
// uses a fixed light and does not read these.
type Light struct {
	Name      string     `json:"name"`
	Direction mgl64.Vec3 `json:"direction"`
	Intensity float64    `json:"intensity"`
}

// Scene owns the node tree and the selection set.
type Scene struct {
	Name         string
	Root         *Node
	ActiveCamera *Node
	Lights       []Light

	selected []*Node
}

func NewScene(name string) *Scene {
	return &Scene{
		Name: name,
		Root: NewNode("Root"),
	}
}

// AddObject attaches obj under parent, or under Root when parent is nil.
func (s *Scene) AddObject(obj, parent *Node) *Node {
	if parent == nil {
		parent = s.Root
	}
	parent.AddChild(obj)
	return obj
}

// RemoveObject detaches obj from its parent and drops it and its
// descendants from the selection. No-op when obj has no parent.
func (s *Scene) RemoveObject(obj *Node) bool {
	if obj == nil || obj.parent == nil {
		return false
	}
	obj.Walk(func(n *Node) bool {
		s.Deselect(n)
		return true
	})
	return obj.parent.RemoveChild(obj)
}

func (s *Scene) Update(dt float64) {
	s.Root.Update(dt)
}

// SelectObject adds obj to the selection. Unless add is set, the current
// selection is cleared first.
func (s *Scene) SelectObject(obj *Node, add bool) {
	if obj == nil {
		return
	}
	if !add {
		s.ClearSelection()
	}
	if s.IsSelected(obj) {
		return
	}
	s.selected = append(s.selected, obj)
	obj.Selected = true
}

// Deselect removes obj from the selection.
func (s *Scene) Deselect(obj *Node) bool {
	for i, n := range s.selected {
		if n == obj {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			obj.Selected = false
			return true
		}
	}
	return false
}

func (s *Scene) ClearSelection() {
	for _, n := range s.selected {
		n.Selected = false
	}
	s.selected = s.selected[:0]
}

// SetSelection replaces the selection with nodes, in order. The last node
// becomes the primary selection.
func (s *Scene) SetSelection(nodes []*Node) {
	s.ClearSelection()
	for _, n := range nodes {
		s.SelectObject(n, true)
	}
}

func (s *Scene) IsSelected(obj *Node) bool {
	for _, n := range s.selected {
		if n == obj {
			return true
		}
	}
	return false
}

// Selected returns a copy of the selection in selection order.
func (s *Scene) Selected() []*Node {
	return append([]*Node(nil), s.selected...)
}

// Primary returns the most recently selected node, or nil.
func (s *Scene) Primary() *Node {
	if len(s.selected) == 0 {
		return nil
	}
	return s.selected[len(s.selected)-1]
}

func (s *Scene) FindByName(name string) *Node {
	return s.Root.FindByName(name)
}

// FindByUID returns the node with the given UID anywhere in the tree.
func (s *Scene) FindByUID(uid uint64) *Node {
	var found *Node
	s.Root.Walk(func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.UID == uid {
			found = n
			return false
		}
		return true
	})
	return found
}

// Meshes returns every mesh-bearing node in depth-first order.
func (s *Scene) Meshes() []*Node {
	var out []*Node
	s.Root.Walk(func(n *Node) bool {
		if n.HasMesh() {
			out = append(out, n)
		}
		return true
	})
	return out
}

// FirstMesh returns the first mesh-bearing direct child of Root.
func (s *Scene) FirstMesh() *Node {
	for _, c := range s.Root.children {
		if c.HasMesh() {
			return c
		}
	}
	return nil
}
