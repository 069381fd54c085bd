package engine

import (
	"sync/atomic"

	"github.com/jinzhu/copier"
)

// NodeKind tags what payload a node carries.
type NodeKind int

const (
	KindGroup NodeKind = iota
	KindMesh
	KindCamera
)

func (k NodeKind) String() string {
	switch k {
	case KindMesh:
		return "mesh"
	case KindCamera:
		return "camera"
	}
	return "group"
}

// Behavior is an optional per-frame hook attached to a node.
type Behavior interface {
	Update(n *Node, dt float64)
}

var nextUID atomic.Uint64

// Node is an entry in the scene hierarchy. The parent pointer is a weak
// back-reference; a node is owned by its parent's children slice.
type Node struct {
	UID       uint64 `copier:"-"`
	Name      string
	Kind      NodeKind
	Transform Transform
	Visible   bool
	Selected  bool `copier:"-"`

	Mesh     *Mesh
	Camera   *Camera
	Behavior Behavior `copier:"-"`

	parent   *Node
	children []*Node
}

// NewNode returns a visible group node with an identity transform.
func NewNode(name string) *Node {
	return &Node{
		UID:       nextUID.Add(1),
		Name:      name,
		Kind:      KindGroup,
		Transform: NewTransform(),
		Visible:   true,
	}
}

// NewMeshNode wraps mesh data in a node.
func NewMeshNode(name string, mesh *Mesh) *Node {
	n := NewNode(name)
	n.Kind = KindMesh
	n.Mesh = mesh
	return n
}

// NewCameraNode returns a node carrying a camera with default lens settings.
func NewCameraNode(name string) *Node {
	n := NewNode(name)
	n.Kind = KindCamera
	n.Camera = NewCamera()
	return n
}

// HasMesh reports whether the node carries renderable mesh data.
func (n *Node) HasMesh() bool {
	return n.Kind == KindMesh && n.Mesh != nil
}

func (n *Node) Parent() *Node { return n.parent }

// Children returns the child list in draw/update order. Callers must not
// mutate the returned slice.
func (n *Node) Children() []*Node { return n.children }

// IndexOf returns the position of child under n, or -1.
func (n *Node) IndexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// IsAncestorOf reports whether n appears on other's parent chain.
func (n *Node) IsAncestorOf(other *Node) bool {
	for p := other.parent; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// AddChild detaches child from any previous parent and appends it to n.
// It refuses nil, n itself, and any ancestor of n.
func (n *Node) AddChild(child *Node) bool {
	return n.InsertChild(child, -1)
}

// InsertChild is AddChild at a given index. An out-of-range index appends.
func (n *Node) InsertChild(child *Node, index int) bool {
	if child == nil || child == n || child.IsAncestorOf(n) {
		return false
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = n
	if index < 0 || index >= len(n.children) {
		n.children = append(n.children, child)
		return true
	}
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	return true
}

// RemoveChild detaches child. It is a no-op returning false when child is
// not one of n's children.
func (n *Node) RemoveChild(child *Node) bool {
	i := n.IndexOf(child)
	if i < 0 {
		return false
	}
	n.children = append(n.children[:i], n.children[i+1:]...)
	child.parent = nil
	return true
}

// WorldTransform combines transforms from the root down to n.
func (n *Node) WorldTransform() Transform {
	if n.parent == nil {
		return n.Transform
	}
	return Combine(n.parent.WorldTransform(), n.Transform)
}

// Update runs the node's behavior and then its children, depth first.
func (n *Node) Update(dt float64) {
	if n.Behavior != nil {
		n.Behavior.Update(n, dt)
	}
	for _, c := range n.children {
		c.Update(dt)
	}
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips that node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// FindByName returns the first node in n's subtree with the given name.
func (n *Node) FindByName(name string) *Node {
	var found *Node
	n.Walk(func(x *Node) bool {
		if found != nil {
			return false
		}
		if x.Name == name {
			found = x
			return false
		}
		return true
	})
	return found
}

func (n *Node) copyFields() *Node {
	return &Node{
		Name:      n.Name,
		Kind:      n.Kind,
		Transform: n.Transform,
		Visible:   n.Visible,
	}
}

// Clone returns a detached deep copy of n and its subtree with fresh UIDs.
// Selection state and behaviors are not copied.
func (n *Node) Clone() *Node {
	out := &Node{}
	if err := copier.Copy(out, n); err != nil {
		out = n.copyFields()
	}
	out.UID = nextUID.Add(1)
	out.Mesh = n.Mesh.Clone()
	if n.Camera != nil {
		cam := *n.Camera
		out.Camera = &cam
	}
	for _, c := range n.children {
		out.AddChild(c.Clone())
	}
	return out
}
