package world

import (
	"encoding/json"
	"fmt"
	"os"

	"meshedit/internal/engine"
	"meshedit/internal/logging"

	"github.com/go-gl/mathgl/mgl64"
)

// ScenePath is the default scene file.
const ScenePath = "scene.json"

// --- JSON types ---

type SceneFile struct {
	Name    string         `json:"name"`
	Objects []ObjectDef    `json:"objects"`
	Lights  []engine.Light `json:"lights,omitempty"`
}

type ObjectDef struct {
	Name     string         `json:"name"`
	Kind     string         `json:"kind"`
	Hidden   bool           `json:"hidden,omitempty"`
	Active   bool           `json:"active,omitempty"` // the scene's active camera
	Position [3]float64     `json:"position"`
	Rotation [3]float64     `json:"rotation"`
	Scale    [3]float64     `json:"scale"`
	Mesh     *meshDef       `json:"mesh,omitempty"`
	Camera   *engine.Camera `json:"camera,omitempty"`
	Children []ObjectDef    `json:"children,omitempty"`
}

type meshDef struct {
	Vertices [][3]float64 `json:"vertices"`
	Faces    [][]int      `json:"faces,omitempty"`
	Edges    [][2]int     `json:"edges,omitempty"`
}

func parseKind(s string) (engine.NodeKind, error) {
	for _, k := range []engine.NodeKind{engine.KindGroup, engine.KindMesh, engine.KindCamera} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown object kind %q", s)
}

// --- Loading ---

// LoadScene replaces the world's contents with the scene stored at path and
// clears the history. On any error the world is left unchanged.
func (w *World) LoadScene(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read scene: %w", err)
	}

	var sf SceneFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return fmt.Errorf("parse scene: %w", err)
	}

	var active *engine.Node
	nodes := make([]*engine.Node, 0, len(sf.Objects))
	for _, def := range sf.Objects {
		n, err := buildNode(def, &active)
		if err != nil {
			return fmt.Errorf("load scene %s: %w", path, err)
		}
		nodes = append(nodes, n)
	}

	w.Clear()
	if sf.Name != "" {
		w.Scene.Name = sf.Name
	}
	w.Scene.Lights = sf.Lights
	for _, n := range nodes {
		w.Scene.AddObject(n, nil)
	}
	w.Scene.ActiveCamera = active

	logging.Logger().Info("scene loaded", "path", path, "objects", len(nodes))
	return nil
}

func buildNode(def ObjectDef, active **engine.Node) (*engine.Node, error) {
	kind, err := parseKind(def.Kind)
	if err != nil {
		return nil, err
	}

	n := engine.NewNode(def.Name)
	n.Kind = kind
	n.Visible = !def.Hidden
	n.Transform.Position = def.Position
	n.Transform.Rotation = def.Rotation

	// Default scale to 1 if zero
	if def.Scale != [3]float64{} {
		n.Transform.Scale = def.Scale
	}

	switch kind {
	case engine.KindMesh:
		if def.Mesh == nil {
			return nil, fmt.Errorf("object %q: mesh data missing", def.Name)
		}
		m := &engine.Mesh{
			Vertices: make([]mgl64.Vec3, len(def.Mesh.Vertices)),
			Faces:    def.Mesh.Faces,
			Edges:    def.Mesh.Edges,
		}
		for i, v := range def.Mesh.Vertices {
			m.Vertices[i] = v
		}
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("object %q: %w", def.Name, err)
		}
		n.Mesh = m
	case engine.KindCamera:
		n.Camera = engine.NewCamera()
		if def.Camera != nil {
			*n.Camera = *def.Camera
		}
		if def.Active {
			*active = n
		}
	}

	for _, cd := range def.Children {
		child, err := buildNode(cd, active)
		if err != nil {
			return nil, err
		}
		n.AddChild(child)
	}
	return n, nil
}

// --- Saving ---

// SaveScene writes the full hierarchy, including mesh data, to path.
func (w *World) SaveScene(path string) error {
	sf := SceneFile{
		Name:    w.Scene.Name,
		Objects: []ObjectDef{},
		Lights:  w.Scene.Lights,
	}
	for _, n := range w.Scene.Root.Children() {
		sf.Objects = append(sf.Objects, w.objectDef(n))
	}

	data, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal scene: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}

	logging.Logger().Info("scene saved", "path", path)
	return nil
}

func (w *World) objectDef(n *engine.Node) ObjectDef {
	def := ObjectDef{
		Name:     n.Name,
		Kind:     n.Kind.String(),
		Hidden:   !n.Visible,
		Active:   n == w.Scene.ActiveCamera,
		Position: n.Transform.Position,
		Rotation: n.Transform.Rotation,
		Scale:    n.Transform.Scale,
	}
	if n.Mesh != nil {
		md := &meshDef{
			Vertices: make([][3]float64, len(n.Mesh.Vertices)),
			Faces:    n.Mesh.Faces,
			Edges:    n.Mesh.Edges,
		}
		for i, v := range n.Mesh.Vertices {
			md.Vertices[i] = v
		}
		def.Mesh = md
	}
	if n.Camera != nil {
		cam := *n.Camera
		def.Camera = &cam
	}
	for _, c := range n.Children() {
		def.Children = append(def.Children, w.objectDef(c))
	}
	return def
}
