package world

import (
	"time"

	"meshedit/internal/engine"
)

// Export is the read-only scene document served to the web viewer.
type Export struct {
	GeneratedAt string        `json:"generated_at"`
	Meshes      []ExportMesh  `json:"meshes"`
	Camera      *ExportCamera `json:"camera"`
}

type ExportMesh struct {
	Name      string          `json:"name"`
	Vertices  [][3]float64    `json:"vertices"`
	Faces     [][]int         `json:"faces"`
	Transform ExportTransform `json:"transform"`
}

type ExportTransform struct {
	Position [3]float64 `json:"position"`
	Rotation [3]float64 `json:"rotation"`
	Scale    [3]float64 `json:"scale"`
}

type ExportCamera struct {
	Name      string `json:"name"`
	Transform struct {
		Position [3]float64 `json:"position"`
		Rotation [3]float64 `json:"rotation"`
	} `json:"transform"`
}

// Export snapshots the mesh-bearing children of the root and the active
// camera. The result shares no memory with the scene.
func (w *World) Export(now time.Time) Export {
	doc := Export{
		GeneratedAt: now.UTC().Format(time.RFC3339),
		Meshes:      []ExportMesh{},
	}
	for _, n := range w.Scene.Root.Children() {
		if !n.HasMesh() {
			continue
		}
		doc.Meshes = append(doc.Meshes, exportMesh(n))
	}
	if cam := w.Scene.ActiveCamera; cam != nil {
		ec := &ExportCamera{Name: cam.Name}
		ec.Transform.Position = cam.Transform.Position
		ec.Transform.Rotation = cam.Transform.Rotation
		doc.Camera = ec
	}
	return doc
}

func exportMesh(n *engine.Node) ExportMesh {
	m := n.Mesh
	em := ExportMesh{
		Name:     n.Name,
		Vertices: make([][3]float64, len(m.Vertices)),
		Faces:    make([][]int, len(m.Faces)),
		Transform: ExportTransform{
			Position: n.Transform.Position,
			Rotation: n.Transform.Rotation,
			Scale:    n.Transform.Scale,
		},
	}
	for i, v := range m.Vertices {
		em.Vertices[i] = v
	}
	for i, f := range m.Faces {
		em.Faces[i] = append([]int(nil), f...)
	}
	return em
}
