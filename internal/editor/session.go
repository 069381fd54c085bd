package editor

import (
	"image"

	"meshedit/internal/logging"
	"meshedit/internal/prefs"
	"meshedit/internal/render"
	"meshedit/internal/world"

	"github.com/gogpu/gg"
)

// Session wires one world to one viewport: a view, a renderer, a
// controller and the frame they draw into.
type Session struct {
	World      *world.World
	View       *render.ViewState
	Renderer   *render.Renderer
	Controller *Controller

	frame *gg.Context
}

// NewSession builds a session sized and configured from s. A missing label
// font only disables compass labels.
func NewSession(w *world.World, s prefs.Settings) *Session {
	view := render.NewViewState(s.Window.Width, s.Window.Height)
	ApplyRenderSettings(view, s.Render)

	r := render.New(view)
	r.GridHalfExtent = s.Render.GridHalfExtent
	r.GridSpacing = s.Render.GridSpacing
	if face, err := render.LoadLabelFace(render.LabelFontSize); err != nil {
		logging.Logger().Warn("compass labels disabled", "err", err)
	} else {
		r.SetFont(face)
	}

	ctrl := NewController(w, r)
	ctrl.SelectionRadius = s.Editor.SelectionRadius
	ctrl.GizmoSensitivity = s.Editor.GizmoSensitivity
	if s.Editor.ScenePath != "" {
		ctrl.ScenePath = s.Editor.ScenePath
	}

	return &Session{
		World:      w,
		View:       view,
		Renderer:   r,
		Controller: ctrl,
		frame:      render.NewFrame(s.Window.Width, s.Window.Height),
	}
}

// ApplyRenderSettings copies projection and display settings onto v.
func ApplyRenderSettings(v *render.ViewState, r prefs.Render) {
	if r.Scale > 0 {
		v.Scale = r.Scale
	}
	if r.FocalLength > 0 {
		v.FocalLength = r.FocalLength
	}
	if r.CameraOffset > 0 {
		v.CameraOffset = r.CameraOffset
	}
	v.Wireframe = r.Wireframe
	v.BackfaceCulling = r.BackfaceCulling
	v.ShowGrid = r.ShowGrid
	v.ShowCompass = r.ShowCompass
	v.ShowVertices = r.ShowVertices
}

// Resize follows a viewport size change. The next Step re-centres the view.
func (s *Session) Resize(width, height int) error {
	return s.frame.Resize(width, height)
}

// Step runs one frame: every event in arrival order, then the scene
// update, then the render pass.
func (s *Session) Step(events []Event, dt float64) error {
	for _, ev := range events {
		s.Controller.Handle(ev)
	}
	s.World.Update(dt)
	return s.Renderer.Render(s.frame, s.World.Scene, s.Controller.Selection)
}

// Image returns the last rendered frame.
func (s *Session) Image() image.Image {
	return s.frame.Image()
}

// PNG encodes the last rendered frame.
func (s *Session) PNG() ([]byte, error) {
	return render.EncodePNG(s.frame)
}
