// Package prefs holds the persistent editor settings stored as TOML.
package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is where the CLI looks for settings when --config is unset.
const DefaultPath = "meshedit.toml"

type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	FPS    int    `toml:"fps"`
}

type Render struct {
	Scale           float64 `toml:"scale"`
	FocalLength     float64 `toml:"focal_length"`
	CameraOffset    float64 `toml:"camera_offset"`
	GridHalfExtent  int     `toml:"grid_half_extent"`
	GridSpacing     float64 `toml:"grid_spacing"`
	Wireframe       bool    `toml:"wireframe"`
	BackfaceCulling bool    `toml:"backface_culling"`
	ShowGrid        bool    `toml:"show_grid"`
	ShowCompass     bool    `toml:"show_compass"`
	ShowVertices    bool    `toml:"show_vertices"`
}

type Editor struct {
	HistoryLimit     int     `toml:"history_limit"`
	SelectionRadius  float64 `toml:"selection_radius"`
	GizmoSensitivity float64 `toml:"gizmo_sensitivity"`
	ScenePath        string  `toml:"scene_path"`
}

type Viewer struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// Settings is the full settings document.
type Settings struct {
	Window Window `toml:"window"`
	Render Render `toml:"render"`
	Editor Editor `toml:"editor"`
	Viewer Viewer `toml:"viewer"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Window: Window{
			Width:  800,
			Height: 600,
			Title:  "Mesh Editor",
			FPS:    60,
		},
		Render: Render{
			Scale:          30,
			FocalLength:    20,
			CameraOffset:   5,
			GridHalfExtent: 10,
			GridSpacing:    1,
			ShowGrid:       true,
			ShowCompass:    true,
			ShowVertices:   true,
		},
		Editor: Editor{
			HistoryLimit:     100,
			SelectionRadius:  10,
			GizmoSensitivity: 0.01,
			ScenePath:        "scene.json",
		},
		Viewer: Viewer{
			Host: "0.0.0.0",
			Port: 5000,
		},
	}
}

// Load reads settings from path on top of Default. Keys absent from the
// file keep their default value. A missing file is not an error.
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("read settings: %w", err)
	}
	if err := toml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("parse settings %s: %w", path, err)
	}
	return s, nil
}

// Save writes the settings to path via a temp file and rename.
func (s Settings) Save(path string) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".meshedit-*.toml")
	if err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// Addr returns the viewer listen address.
func (v Viewer) Addr() string {
	return net.JoinHostPort(v.Host, strconv.Itoa(v.Port))
}
