package engine

// Camera holds lens settings for a camera node. The software renderer
// projects through its own view state, so these are carried for scene
// files and export only.
type Camera struct {
	FOV    float64 `json:"fov"` // vertical, degrees
	Near   float64 `json:"near"`
	Far    float64 `json:"far"`
	Aspect float64 `json:"aspect"`
}

func NewCamera() *Camera {
	return &Camera{
		FOV:    60,
		Near:   0.1,
		Far:    1000,
		Aspect: 4.0 / 3.0,
	}
}
