package desktop

import (
	"meshedit/internal/editor"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
)

var keyBindings = []struct {
	raylib int32
	key    editor.Key
}{
	{rl.KeyOne, editor.Key1},
	{rl.KeyTwo, editor.Key2},
	{rl.KeyThree, editor.Key3},
	{rl.KeyFour, editor.Key4},
	{rl.KeyB, editor.KeyB},
	{rl.KeyD, editor.KeyD},
	{rl.KeyG, editor.KeyG},
	{rl.KeyO, editor.KeyO},
	{rl.KeyR, editor.KeyR},
	{rl.KeyS, editor.KeyS},
	{rl.KeyV, editor.KeyV},
	{rl.KeyW, editor.KeyW},
	{rl.KeyY, editor.KeyY},
	{rl.KeyZ, editor.KeyZ},
	{rl.KeyF1, editor.KeyF1},
	{rl.KeyF2, editor.KeyF2},
	{rl.KeyF3, editor.KeyF3},
	{rl.KeyF4, editor.KeyF4},
	{rl.KeyHome, editor.KeyHome},
	{rl.KeyDelete, editor.KeyDelete},
	{rl.KeyBackspace, editor.KeyDelete},
	{rl.KeyEscape, editor.KeyEscape},
}

var mouseButtons = [...]struct {
	raylib rl.MouseButton
	button editor.Button
}{
	{rl.MouseLeftButton, editor.ButtonLeft},
	{rl.MouseMiddleButton, editor.ButtonMiddle},
	{rl.MouseRightButton, editor.ButtonRight},
}

// rect is an axis-aligned screen area in window pixels.
type rect struct {
	X, Y, W, H float64
}

func (r rect) contains(p mgl64.Vec2) bool {
	return p.X() >= r.X && p.X() < r.X+r.W && p.Y() >= r.Y && p.Y() < r.Y+r.H
}

// frameInput is one frame of raw window input.
type frameInput struct {
	Mouse    mgl64.Vec2
	Pressed  [len(mouseButtons)]bool
	Released [len(mouseButtons)]bool
	Wheel    float64
	Keys     []editor.Key
	Mods     editor.Mods
}

func pollInput() frameInput {
	var in frameInput
	m := rl.GetMousePosition()
	in.Mouse = mgl64.Vec2{float64(m.X), float64(m.Y)}
	for i, b := range mouseButtons {
		in.Pressed[i] = rl.IsMouseButtonPressed(b.raylib)
		in.Released[i] = rl.IsMouseButtonReleased(b.raylib)
	}
	in.Wheel = float64(rl.GetMouseWheelMove())

	if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
		in.Mods |= editor.ModShift
	}
	if rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) || rl.IsKeyDown(rl.KeyLeftSuper) {
		in.Mods |= editor.ModCtrl
	}
	if rl.IsKeyDown(rl.KeyLeftAlt) || rl.IsKeyDown(rl.KeyRightAlt) {
		in.Mods |= editor.ModAlt
	}
	for _, kb := range keyBindings {
		if rl.IsKeyPressed(kb.raylib) {
			in.Keys = append(in.Keys, kb.key)
		}
	}
	return in
}

// translate turns raw input into editor events in viewport coordinates.
// Presses and wheel steps count only inside the viewport; releases and
// motion are always forwarded so drags that leave it still end cleanly.
func translate(in frameInput, last mgl64.Vec2, viewport rect) []editor.Event {
	var events []editor.Event
	origin := mgl64.Vec2{viewport.X, viewport.Y}
	pos := in.Mouse.Sub(origin)
	inside := viewport.contains(in.Mouse)

	if in.Mouse != last {
		events = append(events, editor.Move(pos.X(), pos.Y()))
	}
	for i, b := range mouseButtons {
		if in.Pressed[i] && inside {
			events = append(events, editor.Press(b.button, pos.X(), pos.Y(), in.Mods))
		}
		if in.Released[i] {
			events = append(events, editor.Release(b.button, pos.X(), pos.Y()))
		}
	}
	if in.Wheel != 0 && inside {
		events = append(events, editor.Scroll(in.Wheel))
	}
	for _, k := range in.Keys {
		events = append(events, editor.KeyPress(k, in.Mods))
	}
	return events
}
