package editor

import "github.com/go-gl/mathgl/mgl64"

// EventType is the kind of input event delivered to the controller.
type EventType int

const (
	MouseDown EventType = iota
	MouseUp
	MouseMove
	Wheel
	KeyDown
)

type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

// Mods is a bit set of held modifier keys.
type Mods uint8

const (
	ModShift Mods = 1 << iota
	ModCtrl
	ModAlt
)

func (m Mods) Has(mod Mods) bool { return m&mod != 0 }

// Key is a platform-neutral key code. Shells translate their own codes.
type Key int

const (
	KeyNone Key = iota
	Key1
	Key2
	Key3
	Key4
	KeyB
	KeyD
	KeyG
	KeyO
	KeyR
	KeyS
	KeyV
	KeyW
	KeyY
	KeyZ
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyHome
	KeyDelete
	KeyEscape
)

// Event is one pointer or keyboard input. Pos is in viewport pixels.
type Event struct {
	Type   EventType
	Pos    mgl64.Vec2
	Button Button
	Key    Key
	Mods   Mods
	Wheel  float64
}

func Press(b Button, x, y float64, mods Mods) Event {
	return Event{Type: MouseDown, Button: b, Pos: mgl64.Vec2{x, y}, Mods: mods}
}

func Release(b Button, x, y float64) Event {
	return Event{Type: MouseUp, Button: b, Pos: mgl64.Vec2{x, y}}
}

func Move(x, y float64) Event {
	return Event{Type: MouseMove, Pos: mgl64.Vec2{x, y}}
}

func Scroll(amount float64) Event {
	return Event{Type: Wheel, Wheel: amount}
}

func KeyPress(k Key, mods Mods) Event {
	return Event{Type: KeyDown, Key: k, Mods: mods}
}
