package desktop

import (
	"testing"

	"meshedit/internal/editor"
	"meshedit/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

var testViewport = viewportFor(800, 600)

func TestViewportLayout(t *testing.T) {
	assert.Equal(t, rect{X: outlinerWidth, Y: toolbarHeight, W: 620, H: 542}, testViewport)
	assert.Equal(t, rect{X: outlinerWidth, Y: toolbarHeight, W: 1, H: 1}, viewportFor(10, 10))
}

func TestTranslatePressInsideViewport(t *testing.T) {
	in := frameInput{Mouse: mgl64.Vec2{280, 136}, Mods: editor.ModShift}
	in.Pressed[0] = true

	events := translate(in, in.Mouse, testViewport)

	assert.Equal(t, []editor.Event{editor.Press(editor.ButtonLeft, 100, 100, editor.ModShift)}, events)
}

func TestTranslateIgnoresPressesOutside(t *testing.T) {
	in := frameInput{Mouse: mgl64.Vec2{50, 300}, Wheel: 1}
	in.Pressed[2] = true

	assert.Empty(t, translate(in, in.Mouse, testViewport), "outliner clicks and scrolls stay in the panel")
}

func TestTranslateForwardsReleaseAndMotionAnywhere(t *testing.T) {
	in := frameInput{Mouse: mgl64.Vec2{10, 10}}
	in.Released[1] = true

	events := translate(in, mgl64.Vec2{300, 300}, testViewport)

	assert.Equal(t, []editor.Event{
		editor.Move(10-outlinerWidth, 10-toolbarHeight),
		editor.Release(editor.ButtonMiddle, 10-outlinerWidth, 10-toolbarHeight),
	}, events)
}

func TestTranslateOrdersEvents(t *testing.T) {
	in := frameInput{
		Mouse: mgl64.Vec2{400, 300},
		Wheel: -2,
		Keys:  []editor.Key{editor.KeyZ, editor.KeyW},
		Mods:  editor.ModCtrl,
	}
	events := translate(in, mgl64.Vec2{399, 300}, testViewport)

	types := make([]editor.EventType, len(events))
	for i, ev := range events {
		types[i] = ev.Type
	}
	assert.Equal(t, []editor.EventType{editor.MouseMove, editor.Wheel, editor.KeyDown, editor.KeyDown}, types)
	assert.Equal(t, -2.0, events[1].Wheel)
	assert.Equal(t, editor.KeyPress(editor.KeyZ, editor.ModCtrl), events[2])
}

func TestKeyBindingsAreUnique(t *testing.T) {
	seen := map[int32]bool{}
	for _, kb := range keyBindings {
		assert.False(t, seen[kb.raylib], "raylib key %d bound twice", kb.raylib)
		seen[kb.raylib] = true
		assert.NotEqual(t, editor.KeyNone, kb.key)
	}
}

func TestOutlinerRows(t *testing.T) {
	scene := engine.NewScene("s")
	a := scene.AddObject(engine.NewNode("A"), nil)
	scene.AddObject(engine.NewNode("A1"), a)
	scene.AddObject(engine.NewNode("B"), nil)

	rows := outlinerRows(scene.Root)
	var got []string
	var depths []int
	for _, r := range rows {
		got = append(got, r.node.Name)
		depths = append(depths, r.depth)
	}
	assert.Equal(t, []string{"A", "A1", "B"}, got)
	assert.Equal(t, []int{0, 1, 0}, depths)
}

func TestClampScroll(t *testing.T) {
	assert.Equal(t, int32(0), clampScroll(-40, 50, 300))
	assert.Equal(t, int32(0), clampScroll(100, 3, 300), "short lists never scroll")
	assert.Equal(t, int32(50*outlinerItemHeight-300+30), clampScroll(5000, 50, 300))
	assert.Equal(t, int32(120), clampScroll(120, 50, 300))
}

func TestLightenSaturates(t *testing.T) {
	assert.Equal(t, rl.NewColor(30, 30, 40, 200), lighten(rl.NewColor(20, 20, 30, 200), 10))
	assert.Equal(t, rl.NewColor(255, 255, 255, 255), lighten(rl.NewColor(250, 200, 255, 255), 60))
}
