// Package desktop is the windowed shell: a raylib window that feeds input
// to an editor session, shows its software-rendered frame and draws the
// toolbar, outliner and status bar around it.
package desktop

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"
	"unsafe"

	"meshedit/internal/editor"
	"meshedit/internal/logging"
	"meshedit/internal/prefs"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	toolbarHeight = 36
	outlinerWidth = 180
	statusHeight  = 22

	statusLifetime = 3.0 // seconds
)

type App struct {
	Session  *editor.Session
	Settings prefs.Settings

	// AfterFrame runs on the frame goroutine after every Step.
	AfterFrame func(now time.Time)

	texture   rl.Texture2D
	texW      int
	texH      int
	lastMouse mgl64.Vec2

	status   string
	statusAt float64

	outlinerScroll int32
}

func New(sess *editor.Session, s prefs.Settings) *App {
	a := &App{Session: sess, Settings: s}
	sess.Controller.OnStatus.AddListener(a.setStatus)
	return a
}

func (a *App) setStatus(msg string) {
	a.status = msg
	a.statusAt = rl.GetTime()
}

// viewport returns the window area the scene is drawn into.
func (a *App) viewport() rect {
	w := float64(rl.GetScreenWidth())
	h := float64(rl.GetScreenHeight())
	return viewportFor(w, h)
}

func viewportFor(w, h float64) rect {
	return rect{
		X: outlinerWidth,
		Y: toolbarHeight,
		W: max(1, w-outlinerWidth),
		H: max(1, h-toolbarHeight-statusHeight),
	}
}

// Run opens the window and drives the session until the window closes or
// ctx is done.
func (a *App) Run(ctx context.Context) error {
	win := a.Settings.Window
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi)
	rl.InitWindow(int32(win.Width), int32(win.Height), win.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(win.FPS))
	// Escape cancels the gizmo instead of closing the window.
	rl.SetExitKey(rl.KeyNull)
	initStyle()

	if err := a.syncViewport(); err != nil {
		return err
	}
	defer func() {
		if a.texture.ID > 0 {
			rl.UnloadTexture(a.texture)
		}
	}()
	logging.Logger().Info("window opened", "width", win.Width, "height", win.Height)

	for !rl.WindowShouldClose() && ctx.Err() == nil {
		if rl.IsWindowResized() {
			if err := a.syncViewport(); err != nil {
				logging.Logger().Warn("resize failed", "err", err)
			}
		}

		in := pollInput()
		events := translate(in, a.lastMouse, a.viewport())
		a.lastMouse = in.Mouse

		if err := a.Session.Step(events, float64(rl.GetFrameTime())); err != nil {
			logging.Logger().Warn("render failed", "err", err)
		}
		if a.AfterFrame != nil {
			a.AfterFrame(time.Now())
		}
		a.upload()

		rl.BeginDrawing()
		rl.ClearBackground(colorBgDark)
		vp := a.viewport()
		rl.DrawTexture(a.texture, int32(vp.X), int32(vp.Y), rl.White)
		a.drawToolbar()
		a.drawOutliner()
		a.drawStatusBar()
		rl.EndDrawing()
	}
	logging.Logger().Info("window closed")
	return nil
}

// syncViewport resizes the session frame and the GPU texture to the
// current viewport.
func (a *App) syncViewport() error {
	vp := a.viewport()
	w, h := int(vp.W), int(vp.H)
	if err := a.Session.Resize(w, h); err != nil {
		return fmt.Errorf("resize viewport: %w", err)
	}
	if a.texture.ID > 0 && a.texW == w && a.texH == h {
		return nil
	}
	if a.texture.ID > 0 {
		rl.UnloadTexture(a.texture)
	}
	img := rl.GenImageColor(w, h, rl.Black)
	a.texture = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	a.texW, a.texH = w, h
	return nil
}

// upload copies the last rendered frame into the texture.
func (a *App) upload() {
	frame := toRGBA(a.Session.Image())
	b := frame.Bounds()
	if b.Dx() != a.texW || b.Dy() != a.texH || len(frame.Pix) == 0 {
		return
	}
	pixels := unsafe.Slice((*color.RGBA)(unsafe.Pointer(unsafe.SliceData(frame.Pix))), len(frame.Pix)/4)
	rl.UpdateTexture(a.texture, pixels)
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == 4*rgba.Rect.Dx() {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

func (a *App) drawStatusBar() {
	w := int32(rl.GetScreenWidth())
	y := int32(rl.GetScreenHeight()) - statusHeight
	rl.DrawRectangle(0, y, w, statusHeight, colorBgPanel)
	rl.DrawRectangle(0, y, w, 1, colorBorder)

	msg := a.status
	if msg == "" || rl.GetTime()-a.statusAt > statusLifetime {
		msg = "Ready"
	}
	rl.DrawText(msg, 10, y+5, 14, colorTextSecondary)

	c := a.Session.Controller
	info := fmt.Sprintf("%s mode | %d selected | %s", c.Mode, len(a.Session.World.Scene.Selected()), c.State())
	rl.DrawText(info, w-rl.MeasureText(info, 14)-10, y+5, 14, colorTextMuted)
}
