//go:build !noviewer

package viewer

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"time"

	"meshedit/internal/editor"
	"meshedit/internal/logging"
	"meshedit/internal/render"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// SnapshotInterval bounds how often the PNG is refreshed when the scene
// itself has not changed (orbiting, panning, zooming).
const SnapshotInterval = time.Second

var colorWatermark = color.RGBA{200, 200, 208, 200}

// Publisher copies a session's state into a Server. It must only be used
// on the goroutine that steps the session.
type Publisher struct {
	srv  *Server
	sess *editor.Session
	face text.Face

	dirty    bool
	lastShot time.Time
}

// NewPublisher attaches to sess. Every history change marks the export
// stale; the first Sync always publishes.
func NewPublisher(srv *Server, sess *editor.Session) *Publisher {
	p := &Publisher{srv: srv, sess: sess, dirty: true}
	if face, err := render.LoadLabelFace(render.LabelFontSize); err == nil {
		p.face = face
	} else {
		logging.Logger().Warn("snapshot watermark disabled", "err", err)
	}
	sess.World.History.OnChange.AddListener(func() { p.dirty = true })
	return p
}

// Sync publishes after a Step. A stale export is re-sent to websocket
// clients together with a fresh frame; otherwise only the frame is
// refreshed, at most once per SnapshotInterval.
func (p *Publisher) Sync(now time.Time) error {
	if !p.dirty && now.Sub(p.lastShot) < SnapshotInterval {
		return nil
	}

	var doc []byte
	if p.dirty {
		var err error
		if doc, err = json.Marshal(p.sess.World.Export(now)); err != nil {
			return fmt.Errorf("marshal export: %w", err)
		}
	}

	frame := p.watermark(now)
	if err := p.srv.Publish(doc, frame, p.dirty); err != nil {
		return err
	}
	p.dirty = false
	p.lastShot = now
	return nil
}

// watermark copies the session frame and stamps the scene name and time in
// the bottom-left corner.
func (p *Publisher) watermark(now time.Time) image.Image {
	dc := gg.NewContextForImage(p.sess.Image())
	if p.face != nil {
		dc.SetFont(p.face)
		dc.SetColor(colorWatermark)
		label := fmt.Sprintf("%s  %s", p.srv.SceneName, now.UTC().Format("2006-01-02 15:04:05Z"))
		dc.DrawStringAnchored(label, 8, float64(dc.Height()-8), 0, 0)
	}
	return dc.Image()
}

// RunHeadless serves the viewer without a window: the session is stepped
// at fps with no input and published after every frame, until ctx is done.
func RunHeadless(ctx context.Context, addr string, sess *editor.Session, fps int) error {
	srv := NewServer(sess.World.Scene.Name)
	pub := NewPublisher(srv, sess)

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ctx, addr) }()

	if fps <= 0 {
		fps = 30
	}
	dt := time.Second / time.Duration(fps)
	ticker := time.NewTicker(dt)
	defer ticker.Stop()

	for {
		select {
		case err := <-errc:
			return err
		case now := <-ticker.C:
			if err := sess.Step(nil, dt.Seconds()); err != nil {
				logging.Logger().Warn("render failed", "err", err)
			}
			if err := pub.Sync(now); err != nil {
				logging.Logger().Warn("publish failed", "err", err)
			}
		}
	}
}
