//go:build !noviewer

// Package viewer serves a read-only view of the scene over HTTP: an HTML
// page, the JSON export, a websocket feed of changes and a PNG snapshot of
// the last rendered frame.
package viewer

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"image"
	"image/png"
	"net/http"
	"strconv"
	"sync"
	"time"

	"meshedit/internal/logging"

	"github.com/anthonynsimon/bild/transform"
	"github.com/gorilla/websocket"
)

// Enabled reports whether this binary carries the viewer.
const Enabled = true

const (
	ShutdownTimeout = 5 * time.Second
	writeTimeout    = 2 * time.Second
	minThumbWidth   = 16
)

//go:embed static/index.html
var staticFS embed.FS

var indexTmpl = template.Must(template.ParseFS(staticFS, "static/index.html"))

// Server holds the last published snapshot and the connected websocket
// clients. Publish is called from the frame goroutine; handlers run on the
// HTTP server's goroutines and only read the snapshot.
type Server struct {
	SceneName string
	Now       func() time.Time

	mu    sync.RWMutex
	doc   []byte
	frame image.Image
	png   []byte

	clientsMu sync.Mutex
	clients   map[*websocket.Conn]bool
	upgrader  websocket.Upgrader
}

func NewServer(sceneName string) *Server {
	return &Server{
		SceneName: sceneName,
		Now:       time.Now,
		clients:   make(map[*websocket.Conn]bool),
	}
}

// Publish replaces the snapshot. doc is the JSON export; frame may be nil
// to keep the previous image. When push is set, doc is sent to every
// websocket client.
func (s *Server) Publish(doc []byte, frame image.Image, push bool) error {
	var encoded []byte
	if frame != nil {
		var buf bytes.Buffer
		if err := png.Encode(&buf, frame); err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
		encoded = buf.Bytes()
	}

	s.mu.Lock()
	if doc != nil {
		s.doc = doc
	}
	if frame != nil {
		s.frame, s.png = frame, encoded
	}
	s.mu.Unlock()

	if push && doc != nil {
		s.broadcast(doc)
	}
	return nil
}

func (s *Server) snapshot() (doc []byte, frame image.Image, encoded []byte) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc, s.frame, s.png
}

func (s *Server) broadcast(msg []byte) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for conn := range s.clients {
		if err := s.send(conn, msg); err != nil {
			logging.Logger().Debug("websocket write failed", "remote", conn.RemoteAddr(), "err", err)
			conn.Close()
			delete(s.clients, conn)
		}
	}
}

// send must be called with clientsMu held; a connection allows only one
// concurrent writer.
func (s *Server) send(conn *websocket.Conn, msg []byte) error {
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteMessage(websocket.TextMessage, msg)
}

// Clients returns the number of connected websocket clients.
func (s *Server) Clients() int {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	return len(s.clients)
}

func (s *Server) closeClients() {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for conn := range s.clients {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeTimeout))
		conn.Close()
		delete(s.clients, conn)
	}
}

// Handler returns the viewer's routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/scene", s.handleScene)
	mux.HandleFunc("GET /snapshot.png", s.handleSnapshot)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := struct {
		SceneName string
		Now       string
	}{
		SceneName: s.SceneName,
		Now:       s.Now().UTC().Format("2006-01-02 15:04:05Z"),
	}
	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, data); err != nil {
		logging.Logger().Error("render index", "err", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	doc, _, _ := s.snapshot()
	if doc == nil {
		http.Error(w, "scene not published yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(doc)
}

// handleSnapshot serves the last frame. ?w= scales it down to that width
// keeping the aspect ratio; widths at or above the frame's are ignored.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	_, frame, encoded := s.snapshot()
	if frame == nil {
		http.Error(w, "no frame rendered yet", http.StatusServiceUnavailable)
		return
	}

	if raw := r.URL.Query().Get("w"); raw != "" {
		width, err := strconv.Atoi(raw)
		if err != nil || width < minThumbWidth {
			http.Error(w, "w must be an integer >= "+strconv.Itoa(minThumbWidth), http.StatusBadRequest)
			return
		}
		b := frame.Bounds()
		if width < b.Dx() {
			height := max(1, b.Dy()*width/b.Dx())
			thumb := transform.Resize(frame, width, height, transform.Linear)
			var buf bytes.Buffer
			if err := png.Encode(&buf, thumb); err != nil {
				http.Error(w, "encode error", http.StatusInternalServerError)
				return
			}
			encoded = buf.Bytes()
		}
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(encoded)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Logger().Warn("websocket upgrade failed", "err", err)
		return
	}

	s.clientsMu.Lock()
	s.clients[conn] = true
	if doc, _, _ := s.snapshot(); doc != nil {
		if err := s.send(conn, doc); err != nil {
			delete(s.clients, conn)
			s.clientsMu.Unlock()
			conn.Close()
			return
		}
	}
	s.clientsMu.Unlock()
	logging.Logger().Info("viewer client connected", "remote", conn.RemoteAddr())

	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, conn)
		s.clientsMu.Unlock()
		conn.Close()
		logging.Logger().Info("viewer client disconnected", "remote", conn.RemoteAddr())
	}()

	// Clients never send anything meaningful; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Serve listens on addr until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logging.Logger().Info("viewer listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("viewer: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	s.closeClients()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("viewer shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("viewer: %w", err)
	}
	logging.Logger().Info("viewer stopped")
	return nil
}
