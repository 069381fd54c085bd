//go:build noviewer

// Package viewer is compiled out of this binary. Every entry point reports
// ErrDisabled.
package viewer

import (
	"context"
	"time"

	"meshedit/internal/editor"
)

const Enabled = false

type Server struct{ SceneName string }

func NewServer(sceneName string) *Server { return &Server{SceneName: sceneName} }

func (*Server) Serve(context.Context, string) error { return ErrDisabled }

type Publisher struct{}

func NewPublisher(*Server, *editor.Session) *Publisher { return &Publisher{} }

func (*Publisher) Sync(time.Time) error { return nil }

func RunHeadless(context.Context, string, *editor.Session, int) error { return ErrDisabled }
