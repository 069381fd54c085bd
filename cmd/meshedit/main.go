// Command meshedit opens the mesh editor window, or with --mobile serves a
// read-only web viewer of the scene instead.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meshedit/internal/desktop"
	"meshedit/internal/editor"
	"meshedit/internal/logging"
	"meshedit/internal/prefs"
	"meshedit/internal/viewer"
	"meshedit/internal/world"

	"github.com/spf13/pflag"
)

type options struct {
	mobile   bool
	serve    bool
	host     string
	port     int
	config   string
	scene    string
	logLevel string

	hostSet bool
	portSet bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := pflag.NewFlagSet("meshedit", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&o.mobile, "mobile", false, "Serve the read-only web viewer instead of opening a window.")
	fs.BoolVar(&o.serve, "serve", false, "Also serve the web viewer while the window is open.")
	fs.StringVar(&o.host, "host", "", "Viewer listen host (default from config, then "+viewer.EnvHost+").")
	fs.IntVar(&o.port, "port", 0, "Viewer listen port (default from config, then "+viewer.EnvPort+").")
	fs.StringVar(&o.config, "config", prefs.DefaultPath, "Settings file.")
	fs.StringVar(&o.scene, "scene", "", "Scene file to open; also the Ctrl+S target.")
	fs.StringVar(&o.logLevel, "log-level", "info", "Log level: debug, info, warn or error.")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	o.hostSet = fs.Changed("host")
	o.portSet = fs.Changed("port")
	return o, nil
}

// viewerSettings layers config, environment and flags, later wins.
func viewerSettings(o options, base prefs.Viewer) (prefs.Viewer, error) {
	v, err := viewer.ApplyEnv(base)
	if o.hostSet {
		v.Host = o.host
	}
	if o.portSet {
		v.Port = o.port
	}
	return v, err
}

func newWorld(o options, s *prefs.Settings) *world.World {
	w := world.New(s.Editor.HistoryLimit)
	if o.scene == "" {
		w.Initialize()
		return w
	}
	s.Editor.ScenePath = o.scene
	if err := w.LoadScene(o.scene); err != nil {
		logging.Logger().Error("could not open scene, starting with the default one", "path", o.scene, "err", err)
		w.Initialize()
	}
	return w
}

func run(args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: logging.ParseLevel(o.logLevel),
	})))
	log := logging.Logger()

	settings, err := prefs.Load(o.config)
	if err != nil {
		log.Warn("using default settings", "err", err)
	}
	vs, err := viewerSettings(o, settings.Viewer)
	if err != nil {
		log.Warn("ignoring viewer environment", "err", err)
	}

	w := newWorld(o, &settings)
	sess := editor.NewSession(w, settings)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if o.mobile || viewer.MobileRequested() {
		if !viewer.Enabled {
			return viewer.ErrDisabled
		}
		viewer.PrintBanner(stdout, vs, viewer.LocalIP())
		return viewer.RunHeadless(ctx, vs.Addr(), sess, settings.Window.FPS)
	}

	app := desktop.New(sess, settings)
	served := make(chan struct{})
	if o.serve && viewer.Enabled {
		srv := viewer.NewServer(w.Scene.Name)
		pub := viewer.NewPublisher(srv, sess)
		app.AfterFrame = func(now time.Time) {
			if err := pub.Sync(now); err != nil {
				log.Warn("publish failed", "err", err)
			}
		}
		go func() {
			defer close(served)
			if err := srv.Serve(ctx, vs.Addr()); err != nil {
				log.Error("viewer stopped", "err", err)
			}
		}()
		viewer.PrintBanner(stdout, vs, viewer.LocalIP())
	} else {
		if o.serve {
			log.Warn("--serve ignored", "err", viewer.ErrDisabled)
		}
		close(served)
	}

	err = app.Run(ctx)
	stop()
	<-served
	return err
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "meshedit:", err)
		os.Exit(1)
	}
}
