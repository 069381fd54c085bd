package viewer

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"

	"meshedit/internal/prefs"
)

const (
	EnvForceMobile    = "MESH_EDITOR_FORCE_MOBILE"
	EnvAndroidStorage = "ANDROID_STORAGE"
	EnvHost           = "MESH_EDITOR_MOBILE_HOST"
	EnvPort           = "MESH_EDITOR_MOBILE_PORT"
)

// ErrDisabled is returned by every entry point of a binary built with the
// noviewer tag.
var ErrDisabled = errors.New("the mobile viewer is not compiled into this binary; rebuild without -tags noviewer")

// MobileRequested reports whether the environment asks for the viewer
// instead of the desktop window.
func MobileRequested() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(EnvForceMobile))) {
	case "1", "true", "yes":
		return true
	}
	_, android := os.LookupEnv(EnvAndroidStorage)
	return android
}

// ApplyEnv overlays the host and port variables onto v.
func ApplyEnv(v prefs.Viewer) (prefs.Viewer, error) {
	if host, ok := os.LookupEnv(EnvHost); ok && host != "" {
		v.Host = host
	}
	if raw, ok := os.LookupEnv(EnvPort); ok && raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port < 0 || port > 65535 {
			return v, fmt.Errorf("%s: invalid port %q", EnvPort, raw)
		}
		v.Port = port
	}
	return v, nil
}

// LocalIP guesses the address other devices on the LAN can reach. A UDP
// dial sends no packets; it only asks the kernel for a route.
func LocalIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "localhost"
	}
	defer conn.Close()
	if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok {
		return addr.IP.String()
	}
	return "localhost"
}

// PrintBanner writes the startup notice shown when the viewer comes up.
func PrintBanner(w io.Writer, v prefs.Viewer, localIP string) {
	port := strconv.Itoa(v.Port)
	fmt.Fprintln(w, "Mobile viewer ready!")
	fmt.Fprintf(w, "  Local server: http://%s\n", net.JoinHostPort(v.Host, port))
	fmt.Fprintf(w, "  On your network: http://%s\n", net.JoinHostPort(localIP, port))
}
