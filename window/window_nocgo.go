//go:build tinygo || !cgo

package window

import (
	"errors"
	"log/slog"

	"github.com/soypat/shadertoy/gx"
)

// Config mirrors the cgo build's Config so callers compile either way.
type Config struct {
	Title         string
	NotResizable  bool
	Version       [2]int
	OpenGLProfile int
	ForwardCompat bool
	Width, Height int
	HideWindow    bool
	DebugLog      *slog.Logger
}

// Window is an empty stand-in: no GLFW window exists without cgo.
type Window struct{}

var errNoCgo = errors.New("window: requires cgo")

// Open always fails without cgo.
func Open(cfg Config) (*Window, gx.Backend, func(), error) {
	return nil, nil, nil, errNoCgo
}

// ComputeSupported still reports the version check; it does not
// itself require a live context.
func ComputeSupported(version [2]int) bool {
	major, minor := version[0], version[1]
	if major == 0 {
		major = 4
	}
	if minor == 0 && major == 4 {
		minor = 6
	}
	return major > 4 || (major == 4 && minor >= 3)
}
