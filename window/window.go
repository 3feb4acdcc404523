//go:build !tinygo && cgo

// Package window adapts soypat/glgl's InitWithCurrentWindow33 into a
// thin helper that opens a GLFW window, makes its GL context current,
// and returns a ready-to-use gx/gl46 backend alongside it — the one
// piece of window/event-loop ownership spec.md §1's Non-goals leave in
// scope (SPEC_FULL.md: "no window/event-loop ownership beyond the
// window helper package").
package window

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"golang.org/x/exp/constraints"

	"github.com/soypat/shadertoy/gx"
	"github.com/soypat/shadertoy/gx/gl46"
)

// Config mirrors glgl.WindowConfig, continuing its field set and
// zero-value-means-default conventions.
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

const (
	ProfileAny    int = glfw.OpenGLAnyProfile
	ProfileCore   int = glfw.OpenGLCoreProfile
	ProfileCompat int = glfw.OpenGLCompatProfile
)

// Window wraps the underlying glfw.Window, keeping the event-loop
// surface (ShouldClose/SwapBuffers/GetKey/...) available to callers
// without this package re-exporting each method by hand.
type Window struct {
	*glfw.Window
}

// Open creates a GLFW window per cfg, makes its context current,
// initializes the gl bindings, and returns a gx.Backend bound to that
// context plus a terminate func that destroys the window and tears
// down GLFW. Version defaults to 4.6 core profile, matching the
// backend this module ships (gx/gl46), continuing
// glgl.InitWithCurrentWindow33's defaulting behavior.
func Open(cfg Config) (*Window, gx.Backend, func(), error) {
	if err := glfw.Init(); err != nil {
		return nil, nil, nil, fmt.Errorf("window: glfw init: %w", err)
	}
	if cfg.DebugLog != nil {
		glfw.SetErrorCallback(func(code glfw.ErrorCode, desc string) {
			cfg.DebugLog.LogAttrs(context.Background(), slog.LevelError, desc, slog.Int("glfwErrorCode", int(code)))
		})
	}

	glfw.WindowHint(glfw.Resizable, b2i(!cfg.NotResizable))
	major, minor := zdefault(cfg.Version[0], 4), zdefault(cfg.Version[1], 6)
	glfw.WindowHint(glfw.ContextVersionMajor, major)
	glfw.WindowHint(glfw.ContextVersionMinor, minor)
	glfw.WindowHint(glfw.OpenGLProfile, zdefault(cfg.OpenGLProfile, glfw.OpenGLCoreProfile))
	glfw.WindowHint(glfw.OpenGLForwardCompatible, b2i(cfg.ForwardCompat))
	if cfg.HideWindow {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	glfwWindow, err := glfw.CreateWindow(zdefault(cfg.Width, 800), zdefault(cfg.Height, 600), cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, nil, nil, fmt.Errorf("window: create window: %w", err)
	}
	glfwWindow.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, nil, nil, fmt.Errorf("window: gl init: %w", err)
	}

	win := &Window{Window: glfwWindow}
	backend := gl46.New()
	backend.Err() // drain any pending error from context creation.
	terminate := func() {
		glfwWindow.Destroy()
		glfw.Terminate()
	}
	return win, backend, terminate, nil
}

// ComputeSupported reports whether a context of the given GL version
// is new enough to run compute shaders (core since GL 4.3), used to
// fill rendercontext.Config.ComputeSupported after Open.
func ComputeSupported(version [2]int) bool {
	major, minor := zdefault(version[0], 4), zdefault(version[1], 6)
	return major > 4 || (major == 4 && minor >= 3)
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// zdefault returns Default if got is the zero value, continuing
// glgl.go's zdefault helper.
func zdefault[T constraints.Integer](got, Default T) T {
	if got == 0 {
		return Default
	}
	return got
}
