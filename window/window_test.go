package window_test

import (
	"testing"

	"github.com/soypat/shadertoy/window"
)

// TestOpen continues v4.6-core/glgl/glgl_test.go's TestWindow: it
// exercises a real GLFW window when a display is available and skips
// otherwise, since CI and headless dev containers commonly lack one.
func TestOpen(t *testing.T) {
	win, backend, terminate, err := window.Open(window.Config{
		Title:         "shadertoy test window",
		Version:       [2]int{4, 6},
		OpenGLProfile: window.ProfileCore,
		ForwardCompat: true,
		Width:         1,
		Height:        1,
		HideWindow:    true,
	})
	if err != nil {
		t.Log(err)
		t.Skip("no GL context available in this environment")
	}
	defer terminate()
	if backend == nil {
		t.Fatal("expected a non-nil backend from a successful Open")
	}
	_ = win
}

func TestComputeSupported(t *testing.T) {
	cases := []struct {
		version [2]int
		want    bool
	}{
		{[2]int{0, 0}, true},  // zero value defaults to 4.6
		{[2]int{3, 3}, false}, // compute shaders need 4.3+
		{[2]int{4, 2}, false},
		{[2]int{4, 3}, true},
		{[2]int{4, 6}, true},
		{[2]int{5, 0}, true},
	}
	for _, c := range cases {
		if got := window.ComputeSupported(c.version); got != c.want {
			t.Errorf("ComputeSupported(%v) = %v, want %v", c.version, got, c.want)
		}
	}
}
