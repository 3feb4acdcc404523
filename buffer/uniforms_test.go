package buffer

import (
	"testing"
	"time"

	"github.com/soypat/shadertoy/gx"
	"github.com/soypat/shadertoy/program"
	"github.com/soypat/shadertoy/rendercontext"
)

type recordingLocation struct {
	name  string
	floats []float32
	ints   []int32
}

func (l *recordingLocation) Valid() bool { return true }
func (l *recordingLocation) SetFloat(v ...float32) { l.floats = append([]float32(nil), v...) }
func (l *recordingLocation) SetInt(v ...int32)     { l.ints = append([]int32(nil), v...) }
func (l *recordingLocation) SetUint(v ...uint32)   {}

type recordingProgram struct {
	fakeProgram
	locations map[string]*recordingLocation
}

func (p *recordingProgram) UniformLocation(name string) (gx.UniformLocation, error) {
	loc, ok := p.locations[name]
	if !ok {
		return &fakeUniformLocation{valid: false}, nil
	}
	return loc, nil
}

func TestApplyFrameState(t *testing.T) {
	resources := []gx.ProgramResource{
		{Name: "iTime"}, {Name: "iFrame"}, {Name: "iFrameRate"},
		{Name: "iSampleRate"}, {Name: "iMouse"}, {Name: "iDate"},
		{Name: "iUnused"},
	}
	prog := &recordingProgram{
		fakeProgram: fakeProgram{uniforms: resources},
		locations: map[string]*recordingLocation{
			"iTime":       {},
			"iFrame":      {},
			"iFrameRate":  {},
			"iSampleRate": {},
			"iMouse":      {},
			"iDate":       {},
		},
	}
	iface, err := program.BuildInterface(prog)
	if err != nil {
		t.Fatalf("BuildInterface: %v", err)
	}

	state := rendercontext.FrameState{
		Time:       2500 * time.Millisecond,
		Frame:      42,
		FrameRate:  60,
		SampleRate: 44100,
		Mouse:      [4]float32{1, 2, 3, 4},
		Date:       [4]float32{2026, 6, 31, 100},
	}
	applyFrameState(iface, prog, state)

	if got := prog.locations["iTime"].floats; len(got) != 1 || got[0] != 2.5 {
		t.Errorf("iTime = %v, want [2.5]", got)
	}
	if got := prog.locations["iFrame"].ints; len(got) != 1 || got[0] != 42 {
		t.Errorf("iFrame = %v, want [42]", got)
	}
	if got := prog.locations["iFrameRate"].floats; len(got) != 1 || got[0] != 60 {
		t.Errorf("iFrameRate = %v, want [60]", got)
	}
	if got := prog.locations["iSampleRate"].floats; len(got) != 1 || got[0] != 44100 {
		t.Errorf("iSampleRate = %v, want [44100]", got)
	}
	if got := prog.locations["iMouse"].floats; !equalFloats(got, []float32{1, 2, 3, 4}) {
		t.Errorf("iMouse = %v, want [1 2 3 4]", got)
	}
	if got := prog.locations["iDate"].floats; !equalFloats(got, []float32{2026, 6, 31, 100}) {
		t.Errorf("iDate = %v, want [2026 6 31 100]", got)
	}
}

func equalFloats(a, b []float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
