package buffer

import (
	"github.com/soypat/shadertoy/gx"
	"github.com/soypat/shadertoy/program"
	"github.com/soypat/shadertoy/rendercontext"
)

// applyFrameState sets the caller-advanced standard uniforms of spec
// §6 — iTime, iFrame, iFrameRate, iMouse, iDate, iSampleRate — from
// state onto prog, skipping any uniform the linked program doesn't
// declare (continuing the iResolution/iTimeDelta lookup pattern
// already used by ToyBuffer.Render). iResolution and iTimeDelta stay
// buffer-local since they depend on this buffer's own output size and
// timer query, not on shared frame state.
func applyFrameState(iface *program.Interface, prog gx.Program, state rendercontext.FrameState) {
	setFloat(iface, prog, "iTime", float32(state.Time.Seconds()))
	setInt(iface, prog, "iFrame", int32(state.Frame))
	setFloat(iface, prog, "iFrameRate", state.FrameRate)
	setFloat(iface, prog, "iSampleRate", state.SampleRate)
	if res, ok := iface.Uniform("iMouse"); ok {
		if loc, err := prog.UniformLocation(res.Name); err == nil && loc.Valid() {
			loc.SetFloat(state.Mouse[0], state.Mouse[1], state.Mouse[2], state.Mouse[3])
		}
	}
	if res, ok := iface.Uniform("iDate"); ok {
		if loc, err := prog.UniformLocation(res.Name); err == nil && loc.Valid() {
			loc.SetFloat(state.Date[0], state.Date[1], state.Date[2], state.Date[3])
		}
	}
}

func setFloat(iface *program.Interface, prog gx.Program, name string, v float32) {
	res, ok := iface.Uniform(name)
	if !ok {
		return
	}
	if loc, err := prog.UniformLocation(res.Name); err == nil && loc.Valid() {
		loc.SetFloat(v)
	}
}

func setInt(iface *program.Interface, prog gx.Program, name string, v int32) {
	res, ok := iface.Uniform(name)
	if !ok {
		return
	}
	if loc, err := prog.UniformLocation(res.Name); err == nil && loc.Valid() {
		loc.SetInt(v)
	}
}
