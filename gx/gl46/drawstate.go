//go:build !tinygo && cgo

package gl46

import (
	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/soypat/shadertoy/gx"
)

// DrawState applies a gx.DrawStateConfig by diffing it against the
// previously-applied config and issuing only the capability toggles
// that actually changed (TESTABLE PROPERTY 7). Capability state,
// clear-value state and the clear call itself are applied in that
// order — capabilities first so depth/stencil masks are in effect
// before the clear, values second so the clear reads the state just
// set, and glClear(bits) last, per SPEC_FULL's decision on Open
// Question 3.
type DrawState struct {
	prev    gx.DrawStateConfig
	hasPrev bool
}

func (d *DrawState) Apply(cfg gx.DrawStateConfig) {
	toggle := func(cap uint32, want, had bool, force bool) {
		if !force && want == had {
			return
		}
		if want {
			gl.Enable(cap)
		} else {
			gl.Disable(cap)
		}
	}
	force := !d.hasPrev
	p := d.prev

	toggle(gl.BLEND, cfg.Blend, p.Blend, force)
	toggle(gl.CULL_FACE, cfg.CullFace, p.CullFace, force)
	toggle(gl.DEPTH_TEST, cfg.DepthTest, p.DepthTest, force)
	toggle(gl.SCISSOR_TEST, cfg.ScissorTest, p.ScissorTest, force)
	toggle(gl.STENCIL_TEST, cfg.StencilTest, p.StencilTest, force)

	if force || cfg.DepthMask != p.DepthMask {
		gl.DepthMask(cfg.DepthMask)
	}
	if force || cfg.DepthFunc != p.DepthFunc {
		gl.DepthFunc(cfg.DepthFunc)
	}
	if force || cfg.Equation != p.Equation {
		gl.BlendEquationSeparate(cfg.Equation.RGB, cfg.Equation.Alpha)
	}
	if force || cfg.Func != p.Func {
		gl.BlendFuncSeparate(cfg.Func.SrcRGB, cfg.Func.DstRGB, cfg.Func.SrcAlpha, cfg.Func.DstAlpha)
	}
	if force || cfg.BlendColor != p.BlendColor {
		gl.BlendColor(cfg.BlendColor[0], cfg.BlendColor[1], cfg.BlendColor[2], cfg.BlendColor[3])
	}
	if cfg.PolygonModeFace != 0 && (force || cfg.PolygonMode != p.PolygonMode || cfg.PolygonModeFace != p.PolygonModeFace) {
		gl.PolygonMode(cfg.PolygonModeFace, cfg.PolygonMode)
	}
	if cfg.MemoryBarrierBits != 0 {
		gl.MemoryBarrier(cfg.MemoryBarrierBits)
	}

	if force || cfg.ClearColor != p.ClearColor {
		gl.ClearColor(cfg.ClearColor[0], cfg.ClearColor[1], cfg.ClearColor[2], cfg.ClearColor[3])
	}
	if force || cfg.ClearDepth != p.ClearDepth {
		gl.ClearDepth(cfg.ClearDepth)
	}
	if force || cfg.ClearStencil != p.ClearStencil {
		gl.ClearStencil(cfg.ClearStencil)
	}
	if cfg.ClearBits != 0 {
		gl.Clear(cfg.ClearBits)
	}

	d.prev = cfg
	d.hasPrev = true
}
