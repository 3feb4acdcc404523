//go:build !tinygo && cgo

package gl46

import (
	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/soypat/shadertoy/gx"
)

// Framebuffer continues the attachment/draw-buffers dance spec §4.4 step
// 3 requires: attach io.target_texture(i) to COLOR_ATTACHMENT0+i and set
// glDrawBuffers with GL_NONE for any unassigned slot.
type Framebuffer struct {
	handle gx.ResourceHandle
}

func (f *Framebuffer) ID() uint32  { return f.handle.ID() }
func (f *Framebuffer) Valid() bool { return f.handle.Valid() }

func (f *Framebuffer) Bind(target gx.FramebufferTarget) {
	switch target {
	case gx.FramebufferDraw:
		gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, f.handle.ID())
	case gx.FramebufferRead:
		gl.BindFramebuffer(gl.READ_FRAMEBUFFER, f.handle.ID())
	default:
		gl.BindFramebuffer(gl.FRAMEBUFFER, f.handle.ID())
	}
}

func (f *Framebuffer) AttachColor(index int, tex gx.Texture) {
	t := tex.(*Texture)
	gl.FramebufferTexture2D(gl.DRAW_FRAMEBUFFER, gl.COLOR_ATTACHMENT0+uint32(index), uint32(t.target), t.handle.ID(), 0)
}

func (f *Framebuffer) AttachDepthStencil(rb gx.Renderbuffer) {
	r := rb.(*Renderbuffer)
	gl.FramebufferRenderbuffer(gl.DRAW_FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, gl.RENDERBUFFER, r.handle.ID())
}

func (f *Framebuffer) SetDrawBuffers(active []int, count int) {
	bufs := make([]uint32, count)
	for i := range bufs {
		bufs[i] = gl.NONE
	}
	for _, idx := range active {
		if idx >= 0 && idx < count {
			bufs[idx] = gl.COLOR_ATTACHMENT0 + uint32(idx)
		}
	}
	if len(bufs) == 0 {
		gl.DrawBuffer(gl.NONE)
		return
	}
	gl.DrawBuffers(int32(len(bufs)), &bufs[0])
}

func (f *Framebuffer) CheckComplete() error {
	status := gl.CheckFramebufferStatus(gl.DRAW_FRAMEBUFFER)
	if status != gl.FRAMEBUFFER_COMPLETE {
		return gx.NewConfigError("framebuffer incomplete: 0x%x", status)
	}
	return nil
}

func (f *Framebuffer) Delete() {
	id := f.handle.ID()
	gl.DeleteFramebuffers(1, &id)
}
