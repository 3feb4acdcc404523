//go:build !tinygo && cgo

package gl46

import (
	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/soypat/shadertoy/gx"
)

// Renderbuffer backs the depth attachment ToyBuffer.Allocate creates for
// the first output spec's size (spec §4.4 step 2).
type Renderbuffer struct {
	handle gx.ResourceHandle
}

func (r *Renderbuffer) ID() uint32  { return r.handle.ID() }
func (r *Renderbuffer) Valid() bool { return r.handle.Valid() }

func (r *Renderbuffer) Storage(internal gx.InternalFormat, width, height int32) {
	gl.BindRenderbuffer(gl.RENDERBUFFER, r.handle.ID())
	gl.RenderbufferStorage(gl.RENDERBUFFER, uint32(internal), width, height)
}

func (r *Renderbuffer) Delete() {
	id := r.handle.ID()
	gl.DeleteRenderbuffers(1, &id)
}
