//go:build !tinygo && cgo

package gl46

import (
	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/soypat/shadertoy/gx"
)

// Buffer is a generic GL buffer object, continuing soypat/glgl's
// VertexBuffer/IndexBuffer/ShaderStorageBuffer under one handle — the
// distinct bind targets (ARRAY_BUFFER, ELEMENT_ARRAY_BUFFER,
// SHADER_STORAGE_BUFFER) are selected by the caller via BindAs and
// Data. Buffers are allocated by rendercontext.Context.ScreenQuad and
// buffer.NewIndexedGeometry.
type Buffer struct {
	handle gx.ResourceHandle
}

func (b *Buffer) ID() uint32  { return b.handle.ID() }
func (b *Buffer) Valid() bool { return b.handle.Valid() }

// BindAs binds the buffer to the given GL target (e.g. gl.ARRAY_BUFFER).
func (b *Buffer) BindAs(target uint32) {
	gl.BindBuffer(target, b.handle.ID())
}

// Data uploads data to the buffer previously bound via BindAs.
func (b *Buffer) Data(target uint32, size int, ptr []byte, usage uint32) {
	var p *byte
	if len(ptr) > 0 {
		p = &ptr[0]
	}
	gl.BufferData(target, size, gl.Ptr(p), usage)
}

func (b *Buffer) Delete() {
	id := b.handle.ID()
	gl.DeleteBuffers(1, &id)
}
