//go:build !tinygo && cgo

package gl46

import (
	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/soypat/shadertoy/gx"
)

// VertexArray continues soypat/glgl's NewVAO/AddAttribute pairing,
// backing rendercontext.Context's shared screen quad.
type VertexArray struct {
	handle gx.ResourceHandle
}

func (v *VertexArray) ID() uint32  { return v.handle.ID() }
func (v *VertexArray) Valid() bool { return v.handle.Valid() }

func (v *VertexArray) Bind()   { gl.BindVertexArray(v.handle.ID()) }
func (v *VertexArray) Unbind() { gl.BindVertexArray(0) }

func (v *VertexArray) Delete() {
	id := v.handle.ID()
	gl.DeleteVertexArrays(1, &id)
}

// AddAttribute wires a vertex buffer's data into attribute location loc,
// continuing soypat/glgl's AddAttribute but addressed by already-resolved
// location instead of an attribute name, since the built-in vertex
// sources fix their attribute locations with layout qualifiers.
func (v *VertexArray) AddAttribute(vbo gx.Buffer, loc uint32, packing int32, glType uint32, stride, offset int32, normalize bool) {
	vbo.BindAs(gl.ARRAY_BUFFER)
	gl.EnableVertexAttribArray(loc)
	gl.VertexAttribPointerWithOffset(loc, packing, glType, normalize, stride, uintptr(offset))
}
