//go:build !tinygo && cgo

package gl46

import (
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/soypat/shadertoy/gx"
)

// Texture continues soypat/glgl's NewTextureFromImage/SetImage2D, split
// out of the free-function style into the gx.Texture trait.
type Texture struct {
	handle gx.ResourceHandle
	target gx.TextureTarget
}

func (t *Texture) ID() uint32             { return t.handle.ID() }
func (t *Texture) Valid() bool            { return t.handle.Valid() }
func (t *Texture) Target() gx.TextureTarget { return t.target }

func (t *Texture) Image(level int32, internal gx.InternalFormat, width, height int32, data []byte) error {
	uf := gx.UploadFormatFor(internal)
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = unsafe.Pointer(&data[0])
	}
	gl.BindTexture(uint32(t.target), t.handle.ID())
	gl.TexImage2D(uint32(t.target), level, int32(internal), width, height, 0, uf.Format, uf.Type, ptr)
	return nil
}

func (t *Texture) SetFilter(minFilter, magFilter int32) {
	gl.BindTexture(uint32(t.target), t.handle.ID())
	gl.TexParameteri(uint32(t.target), gl.TEXTURE_MIN_FILTER, minFilter)
	gl.TexParameteri(uint32(t.target), gl.TEXTURE_MAG_FILTER, magFilter)
}

func (t *Texture) SetWrap(wrapS, wrapT int32) {
	gl.BindTexture(uint32(t.target), t.handle.ID())
	gl.TexParameteri(uint32(t.target), gl.TEXTURE_WRAP_S, wrapS)
	gl.TexParameteri(uint32(t.target), gl.TEXTURE_WRAP_T, wrapT)
}

func (t *Texture) Delete() {
	id := t.handle.ID()
	gl.DeleteTextures(1, &id)
}
