//go:build !tinygo && cgo

package gl46

import (
	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/soypat/shadertoy/gx"
)

// Sampler is an independent GL sampler object, used by input.Base
// to hold filter/wrap state separate from the texture it happens to be
// paired with in any given frame (spec §3).
type Sampler struct {
	handle gx.ResourceHandle
}

func (s *Sampler) ID() uint32  { return s.handle.ID() }
func (s *Sampler) Valid() bool { return s.handle.Valid() }

func (s *Sampler) Bind(unit int) {
	gl.BindSampler(uint32(unit), s.handle.ID())
}

func (s *Sampler) SetFilter(minFilter, magFilter int32) {
	gl.SamplerParameteri(s.handle.ID(), gl.TEXTURE_MIN_FILTER, minFilter)
	gl.SamplerParameteri(s.handle.ID(), gl.TEXTURE_MAG_FILTER, magFilter)
}

func (s *Sampler) SetWrap(wrapS, wrapT int32) {
	gl.SamplerParameteri(s.handle.ID(), gl.TEXTURE_WRAP_S, wrapS)
	gl.SamplerParameteri(s.handle.ID(), gl.TEXTURE_WRAP_T, wrapT)
}

func (s *Sampler) Delete() {
	id := s.handle.ID()
	gl.DeleteSamplers(1, &id)
}
