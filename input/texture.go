package input

import "github.com/soypat/shadertoy/gx"

// TextureInput wraps a caller-supplied, already-allocated texture:
// the simplest channel input, for when the caller manages the GPU
// resource lifetime itself (spec §3's "procedural" family — the
// degenerate case of binding an existing texture directly).
type TextureInput struct {
	Base
	tex           gx.Texture
	width, height int32
}

// NewTextureInput wraps tex, reporting (width, height) for
// iChannelResolution.
func NewTextureInput(backend gx.Backend, tex gx.Texture, width, height int32) *TextureInput {
	in := &TextureInput{tex: tex, width: width, height: height}
	in.init(backend, in, nil)
	return in
}

func (in *TextureInput) loadInput(backend gx.Backend) (gx.Texture, int32, int32, error) {
	return in.tex, in.width, in.height, nil
}
