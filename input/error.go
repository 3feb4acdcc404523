package input

import "github.com/soypat/shadertoy/gx"

// errorTextureSize is the side, in pixels, of the classic "missing
// texture" pattern: an 8x8-pixel magenta/black checkerboard of 2x2-pixel
// tiles, grounded on
// original_source/src/inputs/error_input.cpp's use of a fixed debug
// pattern instead of a solid color, so a missing input is visually
// obvious in a rendered frame.
const errorTextureSize = 8

// ErrorInput is the fallback texture substituted whenever another
// input is missing or fails to load (spec §7's "substitute the
// context's error texture"). rendercontext.Context owns exactly one
// of these and shares it across every member.
type ErrorInput struct {
	Base
}

// NewErrorInput builds and immediately loads the shared error texture.
func NewErrorInput(backend gx.Backend) (*ErrorInput, error) {
	in := &ErrorInput{}
	in.init(backend, in, nil)
	if err := in.Load(); err != nil {
		return nil, err
	}
	return in, nil
}

func (in *ErrorInput) loadInput(backend gx.Backend) (gx.Texture, int32, int32, error) {
	tex, err := backend.NewTexture(gx.Texture2D)
	if err != nil {
		return nil, 0, 0, err
	}
	pixels := make([]byte, errorTextureSize*errorTextureSize*4)
	for y := 0; y < errorTextureSize; y++ {
		for x := 0; x < errorTextureSize; x++ {
			i := (y*errorTextureSize + x) * 4
			if (x/2+y/2)%2 == 0 {
				pixels[i], pixels[i+1], pixels[i+2], pixels[i+3] = 255, 0, 255, 255
			} else {
				pixels[i], pixels[i+1], pixels[i+2], pixels[i+3] = 0, 0, 0, 255
			}
		}
	}
	if err := tex.Image(0, gx.RGBA8, errorTextureSize, errorTextureSize, pixels); err != nil {
		tex.Delete()
		return nil, 0, 0, err
	}
	tex.SetFilter(gx.Nearest, gx.Nearest)
	tex.SetWrap(gx.Repeat, gx.Repeat)
	return tex, errorTextureSize, errorTextureSize, nil
}

// Texture overrides Base.Texture: the error input never substitutes
// itself with anything, including on load failure — it is the
// substitution of last resort, so a nil here would be a programming
// error upstream.
func (in *ErrorInput) Texture() (gx.Texture, bool) {
	return in.tex, in.tex != nil
}
