package input

import (
	"math/rand"

	"github.com/soypat/shadertoy/gx"
	"github.com/soypat/shadertoy/ioresource"
)

// NoiseInput procedurally generates a single-channel (R8) random
// texture. No swizzle is set, so sampling it returns the random value
// in the red channel only, continuing
// original_source/src/inputs/noise_input.cpp's load_input.
type NoiseInput struct {
	Base
	Size ioresource.SizeRef
	Rand *rand.Rand
}

// NewNoiseInput returns a noise input of the given resolved size. If r
// is nil, a package-default source is used.
func NewNoiseInput(backend gx.Backend, size ioresource.SizeRef, r *rand.Rand) *NoiseInput {
	in := &NoiseInput{Size: size, Rand: r}
	in.init(backend, in, nil)
	return in
}

func (in *NoiseInput) loadInput(backend gx.Backend) (gx.Texture, int32, int32, error) {
	w, h := in.Size.Resolve()
	tex, err := backend.NewTexture(gx.Texture2D)
	if err != nil {
		return nil, 0, 0, err
	}
	pixels := make([]byte, w*h)
	r := in.Rand
	if r == nil {
		for i := range pixels {
			pixels[i] = byte(rand.Intn(256))
		}
	} else {
		for i := range pixels {
			pixels[i] = byte(r.Intn(256))
		}
	}
	if err := tex.Image(0, gx.R8, w, h, pixels); err != nil {
		tex.Delete()
		return nil, 0, 0, err
	}
	tex.SetFilter(gx.Linear, gx.Linear)
	tex.SetWrap(gx.Repeat, gx.Repeat)
	return tex, w, h, nil
}
