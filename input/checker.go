package input

import "github.com/soypat/shadertoy/gx"

// CheckerInput procedurally generates an RGBA8 checkerboard pattern,
// grounded on original_source/src/inputs/checker_input.cpp's
// parametric (size, tile size, two colors) checker generator.
type CheckerInput struct {
	Base
	Width, Height int32
	TileSize      int32
	ColorA        [4]byte
	ColorB        [4]byte
}

// NewCheckerInput returns a checker input of the given pixel size and
// tile size, alternating colorA/colorB. A zero ColorA/ColorB defaults
// to white/gray.
func NewCheckerInput(backend gx.Backend, width, height, tileSize int32, colorA, colorB [4]byte) *CheckerInput {
	in := &CheckerInput{Width: width, Height: height, TileSize: tileSize, ColorA: colorA, ColorB: colorB}
	if in.TileSize <= 0 {
		in.TileSize = 8
	}
	if in.ColorA == ([4]byte{}) {
		in.ColorA = [4]byte{255, 255, 255, 255}
	}
	if in.ColorB == ([4]byte{}) {
		in.ColorB = [4]byte{128, 128, 128, 255}
	}
	in.init(backend, in, nil)
	return in
}

func (in *CheckerInput) loadInput(backend gx.Backend) (gx.Texture, int32, int32, error) {
	tex, err := backend.NewTexture(gx.Texture2D)
	if err != nil {
		return nil, 0, 0, err
	}
	pixels := make([]byte, in.Width*in.Height*4)
	for y := int32(0); y < in.Height; y++ {
		for x := int32(0); x < in.Width; x++ {
			i := (y*in.Width + x) * 4
			c := in.ColorA
			if ((x/in.TileSize)+(y/in.TileSize))%2 != 0 {
				c = in.ColorB
			}
			copy(pixels[i:i+4], c[:])
		}
	}
	if err := tex.Image(0, gx.RGBA8, in.Width, in.Height, pixels); err != nil {
		tex.Delete()
		return nil, 0, 0, err
	}
	tex.SetFilter(gx.Nearest, gx.Nearest)
	tex.SetWrap(gx.Repeat, gx.Repeat)
	return tex, in.Width, in.Height, nil
}
