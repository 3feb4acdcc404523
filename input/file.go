package input

import (
	"fmt"
	"image"
	stddraw "image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"

	"github.com/soypat/shadertoy/gx"
	"github.com/soypat/shadertoy/ioresource"
)

// Decoder decodes an image from r. The default is image.Decode (PNG
// and JPEG registered via blank import); callers needing EXR/TIFF/etc.
// inject their own, keeping the concrete format decoders an external
// collaborator per spec §1's non-goals.
type Decoder func(r *os.File) (image.Image, string, error)

func defaultDecoder(r *os.File) (image.Image, string, error) { return image.Decode(r) }

// FileInput decodes an image file lazily on first use and uploads it
// as an RGBA8 texture, continuing original_source/src/inputs/file_input.cpp
// and image_input.cpp's decode-then-upload split. The vertical flip
// OpenGL's texture origin requires is a plain row copy, done with the
// standard library's image/draw; when TargetSize is set the decoded
// image is resampled to it with golang.org/x/image/draw's Scale,
// the way itsManjeet-exp's resize.go downsamples a decoded image
// before upload, so a channel input can be constrained to a fixed
// texture size independent of its source file's resolution.
type FileInput struct {
	Base
	Path    string
	Decoder Decoder
	// VFlip flips the decoded image vertically before upload, matching
	// OpenGL's bottom-left texture origin against top-left image
	// decoders. Defaults to true.
	VFlip bool
	// TargetSize, if set, resamples the decoded image to this size
	// before upload instead of uploading it at its native resolution.
	TargetSize ioresource.SizeRef
	// Scaler selects the resampling kernel used when TargetSize is
	// set. Defaults to draw.BiLinear.
	Scaler draw.Scaler
}

// NewFileInput returns a file input reading path lazily.
func NewFileInput(backend gx.Backend, path string) *FileInput {
	in := &FileInput{Path: path, Decoder: defaultDecoder, VFlip: true}
	in.init(backend, in, nil)
	return in
}

func (in *FileInput) loadInput(backend gx.Backend) (gx.Texture, int32, int32, error) {
	f, err := os.Open(in.Path)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("file input %s: %w", in.Path, err)
	}
	defer f.Close()

	decode := in.Decoder
	if decode == nil {
		decode = defaultDecoder
	}
	img, _, err := decode(f)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("file input %s: decode: %w", in.Path, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	if in.VFlip {
		for y := 0; y < h; y++ {
			srcY := bounds.Min.Y + (h - 1 - y)
			stddraw.Draw(rgba, image.Rect(0, y, w, y+1), img, image.Pt(bounds.Min.X, srcY), stddraw.Src)
		}
	} else {
		stddraw.Draw(rgba, rgba.Bounds(), img, bounds.Min, stddraw.Src)
	}

	pix := rgba.Pix
	outW, outH := w, h
	if in.TargetSize != nil {
		tw, th := in.TargetSize.Resolve()
		if tw != int32(w) || th != int32(h) {
			scaler := in.Scaler
			if scaler == nil {
				scaler = draw.BiLinear
			}
			scaled := image.NewRGBA(image.Rect(0, 0, int(tw), int(th)))
			scaler.Scale(scaled, scaled.Bounds(), rgba, rgba.Bounds(), draw.Src, nil)
			pix = scaled.Pix
			outW, outH = int(tw), int(th)
		}
	}

	tex, err := backend.NewTexture(gx.Texture2D)
	if err != nil {
		return nil, 0, 0, err
	}
	if err := tex.Image(0, gx.RGBA8, int32(outW), int32(outH), pix); err != nil {
		tex.Delete()
		return nil, 0, 0, err
	}
	tex.SetFilter(gx.Linear, gx.Linear)
	tex.SetWrap(gx.ClampToEdge, gx.ClampToEdge)
	return tex, int32(outW), int32(outH), nil
}
