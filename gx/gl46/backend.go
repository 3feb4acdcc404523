//go:build !tinygo && cgo

// Package gl46 implements gx.Backend over desktop OpenGL 4.6 using
// github.com/go-gl/gl/v4.6-core/gl, continuing soypat/glgl's glgl.go and
// shaders.go almost directly but reshaped from free functions into the
// gx.Backend trait so the rest of this module stays backend-agnostic
// (spec §9: map CRTP/inheritance-style GL wrappers to a trait-shaped
// abstraction with an explicit backend tag).
package gl46

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/soypat/shadertoy/gx"
)

// Backend is the gl46 implementation of gx.Backend. It carries no state
// of its own beyond what OpenGL itself tracks — matching the teacher's
// approach of free functions operating on the current context — but is
// given a receiver so it can satisfy gx.Backend.
type Backend struct{}

// New returns a Backend bound to the current OpenGL context. gl.Init
// must already have been called (e.g. via window.Open).
func New() *Backend { return &Backend{} }

func (b *Backend) NewProgram() (gx.Program, error) {
	rid := gl.CreateProgram()
	if rid == 0 {
		if err := b.Err(); err != nil {
			return nil, fmt.Errorf("got invalid program id: %w", err)
		}
		return nil, errors.New("silently got invalid program id; call runtime.LockOSThread from main")
	}
	return &Program{handle: gx.NewHandle(rid)}, nil
}

func (b *Backend) NewShader(stage gx.Stage) (gx.Shader, error) {
	glType, err := stageEnum(stage)
	if err != nil {
		return nil, err
	}
	id := gl.CreateShader(glType)
	if id == 0 {
		if err := b.Err(); err != nil {
			return nil, fmt.Errorf("got invalid shader id: %w", err)
		}
		return nil, errors.New("silently got invalid shader id 0")
	}
	return &Shader{handle: gx.NewHandle(id), stage: stage}, nil
}

func (b *Backend) NewTexture(target gx.TextureTarget) (gx.Texture, error) {
	var id uint32
	gl.GenTextures(1, &id)
	if id == 0 {
		return nil, errors.New("glGenTextures returned 0")
	}
	return &Texture{handle: gx.NewHandle(id), target: target}, b.Err()
}

func (b *Backend) NewSampler() (gx.Sampler, error) {
	var id uint32
	gl.GenSamplers(1, &id)
	return &Sampler{handle: gx.NewHandle(id)}, b.Err()
}

func (b *Backend) NewBuffer() (gx.Buffer, error) {
	var id uint32
	gl.GenBuffers(1, &id)
	return &Buffer{handle: gx.NewHandle(id)}, b.Err()
}

func (b *Backend) NewFramebuffer() (gx.Framebuffer, error) {
	var id uint32
	gl.GenFramebuffers(1, &id)
	return &Framebuffer{handle: gx.NewHandle(id)}, b.Err()
}

func (b *Backend) NewRenderbuffer() (gx.Renderbuffer, error) {
	var id uint32
	gl.GenRenderbuffers(1, &id)
	return &Renderbuffer{handle: gx.NewHandle(id)}, b.Err()
}

func (b *Backend) NewVertexArray() (gx.VertexArray, error) {
	var id uint32
	gl.GenVertexArrays(1, &id)
	gl.BindVertexArray(id)
	return &VertexArray{handle: gx.NewHandle(id)}, b.Err()
}

func (b *Backend) NewQuery() (gx.Query, error) {
	var id uint32
	gl.GenQueries(1, &id)
	return &Query{handle: gx.NewHandle(id)}, b.Err()
}

func (b *Backend) NewDrawState() (gx.DrawState, error) {
	return &DrawState{}, nil
}

func (b *Backend) BindTexture(unit int, tex gx.Texture) {
	t := tex.(*Texture)
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(uint32(t.target), t.handle.ID())
}

func (b *Backend) BindImageTexture(imageUnit int, tex gx.Texture, level int32, layered bool, layer int32, access gx.AccessUsage, format gx.InternalFormat) {
	t := tex.(*Texture)
	gl.BindImageTexture(uint32(imageUnit), t.handle.ID(), level, layered, layer, uint32(access), uint32(format))
}

func (b *Backend) UnbindTextureUnits(start int, count int) {
	if count < 0 {
		count = maxTextureUnitsHint - start
	}
	for i := 0; i < count; i++ {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(start+i))
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}
}

func (b *Backend) ActiveTexture(unit int) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
}

func (b *Backend) UseProgram(p gx.Program) {
	if p == nil || !p.Valid() {
		gl.UseProgram(0)
		return
	}
	gl.UseProgram(p.ID())
}

func (b *Backend) BindDefaultFramebuffer(target gx.FramebufferTarget) {
	switch target {
	case gx.FramebufferDraw:
		gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	case gx.FramebufferRead:
		gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	default:
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	}
}

func (b *Backend) GetViewport() (x, y, w, h int32) {
	var v [4]int32
	gl.GetIntegerv(gl.VIEWPORT, &v[0])
	return v[0], v[1], v[2], v[3]
}

func (b *Backend) SetViewport(x, y, w, h int32) {
	gl.Viewport(x, y, w, h)
}

func (b *Backend) DrawElements(count int32) {
	gl.DrawElements(gl.TRIANGLES, count, gl.UNSIGNED_INT, nil)
}

func (b *Backend) DispatchCompute(nx, ny, nz uint32) {
	gl.DispatchCompute(nx, ny, nz)
	gl.MemoryBarrier(gl.ALL_BARRIER_BITS)
}

// Err drains the driver's error queue, matching glgl.Err's behavior: it
// returns nil immediately on GL_NO_ERROR and otherwise collects the
// queued error codes (at most 62) into a joined error.
func (b *Backend) Err() error {
	code := gl.GetError()
	if code == gl.NO_ERROR {
		return nil
	}
	var errs []error
	for {
		errs = append(errs, glError(code))
		if len(errs) > 61 {
			break
		}
		code = gl.GetError()
		if code == gl.NO_ERROR {
			break
		}
	}
	return errors.Join(errs...)
}

type glError uint32

func (e glError) Error() string {
	switch uint32(e) {
	case gl.INVALID_ENUM:
		return "invalid enum"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "invalid framebuffer operation"
	case gl.INVALID_INDEX:
		return "invalid index"
	case gl.INVALID_OPERATION:
		return "invalid operation"
	case gl.INVALID_VALUE:
		return "invalid value"
	default:
		return "glError(" + strconv.Itoa(int(e)) + ")"
	}
}

// maxTextureUnitsHint bounds UnbindTextureUnits' "to the end" case
// without an extra glGetIntegerv round trip on the hot path; callers
// needing the precise hardware limit should query
// GL_MAX_COMBINED_TEXTURE_IMAGE_UNITS themselves.
const maxTextureUnitsHint = 32

func stageEnum(stage gx.Stage) (uint32, error) {
	switch stage {
	case gx.StageVertex:
		return gl.VERTEX_SHADER, nil
	case gx.StageFragment:
		return gl.FRAGMENT_SHADER, nil
	case gx.StageCompute:
		return gl.COMPUTE_SHADER, nil
	default:
		return 0, fmt.Errorf("unknown shader stage %v", stage)
	}
}
