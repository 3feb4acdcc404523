package rendercontext

import (
	"testing"

	"github.com/soypat/shadertoy/gx"
)

// The fakes below implement just enough of gx.Backend to drive
// Context's lazily-constructed resources without a live GL context,
// continuing buffer_test.go's fake-backend pattern trimmed to the
// resource set ScreenQuad/ScreenProgram/ErrorInput/BufferTemplate
// actually touch.

type fakeHandle struct{ id uint32 }

func (h fakeHandle) ID() uint32  { return h.id }
func (h fakeHandle) Valid() bool { return h.id != 0 }

type fakeTexture struct {
	fakeHandle
	target gx.TextureTarget
}

func (t *fakeTexture) Target() gx.TextureTarget { return t.target }
func (t *fakeTexture) Image(level int32, internal gx.InternalFormat, w, h int32, data []byte) error {
	return nil
}
func (t *fakeTexture) SetFilter(min, mag int32) {}
func (t *fakeTexture) SetWrap(s, tt int32)      {}
func (t *fakeTexture) Delete()                  {}

type fakeSampler struct{ fakeHandle }

func (s *fakeSampler) Bind(unit int)                        {}
func (s *fakeSampler) SetFilter(minFilter, magFilter int32) {}
func (s *fakeSampler) SetWrap(wrapS, wrapT int32)           {}
func (s *fakeSampler) Delete()                              {}

type fakeBuffer struct{ fakeHandle }

func (b *fakeBuffer) BindAs(target uint32)                                    {}
func (b *fakeBuffer) Data(target uint32, size int, data []byte, usage uint32) {}
func (b *fakeBuffer) Delete()                                                 {}

type fakeVertexArray struct{ fakeHandle }

func (v *fakeVertexArray) Bind()   {}
func (v *fakeVertexArray) Unbind() {}
func (v *fakeVertexArray) AddAttribute(vbo gx.Buffer, loc uint32, packing int32, glType uint32, stride, offset int32, normalize bool) {
}
func (v *fakeVertexArray) Delete() {}

type fakeUniformLocation struct{ valid bool }

func (u *fakeUniformLocation) Valid() bool           { return u.valid }
func (u *fakeUniformLocation) SetFloat(v ...float32) {}
func (u *fakeUniformLocation) SetInt(v ...int32)     {}
func (u *fakeUniformLocation) SetUint(v ...uint32)   {}

type fakeShader struct {
	fakeHandle
	stage gx.Stage
}

func (s *fakeShader) Stage() gx.Stage                 { return s.stage }
func (s *fakeShader) Compile(sources ...string) error { return nil }
func (s *fakeShader) Delete()                         {}

type fakeProgram struct{ fakeHandle }

func (p *fakeProgram) Bind()                    {}
func (p *fakeProgram) Unbind()                  {}
func (p *fakeProgram) Delete()                  {}
func (p *fakeProgram) AttachShader(s gx.Shader) {}
func (p *fakeProgram) DetachShader(s gx.Shader) {}
func (p *fakeProgram) Link() error              { return nil }
func (p *fakeProgram) Validate() error          { return nil }
func (p *fakeProgram) UniformLocation(name string) (gx.UniformLocation, error) {
	return &fakeUniformLocation{valid: true}, nil
}
func (p *fakeProgram) AttribLocation(name string) (int32, error)  { return 0, nil }
func (p *fakeProgram) Outputs() ([]gx.ProgramResource, error)     { return nil, nil }
func (p *fakeProgram) Uniforms() ([]gx.ProgramResource, error)    { return nil, nil }
func (p *fakeProgram) Inputs() ([]gx.ProgramResource, error)      { return nil, nil }

type fakeBackend struct{ nextID uint32 }

func (b *fakeBackend) newID() uint32 { b.nextID++; return b.nextID }

func (b *fakeBackend) NewProgram() (gx.Program, error) {
	return &fakeProgram{fakeHandle: fakeHandle{b.newID()}}, nil
}
func (b *fakeBackend) NewShader(stage gx.Stage) (gx.Shader, error) {
	return &fakeShader{fakeHandle: fakeHandle{b.newID()}, stage: stage}, nil
}
func (b *fakeBackend) NewTexture(target gx.TextureTarget) (gx.Texture, error) {
	return &fakeTexture{fakeHandle: fakeHandle{b.newID()}, target: target}, nil
}
func (b *fakeBackend) NewSampler() (gx.Sampler, error) {
	return &fakeSampler{fakeHandle{b.newID()}}, nil
}
func (b *fakeBackend) NewBuffer() (gx.Buffer, error)            { return &fakeBuffer{fakeHandle{b.newID()}}, nil }
func (b *fakeBackend) NewFramebuffer() (gx.Framebuffer, error)  { return nil, nil }
func (b *fakeBackend) NewRenderbuffer() (gx.Renderbuffer, error) { return nil, nil }
func (b *fakeBackend) NewVertexArray() (gx.VertexArray, error) {
	return &fakeVertexArray{fakeHandle{b.newID()}}, nil
}
func (b *fakeBackend) NewQuery() (gx.Query, error)          { return nil, nil }
func (b *fakeBackend) NewDrawState() (gx.DrawState, error) { return nil, nil }

func (b *fakeBackend) BindTexture(unit int, tex gx.Texture) {}
func (b *fakeBackend) BindImageTexture(imageUnit int, tex gx.Texture, level int32, layered bool, layer int32, access gx.AccessUsage, format gx.InternalFormat) {
}
func (b *fakeBackend) UnbindTextureUnits(start, count int)                {}
func (b *fakeBackend) ActiveTexture(unit int)                             {}
func (b *fakeBackend) UseProgram(p gx.Program)                            {}
func (b *fakeBackend) BindDefaultFramebuffer(target gx.FramebufferTarget) {}
func (b *fakeBackend) GetViewport() (x, y, w, h int32)                    { return 0, 0, 0, 0 }
func (b *fakeBackend) SetViewport(x, y, w, h int32)                       {}
func (b *fakeBackend) DrawElements(count int32)                           {}
func (b *fakeBackend) DispatchCompute(nx, ny, nz uint32)                  {}
func (b *fakeBackend) Err() error                                        { return nil }

func TestContextLazyConstruction(t *testing.T) {
	ctx := New(&fakeBackend{}, Config{ComputeSupported: true})

	quad, err := ctx.ScreenQuad()
	if err != nil {
		t.Fatalf("ScreenQuad: %v", err)
	}
	quad2, err := ctx.ScreenQuad()
	if err != nil {
		t.Fatalf("second ScreenQuad: %v", err)
	}
	if quad != quad2 {
		t.Error("expected ScreenQuad to return the same cached Geometry on a second call")
	}

	prog, loc, err := ctx.ScreenProgram()
	if err != nil {
		t.Fatalf("ScreenProgram: %v", err)
	}
	prog2, _, err := ctx.ScreenProgram()
	if err != nil {
		t.Fatalf("second ScreenProgram: %v", err)
	}
	if prog != prog2 {
		t.Error("expected ScreenProgram to return the same cached Program on a second call")
	}
	if loc == nil {
		t.Error("expected a non-nil screenTexture uniform location")
	}

	tex, err := ctx.ErrorTexture()
	if err != nil {
		t.Fatalf("ErrorTexture: %v", err)
	}
	if tex == nil {
		t.Error("expected a non-nil error texture")
	}

	tpl, err := ctx.BufferTemplate()
	if err != nil {
		t.Fatalf("BufferTemplate: %v", err)
	}
	tpl2, err := ctx.BufferTemplate()
	if err != nil {
		t.Fatalf("second BufferTemplate: %v", err)
	}
	if tpl != tpl2 {
		t.Error("expected BufferTemplate to return the same cached Template on a second call")
	}

	if !ctx.ComputeSupported() {
		t.Error("expected ComputeSupported to reflect Config.ComputeSupported")
	}
	if ctx.Backend() == nil {
		t.Error("expected Backend to return the bound backend")
	}
}

func TestContextBufferTemplateOmitsComputeWhenUnsupported(t *testing.T) {
	ctx := New(&fakeBackend{}, Config{ComputeSupported: false})
	tpl, err := ctx.BufferTemplate()
	if err != nil {
		t.Fatalf("BufferTemplate: %v", err)
	}
	if _, ok := tpl.StageTemplate(gx.StageCompute); ok {
		t.Error("expected no compute stage when compute is unsupported")
	}
	if ctx.ComputeSupported() {
		t.Error("expected ComputeSupported to be false")
	}
}
