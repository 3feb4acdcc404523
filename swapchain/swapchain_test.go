package swapchain

import (
	"testing"

	"github.com/soypat/shadertoy/buffer"
	"github.com/soypat/shadertoy/gx"
	"github.com/soypat/shadertoy/ioresource"
	"github.com/soypat/shadertoy/rendercontext"
)

// The fakes below cover the subset of gx.Backend that Chain/Member
// touch through buffer.ToyBuffer/ComputeBuffer and the context's own
// screen program/quad, following buffer_test.go's fakeBackend pattern.

type fakeHandle struct{ id uint32 }

func (h fakeHandle) ID() uint32  { return h.id }
func (h fakeHandle) Valid() bool { return h.id != 0 }

type fakeTexture struct {
	fakeHandle
	target gx.TextureTarget
	w, h   int32
}

func (t *fakeTexture) Target() gx.TextureTarget { return t.target }
func (t *fakeTexture) Image(level int32, internal gx.InternalFormat, w, h int32, data []byte) error {
	t.w, t.h = w, h
	return nil
}
func (t *fakeTexture) SetFilter(min, mag int32) {}
func (t *fakeTexture) SetWrap(s, tt int32)      {}
func (t *fakeTexture) Delete()                  {}

type fakeSampler struct{ fakeHandle }

func (s *fakeSampler) Bind(unit int)            {}
func (s *fakeSampler) SetFilter(min, mag int32) {}
func (s *fakeSampler) SetWrap(wS, wT int32)     {}
func (s *fakeSampler) Delete()                  {}

type fakeBuffer struct{ fakeHandle }

func (b *fakeBuffer) BindAs(target uint32)                                   {}
func (b *fakeBuffer) Data(target uint32, size int, data []byte, usage uint32) {}
func (b *fakeBuffer) Delete()                                                {}

type fakeFramebuffer struct{ fakeHandle }

func (f *fakeFramebuffer) Bind(target gx.FramebufferTarget)      {}
func (f *fakeFramebuffer) AttachColor(index int, tex gx.Texture) {}
func (f *fakeFramebuffer) AttachDepthStencil(rb gx.Renderbuffer) {}
func (f *fakeFramebuffer) SetDrawBuffers(active []int, count int) {}
func (f *fakeFramebuffer) CheckComplete() error { return nil }
func (f *fakeFramebuffer) Delete()              {}

type fakeRenderbuffer struct {
	fakeHandle
	w, h int32
}

func (r *fakeRenderbuffer) Storage(internal gx.InternalFormat, w, h int32) { r.w, r.h = w, h }
func (r *fakeRenderbuffer) Delete()                                       {}

type fakeVertexArray struct{ fakeHandle }

func (v *fakeVertexArray) Bind()   {}
func (v *fakeVertexArray) Unbind() {}
func (v *fakeVertexArray) AddAttribute(vbo gx.Buffer, loc uint32, packing int32, glType uint32, stride, offset int32, normalize bool) {
}
func (v *fakeVertexArray) Delete() {}

type fakeQuery struct{ fakeHandle }

func (q *fakeQuery) Begin()                    {}
func (q *fakeQuery) End()                      {}
func (q *fakeQuery) ResultAvailable() bool     { return false }
func (q *fakeQuery) ResultNanoseconds() uint64 { return 16_000_000 }
func (q *fakeQuery) Delete()                   {}

type fakeDrawState struct{ applied int }

func (d *fakeDrawState) Apply(cfg gx.DrawStateConfig) { d.applied++ }

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

type fakeProgram struct {
	fakeHandle
	uniforms, inputs, outputs []gx.ProgramResource
}

func (p *fakeProgram) Bind()                    {}
func (p *fakeProgram) Unbind()                  {}
func (p *fakeProgram) Delete()                  {}
func (p *fakeProgram) AttachShader(s gx.Shader) {}
func (p *fakeProgram) DetachShader(s gx.Shader) {}
func (p *fakeProgram) Link() error              { return nil }
func (p *fakeProgram) Validate() error          { return nil }
func (p *fakeProgram) UniformLocation(name string) (gx.UniformLocation, error) {
	for _, u := range p.uniforms {
		if u.Name == name {
			return &fakeUniformLocation{valid: true}, nil
		}
	}
	return &fakeUniformLocation{valid: false}, nil
}
func (p *fakeProgram) AttribLocation(name string) (int32, error) { return 0, nil }
func (p *fakeProgram) Outputs() ([]gx.ProgramResource, error)    { return p.outputs, nil }
func (p *fakeProgram) Uniforms() ([]gx.ProgramResource, error)   { return p.uniforms, nil }
func (p *fakeProgram) Inputs() ([]gx.ProgramResource, error)     { return p.inputs, nil }

// fakeBackend stands in for a live GL driver, reporting a fixed
// reflected uniform/output set for every linked program — enough for
// GraphicsMember/ScreenMember/ComputeMember to drive a full
// Init/Allocate/Render cycle through Chain.
type fakeBackend struct {
	nextID   uint32
	uniforms []gx.ProgramResource
	outputs  []gx.ProgramResource
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		uniforms: []gx.ProgramResource{
			{Name: "iResolution"},
			{Name: "iTimeDelta"},
			{Name: "iChannel0"},
		},
		outputs: []gx.ProgramResource{
			{Name: "fragColor", Location: 0},
		},
	}
}

func (b *fakeBackend) newID() uint32 { b.nextID++; return b.nextID }

func (b *fakeBackend) NewProgram() (gx.Program, error) {
	return &fakeProgram{fakeHandle: fakeHandle{b.newID()}, uniforms: b.uniforms, outputs: b.outputs}, nil
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
func (b *fakeBackend) NewBuffer() (gx.Buffer, error) {
	return &fakeBuffer{fakeHandle{b.newID()}}, nil
}
func (b *fakeBackend) NewFramebuffer() (gx.Framebuffer, error) {
	return &fakeFramebuffer{fakeHandle: fakeHandle{b.newID()}}, nil
}
func (b *fakeBackend) NewRenderbuffer() (gx.Renderbuffer, error) {
	return &fakeRenderbuffer{fakeHandle: fakeHandle{b.newID()}}, nil
}
func (b *fakeBackend) NewVertexArray() (gx.VertexArray, error) {
	return &fakeVertexArray{fakeHandle{b.newID()}}, nil
}
func (b *fakeBackend) NewQuery() (gx.Query, error) {
	return &fakeQuery{fakeHandle: fakeHandle{b.newID()}}, nil
}
func (b *fakeBackend) NewDrawState() (gx.DrawState, error) { return &fakeDrawState{}, nil }

func (b *fakeBackend) BindTexture(unit int, tex gx.Texture) {}
func (b *fakeBackend) BindImageTexture(imageUnit int, tex gx.Texture, level int32, layered bool, layer int32, access gx.AccessUsage, format gx.InternalFormat) {
}
func (b *fakeBackend) UnbindTextureUnits(start, count int)               {}
func (b *fakeBackend) ActiveTexture(unit int)                            {}
func (b *fakeBackend) UseProgram(p gx.Program)                           {}
func (b *fakeBackend) BindDefaultFramebuffer(target gx.FramebufferTarget) {}
func (b *fakeBackend) GetViewport() (x, y, w, h int32)                   { return 0, 0, 0, 0 }
func (b *fakeBackend) SetViewport(x, y, w, h int32)                      {}
func (b *fakeBackend) DrawElements(count int32)                          {}
func (b *fakeBackend) DispatchCompute(nx, ny, nz uint32)                 {}
func (b *fakeBackend) Err() error                                        { return nil }

func newTestContext() (*rendercontext.Context, *fakeBackend) {
	backend := newFakeBackend()
	return rendercontext.New(backend, rendercontext.Config{ComputeSupported: true}), backend
}

func newTestGraphicsMember(t *testing.T, id string, ctx *rendercontext.Context, backend gx.Backend) *GraphicsMember {
	t.Helper()
	buf := buffer.NewToyBuffer(id, ctx, "void mainImage(out vec4 c, in vec2 f) { c = vec4(1.0); }", nil, nil)
	size := ioresource.FixedSize{Width: 16, Height: 16}
	return NewGraphicsMember(id, buf, ioresource.DoubleBuffer, backend, size, gx.RGBA8, gx.DrawStateConfig{}, nil)
}

func TestChainOrderingRenderAndCurrent(t *testing.T) {
	ctx, backend := newTestContext()
	chain := NewChain(ctx)

	m1 := newTestGraphicsMember(t, "buffA", ctx, backend)
	m2 := newTestGraphicsMember(t, "buffB", ctx, backend)
	m3 := newTestGraphicsMember(t, "buffC", ctx, backend)

	for _, m := range []Member{m1, m2, m3} {
		if err := chain.PushBack(m); err != nil {
			t.Fatalf("PushBack(%s): %v", m.ID(), err)
		}
	}

	if chain.Before(m1) != nil {
		t.Error("expected first member to have no predecessor")
	}
	if chain.Before(m2) != Member(m1) {
		t.Error("expected m2's predecessor to be m1")
	}
	if chain.Before(m3) != Member(m2) {
		t.Error("expected m3's predecessor to be m2")
	}

	if err := chain.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := chain.AllocateTextures(); err != nil {
		t.Fatalf("AllocateTextures: %v", err)
	}

	last, err := chain.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if last != Member(m3) {
		t.Errorf("expected Render to return the last member, got %v", last)
	}
	if chain.Current() != Member(m3) {
		t.Errorf("expected Current to be the last-rendered member")
	}
	if chain.IndexOf(m2) != 1 {
		t.Errorf("expected m2 at index 1, got %d", chain.IndexOf(m2))
	}
}

func TestChainRejectsDuplicateMember(t *testing.T) {
	ctx, backend := newTestContext()
	chain := NewChain(ctx)
	m := newTestGraphicsMember(t, "dup", ctx, backend)
	if err := chain.PushBack(m); err != nil {
		t.Fatalf("first PushBack: %v", err)
	}
	if err := chain.PushBack(m); err == nil {
		t.Fatal("expected second PushBack of the same member to fail")
	}
}

func TestChainRenderRangeBounds(t *testing.T) {
	ctx, backend := newTestContext()
	chain := NewChain(ctx)
	m1 := newTestGraphicsMember(t, "a", ctx, backend)
	m2 := newTestGraphicsMember(t, "b", ctx, backend)
	chain.PushBack(m1)
	chain.PushBack(m2)
	if err := chain.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := chain.AllocateTextures(); err != nil {
		t.Fatalf("AllocateTextures: %v", err)
	}
	if _, err := chain.RenderRange(0, 5); err == nil {
		t.Error("expected out-of-bounds render range to fail")
	}
	if _, err := chain.RenderRange(1, 0); err == nil {
		t.Error("expected begin > end to fail")
	}
	last, err := chain.RenderRange(0, 0)
	if err != nil {
		t.Fatalf("RenderRange(0,0): %v", err)
	}
	if last != Member(m1) {
		t.Errorf("expected RenderRange(0,0) to return m1, got %v", last)
	}
	if chain.Current() != Member(m1) {
		t.Error("expected Current to reflect the partial render")
	}
}

func TestChainResolveOutput(t *testing.T) {
	ctx, backend := newTestContext()
	chain := NewChain(ctx)
	m := newTestGraphicsMember(t, "src", ctx, backend)
	if err := chain.PushBack(m); err != nil {
		t.Fatalf("PushBack: %v", err)
	}
	if err := chain.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := chain.AllocateTextures(); err != nil {
		t.Fatalf("AllocateTextures: %v", err)
	}
	if _, err := chain.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}

	ref := chain.Ref(0)
	tex, w, h, ok := chain.ResolveOutput(ref, "fragColor")
	if !ok || tex == nil {
		t.Fatalf("expected ResolveOutput to succeed, got ok=%v tex=%v", ok, tex)
	}
	if w != 16 || h != 16 {
		t.Errorf("unexpected resolved size %dx%d", w, h)
	}

	if _, _, _, ok := chain.ResolveOutput(ref, "doesNotExist"); ok {
		t.Error("expected unknown output name to fail resolution")
	}

	badRef := ref
	badRef.Generation++
	if _, _, _, ok := chain.ResolveOutput(badRef, "fragColor"); ok {
		t.Error("expected mismatched generation to fail resolution")
	}

	outOfRange := chain.Ref(99)
	if _, _, _, ok := chain.ResolveOutput(outOfRange, "fragColor"); ok {
		t.Error("expected out-of-range index to fail resolution")
	}
}

func TestScreenMemberDefaultsToPrecedingMember(t *testing.T) {
	ctx, backend := newTestContext()
	chain := NewChain(ctx)
	gm := newTestGraphicsMember(t, "source", ctx, backend)
	if err := chain.PushBack(gm); err != nil {
		t.Fatalf("PushBack graphics member: %v", err)
	}

	sm := NewScreenMember("screen", ctx, SourceRef{Name: "fragColor"},
		ioresource.FixedSize{Width: 16, Height: 16}, [2]int32{0, 0}, gx.DrawStateConfig{}, 0, 0)
	if err := chain.PushBack(sm); err != nil {
		t.Fatalf("PushBack screen member: %v", err)
	}
	if sm.resolver != OutputResolver(gm) {
		t.Error("expected the screen member to be wired to the preceding graphics member")
	}

	if err := chain.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := chain.AllocateTextures(); err != nil {
		t.Fatalf("AllocateTextures: %v", err)
	}
	if _, err := chain.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if chain.Current() != Member(sm) {
		t.Error("expected the screen member to be last-rendered")
	}
}

func TestComputeMemberHasNoOutputs(t *testing.T) {
	ctx, _ := newTestContext()
	cb := buffer.NewComputeBuffer("compute", ctx, "void mainCompute() {}", nil, 4, 4, 1, nil)
	cm := NewComputeMember("compute", cb)
	if err := cm.Init(ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := cm.Allocate(ctx); err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if err := cm.Render(ctx); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if cm.Outputs() != nil {
		t.Error("expected a compute member to have no outputs")
	}
	if cm.FindOutput("anything") != -1 {
		t.Error("expected FindOutput to always miss on a compute member")
	}
}
