// Package swapchain implements the swap-chain member and chain driver
// of spec §4.5–§4.6: GraphicsMember/ComputeMember/ScreenMember wrap a
// buffer.ToyBuffer/GeometryBuffer/ComputeBuffer (or the context's
// screen-blit program) into a node that can be initialized, sized, and
// rendered, and Chain drives an ordered list of them.
//
// This continues original_source/include/shadertoy/member.hpp's
// graphics_member/compute_member/screen_member split, generalized from
// C++ inheritance to the sum-type-by-interface pattern spec §9
// recommends for a closed, small set of variants.
package swapchain

import (
	"github.com/soypat/shadertoy/buffer"
	"github.com/soypat/shadertoy/gx"
	"github.com/soypat/shadertoy/input"
	"github.com/soypat/shadertoy/ioresource"
	"github.com/soypat/shadertoy/rendercontext"
)

// FragmentBuffer is the shape buffer.ToyBuffer and buffer.GeometryBuffer
// both satisfy, used so GraphicsMember does not care which kind of
// geometry its buffer draws (spec §4.4's "Program buffer").
type FragmentBuffer interface {
	Init() error
	Outputs() []buffer.Output
	Allocate(io *ioresource.Resource) error
	Render(io *ioresource.Resource, cfg gx.DrawStateConfig) error
}

// ComputeBufferLike is the shape buffer.ComputeBuffer satisfies.
type ComputeBufferLike interface {
	Init() error
	Dispatch() error
}

// Member is one node of a swap chain (spec §4.5's abstract member
// contract): it can be initialized, allocated, rendered, and queried
// for its named outputs.
type Member interface {
	ID() string
	Init(ctx *rendercontext.Context) error
	Allocate(ctx *rendercontext.Context) error
	Render(ctx *rendercontext.Context) error
	// Outputs returns this member's (name, texture) pairs, empty for
	// compute members.
	Outputs() []MemberOutput
	// FindOutput returns the index of the output named name, or -1.
	FindOutput(name string) int
}

// MemberOutput is one resolved (name info, current source texture)
// pair a member exposes to later members via buffer inputs.
type MemberOutput struct {
	Name ioresource.OutputNameInfo
	Tex  gx.Texture
}

// GraphicsMember wraps a FragmentBuffer with its own I/O resource,
// draw-state config, render size, and output allocator (spec §4.5's
// "Graphics (buffer) member").
type GraphicsMember struct {
	id              string
	buf             FragmentBuffer
	io              *ioresource.Resource
	drawState       gx.DrawStateConfig
	renderSize      ioresource.SizeRef
	internalFormat  gx.InternalFormat
	outputAllocator ioresource.OutputAllocator
}

// NewGraphicsMember returns a graphics member named id, wrapping buf
// and rendering into an I/O resource under policy, sized by
// renderSize/internalFormat by default for every discovered output
// unless allocator overrides a specific one (nil selects
// ioresource.DefaultOutputAllocator).
func NewGraphicsMember(id string, buf FragmentBuffer, policy ioresource.SwapPolicy, backend gx.Backend, renderSize ioresource.SizeRef, internalFormat gx.InternalFormat, drawState gx.DrawStateConfig, allocator ioresource.OutputAllocator) *GraphicsMember {
	if allocator == nil {
		allocator = ioresource.DefaultOutputAllocator
	}
	return &GraphicsMember{
		id:              id,
		buf:             buf,
		io:              ioresource.New(backend, policy),
		drawState:       drawState,
		renderSize:      renderSize,
		internalFormat:  internalFormat,
		outputAllocator: allocator,
	}
}

func (m *GraphicsMember) ID() string { return m.id }

// Init calls buf.Init, then discovers the linked program's color
// outputs and fills the I/O resource's output specs by running each
// through the member's output allocator (spec §4.4's "Program outputs
// discovery", §4.5's init_member).
func (m *GraphicsMember) Init(ctx *rendercontext.Context) error {
	if err := m.buf.Init(); err != nil {
		return err
	}
	discovered := m.buf.Outputs()
	specs := make([]ioresource.OutputBufferSpec, len(discovered))
	for i, out := range discovered {
		base := ioresource.OutputBufferSpec{
			RenderSize:     m.renderSize,
			Name:           ioresource.OutputNameInfo{Name: out.Name, Location: out.Location},
			InternalFormat: m.internalFormat,
		}
		size, format := m.outputAllocator(base, m.renderSize)
		specs[i] = ioresource.OutputBufferSpec{RenderSize: size, Name: base.Name, InternalFormat: format}
	}
	m.io.SetOutputSpecs(specs)
	return nil
}

// Allocate (re)allocates the I/O resource's textures, then the
// buffer's own depth renderbuffer.
func (m *GraphicsMember) Allocate(ctx *rendercontext.Context) error {
	if err := m.io.Allocate(); err != nil {
		return err
	}
	return m.buf.Allocate(m.io)
}

// Render renders the buffer into the I/O resource and swaps it (spec
// §4.5's render_member, §4.4 step 4).
func (m *GraphicsMember) Render(ctx *rendercontext.Context) error {
	if err := m.buf.Render(m.io, m.drawState); err != nil {
		return err
	}
	m.io.Swap()
	return nil
}

// Outputs returns one (name info, source texture) pair per output
// buffer currently allocated.
func (m *GraphicsMember) Outputs() []MemberOutput {
	specs := m.io.OutputSpecs()
	out := make([]MemberOutput, len(specs))
	for i, spec := range specs {
		out[i] = MemberOutput{Name: spec.Name, Tex: m.io.SourceTexture(i)}
	}
	return out
}

// FindOutput returns the index of the output spec named name, or -1.
func (m *GraphicsMember) FindOutput(name string) int {
	for i, spec := range m.io.OutputSpecs() {
		if spec.Name.Name == name {
			return i
		}
	}
	return -1
}

// ResolveOutputByName returns the current source texture (and its
// width/height) for the output named name, used by Chain.ResolveOutput
// when satisfying input.MemberSource for a buffer input.
func (m *GraphicsMember) ResolveOutputByName(name string) (tex gx.Texture, width, height int32, ok bool) {
	idx := m.FindOutput(name)
	if idx < 0 && name == "" && len(m.io.OutputSpecs()) > 0 {
		idx = 0 // unnamed selector falls back to the first output.
	}
	if idx < 0 {
		return nil, 0, 0, false
	}
	tex = m.io.SourceTexture(idx)
	if tex == nil {
		return nil, 0, 0, false
	}
	spec := m.io.OutputSpecs()[idx]
	w, h := spec.RenderSize.Resolve()
	return tex, w, h, true
}

// ComputeMember wraps a compute buffer (spec §4.5's "Compute member").
// It has no outputs.
type ComputeMember struct {
	id  string
	buf ComputeBufferLike
}

// NewComputeMember returns a compute member named id wrapping buf.
func NewComputeMember(id string, buf ComputeBufferLike) *ComputeMember {
	return &ComputeMember{id: id, buf: buf}
}

func (m *ComputeMember) ID() string                        { return m.id }
func (m *ComputeMember) Init(ctx *rendercontext.Context) error { return m.buf.Init() }
func (m *ComputeMember) Allocate(ctx *rendercontext.Context) error { return nil }
func (m *ComputeMember) Render(ctx *rendercontext.Context) error  { return m.buf.Dispatch() }
func (m *ComputeMember) Outputs() []MemberOutput                  { return nil }
func (m *ComputeMember) FindOutput(name string) int               { return -1 }

// ScreenMember performs the final screen blit (spec §4.5's "Screen
// member"): it binds the default framebuffer, sets the viewport to a
// referenced size/offset, samples a resolved source texture through
// the render context's screen program, and draws the shared screen
// quad.
type ScreenMember struct {
	id       string
	ctx      *rendercontext.Context
	source   SourceRef
	resolver OutputResolver

	viewportSize   ioresource.SizeRef
	viewportOffset [2]int32
	drawState      gx.DrawStateConfig
	minFilter      int32
	magFilter      int32

	sampler   gx.Sampler
	drawObj   gx.DrawState

	lastName string
	lastTex  gx.Texture
}

// OutputResolver is the shape GraphicsMember exposes for looking up
// one of its outputs by name, used by Chain to wire a ScreenMember's
// resolver without the member needing to know about Chain at all.
type OutputResolver interface {
	ResolveOutputByName(name string) (tex gx.Texture, width, height int32, ok bool)
}

// SourceRef names the texture a ScreenMember displays: a specific
// member's output selected by Name, or (if Member is nil) the
// immediately preceding chain member's first output — resolved by
// Chain.PushBack at push time since only the chain knows
// predecessor order (spec §4.5: "either a referenced member's output
// selected by name, or the immediately preceding swap-chain member's
// first output").
type SourceRef struct {
	Member OutputResolver // nil means "the preceding member in the chain"
	Name   string
}

// NewScreenMember returns a screen member named id, displaying source
// at viewportSize (offset by viewportOffset) with drawState applied
// before the blit. source.Member is resolved immediately if non-nil;
// if nil, Chain.PushBack resolves it to the preceding member once the
// screen member is appended.
func NewScreenMember(id string, ctx *rendercontext.Context, source SourceRef, viewportSize ioresource.SizeRef, viewportOffset [2]int32, drawState gx.DrawStateConfig, minFilter, magFilter int32) *ScreenMember {
	m := &ScreenMember{
		id: id, ctx: ctx, source: source,
		viewportSize: viewportSize, viewportOffset: viewportOffset,
		drawState: drawState, minFilter: minFilter, magFilter: magFilter,
	}
	if source.Member != nil {
		m.resolver = source.Member
	}
	return m
}

// SetResolver overrides the member this screen member samples from,
// used by Chain to bind "preceding member" references once the screen
// member's position in the chain is known.
func (m *ScreenMember) SetResolver(r OutputResolver) { m.resolver = r }

// Init acquires the screen member's own sampler (nearest filtering per
// spec §8 scenario S6's default, used for a min or mag filter given as
// 0) and forces the context's screen program/quad to be built.
func (m *ScreenMember) Init(ctx *rendercontext.Context) error {
	s, err := ctx.Backend().NewSampler()
	if err != nil {
		return err
	}
	minFilter, magFilter := m.minFilter, m.magFilter
	if minFilter == 0 {
		minFilter = gx.Nearest
	}
	if magFilter == 0 {
		magFilter = gx.Nearest
	}
	s.SetFilter(minFilter, magFilter)
	m.sampler = s
	ds, err := ctx.Backend().NewDrawState()
	if err != nil {
		return err
	}
	m.drawObj = ds
	if _, _, err := ctx.ScreenProgram(); err != nil {
		return err
	}
	_, err = ctx.ScreenQuad()
	return err
}

// Allocate is a no-op: a screen member never allocates its own I/O
// textures (spec §8 scenario S6).
func (m *ScreenMember) Allocate(ctx *rendercontext.Context) error { return nil }

func (m *ScreenMember) ID() string             { return m.id }
func (m *ScreenMember) Outputs() []MemberOutput { return nil }
func (m *ScreenMember) FindOutput(string) int   { return -1 }

// Render resolves the source texture by name on every call; the last
// texture resolved is kept and reused only for a frame in which
// resolution fails and the selected name is unchanged. It then binds the
// default framebuffer, sets the viewport, applies draw state, binds
// the source through the screen program, and draws the quad.
func (m *ScreenMember) Render(ctx *rendercontext.Context) error {
	var tex gx.Texture
	if m.resolver != nil {
		if m.source.Name != m.lastName {
			m.lastTex = nil
		}
		if t, _, _, ok := m.resolver.ResolveOutputByName(m.source.Name); ok {
			tex = t
			m.lastTex = t
			m.lastName = m.source.Name
		} else {
			tex = m.lastTex
		}
	}

	backend := m.ctx.Backend()
	prog, loc, err := m.ctx.ScreenProgram()
	if err != nil {
		return err
	}
	quad, err := m.ctx.ScreenQuad()
	if err != nil {
		return err
	}

	backend.BindDefaultFramebuffer(gx.FramebufferDraw)
	w, h := m.viewportSize.Resolve()
	backend.SetViewport(m.viewportOffset[0], m.viewportOffset[1], w, h)

	m.drawObj.Apply(m.drawState)

	backend.UseProgram(prog)
	if tex != nil {
		backend.BindTexture(0, tex)
		m.sampler.Bind(0)
	}
	if loc.Valid() {
		loc.SetInt(0)
	}

	quad.VAO.Bind()
	backend.DrawElements(quad.Indices)
	quad.VAO.Unbind()
	return backend.Err()
}
