// Package buffer implements the render-pass abstractions of spec
// §4.4: ToyBuffer (the full-screen-quad fragment pass every Shadertoy
// buffer is), GeometryBuffer (custom vertex data instead of the shared
// screen quad), and ComputeBuffer (a compute-only dispatch pass).
//
// This continues soypat/glgl's compileSources/Err/query pattern
// (v4.6-core/glgl/glgl.go, v4.6-core/examples/pipecompute) generalized
// to the member-driven init/allocate/render lifecycle of
// original_source/include/shadertoy/buffers/basic_buffer.hpp.
package buffer

import (
	"fmt"
	"log/slog"

	"github.com/soypat/shadertoy/compiler"
	"github.com/soypat/shadertoy/gx"
	"github.com/soypat/shadertoy/ioresource"
	"github.com/soypat/shadertoy/program"
	"github.com/soypat/shadertoy/rendercontext"
)

// Output is one reflected color-output resource discovered from a
// linked fragment program's interface (spec §4.4's "get_buffer_outputs").
type Output struct {
	Name     string
	Location int32
	Type     gx.UniformType
}

// ToyBuffer is a full-screen-quad fragment pass: the common case where
// mainImage is called once per output pixel via the shared screen
// quad geometry (spec §4.4's "Program buffer").
type ToyBuffer struct {
	ID     string
	ctx    *rendercontext.Context
	logger *slog.Logger

	UserSource string
	Inputs     []program.ProgramInput

	tpl  *program.Template
	host *program.Host

	depth        gx.Renderbuffer
	depthW       int32
	depthH       int32
	fb           gx.Framebuffer
	drawState    gx.DrawState
	timeQuery    gx.Query
	queryPending bool
}

// NewToyBuffer returns an uninitialized ToyBuffer named id, rendering
// userSource as the body of mainImage.
func NewToyBuffer(id string, ctx *rendercontext.Context, userSource string, inputs []program.ProgramInput, logger *slog.Logger) *ToyBuffer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ToyBuffer{ID: id, ctx: ctx, UserSource: userSource, Inputs: inputs, logger: logger}
}

// Init specifies this buffer's fragment template against the shared
// default program template, builds the program host, and compiles and
// links the program (spec §4.4 step 1: init_geometry is a no-op here
// since ToyBuffer reuses the shared screen quad, then init_program).
func (b *ToyBuffer) Init() error {
	base, err := b.ctx.BufferTemplate()
	if err != nil {
		return err
	}
	tpl := base.Clone()

	fragStage, ok := tpl.StageTemplate(gx.StageFragment)
	if !ok {
		return fmt.Errorf("toybuffer %s: default template has no fragment stage", b.ID)
	}
	sourcesPart := compiler.NewStringPart("buffer:sources", b.UserSource)
	inputsPart := compiler.NewInputPart("buffer:inputs", inputDefinitions(b.Inputs))
	specified := fragStage.Specify(map[string]compiler.Part{
		"buffer:sources": sourcesPart,
		"buffer:inputs":  inputsPart,
	})
	tpl.ReplaceStage(gx.StageFragment, specified)
	b.tpl = tpl

	errTex, err := b.ctx.ErrorTexture()
	if err != nil {
		return err
	}
	host := program.NewHost(b.ctx.Backend(), tpl, errTex)
	host.Inputs = b.Inputs
	if err := host.InitProgram(gx.StageFragment); err != nil {
		return err
	}
	b.host = host

	fb, err := b.ctx.Backend().NewFramebuffer()
	if err != nil {
		return err
	}
	b.fb = fb

	ds, err := b.ctx.Backend().NewDrawState()
	if err != nil {
		return err
	}
	b.drawState = ds

	q, err := b.ctx.Backend().NewQuery()
	if err != nil {
		return err
	}
	b.timeQuery = q
	return nil
}

// Outputs returns the linked program's reflected color outputs (spec
// §4.4's output discovery), used by the owning GraphicsMember to
// populate its I/O resource's output specs.
func (b *ToyBuffer) Outputs() []Output {
	if b.host == nil || b.host.Iface == nil {
		return nil
	}
	refs := b.host.Iface.Outputs()
	out := make([]Output, len(refs))
	for i, r := range refs {
		out[i] = Output{Name: r.Name, Location: r.Location, Type: r.Type}
	}
	return out
}

// Allocate (re)allocates the depth renderbuffer to match the first
// output's size, skipping reallocation if the size hasn't changed
// (spec §4.4 step 2).
func (b *ToyBuffer) Allocate(io *ioresource.Resource) error {
	specs := io.OutputSpecs()
	if len(specs) == 0 {
		return gx.NewConfigError("toybuffer %s: no output specs to allocate against", b.ID)
	}
	w, h := specs[0].RenderSize.Resolve()
	if w <= 0 || h <= 0 {
		return gx.NewConfigError("toybuffer %s: output size is zero", b.ID)
	}
	if b.depth != nil && b.depthW == w && b.depthH == h {
		return nil
	}
	if b.depth == nil {
		rb, err := b.ctx.Backend().NewRenderbuffer()
		if err != nil {
			return err
		}
		b.depth = rb
	}
	b.depth.Storage(gx.DepthComponent24, w, h)
	b.depthW, b.depthH = w, h
	return nil
}

// DrawState returns the buffer's owned draw state, applied once per
// render (spec §4.4 step 3, §9 decision on clear ordering).
func (b *ToyBuffer) DrawState() gx.DrawState { return b.drawState }

// Render executes one pass: binds the target framebuffer (or the
// default framebuffer under the default_framebuffer swap policy),
// applies draw state, prepares the program (uniforms + inputs), sets
// iResolution, consumes the prior frame's timer-query result into
// iTimeDelta if available, and draws the shared screen quad within a
// new timer query (spec §4.4 step 3).
//
// Clear ordering follows SPEC_FULL's decision on Open Question 3:
// DrawState.Apply always issues capability toggles, then clear values,
// then glClear(bits) last, so the configured clear color/depth/stencil
// are in effect before the clear executes.
func (b *ToyBuffer) Render(io *ioresource.Resource, cfg gx.DrawStateConfig) error {
	backend := b.ctx.Backend()
	specs := io.OutputSpecs()

	if io.Policy() == ioresource.DefaultFramebuffer {
		backend.BindDefaultFramebuffer(gx.FramebufferDraw)
	} else {
		b.fb.Bind(gx.FramebufferDraw)
		if len(specs) == 0 {
			return gx.NewConfigError("toybuffer %s: no outputs to render into", b.ID)
		}
		w, h := specs[0].RenderSize.Resolve()
		backend.SetViewport(0, 0, w, h)

		active := make([]int, 0, len(specs))
		maxLoc := 0
		for i, spec := range specs {
			b.fb.AttachColor(int(spec.Name.Location), io.TargetTexture(i))
			active = append(active, int(spec.Name.Location))
			if int(spec.Name.Location) > maxLoc {
				maxLoc = int(spec.Name.Location)
			}
		}
		b.fb.SetDrawBuffers(active, maxLoc+1)
	}

	b.drawState.Apply(cfg)

	if err := b.host.PrepareRender(); err != nil {
		return err
	}
	applyFrameState(b.host.Iface, b.host.Program, b.ctx.State)
	if res, ok := b.host.Iface.Uniform("iResolution"); ok {
		if loc, err := b.host.Program.UniformLocation(res.Name); err == nil && loc.Valid() {
			w, h := float32(0), float32(0)
			if len(specs) > 0 {
				ww, hh := specs[0].RenderSize.Resolve()
				w, h = float32(ww), float32(hh)
			}
			loc.SetFloat(w, h, 1.0)
		}
	}
	if b.queryPending && b.timeQuery.ResultAvailable() {
		if loc, ok := b.host.Iface.Uniform("iTimeDelta"); ok {
			if ul, err := b.host.Program.UniformLocation(loc.Name); err == nil && ul.Valid() {
				ul.SetFloat(float32(b.timeQuery.ResultNanoseconds()) / 1e9)
			}
		}
		b.queryPending = false
	}

	quad, err := b.ctx.ScreenQuad()
	if err != nil {
		return err
	}
	b.timeQuery.Begin()
	quad.VAO.Bind()
	backend.DrawElements(quad.Indices)
	quad.VAO.Unbind()
	b.timeQuery.End()
	b.queryPending = true

	return backend.Err()
}
