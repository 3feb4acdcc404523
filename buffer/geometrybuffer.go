package buffer

import (
	"log/slog"

	"github.com/soypat/shadertoy/compiler"
	"github.com/soypat/shadertoy/gx"
	"github.com/soypat/shadertoy/ioresource"
	"github.com/soypat/shadertoy/program"
	"github.com/soypat/shadertoy/rendercontext"
)

// GeometryBuffer is a fragment pass that draws caller-supplied
// geometry instead of the shared screen quad (spec §4.4's "Geometry
// buffer: geometry is a user-supplied object implementing draw()").
// It owns its own vertex stage, unlike ToyBuffer which shares the
// context's screen-quad vertex shader.
type GeometryBuffer struct {
	ID     string
	ctx    *rendercontext.Context
	logger *slog.Logger

	VertexSource string
	UserSource   string
	Inputs       []program.ProgramInput
	Geometry     Geometry

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

// NewGeometryBuffer returns an uninitialized GeometryBuffer named id,
// rendering geom with a program built from vertexSource (the geometry
// buffer's own vertex stage, per spec §4.4) and userSource (the
// fragment body).
func NewGeometryBuffer(id string, ctx *rendercontext.Context, vertexSource, userSource string, inputs []program.ProgramInput, geom Geometry, logger *slog.Logger) *GeometryBuffer {
	if logger == nil {
		logger = slog.Default()
	}
	return &GeometryBuffer{ID: id, ctx: ctx, VertexSource: vertexSource, UserSource: userSource, Inputs: inputs, Geometry: geom, logger: logger}
}

// Init builds this buffer's own vertex+fragment program template (the
// shared default template's fragment decl/main but this buffer's own
// vertex stage), builds the program host, and compiles and links the
// program (spec §4.4 step 1: init_geometry then init_program).
func (b *GeometryBuffer) Init() error {
	base, err := b.ctx.BufferTemplate()
	if err != nil {
		return err
	}
	tpl := base.Clone()

	vertexTpl, err := compiler.NewTemplate(compiler.NewStringPart("vertex", b.VertexSource))
	if err != nil {
		return err
	}
	tpl.ReplaceStage(gx.StageVertex, vertexTpl)

	fragStage, ok := tpl.StageTemplate(gx.StageFragment)
	if !ok {
		return gx.NewConfigError("geometrybuffer %s: default template has no fragment stage", b.ID)
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

// Outputs returns the linked program's reflected color outputs.
func (b *GeometryBuffer) Outputs() []Output {
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
// output's size, skipping reallocation if the size hasn't changed.
func (b *GeometryBuffer) Allocate(io *ioresource.Resource) error {
	specs := io.OutputSpecs()
	if len(specs) == 0 {
		return gx.NewConfigError("geometrybuffer %s: no output specs to allocate against", b.ID)
	}
	w, h := specs[0].RenderSize.Resolve()
	if w <= 0 || h <= 0 {
		return gx.NewConfigError("geometrybuffer %s: output size is zero", b.ID)
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

// DrawState returns the buffer's owned draw state.
func (b *GeometryBuffer) DrawState() gx.DrawState { return b.drawState }

// Render executes one pass against b.Geometry, following the same
// framebuffer-binding, uniform-apply, and timer-query steps as
// ToyBuffer.Render but drawing caller-supplied geometry instead of the
// shared screen quad.
func (b *GeometryBuffer) Render(io *ioresource.Resource, cfg gx.DrawStateConfig) error {
	backend := b.ctx.Backend()
	specs := io.OutputSpecs()

	if io.Policy() == ioresource.DefaultFramebuffer {
		backend.BindDefaultFramebuffer(gx.FramebufferDraw)
	} else {
		b.fb.Bind(gx.FramebufferDraw)
		if len(specs) == 0 {
			return gx.NewConfigError("geometrybuffer %s: no outputs to render into", b.ID)
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
		if res, ok := b.host.Iface.Uniform("iTimeDelta"); ok {
			if loc, err := b.host.Program.UniformLocation(res.Name); err == nil && loc.Valid() {
				loc.SetFloat(float32(b.timeQuery.ResultNanoseconds()) / 1e9)
			}
		}
		b.queryPending = false
	}

	b.timeQuery.Begin()
	if err := b.Geometry.Draw(backend); err != nil {
		return err
	}
	b.timeQuery.End()
	b.queryPending = true

	return backend.Err()
}
