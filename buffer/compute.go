package buffer

import (
	"log/slog"

	"github.com/soypat/shadertoy/compiler"
	"github.com/soypat/shadertoy/gx"
	"github.com/soypat/shadertoy/program"
	"github.com/soypat/shadertoy/rendercontext"
)

// ComputeBuffer is a compute-only pass with no color outputs,
// continuing soypat/glgl's pipecompute example's dispatch pattern
// generalized into the member-driven init/dispatch lifecycle of spec
// §4.4's "Compute buffer".
type ComputeBuffer struct {
	ID     string
	ctx    *rendercontext.Context
	logger *slog.Logger

	UserSource string
	Inputs     []program.ProgramInput
	GroupsX, GroupsY, GroupsZ uint32

	tpl       *program.Template
	host      *program.Host
	timeQuery gx.Query
	pending   bool
}

// NewComputeBuffer returns an uninitialized ComputeBuffer named id,
// dispatching (groupsX, groupsY, groupsZ) work groups per Dispatch
// call.
func NewComputeBuffer(id string, ctx *rendercontext.Context, userSource string, inputs []program.ProgramInput, groupsX, groupsY, groupsZ uint32, logger *slog.Logger) *ComputeBuffer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ComputeBuffer{ID: id, ctx: ctx, UserSource: userSource, Inputs: inputs, GroupsX: groupsX, GroupsY: groupsY, GroupsZ: groupsZ, logger: logger}
}

// Init compiles the compute program, builds its interface, and logs
// its reflected uniform count (spec §4.4's "init(ctx): compile the
// compute program, build interface, log uniform count").
func (c *ComputeBuffer) Init() error {
	if !c.ctx.ComputeSupported() {
		return gx.NewConfigError("compute buffer %s: backend does not support compute shaders", c.ID)
	}
	base, err := c.ctx.BufferTemplate()
	if err != nil {
		return err
	}
	tpl := base.Clone()

	computeStage, ok := tpl.StageTemplate(gx.StageCompute)
	if !ok {
		return gx.NewConfigError("compute buffer %s: default template has no compute stage", c.ID)
	}
	sourcesPart := compiler.NewStringPart("buffer:sources", c.UserSource)
	inputsPart := compiler.NewInputPart("buffer:inputs", inputDefinitions(c.Inputs))
	specified := computeStage.Specify(map[string]compiler.Part{
		"buffer:sources": sourcesPart,
		"buffer:inputs":  inputsPart,
	})
	tpl.ReplaceStage(gx.StageCompute, specified)
	c.tpl = tpl

	errTex, err := c.ctx.ErrorTexture()
	if err != nil {
		return err
	}
	host := program.NewHost(c.ctx.Backend(), tpl, errTex)
	host.Inputs = c.Inputs
	if err := host.InitProgram(gx.StageCompute); err != nil {
		return err
	}
	c.host = host

	q, err := c.ctx.Backend().NewQuery()
	if err != nil {
		return err
	}
	c.timeQuery = q

	c.logger.Debug("compute buffer initialized", slog.String("id", c.ID), slog.Int("uniform_count", len(host.Iface.Uniforms())))
	return nil
}

// Dispatch prepares the program, optionally sets iTimeDelta from the
// previous dispatch's timer query, and issues glDispatchCompute (spec
// §4.4's "dispatch(ctx)").
func (c *ComputeBuffer) Dispatch() error {
	if err := c.host.PrepareRender(); err != nil {
		return err
	}
	applyFrameState(c.host.Iface, c.host.Program, c.ctx.State)
	if c.pending && c.timeQuery.ResultAvailable() {
		if res, ok := c.host.Iface.Uniform("iTimeDelta"); ok {
			if loc, err := c.host.Program.UniformLocation(res.Name); err == nil && loc.Valid() {
				loc.SetFloat(float32(c.timeQuery.ResultNanoseconds()) / 1e9)
			}
		}
		c.pending = false
	}

	backend := c.ctx.Backend()
	c.timeQuery.Begin()
	backend.DispatchCompute(c.GroupsX, c.GroupsY, c.GroupsZ)
	c.timeQuery.End()
	c.pending = true
	return backend.Err()
}
