// Package rendercontext implements the shared, lazily-constructed
// resources every swap-chain member draws through (spec §4.7): the
// screen-blit program, the screen quad geometry, the shared error
// input, and the default program template every fragment buffer
// specializes.
package rendercontext

import (
	"time"
	"unsafe"

	"github.com/soypat/shadertoy/compiler"
	"github.com/soypat/shadertoy/gx"
	"github.com/soypat/shadertoy/input"
	"github.com/soypat/shadertoy/program"
)

// float32Bytes/uint32Bytes reinterpret a numeric slice's backing array
// as bytes for upload, continuing soypat/glgl's use of unsafe.Slice for
// this exact purpose (v4.6-core/glgl/glgl.go).
func float32Bytes(v []float32) []byte {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*4)
}

func uint32Bytes(v []uint32) []byte {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*4)
}

// FrameState is the set of per-frame values the core reads but never
// advances itself (SPEC_FULL Open Question decision 1: the caller owns
// iTime/iFrame/iMouse progression, mirroring polyfloyd/shady's
// RenderState passed into PreRender).
type FrameState struct {
	Time       time.Duration
	Frame      uint32
	FrameRate  float32
	SampleRate float32
	Mouse      [4]float32
	Date       [4]float32
}

// Geometry is the shared screen-quad draw state: a vertex array over
// position+texCoord attributes and an index buffer of two triangles.
type Geometry struct {
	VAO    gx.VertexArray
	VBO    gx.Buffer
	IBO    gx.Buffer
	Indices int32
}

// Config configures a Context's capabilities.
type Config struct {
	ComputeSupported bool
}

// Context owns the resources of spec §4.7. Zero value is not usable;
// construct with New.
type Context struct {
	backend gx.Backend
	cfg     Config

	screenProg     gx.Program
	screenProgLoc  gx.UniformLocation
	screenQuad     *Geometry
	errorInput     *input.ErrorInput
	bufferTemplate *program.Template

	State FrameState
}

// New returns a Context bound to backend. Resources are constructed
// lazily on first access, per spec §4.7's "screen_prog() (lazy)" /
// "screen_quad() (lazy)".
func New(backend gx.Backend, cfg Config) *Context {
	return &Context{backend: backend, cfg: cfg}
}

// Backend returns the GX backend this context renders through.
func (c *Context) Backend() gx.Backend { return c.backend }

// ComputeSupported reports whether this context's backend supports
// compute shaders (gated on Config.ComputeSupported at construction,
// since capability detection itself is backend-specific).
func (c *Context) ComputeSupported() bool { return c.cfg.ComputeSupported }

// ErrorInput returns the shared error input, constructing it on first
// call.
func (c *Context) ErrorInput() (*input.ErrorInput, error) {
	if c.errorInput != nil {
		return c.errorInput, nil
	}
	in, err := input.NewErrorInput(c.backend)
	if err != nil {
		return nil, err
	}
	c.errorInput = in
	return in, nil
}

// ErrorTexture returns the shared error texture, substituted for any
// channel input that fails to resolve (spec §7).
func (c *Context) ErrorTexture() (gx.Texture, error) {
	in, err := c.ErrorInput()
	if err != nil {
		return nil, err
	}
	tex, _ := in.Texture()
	return tex, nil
}

// ScreenQuad returns the shared two-triangle unit-quad geometry,
// constructing it on first call (spec §4.7's screen_quad()).
func (c *Context) ScreenQuad() (*Geometry, error) {
	if c.screenQuad != nil {
		return c.screenQuad, nil
	}
	vao, err := c.backend.NewVertexArray()
	if err != nil {
		return nil, err
	}
	vbo, err := c.backend.NewBuffer()
	if err != nil {
		return nil, err
	}
	ibo, err := c.backend.NewBuffer()
	if err != nil {
		return nil, err
	}
	// vec3 position, vec2 texCoord per vertex, unit quad in clip space.
	vertices := []float32{
		-1, -1, 0, 0, 0,
		1, -1, 0, 1, 0,
		1, 1, 0, 1, 1,
		-1, 1, 0, 0, 1,
	}
	indices := []uint32{0, 1, 2, 0, 2, 3}

	vertexBytes := float32Bytes(vertices)
	indexBytes := uint32Bytes(indices)

	vao.Bind()
	vbo.BindAs(gx.ArrayBuffer)
	vbo.Data(gx.ArrayBuffer, len(vertexBytes), vertexBytes, gx.StaticDraw)
	ibo.BindAs(gx.ElementArrayBuffer)
	ibo.Data(gx.ElementArrayBuffer, len(indexBytes), indexBytes, gx.StaticDraw)

	const stride = 5 * 4
	vao.AddAttribute(vbo, 0, 3, gx.Float, stride, 0, false)
	vao.AddAttribute(vbo, 1, 2, gx.Float, stride, 3*4, false)
	vao.Unbind()

	c.screenQuad = &Geometry{VAO: vao, VBO: vbo, IBO: ibo, Indices: int32(len(indices))}
	return c.screenQuad, nil
}

// ScreenProgram returns the compiled screen-blit program and the
// uniform location of its screenTexture sampler, constructing both on
// first call (spec §4.7's screen_prog()).
func (c *Context) ScreenProgram() (gx.Program, gx.UniformLocation, error) {
	if c.screenProg != nil {
		return c.screenProg, c.screenProgLoc, nil
	}
	vs, err := c.backend.NewShader(gx.StageVertex)
	if err != nil {
		return nil, nil, err
	}
	if err := vs.Compile(nullTerminated(screenQuadVertexSource)); err != nil {
		return nil, nil, err
	}
	fs, err := c.backend.NewShader(gx.StageFragment)
	if err != nil {
		return nil, nil, err
	}
	if err := fs.Compile(nullTerminated(screenQuadFragmentSource)); err != nil {
		return nil, nil, err
	}
	prog, err := c.backend.NewProgram()
	if err != nil {
		return nil, nil, err
	}
	prog.AttachShader(vs)
	prog.AttachShader(fs)
	if err := prog.Link(); err != nil {
		prog.Delete()
		return nil, nil, err
	}
	prog.DetachShader(vs)
	prog.DetachShader(fs)

	loc, err := prog.UniformLocation("screenTexture")
	if err != nil {
		return nil, nil, err
	}
	c.screenProg = prog
	c.screenProgLoc = loc
	return prog, loc, nil
}

// BufferTemplate returns the owned default ProgramTemplate: a
// vertex-stage template (precompiled on construction, shared with
// screen_prog's vertex shader source), a fragment-stage template with
// unspecified "buffer:inputs"/"buffer:sources" parts, and — when
// ComputeSupported — a compute-stage template. Its define blocks
// include one named "glsl" seeded with LIBSHADERTOY=1 (spec §4.7).
func (c *Context) BufferTemplate() (*program.Template, error) {
	if c.bufferTemplate != nil {
		return c.bufferTemplate, nil
	}
	tpl := program.NewTemplate(c.backend)

	vertexTpl, err := compiler.NewTemplate(compiler.NewStringPart("vertex", screenQuadVertexSource))
	if err != nil {
		return nil, err
	}
	if err := tpl.Emplace(gx.StageVertex, vertexTpl); err != nil {
		return nil, err
	}
	if _, err := tpl.Compile(gx.StageVertex); err != nil {
		return nil, err
	}

	glslDefines := compiler.NewDefinePart("glsl")
	glslDefines.Set("LIBSHADERTOY", "1")
	if err := tpl.RegisterDefines(glslDefines); err != nil {
		return nil, err
	}

	fragTpl, err := compiler.NewTemplate(
		compiler.NewStringPart("decl", defaultFragmentDecl),
		compiler.Unspecified("glsl:defines"),
		compiler.Unspecified("buffer:inputs"),
		compiler.Unspecified("buffer:sources"),
		compiler.NewStringPart("main", defaultFragmentMain),
	)
	if err != nil {
		return nil, err
	}
	if err := tpl.Emplace(gx.StageFragment, fragTpl); err != nil {
		return nil, err
	}

	if c.cfg.ComputeSupported {
		computeTpl, err := compiler.NewTemplate(
			compiler.NewStringPart("decl", defaultComputeDecl),
			compiler.Unspecified("glsl:defines"),
			compiler.Unspecified("buffer:inputs"),
			compiler.Unspecified("buffer:sources"),
		)
		if err != nil {
			return nil, err
		}
		if err := tpl.Emplace(gx.StageCompute, computeTpl); err != nil {
			return nil, err
		}
	}

	c.bufferTemplate = tpl
	return tpl, nil
}
