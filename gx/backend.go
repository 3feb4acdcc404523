package gx

// Backend is the GX backend contract (spec §6): a factory for every GPU
// object kind used by the pipeline, plus the state tracker the core
// re-establishes each frame (texture units, active program, default
// framebuffer, viewport).
//
// Exactly one Backend implementation is current per GPU context. The core
// never holds more than one Backend alive at a time and never mutates
// driver state outside of the calls documented here, per spec §5's
// single-owner state-tracker policy.
type Backend interface {
	// NewProgram creates an empty, unlinked program.
	NewProgram() (Program, error)
	// NewShader creates a shader object for stage, uncompiled.
	NewShader(stage Stage) (Shader, error)
	// NewTexture creates an unallocated texture bound to target.
	NewTexture(target TextureTarget) (Texture, error)
	NewSampler() (Sampler, error)
	NewBuffer() (Buffer, error)
	NewFramebuffer() (Framebuffer, error)
	NewRenderbuffer() (Renderbuffer, error)
	NewVertexArray() (VertexArray, error)
	NewQuery() (Query, error)
	NewDrawState() (DrawState, error)

	// BindTexture binds tex to the given texture unit (0-based) for
	// sampling, independent of the image-unit binding used by image load
	// /store inputs.
	BindTexture(unit int, tex Texture)
	// BindImageTexture binds tex for image load/store at imageUnit.
	BindImageTexture(imageUnit int, tex Texture, level int32, layered bool, layer int32, access AccessUsage, format InternalFormat)
	// UnbindTextureUnits unbinds count texture units starting at start. A
	// count of -1 means "to the end of the backend's unit table", used at
	// the end of Host.PrepareRender to guarantee no stale bindings leak
	// into the next member's render.
	UnbindTextureUnits(start int, count int)
	// ActiveTexture selects unit for subsequent texture target bindings
	// (mip/parameter calls, not sampling), mirroring glActiveTexture.
	ActiveTexture(unit int)

	UseProgram(p Program)
	// BindDefaultFramebuffer binds the windowing-system framebuffer to
	// target (draw/read/both), used by the default_framebuffer swap
	// policy and by ScreenMember.
	BindDefaultFramebuffer(target FramebufferTarget)

	GetViewport() (x, y, w, h int32)
	SetViewport(x, y, w, h int32)

	// DrawElements issues an indexed triangle draw over the currently
	// bound vertex array's index buffer (GL_TRIANGLES, GL_UNSIGNED_INT).
	DrawElements(count int32)
	// DispatchCompute issues a compute-shader dispatch over the
	// currently bound compute program.
	DispatchCompute(nx, ny, nz uint32)

	// Err returns a non-nil error if the driver's error log is non-empty,
	// matching glgl.Err's drain-until-NO_ERROR behavior.
	Err() error
}

// FramebufferTarget selects which framebuffer binding point an operation
// addresses.
type FramebufferTarget uint8

const (
	FramebufferDraw FramebufferTarget = iota
	FramebufferRead
	FramebufferBoth
)

// Program is a linked GPU program: the result of compiling and linking one
// or more Shader objects.
type Program interface {
	Handle
	Bind()
	Unbind()
	Delete()
	// AttachShader attaches a compiled shader prior to Link.
	AttachShader(s Shader)
	DetachShader(s Shader)
	Link() error
	Validate() error
	UniformLocation(name string) (UniformLocation, error)
	AttribLocation(name string) (int32, error)
	// Outputs returns every active color-output resource the linked
	// program exposes, used by buffer.ToyBuffer.Outputs / output discovery
	// (spec §4.4).
	Outputs() ([]ProgramResource, error)
	Uniforms() ([]ProgramResource, error)
	Inputs() ([]ProgramResource, error)
}

// ProgramResource is a single reflected (name, location, type, array
// size) entry from a program's uniform/input/output interface (spec §3's
// Program interface).
type ProgramResource struct {
	Name      string
	Location  int32
	Type      UniformType
	ArraySize int32
}

// Shader is a single compiled shader stage object, owned by a Program
// until attached and (after link) detached/deleted.
type Shader interface {
	Handle
	Stage() Stage
	Compile(sources ...string) error
	Delete()
}

// Texture is a 2D (or cubemap-face/array) image resource.
type Texture interface {
	Handle
	Target() TextureTarget
	// Image allocates/replaces storage and optionally uploads data (nil
	// data just allocates).
	Image(level int32, internal InternalFormat, width, height int32, data []byte) error
	SetFilter(minFilter, magFilter int32)
	SetWrap(wrapS, wrapT int32)
	Delete()
}

// Sampler is an independent sampler object (filter/wrap state detached
// from any specific texture), used by channel inputs (spec §3 "Each
// input also owns a sampler").
type Sampler interface {
	Handle
	Bind(unit int)
	SetFilter(minFilter, magFilter int32)
	SetWrap(wrapS, wrapT int32)
	Delete()
}

// Buffer is a generic GPU buffer object (vertex, index, or shader-storage).
type Buffer interface {
	Handle
	// BindAs binds the buffer to target (e.g. ArrayBuffer,
	// ElementArrayBuffer), selecting which binding point subsequent
	// Data/attribute calls address.
	BindAs(target uint32)
	// Data uploads data to target (the buffer must already be bound
	// there via BindAs); a nil data just reserves size bytes.
	Data(target uint32, size int, data []byte, usage uint32)
	Delete()
}

// Framebuffer is a render-target binding point with zero or more color
// attachments plus a depth/stencil attachment.
type Framebuffer interface {
	Handle
	Bind(target FramebufferTarget)
	// AttachColor attaches tex at COLOR_ATTACHMENT0+index.
	AttachColor(index int, tex Texture)
	AttachDepthStencil(rb Renderbuffer)
	// SetDrawBuffers configures which color attachments receive
	// fragment-shader output, with GL_NONE for any index in [0,count)
	// not present in active.
	SetDrawBuffers(active []int, count int)
	CheckComplete() error
	Delete()
}

// Renderbuffer is a non-sampleable render target, used here for the
// depth attachment ToyBuffer allocates per spec §4.4 step 2.
type Renderbuffer interface {
	Handle
	Storage(internal InternalFormat, width, height int32)
	Delete()
}

// VertexArray ties vertex buffer layout to a program's attribute
// locations.
type VertexArray interface {
	Handle
	Bind()
	Unbind()
	// AddAttribute wires vbo's data into attribute location loc:
	// packing components of glType, stride bytes apart, starting at
	// offset, optionally normalized.
	AddAttribute(vbo Buffer, loc uint32, packing int32, glType uint32, stride, offset int32, normalize bool)
	Delete()
}

// Query is a GPU timer query (GL_TIME_ELAPSED), observed asynchronously
// per spec §5: the frame never blocks on it.
type Query interface {
	Handle
	Begin()
	End()
	// ResultAvailable reports whether a result can be read without
	// stalling the pipeline (GL_QUERY_RESULT_AVAILABLE).
	ResultAvailable() bool
	// ResultNanoseconds returns the elapsed GPU time of the last
	// completed Begin/End pair. Only valid when ResultAvailable is true.
	ResultNanoseconds() uint64
	Delete()
}

// DrawState is a snapshot of OpenGL draw-state capabilities and clear
// parameters (spec §3's Draw state). Apply must enable/disable exactly
// the capabilities that differ from whatever was last applied through
// this same DrawState object, per TESTABLE PROPERTY 7; each
// swapchain.GraphicsMember owns one DrawState so its history is
// independent of every other member's.
type DrawState interface {
	Apply(cfg DrawStateConfig)
}

// UniformLocation is an opaque, program-scoped uniform address plus the
// setters used to update it (spec §3's "get_location(program) →
// UniformLocation").
type UniformLocation interface {
	Valid() bool
	SetFloat(v ...float32)
	SetInt(v ...int32)
	SetUint(v ...uint32)
}

// Handle is the capability every move-only GX resource type embeds:
// identity plus validity. Concrete backend types embed gx.Handle by
// value; it is re-declared here as an interface so gx itself stays
// backend-agnostic.
type Handle interface {
	ID() uint32
	Valid() bool
}
