package gx

// BlendFunc holds the four-way separate blend function documented in
// spec §3's Draw state.
type BlendFunc struct {
	SrcRGB, DstRGB     uint32
	SrcAlpha, DstAlpha uint32
}

// BlendEquation holds the RGB and alpha blend equations.
type BlendEquation struct {
	RGB, Alpha uint32
}

// DrawStateConfig is the value-typed, comparable snapshot applied by a
// DrawState. Two configs that are == require no state changes; Apply
// must not reissue an enable/disable call for a capability whose value
// is unchanged from prev (TESTABLE PROPERTY 7).
type DrawStateConfig struct {
	Blend      bool
	CullFace   bool
	DepthTest  bool
	ScissorTest bool
	StencilTest bool
	DepthMask  bool

	ClearColor          [4]float32
	ClearDepth          float64
	ClearStencil        int32
	ClearBits           uint32 // GL_COLOR_BUFFER_BIT | GL_DEPTH_BUFFER_BIT | GL_STENCIL_BUFFER_BIT
	DepthFunc           uint32
	Equation            BlendEquation
	Func                BlendFunc
	BlendColor          [4]float32
	PolygonModeFace     uint32 // desktop-only; zero value means "do not set"
	PolygonMode         uint32
	MemoryBarrierBits    uint32 // compute-capable builds only; zero means "no barrier"
}

// DefaultDrawStateConfig matches the driver's documented defaults:
// depth test and blend disabled, clear color transparent black (0,0,0,0),
// clear depth 1, color+depth clear bits set.
func DefaultDrawStateConfig() DrawStateConfig {
	return DrawStateConfig{
		DepthMask:  true,
		ClearColor: [4]float32{0, 0, 0, 0},
		ClearDepth: 1,
		ClearBits:  glColorBufferBit | glDepthBufferBit,
		DepthFunc:  glLess,
		Equation:   BlendEquation{RGB: glFuncAdd, Alpha: glFuncAdd},
		Func:       BlendFunc{SrcRGB: glOne, DstRGB: glZero, SrcAlpha: glOne, DstAlpha: glZero},
	}
}

const (
	glColorBufferBit   = 0x00004000
	glDepthBufferBit    = 0x00000100
	glStencilBufferBit  = 0x00000400
	glLess              = 0x0201
	glFuncAdd           = 0x8006
	glOne               = 1
	glZero              = 0
)
