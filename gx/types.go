// Package gx defines the GPU binding layer ("GX backend") that the rest of
// this module renders through. It purposefully knows nothing about
// Shadertoy-style passes: it is the thin, swappable wrapper over an
// OpenGL-4.x or ES3/WebGL2 driver described in spec §6.
//
// Concrete implementations live in sibling packages, e.g. gx/gl46 for
// desktop OpenGL 4.6 via github.com/go-gl/gl. Resource handles are
// move-only, matching the teacher's "owning raw pointer to GL object"
// semantics moved to Go. Using a zero-valued handle is a programmer
// error; the gx/gl46 wrappers do not check for it.
package gx

import "fmt"

// Stage identifies a programmable shader stage.
type Stage uint8

const (
	StageVertex Stage = iota
	StageFragment
	StageCompute
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageCompute:
		return "compute"
	default:
		return fmt.Sprintf("Stage(%d)", uint8(s))
	}
}

// InternalFormat is a sized internal texture format, e.g. RGBA32F.
type InternalFormat uint32

// TextureTarget identifies the binding target of a texture, usually 2D.
type TextureTarget uint32

// AccessUsage controls read/write access for image-unit bindings.
type AccessUsage uint32

// UniformType is the GLSL type of a reflected uniform or input, derived
// from the driver's GL_*_type enum at program-interface query time.
type UniformType uint32

// ResourceHandle is embedded by every move-only GX resource wrapper. Its
// zero value means "not yet allocated" and reports Valid() == false.
// The gx/gl46 wrappers do not check Valid before an operation, so an
// operation on a zero handle addresses object 0 in the driver; the only
// NullResourceError raised is program.Host.PrepareRender's, for a host
// with no program. It satisfies the Handle interface declared in
// backend.go.
type ResourceHandle struct {
	id    uint32
	valid bool
}

// ID returns the raw backend identifier, 0 if unallocated.
func (h ResourceHandle) ID() uint32 { return h.id }

// Valid reports whether the handle was produced by a constructor and not
// yet released.
func (h ResourceHandle) Valid() bool { return h.valid }

// NewHandle wraps a raw backend id as a valid handle. Used only by
// backend implementations.
func NewHandle(id uint32) ResourceHandle { return ResourceHandle{id: id, valid: true} }

// UniformValue is the tagged union of values settable on an active
// uniform location, mirroring the reference's variant over
// int/ivecN/uint/uvecN/float/vecN/bool/bvecN/matN/matNxM (spec §9).
type UniformValue struct {
	Type  UniformType
	Ints  []int32
	Uints []uint32
	Float []float32
	Bools []bool
}
