//go:build !tinygo && cgo

package gl46

import (
	"strings"

	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/soypat/shadertoy/gx"
)

// Program wraps a linked GL program object, continuing
// soypat/glgl/shaders.go's compileSources/link/validate flow but exposed
// through the gx.Program trait.
type Program struct {
	handle gx.ResourceHandle
}

func (p *Program) ID() uint32  { return p.handle.ID() }
func (p *Program) Valid() bool { return p.handle.Valid() }

func (p *Program) Bind()   { gl.UseProgram(p.handle.ID()) }
func (p *Program) Unbind() { gl.UseProgram(0) }

func (p *Program) Delete() {
	if !p.handle.Valid() {
		return
	}
	p.Unbind()
	gl.DeleteProgram(p.handle.ID())
}

func (p *Program) AttachShader(s gx.Shader) {
	gl.AttachShader(p.handle.ID(), s.ID())
}

func (p *Program) DetachShader(s gx.Shader) {
	gl.DetachShader(p.handle.ID(), s.ID())
}

func (p *Program) Link() error {
	gl.LinkProgram(p.handle.ID())
	var status int32
	gl.GetProgramiv(p.handle.ID(), gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		return &gx.ProgramLinkError{ID: p.handle.ID(), Log: programInfoLog(p.handle.ID())}
	}
	return nil
}

func (p *Program) Validate() error {
	gl.ValidateProgram(p.handle.ID())
	var status int32
	gl.GetProgramiv(p.handle.ID(), gl.VALIDATE_STATUS, &status)
	if status == gl.FALSE {
		return &gx.ProgramValidateError{ID: p.handle.ID(), Log: programInfoLog(p.handle.ID())}
	}
	return nil
}

func (p *Program) UniformLocation(name string) (gx.UniformLocation, error) {
	cname := nullTerminate(name)
	loc := gl.GetUniformLocation(p.handle.ID(), gl.Str(cname))
	if loc < 0 {
		return &UniformLocation{loc: -1}, gx.NewConfigError("uniform %q not active in program", name)
	}
	return &UniformLocation{loc: loc}, nil
}

func (p *Program) AttribLocation(name string) (int32, error) {
	cname := nullTerminate(name)
	loc := gl.GetAttribLocation(p.handle.ID(), gl.Str(cname))
	if loc < 0 {
		return loc, gx.NewConfigError("attribute %q not active in program", name)
	}
	return loc, nil
}

func (p *Program) Outputs() ([]gx.ProgramResource, error) {
	return p.interfaceResources(gl.PROGRAM_OUTPUT)
}

func (p *Program) Uniforms() ([]gx.ProgramResource, error) {
	return p.interfaceResources(gl.UNIFORM)
}

func (p *Program) Inputs() ([]gx.ProgramResource, error) {
	return p.interfaceResources(gl.PROGRAM_INPUT)
}

// interfaceResources drives glGetProgramInterfaceiv/glGetProgramResourceName
// /glGetProgramResourceiv the way the reference's program interface
// reflection does (spec §3's Program interface, §4.3's discovery flow).
func (p *Program) interfaceResources(iface uint32) ([]gx.ProgramResource, error) {
	id := p.handle.ID()
	var count int32
	gl.GetProgramInterfaceiv(id, iface, gl.ACTIVE_RESOURCES, &count)
	props := []uint32{gl.TYPE, gl.ARRAY_SIZE, gl.LOCATION}
	out := make([]gx.ProgramResource, 0, count)
	for i := int32(0); i < count; i++ {
		var nameLen int32
		gl.GetProgramResourceName(id, iface, uint32(i), 0, nil, nil)
		nameBuf := make([]byte, 256)
		gl.GetProgramResourceName(id, iface, uint32(i), int32(len(nameBuf)), &nameLen, &nameBuf[0])
		name := string(nameBuf[:nameLen])

		values := make([]int32, len(props))
		gl.GetProgramResourceiv(id, iface, uint32(i), int32(len(props)), &props[0], int32(len(values)), nil, &values[0])
		out = append(out, gx.ProgramResource{
			Name:      name,
			Type:      glTypeToUniformType(uint32(values[0])),
			ArraySize: values[1],
			Location:  values[2],
		})
	}
	return out, nil
}

func programInfoLog(id uint32) string {
	var length int32
	gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &length)
	if length == 0 {
		return ""
	}
	log := make([]byte, length)
	gl.GetProgramInfoLog(id, length, nil, &log[0])
	return string(log[:len(log)-1])
}

func nullTerminate(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}

// glTypeToUniformType maps the GL_*_type enum reported by program
// interface reflection to gx.UniformType, the full switch spec §9
// requires for the uniform-value tagged union.
func glTypeToUniformType(glType uint32) gx.UniformType {
	switch glType {
	case gl.FLOAT:
		return gx.TypeFloat
	case gl.FLOAT_VEC2:
		return gx.TypeVec2
	case gl.FLOAT_VEC3:
		return gx.TypeVec3
	case gl.FLOAT_VEC4:
		return gx.TypeVec4
	case gl.INT:
		return gx.TypeInt
	case gl.INT_VEC2:
		return gx.TypeIVec2
	case gl.INT_VEC3:
		return gx.TypeIVec3
	case gl.INT_VEC4:
		return gx.TypeIVec4
	case gl.UNSIGNED_INT:
		return gx.TypeUint
	case gl.UNSIGNED_INT_VEC2:
		return gx.TypeUVec2
	case gl.UNSIGNED_INT_VEC3:
		return gx.TypeUVec3
	case gl.UNSIGNED_INT_VEC4:
		return gx.TypeUVec4
	case gl.BOOL:
		return gx.TypeBool
	case gl.BOOL_VEC2:
		return gx.TypeBVec2
	case gl.BOOL_VEC3:
		return gx.TypeBVec3
	case gl.BOOL_VEC4:
		return gx.TypeBVec4
	case gl.FLOAT_MAT2:
		return gx.TypeMat2
	case gl.FLOAT_MAT3:
		return gx.TypeMat3
	case gl.FLOAT_MAT4:
		return gx.TypeMat4
	case gl.FLOAT_MAT2x3:
		return gx.TypeMat2x3
	case gl.FLOAT_MAT3x2:
		return gx.TypeMat3x2
	case gl.FLOAT_MAT2x4:
		return gx.TypeMat2x4
	case gl.FLOAT_MAT4x2:
		return gx.TypeMat4x2
	case gl.FLOAT_MAT3x4:
		return gx.TypeMat3x4
	case gl.FLOAT_MAT4x3:
		return gx.TypeMat4x3
	case gl.SAMPLER_2D:
		return gx.TypeSampler2D
	case gl.IMAGE_2D:
		return gx.TypeImage2D
	default:
		return gx.TypeUnknown
	}
}
