//go:build !tinygo && cgo

package gl46

import (
	"strings"

	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/soypat/shadertoy/gx"
)

// Shader is a single compiled shader-stage object. Compile mirrors
// soypat/glgl's shaders.go `compile` helper: sources must already be
// null-terminated, matching gl.Strs' expectations.
type Shader struct {
	handle gx.ResourceHandle
	stage  gx.Stage
}

func (s *Shader) ID() uint32    { return s.handle.ID() }
func (s *Shader) Valid() bool   { return s.handle.Valid() }
func (s *Shader) Stage() gx.Stage { return s.stage }

func (s *Shader) Compile(sources ...string) error {
	glType, err := stageEnum(s.stage)
	if err != nil {
		return err
	}
	var lengths []int32
	for _, src := range sources {
		if !strings.HasSuffix(src, "\x00") {
			return gx.NewConfigError("shader source missing null terminator")
		}
		lengths = append(lengths, int32(len(src)))
	}
	cstrs, free := gl.Strs(sources...)
	gl.ShaderSource(s.handle.ID(), int32(len(sources)), cstrs, &lengths[0])
	free()
	gl.CompileShader(s.handle.ID())

	var compiled int32
	gl.GetShaderiv(s.handle.ID(), gl.COMPILE_STATUS, &compiled)
	if compiled == gl.FALSE {
		log := shaderInfoLog(s.handle.ID())
		_ = glType
		return &gx.ShaderCompilationError{Stage: s.stage, ID: s.handle.ID(), Log: log}
	}
	return nil
}

func (s *Shader) Delete() {
	gl.DeleteShader(s.handle.ID())
}

func shaderInfoLog(id uint32) string {
	var length int32
	gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &length)
	if length == 0 {
		return ""
	}
	log := make([]byte, length)
	gl.GetShaderInfoLog(id, length, nil, &log[0])
	return string(log[:len(log)-1])
}
