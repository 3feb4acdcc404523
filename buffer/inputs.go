package buffer

import (
	"github.com/soypat/shadertoy/compiler"
	"github.com/soypat/shadertoy/program"
)

// inputDefinitions projects a buffer's ProgramInputs into the GLSL
// declarations compiler.InputPart renders for the "buffer:inputs"
// template part (spec §4.1's Input part).
func inputDefinitions(inputs []program.ProgramInput) []compiler.InputDefinition {
	out := make([]compiler.InputDefinition, len(inputs))
	for i, in := range inputs {
		glslType := "sampler2D"
		if in.Channel != nil {
			glslType = in.Channel.GLSLType()
		}
		out[i] = compiler.InputDefinition{
			Name:     in.Name,
			GLSLType: glslType,
		}
	}
	return out
}
