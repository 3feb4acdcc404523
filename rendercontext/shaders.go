package rendercontext

import "strings"

// nullTerminated appends a NUL byte if src lacks one, matching
// glgl's ParseCombined (v4.6-core/glgl/parse.go's WriteByte(0)) and
// the gx.Shader.Compile contract every backend implementation
// enforces. Used where a built-in source constant below is fed
// straight to Shader.Compile rather than through a compiler.Template,
// whose Joined already terminates the joined result.
func nullTerminated(src string) string {
	if strings.HasSuffix(src, "\x00") {
		return src
	}
	return src + "\x00"
}

// Built-in shader sources compiled into the library (spec §6). These
// continue soypat/glgl's example vertex/fragment pairs
// (v4.6-core/examples/hellotriangle) generalized into the fixed
// screen-blit pair plus the default per-pass skeleton every fragment
// buffer composes its user code into.

const screenQuadVertexSource = `#version 460
layout(location = 0) in vec3 position;
layout(location = 1) in vec2 texCoord;

out vec2 vTexCoord;

void main() {
	vTexCoord = texCoord;
	gl_Position = vec4(position, 1.0);
}
`

const screenQuadFragmentSource = `#version 460
in vec2 vTexCoord;
out vec4 fragColor;

uniform sampler2D screenTexture;

void main() {
	fragColor = texture(screenTexture, vTexCoord);
}
`

// defaultFragmentDecl is the "declaration block" named part of the
// default fragment skeleton (spec §6): standard uniforms plus the
// varying carried over from the screen-quad vertex stage.
const defaultFragmentDecl = `#version 460
in vec2 vTexCoord;
out vec4 fragColor;

uniform vec3 iResolution;
uniform float iTime;
uniform float iTimeDelta;
uniform int iFrame;
uniform float iFrameRate;
uniform float iChannelTime[4];
uniform vec3 iChannelResolution[4];
uniform vec4 iMouse;
uniform vec4 iDate;
uniform float iSampleRate;
`

// defaultFragmentMain is the entry point part calling the user's
// mainImage, matching the classic Shadertoy wrapper.
const defaultFragmentMain = `void main() {
	mainImage(fragColor, gl_FragCoord.xy);
}
`

// defaultComputeDecl is the compute-stage declaration block, used only
// when the backend reports compute-shader support.
const defaultComputeDecl = `#version 460
uniform vec3 iResolution;
uniform float iTime;
uniform float iTimeDelta;
uniform int iFrame;
`
