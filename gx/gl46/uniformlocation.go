//go:build !tinygo && cgo

package gl46

import "github.com/go-gl/gl/v4.6-core/gl"

// UniformLocation sets values on a single active uniform, continuing
// soypat/glgl/shaders.go's SetUniformf/SetUniformi/SetUniformui dispatch
// on argument count.
type UniformLocation struct {
	loc int32
}

func (u *UniformLocation) Valid() bool { return u.loc >= 0 }

func (u *UniformLocation) SetFloat(v ...float32) {
	if !u.Valid() {
		return
	}
	switch len(v) {
	case 1:
		gl.Uniform1f(u.loc, v[0])
	case 2:
		gl.Uniform2f(u.loc, v[0], v[1])
	case 3:
		gl.Uniform3f(u.loc, v[0], v[1], v[2])
	case 4:
		gl.Uniform4f(u.loc, v[0], v[1], v[2], v[3])
	}
}

func (u *UniformLocation) SetInt(v ...int32) {
	if !u.Valid() {
		return
	}
	switch len(v) {
	case 1:
		gl.Uniform1i(u.loc, v[0])
	case 2:
		gl.Uniform2i(u.loc, v[0], v[1])
	case 3:
		gl.Uniform3i(u.loc, v[0], v[1], v[2])
	case 4:
		gl.Uniform4i(u.loc, v[0], v[1], v[2], v[3])
	}
}

func (u *UniformLocation) SetUint(v ...uint32) {
	if !u.Valid() {
		return
	}
	switch len(v) {
	case 1:
		gl.Uniform1ui(u.loc, v[0])
	case 2:
		gl.Uniform2ui(u.loc, v[0], v[1])
	case 3:
		gl.Uniform3ui(u.loc, v[0], v[1], v[2])
	case 4:
		gl.Uniform4ui(u.loc, v[0], v[1], v[2], v[3])
	}
}
