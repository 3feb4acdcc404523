package program

import (
	"fmt"

	"github.com/soypat/shadertoy/gx"
)

// ImageBinding describes how a channel input wants to be bound for
// image load/store, mirroring gx.Backend.BindImageTexture's parameters
// (spec §4.3's "bound with the image-binding descriptor").
type ImageBinding struct {
	Level   int32
	Layered bool
	Layer   int32
	Access  gx.AccessUsage
	Format  gx.InternalFormat
}

// ChannelInput is the shape a program input's backing channel must
// provide (spec §3's Basic input). The input package's variants (which
// embed input.Base) satisfy this structurally; program does not import
// input, since input imports program (for ImageBinding) and the import
// would be a cycle.
type ChannelInput interface {
	// IsImage reports whether this input binds via image load/store
	// instead of sampling.
	IsImage() bool
	// Texture returns the texture to bind and true, or false if the
	// input currently has no texture (the host substitutes the error
	// texture in that case).
	Texture() (gx.Texture, bool)
	// Sampler returns the sampler object to bind alongside Texture, or
	// nil if the input has none (e.g. image inputs).
	Sampler() gx.Sampler
	// Binding returns the image-binding descriptor, only consulted
	// when IsImage is true.
	Binding() ImageBinding
	// Resolution returns the input's (width, height) for
	// iChannelResolution, or (0, 0) if unknown.
	Resolution() (width, height int32)
	// GLSLType names the uniform's GLSL type for declaration rendering
	// (compiler.InputDefinition), e.g. "sampler2D" or "image2D".
	GLSLType() string
}

// ProgramInput pairs a named or unnamed channel with the sampler
// uniform name the host should bind it to (spec §4.3).
type ProgramInput struct {
	// Name is the sampler/image uniform name. Empty means "use the
	// positional iChannelN fallback, N < 4".
	Name    string
	Channel ChannelInput
}

func (p ProgramInput) uniformName(index int) string {
	if p.Name != "" {
		return p.Name
	}
	if index < 4 {
		return fmt.Sprintf("iChannel%d", index)
	}
	return ""
}

// Host is a linked program plus its ordered channel inputs and lazily
// built interface (spec §4.3's "program host").
type Host struct {
	backend      gx.Backend
	tpl          *Template
	errorTexture gx.Texture

	Program gx.Program
	Inputs  []ProgramInput
	Iface   *Interface
}

// NewHost returns a host bound to backend and tpl. errorTexture is
// substituted for any input whose Texture() is unavailable
// (spec §7's "missing channel input → substitute error texture").
func NewHost(backend gx.Backend, tpl *Template, errorTexture gx.Texture) *Host {
	return &Host{backend: backend, tpl: tpl, errorTexture: errorTexture}
}

// InitProgram builds the program for stage (fragment compiles
// vertex+fragment, compute compiles compute only), builds its
// interface, and assigns each named input's sampler uniform to its
// positional texture unit (spec §4.3's init_program).
func (h *Host) InitProgram(stage gx.Stage) error {
	var stages []gx.Stage
	switch stage {
	case gx.StageFragment:
		stages = []gx.Stage{gx.StageVertex, gx.StageFragment}
	case gx.StageCompute:
		stages = []gx.Stage{gx.StageCompute}
	default:
		return gx.NewConfigError("program host: invalid init_program stage %s", stage)
	}

	prog, err := h.tpl.BuildProgram(stages)
	if err != nil {
		return err
	}
	iface, err := BuildInterface(prog)
	if err != nil {
		prog.Delete()
		return err
	}
	h.Program = prog
	h.Iface = iface

	for idx, in := range h.Inputs {
		name := in.uniformName(idx)
		if name == "" {
			continue
		}
		if _, ok := h.Iface.Uniform(name); !ok {
			continue
		}
		loc, err := h.Program.UniformLocation(name)
		if err != nil || !loc.Valid() {
			continue
		}
		loc.SetInt(int32(idx))
	}
	return nil
}

// PrepareRender binds the program, walks the input list assigning
// independent texture-unit and image-unit counters, binds each input's
// texture/sampler or image, sets the corresponding sampler uniform to
// its assigned unit, writes iChannelResolution[0..3] for the first
// four texture inputs, then unbinds every texture unit beyond the last
// one used (spec §4.3's prepare_render).
func (h *Host) PrepareRender() error {
	if h.Program == nil {
		return &gx.NullResourceError{Kind: "Program"}
	}
	h.backend.UseProgram(h.Program)

	textureUnit := 0
	imageUnit := 0
	resolutionIndex := 0

	for idx, in := range h.Inputs {
		name := in.uniformName(idx)
		ch := in.Channel
		if ch == nil {
			continue
		}

		var unit int
		if ch.IsImage() {
			unit = imageUnit
			imageUnit++
			tex, ok := ch.Texture()
			if !ok {
				tex = h.errorTexture
			}
			binding := ch.Binding()
			h.backend.BindImageTexture(unit, tex, binding.Level, binding.Layered, binding.Layer, binding.Access, binding.Format)
		} else {
			unit = textureUnit
			textureUnit++
			tex, ok := ch.Texture()
			if !ok {
				tex = h.errorTexture
			}
			h.backend.BindTexture(unit, tex)
			if s := ch.Sampler(); s != nil {
				s.Bind(unit)
			}
			if resolutionIndex < 4 {
				w, hh := ch.Resolution()
				h.setChannelResolution(resolutionIndex, w, hh)
				resolutionIndex++
			}
		}

		if name == "" {
			continue
		}
		if _, ok := h.Iface.Uniform(name); !ok {
			continue
		}
		loc, err := h.Program.UniformLocation(name)
		if err != nil || !loc.Valid() {
			continue
		}
		loc.SetInt(int32(unit))
	}

	lastUnit := textureUnit
	h.backend.UnbindTextureUnits(lastUnit, -1)
	return nil
}

func (h *Host) setChannelResolution(index int, w, height int32) {
	name := "iChannelResolution"
	if _, ok := h.Iface.Uniform(name); !ok {
		return
	}
	loc, err := h.Program.UniformLocation(fmt.Sprintf("%s[%d]", name, index))
	if err != nil || !loc.Valid() {
		return
	}
	loc.SetFloat(float32(w), float32(height), 1.0)
}
