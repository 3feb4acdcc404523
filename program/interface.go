package program

import "github.com/soypat/shadertoy/gx"

// Interface is a linked program's reflected uniform/input/output
// resource lists, indexed by name for O(1) lookup (spec §3's "Program
// interface", §4.3's "lazily-built ProgramInterface").
type Interface struct {
	uniforms map[string]gx.ProgramResource
	inputs   map[string]gx.ProgramResource
	outputs  map[string]gx.ProgramResource

	uniformOrder []string
	outputOrder  []string
}

// BuildInterface queries prog's uniform, input, and output resources
// and indexes them by name.
func BuildInterface(prog gx.Program) (*Interface, error) {
	uniforms, err := prog.Uniforms()
	if err != nil {
		return nil, err
	}
	inputs, err := prog.Inputs()
	if err != nil {
		return nil, err
	}
	outputs, err := prog.Outputs()
	if err != nil {
		return nil, err
	}

	iface := &Interface{
		uniforms: make(map[string]gx.ProgramResource, len(uniforms)),
		inputs:   make(map[string]gx.ProgramResource, len(inputs)),
		outputs:  make(map[string]gx.ProgramResource, len(outputs)),
	}
	for _, u := range uniforms {
		iface.uniforms[u.Name] = u
		iface.uniformOrder = append(iface.uniformOrder, u.Name)
	}
	for _, i := range inputs {
		iface.inputs[i.Name] = i
	}
	for _, o := range outputs {
		iface.outputs[o.Name] = o
		iface.outputOrder = append(iface.outputOrder, o.Name)
	}
	return iface, nil
}

// Uniform returns the named uniform resource, and whether it is active
// in the linked program. Setting an inactive uniform is defined by
// spec §6 to be a silent no-op; callers should check ok before calling
// UniformLocation.
func (i *Interface) Uniform(name string) (gx.ProgramResource, bool) {
	r, ok := i.uniforms[name]
	return r, ok
}

// Input returns the named vertex-attribute input resource.
func (i *Interface) Input(name string) (gx.ProgramResource, bool) {
	r, ok := i.inputs[name]
	return r, ok
}

// Output returns the named color-output resource.
func (i *Interface) Output(name string) (gx.ProgramResource, bool) {
	r, ok := i.outputs[name]
	return r, ok
}

// Uniforms returns every reflected uniform in query order.
func (i *Interface) Uniforms() []gx.ProgramResource {
	out := make([]gx.ProgramResource, len(i.uniformOrder))
	for idx, name := range i.uniformOrder {
		out[idx] = i.uniforms[name]
	}
	return out
}

// Outputs returns every reflected color output in query order, the
// list buffer.ToyBuffer.Outputs/output discovery (spec §4.4) walks to
// populate a member's I/O output specs.
func (i *Interface) Outputs() []gx.ProgramResource {
	out := make([]gx.ProgramResource, len(i.outputOrder))
	for idx, name := range i.outputOrder {
		out[idx] = i.outputs[name]
	}
	return out
}
