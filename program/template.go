// Package program implements the program template and program host of
// spec §4.2–§4.3: per-stage shader templates with a precompile cache,
// and the host that links a program, reflects its interface, and binds
// channel inputs/uniforms each frame.
//
// This continues soypat/glgl's compileSources/makeProgram pattern
// (v4.6-core/glgl/glgl.go), generalized from a fixed vertex+fragment
// pair to an arbitrary stage set driven by compiler.Template, as
// original_source/include/shadertoy/program_template.hpp does.
package program

import (
	"fmt"
	"strings"

	"github.com/soypat/shadertoy/compiler"
	"github.com/soypat/shadertoy/gx"
)

// Template holds one compiler.Template per shader stage, caches the
// compiled gx.Shader produced for each (spec §4.2), and registers the
// define blocks every stage's "*:defines"/"<name>:defines" auto-fill
// parts draw from (spec §3's part-name convention).
type Template struct {
	backend     gx.Backend
	stages      map[gx.Stage]*compiler.Template
	compiled    map[gx.Stage]gx.Shader
	defineNames []string
	defines     map[string]*compiler.DefinePart
}

// NewTemplate returns an empty program template bound to backend.
func NewTemplate(backend gx.Backend) *Template {
	return &Template{
		backend:  backend,
		stages:   map[gx.Stage]*compiler.Template{},
		compiled: map[gx.Stage]gx.Shader{},
		defines:  map[string]*compiler.DefinePart{},
	}
}

// Emplace inserts tpl for stage. Fails if stage already has a template.
func (t *Template) Emplace(stage gx.Stage, tpl *compiler.Template) error {
	if _, ok := t.stages[stage]; ok {
		return fmt.Errorf("program template: stage %s already present", stage)
	}
	t.stages[stage] = tpl
	return nil
}

// StageTemplate returns the template registered for stage, if any.
func (t *Template) StageTemplate(stage gx.Stage) (*compiler.Template, bool) {
	tpl, ok := t.stages[stage]
	return tpl, ok
}

// ReplaceStage overwrites whatever template stage currently holds
// (inserting if absent) and discards any cached compiled shader for
// it. Unlike Emplace, this never fails on an existing stage: it is
// used by per-buffer program templates cloned from a shared default
// (rendercontext.Context.BufferTemplate) to specify their own
// "buffer:inputs"/"buffer:sources" parts without disturbing Emplace's
// duplicate-stage invariant for first-time construction.
func (t *Template) ReplaceStage(stage gx.Stage, tpl *compiler.Template) {
	t.stages[stage] = tpl
	delete(t.compiled, stage)
}

// Clone returns a copy of t whose stage map and compiled-shader cache
// can be mutated independently; the compiler.Template and gx.Shader
// values themselves are shared (compiler.Template is copy-on-write via
// its own Clone, and a cached gx.Shader is safe to attach to many
// programs).
func (t *Template) Clone() *Template {
	out := &Template{
		backend:     t.backend,
		stages:      make(map[gx.Stage]*compiler.Template, len(t.stages)),
		compiled:    make(map[gx.Stage]gx.Shader, len(t.compiled)),
		defineNames: append([]string(nil), t.defineNames...),
		defines:     make(map[string]*compiler.DefinePart, len(t.defines)),
	}
	for k, v := range t.stages {
		out.stages[k] = v
	}
	for k, v := range t.compiled {
		out.compiled[k] = v
	}
	for k, v := range t.defines {
		out.defines[k] = v
	}
	return out
}

// RegisterDefines adds d to the template's shared define-block
// registry, keyed by d's own Name(). Any stage's unspecified
// "<name>:defines" part is auto-filled with that single block, and
// "*:defines" with every registered block concatenated in
// registration order (spec §3's part-name convention). Fails if a
// block with the same name is already registered.
func (t *Template) RegisterDefines(d *compiler.DefinePart) error {
	if _, ok := t.defines[d.Name()]; ok {
		return fmt.Errorf("program template: defines block %s already registered", d.Name())
	}
	t.defines[d.Name()] = d
	t.defineNames = append(t.defineNames, d.Name())
	return nil
}

// allDefinesSource concatenates every registered define block's
// rendered source, in registration order, for the "*:defines"
// auto-fill part.
func (t *Template) allDefinesSource() (string, error) {
	var b strings.Builder
	for _, name := range t.defineNames {
		ns, err := t.defines[name].Sources()
		if err != nil {
			return "", err
		}
		for _, n := range ns {
			b.WriteString(n.Source)
		}
	}
	return b.String(), nil
}

// GetSource specifies the stage template with parts plus the
// automatically-derived "<name>:defines"/"*:defines" parts (spec §3),
// then joins it into one source string.
func (t *Template) GetSource(stage gx.Stage, parts map[string]compiler.Part) (string, error) {
	specified, err := t.specifiedStage(stage, parts)
	if err != nil {
		return "", err
	}
	return specified.Joined()
}

// specifiedStage returns the stage template specified with parts plus
// the define-block auto-fill, exactly as GetSource joins it.
func (t *Template) specifiedStage(stage gx.Stage, parts map[string]compiler.Part) (*compiler.Template, error) {
	tpl, ok := t.stages[stage]
	if !ok {
		return nil, fmt.Errorf("program template: no template for stage %s", stage)
	}
	specified := tpl
	if len(parts) > 0 {
		specified = tpl.Specify(parts)
	}
	if len(t.defines) > 0 {
		autofill := make(map[string]compiler.Part, len(t.defines)+1)
		for name, d := range t.defines {
			autofill[name+":defines"] = d
		}
		allSrc, err := t.allDefinesSource()
		if err != nil {
			return nil, err
		}
		autofill["*:defines"] = compiler.NewStringPart("*:defines", allSrc)
		specified = specified.Specify(autofill)
	}
	return specified, nil
}

// Compile links the stage template with no extra parts and caches the
// resulting gx.Shader, discarding and deleting any previously cached
// shader for that stage.
func (t *Template) Compile(stage gx.Stage) (gx.Shader, error) {
	src, err := t.GetSource(stage, nil)
	if err != nil {
		return nil, err
	}
	if old, ok := t.compiled[stage]; ok {
		old.Delete()
		delete(t.compiled, stage)
	}
	sh, err := t.backend.NewShader(stage)
	if err != nil {
		return nil, err
	}
	if err := sh.Compile(src); err != nil {
		counts, lcErr := t.lineCounts(stage)
		if lcErr == nil {
			if ce, ok := err.(*gx.ShaderCompilationError); ok {
				ce.Log = compiler.RewriteLog(ce.Log, counts)
			}
		}
		sh.Delete()
		return nil, err
	}
	t.compiled[stage] = sh
	return sh, nil
}

// Compiled returns the cached shader for stage, if Compile has been
// called since the last template change.
func (t *Template) Compiled(stage gx.Stage) (gx.Shader, bool) {
	sh, ok := t.compiled[stage]
	return sh, ok
}

func (t *Template) lineCounts(stage gx.Stage) ([]compiler.PartLines, error) {
	specified, err := t.specifiedStage(stage, nil)
	if err != nil {
		return nil, err
	}
	return specified.LineCounts()
}

// BuildProgram performs the full compile order of spec §4.2: for each
// requested stage, reuse a precompiled shader or compile a fresh one,
// attach it, then link. On link failure the partial program is deleted
// before the error is returned. On success, shaders are detached (but
// left in the cache for reuse by a later BuildProgram call) and the
// linked program is returned.
func (t *Template) BuildProgram(stages []gx.Stage) (gx.Program, error) {
	prog, err := t.backend.NewProgram()
	if err != nil {
		return nil, err
	}
	var attached []gx.Shader
	for _, stage := range stages {
		sh, ok := t.compiled[stage]
		if !ok {
			sh, err = t.Compile(stage)
			if err != nil {
				prog.Delete()
				return nil, err
			}
		}
		prog.AttachShader(sh)
		attached = append(attached, sh)
	}
	if err := prog.Link(); err != nil {
		for _, sh := range attached {
			prog.DetachShader(sh)
		}
		prog.Delete()
		return nil, err
	}
	for _, sh := range attached {
		prog.DetachShader(sh)
	}
	return prog, nil
}
