package compiler

import (
	"os"
	"sort"
	"strings"
)

// StringPart is an explicit, already-rendered source fragment (spec
// §3's "string" template part variant).
type StringPart struct {
	name   string
	source string
}

// NewStringPart builds a specified part from literal source text.
func NewStringPart(name, source string) *StringPart {
	return &StringPart{name: name, source: source}
}

func (p *StringPart) Name() string    { return p.name }
func (p *StringPart) Specified() bool { return true }
func (p *StringPart) Sources() ([]NamedSource, error) {
	return []NamedSource{{Name: p.name, Source: p.source}}, nil
}
func (p *StringPart) LineCount() (int, error) {
	return strings.Count(p.source, "\n"), nil
}

// FilePart reads its source from disk the moment Sources is called,
// continuing original_source/include/shadertoy/compiler/file_part.hpp:
// the file is re-read on every Sources call rather than cached, so
// edits on disk are picked up by the next compile.
type FilePart struct {
	name string
	path string
}

// NewFilePart builds a part that reads path lazily at Sources() time.
func NewFilePart(name, path string) *FilePart {
	return &FilePart{name: name, path: path}
}

func (p *FilePart) Name() string    { return p.name }
func (p *FilePart) Specified() bool { return true }

func (p *FilePart) read() (string, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return "", errTemplatef("template part %s: open %s: %v", p.name, p.path, err)
	}
	src := string(data)
	if !strings.HasSuffix(src, "\n") {
		src += "\n"
	}
	return src, nil
}

func (p *FilePart) Sources() ([]NamedSource, error) {
	src, err := p.read()
	if err != nil {
		return nil, err
	}
	return []NamedSource{{Name: p.name, Source: src}}, nil
}

func (p *FilePart) LineCount() (int, error) {
	src, err := p.read()
	if err != nil {
		return 0, err
	}
	return strings.Count(src, "\n"), nil
}

// DefinePart renders an insertion-ordered set of #define key/value pairs
// (spec §3's Preprocessor-defines part). The rendered string is memoized
// until the next mutation, matching the reference's caching behavior.
type DefinePart struct {
	name    string
	keys    []string
	values  map[string]string
	cached  string
	hasCache bool
}

// NewDefinePart returns an empty, mutable define block named name.
func NewDefinePart(name string) *DefinePart {
	return &DefinePart{name: name, values: map[string]string{}}
}

func (p *DefinePart) Name() string    { return p.name }
func (p *DefinePart) Specified() bool { return true }

// Set inserts or updates key with value, invalidating the memoized
// render. An empty value renders as a bare "#define key" with no
// trailing value.
func (p *DefinePart) Set(key, value string) {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
	p.hasCache = false
	p.cached = ""
}

// Unset removes key, invalidating the memoized render.
func (p *DefinePart) Unset(key string) {
	if _, ok := p.values[key]; !ok {
		return
	}
	delete(p.values, key)
	for i, k := range p.keys {
		if k == key {
			p.keys = append(p.keys[:i], p.keys[i+1:]...)
			break
		}
	}
	p.hasCache = false
	p.cached = ""
}

func (p *DefinePart) render() string {
	if p.hasCache {
		return p.cached
	}
	var b strings.Builder
	for _, k := range p.keys {
		b.WriteString("#define ")
		b.WriteString(k)
		if v := p.values[k]; v != "" {
			b.WriteByte(' ')
			b.WriteString(v)
		}
		b.WriteByte('\n')
	}
	p.cached = b.String()
	p.hasCache = true
	return p.cached
}

func (p *DefinePart) Sources() ([]NamedSource, error) {
	return []NamedSource{{Name: p.name, Source: p.render()}}, nil
}

func (p *DefinePart) LineCount() (int, error) {
	return strings.Count(p.render(), "\n"), nil
}

// Keys returns the define block's keys in insertion order.
func (p *DefinePart) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// SortedKeys returns a deterministic, lexicographically sorted copy of
// Keys, used only for diagnostics/tests where insertion order would
// otherwise make output comparisons brittle.
func (p *DefinePart) SortedKeys() []string {
	out := p.Keys()
	sort.Strings(out)
	return out
}

// InputDefinition is the minimal shape InputPart needs of a program's
// channel-input list to render "uniform sampler2D ...;" declarations
// (spec §3's Program input / §4.1's input part).
type InputDefinition struct {
	// Name is empty for unnamed (legacy iChannelN) inputs.
	Name             string
	GLSLType         string // e.g. "sampler2D", "image2D"
	MemoryQualifier  string // e.g. "readonly", empty if none
}

// DefinitionString renders one input's GLSL declaration, matching
// original_source/include/shadertoy/program_input.hpp's
// definition_string(): unnamed inputs render as a comment instead of a
// uniform declaration, since index-based iChannelN binding needs no
// named uniform of its own beyond the ones the default template already
// declares.
func (d InputDefinition) DefinitionString() string {
	if d.Name == "" {
		return "/* unnamed " + d.GLSLType + " input */"
	}
	var b strings.Builder
	if d.MemoryQualifier != "" {
		b.WriteString(d.MemoryQualifier)
		b.WriteByte(' ')
	}
	b.WriteString("uniform ")
	b.WriteString(d.GLSLType)
	b.WriteByte(' ')
	b.WriteString(d.Name)
	b.WriteByte(';')
	return b.String()
}

// InputPart renders one definition_string() per program input declared
// against it (spec §4.1's input part).
type InputPart struct {
	name   string
	inputs []InputDefinition
}

// NewInputPart builds a part listing the GLSL declarations for inputs.
func NewInputPart(name string, inputs []InputDefinition) *InputPart {
	return &InputPart{name: name, inputs: inputs}
}

func (p *InputPart) Name() string    { return p.name }
func (p *InputPart) Specified() bool { return true }

func (p *InputPart) render() string {
	lines := make([]string, len(p.inputs))
	for i, in := range p.inputs {
		lines[i] = in.DefinitionString()
	}
	return strings.Join(lines, "\n")
}

func (p *InputPart) Sources() ([]NamedSource, error) {
	return []NamedSource{{Name: p.name, Source: p.render()}}, nil
}

func (p *InputPart) LineCount() (int, error) {
	return strings.Count(p.render(), "\n"), nil
}
