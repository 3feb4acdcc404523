// Package compiler implements the shader-template engine of spec §4.1: an
// ordered, named sequence of source-producing "parts" that can be
// partially specified and later completed, with diagnostics that map a
// driver's compile-log line number back to the originating part.
//
// This continues soypat/glgl's ParseCombined (splitting one file into
// named shader sections) generalized to many composable parts instead of
// one fixed vertex/fragment/compute/include split, as
// original_source/include/shadertoy/compiler/shader_template.hpp does.
package compiler

import (
	"fmt"
	"strings"
)

// TemplateError reports a template-composition failure: a missing
// specification, a duplicate name, or an operation targeting a part
// that does not exist (spec §4.1, §7).
type TemplateError struct {
	Msg string
}

func (e *TemplateError) Error() string { return e.Msg }

func errTemplatef(format string, args ...any) error {
	return &TemplateError{Msg: fmt.Sprintf(format, args...)}
}

// NamedSource is one (name, source) pair a Part emits. A single Part may
// emit more than one NamedSource (e.g. a define block followed by its
// guard comment), though every Part in this package emits exactly one.
type NamedSource struct {
	Name   string
	Source string
}

// Part is a single named, possibly-unspecified fragment of shader
// source (spec GLOSSARY: "Template part").
type Part interface {
	// Name is the part's identifier, unique within any one Template.
	Name() string
	// Specified reports whether Sources can be called.
	Specified() bool
	// Sources renders this part's contribution. Must not be called
	// unless Specified returns true.
	Sources() ([]NamedSource, error)
	// LineCount returns the number of newlines this part's rendered
	// source contains, used by RewriteLog to attribute a compile-log
	// line number to the owning part. Only meaningful when Specified.
	LineCount() (int, error)
}

// unspecifiedPart is a named placeholder awaiting a matching Part from a
// future Specify call.
type unspecifiedPart struct{ name string }

func (u unspecifiedPart) Name() string   { return u.name }
func (u unspecifiedPart) Specified() bool { return false }
func (u unspecifiedPart) Sources() ([]NamedSource, error) {
	return nil, errTemplatef("template part %s is not specified", u.name)
}
func (u unspecifiedPart) LineCount() (int, error) {
	return 0, errTemplatef("template part %s is not specified", u.name)
}

// Unspecified returns a placeholder Part with the given name. Use it to
// reserve a slot in a Template to be filled later via Specify.
func Unspecified(name string) Part { return unspecifiedPart{name: name} }

// Template is an ordered, at-most-one-per-name sequence of Parts (spec
// §3's "Shader template"). The zero value is an empty template ready to
// use.
type Template struct {
	parts []Part
}

// NewTemplate builds a Template from an initial ordered set of parts,
// failing if any name repeats.
func NewTemplate(parts ...Part) (*Template, error) {
	t := &Template{}
	for _, p := range parts {
		if err := t.Add(p); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Template) indexOf(name string) int {
	for i, p := range t.parts {
		if p.Name() == name {
			return i
		}
	}
	return -1
}

// FindByName returns the part named name, if present.
func (t *Template) FindByName(name string) (Part, bool) {
	i := t.indexOf(name)
	if i < 0 {
		return nil, false
	}
	return t.parts[i], true
}

// Add appends part to the end of the template. Fails if a part with the
// same name already exists (TESTABLE PROPERTY 2); the template is left
// unchanged on failure.
func (t *Template) Add(part Part) error {
	if t.indexOf(part.Name()) >= 0 {
		return errTemplatef("template part %s already exists", part.Name())
	}
	t.parts = append(t.parts, part)
	return nil
}

// InsertBefore inserts part immediately before the part named target.
func (t *Template) InsertBefore(target string, part Part) error {
	if t.indexOf(part.Name()) >= 0 {
		return errTemplatef("template part %s already exists", part.Name())
	}
	i := t.indexOf(target)
	if i < 0 {
		return errTemplatef("template part %s does not exist", target)
	}
	t.insertAt(i, part)
	return nil
}

// InsertAfter inserts part immediately after the part named target.
func (t *Template) InsertAfter(target string, part Part) error {
	if t.indexOf(part.Name()) >= 0 {
		return errTemplatef("template part %s already exists", part.Name())
	}
	i := t.indexOf(target)
	if i < 0 {
		return errTemplatef("template part %s does not exist", target)
	}
	t.insertAt(i+1, part)
	return nil
}

func (t *Template) insertAt(i int, part Part) {
	t.parts = append(t.parts, nil)
	copy(t.parts[i+1:], t.parts[i:])
	t.parts[i] = part
}

// Replace substitutes the part named name with part, whatever part's own
// name is. Fails if name does not exist, or if part's name collides with
// a different existing part.
func (t *Template) Replace(name string, part Part) error {
	i := t.indexOf(name)
	if i < 0 {
		return errTemplatef("template part %s does not exist", name)
	}
	if part.Name() != name {
		if j := t.indexOf(part.Name()); j >= 0 {
			return errTemplatef("template part %s already exists", part.Name())
		}
	}
	t.parts[i] = part
	return nil
}

// EraseByName removes the part named name. Fails if it does not exist.
func (t *Template) EraseByName(name string) error {
	i := t.indexOf(name)
	if i < 0 {
		return errTemplatef("template part %s does not exist", name)
	}
	t.parts = append(t.parts[:i], t.parts[i+1:]...)
	return nil
}

// Parts returns the ordered parts of the template. The returned slice is
// owned by the caller; mutating it does not affect t.
func (t *Template) Parts() []Part {
	out := make([]Part, len(t.parts))
	copy(out, t.parts)
	return out
}

// Clone returns a shallow copy of t: the same Part values in the same
// order, safe to mutate independently of t.
func (t *Template) Clone() *Template {
	out := &Template{parts: make([]Part, len(t.parts))}
	copy(out.parts, t.parts)
	return out
}

// Specify returns a new Template where every unspecified part whose name
// appears in replacements is replaced by the matching replacement part.
// Specified parts are preserved unchanged; unspecified parts with no
// matching replacement remain unspecified (TESTABLE PROPERTY 1).
// Specifying an already-specified part is a no-op: a replacements entry
// for an already-specified name is simply ignored.
func (t *Template) Specify(replacements map[string]Part) *Template {
	out := t.Clone()
	for i, p := range out.parts {
		if p.Specified() {
			continue
		}
		if r, ok := replacements[p.Name()]; ok {
			out.parts[i] = r
		}
	}
	return out
}

// Sources concatenates every part's Sources() in order. Fails with a
// TemplateError naming the first unspecified part encountered.
func (t *Template) Sources() ([]NamedSource, error) {
	var out []NamedSource
	for _, p := range t.parts {
		if !p.Specified() {
			return nil, errTemplatef("template part %s is not specified", p.Name())
		}
		ns, err := p.Sources()
		if err != nil {
			return nil, err
		}
		out = append(out, ns...)
	}
	return out, nil
}

// Joined concatenates Sources into a single source string, in part
// order, each part's contribution separated by a newline, terminated
// with a NUL byte the way glgl's ParseCombined does before handing
// source off to gl.ShaderSource (v4.6-core/glgl/parse.go's
// WriteByte(0)) — gx.Shader.Compile requires it.
func (t *Template) Joined() (string, error) {
	ns, err := t.Sources()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, n := range ns {
		b.WriteString(n.Source)
		if !strings.HasSuffix(n.Source, "\n") {
			b.WriteByte('\n')
		}
	}
	b.WriteByte(0)
	return b.String(), nil
}

// LineCounts returns, for each part in order, its name and the number
// of lines it contributes to Joined (its LineCount plus the newline
// Joined appends to any source lacking one) — the input RewriteLog
// needs to attribute a log line number back to a part name (TESTABLE
// PROPERTY 3). Fails on the first unspecified part.
func (t *Template) LineCounts() ([]PartLines, error) {
	out := make([]PartLines, 0, len(t.parts))
	for _, p := range t.parts {
		n, err := p.LineCount()
		if err != nil {
			return nil, err
		}
		ns, err := p.Sources()
		if err != nil {
			return nil, err
		}
		for _, s := range ns {
			if !strings.HasSuffix(s.Source, "\n") {
				n++
			}
		}
		out = append(out, PartLines{Name: p.Name(), Lines: n})
	}
	return out, nil
}

// PartLines pairs a part name with its rendered line count.
type PartLines struct {
	Name  string
	Lines int
}
