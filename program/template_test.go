package program

import (
	"testing"

	"github.com/soypat/shadertoy/compiler"
	"github.com/soypat/shadertoy/gx"
)

func TestTemplateGetSource(t *testing.T) {
	stageTpl, err := compiler.NewTemplate(
		compiler.NewStringPart("decl", "#version 460\n"),
		compiler.Unspecified("body"),
	)
	if err != nil {
		t.Fatal(err)
	}

	tpl := NewTemplate(nil)
	if err := tpl.Emplace(gx.StageFragment, stageTpl); err != nil {
		t.Fatal(err)
	}
	if err := tpl.Emplace(gx.StageFragment, stageTpl); err == nil {
		t.Fatal("expected error re-emplacing an occupied stage")
	}

	body := compiler.NewStringPart("body", "void mainImage() {}\n")
	src, err := tpl.GetSource(gx.StageFragment, map[string]compiler.Part{"body": body})
	if err != nil {
		t.Fatal(err)
	}
	want := "#version 460\nvoid mainImage() {}\n\x00"
	if src != want {
		t.Errorf("got %q want %q", src, want)
	}
}

func TestTemplateGetSourceMissingStage(t *testing.T) {
	tpl := NewTemplate(nil)
	if _, err := tpl.GetSource(gx.StageCompute, nil); err == nil {
		t.Fatal("expected error for unregistered stage")
	}
}

func TestTemplateGetSourceAutoFillsDefines(t *testing.T) {
	stageTpl, err := compiler.NewTemplate(
		compiler.NewStringPart("decl", "#version 460\n"),
		compiler.Unspecified("glsl:defines"),
		compiler.Unspecified("*:defines"),
	)
	if err != nil {
		t.Fatal(err)
	}

	tpl := NewTemplate(nil)
	if err := tpl.Emplace(gx.StageFragment, stageTpl); err != nil {
		t.Fatal(err)
	}
	d := compiler.NewDefinePart("glsl")
	d.Set("LIBSHADERTOY", "1")
	if err := tpl.RegisterDefines(d); err != nil {
		t.Fatal(err)
	}

	src, err := tpl.GetSource(gx.StageFragment, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := "#version 460\n#define LIBSHADERTOY 1\n#define LIBSHADERTOY 1\n\x00"
	if src != want {
		t.Errorf("got %q want %q", src, want)
	}
}

func TestTemplateRegisterDefinesRejectsDuplicateName(t *testing.T) {
	tpl := NewTemplate(nil)
	if err := tpl.RegisterDefines(compiler.NewDefinePart("glsl")); err != nil {
		t.Fatal(err)
	}
	if err := tpl.RegisterDefines(compiler.NewDefinePart("glsl")); err == nil {
		t.Fatal("expected error registering a duplicate defines name")
	}
}

func TestProgramInputUniformName(t *testing.T) {
	tests := []struct {
		in    ProgramInput
		index int
		want  string
	}{
		{ProgramInput{Name: "iTex"}, 0, "iTex"},
		{ProgramInput{}, 0, "iChannel0"},
		{ProgramInput{}, 3, "iChannel3"},
		{ProgramInput{}, 4, ""},
	}
	for _, tc := range tests {
		if got := tc.in.uniformName(tc.index); got != tc.want {
			t.Errorf("uniformName(%+v, %d) = %q, want %q", tc.in, tc.index, got, tc.want)
		}
	}
}
