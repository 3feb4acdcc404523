package gx

import "fmt"

// ShaderCompilationError reports a failed shader compile. Log has already
// been rewritten by compiler.RewriteLog when raised from this module's own
// compile path; backends raising it directly pass the driver log verbatim.
type ShaderCompilationError struct {
	Stage Stage
	ID    uint32
	Log   string
}

func (e *ShaderCompilationError) Error() string {
	return fmt.Sprintf("shader compilation failed (stage=%s, id=%d): %s", e.Stage, e.ID, e.Log)
}

// ProgramLinkError reports a failed glLinkProgram.
type ProgramLinkError struct {
	ID  uint32
	Log string
}

func (e *ProgramLinkError) Error() string {
	return fmt.Sprintf("program link failed (id=%d): %s", e.ID, e.Log)
}

// ProgramValidateError reports a failed glValidateProgram.
type ProgramValidateError struct {
	ID  uint32
	Log string
}

func (e *ProgramValidateError) Error() string {
	return fmt.Sprintf("program validation failed (id=%d): %s", e.ID, e.Log)
}

// NullResourceError is raised when a zero-valued (moved-from or
// never-allocated) GX handle is used.
type NullResourceError struct {
	Kind string // "Program", "Texture", "Framebuffer", etc.
}

func (e *NullResourceError) Error() string {
	return fmt.Sprintf("null %s resource used", e.Kind)
}

// ShadertoyError reports a configuration mistake: zero size, wrong clear
// bits, invalid blend function/polygon mode, and similar caller errors
// that are not a driver failure.
type ShadertoyError struct {
	Msg string
}

func (e *ShadertoyError) Error() string { return e.Msg }

// NewConfigError constructs a ShadertoyError.
func NewConfigError(format string, args ...any) error {
	return &ShadertoyError{Msg: fmt.Sprintf(format, args...)}
}
