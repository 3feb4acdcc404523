package input

import (
	"log/slog"

	"github.com/soypat/shadertoy/gx"
)

// MemberRef is an arena-and-index weak reference into a swap chain's
// member list, replacing the reference's std::weak_ptr<basic_member>
// (spec §9's "weak_ptr cycles between members" note). Generation is
// bumped by the owning swapchain.Chain whenever a slot is reused, so a
// stale MemberRef naturally fails to resolve instead of aliasing a
// different member.
type MemberRef struct {
	Index      int
	Generation uint32
}

// MemberSource resolves a MemberRef plus an output name to that
// member's current source texture, matching swapchain.Chain's member
// storage and GraphicsMember.ResolveOutputByName lookup. Returning ok=false models
// both "member generation stale" and "no such output name" — buffer.go
// does not need to distinguish the two, it only needs to re-evaluate
// on every use per TESTABLE PROPERTY 9.
type MemberSource interface {
	ResolveOutput(ref MemberRef, outputName string) (tex gx.Texture, width, height int32, ok bool)
}

// BufferInput is an input whose texture is another swap-chain member's
// output (spec §3's weak buffer-input reference, §8 property 9). It is
// re-evaluated on every Texture() call rather than loaded once: the
// referenced member re-renders every frame, so there is no stable
// "loaded" state to cache.
type BufferInput struct {
	Base
	source     MemberSource
	ref        MemberRef
	outputName string
	logger     *slog.Logger
}

// NewBufferInput returns an input that resolves to source's member ref
// at the given output name on every use.
func NewBufferInput(backend gx.Backend, source MemberSource, ref MemberRef, outputName string, logger *slog.Logger) *BufferInput {
	in := &BufferInput{source: source, ref: ref, outputName: outputName, logger: logger}
	in.init(backend, in, logger)
	return in
}

// SetMember repoints this input at a new member/output. A buffer input
// is stateless (spec: "the reset method does not need to be called
// after changing the source member"), so no Reset call is required.
func (in *BufferInput) SetMember(ref MemberRef, outputName string) {
	in.ref = ref
	in.outputName = outputName
}

// Member returns the currently referenced member and output name.
func (in *BufferInput) Member() (MemberRef, string) { return in.ref, in.outputName }

func (in *BufferInput) loadInput(backend gx.Backend) (gx.Texture, int32, int32, error) {
	return nil, 0, 0, nil
}

// Texture overrides Base.Texture: resolves the live reference instead
// of consulting a cached, load-once texture (TESTABLE PROPERTY 9).
func (in *BufferInput) Texture() (gx.Texture, bool) {
	logger := in.logger
	if logger == nil {
		logger = slog.Default()
	}
	if err := in.ensureSampler(); err != nil {
		logger.Warn("buffer input: failed to allocate sampler", slog.Any("err", err))
		return nil, false
	}
	tex, w, h, ok := in.source.ResolveOutput(in.ref, in.outputName)
	if !ok {
		logger.Warn("buffer input: referenced output no longer available",
			slog.Int("member_index", in.ref.Index),
			slog.String("output_name", in.outputName))
		return nil, false
	}
	in.width, in.height = w, h
	return tex, true
}
