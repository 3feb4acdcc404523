// Package ioresource implements the I/O resource of spec §3/§4.4/§4.5:
// the set of output-buffer specs and the source/target texture pairs
// backing a swap-chain member, under one of three swap policies.
//
// This continues soypat/glgl's texture-allocation helpers
// (v4.6-core/glgl's TextureImgConfig / NewTextureImg) but generalizes a
// single texture into a list of named output buffers, each
// independently swapped, following
// original_source/src/io_resource.cpp's output_buffer::allocate/swap
// almost line for line.
package ioresource

import (
	"github.com/soypat/shadertoy/gx"
)

// SwapPolicy selects how many textures an output buffer allocates and
// how render() picks its draw target (spec §3, supplemented from
// original_source/include/shadertoy/member_swap_policy.hpp).
type SwapPolicy uint8

const (
	// DoubleBuffer (ping-pong) allocates both a source and a target
	// texture; swap() exchanges them. Required for a pass that reads
	// its own previous output.
	DoubleBuffer SwapPolicy = iota
	// SingleBuffer allocates only a source texture; swap() is a no-op.
	// Suited to passes that never read their own output.
	SingleBuffer
	// DefaultFramebuffer allocates no textures at all; the pass renders
	// directly into the windowing-system framebuffer.
	DefaultFramebuffer
)

// OutputNameInfo identifies one output slot by name and the GLSL
// fragment-output location it was declared at (spec §4.4's
// "(name, location)").
type OutputNameInfo struct {
	Name     string
	Location int32
}

// SizeRef resolves to a concrete pixel size at allocation time — either
// a fixed value or a reference to a window/viewport size the caller
// controls, matching the reference's rsize_ref indirection.
type SizeRef interface {
	Resolve() (width, height int32)
}

// FixedSize is the simplest SizeRef: a constant width/height pair.
type FixedSize struct{ Width, Height int32 }

func (f FixedSize) Resolve() (int32, int32) { return f.Width, f.Height }

// OutputBufferSpec describes one output texture a buffer renders into:
// its size, its (name, location) identity, and its internal format.
type OutputBufferSpec struct {
	RenderSize     SizeRef
	Name           OutputNameInfo
	InternalFormat gx.InternalFormat
}

// OutputAllocator customizes the size/format an output buffer is
// allocated with, given its discovered spec and the member's default
// size (spec §4.4's "output allocator").
type OutputAllocator func(spec OutputBufferSpec, defaultSize SizeRef) (SizeRef, gx.InternalFormat)

// DefaultOutputAllocator returns spec's own size and format unchanged.
func DefaultOutputAllocator(spec OutputBufferSpec, defaultSize SizeRef) (SizeRef, gx.InternalFormat) {
	return spec.RenderSize, spec.InternalFormat
}

type outputBuffer struct {
	sourceTex gx.Texture
	targetTex gx.Texture

	sourceSize   int32Pair
	sourceFormat gx.InternalFormat
}

type int32Pair struct{ W, H int32 }

// SourceTexture returns this output's source texture, or the zero
// Texture if unallocated (DefaultFramebuffer policy).
func (o *outputBuffer) SourceTexture() gx.Texture { return o.sourceTex }

// TargetTexture returns the texture the next render pass should draw
// into: target_tex if double-buffered, else source_tex (single-buffer,
// or default-framebuffer where both are nil).
func (o *outputBuffer) TargetTexture() gx.Texture {
	if o.targetTex != nil {
		return o.targetTex
	}
	return o.sourceTex
}

func (o *outputBuffer) allocate(backend gx.Backend, spec OutputBufferSpec, policy SwapPolicy) error {
	w, h := spec.RenderSize.Resolve()
	if w <= 0 || h <= 0 {
		return gx.NewConfigError("io resource: output %q has zero size", spec.Name.Name)
	}

	currentPolicy := DefaultFramebuffer
	if o.sourceTex != nil {
		currentPolicy = SingleBuffer
	}
	if o.targetTex != nil {
		currentPolicy = DoubleBuffer
	}

	unchanged := o.sourceTex != nil &&
		o.sourceSize == (int32Pair{w, h}) &&
		o.sourceFormat == spec.InternalFormat &&
		currentPolicy == policy
	if unchanged {
		return nil
	}

	switch policy {
	case DoubleBuffer:
		if err := initRenderTexture(backend, &o.sourceTex, spec, w, h); err != nil {
			return err
		}
		if err := initRenderTexture(backend, &o.targetTex, spec, w, h); err != nil {
			return err
		}
	case SingleBuffer:
		if err := initRenderTexture(backend, &o.sourceTex, spec, w, h); err != nil {
			return err
		}
		if o.targetTex != nil {
			o.targetTex.Delete()
			o.targetTex = nil
		}
	case DefaultFramebuffer:
		if o.sourceTex != nil {
			o.sourceTex.Delete()
			o.sourceTex = nil
		}
		if o.targetTex != nil {
			o.targetTex.Delete()
			o.targetTex = nil
		}
	}
	o.sourceSize = int32Pair{w, h}
	o.sourceFormat = spec.InternalFormat
	return nil
}

func initRenderTexture(backend gx.Backend, texptr *gx.Texture, spec OutputBufferSpec, w, h int32) error {
	if *texptr == nil {
		tex, err := backend.NewTexture(gx.Texture2D)
		if err != nil {
			return err
		}
		*texptr = tex
	}
	return (*texptr).Image(0, spec.InternalFormat, w, h, nil)
}

func (o *outputBuffer) swap(spec OutputBufferSpec, policy SwapPolicy) {
	if policy == DefaultFramebuffer {
		return
	}
	if o.targetTex != nil {
		o.sourceTex, o.targetTex = o.targetTex, o.sourceTex
	}
}

// Resource is the set of output buffers backing a swap-chain member
// (spec §3's I/O resource, §8 property 4).
type Resource struct {
	backend gx.Backend
	policy  SwapPolicy
	specs   []OutputBufferSpec
	outputs []outputBuffer
}

// New returns an empty I/O resource under policy.
func New(backend gx.Backend, policy SwapPolicy) *Resource {
	return &Resource{backend: backend, policy: policy}
}

// Policy returns the resource's swap policy.
func (r *Resource) Policy() SwapPolicy { return r.policy }

// OutputSpecs returns the resource's output specs, in declaration
// order. The returned slice aliases the resource's own storage, so
// callers may mutate its elements in place before Allocate; an append
// to it is not seen by the resource (use SetOutputSpecs to change the
// list, as output discovery does).
func (r *Resource) OutputSpecs() []OutputBufferSpec { return r.specs }

// SetOutputSpecs replaces the resource's output spec list.
func (r *Resource) SetOutputSpecs(specs []OutputBufferSpec) { r.specs = specs }

// Allocate (re)allocates every output's textures per the resource's
// swap policy. Reallocation of an individual output is skipped if its
// size, format, and policy are unchanged since the last Allocate call
// (spec §8 property 4).
func (r *Resource) Allocate() error {
	if len(r.outputs) != len(r.specs) {
		grown := make([]outputBuffer, len(r.specs))
		copy(grown, r.outputs)
		r.outputs = grown
	}
	for i := range r.specs {
		if err := r.outputs[i].allocate(r.backend, r.specs[i], r.policy); err != nil {
			return err
		}
	}
	return nil
}

// Swap exchanges source/target for every double-buffered output; a
// no-op for single-buffer and default-framebuffer outputs.
func (r *Resource) Swap() {
	for i := range r.outputs {
		r.outputs[i].swap(r.specs[i], r.policy)
	}
}

// SourceTexture returns output i's source texture (the texture a
// subsequent pass should sample from).
func (r *Resource) SourceTexture(i int) gx.Texture {
	if i < 0 || i >= len(r.outputs) {
		return nil
	}
	return r.outputs[i].SourceTexture()
}

// TargetTexture returns output i's render target for the next render
// pass (spec §4.4 step 3: "attach each io.target_texture(i)").
func (r *Resource) TargetTexture(i int) gx.Texture {
	if i < 0 || i >= len(r.outputs) {
		return nil
	}
	return r.outputs[i].TargetTexture()
}

// NumOutputs returns the number of output buffers currently allocated.
func (r *Resource) NumOutputs() int { return len(r.outputs) }
