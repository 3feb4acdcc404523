// Package input implements the channel input abstraction of spec §3/
// §7: the polymorphic source of a texture bound to a program's
// iChannelN slot, continuing
// original_source/include/shadertoy/inputs/basic_input.hpp's
// load-once/reset/use lifecycle.
//
// Each variant here satisfies program.ChannelInput structurally. This
// package imports program (for program.ImageBinding); program never
// imports input.
package input

import (
	"log/slog"

	"github.com/soypat/shadertoy/gx"
	"github.com/soypat/shadertoy/program"
)

// loader produces a variant's texture and its pixel resolution the
// first time it is needed.
type loader interface {
	loadInput(backend gx.Backend) (tex gx.Texture, width, height int32, err error)
}

// Base implements the sampler ownership and load-once-until-reset
// lifecycle every concrete input variant embeds (spec's basic_input).
// Concrete variants set load to their own loadInput and call
// Base.init once in their constructor.
type Base struct {
	backend gx.Backend
	sampler gx.Sampler
	load    loader
	logger  *slog.Logger

	loaded bool
	tex    gx.Texture
	width  int32
	height int32
}

func (b *Base) init(backend gx.Backend, load loader, logger *slog.Logger) {
	b.backend = backend
	b.load = load
	if logger == nil {
		logger = slog.Default()
	}
	b.logger = logger
}

// Load loads this input's contents if it has not already been loaded
// (spec: "If the input has already been loaded, it will not be loaded
// again").
func (b *Base) Load() error {
	if b.loaded {
		return nil
	}
	if err := b.ensureSampler(); err != nil {
		return err
	}
	tex, w, h, err := b.load.loadInput(b.backend)
	if err != nil {
		b.logger.Warn("channel input failed to load; substituting error texture", slog.Any("err", err))
		b.tex = nil
		b.width, b.height = 0, 0
		b.loaded = true
		return nil
	}
	b.tex = tex
	b.width, b.height = w, h
	b.loaded = true
	return nil
}

func (b *Base) ensureSampler() error {
	if b.sampler != nil {
		return nil
	}
	s, err := b.backend.NewSampler()
	if err != nil {
		return err
	}
	s.SetFilter(gx.Linear, gx.Linear)
	s.SetWrap(gx.ClampToEdge, gx.ClampToEdge)
	b.sampler = s
	return nil
}

// Reset discards the loaded texture so the next Use triggers a fresh
// Load. A no-op if the input was never loaded.
func (b *Base) Reset() {
	if !b.loaded {
		return
	}
	if b.tex != nil {
		b.tex.Delete()
	}
	b.tex = nil
	b.loaded = false
}

// Use loads the input if necessary and returns its texture (possibly
// nil, substituted for the error texture by program.Host).
func (b *Base) Use() (gx.Texture, error) {
	if err := b.Load(); err != nil {
		return nil, err
	}
	return b.tex, nil
}

// Texture satisfies program.ChannelInput.
func (b *Base) Texture() (gx.Texture, bool) {
	if err := b.Load(); err != nil {
		return nil, false
	}
	return b.tex, b.tex != nil
}

// Sampler satisfies program.ChannelInput.
func (b *Base) Sampler() gx.Sampler { return b.sampler }

// IsImage satisfies program.ChannelInput; every variant in this
// package binds by sampling, never by image load/store.
func (b *Base) IsImage() bool { return false }

// Binding satisfies program.ChannelInput with the zero descriptor,
// since IsImage is always false here.
func (b *Base) Binding() program.ImageBinding { return program.ImageBinding{} }

// Resolution satisfies program.ChannelInput.
func (b *Base) Resolution() (int32, int32) { return b.width, b.height }

// GLSLType satisfies program.ChannelInput; every variant in this
// package samples a 2D texture.
func (b *Base) GLSLType() string { return "sampler2D" }

// SetFilter sets the sampler's minification and magnification filters.
func (b *Base) SetFilter(minFilter, magFilter int32) {
	if b.sampler != nil {
		b.sampler.SetFilter(minFilter, magFilter)
	}
}

// SetWrap sets the sampler's wrap mode on both axes.
func (b *Base) SetWrap(wrapS, wrapT int32) {
	if b.sampler != nil {
		b.sampler.SetWrap(wrapS, wrapT)
	}
}
