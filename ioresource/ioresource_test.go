package ioresource

import (
	"testing"

	"github.com/soypat/shadertoy/gx"
)

// fakeTexture is a minimal gx.Texture recording its own identity so
// tests can assert swap() actually exchanges distinct objects.
type fakeTexture struct {
	id      int
	deleted bool
	w, h    int32
	format  gx.InternalFormat
}

func (f *fakeTexture) ID() uint32             { return uint32(f.id) }
func (f *fakeTexture) Valid() bool            { return !f.deleted }
func (f *fakeTexture) Target() gx.TextureTarget { return gx.Texture2D }
func (f *fakeTexture) Image(level int32, internal gx.InternalFormat, w, h int32, data []byte) error {
	f.w, f.h, f.format = w, h, internal
	return nil
}
func (f *fakeTexture) SetFilter(min, mag int32) {}
func (f *fakeTexture) SetWrap(s, tt int32)       {}
func (f *fakeTexture) Delete()                   { f.deleted = true }

type fakeBackend struct {
	gx.Backend
	nextID int
}

func (b *fakeBackend) NewTexture(target gx.TextureTarget) (gx.Texture, error) {
	b.nextID++
	return &fakeTexture{id: b.nextID}, nil
}

func TestResourceDoubleBufferSwap(t *testing.T) {
	backend := &fakeBackend{}
	r := New(backend, DoubleBuffer)
	r.SetOutputSpecs([]OutputBufferSpec{{
		RenderSize:     FixedSize{256, 256},
		Name:           OutputNameInfo{Name: "out0"},
		InternalFormat: gx.InternalFormat(0x8814), // RGBA32F
	}})

	if err := r.Allocate(); err != nil {
		t.Fatal(err)
	}
	source := r.SourceTexture(0)
	target := r.TargetTexture(0)
	if source == nil || target == nil {
		t.Fatal("expected both source and target allocated under double buffering")
	}
	if source == target {
		t.Fatal("double buffer source and target must be distinct textures")
	}

	r.Swap()
	if r.SourceTexture(0) != target {
		t.Error("after swap, former target should be the new source")
	}
	if r.TargetTexture(0) != source {
		t.Error("after swap, former source should be the new target")
	}
}

func TestResourceSingleBufferSwapIsNoop(t *testing.T) {
	backend := &fakeBackend{}
	r := New(backend, SingleBuffer)
	r.SetOutputSpecs([]OutputBufferSpec{{
		RenderSize:     FixedSize{64, 64},
		Name:           OutputNameInfo{Name: "out0"},
		InternalFormat: gx.InternalFormat(0x8814),
	}})
	if err := r.Allocate(); err != nil {
		t.Fatal(err)
	}
	before := r.SourceTexture(0)
	r.Swap()
	if r.SourceTexture(0) != before {
		t.Error("single buffer swap must be a no-op")
	}
	if r.TargetTexture(0) != before {
		t.Error("single buffer target must alias source")
	}
}

func TestResourceDefaultFramebufferAllocatesNothing(t *testing.T) {
	backend := &fakeBackend{}
	r := New(backend, DefaultFramebuffer)
	r.SetOutputSpecs([]OutputBufferSpec{{
		RenderSize:     FixedSize{64, 64},
		Name:           OutputNameInfo{Name: "out0"},
		InternalFormat: gx.InternalFormat(0x8814),
	}})
	if err := r.Allocate(); err != nil {
		t.Fatal(err)
	}
	if r.SourceTexture(0) != nil {
		t.Error("default framebuffer policy must not allocate a source texture")
	}
}

func TestResourceAllocateZeroSizeFails(t *testing.T) {
	backend := &fakeBackend{}
	r := New(backend, SingleBuffer)
	r.SetOutputSpecs([]OutputBufferSpec{{
		RenderSize:     FixedSize{0, 0},
		Name:           OutputNameInfo{Name: "out0"},
		InternalFormat: gx.InternalFormat(0x8814),
	}})
	if err := r.Allocate(); err == nil {
		t.Fatal("expected error allocating zero-size output")
	}
}
