// Package uniformcatalog implements the recognized uniform catalog of
// spec §6 as a typed table, plus the iMouse/iDate encoding helpers
// supplemented from original_source/src/RenderContext.cpp (SPEC_FULL's
// SUPPLEMENTED FEATURES). It does not own a program or a frame loop:
// program.Host.PrepareRender and buffer.ToyBuffer.Render each set the
// handful of standard uniforms they're responsible for directly, using
// Standard below only as the source of truth for what a generated
// declaration block (rendercontext.defaultFragmentDecl) must expose.
package uniformcatalog

import "github.com/chewxy/math32"

// Kind classifies a catalog entry's GLSL shape, used by a future
// declaration generator to pick the right keyword.
type Kind uint8

const (
	KindFloat Kind = iota
	KindVec2
	KindVec3
	KindVec4
	KindInt
	KindFloatArray4
	KindVec3Array4
)

// Entry is one recognized standard uniform: its name, GLSL shape, and
// a one-line description of what supplies its value.
type Entry struct {
	Name string
	Kind Kind
	Doc  string
}

// Standard is the fixed, ordered table of every uniform spec §6
// requires a conforming implementation to recognize:
// iResolution, iTime, iTimeDelta, iFrame, iFrameRate,
// iChannelTime[4], iChannelResolution[4], iMouse, iChannel0-3, iDate,
// iSampleRate.
var Standard = []Entry{
	{Name: "iResolution", Kind: KindVec3, Doc: "viewport resolution (in pixels), z always 1"},
	{Name: "iTime", Kind: KindFloat, Doc: "shader playback time, caller-advanced (SPEC_FULL Open Question 1)"},
	{Name: "iTimeDelta", Kind: KindFloat, Doc: "render time of the previous frame, from a GL_TIME_ELAPSED query"},
	{Name: "iFrame", Kind: KindInt, Doc: "shader playback frame, caller-advanced"},
	{Name: "iFrameRate", Kind: KindFloat, Doc: "shader frame rate, caller-supplied"},
	{Name: "iChannelTime", Kind: KindFloatArray4, Doc: "channel playback time (per channel), caller-supplied"},
	{Name: "iChannelResolution", Kind: KindVec3Array4, Doc: "channel resolution (per channel), set by program.Host.PrepareRender"},
	{Name: "iMouse", Kind: KindVec4, Doc: "mouse pixel coords, see EncodeMouse"},
	{Name: "iChannel0", Kind: KindInt, Doc: "positional sampler/image unit 0"},
	{Name: "iChannel1", Kind: KindInt, Doc: "positional sampler/image unit 1"},
	{Name: "iChannel2", Kind: KindInt, Doc: "positional sampler/image unit 2"},
	{Name: "iChannel3", Kind: KindInt, Doc: "positional sampler/image unit 3"},
	{Name: "iDate", Kind: KindVec4, Doc: "(year, month-1, day, seconds since midnight), see EncodeDate"},
	{Name: "iSampleRate", Kind: KindFloat, Doc: "sound sample rate, caller-supplied"},
}

// Lookup returns the catalog entry named name, if recognized.
func Lookup(name string) (Entry, bool) {
	for _, e := range Standard {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// MouseButton is the subset of button state EncodeMouse needs to
// reproduce Shadertoy's click-state sign encoding.
type MouseButton struct {
	Down     bool
	Clicked  bool // true on the frame the button transitioned to down
	ClickX   float32
	ClickY   float32
}

// EncodeMouse reproduces original_source/src/RenderContext.cpp's
// iMouse encoding: (x, y) is the current cursor position; (z, w) is
// the position of the last left-click, negated in z while the button
// is held and negated in w on every frame except the one on which the
// button was clicked, matching Shadertoy's documented iMouse semantics.
func EncodeMouse(x, y float32, left MouseButton) [4]float32 {
	z, w := math32.Abs(left.ClickX), math32.Abs(left.ClickY)
	if left.Down {
		z = -z
	}
	if !left.Clicked {
		w = -w
	}
	return [4]float32{x, y, z, w}
}

// DateComponents is the wall-clock breakdown EncodeDate composes into
// iDate's vec4, supplied by the caller rather than read from time.Now
// directly — uniformcatalog stays free of a hidden clock dependency so
// callers can drive it deterministically in tests.
type DateComponents struct {
	Year        int
	Month       int // 1-12
	Day         int
	Hour        int
	Minute      int
	Second      float32
}

// EncodeDate reproduces RenderContext.cpp's iDate encoding:
// (year, month-1, day, secondsSinceMidnight), with month adjusted to
// Shadertoy's documented 0-based convention.
func EncodeDate(d DateComponents) [4]float32 {
	secondsSinceMidnight := float32(d.Hour*3600+d.Minute*60) + d.Second
	return [4]float32{
		float32(d.Year),
		float32(d.Month - 1),
		float32(d.Day),
		secondsSinceMidnight,
	}
}
