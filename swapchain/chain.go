package swapchain

import (
	"fmt"

	"github.com/soypat/shadertoy/gx"
	"github.com/soypat/shadertoy/input"
	"github.com/soypat/shadertoy/rendercontext"
)

// Chain is the ordered, no-duplicates list of members of spec §4.6,
// plus the generation table that lets input.MemberRef detect a reused
// slot instead of silently aliasing a different member (spec §9's
// arena-and-index replacement for weak_ptr).
type Chain struct {
	ctx     *rendercontext.Context
	members []Member
	index   map[Member]int
	gen     []uint32
	current int
}

// NewChain returns an empty chain driven through ctx.
func NewChain(ctx *rendercontext.Context) *Chain {
	return &Chain{ctx: ctx, index: map[Member]int{}, current: -1}
}

// PushBack appends member to the chain, failing if it is already
// present (spec §4.6's push_back contract). If member is a
// *ScreenMember whose SourceRef.Member is nil, it is wired to resolve
// against the immediately preceding member (spec §4.5's screen-member
// default source).
func (c *Chain) PushBack(member Member) error {
	if _, ok := c.index[member]; ok {
		return fmt.Errorf("swapchain: member %q already present in chain", member.ID())
	}
	if sm, ok := member.(*ScreenMember); ok && sm.resolver == nil {
		if prev := c.lastMember(); prev != nil {
			if resolver, ok := prev.(OutputResolver); ok {
				sm.SetResolver(resolver)
			}
		}
	}
	idx := len(c.members)
	c.members = append(c.members, member)
	c.gen = append(c.gen, 1)
	c.index[member] = idx
	return nil
}

func (c *Chain) lastMember() Member {
	if len(c.members) == 0 {
		return nil
	}
	return c.members[len(c.members)-1]
}

// Before returns the member immediately preceding m, or nil if m is
// the first member or not present (spec §4.6's before(m)).
func (c *Chain) Before(m Member) Member {
	idx, ok := c.index[m]
	if !ok || idx == 0 {
		return nil
	}
	return c.members[idx-1]
}

// Ref returns a weak input.MemberRef to the member at index idx,
// stamped with that slot's current generation.
func (c *Chain) Ref(idx int) input.MemberRef {
	if idx < 0 || idx >= len(c.gen) {
		return input.MemberRef{Index: idx, Generation: 0}
	}
	return input.MemberRef{Index: idx, Generation: c.gen[idx]}
}

// IndexOf returns member's position in the chain, or -1.
func (c *Chain) IndexOf(member Member) int {
	idx, ok := c.index[member]
	if !ok {
		return -1
	}
	return idx
}

// Init calls Init on every member in order (spec §4.6's init(ctx)).
func (c *Chain) Init() error {
	for _, m := range c.members {
		if err := m.Init(c.ctx); err != nil {
			return fmt.Errorf("swapchain: init member %q: %w", m.ID(), err)
		}
	}
	return nil
}

// AllocateTextures calls Allocate on every member in order (spec
// §4.6's allocate_textures(ctx)).
func (c *Chain) AllocateTextures() error {
	for _, m := range c.members {
		if err := m.Allocate(c.ctx); err != nil {
			return fmt.Errorf("swapchain: allocate member %q: %w", m.ID(), err)
		}
	}
	return nil
}

// Render renders every member in order, updating Current to each as
// it renders, and returns the last-rendered member (spec §4.6's
// render(ctx)).
func (c *Chain) Render() (Member, error) {
	return c.RenderRange(0, len(c.members)-1)
}

// RenderRange renders the inclusive index range [begin, end], failing
// if either bound is out of range (spec §4.6's render(ctx, begin,
// end)).
func (c *Chain) RenderRange(begin, end int) (Member, error) {
	if begin < 0 || end >= len(c.members) || begin > end {
		return nil, fmt.Errorf("swapchain: render range [%d,%d] out of bounds for %d members", begin, end, len(c.members))
	}
	for i := begin; i <= end; i++ {
		m := c.members[i]
		if err := m.Render(c.ctx); err != nil {
			return nil, fmt.Errorf("swapchain: render member %q: %w", m.ID(), err)
		}
		c.current = i
	}
	return c.members[c.current], nil
}

// Current returns the last-rendered member, or nil if nothing has
// rendered yet.
func (c *Chain) Current() Member {
	if c.current < 0 {
		return nil
	}
	return c.members[c.current]
}

// ResolveOutput satisfies input.MemberSource: it looks up ref by
// index and generation, failing if the slot has been reused or ref is
// out of range, then asks the resolved member for outputName (spec
// §8 property 9, §9's generation-checked weak reference).
func (c *Chain) ResolveOutput(ref input.MemberRef, outputName string) (tex gx.Texture, width, height int32, ok bool) {
	if ref.Index < 0 || ref.Index >= len(c.members) {
		return nil, 0, 0, false
	}
	if c.gen[ref.Index] != ref.Generation {
		return nil, 0, 0, false
	}
	resolver, ok := c.members[ref.Index].(OutputResolver)
	if !ok {
		return nil, 0, 0, false
	}
	return resolver.ResolveOutputByName(outputName)
}
