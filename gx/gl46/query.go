//go:build !tinygo && cgo

package gl46

import (
	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/soypat/shadertoy/gx"
)

// Query wraps a GL_TIME_ELAPSED timer query, continuing
// original_source/include/shadertoy/OpenGL/Query.hpp's pattern of
// reusing one query object across frames and only reading its result
// once GL_QUERY_RESULT_AVAILABLE is true, so the frame never stalls
// waiting on the GPU (spec §5).
type Query struct {
	handle  gx.ResourceHandle
	started bool
}

func (q *Query) ID() uint32  { return q.handle.ID() }
func (q *Query) Valid() bool { return q.handle.Valid() }

func (q *Query) Begin() {
	gl.BeginQuery(gl.TIME_ELAPSED, q.handle.ID())
	q.started = true
}

func (q *Query) End() {
	if !q.started {
		return
	}
	gl.EndQuery(gl.TIME_ELAPSED)
	q.started = false
}

func (q *Query) ResultAvailable() bool {
	var available int32
	gl.GetQueryObjectiv(q.handle.ID(), gl.QUERY_RESULT_AVAILABLE, &available)
	return available != 0
}

func (q *Query) ResultNanoseconds() uint64 {
	var result uint64
	gl.GetQueryObjectui64v(q.handle.ID(), gl.QUERY_RESULT, &result)
	return result
}

func (q *Query) Delete() {
	id := q.handle.ID()
	gl.DeleteQueries(1, &id)
}
