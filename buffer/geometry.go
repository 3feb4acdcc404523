package buffer

import "github.com/soypat/shadertoy/gx"

// Geometry is a user-supplied drawable object, given to
// NewGeometryBuffer and issued a draw call once per Render (spec
// §4.4's "Geometry buffer: geometry is a user-supplied object
// implementing draw()").
type Geometry interface {
	// Draw issues whatever draw call(s) this geometry requires against
	// the currently-bound program. The vertex array (if any) must
	// already be set up by the implementation; Draw is only
	// responsible for the actual draw command.
	Draw(backend gx.Backend) error
}

// IndexedGeometry is a Geometry backed by a vertex array and an index
// buffer, the common case of static mesh data uploaded once at
// construction — continuing rendercontext.Geometry's layout but
// exposed for caller-supplied meshes instead of the fixed screen quad.
type IndexedGeometry struct {
	VAO     gx.VertexArray
	VBO     gx.Buffer
	IBO     gx.Buffer
	Indices int32
}

// NewIndexedGeometry uploads vertexData/indexData (already packed into
// byte slices by the caller, e.g. via unsafe.Slice over a []float32)
// into a new vertex array with the given attribute layout and returns
// the resulting IndexedGeometry.
func NewIndexedGeometry(backend gx.Backend, vertexData, indexData []byte, stride int32, attrs []VertexAttribute) (*IndexedGeometry, error) {
	vao, err := backend.NewVertexArray()
	if err != nil {
		return nil, err
	}
	vbo, err := backend.NewBuffer()
	if err != nil {
		return nil, err
	}
	ibo, err := backend.NewBuffer()
	if err != nil {
		return nil, err
	}

	vao.Bind()
	vbo.BindAs(gx.ArrayBuffer)
	vbo.Data(gx.ArrayBuffer, len(vertexData), vertexData, gx.StaticDraw)
	ibo.BindAs(gx.ElementArrayBuffer)
	ibo.Data(gx.ElementArrayBuffer, len(indexData), indexData, gx.StaticDraw)
	for _, a := range attrs {
		vao.AddAttribute(vbo, a.Location, a.Components, a.GLType, stride, a.Offset, a.Normalize)
	}
	vao.Unbind()

	indexCount := len(indexData) / 4 // GL_UNSIGNED_INT
	return &IndexedGeometry{VAO: vao, VBO: vbo, IBO: ibo, Indices: int32(indexCount)}, nil
}

// VertexAttribute describes one vertex-array attribute binding passed
// to NewIndexedGeometry.
type VertexAttribute struct {
	Location   uint32
	Components int32
	GLType     uint32
	Offset     int32
	Normalize  bool
}

// Draw binds g's vertex array and issues an indexed triangle draw,
// satisfying Geometry.
func (g *IndexedGeometry) Draw(backend gx.Backend) error {
	g.VAO.Bind()
	backend.DrawElements(g.Indices)
	g.VAO.Unbind()
	return nil
}
