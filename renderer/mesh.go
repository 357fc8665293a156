package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Mesh is static geometry uploaded once: interleaved float vertices with an
// optional index buffer.
type Mesh struct {
	vao, vbo, ebo uint32
	count         int32
	indexed       bool
}

// NewMesh uploads vertices and, when indices is non-empty, an element
// buffer. layout gives the float count of each attribute in order; attribute
// i is bound to location i.
func NewMesh(vertices []float32, indices []uint32, layout ...int32) *Mesh {
	m := &Mesh{}

	var stride int32
	for _, n := range layout {
		stride += n
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	if len(indices) > 0 {
		gl.GenBuffers(1, &m.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
		m.indexed = true
		m.count = int32(len(indices))
	} else if stride > 0 {
		m.count = int32(len(vertices)) / stride
	}

	var offset int32
	for i, n := range layout {
		gl.VertexAttribPointer(uint32(i), n, gl.FLOAT, false, stride*4, gl.PtrOffset(int(offset*4)))
		gl.EnableVertexAttribArray(uint32(i))
		offset += n
	}

	// the element buffer binding is VAO state and must stay bound
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return m
}

func (m *Mesh) Draw() {
	gl.BindVertexArray(m.vao)
	if m.indexed {
		gl.DrawElements(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, gl.PtrOffset(0))
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, m.count)
	}
	gl.BindVertexArray(0)
}

func (m *Mesh) Destroy() {
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
	if m.indexed {
		gl.DeleteBuffers(1, &m.ebo)
	}
}
