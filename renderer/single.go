package renderer

import (
	"path/filepath"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/glbasics/controls"
	"github.com/richinsley/glbasics/shader"
)

// position, uv
var quadVertices = []float32{
	0.5, 0.5, 0, 1, 1,
	0.5, -0.5, 0, 1, 0,
	-0.5, -0.5, 0, 0, 0,
	-0.5, 0.5, 0, 0, 1,
}

var quadIndices = []uint32{0, 1, 3, 1, 2, 3}

// textureScene maps a single image onto a quad using the inline program.
type textureScene struct {
	mesh    *Mesh
	texture *Texture
	program *shader.Program
	device  shader.Device
}

func newTextureScene(r *Renderer) (*textureScene, error) {
	prog, err := r.build(shader.TextureSource())
	if err != nil {
		return nil, err
	}
	s := &textureScene{program: prog, device: r.device}
	gl.UseProgram(prog.ID)
	gl.Uniform1i(uniformLocation(prog, "uTex"), 0)

	s.mesh = NewMesh(quadVertices, quadIndices, 3, 2)
	s.texture = LoadTexture(filepath.Join(r.opts.AssetsDir, "awesomeface.png"), controls.DefaultState())
	return s, nil
}

func (s *textureScene) Update(Frame) {}

func (s *textureScene) Draw(Frame) {
	gl.ClearColor(0.1, 0.1, 0.12, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.UseProgram(s.program.ID)
	s.texture.Bind(0)
	s.mesh.Draw()
}

func (s *textureScene) Destroy() {
	s.mesh.Destroy()
	s.texture.Destroy()
	s.program.Delete(s.device)
}
