package renderer

import (
	"math"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/glbasics/shader"
)

// position, color
var triangleVertices = []float32{
	-0.5, -0.5, 0.0, 1.0, 0.0, 0.0,
	0.5, -0.5, 0.0, 0.0, 1.0, 0.0,
	0.0, 0.5, 0.0, 0.0, 0.0, 1.0,
}

// triangleScene draws one triangle in a color that pulses between green and
// blue over time.
type triangleScene struct {
	mesh     *Mesh
	program  *fileProgram
	colorLoc int32
}

func newTriangleScene(r *Renderer) (*triangleScene, error) {
	s := &triangleScene{}
	var err error
	s.program, err = r.buildFiles("uniform.vert", "uniform.frag", func(p *shader.Program) {
		s.colorLoc = uniformLocation(p, "uColor")
	})
	if err != nil {
		return nil, err
	}
	s.mesh = NewMesh(triangleVertices, nil, 3, 3)
	return s, nil
}

func (s *triangleScene) Update(Frame) {}

func (s *triangleScene) Draw(f Frame) {
	g := float32(0.5*math.Sin(f.Time) + 0.5)

	gl.ClearColor(0.2, 0.3, 0.3, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.UseProgram(s.program.prog.ID)
	gl.Uniform4f(s.colorLoc, 0.0, g, 1.0-g, 1.0)
	s.mesh.Draw()
}

func (s *triangleScene) Destroy() {
	s.mesh.Destroy()
}
