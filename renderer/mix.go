package renderer

import (
	"log"
	"path/filepath"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/glbasics/controls"
	"github.com/richinsley/glbasics/graphics"
	"github.com/richinsley/glbasics/shader"
)

// position, color, uv
var mixVertices = []float32{
	0.5, 0.5, 0, 1, 0, 0, 1, 1,
	0.5, -0.5, 0, 0, 1, 0, 1, 0,
	-0.5, -0.5, 0, 0, 0, 1, 0, 0,
	-0.5, 0.5, 0, 1, 1, 0, 0, 1,
}

// mixScene blends two images on a quad. Z toggles the filter, X cycles the
// wrap mode and Up/Down move the blend weight.
type mixScene struct {
	mesh     *Mesh
	textures [2]*Texture
	program  *fileProgram
	mixLoc   int32

	state  controls.State
	toggle controls.Toggle
}

func newMixScene(r *Renderer) (*mixScene, error) {
	s := &mixScene{state: controls.DefaultState()}

	var err error
	s.program, err = r.buildFiles("tex_mix.vert", "tex_mix.frag", func(p *shader.Program) {
		gl.UseProgram(p.ID)
		gl.Uniform1i(uniformLocation(p, "uTex0"), 0)
		gl.Uniform1i(uniformLocation(p, "uTex1"), 1)
		s.mixLoc = uniformLocation(p, "uMix")
	})
	if err != nil {
		return nil, err
	}

	s.mesh = NewMesh(mixVertices, quadIndices, 3, 3, 2)
	s.textures[0] = LoadTexture(filepath.Join(r.opts.AssetsDir, "container.png"), s.state)
	s.textures[1] = LoadTexture(filepath.Join(r.opts.AssetsDir, "awesomeface.png"), s.state)
	return s, nil
}

func (s *mixScene) Update(f Frame) {
	keys := controls.Keys{
		Filter: f.KeyDown(graphics.KeyZ),
		Wrap:   f.KeyDown(graphics.KeyX),
		Up:     f.KeyDown(graphics.KeyUp),
		Down:   f.KeyDown(graphics.KeyDown),
	}
	var fx controls.Effects
	s.state, fx = s.toggle.Update(s.state, keys, f.Delta)
	if fx.Resample {
		for _, t := range s.textures {
			t.ApplySampling(s.state)
		}
	}
	for _, change := range fx.Changes {
		log.Print(change)
	}
}

func (s *mixScene) Draw(Frame) {
	gl.ClearColor(0.08, 0.08, 0.1, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.UseProgram(s.program.prog.ID)
	gl.Uniform1f(s.mixLoc, s.state.Mix)
	s.textures[0].Bind(0)
	s.textures[1].Bind(1)
	s.mesh.Draw()
}

func (s *mixScene) Destroy() {
	s.mesh.Destroy()
	for _, t := range s.textures {
		t.Destroy()
	}
}
