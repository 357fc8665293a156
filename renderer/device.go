package renderer

import (
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/glbasics/shader"
)

// Device is the shader.Device backed by the current GL context.
type Device struct{}

var _ shader.Device = Device{}

func (Device) CreateShader(stage shader.Stage) uint32 {
	shaderType := uint32(gl.VERTEX_SHADER)
	if stage == shader.Fragment {
		shaderType = gl.FRAGMENT_SHADER
	}
	return gl.CreateShader(shaderType)
}

func (Device) CompileShader(s uint32, source string) (bool, string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(s, 1, csources, nil)
	free()
	gl.CompileShader(s)

	var status int32
	gl.GetShaderiv(s, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(s, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(s, logLength, nil, gl.Str(logText))
		return false, strings.TrimRight(logText, "\x00")
	}
	return true, ""
}

func (Device) DeleteShader(s uint32) {
	gl.DeleteShader(s)
}

func (Device) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (Device) AttachShader(program, s uint32) {
	gl.AttachShader(program, s)
}

func (Device) LinkProgram(program uint32) (bool, string) {
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
		return false, strings.TrimRight(logText, "\x00")
	}
	return true, ""
}

func (Device) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

// uniformLocation looks up a uniform by its source name, following any
// renaming done by the translator.
func uniformLocation(p *shader.Program, name string) int32 {
	return gl.GetUniformLocation(p.ID, gl.Str(p.Uniform(name)+"\x00"))
}
