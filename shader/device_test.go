package shader

import (
	"bytes"
	"log"
	"strings"
)

// fakeDevice mimics a GL driver closely enough to exercise the builder: a
// stage fails to compile when its source contains "#error", and a program
// fails to link when any attached stage did not compile or when it has
// fewer than two stages.
type fakeDevice struct {
	next     uint32
	shaders  map[uint32]*fakeShader
	programs map[uint32][]uint32
	calls    int
	compiled []string
	linkLog  string
}

type fakeShader struct {
	stage    Stage
	compiled bool
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		shaders:  make(map[uint32]*fakeShader),
		programs: make(map[uint32][]uint32),
	}
}

func (d *fakeDevice) handle() uint32 {
	d.next++
	return d.next
}

func (d *fakeDevice) CreateShader(stage Stage) uint32 {
	d.calls++
	h := d.handle()
	d.shaders[h] = &fakeShader{stage: stage}
	return h
}

func (d *fakeDevice) CompileShader(shader uint32, source string) (bool, string) {
	d.calls++
	d.compiled = append(d.compiled, source)
	s := d.shaders[shader]
	if strings.Contains(source, "#error") {
		return false, "0:3(1): error: syntax error, unexpected '#error'"
	}
	s.compiled = true
	return true, ""
}

func (d *fakeDevice) DeleteShader(shader uint32) {
	d.calls++
	delete(d.shaders, shader)
}

func (d *fakeDevice) CreateProgram() uint32 {
	d.calls++
	h := d.handle()
	d.programs[h] = nil
	return h
}

func (d *fakeDevice) AttachShader(program, shader uint32) {
	d.calls++
	d.programs[program] = append(d.programs[program], shader)
}

func (d *fakeDevice) LinkProgram(program uint32) (bool, string) {
	d.calls++
	attached := d.programs[program]
	if len(attached) < 2 {
		return false, "error: program needs a vertex and a fragment stage"
	}
	for _, h := range attached {
		s, ok := d.shaders[h]
		if !ok || !s.compiled {
			return false, "error: linking with uncompiled/unspecialized shader"
		}
	}
	if d.linkLog != "" {
		return false, d.linkLog
	}
	return true, ""
}

func (d *fakeDevice) DeleteProgram(program uint32) {
	d.calls++
	delete(d.programs, program)
}

func captureLogger() (*log.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return log.New(&buf, "", 0), &buf
}
