package shader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	goodVertex = `#version 330 core
layout (location = 0) in vec3 aPos;
void main() { gl_Position = vec4(aPos, 1.0); }
`
	goodFragment = `#version 330 core
out vec4 fragColor;
void main() { fragColor = vec4(1.0); }
`
	badFragment = `#version 330 core
out vec4 fragColor;
#error
void main() { fragColor = vec4(1.0) }
`
)

func TestBuildSuccess(t *testing.T) {
	dev := newFakeDevice()
	logger, out := captureLogger()

	prog, err := Build(dev, Source{Vertex: goodVertex, Fragment: goodFragment}, WithLogger(logger))
	require.NoError(t, err)
	require.NotNil(t, prog)
	assert.NotZero(t, prog.ID)
	assert.Contains(t, dev.programs, prog.ID)
	assert.Empty(t, dev.shaders, "compiled stages must not outlive the link")
	assert.Empty(t, out.String())
}

func TestBuildFragmentError(t *testing.T) {
	dev := newFakeDevice()
	logger, out := captureLogger()

	prog, err := Build(dev, Source{Vertex: goodVertex, Fragment: badFragment}, WithLogger(logger))
	assert.Nil(t, prog)
	require.Error(t, err)

	var be *BuildError
	require.True(t, errors.As(err, &be))
	assert.True(t, be.Has("Fragment"))
	assert.True(t, be.Has(TagLink), "link is attempted after a failed stage")
	assert.False(t, be.Has("Vertex"))

	// both stages were compiled before linking
	assert.Len(t, dev.compiled, 2)
	assert.Contains(t, out.String(), "[Shader Compile Error] Fragment")
	assert.Contains(t, out.String(), "[Program Link Error]")

	assert.Empty(t, dev.shaders)
	assert.Empty(t, dev.programs, "failed program is released")
}

func TestBuildVertexErrorStillCompilesFragment(t *testing.T) {
	dev := newFakeDevice()
	logger, _ := captureLogger()

	_, err := Build(dev, Source{Vertex: "#version 330 core\n#error\n", Fragment: goodFragment}, WithLogger(logger))
	require.Error(t, err)
	assert.Len(t, dev.compiled, 2)

	var be *BuildError
	require.ErrorAs(t, err, &be)
	require.Len(t, be.Diagnostics, 2)
	assert.Equal(t, "Vertex", be.Diagnostics[0].Tag)
	assert.Equal(t, TagLink, be.Diagnostics[1].Tag)
}

func TestBuildLinkError(t *testing.T) {
	dev := newFakeDevice()
	dev.linkLog = "error: fragment shader input vUV has no matching vertex output"
	logger, out := captureLogger()

	prog, err := Build(dev, Source{Vertex: goodVertex, Fragment: goodFragment}, WithLogger(logger))
	assert.Nil(t, prog)
	require.True(t, IsBuildError(err))
	assert.Contains(t, err.Error(), "vUV has no matching vertex output")
	assert.Contains(t, out.String(), "[Program Link Error]")
	assert.Empty(t, dev.shaders)
	assert.Empty(t, dev.programs)
}

func TestBuildEmptySource(t *testing.T) {
	dev := newFakeDevice()
	logger, _ := captureLogger()

	_, err := Build(dev, Source{Vertex: goodVertex}, WithLogger(logger))
	require.True(t, IsBuildError(err))
	assert.Zero(t, dev.calls)
}

func writeShader(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestBuildFiles(t *testing.T) {
	dir := t.TempDir()
	files := Files{
		Vertex:   writeShader(t, dir, "a.vert", goodVertex),
		Fragment: writeShader(t, dir, "a.frag", goodFragment),
	}
	dev := newFakeDevice()
	logger, _ := captureLogger()

	prog, err := BuildFiles(dev, files, WithLogger(logger))
	require.NoError(t, err)
	assert.NotZero(t, prog.ID)
	assert.Equal(t, []string{goodVertex, goodFragment}, dev.compiled)

	prog.Delete(dev)
	assert.Zero(t, prog.ID)
	assert.Empty(t, dev.programs)
	prog.Delete(dev)
}

func TestBuildFilesMissing(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "nope.frag")
	files := Files{
		Vertex:   writeShader(t, dir, "a.vert", goodVertex),
		Fragment: missing,
	}
	dev := newFakeDevice()
	logger, out := captureLogger()

	prog, err := BuildFiles(dev, files, WithLogger(logger))
	assert.Nil(t, prog)
	require.True(t, IsBuildError(err))
	assert.Zero(t, dev.calls, "compiler must not be invoked")
	assert.Contains(t, out.String(), missing)
	assert.Contains(t, err.Error(), missing)
}

func TestBuildFilesEmpty(t *testing.T) {
	dir := t.TempDir()
	empty := writeShader(t, dir, "empty.vert", "  \n")
	files := Files{
		Vertex:   empty,
		Fragment: writeShader(t, dir, "a.frag", goodFragment),
	}
	dev := newFakeDevice()
	logger, out := captureLogger()

	_, err := BuildFiles(dev, files, WithLogger(logger))
	require.Error(t, err)
	assert.Zero(t, dev.calls)
	assert.Contains(t, out.String(), "shader source empty: "+empty)
}

type fakeTranslator struct {
	fail  Stage
	calls []Stage
}

func (f *fakeTranslator) Translate(source string, stage Stage) (*Translation, error) {
	f.calls = append(f.calls, stage)
	if stage == f.fail {
		return nil, errors.New("ERROR: 0:2: 'foo' : undeclared identifier")
	}
	return &Translation{
		Code:  "#version 410\n// " + stage.String() + "\n",
		Names: map[string]string{"uColor": "_uuColor"},
	}, nil
}

func TestBuildTranslatesESSL(t *testing.T) {
	dev := newFakeDevice()
	tr := &fakeTranslator{fail: -1}
	logger, _ := captureLogger()

	prog, err := Build(dev, TextureSource(), WithLogger(logger), WithTranslator(tr))
	require.NoError(t, err)
	assert.Equal(t, []Stage{Vertex, Fragment}, tr.calls)
	assert.Equal(t, "#version 410\n// Vertex\n", dev.compiled[0])
	assert.Equal(t, "_uuColor", prog.Uniform("uColor"))
	assert.Equal(t, "uTex", prog.Uniform("uTex"))
}

func TestBuildSkipsTranslationForDesktopGLSL(t *testing.T) {
	dev := newFakeDevice()
	tr := &fakeTranslator{fail: -1}
	logger, _ := captureLogger()

	_, err := Build(dev, Source{Vertex: goodVertex, Fragment: goodFragment}, WithLogger(logger), WithTranslator(tr))
	require.NoError(t, err)
	assert.Empty(t, tr.calls)
}

func TestBuildTranslationFailure(t *testing.T) {
	dev := newFakeDevice()
	tr := &fakeTranslator{fail: Fragment}
	logger, out := captureLogger()

	prog, err := Build(dev, TextureSource(), WithLogger(logger), WithTranslator(tr))
	assert.Nil(t, prog)
	require.Error(t, err)
	assert.Contains(t, out.String(), "[Shader Translate Error] Fragment")
	assert.Len(t, dev.compiled, 2)
	assert.Empty(t, dev.shaders)
	assert.Empty(t, dev.programs)
}

func TestIsESSL(t *testing.T) {
	assert.True(t, IsESSL("#version 300 es\nvoid main(){}"))
	assert.True(t, IsESSL("\n  #version  300   es  \n"))
	assert.False(t, IsESSL("#version 330 core\n"))
	assert.False(t, IsESSL(""))
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "Vertex", Vertex.String())
	assert.Equal(t, "Fragment", Fragment.String())
	assert.Equal(t, "Stage(7)", Stage(7).String())
}

func TestShippedShaders(t *testing.T) {
	pairs := []Files{
		{Vertex: "../shaders/uniform.vert", Fragment: "../shaders/uniform.frag"},
		{Vertex: "../shaders/tex_mix.vert", Fragment: "../shaders/tex_mix.frag"},
	}
	for _, files := range pairs {
		dev := newFakeDevice()
		tr := &fakeTranslator{fail: -1}
		logger, _ := captureLogger()

		prog, err := BuildFiles(dev, files, WithLogger(logger), WithTranslator(tr))
		require.NoError(t, err, files.Fragment)
		assert.NotZero(t, prog.ID)
		assert.Equal(t, []Stage{Vertex, Fragment}, tr.calls, "%s is written for WebGL2", files.Vertex)
	}
}

func TestBuildWhitespaceSource(t *testing.T) {
	dev := newFakeDevice()
	logger, out := captureLogger()

	prog, err := Build(dev, Source{Vertex: goodVertex, Fragment: "  \n\t"}, WithLogger(logger))
	assert.Nil(t, prog)
	require.True(t, IsBuildError(err))
	assert.Zero(t, dev.calls, "compiler must not be invoked")
	assert.Contains(t, out.String(), "shader source empty")
}
