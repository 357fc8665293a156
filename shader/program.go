package shader

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
)

// Stage identifies one step of the shader pipeline.
type Stage int

const (
	Vertex Stage = iota
	Fragment
)

func (s Stage) String() string {
	switch s {
	case Vertex:
		return "Vertex"
	case Fragment:
		return "Fragment"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Diagnostic tags used for the non-stage steps of a build.
const (
	TagLink   = "Program Link Error"
	TagSource = "Source"
)

// Device is the part of the graphics device the builder talks to.
// Handles are opaque; zero is never a valid handle.
type Device interface {
	CreateShader(stage Stage) uint32
	// CompileShader uploads source to the shader object, compiles it and
	// reports the compile status along with the info log on failure.
	CompileShader(shader uint32, source string) (ok bool, infoLog string)
	DeleteShader(shader uint32)
	CreateProgram() uint32
	AttachShader(program, shader uint32)
	// LinkProgram links the program and reports the link status along with
	// the info log on failure.
	LinkProgram(program uint32) (ok bool, infoLog string)
	DeleteProgram(program uint32)
}

// Source is a vertex/fragment pair of shader text.
type Source struct {
	Vertex   string
	Fragment string
}

// Files names the vertex/fragment pair of shader files on disk.
type Files struct {
	Vertex   string
	Fragment string
}

// Diagnostic is one message produced while building a program.
type Diagnostic struct {
	Tag     string
	Message string
}

func (d Diagnostic) String() string {
	return d.Tag + ": " + d.Message
}

// BuildError is returned when a program could not be produced. It carries
// every diagnostic the build emitted, in order.
type BuildError struct {
	Diagnostics []Diagnostic
}

func (e *BuildError) Error() string {
	parts := make([]string, 0, len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		msg := strings.TrimSpace(d.Message)
		if i := strings.IndexByte(msg, '\n'); i >= 0 {
			msg = msg[:i]
		}
		parts = append(parts, d.Tag+": "+msg)
	}
	return "shader build failed: " + strings.Join(parts, "; ")
}

// Has reports whether a diagnostic with the given tag was emitted.
func (e *BuildError) Has(tag string) bool {
	for _, d := range e.Diagnostics {
		if d.Tag == tag {
			return true
		}
	}
	return false
}

// IsBuildError reports whether err is or wraps a *BuildError.
func IsBuildError(err error) bool {
	var be *BuildError
	return errors.As(err, &be)
}

// Program is a successfully linked shader program.
type Program struct {
	ID    uint32
	names map[string]string
}

// Uniform returns the name a uniform has in the compiled program. Sources
// that went through a Translator may have had their identifiers rewritten.
func (p *Program) Uniform(name string) string {
	if mapped, ok := p.names[name]; ok {
		return mapped
	}
	return name
}

// Delete releases the program. It is safe to call more than once.
func (p *Program) Delete(dev Device) {
	if p == nil || p.ID == 0 {
		return
	}
	dev.DeleteProgram(p.ID)
	p.ID = 0
}

// Translation is the result of rewriting a stage for the current target.
type Translation struct {
	Code string
	// Names maps identifiers in the original source to the identifiers the
	// translated code uses.
	Names map[string]string
}

// Translator rewrites a stage's source before it is compiled.
type Translator interface {
	Translate(source string, stage Stage) (*Translation, error)
}

type config struct {
	logger     *log.Logger
	translator Translator
}

// Option configures a build.
type Option func(*config)

// WithLogger sends diagnostics to l instead of the standard logger.
func WithLogger(l *log.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithTranslator translates WebGL2 (#version 300 es) sources with t before
// compiling them. Sources in any other dialect are compiled as-is.
func WithTranslator(t Translator) Option {
	return func(c *config) { c.translator = t }
}

type builder struct {
	config
	diags []Diagnostic
	names map[string]string
}

func newBuilder(opts []Option) *builder {
	b := &builder{
		config: config{logger: log.Default()},
		names:  make(map[string]string),
	}
	for _, opt := range opts {
		opt(&b.config)
	}
	return b
}

func (b *builder) report(tag, header, message string) {
	b.diags = append(b.diags, Diagnostic{Tag: tag, Message: message})
	b.logger.Printf("%s\n%s", header, message)
}

func (b *builder) failure() error {
	return &BuildError{Diagnostics: b.diags}
}

// Build compiles src into a linked program.
//
// Both stages are always compiled and the link is always attempted, so a
// single call reports every problem with the pair. The compiled stages are
// deleted once the link attempt is over. On failure the partially built
// program is released and a *BuildError is returned.
func Build(dev Device, src Source, opts ...Option) (*Program, error) {
	b := newBuilder(opts)
	if isBlank(src.Vertex) || isBlank(src.Fragment) {
		b.report(TagSource, "[Shader Source Error]", "shader source empty")
		return nil, b.failure()
	}
	return b.build(dev, src)
}

// BuildFiles reads the two files named by files and builds them like Build.
// A missing, unreadable or empty file fails the build before the device is
// touched.
func BuildFiles(dev Device, files Files, opts ...Option) (*Program, error) {
	b := newBuilder(opts)
	vs, vok := b.readSource(files.Vertex)
	fs, fok := b.readSource(files.Fragment)
	if !vok || !fok {
		return nil, b.failure()
	}
	return b.build(dev, Source{Vertex: vs, Fragment: fs})
}

func (b *builder) readSource(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		b.report(TagSource, "[Shader Source Error]", fmt.Sprintf("failed to open %s: %v", path, err))
		return "", false
	}
	if isBlank(string(data)) {
		b.report(TagSource, "[Shader Source Error]", fmt.Sprintf("shader source empty: %s", path))
		return "", false
	}
	return string(data), true
}

func isBlank(source string) bool {
	return strings.TrimSpace(source) == ""
}

func (b *builder) build(dev Device, src Source) (*Program, error) {
	vs := b.compile(dev, Vertex, src.Vertex)
	fs := b.compile(dev, Fragment, src.Fragment)

	program := dev.CreateProgram()
	dev.AttachShader(program, vs)
	dev.AttachShader(program, fs)
	linked, infoLog := dev.LinkProgram(program)

	dev.DeleteShader(vs)
	dev.DeleteShader(fs)

	if !linked {
		b.report(TagLink, "[Program Link Error]", infoLog)
		dev.DeleteProgram(program)
		return nil, b.failure()
	}
	if len(b.diags) > 0 {
		// A driver may link a program whose stage failed to translate but
		// still compiled; the caller still needs to know about it.
		dev.DeleteProgram(program)
		return nil, b.failure()
	}
	return &Program{ID: program, names: b.names}, nil
}

// compile never fails the build on its own: a stage that does not compile
// is reported and still handed to the link step.
func (b *builder) compile(dev Device, stage Stage, source string) uint32 {
	source = b.translate(stage, source)
	shader := dev.CreateShader(stage)
	if ok, infoLog := dev.CompileShader(shader, source); !ok {
		b.report(stage.String(), "[Shader Compile Error] "+stage.String(), infoLog)
	}
	return shader
}

func (b *builder) translate(stage Stage, source string) string {
	if b.translator == nil || !IsESSL(source) {
		return source
	}
	t, err := b.translator.Translate(source, stage)
	if err != nil {
		b.report(stage.String(), "[Shader Translate Error] "+stage.String(), err.Error())
		return source
	}
	for k, v := range t.Names {
		b.names[k] = v
	}
	return t.Code
}

// IsESSL reports whether source declares the WebGL2 / GLSL ES 3.00 dialect.
func IsESSL(source string) bool {
	first := strings.TrimSpace(source)
	if i := strings.IndexByte(first, '\n'); i >= 0 {
		first = first[:i]
	}
	return strings.Join(strings.Fields(first), " ") == "#version 300 es"
}
