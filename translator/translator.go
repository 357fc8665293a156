package translator

import (
	"context"
	"fmt"
	"sync"

	"github.com/richinsley/glbasics/shader"
	gst "github.com/richinsley/goshadertranslator"
)

var (
	translator     *gst.ShaderTranslator
	translatorErr  error
	translatorOnce sync.Once
)

// GetTranslator returns the process-wide translator, starting it on first use.
func GetTranslator() (*gst.ShaderTranslator, error) {
	translatorOnce.Do(func() {
		translator, translatorErr = gst.NewShaderTranslator(context.Background())
	})
	return translator, translatorErr
}

// Target rewrites WebGL2 sources for one kind of context.
type Target struct {
	tr   *gst.ShaderTranslator
	gles bool
}

// New returns a shader.Translator producing GLSL 4.10 for desktop contexts
// or ESSL when gles is set.
func New(gles bool) (*Target, error) {
	tr, err := GetTranslator()
	if err != nil {
		return nil, fmt.Errorf("failed to start shader translator: %w", err)
	}
	return &Target{tr: tr, gles: gles}, nil
}

func (t *Target) Translate(source string, stage shader.Stage) (*shader.Translation, error) {
	kind := "vertex"
	if stage == shader.Fragment {
		kind = "fragment"
	}
	output := gst.OutputFormatGLSL410
	if t.gles {
		output = gst.OutputFormatESSL
	}
	out, err := t.tr.TranslateShader(source, kind, gst.ShaderSpecWebGL2, output)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(out.Variables))
	for name, v := range out.Variables {
		names[name] = v.MappedName
	}
	return &shader.Translation{Code: out.Code, Names: names}, nil
}
