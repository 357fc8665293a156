package options

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// Demo names accepted by -demo.
const (
	DemoTriangle = "triangle"
	DemoTexture  = "texture"
	DemoMix      = "mix"
)

// Demos lists every demo in the order they are presented.
var Demos = []string{DemoTriangle, DemoTexture, DemoMix}

type Options struct {
	Demo       string `toml:"demo"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	AssetsDir  string `toml:"assets"`
	ShadersDir string `toml:"shaders"`
	// Translate runs WebGL2 sources through the shader translator before
	// compiling them.
	Translate bool `toml:"translate"`
	// Watch rebuilds file-based shader programs when their files change.
	Watch bool `toml:"watch"`

	// Headless renders into an EGL pbuffer instead of a window and stops
	// after Frames frames.
	Headless   bool   `toml:"headless"`
	Frames     int    `toml:"frames"`
	Screenshot string `toml:"screenshot"` // PNG written after the last frame

	ConfigFile string `toml:"-"`
	Help       bool   `toml:"-"`
}

// Default returns the options used when the program is launched without
// arguments.
func Default() *Options {
	return &Options{
		Demo:       DemoMix,
		Width:      800,
		Height:     600,
		AssetsDir:  "assets",
		ShadersDir: "shaders",
		Translate:  true,
		Frames:     120,
	}
}

func (o *Options) bind(fs *flag.FlagSet) {
	fs.StringVar(&o.Demo, "demo", o.Demo, "Demo to run: triangle, texture or mix")
	fs.IntVar(&o.Width, "width", o.Width, "Window width")
	fs.IntVar(&o.Height, "height", o.Height, "Window height")
	fs.StringVar(&o.AssetsDir, "assets", o.AssetsDir, "Directory holding the demo images")
	fs.StringVar(&o.ShadersDir, "shaders", o.ShadersDir, "Directory holding the demo shaders")
	fs.BoolVar(&o.Translate, "translate", o.Translate, "Translate WebGL2 shader sources for the current context")
	fs.BoolVar(&o.Watch, "watch", o.Watch, "Rebuild shaders when their files change")
	fs.BoolVar(&o.Headless, "headless", o.Headless, "Render offscreen with EGL")
	fs.IntVar(&o.Frames, "frames", o.Frames, "Frames to render in headless mode")
	fs.StringVar(&o.Screenshot, "screenshot", o.Screenshot, "Write the last headless frame to this PNG file")
	fs.StringVar(&o.ConfigFile, "config", o.ConfigFile, "TOML file with default settings")
	fs.BoolVar(&o.Help, "help", o.Help, "Show help message")
}

// Parse builds the options from command line arguments. Settings come from
// the defaults, then the -config file, then any flag given explicitly.
func Parse(name string, args []string) (*Options, *flag.FlagSet, error) {
	o := Default()
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	o.bind(fs)
	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}
	if o.Help {
		return o, fs, nil
	}
	if o.ConfigFile != "" {
		if err := o.Load(o.ConfigFile); err != nil {
			return nil, fs, err
		}
		// flags win over the file
		if err := fs.Parse(args); err != nil {
			return nil, fs, err
		}
	}
	if err := o.Validate(); err != nil {
		return nil, fs, err
	}
	return o, fs, nil
}

// Load overlays the settings found in a TOML file. Keys missing from the
// file keep their current value; unknown keys are an error.
func (o *Options) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(o); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("config %s: %s", path, strict.String())
		}
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

// Validate reports the first setting that cannot be used.
func (o *Options) Validate() error {
	known := false
	for _, d := range Demos {
		if o.Demo == d {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown demo %q (want one of %v)", o.Demo, Demos)
	}
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", o.Width, o.Height)
	}
	if o.Headless && o.Frames <= 0 {
		return fmt.Errorf("headless mode needs a positive frame count, got %d", o.Frames)
	}
	return nil
}
