// Package translator exposes the public configuration surface of the
// translation pipeline.
package translator

import "path/filepath"

// Options control one translation run.
//
// Input       – declaration document to translate (JSON, from the parser)
// OutDir      – output directory
// OutFile     – facade output filename
// Package     – target package for the emitted facade
// GoOut       – optional Go bindings filename ("" disables)
// Version     – snapshot version recorded in the manifest
// Manifest    – manifest path ("" disables manifest tracking)
// Watch       – re-run when the input document changes
type Options struct {
	Input    string `json:"input,omitempty" yaml:"input,omitempty" mapstructure:"input,omitempty"`
	OutDir   string `json:"out_dir,omitempty" yaml:"out_dir,omitempty" mapstructure:"out_dir,omitempty"`
	OutFile  string `json:"out_file,omitempty" yaml:"out_file,omitempty" mapstructure:"out_file,omitempty"`
	Package  string `json:"package,omitempty" yaml:"package,omitempty" mapstructure:"package,omitempty"`
	GoOut    string `json:"go_out,omitempty" yaml:"go_out,omitempty" mapstructure:"go_out,omitempty"`
	Version  string `json:"version,omitempty" yaml:"version,omitempty" mapstructure:"version,omitempty"`
	Manifest string `json:"manifest,omitempty" yaml:"manifest,omitempty" mapstructure:"manifest,omitempty"`
	Watch    bool   `json:"watch,omitempty" yaml:"watch,omitempty" mapstructure:"watch,omitempty"`
}

func NewOptions() *Options {
	return &Options{
		OutDir:  "facade",
		OutFile: "facade.scala",
		Package: "facade",
	}
}

func (o *Options) Normalize() {
	if o.OutDir == "" {
		o.OutDir = "facade"
	}
	if o.OutFile == "" {
		o.OutFile = "facade.scala"
	}
	if o.Package == "" {
		o.Package = "facade"
	}
	if o.Input != "" {
		if abs, err := filepath.Abs(o.Input); err == nil {
			o.Input = abs
		}
	}
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithInput(f string) Option    { return func(o *Options) { o.Input = f } }
func WithOutDir(d string) Option   { return func(o *Options) { o.OutDir = d } }
func WithOutFile(f string) Option  { return func(o *Options) { o.OutFile = f } }
func WithPackage(p string) Option  { return func(o *Options) { o.Package = p } }
func WithGoOut(f string) Option    { return func(o *Options) { o.GoOut = f } }
func WithVersion(v string) Option  { return func(o *Options) { o.Version = v } }
func WithManifest(f string) Option { return func(o *Options) { o.Manifest = f } }
func WithWatch() Option            { return func(o *Options) { o.Watch = true } }
