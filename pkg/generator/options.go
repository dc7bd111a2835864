package generator

import (
	"fmt"
	"strings"
)

// Supported binding dialects.
const (
	DialectBoost    = "boost"
	DialectPybind11 = "pybind11"
)

// Options control one generation run.
//
// XMLDir          – directory holding the Doxygen XML export (index.xml + compounds)
// OutDir          – directory to write generated sources into
// Dialect         – target binding dialect: "boost" or "pybind11"
// Module          – top-level namespace exported as the Python module; inferred
//                   from the tree when empty
// NamedIterators  – also extract begin<Suffix>/end<Suffix> pairs, not just begin/end
// MaxDepth        – maximum qualified-name depth admitted into scope bucketing
// LocationPrefix  – location prefix to strip; computed from the tree when empty
// DocstringsFile  – relative path of the docstring table file
type Options struct {
	XMLDir         string `json:"xml_dir,omitempty" yaml:"xml_dir,omitempty" mapstructure:"xml_dir,omitempty"`
	OutDir         string `json:"out_dir,omitempty" yaml:"out_dir,omitempty" mapstructure:"out_dir,omitempty"`
	Dialect        string `json:"dialect,omitempty" yaml:"dialect,omitempty" mapstructure:"dialect,omitempty"`
	Module         string `json:"module,omitempty" yaml:"module,omitempty" mapstructure:"module,omitempty"`
	NamedIterators bool   `json:"named_iterators,omitempty" yaml:"named_iterators,omitempty" mapstructure:"named_iterators,omitempty"`
	MaxDepth       int    `json:"max_depth,omitempty" yaml:"max_depth,omitempty" mapstructure:"max_depth,omitempty"`
	LocationPrefix string `json:"location_prefix,omitempty" yaml:"location_prefix,omitempty" mapstructure:"location_prefix,omitempty"`
	DocstringsFile string `json:"docstrings_file,omitempty" yaml:"docstrings_file,omitempty" mapstructure:"docstrings_file,omitempty"`
}

func NewOptions() *Options {
	return &Options{
		XMLDir:         "./xml",
		OutDir:         "./src",
		Dialect:        DialectPybind11,
		MaxDepth:       4,
		DocstringsFile: "docstrings.cpp",
	}
}

// Normalize fills defaults and validates the option combination.
func (o *Options) Normalize() error {
	if o.XMLDir == "" {
		o.XMLDir = "./xml"
	}
	if o.OutDir == "" {
		o.OutDir = "./src"
	}
	if o.Dialect == "" {
		o.Dialect = DialectPybind11
	}
	o.Dialect = strings.ToLower(o.Dialect)
	if o.Dialect != DialectBoost && o.Dialect != DialectPybind11 {
		return fmt.Errorf("unknown dialect %q (supported: %s, %s)", o.Dialect, DialectBoost, DialectPybind11)
	}
	if o.MaxDepth == 0 {
		o.MaxDepth = 4
	}
	// A bucketable qualified name is at least ["", module, entity].
	if o.MaxDepth < 3 {
		return fmt.Errorf("max depth must be at least 3, got %d", o.MaxDepth)
	}
	if o.DocstringsFile == "" {
		o.DocstringsFile = "docstrings.cpp"
	}
	return nil
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithXMLDir(d string) Option         { return func(o *Options) { o.XMLDir = d } }
func WithOutDir(d string) Option         { return func(o *Options) { o.OutDir = d } }
func WithDialect(d string) Option        { return func(o *Options) { o.Dialect = d } }
func WithModule(m string) Option         { return func(o *Options) { o.Module = m } }
func WithNamedIterators() Option         { return func(o *Options) { o.NamedIterators = true } }
func WithMaxDepth(n int) Option          { return func(o *Options) { o.MaxDepth = n } }
func WithLocationPrefix(p string) Option { return func(o *Options) { o.LocationPrefix = p } }
func WithDocstringsFile(f string) Option { return func(o *Options) { o.DocstringsFile = f } }
