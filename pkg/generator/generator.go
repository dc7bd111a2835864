// Package generator runs the full pipeline: read the Doxygen XML export,
// apply the model transforms, emit binding sources in the configured dialect
// and write them below the output directory.
package generator

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/doxybind/doxybind/internal/cppmodel"
	"github.com/doxybind/doxybind/internal/doxygen"
	"github.com/doxybind/doxybind/internal/emitter"
	"github.com/doxybind/doxybind/pkg/diag"
)

// GeneratedFile describes one written output file.
type GeneratedFile struct {
	Path string
	Size int
}

// Result is the outcome of one generation run.
type Result struct {
	Module     string
	Dialect    string
	Files      []GeneratedFile
	Docstrings int
	Diags      *diag.Collector
}

// Run executes the pipeline. The input directory is parsed to completion
// before any transform or emission step; emission is a pure function of the
// in-memory tree, so identical input yields byte-identical output.
func Run(opts *Options) (*Result, error) {
	if err := opts.Normalize(); err != nil {
		return nil, err
	}
	diags := diag.NewCollector(slog.Default())

	root, err := doxygen.Read(opts.XMLDir, diags)
	if err != nil {
		return nil, err
	}

	root.ExtractIterators(opts.NamedIterators, diags)
	root.ShortenLocationPrefix(opts.LocationPrefix, diags)

	module := opts.Module
	if module == "" {
		module, err = inferModule(root)
		if err != nil {
			return nil, err
		}
		diags.Infof("inferred module name %q", module)
	}

	var dialect emitter.Dialect
	switch opts.Dialect {
	case DialectBoost:
		dialect = emitter.NewBoost(module, diags)
	default:
		dialect = emitter.NewPybind11(module, diags)
	}

	files, docs := emitter.New(dialect, module, opts.MaxDepth, diags).Emit(root)
	files[opts.DocstringsFile] = docs.Render()

	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	res := &Result{
		Module:     module,
		Dialect:    opts.Dialect,
		Docstrings: docs.Len(),
		Diags:      diags,
	}
	for _, p := range paths {
		full := filepath.Join(opts.OutDir, filepath.FromSlash(p))
		if _, err := os.Stat(full); err == nil {
			diags.Warnf("overwriting existing file %s", full)
		}
		if err := writeFileAtomic(full, files[p]); err != nil {
			return nil, fmt.Errorf("write %s: %w", full, err)
		}
		res.Files = append(res.Files, GeneratedFile{Path: full, Size: len(files[p])})
	}

	return res, nil
}

// inferModule picks the module namespace when none is configured: the sole
// top-level namespace of the parsed tree.
func inferModule(root *cppmodel.Namespace) (string, error) {
	names := root.NamespaceNames()
	if len(names) != 1 {
		return "", fmt.Errorf("cannot infer module name from %d top-level namespaces, set one explicitly", len(names))
	}
	return names[0], nil
}

// writeFileAtomic writes the complete content and renames it into place, so
// a partially written output file is never observable.
func writeFileAtomic(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
