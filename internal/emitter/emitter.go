package emitter

import (
	"path"
	"sort"
	"strings"

	"github.com/doxybind/doxybind/internal/cppmodel"
	"github.com/doxybind/doxybind/pkg/diag"
)

// exportFile collects everything that goes into one output file.
type exportFile struct {
	scope     string
	using     string
	classes   map[string]string   // class name → rendered block
	functions []string            // rendered free function statements
	templates map[string][]string // template parameter list → statements
}

func newExportFile(scope string) *exportFile {
	return &exportFile{
		scope:     scope,
		classes:   map[string]string{},
		templates: map[string][]string{},
	}
}

// Emitter walks a namespace tree and renders it into output files, one per
// scope bucket, in the configured dialect. The tree is never mutated.
type Emitter struct {
	dialect  Dialect
	module   string
	maxDepth int
	diags    *diag.Collector
}

func New(dialect Dialect, module string, maxDepth int, diags *diag.Collector) *Emitter {
	return &Emitter{dialect: dialect, module: module, maxDepth: maxDepth, diags: diags}
}

// Emit returns the generated files keyed by relative output path, plus the
// consolidated documentation table.
func (e *Emitter) Emit(root *cppmodel.Namespace) (map[string]string, *DocTable) {
	files := map[string]*exportFile{}

	for _, c := range root.AllClasses() {
		scope, ok := e.scopeFor(c.QualifiedName())
		if !ok {
			continue
		}
		filename := outputPath(c.Location, c.IsTemplate())

		exp, ok := files[filename]
		if !ok {
			exp = newExportFile(scope)
			files[filename] = exp
		}
		if exp.scope != scope {
			e.diags.Warnf("multiple scopes in one file %s: %s and %s", filename, exp.scope, scope)
		}
		if _, ok := exp.classes[c.Name]; ok {
			e.diags.Warnf("export file %s already has class %s", filename, c.Name)
			continue
		}
		if !c.IsTemplate() {
			e.setUsing(exp, filename, c.Parent.QualifiedName())
		}
		exp.classes[c.Name] = e.dialect.ExportClass(c, scope)
	}

	for _, f := range root.AllFunctions() {
		scope, ok := e.scopeFor(f.QualifiedName())
		if !ok {
			continue
		}
		filename := outputPath(f.Location, f.IsTemplate())

		exp, ok := files[filename]
		if !ok {
			exp = newExportFile(scope)
			files[filename] = exp
		}
		if exp.scope != scope {
			e.diags.Warnf("multiple scopes in one file %s: %s and %s", filename, exp.scope, scope)
		}
		e.setUsing(exp, filename, f.Parent.QualifiedName())

		body := e.dialect.FunctionBody(f)
		if f.IsTemplate() {
			key := strings.Join(f.TemplateParams, ", ")
			exp.templates[key] = append(exp.templates[key], body)
		} else {
			exp.functions = append(exp.functions, body)
		}
	}

	out := make(map[string]string, len(files))
	for filename, exp := range files {
		out[filename] = e.renderFile(filename, exp)
	}

	docs := NewDocTable(e.diags)
	docs.Collect(root)
	return out, docs
}

// scopeFor truncates a qualified name to its scope bucket key. Entities
// outside the configured module or deeper than the maximum depth are
// rejected.
func (e *Emitter) scopeFor(qualifiedName string) (string, bool) {
	parts := strings.Split(qualifiedName, "::")
	if len(parts) < 3 || parts[0] != "" || parts[1] != e.module {
		e.diags.Debugf("scope %s outside module %s, skipping", qualifiedName, e.module)
		return "", false
	}
	if len(parts) > e.maxDepth {
		e.diags.Warnf("scope %s deeper than maximum depth %d, skipping", qualifiedName, e.maxDepth)
		return "", false
	}
	return strings.Join(parts[2:len(parts)-1], "."), true
}

func (e *Emitter) setUsing(exp *exportFile, filename, namespace string) {
	if exp.using != "" && exp.using != namespace {
		e.diags.Warnf("using namespace of %s already set to %s instead of %s", filename, exp.using, namespace)
		return
	}
	exp.using = namespace
}

func (e *Emitter) renderFile(filename string, exp *exportFile) string {
	var b strings.Builder
	b.WriteString(e.dialect.FilePreamble())
	if exp.using != "" {
		b.WriteString("\nusing namespace " + exp.using + ";\n")
	}

	names := make([]string, 0, len(exp.classes))
	for name := range exp.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) > 0 {
		b.WriteString(sectionHeaderMajor("Classes"))
	}
	for _, name := range names {
		b.WriteString("\n")
		b.WriteString(exp.classes[name])
	}

	identifier := pathIdentifier(filename)
	if len(exp.functions) > 0 || len(exp.templates) > 0 {
		b.WriteString(sectionHeaderMajor("Functions"))
	}
	if len(exp.functions) > 0 {
		b.WriteString(e.dialect.FunctionsBlock(identifier+"_export", exp.scope, exp.using, exp.functions))
	}

	if len(exp.templates) > 0 {
		keys := make([]string, 0, len(exp.templates))
		for key := range exp.templates {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			b.WriteString(templateFunctionsBlock(identifier, key, exp.templates[key]))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// outputPath maps a source location to the relative output file: templates
// go to header files, everything else to translation units. Locations that
// would escape the output directory are prefixed.
func outputPath(location string, template bool) string {
	base := strings.TrimSuffix(location, path.Ext(location))
	ext := ".cpp"
	if template {
		ext = ".hpp"
	}
	p := base + ext
	if strings.HasPrefix(p, ".") || strings.HasPrefix(p, "/") {
		p = "unnamed" + p
	}
	return p
}

func pathIdentifier(filename string) string {
	base := strings.TrimSuffix(filename, path.Ext(filename))
	return strings.NewReplacer("/", "_", ".", "_").Replace(base)
}
