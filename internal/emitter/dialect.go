// Package emitter renders the C++ entity model into binding registration
// sources. Two target dialects are supported, Boost.Python and pybind11,
// behind one Dialect interface; bucketing of entities into output files and
// the docstring table are shared.
package emitter

import (
	"sort"
	"strings"

	"github.com/doxybind/doxybind/internal/cppmodel"
)

// Dialect renders individual entities into one binding-library text format.
type Dialect interface {
	Name() string

	// FilePreamble is the fixed header of every export file, including the
	// common include lines.
	FilePreamble() string

	// FunctionBody renders the registration statement for one free function.
	FunctionBody(f *cppmodel.Function) string

	// ExportClass renders the complete registration block for a class.
	// Non-template classes become a direct export block; class templates
	// become a parametrized emission function instantiated by name.
	ExportClass(c *cppmodel.Class, scope string) string

	// FunctionsBlock wraps the statements for a file's free functions.
	FunctionsBlock(identifier, scope, using string, bodies []string) string
}

// escapeCpp escapes a text for use inside a C++ string literal.
func escapeCpp(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

func sectionHeader(symbol, title string, indent, length int) string {
	pad := strings.Repeat(" ", indent)
	bar := pad + "// " + strings.Repeat(symbol, length-3) + "\n"
	return "\n" + bar + pad + "//     " + title + "\n" + bar + "\n"
}

func sectionHeaderMajor(title string) string {
	return sectionHeader("=", title, 0, 80)
}

func sectionHeaderMinor(title string) string {
	return sectionHeader("-", title, 4, 70)
}

func paramTypes(f *cppmodel.Function) []string {
	out := make([]string, len(f.Params))
	for i, p := range f.Params {
		out[i] = p.Type
	}
	return out
}

// returnsReference reports whether the declared return type hands out a
// pointer or reference, which needs an explicit return-value policy in the
// Boost.Python dialect.
func returnsReference(returnType string) bool {
	t := strings.TrimSpace(returnType)
	return strings.HasSuffix(t, "*") || strings.HasSuffix(t, "&")
}

// isMoveConstructor reports a constructor of the shape T(T&&), which is
// skipped during emission.
func isMoveConstructor(c *cppmodel.Class, ctor *cppmodel.Function) bool {
	return len(ctor.Params) == 1 && ctor.Params[0].Type == c.Name+" &&"
}

// classBindingType is the type expression registered for a class: the
// qualified name for plain classes, the local "<Name>Type" using-alias for
// templates.
func classBindingType(c *cppmodel.Class) string {
	if c.IsTemplate() {
		return c.Name + "Type"
	}
	return c.QualifiedName()
}

// templateUsingHeader opens the body of a template class export: the
// enclosing namespace and the instantiated using-alias.
func templateUsingHeader(c *cppmodel.Class) string {
	return "    using namespace " + c.Parent.QualifiedName() + ";\n\n" +
		"    using " + c.Name + "Type = " + c.Name + "<" + strings.Join(c.TemplateParams, ", ") + ">;\n\n"
}

// templateFunctionsBlock wraps free function templates into a parametrized
// emission function; identical in both dialects.
func templateFunctionsBlock(identifier, templateParams string, bodies []string) string {
	suffix := strings.NewReplacer("class", "", "typename", "", " ", "", ",", "_").Replace(templateParams)
	var b strings.Builder
	b.WriteString("\ntemplate<" + templateParams + ">\n")
	b.WriteString("void python_export_function_" + identifier + "_" + suffix + " ()\n{\n")
	b.WriteString(strings.Join(bodies, "\n") + "}\n")
	return b.String()
}

// sortedUnique sorts the rendered bodies and drops duplicates: two overloads
// that render to identical text must not produce duplicate statements.
func sortedUnique(list []string) []string {
	sorted := append([]string(nil), list...)
	sort.Strings(sorted)
	out := sorted[:0]
	for i, s := range sorted {
		if i > 0 && s == sorted[i-1] {
			continue
		}
		out = append(out, s)
	}
	return out
}
