package emitter

import (
	"strings"

	"github.com/doxybind/doxybind/internal/cppmodel"
	"github.com/doxybind/doxybind/pkg/diag"
)

// Pybind11 renders the header-only templated style used with pybind11.
type Pybind11 struct {
	module string
	diags  *diag.Collector
}

func NewPybind11(module string, diags *diag.Collector) *Pybind11 {
	return &Pybind11{module: module, diags: diags}
}

func (d *Pybind11) Name() string { return "pybind11" }

func (d *Pybind11) FilePreamble() string {
	return "/**\n" +
		" * @brief\n" +
		" *\n" +
		" * @file\n" +
		" * @ingroup python\n" +
		" */\n\n" +
		"#include <src/common.hpp>\n\n" +
		"#include \"" + d.module + "/" + d.module + ".hpp\"\n"
}

func (d *Pybind11) FunctionBody(f *cppmodel.Function) string {
	var b strings.Builder
	b.WriteString("    scope.def(\n")
	b.WriteString("        \"" + f.Name + "\",\n")
	b.WriteString("        ( " + f.ReturnType + " ( * )( " + strings.Join(paramTypes(f), ", ") + " )")
	b.WriteString(")( &" + f.QualifiedName() + " )")
	for _, p := range f.Params {
		b.WriteString(",\n            " + d.arg(p))
	}
	if f.Brief != "" {
		b.WriteString(",\n        get_docstring(\"" + escapeCpp(f.Signature(true)) + "\")\n")
	} else {
		b.WriteString("\n")
	}
	b.WriteString("    );\n")
	return b.String()
}

func (d *Pybind11) arg(p cppmodel.Parameter) string {
	name := p.Name
	if name == "" {
		name = "arg"
	}
	s := "pybind11::arg(\"" + name + "\")"
	if p.Default != "" {
		s += "=(" + p.Type + ")(" + p.Default + ")"
	}
	return s
}

func (d *Pybind11) classHeader(c *cppmodel.Class) string {
	bindingType := classBindingType(c)
	name := "\"" + c.Name + "\""
	if c.IsTemplate() {
		name = "name.c_str()"
	}

	var b strings.Builder
	b.WriteString("    pybind11::class_< " + bindingType + ", std::shared_ptr<" + bindingType + "> > ")
	b.WriteString("( scope, " + name + " )\n")

	for _, ctor := range c.Constructors {
		if isMoveConstructor(c, ctor) {
			continue
		}
		b.WriteString("        .def(\n")
		b.WriteString("            pybind11::init< " + strings.Join(paramTypes(ctor), ", ") + " >()")
		for _, p := range ctor.Params {
			b.WriteString(",\n            " + d.arg(p))
		}
		if ctor.Brief != "" {
			b.WriteString(",\n            get_docstring(\"" + escapeCpp(ctor.Signature(true)) + "\")\n")
		} else {
			b.WriteString("\n")
		}
		b.WriteString("        )\n")
	}
	return b.String()
}

func (d *Pybind11) classFunctionBody(f *cppmodel.Function, bindingType, pyName string) string {
	if pyName == "" {
		pyName = f.Name
	}

	var b strings.Builder
	b.WriteString("        .def")
	if f.Static {
		b.WriteString("_static")
	}
	b.WriteString("(\n")
	b.WriteString("            \"" + pyName + "\",\n")
	b.WriteString("            ( " + f.ReturnType + " ( ")
	if f.Static {
		b.WriteString("*")
	} else {
		b.WriteString(bindingType + "::*")
	}
	b.WriteString(" )( " + strings.Join(paramTypes(f), ", ") + " )")
	if f.Const {
		b.WriteString(" const ")
	}
	b.WriteString(")( &" + bindingType + "::" + f.Name + " )")
	for _, p := range f.Params {
		b.WriteString(",\n            " + d.arg(p))
	}
	if f.Brief != "" {
		b.WriteString(",\n            get_docstring(\"" + escapeCpp(f.Signature(true)) + "\")\n")
	} else {
		b.WriteString("\n")
	}
	b.WriteString("        )\n")
	return b.String()
}

func (d *Pybind11) classMethods(c *cppmodel.Class) string {
	if len(c.Methods) == 0 {
		return ""
	}
	bodies := make([]string, len(c.Methods))
	for i, m := range c.Methods {
		bodies[i] = d.classFunctionBody(m, classBindingType(c), "")
	}
	return "\n        // Public Member Functions\n\n" + strings.Join(sortedUnique(bodies), "")
}

func (d *Pybind11) classOperators(c *cppmodel.Class) string {
	val := ""
	for _, op := range c.Operators {
		symbol, category := cppmodel.ClassifyOperator(op.Name)
		switch category {
		case cppmodel.CategoryInplace, cppmodel.CategoryComparison:
			val += "        .def( pybind11::self " + symbol + " pybind11::self )\n"
		case cppmodel.CategoryUnary:
			val += "        .def( " + symbol + "pybind11::self )\n"
		case cppmodel.CategoryArray:
			val += d.classFunctionBody(op, classBindingType(c), "__getitem__")
		case cppmodel.CategoryOstream:
			val += "        .def(\n" +
				"            \"__str__\",\n" +
				"            []( " + c.QualifiedName() + " const& obj ) -> std::string {\n" +
				"                std::ostringstream s;\n" +
				"                s << obj;\n" +
				"                return s.str();\n" +
				"            }\n" +
				"        )\n"
		case cppmodel.CategoryAccess, cppmodel.CategoryDereference,
			cppmodel.CategoryCrement, cppmodel.CategoryAssignment, cppmodel.CategoryConversion:
			d.diags.Debugf("dropping operator%s (%s) of class %s: unsupported by the %s dialect", symbol, category, c.Name, d.Name())
		default:
			d.diags.Warnf("unclassified operator %q in class %s", op.Name, c.Name)
		}
	}
	if val != "" {
		val = "\n        // Operators\n\n" + val
	}
	return val
}

func (d *Pybind11) classIterators(c *cppmodel.Class) string {
	if len(c.Iterators) == 0 {
		return ""
	}
	val := "\n        // Iterators\n\n"
	for _, it := range c.Iterators {
		val += "        .def(\n"
		val += "            \"" + it.Name + "\",\n"
		val += "            []( " + c.QualifiedName() + "& obj ){\n"
		val += "                return pybind11::make_iterator( "
		val += "obj." + it.Begin + "(), obj." + it.End + "() );\n"
		val += "            },\n"
		val += "            pybind11::keep_alive<0, 1>()\n"
		val += "        )\n"
	}
	return val
}

func (d *Pybind11) class(c *cppmodel.Class) string {
	val := sectionHeaderMinor("Class " + c.Name)
	if c.IsTemplate() {
		val += templateUsingHeader(c)
	}
	val += d.classHeader(c)
	val += d.classMethods(c)
	val += d.classOperators(c)
	val += d.classIterators(c)
	val += "    ;\n"
	return val
}

func (d *Pybind11) ExportClass(c *cppmodel.Class, scope string) string {
	if c.IsTemplate() {
		return "template <" + strings.Join(c.TemplateParams, ", ") + ">\n" +
			"void PythonExportClass_" + c.Name + "(std::string name)\n{\n" +
			d.class(c) + "}\n"
	}
	return "PYTHON_EXPORT_CLASS( " + c.QualifiedName() + ", scope )\n{\n" + d.class(c) + "}\n"
}

func (d *Pybind11) FunctionsBlock(identifier, scope, using string, bodies []string) string {
	var b strings.Builder
	b.WriteString("\nPYTHON_EXPORT_FUNCTIONS( " + identifier + ", " + using + ", scope )\n{\n")
	for _, body := range bodies {
		b.WriteString("\n")
		b.WriteString(body)
	}
	b.WriteString("}\n")
	return b.String()
}
