package emitter

import (
	"strings"

	"github.com/doxybind/doxybind/internal/cppmodel"
	"github.com/doxybind/doxybind/pkg/diag"
)

// Boost renders the macro/registration-object style used with Boost.Python.
type Boost struct {
	module string
	diags  *diag.Collector
}

func NewBoost(module string, diags *diag.Collector) *Boost {
	return &Boost{module: module, diags: diags}
}

func (d *Boost) Name() string { return "boost" }

func (d *Boost) FilePreamble() string {
	return "/**\n" +
		" * @brief\n" +
		" *\n" +
		" * @file\n" +
		" * @ingroup python\n" +
		" */\n\n" +
		"#include <python/src/common.hpp>\n\n" +
		"#include \"lib/" + d.module + ".hpp\"\n"
}

func (d *Boost) FunctionBody(f *cppmodel.Function) string {
	var b strings.Builder
	b.WriteString("    boost::python::def(\n")
	b.WriteString("        \"" + f.Name + "\",\n")
	b.WriteString("        ( " + f.ReturnType + " ( * )( " + strings.Join(paramTypes(f), ", ") + " )")
	b.WriteString(")( &" + f.QualifiedName() + " )")
	if len(f.Params) > 0 {
		b.WriteString(",\n        ( " + strings.Join(d.argList(f.Params), ", ") + " )")
	}
	if returnsReference(f.ReturnType) {
		b.WriteString(",\n        boost::python::return_value_policy<boost::python::reference_existing_object>()")
	}
	if f.Brief != "" {
		b.WriteString(",\n        get_docstring(\"" + escapeCpp(f.Signature(true)) + "\")\n")
	} else {
		b.WriteString("\n")
	}
	b.WriteString("    );\n")
	return b.String()
}

func (d *Boost) argList(params []cppmodel.Parameter) []string {
	out := make([]string, len(params))
	for i, p := range params {
		arg := "boost::python::arg(\"" + p.Name + "\")"
		if p.Default != "" {
			arg += "=(" + p.Type + ")(" + p.Default + ")"
		}
		out[i] = arg
	}
	return out
}

// constructorInit renders a boost::python::init expression. Parameters with
// a default value are wrapped as optional.
func (d *Boost) constructorInit(ctor *cppmodel.Function) string {
	types := make([]string, len(ctor.Params))
	for i, p := range ctor.Params {
		if p.Default == "" {
			types[i] = p.Type
		} else {
			types[i] = "boost::python::optional< " + p.Type + " >"
		}
	}

	var b strings.Builder
	b.WriteString("boost::python::init< " + strings.Join(types, ", ") + " >(")
	if len(ctor.Params) > 0 {
		b.WriteString("( ")
	} else {
		b.WriteString(" ")
	}
	b.WriteString(strings.Join(d.argList(ctor.Params), ", "))
	b.WriteString(" )")
	if len(ctor.Params) > 0 {
		b.WriteString(")")
	}
	return b.String()
}

func (d *Boost) classHeader(c *cppmodel.Class) string {
	ctorVal := ""
	if len(c.Constructors) > 0 {
		ctorVal = ", " + d.constructorInit(c.Constructors[0])
	}

	name := "\"" + c.Name + "\""
	if c.IsTemplate() {
		name = "name.c_str()"
	}

	val := "    boost::python::class_< " + classBindingType(c) + " > "
	val += "( " + name + ctorVal + " )\n"
	if len(c.Constructors) > 1 {
		for _, ctor := range c.Constructors[1:] {
			if isMoveConstructor(c, ctor) {
				continue
			}
			val += "        .def( " + d.constructorInit(ctor) + " )\n"
		}
	}
	return val
}

func (d *Boost) classFunctionBody(f *cppmodel.Function, bindingType, pyName string) string {
	if pyName == "" {
		pyName = f.Name
	}

	var b strings.Builder
	b.WriteString("        .def(\n")
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
	if len(f.Params) > 0 {
		b.WriteString(",\n            ( " + strings.Join(d.argList(f.Params), ", ") + " )")
	}
	if returnsReference(f.ReturnType) {
		b.WriteString(",\n            boost::python::return_value_policy<boost::python::reference_existing_object>()")
	}
	if f.Brief != "" {
		b.WriteString(",\n            get_docstring(\"" + escapeCpp(f.Signature(true)) + "\")\n")
	} else {
		b.WriteString("\n")
	}
	b.WriteString("        )\n")

	if f.Static {
		b.WriteString("        .staticmethod(\"" + pyName + "\")\n")
	}
	return b.String()
}

func (d *Boost) classMethods(c *cppmodel.Class) string {
	if len(c.Methods) == 0 {
		return ""
	}
	bodies := make([]string, len(c.Methods))
	for i, m := range c.Methods {
		bodies[i] = d.classFunctionBody(m, classBindingType(c), "")
	}
	return "\n        // Public Member Functions\n\n" + strings.Join(sortedUnique(bodies), "")
}

func (d *Boost) classOperators(c *cppmodel.Class) string {
	val := ""
	for _, op := range c.Operators {
		symbol, category := cppmodel.ClassifyOperator(op.Name)
		switch category {
		case cppmodel.CategoryInplace, cppmodel.CategoryComparison:
			val += "        .def( boost::python::self " + symbol + " boost::python::self )\n"
		case cppmodel.CategoryUnary:
			val += "        .def( " + symbol + "boost::python::self )\n"
		case cppmodel.CategoryArray:
			val += d.classFunctionBody(op, classBindingType(c), "__getitem__")
		case cppmodel.CategoryOstream:
			val += "        .def( boost::python::self_ns::str( boost::python::self ) )\n"
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

func (d *Boost) classIterators(c *cppmodel.Class) string {
	if len(c.Iterators) == 0 {
		return ""
	}
	bindingType := classBindingType(c)
	val := "\n        // Iterators\n\n"
	for _, it := range c.Iterators {
		if it.Name == cppmodel.DefaultIteratorName {
			val += "        .def"
		} else {
			val += "        .add_property"
		}
		val += "(\n            \"" + it.Name + "\",\n            boost::python::range ( &"
		val += bindingType + "::" + it.Begin + ", &"
		val += bindingType + "::" + it.End
		val += " )\n        )\n"
	}
	return val
}

func (d *Boost) class(c *cppmodel.Class) string {
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

func (d *Boost) ExportClass(c *cppmodel.Class, scope string) string {
	if c.IsTemplate() {
		return "template <" + strings.Join(c.TemplateParams, ", ") + ">\n" +
			"void PythonExportClass_" + c.Name + "(std::string name)\n{\n" +
			d.class(c) + "}\n"
	}
	return "PYTHON_EXPORT_CLASS (" + c.Name + ", \"" + scope + "\")\n{\n" + d.class(c) + "}\n"
}

func (d *Boost) FunctionsBlock(identifier, scope, using string, bodies []string) string {
	var b strings.Builder
	b.WriteString("\nPYTHON_EXPORT_FUNCTIONS(" + identifier + ", \"" + scope + "\")\n{\n")
	for _, body := range bodies {
		b.WriteString("\n")
		b.WriteString(body)
	}
	b.WriteString("}\n")
	return b.String()
}
