package emitter

import (
	"sort"
	"strings"

	"github.com/doxybind/doxybind/internal/cppmodel"
	"github.com/doxybind/doxybind/pkg/diag"
)

// DocTable is the process-wide signature → documentation map. Signatures are
// globally unique: a duplicate is reported and the first entry is retained.
type DocTable struct {
	diags *diag.Collector
	seen  map[string]bool
	lines []string
	count int
}

func NewDocTable(diags *diag.Collector) *DocTable {
	return &DocTable{diags: diags, seen: map[string]bool{}}
}

func (t *DocTable) Len() int { return t.count }

func (t *DocTable) comment(text string) {
	t.lines = append(t.lines, "    // "+text+"\n")
}

func (t *DocTable) blank() {
	t.lines = append(t.lines, "\n")
}

// Add records the function's documentation under its canonical signature.
// Functions without any documentation text contribute nothing.
func (t *DocTable) Add(f *cppmodel.Function) {
	if f.Brief == "" && f.Detailed == "" {
		return
	}
	sig := f.Signature(true)
	if t.seen[sig] {
		t.diags.Warnf("signature already in docstring table: %s", sig)
		return
	}
	t.seen[sig] = true
	t.count++

	text := escapeCpp(f.Brief)
	if f.Brief != "" && f.Detailed != "" {
		text += "\\n\\n"
	}
	if f.Detailed != "" {
		text += escapeCpp(f.Detailed)
	}
	t.lines = append(t.lines, "    {\""+escapeCpp(sig)+"\", \""+text+"\"},\n")
}

// Collect walks the tree and registers the documentation of every class
// member and free function, in a fixed deterministic order.
func (t *DocTable) Collect(root *cppmodel.Namespace) {
	for _, c := range root.AllClasses() {
		t.comment("Class " + c.Name)
		for _, bucket := range [][]*cppmodel.Function{c.Constructors, c.Destructors, c.Methods, c.Operators} {
			for _, f := range sortedBySignature(bucket) {
				t.Add(f)
			}
		}
		t.blank()
	}

	t.blank()
	t.comment("Functions")
	for _, f := range root.AllFunctions() {
		t.Add(f)
	}
}

// Render produces the complete docstring table file, ending with the
// get_docstring lookup accessor.
func (t *DocTable) Render() string {
	var b strings.Builder
	b.WriteString("/**\n")
	b.WriteString(" * @brief Documentation strings for the Python module.\n")
	b.WriteString(" *\n")
	b.WriteString(" * @file\n")
	b.WriteString(" * @ingroup python\n")
	b.WriteString(" */\n\n")
	b.WriteString("#include <src/common.hpp>\n\n")
	b.WriteString("#include <map>\n")
	b.WriteString("#include <string>\n\n")
	b.WriteString("static std::map<std::string, std::string> doc_strings_ = {\n")
	for _, line := range t.lines {
		b.WriteString(line)
	}
	b.WriteString("};\n\n")
	b.WriteString("const char* get_docstring (const std::string& signature)\n")
	b.WriteString("{\n")
	b.WriteString("    if (doc_strings_.count(signature) > 0) {\n")
	b.WriteString("        return doc_strings_[signature].c_str();\n")
	b.WriteString("    } else {\n")
	b.WriteString("        return \"\";\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")
	return b.String()
}

func sortedBySignature(funcs []*cppmodel.Function) []*cppmodel.Function {
	out := append([]*cppmodel.Function(nil), funcs...)
	sort.Slice(out, func(i, j int) bool { return out[i].Signature(true) < out[j].Signature(true) })
	return out
}
