package doxygen

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/doxybind/doxybind/internal/cppmodel"
	"github.com/doxybind/doxybind/pkg/diag"
)

func newTestCollector() *diag.Collector {
	return diag.NewCollector(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

const indexXML = `<?xml version='1.0' encoding='UTF-8'?>
<doxygenindex version="1.9.1">
  <compound refid="classdemo_1_1Tree" kind="class"><name>demo::Tree</name></compound>
  <compound refid="namespacedemo" kind="namespace"><name>demo</name></compound>
  <compound refid="tree_8hpp" kind="file"><name>tree.hpp</name></compound>
</doxygenindex>
`

const treeClassXML = `<?xml version='1.0' encoding='UTF-8'?>
<doxygen version="1.9.1">
  <compounddef id="classdemo_1_1Tree" kind="class" prot="public">
    <compoundname>demo::Tree</compoundname>
    <briefdescription><para>A weighted tree.</para></briefdescription>
    <detaileddescription><para>Longer text.</para></detaileddescription>
    <sectiondef kind="public-func">
      <memberdef kind="function" prot="public" static="no" const="yes" virt="non-virtual">
        <type>std::<ref refid="cstddef">size_t</ref></type>
        <name>size</name>
        <briefdescription><para>Number of nodes.</para></briefdescription>
        <detaileddescription></detaileddescription>
        <location file="/work/lib/demo/tree.hpp" line="42"/>
      </memberdef>
      <memberdef kind="function" prot="public" static="no" const="no" virt="non-virtual">
        <type>bool</type>
        <name>insert</name>
        <param><type>const std::string &amp;</type><declname>key</declname></param>
        <param><type>int</type><declname>weight</declname><defval>0</defval></param>
        <briefdescription></briefdescription>
        <detaileddescription></detaileddescription>
        <location file="/work/lib/demo/tree.hpp" line="50"/>
      </memberdef>
      <memberdef kind="variable" prot="public" static="no">
        <type>int</type>
        <name>count_</name>
      </memberdef>
    </sectiondef>
    <sectiondef kind="private-func">
      <memberdef kind="function" prot="private" static="no" const="no" virt="non-virtual">
        <type>void</type>
        <name>rebalance</name>
        <location file="/work/lib/demo/tree.hpp" line="60"/>
      </memberdef>
    </sectiondef>
    <location file="/work/lib/demo/tree_fwd.hpp"/>
  </compounddef>
</doxygen>
`

const demoNamespaceXML = `<?xml version='1.0' encoding='UTF-8'?>
<doxygen version="1.9.1">
  <compounddef id="namespacedemo" kind="namespace">
    <compoundname>demo</compoundname>
    <sectiondef kind="func">
      <memberdef kind="function" prot="public" static="no" const="no" virt="non-virtual">
        <type>Tree</type>
        <name>makeTree</name>
        <param><type>int</type><declname>depth</declname></param>
        <briefdescription><para>Builds a full tree.</para></briefdescription>
        <detaileddescription></detaileddescription>
        <location file="/work/lib/demo/factory.hpp" line="12"/>
      </memberdef>
    </sectiondef>
  </compounddef>
</doxygen>
`

func TestReadMissingIndex(t *testing.T) {
	dir := t.TempDir()
	_, err := Read(dir, newTestCollector())
	require.Error(t, err)
	require.Contains(t, err.Error(), "read doxygen index")
}

func TestRead(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "index.xml", indexXML)
	writeFixture(t, dir, "classdemo_1_1Tree.xml", treeClassXML)
	writeFixture(t, dir, "namespacedemo.xml", demoNamespaceXML)

	diags := newTestCollector()
	root, err := Read(dir, diags)
	require.NoError(t, err)

	require.Equal(t, []string{"demo"}, root.NamespaceNames())
	demo := root.EnsureNamespace("demo")

	classes := demo.AllClasses()
	require.Len(t, classes, 1)
	tree := classes[0]
	require.Equal(t, "Tree", tree.Name)
	require.Equal(t, "::demo::Tree", tree.QualifiedName())
	require.Equal(t, "A weighted tree.", tree.Brief)
	require.Equal(t, "Longer text.", tree.Detailed)
	require.False(t, tree.IsTemplate())
	require.Equal(t, "/work/lib/demo/tree.hpp", tree.Location)

	require.Len(t, tree.Methods, 2)
	var size, insert *cppmodel.Function
	for _, m := range tree.Methods {
		switch m.Name {
		case "size":
			size = m
		case "insert":
			insert = m
		}
	}
	require.NotNil(t, size)
	require.NotNil(t, insert)

	// mixed content inside <type> flattens to plain text
	require.Equal(t, "std::size_t", size.ReturnType)
	require.True(t, size.Const)
	require.Equal(t, "Number of nodes.", size.Brief)

	require.Len(t, insert.Params, 2)
	require.Equal(t, cppmodel.Parameter{Type: "const std::string &", Name: "key"}, insert.Params[0])
	require.Equal(t, cppmodel.Parameter{Type: "int", Name: "weight", Default: "0"}, insert.Params[1])

	funcs := demo.AllFunctions()
	require.Len(t, funcs, 1)
	require.Equal(t, "makeTree", funcs[0].Name)
	require.Equal(t, "Tree", funcs[0].ReturnType)
	require.Equal(t, "/work/lib/demo/factory.hpp", funcs[0].Location)

	// the variable member in a public function section is reported
	require.Equal(t, 1, diags.Count(diag.SeverityWarn))
}

func TestReadMultipleMemberLocations(t *testing.T) {
	const splitClassXML = `<?xml version='1.0' encoding='UTF-8'?>
<doxygen>
  <compounddef id="classdemo_1_1Split" kind="class" prot="public">
    <compoundname>demo::Split</compoundname>
    <sectiondef kind="public-func">
      <memberdef kind="function" prot="public" static="no" const="no" virt="non-virtual">
        <type>void</type><name>first</name>
        <location file="/work/a.hpp"/>
      </memberdef>
      <memberdef kind="function" prot="public" static="no" const="no" virt="non-virtual">
        <type>void</type><name>second</name>
        <location file="/work/b.hpp"/>
      </memberdef>
    </sectiondef>
  </compounddef>
</doxygen>
`
	const splitIndexXML = `<?xml version='1.0' encoding='UTF-8'?>
<doxygenindex>
  <compound refid="classdemo_1_1Split" kind="class"><name>demo::Split</name></compound>
</doxygenindex>
`
	dir := t.TempDir()
	writeFixture(t, dir, "index.xml", splitIndexXML)
	writeFixture(t, dir, "classdemo_1_1Split.xml", splitClassXML)

	diags := newTestCollector()
	root, err := Read(dir, diags)
	require.NoError(t, err)

	classes := root.AllClasses()
	require.Len(t, classes, 1)
	require.Equal(t, "/work/a.hpp", classes[0].Location)
	require.Equal(t, 1, diags.Count(diag.SeverityWarn))
}

func TestReadTemplateClass(t *testing.T) {
	const tmplClassXML = `<?xml version='1.0' encoding='UTF-8'?>
<doxygen>
  <compounddef id="classdemo_1_1Box" kind="class" prot="public">
    <compoundname>demo::Box</compoundname>
    <templateparamlist>
      <param><type>typename</type><declname>T</declname></param>
    </templateparamlist>
    <sectiondef kind="public-func">
      <memberdef kind="function" prot="public" static="no" const="no" virt="non-virtual">
        <type>T</type><name>get</name>
        <location file="/work/box.hpp"/>
      </memberdef>
    </sectiondef>
  </compounddef>
</doxygen>
`
	const tmplIndexXML = `<?xml version='1.0' encoding='UTF-8'?>
<doxygenindex>
  <compound refid="classdemo_1_1Box" kind="class"><name>demo::Box</name></compound>
</doxygenindex>
`
	dir := t.TempDir()
	writeFixture(t, dir, "index.xml", tmplIndexXML)
	writeFixture(t, dir, "classdemo_1_1Box.xml", tmplClassXML)

	root, err := Read(dir, newTestCollector())
	require.NoError(t, err)

	classes := root.AllClasses()
	require.Len(t, classes, 1)
	require.True(t, classes[0].IsTemplate())
	require.Equal(t, []string{"typename T"}, classes[0].TemplateParams)
}

func TestReadMissingCompoundFileSkips(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "index.xml", indexXML)
	// only the namespace detail file exists
	writeFixture(t, dir, "namespacedemo.xml", demoNamespaceXML)

	diags := newTestCollector()
	root, err := Read(dir, diags)
	require.NoError(t, err)

	require.Empty(t, root.AllClasses())
	require.Len(t, root.AllFunctions(), 1)
	require.Equal(t, 1, diags.Count(diag.SeverityWarn))
}
