package snapshot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/doxybind/doxybind/pkg/generator"
)

const indexXML = `<?xml version='1.0' encoding='UTF-8'?>
<doxygenindex>
  <compound refid="namespacedemo" kind="namespace"><name>demo</name></compound>
</doxygenindex>
`

const namespaceXML = `<?xml version='1.0' encoding='UTF-8'?>
<doxygen>
  <compounddef id="namespacedemo" kind="namespace">
    <compoundname>demo</compoundname>
    <sectiondef kind="func">
      <memberdef kind="function" prot="public" static="no" const="no" virt="non-virtual">
        <type>int</type><name>answer</name>
        <briefdescription><para>BRIEF</para></briefdescription>
        <location file="/work/lib/demo/answer.hpp"/>
      </memberdef>
    </sectiondef>
  </compounddef>
</doxygen>
`

func writeXMLDir(t *testing.T, brief string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.xml"), []byte(indexXML), 0o644))
	ns := strings.ReplaceAll(namespaceXML, "BRIEF", brief)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "namespacedemo.xml"), []byte(ns), 0o644))
	return dir
}

func TestGenerateRecordsSnapshot(t *testing.T) {
	work := t.TempDir()
	manifestPath := filepath.Join(work, "manifest.yaml")

	opts := &generator.Options{
		XMLDir: writeXMLDir(t, "The answer."),
		OutDir: filepath.Join(work, "v1"),
	}
	file, err := Generate(opts, manifestPath, "demo", "v1")
	require.NoError(t, err)
	require.FileExists(t, file)

	m, err := List(manifestPath)
	require.NoError(t, err)
	require.Equal(t, "v1", m.CurrentVersion)
	require.Len(t, m.Snapshots, 1)
	require.Equal(t, file, m.Snapshots[0].File)
}

func TestDiffCurrentWithPrevious(t *testing.T) {
	work := t.TempDir()
	manifestPath := filepath.Join(work, "manifest.yaml")

	_, err := Generate(&generator.Options{
		XMLDir: writeXMLDir(t, "The answer."),
		OutDir: filepath.Join(work, "v1"),
	}, manifestPath, "demo", "v1")
	require.NoError(t, err)

	_, err = Generate(&generator.Options{
		XMLDir: writeXMLDir(t, "The revised answer."),
		OutDir: filepath.Join(work, "v2"),
	}, manifestPath, "demo", "v2")
	require.NoError(t, err)

	diff, err := DiffCurrentWithPrevious(manifestPath)
	require.NoError(t, err)
	require.NotEmpty(t, diff)
	require.Contains(t, diff, "revised")
}

func TestDiffWithoutTwoSnapshots(t *testing.T) {
	manifestPath := filepath.Join(t.TempDir(), "manifest.yaml")
	_, err := DiffCurrentWithPrevious(manifestPath)
	require.Error(t, err)
}
