package manifest

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingReturnsEmpty(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, &Manifest{}, m)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "manifest.yaml")

	m := &Manifest{}
	m.AddSnapshot(Snapshot{Name: "demo", Version: "v1", Dialect: "pybind11", File: "src/docstrings.cpp"})
	require.NoError(t, m.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(m, loaded))
}

func TestAddSnapshotRotatesVersions(t *testing.T) {
	m := &Manifest{}

	m.AddSnapshot(Snapshot{Name: "demo", Version: "v1", File: "a"})
	require.Equal(t, "v1", m.CurrentVersion)
	require.Equal(t, "", m.PreviousVersion)

	m.AddSnapshot(Snapshot{Name: "demo", Version: "v2", File: "b"})
	require.Equal(t, "v2", m.CurrentVersion)
	require.Equal(t, "v1", m.PreviousVersion)
	require.Len(t, m.Snapshots, 2)

	// re-adding an existing name+version replaces the entry
	m.AddSnapshot(Snapshot{Name: "demo", Version: "v2", File: "c"})
	require.Len(t, m.Snapshots, 2)
	require.Equal(t, "c", m.SnapshotFile("v2"))
}

func TestSnapshotFile(t *testing.T) {
	m := &Manifest{Snapshots: []Snapshot{{Name: "demo", Version: "v1", File: "a"}}}
	require.Equal(t, "a", m.SnapshotFile("v1"))
	require.Equal(t, "", m.SnapshotFile("v9"))
}
