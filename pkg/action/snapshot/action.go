package snapshot

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/go-cmp/cmp"

	"github.com/doxybind/doxybind/pkg/generator"
	"github.com/doxybind/doxybind/pkg/manifest"
)

// Generate runs a generation pass and records the resulting docstring table
// as a snapshot in the manifest.
func Generate(opts *generator.Options, manifestPath, snapshotName, snapshotVersion string) (string, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return "", err
	}

	if _, err := generator.Run(opts); err != nil {
		return "", err
	}

	outFile := filepath.Clean(filepath.Join(opts.OutDir, opts.DocstringsFile))
	m.AddSnapshot(manifest.Snapshot{
		Name:    snapshotName,
		Version: snapshotVersion,
		Dialect: opts.Dialect,
		File:    outFile,
	})

	if err := m.Save(manifestPath); err != nil {
		return "", err
	}

	return outFile, nil
}

// List returns all snapshots recorded in the manifest.
func List(manifestPath string) (*manifest.Manifest, error) {
	return manifest.Load(manifestPath)
}

// DiffCurrentWithPrevious loads the manifest, locates the current and previous
// snapshot files, and returns a textual diff of their contents.
func DiffCurrentWithPrevious(manifestPath string) (string, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return "", err
	}

	if m.CurrentVersion == "" || m.PreviousVersion == "" {
		return "", fmt.Errorf("no current/previous snapshots recorded")
	}

	currentPath := m.SnapshotFile(m.CurrentVersion)
	previousPath := m.SnapshotFile(m.PreviousVersion)

	if currentPath == "" || previousPath == "" {
		return "", fmt.Errorf("snapshot files not found in manifest")
	}

	current, err := os.ReadFile(currentPath)
	if err != nil {
		return "", fmt.Errorf("read current snapshot: %w", err)
	}

	previous, err := os.ReadFile(previousPath)
	if err != nil {
		return "", fmt.Errorf("read previous snapshot: %w", err)
	}

	return cmp.Diff(string(previous), string(current)), nil
}
