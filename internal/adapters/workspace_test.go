package adapters

import (
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceAdapterFindManifests(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, filepath.Join(root, "Conche.podspec.json"), "{}")
	writeManifest(t, filepath.Join(root, "Conche.swift"), "")
	writeManifest(t, filepath.Join(root, "Vendor", "PathKit", "PathKit.podspec.yaml"), "")
	for _, dir := range []string{".git", ".conche", ".build", "node_modules"} {
		writeManifest(t, filepath.Join(root, dir, "Ignored", "Ignored.podspec.json"), "{}")
	}

	adapter := NewWorkspaceAdapter()

	shallow, err := adapter.FindManifests(root, false)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "Conche.podspec.json")}, shallow)

	deep, err := adapter.FindManifests(root, true)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "Conche.podspec.json"),
		filepath.Join(root, "Vendor", "PathKit", "PathKit.podspec.yaml"),
	}, deep)
}

func TestWorkspaceAdapterEmptyRootErrors(t *testing.T) {
	_, err := NewWorkspaceAdapter().FindManifests("", false)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestWorkspaceAdapterNonExistentRootErrors(t *testing.T) {
	_, err := NewWorkspaceAdapter().FindManifests("/nonexistent/path/that/does/not/exist", false)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}
