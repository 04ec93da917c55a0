package adapters

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conche/internal/core"
	"conche/internal/types"
)

func TestLocalSourceSearch(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, filepath.Join(root, "PathKit.podspec.json"), pathKitManifest)
	writeManifest(t, filepath.Join(root, "Broken.podspec.json"), `{"name": "Broken"}`)

	source := NewLocalSource(root, NewWorkspaceAdapter(), NewManifestFileAdapter())

	dep, err := core.NewDependency("PathKit", "~> 0.6.0")
	require.NoError(t, err)
	specs := source.Search(t.Context(), dep)
	require.Len(t, specs, 1)
	assert.Equal(t, "PathKit 0.6.1", specs[0].String())

	dep, err = core.NewDependency("PathKit", "> 0.6.1")
	require.NoError(t, err)
	assert.Empty(t, source.Search(t.Context(), dep))

	assert.Empty(t, source.Search(t.Context(), types.Dependency{Name: "Broken"}))
	require.NoError(t, source.Update(t.Context()))
}

func TestLocalSourceMissingRootIsEmpty(t *testing.T) {
	source := NewLocalSource(filepath.Join(t.TempDir(), "missing"), NewWorkspaceAdapter(), NewManifestFileAdapter())
	assert.Empty(t, source.Search(t.Context(), types.Dependency{Name: "PathKit"}))
}
