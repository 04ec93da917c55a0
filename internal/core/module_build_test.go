package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string, at time.Time) {
	t.Helper()
	require.NoError(t, writeFile(path, filepath.Base(path)))
	require.NoError(t, os.Chtimes(path, at, at))
}

func TestIsStale(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	source := filepath.Join(dir, "a.swift")
	older := filepath.Join(dir, "older.swift")
	module := filepath.Join(dir, "A.swiftmodule")
	library := filepath.Join(dir, "libA.so")

	touch(t, older, base)
	touch(t, source, base.Add(time.Minute))
	touch(t, module, base.Add(2*time.Minute))
	touch(t, library, base.Add(2*time.Minute))

	assert.False(t, IsStale([]string{older, source}, []string{module, library}))

	touch(t, library, base.Add(30*time.Second))
	assert.True(t, IsStale([]string{older, source}, []string{module, library}), "one output older than newest source")

	assert.True(t, IsStale([]string{source}, []string{module, filepath.Join(dir, "missing")}), "missing output")
	assert.True(t, IsStale(nil, []string{module}), "no sources")
	assert.True(t, IsStale([]string{filepath.Join(dir, "gone.swift")}, []string{module}), "unreadable source")
}

func TestModuleBuildTaskRequiredFollowsArtifacts(t *testing.T) {
	env, compiler, _, root := newTestEnvironment(t)
	seedRootSources(t, root, "A")
	task, err := env.NewSpecificationBuildTask(sourceSpec(t, "A"), root).ModuleBuildTask()
	require.NoError(t, err)

	assert.True(t, task.IsRequired())
	require.NoError(t, task.Run(t.Context()))
	assert.False(t, task.IsRequired())
	assert.Equal(t, []string{"A"}, compiler.moduleNames())
}

func TestSpecificationBuildTaskRequiredWhenSourcesInvalid(t *testing.T) {
	env, _, _, root := newTestEnvironment(t)
	require.NoError(t, writeFile(filepath.Join(root, "A", "notes.txt"), "text"))
	spec := sourceSpec(t, "A")
	spec.SourceFiles = []string{"A/*"}

	task := env.NewSpecificationBuildTask(spec, root)
	assert.True(t, task.IsRequired())
	assert.Error(t, task.Run(t.Context()))
}

func TestDownloadTaskRequiredOnlyWhenMissing(t *testing.T) {
	dir := t.TempDir()
	task := &SpecificationDownloadTask{Spec: sourceSpec(t, "A"), Destination: filepath.Join(dir, "A")}
	assert.True(t, task.IsRequired())
	assert.Equal(t, "Downloading A (1.0.0)", task.Name())

	require.NoError(t, os.MkdirAll(task.Destination, 0o755))
	assert.False(t, task.IsRequired())
}
