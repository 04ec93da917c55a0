package core

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestTasksBuildAndRunAgainstTestDependencies(t *testing.T) {
	env, compiler, downloader, root := newTestEnvironment(t)
	seedRootSources(t, root, "A")
	testSource := filepath.Join(root, "ASpecs", "ASpec.swift")
	require.NoError(t, writeFile(testSource, "// spec"))

	graph := diamond(t)
	spectre := DependencyGraph{Root: sourceSpec(t, "Spectre")}
	shared := DependencyGraph{Root: sourceSpec(t, "D")}
	plan := env.PlanBuild(graph, root)

	var ranBinaries []string
	task := env.TestTasks(plan, graph, []DependencyGraph{spectre, shared}, []string{testSource}, func(_ context.Context, binary string) error {
		ranBinaries = append(ranBinaries, binary)
		return nil
	})
	assert.Equal(t, "Running A Tests", task.Name())
	assert.Len(t, plan.Tasks, 5)

	_, err := NewTaskRunner(nil, 4).Run(t.Context(), task)
	require.NoError(t, err)

	binary := filepath.Join(env.Layout.BinDir, "A-tests")
	assert.Equal(t, []string{binary}, ranBinaries)
	assert.ElementsMatch(t, []string{"B", "C", "D", "Spectre"}, downloader.downloaded)
	assert.ElementsMatch(t, []string{"A", "B", "C", "D", "Spectre"}, compiler.moduleNames())
	require.Len(t, compiler.executables, 1)
	assert.Equal(t, []string{"A", "B", "D", "C", "Spectre"}, compiler.executables[0].Libraries)
	assert.Equal(t, []string{testSource}, compiler.executables[0].SourceFiles)
}

func TestTestTasksAlwaysRunTheBinary(t *testing.T) {
	env, compiler, _, root := newTestEnvironment(t)
	seedRootSources(t, root, "A")
	testSource := filepath.Join(root, "ASpecs", "ASpec.swift")
	require.NoError(t, writeFile(testSource, "// spec"))
	graph := DependencyGraph{Root: sourceSpec(t, "A")}

	runs := 0
	run := func(context.Context, string) error {
		runs++
		return nil
	}
	for range 2 {
		task := env.TestTasks(env.PlanBuild(graph, root), graph, nil, []string{testSource}, run)
		_, err := RunTask(t.Context(), task)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, runs)
	assert.Len(t, compiler.executables, 1)
}
