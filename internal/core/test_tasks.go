package core

import (
	"context"
	"path/filepath"

	"conche/internal/ports"
)

// TestTasks builds the root package's test binary against every package
// of graph and testGraphs, then hands the binary to run. The returned
// task is the run step; building is its only dependency.
func (e BuildEnvironment) TestTasks(plan BuildPlan, graph DependencyGraph, testGraphs []DependencyGraph, sourceFiles []string, run func(ctx context.Context, binary string) error) *FuncTask {
	libraries := graph.Names()
	linked := map[string]struct{}{}
	for _, name := range libraries {
		linked[name] = struct{}{}
	}
	deps := []Task{plan.Root}
	for _, testGraph := range testGraphs {
		deps = append(deps, e.Include(plan, testGraph))
		for _, name := range testGraph.Names() {
			if _, ok := linked[name]; ok {
				continue
			}
			linked[name] = struct{}{}
			libraries = append(libraries, name)
		}
	}

	req := ports.ExecutableBuildRequest{
		Name:        graph.Root.Name + "-tests",
		SourceFiles: sourceFiles,
		ModulesDir:  e.Layout.ModulesDir,
		LibDir:      e.Layout.LibDir,
		BinDir:      e.Layout.BinDir,
		Libraries:   libraries,
	}
	binary := filepath.Join(req.BinDir, req.Name)

	build := NewFuncTask("Building "+graph.Root.Name+" Tests", func(ctx context.Context) error {
		return e.Compiler.BuildExecutable(ctx, req)
	}, deps...)
	build.Required = func() bool {
		return IsStale(sourceFiles, []string{binary})
	}
	return NewFuncTask("Running "+graph.Root.Name+" Tests", func(ctx context.Context) error {
		return run(ctx, binary)
	}, build)
}
