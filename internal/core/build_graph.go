package core

import (
	"context"
	"path/filepath"
	"sort"

	"conche/internal/ports"
	"conche/internal/types"
)

// BuildEnvironment holds what every build task of one invocation shares.
type BuildEnvironment struct {
	Layout     types.BuildLayout
	Compiler   ports.CompilerPort
	Downloader ports.DownloadPort
}

func NewBuildEnvironment(layout types.BuildLayout, compiler ports.CompilerPort, downloader ports.DownloadPort) BuildEnvironment {
	return BuildEnvironment{Layout: layout, Compiler: compiler, Downloader: downloader}
}

// BuildPlan is the task DAG derived from a dependency graph. Tasks holds
// exactly one build task per package name, the root included.
type BuildPlan struct {
	Root  *SpecificationBuildTask
	Tasks map[string]*SpecificationBuildTask
}

// NewSpecificationBuildTask creates the build task for spec with sources
// in sourceDir, preceded by its download task.
func (e BuildEnvironment) NewSpecificationBuildTask(spec types.Specification, sourceDir string) *SpecificationBuildTask {
	task := &SpecificationBuildTask{
		Spec:      spec,
		SourceDir: sourceDir,
		Layout:    e.Layout,
		Compiler:  e.Compiler,
	}
	task.AddDependency(&SpecificationDownloadTask{
		Spec:        spec,
		Destination: sourceDir,
		Downloader:  e.Downloader,
	})
	return task
}

// PlanBuild turns graph into a task DAG. A package reachable on several
// branches gets one task, which every dependent shares. The root package
// builds from rootDir; the others from their directory in the layout.
func (e BuildEnvironment) PlanBuild(graph DependencyGraph, rootDir string) BuildPlan {
	plan := BuildPlan{Tasks: map[string]*SpecificationBuildTask{}}
	plan.Root = e.NewSpecificationBuildTask(graph.Root, rootDir)
	plan.Tasks[graph.Root.Name] = plan.Root
	for _, child := range graph.Dependencies {
		plan.Root.AddDependency(e.Include(plan, child))
	}
	return plan
}

// Include adds graph to plan and returns the task building graph.Root.
// Packages already in plan keep their task, whatever version graph names.
func (e BuildEnvironment) Include(plan BuildPlan, graph DependencyGraph) *SpecificationBuildTask {
	if existing, ok := plan.Tasks[graph.Root.Name]; ok {
		return existing
	}
	task := e.NewSpecificationBuildTask(graph.Root, e.Layout.PackageDir(graph.Root.Name))
	plan.Tasks[graph.Root.Name] = task
	for _, child := range graph.Dependencies {
		task.AddDependency(e.Include(plan, child))
	}
	return task
}

// EntryPointsTask links every command-line entry point of the root package
// once the root build has finished. Each binary links against every
// package in graph.
func (e BuildEnvironment) EntryPointsTask(plan BuildPlan, graph DependencyGraph, rootDir string) *FuncTask {
	entryPoints := graph.Root.EntryPoints[types.EntryPointKindCLI]
	names := make([]string, 0, len(entryPoints))
	for name := range entryPoints {
		names = append(names, name)
	}
	sort.Strings(names)

	requests := make([]ports.ExecutableBuildRequest, 0, len(names))
	for _, name := range names {
		requests = append(requests, ports.ExecutableBuildRequest{
			Name:        name,
			SourceFiles: []string{filepath.Join(rootDir, entryPoints[name])},
			ModulesDir:  e.Layout.ModulesDir,
			LibDir:      e.Layout.LibDir,
			BinDir:      e.Layout.BinDir,
			Libraries:   graph.Names(),
		})
	}

	task := NewFuncTask("Building Entry Points", func(ctx context.Context) error {
		for _, req := range requests {
			if err := e.Compiler.BuildExecutable(ctx, req); err != nil {
				return err
			}
		}
		return nil
	}, plan.Root)
	task.Required = func() bool {
		for _, req := range requests {
			if IsStale(req.SourceFiles, []string{filepath.Join(req.BinDir, req.Name)}) {
				return true
			}
		}
		return false
	}
	return task
}
