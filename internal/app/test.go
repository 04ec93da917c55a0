package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"conche/internal/core"
)

// Test builds the root package together with its test dependencies,
// compiles the test sources into one binary and runs it.
func (s Service) Test(ctx context.Context, req TestRequest) (TestResult, error) {
	defer s.writeMetrics(ctx)

	spec, err := s.loadRoot(ctx)
	if err != nil {
		return TestResult{}, err
	}
	if spec.TestSpec == nil {
		return TestResult{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("no test specification found in %s", spec.Name))
	}
	graph, err := s.resolveRoot(ctx, spec)
	if err != nil {
		return TestResult{}, err
	}
	testGraphs, err := s.resolveTests(ctx, spec)
	if err != nil {
		return TestResult{}, err
	}

	sources, err := s.testSources(spec.TestSpec.SourceFiles, req.Files)
	if err != nil {
		return TestResult{}, err
	}
	if len(sources) == 0 {
		return TestResult{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("no test source files found for %s", spec.Name))
	}

	env := s.environment()
	plan := env.PlanBuild(graph, s.Config.WorkDir)
	var binary string
	task := env.TestTasks(plan, graph, testGraphs, sources, func(ctx context.Context, path string) error {
		binary = path
		return s.Processes.Run(ctx, path)
	})
	if _, err := s.runner(ctx, req.Jobs).Run(ctx, task); err != nil {
		return TestResult{}, err
	}
	return TestResult{Name: spec.Name, Binary: binary}, nil
}

// testSources prefers explicitly named files over the globs of the test
// specification.
func (s Service) testSources(globs []string, files []string) ([]string, error) {
	if len(files) == 0 {
		return core.ComputeSourceFiles(s.Config.WorkDir, globs)
	}
	sources := make([]string, 0, len(files))
	for _, file := range files {
		if !filepath.IsAbs(file) {
			file = filepath.Join(s.Config.WorkDir, file)
		}
		sources = append(sources, file)
	}
	return sources, nil
}
