package app

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"

	"conche/internal/core"
	"conche/internal/types"
)

// Build resolves the root package, builds every package of its graph and
// then links the root's command-line entry points.
func (s Service) Build(ctx context.Context, req BuildRequest) (BuildResult, error) {
	defer s.writeMetrics(ctx)

	spec, err := s.loadRoot(ctx)
	if err != nil {
		return BuildResult{}, err
	}
	emitHints(checkSpecificationHints(spec))
	graph, err := s.resolveRoot(ctx, spec)
	if err != nil {
		return BuildResult{}, err
	}

	env := s.environment()
	plan := env.PlanBuild(graph, s.Config.WorkDir)
	var target core.Task = plan.Root
	executables := entryPointBinaries(spec, s.layout())
	if len(executables) > 0 {
		target = env.EntryPointsTask(plan, graph, s.Config.WorkDir)
	}

	log.Ctx(ctx).Info().Str("package", spec.String()).Int("packages", len(plan.Tasks)).Msg("building")
	didWork, err := s.runner(ctx, req.Jobs).Run(ctx, target)
	if err != nil {
		return BuildResult{}, err
	}
	return BuildResult{Name: spec.Name, DidWork: didWork, Executables: executables}, nil
}

func entryPointBinaries(spec types.Specification, layout types.BuildLayout) []string {
	entryPoints := spec.EntryPoints[types.EntryPointKindCLI]
	binaries := make([]string, 0, len(entryPoints))
	for name := range entryPoints {
		binaries = append(binaries, filepath.Join(layout.BinDir, name))
	}
	sort.Strings(binaries)
	return binaries
}
