package app

import (
	"context"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"conche/internal/ports"
)

// Prune removes the checkouts and build outputs of packages that the
// current graph, test dependencies included, no longer uses.
func (s Service) Prune(ctx context.Context, req PruneRequest) (PruneResult, error) {
	spec, err := s.loadRoot(ctx)
	if err != nil {
		return PruneResult{}, err
	}
	graph, err := s.resolveRoot(ctx, spec)
	if err != nil {
		return PruneResult{}, err
	}
	wanted := graph.Names()
	if spec.TestSpec != nil {
		testGraphs, err := s.resolveTests(ctx, spec)
		if err != nil {
			return PruneResult{}, err
		}
		for _, testGraph := range testGraphs {
			wanted = append(wanted, testGraph.Names()...)
		}
	}

	layout := s.layout()
	plan := BuildPrunePlan(presentPackages(layout.PackagesDir, layout.ModulesDir), wanted)
	if req.DryRun {
		return PruneResult{Keep: plan.Keep, Removed: plan.Delete, DryRun: true}, nil
	}

	for _, name := range plan.Delete {
		paths := []string{layout.PackageDir(name)}
		paths = append(paths, s.Compiler.ModuleArtifacts(ports.ModuleBuildRequest{
			Name:       name,
			ModulesDir: layout.ModulesDir,
			LibDir:     layout.LibDir,
		})...)
		for _, path := range paths {
			if err := os.RemoveAll(path); err != nil {
				return PruneResult{}, errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg("failed to remove " + path).
					WithCause(err)
			}
		}
		log.Ctx(ctx).Info().Str("package", name).Msg("pruned")
	}
	return PruneResult{Keep: plan.Keep, Removed: plan.Delete}, nil
}
