package adapters

import (
	"context"

	"github.com/rs/zerolog/log"

	"conche/internal/core"
	"conche/internal/ports"
	"conche/internal/types"
)

// LocalSource serves the manifests found directly inside a directory,
// typically the project being built.
type LocalSource struct {
	Root      string
	Workspace ports.WorkspacePort
	Manifests ports.ManifestPort
}

func NewLocalSource(root string, workspace ports.WorkspacePort, manifests ports.ManifestPort) LocalSource {
	return LocalSource{Root: root, Workspace: workspace, Manifests: manifests}
}

func (s LocalSource) Search(ctx context.Context, dep types.Dependency) []types.Specification {
	paths, err := s.Workspace.FindManifests(s.Root, false)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("root", s.Root).Msg("local source unavailable")
		return nil
	}
	var out []types.Specification
	for _, path := range paths {
		spec, err := s.Manifests.LoadSpecification(ctx, path)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("path", path).Msg("skipping unreadable manifest")
			continue
		}
		if spec.Name == dep.Name && core.Satisfies(dep, spec.Version) {
			out = append(out, spec)
		}
	}
	return out
}

func (s LocalSource) Update(context.Context) error {
	return nil
}

var _ ports.SourcePort = LocalSource{}
