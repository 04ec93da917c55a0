package core

import (
	"context"
	"fmt"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"

	"conche/internal/types"
)

// SpecCompiler turns decoded manifests into specifications.
type SpecCompiler struct{}

func NewSpecCompiler() SpecCompiler {
	return SpecCompiler{}
}

func (c SpecCompiler) Compile(ctx context.Context, manifest types.ManifestFile) (types.Specification, error) {
	if len(manifest.Subspecs) > 0 {
		return types.Specification{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("subspecs are not supported")
	}
	name := strings.TrimSpace(manifest.Name)
	if name == "" {
		return types.Specification{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("name must be set")
	}
	if strings.TrimSpace(manifest.Version) == "" {
		return types.Specification{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("%s: version must be set", name))
	}
	assert.NotEmpty(ctx, name, "name must be set")
	assert.NotEmpty(ctx, manifest.Version, "version must be set")

	version, err := ParseVersion(manifest.Version)
	if err != nil {
		return types.Specification{}, err
	}
	spec := types.Specification{
		Name:        name,
		Version:     version,
		SourceFiles: manifest.SourceFiles,
		Libraries:   manifest.Libraries,
	}
	if manifest.Source != nil {
		source, err := compileSource(name, *manifest.Source)
		if err != nil {
			return types.Specification{}, err
		}
		spec.Source = source
	}
	if spec.Dependencies, err = compileDependencies(name, manifest.Dependencies); err != nil {
		return types.Specification{}, err
	}
	testSpec := manifest.TestSpec
	if testSpec == nil {
		testSpec = manifest.TestSpecification
	}
	if testSpec != nil {
		deps, err := compileDependencies(name, testSpec.Dependencies)
		if err != nil {
			return types.Specification{}, err
		}
		spec.TestSpec = &types.TestSpecification{
			SourceFiles:  testSpec.SourceFiles,
			Dependencies: deps,
		}
	}
	if len(manifest.EntryPoints) > 0 {
		spec.EntryPoints = make(map[types.EntryPointKind]map[string]string, len(manifest.EntryPoints))
		for kind, entries := range manifest.EntryPoints {
			spec.EntryPoints[types.EntryPointKind(kind)] = entries
		}
	}
	return spec, nil
}

func compileSource(name string, source types.ManifestSource) (*types.RemoteSource, error) {
	uri := strings.TrimSpace(source.Git)
	tag := strings.TrimSpace(source.Tag)
	if uri == "" && tag == "" {
		return nil, nil
	}
	if uri == "" || tag == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("%s: source requires both git and tag", name))
	}
	return &types.RemoteSource{URI: uri, Tag: tag}, nil
}

func compileDependencies(owner string, entries types.DependencyMap) ([]types.Dependency, error) {
	deps := make([]types.Dependency, 0, len(entries))
	for _, entry := range entries {
		dep, err := NewDependency(entry.Name, entry.Requirements...)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("%s: invalid dependency %s", owner, entry.Name)).
				WithCause(err)
		}
		deps = append(deps, dep)
	}
	return deps, nil
}
