package core

import (
	"context"
	"sort"

	"conche/internal/ports"
	"conche/internal/types"
)

// Resolver picks one version of every package reachable from a root
// dependency, backtracking over candidate versions until the combined
// requirements along each path hold.
type Resolver struct {
	Sources []ports.SourcePort
}

func NewResolver(sources ...ports.SourcePort) Resolver {
	return Resolver{Sources: sources}
}

// Resolve returns the graph rooted at the package selected for dep. Errors
// are *ResolutionError.
func (r Resolver) Resolve(ctx context.Context, dep types.Dependency) (DependencyGraph, error) {
	return r.resolve(ctx, dep, nil, nil)
}

// ResolveTestDependencies resolves only the test dependencies declared by
// spec and returns them flattened. Test dependencies of those packages
// are not followed.
func (r Resolver) ResolveTestDependencies(ctx context.Context, spec types.Specification) ([]types.Specification, error) {
	graphs, err := r.ResolveTestGraphs(ctx, spec)
	if err != nil {
		return nil, err
	}
	flat := DependencyGraph{Root: spec, Dependencies: graphs}.Flatten()
	return flat[1:], nil
}

// ResolveTestGraphs resolves each test dependency of spec. The test
// dependencies constrain each other the way sibling dependencies do.
func (r Resolver) ResolveTestGraphs(ctx context.Context, spec types.Specification) ([]DependencyGraph, error) {
	testDeps := spec.TestDependencies()
	return r.resolveChildren(ctx, testDeps, testDeps, nil)
}

func (r Resolver) resolve(ctx context.Context, dep types.Dependency, inherited []types.Dependency, path []types.Specification) (DependencyGraph, error) {
	effective := Combine(dep, inherited...)
	candidates := r.candidates(ctx, effective)
	if len(candidates) == 0 {
		return DependencyGraph{}, r.classify(ctx, dep, inherited)
	}
	for _, ancestor := range path {
		if ancestor.Name == dep.Name {
			return DependencyGraph{}, CircularDependencyError(dep.Name, pinnedPath(path, candidates[0]))
		}
	}

	var lastErr error
	for _, candidate := range candidates {
		graph, err := r.attempt(ctx, candidate, inherited, path)
		if err == nil {
			return graph, nil
		}
		lastErr = err
	}
	return DependencyGraph{}, lastErr
}

func (r Resolver) attempt(ctx context.Context, candidate types.Specification, inherited []types.Dependency, path []types.Specification) (DependencyGraph, error) {
	childInherited := make([]types.Dependency, 0, len(inherited)+len(candidate.Dependencies))
	childInherited = append(childInherited, inherited...)
	childInherited = append(childInherited, candidate.Dependencies...)

	childPath := make([]types.Specification, 0, len(path)+1)
	childPath = append(childPath, path...)
	childPath = append(childPath, candidate)

	children, err := r.resolveChildren(ctx, candidate.Dependencies, childInherited, childPath)
	if err != nil {
		return DependencyGraph{}, err
	}
	graph := DependencyGraph{Root: candidate, Dependencies: children}
	if graph.HasCircularReference() {
		return DependencyGraph{}, CircularDependencyError(candidate.Name, pinnedPath(path, candidate))
	}
	return graph, nil
}

func (r Resolver) resolveChildren(ctx context.Context, deps []types.Dependency, inherited []types.Dependency, path []types.Specification) ([]DependencyGraph, error) {
	children := make([]DependencyGraph, 0, len(deps))
	seen := map[string]struct{}{}
	for _, dep := range deps {
		child, err := r.resolve(ctx, dep, inherited, path)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[child.Root.Key()]; ok {
			continue
		}
		seen[child.Root.Key()] = struct{}{}
		children = append(children, child)
	}
	sort.SliceStable(children, func(i, j int) bool {
		return children[i].Root.Name < children[j].Root.Name
	})
	return children, nil
}

// candidates gathers matching specifications from every source, newest
// first. Equal versions keep source order and only the first copy of a
// (name, version) pair is kept.
func (r Resolver) candidates(ctx context.Context, dep types.Dependency) []types.Specification {
	allowPrerelease := UsePreRelease(dep)
	seen := map[string]struct{}{}
	var out []types.Specification
	for _, source := range r.Sources {
		for _, spec := range source.Search(ctx, dep) {
			if spec.Name != dep.Name || !Satisfies(dep, spec.Version) {
				continue
			}
			if spec.Version.IsPrerelease() && !allowPrerelease {
				continue
			}
			if _, ok := seen[spec.Key()]; ok {
				continue
			}
			seen[spec.Key()] = struct{}{}
			out = append(out, spec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return CompareVersions(out[i].Version, out[j].Version) > 0
	})
	return out
}

// classify explains why no candidate was found: any published version of
// the name makes it a conflict, otherwise the package does not exist.
func (r Resolver) classify(ctx context.Context, dep types.Dependency, inherited []types.Dependency) error {
	for _, source := range r.Sources {
		if len(source.Search(ctx, types.Dependency{Name: dep.Name})) > 0 {
			requiredBy := inherited
			if len(requiredBy) == 0 {
				requiredBy = []types.Dependency{dep}
			}
			return ConflictError(dep.Name, requiredBy)
		}
	}
	return NoSuchDependencyError(dep)
}

func pinnedPath(path []types.Specification, last types.Specification) []types.Dependency {
	pinned := make([]types.Dependency, 0, len(path)+1)
	for _, spec := range path {
		pinned = append(pinned, PinnedDependency(spec))
	}
	return append(pinned, PinnedDependency(last))
}
