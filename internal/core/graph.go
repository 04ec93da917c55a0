package core

import (
	"strings"

	"conche/internal/types"
)

// DependencyGraph is a resolved package with the graphs chosen for each
// of its dependencies. It is a tree; a package reachable along several
// branches appears once per branch.
type DependencyGraph struct {
	Root         types.Specification
	Dependencies []DependencyGraph
}

// Flatten lists the root followed by every dependency, depth first, with
// later duplicates of the same (name, version) removed.
func (g DependencyGraph) Flatten() []types.Specification {
	seen := map[string]struct{}{}
	var out []types.Specification
	var walk func(node DependencyGraph)
	walk = func(node DependencyGraph) {
		if _, ok := seen[node.Root.Key()]; !ok {
			seen[node.Root.Key()] = struct{}{}
			out = append(out, node.Root)
		}
		for _, child := range node.Dependencies {
			walk(child)
		}
	}
	walk(g)
	return out
}

// Names returns the package names of Flatten in order.
func (g DependencyGraph) Names() []string {
	flat := g.Flatten()
	names := make([]string, 0, len(flat))
	for _, spec := range flat {
		names = append(names, spec.Name)
	}
	return names
}

// Equivalent compares root names and versions and then the dependency
// lists pairwise in order.
func (g DependencyGraph) Equivalent(other DependencyGraph) bool {
	if g.Root.Name != other.Root.Name || !VersionsEqual(g.Root.Version, other.Root.Version) {
		return false
	}
	if len(g.Dependencies) != len(other.Dependencies) {
		return false
	}
	for i := range g.Dependencies {
		if !g.Dependencies[i].Equivalent(other.Dependencies[i]) {
			return false
		}
	}
	return true
}

// HasCircularReference reports whether any package name repeats along a
// root-to-leaf path.
func (g DependencyGraph) HasCircularReference() bool {
	return g.circularFrom(map[string]bool{})
}

func (g DependencyGraph) circularFrom(ancestors map[string]bool) bool {
	if ancestors[g.Root.Name] {
		return true
	}
	ancestors[g.Root.Name] = true
	defer delete(ancestors, g.Root.Name)
	for _, child := range g.Dependencies {
		if child.circularFrom(ancestors) {
			return true
		}
	}
	return false
}

// String renders the graph as an indented tree, one package per line.
func (g DependencyGraph) String() string {
	var b strings.Builder
	g.render(&b, 0)
	return b.String()
}

func (g DependencyGraph) render(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(g.Root.String())
	b.WriteByte('\n')
	for _, child := range g.Dependencies {
		child.render(b, depth+1)
	}
}
