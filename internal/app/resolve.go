package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"conche/internal/core"
	"conche/internal/types"
)

// Resolve resolves the root package and its test dependencies without
// building anything. With WriteLock set the chosen versions are recorded
// in a lock file; with SBOMPath set they are also written as an SPDX
// document.
func (s Service) Resolve(ctx context.Context, req ResolveRequest) (ResolveResult, error) {
	defer s.writeMetrics(ctx)

	spec, err := s.loadRoot(ctx)
	if err != nil {
		return ResolveResult{}, err
	}
	graph, err := s.resolveRoot(ctx, spec)
	if err != nil {
		return ResolveResult{}, err
	}
	result := ResolveResult{Graph: graph, Order: graph.Flatten()}
	if spec.TestSpec != nil {
		if result.TestGraphs, err = s.resolveTests(ctx, spec); err != nil {
			return ResolveResult{}, err
		}
	}

	if req.WriteLock {
		path := strings.TrimSpace(req.LockPath)
		if path == "" {
			path = filepath.Join(s.Config.WorkDir, types.LockFileName)
		}
		if err := s.Lock.WriteLock(path, lockEntries(result)); err != nil {
			return ResolveResult{}, err
		}
		log.Ctx(ctx).Info().Str("path", path).Msg("wrote lock file")
		result.LockPath = path
	}
	if path := strings.TrimSpace(req.SBOMPath); path != "" {
		if !filepath.IsAbs(path) {
			path = filepath.Join(s.Config.WorkDir, path)
		}
		if err := s.SBOM.WriteSBOM(path, spec.Name, "", lockEntries(result)); err != nil {
			return ResolveResult{}, err
		}
		log.Ctx(ctx).Info().Str("path", path).Msg("wrote sbom")
		result.SBOMPath = path
	}
	return result, nil
}

// lockEntries pins every package of the result once. The root package is
// included.
func lockEntries(result ResolveResult) []types.LockEntry {
	merged := core.DependencyGraph{Root: result.Graph.Root}
	merged.Dependencies = append(merged.Dependencies, result.Graph.Dependencies...)
	merged.Dependencies = append(merged.Dependencies, result.TestGraphs...)
	flat := merged.Flatten()
	seen := map[string]struct{}{}
	entries := make([]types.LockEntry, 0, len(flat))
	for _, spec := range flat {
		if _, ok := seen[spec.Name]; ok {
			continue
		}
		seen[spec.Name] = struct{}{}
		entry := types.LockEntry{Name: spec.Name, Version: spec.Version.String()}
		if spec.Source != nil {
			entry.Git = spec.Source.URI
			entry.Tag = spec.Source.Tag
		}
		entries = append(entries, entry)
	}
	return entries
}
