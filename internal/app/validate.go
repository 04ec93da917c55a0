package app

import (
	"context"
	"strings"
)

// Validate loads a manifest and reports hints about it. Without a path the
// root manifest of WorkDir is used.
func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	path := strings.TrimSpace(req.ManifestPath)
	if path == "" {
		root, err := s.RootManifest()
		if err != nil {
			return ValidateResult{}, err
		}
		path = root
	}
	spec, err := s.Manifests.LoadSpecification(ctx, path)
	if err != nil {
		return ValidateResult{}, err
	}
	return ValidateResult{Specification: spec, Hints: checkSpecificationHints(spec)}, nil
}
