package ports

import (
	"context"

	"conche/internal/types"
)

// ManifestPort loads and writes package manifests.
type ManifestPort interface {
	LoadManifest(path string) (types.ManifestFile, error)
	LoadSpecification(ctx context.Context, path string) (types.Specification, error)
	WriteManifest(path string, manifest types.ManifestFile) error
}
