package ports

import (
	"context"

	"conche/internal/types"
)

// SourcePort is a version-indexed collection of specifications.
type SourcePort interface {
	// Search returns the specifications matching the dependency. It never
	// fails; an empty result means no match.
	Search(ctx context.Context, dependency types.Dependency) []types.Specification
	// Update refreshes the source's index.
	Update(ctx context.Context) error
}
