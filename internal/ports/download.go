package ports

import (
	"context"

	"conche/internal/types"
)

// DownloadPort fetches a package's remote source into a directory.
type DownloadPort interface {
	Download(ctx context.Context, spec types.Specification, destination string) error
}
