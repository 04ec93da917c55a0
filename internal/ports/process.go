package ports

import "context"

// ProcessPort runs a built program with the caller's terminal attached.
type ProcessPort interface {
	Run(ctx context.Context, binary string, args ...string) error
}
