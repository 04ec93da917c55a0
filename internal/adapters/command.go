package adapters

import (
	"context"
	"os/exec"
)

// commandRunner executes name with args in dir and returns the combined
// output.
type commandRunner func(ctx context.Context, dir string, name string, args ...string) ([]byte, error)

func execCommand(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}
