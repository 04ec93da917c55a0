package adapters

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"conche/internal/ports"
)

// ProcessAdapter runs binaries with their output streamed to Stdout and
// Stderr.
type ProcessAdapter struct {
	Stdout io.Writer
	Stderr io.Writer
}

func NewProcessAdapter() ProcessAdapter {
	return ProcessAdapter{Stdout: os.Stdout, Stderr: os.Stderr}
}

func (a ProcessAdapter) Run(ctx context.Context, binary string, args ...string) error {
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdout = a.Stdout
	cmd.Stderr = a.Stderr
	if err := cmd.Run(); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("%s failed", binary)).
			WithCause(err)
	}
	return nil
}

var _ ports.ProcessPort = ProcessAdapter{}
