package adapters

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"conche/internal/ports"
	"conche/internal/shared"
	"conche/internal/types"
)

// GitDownloadAdapter checks out a package's tagged source with a shallow
// clone.
type GitDownloadAdapter struct {
	run commandRunner
}

func NewGitDownloadAdapter() GitDownloadAdapter {
	return GitDownloadAdapter{run: execCommand}
}

func (a GitDownloadAdapter) Download(ctx context.Context, spec types.Specification, destination string) error {
	if spec.Source == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("%s has no git source", spec))
	}
	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create packages directory").
			WithCause(err)
	}
	output, err := a.run(ctx, "", "git", "clone", "--depth", "1", "-b", spec.Source.Tag, spec.Source.URI, destination)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to download %s from %s", spec, spec.Source.URI)).
			WithCause(shared.CommandError(output, err))
	}
	return nil
}

var _ ports.DownloadPort = GitDownloadAdapter{}
