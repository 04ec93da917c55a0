package core

import (
	"context"
	"os"
	"time"

	"conche/internal/ports"
)

// ModuleBuildTask compiles one module and its library.
type ModuleBuildTask struct {
	Request  ports.ModuleBuildRequest
	Compiler ports.CompilerPort
}

func (t *ModuleBuildTask) Name() string {
	return "Building " + t.Request.Name + " Module"
}

func (t *ModuleBuildTask) Dependencies() []Task { return nil }

func (t *ModuleBuildTask) IsRequired() bool {
	return IsStale(t.Request.SourceFiles, t.Compiler.ModuleArtifacts(t.Request))
}

func (t *ModuleBuildTask) Run(ctx context.Context) error {
	return t.Compiler.BuildModule(ctx, t.Request)
}

// IsStale reports whether outputs must be regenerated from sources: an
// output is missing, or the newest source is newer than some output. A
// file whose modification time cannot be read counts as stale.
func IsStale(sources []string, outputs []string) bool {
	if len(sources) == 0 || len(outputs) == 0 {
		return true
	}
	var newest time.Time
	for _, source := range sources {
		info, err := os.Stat(source)
		if err != nil {
			return true
		}
		if info.ModTime().After(newest) {
			newest = info.ModTime()
		}
	}
	for _, output := range outputs {
		info, err := os.Stat(output)
		if err != nil {
			return true
		}
		if newest.After(info.ModTime()) {
			return true
		}
	}
	return false
}
