package core

import (
	"context"
	"fmt"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"conche/internal/ports"
	"conche/internal/types"
)

// SpecificationDownloadTask fetches a package's sources when they are not
// on disk yet.
type SpecificationDownloadTask struct {
	Spec        types.Specification
	Destination string
	Downloader  ports.DownloadPort
}

func (t *SpecificationDownloadTask) Name() string {
	return fmt.Sprintf("Downloading %s (%s)", t.Spec.Name, t.Spec.Version)
}

func (t *SpecificationDownloadTask) Dependencies() []Task { return nil }

func (t *SpecificationDownloadTask) IsRequired() bool {
	_, err := os.Stat(t.Destination)
	return err != nil
}

func (t *SpecificationDownloadTask) Run(ctx context.Context) error {
	if t.Spec.Source == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("%s %s declares no remote source", t.Spec.Name, t.Spec.Version))
	}
	if t.Downloader == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("no downloader configured")
	}
	return t.Downloader.Download(ctx, t.Spec, t.Destination)
}

// SpecificationBuildTask builds one package. Its first dependency is the
// download of its sources; the builds of the packages it links against
// follow.
type SpecificationBuildTask struct {
	Spec      types.Specification
	SourceDir string
	Layout    types.BuildLayout
	Compiler  ports.CompilerPort
	deps      []Task
}

func (t *SpecificationBuildTask) Name() string {
	return "Building " + t.Spec.Name
}

func (t *SpecificationBuildTask) Dependencies() []Task { return t.deps }

func (t *SpecificationBuildTask) AddDependency(task Task) {
	t.deps = append(t.deps, task)
}

// ModuleBuildTask describes the compile step for the package's current
// sources.
func (t *SpecificationBuildTask) ModuleBuildTask() (*ModuleBuildTask, error) {
	sources, err := ComputeSourceFiles(t.SourceDir, t.Spec.SourceFiles)
	if err != nil {
		return nil, err
	}
	libraries := make([]string, 0, len(t.Spec.Libraries)+len(t.Spec.Dependencies))
	libraries = append(libraries, t.Spec.Libraries...)
	for _, dep := range t.Spec.Dependencies {
		libraries = append(libraries, dep.Name)
	}
	return &ModuleBuildTask{
		Request: ports.ModuleBuildRequest{
			Name:        t.Spec.Name,
			SourceFiles: sources,
			ModulesDir:  t.Layout.ModulesDir,
			LibDir:      t.Layout.LibDir,
			Libraries:   libraries,
		},
		Compiler: t.Compiler,
	}, nil
}

func (t *SpecificationBuildTask) IsRequired() bool {
	task, err := t.ModuleBuildTask()
	if err != nil {
		return true
	}
	return task.IsRequired()
}

func (t *SpecificationBuildTask) Run(ctx context.Context) error {
	task, err := t.ModuleBuildTask()
	if err != nil {
		return err
	}
	return task.Run(ctx)
}
