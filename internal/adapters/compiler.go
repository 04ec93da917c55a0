package adapters

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"conche/internal/ports"
	"conche/internal/shared"
)

// CompilerAdapter drives a swiftc-compatible compiler.
type CompilerAdapter struct {
	Binary string
	Flags  []string
	GOOS   string

	run commandRunner
}

func NewCompilerAdapter(binary string, flags []string) CompilerAdapter {
	return CompilerAdapter{Binary: binary, Flags: flags, GOOS: runtime.GOOS, run: execCommand}
}

func (a CompilerAdapter) libraryName(name string) string {
	if a.GOOS == "darwin" {
		return "lib" + name + ".dylib"
	}
	return "lib" + name + ".so"
}

func (a CompilerAdapter) ModuleArtifacts(req ports.ModuleBuildRequest) []string {
	return []string{
		filepath.Join(req.ModulesDir, req.Name+".swiftmodule"),
		filepath.Join(req.LibDir, a.libraryName(req.Name)),
	}
}

func (a CompilerAdapter) BuildModule(ctx context.Context, req ports.ModuleBuildRequest) error {
	if len(req.SourceFiles) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("module %s has no source files", req.Name))
	}
	if err := mkdirs(req.ModulesDir, req.LibDir); err != nil {
		return err
	}
	artifacts := a.ModuleArtifacts(req)
	args := append([]string{}, a.Flags...)
	args = append(args,
		"-I", req.ModulesDir,
		"-L", req.LibDir,
		"-module-name", req.Name,
		"-emit-library",
		"-emit-module",
		"-emit-module-path", artifacts[0],
		"-o", artifacts[1],
	)
	args = append(args, linkFlags(req.Libraries)...)
	args = append(args, req.SourceFiles...)
	return a.invoke(ctx, "module "+req.Name, args)
}

func (a CompilerAdapter) BuildExecutable(ctx context.Context, req ports.ExecutableBuildRequest) error {
	if len(req.SourceFiles) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("executable %s has no source files", req.Name))
	}
	if err := mkdirs(req.BinDir); err != nil {
		return err
	}
	args := append([]string{}, a.Flags...)
	args = append(args, "-I", req.ModulesDir, "-L", req.LibDir)
	args = append(args, linkFlags(req.Libraries)...)
	args = append(args, "-o", filepath.Join(req.BinDir, req.Name))
	args = append(args, req.SourceFiles...)
	return a.invoke(ctx, "executable "+req.Name, args)
}

func (a CompilerAdapter) invoke(ctx context.Context, target string, args []string) error {
	output, err := a.run(ctx, "", a.Binary, args...)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("%s failed to build %s", a.Binary, target)).
			WithCause(shared.CommandError(output, err))
	}
	return nil
}

func linkFlags(libraries []string) []string {
	flags := make([]string, 0, len(libraries))
	for _, library := range libraries {
		flags = append(flags, "-l"+library)
	}
	return flags
}

func mkdirs(dirs ...string) error {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to create " + dir).
				WithCause(err)
		}
	}
	return nil
}

var _ ports.CompilerPort = CompilerAdapter{}
