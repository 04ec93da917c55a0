package ports

import "context"

type ModuleBuildRequest struct {
	Name        string
	SourceFiles []string
	ModulesDir  string
	LibDir      string
	Libraries   []string
}

type ExecutableBuildRequest struct {
	Name        string
	SourceFiles []string
	ModulesDir  string
	LibDir      string
	BinDir      string
	Libraries   []string
}

// CompilerPort drives the external compiler.
type CompilerPort interface {
	// ModuleArtifacts lists the outputs BuildModule produces for req.
	ModuleArtifacts(req ModuleBuildRequest) []string
	BuildModule(ctx context.Context, req ModuleBuildRequest) error
	BuildExecutable(ctx context.Context, req ExecutableBuildRequest) error
}
