package types

import "path/filepath"

// Config carries everything a build or resolve needs from its environment.
// It is assembled by the CLI from flags, the config file and CONCHE_*
// variables, and handed to the application service.
type Config struct {
	WorkDir       string
	BuildDir      string
	SourcesDir    string
	IndexName     string
	IndexURI      string
	IndexBranch   string
	Compiler      string
	CompilerFlags []string
	Jobs          int
	MetricsFile   string
}

const (
	DefaultIndexName   = "CocoaPods"
	DefaultIndexURI    = "https://github.com/CocoaPods/Specs"
	DefaultIndexBranch = "master"
	DefaultCompiler    = "swiftc"
	DefaultBuildDir    = ".conche"
)

// BuildLayout is the on-disk arrangement of build outputs below BuildDir.
type BuildLayout struct {
	ModulesDir  string
	LibDir      string
	BinDir      string
	PackagesDir string
}

func NewBuildLayout(buildDir string) BuildLayout {
	return BuildLayout{
		ModulesDir:  filepath.Join(buildDir, "modules"),
		LibDir:      filepath.Join(buildDir, "lib"),
		BinDir:      filepath.Join(buildDir, "bin"),
		PackagesDir: filepath.Join(buildDir, "packages"),
	}
}

// PackageDir is where a downloaded dependency's sources live.
func (l BuildLayout) PackageDir(name string) string {
	return filepath.Join(l.PackagesDir, name)
}
