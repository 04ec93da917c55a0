package adapters

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"conche/internal/core"
	"conche/internal/ports"
	"conche/internal/types"
)

var manifestSuffixes = []string{".podspec.json", ".podspec.yaml", ".podspec.yml"}

// IsManifestPath reports whether path names a package manifest.
func IsManifestPath(path string) bool {
	base := filepath.Base(path)
	for _, suffix := range manifestSuffixes {
		if strings.HasSuffix(base, suffix) && len(base) > len(suffix) {
			return true
		}
	}
	return false
}

type ManifestFileAdapter struct {
	Compiler core.SpecCompiler
}

func NewManifestFileAdapter() ManifestFileAdapter {
	return ManifestFileAdapter{Compiler: core.NewSpecCompiler()}
}

// LoadManifest decodes a JSON or YAML manifest.
func (a ManifestFileAdapter) LoadManifest(path string) (types.ManifestFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.ManifestFile{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("manifest not found: %s", path)).
			WithCause(err)
	}
	var manifest types.ManifestFile
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return types.ManifestFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("failed to parse manifest %s", path)).
			WithCause(err)
	}
	return manifest, nil
}

func (a ManifestFileAdapter) LoadSpecification(ctx context.Context, path string) (types.Specification, error) {
	manifest, err := a.LoadManifest(path)
	if err != nil {
		return types.Specification{}, err
	}
	spec, err := a.Compiler.Compile(ctx, manifest)
	if err != nil {
		return types.Specification{}, errbuilder.New().
			WithCode(errbuilder.CodeOf(err)).
			WithMsg(fmt.Sprintf("invalid manifest %s", path)).
			WithCause(err)
	}
	return spec, nil
}

func (a ManifestFileAdapter) WriteManifest(path string, manifest types.ManifestFile) error {
	data, err := yaml.Marshal(manifest)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode manifest").
			WithCause(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to write manifest %s", path)).
			WithCause(err)
	}
	return nil
}

var _ ports.ManifestPort = ManifestFileAdapter{}
