package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"conche/internal/types"
)

const spectreRequirement = "~> 0.5.0"

// Init scaffolds a new package in Dir/Name: a manifest, one source file
// and, on request, a command-line entry point and a test spec.
func (s Service) Init(ctx context.Context, req InitRequest) (InitResult, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || strings.ContainsAny(name, `/\`) {
		return InitResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid package name %q", req.Name))
	}
	parent := strings.TrimSpace(req.Dir)
	if parent == "" {
		parent = s.Config.WorkDir
	}
	destination := filepath.Join(parent, name)
	if _, err := os.Stat(destination); err == nil {
		return InitResult{}, errbuilder.New().
			WithCode(errbuilder.CodeAlreadyExists).
			WithMsg(fmt.Sprintf("%s already exists", destination))
	}

	manifest := types.ManifestFile{
		Name:        name,
		Version:     "1.0.0",
		SourceFiles: types.StringList{name + "/*.swift"},
	}
	files := map[string]string{
		filepath.Join(name, name+".swift"): "// " + name + "\n",
	}
	if req.WithCLI {
		binName := strings.ToLower(name)
		entry := filepath.ToSlash(filepath.Join("bin", binName+".swift"))
		files[entry] = fmt.Sprintf("print(\"Hello %s\")\n", name)
		manifest.EntryPoints = map[string]map[string]string{
			string(types.EntryPointKindCLI): {binName: entry},
		}
	}
	if req.WithTests {
		specs := name + "Specs"
		files[filepath.Join(specs, name+"Spec.swift")] = fmt.Sprintf(
			"import Spectre\n\ndescribe(\"%s\") {\n  $0.it(\"should be implemented\") {\n    throw failure(\"Not Implemented\")\n  }\n}\n",
			name,
		)
		manifest.TestSpecification = &types.ManifestTestSpec{
			SourceFiles:  types.StringList{specs + "/*.swift"},
			Dependencies: types.DependencyMap{{Name: "Spectre", Requirements: []string{spectreRequirement}}},
		}
	}

	result := InitResult{ManifestPath: filepath.Join(destination, name+".podspec.yaml")}
	for rel, content := range files {
		path := filepath.Join(destination, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return InitResult{}, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to create " + filepath.Dir(path)).
				WithCause(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return InitResult{}, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to write " + path).
				WithCause(err)
		}
		result.Created = append(result.Created, path)
	}
	if err := s.Manifests.WriteManifest(result.ManifestPath, manifest); err != nil {
		return InitResult{}, err
	}
	result.Created = append(result.Created, result.ManifestPath)
	sort.Strings(result.Created)

	log.Ctx(ctx).Info().Str("package", name).Str("path", destination).Msg("initialised")
	return result, nil
}
