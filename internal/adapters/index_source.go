package adapters

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"conche/internal/core"
	"conche/internal/ports"
	"conche/internal/shared"
	"conche/internal/types"
)

// IndexSource serves specifications from a git mirror laid out as
// Specs/<name>/<version>/<name>.podspec.json. Parsed specifications are
// cached per package name until the next Update.
type IndexSource struct {
	Name      string
	URI       string
	Branch    string
	Path      string
	Manifests ports.ManifestPort

	run    commandRunner
	mu     sync.Mutex
	cached map[string][]types.Specification
}

func NewIndexSource(name string, uri string, branch string, sourcesDir string, manifests ports.ManifestPort) *IndexSource {
	return &IndexSource{
		Name:      name,
		URI:       uri,
		Branch:    branch,
		Path:      filepath.Join(sourcesDir, name),
		Manifests: manifests,
		run:       execCommand,
		cached:    map[string][]types.Specification{},
	}
}

func (s *IndexSource) Search(ctx context.Context, dep types.Dependency) []types.Specification {
	var out []types.Specification
	for _, spec := range s.load(ctx, dep.Name) {
		if core.Satisfies(dep, spec.Version) {
			out = append(out, spec)
		}
	}
	return out
}

func (s *IndexSource) load(ctx context.Context, name string) []types.Specification {
	s.mu.Lock()
	defer s.mu.Unlock()
	if specs, ok := s.cached[name]; ok {
		return specs
	}
	entries, err := os.ReadDir(filepath.Join(s.Path, "Specs", name))
	if err != nil {
		s.cached[name] = nil
		return nil
	}
	var specs []types.Specification
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(s.Path, "Specs", name, entry.Name(), name+".podspec.json")
		spec, err := s.Manifests.LoadSpecification(ctx, path)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("index", s.Name).Str("path", path).Msg("skipping unreadable manifest")
			continue
		}
		specs = append(specs, spec)
	}
	s.cached[name] = specs
	return specs
}

// Update clones the index on first use and pulls it afterwards.
func (s *IndexSource) Update(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = map[string][]types.Specification{}

	if _, err := os.Stat(s.Path); err == nil {
		log.Ctx(ctx).Info().Str("index", s.Name).Msg("updating index")
		if output, err := s.run(ctx, s.Path, "git", "pull", s.URI, s.Branch); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to update index " + s.Name).
				WithCause(shared.CommandError(output, err))
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create sources directory").
			WithCause(err)
	}
	log.Ctx(ctx).Info().Str("index", s.Name).Str("uri", s.URI).Msg("cloning index")
	if output, err := s.run(ctx, "", "git", "clone", "--depth", "1", "--branch", s.Branch, s.URI, s.Path); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to clone index " + s.Name).
			WithCause(shared.CommandError(output, err))
	}
	return nil
}

var _ ports.SourcePort = (*IndexSource)(nil)
