package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"conche/internal/adapters"
	"conche/internal/core"
	"conche/internal/metrics"
	"conche/internal/ports"
	"conche/internal/types"
)

type Service struct {
	Config     types.Config
	Manifests  ports.ManifestPort
	Workspace  ports.WorkspacePort
	Downloader ports.DownloadPort
	Compiler   ports.CompilerPort
	Processes  ports.ProcessPort
	Lock       ports.LockPort
	SBOM       ports.SBOMPort
	Index      ports.SourcePort
	Metrics    *metrics.Recorder
}

func NewService(cfg types.Config) Service {
	cfg = NormalizeConfig(cfg)
	manifests := adapters.NewManifestFileAdapter()
	return Service{
		Config:     cfg,
		Manifests:  manifests,
		Workspace:  adapters.NewWorkspaceAdapter(),
		Downloader: adapters.NewGitDownloadAdapter(),
		Compiler:   adapters.NewCompilerAdapter(cfg.Compiler, cfg.CompilerFlags),
		Processes:  adapters.NewProcessAdapter(),
		Lock:       adapters.NewLockFileAdapter(),
		SBOM:       adapters.NewSBOMWriterAdapter(),
		Index:      adapters.NewIndexSource(cfg.IndexName, cfg.IndexURI, cfg.IndexBranch, cfg.SourcesDir, manifests),
		Metrics:    metrics.NewRecorder(),
	}
}

// NormalizeConfig fills in every unset field with its default. Relative
// directories are made absolute against WorkDir.
func NormalizeConfig(cfg types.Config) types.Config {
	workDir := strings.TrimSpace(cfg.WorkDir)
	if workDir == "" {
		workDir = "."
	}
	if abs, err := filepath.Abs(workDir); err == nil {
		workDir = abs
	}
	cfg.WorkDir = workDir
	cfg.BuildDir = absoluteUnder(workDir, cfg.BuildDir, types.DefaultBuildDir)
	if strings.TrimSpace(cfg.SourcesDir) == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.SourcesDir = filepath.Join(home, ".conche", "sources")
		} else {
			cfg.SourcesDir = filepath.Join(cfg.BuildDir, "sources")
		}
	} else {
		cfg.SourcesDir = absoluteUnder(workDir, cfg.SourcesDir, "")
	}
	cfg.IndexName = defaultString(cfg.IndexName, types.DefaultIndexName)
	cfg.IndexURI = defaultString(cfg.IndexURI, types.DefaultIndexURI)
	cfg.IndexBranch = defaultString(cfg.IndexBranch, types.DefaultIndexBranch)
	cfg.Compiler = defaultString(cfg.Compiler, types.DefaultCompiler)
	if cfg.Jobs < 1 {
		cfg.Jobs = 1
	}
	return cfg
}

func absoluteUnder(base string, value string, fallback string) string {
	value = defaultString(value, fallback)
	if filepath.IsAbs(value) {
		return value
	}
	return filepath.Join(base, value)
}

func defaultString(value string, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func (s Service) layout() types.BuildLayout {
	return types.NewBuildLayout(s.Config.BuildDir)
}

func (s Service) environment() core.BuildEnvironment {
	return core.NewBuildEnvironment(s.layout(), s.Compiler, s.Downloader)
}

// sources lists where specifications are searched, in priority order: the
// project directory first, then the index.
func (s Service) sources() []ports.SourcePort {
	sources := []ports.SourcePort{adapters.NewLocalSource(s.Config.WorkDir, s.Workspace, s.Manifests)}
	if s.Index != nil {
		sources = append(sources, s.Index)
	}
	return sources
}

// RootManifest finds the single manifest in WorkDir.
func (s Service) RootManifest() (string, error) {
	paths, err := s.Workspace.FindManifests(s.Config.WorkDir, false)
	if err != nil {
		return "", err
	}
	switch len(paths) {
	case 0:
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("no podspec found in %s", s.Config.WorkDir))
	case 1:
		return paths[0], nil
	default:
		names := make([]string, 0, len(paths))
		for _, path := range paths {
			names = append(names, filepath.Base(path))
		}
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("found %d podspecs in %s: %s", len(paths), s.Config.WorkDir, strings.Join(names, ", ")))
	}
}

func (s Service) loadRoot(ctx context.Context) (types.Specification, error) {
	path, err := s.RootManifest()
	if err != nil {
		return types.Specification{}, err
	}
	return s.Manifests.LoadSpecification(ctx, path)
}

// resolveRoot resolves the graph of the root package pinned at its own
// version.
func (s Service) resolveRoot(ctx context.Context, spec types.Specification) (core.DependencyGraph, error) {
	resolver := core.NewResolver(s.sources()...)
	var graph core.DependencyGraph
	err := s.withRetry(ctx, func() error {
		var err error
		graph, err = resolver.Resolve(ctx, core.PinnedDependency(spec))
		return err
	})
	return graph, err
}

func (s Service) resolveTests(ctx context.Context, spec types.Specification) ([]core.DependencyGraph, error) {
	resolver := core.NewResolver(s.sources()...)
	var graphs []core.DependencyGraph
	err := s.withRetry(ctx, func() error {
		var err error
		graphs, err = resolver.ResolveTestGraphs(ctx, spec)
		return err
	})
	return graphs, err
}

// withRetry runs resolve; when it fails every source is updated once and
// resolve is attempted a second time.
func (s Service) withRetry(ctx context.Context, resolve func() error) error {
	start := time.Now()
	err := resolve()
	if err == nil {
		s.recordResolution(metrics.OutcomeResolved, start)
		return nil
	}
	log.Ctx(ctx).Info().Err(err).Msg("resolution failed, updating sources")
	for _, source := range s.sources() {
		if updateErr := source.Update(ctx); updateErr != nil {
			s.recordResolution(metrics.OutcomeFailed, start)
			return updateErr
		}
	}
	if err := resolve(); err != nil {
		s.recordResolution(metrics.OutcomeFailed, start)
		return err
	}
	s.recordResolution(metrics.OutcomeRetried, start)
	return nil
}

func (s Service) recordResolution(outcome string, start time.Time) {
	if s.Metrics != nil {
		s.Metrics.Resolution(outcome, time.Since(start))
	}
}

func (s Service) runner(ctx context.Context, jobs int) core.TaskRunner {
	if jobs < 1 {
		jobs = s.Config.Jobs
	}
	return core.NewTaskRunner(logObserver{logger: log.Ctx(ctx), metrics: s.Metrics}, jobs)
}

// writeMetrics dumps the metrics registry when a metrics file is
// configured. Failures are logged and never fail the command.
func (s Service) writeMetrics(ctx context.Context) {
	if s.Config.MetricsFile == "" || s.Metrics == nil {
		return
	}
	if err := s.Metrics.WriteTextfile(s.Config.MetricsFile); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("path", s.Config.MetricsFile).Msg("failed to write metrics")
	}
}
