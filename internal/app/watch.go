package app

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"conche/internal/core"
	"conche/internal/types"
)

const defaultWatchDebounce = 300 * time.Millisecond

// Watch builds once, then again after every burst of changes to WorkDir or
// the directories holding the root package's sources. It returns nil once
// ctx is cancelled. report receives the outcome of every build.
func (s Service) Watch(ctx context.Context, req WatchRequest, report func(BuildResult, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to start file watcher").
			WithCause(err)
	}
	defer func() { _ = watcher.Close() }()

	s.watchRoots(ctx, watcher)
	report(s.Build(ctx, req.Build))

	debounce := req.Debounce
	if debounce <= 0 {
		debounce = defaultWatchDebounce
	}
	timer := time.NewTimer(0)
	<-timer.C
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if s.ignoredByWatch(event.Name) {
				continue
			}
			log.Ctx(ctx).Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("change detected")
			pending = true
			timer.Reset(debounce)

		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			s.watchRoots(ctx, watcher)
			report(s.Build(ctx, req.Build))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Ctx(ctx).Warn().Err(err).Msg("file watcher error")
		}
	}
}

// watchRoots adds WorkDir and every directory the root manifest draws
// sources from. Directories that do not exist yet are skipped.
func (s Service) watchRoots(ctx context.Context, watcher *fsnotify.Watcher) {
	dirs := map[string]struct{}{s.Config.WorkDir: {}}
	if spec, err := s.loadRoot(ctx); err == nil {
		for _, dir := range sourceDirs(s.Config.WorkDir, spec) {
			dirs[dir] = struct{}{}
		}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			log.Ctx(ctx).Debug().Err(err).Str("dir", dir).Msg("not watching")
		}
	}
}

func sourceDirs(root string, spec types.Specification) []string {
	globs := append([]string{}, spec.SourceFiles...)
	if spec.TestSpec != nil {
		globs = append(globs, spec.TestSpec.SourceFiles...)
	}
	for _, entry := range spec.EntryPoints[types.EntryPointKindCLI] {
		globs = append(globs, entry)
	}
	files, err := core.ComputeSourceFiles(root, globs)
	if err != nil {
		return nil
	}
	seen := map[string]struct{}{}
	var dirs []string
	for _, file := range files {
		dir := filepath.Dir(file)
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}
	return dirs
}

func (s Service) ignoredByWatch(path string) bool {
	rel, err := filepath.Rel(s.Config.BuildDir, path)
	if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return true
	}
	return strings.HasPrefix(filepath.Base(path), ".")
}
