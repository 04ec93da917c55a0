package app

import (
	"time"

	"conche/internal/core"
	"conche/internal/types"
)

type ValidateRequest struct {
	ManifestPath string
}

type ValidateResult struct {
	Specification types.Specification
	Hints         []string
}

type ResolveRequest struct {
	WriteLock bool
	LockPath  string
	SBOMPath  string
}

type ResolveResult struct {
	Graph      core.DependencyGraph
	TestGraphs []core.DependencyGraph
	Order      []types.Specification
	LockPath   string
	SBOMPath   string
}

type BuildRequest struct {
	Jobs int
}

type BuildResult struct {
	Name        string
	DidWork     bool
	Executables []string
}

type TestRequest struct {
	Jobs  int
	Files []string
}

type TestResult struct {
	Name   string
	Binary string
}

type InitRequest struct {
	Dir       string
	Name      string
	WithCLI   bool
	WithTests bool
}

type InitResult struct {
	ManifestPath string
	Created      []string
}

type InspectRequest struct {
	LockPath string
}

type InspectResult struct {
	Entries []types.LockEntry
}

type PruneRequest struct {
	DryRun bool
}

type PruneResult struct {
	Keep    []string
	Removed []string
	DryRun  bool
}

type WatchRequest struct {
	Build    BuildRequest
	Debounce time.Duration
}
