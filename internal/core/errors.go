package core

import (
	"errors"
	"fmt"
	"strings"

	"conche/internal/types"
)

type ResolutionErrorKind string

const (
	ResolutionNoSuchDependency   ResolutionErrorKind = "no-such-dependency"
	ResolutionConflict           ResolutionErrorKind = "conflict"
	ResolutionCircularDependency ResolutionErrorKind = "circular-dependency"
)

// Sentinels for errors.Is against a *ResolutionError of the same kind.
var (
	ErrNoSuchDependency   = errors.New("no such dependency")
	ErrConflict           = errors.New("dependency conflict")
	ErrCircularDependency = errors.New("circular dependency")
)

// ResolutionError is returned by the resolver. Dependency is set for
// ResolutionNoSuchDependency; RequiredBy lists the competing requirements
// for the other kinds.
type ResolutionError struct {
	Kind       ResolutionErrorKind
	Name       string
	Dependency types.Dependency
	RequiredBy []types.Dependency
}

func NoSuchDependencyError(dep types.Dependency) *ResolutionError {
	return &ResolutionError{Kind: ResolutionNoSuchDependency, Name: dep.Name, Dependency: dep}
}

func ConflictError(name string, requiredBy []types.Dependency) *ResolutionError {
	return &ResolutionError{Kind: ResolutionConflict, Name: name, RequiredBy: requiredBy}
}

func CircularDependencyError(name string, requiredBy []types.Dependency) *ResolutionError {
	return &ResolutionError{Kind: ResolutionCircularDependency, Name: name, RequiredBy: requiredBy}
}

func (e *ResolutionError) Error() string {
	switch e.Kind {
	case ResolutionNoSuchDependency:
		return fmt.Sprintf("dependency %s not found", e.Dependency)
	case ResolutionConflict:
		return fmt.Sprintf("conflict on %s, required by: %s", e.Name, joinDependencies(e.RequiredBy))
	case ResolutionCircularDependency:
		return fmt.Sprintf("circular dependency on %s: %s", e.Name, joinDependencies(e.RequiredBy))
	default:
		return "resolution failed: " + e.Name
	}
}

func (e *ResolutionError) Is(target error) bool {
	switch target {
	case ErrNoSuchDependency:
		return e.Kind == ResolutionNoSuchDependency
	case ErrConflict:
		return e.Kind == ResolutionConflict
	case ErrCircularDependency:
		return e.Kind == ResolutionCircularDependency
	default:
		return false
	}
}

func joinDependencies(deps []types.Dependency) string {
	parts := make([]string, 0, len(deps))
	for _, dep := range deps {
		parts = append(parts, dep.String())
	}
	return strings.Join(parts, ", ")
}
