package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"conche/internal/types"
)

// opTokens is the ordered list of operators tried when a requirement is
// written without a separating space. Longer tokens precede shorter ones
// so ">=" is not read as ">".
var opTokens = []types.RequirementOperator{
	types.RequirementOpOptimistic,
	types.RequirementOpGreaterThanOrEqual,
	types.RequirementOpLessThanOrEqual,
	types.RequirementOpGreaterThan,
	types.RequirementOpLessThan,
	types.RequirementOpEqual,
}

// ParseRequirement reads "<op> <version>" or a bare version, which means
// "= <version>".
func ParseRequirement(raw string) (types.Requirement, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return types.Requirement{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("empty requirement")
	}
	op := types.RequirementOpEqual
	versionText := raw
	if fields := strings.Fields(raw); len(fields) == 2 {
		parsedOp, ok := lookupOperator(fields[0])
		if !ok {
			return types.Requirement{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid requirement operator %q in %q", fields[0], raw))
		}
		op, versionText = parsedOp, fields[1]
	} else if len(fields) > 2 {
		return types.Requirement{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid requirement: %q", raw))
	} else {
		for _, token := range opTokens {
			if strings.HasPrefix(raw, string(token)) {
				op, versionText = token, strings.TrimPrefix(raw, string(token))
				break
			}
		}
	}
	version, err := ParseVersion(versionText)
	if err != nil {
		return types.Requirement{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid requirement: %q", raw)).
			WithCause(err)
	}
	return types.Requirement{Operator: op, Version: version}, nil
}

func lookupOperator(token string) (types.RequirementOperator, bool) {
	for _, op := range opTokens {
		if token == string(op) {
			return op, true
		}
	}
	return "", false
}

// NewDependency builds a dependency from raw requirement strings.
func NewDependency(name string, requirements ...string) (types.Dependency, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return types.Dependency{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("dependency name is empty")
	}
	dep := types.Dependency{Name: name}
	for _, raw := range requirements {
		requirement, err := ParseRequirement(raw)
		if err != nil {
			return types.Dependency{}, err
		}
		dep.Requirements = append(dep.Requirements, requirement)
	}
	return dep, nil
}

// PinnedDependency names exactly one version of a package.
func PinnedDependency(spec types.Specification) types.Dependency {
	return types.Dependency{
		Name:         spec.Name,
		Requirements: []types.Requirement{{Operator: types.RequirementOpEqual, Version: spec.Version}},
	}
}

func RequirementSatisfied(requirement types.Requirement, v types.Version) bool {
	switch requirement.Operator {
	case types.RequirementOpEqual:
		return VersionsEqual(v, requirement.Version)
	case types.RequirementOpOptimistic:
		return Optimistic(v, requirement.Version)
	case types.RequirementOpLessThan:
		return CompareVersions(v, requirement.Version) < 0
	case types.RequirementOpLessThanOrEqual:
		return CompareVersions(v, requirement.Version) <= 0
	case types.RequirementOpGreaterThan:
		return CompareVersions(v, requirement.Version) > 0
	case types.RequirementOpGreaterThanOrEqual:
		return CompareVersions(v, requirement.Version) >= 0
	default:
		return false
	}
}

// Satisfies reports whether every requirement of dep holds for v.
func Satisfies(dep types.Dependency, v types.Version) bool {
	for _, requirement := range dep.Requirements {
		if !RequirementSatisfied(requirement, v) {
			return false
		}
	}
	return true
}

func RequirementsEqual(a, b types.Requirement) bool {
	return a.Operator == b.Operator && VersionsEqual(a.Version, b.Version)
}

func DependenciesEqual(a, b types.Dependency) bool {
	if a.Name != b.Name || len(a.Requirements) != len(b.Requirements) {
		return false
	}
	for i := range a.Requirements {
		if !RequirementsEqual(a.Requirements[i], b.Requirements[i]) {
			return false
		}
	}
	return true
}

// Combine merges the requirements of every same-named dependency in
// others into dep. Duplicate requirements are kept once.
func Combine(dep types.Dependency, others ...types.Dependency) types.Dependency {
	combined := types.Dependency{
		Name:         dep.Name,
		Requirements: make([]types.Requirement, 0, len(dep.Requirements)),
	}
	add := func(requirement types.Requirement) {
		for _, existing := range combined.Requirements {
			if RequirementsEqual(existing, requirement) {
				return
			}
		}
		combined.Requirements = append(combined.Requirements, requirement)
	}
	for _, requirement := range dep.Requirements {
		add(requirement)
	}
	for _, other := range others {
		if other.Name != dep.Name {
			continue
		}
		for _, requirement := range other.Requirements {
			add(requirement)
		}
	}
	return combined
}

// UsePreRelease reports whether dep explicitly asks for a prerelease.
func UsePreRelease(dep types.Dependency) bool {
	for _, requirement := range dep.Requirements {
		if requirement.Version.IsPrerelease() {
			return true
		}
	}
	return false
}
