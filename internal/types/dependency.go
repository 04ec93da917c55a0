package types

import "strings"

type Requirement struct {
	Operator RequirementOperator
	Version  Version
}

func (r Requirement) String() string {
	return string(r.Operator) + " " + r.Version.String()
}

// Dependency is a named package reference. Every requirement must hold
// for a version to be acceptable; no requirements means any version.
type Dependency struct {
	Name         string
	Requirements []Requirement
}

func (d Dependency) String() string {
	if len(d.Requirements) == 0 {
		return d.Name
	}
	parts := make([]string, 0, len(d.Requirements))
	for _, requirement := range d.Requirements {
		parts = append(parts, requirement.String())
	}
	return d.Name + " (" + strings.Join(parts, ", ") + ")"
}
