package types

type RequirementOperator string

const (
	RequirementOpEqual              RequirementOperator = "="
	RequirementOpOptimistic         RequirementOperator = "~>"
	RequirementOpLessThan           RequirementOperator = "<"
	RequirementOpLessThanOrEqual    RequirementOperator = "<="
	RequirementOpGreaterThan        RequirementOperator = ">"
	RequirementOpGreaterThanOrEqual RequirementOperator = ">="
)

// EntryPointKind names a group of entry points in a manifest.
type EntryPointKind string

const (
	EntryPointKindCLI EntryPointKind = "cli"
)
