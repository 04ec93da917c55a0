package app

import (
	"fmt"
	"os"
	"sort"

	"conche/internal/types"
)

// checkSpecificationHints points out manifest content that is accepted but
// has no effect on a build.
func checkSpecificationHints(spec types.Specification) []string {
	var hints []string
	if len(spec.SourceFiles) == 0 {
		hints = append(hints, fmt.Sprintf(
			"hint: %s declares no source_files; its module will have nothing to compile",
			spec.Name,
		))
	}
	var kinds []string
	for kind := range spec.EntryPoints {
		if kind != types.EntryPointKindCLI {
			kinds = append(kinds, string(kind))
		}
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		hints = append(hints, fmt.Sprintf(
			"hint: entry_points.%s is ignored; only cli entry points are built",
			kind,
		))
	}
	if spec.TestSpec != nil && len(spec.TestSpec.SourceFiles) == 0 {
		hints = append(hints, fmt.Sprintf(
			"hint: the test specification of %s lists no source_files; pass files to `conche test` instead",
			spec.Name,
		))
	}
	return hints
}

// emitHints writes hint messages to stderr.
func emitHints(hints []string) {
	for _, h := range hints {
		fmt.Fprintln(os.Stderr, h)
	}
}
