package core

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/ZanzyTHEbar/errbuilder-go"

	"conche/internal/types"
)

// ParseVersion reads "<major>[.<minor>[.<patch>]][-<prerelease>]".
// Components that are not written stay absent in the result.
func ParseVersion(raw string) (types.Version, error) {
	raw = strings.TrimSpace(raw)
	parsed, err := semver.NewVersion(raw)
	if err != nil {
		return types.Version{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid version: %q", raw)).
			WithCause(err)
	}
	numeric := strings.TrimPrefix(strings.TrimPrefix(parsed.Original(), "v"), "V")
	if idx := strings.IndexAny(numeric, "-+"); idx >= 0 {
		numeric = numeric[:idx]
	}
	components := strings.Count(numeric, ".") + 1
	return types.Version{
		Major:      parsed.Major(),
		Minor:      parsed.Minor(),
		Patch:      parsed.Patch(),
		HasMinor:   components > 1,
		HasPatch:   components > 2,
		Prerelease: parsed.Prerelease(),
	}, nil
}

// MustParseVersion is ParseVersion for literals known to be valid.
func MustParseVersion(raw string) types.Version {
	v, err := ParseVersion(raw)
	if err != nil {
		panic(err)
	}
	return v
}

// CompareVersions orders by major, minor and patch with absent components
// read as zero. The prerelease tag does not take part in the ordering.
func CompareVersions(a, b types.Version) int {
	switch {
	case a.Major != b.Major:
		return compareUint(a.Major, b.Major)
	case a.Minor != b.Minor:
		return compareUint(a.Minor, b.Minor)
	default:
		return compareUint(a.Patch, b.Patch)
	}
}

// VersionsEqual reports exact equality, prerelease included.
func VersionsEqual(a, b types.Version) bool {
	return CompareVersions(a, b) == 0 && a.Prerelease == b.Prerelease
}

// Optimistic reports whether lhs satisfies "~> rhs": at least rhs, without
// drifting past the most specific component rhs spells out.
func Optimistic(lhs, rhs types.Version) bool {
	if CompareVersions(lhs, rhs) < 0 {
		return false
	}
	if rhs.HasMinor && lhs.Major != rhs.Major {
		return false
	}
	if rhs.HasPatch && lhs.Minor != rhs.Minor {
		return false
	}
	return true
}

func compareUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
