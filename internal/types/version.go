package types

import (
	"strconv"
	"strings"
)

// Version is a semantic-version-like value whose minor and patch
// components may be absent. Absent components read as zero for ordering
// but are omitted when displayed.
type Version struct {
	Major      uint64
	Minor      uint64
	Patch      uint64
	HasMinor   bool
	HasPatch   bool
	Prerelease string
}

func (v Version) String() string {
	var b strings.Builder
	b.WriteString(strconv.FormatUint(v.Major, 10))
	if v.HasMinor {
		b.WriteByte('.')
		b.WriteString(strconv.FormatUint(v.Minor, 10))
		if v.HasPatch {
			b.WriteByte('.')
			b.WriteString(strconv.FormatUint(v.Patch, 10))
		}
	}
	if v.Prerelease != "" {
		b.WriteByte('-')
		b.WriteString(v.Prerelease)
	}
	return b.String()
}

// Canonical renders the version with every numeric component present, so
// that "3.2" and "3.2.0" share one key.
func (v Version) Canonical() string {
	s := strconv.FormatUint(v.Major, 10) + "." +
		strconv.FormatUint(v.Minor, 10) + "." +
		strconv.FormatUint(v.Patch, 10)
	if v.Prerelease != "" {
		s += "-" + v.Prerelease
	}
	return s
}

func (v Version) IsPrerelease() bool {
	return v.Prerelease != ""
}
