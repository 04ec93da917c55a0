package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conche/internal/types"
)

func mustDependency(t *testing.T, name string, requirements ...string) types.Dependency {
	t.Helper()
	dep, err := NewDependency(name, requirements...)
	require.NoError(t, err)
	return dep
}

func TestParseRequirement(t *testing.T) {
	tests := []struct {
		raw     string
		op      types.RequirementOperator
		version string
	}{
		{"1.0.0", types.RequirementOpEqual, "1.0.0"},
		{"= 1.0.0", types.RequirementOpEqual, "1.0.0"},
		{"~> 0.5.0", types.RequirementOpOptimistic, "0.5.0"},
		{"< 1.2", types.RequirementOpLessThan, "1.2"},
		{"<= 1.2", types.RequirementOpLessThanOrEqual, "1.2"},
		{"> 1.9.0-beta", types.RequirementOpGreaterThan, "1.9.0-beta"},
		{">= 0", types.RequirementOpGreaterThanOrEqual, "0"},
		{">=1.4.4", types.RequirementOpGreaterThanOrEqual, "1.4.4"},
	}
	for _, tt := range tests {
		requirement, err := ParseRequirement(tt.raw)
		require.NoError(t, err, tt.raw)
		if diff := cmp.Diff(tt.op, requirement.Operator); diff != "" {
			t.Fatalf("unexpected operator for %q (-want +got):\n%s", tt.raw, diff)
		}
		if diff := cmp.Diff(tt.version, requirement.Version.String()); diff != "" {
			t.Fatalf("unexpected version for %q (-want +got):\n%s", tt.raw, diff)
		}
	}
}

func TestParseRequirementRejectsUnknownOperator(t *testing.T) {
	for _, raw := range []string{"!= 1.0", "== 1.0", "> 1 2", "", "> banana"} {
		_, err := ParseRequirement(raw)
		assert.Error(t, err, raw)
	}
}

func TestDependencyString(t *testing.T) {
	dep := mustDependency(t, "Conche", "> 1", "< 1.2")
	assert.Equal(t, "Conche (> 1, < 1.2)", dep.String())
	assert.Equal(t, "Conche", mustDependency(t, "Conche").String())
}

func TestDependencySatisfies(t *testing.T) {
	tests := []struct {
		requirement string
		accepts     []string
		rejects     []string
	}{
		{"= 1.0.0", []string{"1.0.0", "1.0", "1"}, []string{"1.0.1", "1.0.0-beta"}},
		{"~> 1.2", []string{"1.2", "1.9.3"}, []string{"2.0", "1.1"}},
		{"< 1.2", []string{"1.1.9", "0.1"}, []string{"1.2", "1.3"}},
		{"<= 1.2", []string{"1.2.0", "1.1"}, []string{"1.2.1"}},
		{"> 3.1.2", []string{"3.1.3", "3.2.0", "4.0.0"}, []string{"3.1.2", "2.1.2"}},
		{">= 3.1.2", []string{"3.1.2", "4"}, []string{"3.1.1"}},
	}
	for _, tt := range tests {
		dep := mustDependency(t, "Conche", tt.requirement)
		for _, raw := range tt.accepts {
			assert.True(t, Satisfies(dep, MustParseVersion(raw)), "%s should accept %s", tt.requirement, raw)
		}
		for _, raw := range tt.rejects {
			assert.False(t, Satisfies(dep, MustParseVersion(raw)), "%s should reject %s", tt.requirement, raw)
		}
	}
}

func TestDependencySatisfiesEveryRequirement(t *testing.T) {
	dep := mustDependency(t, "Conche", "> 1", "< 1.2")
	assert.True(t, Satisfies(dep, MustParseVersion("1.1")))
	assert.False(t, Satisfies(dep, MustParseVersion("1.2")))
	assert.False(t, Satisfies(dep, MustParseVersion("1")))
}

func TestDependencyWithoutRequirementsSatisfiesAnything(t *testing.T) {
	dep := mustDependency(t, "Conche")
	for _, raw := range []string{"0", "1.0.0", "99.1-alpha"} {
		assert.True(t, Satisfies(dep, MustParseVersion(raw)))
	}
}

func TestCombineMergesSameNameOnly(t *testing.T) {
	dep := mustDependency(t, "Cookie", "> 1.0.0")
	combined := Combine(dep,
		mustDependency(t, "Milk", "2.0.0"),
		mustDependency(t, "Cookie", "< 2.0"),
		mustDependency(t, "Cookie", "> 1.0.0"),
	)
	want := mustDependency(t, "Cookie", "> 1.0.0", "< 2.0")
	assert.True(t, DependenciesEqual(want, combined), combined.String())
	assert.Len(t, dep.Requirements, 1)
}

func TestUsePreRelease(t *testing.T) {
	assert.True(t, UsePreRelease(mustDependency(t, "Cocoa", "> 1.9.0-beta")))
	assert.False(t, UsePreRelease(mustDependency(t, "Cocoa", "> 1.9.0")))
	assert.False(t, UsePreRelease(mustDependency(t, "Cocoa")))
}

func TestDependenciesEqual(t *testing.T) {
	assert.True(t, DependenciesEqual(mustDependency(t, "A", "1.0"), mustDependency(t, "A", "= 1.0.0")))
	assert.False(t, DependenciesEqual(mustDependency(t, "A", "1.0"), mustDependency(t, "B", "1.0")))
	assert.False(t, DependenciesEqual(mustDependency(t, "A", "1.0"), mustDependency(t, "A", "> 1.0")))
}
