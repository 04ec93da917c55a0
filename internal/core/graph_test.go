package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlattenRemovesLaterDuplicates(t *testing.T) {
	d := leaf(testSpec(t, "D", "1.0.0"))
	graph := DependencyGraph{Root: testSpec(t, "A", "1.0.0"), Dependencies: []DependencyGraph{
		{Root: testSpec(t, "B", "1.0.0"), Dependencies: []DependencyGraph{d}},
		{Root: testSpec(t, "C", "1.0.0"), Dependencies: []DependencyGraph{d}},
		leaf(testSpec(t, "D", "1.0")),
	}}
	assert.Equal(t, []string{"A", "B", "D", "C"}, graph.Names())
	assert.Len(t, graph.Flatten(), 4)
}

func TestFlattenKeepsDistinctVersions(t *testing.T) {
	graph := DependencyGraph{Root: testSpec(t, "A", "1.0.0"), Dependencies: []DependencyGraph{
		leaf(testSpec(t, "D", "1.0.0")),
		leaf(testSpec(t, "D", "2.0.0")),
	}}
	assert.Len(t, graph.Flatten(), 3)
}

func TestEquivalentIsOrderSensitive(t *testing.T) {
	b := leaf(testSpec(t, "B", "1.0.0"))
	c := leaf(testSpec(t, "C", "1.0.0"))
	root := testSpec(t, "A", "1.0.0")

	assert.True(t, DependencyGraph{Root: root, Dependencies: []DependencyGraph{b, c}}.
		Equivalent(DependencyGraph{Root: root, Dependencies: []DependencyGraph{b, c}}))
	assert.False(t, DependencyGraph{Root: root, Dependencies: []DependencyGraph{b, c}}.
		Equivalent(DependencyGraph{Root: root, Dependencies: []DependencyGraph{c, b}}))
	assert.False(t, DependencyGraph{Root: root}.Equivalent(DependencyGraph{Root: testSpec(t, "A", "1.0.1")}))
	assert.False(t, DependencyGraph{Root: root, Dependencies: []DependencyGraph{b}}.
		Equivalent(DependencyGraph{Root: root}))
}

func TestHasCircularReference(t *testing.T) {
	acyclic := DependencyGraph{Root: testSpec(t, "A", "1.0.0"), Dependencies: []DependencyGraph{
		{Root: testSpec(t, "B", "1.0.0"), Dependencies: []DependencyGraph{leaf(testSpec(t, "D", "1.0.0"))}},
		{Root: testSpec(t, "C", "1.0.0"), Dependencies: []DependencyGraph{leaf(testSpec(t, "D", "1.0.0"))}},
	}}
	assert.False(t, acyclic.HasCircularReference())

	cyclic := DependencyGraph{Root: testSpec(t, "A", "1.0.0"), Dependencies: []DependencyGraph{
		{Root: testSpec(t, "B", "1.0.0"), Dependencies: []DependencyGraph{leaf(testSpec(t, "A", "2.0.0"))}},
	}}
	assert.True(t, cyclic.HasCircularReference())
}

func TestGraphString(t *testing.T) {
	graph := DependencyGraph{Root: testSpec(t, "Car", "1.1.0"), Dependencies: []DependencyGraph{
		{Root: testSpec(t, "Engine", "1.1"), Dependencies: []DependencyGraph{leaf(testSpec(t, "Gasoline", "1"))}},
	}}
	assert.Equal(t, "Car 1.1.0\n  Engine 1.1\n    Gasoline 1\n", graph.String())
}
