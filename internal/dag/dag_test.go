package dag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	g := New()
	require.NotNil(t, g)
	assert.NotNil(t, g.nodes)
	assert.Empty(t, g.nodes)
}

func TestAddNode(t *testing.T) {
	g := New()

	g.AddNode("a")
	assert.Len(t, g.nodes, 1)
	nodeA, ok := g.nodes["a"]
	require.True(t, ok)
	assert.Equal(t, "a", nodeA.id)
	assert.NotNil(t, nodeA.deps)
	assert.NotNil(t, nodeA.dependents)

	g.AddNode("a") // Test idempotency
	assert.Len(t, g.nodes, 1)
	assert.Len(t, g.order, 1)

	g.AddNode("b")
	assert.Len(t, g.nodes, 2)
	assert.Equal(t, []string{"a", "b"}, g.order)
}

func TestAddEdge(t *testing.T) {
	t.Run("success case", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")

		err := g.AddEdge("a", "b") // b depends on a
		require.NoError(t, err)

		nodeA := g.nodes["a"]
		nodeB := g.nodes["b"]

		assert.Contains(t, nodeA.dependents, "b")
		assert.Equal(t, nodeB, nodeA.dependents["b"])
		assert.Contains(t, nodeB.deps, "a")
		assert.Equal(t, nodeA, nodeB.deps["a"])
	})

	t.Run("error cases", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")

		err := g.AddEdge("dne", "a")
		assert.ErrorContains(t, err, "source node not found")

		err = g.AddEdge("a", "dne")
		assert.ErrorContains(t, err, "destination node not found")

		err = g.AddEdge("a", "a")
		assert.ErrorContains(t, err, "self-referential edge")
	})
}

func TestDetectCycles(t *testing.T) {
	t.Run("empty graph has no cycles", func(t *testing.T) {
		g := New()
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("valid dag has no cycles", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		g.AddNode("c")
		g.AddNode("d")
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "c"))
		require.NoError(t, g.AddEdge("a", "c")) // Transitive edge
		require.NoError(t, g.AddEdge("c", "d"))
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("simple direct cycle is detected", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "a")) // Cycle
		err := g.DetectCycles()
		assert.Error(t, err)
		assert.ErrorContains(t, err, "cycle detected")
	})

	t.Run("cycle in a disjoint component is detected", func(t *testing.T) {
		g := New()
		// Component 1 (valid)
		g.AddNode("a")
		g.AddNode("b")
		require.NoError(t, g.AddEdge("a", "b"))

		// Component 2 (has a cycle)
		g.AddNode("x")
		g.AddNode("y")
		g.AddNode("z")
		require.NoError(t, g.AddEdge("x", "y"))
		require.NoError(t, g.AddEdge("y", "z"))
		require.NoError(t, g.AddEdge("z", "y")) // Cycle

		err := g.DetectCycles()
		assert.Error(t, err)
		assert.ErrorContains(t, err, "cycle detected")
	})
}

func TestTopoSort(t *testing.T) {
	t.Run("unconstrained nodes keep insertion order", func(t *testing.T) {
		g := New()
		g.AddNode("c")
		g.AddNode("a")
		g.AddNode("b")

		sorted, err := g.TopoSort()
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "a", "b"}, sorted)
	})

	t.Run("edges reorder only what they constrain", func(t *testing.T) {
		g := New()
		g.AddNode("sink")
		g.AddNode("mid")
		g.AddNode("src")
		require.NoError(t, g.AddEdge("src", "mid"))
		require.NoError(t, g.AddEdge("mid", "sink"))

		sorted, err := g.TopoSort()
		require.NoError(t, err)
		assert.Equal(t, []string{"src", "mid", "sink"}, sorted)
	})

	t.Run("diamond keeps declared tie-break", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("left")
		g.AddNode("right")
		g.AddNode("z")
		require.NoError(t, g.AddEdge("a", "left"))
		require.NoError(t, g.AddEdge("a", "right"))
		require.NoError(t, g.AddEdge("left", "z"))
		require.NoError(t, g.AddEdge("right", "z"))

		sorted, err := g.TopoSort()
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "left", "right", "z"}, sorted)
	})

	t.Run("cycle is an error", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "a"))

		_, err := g.TopoSort()
		assert.ErrorContains(t, err, "cycle detected")
	})
}
