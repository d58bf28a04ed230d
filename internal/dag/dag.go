package dag

import (
	"fmt"
)

// Graph is a directed acyclic graph of string-identified nodes. It is built
// and walked single-threaded by the builder.
type Graph struct {
	nodes map[string]*node
	// order remembers node insertion order; TopoSort uses it to break ties
	// deterministically.
	order []string
}

// node represents a single vertex. It is un-exported to enforce interaction
// with the graph via string IDs, not by direct struct manipulation.
type node struct {
	id         string
	deps       map[string]*node
	dependents map[string]*node
}

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]*node)}
}

// AddNode adds a new node with the given ID to the graph. If a node with
// the same ID already exists, the function does nothing.
func (g *Graph) AddNode(id string) {
	if _, ok := g.nodes[id]; ok {
		return
	}
	g.nodes[id] = &node{
		id:         id,
		deps:       make(map[string]*node),
		dependents: make(map[string]*node),
	}
	g.order = append(g.order, id)
}

// AddEdge creates a directed edge from the `fromID` node to the `toID` node,
// meaning `toID` depends on `fromID`. An error is returned if either node
// does not exist or if the edge would create a self-reference.
func (g *Graph) AddEdge(fromID, toID string) error {
	if fromID == toID {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s", fromID, fromID)
	}

	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}
	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}

	toNode.deps[fromID] = fromNode
	fromNode.dependents[toID] = toNode
	return nil
}

// DetectCycles checks the graph for any cycles. It returns a non-nil error
// if a cycle is found, naming the first node involved in the detected cycle.
func (g *Graph) DetectCycles() error {
	// Classic depth-first search with three node sets: permanent (fully
	// visited, known safe), temporary (in the current recursion stack), and
	// unvisited (everything else).
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)

	var visit func(n *node) error
	visit = func(n *node) error {
		if permanent[n.id] {
			return nil
		}
		if temporary[n.id] {
			return fmt.Errorf("cycle detected involving node '%s'", n.id)
		}

		temporary[n.id] = true
		for _, dependent := range n.dependents {
			if err := visit(dependent); err != nil {
				return err
			}
		}
		delete(temporary, n.id)
		permanent[n.id] = true
		return nil
	}

	for _, id := range g.order {
		if !permanent[id] {
			if err := visit(g.nodes[id]); err != nil {
				return err
			}
		}
	}
	return nil
}

// TopoSort returns every node ID in an order that respects all edges:
// sources come before their dependents. Nodes with no ordering constraint
// between them keep their insertion order. An error is returned if the graph
// contains a cycle.
func (g *Graph) TopoSort() ([]string, error) {
	indegree := make(map[string]int, len(g.nodes))
	for id, n := range g.nodes {
		indegree[id] = len(n.deps)
	}

	sorted := make([]string, 0, len(g.nodes))
	emitted := make(map[string]bool, len(g.nodes))

	for len(sorted) < len(g.nodes) {
		// Scan in insertion order for the first ready node. Quadratic, but
		// composites have few direct children and determinism matters more.
		progress := false
		for _, id := range g.order {
			if emitted[id] || indegree[id] > 0 {
				continue
			}
			emitted[id] = true
			sorted = append(sorted, id)
			for depID := range g.nodes[id].dependents {
				indegree[depID]--
			}
			progress = true
			break
		}
		if !progress {
			return nil, fmt.Errorf("cycle detected: %d of %d nodes unsortable", len(g.nodes)-len(sorted), len(g.nodes))
		}
	}
	return sorted, nil
}
