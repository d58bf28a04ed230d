// Package dag provides the small dependency graph the builder uses to order
// a composite's children: nodes are child names, edges follow declared
// connections, and the topological sort breaks ties by insertion order so a
// composite's run order is its declared order refined by dependencies.
package dag
