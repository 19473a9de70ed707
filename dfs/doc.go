// Package dfs implements depth-first algorithms on a core.Graph.
//
// What:
//
//   - StronglyConnectedComponents: Tarjan's algorithm over a directed graph,
//     with an explicit stack so that deep 1-skeleta do not grow the goroutine
//     stack. Components are returned sorted internally and ordered by their
//     least vertex.
//
// Why:
//
//   - An edge orientation of a triangulation can only carry a taut foliation
//     when its oriented 1-skeleton is strongly connected.
//
// Complexity:
//
//   - Time O(V+E), Memory O(V)
//
// Errors:
//
//   - ErrGraphNil        graph pointer is nil
//   - ErrGraphUndirected the graph was built without WithDirected(true)
package dfs
