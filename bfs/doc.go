// Package bfs provides breadth-first search over a core.Graph, returning
// hop distances, parent links and visit order, plus the connected-component
// decomposition built on it.
//
// What
//
//   - BFS explores vertices in non-decreasing distance from a start vertex.
//   - Components partitions the vertex set of an undirected graph (or the
//     weak components of a directed one) in ascending order of least vertex.
//
// Where it is used
//
//   - Counting sutures of an edge orientation (components of the suture graph
//     on face classes).
//   - Splitting the suture 1-cycle of a cusp link into its closed curves.
//
// Determinism
//
//	core.Graph.NeighborIDs returns sorted IDs and BFS enqueues them in that
//	order, so Order and every component listing are reproducible.
//
// Complexity (V = |Vertices|, E = |Edges|)
//
//   - Time:   O(V + E·log d)
//   - Memory: O(V)
package bfs
