// Package core provides the small, thread-safe in-memory Graph used by the
// combinatorial engines of foliar.
//
// Vertices are identified by non-negative integers, which is how simplices
// of a triangulation (vertex classes, face classes, link edges) are indexed
// everywhere else in the module. The Graph G = (V,E) supports:
//
//   - Directed vs. undirected edges (WithDirected)
//   - Self-loops (WithLoops)
//   - Parallel edges / multi-graphs (WithMultiEdges)
//
// Why a dedicated graph type?
//
//   - The directed 1-skeleton of a triangulation has loops and parallel
//     edges as a rule, not as an exception.
//   - Deterministic iteration: Vertices(), Edges() and NeighborIDs() return
//     sorted results, so every algorithm built on top is reproducible.
//
// Core Methods:
//
//	AddVertex(id int) error                 // O(1)
//	AddEdge(from, to int) (int, error)      // O(1) amortized
//	HasVertex(id int) bool                  // O(1)
//	HasLoop(id int) bool                    // O(deg)
//	NeighborIDs(id int) ([]int, error)      // O(d·log d), unique, sorted
//	AdjacentIDs(id int) ([]int, error)      // in- and out-neighbors
//	IncidentEdges(id int) ([]Edge, error)   // O(deg), insertion order
//	Vertices() []int                        // O(V·log V)
//	Edges() []Edge                          // O(E)
//
// Errors:
//
//	ErrNegativeVertexID    – vertex IDs must be >= 0
//	ErrVertexNotFound      – missing vertex
//	ErrLoopNotAllowed      – self-loop when loops disabled
//	ErrMultiEdgeNotAllowed – parallel edge when multi-edges disabled
package core
