package dfs

import "github.com/cockroachdb/errors"

// Sentinel errors for DFS-based algorithms.
var (
	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = errors.New("dfs: graph is nil")

	// ErrGraphUndirected is returned when a directed-only algorithm receives
	// an undirected graph.
	ErrGraphUndirected = errors.New("dfs: graph is not directed")
)

// frame is one entry of the explicit Tarjan call stack.
type frame struct {
	v    int   // vertex being expanded
	nbrs []int // its out-neighbors
	next int   // index of the next neighbor to examine
}
