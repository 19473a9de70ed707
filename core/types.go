package core

import (
	"sync"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for core graph operations.
var (
	// ErrNegativeVertexID indicates that a vertex ID below zero was supplied.
	ErrNegativeVertexID = errors.New("core: vertex ID is negative")

	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("core: vertex not found")

	// ErrLoopNotAllowed indicates a self-loop was attempted when loops are disabled.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrMultiEdgeNotAllowed indicates a parallel edge was attempted when multi-edges are disabled.
	ErrMultiEdgeNotAllowed = errors.New("core: multi-edges not allowed")
)

// Edge represents a connection between two vertices.
//
// ID is the insertion index of the edge, so Edges() order is insertion order.
type Edge struct {
	// ID uniquely identifies this edge in the Graph.
	ID int

	// From is the source vertex ID.
	From int

	// To is the destination vertex ID.
	To int
}

// Other returns the far endpoint of e as seen from v.
func (e Edge) Other(v int) int {
	if e.From == v {
		return e.To
	}

	return e.From
}

// GraphOption configures behavior of a Graph before creation.
type GraphOption func(g *Graph)

// WithDirected sets the directedness of every edge
// (true = directed, false = undirected).
func WithDirected(directed bool) GraphOption {
	return func(g *Graph) { g.directed = directed }
}

// WithMultiEdges permits parallel edges between the same vertices.
func WithMultiEdges() GraphOption {
	return func(g *Graph) { g.allowMulti = true }
}

// WithLoops permits self-loops (edges from a vertex to itself).
func WithLoops() GraphOption {
	return func(g *Graph) { g.allowLoops = true }
}

// Graph is the core in-memory graph data structure.
//
// mu guards every field below the flags; the flags are immutable after
// NewGraph returns.
type Graph struct {
	mu sync.RWMutex

	// Configuration flags
	directed   bool
	allowMulti bool
	allowLoops bool

	// Storage
	vertices map[int]struct{}
	edges    []Edge
	out      map[int][]int // vertex -> edge indexes leaving it (or incident, if undirected)
	in       map[int][]int // vertex -> edge indexes entering it (directed only)
}

// NewGraph allocates an empty Graph and applies opts left-to-right.
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		vertices: make(map[int]struct{}),
		out:      make(map[int][]int),
		in:       make(map[int][]int),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Directed reports whether edges are one-way.
func (g *Graph) Directed() bool { return g.directed }

// Looped reports whether self-loops are permitted.
func (g *Graph) Looped() bool { return g.allowLoops }

// Multigraph reports whether parallel edges are permitted.
func (g *Graph) Multigraph() bool { return g.allowMulti }
