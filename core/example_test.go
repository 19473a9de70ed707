package core_test

import (
	"fmt"

	"github.com/katalvlaran/foliar/core"
)

// ExampleGraph builds the directed 1-skeleton of a one-vertex complex.
func ExampleGraph() {
	// 1) Directed multigraph with loops:
	g := core.NewGraph(core.WithDirected(true), core.WithLoops(), core.WithMultiEdges())

	// 2) Two edges, both loops at vertex 0:
	_, _ = g.AddEdge(0, 0)
	_, _ = g.AddEdge(0, 0)

	// 3) Inspect:
	fmt.Println("Vertices:", g.Vertices())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Loop at 0?", g.HasLoop(0))

	// Output:
	// Vertices: [0]
	// Edges: 2
	// Loop at 0? true
}
