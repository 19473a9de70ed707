package bfs_test

import (
	"fmt"

	"github.com/katalvlaran/foliar/bfs"
	"github.com/katalvlaran/foliar/core"
)

// ExampleComponents splits a graph on six vertices into its pieces.
func ExampleComponents() {
	g := core.NewGraph()
	_, _ = g.AddEdge(0, 1)
	_, _ = g.AddEdge(1, 2)
	_, _ = g.AddEdge(3, 4)
	_ = g.AddVertex(5)

	comps, _ := bfs.Components(g)
	fmt.Println(len(comps), comps)
	// Output:
	// 3 [[0 1 2] [3 4] [5]]
}
