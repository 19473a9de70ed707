package slope_test

import (
	"fmt"

	"github.com/katalvlaran/foliar/slope"
)

// ExampleNewCone picks the arc between two slopes that contains a third.
func ExampleNewCone() {
	c, _ := slope.NewCone(slope.New(-1, 0), slope.New(0, 1), slope.WithContains(slope.New(1, 1)))
	fmt.Println(c)
	fmt.Println(c.Contains(slope.New(2, 1)), c.Contains(slope.New(-1, 1)))
	// Output:
	// SlopeCone((1, 0), (0, 1))
	// true false
}

// ExampleConeSpanning computes the cone of a few vectors.
func ExampleConeSpanning() {
	c, _ := slope.ConeSpanning([][2]int64{{0, 1}, {1, 1}, {-1, 1}, {2, 1}, {-5, 3}})
	fmt.Println(c)
	// Output:
	// SlopeCone((2, 1), (-5, 3))
}
