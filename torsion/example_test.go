package torsion_test

import (
	"fmt"

	"github.com/katalvlaran/foliar/slope"
	"github.com/katalvlaran/foliar/torsion"
)

// ExampleIotaInverse_NonLSpaceCone recovers the non-L-space interval of a
// census manifold from three of its L-space fillings.
func ExampleIotaInverse_NonLSpaceCone() {
	d, err := torsion.ParseIotaInverse("IotaInverseDtau(L=1,m=(-1,0),l=(-18,-1),values=[(1,0),(2,0),(3,0),(4,0),(6,0),(9,0)])")
	if err != nil {
		panic(err)
	}
	c, err := d.NonLSpaceCone([]slope.Slope{slope.New(1, 0), slope.New(0, 1), slope.New(1, -1)})
	if err != nil {
		panic(err)
	}
	fmt.Println(c)
	fmt.Println(c.Contains(slope.New(18, 1)))
	// Output:
	// SlopeCone((1, 0), (9, 1))
	// true
}

// ExampleNew computes the torsion of the trefoil complement.
func ExampleNew() {
	tr, err := torsion.New(trefoil())
	if err != nil {
		panic(err)
	}
	fmt.Println(tr.Tau(), tr.CouldBeFloerSimple())
	// Output:
	// 1 + t^2 true
}
