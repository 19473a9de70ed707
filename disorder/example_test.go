package disorder_test

import (
	"fmt"

	"github.com/katalvlaran/foliar/disorder"
	"github.com/katalvlaran/foliar/group"
)

// ExampleCertify refutes every left-order of the quaternion group.
func ExampleCertify() {
	i := group.Matrix{{1i, 0}, {0, -1i}}
	j := group.Matrix{{0, 1}, {-1, 0}}
	g, err := group.New([]group.Matrix{i, j})
	if err != nil {
		panic(err)
	}
	p, err := disorder.Certify(g, 3)
	if err != nil {
		panic(err)
	}
	fmt.Println(p.Steps)
	fmt.Println(disorder.VerifyProof(g, p) == nil)
	// Output:
	// [[a a.a.a.a]]
	// true
}
