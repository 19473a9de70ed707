package sat_test

import (
	"fmt"

	"github.com/katalvlaran/foliar/sat"
)

// ExampleEnumerator lists all models of x1 ∨ x2.
func ExampleEnumerator() {
	f := sat.NewFormula(2)
	f.Add(1, 2)
	en, _ := sat.NewEnumerator(sat.BackendGini, f)
	models, _ := en.All()
	fmt.Println(len(models))
	// Output:
	// 3
}
