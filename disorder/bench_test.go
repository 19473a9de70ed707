package disorder_test

import (
	"testing"

	"github.com/katalvlaran/foliar/disorder"
	"github.com/katalvlaran/foliar/group"
)

func BenchmarkHasNonOrderableGroup_Free(b *testing.B) {
	g, err := group.New([]group.Matrix{sanovA, sanovB})
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := disorder.HasNonOrderableGroup(g, 3); err != nil {
			b.Fatal(err)
		}
	}
}
