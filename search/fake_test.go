package search_test

import (
	"context"
	"strings"

	"github.com/katalvlaran/foliar/abelian"
	"github.com/katalvlaran/foliar/search"
	"github.com/katalvlaran/foliar/slope"
	"github.com/katalvlaran/foliar/torsion"
)

const (
	sigM004     = "cPcbbbiht"
	sigClosed   = "jLLvQPQcdfhghigiihshhgfifme"
	sigNoOrient = "jLvMLQQbfefgihhiixiptvvvgof"
	sigTwoVtx   = "nLLLwAPLQkcdefhhihklmlmmhsdarkdjselaxj"
)

// sigs is a TriangulationSource with a fixed answer.
type sigs []string

func (s sigs) Isosigs(context.Context, int, int) ([]string, error) { return s, nil }

type fakeClosed struct {
	sigs
	name           string
	inv            search.Invariant
	betti          int
	nonOrientable  bool
	notHyperbolic  bool
	ids            []search.Identity
	drillings      []*fakeCusped
	identifyCalled int
}

func (m *fakeClosed) Name() string { return m.name }

func (m *fakeClosed) Invariant(context.Context) (search.Invariant, error) { return m.inv, nil }

func (m *fakeClosed) Hyperbolic(context.Context, bool, float64) (bool, error) {
	return !m.notHyperbolic, nil
}

func (m *fakeClosed) Identify(context.Context) ([]search.Identity, error) {
	m.identifyCalled++

	return m.ids, nil
}

func (m *fakeClosed) BettiNumber(context.Context) (int, error) { return m.betti, nil }

func (m *fakeClosed) Orientable() bool { return !m.nonOrientable }

func (m *fakeClosed) DualCurves(context.Context, int) (int, error) { return len(m.drillings), nil }

func (m *fakeClosed) Drill(_ context.Context, curve int) (search.CuspedManifold, error) {
	return m.drillings[curve], nil
}

type fakeCusped struct {
	sigs
	name   string
	inv    search.Invariant
	cusps  int
	inputs []torsion.Input
	fill   func(s slope.Slope) *fakeClosed
	filled []slope.Slope
}

func (m *fakeCusped) Name() string { return m.name }

func (m *fakeCusped) Invariant(context.Context) (search.Invariant, error) { return m.inv, nil }

func (m *fakeCusped) Hyperbolic(context.Context, bool, float64) (bool, error) { return true, nil }

func (m *fakeCusped) Identify(context.Context) ([]search.Identity, error) { return nil, nil }

func (m *fakeCusped) Presentations(context.Context) ([]torsion.Input, error) { return m.inputs, nil }

func (m *fakeCusped) NumCusps() int {
	if m.cusps == 0 {
		return 1
	}

	return m.cusps
}

func (m *fakeCusped) Fill(_ context.Context, s slope.Slope) (search.ClosedManifold, error) {
	m.filled = append(m.filled, s)

	return m.fill(s), nil
}

func trefoil() torsion.Input {
	return torsion.Input{
		Presentation: abelian.Presentation{Gens: 2, Relators: []string{"aaBBB"}},
		Peripheral:   [2]string{"aB", "aa" + strings.Repeat("bA", 6)},
	}
}

func torus() torsion.Input {
	return torsion.Input{
		Presentation: abelian.Presentation{Gens: 2, Relators: []string{"abAB"}},
		Peripheral:   [2]string{"a", "b"},
	}
}

// fillingsNamed returns a filling map whose results the census knows as
// the (1, 0) filling of name.
func fillingsNamed(name string) func(slope.Slope) *fakeClosed {
	return func(s slope.Slope) *fakeClosed {
		return &fakeClosed{
			name: s.String(),
			inv:  search.Invariant{Volume: 2 + float64(s.A*s.A+s.B), Homology: "Z/7"},
			ids:  []search.Identity{{Name: name, Filling: slope.New(1, 0)}},
		}
	}
}

// drilledTo returns a closed manifold with a single dual curve whose
// drilling has the given presentations and fillings.
func drilledTo(fill func(slope.Slope) *fakeClosed, inputs ...torsion.Input) (*fakeClosed, *fakeCusped) {
	T := &fakeCusped{
		name:   "T",
		inv:    search.Invariant{Volume: 1.5, Homology: "Z"},
		inputs: inputs,
		fill:   fill,
	}
	M := &fakeClosed{
		name:      "M",
		inv:       search.Invariant{Volume: 1, Homology: "Z/5"},
		drillings: []*fakeCusped{T},
	}

	return M, T
}

var census = search.MemCensus{
	"lsp":  {Name: "lsp", LSpaceFillings: [][2]int64{{1, 0}}},
	"nonl": {Name: "nonl", NonLSpaceFillings: [][2]int64{{1, 0}}},
}
