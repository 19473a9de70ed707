// SPDX-License-Identifier: MIT
package orient_test

import (
	"sort"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/foliar/metrics"
	"github.com/katalvlaran/foliar/orient"
	"github.com/katalvlaran/foliar/sat"
	"github.com/katalvlaran/foliar/slope"
	"github.com/katalvlaran/foliar/triangulation"
)

const (
	sigM004      = "cPcbbbiht"
	sigClosed    = "jLLvQPQcdfhghigiihshhgfifme"
	sigNoOrient  = "jLvMLQQbfefgihhiixiptvvvgof"
	sigOneSink   = "jLvLQAQbffghghiiieuaiikktuu"
	sigMixed     = "tLLLLMLLwPMQPkacfihjinmlpmoqrpsrssjkgqqthqkwtvxofsqcaa"
	sigTwoVertex = "nLLLwAPLQkcdefhhihklmlmmhsdarkdjselaxj"
	sigNoFol     = "uLLLMvPzvwPQQQcacfgghimlrnonspsqtttsjkwwjmbxwagoronokvkwr"
	sigLarge     = "sLLLvLLLQAPQQcdghmljnpmlrqoqoprrhshvxuulhrrptftvgpk"
)

var backends = []string{sat.BackendGini, sat.BackendGophersat}

func decode(t testing.TB, sig string) *triangulation.Complex {
	t.Helper()
	c, err := triangulation.Decode(sig)
	require.NoError(t, err)

	return c
}

// tally summarizes the closed orientations of one complex.
type tally struct {
	orientations, foliations, withSink, eulerZero, oneSuture, strong int
}

func count(t *testing.T, sig, backend string) tally {
	t.Helper()
	eos, err := orient.Closed(decode(t, sig), orient.WithBackend(backend))
	require.NoError(t, err)
	var out tally
	out.orientations = len(eos)
	for _, eo := range eos {
		if eo.HasSinkEdge() {
			out.withSink++
		}
		n, err := eo.NumSutures()
		require.NoError(t, err)
		if n == 1 {
			out.oneSuture++
		}
		sc, err := eo.StronglyConnected()
		require.NoError(t, err)
		if sc {
			out.strong++
		}
		ok, err := eo.GivesFoliation()
		require.NoError(t, err)
		if !ok {
			continue
		}
		out.foliations++
		// A foliation never comes from an orientation with a sink edge,
		// and a one-vertex complex has exactly one suture.
		assert.False(t, eo.HasSinkEdge())
		vanishes, err := eo.EulerClassVanishes()
		require.NoError(t, err)
		if vanishes {
			out.eulerZero++
		}
	}

	return out
}

func TestClosed_Census(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			got := count(t, sigClosed, backend)
			assert.Equal(t, 8, got.orientations)
			assert.Equal(t, 8, got.oneSuture)
			assert.Equal(t, 8, got.foliations)
			assert.Equal(t, 8, got.eulerZero)
			assert.Zero(t, got.withSink)

			got = count(t, sigNoOrient, backend)
			assert.Zero(t, got.orientations)

			got = count(t, sigOneSink, backend)
			assert.Equal(t, 10, got.orientations)
			assert.Equal(t, 9, got.foliations)
			assert.Equal(t, 1, got.withSink)
			assert.Equal(t, 9, got.eulerZero)
		})
	}
}

func TestClosed_Larger(t *testing.T) {
	if testing.Short() {
		t.Skip("enumerates several hundred orientations")
	}
	got := count(t, sigMixed, "")
	assert.Equal(t, 55, got.orientations)
	assert.Equal(t, 30, got.foliations)
	assert.Equal(t, 25, got.withSink)
	assert.Equal(t, 7, got.eulerZero)

	got = count(t, sigTwoVertex, "")
	assert.Equal(t, 100, got.orientations)
	assert.Zero(t, got.strong)
	assert.Zero(t, got.foliations)
	assert.Equal(t, 85, got.withSink)

	got = count(t, sigNoFol, "")
	assert.Equal(t, 115, got.orientations)
	assert.Zero(t, got.foliations)

	got = count(t, sigLarge, "")
	assert.Equal(t, 202, got.orientations)
	assert.Equal(t, 116, got.foliations)
}

func TestEnumerate_EdgeZeroPositiveAndDistinct(t *testing.T) {
	all, err := orient.Enumerate(decode(t, sigOneSink))
	require.NoError(t, err)
	require.Len(t, all, 10)
	seen := make(map[string]bool)
	for _, signs := range all {
		assert.Equal(t, 1, signs[0])
		key := ""
		for _, s := range signs {
			if s > 0 {
				key += "+"
			} else {
				key += "-"
			}
		}
		assert.False(t, seen[key], key)
		seen[key] = true
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	assert.Contains(t, keys, "+++++-++-+")
}

func TestEdgeOrientation_Predicates(t *testing.T) {
	c := decode(t, sigClosed)
	eo, err := orient.New(c, []int{1, 1, 1, -1, 1, 1, -1, 1, 1, -1})
	require.NoError(t, err)

	assert.Equal(t, orient.Local{Out: 3, In: 0}, eo.LocalStructure(0, 0))
	assert.Equal(t, orient.Local{Out: 1, In: 2}, eo.LocalStructure(0, 1))
	assert.Equal(t, -1, eo.Sign(3))
	assert.Equal(t, 0, eo.NumSinkEdges())

	// Every tetrahedron has exactly one very long edge.
	for tet := 0; tet < c.Size(); tet++ {
		long := 0
		for a := 0; a < 4; a++ {
			for b := a + 1; b < 4; b++ {
				if eo.IsVeryLong(tet, a, b) {
					long++
				}
			}
		}
		assert.Equal(t, 1, long, "tet %d", tet)
	}

	n, err := eo.NumSutures()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	sc, err := eo.StronglyConnected()
	require.NoError(t, err)
	assert.True(t, sc)

	euler, err := eo.EulerCocycle()
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1, 0, 0, 0, 1, 0, -1, 0, 0}, euler)
	vanishes, err := eo.EulerClassVanishes()
	require.NoError(t, err)
	assert.True(t, vanishes)

	g, err := eo.OneSkeleton()
	require.NoError(t, err)
	assert.Equal(t, 1, g.VertexCount())
	assert.Equal(t, 10, g.EdgeCount())
}

func TestNew_Rejects(t *testing.T) {
	c := decode(t, sigClosed)

	_, err := orient.New(c, []int{1, 1})
	assert.ErrorIs(t, err, orient.ErrBadSigns)
	_, err = orient.New(c, []int{1, 1, 1, 0, 1, 1, -1, 1, 1, -1})
	assert.ErrorIs(t, err, orient.ErrBadSigns)

	// The all-positive vector is not a model, so some face is a directed
	// cycle.
	all, err := orient.Enumerate(c)
	require.NoError(t, err)
	allPos := []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}
	assert.NotContains(t, all, allPos)
	_, err = orient.New(c, allPos)
	assert.ErrorIs(t, err, orient.ErrCyclic)

	_, err = orient.New(decode(t, sigM004), []int{1, 1})
	assert.ErrorIs(t, err, orient.ErrLinkNotSphere)
	_, err = orient.NewIdeal(c, all[0])
	assert.ErrorIs(t, err, orient.ErrNotCusped)
	_, err = orient.Ideal(c)
	assert.ErrorIs(t, err, orient.ErrNotCusped)
}

func TestIdeal_M004(t *testing.T) {
	c := decode(t, sigM004)
	eos, err := orient.Ideal(c)
	require.NoError(t, err)
	require.Len(t, eos, 2)

	for _, eo := range eos {
		n, err := eo.NumSutures()
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Zero(t, eo.NumSinkEdges())
		assert.True(t, eo.LinkCompatibleWithFoliation())
		ok, err := eo.GivesFoliation()
		require.NoError(t, err)
		assert.True(t, ok)

		// Both sutures are parallel with opposite orientations.
		assert.Equal(t, [2]int64{1, -1}, eo.SutureSlope(0))
		assert.Equal(t, [2]int64{-1, 1}, eo.SutureSlope(1))

		s, err := eo.DegeneracySlope()
		require.NoError(t, err)
		assert.Equal(t, slope.New(-1, 1), s)

		// Every edge leaves the cusp at exactly one of its ends.
		for e := 1; e <= c.NumEdges(); e++ {
			assert.Equal(t, -eo.LinkVertexSign(e), eo.LinkVertexSign(-e))
		}
	}
}

func TestIdeal_M004Framed(t *testing.T) {
	// In a basis whose first curve is the suture, both orientations
	// degenerate along (1, 0).
	framed := orient.Framed{Base: orient.Intrinsic{}, M: [2][2]int64{{1, 0}, {1, 1}}}
	eos, err := orient.Ideal(decode(t, sigM004), orient.WithPeripheral(framed))
	require.NoError(t, err)
	require.Len(t, eos, 2)
	for _, eo := range eos {
		s, err := eo.DegeneracySlope()
		require.NoError(t, err)
		assert.Equal(t, slope.New(1, 0), s)
	}

	bad := orient.Framed{Base: orient.Intrinsic{}, M: [2][2]int64{{2, 0}, {0, 1}}}
	_, err = orient.Ideal(decode(t, sigM004), orient.WithPeripheral(bad))
	assert.Error(t, err)
}

func TestIdeal_OtherCusped(t *testing.T) {
	for sig, want := range map[string]int{"eLPkbcddddcwjb": 3, "dLQbcccdero": 2} {
		eos, err := orient.Ideal(decode(t, sig))
		require.NoError(t, err)
		require.Len(t, eos, want, sig)
		for _, eo := range eos {
			n, err := eo.NumSutures()
			require.NoError(t, err)
			assert.Equal(t, 2, n)
			s0, s1 := eo.SutureSlope(0), eo.SutureSlope(1)
			assert.Equal(t, slope.Of(s0), slope.Of(s1))
		}
	}
}

type brokenPeripheral struct{}

func (brokenPeripheral) Cocycles(*triangulation.Link) ([]int, []int, error) {
	return []int{1}, []int{0}, nil
}

func TestIdeal_PeripheralShapeIsAsserted(t *testing.T) {
	_, err := orient.Ideal(decode(t, sigM004), orient.WithPeripheral(brokenPeripheral{}))
	require.Error(t, err)
	assert.True(t, errors.HasAssertionFailure(err))
}

func TestMetricsHook(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	_, err := orient.Closed(decode(t, sigClosed), orient.WithMetrics(m))
	require.NoError(t, err)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	found := false
	for _, mf := range mfs {
		if mf.GetName() == "foliar_orient_orientations_total" {
			found = true
			assert.Equal(t, 8.0, mf.GetMetric()[0].GetCounter().GetValue())
		}
	}
	assert.True(t, found)
}

func TestFormula_DIMACSHeader(t *testing.T) {
	f := orient.Formula(decode(t, sigM004))
	assert.Equal(t, 2, f.NumVars)
	// Two clauses per face class plus the unit clause.
	assert.Len(t, f.Clauses, 9)
}
