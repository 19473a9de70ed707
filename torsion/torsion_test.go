// SPDX-License-Identifier: MIT
package torsion_test

import (
	"bytes"
	"context"
	"fmt"
	"math/big"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/foliar/abelian"
	"github.com/katalvlaran/foliar/metrics"
	"github.com/katalvlaran/foliar/slope"
	"github.com/katalvlaran/foliar/torsion"
)

// trefoil is <a, b | a²b⁻³> with meridian ab⁻¹ and longitude a²(ba⁻¹)⁶.
func trefoil() torsion.Input {
	return torsion.Input{
		Presentation: abelian.Presentation{Gens: 2, Relators: []string{"aaBBB"}},
		Peripheral:   [2]string{"aB", "aa" + strings.Repeat("bA", 6)},
	}
}

func m016() *torsion.IotaInverse {
	d, err := torsion.NewIotaInverse(1, [2]int64{-1, 0}, [2]int64{-18, -1},
		[][2]int64{{1, 0}, {2, 0}, {3, 0}, {4, 0}, {6, 0}, {9, 0}})
	if err != nil {
		panic(err)
	}

	return d
}

func ratStrings(rs []*big.Rat) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.RatString()
	}

	return out
}

func elemStrings(r *abelian.Ring, es []abelian.Elem) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = r.FormatElem(e)
	}

	return out
}

func setStrings(cs []slope.Set) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.String()
	}

	return out
}

func TestNew_Trefoil(t *testing.T) {
	tr, err := torsion.New(trefoil())
	require.NoError(t, err)

	assert.Equal(t, [2]int64{1, 0}, tr.Meridian())
	assert.Equal(t, [2]int64{0, 1}, tr.Longitude())
	assert.Equal(t, "aB", tr.MeridianWord())
	assert.Equal(t, "t", tr.Ring().FormatElem(tr.MeridianImage()))
	assert.Equal(t, int64(1), tr.LongitudeOrder())

	assert.Equal(t, "1 + t^2", tr.Tau().String())
	assert.True(t, tr.CouldBeFloerSimple())
	assert.Equal(t, int64(1), tr.LowerBoundOnThurston())
	assert.Equal(t, []string{"1", "t^2"}, elemStrings(tr.Ring(), tr.Support()))
	assert.Equal(t, []string{"t"}, elemStrings(tr.Ring(), tr.ComplementOfSupport()))
	assert.Equal(t, []string{"t"}, elemStrings(tr.Ring(), tr.DTauPlusPre()))

	img := tr.IotaImage()
	require.Len(t, img, 2)
	assert.Equal(t, [2]int64{0, 0}, img[0].Value)
	assert.Equal(t, [2]int64{1, 0}, img[1].Value)
	assert.Equal(t, [][2]int64{{1, 0}}, tr.DTauPlusValues())
}

func TestNew_SolidTorus(t *testing.T) {
	tr, err := torsion.New(torsion.Input{
		Presentation: abelian.Presentation{Gens: 1},
		Peripheral:   [2]string{"a", ""},
	})
	require.NoError(t, err)
	assert.Equal(t, "1", tr.Tau().String())
	assert.Equal(t, [2]int64{1, 0}, tr.Meridian())
	assert.True(t, tr.CouldBeFloerSimple())
	assert.Empty(t, tr.ComplementOfSupport())
	assert.Empty(t, tr.DTauPlus())

	d, err := torsion.FromTorsion(tr)
	require.NoError(t, err)
	assert.True(t, d.IsEmpty())
	assert.Nil(t, d.Partition())

	cones, err := d.PossibleNonLSpaceCones(slope.New(1, 0))
	require.NoError(t, err)
	assert.Equal(t, []string{"SingleSlope(0, 1)"}, setStrings(cones))

	c, err := d.NonLSpaceCone([]slope.Slope{slope.New(1, 0)})
	require.NoError(t, err)
	assert.True(t, c.Equal(slope.SingleSlope(0, 1)))
}

func TestNew_Errors(t *testing.T) {
	// Z² has rank two.
	_, err := torsion.New(torsion.Input{
		Presentation: abelian.Presentation{Gens: 2},
		Peripheral:   [2]string{"a", "b"},
	})
	assert.ErrorIs(t, err, torsion.ErrNotRationalSolidTorus)

	// Both peripheral words are trivial in homology.
	_, err = torsion.New(torsion.Input{
		Presentation: abelian.Presentation{Gens: 1},
		Peripheral:   [2]string{"aA", ""},
	})
	assert.ErrorIs(t, err, torsion.ErrDegeneratePeripheral)

	_, err = torsion.New(torsion.Input{
		Presentation: abelian.Presentation{Gens: 1},
		Peripheral:   [2]string{"x", ""},
	})
	assert.ErrorIs(t, err, abelian.ErrBadLetter)
}

func TestNew_LogsAndMetrics(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	reg := prometheus.NewRegistry()
	_, err := torsion.New(trefoil(),
		torsion.WithLogger(zap.New(core)),
		torsion.WithMetrics(metrics.New(reg)))
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("torsion determinant").Len())
	entry := logs.FilterMessage("torsion").All()
	require.Len(t, entry, 1)
	assert.Equal(t, "1 + t^2", entry[0].ContextMap()["tau"])

	families, err := reg.Gather()
	require.NoError(t, err)
	var got float64
	for _, f := range families {
		if f.GetName() == "foliar_torsion_computations_total" {
			got = f.GetMetric()[0].GetCounter().GetValue()
		}
	}
	assert.Equal(t, 1.0, got)
}

func TestFromSeries_FloerSimple(t *testing.T) {
	z := abelian.NewRing([]int64{0})
	zt := abelian.NewRing([]int64{2, 0})
	t1 := abelian.Elem{1}
	t2 := abelian.Elem{2}
	u := abelian.Elem{1, 0}
	ut := abelian.Elem{1, 1}
	tt := abelian.Elem{0, 1}

	tests := []struct {
		name   string
		tau    abelian.Poly
		simple bool
	}{
		{"ones", z.One().Add(z.Monomial(t2, 1)), true},
		{"two", z.One().Add(z.Monomial(t1, 2)).Add(z.Monomial(t2, 1)), false},
		{"torsion ones", zt.One().Add(zt.Monomial(tt, 1)).Add(zt.Monomial(ut, 1)), true},
		{"torsion two", zt.One().Add(zt.Monomial(u, 2)).Add(zt.Monomial(tt, 1)).Add(zt.Monomial(ut, 1)), false},
		{"negative", z.One().Add(z.Monomial(t1, -1)).Add(z.Monomial(t2, 1)), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr, err := torsion.FromSeries(tc.tau)
			require.NoError(t, err)
			assert.Equal(t, tc.simple, tr.CouldBeFloerSimple())
		})
	}

	_, err := torsion.FromSeries(abelian.NewRing([]int64{3}).One())
	assert.ErrorIs(t, err, torsion.ErrNoFreeFactor)
}

func TestLopOffStableRange(t *testing.T) {
	z := abelian.NewRing([]int64{0})
	mono := func(k int64) abelian.Poly { return z.Monomial(abelian.Elem{k}, 1) }
	long := mono(0).Add(mono(2)).Add(mono(3)).Add(mono(4))

	assert.Equal(t, []int64{0, 2, 3, 4}, torsion.StableDegrees(long))

	once, err := torsion.LopOffStableRange(long)
	require.NoError(t, err)
	assert.Equal(t, "1 + t^2", once.String())

	twice, err := torsion.LopOffStableRange(once)
	require.NoError(t, err)
	assert.True(t, once.Equal(twice))

	// Top degree 1 has coefficient 2, not f = 1.
	_, err = torsion.LopOffStableRange(mono(0).Add(z.Monomial(abelian.Elem{1}, 2)))
	require.Error(t, err)
	assert.True(t, errors.HasAssertionFailure(err))
}

func TestIotaInverse_M016(t *testing.T) {
	d := m016()
	assert.False(t, d.IsEmpty())
	assert.Equal(t, int64(1), d.Period())
	assert.Equal(t, []string{
		"0", "1/9", "1/6", "2/9", "1/4", "1/3", "4/9", "1/2",
		"5/9", "2/3", "3/4", "7/9", "5/6", "8/9", "1",
	}, ratStrings(d.Points()))

	b, err := d.ToChart([2]int64{1, 0})
	require.NoError(t, err)
	assert.Equal(t, "0", b.RatString())

	_, err = d.ToChart([2]int64{18, 1})
	assert.ErrorIs(t, err, torsion.ErrLongitudeNotInChart)

	b, err = d.ToChart([2]int64{0, 1})
	require.NoError(t, err)
	assert.Equal(t, "-1/18", b.RatString())

	s, err := d.FromChart(big.NewRat(-1, 18))
	require.NoError(t, err)
	assert.Equal(t, "Slope(0, 1)", s.String())

	iv, err := d.MinimalInterval([2]int64{-13, 7}, [2]int64{15, -8})
	require.NoError(t, err)
	assert.Equal(t, "[-5/9, -1/2]", iv.String())

	assert.True(t, d.Contains(big.NewRat(-3, 4)))
	assert.False(t, d.Contains(big.NewRat(31, 10)))

	cones, err := d.PossibleNonLSpaceCones(slope.New(1, 0))
	require.NoError(t, err)
	assert.Equal(t, []string{"SlopeCone((1, 0), (9, 1))", "SlopeCone((27, 1), (1, 0))"}, setStrings(cones))

	cones, err = d.PossibleNonLSpaceCones(slope.New(0, 1))
	require.NoError(t, err)
	assert.Equal(t, []string{"SlopeCone((1, 0), (9, 1))"}, setStrings(cones))

	// Only the first cone holds (40, 1).
	cones, err = d.PossibleNonLSpaceCones(slope.New(1, 0), slope.New(40, 1))
	require.NoError(t, err)
	assert.Equal(t, []string{"SlopeCone((1, 0), (9, 1))"}, setStrings(cones))

	c, err := d.NonLSpaceCone([]slope.Slope{slope.New(1, 0), slope.New(0, 1), slope.New(1, -1)})
	require.NoError(t, err)
	assert.Equal(t, "SlopeCone((1, 0), (9, 1))", c.String())
}

func TestIotaInverse_Errors(t *testing.T) {
	d := m016()

	_, err := d.MinimalInterval([2]int64{1, 0}, [2]int64{1, 3})
	assert.ErrorIs(t, err, torsion.ErrTooFarApart)

	_, err = d.MinimalInterval([2]int64{0, 1}, [2]int64{1, 0})
	assert.ErrorIs(t, err, torsion.ErrLongitudeNotInChart)

	_, err = d.NonLSpaceCone([]slope.Slope{slope.New(1, 0), slope.New(-1, 0)})
	assert.ErrorIs(t, err, torsion.ErrNeedTwoSlopes)

	_, err = torsion.NewIotaInverse(1, [2]int64{2, 0}, [2]int64{0, 1}, nil)
	assert.ErrorIs(t, err, torsion.ErrBadFraming)

	_, err = torsion.NewIotaInverse(1, [2]int64{1, 0}, [2]int64{0, 1}, [][2]int64{{0, 1}})
	assert.ErrorIs(t, err, torsion.ErrBadValue)

	_, err = torsion.ParseIotaInverse("IotaInverseDtau(L=1)")
	assert.ErrorIs(t, err, torsion.ErrParseIota)
}

func TestIotaInverse_RoundTrip(t *testing.T) {
	d := m016()
	repr := d.String()
	assert.Equal(t, "IotaInverseDtau(L=1,m=(-1,0),l=(-18,-1),values=[(1,0),(2,0),(3,0),(4,0),(6,0),(9,0)])", repr)

	e, err := torsion.ParseIotaInverse(strings.ReplaceAll(repr, ",", ", "))
	require.NoError(t, err)
	assert.Equal(t, repr, e.String())

	c, err := e.NonLSpaceCone([]slope.Slope{slope.New(1, 0), slope.New(0, 1), slope.New(1, -1)})
	require.NoError(t, err)
	assert.Equal(t, "SlopeCone((1, 0), (9, 1))", c.String())

	empty, err := torsion.ParseIotaInverse("IotaInverseDtau(L=1,m=(1,0),l=(0,1),values=[])")
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())
}

func TestIotaInverse_Golden(t *testing.T) {
	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
	d := m016()

	var buf bytes.Buffer
	fmt.Fprintln(&buf, d.String())
	fmt.Fprintln(&buf, d.Partition().String())
	g.Assert(t, "m016", buf.Bytes())
}

func TestIotaInverse_Trefoil(t *testing.T) {
	tr, err := torsion.New(trefoil())
	require.NoError(t, err)
	d, err := torsion.FromTorsion(tr)
	require.NoError(t, err)

	assert.Equal(t, []string{"0", "1"}, ratStrings(d.Points()))
	assert.Equal(t, "[-1, 0, 1]", d.Partition().String())

	cones, err := d.PossibleNonLSpaceCones(slope.New(1, 0))
	require.NoError(t, err)
	assert.Equal(t, []string{"SlopeCone((1, 0), (-1, 1))", "SlopeCone((1, 1), (1, 0))"}, setStrings(cones))
	for _, c := range cones {
		assert.True(t, c.Contains(slope.New(0, 1)), "longitude in %v", c)
	}
}

type fakeSource []torsion.Input

func (f fakeSource) Presentations(context.Context) ([]torsion.Input, error) { return f, nil }

type relatorCount int

// IsRealizable accepts presentations with exactly n relators.
func (n relatorCount) IsRealizable(_ context.Context, p abelian.Presentation) (bool, error) {
	return len(p.Relators) == int(n), nil
}

func TestFromSource(t *testing.T) {
	bad := trefoil()
	bad.Presentation.Relators = append(bad.Presentation.Relators, "abAB")
	src := fakeSource{bad, trefoil()}

	tr, err := torsion.FromSource(context.Background(), src, relatorCount(1))
	require.NoError(t, err)
	assert.Equal(t, "1 + t^2", tr.Tau().String())

	_, err = torsion.Realizable(context.Background(), src, relatorCount(3))
	assert.ErrorIs(t, err, torsion.ErrNotRealizable)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = torsion.Realizable(ctx, src, relatorCount(1))
	assert.ErrorIs(t, err, context.Canceled)
}
