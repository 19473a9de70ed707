// SPDX-License-Identifier: MIT
package disorder_test

import (
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/foliar/cayley"
	"github.com/katalvlaran/foliar/disorder"
	"github.com/katalvlaran/foliar/group"
	"github.com/katalvlaran/foliar/metrics"
)

func rotation(n int) group.Matrix {
	c, s := math.Cos(2*math.Pi/float64(n)), math.Sin(2*math.Pi/float64(n))

	return group.Matrix{{complex(c, 0), complex(-s, 0)}, {complex(s, 0), complex(c, 0)}}
}

var (
	parabolic = group.Matrix{{1, 1}, {0, 1}}
	sanovA    = group.Matrix{{1, 2}, {0, 1}}
	sanovB    = group.Matrix{{1, 0}, {2, 1}}
	quatI     = group.Matrix{{1i, 0}, {0, -1i}}
	quatJ     = group.Matrix{{0, 1}, {-1, 0}}
	minusOne  = group.Matrix{{-1, 0}, {0, -1}}
)

func mustGroup(t *testing.T, gens ...group.Matrix) *group.Group {
	t.Helper()
	g, err := group.New(gens)
	require.NoError(t, err)

	return g
}

func mustBall(t *testing.T, g *group.Group, radius int) *cayley.Ball {
	t.Helper()
	b, err := cayley.Build(g, radius)
	require.NoError(t, err)

	return b
}

func TestMonoid_Saturate(t *testing.T) {
	b := mustBall(t, mustGroup(t, parabolic), 3)
	a, _, err := b.Lookup("a")
	require.NoError(t, err)

	p := disorder.NewMonoid(b, []group.Element{a}, true)
	assert.False(t, p.HasOne())
	assert.Equal(t, []string{"a", "aa", "aaa"}, p.Words())
	assert.Nil(t, p.OneWord())

	inv, _, err := b.Lookup("A")
	require.NoError(t, err)
	q := p.Copy()
	assert.True(t, q.Saturate(inv))
	assert.True(t, q.HasOne())
	assert.Len(t, q.OneWord(), 2)
	assert.False(t, p.HasOne(), "copy must not share state")
	assert.False(t, p.Contains(inv))
	assert.Equal(t, 3, p.Len())
}

func TestMonoid_CyclicContradiction(t *testing.T) {
	b := mustBall(t, mustGroup(t, rotation(5)), 3)
	a, _, err := b.Lookup("a")
	require.NoError(t, err)

	p := disorder.NewMonoid(b, []group.Element{a}, true)
	assert.True(t, p.HasOne())
	assert.Equal(t, []string{"a", "a", "a", "a", "a"}, p.OneWord())

	untracked := disorder.NewMonoid(b, []group.Element{a}, false)
	assert.True(t, untracked.HasOne())
	assert.Nil(t, untracked.OneWord())
}

func TestHasNonOrderableGroup(t *testing.T) {
	tests := []struct {
		name   string
		gens   []group.Matrix
		radius int
		want   bool
	}{
		{"cyclic", []group.Matrix{rotation(5)}, 3, true},
		{"parabolic", []group.Matrix{parabolic}, 3, false},
		{"sanov", []group.Matrix{sanovA, sanovB}, 3, false},
		{"quaternion", []group.Matrix{quatI, quatJ}, 3, true},
		{"involution", []group.Matrix{parabolic, minusOne}, 3, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := disorder.HasNonOrderableGroup(mustGroup(t, tc.gens...), tc.radius)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCertify_Golden(t *testing.T) {
	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))

	cyc := mustGroup(t, rotation(5))
	p, err := disorder.Certify(cyc, 3)
	require.NoError(t, err)
	require.NotNil(t, p)
	p.Name, p.Rels = "Z5", []string{"aaaaa"}
	require.NoError(t, disorder.VerifyProof(cyc, p))
	data, err := p.Marshal()
	require.NoError(t, err)
	g.Assert(t, "cyclic", data)

	inv := mustGroup(t, parabolic, minusOne)
	p, err = disorder.Certify(inv, 3)
	require.NoError(t, err)
	require.NotNil(t, p)
	p.Name, p.Rels = "ZxZ2", []string{"bb", "abAB"}
	require.NoError(t, disorder.VerifyProof(inv, p))
	data, err = p.Marshal()
	require.NoError(t, err)
	g.Assert(t, "involution", data)
}

func TestCertify_Quaternion(t *testing.T) {
	q8 := mustGroup(t, quatI, quatJ)
	p, err := disorder.Certify(q8, 3)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "a.b", p.Gens)
	assert.Equal(t, [][2]string{{"a", "a.a.a.a"}}, p.Steps)
	require.NoError(t, disorder.VerifyProof(q8, p))

	data, err := p.Marshal()
	require.NoError(t, err)
	back, err := disorder.ParseProof(data)
	require.NoError(t, err)
	assert.Equal(t, p.Steps, back.Steps)
}

func TestCertify_Orderable(t *testing.T) {
	p, err := disorder.Certify(mustGroup(t, sanovA, sanovB), 2)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestVerifyProof_Rejects(t *testing.T) {
	g := mustGroup(t, rotation(5))
	tests := []struct {
		name  string
		steps [][2]string
	}{
		{"empty", nil},
		{"not identity", [][2]string{{"a", "a.a.a.a"}}},
		{"factor off path", [][2]string{{"a", "aa.aaa"}}},
		{"trivial edge", [][2]string{{"aaaaa", "aaaaa"}}},
		{"two roots", [][2]string{{"a", "a.a.a.a.a"}, {"aa", "aa.aa.aa.aa.aa"}}},
		{"lone child", [][2]string{{"a.aa", "a.a.a.a.a"}}},
		{"bad siblings", [][2]string{{"a.aa", "a.a.a.a.a"}, {"a.AAA", "a.a.a.a.a"}}},
		{"duplicate leaf", [][2]string{{"a", "a.a.a.a.a"}, {"a", "a.a.a.a.a"}}},
		{"bad letter", [][2]string{{"x", "x"}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := disorder.VerifyProof(g, &disorder.Proof{Gens: "a", Steps: tc.steps})
			assert.ErrorIs(t, err, disorder.ErrInvalidProof)
		})
	}

	err := disorder.VerifyProof(g, &disorder.Proof{Gens: "a.b", Steps: [][2]string{{"a", "a.a.a.a.a"}}})
	assert.ErrorIs(t, err, disorder.ErrInvalidProof)

	err = disorder.VerifyProof(g, &disorder.Proof{Steps: [][2]string{{"a.aa", "a.a.a.a.a"}, {"a.AA", "a.a.a.a.a"}}})
	assert.NoError(t, err)
}

func TestCertifier_Options(t *testing.T) {
	b := mustBall(t, mustGroup(t, rotation(5)), 3)
	_, err := disorder.NewCertifier(b, disorder.WithDensity(0))
	assert.ErrorIs(t, err, disorder.ErrBadDensity)
	_, err = disorder.NewCertifier(b, disorder.WithDensity(1.5))
	assert.ErrorIs(t, err, disorder.ErrBadDensity)

	core, logs := observer.New(zap.DebugLevel)
	reg := prometheus.NewRegistry()
	c, err := disorder.NewCertifier(b,
		disorder.WithLogger(zap.New(core)),
		disorder.WithMetrics(metrics.New(reg)),
		disorder.WithTracking())
	require.NoError(t, err)

	ok, leaves, err := c.Run()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []disorder.Leaf{{Path: []string{"a"}, Word: []string{"a", "a", "a", "a", "a"}}}, leaves)

	assert.Equal(t, 1, logs.FilterMessage("contradiction").Len())
	assert.Equal(t, 1, logs.FilterMessage("ball").Len())

	families, err := reg.Gather()
	require.NoError(t, err)
	got := map[string]float64{}
	for _, f := range families {
		for _, m := range f.GetMetric() {
			got[f.GetName()] += m.GetCounter().GetValue()
		}
	}
	assert.Equal(t, 1.0, got["foliar_disorder_contradictions_total"])
	assert.Equal(t, 1.0, got["foliar_disorder_certifier_nodes_total"])
	assert.Equal(t, 1.0, got["foliar_disorder_saturations_total"])
}

func TestCertifier_Density(t *testing.T) {
	// With a tiny density the first branch is abandoned as orderable.
	b := mustBall(t, mustGroup(t, parabolic, minusOne), 3)
	c, err := disorder.NewCertifier(b, disorder.WithDensity(0.1))
	require.NoError(t, err)
	ok, _, err := c.Run()
	require.NoError(t, err)
	assert.False(t, ok)
}
