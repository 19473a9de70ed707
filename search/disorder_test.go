// SPDX-License-Identifier: MIT
package search_test

import (
	"context"
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/katalvlaran/foliar/disorder"
	"github.com/katalvlaran/foliar/group"
	"github.com/katalvlaran/foliar/metrics"
	"github.com/katalvlaran/foliar/search"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func rotation(n int) group.Matrix {
	c, s := math.Cos(2*math.Pi/float64(n)), math.Sin(2*math.Pi/float64(n))

	return group.Matrix{{complex(c, 0), complex(-s, 0)}, {complex(s, 0), complex(c, 0)}}
}

var (
	cyclic5 = search.NamedGroup{Name: "Z5", Args: []int{5}, Gens: []group.Matrix{rotation(5)}, Relators: []string{"aaaaa"}}
	q8      = search.NamedGroup{
		Name:     "Q8",
		Gens:     []group.Matrix{{{1i, 0}, {0, -1i}}, {{0, 1}, {-1, 0}}},
		Relators: []string{"aaBB", "baBa"},
	}
	sanov = search.NamedGroup{Name: "F2", Gens: []group.Matrix{{{1, 2}, {0, 1}}, {{1, 0}, {2, 1}}}}
)

func TestIsNonOrderable_GrowsRadius(t *testing.T) {
	reg := prometheus.NewRegistry()
	cfg := search.DefaultConfig()
	cfg.BallRadius = 1
	cfg.Metrics = metrics.New(reg)

	r, err := search.IsNonOrderable(context.Background(), cyclic5, cfg)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, r, 1)
	assert.LessOrEqual(t, r, 3)
	assert.Equal(t, float64(r-1), counter(t, reg, "foliar_search_retries_total", "max_radius"))
}

func TestCertifyNonOrderable(t *testing.T) {
	p, err := search.CertifyNonOrderable(context.Background(), q8, search.DefaultConfig())
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Q8", p.Name)
	assert.Equal(t, []string{"aaBB", "baBa"}, p.Rels)

	g, err := group.New(q8.Gens)
	require.NoError(t, err)
	require.NoError(t, disorder.VerifyProof(g, p))
}

func TestCertifyNonOrderable_Exhausted(t *testing.T) {
	cfg := search.DefaultConfig()
	cfg.MaxRadius = cfg.BallRadius
	_, err := search.CertifyNonOrderable(context.Background(), sanov, cfg)
	var ex *search.Exhausted
	require.True(t, errors.As(err, &ex), "got %v", err)
	assert.Equal(t, search.ReasonBallRadius, ex.Reason)
	assert.Equal(t, cfg.MaxRadius+1, ex.Retry.BallRadius)
	assert.Equal(t, "search: exhausted max_radius", ex.Error())

	_, err = search.CertifyNonOrderable(context.Background(), search.NamedGroup{Name: "empty"}, cfg)
	assert.ErrorIs(t, err, group.ErrNoGenerators)
}

func TestCertifyNonOrderableBatch(t *testing.T) {
	cfg := search.DefaultConfig()
	cfg.MaxRadius = cfg.BallRadius
	cfg.Workers = 2

	for _, track := range []bool{false, true} {
		cfg.Track = track
		got, err := search.CertifyNonOrderableBatch(context.Background(), []search.NamedGroup{cyclic5, sanov, q8}, cfg)
		require.NoError(t, err)
		require.Len(t, got, 3)

		assert.Equal(t, []string{"Z5", "F2", "Q8"}, []string{got[0].Name, got[1].Name, got[2].Name})
		assert.True(t, got[0].NonOrderable())
		assert.False(t, got[1].NonOrderable())
		assert.True(t, got[1].Exhausted)
		assert.True(t, got[2].NonOrderable())
		if track {
			require.NotNil(t, got[2].Proof)
			assert.Equal(t, "Q8", got[2].Proof.Name)
			assert.Equal(t, []int{5}, got[0].Proof.GroupArgs)
		} else {
			assert.Nil(t, got[0].Proof)
		}
	}
}

func TestCertifyNonOrderableBatch_Errors(t *testing.T) {
	cfg := search.DefaultConfig()
	_, err := search.CertifyNonOrderableBatch(context.Background(), []search.NamedGroup{cyclic5, {Name: "empty"}}, cfg)
	assert.ErrorIs(t, err, group.ErrNoGenerators)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = search.CertifyNonOrderableBatch(ctx, []search.NamedGroup{cyclic5}, cfg)
	assert.ErrorIs(t, err, context.Canceled)

	cfg.Workers = 0
	_, err = search.CertifyNonOrderableBatch(context.Background(), nil, cfg)
	assert.Error(t, err)
}
