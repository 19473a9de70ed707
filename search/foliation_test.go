package search_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/foliar/metrics"
	"github.com/katalvlaran/foliar/orient"
	"github.com/katalvlaran/foliar/sat"
	"github.com/katalvlaran/foliar/search"
	"github.com/katalvlaran/foliar/slope"
)

func TestFirstFoliation(t *testing.T) {
	for _, backend := range []string{sat.BackendGini, sat.BackendGophersat} {
		t.Run(backend, func(t *testing.T) {
			reg := prometheus.NewRegistry()
			cfg := search.DefaultConfig()
			cfg.Backend = backend
			cfg.Metrics = metrics.New(reg)

			// The cusped and two-vertex triangulations are passed over.
			eo, err := search.FirstFoliation(context.Background(), sigs{sigM004, sigTwoVtx, sigClosed}, cfg)
			require.NoError(t, err)
			require.NotNil(t, eo)
			assert.Equal(t, 9, eo.Complex().Size())
			ok, err := eo.GivesFoliation()
			require.NoError(t, err)
			assert.True(t, ok)

			assert.Equal(t, 1.0, counter(t, reg, "foliar_orient_foliations_total", "closed"))
			assert.Equal(t, 1.0, counter(t, reg, "foliar_orient_orientations_total", "closed"))
		})
	}
}

func TestFirstFoliation_None(t *testing.T) {
	eo, err := search.FirstFoliation(context.Background(), sigs{sigNoOrient}, search.DefaultConfig())
	require.NoError(t, err)
	assert.Nil(t, eo)

	_, err = search.FirstFoliation(context.Background(), sigs{"!!"}, search.DefaultConfig())
	assert.Error(t, err)
}

func TestHasTautFoliationWithEulerZero(t *testing.T) {
	ok, err := search.HasTautFoliationWithEulerZero(context.Background(), sigs{sigClosed}, search.DefaultConfig())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = search.HasTautFoliationWithEulerZero(context.Background(), sigs{sigNoOrient}, search.DefaultConfig())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDegeneracySlopes(t *testing.T) {
	reg := prometheus.NewRegistry()
	cfg := search.DefaultConfig()
	cfg.Metrics = metrics.New(reg)
	src := sigs{sigClosed, sigM004}

	got, err := search.DegeneracySlopes(context.Background(), src, orient.Intrinsic{}, cfg)
	require.NoError(t, err)
	assert.Equal(t, []slope.Slope{slope.New(-1, 1)}, got)
	assert.Equal(t, 2.0, counter(t, reg, "foliar_orient_foliations_total", "ideal"))

	framed := orient.Framed{Base: orient.Intrinsic{}, M: [2][2]int64{{1, 0}, {1, 1}}}
	got, err = search.DegeneracySlopes(context.Background(), src, framed, search.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, []slope.Slope{slope.New(1, 0)}, got)
}

func TestQuickNonOrderable(t *testing.T) {
	ctx := context.Background()
	src := sigs{sigClosed, sigTwoVtx, sigNoOrient}

	sig, ok, err := search.QuickNonOrderable(ctx, src, 2, search.DefaultConfig())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, sigNoOrient, sig)

	// The two-vertex triangulation does not count against the bound.
	_, ok, err = search.QuickNonOrderable(ctx, src, 1, search.DefaultConfig())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFoliation_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := search.FirstFoliation(ctx, sigs{sigClosed}, search.DefaultConfig())
	assert.ErrorIs(t, err, context.Canceled)
}
