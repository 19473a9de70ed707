package sat_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/foliar/sat"
)

var backends = []string{sat.BackendGini, sat.BackendGophersat}

func TestFormula_ValidateAndDIMACS(t *testing.T) {
	f := sat.NewFormula(3)
	f.Add(1, -2)
	f.Add(3)
	require.NoError(t, f.Validate())

	var buf bytes.Buffer
	require.NoError(t, f.WriteDIMACS(&buf))
	assert.Equal(t, "p cnf 3 2\n1 -2 0\n3 0\n", buf.String())

	f.Add(4)
	assert.ErrorIs(t, f.Validate(), sat.ErrBadLiteral)
	g := sat.NewFormula(1)
	g.Add(0)
	assert.ErrorIs(t, g.Validate(), sat.ErrBadLiteral)
}

func TestNewSolver_UnknownBackend(t *testing.T) {
	_, err := sat.NewSolver("minisat", 1)
	assert.ErrorIs(t, err, sat.ErrUnknownBackend)
	_, err = sat.NewEnumerator("minisat", sat.NewFormula(1))
	assert.ErrorIs(t, err, sat.ErrUnknownBackend)
}

func TestEnumerator_CountsModels(t *testing.T) {
	// (x1 ∨ x2) ∧ (¬x1 ∨ ¬x3) has 4 models.
	f := sat.NewFormula(3)
	f.Add(1, 2)
	f.Add(-1, -3)
	for _, b := range backends {
		t.Run(b, func(t *testing.T) {
			en, err := sat.NewEnumerator(b, f)
			require.NoError(t, err)
			models, err := en.All()
			require.NoError(t, err)
			assert.Len(t, models, 4)
			assert.Equal(t, 4, en.Count())

			seen := map[[3]bool]bool{}
			for _, m := range models {
				require.Len(t, m, 3)
				assert.True(t, f.Satisfies(m))
				k := [3]bool{m[0], m[1], m[2]}
				assert.False(t, seen[k], "duplicate model %v", m)
				seen[k] = true
			}

			_, ok, err := en.Next()
			assert.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestEnumerator_Unsat(t *testing.T) {
	f := sat.NewFormula(1)
	f.Add(1)
	f.Add(-1)
	for _, b := range backends {
		en, err := sat.NewEnumerator(b, f)
		require.NoError(t, err)
		models, err := en.All()
		require.NoError(t, err, b)
		assert.Empty(t, models, b)
	}
}

func TestEnumerator_XorChain(t *testing.T) {
	// x_i != x_{i+1} for i=1..4 with x1 fixed: exactly one model.
	f := sat.NewFormula(5)
	for i := 1; i < 5; i++ {
		f.Add(i, i+1)
		f.Add(-i, -(i + 1))
	}
	f.Add(1)
	for _, b := range backends {
		en, err := sat.NewEnumerator(b, f)
		require.NoError(t, err)
		models, err := en.All()
		require.NoError(t, err)
		require.Len(t, models, 1, b)
		assert.Equal(t, []bool{true, false, true, false, true}, models[0])
	}
}
