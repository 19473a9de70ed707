// Package matrix_test contains unit tests for integer Dense operations.
package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/foliar/matrix"
)

// MustDenseFrom builds a Dense or fails the test.
func MustDenseFrom(t *testing.T, rows [][]int64, cols int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(rows, cols)
	require.NoError(t, err)

	return m
}

func TestNewDense_Shapes(t *testing.T) {
	_, err := matrix.NewDense(-1, 2)
	assert.ErrorIs(t, err, matrix.ErrBadShape)

	m, err := matrix.NewDense(0, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Rows())
	assert.Equal(t, 3, m.Cols())

	_, err = matrix.NewDenseFrom([][]int64{{1, 2}, {3}}, 2)
	assert.ErrorIs(t, err, matrix.ErrBadShape)
}

func TestDense_AtSet(t *testing.T) {
	m := MustDenseFrom(t, [][]int64{{1, 2}, {3, 4}}, 2)
	require.NoError(t, m.Set(0, 1, 7))
	v, err := m.At(0, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(7), v)

	_, err = m.At(2, 0)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
	assert.ErrorIs(t, m.Set(0, -1, 1), matrix.ErrOutOfRange)
	assert.Equal(t, []int64{3, 4}, m.Row(1))
	assert.Equal(t, "[1 7]\n[3 4]", m.String())
}

func TestMulTransposeConcat(t *testing.T) {
	a := MustDenseFrom(t, [][]int64{{1, 2, 3}, {0, 1, -1}}, 3)
	b := MustDenseFrom(t, [][]int64{{1, 0}, {2, 1}, {-1, 4}}, 2)

	p, err := matrix.Mul(a, b)
	require.NoError(t, err)
	assert.True(t, p.Equal(MustDenseFrom(t, [][]int64{{2, 14}, {3, -3}}, 2)))

	_, err = matrix.Mul(a, a)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	assert.True(t, matrix.Transpose(a).Equal(MustDenseFrom(t, [][]int64{{1, 0}, {2, 1}, {3, -1}}, 2)))

	c, err := matrix.HConcat(a, []int64{9, 8})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 9}, c.Row(0))
	_, err = matrix.HConcat(a, []int64{1})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestDet(t *testing.T) {
	cases := []struct {
		name string
		rows [][]int64
		want int64
	}{
		{"empty", nil, 1},
		{"1x1", [][]int64{{-4}}, -4},
		{"2x2", [][]int64{{3, 8}, {4, 6}}, -14},
		{"needs-pivot", [][]int64{{0, 1, 2}, {1, 0, 3}, {4, -3, 8}}, -2},
		{"singular", [][]int64{{1, 2}, {2, 4}}, 0},
		{"3x3", [][]int64{{2, -3, 1}, {2, 0, -1}, {1, 4, 5}}, 49},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n := len(tc.rows)
			got, err := matrix.Det(MustDenseFrom(t, tc.rows, n))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := matrix.Det(MustDenseFrom(t, [][]int64{{1, 2}}, 2))
	assert.ErrorIs(t, err, matrix.ErrNonSquare)
}
