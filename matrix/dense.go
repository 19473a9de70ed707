package matrix

import (
	"fmt"
	"strings"
)

// Dense is a row-major matrix of int64 values.
type Dense struct {
	r, c int     // number of rows and columns
	data []int64 // flat backing storage, length == r*c
}

// NewDense creates an r×c zero matrix. Zero rows or columns are allowed.
// Complexity: O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	if rows < 0 || cols < 0 {
		return nil, ErrBadShape
	}

	return &Dense{r: rows, c: cols, data: make([]int64, rows*cols)}, nil
}

// NewDenseFrom copies a rectangular [][]int64 into a new Dense.
// cols fixes the width, so an empty row list still has a shape.
func NewDenseFrom(rows [][]int64, cols int) (*Dense, error) {
	m, err := NewDense(len(rows), cols)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != cols {
			return nil, matrixErrorf("NewDenseFrom", ErrBadShape)
		}
		copy(m.data[i*cols:(i+1)*cols], row)
	}

	return m, nil
}

// Identity returns the n×n identity matrix.
func Identity(n int) *Dense {
	m := &Dense{r: n, c: n, data: make([]int64, n*n)}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}

	return m
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.c }

// At retrieves the element at (row, col).
func (m *Dense) At(row, col int) (int64, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, matrixErrorf(fmt.Sprintf("Dense.At(%d,%d)", row, col), ErrOutOfRange)
	}

	return m.data[row*m.c+col], nil
}

// Set assigns v at (row, col).
func (m *Dense) Set(row, col int, v int64) error {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return matrixErrorf(fmt.Sprintf("Dense.Set(%d,%d)", row, col), ErrOutOfRange)
	}
	m.data[row*m.c+col] = v

	return nil
}

// Row returns a copy of row i. It panics if i is out of range.
func (m *Dense) Row(i int) []int64 {
	out := make([]int64, m.c)
	copy(out, m.data[i*m.c:(i+1)*m.c])

	return out
}

// Clone returns a deep copy.
func (m *Dense) Clone() *Dense {
	data := make([]int64, len(m.data))
	copy(data, m.data)

	return &Dense{r: m.r, c: m.c, data: data}
}

// Equal reports whether m and o have the same shape and entries.
func (m *Dense) Equal(o *Dense) bool {
	if m.r != o.r || m.c != o.c {
		return false
	}
	for i := range m.data {
		if m.data[i] != o.data[i] {
			return false
		}
	}

	return true
}

// String renders the matrix one bracketed row per line.
func (m *Dense) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteString(fmt.Sprint(m.data[i*m.c : (i+1)*m.c]))
		if i+1 < m.r {
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

func (m *Dense) get(i, j int) int64    { return m.data[i*m.c+j] }
func (m *Dense) set(i, j int, v int64) { m.data[i*m.c+j] = v }
