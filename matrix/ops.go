package matrix

// Mul returns a·b.
// Complexity: O(r·k·c).
func Mul(a, b *Dense) (*Dense, error) {
	if a == nil || b == nil {
		return nil, ErrNilMatrix
	}
	if a.c != b.r {
		return nil, matrixErrorf("Mul", ErrDimensionMismatch)
	}
	out := &Dense{r: a.r, c: b.c, data: make([]int64, a.r*b.c)}
	for i := 0; i < a.r; i++ {
		for k := 0; k < a.c; k++ {
			x := a.get(i, k)
			if x == 0 {
				continue
			}
			for j := 0; j < b.c; j++ {
				out.data[i*b.c+j] += x * b.get(k, j)
			}
		}
	}

	return out, nil
}

// Transpose returns mᵀ.
func Transpose(m *Dense) *Dense {
	out := &Dense{r: m.c, c: m.r, data: make([]int64, len(m.data))}
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			out.set(j, i, m.get(i, j))
		}
	}

	return out
}

// HConcat returns [a | col], appending col as a new last column.
func HConcat(a *Dense, col []int64) (*Dense, error) {
	if a == nil {
		return nil, ErrNilMatrix
	}
	if len(col) != a.r {
		return nil, matrixErrorf("HConcat", ErrDimensionMismatch)
	}
	out := &Dense{r: a.r, c: a.c + 1, data: make([]int64, a.r*(a.c+1))}
	for i := 0; i < a.r; i++ {
		copy(out.data[i*out.c:i*out.c+a.c], a.data[i*a.c:(i+1)*a.c])
		out.data[i*out.c+a.c] = col[i]
	}

	return out, nil
}

// Det returns the determinant of a square matrix using Bareiss
// fraction-free elimination, so every intermediate value is an integer.
// The determinant of the 0×0 matrix is 1.
func Det(m *Dense) (int64, error) {
	if m == nil {
		return 0, ErrNilMatrix
	}
	if m.r != m.c {
		return 0, matrixErrorf("Det", ErrNonSquare)
	}
	n := m.r
	a := m.Clone()
	sign := int64(1)
	prev := int64(1)
	for k := 0; k < n-1; k++ {
		// 1) Pivot: swap in a nonzero row if needed
		if a.get(k, k) == 0 {
			swap := -1
			for i := k + 1; i < n; i++ {
				if a.get(i, k) != 0 {
					swap = i
					break
				}
			}
			if swap < 0 {
				return 0, nil
			}
			a.swapRows(k, swap)
			sign = -sign
		}
		// 2) Bareiss update; the division is exact
		p := a.get(k, k)
		for i := k + 1; i < n; i++ {
			for j := k + 1; j < n; j++ {
				a.set(i, j, (a.get(i, j)*p-a.get(i, k)*a.get(k, j))/prev)
			}
			a.set(i, k, 0)
		}
		prev = p
	}
	if n == 0 {
		return 1, nil
	}

	return sign * a.get(n-1, n-1), nil
}

func (m *Dense) swapRows(i, j int) {
	for k := 0; k < m.c; k++ {
		m.data[i*m.c+k], m.data[j*m.c+k] = m.data[j*m.c+k], m.data[i*m.c+k]
	}
}

func (m *Dense) swapCols(i, j int) {
	for k := 0; k < m.r; k++ {
		m.data[k*m.c+i], m.data[k*m.c+j] = m.data[k*m.c+j], m.data[k*m.c+i]
	}
}

// addRow performs row[dst] += q·row[src].
func (m *Dense) addRow(dst, src int, q int64) {
	for k := 0; k < m.c; k++ {
		m.data[dst*m.c+k] += q * m.data[src*m.c+k]
	}
}

// addCol performs col[dst] += q·col[src].
func (m *Dense) addCol(dst, src int, q int64) {
	for k := 0; k < m.r; k++ {
		m.data[k*m.c+dst] += q * m.data[k*m.c+src]
	}
}

func (m *Dense) negRow(i int) {
	for k := 0; k < m.c; k++ {
		m.data[i*m.c+k] = -m.data[i*m.c+k]
	}
}
