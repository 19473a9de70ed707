package matrix

// SNF is the Smith normal form D = U·A·V of an integer matrix A.
//
// D is diagonal with non-negative entries d₀ | d₁ | … | d_{rank-1} followed
// by zeros; U (rows×rows) and V (cols×cols) are unimodular.
type SNF struct {
	D, U, V *Dense
}

// Diagonal returns the min(rows, cols) diagonal entries of D.
func (s *SNF) Diagonal() []int64 {
	n := min(s.D.r, s.D.c)
	out := make([]int64, n)
	for i := 0; i < n; i++ {
		out[i] = s.D.get(i, i)
	}

	return out
}

// Rank returns the number of nonzero diagonal entries.
func (s *SNF) Rank() int {
	r := 0
	for _, d := range s.Diagonal() {
		if d != 0 {
			r++
		}
	}

	return r
}

// Invariants returns the nonzero invariant factors different from 1,
// i.e. the orders of the cyclic torsion summands of the cokernel.
func (s *SNF) Invariants() []int64 {
	var out []int64
	for _, d := range s.Diagonal() {
		if d > 1 {
			out = append(out, d)
		}
	}

	return out
}

// SmithNormalForm computes the Smith normal form of a together with the
// unimodular transforms. a is not modified.
func SmithNormalForm(a *Dense) (*SNF, error) {
	if a == nil {
		return nil, ErrNilMatrix
	}
	d := a.Clone()
	u := Identity(a.r)
	v := Identity(a.c)

	for t := 0; t < min(d.r, d.c); t++ {
		// 1) Bring the smallest nonzero entry of the trailing block to (t,t)
		pi, pj, ok := smallestIn(d, t)
		if !ok {
			break
		}
		if pi != t {
			d.swapRows(t, pi)
			u.swapRows(t, pi)
		}
		if pj != t {
			d.swapCols(t, pj)
			v.swapCols(t, pj)
		}

		for {
			// 2) Keep the pivot minimal within row t and column t
			for i := t + 1; i < d.r; i++ {
				if x := d.get(i, t); x != 0 && abs(x) < abs(d.get(t, t)) {
					d.swapRows(t, i)
					u.swapRows(t, i)
				}
			}
			for j := t + 1; j < d.c; j++ {
				if x := d.get(t, j); x != 0 && abs(x) < abs(d.get(t, t)) {
					d.swapCols(t, j)
					v.swapCols(t, j)
				}
			}
			p := d.get(t, t)

			// 3) Reduce column t and row t modulo the pivot
			dirty := false
			for i := t + 1; i < d.r; i++ {
				if x := d.get(i, t); x != 0 {
					q := x / p
					d.addRow(i, t, -q)
					u.addRow(i, t, -q)
					dirty = dirty || d.get(i, t) != 0
				}
			}
			for j := t + 1; j < d.c; j++ {
				if x := d.get(t, j); x != 0 {
					q := x / p
					d.addCol(j, t, -q)
					v.addCol(j, t, -q)
					dirty = dirty || d.get(t, j) != 0
				}
			}
			if dirty {
				continue
			}

			// 4) Divisibility: pull an offending row into row t
			fixed := true
			for i := t + 1; i < d.r && fixed; i++ {
				for j := t + 1; j < d.c; j++ {
					if d.get(i, j)%p != 0 {
						d.addRow(t, i, 1)
						u.addRow(t, i, 1)
						fixed = false
						break
					}
				}
			}
			if fixed {
				break
			}
		}

		// 5) Positive pivot
		if d.get(t, t) < 0 {
			d.negRow(t)
			u.negRow(t)
		}
	}

	return &SNF{D: d, U: u, V: v}, nil
}

// smallestIn locates the nonzero entry of least absolute value in the block
// rows >= t, cols >= t.
func smallestIn(d *Dense, t int) (int, int, bool) {
	bi, bj := -1, -1
	var best int64
	for i := t; i < d.r; i++ {
		for j := t; j < d.c; j++ {
			x := abs(d.get(i, j))
			if x != 0 && (bi < 0 || x < best) {
				bi, bj, best = i, j, x
			}
		}
	}

	return bi, bj, bi >= 0
}

func abs(x int64) int64 {
	if x < 0 {
		return -x
	}

	return x
}

// SameCokernel reports whether the cokernels of a and b (same number of
// rows) are isomorphic, comparing rank and nontrivial invariant factors.
// When b is a with extra columns, this decides whether the extra columns
// already lie in the column span of a over Z.
func SameCokernel(a, b *Dense) (bool, error) {
	if a == nil || b == nil {
		return false, ErrNilMatrix
	}
	if a.r != b.r {
		return false, matrixErrorf("SameCokernel", ErrDimensionMismatch)
	}
	sa, err := SmithNormalForm(a)
	if err != nil {
		return false, err
	}
	sb, err := SmithNormalForm(b)
	if err != nil {
		return false, err
	}
	if sa.Rank() != sb.Rank() {
		return false, nil
	}
	ia, ib := sa.Invariants(), sb.Invariants()
	if len(ia) != len(ib) {
		return false, nil
	}
	for i := range ia {
		if ia[i] != ib[i] {
			return false, nil
		}
	}

	return true, nil
}
