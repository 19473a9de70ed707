package abelian

import (
	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/foliar/matrix"
)

// Sentinel errors for presentations.
var (
	// ErrBadLetter indicates a word letter outside the generators.
	ErrBadLetter = errors.New("abelian: letter is not a generator")

	// ErrNoGenerators indicates a presentation without generators.
	ErrNoGenerators = errors.New("abelian: no generators")

	// ErrNotSquare indicates a Fox matrix that is not square.
	ErrNotSquare = errors.New("abelian: Fox matrix is not square")
)

// Presentation is a finite group presentation on generators a, b, ...
type Presentation struct {
	Gens     int      `json:"gens" yaml:"gens"`
	Relators []string `json:"rels" yaml:"rels"`
}

// letter returns the generator index of r and its exponent ±1.
func letter(r byte, gens int) (int, int64, error) {
	switch {
	case r >= 'a' && int(r-'a') < gens:
		return int(r - 'a'), 1, nil
	case r >= 'A' && int(r-'A') < gens:
		return int(r - 'A'), -1, nil
	}

	return 0, 0, errors.Wrapf(ErrBadLetter, "%q", r)
}

// ExponentSums returns the total exponent of each generator in word.
func ExponentSums(word string, gens int) ([]int64, error) {
	out := make([]int64, gens)
	for i := 0; i < len(word); i++ {
		g, e, err := letter(word[i], gens)
		if err != nil {
			return nil, errors.Wrapf(err, "in %q", word)
		}
		out[g] += e
	}

	return out, nil
}

// Abelianization maps words of a presentation into H = Z^gens / relators,
// written as Z/d₁ ⊕ … ⊕ Z/d_k ⊕ Z^r.
type Abelianization struct {
	gens   int
	coords [][]int64 // coords[g] = image of generator g, unreduced
	group  *Ring
	laur   *Ring
}

// Abelianize computes the abelianization of p.
func Abelianize(p Presentation) (*Abelianization, error) {
	if p.Gens <= 0 {
		return nil, ErrNoGenerators
	}

	// 1) Relator exponent matrix, one row per relator
	rows := make([][]int64, 0, len(p.Relators))
	for _, rel := range p.Relators {
		v, err := ExponentSums(rel, p.Gens)
		if err != nil {
			return nil, err
		}
		rows = append(rows, v)
	}
	r, err := matrix.NewDenseFrom(rows, p.Gens)
	if err != nil {
		return nil, err
	}

	// 2) D = U·R·V; x lies in the row space of R iff x·V lies in that of D
	snf, err := matrix.SmithNormalForm(r)
	if err != nil {
		return nil, err
	}
	diag := snf.Diagonal()
	var keep []int
	var mods []int64
	for j := 0; j < p.Gens; j++ {
		d := int64(0)
		if j < len(diag) {
			d = diag[j]
		}
		if d == 1 {
			continue
		}
		keep = append(keep, j)
		mods = append(mods, d)
	}

	// 3) Image of each generator: row g of V restricted to kept columns
	a := &Abelianization{gens: p.Gens, group: NewRing(mods), laur: NewRing(make([]int64, len(mods)))}
	for g := 0; g < p.Gens; g++ {
		row := snf.V.Row(g)
		c := make([]int64, len(keep))
		for i, j := range keep {
			c[i] = row[j]
		}
		a.coords = append(a.coords, a.group.Reduce(c))
	}

	return a, nil
}

// GroupRing returns Z[H].
func (a *Abelianization) GroupRing() *Ring { return a.group }

// Laurent returns the Laurent ring on the coordinates of H, with no
// torsion relations imposed.
func (a *Abelianization) Laurent() *Ring { return a.laur }

// Divisors returns the orders of the cyclic summands, 0 for Z.
func (a *Abelianization) Divisors() []int64 { return a.group.Moduli() }

// FreeRank returns the rank of H.
func (a *Abelianization) FreeRank() int {
	n := 0
	for _, d := range a.group.mods {
		if d == 0 {
			n++
		}
	}

	return n
}

// Map returns the image of word in H.
func (a *Abelianization) Map(word string) (Elem, error) {
	e, err := a.raw(word)
	if err != nil {
		return nil, err
	}

	return a.group.Reduce(e), nil
}

// raw sums generator images without reducing.
func (a *Abelianization) raw(word string) (Elem, error) {
	e := make(Elem, a.group.Dim())
	for i := 0; i < len(word); i++ {
		g, s, err := letter(word[i], a.gens)
		if err != nil {
			return nil, errors.Wrapf(err, "in %q", word)
		}
		for k, x := range a.coords[g] {
			e[k] += s * x
		}
	}

	return e, nil
}

// Fox returns the Fox derivative ∂word/∂x_gen mapped into the Laurent ring.
// An occurrence of x contributes the image of the prefix before it; an
// occurrence of X subtracts the image of the prefix ending with it.
func (a *Abelianization) Fox(word string, gen int) (Poly, error) {
	out := a.laur.Zero()
	prefix := make(Elem, a.laur.Dim())
	for i := 0; i < len(word); i++ {
		g, s, err := letter(word[i], a.gens)
		if err != nil {
			return Poly{}, errors.Wrapf(err, "in %q", word)
		}
		if s > 0 && g == gen {
			out.add(append(Elem(nil), prefix...), 1)
		}
		for k, x := range a.coords[g] {
			prefix[k] += s * x
		}
		if s < 0 && g == gen {
			out.add(append(Elem(nil), prefix...), -1)
		}
	}

	return out, nil
}

// FoxMatrix returns the square matrix with entry (g, r) = ∂rels[r]/∂x_g.
func (a *Abelianization) FoxMatrix(rels []string) ([][]Poly, error) {
	if len(rels) != a.gens {
		return nil, errors.Wrapf(ErrNotSquare, "%d generators, %d relators", a.gens, len(rels))
	}
	m := make([][]Poly, a.gens)
	for g := range m {
		m[g] = make([]Poly, len(rels))
		for j, rel := range rels {
			p, err := a.Fox(rel, g)
			if err != nil {
				return nil, err
			}
			m[g][j] = p
		}
	}

	return m, nil
}

// Det expands the determinant of a square matrix over r along first rows.
func Det(r *Ring, m [][]Poly) (Poly, error) {
	n := len(m)
	for _, row := range m {
		if len(row) != n {
			return Poly{}, errors.Wrapf(ErrNotSquare, "row of length %d in a %d-row matrix", len(row), n)
		}
	}
	cols := make([]int, n)
	for i := range cols {
		cols[i] = i
	}

	return cofactor(r, m, 0, cols), nil
}

func cofactor(r *Ring, m [][]Poly, row int, cols []int) Poly {
	if len(cols) == 0 {
		return r.One()
	}
	out := r.Zero()
	rest := make([]int, 0, len(cols)-1)
	for k, c := range cols {
		if m[row][c].IsZero() {
			continue
		}
		rest = append(rest[:0], cols[:k]...)
		rest = append(rest, cols[k+1:]...)
		minor := cofactor(r, m, row+1, append([]int(nil), rest...))
		term := m[row][c].Mul(minor)
		if k%2 == 1 {
			term = term.Neg()
		}
		out = out.Add(term)
	}

	return out
}
