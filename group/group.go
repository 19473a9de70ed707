package group

import (
	"math"
	"math/cmplx"
	"strings"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for group construction and evaluation.
var (
	// ErrNoGenerators indicates a group with no generators.
	ErrNoGenerators = errors.New("group: no generators")

	// ErrTooManyGenerators indicates more generators than letters.
	ErrTooManyGenerators = errors.New("group: more than 26 generators")

	// ErrNotSL2 indicates a generator whose determinant is not 1.
	ErrNotSL2 = errors.New("group: generator is not in SL(2,C)")

	// ErrBadLetter indicates a word letter that names no generator.
	ErrBadLetter = errors.New("group: letter is not a generator")
)

// DefaultBits is the default accuracy of element keys.
const DefaultBits = 15

// Matrix is a 2×2 complex matrix.
type Matrix [2][2]complex128

// Identity is the identity matrix.
var Identity = Matrix{{1, 0}, {0, 1}}

// Mul returns m·o.
func (m Matrix) Mul(o Matrix) Matrix {
	var out Matrix
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			out[i][j] = m[i][0]*o[0][j] + m[i][1]*o[1][j]
		}
	}

	return out
}

// Inverse returns the inverse of a determinant-one matrix.
func (m Matrix) Inverse() Matrix {
	return Matrix{{m[1][1], -m[0][1]}, {-m[1][0], m[0][0]}}
}

// Det returns the determinant.
func (m Matrix) Det() complex128 { return m[0][0]*m[1][1] - m[0][1]*m[1][0] }

// Trace returns the trace.
func (m Matrix) Trace() complex128 { return m[0][0] + m[1][1] }

// Key identifies a matrix up to rounding: entry (i, j) contributes
// round(2^bits · re) and round(2^bits · im).
type Key [8]int64

// Element is a group element with a word representing it.
type Element struct {
	M    Matrix
	Word string
	key  Key
}

// Key returns the rounding key of e.
func (e Element) Key() Key { return e.key }

// Group is the subgroup of SL(2, C) generated by a fixed list of matrices.
type Group struct {
	gens  []Matrix
	invs  []Matrix
	bits  int
	scale float64
}

// Option configures a Group.
type Option func(*Group)

// WithBits sets the accuracy of element keys in bits.
func WithBits(bits int) Option {
	return func(g *Group) {
		if bits > 0 {
			g.bits = bits
		}
	}
}

// New builds the group generated by gens; gens[0] is named "a".
func New(gens []Matrix, opts ...Option) (*Group, error) {
	if len(gens) == 0 {
		return nil, ErrNoGenerators
	}
	if len(gens) > 26 {
		return nil, ErrTooManyGenerators
	}
	g := &Group{bits: DefaultBits}
	for _, opt := range opts {
		opt(g)
	}
	g.scale = math.Ldexp(1, g.bits)
	for i, m := range gens {
		if cmplx.Abs(m.Det()-1) > 1/g.scale {
			return nil, errors.Wrapf(ErrNotSL2, "generator %c has determinant %v", 'a'+rune(i), m.Det())
		}
		g.gens = append(g.gens, m)
		g.invs = append(g.invs, m.Inverse())
	}

	return g, nil
}

// Bits returns the key accuracy.
func (g *Group) Bits() int { return g.bits }

// Generators returns the generator names "a", "b", ...
func (g *Group) Generators() []string {
	out := make([]string, len(g.gens))
	for i := range g.gens {
		out[i] = string(rune('a' + i))
	}

	return out
}

// Matrix evaluates a word.
func (g *Group) Matrix(word string) (Matrix, error) {
	m := Identity
	for _, r := range word {
		switch {
		case r >= 'a' && int(r-'a') < len(g.gens):
			m = m.Mul(g.gens[r-'a'])
		case r >= 'A' && int(r-'A') < len(g.gens):
			m = m.Mul(g.invs[r-'A'])
		default:
			return Matrix{}, errors.Wrapf(ErrBadLetter, "%q in %q", r, word)
		}
	}

	return m, nil
}

// Element evaluates a word into an element labelled by that word.
func (g *Group) Element(word string) (Element, error) {
	m, err := g.Matrix(word)
	if err != nil {
		return Element{}, err
	}

	return g.Wrap(m, word), nil
}

// Wrap labels a matrix with a word and computes its key.
func (g *Group) Wrap(m Matrix, word string) Element {
	return Element{M: m, Word: word, key: g.KeyOf(m)}
}

// KeyOf returns the rounding key of m.
func (g *Group) KeyOf(m Matrix) Key {
	var k Key
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			k[4*i+2*j] = int64(math.Round(g.scale * real(m[i][j])))
			k[4*i+2*j+1] = int64(math.Round(g.scale * imag(m[i][j])))
		}
	}

	return k
}

// Mul returns x·y labelled by the concatenated word.
func (g *Group) Mul(x, y Element) Element {
	return g.Wrap(x.M.Mul(y.M), x.Word+y.Word)
}

// Inverse returns x⁻¹ labelled by the inverse word.
func (g *Group) Inverse(x Element) Element {
	return g.Wrap(x.M.Inverse(), InverseWord(x.Word))
}

// IsOne reports whether every entry of x - I rounds to zero.
func (g *Group) IsOne(x Element) bool {
	return g.KeyOf(x.M) == g.KeyOf(Identity)
}

// InverseWord reverses a word and swaps the case of every letter.
func InverseWord(word string) string {
	b := []byte(word)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}

	return SwapCase(string(b))
}

// SwapCase exchanges generators and their inverses letter by letter.
func SwapCase(word string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z':
			return r - 'A' + 'a'
		}

		return r
	}, word)
}
