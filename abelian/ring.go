package abelian

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrRingMismatch indicates arithmetic between elements of different rings.
var ErrRingMismatch = errors.New("abelian: elements of different rings")

// Elem is an element of a finitely generated abelian group, as coordinates.
type Elem []int64

// key encodes e for use as a map key.
func (e Elem) key() string {
	parts := make([]string, len(e))
	for i, x := range e {
		parts[i] = strconv.FormatInt(x, 10)
	}

	return strings.Join(parts, ",")
}

// Equal compares coordinates.
func (e Elem) Equal(o Elem) bool {
	if len(e) != len(o) {
		return false
	}
	for i := range e {
		if e[i] != o[i] {
			return false
		}
	}

	return true
}

// Ring is Z[Z/m₀ ⊕ Z/m₁ ⊕ …], where a zero modulus is a free coordinate.
// With every modulus zero it is a Laurent polynomial ring.
type Ring struct {
	mods  []int64
	names []string
}

// NewRing returns the group ring of ⊕ Z/mods[i]. Torsion coordinates are
// named u, v, w, ... and free ones t (or t0, t1, ... when there are
// several).
func NewRing(mods []int64) *Ring {
	r := &Ring{mods: append([]int64(nil), mods...)}
	free := 0
	for _, m := range mods {
		if m == 0 {
			free++
		}
	}
	torsionNames := "uvwxyzpqrs"
	ti, fi := 0, 0
	for _, m := range mods {
		switch {
		case m != 0 && ti < len(torsionNames):
			r.names = append(r.names, torsionNames[ti:ti+1])
			ti++
		case m != 0:
			r.names = append(r.names, fmt.Sprintf("u%d", ti))
			ti++
		case free == 1:
			r.names = append(r.names, "t")
		default:
			r.names = append(r.names, fmt.Sprintf("t%d", fi))
			fi++
		}
	}

	return r
}

// Dim returns the number of coordinates.
func (r *Ring) Dim() int { return len(r.mods) }

// Moduli returns a copy of the coordinate moduli.
func (r *Ring) Moduli() []int64 { return append([]int64(nil), r.mods...) }

// Reduce returns e with every torsion coordinate taken mod its order.
func (r *Ring) Reduce(e Elem) Elem {
	out := make(Elem, len(e))
	for i, x := range e {
		if m := r.mods[i]; m > 0 {
			x %= m
			if x < 0 {
				x += m
			}
		}
		out[i] = x
	}

	return out
}

// Identity returns the zero vector.
func (r *Ring) Identity() Elem { return make(Elem, len(r.mods)) }

// MulElem returns the group product a·b.
func (r *Ring) MulElem(a, b Elem) Elem {
	out := make(Elem, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}

	return r.Reduce(out)
}

// InvElem returns a⁻¹.
func (r *Ring) InvElem(a Elem) Elem { return r.PowElem(a, -1) }

// PowElem returns a^k.
func (r *Ring) PowElem(a Elem, k int64) Elem {
	out := make(Elem, len(a))
	for i := range a {
		out[i] = a[i] * k
	}

	return r.Reduce(out)
}

// Order returns the order of a, or 0 if it is infinite.
func (r *Ring) Order(a Elem) int64 {
	a = r.Reduce(a)
	ord := int64(1)
	for i, x := range a {
		m := r.mods[i]
		if m == 0 {
			if x != 0 {
				return 0
			}
			continue
		}
		k := m / gcd(m, x)
		ord = ord / gcd(ord, k) * k
	}

	return ord
}

// TorsionElements lists every element of the torsion subgroup, the last
// coordinates varying fastest.
func (r *Ring) TorsionElements() []Elem {
	out := []Elem{r.Identity()}
	for i, m := range r.mods {
		if m == 0 {
			continue
		}
		next := make([]Elem, 0, len(out)*int(m))
		for _, e := range out {
			for x := int64(0); x < m; x++ {
				f := append(Elem(nil), e...)
				f[i] = x
				next = append(next, f)
			}
		}
		out = next
	}

	return out
}

// FormatElem renders a as a monomial such as "u*t^2", or "1".
func (r *Ring) FormatElem(a Elem) string {
	var parts []string
	for i, x := range a {
		switch x {
		case 0:
		case 1:
			parts = append(parts, r.names[i])
		default:
			parts = append(parts, fmt.Sprintf("%s^%d", r.names[i], x))
		}
	}
	if len(parts) == 0 {
		return "1"
	}

	return strings.Join(parts, "*")
}

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}

	return a
}

// Term is one monomial of a Poly.
type Term struct {
	Elem Elem
	Coef int64
}

// Poly is a finite Z-linear combination of group elements.
// Values are immutable; every operation returns a new Poly.
type Poly struct {
	r     *Ring
	terms map[string]Term
}

// Zero returns the zero element of r.
func (r *Ring) Zero() Poly { return Poly{r: r, terms: map[string]Term{}} }

// One returns the unit of r.
func (r *Ring) One() Poly { return r.Monomial(r.Identity(), 1) }

// Monomial returns c·e.
func (r *Ring) Monomial(e Elem, c int64) Poly {
	p := r.Zero()
	p.add(r.Reduce(e), c)

	return p
}

// add accumulates c·e in place; only used while building a fresh Poly.
func (p *Poly) add(e Elem, c int64) {
	if c == 0 {
		return
	}
	k := e.key()
	t, ok := p.terms[k]
	if !ok {
		t = Term{Elem: e}
	}
	t.Coef += c
	if t.Coef == 0 {
		delete(p.terms, k)
		return
	}
	p.terms[k] = t
}

// Ring returns the ring p lives in.
func (p Poly) Ring() *Ring { return p.r }

// IsZero reports whether p has no terms.
func (p Poly) IsZero() bool { return len(p.terms) == 0 }

// Len returns the number of terms.
func (p Poly) Len() int { return len(p.terms) }

// Coef returns the coefficient of e.
func (p Poly) Coef(e Elem) int64 { return p.terms[p.r.Reduce(e).key()].Coef }

// Terms returns the terms ordered by last coordinate, then the others.
func (p Poly) Terms() []Term {
	out := make([]Term, 0, len(p.terms))
	for _, t := range p.terms {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return elemLess(out[i].Elem, out[j].Elem) })

	return out
}

func elemLess(a, b Elem) bool {
	n := len(a)
	if n > 0 && a[n-1] != b[n-1] {
		return a[n-1] < b[n-1]
	}
	for i := 0; i < n-1; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}

	return false
}

// Support returns the elements with nonzero coefficient, in term order.
func (p Poly) Support() []Elem {
	ts := p.Terms()
	out := make([]Elem, len(ts))
	for i, t := range ts {
		out[i] = t.Elem
	}

	return out
}

// CoefficientSum returns the augmentation of p.
func (p Poly) CoefficientSum() int64 {
	var s int64
	for _, t := range p.terms {
		s += t.Coef
	}

	return s
}

// Add returns p + q.
func (p Poly) Add(q Poly) Poly { return p.combine(q, 1) }

// Sub returns p - q.
func (p Poly) Sub(q Poly) Poly { return p.combine(q, -1) }

func (p Poly) combine(q Poly, sign int64) Poly {
	mustSameRing(p, q)
	out := p.Scale(1)
	for _, t := range q.terms {
		out.add(t.Elem, sign*t.Coef)
	}

	return out
}

// Neg returns -p.
func (p Poly) Neg() Poly { return p.Scale(-1) }

// Scale returns c·p.
func (p Poly) Scale(c int64) Poly {
	out := p.r.Zero()
	for _, t := range p.terms {
		out.add(t.Elem, c*t.Coef)
	}

	return out
}

// Mul returns p·q.
func (p Poly) Mul(q Poly) Poly {
	mustSameRing(p, q)
	out := p.r.Zero()
	for _, a := range p.terms {
		for _, b := range q.terms {
			out.add(p.r.MulElem(a.Elem, b.Elem), a.Coef*b.Coef)
		}
	}

	return out
}

// Equal reports whether p and q have the same terms.
func (p Poly) Equal(q Poly) bool {
	if len(p.terms) != len(q.terms) {
		return false
	}
	for k, t := range p.terms {
		if q.terms[k].Coef != t.Coef {
			return false
		}
	}

	return true
}

// In maps p into r, which must have the same dimension, reducing
// coordinates modulo the orders of r.
func (p Poly) In(r *Ring) (Poly, error) {
	if r.Dim() != p.r.Dim() {
		return Poly{}, errors.Wrapf(ErrRingMismatch, "dimension %d into %d", p.r.Dim(), r.Dim())
	}
	out := r.Zero()
	for _, t := range p.terms {
		out.add(r.Reduce(t.Elem), t.Coef)
	}

	return out, nil
}

// Filter returns the terms of p whose element satisfies keep.
func (p Poly) Filter(keep func(Elem) bool) Poly {
	out := p.r.Zero()
	for _, t := range p.terms {
		if keep(t.Elem) {
			out.add(t.Elem, t.Coef)
		}
	}

	return out
}

// String renders p as a sum of terms in term order, e.g. "1 - t + t^2".
func (p Poly) String() string {
	ts := p.Terms()
	if len(ts) == 0 {
		return "0"
	}
	var b strings.Builder
	for i, t := range ts {
		c := t.Coef
		switch {
		case i == 0 && c < 0:
			b.WriteString("-")
			c = -c
		case i > 0 && c < 0:
			b.WriteString(" - ")
			c = -c
		case i > 0:
			b.WriteString(" + ")
		}
		mono := p.r.FormatElem(t.Elem)
		switch {
		case mono == "1":
			b.WriteString(strconv.FormatInt(c, 10))
		case c == 1:
			b.WriteString(mono)
		default:
			fmt.Fprintf(&b, "%d*%s", c, mono)
		}
	}

	return b.String()
}

func mustSameRing(p, q Poly) {
	if p.r != q.r {
		panic(errors.AssertionFailedf("abelian: %v", ErrRingMismatch))
	}
}
