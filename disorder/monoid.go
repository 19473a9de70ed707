package disorder

import (
	"sort"

	"github.com/katalvlaran/foliar/cayley"
	"github.com/katalvlaran/foliar/group"
)

// Monoid is a sub-semigroup of a Cayley ball: the closure of its generators
// under products that stay inside the ball.
//
// With tracking on, every element remembers how it factors as a product of
// the generator words that were added to the monoid.
type Monoid struct {
	ball    *cayley.Ball
	track   bool
	elems   []group.Element
	set     map[group.Key]struct{}
	factors map[group.Key][]string
	hasOne  bool
	oneWord []string
}

// NewMonoid saturates the monoid generated by gens inside ball.
func NewMonoid(ball *cayley.Ball, gens []group.Element, track bool) *Monoid {
	m := &Monoid{
		ball:  ball,
		track: track,
		set:   make(map[group.Key]struct{}),
	}
	if track {
		m.factors = make(map[group.Key][]string)
	}
	m.Saturate(gens...)

	return m
}

// Saturate adds gens and closes under products, stopping as soon as the
// identity appears. It reports whether the monoid now contains 1.
func (m *Monoid) Saturate(gens ...group.Element) bool {
	var active []group.Element
	for _, x := range gens {
		if m.track {
			m.factors[x.Key()] = []string{x.Word}
		}
		if _, ok := m.set[x.Key()]; ok {
			continue
		}
		m.set[x.Key()] = struct{}{}
		m.elems = append(m.elems, x)
		active = append(active, x)
	}

	g := m.ball.Group()
	for len(active) > 0 {
		var fresh []group.Element
		inFresh := make(map[group.Key]struct{})
		for _, x := range m.elems {
			for _, y := range active {
				for _, ab := range [2][2]group.Element{{x, y}, {y, x}} {
					z, ok := m.ball.Canonical(g.Mul(ab[0], ab[1]))
					if !ok {
						continue
					}
					if _, ok := m.set[z.Key()]; ok {
						continue
					}
					if _, ok := inFresh[z.Key()]; ok {
						continue
					}
					inFresh[z.Key()] = struct{}{}
					fresh = append(fresh, z)
					if m.track {
						m.factors[z.Key()] = concat(m.factors[ab[0].Key()], m.factors[ab[1].Key()])
					}
					if m.ball.IsIdentity(z) {
						m.absorb(fresh)
						m.hasOne = true
						if m.track {
							m.oneWord = m.factors[z.Key()]
						}

						return true
					}
				}
			}
		}
		m.absorb(fresh)
		active = fresh
	}

	return m.hasOne
}

func (m *Monoid) absorb(es []group.Element) {
	for _, e := range es {
		m.set[e.Key()] = struct{}{}
		m.elems = append(m.elems, e)
	}
}

func concat(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))

	return append(append(out, a...), b...)
}

// HasOne reports whether the identity was reached.
func (m *Monoid) HasOne() bool { return m.hasOne }

// OneWord returns the factorization of 1 into generator words, or nil when
// tracking is off or 1 was never reached.
func (m *Monoid) OneWord() []string { return m.oneWord }

// Contains reports whether e lies in the monoid.
func (m *Monoid) Contains(e group.Element) bool {
	_, ok := m.set[e.Key()]

	return ok
}

// Len returns the number of elements.
func (m *Monoid) Len() int { return len(m.elems) }

// Words returns the element words, shortest first.
func (m *Monoid) Words() []string {
	out := make([]string, len(m.elems))
	for i, e := range m.elems {
		out[i] = e.Word
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) < len(out[j])
		}

		return out[i] < out[j]
	})

	return out
}

// Copy returns an independent monoid with the same elements.
func (m *Monoid) Copy() *Monoid {
	c := &Monoid{
		ball:    m.ball,
		track:   m.track,
		elems:   append([]group.Element(nil), m.elems...),
		set:     make(map[group.Key]struct{}, len(m.set)),
		hasOne:  m.hasOne,
		oneWord: m.oneWord,
	}
	for k := range m.set {
		c.set[k] = struct{}{}
	}
	if m.track {
		c.factors = make(map[group.Key][]string, len(m.factors))
		for k, v := range m.factors {
			c.factors[k] = v
		}
	}

	return c
}
