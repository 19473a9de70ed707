package cayley

import (
	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/foliar/group"
)

// ErrNegativeRadius indicates a ball of negative radius.
var ErrNegativeRadius = errors.New("cayley: negative radius")

// Pair holds an element and its inverse. For an involution both entries
// are the same element.
type Pair [2]group.Element

// Ball is the set of group elements represented by reduced words of
// length at most the radius.
type Ball struct {
	g        *group.Group
	radius   int
	elements []group.Element
	index    map[group.Key]int
	pairs    []Pair
	identity group.Key
}

// Words returns the reduced words of length at most radius over the given
// generators, shortest first. The empty word comes first.
func Words(gens []string, radius int) []string {
	letters := append([]string(nil), gens...)
	for _, x := range gens {
		letters = append(letters, group.SwapCase(x))
	}
	out := []string{""}
	layer := []string{""}
	for r := 0; r < radius; r++ {
		var next []string
		for _, w := range layer {
			for _, x := range letters {
				if w != "" && w[len(w)-1:] == group.SwapCase(x) {
					continue
				}
				next = append(next, w+x)
			}
		}
		out = append(out, next...)
		layer = next
	}

	return out
}

// Build evaluates every reduced word of length at most radius.
func Build(g *group.Group, radius int) (*Ball, error) {
	if radius < 0 {
		return nil, errors.Wrapf(ErrNegativeRadius, "radius %d", radius)
	}
	b := &Ball{
		g:        g,
		radius:   radius,
		index:    make(map[group.Key]int),
		identity: g.KeyOf(group.Identity),
	}
	for _, w := range Words(g.Generators(), radius) {
		e, err := g.Element(w)
		if err != nil {
			return nil, err
		}
		if _, dup := b.index[e.Key()]; dup {
			continue
		}
		b.index[e.Key()] = len(b.elements)
		b.elements = append(b.elements, e)
	}
	b.pairUp()

	return b, nil
}

// pairUp matches every element with an inverse seen before it, relabelling
// the later one by the inverse of the earlier word.
func (b *Ball) pairUp() {
	seen := make(map[group.Key]int)
	for i, e := range b.elements {
		if e.Key() == b.identity {
			continue
		}
		inv := b.g.KeyOf(e.M.Inverse())
		if inv == e.Key() {
			b.pairs = append(b.pairs, Pair{e, e})
			seen[e.Key()] = i
			continue
		}
		j, ok := seen[inv]
		if !ok {
			seen[e.Key()] = i
			continue
		}
		h := b.elements[j]
		if w := group.InverseWord(h.Word); w != e.Word {
			e.Word = w
			b.elements[i] = e
		}
		b.pairs = append(b.pairs, Pair{h, e})
	}
}

// Group returns the group the ball lives in.
func (b *Ball) Group() *group.Group { return b.g }

// Radius returns the word-length radius.
func (b *Ball) Radius() int { return b.radius }

// Len returns the number of distinct elements, the identity included.
func (b *Ball) Len() int { return len(b.elements) }

// Elements returns the distinct elements in order of first appearance.
func (b *Ball) Elements() []group.Element {
	out := make([]group.Element, len(b.elements))
	copy(out, b.elements)

	return out
}

// Pairs returns the inverse pairs in order of their later element.
func (b *Ball) Pairs() []Pair {
	out := make([]Pair, len(b.pairs))
	copy(out, b.pairs)

	return out
}

// Canonical returns the representative of e in the ball.
func (b *Ball) Canonical(e group.Element) (group.Element, bool) {
	i, ok := b.index[e.Key()]
	if !ok {
		return group.Element{}, false
	}

	return b.elements[i], true
}

// Lookup returns the representative of the element named by word.
func (b *Ball) Lookup(word string) (group.Element, bool, error) {
	e, err := b.g.Element(word)
	if err != nil {
		return group.Element{}, false, err
	}
	c, ok := b.Canonical(e)

	return c, ok, nil
}

// IsIdentity reports whether e is the identity.
func (b *Ball) IsIdentity(e group.Element) bool { return e.Key() == b.identity }
