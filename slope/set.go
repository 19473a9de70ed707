package slope

import "fmt"

// Kind tags the shape of a Set.
type Kind uint8

const (
	// All is the whole of P¹(Q).
	All Kind = iota
	// Arc is an open counter-clockwise arc from U to V; U == V means the
	// complement of that point.
	Arc
	// Point is the single slope U (primitive).
	Point
)

// Set is a subset of P¹(Q) of one of the three Kinds.
// Compare with Equal; the zero value is AllSlopes().
type Set struct {
	Kind Kind
	U, V Slope
}

// ConeOption disambiguates which of the two arcs between the endpoints
// is meant.
type ConeOption func(*coneHints)

type coneHints struct {
	contains, avoids *Slope
}

// WithContains selects the arc containing x.
func WithContains(x Slope) ConeOption {
	return func(h *coneHints) { h.contains = &x }
}

// WithAvoids selects the arc not containing x.
func WithAvoids(x Slope) ConeOption {
	return func(h *coneHints) { h.avoids = &x }
}

// AllSlopes returns the whole projective line.
func AllSlopes() Set { return Set{Kind: All} }

// SingleSlope returns the one-point set of the primitive part of (a, b).
func SingleSlope(a, b int64) Set {
	return Set{Kind: Point, U: New(a, b).Primitive()}
}

// NewCone returns the open arc from u to v counter-clockwise, swapping the
// endpoints when a hint says the other arc is meant. Equal endpoints give
// the complement of that point and ignore hints.
func NewCone(u, v Slope, opts ...ConeOption) (Set, error) {
	var h coneHints
	for _, opt := range opts {
		opt(&h)
	}
	if h.contains != nil && h.avoids != nil {
		return Set{}, ErrConflictingHints
	}
	c := Set{Kind: Arc, U: u, V: v}
	if u == v {
		return c, nil
	}
	if (h.contains != nil && !c.Contains(*h.contains)) || (h.avoids != nil && c.Contains(*h.avoids)) {
		c.U, c.V = v, u
	}

	return c, nil
}

// Cone is NewCone without hints; it cannot fail.
func Cone(u, v Slope) Set {
	return Set{Kind: Arc, U: u, V: v}
}

// PointComplement returns P¹(Q) minus u.
func PointComplement(u Slope) Set { return Cone(u, u) }

// Contains reports whether x lies in the set.
func (c Set) Contains(x Slope) bool {
	switch c.Kind {
	case All:
		return true
	case Point:
		return c.U == x.Primitive()
	}
	u0, u1 := c.U.A, c.U.B
	x0, x1 := x.A, x.B
	v0, v1 := c.V.A, c.V.B
	if c.U != c.V {
		return (u0*x1-u1*x0)*(x0*v1-x1*v0)*(v0*u1-v1*u0) < 0
	}

	return u0*x1-u1*x0 != 0
}

// Equal is total over every pair of kinds.
func (c Set) Equal(o Set) bool {
	if c.Kind != o.Kind {
		return false
	}
	switch c.Kind {
	case All:
		return true
	case Point:
		return c.U == o.U
	}

	return c.U == o.U && c.V == o.V
}

// String renders the set in the form Parse reads back.
func (c Set) String() string {
	switch c.Kind {
	case All:
		return "AllSlopes()"
	case Point:
		return fmt.Sprintf("SingleSlope(%d, %d)", c.U.A, c.U.B)
	}
	if c.U == c.V {
		return fmt.Sprintf("SlopeCone((%d, %d))", c.U.A, c.U.B)
	}

	return fmt.Sprintf("SlopeCone((%d, %d), (%d, %d))", c.U.A, c.U.B, c.V.A, c.V.B)
}
