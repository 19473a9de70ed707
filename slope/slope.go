package slope

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for slope arithmetic and parsing.
var (
	// ErrNotPrimitive is returned when an operation needs gcd(a, b) == 1.
	ErrNotPrimitive = errors.New("slope: slope is not primitive")

	// ErrWholePlane is returned when vectors positively span all of R².
	ErrWholePlane = errors.New("slope: positive cone of vectors is all of R^2")

	// ErrLineCone is returned when vectors span at most a line.
	ErrLineCone = errors.New("slope: positive cone is contained in a line")

	// ErrConflictingHints is returned when both WithContains and WithAvoids are given.
	ErrConflictingHints = errors.New("slope: contains and avoids are mutually exclusive")

	// ErrParse is returned for unrecognized textual forms.
	ErrParse = errors.New("slope: cannot parse")
)

// Slope is an unoriented multicurve on a torus with respect to an implicit
// positively oriented basis of H₁(T; Z). The zero value is the empty curve.
type Slope struct {
	A, B int64
}

// New returns the normalized slope of (a, b).
func New(a, b int64) Slope {
	switch {
	case a*b == 0:
		a, b = abs(a), abs(b)
	case b < 0:
		a, b = -a, -b
	}

	return Slope{A: a, B: b}
}

// Of normalizes a two-component vector.
func Of(v [2]int64) Slope { return New(v[0], v[1]) }

// Vec returns (A, B).
func (s Slope) Vec() [2]int64 { return [2]int64{s.A, s.B} }

// Sum orients both slopes and adds them; the two possible results are
// returned as (s + o, s − o).
func (s Slope) Sum(o Slope) (Slope, Slope) {
	return New(s.A+o.A, s.B+o.B), New(s.A-o.A, s.B-o.B)
}

// Intersection returns the geometric intersection number |ad − bc|.
func (s Slope) Intersection(o Slope) int64 {
	return abs(s.A*o.B - s.B*o.A)
}

// NumComponents returns gcd(a, b), the number of parallel curves.
func (s Slope) NumComponents() int64 {
	return GCD(s.A, s.B)
}

// Primitive returns the slope divided by its component count.
// The empty slope is its own primitive part.
func (s Slope) Primitive() Slope {
	g := GCD(s.A, s.B)
	if g == 0 {
		return s
	}

	return New(s.A/g, s.B/g)
}

// IsPrimitive reports whether gcd(a, b) == 1.
func (s Slope) IsPrimitive() bool { return GCD(s.A, s.B) == 1 }

// Complement returns a slope c with Intersection(s, c) == 1.
// Returns ErrNotPrimitive unless s is primitive.
func (s Slope) Complement() (Slope, error) {
	g, x, y := XGCD(s.A, s.B)
	if g != 1 {
		return Slope{}, errors.Wrapf(ErrNotPrimitive, "complement of %s", s)
	}
	c := New(-y, x)
	if c.Intersection(s) != 1 {
		return Slope{}, errors.AssertionFailedf("complement %s of %s has intersection %d", c, s, c.Intersection(s))
	}

	return c, nil
}

// Apply returns the slope of m·(a, b)ᵀ.
func (s Slope) Apply(m [2][2]int64) Slope {
	return New(m[0][0]*s.A+m[0][1]*s.B, m[1][0]*s.A+m[1][1]*s.B)
}

// Less orders slopes lexicographically by (A, B).
func (s Slope) Less(o Slope) bool {
	if s.A != o.A {
		return s.A < o.A
	}

	return s.B < o.B
}

// String renders "Slope(a, b)".
func (s Slope) String() string {
	return fmt.Sprintf("Slope(%d, %d)", s.A, s.B)
}
