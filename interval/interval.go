package interval

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	// ErrUnsorted is returned when break points are not strictly increasing.
	ErrUnsorted = errors.New("interval: break points must be strictly increasing")

	// ErrEmpty is returned for a partition without break points.
	ErrEmpty = errors.New("interval: no break points")

	// ErrOutside is returned when a point lies outside [a, b].
	ErrOutside = errors.New("interval: point outside the interval")

	// ErrNoCommonSubinterval is returned when points straddle a break point.
	ErrNoCommonSubinterval = errors.New("interval: points are not all in a common subinterval")
)

// Interval is a closed interval [Lo, Hi]; Lo == Hi is a single point.
type Interval struct {
	Lo, Hi *big.Rat
}

// IsPoint reports whether the interval is degenerate.
func (i Interval) IsPoint() bool { return i.Lo.Cmp(i.Hi) == 0 }

// Contains reports whether Lo <= y <= Hi.
func (i Interval) Contains(y *big.Rat) bool {
	return i.Lo.Cmp(y) <= 0 && y.Cmp(i.Hi) <= 0
}

// Equal compares endpoints exactly.
func (i Interval) Equal(o Interval) bool {
	return i.Lo.Cmp(o.Lo) == 0 && i.Hi.Cmp(o.Hi) == 0
}

// String renders "[u, v]" or "[y]".
func (i Interval) String() string {
	if i.IsPoint() {
		return fmt.Sprintf("[%s]", i.Lo.RatString())
	}

	return fmt.Sprintf("[%s, %s]", i.Lo.RatString(), i.Hi.RatString())
}

// Partitioned is a closed interval with sorted break points.
type Partitioned struct {
	points []*big.Rat
}

// New builds a Partitioned from strictly increasing break points.
// The points are copied.
func New(points []*big.Rat) (*Partitioned, error) {
	if len(points) == 0 {
		return nil, ErrEmpty
	}
	cp := make([]*big.Rat, len(points))
	for i, p := range points {
		if i > 0 && points[i-1].Cmp(p) >= 0 {
			return nil, errors.Wrapf(ErrUnsorted, "at index %d", i)
		}
		cp[i] = new(big.Rat).Set(p)
	}

	return &Partitioned{points: cp}, nil
}

// Ints is a convenience constructor from integer break points.
func Ints(points ...int64) (*Partitioned, error) {
	rs := make([]*big.Rat, len(points))
	for i, p := range points {
		rs[i] = new(big.Rat).SetInt64(p)
	}

	return New(rs)
}

// Points returns a copy of the break points.
func (p *Partitioned) Points() []*big.Rat {
	out := make([]*big.Rat, len(p.points))
	for i, x := range p.points {
		out[i] = new(big.Rat).Set(x)
	}

	return out
}

// Len returns the number of break points.
func (p *Partitioned) Len() int { return len(p.points) }

// At returns a copy of break point i.
func (p *Partitioned) At(i int) *big.Rat { return new(big.Rat).Set(p.points[i]) }

// Contains reports whether a <= y <= b.
func (p *Partitioned) Contains(y *big.Rat) bool {
	return p.points[0].Cmp(y) <= 0 && y.Cmp(p.points[len(p.points)-1]) <= 0
}

// Index returns the position of y among the break points, or -1.
func (p *Partitioned) Index(y *big.Rat) int {
	i := p.search(y)
	if i < len(p.points) && p.points[i].Cmp(y) == 0 {
		return i
	}

	return -1
}

// search returns the first index whose point is >= y.
func (p *Partitioned) search(y *big.Rat) int {
	return sort.Search(len(p.points), func(i int) bool { return p.points[i].Cmp(y) >= 0 })
}

// Subinterval returns [y] when y is a break point, otherwise the [u, v]
// between the neighboring break points.
func (p *Partitioned) Subinterval(y *big.Rat) (Interval, error) {
	if !p.Contains(y) {
		return Interval{}, errors.Wrapf(ErrOutside, "%s", y.RatString())
	}
	i := p.search(y)
	if p.points[i].Cmp(y) == 0 {
		return Interval{Lo: p.At(i), Hi: p.At(i)}, nil
	}

	return Interval{Lo: p.At(i - 1), Hi: p.At(i)}, nil
}

// CommonSubinterval returns the single subinterval containing every one of
// ys. Two break points with nothing between them give the proper interval
// they bound; break points that are endpoints of the one proper interval
// involved are absorbed by it.
func (p *Partitioned) CommonSubinterval(ys []*big.Rat) (Interval, error) {
	// 1) Distinct subintervals of the points
	var found []Interval
	for _, y := range ys {
		iv, err := p.Subinterval(y)
		if err != nil {
			return Interval{}, err
		}
		dup := false
		for _, f := range found {
			if f.Equal(iv) {
				dup = true
				break
			}
		}
		if !dup {
			found = append(found, iv)
		}
	}
	if len(found) == 1 {
		return found[0], nil
	}

	// 2) Split into proper intervals and singletons
	var proper []Interval
	var singles []*big.Rat
	for _, f := range found {
		if f.IsPoint() {
			singles = append(singles, f.Lo)
		} else {
			proper = append(proper, f)
		}
	}

	switch len(proper) {
	case 1:
		ok := true
		for _, s := range singles {
			ok = ok && proper[0].Contains(s)
		}
		if ok {
			return proper[0], nil
		}
	case 0:
		if len(singles) == 2 {
			a, b := singles[0], singles[1]
			if a.Cmp(b) > 0 {
				a, b = b, a
			}
			// Adjacent break points bound a subinterval.
			if p.search(b)-p.search(a) == 1 {
				return Interval{Lo: a, Hi: b}, nil
			}
		}
	}

	return Interval{}, errors.Wrapf(ErrNoCommonSubinterval, "%s", ratList(ys))
}

// String renders the break points as "[x0, x1, ...]".
func (p *Partitioned) String() string { return ratList(p.points) }

func ratList(rs []*big.Rat) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = r.RatString()
	}

	return "[" + strings.Join(parts, ", ") + "]"
}
