package slope

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	reCone2  = regexp.MustCompile(`^SlopeCone\(\((-?\d+),(-?\d+)\),\((-?\d+),(-?\d+)\)\)$`)
	reCone1  = regexp.MustCompile(`^SlopeCone\(\((-?\d+),(-?\d+)\)\)$`)
	reSingle = regexp.MustCompile(`^SingleSlope\((-?\d+),(-?\d+)\)$`)
	reSlope  = regexp.MustCompile(`^Slope\((-?\d+),(-?\d+)\)$`)
	rePair   = regexp.MustCompile(`^\(?(-?\d+),(-?\d+)\)?$`)
)

// Parse reads a Set from its String form. Whitespace is ignored and
// endpoints are normalized.
func Parse(s string) (Set, error) {
	t := strings.Join(strings.Fields(s), "")
	if t == "AllSlopes()" {
		return AllSlopes(), nil
	}
	if m := reCone2.FindStringSubmatch(t); m != nil {
		n, err := ints(m[1:])
		if err != nil {
			return Set{}, err
		}

		return Cone(New(n[0], n[1]), New(n[2], n[3])), nil
	}
	if m := reCone1.FindStringSubmatch(t); m != nil {
		n, err := ints(m[1:])
		if err != nil {
			return Set{}, err
		}

		return PointComplement(New(n[0], n[1])), nil
	}
	if m := reSingle.FindStringSubmatch(t); m != nil {
		n, err := ints(m[1:])
		if err != nil {
			return Set{}, err
		}

		return SingleSlope(n[0], n[1]), nil
	}

	return Set{}, errors.Wrapf(ErrParse, "%q", s)
}

// ParseSlope reads "Slope(a, b)", "(a, b)" or "a,b".
func ParseSlope(s string) (Slope, error) {
	t := strings.Join(strings.Fields(s), "")
	m := reSlope.FindStringSubmatch(t)
	if m == nil {
		m = rePair.FindStringSubmatch(t)
	}
	if m == nil {
		return Slope{}, errors.Wrapf(ErrParse, "%q", s)
	}
	n, err := ints(m[1:])
	if err != nil {
		return Slope{}, err
	}

	return New(n[0], n[1]), nil
}

func ints(fields []string) ([]int64, error) {
	out := make([]int64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrParse, "%q: %v", f, err)
		}
		out[i] = v
	}

	return out, nil
}
