package torsion

import (
	"fmt"
	"math/big"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/foliar/interval"
	"github.com/katalvlaran/foliar/slope"
)

var (
	// ErrLongitudeNotInChart is returned for the one slope the affine chart
	// (1, b) misses.
	ErrLongitudeNotInChart = errors.New("torsion: longitude not in chart")

	// ErrTooFarApart is returned by MinimalInterval for slopes more than one
	// period apart.
	ErrTooFarApart = errors.New("torsion: slopes too far apart")

	// ErrNeedTwoSlopes is returned by NonLSpaceCone for fewer than two
	// distinct L-space slopes.
	ErrNeedTwoSlopes = errors.New("torsion: need two distinct slopes to determine cone")

	// ErrBadFraming is returned when the meridian and longitude are not a
	// basis of Z².
	ErrBadFraming = errors.New("torsion: meridian and longitude are not a basis")

	// ErrBadValue is returned for a D_τ⁺ coordinate with no meridian part.
	ErrBadValue = errors.New("torsion: value must have positive meridian coordinate")

	// ErrParseIota is returned by ParseIotaInverse.
	ErrParseIota = errors.New("torsion: cannot parse IotaInverseDtau")
)

// IotaInverse is the preimage P of D_τ⁺ on the boundary torus. P misses the
// longitude, so it lives in the chart (1, b) of the homological framing,
// where it is periodic with period L, the order of the longitude in H.
type IotaInverse struct {
	period              int64
	meridian, longitude [2]int64
	values              [][2]int64

	// points are the members of P in [0, L]; partition extends them by one
	// period's worth on each side and is nil when P is empty.
	points    []*big.Rat
	partition *interval.Partitioned
}

// FromTorsion builds the preimage of tr's D_τ⁺.
func FromTorsion(tr *Torsion) (*IotaInverse, error) {
	return NewIotaInverse(tr.LongitudeOrder(), tr.Meridian(), tr.Longitude(), tr.DTauPlusValues())
}

// NewIotaInverse builds the preimage from its defining data: the period L,
// the meridian m and longitude l in the default framing, and the
// homological coordinates (x, y) of D_τ⁺.
func NewIotaInverse(period int64, m, l [2]int64, values [][2]int64) (*IotaInverse, error) {
	if period <= 0 {
		return nil, errors.Newf("torsion: period %d is not positive", period)
	}
	if det := m[0]*l[1] - m[1]*l[0]; det != 1 && det != -1 {
		return nil, errors.Wrapf(ErrBadFraming, "m=%v l=%v", m, l)
	}
	d := &IotaInverse{
		period:    period,
		meridian:  m,
		longitude: l,
		values:    append([][2]int64(nil), values...),
	}

	L := new(big.Rat).SetInt64(period)
	var points []*big.Rat
	for _, v := range values {
		if v[0] <= 0 {
			return nil, errors.Wrapf(ErrBadValue, "%v", v)
		}
		step := big.NewRat(period, v[0])
		for p := big.NewRat(v[1], v[0]); p.Cmp(L) <= 0; p = new(big.Rat).Add(p, step) {
			points = append(points, p)
		}
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Cmp(points[j]) < 0 })
	for _, p := range points {
		if n := len(d.points); n == 0 || d.points[n-1].Cmp(p) != 0 {
			d.points = append(d.points, p)
		}
	}
	if len(d.points) == 0 {
		return d, nil
	}

	// Extend by the period so any b in [0, L) has a subinterval.
	P := d.points
	var ext []*big.Rat
	if P[0].Sign() == 0 {
		ext = append([]*big.Rat{new(big.Rat).Sub(P[len(P)-2], L)}, P...)
	} else {
		ext = append([]*big.Rat{new(big.Rat).Sub(P[len(P)-1], L)}, P...)
		ext = append(ext, new(big.Rat).Add(P[0], L))
	}
	part, err := interval.New(ext)
	if err != nil {
		return nil, errors.NewAssertionErrorWithWrappedErrf(err, "torsion: extended points %v", ext)
	}
	d.partition = part

	return d, nil
}

// Period returns L.
func (d *IotaInverse) Period() int64 { return d.period }

// Points returns the members of P in [0, L].
func (d *IotaInverse) Points() []*big.Rat {
	out := make([]*big.Rat, len(d.points))
	for i, p := range d.points {
		out[i] = new(big.Rat).Set(p)
	}

	return out
}

// Partition returns the period-extended break points, or nil when empty.
func (d *IotaInverse) Partition() *interval.Partitioned { return d.partition }

// IsEmpty reports whether D_τ⁺ has no preimage.
func (d *IotaInverse) IsEmpty() bool { return len(d.points) == 0 }

// ToChart returns b such that s is projectively (1, b) in the homological
// framing.
func (d *IotaInverse) ToChart(s [2]int64) (*big.Rat, error) {
	m, l := d.meridian, d.longitude
	h0 := l[1]*s[0] - l[0]*s[1]
	h1 := m[0]*s[1] - m[1]*s[0]
	if h0 == 0 {
		return nil, errors.Wrapf(ErrLongitudeNotInChart, "%v", s)
	}

	return big.NewRat(h1, h0), nil
}

// FromChart returns the slope, in the default framing, of the point (1, b)
// of the homological chart.
func (d *IotaInverse) FromChart(b *big.Rat) (slope.Slope, error) {
	p, q := b.Num().Int64(), b.Denom().Int64()
	m, l := d.meridian, d.longitude
	x, y := m[0]*q+l[0]*p, m[1]*q+l[1]*p
	if slope.GCD(x, y) != 1 {
		return slope.Slope{}, errors.AssertionFailedf("torsion: chart point %s maps to imprimitive (%d, %d)", b.RatString(), x, y)
	}

	return slope.New(x, y), nil
}

// shift returns the multiple of L moving b into [0, L).
func (d *IotaInverse) shift(b *big.Rat) *big.Rat {
	den := new(big.Int).Mul(b.Denom(), big.NewInt(d.period))
	k := new(big.Int).Div(b.Num(), den)

	return new(big.Rat).SetInt(k.Mul(k, big.NewInt(-d.period)))
}

func (d *IotaInverse) contains(x *big.Rat) bool {
	i := sort.Search(len(d.points), func(i int) bool { return d.points[i].Cmp(x) >= 0 })

	return i < len(d.points) && d.points[i].Cmp(x) == 0
}

// Contains reports whether the chart point x lies in P.
func (d *IotaInverse) Contains(x *big.Rat) bool {
	return d.contains(new(big.Rat).Add(x, d.shift(x)))
}

// MinimalInterval returns the closed interval with endpoints in P, no point
// of P inside, containing both slopes x and y, which are given in the
// homological framing.
func (d *IotaInverse) MinimalInterval(x, y [2]int64) (interval.Interval, error) {
	if d.partition == nil {
		return interval.Interval{}, errors.Wrap(interval.ErrEmpty, "torsion: D_tau_plus has no preimage")
	}
	if x[0] == 0 || y[0] == 0 {
		return interval.Interval{}, ErrLongitudeNotInChart
	}
	a, b := big.NewRat(x[1], x[0]), big.NewRat(y[1], y[0])
	if a.Cmp(b) > 0 {
		a, b = b, a
	}
	if new(big.Rat).Sub(b, a).Cmp(new(big.Rat).SetInt64(d.period)) > 0 {
		return interval.Interval{}, errors.Wrapf(ErrTooFarApart, "%v %v", x, y)
	}
	s := d.shift(a)
	iv, err := d.partition.CommonSubinterval([]*big.Rat{
		new(big.Rat).Add(a, s),
		new(big.Rat).Add(b, s),
	})
	if err != nil {
		return interval.Interval{}, err
	}

	return interval.Interval{Lo: new(big.Rat).Sub(iv.Lo, s), Hi: new(big.Rat).Sub(iv.Hi, s)}, nil
}

// PossibleNonLSpaceCones returns the one or two cones that can be the set
// of non-L-space slopes given that s, in the default framing, is an
// L-space slope. With nonL given, only cones containing all of them are
// kept.
func (d *IotaInverse) PossibleNonLSpaceCones(s slope.Slope, nonL ...slope.Slope) ([]slope.Set, error) {
	long := slope.Of(d.longitude)
	if d.IsEmpty() {
		return []slope.Set{slope.SingleSlope(d.longitude[0], d.longitude[1])}, nil
	}
	x, err := d.ToChart(s.Vec())
	if err != nil {
		return nil, err
	}
	shift := d.shift(x)
	x.Add(x, shift)
	P := d.partition
	back := func(p *big.Rat) (slope.Slope, error) {
		return d.FromChart(new(big.Rat).Sub(p, shift))
	}

	var cones []slope.Set
	if i := P.Index(x); i < 0 {
		iv, err := P.Subinterval(x)
		if err != nil {
			return nil, errors.NewAssertionErrorWithWrappedErrf(err, "torsion: chart point %s", x.RatString())
		}
		u, err := back(iv.Lo)
		if err != nil {
			return nil, err
		}
		v, err := back(iv.Hi)
		if err != nil {
			return nil, err
		}
		c := slope.Cone(v, u)
		if c.Contains(s) || !c.Contains(long) {
			return nil, errors.AssertionFailedf("torsion: cone %v misplaces %v or the longitude", c, s)
		}
		cones = []slope.Set{c}
	} else {
		u, err := back(P.At(i - 1))
		if err != nil {
			return nil, err
		}
		v, err := back(P.At(i + 1))
		if err != nil {
			return nil, err
		}
		c0, c1 := slope.Cone(s, u), slope.Cone(v, s)
		if !c0.Contains(long) || !c1.Contains(long) {
			return nil, errors.AssertionFailedf("torsion: cones %v %v miss the longitude", c0, c1)
		}
		cones = []slope.Set{c0, c1}
	}

	if len(nonL) == 0 {
		return cones, nil
	}
	var out []slope.Set
	for _, c := range cones {
		ok := true
		for _, n := range nonL {
			ok = ok && c.Contains(n)
		}
		if ok {
			out = append(out, c)
		}
	}

	return out, nil
}

// NonLSpaceCone returns the cone of non-L-space slopes determined by at
// least two distinct L-space slopes.
func (d *IotaInverse) NonLSpaceCone(lspace []slope.Slope) (slope.Set, error) {
	var distinct []slope.Slope
	seen := map[slope.Slope]bool{}
	for _, s := range lspace {
		if n := slope.New(s.A, s.B); !seen[n] {
			seen[n] = true
			distinct = append(distinct, n)
		}
	}
	if d.IsEmpty() && len(distinct) > 0 {
		return slope.SingleSlope(d.longitude[0], d.longitude[1]), nil
	}
	if len(distinct) < 2 {
		return slope.Set{}, errors.Wrapf(ErrNeedTwoSlopes, "%v", lspace)
	}

	common, err := d.PossibleNonLSpaceCones(distinct[0])
	if err != nil {
		return slope.Set{}, err
	}
	for _, s := range distinct[1:] {
		cones, err := d.PossibleNonLSpaceCones(s)
		if err != nil {
			return slope.Set{}, err
		}
		var keep []slope.Set
		for _, c := range common {
			for _, o := range cones {
				if c.Equal(o) {
					keep = append(keep, c)
					break
				}
			}
		}
		common = keep
	}
	if len(common) != 1 {
		return slope.Set{}, errors.AssertionFailedf("torsion: %d candidate cones for %v", len(common), lspace)
	}

	return common[0], nil
}

// String renders the defining data in the form ParseIotaInverse reads.
func (d *IotaInverse) String() string {
	vals := make([]string, len(d.values))
	for i, v := range d.values {
		vals[i] = fmt.Sprintf("(%d,%d)", v[0], v[1])
	}

	return fmt.Sprintf("IotaInverseDtau(L=%d,m=(%d,%d),l=(%d,%d),values=[%s])",
		d.period, d.meridian[0], d.meridian[1], d.longitude[0], d.longitude[1], strings.Join(vals, ","))
}

var (
	reIota = regexp.MustCompile(`^IotaInverseDtau\(L=(-?\d+),m=\((-?\d+),(-?\d+)\),l=\((-?\d+),(-?\d+)\),values=\[(.*)\]\)$`)
	rePair = regexp.MustCompile(`\((-?\d+),(-?\d+)\)`)
)

// ParseIotaInverse reads the String form back; whitespace is ignored.
func ParseIotaInverse(s string) (*IotaInverse, error) {
	t := strings.Join(strings.Fields(s), "")
	m := reIota.FindStringSubmatch(t)
	if m == nil {
		return nil, errors.Wrapf(ErrParseIota, "%q", s)
	}
	n := make([]int64, 5)
	for i := range n {
		v, err := strconv.ParseInt(m[i+1], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrParseIota, "%q: %v", s, err)
		}
		n[i] = v
	}
	var values [][2]int64
	rest := m[6]
	for _, p := range rePair.FindAllStringSubmatch(rest, -1) {
		x, err := strconv.ParseInt(p[1], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrParseIota, "%q: %v", s, err)
		}
		y, err := strconv.ParseInt(p[2], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrParseIota, "%q: %v", s, err)
		}
		values = append(values, [2]int64{x, y})
	}
	if rePair.ReplaceAllString(rest, "") != strings.Repeat(",", max(len(values)-1, 0)) {
		return nil, errors.Wrapf(ErrParseIota, "%q: values", s)
	}

	return NewIotaInverse(n[0], [2]int64{n[1], n[2]}, [2]int64{n[3], n[4]}, values)
}
