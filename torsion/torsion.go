package torsion

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/katalvlaran/foliar/abelian"
	"github.com/katalvlaran/foliar/metrics"
	"github.com/katalvlaran/foliar/slope"
)

// Sentinel errors for torsion input.
var (
	// ErrNotRationalSolidTorus indicates first homology not of rank one.
	ErrNotRationalSolidTorus = errors.New("torsion: homology does not have rank one")

	// ErrDegeneratePeripheral indicates peripheral words that do not
	// generate a rank-one image.
	ErrDegeneratePeripheral = errors.New("torsion: peripheral curves have no infinite-order image")

	// ErrZeroTorsion indicates a vanishing Fox determinant.
	ErrZeroTorsion = errors.New("torsion: Fox determinant vanishes")
)

// Input is a realizable presentation of π₁(M) together with the meridian
// and longitude words of the cusp.
type Input struct {
	Presentation abelian.Presentation `json:"presentation" yaml:"presentation"`
	Peripheral   [2]string            `json:"peripheral" yaml:"peripheral"`
}

// Option configures New.
type Option func(*options)

type options struct {
	log     *zap.Logger
	metrics *metrics.Metrics
}

// WithLogger logs the intermediate normalization at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithMetrics counts torsion computations.
func WithMetrics(m *metrics.Metrics) Option { return func(o *options) { o.metrics = m } }

// Torsion is the normalized Turaev torsion with its peripheral framing.
type Torsion struct {
	ab  *abelian.Abelianization
	rng *abelian.Ring
	tau abelian.Poly

	meridian, longitude         [2]int64
	meridianWord, longitudeWord string
	meridianAb, longitudeAb     abelian.Elem
}

// New computes the torsion of the manifold presented by in.
func New(in Input, opts ...Option) (*Torsion, error) {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	// 1) Abelianization H = T ⊕ Z
	ab, err := abelian.Abelianize(in.Presentation)
	if err != nil {
		return nil, err
	}
	if ab.FreeRank() != 1 {
		return nil, errors.Wrapf(ErrNotRationalSolidTorus, "divisors %v", ab.Divisors())
	}
	tr := &Torsion{ab: ab, rng: ab.GroupRing()}

	// 2) Homologically natural framing
	if err := tr.frame(in.Peripheral); err != nil {
		return nil, err
	}

	// 3) Fox Jacobian with the meridian as extra relator
	rels := append(append([]string(nil), in.Presentation.Relators...), tr.meridianWord)
	fox, err := ab.FoxMatrix(rels)
	if err != nil {
		return nil, err
	}
	det, err := abelian.Det(ab.Laurent(), fox)
	if err != nil {
		return nil, err
	}
	d, err := det.In(tr.rng)
	if err != nil {
		return nil, err
	}
	if d.IsZero() {
		return nil, ErrZeroTorsion
	}

	// 4) Normalize sign, degree and unit
	d = tr.normalize(d)
	o.log.Debug("torsion determinant", zap.Stringer("det", d))

	// 5) Multiply by 1/(1 - m) and 6) cut the stable tail
	tau, err := tr.geometricSeries(d, tr.meridianAb)
	if err != nil {
		return nil, err
	}
	stable := stableDegrees(tau)
	for k := tdegMax(d); k <= tdegMax(tau); k++ {
		if !stable[k] {
			return nil, errors.AssertionFailedf("torsion: degree %d of %v is not stable", k, tau)
		}
	}
	if tr.tau, err = LopOffStableRange(tau); err != nil {
		return nil, err
	}
	if tr.tau.Coef(tr.rng.Identity()) == 0 {
		return nil, errors.AssertionFailedf("torsion: identity not in the support of %v", tr.tau)
	}
	o.metrics.Torsion()
	o.log.Debug("torsion", zap.Stringer("tau", tr.tau))

	return tr, nil
}

// frame fixes the meridian m and longitude l in the basis of the
// peripheral words: l spans the finite-order classes, det(m, l) = 1, and
// m has positive t-degree.
func (tr *Torsion) frame(peripheral [2]string) error {
	alpha, beta := peripheral[0], peripheral[1]
	u, err := tr.ab.Map(alpha)
	if err != nil {
		return err
	}
	v, err := tr.ab.Map(beta)
	if err != nil {
		return err
	}
	du, dv := tdeg(u), tdeg(v)
	if du == 0 && dv == 0 {
		return ErrDegeneratePeripheral
	}
	g := slope.GCD(du, dv)
	l := [2]int64{dv / g, -du / g}
	_, s, t := slope.XGCD(l[0], l[1])
	m := [2]int64{t, -s}
	if tdeg(tr.combine(u, v, m)) < 0 {
		m = [2]int64{-m[0], -m[1]}
		l = [2]int64{-l[0], -l[1]}
	}
	tr.meridian, tr.longitude = m, l
	tr.meridianAb = tr.combine(u, v, m)
	tr.longitudeAb = tr.combine(u, v, l)
	tr.meridianWord = peripheralWord(alpha, beta, m)
	tr.longitudeWord = peripheralWord(alpha, beta, l)

	if mw, err := tr.ab.Map(tr.meridianWord); err != nil || !mw.Equal(tr.meridianAb) {
		return errors.AssertionFailedf("torsion: meridian word %q does not map to %v", tr.meridianWord, tr.meridianAb)
	}
	if tr.rng.Order(tr.meridianAb) != 0 || tr.rng.Order(tr.longitudeAb) == 0 {
		return errors.AssertionFailedf("torsion: framing m=%v l=%v has the wrong orders", m, l)
	}

	return nil
}

func (tr *Torsion) combine(u, v abelian.Elem, c [2]int64) abelian.Elem {
	return tr.rng.MulElem(tr.rng.PowElem(u, c[0]), tr.rng.PowElem(v, c[1]))
}

// peripheralWord spells x copies of alpha followed by y copies of beta,
// inverting for negative counts.
func peripheralWord(alpha, beta string, c [2]int64) string {
	var b strings.Builder
	for i, w := range [2]string{alpha, beta} {
		n := c[i]
		if n < 0 {
			w, n = inverseWord(w), -n
		}
		b.WriteString(strings.Repeat(w, int(n)))
	}

	return b.String()
}

func inverseWord(w string) string {
	b := []byte(w)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z':
			b[i] = c - 'a' + 'A'
		case c >= 'A' && c <= 'Z':
			b[i] = c - 'A' + 'a'
		}
	}

	return string(b)
}

// normalize makes the coefficient sum positive, the least t-degree zero and
// the identity part of the degree-zero terms.
func (tr *Torsion) normalize(d abelian.Poly) abelian.Poly {
	if d.CoefficientSum() < 0 {
		d = d.Neg()
	}
	shift := tr.rng.Identity()
	shift[len(shift)-1] = -tdegMin(d)
	d = d.Mul(tr.rng.Monomial(shift, 1))

	var lowest []abelian.Elem
	hasOne := false
	for _, e := range d.Support() {
		if tdeg(e) != 0 {
			continue
		}
		lowest = append(lowest, e)
		hasOne = hasOne || (e.Equal(tr.rng.Identity()) && d.Coef(e) == 1)
	}
	if !hasOne && len(lowest) > 0 {
		sort.Slice(lowest, func(i, j int) bool { return lexLess(lowest[i], lowest[j]) })
		d = d.Mul(tr.rng.Monomial(tr.rng.InvElem(lowest[0]), 1))
	}

	return d
}

// geometricSeries multiplies elt by 1 + x + x² + … up to enough terms and
// keeps t-degrees at most twice that of elt.
func (tr *Torsion) geometricSeries(elt abelian.Poly, x abelian.Elem) (abelian.Poly, error) {
	n, d := tdegMax(elt), tdeg(x)
	if tdegMin(elt) < 0 || d <= 0 {
		return abelian.Poly{}, errors.AssertionFailedf("torsion: series of %v in %v", elt, x)
	}
	if d > n+1 {
		return abelian.Poly{}, errors.AssertionFailedf("torsion: meridian degree %d exceeds %d, product cannot stabilize", d, n+1)
	}
	k := 3*n/d + 2
	series := tr.rng.Zero()
	for i := int64(0); i < k; i++ {
		series = series.Add(tr.rng.Monomial(tr.rng.PowElem(x, i), 1))
	}

	return series.Mul(elt).Filter(func(e abelian.Elem) bool { return tdeg(e) <= 2*n }), nil
}

// torsionSum returns f·t^k, f the sum over the torsion subgroup of r.
func torsionSum(r *abelian.Ring, k int64) abelian.Poly {
	out := r.Zero()
	for _, e := range r.TorsionElements() {
		e[len(e)-1] = k
		out = out.Add(r.Monomial(e, 1))
	}

	return out
}

func stableDegrees(elt abelian.Poly) map[int64]bool {
	out := map[int64]bool{}
	for k, part := range collect(elt) {
		if part.Equal(torsionSum(elt.Ring(), k)) {
			out[k] = true
		}
	}

	return out
}

// StableDegrees returns, in increasing order, the t-degrees k whose part
// of elt is exactly f·t^k.
func StableDegrees(elt abelian.Poly) []int64 {
	var out []int64
	for k := range stableDegrees(elt) {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// LopOffStableRange keeps the terms of elt up to the first degree of its
// final stable run; applying it twice changes nothing.
func LopOffStableRange(elt abelian.Poly) (abelian.Poly, error) {
	d := tdegMax(elt)
	if tdegMin(elt) < 0 {
		return abelian.Poly{}, errors.AssertionFailedf("torsion: negative degree in %v", elt)
	}
	first := int64(0)
	if d != 0 {
		stable := stableDegrees(elt)
		if !stable[d] {
			return abelian.Poly{}, errors.AssertionFailedf("torsion: top degree %d of %v is not stable", d, elt)
		}
		first = -1
		for k := int64(0); k < d; k++ {
			if !stable[k] {
				first = k
			}
		}
		first++
	}

	return elt.Filter(func(e abelian.Elem) bool { return tdeg(e) <= first }), nil
}

func collect(elt abelian.Poly) map[int64]abelian.Poly {
	out := map[int64]abelian.Poly{}
	for _, t := range elt.Terms() {
		k := tdeg(t.Elem)
		part, ok := out[k]
		if !ok {
			part = elt.Ring().Zero()
		}
		out[k] = part.Add(elt.Ring().Monomial(t.Elem, t.Coef))
	}

	return out
}

func tdeg(e abelian.Elem) int64 { return e[len(e)-1] }

func tdegMin(p abelian.Poly) int64 {
	s := p.Support()
	if len(s) == 0 {
		return 0
	}

	return tdeg(s[0])
}

func tdegMax(p abelian.Poly) int64 {
	s := p.Support()
	if len(s) == 0 {
		return 0
	}

	return tdeg(s[len(s)-1])
}

func lexLess(a, b abelian.Elem) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}

	return false
}
