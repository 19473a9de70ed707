package torsion

import (
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/foliar/abelian"
)

// ErrNoFreeFactor indicates a ring whose last coordinate is not free.
var ErrNoFreeFactor = errors.New("torsion: ring has no free t coordinate")

// FromSeries wraps an already computed torsion element, lopping off
// its stable range. The framing is the standard one: meridian t with
// homological coordinates (1, 0) and trivial longitude (0, 1).
func FromSeries(tau abelian.Poly) (*Torsion, error) {
	r := tau.Ring()
	if r == nil || r.Dim() == 0 || r.Moduli()[r.Dim()-1] != 0 {
		return nil, ErrNoFreeFactor
	}
	cut, err := LopOffStableRange(tau)
	if err != nil {
		return nil, err
	}
	m := r.Identity()
	m[len(m)-1] = 1

	return &Torsion{
		rng:         r,
		tau:         cut,
		meridian:    [2]int64{1, 0},
		longitude:   [2]int64{0, 1},
		meridianAb:  m,
		longitudeAb: r.Identity(),
	}, nil
}

// Tau returns the truncated torsion element.
func (tr *Torsion) Tau() abelian.Poly { return tr.tau }

// Ring returns Z[H].
func (tr *Torsion) Ring() *abelian.Ring { return tr.rng }

// Meridian returns the meridian in the basis of the peripheral words.
func (tr *Torsion) Meridian() [2]int64 { return tr.meridian }

// Longitude returns the homological longitude in the basis of the
// peripheral words.
func (tr *Torsion) Longitude() [2]int64 { return tr.longitude }

// MeridianWord spells the meridian in the generators.
func (tr *Torsion) MeridianWord() string { return tr.meridianWord }

// LongitudeWord spells the longitude in the generators.
func (tr *Torsion) LongitudeWord() string { return tr.longitudeWord }

// MeridianImage returns the class of the meridian in H.
func (tr *Torsion) MeridianImage() abelian.Elem { return append(abelian.Elem(nil), tr.meridianAb...) }

// LongitudeImage returns the class of the longitude in H, a torsion element.
func (tr *Torsion) LongitudeImage() abelian.Elem {
	return append(abelian.Elem(nil), tr.longitudeAb...)
}

// LongitudeOrder is the order of the longitude class in H.
func (tr *Torsion) LongitudeOrder() int64 { return tr.rng.Order(tr.longitudeAb) }

// CouldBeFloerSimple reports whether every coefficient is 0 or 1, which is
// necessary for M to be Floer simple.
func (tr *Torsion) CouldBeFloerSimple() bool {
	for _, t := range tr.tau.Terms() {
		if t.Coef != 1 {
			return false
		}
	}

	return true
}

// Support returns the group elements with nonzero coefficient.
func (tr *Torsion) Support() []abelian.Elem { return tr.tau.Support() }

// ComplementOfSupport returns the elements of f·(1 + t + … + t^n) missing
// from the support, n the top t-degree.
func (tr *Torsion) ComplementOfSupport() []abelian.Elem {
	n := tdegMax(tr.tau)
	x := tr.rng.Zero()
	for k := int64(0); k <= n; k++ {
		x = x.Add(torsionSum(tr.rng, k))
	}

	return x.Filter(func(e abelian.Elem) bool { return tr.tau.Coef(e) == 0 }).Support()
}

// LowerBoundOnThurston bounds the Thurston norm of the longitude class
// from below by the top t-degree minus one.
func (tr *Torsion) LowerBoundOnThurston() int64 { return tdegMax(tr.tau) - 1 }

// IotaEntry pairs an element of H with homological peripheral coordinates
// (i, j) of a curve m^i·l^j mapping to it.
type IotaEntry struct {
	Elem  abelian.Elem
	Value [2]int64
}

// IotaImage returns the images of m^i·l^j for 0 <= i < n and j below the
// order of the longitude. Entries keep first-seen order; a repeated
// element keeps its last coordinates.
func (tr *Torsion) IotaImage() []IotaEntry {
	n := tdegMax(tr.tau)
	ord := tr.LongitudeOrder()
	var out []IotaEntry
	index := map[string]int{}
	for i := int64(0); i < n; i++ {
		for j := int64(0); j < ord; j++ {
			e := tr.rng.MulElem(tr.rng.PowElem(tr.meridianAb, i), tr.rng.PowElem(tr.longitudeAb, j))
			k := tr.rng.FormatElem(e)
			if at, ok := index[k]; ok {
				out[at].Value = [2]int64{i, j}
				continue
			}
			index[k] = len(out)
			out = append(out, IotaEntry{Elem: e, Value: [2]int64{i, j}})
		}
	}

	return out
}

// DTauPlusPre returns the elements x·y⁻¹ with x outside the support, y in
// it, and x of larger t-degree than y; sorted as in Poly.Support.
func (tr *Torsion) DTauPlusPre() []abelian.Elem {
	acc := tr.rng.Zero()
	for _, x := range tr.ComplementOfSupport() {
		for _, y := range tr.Support() {
			if tdeg(x) > tdeg(y) {
				e := tr.rng.MulElem(x, tr.rng.InvElem(y))
				if acc.Coef(e) == 0 {
					acc = acc.Add(tr.rng.Monomial(e, 1))
				}
			}
		}
	}

	return acc.Support()
}

// DTauPlus restricts IotaImage to the elements of DTauPlusPre.
func (tr *Torsion) DTauPlus() []IotaEntry {
	pre := tr.rng.Zero()
	for _, e := range tr.DTauPlusPre() {
		pre = pre.Add(tr.rng.Monomial(e, 1))
	}
	var out []IotaEntry
	for _, ent := range tr.IotaImage() {
		if pre.Coef(ent.Elem) != 0 {
			out = append(out, ent)
		}
	}

	return out
}

// DTauPlusValues returns the sorted peripheral coordinates of DTauPlus.
func (tr *Torsion) DTauPlusValues() [][2]int64 {
	var out [][2]int64
	for _, ent := range tr.DTauPlus() {
		out = append(out, ent.Value)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}

		return out[i][1] < out[j][1]
	})

	return out
}
