package orient

import (
	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/foliar/bfs"
	"github.com/katalvlaran/foliar/core"
	"github.com/katalvlaran/foliar/slope"
	"github.com/katalvlaran/foliar/triangulation"
)

// Peripheral supplies the meridian and longitude cocycles of a cusp: for
// each link edge, the algebraic intersection of the curve with the dual
// edge. A suture crossing link edge i with weight wᵢ has slope
// (Σ wᵢ·meridian[i], Σ wᵢ·longitude[i]).
type Peripheral interface {
	Cocycles(l *triangulation.Link) (meridian, longitude []int, err error)
}

// Intrinsic takes the two cycles of the tree-cotree homology basis of the
// link as its peripheral curves.
type Intrinsic struct{}

// Cocycles implements Peripheral.
func (Intrinsic) Cocycles(l *triangulation.Link) ([]int, []int, error) {
	basis, err := l.HomologyBasis()
	if err != nil {
		return nil, nil, err
	}
	if len(basis) != 2 {
		return nil, nil, errors.Wrapf(ErrNotCusped, "link has first Betti number %d", len(basis))
	}

	return basis[0], basis[1], nil
}

// Framed changes the basis of another Peripheral by an integer matrix:
// (m', l') = M·(m, l).
type Framed struct {
	Base Peripheral
	M    [2][2]int64
}

// Cocycles implements Peripheral.
func (f Framed) Cocycles(l *triangulation.Link) ([]int, []int, error) {
	m, lon, err := f.Base.Cocycles(l)
	if err != nil {
		return nil, nil, err
	}
	if det := f.M[0][0]*f.M[1][1] - f.M[0][1]*f.M[1][0]; det != 1 && det != -1 {
		return nil, nil, errors.Newf("orient: framing matrix has determinant %d", det)
	}
	mm, ll := make([]int, len(m)), make([]int, len(m))
	for i := range m {
		mm[i] = int(f.M[0][0])*m[i] + int(f.M[0][1])*lon[i]
		ll[i] = int(f.M[1][0])*m[i] + int(f.M[1][1])*lon[i]
	}

	return mm, ll, nil
}

// Suture is a 1-cycle on the dual cellulation of the cusp: Weights maps a
// link edge index to ±1, the direction the suture crosses it.
type Suture struct {
	Weights map[int]int
}

// IdealEdgeOrientation is an acyclic orientation of a once-cusped ideal
// triangulation, with its sutures on the cusp torus.
type IdealEdgeOrientation struct {
	*EdgeOrientation

	link        *triangulation.Link
	vertexSigns map[int]int // link vertex label -> +1 outgoing, -1 incoming
	sutures     []Suture
	meridian    []int
	longitude   []int
}

func checkCusped(c *triangulation.Complex) error {
	if c.NumVertices() != 1 {
		return errors.Wrapf(ErrNotCusped, "%d vertices", c.NumVertices())
	}
	g, err := c.LinkGenus(0)
	if err != nil {
		return err
	}
	if g != 1 {
		return errors.Wrapf(ErrNotCusped, "link genus %d", g)
	}

	return nil
}

// NewIdeal wraps signs for a complex with one vertex whose link is a torus.
func NewIdeal(c *triangulation.Complex, signs []int, opts ...Option) (*IdealEdgeOrientation, error) {
	if err := checkCusped(c); err != nil {
		return nil, err
	}
	o := defaults(opts)
	eo, err := build(c, signs, o)
	if err != nil {
		return nil, err
	}
	ieo := &IdealEdgeOrientation{EdgeOrientation: eo, link: c.Link()}

	// 1) Link vertex signs: the end of an edge is positive where it leaves
	ieo.vertexSigns = make(map[int]int, 2*c.NumEdges())
	for e := 0; e < c.NumEdges(); e++ {
		for _, label := range []int{e + 1, -(e + 1)} {
			ieo.vertexSigns[label] = -1
			if signs[e]*label > 0 {
				ieo.vertexSigns[label] = 1
			}
		}
	}

	// 2) Sutures and peripheral cocycles
	if err = ieo.buildSutures(); err != nil {
		return nil, err
	}
	if len(ieo.sutures)%2 != 0 {
		return nil, errors.AssertionFailedf("orient: odd number of sutures (%d)", len(ieo.sutures))
	}
	ieo.meridian, ieo.longitude, err = o.peripheral.Cocycles(ieo.link)
	if err != nil {
		return nil, err
	}
	if len(ieo.meridian) != len(ieo.link.Edges) || len(ieo.longitude) != len(ieo.link.Edges) {
		return nil, errors.AssertionFailedf("orient: peripheral cocycles have %d and %d entries for %d link edges",
			len(ieo.meridian), len(ieo.longitude), len(ieo.link.Edges))
	}

	return ieo, nil
}

// buildSutures weights every link edge whose ends have different signs,
// +1 when it runs from its negative end to its positive end, and splits
// the weighted edges into cycles of the dual cellulation.
func (ieo *IdealEdgeOrientation) buildSutures() error {
	dual := core.NewGraph(core.WithLoops(), core.WithMultiEdges())
	weights := make(map[int]int)
	var dualToLink []int
	for i, e := range ieo.link.Edges {
		st, sh := ieo.vertexSigns[e.Tail], ieo.vertexSigns[e.Head]
		if st == sh {
			continue
		}
		weights[i] = 1
		if st > 0 {
			weights[i] = -1
		}
		if _, err := dual.AddEdge(e.Left, e.Right); err != nil {
			return err
		}
		dualToLink = append(dualToLink, i)
	}

	// Each component of the dual graph is one suture; every triangle it
	// meets has exactly two mixed sides.
	comps, err := bfs.Components(dual)
	if err != nil {
		return err
	}
	owner := make(map[int]int)
	for k, comp := range comps {
		for _, tri := range comp {
			owner[tri] = k
		}
	}
	ieo.sutures = make([]Suture, len(comps))
	for k := range ieo.sutures {
		ieo.sutures[k].Weights = make(map[int]int)
	}
	for _, i := range dualToLink {
		ieo.sutures[owner[ieo.link.Edges[i].Left]].Weights[i] = weights[i]
	}

	return nil
}

// Link returns the cusp link surface.
func (ieo *IdealEdgeOrientation) Link() *triangulation.Link { return ieo.link }

// LinkVertexSign returns +1 if the edge end with the given label leaves
// the cusp, -1 if it enters.
func (ieo *IdealEdgeOrientation) LinkVertexSign(label int) int { return ieo.vertexSigns[label] }

// Sutures returns the sutures ordered by their least triangle.
func (ieo *IdealEdgeOrientation) Sutures() []Suture { return ieo.sutures }

// NumSutures returns the number of sutures on the cusp torus.
func (ieo *IdealEdgeOrientation) NumSutures() (int, error) { return len(ieo.sutures), nil }

// SutureSlope returns the (meridian, longitude) coordinates of suture k.
func (ieo *IdealEdgeOrientation) SutureSlope(k int) [2]int64 {
	var out [2]int64
	for i, w := range ieo.sutures[k].Weights {
		out[0] += int64(w * ieo.meridian[i])
		out[1] += int64(w * ieo.longitude[i])
	}

	return out
}

// LinkCompatibleWithFoliation reports whether every suture is essential
// on the cusp torus.
func (ieo *IdealEdgeOrientation) LinkCompatibleWithFoliation() bool {
	for k := range ieo.sutures {
		if ieo.SutureSlope(k) == [2]int64{} {
			return false
		}
	}

	return true
}

// GivesFoliation reports whether the branched surface has no sink edge and
// essential sutures; then every filling except along the degeneracy slope
// carries a co-orientable taut foliation.
func (ieo *IdealEdgeOrientation) GivesFoliation() (bool, error) {
	return !ieo.HasSinkEdge() && ieo.LinkCompatibleWithFoliation(), nil
}

// DegeneracySlope returns the slope of the sutures, normalized like a
// Slope.
func (ieo *IdealEdgeOrientation) DegeneracySlope() (slope.Slope, error) {
	ok, err := ieo.GivesFoliation()
	if err != nil {
		return slope.Slope{}, err
	}
	if !ok || len(ieo.sutures) == 0 {
		return slope.Slope{}, ErrNoFoliation
	}

	return slope.Of(ieo.SutureSlope(0)), nil
}
