package orient

import (
	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/foliar/bfs"
	"github.com/katalvlaran/foliar/core"
	"github.com/katalvlaran/foliar/dfs"
	"github.com/katalvlaran/foliar/matrix"
	"github.com/katalvlaran/foliar/triangulation"
)

// Sentinel errors for orientation construction.
var (
	// ErrBadSigns indicates a sign vector of the wrong length or with an
	// entry other than ±1.
	ErrBadSigns = errors.New("orient: signs must be ±1, one per edge")

	// ErrCyclic indicates a face whose edges form a directed cycle.
	ErrCyclic = errors.New("orient: some face is a directed cycle")

	// ErrLinkNotSphere indicates a closed orientation on a complex with a
	// vertex link that is not a sphere.
	ErrLinkNotSphere = errors.New("orient: vertex link is not a sphere")

	// ErrNotCusped indicates an ideal orientation on a complex that is not
	// one vertex with torus link.
	ErrNotCusped = errors.New("orient: complex is not one vertex with torus link")

	// ErrNoFoliation indicates a degeneracy slope asked of an orientation
	// that gives no foliation.
	ErrNoFoliation = errors.New("orient: orientation gives no foliation")
)

// Local is the number of edges leaving and entering a vertex of one
// tetrahedron.
type Local struct {
	Out, In int
}

// EdgeOrientation is an acyclic orientation of the edges of a complex.
type EdgeOrientation struct {
	c     *triangulation.Complex
	signs []int
	local [][4]Local
}

// New wraps signs (signs[e] = ±1 against the canonical direction of edge e)
// for a complex whose vertex links are all spheres.
func New(c *triangulation.Complex, signs []int, opts ...Option) (*EdgeOrientation, error) {
	for v := 0; v < c.NumVertices(); v++ {
		g, err := c.LinkGenus(v)
		if err != nil {
			return nil, err
		}
		if g != 0 {
			return nil, errors.Wrapf(ErrLinkNotSphere, "vertex %d has genus %d", v, g)
		}
	}

	return build(c, signs, defaults(opts))
}

func build(c *triangulation.Complex, signs []int, o options) (*EdgeOrientation, error) {
	// 1) Sign vector shape
	if len(signs) != c.NumEdges() {
		return nil, errors.Wrapf(ErrBadSigns, "got %d signs for %d edges", len(signs), c.NumEdges())
	}
	for e, s := range signs {
		if s != 1 && s != -1 {
			return nil, errors.Wrapf(ErrBadSigns, "edge %d sign %d", e, s)
		}
	}
	eo := &EdgeOrientation{c: c, signs: append([]int(nil), signs...)}

	// 2) No face is a directed cycle
	if !o.trusted {
		for i, cyc := range c.FaceCycles() {
			fwd := 0
			for _, lit := range cyc {
				if eo.litTrue(lit) {
					fwd++
				}
			}
			if fwd == 0 || fwd == 3 {
				return nil, errors.Wrapf(ErrCyclic, "face %d", i)
			}
		}
	}

	// 3) Local structure of every tetrahedron corner
	eo.local = make([][4]Local, c.Size())
	for t := range eo.local {
		for a := 0; a < 4; a++ {
			for b := 0; b < 4; b++ {
				if a == b {
					continue
				}
				if eo.points(t, a, b) {
					eo.local[t][a].Out++
				} else {
					eo.local[t][a].In++
				}
			}
		}
	}

	return eo, nil
}

// litTrue reports whether the signed edge literal s·(e+1) runs forwards.
func (eo *EdgeOrientation) litTrue(lit int) bool {
	if lit > 0 {
		return eo.signs[lit-1] > 0
	}

	return eo.signs[-lit-1] < 0
}

// points reports whether the edge between vertices a and b of t is
// oriented a -> b.
func (eo *EdgeOrientation) points(t, a, b int) bool {
	e, s := eo.c.Edge(t, a, b)
	return s*eo.signs[e] > 0
}

// Complex returns the underlying complex.
func (eo *EdgeOrientation) Complex() *triangulation.Complex { return eo.c }

// Signs returns a copy of the sign vector.
func (eo *EdgeOrientation) Signs() []int { return append([]int(nil), eo.signs...) }

// Sign returns the sign of edge e.
func (eo *EdgeOrientation) Sign(e int) int { return eo.signs[e] }

// LocalStructure returns the out- and in-degree of vertex v inside tet t.
func (eo *EdgeOrientation) LocalStructure(t, v int) Local { return eo.local[t][v] }

// IsVeryLong reports whether the edge between vertices a and b of t joins
// the source and the sink of the tetrahedron.
func (eo *EdgeOrientation) IsVeryLong(t, a, b int) bool {
	return extremal(eo.local[t][a]) && extremal(eo.local[t][b])
}

func extremal(l Local) bool { return l.Out == 0 || l.In == 0 }

// IsSinkEdge reports whether edge e is very long in every tetrahedron
// around it.
func (eo *EdgeOrientation) IsSinkEdge(e int) bool {
	for _, cn := range eo.c.Corners(e) {
		if !eo.IsVeryLong(cn.Tet, cn.A, cn.B) {
			return false
		}
	}

	return true
}

// NumSinkEdges counts sink edges.
func (eo *EdgeOrientation) NumSinkEdges() int {
	n := 0
	for e := 0; e < eo.c.NumEdges(); e++ {
		if eo.IsSinkEdge(e) {
			n++
		}
	}

	return n
}

// HasSinkEdge reports whether some edge is a sink edge.
func (eo *EdgeOrientation) HasSinkEdge() bool {
	for e := 0; e < eo.c.NumEdges(); e++ {
		if eo.IsSinkEdge(e) {
			return true
		}
	}

	return false
}

// pairIs reports whether {x, y} equals {p, q} as a set.
func pairIs(x, y, p, q Local) bool {
	return (x == p && y == q) || (x == q && y == p)
}

// NumSutures counts the sutures of the branched surface. Two faces of a
// tetrahedron are joined when the edge they share joins the sink to the
// vertex just below it, or the source to the vertex just above it; sutures
// are the components of the resulting graph on face classes.
func (eo *EdgeOrientation) NumSutures() (int, error) {
	c := eo.c
	g := core.NewGraph(core.WithLoops(), core.WithMultiEdges())
	for t := 0; t < c.Size(); t++ {
		for a := 0; a < 4; a++ {
			for b := a + 1; b < 4; b++ {
				la, lb := eo.local[t][a], eo.local[t][b]
				if !pairIs(la, lb, Local{0, 3}, Local{1, 2}) && !pairIs(la, lb, Local{2, 1}, Local{3, 0}) {
					continue
				}
				x, y := otherTwo(a, b)
				if _, err := g.AddEdge(c.FaceClass(t, x), c.FaceClass(t, y)); err != nil {
					return 0, err
				}
			}
		}
	}
	if g.VertexCount() != c.NumFaces() {
		return 0, errors.AssertionFailedf("orient: sutures meet %d of %d faces", g.VertexCount(), c.NumFaces())
	}
	comps, err := bfs.Components(g)
	if err != nil {
		return 0, err
	}

	return len(comps), nil
}

func otherTwo(a, b int) (int, int) {
	var out [2]int
	k := 0
	for x := 0; x < 4; x++ {
		if x != a && x != b {
			out[k] = x
			k++
		}
	}

	return out[0], out[1]
}

// OneSkeleton returns the 1-skeleton on vertex classes with every edge
// directed by the orientation. Edge IDs equal edge classes.
func (eo *EdgeOrientation) OneSkeleton() (*core.Graph, error) {
	g := core.NewGraph(core.WithDirected(true), core.WithLoops(), core.WithMultiEdges())
	for v := 0; v < eo.c.NumVertices(); v++ {
		if err := g.AddVertex(v); err != nil {
			return nil, err
		}
	}
	for e := 0; e < eo.c.NumEdges(); e++ {
		tail, head := eo.c.EdgeEnds(e)
		if eo.signs[e] < 0 {
			tail, head = head, tail
		}
		if _, err := g.AddEdge(tail, head); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// StronglyConnected reports whether the directed 1-skeleton is strongly
// connected and every vertex carries a directed loop.
func (eo *EdgeOrientation) StronglyConnected() (bool, error) {
	g, err := eo.OneSkeleton()
	if err != nil {
		return false, err
	}
	for _, v := range g.Vertices() {
		if !g.HasLoop(v) {
			return false, nil
		}
	}

	return dfs.IsStronglyConnected(g)
}

// GivesFoliation reports whether the branched surface carries a taut
// foliation: no sink edge, one suture per vertex, strongly connected.
func (eo *EdgeOrientation) GivesFoliation() (bool, error) {
	if eo.HasSinkEdge() {
		return false, nil
	}
	n, err := eo.NumSutures()
	if err != nil {
		return false, err
	}
	if n != eo.c.NumVertices() {
		return false, nil
	}

	return eo.StronglyConnected()
}

// EulerCocycle returns the cellular 1-cocycle representing the Euler class
// of the tangent plane field: on edge e it is (1 - m/2)·sign(e), where m
// counts the tetrahedra around e in which e is mixed.
func (eo *EdgeOrientation) EulerCocycle() ([]int64, error) {
	out := make([]int64, eo.c.NumEdges())
	for e := range out {
		mixed := 0
		for _, cn := range eo.c.Corners(e) {
			la, lb := eo.local[cn.Tet][cn.A], eo.local[cn.Tet][cn.B]
			if pairIs(la, lb, Local{2, 1}, Local{0, 3}) || pairIs(la, lb, Local{3, 0}, Local{1, 2}) {
				mixed++
			}
		}
		if mixed%2 != 0 {
			return nil, errors.AssertionFailedf("orient: edge %d is mixed in %d tetrahedra", e, mixed)
		}
		out[e] = int64(1-mixed/2) * int64(eo.signs[e])
	}

	return out, nil
}

// EulerClassVanishes reports whether the Euler cocycle is a coboundary,
// comparing the cokernel of the boundary map before and after adjoining it.
func (eo *EdgeOrientation) EulerClassVanishes() (bool, error) {
	d, err := eo.c.BoundaryMatrix()
	if err != nil {
		return false, err
	}
	euler, err := eo.EulerCocycle()
	if err != nil {
		return false, err
	}
	withEuler, err := matrix.HConcat(d, euler)
	if err != nil {
		return false, err
	}

	return matrix.SameCokernel(d, withEuler)
}
