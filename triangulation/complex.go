package triangulation

import (
	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/foliar/matrix"
)

// Sentinel errors for complex construction and queries.
var (
	// ErrEmpty indicates a complex with no tetrahedra.
	ErrEmpty = errors.New("triangulation: no tetrahedra")

	// ErrBadPerm indicates a gluing that is not a permutation of {0,1,2,3}.
	ErrBadPerm = errors.New("triangulation: gluing is not a permutation")

	// ErrBadGluing indicates face gluings that are not mutually inverse.
	ErrBadGluing = errors.New("triangulation: inconsistent face gluing")

	// ErrInvalid indicates an edge identified with itself in reverse.
	ErrInvalid = errors.New("triangulation: edge identified with its reverse")

	// ErrHasBoundary indicates a query that needs every face glued.
	ErrHasBoundary = errors.New("triangulation: complex has boundary faces")

	// ErrVertexOutOfRange indicates a vertex class index out of range.
	ErrVertexOutOfRange = errors.New("triangulation: vertex class out of range")
)

// Boundary marks an unglued face in the neighbor table.
const Boundary = -1

// Corner is one appearance of an edge in a tetrahedron: the edge joins
// vertices A < B of Tet, and Sign is +1 iff A -> B is the edge's canonical
// direction.
type Corner struct {
	Tet, A, B, Sign int
}

// Complex is an immutable tetrahedral complex with its derived classes.
type Complex struct {
	nbr  [][4]int
	glue [][4]Perm

	edgeOf [][4][4]int // edge index per ordered vertex pair, -1 on the diagonal
	signOf [][4][4]int // direction of a -> b relative to the edge

	corners [][]Corner
	ends    [][2]int // vertex classes of tail and head per edge

	vclass  [][4]int
	nverts  int
	fclass  [][4]int
	frep    [][2]int // (tet, face) representative per face class
	bdry bool
}

// New builds a complex from its neighbor table and gluings. neighbors[t][f]
// is the tetrahedron glued to face f of t, or Boundary; gluings[t][f] maps
// the vertices of t to those of that neighbor. Both sides of every gluing
// must be given.
func New(neighbors [][4]int, gluings [][4]Perm) (*Complex, error) {
	// 1) Shape and gluing validation
	n := len(neighbors)
	if n == 0 {
		return nil, ErrEmpty
	}
	if len(gluings) != n {
		return nil, errors.Wrapf(ErrBadGluing, "%d neighbor rows, %d gluing rows", n, len(gluings))
	}
	for t := 0; t < n; t++ {
		for f := 0; f < 4; f++ {
			u := neighbors[t][f]
			if u == Boundary {
				continue
			}
			p := gluings[t][f]
			if !p.Valid() {
				return nil, errors.Wrapf(ErrBadPerm, "tet %d face %d: %v", t, f, p)
			}
			if u < 0 || u >= n {
				return nil, errors.Wrapf(ErrBadGluing, "tet %d face %d: neighbor %d", t, f, u)
			}
			g := p[f]
			if neighbors[u][g] != t || gluings[u][g] != p.Inverse() {
				return nil, errors.Wrapf(ErrBadGluing, "tet %d face %d and tet %d face %d", t, f, u, g)
			}
		}
	}

	c := &Complex{
		nbr:  append([][4]int(nil), neighbors...),
		glue: append([][4]Perm(nil), gluings...),
	}

	// 2) Derived classes
	if err := c.buildEdges(); err != nil {
		return nil, err
	}
	c.buildVertices()
	c.buildFaces()
	for e, cs := range c.corners {
		first := cs[0]
		c.ends[e] = [2]int{c.vclass[first.Tet][first.A], c.vclass[first.Tet][first.B]}
		if first.Sign < 0 {
			c.ends[e] = [2]int{c.ends[e][1], c.ends[e][0]}
		}
	}

	return c, nil
}

// buildEdges walks the corners of every edge class around its link,
// fixing the canonical direction by the first corner found.
func (c *Complex) buildEdges() error {
	n := len(c.nbr)
	c.edgeOf = make([][4][4]int, n)
	c.signOf = make([][4][4]int, n)
	for t := range c.edgeOf {
		for a := 0; a < 4; a++ {
			for b := 0; b < 4; b++ {
				c.edgeOf[t][a][b] = -1
			}
		}
	}

	for t := 0; t < n; t++ {
		for a := 0; a < 4; a++ {
			for b := a + 1; b < 4; b++ {
				if c.edgeOf[t][a][b] >= 0 {
					continue
				}
				e := len(c.corners)
				c.record(t, a, b, e, 1)
				stack := []Corner{{Tet: t, A: a, B: b, Sign: 1}}
				var found []Corner
				for len(stack) > 0 {
					cur := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					found = append(found, cur)
					for f := 0; f < 4; f++ {
						if f == cur.A || f == cur.B || c.nbr[cur.Tet][f] == Boundary {
							continue
						}
						u, p := c.nbr[cur.Tet][f], c.glue[cur.Tet][f]
						x, y, s := p[cur.A], p[cur.B], cur.Sign
						if x > y {
							x, y, s = y, x, -s
						}
						if got := c.edgeOf[u][x][y]; got >= 0 {
							if got != e || c.signOf[u][x][y] != s {
								return errors.Wrapf(ErrInvalid, "edge %d", e)
							}
							continue
						}
						c.record(u, x, y, e, s)
						stack = append(stack, Corner{Tet: u, A: x, B: y, Sign: s})
					}
				}
				c.corners = append(c.corners, found)
			}
		}
	}
	c.ends = make([][2]int, len(c.corners))

	return nil
}

func (c *Complex) record(t, a, b, e, s int) {
	c.edgeOf[t][a][b], c.signOf[t][a][b] = e, s
	c.edgeOf[t][b][a], c.signOf[t][b][a] = e, -s
}

func (c *Complex) buildVertices() {
	n := len(c.nbr)
	c.vclass = make([][4]int, n)
	for t := range c.vclass {
		c.vclass[t] = [4]int{-1, -1, -1, -1}
	}
	for t := 0; t < n; t++ {
		for a := 0; a < 4; a++ {
			if c.vclass[t][a] >= 0 {
				continue
			}
			v := c.nverts
			c.nverts++
			c.vclass[t][a] = v
			stack := [][2]int{{t, a}}
			for len(stack) > 0 {
				cur := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				for f := 0; f < 4; f++ {
					u := c.nbr[cur[0]][f]
					if f == cur[1] || u == Boundary {
						continue
					}
					x := c.glue[cur[0]][f][cur[1]]
					if c.vclass[u][x] < 0 {
						c.vclass[u][x] = v
						stack = append(stack, [2]int{u, x})
					}
				}
			}
		}
	}
}

func (c *Complex) buildFaces() {
	n := len(c.nbr)
	c.fclass = make([][4]int, n)
	for t := range c.fclass {
		c.fclass[t] = [4]int{-1, -1, -1, -1}
	}
	for t := 0; t < n; t++ {
		for f := 0; f < 4; f++ {
			if c.fclass[t][f] >= 0 {
				continue
			}
			i := len(c.frep)
			c.frep = append(c.frep, [2]int{t, f})
			c.fclass[t][f] = i
			if u := c.nbr[t][f]; u != Boundary {
				c.fclass[u][c.glue[t][f][f]] = i
			} else {
				c.bdry = true
			}
		}
	}
}

// Size returns the number of tetrahedra.
func (c *Complex) Size() int { return len(c.nbr) }

// NumVertices returns the number of vertex classes.
func (c *Complex) NumVertices() int { return c.nverts }

// NumEdges returns the number of edge classes.
func (c *Complex) NumEdges() int { return len(c.corners) }

// NumFaces returns the number of face classes.
func (c *Complex) NumFaces() int { return len(c.frep) }

// HasBoundary reports whether some face is unglued.
func (c *Complex) HasBoundary() bool { return c.bdry }

// Neighbor returns the tetrahedron glued to face f of t and the gluing,
// or Boundary.
func (c *Complex) Neighbor(t, f int) (int, Perm) { return c.nbr[t][f], c.glue[t][f] }

// Edge returns the edge class joining vertices a != b of tetrahedron t and
// the sign of a -> b against the edge's canonical direction.
func (c *Complex) Edge(t, a, b int) (edge, sign int) {
	return c.edgeOf[t][a][b], c.signOf[t][a][b]
}

// EdgeEnds returns the vertex classes at the tail and head of edge e.
func (c *Complex) EdgeEnds(e int) (tail, head int) { return c.ends[e][0], c.ends[e][1] }

// Corners returns every appearance of edge e in a tetrahedron.
func (c *Complex) Corners(e int) []Corner { return append([]Corner(nil), c.corners[e]...) }

// VertexClass returns the vertex class of vertex a of tetrahedron t.
func (c *Complex) VertexClass(t, a int) int { return c.vclass[t][a] }

// FaceClass returns the face class of face f of tetrahedron t.
func (c *Complex) FaceClass(t, f int) int { return c.fclass[t][f] }

// FaceRep returns a (tetrahedron, face) representing face class i.
func (c *Complex) FaceRep(i int) (tet, face int) { return c.frep[i][0], c.frep[i][1] }

// LinkEulerCharacteristic returns χ of the link of vertex class v. The
// link has one triangle per tetrahedron corner and one vertex per edge end.
func (c *Complex) LinkEulerCharacteristic(v int) (int, error) {
	if v < 0 || v >= c.nverts {
		return 0, errors.Wrapf(ErrVertexOutOfRange, "%d", v)
	}
	if c.bdry {
		return 0, ErrHasBoundary
	}
	tris, verts := 0, 0
	for t := range c.vclass {
		for a := 0; a < 4; a++ {
			if c.vclass[t][a] == v {
				tris++
			}
		}
	}
	for _, ends := range c.ends {
		for _, w := range ends {
			if w == v {
				verts++
			}
		}
	}

	// V - E + F with 2E = 3F.
	return verts - tris/2, nil
}

// LinkGenus returns the genus of the (orientable) link of vertex class v.
func (c *Complex) LinkGenus(v int) (int, error) {
	chi, err := c.LinkEulerCharacteristic(v)
	if err != nil {
		return 0, err
	}

	return (2 - chi) / 2, nil
}

// FaceCycles returns, per face class, the signed edges met going around
// the face: s·(e+1) for edge e traversed in direction s.
func (c *Complex) FaceCycles() [][3]int {
	out := make([][3]int, len(c.frep))
	for i, rep := range c.frep {
		t, vs := rep[0], VerticesOfFace[rep[1]]
		for k := 0; k < 3; k++ {
			e, s := c.Edge(t, vs[k], vs[(k+1)%3])
			out[i][k] = s * (e + 1)
		}
	}

	return out
}

// BoundaryMatrix returns the boundary map C₂ → C₁ as an E × F matrix whose
// column i is the boundary of face class i.
func (c *Complex) BoundaryMatrix() (*matrix.Dense, error) {
	d, err := matrix.NewDense(c.NumEdges(), c.NumFaces())
	if err != nil {
		return nil, err
	}
	for i, cyc := range c.FaceCycles() {
		for _, lit := range cyc {
			e, s := lit-1, int64(1)
			if lit < 0 {
				e, s = -lit-1, -1
			}
			cur, _ := d.At(e, i)
			if err = d.Set(e, i, cur+s); err != nil {
				return nil, err
			}
		}
	}

	return d, nil
}
