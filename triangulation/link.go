package triangulation

import (
	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/foliar/bfs"
	"github.com/katalvlaran/foliar/core"
)

// ErrLinkNotConnected indicates a homology basis asked of a link with more
// than one component.
var ErrLinkNotConnected = errors.New("triangulation: vertex link is not connected")

// LinkEdge is an edge of the vertex link: a pair of glued triangle sides.
// Tail and Head are link vertex labels, Left and Right the link triangles
// on either side (Right is Boundary for an unglued side).
type LinkEdge struct {
	Tail, Head  int
	Left, Right int
}

// Link is the vertex link surface of a complex together with its dual
// cellulation. Link triangle i is the corner Triangles[i] = (tet, vertex);
// link vertices are edge ends labelled +(e+1) at the tail of edge e and
// -(e+1) at its head.
type Link struct {
	Triangles [][2]int
	Edges     []LinkEdge
}

// LinkVertexIndex maps a link vertex label to a dense non-negative index.
func LinkVertexIndex(label int) int {
	if label > 0 {
		return 2 * (label - 1)
	}

	return 2*(-label-1) + 1
}

// LinkVertexLabel inverts LinkVertexIndex.
func LinkVertexLabel(index int) int {
	if index%2 == 0 {
		return index/2 + 1
	}

	return -(index/2 + 1)
}

// Link builds the vertex link of every vertex class. Link edges are numbered
// in order of discovery over (tet, vertex, face); each runs from the lower
// to the higher of the two other vertices in its first side.
func (c *Complex) Link() *Link {
	n := len(c.nbr)
	l := &Link{Triangles: make([][2]int, 0, 4*n)}
	for t := 0; t < n; t++ {
		for v := 0; v < 4; v++ {
			l.Triangles = append(l.Triangles, [2]int{t, v})
		}
	}

	end := func(t, v, w int) int {
		e, s := c.Edge(t, v, w)
		return s * (e + 1)
	}
	// seen[t][v][f]: side of corner (t, v) lying in face f already paired
	seen := make([][4][4]bool, n)
	for t := 0; t < n; t++ {
		for v := 0; v < 4; v++ {
			for f := 0; f < 4; f++ {
				if f == v || seen[t][v][f] {
					continue
				}
				w1, w2 := otherTwo(v, f)
				le := LinkEdge{
					Tail:  end(t, v, w1),
					Head:  end(t, v, w2),
					Left:  4*t + v,
					Right: Boundary,
				}
				seen[t][v][f] = true
				if u, p := c.Neighbor(t, f); u != Boundary {
					le.Right = 4*u + p[v]
					seen[u][p[v]][p[f]] = true
				}
				l.Edges = append(l.Edges, le)
			}
		}
	}

	return l
}

// Graph returns the link 1-skeleton on dense vertex indexes; edge IDs equal
// link edge indexes.
func (l *Link) Graph() (*core.Graph, error) {
	g := core.NewGraph(core.WithLoops(), core.WithMultiEdges())
	for _, e := range l.Edges {
		if _, err := g.AddEdge(LinkVertexIndex(e.Tail), LinkVertexIndex(e.Head)); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// HomologyBasis returns cycles spanning H₁ of a closed connected link, each
// as integer coefficients on the link edges. The basis comes from a
// tree-cotree decomposition: a BFS tree of the link, a BFS tree of the dual
// graph on the remaining edges, and one cycle per leftover edge.
func (l *Link) HomologyBasis() ([][]int, error) {
	// 1) Primal spanning tree
	g, err := l.Graph()
	if err != nil {
		return nil, err
	}
	verts := g.Vertices()
	if len(verts) == 0 {
		return nil, nil
	}
	tree, err := bfs.BFS(g, verts[0])
	if err != nil {
		return nil, err
	}
	if len(tree.Order) != len(verts) {
		return nil, ErrLinkNotConnected
	}
	inTree := make(map[int]bool, len(tree.ParentEdge))
	for _, e := range tree.ParentEdge {
		inTree[e] = true
	}

	// 2) Dual spanning tree avoiding primal tree edges
	dual := core.NewGraph(core.WithLoops(), core.WithMultiEdges())
	var dualToLink []int
	for i, e := range l.Edges {
		if e.Right == Boundary {
			return nil, ErrHasBoundary
		}
		if inTree[i] {
			continue
		}
		if _, err = dual.AddEdge(e.Left, e.Right); err != nil {
			return nil, err
		}
		dualToLink = append(dualToLink, i)
	}
	inCotree := make(map[int]bool)
	if dual.VertexCount() > 0 {
		cotree, err := bfs.BFS(dual, dual.Vertices()[0])
		if err != nil {
			return nil, err
		}
		for _, e := range cotree.ParentEdge {
			inCotree[dualToLink[e]] = true
		}
	}

	// 3) One cycle per leftover edge: the edge closed up through the tree
	toRoot := func(x int, coef []int, sign int) {
		for x != verts[0] {
			i := tree.ParentEdge[x]
			p := tree.Parent[x]
			if LinkVertexIndex(l.Edges[i].Tail) == x && LinkVertexIndex(l.Edges[i].Head) == p {
				coef[i] += sign
			} else {
				coef[i] -= sign
			}
			x = p
		}
	}
	var basis [][]int
	for i, e := range l.Edges {
		if inTree[i] || inCotree[i] {
			continue
		}
		coef := make([]int, len(l.Edges))
		coef[i] = 1
		toRoot(LinkVertexIndex(e.Head), coef, 1)
		toRoot(LinkVertexIndex(e.Tail), coef, -1)
		basis = append(basis, coef)
	}

	return basis, nil
}
