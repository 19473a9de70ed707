package bfs

import (
	"context"
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/foliar/core"
)

type queueItem struct {
	id     int
	depth  int
	parent int // -1 for root
	edge   int // discovering edge, -1 for root
}

// walker encapsulates mutable BFS state.
type walker struct {
	graph   *core.Graph
	opts    Options
	ctx     context.Context
	queue   []queueItem
	visited map[int]bool
	res     *Result
}

// BFS runs breadth-first search on g starting from start.
// Returns ErrGraphNil or ErrStartVertexNotFound for invalid input, the
// context error on cancellation, or the OnVisit error.
func BFS(g *core.Graph, start int, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if !g.HasVertex(start) {
		return nil, ErrStartVertexNotFound
	}

	n := g.VertexCount()
	w := &walker{
		graph:   g,
		opts:    o,
		ctx:     o.Ctx,
		queue:   make([]queueItem, 0, n),
		visited: make(map[int]bool, n),
		res: &Result{
			Order:      make([]int, 0, n),
			Depth:      make(map[int]int, n),
			Parent:     make(map[int]int, n),
			ParentEdge: make(map[int]int, n),
		},
	}
	w.enqueue(start, 0, -1, -1)

	return w.res, w.loop()
}

func (w *walker) enqueue(id, d, parent, edge int) {
	w.visited[id] = true
	w.res.Depth[id] = d
	if parent >= 0 {
		w.res.Parent[id] = parent
		w.res.ParentEdge[id] = edge
	}
	w.queue = append(w.queue, queueItem{id: id, depth: d, parent: parent, edge: edge})
}

func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]
		w.res.Order = append(w.res.Order, item.id)
		if err := w.opts.OnVisit(item.id, item.depth); err != nil {
			return errors.Wrapf(err, "bfs: OnVisit error at %d", item.id)
		}

		// Directed graphs are walked forwards only. Neighbors are taken in
		// ascending order, the lowest edge ID winning among parallel edges.
		inc, err := w.graph.IncidentEdges(item.id)
		if err != nil {
			return err
		}
		sort.SliceStable(inc, func(i, j int) bool {
			return inc[i].Other(item.id) < inc[j].Other(item.id)
		})
		for _, e := range inc {
			if nbr := e.Other(item.id); !w.visited[nbr] {
				w.enqueue(nbr, item.depth+1, item.id, e.ID)
			}
		}
	}

	return nil
}

// Components returns the connected components of g, each sorted ascending,
// listed by their least vertex. Directed graphs yield weak components.
func Components(g *core.Graph) ([][]int, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	und := g
	if g.Directed() {
		// 1) Forget orientation
		und = core.NewGraph(core.WithLoops(), core.WithMultiEdges())
		for _, v := range g.Vertices() {
			_ = und.AddVertex(v)
		}
		for _, e := range g.Edges() {
			if _, err := und.AddEdge(e.From, e.To); err != nil {
				return nil, err
			}
		}
	}

	// 2) Flood-fill from each unseen vertex in ascending order
	seen := make(map[int]bool, und.VertexCount())
	var comps [][]int
	for _, v := range und.Vertices() {
		if seen[v] {
			continue
		}
		res, err := BFS(und, v)
		if err != nil {
			return nil, err
		}
		comp := append([]int(nil), res.Order...)
		for _, u := range comp {
			seen[u] = true
		}
		sort.Ints(comp)
		comps = append(comps, comp)
	}

	return comps, nil
}
