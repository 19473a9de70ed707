package dfs

import (
	"sort"

	"github.com/katalvlaran/foliar/core"
)

// StronglyConnectedComponents returns the strongly connected components of
// the directed graph g. Each component is sorted ascending; components are
// ordered by their least vertex.
func StronglyConnectedComponents(g *core.Graph) ([][]int, error) {
	// 1) Validate input
	if g == nil {
		return nil, ErrGraphNil
	}
	if !g.Directed() {
		return nil, ErrGraphUndirected
	}

	// 2) Tarjan state
	index := make(map[int]int)
	low := make(map[int]int)
	onStack := make(map[int]bool)
	var stack []int
	var comps [][]int
	counter := 0

	push := func(v int) (frame, error) {
		index[v], low[v] = counter, counter
		counter++
		stack = append(stack, v)
		onStack[v] = true
		nbrs, err := g.NeighborIDs(v)

		return frame{v: v, nbrs: nbrs}, err
	}

	// 3) Iterative DFS from each unvisited root, in ascending order
	for _, root := range g.Vertices() {
		if _, seen := index[root]; seen {
			continue
		}
		f, err := push(root)
		if err != nil {
			return nil, err
		}
		calls := []frame{f}
		for len(calls) > 0 {
			top := &calls[len(calls)-1]
			if top.next < len(top.nbrs) {
				w := top.nbrs[top.next]
				top.next++
				if _, seen := index[w]; !seen {
					nf, err := push(w)
					if err != nil {
						return nil, err
					}
					calls = append(calls, nf)
				} else if onStack[w] && index[w] < low[top.v] {
					low[top.v] = index[w]
				}
				continue
			}

			// 4) All neighbors done: maybe pop a component, then return to caller
			v := top.v
			if low[v] == index[v] {
				var comp []int
				for {
					w := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[w] = false
					comp = append(comp, w)
					if w == v {
						break
					}
				}
				sort.Ints(comp)
				comps = append(comps, comp)
			}
			calls = calls[:len(calls)-1]
			if len(calls) > 0 {
				parent := calls[len(calls)-1].v
				if low[v] < low[parent] {
					low[parent] = low[v]
				}
			}
		}
	}

	// 5) Deterministic order
	sort.Slice(comps, func(i, j int) bool { return comps[i][0] < comps[j][0] })

	return comps, nil
}

// IsStronglyConnected reports whether g has exactly one strongly connected
// component. An empty graph is not strongly connected.
func IsStronglyConnected(g *core.Graph) (bool, error) {
	comps, err := StronglyConnectedComponents(g)
	if err != nil {
		return false, err
	}

	return len(comps) == 1, nil
}
