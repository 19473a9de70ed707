// SPDX-License-Identifier: MIT
package triangulation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/foliar/triangulation"
)

func TestLinkVertexIndex(t *testing.T) {
	for _, label := range []int{1, -1, 2, -2, 7, -9} {
		i := triangulation.LinkVertexIndex(label)
		assert.GreaterOrEqual(t, i, 0)
		assert.Equal(t, label, triangulation.LinkVertexLabel(i))
	}
	assert.Equal(t, 0, triangulation.LinkVertexIndex(1))
	assert.Equal(t, 1, triangulation.LinkVertexIndex(-1))
}

func TestLink_M004Torus(t *testing.T) {
	c := decode(t, sigM004)
	l := c.Link()
	assert.Len(t, l.Triangles, 8)
	require.Len(t, l.Edges, 12)
	for _, e := range l.Edges {
		assert.NotEqual(t, triangulation.Boundary, e.Right)
	}

	g, err := l.Graph()
	require.NoError(t, err)
	assert.Equal(t, 4, g.VertexCount())
	// χ = V - E + F of the cusp torus.
	assert.Equal(t, 0, g.VertexCount()-len(l.Edges)+len(l.Triangles))

	basis, err := l.HomologyBasis()
	require.NoError(t, err)
	require.Len(t, basis, 2)
	for _, cyc := range basis {
		// Every basis element is a cycle: its boundary vanishes.
		bd := make(map[int]int)
		for i, x := range cyc {
			bd[l.Edges[i].Head] += x
			bd[l.Edges[i].Tail] -= x
		}
		for v, x := range bd {
			assert.Zero(t, x, "vertex %d", v)
		}
	}
	assert.NotEqual(t, basis[0], basis[1])
}

func TestLink_SphereHasNoHomology(t *testing.T) {
	c := decode(t, sigClosed)
	l := c.Link()
	assert.Len(t, l.Edges, 54)
	basis, err := l.HomologyBasis()
	require.NoError(t, err)
	assert.Empty(t, basis)
}

func TestLink_Disconnected(t *testing.T) {
	c := decode(t, sigTwoVtx)
	_, err := c.Link().HomologyBasis()
	assert.ErrorIs(t, err, triangulation.ErrLinkNotConnected)
}

func TestLink_Boundary(t *testing.T) {
	bnd := triangulation.Boundary
	c, err := triangulation.New([][4]int{{bnd, bnd, bnd, bnd}}, make([][4]triangulation.Perm, 1))
	require.NoError(t, err)
	l := c.Link()
	assert.Len(t, l.Edges, 12)
	_, err = l.HomologyBasis()
	assert.Error(t, err)
}
