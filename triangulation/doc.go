// Package triangulation models tetrahedral complexes by their face gluings
// and derives the combinatorics every foliar engine consumes.
//
// A Complex is n tetrahedra with vertices 0..3. Face f of a tetrahedron is
// the face opposite vertex f; it is either unglued (boundary) or glued to a
// face of another tetrahedron by a permutation of {0,1,2,3}.
//
// Derived data:
//
//   - vertex, edge and face classes (the simplices of the quotient complex);
//   - for every tetrahedron and ordered vertex pair (a, b) the pair
//     (edge index, sign) where sign is +1 iff a -> b agrees with the
//     canonical direction of the edge;
//   - the Euler characteristic and genus of each vertex link;
//   - the boundary map C₂ → C₁ as an integer matrix;
//   - the vertex link surface with its dual cellulation and an intrinsic
//     basis of its first homology.
//
// Complexes are built from explicit gluings (New) or decoded from an
// isomorphism signature (Decode), the compact string format shared by
// Regina and SnapPy.
//
// Errors:
//
//	ErrEmpty              – no tetrahedra
//	ErrBadPerm            – a gluing is not a permutation
//	ErrBadGluing          – gluings are not mutually inverse
//	ErrInvalid            – an edge is identified with its own reverse
//	ErrSignature          – malformed isomorphism signature
//	ErrVertexOutOfRange   – vertex class index out of range
//	ErrLinkNotConnected   – link homology asked of a disconnected link
package triangulation
