// Package orient enumerates the acyclic edge orientations of a triangulation
// and tests each one for the combinatorics of a taut foliation.
//
// An edge orientation assigns ±1 to every edge class. It is acyclic when no
// triangular face is a directed 3-cycle; then each tetrahedron carries a
// total order on its vertices and a branched surface, and the predicates
// here decide whether that surface carries a foliation:
//
//   - closed complexes (all vertex links spheres): EdgeOrientation with
//     sink edges, sutures, strong connectivity and the Euler class;
//   - once-cusped ideal complexes (one vertex, torus link):
//     IdealEdgeOrientation with link vertex signs, sutures on the dual
//     cellulation of the cusp and the degeneracy slope.
//
// Enumeration encodes "face f is not a directed cycle" as two clauses per
// face class, fixes edge 0 positive and pulls every model from a sat
// Enumerator.
package orient
