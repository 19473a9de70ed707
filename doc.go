// Package foliar searches for taut foliations, left-orders and L-space
// certificates of 3-manifolds.
//
// A rational homology sphere that is not an L-space is expected to carry a
// co-orientable taut foliation and to have a left-orderable fundamental group.
// foliar attacks each of the three properties computationally:
//
//   - taut foliations come from acyclic edge orientations of a triangulation,
//     found with a SAT solver (packages orient and sat);
//   - non-left-orderability is certified by growing a ball in the Cayley graph
//     of a matrix representation until every sign choice is contradictory
//     (packages group, cayley and disorder);
//   - L-spaces are certified by drilling to Floer-simple cusped manifolds and
//     filling back along slopes outside the non-L-space interval computed from
//     the Turaev torsion (packages torsion and search).
//
// Layout:
//
//	slope/          slopes, multicurves and slope sets on P¹(Q)
//	interval/       rigorous real intervals
//	abelian/        Laurent polynomials and abelianizations of presentations
//	matrix/         integer matrices and Smith normal form
//	core/ bfs/ dfs/ vertex/edge graphs and their traversals
//	triangulation/  isomorphism signatures and face gluings
//	sat/            CNF building on gini or gophersat
//	orient/         edge orientations, foliations and degeneracy slopes
//	torsion/        Turaev torsion and non-L-space cones
//	group/ cayley/  matrix groups and their Cayley balls
//	disorder/       non-orderability certifier and its proofs
//	search/         search drivers with retry and census lookup
//	config/ logging/ metrics/  ambient stack
//	cmd/foliar      the command line
//
//	go install github.com/katalvlaran/foliar/cmd/foliar@latest
package foliar
