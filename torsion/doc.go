// Package torsion computes the normalized Turaev torsion of a one-cusped
// rational homology solid torus and the slope data it determines.
//
// Writing H = H₁(M) = T ⊕ Z with t the free generator, the torsion is a
// power series in t over Z[T] whose coefficients are eventually the sum f
// of all elements of T. Torsion stores it as an element of Z[H] truncated
// just after the stable range begins: every higher power t^k implicitly
// has coefficient f.
//
// New works from a realizable presentation (one coming from a Heegaard
// splitting; realizability is decided by the caller) and the two
// peripheral words. IotaInverse then carries the set D_τ⁺ back to the
// boundary torus as a periodic set of points in an affine chart and turns
// L-space slopes into the cones of slopes that cannot be L-space fillings.
package torsion
