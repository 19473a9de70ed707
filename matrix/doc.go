// Package matrix provides exact integer linear algebra for the homological
// computations in foliar.
//
// The matrix package provides:
//
//   - Dense: a row-major int64 matrix (zero rows or columns allowed, which
//     is how a presentation without relators is written down).
//   - Mul, Transpose, HConcat: the handful of operations the callers need.
//   - Det: exact determinant by fraction-free (Bareiss) elimination.
//   - SmithNormalForm: D = U·A·V with U, V unimodular, plus the invariant
//     factors and rank. Used for abelianizing presentations and for deciding
//     whether an Euler cocycle is a coboundary.
//
// Integer overflow is not checked; entries stay small for the complexes
// and presentations handled here.
package matrix
