// Package interval provides PartitionedInterval: a closed rational interval
// [a, b] cut at sorted break points a = x₀ < x₁ < … < xₙ = b.
//
// A query point either is a break point, in which case its subinterval is
// the degenerate [y], or lies strictly between two consecutive break points
// u < y < v and has subinterval [u, v]. CommonSubinterval decides whether a
// whole set of points fits in a single subinterval and returns it.
//
// All arithmetic is exact over math/big.Rat.
package interval
