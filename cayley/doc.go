// Package cayley builds the ball of a given radius in the Cayley graph of
// a finitely generated matrix group.
//
// Words are generated breadth-first over the generators and their inverses,
// never cancelling the previous letter, and evaluated in the group. Words
// that evaluate to the same element collapse onto the first one seen. The
// ball also lists its non-trivial elements in inverse pairs (g, g⁻¹), which
// drive the branching of the orderability search.
package cayley
