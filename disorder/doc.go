// Package disorder certifies that a finitely generated group admits no
// left-order, by a finite search inside a Cayley ball.
//
// A left-order is determined by its positive cone P: a sub-semigroup with
// G = P ⊔ P⁻¹ ⊔ {1}. The certifier starts with P generated by a, closes it
// under products that stay inside the ball (Monoid.Saturate) and, while no
// contradiction 1 ∈ P has appeared, picks the first inverse pair {g, g⁻¹}
// with neither element in P and branches on which one is positive. When
// every branch ends in 1 ∈ P the group is not left-orderable, and the
// branching tree together with the word spelling 1 at each leaf is a Proof
// that VerifyProof can check independently.
//
// A branch whose P grows past Density·|ball|/2 elements is abandoned as
// "probably orderable"; a larger radius may still find a contradiction
// there.
package disorder
