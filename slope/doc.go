// Package slope models unoriented multicurves on a torus and subsets of the
// projective line P¹(Q) of slopes.
//
// What
//
//   - Slope: a normalized integer pair (a, b) with b > 0, or a, b >= 0 when
//     a·b == 0. Algebraic sum (both orientations), geometric intersection
//     number, primitive part, component count, complement via xgcd and the
//     action of a 2×2 integer matrix.
//   - Set: a tagged union over the three shapes a set of non-L-space slopes
//     can take: All, Arc (an open counter-clockwise arc from U to V, the
//     complement of a point when U == V) and Point.
//   - ConeSpanning: the arc of directions spanned by a set of vectors lying
//     in a closed half-plane.
//   - Parse: reads back the String form of a Set.
//
// Arc membership is the orientation test on the ordered triple (U, x, V):
//
//	(u₀x₁ − u₁x₀)(x₀v₁ − x₁v₀)(v₀u₁ − v₁u₀) < 0
//
// which is invariant under x ↦ −x, so it is well defined on slopes.
package slope
