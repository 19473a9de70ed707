// Package group evaluates words in a finitely generated subgroup of
// SL(2, C) given by generator matrices, such as the holonomy of a
// hyperbolic 3-manifold.
//
// Generators are named a, b, c, ... and their inverses A, B, C, ...; a word
// is a string over these letters. Elements are compared through a Key that
// rounds every entry at a fixed number of bits of accuracy, so products
// computed along different words land on the same key.
package group
