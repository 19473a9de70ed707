// Package abelian abelianizes finitely presented groups and does the
// commutative algebra the Turaev torsion needs.
//
// A Presentation names its generators a, b, c, ... with inverses A, B, C.
// Abelianize reads the relator exponent matrix through its Smith normal
// form, giving H = Z/d₁ ⊕ … ⊕ Z/d_k ⊕ Z^r with the torsion coordinates
// first. Elements of H are coordinate vectors (Elem); elements of the
// group ring Z[H] and of the Laurent ring Z[Z^(k+r)] are both Poly values
// over a Ring, the Laurent ring simply having no moduli. Fox derivatives
// and determinants are taken in the Laurent ring and converted once at the
// end.
package abelian
