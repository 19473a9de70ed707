package triangulation

// Perm is a permutation of {0,1,2,3}; Perm[i] is the image of i.
type Perm [4]int

// IdentityPerm maps every vertex to itself.
var IdentityPerm = Perm{0, 1, 2, 3}

// VerticesOfFace lists the vertices of face f in the cyclic order induced by
// the standard orientation of the tetrahedron.
var VerticesOfFace = [4][3]int{
	{1, 3, 2},
	{0, 2, 3},
	{0, 3, 1},
	{0, 1, 2},
}

// s4 lists S₄ in lexicographic order, the indexing used by isomorphism
// signatures.
var s4 = func() [24]Perm {
	var out [24]Perm
	k := 0
	for a := 0; a < 4; a++ {
		for b := 0; b < 4; b++ {
			for c := 0; c < 4; c++ {
				if b == a || c == a || c == b {
					continue
				}
				out[k] = Perm{a, b, c, 6 - a - b - c}
				k++
			}
		}
	}

	return out
}()

// Valid reports whether p is a bijection of {0,1,2,3}.
func (p Perm) Valid() bool {
	var seen [4]bool
	for _, x := range p {
		if x < 0 || x > 3 || seen[x] {
			return false
		}
		seen[x] = true
	}

	return true
}

// Inverse returns p⁻¹.
func (p Perm) Inverse() Perm {
	var q Perm
	for i, x := range p {
		q[x] = i
	}

	return q
}

// Odd reports whether p is an odd permutation. Gluings of an oriented
// triangulation are odd.
func (p Perm) Odd() bool {
	n := 0
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			if p[i] > p[j] {
				n++
			}
		}
	}

	return n%2 == 1
}

// otherTwo returns the two vertices of {0,1,2,3} \ {a, b} in ascending order.
func otherTwo(a, b int) (int, int) {
	out := [2]int{}
	k := 0
	for x := 0; x < 4; x++ {
		if x != a && x != b {
			out[k] = x
			k++
		}
	}

	return out[0], out[1]
}
