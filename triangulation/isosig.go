package triangulation

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrSignature indicates a malformed isomorphism signature.
var ErrSignature = errors.New("triangulation: malformed isomorphism signature")

// Face actions of an isomorphism signature.
const (
	actBoundary = iota // face left unglued
	actNew             // glued to the next fresh tetrahedron by the identity
	actJoin            // glued to an earlier tetrahedron by an explicit perm
)

// sigValue decodes one base-64 signature character.
func sigValue(ch byte) (int, bool) {
	switch {
	case ch >= 'a' && ch <= 'z':
		return int(ch - 'a'), true
	case ch >= 'A' && ch <= 'Z':
		return int(ch-'A') + 26, true
	case ch >= '0' && ch <= '9':
		return int(ch-'0') + 52, true
	case ch == '+':
		return 62, true
	case ch == '-':
		return 63, true
	}

	return 0, false
}

// sigReader consumes signature characters left to right.
type sigReader struct {
	v   []int
	pos int
}

func (r *sigReader) next() (int, error) {
	if r.pos >= len(r.v) {
		return 0, errors.Wrap(ErrSignature, "truncated")
	}
	r.pos++

	return r.v[r.pos-1], nil
}

// readUint reads a little-endian number of width characters.
func (r *sigReader) readUint(width int) (int, error) {
	out := 0
	for i := 0; i < width; i++ {
		x, err := r.next()
		if err != nil {
			return 0, err
		}
		out |= x << (6 * i)
	}

	return out, nil
}

// Decode builds the complex named by a connected isomorphism signature.
// Anything after the first '_' (peripheral decorations) is ignored.
func Decode(sig string) (*Complex, error) {
	// 1) Characters to values
	sig, _, _ = strings.Cut(sig, "_")
	if sig == "" {
		return nil, errors.Wrap(ErrSignature, "empty")
	}
	r := &sigReader{v: make([]int, len(sig))}
	for i := 0; i < len(sig); i++ {
		x, ok := sigValue(sig[i])
		if !ok {
			return nil, errors.Wrapf(ErrSignature, "bad character %q", sig[i])
		}
		r.v[i] = x
	}

	// 2) Size header: one character, or 63 then a width and the size
	width, n := 1, r.v[0]
	r.pos = 1
	if n == 63 {
		var err error
		if width, err = r.next(); err != nil {
			return nil, err
		}
		if n, err = r.readUint(width); err != nil {
			return nil, err
		}
	}
	if n == 0 {
		return nil, ErrEmpty
	}

	// 3) Face actions, three per character
	var acts []int
	joins := 0
	for faces := 0; faces < 4*n; {
		x, err := r.next()
		if err != nil {
			return nil, err
		}
		for k := 0; k < 3; k++ {
			a := (x >> (2 * k)) & 3
			if faces >= 4*n {
				if a != actBoundary {
					return nil, errors.Wrap(ErrSignature, "nonzero padding action")
				}
				continue
			}
			switch a {
			case actBoundary:
				faces++
			case actNew:
				faces += 2
			case actJoin:
				faces += 2
				joins++
			default:
				return nil, errors.Wrap(ErrSignature, "bad face action")
			}
			acts = append(acts, a)
		}
	}

	// 4) Join destinations, then join permutations
	dests := make([]int, joins)
	for i := range dests {
		d, err := r.readUint(width)
		if err != nil {
			return nil, err
		}
		if d >= n {
			return nil, errors.Wrapf(ErrSignature, "join destination %d", d)
		}
		dests[i] = d
	}
	perms := make([]Perm, joins)
	for i := range perms {
		x, err := r.next()
		if err != nil {
			return nil, err
		}
		if x >= len(s4) {
			return nil, errors.Wrapf(ErrSignature, "permutation index %d", x)
		}
		perms[i] = s4[x]
	}
	if r.pos != len(r.v) {
		return nil, errors.Wrapf(ErrSignature, "%d trailing characters", len(r.v)-r.pos)
	}

	// 5) Replay the actions face by face
	nbr := make([][4]int, n)
	glue := make([][4]Perm, n)
	set := make([][4]bool, n)
	join := func(t, f, u int, p Perm) error {
		g := p[f]
		if set[t][f] || set[u][g] {
			return errors.Wrapf(ErrSignature, "face %d of tet %d glued twice", f, t)
		}
		nbr[t][f], glue[t][f], set[t][f] = u, p, true
		nbr[u][g], glue[u][g], set[u][g] = t, p.Inverse(), true

		return nil
	}
	fresh, ai, ji := 1, 0, 0
	for t := 0; t < n; t++ {
		for f := 0; f < 4; f++ {
			if set[t][f] {
				continue
			}
			if ai >= len(acts) {
				return nil, errors.Wrap(ErrSignature, "too few face actions")
			}
			a := acts[ai]
			ai++
			var err error
			switch a {
			case actBoundary:
				nbr[t][f], set[t][f] = Boundary, true
			case actNew:
				if fresh >= n {
					return nil, errors.Wrap(ErrSignature, "too many tetrahedra")
				}
				err = join(t, f, fresh, IdentityPerm)
				fresh++
			case actJoin:
				err = join(t, f, dests[ji], perms[ji])
				ji++
			}
			if err != nil {
				return nil, err
			}
		}
	}

	return New(nbr, glue)
}
