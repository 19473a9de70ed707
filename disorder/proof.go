package disorder

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/foliar/group"
)

// ErrInvalidProof indicates a proof that fails verification.
var ErrInvalidProof = errors.New("disorder: invalid proof")

// Proof is a checkable certificate that a group is not left-orderable.
//
// Each entry of Steps is a pair (edge path from the root, word at the
// leaf), both as generator words joined by ".". The paths form a rooted
// binary tree whose root has one child and whose sibling edges carry
// inverse words, an involution standing alone. Every edge word is
// non-trivial and every leaf word is a product of edge words on its path
// that evaluates to 1.
type Proof struct {
	Name      string      `json:"name"`
	GroupArgs []int       `json:"group_args"`
	Gens      string      `json:"gens"`
	Rels      []string    `json:"rels"`
	Steps     [][2]string `json:"proof"`
}

// Certify runs the certifier with tracking and returns a proof, or nil if
// the ball does not refute orderability.
func Certify(g *group.Group, radius int, opts ...Option) (*Proof, error) {
	ok, leaves, err := run(g, radius, append(opts, WithTracking()))
	if err != nil || !ok {
		return nil, err
	}
	p := &Proof{Gens: strings.Join(g.Generators(), "."), Rels: []string{}, GroupArgs: []int{}}
	for _, l := range leaves {
		p.Steps = append(p.Steps, [2]string{strings.Join(l.Path, "."), strings.Join(l.Word, ".")})
	}

	return p, nil
}

// Marshal encodes p as compact JSON.
func (p *Proof) Marshal() ([]byte, error) {
	b, err := json.Marshal(p)

	return b, errors.Wrap(err, "disorder: encode proof")
}

// ParseProof decodes a JSON proof.
func ParseProof(data []byte) (*Proof, error) {
	var p Proof
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(err, "disorder: decode proof")
	}

	return &p, nil
}

type proofNode struct {
	children map[string]*proofNode
	leaf     bool
}

// VerifyProof checks p against g without rerunning the search.
func VerifyProof(g *group.Group, p *Proof) error {
	if p == nil || len(p.Steps) == 0 {
		return errors.Wrap(ErrInvalidProof, "no leaves")
	}
	if want := strings.Join(g.Generators(), "."); p.Gens != "" && p.Gens != want {
		return errors.Wrapf(ErrInvalidProof, "generators %q, group has %q", p.Gens, want)
	}

	root := &proofNode{children: map[string]*proofNode{}}
	for i, step := range p.Steps {
		path := strings.Split(step[0], ".")
		node := root
		for _, label := range path {
			e, err := g.Element(label)
			if err != nil {
				return errors.Wrapf(ErrInvalidProof, "leaf %d: %v", i, err)
			}
			if label == "" || g.IsOne(e) {
				return errors.Wrapf(ErrInvalidProof, "leaf %d: edge %q is trivial", i, label)
			}
			if node.leaf {
				return errors.Wrapf(ErrInvalidProof, "leaf %d: path passes through a leaf", i)
			}
			next, ok := node.children[label]
			if !ok {
				next = &proofNode{children: map[string]*proofNode{}}
				node.children[label] = next
			}
			node = next
		}
		if node.leaf || len(node.children) > 0 {
			return errors.Wrapf(ErrInvalidProof, "leaf %d: %q is not a leaf", i, step[0])
		}
		node.leaf = true

		onPath := make(map[string]bool, len(path))
		for _, label := range path {
			onPath[label] = true
		}
		m := group.Identity
		for _, f := range strings.Split(step[1], ".") {
			if !onPath[f] {
				return errors.Wrapf(ErrInvalidProof, "leaf %d: factor %q is not on the path", i, f)
			}
			x, err := g.Matrix(f)
			if err != nil {
				return errors.Wrapf(ErrInvalidProof, "leaf %d: %v", i, err)
			}
			m = m.Mul(x)
		}
		if !g.IsOne(g.Wrap(m, step[1])) {
			return errors.Wrapf(ErrInvalidProof, "leaf %d: %q is not 1", i, step[1])
		}
	}

	if len(root.children) != 1 {
		return errors.Wrapf(ErrInvalidProof, "root has %d children", len(root.children))
	}
	for _, child := range root.children {
		if err := checkBranching(g, child); err != nil {
			return err
		}
	}

	return nil
}

// checkBranching requires every inner node to split into a word and its
// inverse, or to continue along a single involution.
func checkBranching(g *group.Group, n *proofNode) error {
	if n.leaf {
		return nil
	}
	var labels []string
	for label, child := range n.children {
		labels = append(labels, label)
		if err := checkBranching(g, child); err != nil {
			return err
		}
	}
	switch len(labels) {
	case 1:
		sq, err := g.Element(labels[0] + labels[0])
		if err != nil || !g.IsOne(sq) {
			return errors.Wrapf(ErrInvalidProof, "%q has no sibling and is not an involution", labels[0])
		}
	case 2:
		if group.InverseWord(labels[0]) != labels[1] {
			return errors.Wrapf(ErrInvalidProof, "siblings %q and %q are not inverse", labels[0], labels[1])
		}
	default:
		return errors.Wrapf(ErrInvalidProof, "inner node has %d children", len(labels))
	}

	return nil
}
