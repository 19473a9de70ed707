package torsion

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/foliar/abelian"
)

// ErrNotRealizable indicates that no candidate presentation comes from a
// Heegaard splitting.
var ErrNotRealizable = errors.New("torsion: could not find realizable presentation")

// PresentationSource lists candidate presentations of π₁(M), with
// peripheral words, in order of preference: the default one first, then
// those of retriangulations.
type PresentationSource interface {
	Presentations(ctx context.Context) ([]Input, error)
}

// RealizabilityChecker decides whether a presentation comes from a
// Heegaard splitting.
type RealizabilityChecker interface {
	IsRealizable(ctx context.Context, p abelian.Presentation) (bool, error)
}

// Realizable returns the first candidate of src accepted by chk.
func Realizable(ctx context.Context, src PresentationSource, chk RealizabilityChecker) (Input, error) {
	cands, err := src.Presentations(ctx)
	if err != nil {
		return Input{}, err
	}
	for _, in := range cands {
		if err := ctx.Err(); err != nil {
			return Input{}, err
		}
		ok, err := chk.IsRealizable(ctx, in.Presentation)
		if err != nil {
			return Input{}, err
		}
		if ok {
			return in, nil
		}
	}

	return Input{}, errors.Wrapf(ErrNotRealizable, "%d candidates", len(cands))
}

// FromSource computes the torsion of the first realizable candidate.
func FromSource(ctx context.Context, src PresentationSource, chk RealizabilityChecker, opts ...Option) (*Torsion, error) {
	in, err := Realizable(ctx, src, chk)
	if err != nil {
		return nil, err
	}

	return New(in, opts...)
}
