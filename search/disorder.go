package search

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/foliar/disorder"
	"github.com/katalvlaran/foliar/group"
)

// NamedGroup is a finitely generated subgroup of SL(2, C) given by
// generator matrices, with the name, parameters and relators to record in
// a proof.
type NamedGroup struct {
	Name     string
	Args     []int
	Gens     []group.Matrix
	Relators []string
}

func (ng NamedGroup) build(cfg Config) (*group.Group, error) {
	g, err := group.New(ng.Gens, group.WithBits(cfg.Bits))

	return g, errors.Wrapf(err, "search: group %q", ng.Name)
}

// IsNonOrderable grows the Cayley ball of ng from cfg.BallRadius to
// cfg.MaxRadius and returns the first radius that refutes every left-order.
// An *Exhausted error means no radius up to the bound did.
func IsNonOrderable(ctx context.Context, ng NamedGroup, cfg Config) (int, error) {
	g, err := ng.build(cfg)
	if err != nil {
		return 0, err
	}

	return growRadius(ctx, ng, cfg, func(radius int) (bool, error) {
		return disorder.HasNonOrderableGroup(g, radius, cfg.disorderOptions()...)
	})
}

// CertifyNonOrderable is IsNonOrderable with a checkable proof of the
// result.
func CertifyNonOrderable(ctx context.Context, ng NamedGroup, cfg Config) (*disorder.Proof, error) {
	p, _, err := certify(ctx, ng, cfg)

	return p, err
}

func certify(ctx context.Context, ng NamedGroup, cfg Config) (*disorder.Proof, int, error) {
	g, err := ng.build(cfg)
	if err != nil {
		return nil, 0, err
	}
	var p *disorder.Proof
	r, err := growRadius(ctx, ng, cfg, func(radius int) (bool, error) {
		var cerr error
		p, cerr = disorder.Certify(g, radius, cfg.disorderOptions()...)

		return p != nil, cerr
	})
	if err != nil {
		return nil, 0, err
	}
	p.Name = ng.Name
	if ng.Args != nil {
		p.GroupArgs = append([]int(nil), ng.Args...)
	}
	if ng.Relators != nil {
		p.Rels = append([]string(nil), ng.Relators...)
	}

	return p, r, nil
}

func growRadius(ctx context.Context, ng NamedGroup, cfg Config, try func(radius int) (bool, error)) (int, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	log := cfg.logger().With(zap.String("group", ng.Name))
	for r := cfg.BallRadius; r <= cfg.MaxRadius; r++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		ok, err := try(r)
		if err != nil {
			return 0, err
		}
		if ok {
			log.Info("not left-orderable", zap.Int("radius", r))

			return r, nil
		}
		if r < cfg.MaxRadius {
			cfg.Metrics.Retry(string(ReasonBallRadius))
			log.Debug("ball too small", zap.Int("radius", r))
		}
	}
	retry := cfg
	retry.BallRadius = cfg.MaxRadius + 1
	retry.MaxRadius = cfg.MaxRadius + 2

	return 0, exhausted(ReasonBallRadius, retry, "no contradiction in the ball; try raising max_radius")
}

// BatchResult is the outcome for one group of a batch. Exhausted is set
// when no radius up to the bound refuted orderability; the group may still
// be non-orderable.
type BatchResult struct {
	Name      string          `json:"name"`
	Radius    int             `json:"radius,omitempty"`
	Proof     *disorder.Proof `json:"proof,omitempty"`
	Exhausted bool            `json:"exhausted,omitempty"`
}

// NonOrderable reports whether the group was shown not to be left-orderable.
func (r BatchResult) NonOrderable() bool { return r.Radius > 0 }

// CertifyNonOrderableBatch runs CertifyNonOrderable over groups with at
// most cfg.Workers in flight, or IsNonOrderable when cfg.Track is off.
// Results are in input order. The first hard error cancels the rest.
func CertifyNonOrderableBatch(ctx context.Context, groups []NamedGroup, cfg Config) ([]BatchResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	out := make([]BatchResult, len(groups))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.Workers)
	for i, ng := range groups {
		eg.Go(func() error {
			res := BatchResult{Name: ng.Name}
			var err error
			if cfg.Track {
				res.Proof, res.Radius, err = certify(ctx, ng, cfg)
			} else {
				res.Radius, err = IsNonOrderable(ctx, ng, cfg)
			}
			var ex *Exhausted
			if errors.As(err, &ex) {
				res.Exhausted, err = true, nil
			}
			if err != nil {
				return err
			}
			out[i] = res

			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
