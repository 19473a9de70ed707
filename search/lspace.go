package search

import (
	"context"
	"math"
	"sort"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/katalvlaran/foliar/abelian"
	"github.com/katalvlaran/foliar/slope"
	"github.com/katalvlaran/foliar/torsion"
)

// maxRetries bounds how often IsCertifiedLSpace restarts after an
// *Exhausted error.
const maxRetries = 3

// Env bundles the collaborators an L-space search consults besides the
// manifolds themselves. Both fields may be nil: no census, and every
// presentation realizable.
type Env struct {
	Census        Census
	Realizability torsion.RealizabilityChecker
}

type realizable struct{}

func (realizable) IsRealizable(context.Context, abelian.Presentation) (bool, error) { return true, nil }

// side selects which candidate L-space interval of a drilled manifold to
// use when the torsion leaves two.
type side int

const (
	firstInterval side = iota
	secondInterval
	bothIntervals
)

// IsCertifiedLSpace tries to prove that the rational homology sphere m is
// an L-space. A true answer is rigorous; false means no proof was found.
// After maxRetries restarts on exhaustion the last *Exhausted error is
// returned with false.
func IsCertifiedLSpace(ctx context.Context, m ClosedManifold, env Env, cfg Config) (bool, error) {
	if err := cfg.Validate(); err != nil {
		return false, err
	}
	b, err := m.BettiNumber(ctx)
	if err != nil {
		return false, err
	}
	if b != 0 {
		return false, errors.Wrapf(ErrNotQHS, "%s has betti number %d", m.Name(), b)
	}
	if !m.Orientable() {
		return false, errors.Wrap(ErrNotOrientable, m.Name())
	}
	if lspace, known := lookup(ctx, env.Census, m); known {
		cfg.logger().Info("manifold is in the census", zap.String("manifold", m.Name()), zap.Bool("lspace", lspace))

		return lspace, nil
	}
	if env.Realizability == nil {
		env.Realizability = realizable{}
	}

	for attempt := 0; ; attempt++ {
		s := &lspaceSearch{env: env, cfg: cfg, log: cfg.logger(), seen: &visited{}}
		ok, err := s.certify(ctx, m, 0, "", bothIntervals, nil, nil)
		var ex *Exhausted
		if !errors.As(err, &ex) || attempt == maxRetries {
			return ok, err
		}
		cfg.Metrics.Retry(string(ex.Reason))
		s.log.Info("retrying", zap.String("reason", string(ex.Reason)), zap.Int("attempt", attempt+1))
		log, mtr := cfg.Log, cfg.Metrics
		cfg = ex.Retry
		cfg.Log, cfg.Metrics = log, mtr
	}
}

type lspaceSearch struct {
	env  Env
	cfg  Config
	log  *zap.Logger
	seen *visited
}

// certify is one level of the recursion. With which == bothIntervals it
// drills m first; otherwise it reuses the drilled T and its torsion and
// commits to one of the two candidate intervals.
func (s *lspaceSearch) certify(ctx context.Context, m ClosedManifold, iter int, tag string,
	which side, T CuspedManifold, tauT *torsion.Torsion) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	inv, err := m.Invariant(ctx)
	if err != nil {
		return false, err
	}
	s.seen.add(inv)
	if err := s.requireHyperbolic(ctx, m); err != nil {
		return false, err
	}

	if which == bothIntervals {
		s.log.Info("examining", zap.String("tag", tag), zap.String("manifold", m.Name()),
			zap.Float64("volume", inv.Volume), zap.String("homology", inv.Homology))
		if iter > s.cfg.MaxIter {
			s.log.Info("maximal depth reached; try raising max_iter", zap.String("tag", tag))
			s.cfg.Metrics.Retry(string(ReasonMaxIter))

			return false, nil
		}
		n, err := m.DualCurves(ctx, s.cfg.MaxSegments)
		if err != nil {
			return false, err
		}
		curves, lspace, known, err := s.orderCurves(ctx, m, n, tag)
		if err != nil || known {
			return lspace, err
		}
		if T, tauT, err = s.floerSimpleDrilling(ctx, m, curves, tag); err != nil {
			return false, err
		}
		if T.NumCusps() != 1 {
			return false, errors.Wrapf(ErrNotOneCusped, "%s has %d", T.Name(), T.NumCusps())
		}
	}

	D, err := torsion.FromTorsion(tauT)
	if err != nil {
		return false, err
	}
	cones, err := D.PossibleNonLSpaceCones(slope.New(1, 0))
	if err != nil {
		return false, err
	}
	nonL := cones[0]
	if len(cones) == 2 {
		switch which {
		case firstInterval:
		case secondInterval:
			nonL = cones[1]
		default:
			s.log.Info("double interval", zap.String("tag", tag))
			ok, err := s.certify(ctx, m, iter+1, tag+"A", firstInterval, T, tauT)
			if err != nil || ok {
				return ok, err
			}

			return s.certify(ctx, m, iter+1, tag+"B", secondInterval, T, tauT)
		}
	}

	f, err := s.minimalVolumeFillings(ctx, T, nonL, tag)
	if err != nil {
		return false, err
	}
	switch {
	case f.known[1]:
		return f.lspace[0] && f.lspace[1], nil
	case f.known[0]:
		if !f.lspace[0] {
			return false, nil
		}

		return s.certify(ctx, f.fills[1], iter+1, tag+"2", bothIntervals, nil, nil)
	}
	ok, err := s.certify(ctx, f.fills[1], iter+1, tag+"1", bothIntervals, nil, nil)
	if err != nil || !ok {
		return false, err
	}

	return s.certify(ctx, f.fills[0], iter+1, tag+"2", bothIntervals, nil, nil)
}

func (s *lspaceSearch) requireHyperbolic(ctx context.Context, m Manifold) error {
	ok, err := s.hyperbolic(ctx, m)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrap(ErrNotHyperbolic, m.Name())
	}

	return nil
}

func (s *lspaceSearch) hyperbolic(ctx context.Context, m Manifold) (bool, error) {
	return m.Hyperbolic(ctx, s.cfg.OnlyTrueHyperbolic, s.cfg.MinVolume)
}

// orderCurves drills every dual curve past the offset, stopping early if
// a drilling is identified in the census, and returns the hyperbolic ones
// by increasing volume of the drilled manifold.
func (s *lspaceSearch) orderCurves(ctx context.Context, m ClosedManifold, n int, tag string) (
	curves []int, lspace, known bool, err error) {
	type drilled struct {
		curve  int
		volume float64
	}
	var keep []drilled
	for c := s.cfg.CurveOffset; c < n; c++ {
		N, err := m.Drill(ctx, c)
		if err != nil {
			return nil, false, false, err
		}
		if lspace, known := lookup(ctx, s.env.Census, N); known {
			s.log.Info("drilling identified in the census", zap.String("tag", tag),
				zap.String("manifold", m.Name()), zap.Int("curve", c), zap.Bool("lspace", lspace))

			return nil, lspace, true, nil
		}
		ok, err := s.hyperbolic(ctx, N)
		if err != nil {
			return nil, false, false, err
		}
		if !ok {
			continue
		}
		inv, err := N.Invariant(ctx)
		if err != nil {
			return nil, false, false, err
		}
		keep = append(keep, drilled{curve: c, volume: inv.Volume})
	}
	sort.SliceStable(keep, func(i, j int) bool { return keep[i].volume < keep[j].volume })
	for _, d := range keep {
		curves = append(curves, d.curve)
	}

	return curves, false, false, nil
}

// floerSimpleDrilling returns the first drilling, in the given order and
// among the first max_drills, that is hyperbolic, unseen, and has a torsion
// that could be Floer simple.
func (s *lspaceSearch) floerSimpleDrilling(ctx context.Context, m ClosedManifold, curves []int, tag string) (
	CuspedManifold, *torsion.Torsion, error) {
	for i := 0; i < min(s.cfg.MaxDrills, len(curves)); i++ {
		N, err := m.Drill(ctx, curves[i])
		if err != nil {
			return nil, nil, err
		}
		ok, err := s.hyperbolic(ctx, N)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			continue
		}
		inv, err := N.Invariant(ctx)
		if err != nil {
			return nil, nil, err
		}
		if s.seen.contains(inv) {
			continue
		}
		s.log.Info("computing Turaev torsion of drilling", zap.String("tag", tag), zap.String("drilling", N.Name()))
		tau, err := torsion.FromSource(ctx, N, s.env.Realizability,
			torsion.WithLogger(s.log), torsion.WithMetrics(s.cfg.Metrics))
		if err != nil {
			s.log.Debug("torsion failed", zap.String("drilling", N.Name()), zap.Error(err))
			continue
		}
		if tau.CouldBeFloerSimple() {
			s.seen.add(inv)

			return N, tau, nil
		}
	}

	retry := s.cfg
	retry.MaxDrills *= 2
	retry.MaxSegments += 2

	return nil, nil, exhausted(ReasonDrillings, retry,
		"no Floer simple, hyperbolic and unvisited drilling; try raising max_drills")
}

// fillings are the two lowest-volume fillings found, lowest first, with
// the census verdicts of the first two identified ones.
type fillings struct {
	fills  [2]ClosedManifold
	lspace [2]bool
	known  [2]bool
}

func identified(f fillings) int {
	switch {
	case f.known[1]:
		return 2
	case f.known[0]:
		return 1
	}

	return 0
}

// minimalVolumeFillings scans the slopes (h, k), |h|, k <= max_coefficient,
// outside the non-L-space cone for the two hyperbolic unseen fillings of
// least volume. Census-identified fillings rank first.
func (s *lspaceSearch) minimalVolumeFillings(ctx context.Context, T CuspedManifold, nonL slope.Set, tag string) (
	fillings, error) {
	var out fillings
	vols := [2]float64{math.Inf(1), math.Inf(1)}
	C := int64(s.cfg.MaxCoefficient)
	for h := -C; h <= C; h++ {
		for k := int64(0); k <= C; k++ {
			if slope.GCD(h, k) != 1 || (h == -1 && k == 0) {
				continue
			}
			sl := slope.New(h, k)
			if nonL.Contains(sl) {
				continue
			}
			M, err := T.Fill(ctx, sl)
			if err != nil {
				return fillings{}, err
			}
			ok, err := s.hyperbolic(ctx, M)
			if err != nil {
				return fillings{}, err
			}
			if !ok {
				continue
			}
			inv, err := M.Invariant(ctx)
			if err != nil {
				return fillings{}, err
			}
			if s.seen.contains(inv) {
				continue
			}

			vol := inv.Volume
			if n := identified(out); n < 2 {
				if lspace, known := lookup(ctx, s.env.Census, M); known {
					s.log.Info("filling identified in the census", zap.String("tag", tag),
						zap.String("manifold", M.Name()), zap.Stringer("slope", sl), zap.Bool("lspace", lspace))
					out.known[n], out.lspace[n] = true, lspace
					vol = 0.1 * float64(n+1)
				}
			}

			switch {
			case vol < vols[0]:
				vols[1], out.fills[1] = vols[0], out.fills[0]
				vols[0], out.fills[0] = vol, M
			case vol < vols[1]:
				vols[1], out.fills[1] = vol, M
			}
		}
	}
	if out.fills[1] == nil {
		retry := s.cfg
		retry.MaxCoefficient += 8

		return fillings{}, exhausted(ReasonFillings, retry,
			"could not find two fillings in the interval; try raising max_coefficient")
	}

	return out, nil
}
