package search

import (
	"context"
	"sort"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/katalvlaran/foliar/orient"
	"github.com/katalvlaran/foliar/slope"
	"github.com/katalvlaran/foliar/triangulation"
)

// complexes decodes the triangulations src offers under cfg.RandMax and
// cfg.MaxSize and calls fn on those with one vertex whose link has the
// given genus, until fn returns stop.
func complexes(ctx context.Context, src TriangulationSource, cfg Config, genus int,
	fn func(sig string, c *triangulation.Complex) (stop bool, err error)) error {
	sigs, err := src.Isosigs(ctx, cfg.RandMax, cfg.MaxSize)
	if err != nil {
		return err
	}
	for _, sig := range sigs {
		if err := ctx.Err(); err != nil {
			return err
		}
		c, err := triangulation.Decode(sig)
		if err != nil {
			return errors.Wrapf(err, "search: isosig %q", sig)
		}
		if c.NumVertices() != 1 {
			continue
		}
		g, err := c.LinkGenus(0)
		if err != nil {
			return err
		}
		if g != genus {
			continue
		}
		stop, err := fn(sig, c)
		if err != nil || stop {
			return err
		}
	}

	return nil
}

// eachOrientation feeds the acyclic orientations of a closed complex to fn
// until it returns stop.
func eachOrientation(c *triangulation.Complex, cfg Config, fn func(eo *orient.EdgeOrientation) (bool, error)) (bool, error) {
	it, err := orient.Orientations(c, cfg.orientOptions()...)
	if err != nil {
		return false, err
	}
	for {
		signs, ok, err := it.Next()
		if err != nil || !ok {
			return false, err
		}
		eo, err := orient.New(c, signs, append(cfg.orientOptions(), orient.KnownAcyclic())...)
		if err != nil {
			return false, err
		}
		cfg.Metrics.Orientation("closed")
		if stop, err := fn(eo); err != nil || stop {
			return stop, err
		}
	}
}

// FirstFoliation returns the first edge orientation, over the one-vertex
// triangulations of a closed manifold, that gives a co-orientable taut
// foliation. It returns nil when there is none.
func FirstFoliation(ctx context.Context, src TriangulationSource, cfg Config) (*orient.EdgeOrientation, error) {
	return firstFoliation(ctx, src, cfg, false)
}

// HasTautFoliationWithEulerZero reports whether some edge orientation of
// some triangulation gives a foliation whose Euler class vanishes.
func HasTautFoliationWithEulerZero(ctx context.Context, src TriangulationSource, cfg Config) (bool, error) {
	eo, err := firstFoliation(ctx, src, cfg, true)

	return eo != nil, err
}

func firstFoliation(ctx context.Context, src TriangulationSource, cfg Config, eulerZero bool) (*orient.EdgeOrientation, error) {
	log := cfg.logger()
	var found *orient.EdgeOrientation
	err := complexes(ctx, src, cfg, 0, func(sig string, c *triangulation.Complex) (bool, error) {
		return eachOrientation(c, cfg, func(eo *orient.EdgeOrientation) (bool, error) {
			ok, err := eo.GivesFoliation()
			if err != nil || !ok {
				return false, err
			}
			cfg.Metrics.Foliation("closed")
			if eulerZero {
				if ok, err = eo.EulerClassVanishes(); err != nil || !ok {
					return false, err
				}
			}
			log.Debug("foliation found", zap.String("isosig", sig), zap.Ints("signs", eo.Signs()))
			found = eo

			return true, nil
		})
	})
	if err != nil {
		return nil, err
	}

	return found, nil
}

// DegeneracySlopes collects the degeneracy slopes of every foliar ideal
// orientation over the once-cusped triangulations of src, in slope order
// and without repeats. p fixes the peripheral basis the slopes are read in.
func DegeneracySlopes(ctx context.Context, src TriangulationSource, p orient.Peripheral, cfg Config) ([]slope.Slope, error) {
	seen := make(map[slope.Slope]bool)
	opts := append(cfg.orientOptions(), orient.WithPeripheral(p))
	err := complexes(ctx, src, cfg, 1, func(sig string, c *triangulation.Complex) (bool, error) {
		all, err := orient.Ideal(c, opts...)
		if err != nil {
			return false, err
		}
		for _, ieo := range all {
			s, err := ieo.DegeneracySlope()
			if errors.Is(err, orient.ErrNoFoliation) {
				continue
			}
			if err != nil {
				return false, errors.Wrapf(err, "search: isosig %q", sig)
			}
			cfg.Metrics.Foliation("ideal")
			seen[s] = true
		}

		return false, nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]slope.Slope, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })

	return out, nil
}

// QuickNonOrderable looks among the first maxTriangulations one-vertex
// triangulations of a closed manifold for one without any acyclic edge
// orientation, which proves the fundamental group is not left-orderable.
// It returns that triangulation's isosig.
func QuickNonOrderable(ctx context.Context, src TriangulationSource, maxTriangulations int, cfg Config) (string, bool, error) {
	var (
		witness string
		tried   int
	)
	err := complexes(ctx, src, cfg, 0, func(sig string, c *triangulation.Complex) (bool, error) {
		if tried == maxTriangulations {
			return true, nil
		}
		tried++
		it, err := orient.Orientations(c, cfg.orientOptions()...)
		if err != nil {
			return false, err
		}
		_, ok, err := it.Next()
		if err != nil || ok {
			return false, err
		}
		witness = sig

		return true, nil
	})
	if err != nil {
		return "", false, err
	}
	cfg.logger().Debug("quick non-orderability", zap.Int("tried", tried), zap.String("witness", witness))

	return witness, witness != "", nil
}
