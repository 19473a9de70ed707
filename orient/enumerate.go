package orient

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/foliar/metrics"
	"github.com/katalvlaran/foliar/sat"
	"github.com/katalvlaran/foliar/triangulation"
)

// Option configures enumeration and construction.
type Option func(*options)

type options struct {
	backend    string
	log        *zap.Logger
	metrics    *metrics.Metrics
	peripheral Peripheral
	trusted    bool
}

func defaults(opts []Option) options {
	o := options{log: zap.NewNop(), peripheral: Intrinsic{}}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithBackend selects the SAT backend by name (see sat.NewSolver).
func WithBackend(name string) Option { return func(o *options) { o.backend = name } }

// WithLogger sets the debug logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithMetrics records enumerated orientations and foliations.
func WithMetrics(m *metrics.Metrics) Option { return func(o *options) { o.metrics = m } }

// WithPeripheral sets the provider of the meridian and longitude cocycles
// used by degeneracy slopes. The default is Intrinsic.
func WithPeripheral(p Peripheral) Option {
	return func(o *options) {
		if p != nil {
			o.peripheral = p
		}
	}
}

// KnownAcyclic skips the face-cycle check at construction, for signs that
// came out of Formula.
func KnownAcyclic() Option { return func(o *options) { o.trusted = true } }

// Formula returns the CNF whose models are the acyclic orientations of c
// with edge 0 positive. Variable e+1 is true iff edge e keeps its canonical
// direction.
func Formula(c *triangulation.Complex) *sat.Formula {
	f := sat.NewFormula(c.NumEdges())
	for _, cyc := range c.FaceCycles() {
		f.Add(cyc[0], cyc[1], cyc[2])
		f.Add(-cyc[0], -cyc[1], -cyc[2])
	}
	if c.NumEdges() > 0 {
		f.Add(1)
	}

	return f
}

// Iterator pulls acyclic orientations one at a time.
type Iterator struct {
	e *sat.Enumerator
}

// Orientations starts enumerating the acyclic orientations of c.
func Orientations(c *triangulation.Complex, opts ...Option) (*Iterator, error) {
	o := defaults(opts)
	e, err := sat.NewEnumerator(o.backend, Formula(c))
	if err != nil {
		return nil, err
	}

	return &Iterator{e: e}, nil
}

// Next returns the signs of the next orientation, or ok == false when none
// remain.
func (it *Iterator) Next() (signs []int, ok bool, err error) {
	model, ok, err := it.e.Next()
	if err != nil || !ok {
		return nil, false, err
	}
	signs = make([]int, len(model))
	for i, v := range model {
		signs[i] = -1
		if v {
			signs[i] = 1
		}
	}

	return signs, true, nil
}

// Enumerate returns the signs of every acyclic orientation of c.
func Enumerate(c *triangulation.Complex, opts ...Option) ([][]int, error) {
	it, err := Orientations(c, opts...)
	if err != nil {
		return nil, err
	}
	var out [][]int
	for {
		signs, ok, err := it.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, signs)
	}
}

// Closed wraps every acyclic orientation of a closed complex.
func Closed(c *triangulation.Complex, opts ...Option) ([]*EdgeOrientation, error) {
	o := defaults(opts)
	all, err := Enumerate(c, opts...)
	if err != nil {
		return nil, err
	}
	out := make([]*EdgeOrientation, 0, len(all))
	for _, signs := range all {
		eo, err := New(c, signs, append(opts, KnownAcyclic())...)
		if err != nil {
			return nil, err
		}
		o.metrics.Orientation("closed")
		out = append(out, eo)
	}
	o.log.Debug("closed orientations", zap.Int("tetrahedra", c.Size()), zap.Int("count", len(out)))

	return out, nil
}

// Ideal wraps every acyclic orientation of a once-cusped complex.
func Ideal(c *triangulation.Complex, opts ...Option) ([]*IdealEdgeOrientation, error) {
	o := defaults(opts)
	if err := checkCusped(c); err != nil {
		return nil, err
	}
	all, err := Enumerate(c, opts...)
	if err != nil {
		return nil, err
	}
	out := make([]*IdealEdgeOrientation, 0, len(all))
	for _, signs := range all {
		eo, err := NewIdeal(c, signs, append(opts, KnownAcyclic())...)
		if err != nil {
			return nil, err
		}
		o.metrics.Orientation("ideal")
		out = append(out, eo)
	}
	o.log.Debug("ideal orientations", zap.Int("tetrahedra", c.Size()), zap.Int("count", len(out)))

	return out, nil
}
