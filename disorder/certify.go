package disorder

import (
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/katalvlaran/foliar/cayley"
	"github.com/katalvlaran/foliar/group"
	"github.com/katalvlaran/foliar/metrics"
)

// DefaultDensity is the fraction of a half ball at which a branch is
// treated as orderable.
const DefaultDensity = 0.9

// ErrBadDensity indicates a density outside (0, 1].
var ErrBadDensity = errors.New("disorder: density must be in (0, 1]")

// Option configures a Certifier.
type Option func(*Certifier)

// WithDensity sets the abandon threshold as a fraction of |ball|/2.
func WithDensity(d float64) Option { return func(c *Certifier) { c.density = d } }

// WithTracking records factorizations of 1, which Certify needs to emit a
// proof.
func WithTracking() Option { return func(c *Certifier) { c.track = true } }

// WithLogger logs the search tree at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(c *Certifier) {
		if l != nil {
			c.log = l
		}
	}
}

// WithMetrics counts saturations, search nodes and contradictions.
func WithMetrics(m *metrics.Metrics) Option { return func(c *Certifier) { c.metrics = m } }

// Leaf is one contradiction: the generator words chosen along the branch
// and the factorization of 1 into them.
type Leaf struct {
	Path []string
	Word []string
}

// Certifier runs the positive-cone search in one Cayley ball.
type Certifier struct {
	ball    *cayley.Ball
	density float64
	track   bool
	log     *zap.Logger
	metrics *metrics.Metrics
}

// NewCertifier prepares a search in ball.
func NewCertifier(ball *cayley.Ball, opts ...Option) (*Certifier, error) {
	c := &Certifier{ball: ball, density: DefaultDensity, log: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	if c.density <= 0 || c.density > 1 {
		return nil, errors.Wrapf(ErrBadDensity, "got %v", c.density)
	}

	return c, nil
}

// Run searches for a left-order whose positive cone contains the first
// generator. It reports whether the group was shown non-orderable and, in
// that case, the leaves of the refutation tree.
func (c *Certifier) Run() (bool, []Leaf, error) {
	a, ok, err := c.ball.Lookup(c.ball.Group().Generators()[0])
	if err != nil {
		return false, nil, err
	}
	if !ok {
		return false, nil, errors.AssertionFailedf("disorder: generator outside a ball of radius %d", c.ball.Radius())
	}
	c.log.Debug("ball", zap.Int("elements", c.ball.Len()), zap.Int("depth", 0))
	c.log.Debug("adding", zap.String("word", a.Word), zap.Int("depth", 0))

	p := NewMonoid(c.ball, []group.Element{a}, c.track)
	c.metrics.Saturation()
	ordered, leaves := c.search(p, 1)
	if ordered {
		return false, nil, nil
	}

	return true, prefix(a.Word, leaves), nil
}

// search reports whether the branch with cone p might extend to an order.
func (c *Certifier) search(p *Monoid, depth int) (bool, []Leaf) {
	c.metrics.CertifierNode()
	c.log.Debug("monoid", zap.Int("size", p.Len()), zap.Int("depth", depth))
	if p.HasOne() {
		c.metrics.Contradiction()
		c.log.Debug("contradiction", zap.String("word", strings.Join(p.OneWord(), "*")), zap.Int("depth", depth))

		return false, []Leaf{{Word: p.OneWord()}}
	}
	if float64(p.Len()) > c.density*0.5*float64(c.ball.Len()) {
		return true, nil
	}

	for _, pair := range c.ball.Pairs() {
		x, y := pair[0], pair[1]
		if p.Contains(x) || p.Contains(y) {
			continue
		}
		branches := []group.Element{x, y}
		if x.Key() == y.Key() {
			branches = branches[:1]
		}
		var leaves []Leaf
		for _, z := range branches {
			c.log.Debug("adding", zap.String("word", z.Word), zap.Int("depth", depth))
			q := p.Copy()
			q.Saturate(z)
			c.metrics.Saturation()
			ordered, sub := c.search(q, depth+1)
			if ordered {
				return true, nil
			}
			leaves = append(leaves, prefix(z.Word, sub)...)
		}

		return false, leaves
	}

	return true, nil
}

func prefix(word string, leaves []Leaf) []Leaf {
	for i := range leaves {
		leaves[i].Path = append([]string{word}, leaves[i].Path...)
	}

	return leaves
}

// HasNonOrderableGroup reports whether the ball of the given radius
// refutes every left-order of g.
func HasNonOrderableGroup(g *group.Group, radius int, opts ...Option) (bool, error) {
	ok, _, err := run(g, radius, opts)

	return ok, err
}

func run(g *group.Group, radius int, opts []Option) (bool, []Leaf, error) {
	b, err := cayley.Build(g, radius)
	if err != nil {
		return false, nil, err
	}
	c, err := NewCertifier(b, opts...)
	if err != nil {
		return false, nil, err
	}

	return c.Run()
}
