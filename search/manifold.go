package search

import (
	"context"
	"io"
	"math"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/foliar/slope"
	"github.com/katalvlaran/foliar/torsion"
)

// Sentinel errors for search input.
var (
	// ErrNotQHS indicates a manifold with positive first Betti number.
	ErrNotQHS = errors.New("search: manifold is not a rational homology sphere")

	// ErrNotOrientable indicates a non-orientable manifold.
	ErrNotOrientable = errors.New("search: manifold is not orientable")

	// ErrNotHyperbolic indicates no acceptable hyperbolic structure was found.
	ErrNotHyperbolic = errors.New("search: manifold is not hyperbolic")

	// ErrNotOneCusped indicates a drilling with other than one cusp.
	ErrNotOneCusped = errors.New("search: manifold does not have exactly one cusp")
)

// Invariant tells manifolds apart well enough to avoid revisiting them.
type Invariant struct {
	Volume   float64
	Homology string
}

// Same compares volumes to within 1e-6 and homology exactly.
func (a Invariant) Same(b Invariant) bool {
	return math.Abs(a.Volume-b.Volume) < 1e-6 && a.Homology == b.Homology
}

// Identity is a census identification: the cusped census manifold and
// the filling that produces the identified one.
type Identity struct {
	Name    string
	Filling slope.Slope
}

// TriangulationSource lists isomorphism signatures of triangulations of
// one manifold, smallest first, from at most tries randomizations and
// with at most maxTets tetrahedra.
type TriangulationSource interface {
	Isosigs(ctx context.Context, tries, maxTets int) ([]string, error)
}

// Manifold is what every search needs from a 3-manifold.
type Manifold interface {
	Name() string
	Invariant(ctx context.Context) (Invariant, error)

	// Hyperbolic looks for a hyperbolic structure of volume at least
	// minVolume, geometric only when onlyTrue is set.
	Hyperbolic(ctx context.Context, onlyTrue bool, minVolume float64) (bool, error)

	// Identify returns census identifications, best first.
	Identify(ctx context.Context) ([]Identity, error)
}

// ClosedManifold is a closed orientable 3-manifold.
type ClosedManifold interface {
	Manifold
	TriangulationSource

	BettiNumber(ctx context.Context) (int, error)
	Orientable() bool

	// DualCurves returns the number of dual curves of at most maxSegments
	// segments; Drill takes an index below it.
	DualCurves(ctx context.Context, maxSegments int) (int, error)
	Drill(ctx context.Context, curve int) (CuspedManifold, error)
}

// CuspedManifold is a cusped 3-manifold with its candidate presentations.
type CuspedManifold interface {
	Manifold
	TriangulationSource
	torsion.PresentationSource

	NumCusps() int
	Fill(ctx context.Context, s slope.Slope) (ClosedManifold, error)
}

// Census answers what is known about the fillings of a cusped census
// manifold.
type Census interface {
	Record(ctx context.Context, name string) (CensusRecord, bool, error)
}

// CensusRecord is one row of the census of rational homology solid tori.
// NonLCone holds a slope.Set in its String form, or "None".
type CensusRecord struct {
	Name              string     `yaml:"name"`
	LSpaceFillings    [][2]int64 `yaml:"l_space_fillings"`
	NonLSpaceFillings [][2]int64 `yaml:"non_l_space_fillings"`
	NonLCone          string     `yaml:"non_l_cone"`
	FloerSimple       bool       `yaml:"floer_simple"`
}

func hasSlope(list [][2]int64, s slope.Slope) bool {
	for _, v := range list {
		if slope.Of(v) == s {
			return true
		}
	}

	return false
}

// Verdict reports whether filling along s gives an L-space, and whether
// the record knows.
func (r CensusRecord) Verdict(s slope.Slope) (lspace, known bool) {
	s = slope.New(s.A, s.B)
	if hasSlope(r.LSpaceFillings, s) {
		return true, true
	}
	if hasSlope(r.NonLSpaceFillings, s) {
		return false, true
	}
	if r.NonLCone == "" || r.NonLCone == "None" {
		return false, false
	}
	cone, err := slope.Parse(r.NonLCone)
	if err != nil {
		return false, false
	}
	if cone.Contains(s) {
		return false, true
	}
	if r.FloerSimple {
		return true, true
	}

	return false, false
}

// MemCensus is a Census held in memory, keyed by name.
type MemCensus map[string]CensusRecord

// Record implements Census.
func (c MemCensus) Record(_ context.Context, name string) (CensusRecord, bool, error) {
	r, ok := c[name]

	return r, ok, nil
}

// LoadCensus reads a YAML list of CensusRecord.
func LoadCensus(r io.Reader) (MemCensus, error) {
	var rows []CensusRecord
	if err := yaml.NewDecoder(r).Decode(&rows); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "search: decode census")
	}
	out := make(MemCensus, len(rows))
	for _, row := range rows {
		if row.Name == "" {
			return nil, errors.New("search: census record without a name")
		}
		out[row.Name] = row
	}

	return out, nil
}

// Closed census names that identify a manifold without telling its
// filling.
var uncensused = []string{"ocube", "odod", "oicocl"}

// lookup asks the census about m. Failures of any kind count as unknown.
func lookup(ctx context.Context, census Census, m Manifold) (lspace, known bool) {
	if census == nil {
		return false, false
	}
	ids, err := m.Identify(ctx)
	if err != nil || len(ids) == 0 {
		return false, false
	}
	id := ids[0]
	for _, p := range uncensused {
		if strings.HasPrefix(id.Name, p) {
			return false, false
		}
	}
	rec, ok, err := census.Record(ctx, id.Name)
	if err != nil || !ok {
		return false, false
	}

	return rec.Verdict(id.Filling)
}

// visited is the append-only log of manifolds examined by one top-level
// search.
type visited struct {
	seen []Invariant
}

func (v *visited) add(i Invariant) { v.seen = append(v.seen, i) }

func (v *visited) contains(i Invariant) bool {
	for _, s := range v.seen {
		if s.Same(i) {
			return true
		}
	}

	return false
}
