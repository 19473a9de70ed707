package sat

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/crillab/gophersat/solver"
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
)

// Backend names accepted by NewSolver.
const (
	BackendGini      = "gini"
	BackendGophersat = "gophersat"
)

// Solver accepts clauses over variables 1..n and finds models.
type Solver interface {
	// AddClause adds a clause in DIMACS literal convention.
	AddClause(lits []int)
	// Solve returns a model (model[i] is variable i+1) when one exists.
	Solve() (model []bool, ok bool, err error)
}

// NewSolver returns an empty solver over n variables for the named backend.
// The empty name selects gini.
func NewSolver(backend string, n int) (Solver, error) {
	switch strings.ToLower(backend) {
	case "", BackendGini:
		return &giniSolver{g: gini.New(), n: n}, nil
	case BackendGophersat:
		return &gophersatSolver{n: n}, nil
	}

	return nil, errors.Wrapf(ErrUnknownBackend, "%q", backend)
}

// giniSolver keeps one incremental gini instance.
type giniSolver struct {
	g    *gini.Gini
	n    int
	seen int // largest variable handed to gini
}

func (s *giniSolver) AddClause(lits []int) {
	for _, l := range lits {
		if v := absInt(l); v > s.seen {
			s.seen = v
		}
		s.g.Add(z.Dimacs2Lit(l))
	}
	s.g.Add(z.LitNull)
}

func (s *giniSolver) Solve() ([]bool, bool, error) {
	switch s.g.Solve() {
	case 1:
	case -1:
		return nil, false, nil
	default:
		return nil, false, errors.New("sat: gini returned unknown")
	}
	model := make([]bool, s.n)
	for v := 1; v <= s.n && v <= s.seen; v++ {
		model[v-1] = s.g.Value(z.Dimacs2Lit(v))
	}

	return model, true, nil
}

// gophersatSolver rebuilds a gophersat problem for every Solve.
type gophersatSolver struct {
	n       int
	clauses [][]int
}

func (s *gophersatSolver) AddClause(lits []int) {
	s.clauses = append(s.clauses, append([]int(nil), lits...))
}

func (s *gophersatSolver) Solve() ([]bool, bool, error) {
	pb := solver.ParseSlice(s.clauses)
	if pb.Status == solver.Unsat {
		return nil, false, nil
	}
	sv := solver.New(pb)
	if sv.Solve() != solver.Sat {
		return nil, false, nil
	}
	model := make([]bool, s.n)
	copy(model, sv.Model())

	return model, true, nil
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}

	return x
}
