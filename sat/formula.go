package sat

import (
	"bufio"
	"io"
	"strconv"

	"github.com/cockroachdb/errors"
)

var (
	// ErrBadLiteral is returned for a zero or out-of-range literal.
	ErrBadLiteral = errors.New("sat: literal out of range")

	// ErrUnknownBackend is returned for an unrecognized backend name.
	ErrUnknownBackend = errors.New("sat: unknown backend")
)

// Formula is a CNF over variables 1..NumVars.
type Formula struct {
	NumVars int
	Clauses [][]int
}

// NewFormula returns an empty formula over n variables.
func NewFormula(n int) *Formula {
	return &Formula{NumVars: n}
}

// Add appends one clause. The literals are copied.
func (f *Formula) Add(lits ...int) {
	f.Clauses = append(f.Clauses, append([]int(nil), lits...))
}

// Validate checks that every literal is nonzero and within range.
func (f *Formula) Validate() error {
	for i, c := range f.Clauses {
		for _, l := range c {
			if l == 0 || l > f.NumVars || -l > f.NumVars {
				return errors.Wrapf(ErrBadLiteral, "clause %d literal %d (vars=%d)", i, l, f.NumVars)
			}
		}
	}

	return nil
}

// WriteDIMACS writes f in DIMACS cnf format.
func (f *Formula) WriteDIMACS(w io.Writer) error {
	bw := bufio.NewWriter(w)
	_, _ = bw.WriteString("p cnf " + strconv.Itoa(f.NumVars) + " " + strconv.Itoa(len(f.Clauses)) + "\n")
	for _, c := range f.Clauses {
		for _, l := range c {
			_, _ = bw.WriteString(strconv.Itoa(l))
			_ = bw.WriteByte(' ')
		}
		_, _ = bw.WriteString("0\n")
	}

	return errors.Wrap(bw.Flush(), "sat: write dimacs")
}

// Satisfies reports whether model (model[i] is variable i+1) satisfies f.
func (f *Formula) Satisfies(model []bool) bool {
	for _, c := range f.Clauses {
		ok := false
		for _, l := range c {
			v := l
			if v < 0 {
				v = -v
			}
			if v-1 < len(model) && model[v-1] == (l > 0) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}

	return true
}
