package sat

// Enumerator pulls every model of a formula, one per call to Next.
type Enumerator struct {
	s     Solver
	n     int
	done  bool
	count int
}

// NewEnumerator validates f and loads it into a fresh solver of the named
// backend.
func NewEnumerator(backend string, f *Formula) (*Enumerator, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	s, err := NewSolver(backend, f.NumVars)
	if err != nil {
		return nil, err
	}
	for _, c := range f.Clauses {
		s.AddClause(c)
	}

	return &Enumerator{s: s, n: f.NumVars}, nil
}

// Next returns the next model, or ok == false once every model has been
// returned. Each model is blocked before Next returns it.
func (e *Enumerator) Next() (model []bool, ok bool, err error) {
	if e.done {
		return nil, false, nil
	}
	model, ok, err = e.s.Solve()
	if err != nil || !ok {
		e.done = true
		return nil, false, err
	}
	if e.n == 0 {
		// The empty assignment is the only model.
		e.done = true
	} else {
		block := make([]int, e.n)
		for i, val := range model {
			if val {
				block[i] = -(i + 1)
			} else {
				block[i] = i + 1
			}
		}
		e.s.AddClause(block)
	}
	e.count++

	return model, true, nil
}

// Count returns the number of models returned so far.
func (e *Enumerator) Count() int { return e.count }

// All drains the enumerator.
func (e *Enumerator) All() ([][]bool, error) {
	var out [][]bool
	for {
		m, ok, err := e.Next()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, m)
	}
}
