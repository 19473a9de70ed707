// Package sat is the small clause layer the edge-orientation search runs on.
//
// What
//
//   - Formula: a CNF over variables 1..NumVars in DIMACS literal convention
//     (v for true, -v for false), with DIMACS export.
//   - Solver: a backend that accepts clauses and finds one model.
//     Two backends are provided:
//   - gini (github.com/go-air/gini): incremental; clauses added after a
//     Solve are kept alongside the learned state. This is the default.
//   - gophersat (github.com/crillab/gophersat): rebuilt from the clause
//     list on every Solve.
//   - Enumerator: a pull iterator over all models. Every model returned is
//     excluded by a blocking clause before the next call.
//
// Usage
//
//	f := sat.NewFormula(3)
//	f.Add(1, 2)
//	f.Add(-1, -3)
//	en, _ := sat.NewEnumerator(sat.BackendGini, f)
//	for {
//		model, ok, err := en.Next()
//		if err != nil || !ok {
//			break
//		}
//		_ = model // model[i] is the value of variable i+1
//	}
package sat
