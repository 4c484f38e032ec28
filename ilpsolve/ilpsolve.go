// Package ilpsolve models ILP solver backends behind a capability
// interface and resolves one via a preference chain, exactly
// mirroring ILPSolvProv.h's getSolver factory: try the user's wish,
// then gurobi, then coin, then glpk, falling back through whichever
// backends were compiled in. No backend is linked in this module —
// choosing and embedding a third-party ILP solver is explicitly out of
// scope — so the factory reports "no solver available" unless a
// constructor was added with Register, and the line-order optimizer
// then keeps the component's input ordering.
package ilpsolve

import "time"

// VarKind distinguishes integer and continuous variables, even though
// this module's 0/1 programs only ever use Binary.
type VarKind int

const (
	Binary VarKind = iota
	Continuous
)

// Solver is the capability every ILP backend must expose: declare
// variables and constraints, then solve within a time budget.
type Solver interface {
	Name() string
	AddVar(kind VarKind, lower, upper float64) (id int)
	AddConstraint(coeffs map[int]float64, lower, upper float64)
	SetObjective(coeffs map[int]float64, minimize bool)
	Solve(timeLimit time.Duration) (Solution, error)
}

// Solution is the result of a solve.
type Solution struct {
	Feasible bool
	Values   map[int]float64
	Objective float64
}

// Preference is the solver preference chain: a user wish checked
// first, then the fixed fallback order.
type Preference struct {
	Wish string // "gurobi", "coin", "glpk", or "" for no preference
}

// factories maps a solver name to its constructor. Empty because no
// backend is linked in; Register is the only change needed to give the
// optimizer a working ILP path.
var factories = map[string]func() Solver{}

// Register adds a solver constructor under name to the preference
// chain. A caller that links a real ILP backend (gurobi, coin, glpk, or
// any other Solver implementation) calls this from an init function or
// before running the optimizer; this module itself never calls it.
func Register(name string, factory func() Solver) {
	factories[name] = factory
}

// Resolve returns the first available solver per the preference chain
// (wish, then gurobi, coin, glpk), or ok=false if none is linked.
func Resolve(pref Preference) (Solver, bool) {
	order := []string{pref.Wish, "gurobi", "coin", "glpk"}
	seen := make(map[string]bool)
	for _, name := range order {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		if f, ok := factories[name]; ok {
			return f(), true
		}
	}
	return nil, false
}
