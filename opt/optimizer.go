// Package opt defines the numerical minimizer contract fits rely on,
// with adapters for the gonum optimize methods and for the external
// mayfly swarm optimizer. Fits hand a minimizer an objective over the
// optimization vector plus per-dimension bounds and take back the best
// point; everything else about the search is the backend's business.
package opt

import "gonum.org/v1/gonum/mat"

// Objective is a scalar function of an optimization vector. The slice
// is reused between calls and must not be retained.
type Objective func(x []float64) float64

// Result is the outcome of a minimization run.
type Result struct {
	// X is the best optimization vector found.
	X []float64
	// Cost is the objective value at X.
	Cost float64
	// Covariance is the curvature-derived parameter covariance at X.
	// Backends without curvature information leave it nil and callers
	// fall back to a finite-difference estimate.
	Covariance *mat.SymDense
	// Iterations and FuncEvals count the work done, as far as the
	// backend reports it.
	Iterations int
	FuncEvals  int
	// Status is the backend's terminal condition, for diagnostics.
	Status string
}

// Minimizer is the contract between a fit and a numerical backend.
//
// lower and upper give per-dimension bounds parallel to x0, with
// infinities marking unconstrained dimensions. Implementations must
// call obj from a single goroutine, honor the bounds, and, when they
// fail, still return the best point seen so far alongside the error.
type Minimizer interface {
	Minimize(obj Objective, x0, lower, upper []float64) (*Result, error)
}

// Names of the gonum-backed methods accepted by NewGonum.
const (
	MethodNelderMead = "nelder-mead"
	MethodBFGS       = "bfgs"
	MethodLBFGS      = "lbfgs"
	MethodCG         = "cg"
	MethodNewton     = "newton"
	MethodMayfly     = "mayfly"
)

// Default returns the minimizer used when a fit does not choose one: a
// derivative-free Nelder-Mead search with gonum's default tolerances.
func Default() Minimizer {
	return NewGonum(MethodNelderMead, 0)
}

// ByName builds a minimizer from a method name, covering the gonum
// methods and "mayfly". maxIters <= 0 leaves the iteration budget to
// the backend's defaults.
func ByName(method string, maxIters int) (Minimizer, error) {
	if method == MethodMayfly {
		if maxIters <= 0 {
			maxIters = defaultMayflyIters
		}
		return NewMayfly(maxIters, defaultMayflyPop, defaultMayflySeed), nil
	}
	g := NewGonum(method, maxIters)
	if _, _, err := g.resolveMethod(); err != nil {
		return nil, err
	}
	return g, nil
}
