package opt

import (
	"fmt"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

// GonumAdapter wraps the gonum optimize methods to conform to the
// Minimizer interface. Box bounds are handled with a variable
// transformation, so any of the unconstrained gonum methods works on a
// bounded problem. Gradients and Hessians are approximated by central
// finite differences; the model never has to provide derivatives.
type GonumAdapter struct {
	method   string
	maxIters int
}

// NewGonum creates a gonum-backed minimizer for one of the Method*
// names. maxIters <= 0 leaves the iteration budget to gonum's
// defaults.
func NewGonum(method string, maxIters int) *GonumAdapter {
	return &GonumAdapter{method: method, maxIters: maxIters}
}

func (g *GonumAdapter) resolveMethod() (optimize.Method, bool, error) {
	switch g.method {
	case MethodNelderMead, "":
		return &optimize.NelderMead{}, false, nil
	case MethodBFGS:
		return &optimize.BFGS{}, true, nil
	case MethodLBFGS:
		return &optimize.LBFGS{}, true, nil
	case MethodCG:
		return &optimize.CG{}, true, nil
	case MethodNewton:
		return &optimize.Newton{}, true, nil
	default:
		return nil, false, fmt.Errorf("opt: unknown method %q", g.method)
	}
}

// Minimize runs the configured gonum method from x0.
func (g *GonumAdapter) Minimize(obj Objective, x0, lower, upper []float64) (*Result, error) {
	method, needsGrad, err := g.resolveMethod()
	if err != nil {
		return nil, err
	}

	tr := newBoundTransform(lower, upper)
	wrapped := func(u []float64) float64 {
		return obj(tr.external(u))
	}

	problem := optimize.Problem{Func: wrapped}
	if needsGrad {
		problem.Grad = func(grad, u []float64) {
			fd.Gradient(grad, wrapped, u, nil)
		}
	}
	if g.method == MethodNewton {
		problem.Hess = func(hess *mat.SymDense, u []float64) {
			fd.Hessian(hess, wrapped, u, nil)
		}
	}

	settings := &optimize.Settings{}
	if g.maxIters > 0 {
		settings.MajorIterations = g.maxIters
	}

	res, err := optimize.Minimize(problem, tr.internal(x0), settings, method)
	if res == nil {
		if err == nil {
			err = fmt.Errorf("opt: %s returned no result", g.method)
		}
		return nil, err
	}

	out := &Result{
		X:          tr.external(res.X),
		Cost:       res.F,
		Iterations: res.Stats.MajorIterations,
		FuncEvals:  res.Stats.FuncEvaluations,
		Status:     res.Status.String(),
	}
	if res.Location.Hessian != nil && tr.identity() {
		// The method's curvature lives in the internal space; it only
		// describes the model parameters when no transform is active.
		out.Covariance = invertPosDef(res.Location.Hessian)
	}
	if err != nil {
		return out, fmt.Errorf("opt: %s: %w", g.method, err)
	}

	switch res.Status {
	case optimize.Success, optimize.FunctionThreshold, optimize.FunctionConvergence,
		optimize.GradientThreshold, optimize.StepConvergence, optimize.MethodConverge:
		return out, nil
	default:
		return out, fmt.Errorf("opt: %s stopped without converging: %s", g.method, res.Status)
	}
}

// invertPosDef inverts a positive definite matrix, returning nil when
// the factorization fails.
func invertPosDef(a *mat.SymDense) *mat.SymDense {
	var chol mat.Cholesky
	if !chol.Factorize(a) {
		return nil
	}
	inv := mat.NewSymDense(a.SymmetricDim(), nil)
	if err := chol.InverseTo(inv); err != nil {
		return nil
	}
	return inv
}
