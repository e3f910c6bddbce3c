package curvefit

import (
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/curvefit/opt"
)

// standardErrors derives per-parameter standard errors from the
// curvature of the objective at the optimum. cov may come from the
// minimizer; when it is nil the Hessian is approximated by central
// finite differences and inverted here. scale is the loss-specific
// covariance factor. Singular or indefinite curvature degrades the
// affected entries to NaN instead of failing the fit: the point
// estimate stays useful without them.
func standardErrors(obj opt.Objective, x []float64, cov *mat.SymDense, scale float64) []float64 {
	errs := make([]float64, len(x))
	if cov == nil {
		cov = invertCurvature(numericHessian(obj, x))
	}
	if cov == nil {
		for i := range errs {
			errs[i] = math.NaN()
		}
		return errs
	}
	for i := range errs {
		v := scale * cov.At(i, i)
		if math.IsNaN(v) || v < 0 {
			errs[i] = math.NaN()
			continue
		}
		errs[i] = math.Sqrt(v)
	}
	return errs
}

func numericHessian(obj opt.Objective, x []float64) *mat.SymDense {
	hess := mat.NewSymDense(len(x), nil)
	fd.Hessian(hess, obj, x, nil)
	return hess
}

// invertCurvature inverts a Hessian, preferring the Cholesky route and
// falling back to a general inverse for indefinite matrices, whose
// well-conditioned directions still yield usable diagonal entries.
// Returns nil when the matrix is effectively singular.
func invertCurvature(hess *mat.SymDense) *mat.SymDense {
	n := hess.SymmetricDim()
	var chol mat.Cholesky
	if chol.Factorize(hess) {
		inv := mat.NewSymDense(n, nil)
		if err := chol.InverseTo(inv); err == nil {
			return inv
		}
	}
	var inv mat.Dense
	if err := inv.Inverse(hess); err != nil {
		return nil
	}
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, (inv.At(i, j)+inv.At(j, i))/2)
		}
	}
	return sym
}
