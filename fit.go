package curvefit

import (
	"fmt"
	"log/slog"

	"github.com/cwbudde/curvefit/loss"
	"github.com/cwbudde/curvefit/opt"
	"github.com/cwbudde/curvefit/table"
)

// FitOptions tunes a single fit. The zero value (or a nil pointer)
// selects the chi_squared loss, neutral weights and the default
// minimizer.
type FitOptions struct {
	// Loss selects the scoring function: a registered name, a
	// loss.Loss value, or nil for the default.
	Loss any

	// Weights and Sigma are optional per-sample weights and
	// uncertainties. When set, each must match the data length.
	Weights []float64
	Sigma   []float64

	// WeightsColumn and SigmaColumn name table columns to read the
	// weight vectors from. They apply to FitTable only.
	WeightsColumn string
	SigmaColumn   string

	// Minimizer overrides the numerical backend.
	Minimizer opt.Minimizer

	// Registry overrides the loss registry used to resolve names,
	// mainly for isolation in tests.
	Registry *loss.Registry
}

func (o *FitOptions) registry() *loss.Registry {
	if o.Registry != nil {
		return o.Registry
	}
	return loss.Default()
}

func (o *FitOptions) minimizer() opt.Minimizer {
	if o.Minimizer != nil {
		return o.Minimizer
	}
	return opt.Default()
}

// Fit fits the free parameters of a single-argument function to the
// samples (x[i], y[i]). guesses provides initial values by name; a
// free parameter without a guess falls back to its declared default.
// On success the returned Result holds the fitted values with their
// standard errors.
func (f *Function) Fit(x, y []float64, guesses map[string]float64, opts *FitOptions) (*Result, error) {
	return f.FitArgs([][]float64{x}, y, guesses, opts)
}

// FitArgs is the multi-argument form of Fit: args holds one sample
// series per positional argument of the model, all as long as y.
func (f *Function) FitArgs(args [][]float64, y []float64, guesses map[string]float64, opts *FitOptions) (*Result, error) {
	if opts == nil {
		opts = &FitOptions{}
	}
	if err := f.checkShapes(args, y, opts.Weights, opts.Sigma); err != nil {
		return nil, err
	}

	lf, err := opts.registry().Resolve(opts.Loss)
	if err != nil {
		return nil, err
	}
	x0, err := f.initialVector(guesses)
	if err != nil {
		return nil, err
	}
	free := f.FreeParams()
	if len(free) == 0 {
		return nil, fmt.Errorf("%w: function %s has no free parameters left", ErrParameter, f.sig.name)
	}
	lower, upper := f.boundVectors()
	obj := f.objective(args, y, opts.Weights, opts.Sigma, lf)

	slog.Debug("starting fit",
		"function", f.sig.name,
		"loss", lf.Name(),
		"free", free,
		"samples", len(y))

	res, err := opts.minimizer().Minimize(obj, x0, lower, upper)
	if err != nil {
		oe := &OptimizationError{Message: err.Error()}
		if res != nil {
			oe.Best = res.X
			oe.Cost = res.Cost
		}
		return nil, oe
	}

	scale := 1.0
	if cs, ok := lf.(loss.CovarianceScaler); ok {
		scale = cs.CovarianceScale(res.Cost, len(y), len(free))
	}
	stderrs := standardErrors(obj, res.X, res.Covariance, scale)

	slog.Debug("fit complete",
		"function", f.sig.name,
		"cost", res.Cost,
		"iterations", res.Iterations,
		"status", res.Status)

	return newResult(f, free, res, stderrs, lf), nil
}

// FitTable resolves the function's argument series from tbl by their
// declared names and fits against the target column. An empty target
// defaults to the function's own name. opts.WeightsColumn and
// SigmaColumn select optional weighting columns from the same table.
func (f *Function) FitTable(tbl *table.Table, target string, guesses map[string]float64, opts *FitOptions) (*Result, error) {
	if tbl == nil {
		return nil, fmt.Errorf("%w: nil table", ErrShape)
	}
	if opts == nil {
		opts = &FitOptions{}
	}
	if target == "" {
		target = f.sig.name
	}

	args := make([][]float64, f.sig.NumArgs())
	for i, name := range f.sig.args {
		col, err := tbl.Column(name)
		if err != nil {
			return nil, fmt.Errorf("%w: argument %q: %v", ErrShape, name, err)
		}
		args[i] = col
	}
	y, err := tbl.Column(target)
	if err != nil {
		return nil, fmt.Errorf("%w: target %q: %v", ErrShape, target, err)
	}

	sub := *opts
	if opts.WeightsColumn != "" {
		w, err := tbl.Column(opts.WeightsColumn)
		if err != nil {
			return nil, fmt.Errorf("%w: weights %q: %v", ErrShape, opts.WeightsColumn, err)
		}
		sub.Weights = w
	}
	if opts.SigmaColumn != "" {
		s, err := tbl.Column(opts.SigmaColumn)
		if err != nil {
			return nil, fmt.Errorf("%w: sigma %q: %v", ErrShape, opts.SigmaColumn, err)
		}
		sub.Sigma = s
	}
	return f.FitArgs(args, y, guesses, &sub)
}

func (f *Function) checkShapes(args [][]float64, y, weights, sigma []float64) error {
	if len(args) != f.sig.NumArgs() {
		return fmt.Errorf("%w: function %s takes %d argument(s), got %d series", ErrShape, f.sig.name, f.sig.NumArgs(), len(args))
	}
	if len(y) == 0 {
		return fmt.Errorf("%w: no samples", ErrShape)
	}
	for i, a := range args {
		if len(a) != len(y) {
			return fmt.Errorf("%w: argument %q has %d samples, target has %d", ErrShape, f.sig.args[i], len(a), len(y))
		}
	}
	if weights != nil && len(weights) != len(y) {
		return fmt.Errorf("%w: %d weights for %d samples", ErrShape, len(weights), len(y))
	}
	if sigma != nil && len(sigma) != len(y) {
		return fmt.Errorf("%w: %d sigma values for %d samples", ErrShape, len(sigma), len(y))
	}
	return nil
}

// objective builds the closure handed to the minimizer: merge the
// vector with the frozen values, evaluate the model over all samples,
// score with the loss. All buffers are local to this fit, so
// concurrent fits of a shared Function stay independent.
func (f *Function) objective(args [][]float64, y, weights, sigma []float64, lf loss.Loss) opt.Objective {
	n := len(y)
	params := make([]float64, f.sig.NumParams())
	point := make([]float64, f.sig.NumArgs())
	yEst := make([]float64, n)
	return func(x []float64) float64 {
		f.fullParams(params, x)
		for i := 0; i < n; i++ {
			for j := range point {
				point[j] = args[j][i]
			}
			yEst[i] = f.model(point, params)
		}
		return lf.Score(y, yEst, weights, sigma)
	}
}
