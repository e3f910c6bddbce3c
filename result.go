package curvefit

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/curvefit/loss"
	"github.com/cwbudde/curvefit/opt"
)

// ParamValue is one parameter of a finished fit.
type ParamValue struct {
	Name   string
	Value  float64
	Stderr float64 // 0 for frozen parameters, NaN when not estimable
	Frozen bool
}

func (p ParamValue) String() string {
	return fmt.Sprintf("%s=%.6g±%.3g", p.Name, p.Value, p.Stderr)
}

// Result is the immutable outcome of a successful fit. It carries the
// fitted parameters with their standard errors and can evaluate the
// model at new points, so a Result stands in for the curve it
// describes.
type Result struct {
	model  ModelFunc
	sig    Signature
	params []ParamValue
	index  map[string]int
	full   []float64 // declared-order parameter values for evaluation
	loss   loss.Loss
	cost   float64
	iters  int
	evals  int
	status string
}

func newResult(f *Function, free []string, res *opt.Result, stderrs []float64, lf loss.Loss) *Result {
	params := make([]ParamValue, 0, f.sig.NumParams())
	for i, name := range free {
		params = append(params, ParamValue{Name: name, Value: res.X[i], Stderr: stderrs[i]})
	}
	for _, sp := range f.specs {
		if sp.State == StateFrozen {
			params = append(params, ParamValue{Name: sp.Name, Value: sp.Value, Frozen: true})
		}
	}
	index := make(map[string]int, len(params))
	for i, p := range params {
		index[p.Name] = i
	}
	full := make([]float64, f.sig.NumParams())
	f.fullParams(full, res.X)
	return &Result{
		model:  f.model,
		sig:    f.sig,
		params: params,
		index:  index,
		full:   full,
		loss:   lf,
		cost:   res.Cost,
		iters:  res.Iterations,
		evals:  res.FuncEvals,
		status: res.Status,
	}
}

// Params returns the fitted parameters: first the optimized ones in
// declared order, then the frozen ones.
func (r *Result) Params() []ParamValue {
	return append([]ParamValue(nil), r.params...)
}

// Param returns one parameter by name.
func (r *Result) Param(name string) (ParamValue, bool) {
	i, ok := r.index[name]
	if !ok {
		return ParamValue{}, false
	}
	return r.params[i], true
}

// Value returns a parameter's fitted value, or NaN for an unknown name.
func (r *Result) Value(name string) float64 {
	if p, ok := r.Param(name); ok {
		return p.Value
	}
	return math.NaN()
}

// Stderr returns a parameter's standard error, or NaN for an unknown
// name.
func (r *Result) Stderr(name string) float64 {
	if p, ok := r.Param(name); ok {
		return p.Stderr
	}
	return math.NaN()
}

// Cost is the final objective value.
func (r *Result) Cost() float64 { return r.cost }

// Loss is the loss the fit was scored with.
func (r *Result) Loss() loss.Loss { return r.loss }

// Iterations is the minimizer's iteration count, as far as reported.
func (r *Result) Iterations() int { return r.iters }

// FuncEvals is the number of objective evaluations, as far as reported.
func (r *Result) FuncEvals() int { return r.evals }

// Status is the minimizer's terminal condition.
func (r *Result) Status() string { return r.status }

// At evaluates the fitted model at a single point, one value per
// declared argument.
func (r *Result) At(args ...float64) (float64, error) {
	if len(args) != r.sig.NumArgs() {
		return 0, fmt.Errorf("%w: function %s takes %d argument(s), got %d", ErrShape, r.sig.name, r.sig.NumArgs(), len(args))
	}
	return r.model(args, r.full), nil
}

// Eval evaluates the fitted single-argument model over a series.
func (r *Result) Eval(x []float64) ([]float64, error) {
	return r.EvalArgs([][]float64{x})
}

// EvalArgs evaluates the fitted model over parallel argument series.
func (r *Result) EvalArgs(args [][]float64) ([]float64, error) {
	if len(args) != r.sig.NumArgs() {
		return nil, fmt.Errorf("%w: function %s takes %d argument(s), got %d series", ErrShape, r.sig.name, r.sig.NumArgs(), len(args))
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: no argument series", ErrShape)
	}
	n := len(args[0])
	for i, a := range args {
		if len(a) != n {
			return nil, fmt.Errorf("%w: argument %q has %d samples, %q has %d", ErrShape, r.sig.args[i], len(a), r.sig.args[0], n)
		}
	}
	out := make([]float64, n)
	point := make([]float64, len(args))
	for i := 0; i < n; i++ {
		for j := range point {
			point[j] = args[j][i]
		}
		out[i] = r.model(point, r.full)
	}
	return out, nil
}

// String renders the fitted curve in call form, optimized parameters
// first, e.g. "linear(x; a=1.9932±0.0341, b=0.1034±0.0198)".
func (r *Result) String() string {
	parts := make([]string, len(r.params))
	for i, p := range r.params {
		parts[i] = p.String()
	}
	var b strings.Builder
	b.WriteString(r.sig.name)
	b.WriteByte('(')
	b.WriteString(strings.Join(r.sig.args, ", "))
	b.WriteString("; ")
	b.WriteString(strings.Join(parts, ", "))
	b.WriteByte(')')
	return b.String()
}
