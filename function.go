package curvefit

import (
	"fmt"
)

// ModelFunc is the canonical model shape: args holds one value per
// positional argument, params one value per declared parameter, both in
// declared order.
type ModelFunc func(args, params []float64) float64

// Function couples a model with its signature and the per-parameter
// fitting state. Functions are immutable: Freeze and Bound return new
// instances and never touch the receiver, so a Function can be shared
// freely between goroutines and fits.
type Function struct {
	model ModelFunc
	sig   Signature
	specs []ParamSpec
}

// New wraps a model function under an explicit declaration. The model
// must have one of two shapes:
//
//	func(args, params []float64) float64
//	func(x float64, params []float64) float64
//
// where the single-x form is shorthand for one positional argument.
// Parameter declarations may carry defaults, e.g. "sigma=1".
func New(name string, model any, args, params []string) (*Function, error) {
	fn, err := normalizeModel(model)
	if err != nil {
		return nil, err
	}
	sig, err := NewSignature(name, args, params)
	if err != nil {
		return nil, err
	}
	if _, ok := model.(func(float64, []float64) float64); ok && sig.NumArgs() != 1 {
		return nil, fmt.Errorf("%w: single-variable model %s declares %d arguments", ErrSignature, name, sig.NumArgs())
	}
	specs := make([]ParamSpec, sig.NumParams())
	for i, p := range sig.Params() {
		specs[i] = ParamSpec{Name: p, State: StateFree}
	}
	return &Function{model: fn, sig: sig, specs: specs}, nil
}

// MustNew is New that panics on error, for declaring package-level
// model variables.
func MustNew(name string, model any, args, params []string) *Function {
	f, err := New(name, model, args, params)
	if err != nil {
		panic(err)
	}
	return f
}

func normalizeModel(model any) (ModelFunc, error) {
	switch fn := model.(type) {
	case ModelFunc:
		return fn, nil
	case func(args, params []float64) float64:
		return fn, nil
	case func(float64, []float64) float64:
		return func(args, params []float64) float64 {
			return fn(args[0], params)
		}, nil
	case nil:
		return nil, fmt.Errorf("%w: model function is nil", ErrSignature)
	default:
		return nil, fmt.Errorf("%w: unsupported model shape %T", ErrSignature, model)
	}
}

// Freeze returns a copy of the function with the given parameters
// pinned to fixed values. Frozen parameters leave the optimization
// vector; freezing a bounded parameter checks the value against its
// interval. Unknown names are rejected.
func (f *Function) Freeze(values map[string]float64) (*Function, error) {
	specs := f.copySpecs()
	for name, v := range values {
		i := f.sig.paramIndex(name)
		if i < 0 {
			return nil, fmt.Errorf("%w: function %s has no parameter %q", ErrParameter, f.sig.name, name)
		}
		if specs[i].State == StateBounded && !specs[i].Bounds.contains(v) {
			return nil, fmt.Errorf("%w: frozen value %g for %q lies outside bounds %s", ErrParameter, v, name, specs[i].Bounds)
		}
		specs[i] = ParamSpec{Name: name, State: StateFrozen, Value: v}
	}
	return &Function{model: f.model, sig: f.sig, specs: specs}, nil
}

// Bound returns a copy of the function with the given parameters
// constrained to closed intervals. Bounding a frozen parameter is
// rejected; freeze it afterwards instead if both are wanted.
func (f *Function) Bound(intervals map[string]Interval) (*Function, error) {
	specs := f.copySpecs()
	for name, iv := range intervals {
		i := f.sig.paramIndex(name)
		if i < 0 {
			return nil, fmt.Errorf("%w: function %s has no parameter %q", ErrParameter, f.sig.name, name)
		}
		if specs[i].State == StateFrozen {
			return nil, fmt.Errorf("%w: parameter %q is frozen and cannot be bounded", ErrParameter, name)
		}
		if !iv.valid() {
			return nil, fmt.Errorf("%w: interval %s for %q is empty", ErrParameter, iv, name)
		}
		specs[i] = ParamSpec{Name: name, State: StateBounded, Bounds: iv}
	}
	return &Function{model: f.model, sig: f.sig, specs: specs}, nil
}

// Call evaluates the model at one point. params supplies values for the
// non-frozen parameters by name; frozen values are merged in from the
// function's state. Every non-frozen parameter must be given.
func (f *Function) Call(args []float64, params map[string]float64) (float64, error) {
	if len(args) != f.sig.NumArgs() {
		return 0, fmt.Errorf("%w: function %s takes %d argument(s), got %d", ErrShape, f.sig.name, f.sig.NumArgs(), len(args))
	}
	for name := range params {
		i := f.sig.paramIndex(name)
		if i < 0 {
			return 0, fmt.Errorf("%w: function %s has no parameter %q", ErrParameter, f.sig.name, name)
		}
		if f.specs[i].State == StateFrozen {
			return 0, fmt.Errorf("%w: parameter %q is frozen", ErrParameter, name)
		}
	}
	full := make([]float64, len(f.specs))
	for i, sp := range f.specs {
		if sp.State == StateFrozen {
			full[i] = sp.Value
			continue
		}
		v, ok := params[sp.Name]
		if !ok {
			return 0, fmt.Errorf("%w: no value for parameter %q", ErrParameter, sp.Name)
		}
		full[i] = v
	}
	return f.model(args, full), nil
}

// Name returns the declared function name.
func (f *Function) Name() string { return f.sig.name }

// Signature returns the function's declaration.
func (f *Function) Signature() Signature { return f.sig }

// NumArgs returns the number of positional arguments.
func (f *Function) NumArgs() int { return f.sig.NumArgs() }

// NumParams returns the number of declared parameters, frozen or not.
func (f *Function) NumParams() int { return f.sig.NumParams() }

// Param returns the state of one parameter.
func (f *Function) Param(name string) (ParamSpec, bool) {
	i := f.sig.paramIndex(name)
	if i < 0 {
		return ParamSpec{}, false
	}
	return f.specs[i], true
}

// Params returns all parameter states in declared order.
func (f *Function) Params() []ParamSpec {
	return f.copySpecs()
}

// FreeParams returns the names of the non-frozen parameters in declared
// order. These are the entries of the optimization vector.
func (f *Function) FreeParams() []string {
	free := make([]string, 0, len(f.specs))
	for _, sp := range f.specs {
		if sp.State != StateFrozen {
			free = append(free, sp.Name)
		}
	}
	return free
}

// IsFrozen reports whether any parameter is frozen.
func (f *Function) IsFrozen() bool {
	for _, sp := range f.specs {
		if sp.State == StateFrozen {
			return true
		}
	}
	return false
}

// IsBounded reports whether any parameter carries bounds.
func (f *Function) IsBounded() bool {
	for _, sp := range f.specs {
		if sp.State == StateBounded {
			return true
		}
	}
	return false
}

func (f *Function) copySpecs() []ParamSpec {
	return append([]ParamSpec(nil), f.specs...)
}

// String renders the declaration, e.g. "linear(x; a, b)".
func (f *Function) String() string { return f.sig.String() }
