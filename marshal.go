package curvefit

import (
	"fmt"
	"math"
)

// The optimization vector holds one entry per non-frozen parameter, in
// declared order. Everything that moves between the fit and the
// minimizer goes through the helpers below so the ordering is decided
// in exactly one place.

// initialVector resolves the starting point for a fit. A caller guess
// wins over a declared default; a free parameter with neither fails
// with ErrMissingGuess. Guesses are validated: unknown and frozen
// names are rejected, as are guesses outside a parameter's bounds.
func (f *Function) initialVector(guesses map[string]float64) ([]float64, error) {
	for name := range guesses {
		i := f.sig.paramIndex(name)
		if i < 0 {
			return nil, fmt.Errorf("%w: function %s has no parameter %q", ErrParameter, f.sig.name, name)
		}
		if f.specs[i].State == StateFrozen {
			return nil, fmt.Errorf("%w: initial guess for frozen parameter %q", ErrParameter, name)
		}
	}
	x0 := make([]float64, 0, len(f.specs))
	for _, sp := range f.specs {
		if sp.State == StateFrozen {
			continue
		}
		v, ok := guesses[sp.Name]
		if !ok {
			v, ok = f.sig.Default(sp.Name)
		}
		if !ok {
			return nil, fmt.Errorf("%w: parameter %q of %s", ErrMissingGuess, sp.Name, f.sig.name)
		}
		if sp.State == StateBounded && !sp.Bounds.contains(v) {
			return nil, fmt.Errorf("%w: initial guess %g for %q lies outside bounds %s", ErrParameter, v, sp.Name, sp.Bounds)
		}
		x0 = append(x0, v)
	}
	return x0, nil
}

// boundVectors returns per-dimension lower and upper bounds parallel to
// the optimization vector, with infinities for unconstrained entries.
func (f *Function) boundVectors() (lower, upper []float64) {
	lower = make([]float64, 0, len(f.specs))
	upper = make([]float64, 0, len(f.specs))
	for _, sp := range f.specs {
		switch sp.State {
		case StateFrozen:
			// Not part of the vector.
		case StateBounded:
			lower = append(lower, sp.Bounds.Low)
			upper = append(upper, sp.Bounds.High)
		default:
			lower = append(lower, math.Inf(-1))
			upper = append(upper, math.Inf(1))
		}
	}
	return lower, upper
}

// fullParams merges an optimization vector with the frozen values into
// dst, the declared-order parameter slice handed to the model. dst must
// have NumParams entries; x must have one entry per non-frozen
// parameter.
func (f *Function) fullParams(dst, x []float64) {
	j := 0
	for i, sp := range f.specs {
		if sp.State == StateFrozen {
			dst[i] = sp.Value
			continue
		}
		dst[i] = x[j]
		j++
	}
}

// paramMap expands an optimization vector into a name-to-value map over
// the non-frozen parameters.
func (f *Function) paramMap(x []float64) map[string]float64 {
	m := make(map[string]float64, len(x))
	j := 0
	for _, sp := range f.specs {
		if sp.State == StateFrozen {
			continue
		}
		m[sp.Name] = x[j]
		j++
	}
	return m
}
