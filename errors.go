package curvefit

import (
	"errors"
	"fmt"
)

// Error kinds reported by this package. Returned errors wrap one of
// these sentinels so callers can classify failures with errors.Is.
var (
	// ErrSignature reports a malformed model declaration at wrap time.
	ErrSignature = errors.New("curvefit: invalid signature")

	// ErrParameter reports a freeze, bound or guess referring to an
	// unknown parameter, or one whose state forbids the operation.
	ErrParameter = errors.New("curvefit: invalid parameter")

	// ErrMissingGuess reports a free parameter that has neither a
	// caller-supplied initial guess nor a declared default.
	ErrMissingGuess = errors.New("curvefit: missing initial guess")

	// ErrShape reports input data whose dimensions do not line up with
	// the function's declaration, or malformed tabular input.
	ErrShape = errors.New("curvefit: shape mismatch")
)

// OptimizationError reports that the minimizer failed. It carries the
// best point found so far so callers can inspect how far the search
// got; the fit itself yields no Result in this case.
type OptimizationError struct {
	Message string    // diagnostic from the minimizer backend
	Best    []float64 // best optimization vector seen, may be nil
	Cost    float64   // objective value at Best
}

func (e *OptimizationError) Error() string {
	return fmt.Sprintf("curvefit: optimization failed: %s", e.Message)
}
