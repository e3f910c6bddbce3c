// Package loss defines how fits score the discrepancy between observed
// and predicted samples, and keeps a registry so losses can be selected
// by name. The builtin losses cover the common noise models; custom
// losses plug in through the Loss interface or the Func adapter.
package loss

import (
	"errors"
	"fmt"
)

// ErrUnknown reports a loss selector with no registry entry.
var ErrUnknown = errors.New("loss: unknown loss")

// Loss scores how badly a prediction misses the observed data. Lower is
// better; fits minimize this value. yTrue and yEst always have equal
// length. weights and sigma are optional per-sample factors and may be
// nil, meaning 1 everywhere; how each loss combines them is part of its
// own contract.
type Loss interface {
	// Name identifies the loss, e.g. in results and registries.
	Name() string
	// Score returns the aggregate badness of the prediction.
	Score(yTrue, yEst, weights, sigma []float64) float64
}

// CovarianceScaler is implemented by losses whose curvature at the
// optimum has a known relation to the parameter covariance. The
// returned factor multiplies the inverse Hessian of the mean loss.
// cost is the final objective value, n the sample count and free the
// number of fitted parameters. Losses without this method get their
// covariance reported unscaled.
type CovarianceScaler interface {
	CovarianceScale(cost float64, n, free int) float64
}

// Func adapts a plain scoring function to the Loss interface.
type Func func(yTrue, yEst, weights, sigma []float64) float64

// New wraps fn as a Loss under the given name.
func New(name string, fn Func) Loss {
	return &funcLoss{name: name, fn: fn}
}

type funcLoss struct {
	name string
	fn   Func
}

func (l *funcLoss) Name() string { return l.name }

func (l *funcLoss) Score(yTrue, yEst, weights, sigma []float64) float64 {
	return l.fn(yTrue, yEst, weights, sigma)
}

func (l *funcLoss) String() string { return fmt.Sprintf("loss(%s)", l.name) }
