package opt

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/mayfly"
)

// Defaults for ByName("mayfly", ...). The library requires a population
// of at least 20.
const (
	defaultMayflyIters = 200
	defaultMayflyPop   = 20
	defaultMayflySeed  = 1
)

// searchRadius pads the search box around x0 for dimensions without
// finite bounds; the mayfly config only takes a scalar bound pair.
const searchRadius = 10.0

// MayflyAdapter wraps the external mayfly library, a derivative-free
// population search. It supplies no curvature information, so fits
// using it fall back to finite-difference covariance estimates. Runs
// with the same seed are deterministic.
type MayflyAdapter struct {
	maxIters int
	popSize  int
	seed     int64
}

// NewMayfly creates a mayfly-backed minimizer.
func NewMayfly(maxIters, popSize int, seed int64) *MayflyAdapter {
	return &MayflyAdapter{
		maxIters: maxIters,
		popSize:  popSize,
		seed:     seed,
	}
}

// Minimize runs the swarm inside a scalar envelope of the requested
// box. Population candidates are projected onto the per-dimension
// bounds before evaluation, so the objective never sees an infeasible
// point and the returned best is always within bounds.
func (m *MayflyAdapter) Minimize(obj Objective, x0, lower, upper []float64) (*Result, error) {
	dim := len(x0)
	lo, hi := envelope(x0, lower, upper)

	clamped := func(x []float64) float64 {
		y := make([]float64, dim)
		for i := range x {
			y[i] = math.Min(math.Max(x[i], lower[i]), upper[i])
		}
		return obj(y)
	}

	config := mayfly.NewDefaultConfig()
	config.ObjectiveFunc = clamped
	config.ProblemSize = dim
	config.MaxIterations = m.maxIters
	config.NPop = m.popSize
	config.LowerBound = lo
	config.UpperBound = hi
	config.Rand = rand.New(rand.NewSource(m.seed))

	result, err := mayfly.Optimize(config)
	if err != nil {
		return nil, fmt.Errorf("opt: mayfly: %w", err)
	}

	best := make([]float64, dim)
	for i, v := range result.GlobalBest.Position {
		best[i] = math.Min(math.Max(v, lower[i]), upper[i])
	}
	return &Result{
		X:          best,
		Cost:       result.GlobalBest.Cost,
		Iterations: m.maxIters,
		Status:     "completed",
	}, nil
}

// envelope returns the scalar bound pair covering every dimension,
// substituting a radius around x0 where a bound is infinite.
func envelope(x0, lower, upper []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := range x0 {
		l, u := lower[i], upper[i]
		if math.IsInf(l, -1) {
			l = x0[i] - searchRadius
		}
		if math.IsInf(u, 1) {
			u = x0[i] + searchRadius
		}
		lo = math.Min(lo, l)
		hi = math.Max(hi, u)
	}
	return lo, hi
}
