// Package models ships ready-to-fit model functions for common curve
// shapes. Each model is an immutable curvefit.Function, so callers can
// freeze, bound and fit shared instances concurrently; a transformation
// never changes the package-level value.
package models

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/cwbudde/curvefit"
)

var (
	// Linear is y = a*x + b.
	Linear = curvefit.MustNew("linear",
		func(x float64, p []float64) float64 { return p[0]*x + p[1] },
		[]string{"x"}, []string{"a", "b"})

	// Quadratic is y = a*x^2 + b*x + c.
	Quadratic = curvefit.MustNew("quadratic",
		func(x float64, p []float64) float64 { return p[0]*x*x + p[1]*x + p[2] },
		[]string{"x"}, []string{"a", "b", "c"})

	// Cubic is y = a*x^3 + b*x^2 + c*x + d.
	Cubic = curvefit.MustNew("cubic",
		func(x float64, p []float64) float64 {
			return ((p[0]*x+p[1])*x+p[2])*x + p[3]
		},
		[]string{"x"}, []string{"a", "b", "c", "d"})

	// Exponential is y = a*exp(k*x).
	Exponential = curvefit.MustNew("exponential",
		func(x float64, p []float64) float64 { return p[0] * math.Exp(p[1]*x) },
		[]string{"x"}, []string{"a", "k"})

	// Power is y = a*x^k, defined for positive x.
	Power = curvefit.MustNew("power",
		func(x float64, p []float64) float64 { return p[0] * math.Pow(x, p[1]) },
		[]string{"x"}, []string{"a", "k"})

	// Gaussian is the bell curve amp*exp(-(x-mu)^2/(2*sigma^2)). sigma
	// defaults to 1 when no guess is given.
	Gaussian = curvefit.MustNew("gaussian",
		func(x float64, p []float64) float64 {
			d := x - p[1]
			return p[0] * math.Exp(-d*d/(2*p[2]*p[2]))
		},
		[]string{"x"}, []string{"amp", "mu", "sigma=1"})

	// Sine is y = amp*sin(freq*x + phase), phase defaulting to 0.
	Sine = curvefit.MustNew("sine",
		func(x float64, p []float64) float64 {
			return p[0] * math.Sin(p[1]*x+p[2])
		},
		[]string{"x"}, []string{"amp", "freq", "phase=0"})

	// Logistic is the sigmoid l/(1+exp(-k*(x-x0))), with the midpoint
	// x0 defaulting to 0.
	Logistic = curvefit.MustNew("logistic",
		func(x float64, p []float64) float64 {
			return p[0] / (1 + math.Exp(-p[1]*(x-p[2])))
		},
		[]string{"x"}, []string{"l", "k", "x0=0"})
)

var registry = map[string]*curvefit.Function{
	"linear":      Linear,
	"quadratic":   Quadratic,
	"cubic":       Cubic,
	"exponential": Exponential,
	"power":       Power,
	"gaussian":    Gaussian,
	"sine":        Sine,
	"logistic":    Logistic,
}

// Lookup returns the named built-in model.
func Lookup(name string) (*curvefit.Function, error) {
	m, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("models: unknown model %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return m, nil
}

// Names lists the built-in models alphabetically.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
