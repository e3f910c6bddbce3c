package models

import (
	"math"
	"testing"

	"github.com/cwbudde/curvefit"
)

func TestLookup(t *testing.T) {
	m, err := Lookup("linear")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if m != Linear {
		t.Error("Expected the Linear instance")
	}

	if _, err := Lookup("LINEAR"); err != nil {
		t.Errorf("Lookup should be case-insensitive: %v", err)
	}

	if _, err := Lookup("nope"); err == nil {
		t.Error("Expected an error for an unknown model")
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != 8 {
		t.Fatalf("Expected 8 models, got %d", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("Names should be sorted, got %v", names)
		}
	}
}

func TestModelValues(t *testing.T) {
	tests := []struct {
		model  *curvefit.Function
		x      float64
		params map[string]float64
		want   float64
	}{
		{Linear, 2, map[string]float64{"a": 3, "b": 1}, 7},
		{Quadratic, 2, map[string]float64{"a": 1, "b": 0, "c": -4}, 0},
		{Cubic, 2, map[string]float64{"a": 1, "b": 0, "c": 0, "d": 0}, 8},
		{Exponential, 0, map[string]float64{"a": 5, "k": 3}, 5},
		{Power, 3, map[string]float64{"a": 2, "k": 2}, 18},
		{Gaussian, 1, map[string]float64{"amp": 4, "mu": 1, "sigma": 2}, 4},
		{Sine, 0, map[string]float64{"amp": 2, "freq": 5, "phase": math.Pi / 2}, 2},
		{Logistic, 0, map[string]float64{"l": 6, "k": 1, "x0": 0}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.model.Name(), func(t *testing.T) {
			got, err := tt.model.Call([]float64{tt.x}, tt.params)
			if err != nil {
				t.Fatalf("Call failed: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Expected %f, got %f", tt.want, got)
			}
		})
	}
}

func TestGaussianDefaultSigma(t *testing.T) {
	sig := Gaussian.Signature()
	if v, ok := sig.Default("sigma"); !ok || v != 1 {
		t.Errorf("Expected default sigma=1, got %v, %v", v, ok)
	}
}

func TestSharedInstancesStayPristine(t *testing.T) {
	// Deriving a constrained variant must not leak into the shared
	// package-level model.
	frozen, err := Linear.Freeze(map[string]float64{"b": 0})
	if err != nil {
		t.Fatalf("Freeze failed: %v", err)
	}
	if !frozen.IsFrozen() {
		t.Error("Derived instance should be frozen")
	}
	if Linear.IsFrozen() {
		t.Error("Package-level Linear must stay unfrozen")
	}
}

func TestGaussianFit(t *testing.T) {
	// Recover a bell curve, relying on the declared sigma default for
	// the missing guess.
	xs := make([]float64, 21)
	ys := make([]float64, 21)
	for i := range xs {
		x := float64(i)/2 - 5
		xs[i] = x
		d := x - 0.5
		ys[i] = 3 * math.Exp(-d*d/(2*1.5*1.5))
	}

	res, err := Gaussian.Fit(xs, ys, map[string]float64{"amp": 2, "mu": 0}, nil)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if got := res.Value("amp"); math.Abs(got-3) > 1e-2 {
		t.Errorf("Expected amp close to 3, got %f", got)
	}
	if got := res.Value("mu"); math.Abs(got-0.5) > 1e-2 {
		t.Errorf("Expected mu close to 0.5, got %f", got)
	}
	if got := math.Abs(res.Value("sigma")); math.Abs(got-1.5) > 1e-2 {
		t.Errorf("Expected |sigma| close to 1.5, got %f", got)
	}
}
