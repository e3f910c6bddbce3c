package curvefit

import (
	"errors"
	"math"
	"testing"
)

func TestInitialVector(t *testing.T) {
	f, err := New("poly", func(x float64, p []float64) float64 {
		return p[0]*x*x + p[1]*x + p[2]
	}, []string{"x"}, []string{"a", "b", "c=7"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	t.Run("guesses in declared order", func(t *testing.T) {
		x0, err := f.initialVector(map[string]float64{"a": 1, "b": 2, "c": 3})
		if err != nil {
			t.Fatalf("initialVector failed: %v", err)
		}
		want := []float64{1, 2, 3}
		for i := range want {
			if x0[i] != want[i] {
				t.Errorf("x0[%d] = %f, want %f", i, x0[i], want[i])
			}
		}
	})

	t.Run("declared default as fallback", func(t *testing.T) {
		x0, err := f.initialVector(map[string]float64{"a": 1, "b": 2})
		if err != nil {
			t.Fatalf("initialVector failed: %v", err)
		}
		if x0[2] != 7 {
			t.Errorf("Expected default 7 for c, got %f", x0[2])
		}
	})

	t.Run("guess wins over default", func(t *testing.T) {
		x0, err := f.initialVector(map[string]float64{"a": 1, "b": 2, "c": 9})
		if err != nil {
			t.Fatalf("initialVector failed: %v", err)
		}
		if x0[2] != 9 {
			t.Errorf("Expected guess 9 for c, got %f", x0[2])
		}
	})

	t.Run("missing guess", func(t *testing.T) {
		_, err := f.initialVector(map[string]float64{"a": 1})
		if !errors.Is(err, ErrMissingGuess) {
			t.Errorf("Expected ErrMissingGuess, got %v", err)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := f.initialVector(map[string]float64{"a": 1, "b": 2, "zz": 3})
		if !errors.Is(err, ErrParameter) {
			t.Errorf("Expected ErrParameter, got %v", err)
		}
	})
}

func TestInitialVectorSkipsFrozen(t *testing.T) {
	f, err := New("linear", linearModel, []string{"x"}, []string{"a", "b"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	frozen, err := f.Freeze(map[string]float64{"a": 2})
	if err != nil {
		t.Fatalf("Freeze failed: %v", err)
	}

	x0, err := frozen.initialVector(map[string]float64{"b": 3})
	if err != nil {
		t.Fatalf("initialVector failed: %v", err)
	}
	if len(x0) != 1 || x0[0] != 3 {
		t.Errorf("Expected vector [3], got %v", x0)
	}

	// A guess for a frozen parameter is rejected, not silently dropped.
	_, err = frozen.initialVector(map[string]float64{"a": 1, "b": 3})
	if !errors.Is(err, ErrParameter) {
		t.Errorf("Expected ErrParameter, got %v", err)
	}
}

func TestInitialVectorBoundsCheck(t *testing.T) {
	f, err := New("linear", linearModel, []string{"x"}, []string{"a", "b"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	bounded, err := f.Bound(map[string]Interval{"a": {0, 2}})
	if err != nil {
		t.Fatalf("Bound failed: %v", err)
	}

	if _, err := bounded.initialVector(map[string]float64{"a": 1, "b": 0}); err != nil {
		t.Errorf("In-bounds guess should pass: %v", err)
	}
	_, err = bounded.initialVector(map[string]float64{"a": 5, "b": 0})
	if !errors.Is(err, ErrParameter) {
		t.Errorf("Expected ErrParameter for out-of-bounds guess, got %v", err)
	}
}

func TestBoundVectors(t *testing.T) {
	f, err := New("poly", func(x float64, p []float64) float64 {
		return p[0]*x*x + p[1]*x + p[2]
	}, []string{"x"}, []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	g, err := f.Bound(map[string]Interval{"b": {-1, 1}})
	if err != nil {
		t.Fatalf("Bound failed: %v", err)
	}
	g, err = g.Freeze(map[string]float64{"c": 0})
	if err != nil {
		t.Fatalf("Freeze failed: %v", err)
	}

	lower, upper := g.boundVectors()
	if len(lower) != 2 || len(upper) != 2 {
		t.Fatalf("Expected 2 bound entries, got %d and %d", len(lower), len(upper))
	}

	// a is free: infinite bounds.
	if !math.IsInf(lower[0], -1) || !math.IsInf(upper[0], 1) {
		t.Errorf("Free parameter bounds should be infinite, got [%f, %f]", lower[0], upper[0])
	}
	// b carries its interval.
	if lower[1] != -1 || upper[1] != 1 {
		t.Errorf("Expected bounds [-1, 1] for b, got [%f, %f]", lower[1], upper[1])
	}
}

func TestFullParams(t *testing.T) {
	f, err := New("poly", func(x float64, p []float64) float64 {
		return p[0]*x*x + p[1]*x + p[2]
	}, []string{"x"}, []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	g, err := f.Freeze(map[string]float64{"b": 42})
	if err != nil {
		t.Fatalf("Freeze failed: %v", err)
	}

	dst := make([]float64, 3)
	g.fullParams(dst, []float64{1, 3})

	// Vector entries fill a and c around the frozen b.
	want := []float64{1, 42, 3}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %f, want %f", i, dst[i], want[i])
		}
	}
}

func TestParamMap(t *testing.T) {
	f, err := New("linear", linearModel, []string{"x"}, []string{"a", "b"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	g, err := f.Freeze(map[string]float64{"a": 1})
	if err != nil {
		t.Fatalf("Freeze failed: %v", err)
	}

	m := g.paramMap([]float64{5})
	if len(m) != 1 || m["b"] != 5 {
		t.Errorf("Expected map[b:5], got %v", m)
	}
}
