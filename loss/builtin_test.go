package loss

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestChiSquaredReducesToMSE(t *testing.T) {
	yTrue := []float64{1, 2, 3, 4}
	yEst := []float64{1, 2, 3, 6}

	// Residuals 0,0,0,-2 with unit weights and sigma:
	// mean squared residual = 4/4 = 1
	got := ChiSquared.Score(yTrue, yEst, nil, nil)
	if got != 1.0 {
		t.Errorf("Expected score 1.0, got %f", got)
	}
}

func TestChiSquaredWeightsAndSigma(t *testing.T) {
	yTrue := []float64{1, 2}
	yEst := []float64{2, 2}
	weights := []float64{3, 1}
	sigma := []float64{0.5, 1}

	// First sample: residual -1 scaled by sigma 0.5 -> -2, squared 4,
	// weighted by 3 -> 12. Second sample: 0. Mean = 6.
	got := ChiSquared.Score(yTrue, yEst, weights, sigma)
	if got != 6.0 {
		t.Errorf("Expected score 6.0, got %f", got)
	}
}

func TestChiSquaredCovarianceScale(t *testing.T) {
	cs, ok := ChiSquared.(CovarianceScaler)
	if !ok {
		t.Fatal("ChiSquared should implement CovarianceScaler")
	}

	// 2*cost/(n-free) = 2*3/(10-2) = 0.75
	if got := cs.CovarianceScale(3, 10, 2); got != 0.75 {
		t.Errorf("Expected scale 0.75, got %f", got)
	}

	// No degrees of freedom left
	if got := cs.CovarianceScale(3, 2, 2); !math.IsNaN(got) {
		t.Errorf("Expected NaN scale with n <= free, got %f", got)
	}
}

func TestLaplace(t *testing.T) {
	yTrue := []float64{0, 0, 0}
	yEst := []float64{1, -2, 3}

	// Mean absolute residual = (1+2+3)/3 = 2
	got := Laplace.Score(yTrue, yEst, nil, nil)
	if got != 2.0 {
		t.Errorf("Expected score 2.0, got %f", got)
	}
}

func TestLaplaceSigma(t *testing.T) {
	yTrue := []float64{0}
	yEst := []float64{3}
	sigma := []float64{2}

	// |0-3|/2 = 1.5
	got := Laplace.Score(yTrue, yEst, nil, sigma)
	if got != 1.5 {
		t.Errorf("Expected score 1.5, got %f", got)
	}
}

func TestPoissonPerfectFit(t *testing.T) {
	y := []float64{1, 4, 9}
	got := Poisson.Score(y, y, nil, nil)
	if got != 0 {
		t.Errorf("Expected score 0 for a perfect fit, got %f", got)
	}
}

func TestPoissonDeviance(t *testing.T) {
	yTrue := []float64{2}
	yEst := []float64{1}

	// 1 - 2 + 2*ln(2/1) = -1 + 2*ln 2
	want := -1 + 2*math.Log(2)
	got := Poisson.Score(yTrue, yEst, nil, nil)
	if !almostEqual(got, want, 1e-12) {
		t.Errorf("Expected score %f, got %f", want, got)
	}
}

func TestPoissonZeroObservation(t *testing.T) {
	yTrue := []float64{0}
	yEst := []float64{3}

	// A zero count contributes just the prediction.
	got := Poisson.Score(yTrue, yEst, nil, nil)
	if got != 3.0 {
		t.Errorf("Expected score 3.0, got %f", got)
	}
}

func TestPoissonNonPositivePrediction(t *testing.T) {
	yTrue := []float64{1, 2}

	for _, yEst := range [][]float64{{1, 0}, {1, -2}} {
		got := Poisson.Score(yTrue, yEst, nil, nil)
		if !math.IsInf(got, 1) {
			t.Errorf("Expected +Inf for prediction %v, got %f", yEst, got)
		}
	}
}

func TestPoissonIgnoresSigma(t *testing.T) {
	yTrue := []float64{2, 5}
	yEst := []float64{3, 4}
	sigma := []float64{0.1, 100}

	with := Poisson.Score(yTrue, yEst, nil, sigma)
	without := Poisson.Score(yTrue, yEst, nil, nil)
	if with != without {
		t.Errorf("Sigma should not affect poisson: %f != %f", with, without)
	}
}

func TestHuber(t *testing.T) {
	h := Huber(1.0)

	tests := []struct {
		name  string
		yTrue []float64
		yEst  []float64
		want  float64
	}{
		// |r| = 0.5 <= delta: 0.5*0.25 = 0.125
		{"quadratic region", []float64{0}, []float64{0.5}, 0.125},
		// |r| = 1 = delta: 0.5*1 = 0.5
		{"transition point", []float64{0}, []float64{1}, 0.5},
		// |r| = 3 > delta: 1*(3-0.5) = 2.5
		{"linear region", []float64{0}, []float64{3}, 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := h.Score(tt.yTrue, tt.yEst, nil, nil)
			if !almostEqual(got, tt.want, 1e-12) {
				t.Errorf("Expected score %f, got %f", tt.want, got)
			}
		})
	}
}

func TestHuberMatchesChiSquaredForSmallResiduals(t *testing.T) {
	// Inside the quadratic region huber is half the squared residual.
	yTrue := []float64{1, 2, 3}
	yEst := []float64{1.1, 2.2, 2.9}

	h := Huber(10).Score(yTrue, yEst, nil, nil)
	c := ChiSquared.Score(yTrue, yEst, nil, nil)
	if !almostEqual(2*h, c, 1e-12) {
		t.Errorf("Expected 2*huber == chi_squared, got %f vs %f", 2*h, c)
	}
}

func TestFuncAdapter(t *testing.T) {
	l := New("mse", func(yTrue, yEst, weights, sigma []float64) float64 {
		var sum float64
		for i := range yTrue {
			d := yTrue[i] - yEst[i]
			sum += d * d
		}
		return sum / float64(len(yTrue))
	})

	if l.Name() != "mse" {
		t.Errorf("Expected name mse, got %q", l.Name())
	}
	got := l.Score([]float64{0, 0}, []float64{1, 3}, nil, nil)
	if got != 5.0 {
		t.Errorf("Expected score 5.0, got %f", got)
	}
}
