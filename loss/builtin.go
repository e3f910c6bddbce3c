package loss

import "math"

// at reads a weight-style vector that may be nil, defaulting to 1.
func at(v []float64, i int) float64 {
	if v == nil {
		return 1
	}
	return v[i]
}

// ChiSquared is the default loss: the mean of weighted squared
// residuals, each scaled by its sigma. With neutral weights and sigma
// it reduces to the mean squared error.
var ChiSquared Loss = chiSquared{}

type chiSquared struct{}

func (chiSquared) Name() string { return "chi_squared" }

func (chiSquared) Score(yTrue, yEst, weights, sigma []float64) float64 {
	var sum float64
	for i := range yTrue {
		r := (yTrue[i] - yEst[i]) / at(sigma, i)
		sum += at(weights, i) * r * r
	}
	return sum / float64(len(yTrue))
}

// CovarianceScale applies the reduced chi-square convention: the
// curvature is rescaled by the residual variance per degree of freedom,
// so a perfect fit reports vanishing parameter errors. With n <= free
// there are no degrees of freedom left and the scale is NaN.
func (chiSquared) CovarianceScale(cost float64, n, free int) float64 {
	if n <= free {
		return math.NaN()
	}
	return 2 * cost / float64(n-free)
}

// Laplace is the mean of weighted absolute residuals, each scaled by
// its sigma. It tolerates outliers better than ChiSquared.
var Laplace Loss = New("laplace", func(yTrue, yEst, weights, sigma []float64) float64 {
	var sum float64
	for i := range yTrue {
		sum += at(weights, i) * math.Abs(yTrue[i]-yEst[i]) / at(sigma, i)
	}
	return sum / float64(len(yTrue))
})

// Poisson is the mean Poisson deviance for counting data. Observed
// zeros contribute just the prediction; a non-positive prediction is
// outside the Poisson domain and scores +Inf. sigma does not apply to
// counting noise and is ignored.
var Poisson Loss = poisson{}

type poisson struct{}

func (poisson) Name() string { return "poisson" }

func (poisson) Score(yTrue, yEst, weights, sigma []float64) float64 {
	var sum float64
	for i := range yTrue {
		yt, ye := yTrue[i], yEst[i]
		if ye <= 0 {
			return math.Inf(1)
		}
		d := ye - yt
		if yt > 0 {
			d += yt * math.Log(yt/ye)
		}
		sum += at(weights, i) * d
	}
	return sum / float64(len(yTrue))
}

// CovarianceScale maps the mean deviance back to the log-likelihood
// curvature it derives from.
func (poisson) CovarianceScale(cost float64, n, free int) float64 {
	return 1 / float64(n)
}

// Huber builds the robust Huber loss with transition point delta:
// quadratic for scaled residuals up to delta, linear beyond. It behaves
// like ChiSquared near the optimum while capping the influence of
// outliers.
func Huber(delta float64) Loss {
	return New("huber", func(yTrue, yEst, weights, sigma []float64) float64 {
		var sum float64
		for i := range yTrue {
			r := math.Abs(yTrue[i]-yEst[i]) / at(sigma, i)
			var rho float64
			if r <= delta {
				rho = 0.5 * r * r
			} else {
				rho = delta * (r - 0.5*delta)
			}
			sum += at(weights, i) * rho
		}
		return sum / float64(len(yTrue))
	})
}
