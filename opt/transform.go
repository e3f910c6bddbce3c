package opt

import "math"

// boundTransform maps between an unconstrained internal space and the
// box-bounded external space, dimension by dimension:
//
//	(-inf, +inf): x = u
//	[lo,  +inf):  x = lo - 1 + sqrt(u*u + 1)
//	(-inf,  hi]:  x = hi + 1 - sqrt(u*u + 1)
//	[lo,    hi]:  x = lo + (hi-lo)/2 * (sin(u) + 1)
//
// These are the classic MINUIT transformations. They keep every
// internal point feasible, which lets unconstrained methods honor box
// bounds exactly.
type boundTransform struct {
	lower, upper []float64
	active       bool
}

func newBoundTransform(lower, upper []float64) *boundTransform {
	t := &boundTransform{lower: lower, upper: upper}
	for i := range lower {
		if !math.IsInf(lower[i], -1) || !math.IsInf(upper[i], 1) {
			t.active = true
			break
		}
	}
	return t
}

// identity reports whether no dimension carries a bound, i.e. internal
// and external space coincide.
func (t *boundTransform) identity() bool { return !t.active }

// external maps an internal vector to model space. Always returns a
// fresh slice.
func (t *boundTransform) external(u []float64) []float64 {
	x := make([]float64, len(u))
	if !t.active {
		copy(x, u)
		return x
	}
	for i, v := range u {
		lo, hi := t.lower[i], t.upper[i]
		loInf, hiInf := math.IsInf(lo, -1), math.IsInf(hi, 1)
		switch {
		case loInf && hiInf:
			x[i] = v
		case hiInf:
			x[i] = lo - 1 + math.Sqrt(v*v+1)
		case loInf:
			x[i] = hi + 1 - math.Sqrt(v*v+1)
		default:
			x[i] = lo + (hi-lo)/2*(math.Sin(v)+1)
		}
	}
	return x
}

// internal maps a model-space point into the internal space, clamping
// it onto the bounds first so out-of-range starting points stay usable.
func (t *boundTransform) internal(x []float64) []float64 {
	u := make([]float64, len(x))
	if !t.active {
		copy(u, x)
		return u
	}
	for i, v := range x {
		lo, hi := t.lower[i], t.upper[i]
		loInf, hiInf := math.IsInf(lo, -1), math.IsInf(hi, 1)
		switch {
		case loInf && hiInf:
			u[i] = v
		case hiInf:
			v = math.Max(v, lo)
			u[i] = math.Sqrt(square(v-lo+1) - 1)
		case loInf:
			v = math.Min(v, hi)
			u[i] = math.Sqrt(square(hi-v+1) - 1)
		default:
			v = math.Min(math.Max(v, lo), hi)
			u[i] = math.Asin(2*(v-lo)/(hi-lo) - 1)
		}
	}
	return u
}

func square(v float64) float64 { return v * v }
