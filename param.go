package curvefit

import (
	"fmt"
	"math"
)

// ParamState tells how a parameter takes part in optimization.
type ParamState int

const (
	// StateFree parameters are optimized without constraints.
	StateFree ParamState = iota
	// StateFrozen parameters keep a fixed value and leave the
	// optimization vector entirely.
	StateFrozen
	// StateBounded parameters are optimized within a closed interval.
	StateBounded
)

func (s ParamState) String() string {
	switch s {
	case StateFree:
		return "free"
	case StateFrozen:
		return "frozen"
	case StateBounded:
		return "bounded"
	default:
		return fmt.Sprintf("ParamState(%d)", int(s))
	}
}

// Interval is a closed parameter range. Either end may be infinite.
type Interval struct {
	Low  float64
	High float64
}

// Unbounded returns the interval covering the whole real line.
func Unbounded() Interval {
	return Interval{Low: math.Inf(-1), High: math.Inf(1)}
}

func (iv Interval) contains(v float64) bool {
	return v >= iv.Low && v <= iv.High
}

func (iv Interval) valid() bool {
	return iv.Low < iv.High
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%g, %g]", iv.Low, iv.High)
}

// ParamSpec describes the current state of one named model parameter.
// Specs are plain values: transformations copy them, never mutate them
// in place.
type ParamSpec struct {
	Name   string
	State  ParamState
	Value  float64  // frozen value, set when State is StateFrozen
	Bounds Interval // set when State is StateBounded
}
