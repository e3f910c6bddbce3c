// Package curvefit fits the named parameters of model functions to
// observed data.
//
// A model is an ordinary Go function wrapped with an explicit
// declaration of its positional arguments and fittable parameters:
//
//	linear, err := curvefit.New("linear",
//		func(x float64, p []float64) float64 { return p[0]*x + p[1] },
//		[]string{"x"}, []string{"a", "b"})
//
// Parameters can be frozen to fixed values or bounded to intervals;
// both operations return new Function values and leave the receiver
// untouched. Fitting minimizes a selectable loss over the remaining
// free parameters and reports each fitted value with its standard
// error:
//
//	res, err := linear.Fit(xs, ys, map[string]float64{"a": 1, "b": 0}, nil)
//	fmt.Println(res) // linear(x; a=1.9932±0.0341, b=0.1034±0.0198)
//
// The numerical search is delegated to a pluggable minimizer backend
// (package opt); losses live in their own registry (package loss) and
// tabular data handling in package table.
package curvefit
