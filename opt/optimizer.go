package opt

import "math"

// Optimizer defines a derivative-free minimization algorithm over a
// box-bounded parameter space.
type Optimizer interface {
	// Run executes the optimization
	// eval: objective function to minimize
	// lower, upper: parameter bounds
	// dim: dimensionality of parameter space
	// Returns: best parameters and best cost
	Run(eval func([]float64) float64, lower, upper []float64, dim int) ([]float64, float64)
}

// BoundsAround builds a search box centered on an initial parameter vector.
// Refitting starts from the constants already present in the expression, so
// each dimension spans span times its magnitude, at least unit width.
func BoundsAround(params []float64, span float64) (lower, upper []float64) {
	lower = make([]float64, len(params))
	upper = make([]float64, len(params))
	for i, p := range params {
		w := span * math.Abs(p)
		if w < 1 {
			w = 1
		}
		lower[i] = p - w
		upper[i] = p + w
	}
	return lower, upper
}
