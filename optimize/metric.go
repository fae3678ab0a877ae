package optimize

import "math"

// Metric scores predictions against targets. Sign indicates the preferred
// direction: +1 when greater is better, -1 when smaller is better. The
// optimizer converts any metric into a minimization objective via
// cost = -Sign * Score, so minimization always improves the metric.
type Metric struct {
	Name  string
	Sign  float64
	Score func(yTrue, yPred, weight []float64) float64
}

// MAE is the weighted mean absolute error (smaller is better).
func MAE() Metric {
	return Metric{
		Name: "mean absolute error",
		Sign: -1,
		Score: func(y, yPred, w []float64) float64 {
			var sum, wsum float64
			for i := range y {
				sum += w[i] * math.Abs(yPred[i]-y[i])
				wsum += w[i]
			}
			return sum / wsum
		},
	}
}

// MSE is the weighted mean squared error (smaller is better).
func MSE() Metric {
	return Metric{
		Name: "mean squared error",
		Sign: -1,
		Score: func(y, yPred, w []float64) float64 {
			var sum, wsum float64
			for i := range y {
				d := yPred[i] - y[i]
				sum += w[i] * d * d
				wsum += w[i]
			}
			return sum / wsum
		},
	}
}

// RMSE is the root of the weighted mean squared error (smaller is better).
func RMSE() Metric {
	mse := MSE()
	return Metric{
		Name: "root mean squared error",
		Sign: -1,
		Score: func(y, yPred, w []float64) float64 {
			return math.Sqrt(mse.Score(y, yPred, w))
		},
	}
}
