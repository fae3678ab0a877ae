package optimize

import "github.com/cwbudde/gpexpr/expr"

// newCost turns a compiled expression into the scalar objective handed to
// the numeric minimizer: cost = -sign * score.
//
// When nProgramSum > 1 the feature matrix is laid out as repeated blocks of
// nFeatures+1 columns. The first column of each block holds the per-row
// weight of that block's copy of the program, and block k contributes
//
//	X[i][k-1] * eval(row i, base column k)
//
// to the prediction, with k stepping by nFeatures+1.
func newCost(eval expr.EvalFunc, X [][]float64, y, w []float64, m Metric, nProgramSum, nFeatures int) func([]float64) float64 {
	if w == nil {
		w = make([]float64, len(y))
		for i := range w {
			w[i] = 1
		}
	}
	return func(z []float64) float64 {
		yPred := make([]float64, len(y))
		if nProgramSum > 1 {
			nf := nFeatures + 1
			for i, row := range X {
				var sum float64
				for k := 1; k < nProgramSum*nf+1; k += nf {
					sum += row[k-1] * eval(row, k, z)
				}
				yPred[i] = sum
			}
		} else {
			for i, row := range X {
				yPred[i] = eval(row, 0, z)
			}
		}
		return -m.Sign * m.Score(y, yPred, w)
	}
}
