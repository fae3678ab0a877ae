package expr

import (
	"fmt"
	"math"
)

// EvalFunc evaluates a compiled expression against one sample row x, a base
// feature column k, and the free-parameter vector z. Feature X<j> reads
// x[k+j], so the same closure serves every block of a block-summed feature
// matrix.
type EvalFunc func(x []float64, k int, z []float64) float64

// intTolerance is the absolute distance from the nearest integer below
// which a literal is kept as a fixed constant rather than extracted as a
// free parameter.
const intTolerance = 1e-11

// Compile lowers a tree to a closure and returns the initial values of the
// free parameters it extracted, in left-to-right encounter order. Integer-
// valued literals stay fixed; everything else becomes an indexed read from
// the parameter vector, which the caller may then refit. div supplies the
// protected division used for OpDiv.
func Compile(e Expr, div func(a, b float64) float64) (EvalFunc, []float64, error) {
	c := &compiler{div: div}
	f, err := c.compile(e)
	if err != nil {
		return nil, nil, err
	}
	return f, c.params, nil
}

type compiler struct {
	div    func(a, b float64) float64
	params []float64
}

func (c *compiler) compile(e Expr) (EvalFunc, error) {
	switch n := e.(type) {
	case *Binary:
		l, err := c.compile(n.Left)
		if err != nil {
			return nil, err
		}
		r, err := c.compile(n.Right)
		if err != nil {
			return nil, err
		}
		switch n.Op {
		case OpAdd:
			return func(x []float64, k int, z []float64) float64 { return l(x, k, z) + r(x, k, z) }, nil
		case OpSub:
			return func(x []float64, k int, z []float64) float64 { return l(x, k, z) - r(x, k, z) }, nil
		case OpMul:
			return func(x []float64, k int, z []float64) float64 { return l(x, k, z) * r(x, k, z) }, nil
		case OpDiv:
			div := c.div
			return func(x []float64, k int, z []float64) float64 { return div(l(x, k, z), r(x, k, z)) }, nil
		case OpPow:
			return func(x []float64, k int, z []float64) float64 { return math.Pow(l(x, k, z), r(x, k, z)) }, nil
		}
		return nil, fmt.Errorf("%w: binary operator %v", ErrUnsupportedNode, n.Op)
	case *Neg:
		o, err := c.compile(n.Operand)
		if err != nil {
			return nil, err
		}
		return func(x []float64, k int, z []float64) float64 { return -o(x, k, z) }, nil
	case *Var:
		j := n.Index
		return func(x []float64, k int, z []float64) float64 { return x[k+j] }, nil
	case *Num:
		if !n.Forced && (n.IsInt || math.Abs(n.Value-math.Round(n.Value)) < intTolerance) {
			v := n.Value
			return func([]float64, int, []float64) float64 { return v }, nil
		}
		idx := len(c.params)
		c.params = append(c.params, n.Value)
		return func(x []float64, k int, z []float64) float64 { return z[idx] }, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedNode, e)
}
