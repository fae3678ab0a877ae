package program

import "fmt"

// Eval interprets the program against a single sample row. It backs the
// equivalence tests and the CLI; batch fitness evaluation belongs to the
// surrounding evolutionary system, not this package.
func (p Program) Eval(x []float64) (float64, error) {
	v, rest, err := evalPrefix(p, x)
	if err != nil {
		return 0, err
	}
	if len(rest) != 0 {
		return 0, fmt.Errorf("%w: %d trailing nodes", ErrMalformed, len(rest))
	}
	return v, nil
}

func evalPrefix(p Program, x []float64) (float64, Program, error) {
	if len(p) == 0 {
		return 0, nil, fmt.Errorf("%w: unexpected end of program", ErrMalformed)
	}
	switch n := p[0].(type) {
	case Op:
		if n.Fn.Apply == nil {
			return 0, nil, fmt.Errorf("%w: %s has no implementation", ErrUnsupportedOperator, n.Fn.Name)
		}
		args := make([]float64, n.Fn.Arity)
		rest := p[1:]
		for i := range args {
			var err error
			args[i], rest, err = evalPrefix(rest, x)
			if err != nil {
				return 0, nil, err
			}
		}
		return n.Fn.Apply(args...), rest, nil
	case Feature:
		if int(n) < 0 || int(n) >= len(x) {
			return 0, nil, fmt.Errorf("%w: feature X%d outside sample of width %d", ErrMalformed, int(n), len(x))
		}
		return x[int(n)], p[1:], nil
	case Const:
		return float64(n), p[1:], nil
	default:
		return 0, nil, fmt.Errorf("%w: %T", ErrUnsupportedNode, p[0])
	}
}
