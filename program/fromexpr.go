package program

import (
	"fmt"
	"math"

	"github.com/cwbudde/gpexpr/expr"
)

// FromExpr flattens an expression tree into a prefix program using the
// operators available in the palette.
//
// Constants from params replace non-integer literals in left-to-right
// encounter order: the first float leaf discovered consumes the first
// parameter. This is how refitted constants are re-injected into the same
// structural positions the original constants occupied. The returned slice
// holds whatever was not consumed; a caller that expects a complete
// reconstruction must see it come back empty.
func FromExpr(e expr.Expr, pal Palette, params []float64) (Program, []float64, error) {
	s := &treeParser{pal: pal, params: params}
	p, err := s.parse(e)
	return p, s.params, err
}

type treeParser struct {
	pal    Palette
	params []float64
}

var binKinds = map[expr.BinOp]OpKind{
	expr.OpAdd: KindAdd,
	expr.OpSub: KindSub,
	expr.OpMul: KindMul,
	expr.OpDiv: KindDiv,
}

func (s *treeParser) parse(e expr.Expr) (Program, error) {
	switch n := e.(type) {
	case *expr.Binary:
		if n.Op == expr.OpPow {
			return s.parsePow(n)
		}
		kind, ok := binKinds[n.Op]
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedOperator, n.Op)
		}
		fn := s.pal[kind]
		if fn == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingOperator, kind)
		}
		l, err := s.parse(n.Left)
		if err != nil {
			return nil, err
		}
		r, err := s.parse(n.Right)
		if err != nil {
			return nil, err
		}
		out := make(Program, 0, 1+len(l)+len(r))
		out = append(out, Op{fn})
		out = append(out, l...)
		return append(out, r...), nil

	case *expr.Neg:
		o, err := s.parse(n.Operand)
		if err != nil {
			return nil, err
		}
		switch {
		case s.pal[KindNeg] != nil:
			return append(Program{Op{s.pal[KindNeg]}}, o...), nil
		case s.pal[KindMul] != nil:
			return append(Program{Op{s.pal[KindMul]}, Const(-1.0)}, o...), nil
		case s.pal[KindSub] != nil:
			return append(Program{Op{s.pal[KindSub]}, Const(0.0)}, o...), nil
		default:
			return nil, fmt.Errorf("%w: palette has none of neg, mul, sub", ErrUnsupportedNegation)
		}

	case *expr.Var:
		return Program{Feature(n.Index)}, nil

	case *expr.Num:
		// Integer-typed literals are emitted as float constants (bare
		// integers in operand position are reserved for feature indices)
		// and never consume re-injected parameters.
		if n.IsInt || len(s.params) == 0 {
			return Program{Const(n.Value)}, nil
		}
		v := s.params[0]
		s.params = s.params[1:]
		return Program{Const(v)}, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedNode, e)
}

// parsePow expands x^n into repeated multiplication whenever the exponent
// flattens to a single positive integer-valued constant and a multiply
// operator exists; the simplifier introduces such powers even when the
// source program never used one. Otherwise a power operator is required.
func (s *treeParser) parsePow(n *expr.Binary) (Program, error) {
	base, err := s.parse(n.Left)
	if err != nil {
		return nil, err
	}
	exp, err := s.parse(n.Right)
	if err != nil {
		return nil, err
	}

	if len(exp) == 1 {
		if c, ok := exp[0].(Const); ok {
			v := float64(c)
			if math.Abs(v-math.Round(v)) < 1e-11 && v > 0 && s.pal[KindMul] != nil {
				k := int(math.Round(v))
				out := make(Program, 0, k*len(base)+k-1)
				for i := 0; i < k-1; i++ {
					out = append(out, Op{s.pal[KindMul]})
					out = append(out, base...)
				}
				return append(out, base...), nil
			}
		}
	}
	if fn := s.pal[KindPow]; fn != nil {
		out := make(Program, 0, 1+len(base)+len(exp))
		out = append(out, Op{fn})
		out = append(out, base...)
		return append(out, exp...), nil
	}
	rendered, _ := exp.Render("%g")
	return nil, fmt.Errorf("%w: exponent %s is not a positive integer and the palette has no power operator", ErrUnsupportedExponent, rendered)
}
