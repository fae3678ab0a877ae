// Package sym bridges prefix programs to the symbolic engine. Expressions
// are built and walked directly through the engine's tree API; no strings
// are evaluated anywhere in the pipeline.
package sym

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	gosymbol "github.com/njchilds90/gosymbol"

	"github.com/cwbudde/gpexpr/expr"
	"github.com/cwbudde/gpexpr/program"
)

// FromProgram builds a symbolic expression from a prefix program.
// Subtraction, division, and negation are lowered onto the engine's
// canonical add/mul/pow forms.
//
// Non-finite constants are replaced with 1.0: a program carrying them is
// not competitive anyway, and simplification only needs a valid expression
// to continue. Downstream fitness evaluation depends on this exact fallback
// value.
func FromProgram(p program.Program) (gosymbol.Expr, error) {
	e, rest, err := buildSymbolic(p)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: %d trailing nodes", program.ErrMalformed, len(rest))
	}
	return e, nil
}

func buildSymbolic(p program.Program) (gosymbol.Expr, program.Program, error) {
	if len(p) == 0 {
		return nil, nil, fmt.Errorf("%w: unexpected end of program", program.ErrMalformed)
	}
	switch n := p[0].(type) {
	case program.Op:
		args := make([]gosymbol.Expr, n.Fn.Arity)
		rest := p[1:]
		for i := range args {
			var err error
			args[i], rest, err = buildSymbolic(rest)
			if err != nil {
				return nil, nil, err
			}
		}
		e, err := applySymbolic(n.Fn, args)
		if err != nil {
			return nil, nil, err
		}
		return e, rest, nil
	case program.Feature:
		return gosymbol.S("X" + strconv.Itoa(int(n))), p[1:], nil
	case program.Const:
		v := float64(n)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 1.0
		}
		return gosymbol.NFloat(v), p[1:], nil
	}
	return nil, nil, fmt.Errorf("%w: %T", program.ErrUnsupportedNode, p[0])
}

func applySymbolic(fn *program.Function, args []gosymbol.Expr) (gosymbol.Expr, error) {
	switch fn.Name {
	case "add":
		return gosymbol.AddOf(args[0], args[1]), nil
	case "sub":
		return gosymbol.AddOf(args[0], gosymbol.MulOf(gosymbol.N(-1), args[1])), nil
	case "mul":
		return gosymbol.MulOf(args[0], args[1]), nil
	case "div":
		return gosymbol.MulOf(args[0], gosymbol.PowOf(args[1], gosymbol.N(-1))), nil
	case "pow":
		return gosymbol.PowOf(args[0], args[1]), nil
	case "neg":
		return gosymbol.MulOf(gosymbol.N(-1), args[0]), nil
	}
	return nil, fmt.Errorf("%w: %s", program.ErrUnsupportedOperator, fn.Name)
}

// Simplify reduces an expression with the symbolic engine.
func Simplify(e gosymbol.Expr) gosymbol.Expr {
	return gosymbol.DeepSimplify(e)
}

// ToExpr converts a (typically simplified) symbolic expression back into
// the internal tree walked by the program and evaluable-form parsers.
// Negative integer powers, the engine's encoding of division, are lowered
// back to explicit division nodes. Every node kind the engine can emit is
// either handled or rejected here.
func ToExpr(e gosymbol.Expr) (expr.Expr, error) {
	switch n := e.(type) {
	case *gosymbol.Num:
		return numLeaf(n), nil

	case *gosymbol.Sym:
		name := n.String()
		idx, ok := featureIndex(name)
		if !ok {
			return nil, fmt.Errorf("%w: symbol %s", expr.ErrUnsupportedNode, name)
		}
		return &expr.Var{Index: idx}, nil

	case *gosymbol.Add:
		terms := n.Terms()
		if len(terms) == 0 {
			return &expr.Num{Value: 0, IsInt: true}, nil
		}
		acc, err := ToExpr(terms[0])
		if err != nil {
			return nil, err
		}
		for _, t := range terms[1:] {
			te, err := ToExpr(t)
			if err != nil {
				return nil, err
			}
			acc = &expr.Binary{Op: expr.OpAdd, Left: acc, Right: te}
		}
		return acc, nil

	case *gosymbol.Mul:
		return mulToExpr(n)

	case *gosymbol.Pow:
		if den, ok, err := reciprocal(n); ok || err != nil {
			if err != nil {
				return nil, err
			}
			return &expr.Binary{Op: expr.OpDiv, Left: &expr.Num{Value: 1, IsInt: true}, Right: den}, nil
		}
		base, err := ToExpr(n.Base())
		if err != nil {
			return nil, err
		}
		exp, err := ToExpr(n.ExpExpr())
		if err != nil {
			return nil, err
		}
		return &expr.Binary{Op: expr.OpPow, Left: base, Right: exp}, nil

	case *gosymbol.Func:
		return nil, fmt.Errorf("%w: function %s", expr.ErrUnsupportedNode, n.String())
	}
	return nil, fmt.Errorf("%w: %T", expr.ErrUnsupportedNode, e)
}

// mulToExpr splits a product into numerator and denominator factors so that
// x*y^-1 round-trips as x/y, and pulls a leading -1 coefficient out as a
// negation node.
func mulToExpr(m *gosymbol.Mul) (expr.Expr, error) {
	factors := m.Factors()
	negate := false
	var num, den []expr.Expr

	for i, f := range factors {
		if i == 0 && len(factors) > 1 {
			if c, ok := f.(*gosymbol.Num); ok && c.IsNegOne() {
				negate = true
				continue
			}
		}
		if pw, ok := f.(*gosymbol.Pow); ok {
			d, isRecip, err := reciprocal(pw)
			if err != nil {
				return nil, err
			}
			if isRecip {
				den = append(den, d)
				continue
			}
		}
		fe, err := ToExpr(f)
		if err != nil {
			return nil, err
		}
		num = append(num, fe)
	}

	out := foldMul(num)
	if len(den) > 0 {
		out = &expr.Binary{Op: expr.OpDiv, Left: out, Right: foldMul(den)}
	}
	if negate {
		out = &expr.Neg{Operand: out}
	}
	return out, nil
}

// reciprocal reports whether p is base^-n for a positive integer n and, if
// so, returns the denominator base^n.
func reciprocal(p *gosymbol.Pow) (expr.Expr, bool, error) {
	en, ok := p.ExpExpr().(*gosymbol.Num)
	if !ok || !en.IsInteger() || !en.IsNegative() {
		return nil, false, nil
	}
	base, err := ToExpr(p.Base())
	if err != nil {
		return nil, true, err
	}
	n := -en.Float64()
	if n == 1 {
		return base, true, nil
	}
	return &expr.Binary{Op: expr.OpPow, Left: base, Right: &expr.Num{Value: n, IsInt: true}}, true, nil
}

func foldMul(factors []expr.Expr) expr.Expr {
	if len(factors) == 0 {
		return &expr.Num{Value: 1, IsInt: true}
	}
	acc := factors[0]
	for _, f := range factors[1:] {
		acc = &expr.Binary{Op: expr.OpMul, Left: acc, Right: f}
	}
	return acc
}

func numLeaf(n *gosymbol.Num) expr.Expr {
	v := n.Float64()
	// Exact rational arithmetic cannot print infinity sentinels, but a
	// rational can still overflow float64 on the way out; the 1.0 fallback
	// mirrors the sentinel replacement the fitness pipeline expects.
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &expr.Num{Value: 1, IsInt: true}
	}
	return &expr.Num{Value: v, IsInt: n.IsInteger()}
}

func featureIndex(name string) (int, bool) {
	if len(name) < 2 || name[0] != 'X' {
		return 0, false
	}
	idx, err := strconv.Atoi(name[1:])
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}

// MathString renders a program as an infix mathematical expression, letting
// the symbolic engine normalize the operator spelling, and optionally
// substitutes human-readable feature names. Substitution runs from the
// highest feature index down so that the replacement for X1 never corrupts
// X10.
func MathString(p program.Program, featureNames []string, format string) (string, error) {
	if format == "" {
		format = "%.8g"
	}
	ge, err := FromProgram(p)
	if err != nil {
		return "", err
	}
	tree, err := ToExpr(ge)
	if err != nil {
		return "", err
	}
	s := expr.Render(tree, format)
	for i := len(featureNames) - 1; i >= 0; i-- {
		s = strings.ReplaceAll(s, "X"+strconv.Itoa(i), featureNames[i])
	}
	return s, nil
}
