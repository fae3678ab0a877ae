package expr

import (
	"fmt"
	"strconv"
	"strings"
)

// Render produces an infix string for a tree, formatting non-integer
// constants with the given fmt verb. Output parses back through Parse with
// identical structure up to associativity.
func Render(e Expr, format string) string {
	var b strings.Builder
	render(&b, e, format)
	return b.String()
}

const (
	precSum = iota + 1
	precProduct
	precPower
	precAtom
)

func precedence(e Expr) int {
	switch n := e.(type) {
	case *Binary:
		switch n.Op {
		case OpAdd, OpSub:
			return precSum
		case OpMul, OpDiv:
			return precProduct
		default:
			return precPower
		}
	case *Neg:
		return precSum
	case *Num:
		if n.Value < 0 {
			return precSum
		}
	}
	return precAtom
}

func render(b *strings.Builder, e Expr, format string) {
	switch n := e.(type) {
	case *Binary:
		renderBinary(b, n, format)
	case *Neg:
		b.WriteByte('-')
		child(b, n.Operand, format, precedence(n.Operand) < precProduct)
	case *Var:
		fmt.Fprintf(b, "X%d", n.Index)
	case *Num:
		if n.IsInt {
			b.WriteString(strconv.FormatFloat(n.Value, 'g', -1, 64))
		} else {
			fmt.Fprintf(b, format, n.Value)
		}
	}
}

func renderBinary(b *strings.Builder, n *Binary, format string) {
	p := precedence(n)

	// a + (-b) reads as a subtraction.
	if n.Op == OpAdd {
		if neg, ok := n.Right.(*Neg); ok {
			renderBinary(b, &Binary{Op: OpSub, Left: n.Left, Right: neg.Operand}, format)
			return
		}
		if num, ok := n.Right.(*Num); ok && num.Value < 0 {
			pos := *num
			pos.Value = -num.Value
			renderBinary(b, &Binary{Op: OpSub, Left: n.Left, Right: &pos}, format)
			return
		}
	}

	leftParens := precedence(n.Left) < p
	if n.Op == OpPow {
		// Power is right-associative, so a parenthesized base is needed even
		// for equal precedence: (2^3)^2.
		leftParens = precedence(n.Left) <= p
	}
	child(b, n.Left, format, leftParens)

	switch n.Op {
	case OpAdd:
		b.WriteString(" + ")
	case OpSub:
		b.WriteString(" - ")
	default:
		b.WriteString(n.Op.String())
	}

	rightParens := precedence(n.Right) < p
	if n.Op == OpSub || n.Op == OpDiv {
		rightParens = precedence(n.Right) <= p
	}
	child(b, n.Right, format, rightParens)
}

func child(b *strings.Builder, e Expr, format string, parens bool) {
	if parens {
		b.WriteByte('(')
	}
	render(b, e, format)
	if parens {
		b.WriteByte(')')
	}
}
