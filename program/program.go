package program

import (
	"fmt"
	"strings"
)

// Node is one element of a flattened prefix program: an operator token, a
// feature reference, or a floating-point constant.
type Node interface {
	isNode()
}

// Op wraps a Function as a program node.
type Op struct {
	Fn *Function
}

// Feature references an input column by index.
type Feature int

// Const is a floating-point constant operand.
type Const float64

func (Op) isNode()      {}
func (Feature) isNode() {}
func (Const) isNode()   {}

// Program is a prefix-order flattening of an expression tree: every
// operator token is immediately followed by exactly Arity complete operand
// subsequences.
type Program []Node

// String renders the program in call notation with full-precision
// constants.
func (p Program) String() string {
	s, _ := p.Render("%.15e")
	return s
}

// Render converts the program to its call-notation string form and reports
// the highest feature index referenced (for symbol-table construction).
// Constants are formatted with the given fmt verb.
//
// The walk keeps a stack of operands-remaining counters, seeded with a
// sentinel zero. Operator tokens push their arity and open a call; each
// operand decrements the top counter, and every counter that reaches zero
// closes the call it belongs to.
func (p Program) Render(format string) (string, int) {
	var b strings.Builder
	terminals := []int{0}
	maxFeature := 0

	for i, node := range p {
		if op, ok := node.(Op); ok {
			terminals = append(terminals, op.Fn.Arity)
			b.WriteString(op.Fn.Name)
			b.WriteByte('(')
			continue
		}

		switch n := node.(type) {
		case Feature:
			fmt.Fprintf(&b, "X%d", int(n))
			if int(n) > maxFeature {
				maxFeature = int(n)
			}
		case Const:
			fmt.Fprintf(&b, format, float64(n))
		}

		terminals[len(terminals)-1]--
		for terminals[len(terminals)-1] == 0 {
			terminals = terminals[:len(terminals)-1]
			terminals[len(terminals)-1]--
			b.WriteByte(')')
		}
		if i != len(p)-1 {
			b.WriteString(", ")
		}
	}
	return b.String(), maxFeature
}

// Validate checks the terminal-counting invariant: walking the sequence,
// the number of open operand slots must reach zero exactly at the final
// node and never before it.
func (p Program) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("%w: empty program", ErrMalformed)
	}
	open := 1
	for i, node := range p {
		if open <= 0 {
			return fmt.Errorf("%w: trailing nodes at position %d", ErrMalformed, i)
		}
		if op, ok := node.(Op); ok {
			open += op.Fn.Arity - 1
		} else {
			open--
		}
	}
	if open != 0 {
		return fmt.Errorf("%w: %d operand slots left open", ErrMalformed, open)
	}
	return nil
}
