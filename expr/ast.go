// Package expr holds the internal expression tree shared by the program
// parsers: binary arithmetic, unary negation, feature references, and
// numeric literals. Trees come either from the infix parser (user input) or
// from the symbolic engine bridge (simplified programs).
package expr

import "errors"

// ErrUnsupportedNode marks a tree node kind a walker does not handle.
var ErrUnsupportedNode = errors.New("unsupported expression node")

// BinOp enumerates the binary operators the conversion layer understands.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpPow
)

func (op BinOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpPow:
		return "^"
	}
	return "?"
}

// Expr is a node in the internal expression tree.
type Expr interface {
	isExpr()
}

// Binary applies a binary operator to two subtrees.
type Binary struct {
	Op          BinOp
	Left, Right Expr
}

// Neg is unary arithmetic negation.
type Neg struct {
	Operand Expr
}

// Var references feature column X<Index>.
type Var struct {
	Index int
}

// Num is a numeric literal. IsInt records whether the literal's stored form
// is an exact integer; integer-typed literals are never treated as free
// parameters and never consume re-injected constants. Forced marks an
// injected unit coefficient that must become a free parameter regardless of
// its value.
type Num struct {
	Value  float64
	IsInt  bool
	Forced bool
}

func (*Binary) isExpr() {}
func (*Neg) isExpr()    {}
func (*Var) isExpr()    {}
func (*Num) isExpr()    {}

// InjectCoefficients wraps every top-level additive term in a forced unit
// coefficient so that numeric refitting treats each term's scale as a free
// parameter even when simplification collapsed it to exactly 1.
func InjectCoefficients(e Expr) Expr {
	switch n := e.(type) {
	case *Binary:
		if n.Op == OpAdd || n.Op == OpSub {
			return &Binary{Op: n.Op, Left: InjectCoefficients(n.Left), Right: InjectCoefficients(n.Right)}
		}
	case *Neg:
		return &Neg{Operand: InjectCoefficients(n.Operand)}
	}
	return &Binary{Op: OpMul, Left: &Num{Value: 1, Forced: true}, Right: e}
}
