// Package program holds the flattened prefix representation of a
// symbolic-regression individual and the parsers that convert expression
// trees and mathematical strings into it.
package program

import "math"

// Function is an operator token: a named operation with a fixed arity that
// can appear in a Program. Apply is the scalar implementation used by the
// plain interpreter; the conversion layer itself only needs Name and Arity.
type Function struct {
	Name  string
	Arity int
	Apply func(args ...float64) float64
}

// ProtectedDiv divides a by b, returning 1.0 whenever |b| is 0.001 or
// smaller so that division never produces an infinite or undefined value.
func ProtectedDiv(a, b float64) float64 {
	if math.Abs(b) > 0.001 {
		return a / b
	}
	return 1.0
}

// Built-in operator tokens covering all six palette kinds. Division is
// protected.
var (
	FnAdd = &Function{Name: "add", Arity: 2, Apply: func(a ...float64) float64 { return a[0] + a[1] }}
	FnSub = &Function{Name: "sub", Arity: 2, Apply: func(a ...float64) float64 { return a[0] - a[1] }}
	FnMul = &Function{Name: "mul", Arity: 2, Apply: func(a ...float64) float64 { return a[0] * a[1] }}
	FnDiv = &Function{Name: "div", Arity: 2, Apply: func(a ...float64) float64 { return ProtectedDiv(a[0], a[1]) }}
	FnPow = &Function{Name: "pow", Arity: 2, Apply: func(a ...float64) float64 { return math.Pow(a[0], a[1]) }}
	FnNeg = &Function{Name: "neg", Arity: 1, Apply: func(a ...float64) float64 { return -a[0] }}
)

// DefaultFunctions returns the full built-in function set.
func DefaultFunctions() []*Function {
	return []*Function{FnAdd, FnSub, FnMul, FnDiv, FnPow, FnNeg}
}
