package program

import "github.com/cwbudde/gpexpr/expr"

// FromString converts a mathematical expression with features named X0, X1,
// ... into a program over the caller's function set. The set may only
// contain the six operations the conversion parser implements; anything
// else is rejected before parsing begins. Literal constants pass through as
// written.
func FromString(src string, funcs ...*Function) (Program, error) {
	pal, err := NewPalette(funcs...)
	if err != nil {
		return nil, err
	}
	tree, err := expr.Parse(src)
	if err != nil {
		return nil, err
	}
	p, _, err := FromExpr(tree, pal, nil)
	if err != nil {
		return nil, err
	}
	return p, nil
}
