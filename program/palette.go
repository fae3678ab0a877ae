package program

import "fmt"

// OpKind identifies one of the canonical operation kinds the conversion
// layer understands.
type OpKind int

const (
	KindAdd OpKind = iota
	KindSub
	KindMul
	KindDiv
	KindPow
	KindNeg
)

var kindNames = [...]string{"add", "sub", "mul", "div", "pow", "neg"}

func (k OpKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("OpKind(%d)", int(k))
	}
	return kindNames[k]
}

// Palette maps each canonical kind to the concrete operator available to
// the caller. A missing entry means the caller's function set does not
// include that operation, and the tree parser must work around it or fail.
type Palette map[OpKind]*Function

// NewPalette builds a palette from a caller-supplied function set, matched
// by name. A function outside the six supported kinds is a configuration
// error and is rejected before any parsing happens.
func NewPalette(funcs ...*Function) (Palette, error) {
	kinds := map[string]OpKind{
		"add": KindAdd,
		"sub": KindSub,
		"mul": KindMul,
		"div": KindDiv,
		"pow": KindPow,
		"neg": KindNeg,
	}
	pal := make(Palette, len(funcs))
	for _, fn := range funcs {
		kind, ok := kinds[fn.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFunction, fn.Name)
		}
		pal[kind] = fn
	}
	return pal, nil
}

// DefaultPalette covers all six kinds with the built-in functions.
func DefaultPalette() Palette {
	pal, _ := NewPalette(DefaultFunctions()...)
	return pal
}
