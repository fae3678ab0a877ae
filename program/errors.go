package program

import "errors"

// Conversion failures are deterministic properties of the input expression
// and the caller's function set; none are transient.
var (
	// ErrMissingOperator means the palette lacks the operator a tree node
	// requires.
	ErrMissingOperator = errors.New("operator not in palette")

	// ErrUnsupportedExponent means a power node could neither be expanded
	// into repeated multiplication nor emitted through a power operator.
	ErrUnsupportedExponent = errors.New("unsupported exponent")

	// ErrUnsupportedNegation means none of neg, mul, or sub is available to
	// express a unary negation.
	ErrUnsupportedNegation = errors.New("no operator available to express negation")

	// ErrUnsupportedOperator marks an operator outside the six-kind contract.
	ErrUnsupportedOperator = errors.New("unsupported operator")

	// ErrUnsupportedNode marks a tree node kind the parser does not handle.
	ErrUnsupportedNode = errors.New("unsupported expression node")

	// ErrUnsupportedFunction is raised before parsing begins when the
	// caller's function set contains an operation the conversion parser
	// does not implement.
	ErrUnsupportedFunction = errors.New("function not implemented in conversion parser")

	// ErrMalformed marks a prefix sequence that does not flatten a complete
	// expression tree.
	ErrMalformed = errors.New("malformed program")
)
