package program

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromString(t *testing.T) {
	p, err := FromString("X0*X1 + 2.0", DefaultFunctions()...)
	require.NoError(t, err)
	require.NoError(t, p.Validate())

	v, err := p.Eval([]float64{3, 4})
	require.NoError(t, err)
	assert.Equal(t, 14.0, v)
}

func TestFromStringRejectsUnknownFunction(t *testing.T) {
	sin := &Function{Name: "sin", Arity: 1}
	funcs := append(DefaultFunctions(), sin)

	_, err := FromString("X0 + X1", funcs...)
	require.ErrorIs(t, err, ErrUnsupportedFunction)
	assert.Contains(t, err.Error(), "sin")
}

func TestFromStringHighFeatureIndex(t *testing.T) {
	p, err := FromString("X10 + X1", FnAdd)
	require.NoError(t, err)
	assert.Equal(t, Program{Op{FnAdd}, Feature(10), Feature(1)}, p)
}

func TestFromStringMalformedInput(t *testing.T) {
	_, err := FromString("X0 + ", DefaultFunctions()...)
	assert.Error(t, err)
}
