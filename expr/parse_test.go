package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPowerBindsTighterThanMultiplication(t *testing.T) {
	e, err := Parse("3*X0^2")
	require.NoError(t, err)

	mul, ok := e.(*Binary)
	require.True(t, ok)
	assert.Equal(t, OpMul, mul.Op)
	assert.Equal(t, &Num{Value: 3, IsInt: true}, mul.Left)

	pow, ok := mul.Right.(*Binary)
	require.True(t, ok)
	assert.Equal(t, OpPow, pow.Op)
	assert.Equal(t, &Var{Index: 0}, pow.Left)
}

func TestPowerIsRightAssociative(t *testing.T) {
	e, err := Parse("2^3^2")
	require.NoError(t, err)

	outer, ok := e.(*Binary)
	require.True(t, ok)
	assert.Equal(t, OpPow, outer.Op)
	assert.Equal(t, &Num{Value: 2, IsInt: true}, outer.Left)

	inner, ok := outer.Right.(*Binary)
	require.True(t, ok)
	assert.Equal(t, OpPow, inner.Op)
}

func TestDoubleStarIsPowerAlias(t *testing.T) {
	caret, err := Parse("X0^2")
	require.NoError(t, err)
	stars, err := Parse("X0**2")
	require.NoError(t, err)
	assert.Equal(t, caret, stars)
}

func TestUnaryMinus(t *testing.T) {
	e, err := Parse("-X0 + 2")
	require.NoError(t, err)

	add, ok := e.(*Binary)
	require.True(t, ok)
	assert.Equal(t, OpAdd, add.Op)
	assert.Equal(t, &Neg{Operand: &Var{Index: 0}}, add.Left)
}

func TestSignedExponent(t *testing.T) {
	e, err := Parse("X0^-2")
	require.NoError(t, err)

	pow, ok := e.(*Binary)
	require.True(t, ok)
	assert.Equal(t, OpPow, pow.Op)
	assert.Equal(t, &Neg{Operand: &Num{Value: 2, IsInt: true}}, pow.Right)
}

func TestNumberTyping(t *testing.T) {
	tests := []struct {
		src   string
		isInt bool
	}{
		{"2", true},
		{"42", true},
		{"2.0", false},
		{"2.5", false},
		{"1e3", false},
	}
	for _, tt := range tests {
		e, err := Parse(tt.src)
		require.NoError(t, err)
		num, ok := e.(*Num)
		require.True(t, ok, tt.src)
		assert.Equal(t, tt.isInt, num.IsInt, tt.src)
	}
}

func TestParseErrors(t *testing.T) {
	bad := []string{
		"",
		"X0 +",
		")",
		"foo",
		"sin(X0)",
		"(X0 + X1",
		"1..2",
		"X0 X1",
	}
	for _, src := range bad {
		_, err := Parse(src)
		assert.Error(t, err, "input %q", src)
	}
}

func TestRenderRoundTrip(t *testing.T) {
	exprs := []string{
		"X0 + X1",
		"X0 - X1",
		"3*X0^2",
		"(X0 + X1)*X0^2",
		"X0/(X1*X2)",
		"X0^(-2)",
		"-(X0 + X1)",
		"2.5*X0 + 1.5",
		"X0 - (X1 - X2)",
	}
	for _, src := range exprs {
		e, err := Parse(src)
		require.NoError(t, err)
		assert.Equal(t, src, Render(e, "%g"), "input %q", src)
	}
}

func TestRenderNegativeConstantAsSubtraction(t *testing.T) {
	e := &Binary{Op: OpAdd, Left: &Var{Index: 0}, Right: &Num{Value: -2, IsInt: true}}
	assert.Equal(t, "X0 - 2", Render(e, "%g"))
}
