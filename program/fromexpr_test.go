package program

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/gpexpr/expr"
)

func mustParse(t *testing.T, src string) expr.Expr {
	t.Helper()
	e, err := expr.Parse(src)
	require.NoError(t, err)
	return e
}

func mustPalette(t *testing.T, funcs ...*Function) Palette {
	t.Helper()
	pal, err := NewPalette(funcs...)
	require.NoError(t, err)
	return pal
}

func TestPowerExpandsToMultiplication(t *testing.T) {
	pal := mustPalette(t, FnAdd, FnMul)

	p, rest, err := FromExpr(mustParse(t, "X0^3"), pal, nil)
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, Program{Op{FnMul}, Feature(0), Op{FnMul}, Feature(0), Feature(0)}, p)

	v, err := p.Eval([]float64{2})
	require.NoError(t, err)
	assert.Equal(t, 8.0, v)
}

func TestPowerFallsBackToPowOperator(t *testing.T) {
	pal := mustPalette(t, FnPow)

	p, _, err := FromExpr(mustParse(t, "X0^2.5"), pal, nil)
	require.NoError(t, err)
	assert.Equal(t, Program{Op{FnPow}, Feature(0), Const(2.5)}, p)
}

func TestNonIntegerExponentWithoutPow(t *testing.T) {
	pal := mustPalette(t, FnAdd, FnSub, FnMul, FnDiv, FnNeg)

	_, _, err := FromExpr(mustParse(t, "X0^2.5"), pal, nil)
	require.ErrorIs(t, err, ErrUnsupportedExponent)
	assert.Contains(t, err.Error(), "2.5")
}

func TestNegationFallbackChain(t *testing.T) {
	tests := []struct {
		name string
		pal  Palette
		want Program
	}{
		{"dedicated neg", mustPalette(t, FnNeg, FnMul, FnSub), Program{Op{FnNeg}, Feature(0)}},
		{"mul by minus one", mustPalette(t, FnMul, FnSub), Program{Op{FnMul}, Const(-1.0), Feature(0)}},
		{"sub from zero", mustPalette(t, FnSub), Program{Op{FnSub}, Const(0.0), Feature(0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _, err := FromExpr(mustParse(t, "-X0"), tt.pal, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p)
		})
	}
}

func TestNegationWithoutAnyFallback(t *testing.T) {
	pal := mustPalette(t, FnAdd)

	_, _, err := FromExpr(mustParse(t, "-X0"), pal, nil)
	assert.ErrorIs(t, err, ErrUnsupportedNegation)
}

func TestParameterInjectionOrder(t *testing.T) {
	p, rest, err := FromExpr(mustParse(t, "X0*3.5 + 1.5"), DefaultPalette(), []float64{2.25, 9.5})
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, Program{Op{FnAdd}, Op{FnMul}, Feature(0), Const(2.25), Const(9.5)}, p)
}

func TestIntegerLiteralNeverConsumesParameters(t *testing.T) {
	p, rest, err := FromExpr(mustParse(t, "X0 + 2"), DefaultPalette(), []float64{7.5})
	require.NoError(t, err)
	assert.Equal(t, []float64{7.5}, rest)
	assert.Equal(t, Program{Op{FnAdd}, Feature(0), Const(2.0)}, p)
}

func TestMissingOperator(t *testing.T) {
	pal := mustPalette(t, FnMul)

	_, _, err := FromExpr(mustParse(t, "X0 + X1"), pal, nil)
	require.ErrorIs(t, err, ErrMissingOperator)
	assert.Contains(t, err.Error(), "add")
}
