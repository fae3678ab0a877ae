package expr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDiv(a, b float64) float64 {
	if math.Abs(b) > 0.001 {
		return a / b
	}
	return 1.0
}

func compileSrc(t *testing.T, src string) (EvalFunc, []float64) {
	t.Helper()
	e, err := Parse(src)
	require.NoError(t, err)
	f, params, err := Compile(e, testDiv)
	require.NoError(t, err)
	return f, params
}

func TestCompileExtractsFreeParameters(t *testing.T) {
	f, params := compileSrc(t, "X0*3.5 + 2")
	assert.Equal(t, []float64{3.5}, params)

	assert.Equal(t, 9.0, f([]float64{2}, 0, params))
	assert.Equal(t, 22.0, f([]float64{2}, 0, []float64{10}))
}

func TestCompileKeepsIntegerValuedConstantsFixed(t *testing.T) {
	_, params := compileSrc(t, "X0 + 2")
	assert.Empty(t, params)

	// Integer-valued floats stay fixed too, within tolerance.
	_, params = compileSrc(t, "X0 + 2.0")
	assert.Empty(t, params)
}

func TestCompileProtectedDivision(t *testing.T) {
	f, _ := compileSrc(t, "X0/X1")
	assert.Equal(t, 1.0, f([]float64{1, 0}, 0, nil))
	assert.Equal(t, 2.0, f([]float64{8, 4}, 0, nil))
}

func TestCompileColumnOffset(t *testing.T) {
	f, _ := compileSrc(t, "X1")
	assert.Equal(t, 6.0, f([]float64{9, 8, 7, 6}, 2, nil))
}

func TestCompilePower(t *testing.T) {
	f, _ := compileSrc(t, "X0^3")
	assert.Equal(t, 8.0, f([]float64{2}, 0, nil))
}

func TestInjectCoefficients(t *testing.T) {
	e, err := Parse("X0 + X1")
	require.NoError(t, err)

	f, params, err := Compile(InjectCoefficients(e), testDiv)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1}, params)

	// Each term now has its own free scale.
	assert.Equal(t, 31.0, f([]float64{5, 7}, 0, []float64{2, 3}))
}

func TestInjectCoefficientsForcesUnitConstants(t *testing.T) {
	// A collapsed coefficient of exactly 1 would stay fixed without the
	// forced flag.
	e := &Binary{Op: OpMul, Left: &Num{Value: 1, Forced: true}, Right: &Var{Index: 0}}
	_, params, err := Compile(e, testDiv)
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, params)
}
