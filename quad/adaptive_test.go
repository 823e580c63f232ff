package quad_test

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/bob-anderson-ok/optbeam/quad"
)

func TestIntegrate_PolynomialIsExact(t *testing.T) {
	// The 21-point Kronrod rule integrates polynomials up to degree 31 exactly.
	res, err := quad.Integrate(func(x float64) float64 { return math.Pow(x, 20) }, 0, 1, quad.DefaultOptions())
	require.NoError(t, err)
	require.True(t, res.Converged)
	assert.InDelta(t, 1.0/21, res.Value, 1e-14)
	assert.Equal(t, 1, res.Intervals)
	assert.Equal(t, 21, res.Evals)
}

func TestIntegrate_Smooth(t *testing.T) {
	res, err := quad.Integrate(math.Exp, 0, 1, quad.DefaultOptions())
	require.NoError(t, err)
	require.True(t, res.Converged)
	assert.InDelta(t, math.E-1, res.Value, 1e-12)
	assert.LessOrEqual(t, res.AbsErr, quad.DefaultAbsTol)
}

func TestIntegrate_OscillatoryNeedsSubdivision(t *testing.T) {
	f := func(x float64) float64 { return math.Cos(50 * x) }
	res, err := quad.Integrate(f, 0, 1, quad.DefaultOptions())
	require.NoError(t, err)
	require.True(t, res.Converged)
	assert.Greater(t, res.Intervals, 1)
	assert.InDelta(t, math.Sin(50)/50, res.Value, quad.DefaultAbsTol)
}

func TestIntegrate_Discontinuity(t *testing.T) {
	step := func(x float64) float64 {
		if x >= 0.3 {
			return 1
		}
		return 0
	}
	opts := quad.Options{AbsTol: 1e-7, RelTol: 1e-7, Limit: 200}
	res, err := quad.Integrate(step, -1, 1, opts)
	require.NoError(t, err)
	require.True(t, res.Converged, "abserr=%g intervals=%d", res.AbsErr, res.Intervals)
	assert.InDelta(t, 0.7, res.Value, 1e-6)
}

func TestIntegrate_BudgetExhaustedIsNotAnError(t *testing.T) {
	f := func(x float64) float64 { return math.Cos(400 * x) }
	opts := quad.Options{AbsTol: 1e-15, RelTol: 1e-15, Limit: 1}
	res, err := quad.Integrate(f, 0, 1, opts)
	require.NoError(t, err)
	assert.False(t, res.Converged)
	assert.Equal(t, 1, res.Intervals)
	assert.Greater(t, res.AbsErr, 1e-15)
	assert.False(t, math.IsNaN(res.Value))
}

func TestIntegrate_BadInterval(t *testing.T) {
	for _, tc := range []struct {
		name string
		a, b float64
	}{
		{"equal", 1, 1},
		{"reversed", 2, 1},
		{"nan", math.NaN(), 1},
		{"inf", 0, math.Inf(1)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := quad.Integrate(math.Sin, tc.a, tc.b, quad.DefaultOptions())
			require.ErrorIs(t, err, quad.ErrBadInterval)
			_, err = quad.IntegrateComplex(func(float64) complex128 { return 1 }, tc.a, tc.b, quad.DefaultOptions())
			require.ErrorIs(t, err, quad.ErrBadInterval)
		})
	}
}

func TestOptions_Validate(t *testing.T) {
	require.NoError(t, quad.DefaultOptions().Validate())
	require.NoError(t, quad.Options{AbsTol: 1e-6}.Validate())
	require.ErrorIs(t, quad.Options{}.Validate(), quad.ErrBadTolerance)
	require.ErrorIs(t, quad.Options{AbsTol: -1, RelTol: 1e-3}.Validate(), quad.ErrBadTolerance)
	require.ErrorIs(t, quad.Options{AbsTol: math.NaN()}.Validate(), quad.ErrBadTolerance)
	require.ErrorIs(t, quad.Options{AbsTol: 1e-6, Limit: -3}.Validate(), quad.ErrBadLimit)
}

func TestIntegrateComplex_UnitPhase(t *testing.T) {
	g := func(x float64) complex128 { return cmplx.Exp(complex(0, x)) }
	res, err := quad.IntegrateComplex(g, 0, math.Pi, quad.DefaultOptions())
	require.NoError(t, err)
	require.True(t, res.Converged())
	assert.InDelta(t, 0, real(res.Value), 1e-12)
	assert.InDelta(t, 2, imag(res.Value), 1e-12)
}

func TestIntegrateComplex_PartialFailure(t *testing.T) {
	g := func(x float64) complex128 { return complex(x, math.Cos(200*x)) }
	opts := quad.Options{AbsTol: 1e-10, RelTol: 1e-10, Limit: 1}
	res, err := quad.IntegrateComplex(g, 0, 1, opts)
	require.NoError(t, err)
	assert.True(t, res.RealConverged)
	assert.False(t, res.ImagConverged)
	assert.False(t, res.Converged())
	assert.InDelta(t, 0.5, real(res.Value), 1e-14)
	assert.Equal(t, 42, res.Evals)
}

func TestIntegrateComplex_Deterministic(t *testing.T) {
	g := func(x float64) complex128 {
		return complex(math.Exp(-x*x), 0) * cmplx.Exp(complex(0, 7*x))
	}
	first, err := quad.IntegrateComplex(g, -4, 4, quad.DefaultOptions())
	require.NoError(t, err)
	second, err := quad.IntegrateComplex(g, -4, 4, quad.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLegendrePair_AgreesWithKronrod(t *testing.T) {
	f := func(x float64) float64 { return math.Exp(-x * x) }
	want := math.Sqrt(math.Pi) * math.Erf(3)

	kron, err := quad.Integrate(f, -3, 3, quad.DefaultOptions())
	require.NoError(t, err)

	opts := quad.DefaultOptions()
	opts.Rule = quad.NewLegendrePair(12)
	leg, err := quad.Integrate(f, -3, 3, opts)
	require.NoError(t, err)

	require.True(t, kron.Converged)
	require.True(t, leg.Converged)
	assert.True(t, scalar.EqualWithinAbsOrRel(want, kron.Value, 1e-10, 1e-10))
	assert.True(t, scalar.EqualWithinAbsOrRel(want, leg.Value, 1e-8, 1e-8))
}

func TestIntegrate2D_SeparablePhase(t *testing.T) {
	g := func(u, v float64) complex128 { return cmplx.Exp(complex(0, u+v)) }
	res, err := quad.Integrate2D(g, 0, 1, 0, 2, quad.DefaultOptions())
	require.NoError(t, err)
	require.True(t, res.Converged())

	i := complex(0, 1)
	want := (cmplx.Exp(i) - 1) / i * (cmplx.Exp(2*i) - 1) / i
	assert.InDelta(t, real(want), real(res.Value), 1e-10)
	assert.InDelta(t, imag(want), imag(res.Value), 1e-10)
}

func TestIntegrate2D_BadInnerInterval(t *testing.T) {
	_, err := quad.Integrate2D(func(u, v float64) complex128 { return 1 }, 0, 1, 3, 3, quad.DefaultOptions())
	require.ErrorIs(t, err, quad.ErrBadInterval)
}
