package beam_test

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/bob-anderson-ok/optbeam/beam"
)

// Parameters of the vortex beam configuration: k·W/2 = 4.
const (
	lgK = 31.41592653589793
	lgW = 0.25464790894703254
)

func TestLaguerreGauss3D_GaussianOnAxis(t *testing.T) {
	f, err := beam.NewLaguerreGauss3D(lgK, lgW, 0, beam.WithLogger(quietLogger()))
	require.NoError(t, err)

	// With s = sin²θ the integral at the origin reduces to
	// k²·π·(1 - exp(-a))/a with a = (k·W/2)².
	a := math.Pow(lgK*lgW/2, 2)
	want := lgK * lgK * math.Pi * (1 - math.Exp(-a)) / a

	res := f.Evaluate(0, 0, 0)
	require.True(t, res.Converged())
	assert.True(t, scalar.EqualWithinRel(want, real(res.Value), 1e-7), "want %g got %g", want, real(res.Value))
	assert.InDelta(t, 0, imag(res.Value), 1e-9)
	assert.False(t, f.Warned())
}

func TestLaguerreGauss3D_VortexHasDarkCore(t *testing.T) {
	f, err := beam.NewLaguerreGauss3D(lgK, lgW, 2, beam.WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.Equal(t, 2, f.Charge())

	assert.Less(t, cmplx.Abs(f.At(0, 0, 0)), 1e-6)
	assert.Greater(t, cmplx.Abs(f.At(0, 0.15, 0)), 1e-3)
}

func TestLaguerreGauss3D_PlaneSlice(t *testing.T) {
	f, err := beam.NewLaguerreGauss3D(lgK, lgW, 1, beam.WithLogger(quietLogger()), beam.WithTolerance(1e-6))
	require.NoError(t, err)
	plane := f.Plane(0.1)
	assert.Equal(t, f.At(-0.2, 0.05, 0.1), plane.At(-0.2, 0.05))
}

func TestLaguerreGauss3D_FailFast(t *testing.T) {
	_, err := beam.NewLaguerreGauss3D(0, lgW, 0)
	require.ErrorIs(t, err, beam.ErrNonPositiveWaveNumber)
	_, err = beam.NewLaguerreGauss3D(lgK, 0, 1)
	require.ErrorIs(t, err, beam.ErrNonPositiveWidth)
}
