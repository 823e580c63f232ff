package beam

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

// AngularSpectrum evaluates the field at longitudinal distance x on the
// uniform transverse grid
//
//	y_j = -span/2 + j·span/n,  j = 0 … n-1
//
// by sampling the propagated spectrum at ky_m = (m - n/2)·2π/span and summing
// it with one inverse FFT. Components with |ky| > k are discarded, as in the
// adaptive integral. The result is periodic in y with period span, so span
// must be wide enough for the field to have decayed at ±span/2, and n·π/span
// should exceed k so the whole propagating band is sampled.
func AngularSpectrum(p Profile, k, x float64, n int, span float64) ([]float64, []complex128, error) {
	if err := checkWaveNumber(k); err != nil {
		return nil, nil, err
	}
	if err := validateProfile(p); err != nil {
		return nil, nil, err
	}
	if n < 2 {
		return nil, nil, errors.New("beam: angular spectrum needs at least 2 samples")
	}
	if !(span > 0) || math.IsInf(span, 0) {
		return nil, nil, fmt.Errorf("%w: span %g", ErrBadParameter, span)
	}

	spectrum := spectrumOf(p)
	dy := span / float64(n)
	dky := 2 * math.Pi / span
	half := float64(n) / 2

	// (m - n/2)(j - n/2)·2π/n = 2π·mj/n - π·m - π·j + π·n/2
	coeff := make([]complex128, n)
	for m := range coeff {
		ky := (float64(m) - half) * dky
		if math.Abs(ky) > k {
			continue
		}
		c := spectrum(ky) * Phase(ky, x, 0, k)
		if m%2 == 1 {
			c = -c
		}
		coeff[m] = c
	}

	seq := fourier.NewCmplxFFT(n).Sequence(nil, coeff)

	global := complex(dky, 0) * cmplx.Exp(complex(0, math.Pi*half))
	field := make([]complex128, n)
	for j, v := range seq {
		if j%2 == 1 {
			v = -v
		}
		field[j] = global * v
	}

	ys := floats.Span(make([]float64, n), -span/2, span/2-dy)
	return ys, field, nil
}
