package beam

import "math"

// Phase returns the propagation factor exp(i·(x·kx + ky·y)) of the plane wave
// with transverse wave number ky, where kx = sqrt(k² - ky²).
//
// ky must lie in [-k, k]. Round-off that pushes k² - ky² slightly below zero
// at the band edge is clamped to zero.
func Phase(ky, x, y, k float64) complex128 {
	kx := math.Sqrt(math.Max(k*k-ky*ky, 0))
	sin, cos := math.Sincos(x*kx + ky*y)
	return complex(cos, sin)
}

// Integrand returns the function ky -> spectrum(ky)·Phase(ky, x, y, k) that is
// integrated over [-k, k] to obtain the field at (x, y).
func Integrand(spectrum func(float64) complex128, x, y, k float64) func(float64) complex128 {
	return func(ky float64) complex128 {
		return spectrum(ky) * Phase(ky, x, y, k)
	}
}

// ProfileIntegrand is Integrand for a Profile.
func ProfileIntegrand(p Profile, x, y, k float64) func(float64) complex128 {
	return Integrand(spectrumOf(p), x, y, k)
}
