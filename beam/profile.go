package beam

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Profile is a spectral amplitude density: the weight of the plane wave with
// transverse wave number ky. Spectrum must be defined for every real ky.
type Profile interface {
	Spectrum(ky float64) float64
}

// ComplexProfile is implemented by profiles whose spectrum carries a phase.
// When a Profile also implements ComplexProfile, the complex spectrum is the
// one that gets integrated and Spectrum reports its magnitude.
type ComplexProfile interface {
	Profile
	ComplexSpectrum(ky float64) complex128
}

// validator is implemented by profiles that can check their own parameters.
type validator interface {
	Validate() error
}

// spectrumOf returns the complex spectral density of p.
func spectrumOf(p Profile) func(float64) complex128 {
	if cp, ok := p.(ComplexProfile); ok {
		return cp.ComplexSpectrum
	}
	return func(ky float64) complex128 { return complex(p.Spectrum(ky), 0) }
}

func validateProfile(p Profile) error {
	if p == nil {
		return ErrNilProfile
	}
	if v, ok := p.(validator); ok {
		return v.Validate()
	}
	return nil
}

// Gaussian is the spectrum of a Gaussian beam with waist parameter W.
// Its field in the waist plane is exp(-y²/W²).
type Gaussian struct {
	W float64
}

// NewGaussian returns a Gaussian profile after checking W > 0.
func NewGaussian(w float64) (Gaussian, error) {
	g := Gaussian{W: w}
	return g, g.Validate()
}

// Validate implements validator.
func (g Gaussian) Validate() error {
	if !(g.W > 0) || math.IsInf(g.W, 0) {
		return fmt.Errorf("%w: gaussian W=%g", ErrNonPositiveWidth, g.W)
	}
	return nil
}

// Spectrum implements Profile.
func (g Gaussian) Spectrum(ky float64) float64 {
	a := 0.5 * ky * g.W
	return g.W / (2 * math.Sqrt(math.Pi)) * math.Exp(-a*a)
}

// RampExponential is an asymmetric spectrum that is zero below Center and
// rises linearly before decaying exponentially:
//
//	f(ky) = u·exp(1-u),  u = (ky - Center)·W ≥ 0
//
// The peak value 1 is reached at ky = Center + 1/W.
type RampExponential struct {
	W      float64
	Center float64
}

// Validate implements validator.
func (r RampExponential) Validate() error {
	if !(r.W > 0) || math.IsInf(r.W, 0) {
		return fmt.Errorf("%w: ramp W=%g", ErrNonPositiveWidth, r.W)
	}
	if math.IsNaN(r.Center) || math.IsInf(r.Center, 0) {
		return fmt.Errorf("%w: ramp center=%g", ErrBadParameter, r.Center)
	}
	return nil
}

// Spectrum implements Profile.
func (r RampExponential) Spectrum(ky float64) float64 {
	u := (ky - r.Center) * r.W
	if u <= 0 {
		return 0
	}
	return u * math.Exp(1-u)
}

// IncompleteAiry is the band-limited cubic-phase spectrum of an incomplete
// Airy beam. The spectrum is non-zero only for M ≤ W·ky ≤ M+Width.
type IncompleteAiry struct {
	W     float64
	M     float64
	Width float64
}

// Validate implements validator.
func (a IncompleteAiry) Validate() error {
	if !(a.W > 0) || math.IsInf(a.W, 0) {
		return fmt.Errorf("%w: airy W=%g", ErrNonPositiveWidth, a.W)
	}
	if !(a.Width > 0) || math.IsInf(a.Width, 0) || math.IsNaN(a.M) || math.IsInf(a.M, 0) {
		return fmt.Errorf("%w: airy M=%g width=%g", ErrBadParameter, a.M, a.Width)
	}
	return nil
}

// Band returns the ky interval outside of which the spectrum vanishes.
func (a IncompleteAiry) Band() (lo, hi float64) {
	return a.M / a.W, (a.M + a.Width) / a.W
}

func (a IncompleteAiry) inBand(ky float64) bool {
	s := a.W * ky
	return s >= a.M && s <= a.M+a.Width
}

// Spectrum implements Profile and returns the magnitude of the spectrum.
func (a IncompleteAiry) Spectrum(ky float64) float64 {
	if !a.inBand(ky) {
		return 0
	}
	return a.W
}

// ComplexSpectrum implements ComplexProfile.
func (a IncompleteAiry) ComplexSpectrum(ky float64) complex128 {
	if !a.inBand(ky) {
		return 0
	}
	s := a.W * ky
	sin, cos := math.Sincos(-s * s * s / 3)
	return complex(a.W*cos, a.W*sin)
}

// Bessel is the two-dimensional counterpart of a Bessel beam of order N: two
// Gaussian spectra of waist parameter W centred at ky = ±Kt, where
// Kt = k·sinθ for the axicon angle θ,
//
//	f(ky) = (g(ky - Kt)·exp(iπN/2) + g(ky + Kt)·exp(-iπN/2)) / 2
//
// with g the Gaussian spectrum. In the waist plane the field is
// exp(-y²/W²)·cos(Kt·y + πN/2).
type Bessel struct {
	W  float64
	Kt float64
	N  float64
}

// NewBessel returns the profile for wave number k and axicon angle theta in
// radians.
func NewBessel(w, k, theta, n float64) (Bessel, error) {
	b := Bessel{W: w, Kt: k * math.Sin(theta), N: n}
	return b, b.Validate()
}

// Validate implements validator.
func (b Bessel) Validate() error {
	if !(b.W > 0) || math.IsInf(b.W, 0) {
		return fmt.Errorf("%w: bessel W=%g", ErrNonPositiveWidth, b.W)
	}
	if !(b.Kt >= 0) || math.IsInf(b.Kt, 0) || math.IsNaN(b.N) || math.IsInf(b.N, 0) {
		return fmt.Errorf("%w: bessel kt=%g n=%g", ErrBadParameter, b.Kt, b.N)
	}
	return nil
}

// Spectrum implements Profile and returns the magnitude of the spectrum.
func (b Bessel) Spectrum(ky float64) float64 {
	return cmplx.Abs(b.ComplexSpectrum(ky))
}

// ComplexSpectrum implements ComplexProfile.
func (b Bessel) ComplexSpectrum(ky float64) complex128 {
	g := Gaussian{W: b.W}
	sin, cos := math.Sincos(0.5 * math.Pi * b.N)
	up := complex(0.5*g.Spectrum(ky-b.Kt), 0) * complex(cos, sin)
	down := complex(0.5*g.Spectrum(ky+b.Kt), 0) * complex(cos, -sin)
	return up + down
}
