package beam

import (
	"fmt"
	"math"

	"github.com/bob-anderson-ok/optbeam/quad"
)

// LaguerreGauss3D is the field of a Laguerre–Gauss vortex beam of topological
// charge M travelling along x. The plane-wave expansion is written in
// spherical angles, θ from the beam axis and φ around it:
//
//	ψ(x, y, z) = k² ∫_0^{2π} dφ ∫_0^{π/2} dθ sinθ cosθ f(θ, φ)
//	             · exp(i·k·(sinθ·(y·sinφ - z·cosφ) + cosθ·x))
//
//	f(θ, φ) = exp(-(k·W·sinθ/2)²) · θ^|M| · exp(i·M·φ)
//
// M = 0 is the fundamental Gaussian beam.
type LaguerreGauss3D struct {
	k        float64
	w        float64
	m        int
	settings settings
	flag     warnFlag
}

// NewLaguerreGauss3D validates the parameters and returns the field.
func NewLaguerreGauss3D(k, w float64, m int, opts ...Option) (*LaguerreGauss3D, error) {
	if err := checkWaveNumber(k); err != nil {
		return nil, err
	}
	if !(w > 0) || math.IsInf(w, 0) {
		return nil, fmt.Errorf("%w: laguerre-gauss W=%g", ErrNonPositiveWidth, w)
	}
	s, err := newSettings(opts)
	if err != nil {
		return nil, err
	}
	return &LaguerreGauss3D{k: k, w: w, m: m, settings: s}, nil
}

// Charge returns the topological charge.
func (f *LaguerreGauss3D) Charge() int { return f.m }

// Spectrum returns the angular spectrum f(θ, φ).
func (f *LaguerreGauss3D) Spectrum(theta, phi float64) complex128 {
	a := 0.5 * f.k * f.w * math.Sin(theta)
	g := math.Exp(-a * a)
	if f.m == 0 {
		return complex(g, 0)
	}
	g *= math.Pow(theta, math.Abs(float64(f.m)))
	sin, cos := math.Sincos(float64(f.m) * phi)
	return complex(g*cos, g*sin)
}

// At returns the field at (x, y, z); x is shifted by the waist offset.
func (f *LaguerreGauss3D) At(x, y, z float64) complex128 {
	return f.Evaluate(x, y, z).Value
}

// Evaluate returns the full integration result at (x, y, z). The value is
// already scaled by k².
func (f *LaguerreGauss3D) Evaluate(x, y, z float64) quad.Result {
	f.flag.announce(f.settings.logger, "k", f.k, "charge", f.m)

	xs := x + f.settings.offset
	k := f.k
	integrand := func(phi, theta float64) complex128 {
		sinT, cosT := math.Sincos(theta)
		sinP, cosP := math.Sincos(phi)
		s, c := math.Sincos(k * (sinT*(y*sinP-z*cosP) + cosT*xs))
		return complex(sinT*cosT, 0) * f.Spectrum(theta, phi) * complex(c, s)
	}

	k2 := k * k
	res, err := quad.Integrate2D(integrand, 0, 2*math.Pi, 0, math.Pi/2, f.settings.quadOptions(k2))
	if err != nil {
		panic(fmt.Sprintf("beam: %v", err))
	}
	res.Value *= complex(k2, 0)
	res.RealErr *= k2
	res.ImagErr *= k2
	if f.settings.exceeded(res) {
		f.flag.warn(f.settings, Warning{
			X:         xs,
			Y:         y,
			Z:         z,
			RealErr:   res.RealErr,
			ImagErr:   res.ImagErr,
			Tolerance: f.settings.tolerance,
		})
	}
	return res
}

// Warned reports whether the convergence warning has been emitted.
func (f *LaguerreGauss3D) Warned() bool { return f.flag.warned.Load() }

// Plane returns the field restricted to the plane z = const, seen as a
// two-dimensional Amplitude.
func (f *LaguerreGauss3D) Plane(z float64) Amplitude {
	return planeSlice{f: f, z: z}
}

type planeSlice struct {
	f *LaguerreGauss3D
	z float64
}

func (p planeSlice) At(x, y float64) complex128 { return p.f.At(x, y, p.z) }
