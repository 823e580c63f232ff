// Package beam synthesizes the complex amplitude of optical beams from their
// plane-wave spectrum.
//
// A two-dimensional beam travelling along x is written as
//
//	ψ(x, y) = ∫_{-k}^{k} f(ky) exp(i·(x·sqrt(k² - ky²) + ky·y)) dky
//
// where f is the spectral amplitude density (a Profile). Only propagating
// components are integrated; evanescent ones with |ky| > k are dropped.
// The integral is evaluated with the adaptive complex quadrature of package
// quad.
//
// Fields are safe for concurrent use. Each evaluation is independent except
// for a one-way convergence warning flag: the first evaluation whose error
// estimate exceeds the tolerance logs a single warning, later ones are silent.
package beam

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/bob-anderson-ok/optbeam/quad"
)

// Point is a position in the propagation plane: X along the beam axis, Y
// transverse to it.
type Point struct {
	X, Y float64
}

// Amplitude is anything that yields a field value in the propagation plane.
type Amplitude interface {
	At(x, y float64) complex128
}

// Field2D is the field of a beam with a given spectral profile in a medium
// with wave number k.
type Field2D struct {
	profile  Profile
	spectrum func(float64) complex128
	k        float64
	settings settings
	flag     warnFlag
}

// NewField2D validates the configuration and returns a field. It fails with
// a configuration error if k is not positive, the profile is invalid or the
// integration settings are unusable.
func NewField2D(p Profile, k float64, opts ...Option) (*Field2D, error) {
	if err := checkWaveNumber(k); err != nil {
		return nil, err
	}
	if err := validateProfile(p); err != nil {
		return nil, err
	}
	s, err := newSettings(opts)
	if err != nil {
		return nil, err
	}
	return &Field2D{
		profile:  p,
		spectrum: spectrumOf(p),
		k:        k,
		settings: s,
	}, nil
}

// K returns the wave number.
func (f *Field2D) K() float64 { return f.k }

// Profile returns the spectral profile.
func (f *Field2D) Profile() Profile { return f.profile }

// Tolerance returns the error target of each evaluation.
func (f *Field2D) Tolerance() float64 { return f.settings.tolerance }

// WaistOffset returns the longitudinal offset added to every evaluation.
func (f *Field2D) WaistOffset() float64 { return f.settings.offset }

// At returns the field amplitude at longitudinal distance x (plus the waist
// offset) and transverse position y.
func (f *Field2D) At(x, y float64) complex128 {
	return f.Evaluate(x, y).Value
}

// Evaluate is At with the full integration result, including the error
// estimates of both parts.
func (f *Field2D) Evaluate(x, y float64) quad.Result {
	f.flag.announce(f.settings.logger, "k", f.k)

	xs := x + f.settings.offset
	res, err := quad.IntegrateComplex(Integrand(f.spectrum, xs, y, f.k), -f.k, f.k, f.settings.quadOptions(1))
	if err != nil {
		// NewField2D has validated the interval and the options.
		panic(fmt.Sprintf("beam: %v", err))
	}
	if f.settings.exceeded(res) {
		f.flag.warn(f.settings, Warning{
			X:         xs,
			Y:         y,
			RealErr:   res.RealErr,
			ImagErr:   res.ImagErr,
			Tolerance: f.settings.tolerance,
		})
	}
	return res
}

// Warned reports whether the convergence warning has been emitted.
func (f *Field2D) Warned() bool { return f.flag.warned.Load() }

// AmplitudeFunc adapts the field to the host callback signature.
func (f *Field2D) AmplitudeFunc() func(Point) complex128 {
	return func(p Point) complex128 { return f.At(p.X, p.Y) }
}

// RealPart returns the real projection of the field for hosts that drive a
// real field component.
func (f *Field2D) RealPart() func(Point) float64 {
	return func(p Point) float64 { return real(f.At(p.X, p.Y)) }
}

// ImagPart returns the imaginary projection of the field.
func (f *Field2D) ImagPart() func(Point) float64 {
	return func(p Point) float64 { return imag(f.At(p.X, p.Y)) }
}

// warnFlag holds the one-way Unwarned -> Warned transition and the first-use
// notice. Both transitions are compare-and-swap so that concurrent callers
// emit each message exactly once.
type warnFlag struct {
	started atomic.Bool
	warned  atomic.Bool
}

func (w *warnFlag) announce(logger *slog.Logger, args ...any) {
	if w.started.CompareAndSwap(false, true) {
		logger.Debug("calculating initial field configuration, this will take some time", args...)
	}
}

func (w *warnFlag) warn(s settings, warning Warning) {
	if !w.warned.CompareAndSwap(false, true) {
		return
	}
	s.logger.Warn("field integration did not reach tolerance; further warnings suppressed",
		"x", warning.X,
		"y", warning.Y,
		"z", warning.Z,
		"real_err", warning.RealErr,
		"imag_err", warning.ImagErr,
		"tolerance", warning.Tolerance,
	)
	if s.onWarn != nil {
		s.onWarn(warning)
	}
}
