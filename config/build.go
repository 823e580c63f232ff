package config

import (
	"fmt"
	"math"

	"github.com/bob-anderson-ok/optbeam/beam"
)

// SpectralProfile returns the one-dimensional spectral profile selected by
// the parameters. Laguerre–Gauss beams are three-dimensional and have none.
func (p Params) SpectralProfile() (beam.Profile, error) {
	d := p.Derive()
	var prof beam.Profile
	switch p.Profile {
	case ProfileGaussian:
		prof = beam.Gaussian{W: d.W0}
	case ProfileRamp:
		prof = beam.RampExponential{W: d.W0, Center: p.RampCenter * d.K1}
	case ProfileAiry:
		prof = beam.IncompleteAiry{W: d.W0, M: p.AiryM, Width: p.AiryWidth}
	case ProfileBessel:
		prof = beam.Bessel{W: d.W0, Kt: d.K1 * math.Sin(p.ThetaDeg*math.Pi/180), N: p.Order}
	case ProfileLaguerreGauss:
		return nil, fmt.Errorf("%w: %q has no one-dimensional spectrum", ErrUnknownProfile, p.Profile)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProfile, p.Profile)
	}
	return prof, nil
}

// Build returns the source amplitude of the configured beam in the plane of
// incidence. Evaluations at x = 0 are at the source plane, which lies Shift
// away from the waist. Extra options are applied after the ones derived from
// the parameters.
func (p Params) Build(opts ...beam.Option) (beam.Amplitude, error) {
	d := p.Derive()
	all := append([]beam.Option{
		beam.WithTolerance(p.Tolerance),
		beam.WithLimit(p.Limit),
		beam.WithWaistOffset(d.Shift),
	}, opts...)

	if p.Profile == ProfileLaguerreGauss {
		f, err := beam.NewLaguerreGauss3D(d.K1, d.W0, p.Charge, all...)
		if err != nil {
			return nil, err
		}
		return f.Plane(0), nil
	}

	prof, err := p.SpectralProfile()
	if err != nil {
		return nil, err
	}
	return beam.NewField2D(prof, d.K1, all...)
}
