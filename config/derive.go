package config

import (
	"fmt"
	"math"
)

// Derived holds the solver-unit quantities computed from Params.
type Derived struct {
	KVac        float64 // vacuum wave number 2π·freq
	K1          float64 // wave number in the incident medium
	NRef        float64 // index of the reference medium
	RW          float64 // waist distance to the interface
	W0          float64 // beam width
	SourceShift float64 // source position relative to the point of impact
	Shift       float64 // longitudinal distance from the waist to the source plane
	SourceSize  float64 // length of the line source
	Resolution  float64 // pixels per unit length
	Courant     float64
	ChiRad      float64
	CriticalDeg float64 // NaN when there is no total internal reflection
	BrewsterDeg float64
}

// Derive computes the solver-unit quantities.
func (p Params) Derive() Derived {
	kVac := 2 * math.Pi * p.Freq
	nRef := 1.0
	switch p.RefMedium {
	case 1:
		nRef = p.N1
	case 2:
		nRef = p.N2
	}

	sourceShift := p.SourceShift
	if !p.sourceShiftOK {
		sourceShift = -0.4 * (p.Sx - 2*p.PMLThickness)
	}
	sourceSize := p.SourceSize
	if !p.sourceSizeOK {
		sourceSize = 0.9 * p.Sy
	}

	rw := p.KRw / (nRef * kVac)
	return Derived{
		KVac:        kVac,
		K1:          p.N1 * kVac,
		NRef:        nRef,
		RW:          rw,
		W0:          p.KW0 / (nRef * kVac),
		SourceShift: sourceShift,
		Shift:       sourceShift + rw,
		SourceSize:  sourceSize,
		Resolution:  p.Pixel * math.Max(p.N1, p.N2) * p.Freq,
		Courant:     math.Min(p.N1, p.N2) / 2,
		ChiRad:      p.ChiDeg * math.Pi / 180,
		CriticalDeg: Critical(p.N1, p.N2),
		BrewsterDeg: Brewster(p.N1, p.N2),
	}
}

// WithSourceShift returns a copy of p with an explicit source shift.
func (p Params) WithSourceShift(shift float64) Params {
	p.SourceShift = shift
	p.sourceShiftOK = true
	return p
}

// Critical returns the critical angle of total internal reflection in degrees
// for light going from index n1 to n2, or NaN if n2 >= n1.
func Critical(n1, n2 float64) float64 {
	if n2 >= n1 {
		return math.NaN()
	}
	return math.Asin(n2/n1) * 180 / math.Pi
}

// Brewster returns Brewster's angle in degrees for light going from index n1
// to n2.
func Brewster(n1, n2 float64) float64 {
	return math.Atan2(n2, n1) * 180 / math.Pi
}

// Summary lists the specified and derived values in the order they are
// usually reported before a run.
func (p Params) Summary() []string {
	d := p.Derive()
	pol := "p"
	if p.SPol {
		pol = "s"
	}
	lines := []string{
		fmt.Sprintf("n1: %g", p.N1),
		fmt.Sprintf("n2: %g", p.N2),
		fmt.Sprintf("chi:   %g [degree]", p.ChiDeg),
		fmt.Sprintf("incl.: %g [degree]", 90-p.ChiDeg),
		fmt.Sprintf("critical angle: %.4f [degree]", d.CriticalDeg),
		fmt.Sprintf("Brewster angle: %.4f [degree]", d.BrewsterDeg),
		fmt.Sprintf("kw_0:  %g", p.KW0),
		fmt.Sprintf("kr_w:  %g", p.KRw),
		fmt.Sprintf("k_vac: %.6f", d.KVac),
		fmt.Sprintf("k1:    %.6f", d.K1),
		fmt.Sprintf("w_0:   %.6f", d.W0),
		fmt.Sprintf("shift: %.6f", d.Shift),
		fmt.Sprintf("resolution: %g", d.Resolution),
		fmt.Sprintf("Courant: %g", d.Courant),
		fmt.Sprintf("profile: %s", p.Profile),
		fmt.Sprintf("polarisation: %s", pol),
	}
	if p.Profile == ProfileBessel {
		lines = append(lines,
			fmt.Sprintf("theta: %g [degree]", p.ThetaDeg),
			fmt.Sprintf("n:     %g", p.Order),
		)
	}
	return lines
}
