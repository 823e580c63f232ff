// Package config reads the parameter file of a beam scattering run and
// derives the quantities the field synthesis needs: wave numbers, beam width
// and waist position in solver units.
//
// Parameter files are json5 (plain json is accepted too) or yaml, selected by
// the file extension. Every entry is optional except where noted; defaults
// reproduce the reference configuration of a beam hitting an interface
// between vacuum and a medium of index 0.65 at 45 degrees.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	json "github.com/KevinWang15/go-json5"
	"gopkg.in/yaml.v3"
)

var (
	// ErrBadField is returned when an entry has the wrong type or an invalid value.
	ErrBadField = errors.New("config: invalid field")

	// ErrUnknownProfile is returned for a profile name that is not supported.
	ErrUnknownProfile = errors.New("config: unknown profile")
)

// Profile names accepted in the "profile" entry.
const (
	ProfileGaussian      = "gaussian"
	ProfileRamp          = "ramp"
	ProfileAiry          = "airy"
	ProfileBessel        = "bessel"
	ProfileLaguerreGauss = "laguerre-gauss"
)

// Params holds the user facing parameters of a run.
type Params struct {
	Title string

	SPol      bool    // s polarisation (Ez source) if true, p polarisation (Ey) otherwise
	RefMedium int     // reference medium for kw_0 and kr_w: 0 vacuum, 1 incident, 2 refracted
	N1        float64 // index of refraction of the incident medium
	N2        float64 // index of refraction of the refracted medium
	KW0       float64 // dimensionless beam width k·w_0
	KRw       float64 // dimensionless distance of the waist to the interface k·r_w
	ChiDeg    float64 // angle of incidence in degrees

	Freq          float64 // vacuum frequency of the source
	Pixel         float64 // pixels per wavelength in the denser medium
	Sx, Sy        float64 // cell size including absorbing layers
	PMLThickness  float64
	SourceShift   float64 // source position relative to the point of impact
	SourceSize    float64 // length of the line source
	sourceShiftOK bool
	sourceSizeOK  bool

	Profile    string
	Charge     int     // topological charge of a Laguerre–Gauss beam
	AiryM      float64 // lower band edge of the incomplete Airy spectrum, in units of 1/w_0
	AiryWidth  float64 // band width of the incomplete Airy spectrum, in units of 1/w_0
	RampCenter float64 // start of the ramp spectrum in units of k1
	ThetaDeg   float64 // axicon angle of a Bessel beam in degrees
	Order      float64 // order of a Bessel beam

	Tolerance float64
	Limit     int
	Workers   int
}

// Default returns the reference parameters.
func Default() Params {
	return Params{
		SPol:         true,
		RefMedium:    0,
		N1:           1.0,
		N2:           0.65,
		KW0:          7,
		KRw:          0,
		ChiDeg:       45,
		Freq:         12,
		Pixel:        15,
		Sx:           10,
		Sy:           10,
		PMLThickness: 0.25,
		Profile:      ProfileGaussian,
		AiryM:        0,
		AiryWidth:    4,
		ThetaDeg:     30,
		Tolerance:    1e-8,
		Limit:        200,
	}
}

// Load reads and validates a parameter file.
func Load(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("attempt to read parameter file %q failed: %w", path, err)
	}
	table, err := parse(data, filepath.Ext(path))
	if err != nil {
		return Params{}, fmt.Errorf("format error in file %q: %w", path, err)
	}
	p, err := FromTable(table)
	if err != nil {
		return Params{}, fmt.Errorf("parameter file %q: %w", path, err)
	}
	return p, nil
}

func parse(data []byte, ext string) (map[string]interface{}, error) {
	var table map[string]interface{}
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &table); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &table); err != nil {
			return nil, err
		}
	}
	if table == nil {
		table = map[string]interface{}{}
	}
	return table, nil
}

// FromTable fills Params from a generic table, starting from Default.
func FromTable(table map[string]interface{}) (Params, error) {
	p := Default()
	r := reader{table: table}

	r.str("title", &p.Title)
	r.boolean("s_pol", &p.SPol)
	r.integer("ref_medium", &p.RefMedium)
	r.number("n1", &p.N1)
	r.number("n2", &p.N2)
	r.number("kw_0", &p.KW0)
	r.number("kr_w", &p.KRw)
	r.number("chi_deg", &p.ChiDeg)
	r.number("freq", &p.Freq)
	r.number("pixel", &p.Pixel)
	r.number("sx", &p.Sx)
	r.number("sy", &p.Sy)
	r.number("pml_thickness", &p.PMLThickness)
	p.sourceShiftOK = r.number("source_shift", &p.SourceShift)
	p.sourceSizeOK = r.number("source_size", &p.SourceSize)
	r.str("profile", &p.Profile)
	r.integer("m_charge", &p.Charge)
	r.number("airy_m", &p.AiryM)
	r.number("airy_width", &p.AiryWidth)
	r.number("ramp_center", &p.RampCenter)
	r.number("theta", &p.ThetaDeg)
	r.number("n", &p.Order)
	r.number("tolerance", &p.Tolerance)
	r.integer("limit", &p.Limit)
	r.integer("workers", &p.Workers)

	if r.err != nil {
		return Params{}, r.err
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate checks the physical sanity of the parameters.
func (p Params) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"n1", p.N1}, {"n2", p.N2}, {"kw_0", p.KW0}, {"freq", p.Freq},
		{"pixel", p.Pixel}, {"sx", p.Sx}, {"sy", p.Sy}, {"tolerance", p.Tolerance},
	}
	for _, f := range positive {
		if !(f.v > 0) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrBadField, f.name, f.v)
		}
	}
	if p.RefMedium < 0 || p.RefMedium > 2 {
		return fmt.Errorf("%w: ref_medium must be 0, 1 or 2, got %d", ErrBadField, p.RefMedium)
	}
	if p.PMLThickness < 0 || 2*p.PMLThickness >= math.Min(p.Sx, p.Sy) {
		return fmt.Errorf("%w: pml_thickness %g does not fit the cell", ErrBadField, p.PMLThickness)
	}
	if p.ChiDeg < 0 || p.ChiDeg >= 90 {
		return fmt.Errorf("%w: chi_deg must be in [0, 90), got %g", ErrBadField, p.ChiDeg)
	}
	if p.Limit <= 0 {
		return fmt.Errorf("%w: limit must be positive, got %d", ErrBadField, p.Limit)
	}
	if p.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrBadField, p.Workers)
	}
	if p.sourceSizeOK && !(p.SourceSize > 0) {
		return fmt.Errorf("%w: source_size must be positive, got %g", ErrBadField, p.SourceSize)
	}
	switch p.Profile {
	case ProfileGaussian, ProfileRamp, ProfileLaguerreGauss:
	case ProfileAiry:
		if !(p.AiryWidth > 0) {
			return fmt.Errorf("%w: airy_width must be positive, got %g", ErrBadField, p.AiryWidth)
		}
	case ProfileBessel:
		if p.ThetaDeg < 0 || p.ThetaDeg >= 90 {
			return fmt.Errorf("%w: theta must be in [0, 90), got %g", ErrBadField, p.ThetaDeg)
		}
		if math.IsNaN(p.Order) || math.IsInf(p.Order, 0) {
			return fmt.Errorf("%w: n must be finite", ErrBadField)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProfile, p.Profile)
	}
	return nil
}

// reader pulls typed leaves out of a generic table and remembers the first
// type error.
type reader struct {
	table map[string]interface{}
	err   error
}

func getLeafValue(table map[string]interface{}, path ...string) (interface{}, bool) {
	var cur interface{} = table
	for _, p := range path {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = m[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func (r *reader) fail(name, want string) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: %s: is not a %s", ErrBadField, name, want)
	}
}

func (r *reader) number(name string, dst *float64) bool {
	v, ok := getLeafValue(r.table, name)
	if !ok {
		return false
	}
	switch n := v.(type) {
	case float64:
		*dst = n
	case int:
		*dst = float64(n)
	case int64:
		*dst = float64(n)
	default:
		r.fail(name, "number")
		return false
	}
	return true
}

func (r *reader) integer(name string, dst *int) bool {
	var f float64
	if !r.number(name, &f) {
		return false
	}
	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		r.fail(name, "whole number")
		return false
	}
	*dst = int(f)
	return true
}

func (r *reader) boolean(name string, dst *bool) bool {
	v, ok := getLeafValue(r.table, name)
	if !ok {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		r.fail(name, "bool")
		return false
	}
	*dst = b
	return true
}

func (r *reader) str(name string, dst *string) bool {
	v, ok := getLeafValue(r.table, name)
	if !ok {
		return false
	}
	s, ok := v.(string)
	if !ok {
		r.fail(name, "string")
		return false
	}
	*dst = s
	return true
}
