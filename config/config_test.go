package config_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bob-anderson-ok/optbeam/beam"
	"github.com/bob-anderson-ok/optbeam/config"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Json5(t *testing.T) {
	path := writeFile(t, "run.json5", `{
		// comments and trailing commas are fine in json5
		title: "Gaussian at 45 degrees",
		n1: 1.0,
		n2: 0.65,
		kw_0: 8,
		kr_w: 40,
		ref_medium: 1,
		s_pol: false,
		profile: "gaussian",
		tolerance: 1e-6,
	}`)

	p, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Gaussian at 45 degrees", p.Title)
	assert.False(t, p.SPol)
	assert.Equal(t, 1, p.RefMedium)
	assert.Equal(t, 8.0, p.KW0)
	assert.Equal(t, 1e-6, p.Tolerance)
	// untouched entries keep their defaults
	assert.Equal(t, 12.0, p.Freq)
	assert.Equal(t, 200, p.Limit)
}

func TestLoad_Yaml(t *testing.T) {
	path := writeFile(t, "run.yaml", "n1: 1.5\nn2: 1\nkw_0: 10\nprofile: laguerre-gauss\nm_charge: 2\nlimit: 80\n")

	p, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1.5, p.N1)
	assert.Equal(t, 1.0, p.N2)
	assert.Equal(t, config.ProfileLaguerreGauss, p.Profile)
	assert.Equal(t, 2, p.Charge)
	assert.Equal(t, 80, p.Limit)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = config.Load(writeFile(t, "broken.json", `{n1: `))
	require.Error(t, err)

	_, err = config.Load(writeFile(t, "typed.json5", `{n1: "one"}`))
	require.ErrorIs(t, err, config.ErrBadField)
	assert.Contains(t, err.Error(), "n1")

	_, err = config.Load(writeFile(t, "frac.json5", `{limit: 2.5}`))
	require.ErrorIs(t, err, config.ErrBadField)

	_, err = config.Load(writeFile(t, "neg.json5", `{kw_0: -1}`))
	require.ErrorIs(t, err, config.ErrBadField)

	_, err = config.Load(writeFile(t, "profile.json5", `{profile: "hermite"}`))
	require.ErrorIs(t, err, config.ErrUnknownProfile)

	_, err = config.Load(writeFile(t, "huge.json5", `{limit: 1e300}`))
	require.ErrorIs(t, err, config.ErrBadField)
	assert.Contains(t, err.Error(), "limit")

	_, err = config.Load(writeFile(t, "axicon.json5", `{profile: "bessel", theta: 90}`))
	require.ErrorIs(t, err, config.ErrBadField)

	_, err = config.Load(writeFile(t, "medium.yaml", "ref_medium: 3\n"))
	require.ErrorIs(t, err, config.ErrBadField)
}

func TestDerive_ReferenceConfiguration(t *testing.T) {
	p := config.Default()
	d := p.Derive()

	kVac := 2 * math.Pi * 12
	assert.InDelta(t, kVac, d.KVac, 1e-12)
	assert.InDelta(t, kVac, d.K1, 1e-12)
	assert.Equal(t, 1.0, d.NRef)
	assert.InDelta(t, 7/kVac, d.W0, 1e-15)
	assert.Equal(t, 0.0, d.RW)
	assert.InDelta(t, -0.4*(10-0.5), d.SourceShift, 1e-12)
	assert.InDelta(t, d.SourceShift, d.Shift, 1e-12)
	assert.InDelta(t, 9.0, d.SourceSize, 1e-12)
	assert.InDelta(t, 15*1.0*12, d.Resolution, 1e-12)
	assert.InDelta(t, 0.325, d.Courant, 1e-12)
	assert.InDelta(t, math.Pi/4, d.ChiRad, 1e-15)
	assert.InDelta(t, 40.5416, d.CriticalDeg, 1e-4)
	assert.InDelta(t, 33.0239, d.BrewsterDeg, 1e-4)
}

func TestDerive_ReferenceMediumAndShift(t *testing.T) {
	p := config.Default()
	p.N1 = 1.5
	p.N2 = 1.0
	p.RefMedium = 2
	p.KRw = 30
	p = p.WithSourceShift(-1)

	d := p.Derive()
	kVac := 2 * math.Pi * 12
	assert.Equal(t, 1.0, d.NRef)
	assert.InDelta(t, 1.5*kVac, d.K1, 1e-12)
	assert.InDelta(t, 30/kVac, d.RW, 1e-15)
	assert.InDelta(t, -1+30/kVac, d.Shift, 1e-12)
	assert.True(t, math.IsNaN(config.Critical(1, 1.5)))
}

func TestBuild(t *testing.T) {
	p := config.Default()
	a, err := p.Build(beam.WithLogger(nil))
	require.NoError(t, err)
	f, ok := a.(*beam.Field2D)
	require.True(t, ok)
	d := p.Derive()
	assert.Equal(t, d.K1, f.K())
	assert.Equal(t, d.Shift, f.WaistOffset())
	assert.Equal(t, beam.Gaussian{W: d.W0}, f.Profile())

	p.Profile = config.ProfileAiry
	prof, err := p.SpectralProfile()
	require.NoError(t, err)
	assert.IsType(t, beam.IncompleteAiry{}, prof)

	p.Profile = config.ProfileLaguerreGauss
	_, err = p.SpectralProfile()
	require.ErrorIs(t, err, config.ErrUnknownProfile)
	a, err = p.Build()
	require.NoError(t, err)
	assert.NotNil(t, a)
}

func TestBessel(t *testing.T) {
	p, err := config.Load(writeFile(t, "bessel.yaml", "profile: bessel\ntheta: 30\nn: 1\n"))
	require.NoError(t, err)
	assert.Equal(t, 30.0, p.ThetaDeg)
	assert.Equal(t, 1.0, p.Order)

	prof, err := p.SpectralProfile()
	require.NoError(t, err)
	b, ok := prof.(beam.Bessel)
	require.True(t, ok)
	d := p.Derive()
	assert.Equal(t, d.W0, b.W)
	assert.InDelta(t, d.K1/2, b.Kt, 1e-12)
	assert.Equal(t, 1.0, b.N)

	assert.Contains(t, p.Summary(), "theta: 30 [degree]")
	assert.Equal(t, 30.0, config.Default().ThetaDeg)
	assert.NotContains(t, config.Default().Summary(), "theta: 30 [degree]")
}

func TestSummary(t *testing.T) {
	lines := config.Default().Summary()
	assert.Contains(t, lines, "polarisation: s")
	assert.Contains(t, lines, "profile: gaussian")
}
