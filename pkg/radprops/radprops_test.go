package radprops

import (
	"math"
	"testing"

	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/stretchr/testify/require"
)

func TestProfileBilinearInterpolation(t *testing.T) {
	p, err := NewProfile(
		[]float64{400, 600},
		[]float64{0, 1000},
		[][]float64{{0, 0}, {0, 0}},
		[][]float64{
			{1e-3, 3e-3},
			{2e-3, 4e-3},
		},
	)
	require.NoError(t, err)

	// Grid corners are reproduced exactly.
	s, err := p.Scattering(core.Nanometres(400), core.Metres(0))
	require.NoError(t, err)
	require.InDelta(t, 1e-3, s.MustValueAs(core.PerMetre), 1e-15)

	// Midpoint of both axes averages the four corners.
	s, err = p.Scattering(core.Nanometres(500), core.Metres(500))
	require.NoError(t, err)
	require.InDelta(t, 2.5e-3, s.MustValueAs(core.PerMetre), 1e-15)
}

func TestProfileClampsOutsideGrid(t *testing.T) {
	p, err := NewProfile(
		[]float64{400, 600},
		[]float64{0, 1000},
		[][]float64{{0, 0}, {0, 0}},
		[][]float64{
			{1e-3, 3e-3},
			{2e-3, 4e-3},
		},
	)
	require.NoError(t, err)

	s, err := p.Scattering(core.Nanometres(300), core.Metres(-100))
	require.NoError(t, err)
	require.InDelta(t, 1e-3, s.MustValueAs(core.PerMetre), 1e-15)

	s, err = p.Scattering(core.Nanometres(700), core.Metres(5000))
	require.NoError(t, err)
	require.InDelta(t, 4e-3, s.MustValueAs(core.PerMetre), 1e-15)
}

func TestProfileValidation(t *testing.T) {
	_, err := NewProfile(nil, []float64{0}, [][]float64{{}}, [][]float64{{}})
	require.Error(t, err)

	_, err = NewProfile([]float64{600, 400}, []float64{0}, [][]float64{{0, 0}}, [][]float64{{0, 0}})
	require.Error(t, err)

	// Row count must match the altitude axis.
	_, err = NewProfile([]float64{400}, []float64{0, 1000}, [][]float64{{0}}, [][]float64{{0}, {0}})
	require.Error(t, err)

	// Column count must match the wavelength axis.
	_, err = NewProfile([]float64{400, 600}, []float64{0}, [][]float64{{0}}, [][]float64{{0, 0}})
	require.Error(t, err)
}

func TestRayleighProfileWavelengthLaw(t *testing.T) {
	p, err := NewRayleighProfile(core.NewQuantity(1.153e-2, core.PerKilometre), core.Kilometres(8))
	require.NoError(t, err)

	anchor, err := p.Scattering(core.Nanometres(550), core.Metres(0))
	require.NoError(t, err)
	require.InDelta(t, 1.153e-5, anchor.MustValueAs(core.PerMetre), 1e-12)

	// Halving the wavelength multiplies the coefficient by 16.
	blue, err := p.Scattering(core.Nanometres(275), core.Metres(0))
	require.NoError(t, err)
	require.InDelta(t, 16*anchor.MustValueAs(core.PerMetre), blue.MustValueAs(core.PerMetre), 1e-12)
}

func TestRayleighProfileAltitudeDecay(t *testing.T) {
	p, err := NewRayleighProfile(core.NewQuantity(1.153e-2, core.PerKilometre), core.Kilometres(8))
	require.NoError(t, err)

	ground, err := p.Scattering(core.Nanometres(550), core.Metres(0))
	require.NoError(t, err)
	aloft, err := p.Scattering(core.Nanometres(550), core.Kilometres(8))
	require.NoError(t, err)

	ratio := aloft.MustValueAs(core.PerMetre) / ground.MustValueAs(core.PerMetre)
	require.InDelta(t, math.Exp(-1), ratio, 1e-12)
}

func TestRayleighProfileAbsorptionIsZero(t *testing.T) {
	p, err := NewRayleighProfile(core.NewQuantity(1.153e-2, core.PerKilometre), core.Kilometres(8))
	require.NoError(t, err)

	k, err := p.Absorption(core.Nanometres(550), core.Metres(0))
	require.NoError(t, err)
	require.Equal(t, 0.0, k.MustValueAs(core.PerMetre))
}

func TestRayleighProfileValidation(t *testing.T) {
	_, err := NewRayleighProfile(core.NewQuantity(0, core.PerKilometre), core.Kilometres(8))
	require.Error(t, err)

	_, err = NewRayleighProfile(core.NewQuantity(1e-2, core.PerKilometre), core.Kilometres(0))
	require.Error(t, err)

	_, err = NewRayleighProfile(core.Metres(1), core.Kilometres(8))
	require.Error(t, err)
}
