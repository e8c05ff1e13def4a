// Package radprops defines the seam to radiative property databases:
// absorption and scattering coefficients as functions of wavelength and
// altitude. Numerical databases themselves are external; this package
// provides the lookup interface plus an array-backed tabulated profile and an
// analytical Rayleigh profile useful for tests and defaults.
package radprops

import (
	"math"
	"sort"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
)

// Provider exposes radiative property lookups. Implementations must be safe
// for concurrent reads: compilation passes for distinct spectral contexts
// may query the same provider from multiple goroutines.
type Provider interface {
	// Absorption returns the absorption coefficient at a wavelength and
	// altitude.
	Absorption(wavelength, altitude core.Quantity) (core.Quantity, error)

	// Scattering returns the scattering coefficient at a wavelength and
	// altitude.
	Scattering(wavelength, altitude core.Quantity) (core.Quantity, error)
}

// Profile is a tabulated provider with bilinear interpolation over a
// (altitude, wavelength) grid. Lookups outside the grid clamp to the nearest
// tabulated value.
type Profile struct {
	wavelengthsNM []float64
	altitudesM    []float64
	absorption    [][]float64 // [altitude][wavelength], 1/m
	scattering    [][]float64
}

// NewProfile creates a tabulated profile. Axes must be strictly ascending;
// coefficient tables are indexed [altitude][wavelength] in 1/m.
func NewProfile(wavelengthsNM, altitudesM []float64, absorption, scattering [][]float64) (*Profile, error) {
	if len(wavelengthsNM) == 0 || len(altitudesM) == 0 {
		return nil, errors.New("profile axes must be non-empty").
			WithType(core.ErrTypeInvalidConfig)
	}
	if !sort.Float64sAreSorted(wavelengthsNM) || !sort.Float64sAreSorted(altitudesM) {
		return nil, errors.New("profile axes must be ascending").
			WithType(core.ErrTypeInvalidConfig)
	}
	for name, table := range map[string][][]float64{"absorption": absorption, "scattering": scattering} {
		if len(table) != len(altitudesM) {
			return nil, errors.New("table row count does not match altitude axis").
				WithType(core.ErrTypeInvalidConfig).
				WithTag("table", name).
				WithTag("rows", len(table)).
				WithTag("altitudes", len(altitudesM))
		}
		for _, row := range table {
			if len(row) != len(wavelengthsNM) {
				return nil, errors.New("table column count does not match wavelength axis").
					WithType(core.ErrTypeInvalidConfig).
					WithTag("table", name).
					WithTag("columns", len(row)).
					WithTag("wavelengths", len(wavelengthsNM))
			}
		}
	}

	return &Profile{
		wavelengthsNM: wavelengthsNM,
		altitudesM:    altitudesM,
		absorption:    absorption,
		scattering:    scattering,
	}, nil
}

func (p *Profile) Absorption(wavelength, altitude core.Quantity) (core.Quantity, error) {
	return p.lookup(p.absorption, wavelength, altitude)
}

func (p *Profile) Scattering(wavelength, altitude core.Quantity) (core.Quantity, error) {
	return p.lookup(p.scattering, wavelength, altitude)
}

func (p *Profile) lookup(table [][]float64, wavelength, altitude core.Quantity) (core.Quantity, error) {
	w, err := wavelength.ValueAs(core.Nanometre)
	if err != nil {
		return core.Quantity{}, err
	}
	z, err := altitude.ValueAs(core.Metre)
	if err != nil {
		return core.Quantity{}, err
	}

	zLo, zHi, zT := bracket(p.altitudesM, z)
	wLo, wHi, wT := bracket(p.wavelengthsNM, w)

	lo := lerp(table[zLo][wLo], table[zLo][wHi], wT)
	hi := lerp(table[zHi][wLo], table[zHi][wHi], wT)
	return core.NewQuantity(lerp(lo, hi, zT), core.PerMetre), nil
}

// bracket finds the interpolation interval and parameter for x, clamped to
// the axis ends
func bracket(axis []float64, x float64) (lo, hi int, t float64) {
	last := len(axis) - 1
	if x <= axis[0] {
		return 0, 0, 0
	}
	if x >= axis[last] {
		return last, last, 0
	}
	hi = sort.SearchFloat64s(axis, x)
	lo = hi - 1
	return lo, hi, (x - axis[lo]) / (axis[hi] - axis[lo])
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// RayleighProfile is an analytical provider modeling molecular scattering:
// the coefficient follows the lambda^-4 law, anchored at 550 nm at sea level,
// decreasing exponentially with altitude. Absorption is zero.
type RayleighProfile struct {
	seaLevel550  float64 // 1/m
	scaleHeightM float64
}

// NewRayleighProfile creates a Rayleigh provider with the given sea-level
// scattering coefficient at 550 nm and exponential scale height
func NewRayleighProfile(seaLevel550 core.Quantity, scaleHeight core.Quantity) (*RayleighProfile, error) {
	sigma, err := seaLevel550.ValueAs(core.PerMetre)
	if err != nil {
		return nil, err
	}
	h, err := scaleHeight.ValueAs(core.Metre)
	if err != nil {
		return nil, err
	}
	if sigma <= 0 || h <= 0 {
		return nil, errors.New("rayleigh profile parameters must be positive").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("sigma_s_550_per_m", sigma).
			WithTag("scale_height_m", h)
	}
	return &RayleighProfile{seaLevel550: sigma, scaleHeightM: h}, nil
}

func (p *RayleighProfile) Absorption(core.Quantity, core.Quantity) (core.Quantity, error) {
	return core.NewQuantity(0, core.PerMetre), nil
}

func (p *RayleighProfile) Scattering(wavelength, altitude core.Quantity) (core.Quantity, error) {
	w, err := wavelength.ValueAs(core.Nanometre)
	if err != nil {
		return core.Quantity{}, err
	}
	z, err := altitude.ValueAs(core.Metre)
	if err != nil {
		return core.Quantity{}, err
	}

	sigma := p.seaLevel550 * math.Pow(550/w, 4) * math.Exp(-z/p.scaleHeightM)
	return core.NewQuantity(sigma, core.PerMetre), nil
}
