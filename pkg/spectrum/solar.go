package spectrum

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/heliotrope-eo/heliotrope/pkg/kernel"
	"github.com/heliotrope-eo/heliotrope/pkg/spectral"
)

// Coarse top-of-atmosphere solar irradiance table, W/m^2/nm. High-resolution
// datasets are supplied by external databases; this built-in table keeps the
// default illuminant usable without one.
var (
	solarWavelengthsNM = []float64{
		280, 300, 320, 350, 400, 450, 500, 550, 600, 650,
		700, 800, 900, 1000, 1200, 1500, 2000, 2400,
	}
	solarValues = []float64{
		0.082, 0.514, 0.777, 0.963, 1.703, 2.042, 1.928, 1.866, 1.745, 1.596,
		1.427, 1.107, 0.889, 0.748, 0.485, 0.302, 0.104, 0.062,
	}
)

// SolarIrradiance is the default illumination spectrum: a tabulated solar
// irradiance spectrum with an optional scaling factor
type SolarIrradiance struct {
	id    string
	scale float64
	table *Interpolated
}

// NewSolarIrradiance creates a solar irradiance spectrum scaled by the given
// factor; a scale of 1 yields the tabulated values
func NewSolarIrradiance(id string, scale float64) (*SolarIrradiance, error) {
	if id == "" {
		id = DefaultID
	}
	if scale <= 0 {
		return nil, errors.New("scale must be positive").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("id", id).
			WithTag("scale", scale)
	}

	table, err := NewInterpolated(id, solarWavelengthsNM, solarValues, core.WattPerSquareMetrePerNanometre)
	if err != nil {
		return nil, err
	}
	return &SolarIrradiance{id: id, scale: scale, table: table}, nil
}

func (s *SolarIrradiance) ID() string { return s.id }

func (s *SolarIrradiance) Dimension() core.Dimension { return core.Irradiance }

func (s *SolarIrradiance) Eval(ctx spectral.Context) (core.Quantity, error) {
	value, err := s.table.Eval(ctx)
	if err != nil {
		return core.Quantity{}, err
	}
	value.Value *= s.scale
	return value, nil
}

func (s *SolarIrradiance) KernelDict(ctx spectral.Context) (*kernel.Dict, error) {
	return elementDict(s, ctx)
}
