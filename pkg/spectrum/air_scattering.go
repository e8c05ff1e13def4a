package spectrum

import (
	"math"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/heliotrope-eo/heliotrope/pkg/kernel"
	"github.com/heliotrope-eo/heliotrope/pkg/spectral"
)

// Sea-level Rayleigh scattering coefficient of air at the anchor wavelength
const (
	airAnchorWavelengthNM = 550.0
	airAnchorCoefficient  = 1.153e-2 // 1/km
)

// AirScattering is the Rayleigh scattering coefficient of standard air,
// following the lambda^-4 law anchored at 550 nm
type AirScattering struct {
	id string
}

// NewAirScattering creates an air scattering coefficient spectrum
func NewAirScattering(id string) (*AirScattering, error) {
	if id == "" {
		id = DefaultID
	}
	return &AirScattering{id: id}, nil
}

func (s *AirScattering) ID() string { return s.id }

func (s *AirScattering) Dimension() core.Dimension { return core.CollisionCoefficient }

func (s *AirScattering) Eval(ctx spectral.Context) (core.Quantity, error) {
	w, err := ctx.Wavelength().ValueAs(core.Nanometre)
	if err != nil {
		return core.Quantity{}, err
	}
	if w <= 0 {
		return core.Quantity{}, errors.New("wavelength must be positive").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("id", s.id).
			WithTag("wavelength_nm", w)
	}

	coefficient := airAnchorCoefficient * math.Pow(airAnchorWavelengthNM/w, 4)
	return core.NewQuantity(coefficient, core.PerKilometre), nil
}

func (s *AirScattering) KernelDict(ctx spectral.Context) (*kernel.Dict, error) {
	return elementDict(s, ctx)
}
