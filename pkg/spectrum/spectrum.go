// Package spectrum provides scene elements describing spectrally varying
// physical values: source spectra, reflectances, collision coefficients.
package spectrum

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/heliotrope-eo/heliotrope/pkg/factory"
	"github.com/heliotrope-eo/heliotrope/pkg/kernel"
	"github.com/heliotrope-eo/heliotrope/pkg/spectral"
)

// DefaultID is the identifier spectra compile under when none is configured
const DefaultID = "spectrum"

// Spectrum is a scene element whose value varies with the spectral context
type Spectrum interface {
	kernel.Element

	// Eval returns the spectrum value at the given spectral context.
	Eval(ctx spectral.Context) (core.Quantity, error)

	// Dimension returns the physical dimension the spectrum carries.
	Dimension() core.Dimension
}

// KernelValue returns the nested dictionary embedding a spectrum into a
// parent element's fragment. At a fixed spectral context every spectrum
// reduces to a single value in kernel units.
func KernelValue(s Spectrum, ctx spectral.Context) (kernel.Value, error) {
	value, err := s.Eval(ctx)
	if err != nil {
		return nil, err
	}
	magnitude, err := value.ValueAs(core.KernelUnit(s.Dimension()))
	if err != nil {
		return nil, err
	}
	return kernel.NewDict().
		Set("type", "uniform").
		Set("value", magnitude), nil
}

func elementDict(s Spectrum, ctx spectral.Context) (*kernel.Dict, error) {
	value, err := KernelValue(s, ctx)
	if err != nil {
		return nil, errors.New("evaluating spectrum failed").
			WithTag("id", s.ID()).
			Wrap(err)
	}
	return kernel.NewDict().Set(s.ID(), value), nil
}

// Convert builds a spectrum from a configuration value in the way element
// builders accept spectra: a bare number becomes a uniform spectrum with the
// given default unit, a mapping is routed through the registry.
func Convert(raw any, defaultUnit core.Unit, registry *factory.Registry[Spectrum]) (Spectrum, error) {
	switch v := raw.(type) {
	case float64:
		return NewUniform(DefaultID, core.NewQuantity(v, defaultUnit))
	case int:
		return NewUniform(DefaultID, core.NewQuantity(float64(v), defaultUnit))
	case map[string]any:
		return registry.Create(factory.Config(v))
	case factory.Config:
		return registry.Create(v)
	case Spectrum:
		return v, nil
	default:
		return nil, errors.New("value is not a spectrum").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("value", raw)
	}
}
