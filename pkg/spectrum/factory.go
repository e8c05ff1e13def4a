package spectrum

import (
	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/heliotrope-eo/heliotrope/pkg/factory"
)

// NewFactory creates a spectrum registry populated with the built-in types
func NewFactory() *factory.Registry[Spectrum] {
	r := factory.NewRegistry[Spectrum]("spectrum")
	RegisterDefaults(r)
	return r
}

// RegisterDefaults registers the built-in spectrum builders
func RegisterDefaults(r *factory.Registry[Spectrum]) {
	r.MustRegister("uniform", buildUniform)
	r.MustRegister("interpolated", buildInterpolated)
	r.MustRegister("solar_irradiance", buildSolarIrradiance)
	r.MustRegister("air_scattering", buildAirScattering)
}

func buildUniform(cfg factory.Config) (Spectrum, error) {
	id, err := cfg.StringOr("id", DefaultID)
	if err != nil {
		return nil, err
	}
	value, err := cfg.Float("value")
	if err != nil {
		return nil, err
	}
	symbol, err := cfg.StringOr("unit", "")
	if err != nil {
		return nil, err
	}
	unit, err := core.ParseUnit(symbol)
	if err != nil {
		return nil, err
	}
	return NewUniform(id, core.NewQuantity(value, unit))
}

func buildInterpolated(cfg factory.Config) (Spectrum, error) {
	id, err := cfg.StringOr("id", DefaultID)
	if err != nil {
		return nil, err
	}
	wavelengths, err := cfg.Floats("wavelengths")
	if err != nil {
		return nil, err
	}
	values, err := cfg.Floats("values")
	if err != nil {
		return nil, err
	}
	symbol, err := cfg.StringOr("unit", "")
	if err != nil {
		return nil, err
	}
	unit, err := core.ParseUnit(symbol)
	if err != nil {
		return nil, err
	}
	return NewInterpolated(id, wavelengths, values, unit)
}

func buildSolarIrradiance(cfg factory.Config) (Spectrum, error) {
	id, err := cfg.StringOr("id", DefaultID)
	if err != nil {
		return nil, err
	}
	scale, err := cfg.FloatOr("scale", 1)
	if err != nil {
		return nil, err
	}
	return NewSolarIrradiance(id, scale)
}

func buildAirScattering(cfg factory.Config) (Spectrum, error) {
	id, err := cfg.StringOr("id", DefaultID)
	if err != nil {
		return nil, err
	}
	return NewAirScattering(id)
}
