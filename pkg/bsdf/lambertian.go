package bsdf

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/heliotrope-eo/heliotrope/pkg/factory"
	"github.com/heliotrope-eo/heliotrope/pkg/kernel"
	"github.com/heliotrope-eo/heliotrope/pkg/spectral"
	"github.com/heliotrope-eo/heliotrope/pkg/spectrum"
)

// Lambertian is a perfectly diffuse BSDF
type Lambertian struct {
	id          string
	reflectance spectrum.Spectrum
}

// NewLambertian creates a Lambertian BSDF with a dimensionless reflectance
// spectrum
func NewLambertian(id string, reflectance spectrum.Spectrum) (*Lambertian, error) {
	if id == "" {
		id = DefaultID
	}
	if reflectance.Dimension() != core.Dimensionless {
		return nil, errors.New("reflectance must be dimensionless").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("id", id).
			WithTag("dimension", string(reflectance.Dimension()))
	}
	return &Lambertian{id: id, reflectance: reflectance}, nil
}

func (b *Lambertian) ID() string { return b.id }

func (b *Lambertian) KernelValue(ctx spectral.Context) (kernel.Value, error) {
	reflectance, err := b.reflectance.Eval(ctx)
	if err != nil {
		return nil, err
	}
	if reflectance.Value < 0 || reflectance.Value > 1 {
		return nil, errors.New("reflectance out of range").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("id", b.id).
			WithTag("reflectance", reflectance.Value)
	}

	return kernel.NewDict().
		Set("type", "diffuse").
		Set("reflectance", kernel.NewDict().
			Set("type", "uniform").
			Set("value", reflectance.Value)), nil
}

func (b *Lambertian) KernelDict(ctx spectral.Context) (*kernel.Dict, error) {
	value, err := b.KernelValue(ctx)
	if err != nil {
		return nil, err
	}
	return kernel.NewDict().Set(b.id, value), nil
}

func buildLambertian(cfg factory.Config, spectra *factory.Registry[spectrum.Spectrum]) (BSDF, error) {
	id, err := cfg.StringOr("id", DefaultID)
	if err != nil {
		return nil, err
	}
	reflectance, err := reflectanceSpectrum(cfg, "reflectance", 0.5, spectra)
	if err != nil {
		return nil, err
	}
	return NewLambertian(id, reflectance)
}
