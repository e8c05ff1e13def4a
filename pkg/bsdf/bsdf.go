// Package bsdf provides surface scattering model scene elements.
package bsdf

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/heliotrope-eo/heliotrope/pkg/factory"
	"github.com/heliotrope-eo/heliotrope/pkg/kernel"
	"github.com/heliotrope-eo/heliotrope/pkg/spectral"
	"github.com/heliotrope-eo/heliotrope/pkg/spectrum"
)

// DefaultID is the identifier BSDFs compile under when none is configured
const DefaultID = "bsdf"

// BSDF is a surface scattering model scene element
type BSDF interface {
	kernel.Element

	// KernelValue returns the BSDF specification as a nested value suitable
	// for inline embedding into a shape fragment.
	KernelValue(ctx spectral.Context) (kernel.Value, error)
}

// NewFactory creates a BSDF registry populated with the built-in types
func NewFactory(spectra *factory.Registry[spectrum.Spectrum]) *factory.Registry[BSDF] {
	r := factory.NewRegistry[BSDF]("bsdf")
	RegisterDefaults(r, spectra)
	return r
}

// RegisterDefaults registers the built-in BSDF builders
func RegisterDefaults(r *factory.Registry[BSDF], spectra *factory.Registry[spectrum.Spectrum]) {
	r.MustRegister("lambertian", func(cfg factory.Config) (BSDF, error) {
		return buildLambertian(cfg, spectra)
	})
	r.MustRegister("rpv", func(cfg factory.Config) (BSDF, error) {
		return buildRPV(cfg, spectra)
	})
	r.MustRegister("black", buildBlack)
}

func reflectanceSpectrum(cfg factory.Config, key string, fallback float64, spectra *factory.Registry[spectrum.Spectrum]) (spectrum.Spectrum, error) {
	if !cfg.Has(key) {
		return spectrum.NewUniform("", core.Scalar(fallback))
	}
	s, err := spectrum.Convert(cfg[key], core.Unitless, spectra)
	if err != nil {
		return nil, err
	}
	if s.Dimension() != core.Dimensionless {
		return nil, errors.New("reflectance must be dimensionless").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("key", key).
			WithTag("dimension", string(s.Dimension()))
	}
	return s, nil
}
