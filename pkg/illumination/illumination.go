// Package illumination provides light source scene elements.
package illumination

import (
	"math"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/heliotrope-eo/heliotrope/pkg/factory"
	"github.com/heliotrope-eo/heliotrope/pkg/kernel"
	"github.com/heliotrope-eo/heliotrope/pkg/spectral"
	"github.com/heliotrope-eo/heliotrope/pkg/spectrum"
)

// DefaultID is the identifier illuminants compile under when none is
// configured
const DefaultID = "illumination"

// Illumination is a light source scene element
type Illumination interface {
	kernel.Element
}

// NewFactory creates an illumination registry populated with the built-in
// types
func NewFactory(spectra *factory.Registry[spectrum.Spectrum]) *factory.Registry[Illumination] {
	r := factory.NewRegistry[Illumination]("illumination")
	RegisterDefaults(r, spectra)
	return r
}

// RegisterDefaults registers the built-in illumination builders
func RegisterDefaults(r *factory.Registry[Illumination], spectra *factory.Registry[spectrum.Spectrum]) {
	r.MustRegister("directional", func(cfg factory.Config) (Illumination, error) {
		return buildDirectional(cfg, spectra)
	})
	r.MustRegister("constant", func(cfg factory.Config) (Illumination, error) {
		return buildConstant(cfg, spectra)
	})
}

// Directional is a distant illuminant shining along a fixed direction,
// parameterized by the source's angular position in the sky
type Directional struct {
	id         string
	zenith     core.Quantity
	azimuth    core.Quantity
	irradiance spectrum.Spectrum
}

// NewDirectional creates a directional illuminant. Zenith and azimuth locate
// the source; a nil irradiance defaults to the built-in solar spectrum.
func NewDirectional(id string, zenith, azimuth core.Quantity, irradiance spectrum.Spectrum) (*Directional, error) {
	if id == "" {
		id = DefaultID
	}
	if irradiance == nil {
		var err error
		irradiance, err = spectrum.NewSolarIrradiance(id+"_irradiance", 1)
		if err != nil {
			return nil, err
		}
	}
	if irradiance.Dimension() != core.Irradiance {
		return nil, errors.New("directional illuminant spectrum must be an irradiance").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("id", id).
			WithTag("dimension", string(irradiance.Dimension()))
	}

	zenithRad, err := zenith.ValueAs(core.Radian)
	if err != nil {
		return nil, err
	}
	if zenithRad < 0 || zenithRad > math.Pi/2 {
		return nil, errors.New("zenith angle out of range").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("id", id).
			WithTag("zenith_rad", zenithRad)
	}
	if _, err := azimuth.ValueAs(core.Radian); err != nil {
		return nil, err
	}

	return &Directional{id: id, zenith: zenith, azimuth: azimuth, irradiance: irradiance}, nil
}

func (l *Directional) ID() string { return l.id }

// Direction returns the direction light travels: from the source's angular
// position toward the scene
func (l *Directional) Direction() core.Vec3 {
	theta := l.zenith.MustValueAs(core.Radian)
	phi := l.azimuth.MustValueAs(core.Radian)
	return core.NewVec3(
		-math.Sin(theta)*math.Cos(phi),
		-math.Sin(theta)*math.Sin(phi),
		-math.Cos(theta),
	)
}

func (l *Directional) KernelDict(ctx spectral.Context) (*kernel.Dict, error) {
	irradiance, err := spectrum.KernelValue(l.irradiance, ctx)
	if err != nil {
		return nil, err
	}
	return kernel.NewDict().Set(l.id, kernel.NewDict().
		Set("type", "directional").
		Set("direction", l.Direction().Slice()).
		Set("irradiance", irradiance)), nil
}

func buildDirectional(cfg factory.Config, spectra *factory.Registry[spectrum.Spectrum]) (Illumination, error) {
	id, err := cfg.StringOr("id", DefaultID)
	if err != nil {
		return nil, err
	}
	zenith, err := cfg.QuantityOr("zenith", core.Degrees(0))
	if err != nil {
		return nil, err
	}
	azimuth, err := cfg.QuantityOr("azimuth", core.Degrees(0))
	if err != nil {
		return nil, err
	}
	var irradiance spectrum.Spectrum
	if raw, ok := cfg["irradiance"]; ok {
		irradiance, err = spectrum.Convert(raw, core.WattPerSquareMetrePerNanometre, spectra)
		if err != nil {
			return nil, err
		}
	}
	return NewDirectional(id, zenith, azimuth, irradiance)
}

// Constant is an isotropic illuminant filling the whole sky
type Constant struct {
	id       string
	radiance spectrum.Spectrum
}

// NewConstant creates a constant illuminant
func NewConstant(id string, radiance spectrum.Spectrum) (*Constant, error) {
	if id == "" {
		id = DefaultID
	}
	if radiance == nil {
		var err error
		radiance, err = spectrum.NewUniform(id+"_radiance", core.NewQuantity(1, core.WattPerSquareMetrePerNanometre))
		if err != nil {
			return nil, err
		}
	}
	return &Constant{id: id, radiance: radiance}, nil
}

func (l *Constant) ID() string { return l.id }

func (l *Constant) KernelDict(ctx spectral.Context) (*kernel.Dict, error) {
	radiance, err := spectrum.KernelValue(l.radiance, ctx)
	if err != nil {
		return nil, err
	}
	return kernel.NewDict().Set(l.id, kernel.NewDict().
		Set("type", "constant").
		Set("radiance", radiance)), nil
}

func buildConstant(cfg factory.Config, spectra *factory.Registry[spectrum.Spectrum]) (Illumination, error) {
	id, err := cfg.StringOr("id", DefaultID)
	if err != nil {
		return nil, err
	}
	var radiance spectrum.Spectrum
	if raw, ok := cfg["radiance"]; ok {
		radiance, err = spectrum.Convert(raw, core.WattPerSquareMetrePerNanometre, spectra)
		if err != nil {
			return nil, err
		}
	}
	return NewConstant(id, radiance)
}
