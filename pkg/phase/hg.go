package phase

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/heliotrope-eo/heliotrope/pkg/factory"
	"github.com/heliotrope-eo/heliotrope/pkg/kernel"
	"github.com/heliotrope-eo/heliotrope/pkg/spectral"
	"github.com/heliotrope-eo/heliotrope/pkg/spectrum"
)

// HenyeyGreenstein models scattering in an isotropic medium whose pattern is
// controlled by the asymmetry parameter g, the mean cosine of the scattering
// angle. Positive g favors forward scattering, negative g backward
// scattering.
type HenyeyGreenstein struct {
	id string
	g  spectrum.Spectrum
}

// NewHenyeyGreenstein creates a Henyey-Greenstein phase function. The
// asymmetry parameter must be dimensionless and stay within ]-1, 1[ at every
// evaluated wavelength.
func NewHenyeyGreenstein(id string, g spectrum.Spectrum) (*HenyeyGreenstein, error) {
	if id == "" {
		id = DefaultID
	}
	if g.Dimension() != core.Dimensionless {
		return nil, errors.New("asymmetry parameter must be dimensionless").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("id", id).
			WithTag("dimension", string(g.Dimension()))
	}
	return &HenyeyGreenstein{id: id, g: g}, nil
}

func (p *HenyeyGreenstein) ID() string { return p.id }

func (p *HenyeyGreenstein) KernelDict(ctx spectral.Context) (*kernel.Dict, error) {
	g, err := p.g.Eval(ctx)
	if err != nil {
		return nil, err
	}
	if g.Value <= -1 || g.Value >= 1 {
		return nil, errors.New("asymmetry parameter out of range").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("id", p.id).
			WithTag("g", g.Value)
	}

	return kernel.NewDict().
		Set(p.id, kernel.NewDict().
			Set("type", "hg").
			Set("g", g.Value)), nil
}

func buildHenyeyGreenstein(cfg factory.Config, spectra *factory.Registry[spectrum.Spectrum]) (Function, error) {
	id, err := cfg.StringOr("id", DefaultID)
	if err != nil {
		return nil, err
	}

	var g spectrum.Spectrum
	if cfg.Has("g") {
		g, err = spectrum.Convert(cfg["g"], core.Unitless, spectra)
		if err != nil {
			return nil, err
		}
	} else {
		g, err = spectrum.NewUniform("", core.Scalar(0))
		if err != nil {
			return nil, err
		}
	}

	return NewHenyeyGreenstein(id, g)
}
