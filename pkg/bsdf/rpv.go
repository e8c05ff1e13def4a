package bsdf

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/heliotrope-eo/heliotrope/pkg/factory"
	"github.com/heliotrope-eo/heliotrope/pkg/kernel"
	"github.com/heliotrope-eo/heliotrope/pkg/spectral"
	"github.com/heliotrope-eo/heliotrope/pkg/spectrum"
)

// RPV is the Rahman-Pinty-Verstraete BSDF commonly used to model land
// surface reflection in Earth observation
type RPV struct {
	id   string
	rho0 spectrum.Spectrum
	k    spectrum.Spectrum
	g    spectrum.Spectrum
}

// NewRPV creates an RPV BSDF; all three parameters are dimensionless spectra
func NewRPV(id string, rho0, k, g spectrum.Spectrum) (*RPV, error) {
	if id == "" {
		id = DefaultID
	}
	for name, s := range map[string]spectrum.Spectrum{"rho_0": rho0, "k": k, "g": g} {
		if s.Dimension() != core.Dimensionless {
			return nil, errors.New("rpv parameter must be dimensionless").
				WithType(core.ErrTypeInvalidConfig).
				WithTag("id", id).
				WithTag("parameter", name)
		}
	}
	return &RPV{id: id, rho0: rho0, k: k, g: g}, nil
}

func (b *RPV) ID() string { return b.id }

func (b *RPV) KernelValue(ctx spectral.Context) (kernel.Value, error) {
	rho0, err := b.rho0.Eval(ctx)
	if err != nil {
		return nil, err
	}
	k, err := b.k.Eval(ctx)
	if err != nil {
		return nil, err
	}
	g, err := b.g.Eval(ctx)
	if err != nil {
		return nil, err
	}

	return kernel.NewDict().
		Set("type", "rpv").
		Set("rho_0", rho0.Value).
		Set("k", k.Value).
		Set("g", g.Value), nil
}

func (b *RPV) KernelDict(ctx spectral.Context) (*kernel.Dict, error) {
	value, err := b.KernelValue(ctx)
	if err != nil {
		return nil, err
	}
	return kernel.NewDict().Set(b.id, value), nil
}

func buildRPV(cfg factory.Config, spectra *factory.Registry[spectrum.Spectrum]) (BSDF, error) {
	id, err := cfg.StringOr("id", DefaultID)
	if err != nil {
		return nil, err
	}
	rho0, err := reflectanceSpectrum(cfg, "rho_0", 0.183, spectra)
	if err != nil {
		return nil, err
	}
	k, err := reflectanceSpectrum(cfg, "k", 0.780, spectra)
	if err != nil {
		return nil, err
	}
	g, err := reflectanceSpectrum(cfg, "g", -0.1, spectra)
	if err != nil {
		return nil, err
	}
	return NewRPV(id, rho0, k, g)
}
