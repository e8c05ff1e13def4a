// Package phase provides participating-media phase function scene elements.
package phase

import (
	"github.com/heliotrope-eo/heliotrope/pkg/factory"
	"github.com/heliotrope-eo/heliotrope/pkg/kernel"
	"github.com/heliotrope-eo/heliotrope/pkg/spectral"
	"github.com/heliotrope-eo/heliotrope/pkg/spectrum"
)

// DefaultID is the identifier phase functions compile under when none is
// configured
const DefaultID = "phase"

// Function is a phase function scene element
type Function interface {
	kernel.Element
}

// NewFactory creates a phase function registry populated with the built-in
// types. Spectrum-valued parameters are built through the given spectrum
// registry.
func NewFactory(spectra *factory.Registry[spectrum.Spectrum]) *factory.Registry[Function] {
	r := factory.NewRegistry[Function]("phase")
	RegisterDefaults(r, spectra)
	return r
}

// RegisterDefaults registers the built-in phase function builders
func RegisterDefaults(r *factory.Registry[Function], spectra *factory.Registry[spectrum.Spectrum]) {
	r.MustRegister("isotropic", buildIsotropic)
	r.MustRegister("rayleigh", buildRayleigh)
	r.MustRegister("hg", func(cfg factory.Config) (Function, error) {
		return buildHenyeyGreenstein(cfg, spectra)
	})
}

func buildIsotropic(cfg factory.Config) (Function, error) {
	id, err := cfg.StringOr("id", DefaultID)
	if err != nil {
		return nil, err
	}
	return NewIsotropic(id), nil
}

func buildRayleigh(cfg factory.Config) (Function, error) {
	id, err := cfg.StringOr("id", DefaultID)
	if err != nil {
		return nil, err
	}
	return NewRayleigh(id), nil
}

// Isotropic scatters equally in all directions
type Isotropic struct {
	id string
}

// NewIsotropic creates an isotropic phase function
func NewIsotropic(id string) *Isotropic {
	if id == "" {
		id = DefaultID
	}
	return &Isotropic{id: id}
}

func (p *Isotropic) ID() string { return p.id }

func (p *Isotropic) KernelDict(spectral.Context) (*kernel.Dict, error) {
	return kernel.NewDict().
		Set(p.id, kernel.NewDict().Set("type", "isotropic")), nil
}

// Rayleigh models molecular scattering
type Rayleigh struct {
	id string
}

// NewRayleigh creates a Rayleigh phase function
func NewRayleigh(id string) *Rayleigh {
	if id == "" {
		id = DefaultID
	}
	return &Rayleigh{id: id}
}

func (p *Rayleigh) ID() string { return p.id }

func (p *Rayleigh) KernelDict(spectral.Context) (*kernel.Dict, error) {
	return kernel.NewDict().
		Set(p.id, kernel.NewDict().Set("type", "rayleigh")), nil
}
