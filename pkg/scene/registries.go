package scene

import (
	"github.com/heliotrope-eo/heliotrope/pkg/atmosphere"
	"github.com/heliotrope-eo/heliotrope/pkg/biosphere"
	"github.com/heliotrope-eo/heliotrope/pkg/bsdf"
	"github.com/heliotrope-eo/heliotrope/pkg/factory"
	"github.com/heliotrope-eo/heliotrope/pkg/illumination"
	"github.com/heliotrope-eo/heliotrope/pkg/integrator"
	"github.com/heliotrope-eo/heliotrope/pkg/measure"
	"github.com/heliotrope-eo/heliotrope/pkg/phase"
	"github.com/heliotrope-eo/heliotrope/pkg/shape"
	"github.com/heliotrope-eo/heliotrope/pkg/spectrum"
	"github.com/heliotrope-eo/heliotrope/pkg/surface"
)

// Registries bundles one factory registry per scene element category.
// Construct it once at startup and pass it to every configuration-loading
// call site.
type Registries struct {
	Spectra       *factory.Registry[spectrum.Spectrum]
	Phases        *factory.Registry[phase.Function]
	BSDFs         *factory.Registry[bsdf.BSDF]
	Shapes        *factory.Registry[shape.Shape]
	Surfaces      *factory.Registry[surface.Surface]
	Atmospheres   *factory.Registry[atmosphere.Atmosphere]
	Canopies      *factory.Registry[*biosphere.Canopy]
	Illuminations *factory.Registry[illumination.Illumination]
	Measures      *factory.Registry[measure.Measure]
	Integrators   *factory.Registry[integrator.Integrator]
}

// NewRegistries creates the registry bundle with all built-in element types
// registered
func NewRegistries() *Registries {
	spectra := spectrum.NewFactory()
	bsdfs := bsdf.NewFactory(spectra)
	phases := phase.NewFactory(spectra)
	return &Registries{
		Spectra:       spectra,
		Phases:        phases,
		BSDFs:         bsdfs,
		Shapes:        shape.NewFactory(bsdfs, spectra),
		Surfaces:      surface.NewFactory(bsdfs, spectra),
		Atmospheres:   atmosphere.NewFactory(phases, spectra),
		Canopies:      biosphere.NewFactory(spectra),
		Illuminations: illumination.NewFactory(spectra),
		Measures:      measure.NewFactory(),
		Integrators:   integrator.NewFactory(),
	}
}

// FromConfig builds a scene from a configuration mapping. Top-level keys
// select the elements: surface, atmosphere, canopy, illumination, measures,
// integrator.
func (r *Registries) FromConfig(cfg factory.Config) (*Scene, error) {
	var p Params

	if cfg.Has("surface") {
		sub, err := cfg.Sub("surface")
		if err != nil {
			return nil, err
		}
		p.Surface, err = r.Surfaces.Create(sub)
		if err != nil {
			return nil, err
		}
	}

	if cfg.Has("atmosphere") {
		sub, err := cfg.Sub("atmosphere")
		if err != nil {
			return nil, err
		}
		p.Atmosphere, err = r.Atmospheres.Create(sub)
		if err != nil {
			return nil, err
		}
	}

	if cfg.Has("canopy") {
		sub, err := cfg.Sub("canopy")
		if err != nil {
			return nil, err
		}
		p.Canopy, err = r.Canopies.Create(sub)
		if err != nil {
			return nil, err
		}
	}

	if cfg.Has("illumination") {
		sub, err := cfg.Sub("illumination")
		if err != nil {
			return nil, err
		}
		l, err := r.Illuminations.Create(sub)
		if err != nil {
			return nil, err
		}
		p.Illuminations = append(p.Illuminations, l)
	}

	if cfg.Has("measures") {
		subs, err := cfg.SubList("measures")
		if err != nil {
			return nil, err
		}
		for _, sub := range subs {
			m, err := r.Measures.Create(sub)
			if err != nil {
				return nil, err
			}
			p.Measures = append(p.Measures, m)
		}
	}

	if cfg.Has("integrator") {
		sub, err := cfg.Sub("integrator")
		if err != nil {
			return nil, err
		}
		p.Integrator, err = r.Integrators.Create(sub)
		if err != nil {
			return nil, err
		}
	}

	return New(p)
}
