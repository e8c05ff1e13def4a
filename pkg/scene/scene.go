// Package scene provides the composition root: it owns the full element
// graph and orchestrates per-context kernel dictionary compilation.
package scene

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/heliotrope-eo/heliotrope/pkg/atmosphere"
	"github.com/heliotrope-eo/heliotrope/pkg/biosphere"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/heliotrope-eo/heliotrope/pkg/illumination"
	"github.com/heliotrope-eo/heliotrope/pkg/integrator"
	"github.com/heliotrope-eo/heliotrope/pkg/kernel"
	"github.com/heliotrope-eo/heliotrope/pkg/measure"
	"github.com/heliotrope-eo/heliotrope/pkg/spectral"
	"github.com/heliotrope-eo/heliotrope/pkg/surface"
)

// Params collects the elements a scene is built from. Surface, illumination
// and measures are required; atmosphere and canopy are optional; a nil
// integrator defaults to path tracing, volumetric when the scene carries an
// atmosphere.
type Params struct {
	Integrator    integrator.Integrator
	Surface       surface.Surface
	Atmosphere    atmosphere.Atmosphere
	Canopy        *biosphere.Canopy
	Illuminations []illumination.Illumination
	Measures      []measure.Measure
}

// Scene owns the element graph. It is immutable after construction: repeated
// compilations of the same scene and context produce structurally equal
// dictionaries.
type Scene struct {
	integrator    integrator.Integrator
	surface       surface.Surface
	atmosphere    atmosphere.Atmosphere
	canopy        *biosphere.Canopy
	illuminations []illumination.Illumination
	measures      []measure.Measure
	bounds        core.AABB
}

// New validates and assembles a scene. An auto-sized surface is stretched to
// its atmosphere's horizontal extent, and every measure target must lie
// within the union of the surface, atmosphere and canopy extents.
func New(p Params) (*Scene, error) {
	if p.Surface == nil {
		return nil, errors.New("scene requires a surface").
			WithType(core.ErrTypeInvalidConfig)
	}
	if len(p.Illuminations) == 0 {
		return nil, errors.New("scene requires at least one illumination source").
			WithType(core.ErrTypeInvalidConfig)
	}
	if len(p.Measures) == 0 {
		return nil, errors.New("scene requires at least one measure").
			WithType(core.ErrTypeInvalidConfig)
	}

	surf := p.Surface
	if p.Atmosphere != nil && surf.AutoWidth() {
		size := p.Atmosphere.BoundingBox().Size()
		width := core.Metres(max(size.X, size.Y))
		var err error
		surf, err = surf.WithWidth(width)
		if err != nil {
			return nil, err
		}
	}

	integ := p.Integrator
	if integ == nil {
		var err error
		if p.Atmosphere != nil {
			integ, err = integrator.NewVolPath("", 0, 0)
		} else {
			integ, err = integrator.NewPath("", 0, 0)
		}
		if err != nil {
			return nil, err
		}
	}

	bounds := surf.BoundingBox()
	if p.Atmosphere != nil {
		bounds = bounds.Union(p.Atmosphere.BoundingBox())
	}
	if p.Canopy != nil {
		bounds = bounds.Union(p.Canopy.BoundingBox())
	}

	for _, m := range p.Measures {
		target, ok := m.Target()
		if !ok {
			continue
		}
		if !target.In(bounds) {
			return nil, errors.New("measure target lies outside the scene extent").
				WithType(core.ErrTypeOutOfBoundsTarget).
				WithTag("measure", m.ID())
		}
	}

	return &Scene{
		integrator:    integ,
		surface:       surf,
		atmosphere:    p.Atmosphere,
		canopy:        p.Canopy,
		illuminations: p.Illuminations,
		measures:      p.Measures,
		bounds:        bounds,
	}, nil
}

// BoundingBox returns the scene extent computed at construction
func (s *Scene) BoundingBox() core.AABB { return s.bounds }

// Measures returns the scene's measures in configuration order
func (s *Scene) Measures() []measure.Measure {
	measures := make([]measure.Measure, len(s.measures))
	copy(measures, s.measures)
	return measures
}

// Compile assembles the kernel dictionary for one measure under one spectral
// context. Entries are contributed in a fixed order: integrator, sensor,
// illumination, surface, atmosphere, canopy. The returned dictionary passed
// the reference closure check.
func (s *Scene) Compile(m measure.Measure, ctx spectral.Context) (*kernel.Dict, error) {
	d := kernel.NewDict()

	if err := d.Add(ctx, s.integrator, m); err != nil {
		return nil, err
	}
	for _, l := range s.illuminations {
		if err := d.Add(ctx, l); err != nil {
			return nil, err
		}
	}
	if err := d.Add(ctx, s.surface); err != nil {
		return nil, err
	}
	if s.atmosphere != nil {
		if err := d.Add(ctx, s.atmosphere); err != nil {
			return nil, err
		}
	}
	if s.canopy != nil {
		if err := d.Add(ctx, s.canopy); err != nil {
			return nil, err
		}
	}

	if err := d.CheckReferences(); err != nil {
		return nil, err
	}
	return d, nil
}
