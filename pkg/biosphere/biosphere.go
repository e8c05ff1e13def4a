// Package biosphere provides vegetation canopy scene elements. A canopy
// contributes scattering models and shapes as separate dictionary entries so
// instanced placements can share a single scattering model.
package biosphere

import (
	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/heliotrope-eo/heliotrope/pkg/factory"
	"github.com/heliotrope-eo/heliotrope/pkg/kernel"
	"github.com/heliotrope-eo/heliotrope/pkg/spectral"
	"github.com/heliotrope-eo/heliotrope/pkg/spectrum"
)

// DefaultID is the identifier canopies compile under when none is configured
const DefaultID = "canopy"

// Element is a canopy building block. Scattering models and shapes are
// contributed separately: instanced placements replicate shapes while sharing
// the scattering entries.
type Element interface {
	kernel.Element
	kernel.Spatial

	// BSDFs returns the element's top-level scattering model entries.
	BSDFs(ctx spectral.Context) (*kernel.Dict, error)

	// Shapes returns the element's shape entries.
	Shapes(ctx spectral.Context) (*kernel.Dict, error)
}

// BSDFID derives the compiled identifier of a canopy element's scattering
// model
func BSDFID(id string) string { return "bsdf_" + id }

// GroupID derives the compiled identifier of an instanced element's shape
// group
func GroupID(id string) string { return "group_" + id }

// Canopy is the composite biosphere element owned by a scene
type Canopy struct {
	id       string
	elements []Element
}

// NewCanopy creates a canopy from its building blocks
func NewCanopy(id string, elements ...Element) *Canopy {
	if id == "" {
		id = DefaultID
	}
	return &Canopy{id: id, elements: elements}
}

func (c *Canopy) ID() string { return c.id }

// BoundingBox returns the union of the element extents
func (c *Canopy) BoundingBox() core.AABB {
	box := core.EmptyAABB()
	for _, e := range c.elements {
		box = box.Union(e.BoundingBox())
	}
	return box
}

func (c *Canopy) BSDFs(ctx spectral.Context) (*kernel.Dict, error) {
	d := kernel.NewDict()
	for _, e := range c.elements {
		fragment, err := e.BSDFs(ctx)
		if err != nil {
			return nil, err
		}
		if err := d.Merge(fragment); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (c *Canopy) Shapes(ctx spectral.Context) (*kernel.Dict, error) {
	d := kernel.NewDict()
	for _, e := range c.elements {
		fragment, err := e.Shapes(ctx)
		if err != nil {
			return nil, err
		}
		if err := d.Merge(fragment); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// KernelDict contributes all scattering entries first, then all shapes
func (c *Canopy) KernelDict(ctx spectral.Context) (*kernel.Dict, error) {
	d, err := c.BSDFs(ctx)
	if err != nil {
		return nil, err
	}
	shapes, err := c.Shapes(ctx)
	if err != nil {
		return nil, err
	}
	if err := d.Merge(shapes); err != nil {
		return nil, err
	}
	return d, nil
}

// NewFactory creates a biosphere registry populated with the built-in types
func NewFactory(spectra *factory.Registry[spectrum.Spectrum]) *factory.Registry[*Canopy] {
	r := factory.NewRegistry[*Canopy]("biosphere")
	RegisterDefaults(r, spectra)
	return r
}

// RegisterDefaults registers the built-in biosphere builders
func RegisterDefaults(r *factory.Registry[*Canopy], spectra *factory.Registry[spectrum.Spectrum]) {
	r.MustRegister("canopy", func(cfg factory.Config) (*Canopy, error) {
		return buildCanopy(cfg, spectra)
	})
}

func buildCanopy(cfg factory.Config, spectra *factory.Registry[spectrum.Spectrum]) (*Canopy, error) {
	id, err := cfg.StringOr("id", DefaultID)
	if err != nil {
		return nil, err
	}
	elements := NewElementFactory(spectra)
	subs, err := cfg.SubList("elements")
	if err != nil {
		return nil, err
	}
	built := make([]Element, 0, len(subs))
	for _, sub := range subs {
		e, err := elements.Create(sub)
		if err != nil {
			return nil, err
		}
		built = append(built, e)
	}
	return NewCanopy(id, built...), nil
}

// NewElementFactory creates a canopy element registry populated with the
// built-in types
func NewElementFactory(spectra *factory.Registry[spectrum.Spectrum]) *factory.Registry[Element] {
	r := factory.NewRegistry[Element]("canopy element")
	r.MustRegister("leaf_cloud", func(cfg factory.Config) (Element, error) {
		return buildLeafCloud(cfg, spectra)
	})
	r.MustRegister("instanced", func(cfg factory.Config) (Element, error) {
		return buildInstanced(cfg, spectra)
	})
	return r
}
