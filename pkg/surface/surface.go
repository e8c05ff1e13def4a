// Package surface provides ground surface scene elements.
package surface

import (
	"github.com/heliotrope-eo/heliotrope/pkg/bsdf"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/heliotrope-eo/heliotrope/pkg/factory"
	"github.com/heliotrope-eo/heliotrope/pkg/kernel"
	"github.com/heliotrope-eo/heliotrope/pkg/spectrum"
)

// DefaultID is the identifier surfaces compile under when none is configured
const DefaultID = "surface"

// defaultWidthM matches the horizontal extent of an unbounded atmosphere
const defaultWidthM = 1e7

// Surface is a ground surface scene element. Surfaces sit in the z = 0 plane
// and extend horizontally.
type Surface interface {
	kernel.Element
	kernel.Spatial

	// AutoWidth reports whether the horizontal extent was left unspecified.
	AutoWidth() bool

	// WithWidth returns a copy resized to the given horizontal extent. Scenes
	// use it to match an auto-sized surface to their atmosphere.
	WithWidth(width core.Quantity) (Surface, error)
}

// BSDFID derives the compiled identifier of a surface's scattering model
func BSDFID(id string) string { return "bsdf_" + id }

// ShapeID derives the compiled identifier of a surface's shape
func ShapeID(id string) string { return "shape_" + id }

// NewFactory creates a surface registry populated with the built-in types
func NewFactory(bsdfs *factory.Registry[bsdf.BSDF], spectra *factory.Registry[spectrum.Spectrum]) *factory.Registry[Surface] {
	r := factory.NewRegistry[Surface]("surface")
	RegisterDefaults(r, bsdfs, spectra)
	return r
}

// RegisterDefaults registers the built-in surface builders
func RegisterDefaults(r *factory.Registry[Surface], bsdfs *factory.Registry[bsdf.BSDF], spectra *factory.Registry[spectrum.Spectrum]) {
	r.MustRegister("basic", func(cfg factory.Config) (Surface, error) {
		return buildBasic(cfg, bsdfs)
	})
	r.MustRegister("central_patch", func(cfg factory.Config) (Surface, error) {
		return buildCentralPatch(cfg, bsdfs)
	})
}

// surfaceWidth reads the optional width field, zero meaning auto
func surfaceWidth(cfg factory.Config) (core.Quantity, error) {
	if !cfg.Has("width") {
		return core.Quantity{}, nil
	}
	return cfg.Quantity("width", core.Metre)
}

// surfaceBSDF builds the configured scattering model, keyed under the
// surface's BSDF identifier unless the configuration names its own. A missing
// configuration yields a 50% reflective Lambertian.
func surfaceBSDF(cfg factory.Config, key, id string, bsdfs *factory.Registry[bsdf.BSDF]) (bsdf.BSDF, error) {
	if !cfg.Has(key) {
		reflectance, err := spectrum.NewUniform("", core.Scalar(0.5))
		if err != nil {
			return nil, err
		}
		return bsdf.NewLambertian(id, reflectance)
	}
	sub, err := cfg.Sub(key)
	if err != nil {
		return nil, err
	}
	if !sub.Has("id") {
		withID := factory.Config{"id": id}
		for k, v := range sub {
			withID[k] = v
		}
		sub = withID
	}
	return bsdfs.Create(sub)
}
