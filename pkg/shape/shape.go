// Package shape provides geometric scene elements. Shapes carry an optional
// BSDF binding, either inline or as a reference to a top-level BSDF entry.
package shape

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/heliotrope-eo/heliotrope/pkg/bsdf"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/heliotrope-eo/heliotrope/pkg/factory"
	"github.com/heliotrope-eo/heliotrope/pkg/kernel"
	"github.com/heliotrope-eo/heliotrope/pkg/spectral"
	"github.com/heliotrope-eo/heliotrope/pkg/spectrum"
)

// DefaultID is the identifier shapes compile under when none is configured
const DefaultID = "shape"

// Shape is a geometric scene element with a spatial extent
type Shape interface {
	kernel.Element
	kernel.Spatial
}

// Binding attaches a BSDF to a shape, either inline or by reference
type Binding struct {
	inline bsdf.BSDF
	ref    string
}

// InlineBSDF binds a BSDF embedded into the shape fragment
func InlineBSDF(b bsdf.BSDF) Binding {
	return Binding{inline: b}
}

// RefBSDF binds a BSDF registered as a top-level entry under the given
// identifier
func RefBSDF(id string) Binding {
	return Binding{ref: id}
}

// IsZero reports whether no BSDF is bound
func (b Binding) IsZero() bool {
	return b.inline == nil && b.ref == ""
}

func (b Binding) kernelValue(ctx spectral.Context) (kernel.Value, error) {
	if b.inline != nil {
		return b.inline.KernelValue(ctx)
	}
	if b.ref != "" {
		return kernel.NewRef(b.ref), nil
	}
	return nil, nil
}

// setBSDF adds the binding to a shape fragment when one is present
func (b Binding) setBSDF(d *kernel.Dict, ctx spectral.Context) error {
	if b.IsZero() {
		return nil
	}
	value, err := b.kernelValue(ctx)
	if err != nil {
		return err
	}
	d.Set("bsdf", value)
	return nil
}

// NewFactory creates a shape registry populated with the built-in types
func NewFactory(bsdfs *factory.Registry[bsdf.BSDF], spectra *factory.Registry[spectrum.Spectrum]) *factory.Registry[Shape] {
	r := factory.NewRegistry[Shape]("shape")
	RegisterDefaults(r, bsdfs, spectra)
	return r
}

// RegisterDefaults registers the built-in shape builders
func RegisterDefaults(r *factory.Registry[Shape], bsdfs *factory.Registry[bsdf.BSDF], spectra *factory.Registry[spectrum.Spectrum]) {
	r.MustRegister("sphere", func(cfg factory.Config) (Shape, error) {
		return buildSphere(cfg, bsdfs)
	})
	r.MustRegister("cuboid", func(cfg factory.Config) (Shape, error) {
		return buildCuboid(cfg, bsdfs)
	})
	r.MustRegister("rectangle", func(cfg factory.Config) (Shape, error) {
		return buildRectangle(cfg, bsdfs)
	})
}

// bindingFromConfig reads an optional "bsdf" key: a string is a reference to
// a top-level BSDF entry, a mapping is an inline BSDF specification
func bindingFromConfig(cfg factory.Config, bsdfs *factory.Registry[bsdf.BSDF]) (Binding, error) {
	raw, ok := cfg["bsdf"]
	if !ok {
		return Binding{}, nil
	}

	switch v := raw.(type) {
	case string:
		return RefBSDF(v), nil
	case map[string]any:
		b, err := bsdfs.Create(factory.Config(v))
		if err != nil {
			return Binding{}, err
		}
		return InlineBSDF(b), nil
	case factory.Config:
		b, err := bsdfs.Create(v)
		if err != nil {
			return Binding{}, err
		}
		return InlineBSDF(b), nil
	default:
		return Binding{}, errors.New("bsdf binding is not a reference or a mapping").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("value", raw)
	}
}
