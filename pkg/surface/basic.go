package surface

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/heliotrope-eo/heliotrope/pkg/bsdf"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/heliotrope-eo/heliotrope/pkg/factory"
	"github.com/heliotrope-eo/heliotrope/pkg/kernel"
	"github.com/heliotrope-eo/heliotrope/pkg/shape"
	"github.com/heliotrope-eo/heliotrope/pkg/spectral"
)

// Basic is a square surface with a single scattering model
type Basic struct {
	id    string
	width core.Quantity
	auto  bool
	bsdf  bsdf.BSDF
	shape *shape.Rectangle
}

// NewBasic creates a basic surface. A zero width leaves the horizontal extent
// unspecified; the scene resizes it to match its atmosphere.
func NewBasic(id string, width core.Quantity, b bsdf.BSDF) (*Basic, error) {
	if id == "" {
		id = DefaultID
	}
	if b == nil {
		return nil, errors.New("surface requires a scattering model").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("id", id)
	}

	auto := width == core.Quantity{}
	widthM := defaultWidthM
	if !auto {
		var err error
		widthM, err = width.ValueAs(core.Metre)
		if err != nil {
			return nil, err
		}
		if widthM <= 0 {
			return nil, errors.New("surface width must be positive").
				WithType(core.ErrTypeInvalidConfig).
				WithTag("id", id).
				WithTag("width_m", widthM)
		}
	}

	rect, err := shape.NewRectangle(ShapeID(id), core.NewVec3(0, 0, 0), widthM, widthM, shape.RefBSDF(b.ID()))
	if err != nil {
		return nil, err
	}
	return &Basic{id: id, width: core.Metres(widthM), auto: auto, bsdf: b, shape: rect}, nil
}

func (s *Basic) ID() string { return s.id }

func (s *Basic) AutoWidth() bool { return s.auto }

func (s *Basic) WithWidth(width core.Quantity) (Surface, error) {
	return NewBasic(s.id, width, s.bsdf)
}

func (s *Basic) BoundingBox() core.AABB { return s.shape.BoundingBox() }

func (s *Basic) KernelDict(ctx spectral.Context) (*kernel.Dict, error) {
	value, err := s.bsdf.KernelValue(ctx)
	if err != nil {
		return nil, err
	}
	d := kernel.NewDict()
	if err := d.Insert(s.bsdf.ID(), value); err != nil {
		return nil, err
	}
	if err := d.Add(ctx, s.shape); err != nil {
		return nil, err
	}
	return d, nil
}

func buildBasic(cfg factory.Config, bsdfs *factory.Registry[bsdf.BSDF]) (Surface, error) {
	id, err := cfg.StringOr("id", DefaultID)
	if err != nil {
		return nil, err
	}
	width, err := surfaceWidth(cfg)
	if err != nil {
		return nil, err
	}
	b, err := surfaceBSDF(cfg, "bsdf", BSDFID(id), bsdfs)
	if err != nil {
		return nil, err
	}
	return NewBasic(id, width, b)
}
