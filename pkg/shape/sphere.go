package shape

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/heliotrope-eo/heliotrope/pkg/bsdf"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/heliotrope-eo/heliotrope/pkg/factory"
	"github.com/heliotrope-eo/heliotrope/pkg/kernel"
	"github.com/heliotrope-eo/heliotrope/pkg/spectral"
)

// Sphere is a spherical shape defined by its center and radius, in metres
type Sphere struct {
	id       string
	center   core.Vec3
	radius   float64
	bsdf     Binding
	interior string // identifier of the participating medium filling the sphere
}

// WithInterior returns a copy of the sphere referencing a participating
// medium as its interior
func (s *Sphere) WithInterior(mediumID string) *Sphere {
	clone := *s
	clone.interior = mediumID
	return &clone
}

// NewSphere creates a sphere shape
func NewSphere(id string, center core.Vec3, radius float64, binding Binding) (*Sphere, error) {
	if id == "" {
		id = DefaultID
	}
	if radius <= 0 {
		return nil, errors.New("radius must be positive").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("id", id).
			WithTag("radius", radius)
	}
	return &Sphere{id: id, center: center, radius: radius, bsdf: binding}, nil
}

func (s *Sphere) ID() string { return s.id }

func (s *Sphere) BoundingBox() core.AABB {
	extent := core.NewVec3(s.radius, s.radius, s.radius)
	return core.NewAABB(s.center.Subtract(extent), s.center.Add(extent))
}

func (s *Sphere) Center() core.Vec3 { return s.center }

func (s *Sphere) Radius() float64 { return s.radius }

func (s *Sphere) KernelDict(ctx spectral.Context) (*kernel.Dict, error) {
	entry := kernel.NewDict().
		Set("type", "sphere").
		Set("center", s.center.Slice()).
		Set("radius", s.radius)
	if err := s.bsdf.setBSDF(entry, ctx); err != nil {
		return nil, err
	}
	if s.interior != "" {
		entry.Set("interior", kernel.NewRef(s.interior))
	}
	return kernel.NewDict().Set(s.id, entry), nil
}

func buildSphere(cfg factory.Config, bsdfs *factory.Registry[bsdf.BSDF]) (Shape, error) {
	id, err := cfg.StringOr("id", DefaultID)
	if err != nil {
		return nil, err
	}
	center := core.NewVec3(0, 0, 0)
	if cfg.Has("center") {
		center, err = cfg.Vec3("center")
		if err != nil {
			return nil, err
		}
	}
	radiusQty, err := cfg.QuantityOr("radius", core.Metres(1))
	if err != nil {
		return nil, err
	}
	radius, err := radiusQty.ValueAs(core.Metre)
	if err != nil {
		return nil, err
	}
	binding, err := bindingFromConfig(cfg, bsdfs)
	if err != nil {
		return nil, err
	}
	return NewSphere(id, center, radius, binding)
}
