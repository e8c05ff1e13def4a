package shape

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/heliotrope-eo/heliotrope/pkg/bsdf"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/heliotrope-eo/heliotrope/pkg/factory"
	"github.com/heliotrope-eo/heliotrope/pkg/kernel"
	"github.com/heliotrope-eo/heliotrope/pkg/spectral"
)

// Cuboid is an axis-aligned box shape, in metres
type Cuboid struct {
	id       string
	box      core.AABB
	bsdf     Binding
	interior string // identifier of the participating medium filling the box
}

// NewCuboid creates a cuboid shape from its extent
func NewCuboid(id string, box core.AABB, binding Binding) (*Cuboid, error) {
	if id == "" {
		id = DefaultID
	}
	if !box.IsValid() {
		return nil, errors.New("cuboid extent is empty").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("id", id)
	}
	return &Cuboid{id: id, box: box, bsdf: binding}, nil
}

// NewAtmosphereCuboid creates the cuboid stencil enclosing a plane-parallel
// atmosphere: a box of the given width centered on the vertical axis,
// spanning [bottom, top]. All lengths are in metres.
func NewAtmosphereCuboid(id string, bottom, top, width float64) (*Cuboid, error) {
	if top <= bottom {
		return nil, errors.New("atmosphere top must be above bottom").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("id", id).
			WithTag("bottom_m", bottom).
			WithTag("top_m", top)
	}
	if width <= 0 {
		return nil, errors.New("atmosphere width must be positive").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("id", id).
			WithTag("width_m", width)
	}

	half := width / 2
	box := core.NewAABB(
		core.NewVec3(-half, -half, bottom),
		core.NewVec3(half, half, top),
	)
	return NewCuboid(id, box, Binding{})
}

// WithInterior returns a copy of the cuboid referencing a participating
// medium as its interior
func (s *Cuboid) WithInterior(mediumID string) *Cuboid {
	clone := *s
	clone.interior = mediumID
	return &clone
}

func (s *Cuboid) ID() string { return s.id }

func (s *Cuboid) BoundingBox() core.AABB { return s.box }

func (s *Cuboid) KernelDict(ctx spectral.Context) (*kernel.Dict, error) {
	entry := kernel.NewDict().
		Set("type", "cuboid").
		Set("min", s.box.Min.Slice()).
		Set("max", s.box.Max.Slice())
	if err := s.bsdf.setBSDF(entry, ctx); err != nil {
		return nil, err
	}
	if s.interior != "" {
		entry.Set("interior", kernel.NewRef(s.interior))
	}
	return kernel.NewDict().Set(s.id, entry), nil
}

func buildCuboid(cfg factory.Config, bsdfs *factory.Registry[bsdf.BSDF]) (Shape, error) {
	id, err := cfg.StringOr("id", DefaultID)
	if err != nil {
		return nil, err
	}
	min, err := cfg.Vec3("min")
	if err != nil {
		return nil, err
	}
	max, err := cfg.Vec3("max")
	if err != nil {
		return nil, err
	}
	binding, err := bindingFromConfig(cfg, bsdfs)
	if err != nil {
		return nil, err
	}
	return NewCuboid(id, core.NewAABB(min, max), binding)
}
