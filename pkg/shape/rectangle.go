package shape

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/heliotrope-eo/heliotrope/pkg/bsdf"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/heliotrope-eo/heliotrope/pkg/factory"
	"github.com/heliotrope-eo/heliotrope/pkg/kernel"
	"github.com/heliotrope-eo/heliotrope/pkg/spectral"
)

// Rectangle is a horizontal rectangle with its normal pointing up, used for
// surfaces and footprints. Dimensions are in metres.
type Rectangle struct {
	id       string
	center   core.Vec3
	edgeX    float64
	edgeY    float64
	bsdf     Binding
	exterior string // optional medium above the rectangle
}

// NewRectangle creates a horizontal rectangle centered at the given point
func NewRectangle(id string, center core.Vec3, edgeX, edgeY float64, binding Binding) (*Rectangle, error) {
	if id == "" {
		id = DefaultID
	}
	if edgeX <= 0 || edgeY <= 0 {
		return nil, errors.New("edge lengths must be positive").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("id", id).
			WithTag("edge_x_m", edgeX).
			WithTag("edge_y_m", edgeY)
	}
	return &Rectangle{id: id, center: center, edgeX: edgeX, edgeY: edgeY, bsdf: binding}, nil
}

// WithExterior returns a copy of the rectangle referencing a participating
// medium above it
func (s *Rectangle) WithExterior(mediumID string) *Rectangle {
	clone := *s
	clone.exterior = mediumID
	return &clone
}

func (s *Rectangle) ID() string { return s.id }

// BoundingBox returns a zero-height box at the rectangle's footprint
func (s *Rectangle) BoundingBox() core.AABB {
	halfX, halfY := s.edgeX/2, s.edgeY/2
	return core.NewAABB(
		core.NewVec3(s.center.X-halfX, s.center.Y-halfY, s.center.Z),
		core.NewVec3(s.center.X+halfX, s.center.Y+halfY, s.center.Z),
	)
}

func (s *Rectangle) KernelDict(ctx spectral.Context) (*kernel.Dict, error) {
	entry := kernel.NewDict().
		Set("type", "rectangle").
		Set("center", s.center.Slice()).
		Set("edge_x", s.edgeX).
		Set("edge_y", s.edgeY)
	if err := s.bsdf.setBSDF(entry, ctx); err != nil {
		return nil, err
	}
	if s.exterior != "" {
		entry.Set("exterior", kernel.NewRef(s.exterior))
	}
	return kernel.NewDict().Set(s.id, entry), nil
}

func buildRectangle(cfg factory.Config, bsdfs *factory.Registry[bsdf.BSDF]) (Shape, error) {
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
	edgeX, err := cfg.FloatOr("edge_x", 1)
	if err != nil {
		return nil, err
	}
	edgeY, err := cfg.FloatOr("edge_y", 1)
	if err != nil {
		return nil, err
	}
	binding, err := bindingFromConfig(cfg, bsdfs)
	if err != nil {
		return nil, err
	}
	return NewRectangle(id, center, edgeX, edgeY, binding)
}
