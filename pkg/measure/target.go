package measure

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/heliotrope-eo/heliotrope/pkg/factory"
	"github.com/heliotrope-eo/heliotrope/pkg/kernel"
)

// Target is the scene region a measure observes. Scenes validate at
// construction that every target lies within their spatial extent.
type Target interface {
	// In reports whether the target lies within the given box.
	In(box core.AABB) bool

	// KernelValue returns the target specification embedded into a sensor
	// fragment.
	KernelValue() kernel.Value
}

// PointTarget aims a measure at a single point
type PointTarget struct {
	Point core.Vec3
}

// NewPointTarget creates a point target from coordinates in metres
func NewPointTarget(point core.Vec3) PointTarget {
	return PointTarget{Point: point}
}

func (t PointTarget) In(box core.AABB) bool {
	return box.Contains(t.Point)
}

func (t PointTarget) KernelValue() kernel.Value {
	return kernel.NewDict().
		Set("type", "point").
		Set("point", t.Point.Slice())
}

// RectangleTarget aims a measure at a horizontal rectangle
type RectangleTarget struct {
	Center core.Vec3
	EdgeX  float64
	EdgeY  float64
}

// NewRectangleTarget creates a rectangle target from its center and edge
// lengths in metres
func NewRectangleTarget(center core.Vec3, edgeX, edgeY float64) (RectangleTarget, error) {
	if edgeX <= 0 || edgeY <= 0 {
		return RectangleTarget{}, errors.New("target edges must be positive").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("edge_x", edgeX).
			WithTag("edge_y", edgeY)
	}
	return RectangleTarget{Center: center, EdgeX: edgeX, EdgeY: edgeY}, nil
}

func (t RectangleTarget) bounds() core.AABB {
	half := core.NewVec3(t.EdgeX/2, t.EdgeY/2, 0)
	return core.NewAABB(t.Center.Subtract(half), t.Center.Add(half))
}

func (t RectangleTarget) In(box core.AABB) bool {
	return box.ContainsBox(t.bounds())
}

func (t RectangleTarget) KernelValue() kernel.Value {
	return kernel.NewDict().
		Set("type", "rectangle").
		Set("center", t.Center.Slice()).
		Set("edge_x", t.EdgeX).
		Set("edge_y", t.EdgeY)
}

// targetFromConfig reads an optional target field: a bare 3-vector is a
// point, a mapping selects the target type
func targetFromConfig(cfg factory.Config) (Target, error) {
	raw, ok := cfg["target"]
	if !ok {
		return nil, nil
	}
	switch raw.(type) {
	case map[string]any, factory.Config:
	default:
		point, err := cfg.Vec3("target")
		if err != nil {
			return nil, err
		}
		return NewPointTarget(point), nil
	}

	sub, err := cfg.Sub("target")
	if err != nil {
		return nil, err
	}
	kind, err := sub.StringOr(factory.TypeKey, "point")
	if err != nil {
		return nil, err
	}
	switch kind {
	case "point":
		point, err := sub.Vec3("point")
		if err != nil {
			return nil, err
		}
		return NewPointTarget(point), nil
	case "rectangle":
		center := core.NewVec3(0, 0, 0)
		if sub.Has("center") {
			center, err = sub.Vec3("center")
			if err != nil {
				return nil, err
			}
		}
		edgeX, err := sub.Float("edge_x")
		if err != nil {
			return nil, err
		}
		edgeY, err := sub.Float("edge_y")
		if err != nil {
			return nil, err
		}
		target, err := NewRectangleTarget(center, edgeX, edgeY)
		if err != nil {
			return nil, err
		}
		return target, nil
	default:
		return nil, errors.New("unknown target type").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("type", kind)
	}
}
