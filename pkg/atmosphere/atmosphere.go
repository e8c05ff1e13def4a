// Package atmosphere provides participating-medium scene elements
// representing the atmosphere. An atmosphere compiles to three kernel
// entries: a phase function, a medium and the shape stencil enclosing it.
package atmosphere

import (
	"math"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/heliotrope-eo/heliotrope/pkg/factory"
	"github.com/heliotrope-eo/heliotrope/pkg/kernel"
	"github.com/heliotrope-eo/heliotrope/pkg/shape"
)

// DefaultID is the identifier atmospheres compile under when none is
// configured
const DefaultID = "atmosphere"

// Default width of a plane-parallel atmosphere when the scattering mean free
// path gives no finite estimate
const defaultWidthM = 1e7

// EarthRadius is the default planet radius for spherical shell geometries
var EarthRadius = core.Kilometres(6378.1)

// Atmosphere is a participating-medium scene element with a vertical extent
type Atmosphere interface {
	kernel.Element
	kernel.Spatial

	// Bottom returns the atmosphere bottom altitude.
	Bottom() core.Quantity

	// Top returns the atmosphere top altitude.
	Top() core.Quantity
}

// MediumID returns the kernel dictionary key of an atmosphere's medium entry
func MediumID(id string) string { return "medium_" + id }

// ShapeID returns the kernel dictionary key of an atmosphere's shape entry
func ShapeID(id string) string { return "shape_" + id }

// PhaseID returns the default kernel dictionary key of an atmosphere's phase
// function entry
func PhaseID(id string) string { return "phase_" + id }

// Geometry defines the shape stencil enclosing an atmosphere's volume
type Geometry interface {
	// stencil builds the enclosing shape referencing the atmosphere's medium
	// as its interior. Altitudes are in metres; mfpM is the scattering mean
	// free path estimate used to auto-size plane-parallel stencils, +Inf when
	// the medium does not scatter.
	stencil(id string, bottomM, topM, mfpM float64, mediumID string) (shape.Shape, error)
}

// PlaneParallel is a translation-invariant atmosphere represented by a
// finite cuboid. A zero Width auto-sizes the cuboid from the scattering mean
// free path.
type PlaneParallel struct {
	Width core.Quantity
}

func (g PlaneParallel) stencil(id string, bottomM, topM, mfpM float64, mediumID string) (shape.Shape, error) {
	var widthM float64
	switch {
	case g.Width != (core.Quantity{}):
		w, err := g.Width.ValueAs(core.Metre)
		if err != nil {
			return nil, err
		}
		widthM = w
	case math.IsInf(mfpM, 1):
		widthM = defaultWidthM
	default:
		widthM = 10 * mfpM
	}

	cuboid, err := shape.NewAtmosphereCuboid(ShapeID(id), bottomM, topM, widthM)
	if err != nil {
		return nil, err
	}
	return cuboid.WithInterior(mediumID), nil
}

// SphericalShell is an atmosphere with spherical symmetry represented by a
// sphere around the planet center. A zero PlanetRadius defaults to Earth's.
type SphericalShell struct {
	PlanetRadius core.Quantity
}

func (g SphericalShell) stencil(id string, _, topM, _ float64, mediumID string) (shape.Shape, error) {
	planetRadius := g.PlanetRadius
	if planetRadius == (core.Quantity{}) {
		planetRadius = EarthRadius
	}
	radiusM, err := planetRadius.ValueAs(core.Metre)
	if err != nil {
		return nil, err
	}

	// The planet center sits below the scene origin so ground level is z=0
	center := core.NewVec3(0, 0, -radiusM)
	sphere, err := shape.NewSphere(ShapeID(id), center, radiusM+topM, shape.Binding{})
	if err != nil {
		return nil, err
	}
	return sphere.WithInterior(mediumID), nil
}

// GeometryFromConfig interprets a geometry configuration value: a string
// selects a geometry type with defaults, a mapping carries its parameters
func GeometryFromConfig(raw any) (Geometry, error) {
	switch v := raw.(type) {
	case nil:
		return PlaneParallel{}, nil
	case string:
		return GeometryFromConfig(map[string]any{factory.TypeKey: v})
	case Geometry:
		return v, nil
	case map[string]any:
		return geometryFromMapping(factory.Config(v))
	case factory.Config:
		return geometryFromMapping(v)
	default:
		return nil, errors.New("geometry is not a type name or a mapping").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("value", raw)
	}
}

func geometryFromMapping(cfg factory.Config) (Geometry, error) {
	tag, err := cfg.String(factory.TypeKey)
	if err != nil {
		return nil, err
	}

	switch tag {
	case "plane_parallel":
		width := core.Quantity{}
		if cfg.Has("width") {
			width, err = cfg.Quantity("width", core.Metre)
			if err != nil {
				return nil, err
			}
		}
		return PlaneParallel{Width: width}, nil

	case "spherical_shell":
		planetRadius := core.Quantity{}
		if cfg.Has("planet_radius") {
			planetRadius, err = cfg.Quantity("planet_radius", core.Kilometre)
			if err != nil {
				return nil, err
			}
		}
		return SphericalShell{PlanetRadius: planetRadius}, nil

	default:
		return nil, errors.New("unknown geometry type").
			WithType(core.ErrTypeUnknownType).
			WithTag("category", "atmosphere geometry").
			WithTag("type", tag)
	}
}

func verticalExtent(id string, bottom, top core.Quantity) (bottomM, topM float64, err error) {
	bottomM, err = bottom.ValueAs(core.Metre)
	if err != nil {
		return 0, 0, err
	}
	topM, err = top.ValueAs(core.Metre)
	if err != nil {
		return 0, 0, err
	}
	if topM <= bottomM {
		return 0, 0, errors.New("atmosphere top must be above bottom").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("id", id).
			WithTag("bottom_m", bottomM).
			WithTag("top_m", topM)
	}
	return bottomM, topM, nil
}
