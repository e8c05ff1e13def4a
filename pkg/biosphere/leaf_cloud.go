package biosphere

import (
	"math"
	"math/rand"
	"strconv"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/heliotrope-eo/heliotrope/pkg/factory"
	"github.com/heliotrope-eo/heliotrope/pkg/kernel"
	"github.com/heliotrope-eo/heliotrope/pkg/spectral"
	"github.com/heliotrope-eo/heliotrope/pkg/spectrum"
)

const defaultLeafCount = 1000

// leaf is one disc of a leaf cloud
type leaf struct {
	position core.Vec3
	normal   core.Vec3
}

// LeafCloud is a cloud of disc leaves filling a cuboid extent. Leaf positions
// and orientations are drawn from a seeded generator at construction, so two
// clouds built from the same configuration produce identical dictionaries.
type LeafCloud struct {
	id            string
	center        core.Vec3
	size          core.Vec3
	radiusM       float64
	reflectance   spectrum.Spectrum
	transmittance spectrum.Spectrum
	leaves        []leaf
	box           core.AABB
}

// NewLeafCloud creates a leaf cloud of count leaves inside the cuboid of the
// given center and size, in metres
func NewLeafCloud(id string, center, size core.Vec3, count int, radius core.Quantity, reflectance, transmittance spectrum.Spectrum, seed int64) (*LeafCloud, error) {
	if id == "" {
		id = DefaultID
	}
	if count < 1 {
		return nil, errors.New("leaf count must be positive").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("id", id).
			WithTag("count", count)
	}
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return nil, errors.New("leaf cloud extent must be positive").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("id", id)
	}
	radiusM, err := radius.ValueAs(core.Metre)
	if err != nil {
		return nil, err
	}
	if radiusM <= 0 {
		return nil, errors.New("leaf radius must be positive").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("id", id).
			WithTag("radius_m", radiusM)
	}
	for name, s := range map[string]spectrum.Spectrum{"reflectance": reflectance, "transmittance": transmittance} {
		if s.Dimension() != core.Dimensionless {
			return nil, errors.New("leaf optical property must be dimensionless").
				WithType(core.ErrTypeInvalidConfig).
				WithTag("id", id).
				WithTag("property", name).
				WithTag("dimension", string(s.Dimension()))
		}
	}

	rng := rand.New(rand.NewSource(seed))
	leaves := make([]leaf, count)
	box := core.EmptyAABB()
	min := center.Subtract(size.Multiply(0.5))
	for i := range leaves {
		position := core.NewVec3(
			min.X+rng.Float64()*size.X,
			min.Y+rng.Float64()*size.Y,
			min.Z+rng.Float64()*size.Z,
		)
		leaves[i] = leaf{position: position, normal: sampleSphere(rng)}
		box = box.Union(discBounds(leaves[i], radiusM))
	}

	return &LeafCloud{
		id:            id,
		center:        center,
		size:          size,
		radiusM:       radiusM,
		reflectance:   reflectance,
		transmittance: transmittance,
		leaves:        leaves,
		box:           box,
	}, nil
}

// sampleSphere draws a unit vector uniformly distributed on the sphere
func sampleSphere(rng *rand.Rand) core.Vec3 {
	z := 1 - 2*rng.Float64()
	r := math.Sqrt(math.Max(0, 1-z*z))
	phi := 2 * math.Pi * rng.Float64()
	return core.NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// discBounds returns the tight box of a disc: the extent along each axis is
// radius * sqrt(1 - n_i^2) for normal component n_i
func discBounds(l leaf, radiusM float64) core.AABB {
	extent := core.NewVec3(
		radiusM*math.Sqrt(math.Max(0, 1-l.normal.X*l.normal.X)),
		radiusM*math.Sqrt(math.Max(0, 1-l.normal.Y*l.normal.Y)),
		radiusM*math.Sqrt(math.Max(0, 1-l.normal.Z*l.normal.Z)),
	)
	return core.NewAABB(l.position.Subtract(extent), l.position.Add(extent))
}

func (c *LeafCloud) ID() string { return c.id }

func (c *LeafCloud) BoundingBox() core.AABB { return c.box }

func (c *LeafCloud) BSDFs(ctx spectral.Context) (*kernel.Dict, error) {
	reflectance, err := c.reflectance.Eval(ctx)
	if err != nil {
		return nil, err
	}
	transmittance, err := c.transmittance.Eval(ctx)
	if err != nil {
		return nil, err
	}
	r, t := reflectance.Value, transmittance.Value
	if r < 0 || t < 0 || r+t > 1 {
		return nil, errors.New("leaf reflectance and transmittance must be non-negative and sum to at most one").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("id", c.id).
			WithTag("reflectance", r).
			WithTag("transmittance", t)
	}

	d := kernel.NewDict()
	err = d.Insert(BSDFID(c.id), kernel.NewDict().
		Set("type", "bilambertian").
		Set("reflectance", kernel.NewDict().Set("type", "uniform").Set("value", r)).
		Set("transmittance", kernel.NewDict().Set("type", "uniform").Set("value", t)))
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (c *LeafCloud) Shapes(spectral.Context) (*kernel.Dict, error) {
	d := kernel.NewDict()
	for i, l := range c.leaves {
		entry := kernel.NewDict().
			Set("type", "disk").
			Set("center", l.position.Slice()).
			Set("normal", l.normal.Slice()).
			Set("radius", c.radiusM).
			Set("bsdf", kernel.NewRef(BSDFID(c.id)))
		if err := d.Insert(c.leafShapeID(i), entry); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (c *LeafCloud) leafShapeID(i int) string {
	return "shape_" + c.id + "_leaf_" + strconv.Itoa(i)
}

func (c *LeafCloud) KernelDict(ctx spectral.Context) (*kernel.Dict, error) {
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

func buildLeafCloud(cfg factory.Config, spectra *factory.Registry[spectrum.Spectrum]) (Element, error) {
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
	size := core.NewVec3(10, 10, 1)
	if cfg.Has("size") {
		size, err = cfg.Vec3("size")
		if err != nil {
			return nil, err
		}
	}
	count, err := cfg.IntOr("n_leaves", defaultLeafCount)
	if err != nil {
		return nil, err
	}
	radius, err := cfg.QuantityOr("leaf_radius", core.Metres(0.1))
	if err != nil {
		return nil, err
	}
	seed, err := cfg.IntOr("seed", 12345)
	if err != nil {
		return nil, err
	}
	reflectance, err := opticalProperty(cfg, "leaf_reflectance", 0.5, spectra)
	if err != nil {
		return nil, err
	}
	transmittance, err := opticalProperty(cfg, "leaf_transmittance", 0.5, spectra)
	if err != nil {
		return nil, err
	}
	return NewLeafCloud(id, center, size, count, radius, reflectance, transmittance, int64(seed))
}

func opticalProperty(cfg factory.Config, key string, fallback float64, spectra *factory.Registry[spectrum.Spectrum]) (spectrum.Spectrum, error) {
	if !cfg.Has(key) {
		return spectrum.NewUniform("", core.Scalar(fallback))
	}
	return spectrum.Convert(cfg[key], core.Unitless, spectra)
}
