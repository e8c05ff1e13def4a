package biosphere

import (
	"strconv"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/heliotrope-eo/heliotrope/pkg/factory"
	"github.com/heliotrope-eo/heliotrope/pkg/kernel"
	"github.com/heliotrope-eo/heliotrope/pkg/spectral"
	"github.com/heliotrope-eo/heliotrope/pkg/spectrum"
)

// Instanced replicates a base canopy element at a list of positions. The base
// element's shapes compile once into a shared shape group; each position adds
// one instance referencing it.
type Instanced struct {
	id        string
	base      Element
	positions []core.Vec3
}

// NewInstanced creates an instanced canopy element
func NewInstanced(id string, base Element, positions []core.Vec3) (*Instanced, error) {
	if id == "" {
		id = DefaultID
	}
	if base == nil {
		return nil, errors.New("instanced canopy element requires a base element").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("id", id)
	}
	if len(positions) == 0 {
		return nil, errors.New("instanced canopy element requires at least one position").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("id", id)
	}
	return &Instanced{id: id, base: base, positions: positions}, nil
}

func (e *Instanced) ID() string { return e.id }

// BoundingBox returns the union of the base extent translated to every
// position
func (e *Instanced) BoundingBox() core.AABB {
	base := e.base.BoundingBox()
	box := core.EmptyAABB()
	for _, p := range e.positions {
		box = box.Union(core.NewAABB(base.Min.Add(p), base.Max.Add(p)))
	}
	return box
}

func (e *Instanced) BSDFs(ctx spectral.Context) (*kernel.Dict, error) {
	return e.base.BSDFs(ctx)
}

// Shapes compiles the base shapes as a shape group plus one instance entry
// per position
func (e *Instanced) Shapes(ctx spectral.Context) (*kernel.Dict, error) {
	baseShapes, err := e.base.Shapes(ctx)
	if err != nil {
		return nil, err
	}
	group := kernel.NewDict().Set("type", "shapegroup")
	if err := group.Merge(baseShapes); err != nil {
		return nil, err
	}

	d := kernel.NewDict()
	if err := d.Insert(GroupID(e.id), group); err != nil {
		return nil, err
	}
	for i, p := range e.positions {
		entry := kernel.NewDict().
			Set("type", "instance").
			Set("group", kernel.NewRef(GroupID(e.id))).
			Set("to_world", kernel.NewDict().Set("translate", p.Slice()))
		if err := d.Insert("shape_"+e.id+"_"+strconv.Itoa(i), entry); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (e *Instanced) KernelDict(ctx spectral.Context) (*kernel.Dict, error) {
	d, err := e.BSDFs(ctx)
	if err != nil {
		return nil, err
	}
	shapes, err := e.Shapes(ctx)
	if err != nil {
		return nil, err
	}
	if err := d.Merge(shapes); err != nil {
		return nil, err
	}
	return d, nil
}

func buildInstanced(cfg factory.Config, spectra *factory.Registry[spectrum.Spectrum]) (Element, error) {
	id, err := cfg.StringOr("id", DefaultID)
	if err != nil {
		return nil, err
	}
	sub, err := cfg.Sub("base")
	if err != nil {
		return nil, err
	}
	base, err := NewElementFactory(spectra).Create(sub)
	if err != nil {
		return nil, err
	}

	raw, ok := cfg["positions"]
	if !ok {
		return nil, errors.New("missing configuration key").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("key", "positions")
	}
	rows, ok := raw.([]any)
	if !ok {
		return nil, errors.New("positions must be a list of 3-vectors").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("id", id)
	}
	positions := make([]core.Vec3, len(rows))
	for i, row := range rows {
		p, err := factory.Config{"position": row}.Vec3("position")
		if err != nil {
			return nil, errors.New("positions must be a list of 3-vectors").
				WithType(core.ErrTypeInvalidConfig).
				WithTag("id", id).
				WithTag("index", i).
				Wrap(err)
		}
		positions[i] = p
	}
	return NewInstanced(id, base, positions)
}
