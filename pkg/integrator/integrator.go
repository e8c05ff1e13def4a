// Package integrator provides radiative transfer algorithm descriptors. An
// integrator selects and parameterizes the algorithm the rendering kernel
// runs; the algorithm itself lives kernel-side.
package integrator

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/heliotrope-eo/heliotrope/pkg/factory"
	"github.com/heliotrope-eo/heliotrope/pkg/kernel"
	"github.com/heliotrope-eo/heliotrope/pkg/spectral"
)

// DefaultID is the identifier integrators compile under when none is
// configured
const DefaultID = "integrator"

// Integrator is a radiative transfer algorithm descriptor
type Integrator interface {
	kernel.Element
}

// NewFactory creates an integrator registry populated with the built-in
// types
func NewFactory() *factory.Registry[Integrator] {
	r := factory.NewRegistry[Integrator]("integrator")
	RegisterDefaults(r)
	return r
}

// RegisterDefaults registers the built-in integrator builders
func RegisterDefaults(r *factory.Registry[Integrator]) {
	r.MustRegister("path", buildPath)
	r.MustRegister("volpath", buildVolPath)
}

// Path is a surface path tracing integrator descriptor. A zero max depth
// leaves path length unbounded.
type Path struct {
	id       string
	maxDepth int
	rrDepth  int
}

// NewPath creates a path tracing descriptor
func NewPath(id string, maxDepth, rrDepth int) (*Path, error) {
	if id == "" {
		id = DefaultID
	}
	if maxDepth < 0 || rrDepth < 0 {
		return nil, errors.New("integrator depths must be non-negative").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("id", id).
			WithTag("max_depth", maxDepth).
			WithTag("rr_depth", rrDepth)
	}
	return &Path{id: id, maxDepth: maxDepth, rrDepth: rrDepth}, nil
}

func (i *Path) ID() string { return i.id }

func (i *Path) KernelDict(spectral.Context) (*kernel.Dict, error) {
	return kernel.NewDict().Set(i.id, depthDict("path", i.maxDepth, i.rrDepth)), nil
}

// VolPath is a volumetric path tracing integrator descriptor, required as
// soon as a scene carries a participating medium
type VolPath struct {
	id       string
	maxDepth int
	rrDepth  int
}

// NewVolPath creates a volumetric path tracing descriptor
func NewVolPath(id string, maxDepth, rrDepth int) (*VolPath, error) {
	if id == "" {
		id = DefaultID
	}
	if maxDepth < 0 || rrDepth < 0 {
		return nil, errors.New("integrator depths must be non-negative").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("id", id).
			WithTag("max_depth", maxDepth).
			WithTag("rr_depth", rrDepth)
	}
	return &VolPath{id: id, maxDepth: maxDepth, rrDepth: rrDepth}, nil
}

func (i *VolPath) ID() string { return i.id }

func (i *VolPath) KernelDict(spectral.Context) (*kernel.Dict, error) {
	return kernel.NewDict().Set(i.id, depthDict("volpath", i.maxDepth, i.rrDepth)), nil
}

func depthDict(kind string, maxDepth, rrDepth int) *kernel.Dict {
	d := kernel.NewDict().Set("type", kind)
	if maxDepth > 0 {
		d.Set("max_depth", maxDepth)
	}
	if rrDepth > 0 {
		d.Set("rr_depth", rrDepth)
	}
	return d
}

func buildPath(cfg factory.Config) (Integrator, error) {
	id, maxDepth, rrDepth, err := depthConfig(cfg)
	if err != nil {
		return nil, err
	}
	return NewPath(id, maxDepth, rrDepth)
}

func buildVolPath(cfg factory.Config) (Integrator, error) {
	id, maxDepth, rrDepth, err := depthConfig(cfg)
	if err != nil {
		return nil, err
	}
	return NewVolPath(id, maxDepth, rrDepth)
}

func depthConfig(cfg factory.Config) (id string, maxDepth, rrDepth int, err error) {
	id, err = cfg.StringOr("id", DefaultID)
	if err != nil {
		return "", 0, 0, err
	}
	maxDepth, err = cfg.IntOr("max_depth", 0)
	if err != nil {
		return "", 0, 0, err
	}
	rrDepth, err = cfg.IntOr("rr_depth", 0)
	if err != nil {
		return "", 0, 0, err
	}
	return id, maxDepth, rrDepth, nil
}
