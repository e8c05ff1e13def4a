package measure

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/heliotrope-eo/heliotrope/pkg/factory"
	"github.com/heliotrope-eo/heliotrope/pkg/kernel"
	"github.com/heliotrope-eo/heliotrope/pkg/spectral"
)

// Radiancemeter records radiance along the single ray from its origin to its
// target point
type Radiancemeter struct {
	id          string
	origin      core.Vec3
	target      PointTarget
	spectralCfg spectral.MeasureConfig
	sampleCount int
}

// NewRadiancemeter creates a radiancemeter aimed from origin at target, in
// metres
func NewRadiancemeter(id string, origin core.Vec3, target PointTarget, cfg spectral.MeasureConfig, sampleCount int) (*Radiancemeter, error) {
	if id == "" {
		id = DefaultID
	}
	if cfg == nil {
		return nil, errors.New("radiancemeter requires a spectral configuration").
			WithType(core.ErrTypeEmptySpectralConfig).
			WithTag("id", id)
	}
	if origin.Subtract(target.Point).LengthSquared() == 0 {
		return nil, errors.New("radiancemeter origin and target must differ").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("id", id)
	}
	if sampleCount < 1 {
		sampleCount = defaultSampleCount
	}
	return &Radiancemeter{
		id:          id,
		origin:      origin,
		target:      target,
		spectralCfg: cfg,
		sampleCount: sampleCount,
	}, nil
}

func (m *Radiancemeter) ID() string { return m.id }

func (m *Radiancemeter) SpectralConfig() spectral.MeasureConfig { return m.spectralCfg }

func (m *Radiancemeter) Target() (Target, bool) { return m.target, true }

func (m *Radiancemeter) KernelDict(spectral.Context) (*kernel.Dict, error) {
	direction := m.target.Point.Subtract(m.origin).Normalize()
	entry := kernel.NewDict().
		Set("type", "radiancemeter").
		Set("origin", m.origin.Slice()).
		Set("direction", direction.Slice()).
		Set("sampler", samplerDict(m.sampleCount)).
		Set("film", filmDict(1, 1))
	return kernel.NewDict().Set(m.id, entry), nil
}

func buildRadiancemeter(cfg factory.Config) (Measure, error) {
	id, err := cfg.StringOr("id", DefaultID)
	if err != nil {
		return nil, err
	}
	origin, err := cfg.Vec3("origin")
	if err != nil {
		return nil, err
	}
	target, err := targetFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	point, ok := target.(PointTarget)
	if target == nil || !ok {
		return nil, errors.New("radiancemeter requires a point target").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("id", id)
	}
	spectralCfg, err := spectralFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	spp, err := samplerFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return NewRadiancemeter(id, origin, point, spectralCfg, spp)
}
