package measure

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/heliotrope-eo/heliotrope/pkg/factory"
	"github.com/heliotrope-eo/heliotrope/pkg/kernel"
	"github.com/heliotrope-eo/heliotrope/pkg/spectral"
)

// Perspective is a pinhole camera measure
type Perspective struct {
	id          string
	origin      core.Vec3
	target      PointTarget
	up          core.Vec3
	fov         core.Quantity
	filmWidth   int
	filmHeight  int
	spectralCfg spectral.MeasureConfig
	sampleCount int
}

// NewPerspective creates a perspective camera at origin looking at target
func NewPerspective(id string, origin core.Vec3, target PointTarget, up core.Vec3, fov core.Quantity, filmWidth, filmHeight int, cfg spectral.MeasureConfig, sampleCount int) (*Perspective, error) {
	if id == "" {
		id = DefaultID
	}
	if cfg == nil {
		return nil, errors.New("perspective camera requires a spectral configuration").
			WithType(core.ErrTypeEmptySpectralConfig).
			WithTag("id", id)
	}
	if origin.Subtract(target.Point).LengthSquared() == 0 {
		return nil, errors.New("camera origin and target must differ").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("id", id)
	}

	fovDeg, err := fov.ValueAs(core.Degree)
	if err != nil {
		return nil, err
	}
	if fovDeg <= 0 || fovDeg >= 180 {
		return nil, errors.New("field of view out of range").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("id", id).
			WithTag("fov_deg", fovDeg)
	}

	forward := target.Point.Subtract(origin).Normalize()
	if forward.Cross(up).LengthSquared() == 0 {
		return nil, errors.New("up vector must not be parallel to the viewing direction").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("id", id)
	}

	if filmWidth < 1 {
		filmWidth = defaultFilmWidth
	}
	if filmHeight < 1 {
		filmHeight = defaultFilmHeight
	}
	if sampleCount < 1 {
		sampleCount = defaultSampleCount
	}

	return &Perspective{
		id:          id,
		origin:      origin,
		target:      target,
		up:          up,
		fov:         fov,
		filmWidth:   filmWidth,
		filmHeight:  filmHeight,
		spectralCfg: cfg,
		sampleCount: sampleCount,
	}, nil
}

func (m *Perspective) ID() string { return m.id }

func (m *Perspective) SpectralConfig() spectral.MeasureConfig { return m.spectralCfg }

func (m *Perspective) Target() (Target, bool) { return m.target, true }

func (m *Perspective) KernelDict(spectral.Context) (*kernel.Dict, error) {
	entry := kernel.NewDict().
		Set("type", "perspective").
		Set("fov", m.fov.MustValueAs(core.Degree)).
		Set("to_world", kernel.NewDict().
			Set("origin", m.origin.Slice()).
			Set("target", m.target.Point.Slice()).
			Set("up", m.up.Slice())).
		Set("sampler", samplerDict(m.sampleCount)).
		Set("film", filmDict(m.filmWidth, m.filmHeight))
	return kernel.NewDict().Set(m.id, entry), nil
}

func buildPerspective(cfg factory.Config) (Measure, error) {
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
		return nil, errors.New("perspective camera requires a point target").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("id", id)
	}
	up := core.NewVec3(0, 0, 1)
	if cfg.Has("up") {
		up, err = cfg.Vec3("up")
		if err != nil {
			return nil, err
		}
	}
	fov, err := cfg.QuantityOr("fov", core.Degrees(50))
	if err != nil {
		return nil, err
	}
	width, err := cfg.IntOr("film_width", defaultFilmWidth)
	if err != nil {
		return nil, err
	}
	height, err := cfg.IntOr("film_height", defaultFilmHeight)
	if err != nil {
		return nil, err
	}
	spectralCfg, err := spectralFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	spp, err := samplerFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return NewPerspective(id, origin, point, up, fov, width, height, spectralCfg, spp)
}
