package measure

import (
	"math"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/heliotrope-eo/heliotrope/pkg/factory"
	"github.com/heliotrope-eo/heliotrope/pkg/kernel"
	"github.com/heliotrope-eo/heliotrope/pkg/spectral"
)

// ViewingAngle is one (zenith, azimuth) direction of an angle layout
type ViewingAngle struct {
	Zenith  core.Quantity
	Azimuth core.Quantity
}

// Direction returns the outward unit vector the angle pair points at
func (a ViewingAngle) Direction() (core.Vec3, error) {
	theta, err := a.Zenith.ValueAs(core.Radian)
	if err != nil {
		return core.Vec3{}, err
	}
	phi, err := a.Azimuth.ValueAs(core.Radian)
	if err != nil {
		return core.Vec3{}, err
	}
	return core.NewVec3(
		math.Sin(theta)*math.Cos(phi),
		math.Sin(theta)*math.Sin(phi),
		math.Cos(theta),
	), nil
}

// MultiDistant records radiance leaving the scene along an explicit list of
// viewing directions. It compiles to a single sensor whose film holds one
// pixel per direction.
type MultiDistant struct {
	id          string
	angles      []ViewingAngle
	directions  []core.Vec3
	target      Target
	spectralCfg spectral.MeasureConfig
	sampleCount int
}

// NewMultiDistant creates a multi-distant measure from an angle layout
func NewMultiDistant(id string, angles []ViewingAngle, target Target, cfg spectral.MeasureConfig, sampleCount int) (*MultiDistant, error) {
	if id == "" {
		id = DefaultID
	}
	if len(angles) == 0 {
		return nil, errors.New("multi-distant measure requires at least one viewing angle").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("id", id)
	}
	if cfg == nil {
		return nil, errors.New("multi-distant measure requires a spectral configuration").
			WithType(core.ErrTypeEmptySpectralConfig).
			WithTag("id", id)
	}
	if sampleCount < 1 {
		sampleCount = defaultSampleCount
	}

	directions := make([]core.Vec3, len(angles))
	for i, a := range angles {
		d, err := a.Direction()
		if err != nil {
			return nil, err
		}
		directions[i] = d
	}

	return &MultiDistant{
		id:          id,
		angles:      angles,
		directions:  directions,
		target:      target,
		spectralCfg: cfg,
		sampleCount: sampleCount,
	}, nil
}

func (m *MultiDistant) ID() string { return m.id }

func (m *MultiDistant) SpectralConfig() spectral.MeasureConfig { return m.spectralCfg }

func (m *MultiDistant) Target() (Target, bool) { return m.target, m.target != nil }

// Directions returns the outward viewing directions in layout order
func (m *MultiDistant) Directions() []core.Vec3 {
	directions := make([]core.Vec3, len(m.directions))
	copy(directions, m.directions)
	return directions
}

func (m *MultiDistant) KernelDict(spectral.Context) (*kernel.Dict, error) {
	flat := make([]float64, 0, 3*len(m.directions))
	for _, d := range m.directions {
		flat = append(flat, d.X, d.Y, d.Z)
	}

	entry := kernel.NewDict().
		Set("type", "mdistant").
		Set("directions", flat)
	if m.target != nil {
		entry.Set("target", m.target.KernelValue())
	}
	entry.
		Set("sampler", samplerDict(m.sampleCount)).
		Set("film", filmDict(len(m.directions), 1))

	return kernel.NewDict().Set(m.id, entry), nil
}

func buildMultiDistant(cfg factory.Config) (Measure, error) {
	id, err := cfg.StringOr("id", DefaultID)
	if err != nil {
		return nil, err
	}
	angles, err := anglesFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	target, err := targetFromConfig(cfg)
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
	return NewMultiDistant(id, angles, target, spectralCfg, spp)
}

// anglesFromConfig reads the angle layout: a list of [zenith, azimuth] pairs
// in degrees
func anglesFromConfig(cfg factory.Config) ([]ViewingAngle, error) {
	raw, ok := cfg["angles"]
	if !ok {
		return nil, errors.New("missing configuration key").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("key", "angles")
	}
	rows, ok := raw.([]any)
	if !ok {
		return nil, errors.New("angles must be a list of [zenith, azimuth] pairs").
			WithType(core.ErrTypeInvalidConfig)
	}
	angles := make([]ViewingAngle, len(rows))
	for i, row := range rows {
		pair, err := (factory.Config{"pair": row}).Floats("pair")
		if err != nil || len(pair) != 2 {
			return nil, errors.New("angles must be a list of [zenith, azimuth] pairs").
				WithType(core.ErrTypeInvalidConfig).
				WithTag("index", i)
		}
		angles[i] = ViewingAngle{Zenith: core.Degrees(pair[0]), Azimuth: core.Degrees(pair[1])}
	}
	return angles, nil
}
