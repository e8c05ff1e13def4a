// Package measure provides radiometric measure scene elements. A measure
// compiles to one sensor entry per kernel dictionary and declares the
// spectral contexts it must be evaluated at.
package measure

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/heliotrope-eo/heliotrope/pkg/factory"
	"github.com/heliotrope-eo/heliotrope/pkg/kernel"
	"github.com/heliotrope-eo/heliotrope/pkg/spectral"
)

// DefaultID is the identifier measures compile under when none is configured
const DefaultID = "measure"

// Default film and sampler parameters
const (
	defaultSampleCount = 1000
	defaultFilmWidth   = 32
	defaultFilmHeight  = 32
)

// Measure is a radiometric measure scene element
type Measure interface {
	kernel.Element

	// SpectralConfig returns the spectral contexts the measure requires.
	SpectralConfig() spectral.MeasureConfig

	// Target returns the scene region the measure observes, or false when
	// the measure observes no specific region.
	Target() (Target, bool)
}

// NewFactory creates a measure registry populated with the built-in types
func NewFactory() *factory.Registry[Measure] {
	r := factory.NewRegistry[Measure]("measure")
	RegisterDefaults(r)
	return r
}

// RegisterDefaults registers the built-in measure builders
func RegisterDefaults(r *factory.Registry[Measure]) {
	r.MustRegister("multi_distant", buildMultiDistant)
	r.MustRegister("radiancemeter", buildRadiancemeter)
	r.MustRegister("perspective", buildPerspective)
}

// spectralFromConfig reads a measure's spectral configuration. A missing
// configuration defaults to a single 550 nm wavelength.
func spectralFromConfig(cfg factory.Config) (spectral.MeasureConfig, error) {
	if !cfg.Has("spectral") {
		return spectral.NewMonoConfig(core.Nanometres(550))
	}
	sub, err := cfg.Sub("spectral")
	if err != nil {
		return nil, err
	}
	mode, err := sub.StringOr(factory.TypeKey, string(spectral.ModeMono))
	if err != nil {
		return nil, err
	}
	switch spectral.Mode(mode) {
	case spectral.ModeMono:
		return monoFromConfig(sub)
	case spectral.ModeCKD:
		return ckdFromConfig(sub)
	default:
		return nil, errors.New("unknown spectral mode").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("mode", mode)
	}
}

func monoFromConfig(cfg factory.Config) (spectral.MeasureConfig, error) {
	values, err := cfg.Floats("wavelengths")
	if err != nil {
		return nil, err
	}
	wavelengths := make([]core.Quantity, len(values))
	for i, v := range values {
		wavelengths[i] = core.Nanometres(v)
	}
	return spectral.NewMonoConfig(wavelengths...)
}

func ckdFromConfig(cfg factory.Config) (spectral.MeasureConfig, error) {
	quad, err := quadFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	subs, err := cfg.SubList("bins")
	if err != nil {
		return nil, err
	}
	bins := make([]spectral.Bin, 0, len(subs))
	for _, sub := range subs {
		id, err := sub.String("id")
		if err != nil {
			return nil, err
		}
		wmin, err := sub.Quantity("wmin", core.Nanometre)
		if err != nil {
			return nil, err
		}
		wmax, err := sub.Quantity("wmax", core.Nanometre)
		if err != nil {
			return nil, err
		}
		bin, err := spectral.NewBin(id, wmin, wmax, quad)
		if err != nil {
			return nil, err
		}
		bins = append(bins, bin)
	}
	return spectral.NewCKDConfigFromBins(bins)
}

func quadFromConfig(cfg factory.Config) (spectral.Quad, error) {
	quadType := spectral.GaussLegendre
	n := 16
	if cfg.Has("quadrature") {
		sub, err := cfg.Sub("quadrature")
		if err != nil {
			return spectral.Quad{}, err
		}
		kind, err := sub.StringOr(factory.TypeKey, string(spectral.GaussLegendre))
		if err != nil {
			return spectral.Quad{}, err
		}
		quadType = spectral.QuadType(kind)
		n, err = sub.IntOr("n", n)
		if err != nil {
			return spectral.Quad{}, err
		}
	}
	return spectral.NewQuad(quadType, n)
}

// filmDict assembles the film entry shared by all sensor fragments
func filmDict(width, height int) *kernel.Dict {
	return kernel.NewDict().
		Set("type", "hdrfilm").
		Set("width", width).
		Set("height", height).
		Set("pixel_format", "luminance").
		Set("component_format", "float32")
}

// samplerDict assembles the sampler entry shared by all sensor fragments
func samplerDict(sampleCount int) *kernel.Dict {
	return kernel.NewDict().
		Set("type", "independent").
		Set("sample_count", sampleCount)
}

func samplerFromConfig(cfg factory.Config) (int, error) {
	return cfg.IntOr("spp", defaultSampleCount)
}
