package atmosphere

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/heliotrope-eo/heliotrope/pkg/factory"
	"github.com/heliotrope-eo/heliotrope/pkg/phase"
	"github.com/heliotrope-eo/heliotrope/pkg/radprops"
	"github.com/heliotrope-eo/heliotrope/pkg/spectrum"
)

// NewFactory creates an atmosphere registry populated with the built-in
// types. Phase functions and coefficient spectra are built through the given
// registries.
func NewFactory(phases *factory.Registry[phase.Function], spectra *factory.Registry[spectrum.Spectrum]) *factory.Registry[Atmosphere] {
	r := factory.NewRegistry[Atmosphere]("atmosphere")
	RegisterDefaults(r, phases, spectra)
	return r
}

// RegisterDefaults registers the built-in atmosphere builders
func RegisterDefaults(r *factory.Registry[Atmosphere], phases *factory.Registry[phase.Function], spectra *factory.Registry[spectrum.Spectrum]) {
	r.MustRegister("homogeneous", func(cfg factory.Config) (Atmosphere, error) {
		return buildHomogeneous(cfg, phases, spectra)
	})
	r.MustRegister("molecular", buildMolecular)
}

func buildHomogeneous(cfg factory.Config, phases *factory.Registry[phase.Function], spectra *factory.Registry[spectrum.Spectrum]) (Atmosphere, error) {
	id, err := cfg.StringOr("id", DefaultID)
	if err != nil {
		return nil, err
	}
	bottom, err := cfg.QuantityOr("bottom", core.Kilometres(0))
	if err != nil {
		return nil, err
	}
	top, err := cfg.QuantityOr("top", core.Kilometres(10))
	if err != nil {
		return nil, err
	}

	var sigmaS spectrum.Spectrum
	if raw, ok := cfg["sigma_s"]; ok {
		sigmaS, err = spectrum.Convert(raw, core.PerKilometre, spectra)
	} else {
		sigmaS, err = spectrum.NewAirScattering(SigmaSID(id))
	}
	if err != nil {
		return nil, err
	}

	var sigmaA spectrum.Spectrum
	if raw, ok := cfg["sigma_a"]; ok {
		sigmaA, err = spectrum.Convert(raw, core.PerKilometre, spectra)
	} else {
		sigmaA, err = spectrum.NewUniform(SigmaAID(id), core.NewQuantity(0, core.PerKilometre))
	}
	if err != nil {
		return nil, err
	}

	phaseFn, err := phaseFromConfig(cfg, id, phases)
	if err != nil {
		return nil, err
	}
	geometry, err := GeometryFromConfig(cfg["geometry"])
	if err != nil {
		return nil, err
	}
	return NewHomogeneous(id, bottom, top, sigmaS, sigmaA, phaseFn, geometry)
}

// phaseFromConfig builds the configured phase function, keyed under the
// atmosphere's phase identifier unless the configuration names its own
func phaseFromConfig(cfg factory.Config, id string, phases *factory.Registry[phase.Function]) (phase.Function, error) {
	if !cfg.Has("phase") {
		return nil, nil
	}
	sub, err := cfg.Sub("phase")
	if err != nil {
		return nil, err
	}
	if !sub.Has("id") {
		withID := factory.Config{"id": PhaseID(id)}
		for k, v := range sub {
			withID[k] = v
		}
		sub = withID
	}
	return phases.Create(sub)
}

func buildMolecular(cfg factory.Config) (Atmosphere, error) {
	id, err := cfg.StringOr("id", DefaultID)
	if err != nil {
		return nil, err
	}
	bottom, err := cfg.QuantityOr("bottom", core.Kilometres(0))
	if err != nil {
		return nil, err
	}
	top, err := cfg.QuantityOr("top", core.Kilometres(100))
	if err != nil {
		return nil, err
	}
	layers, err := cfg.IntOr("layers", defaultLayerCount)
	if err != nil {
		return nil, err
	}
	provider, err := providerFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	geometry, err := GeometryFromConfig(cfg["geometry"])
	if err != nil {
		return nil, err
	}
	return NewMolecular(id, bottom, top, provider, layers, geometry)
}

// Default Rayleigh profile parameters: air scattering coefficient at 550 nm
// at sea level, and the pressure scale height of Earth's atmosphere.
var (
	defaultSeaLevel550 = core.NewQuantity(1.153e-2, core.PerKilometre)
	defaultScaleHeight = core.Kilometres(8)
)

// providerFromConfig builds the radiative property provider for a molecular
// atmosphere. Without a profile configuration the atmosphere falls back to an
// analytical Rayleigh profile.
func providerFromConfig(cfg factory.Config) (radprops.Provider, error) {
	if !cfg.Has("profile") {
		return radprops.NewRayleighProfile(defaultSeaLevel550, defaultScaleHeight)
	}
	sub, err := cfg.Sub("profile")
	if err != nil {
		return nil, err
	}
	kind, err := sub.StringOr(factory.TypeKey, "rayleigh")
	if err != nil {
		return nil, err
	}
	switch kind {
	case "rayleigh":
		seaLevel, err := sub.QuantityOr("sigma_s_550", defaultSeaLevel550)
		if err != nil {
			return nil, err
		}
		scaleHeight, err := sub.QuantityOr("scale_height", defaultScaleHeight)
		if err != nil {
			return nil, err
		}
		return radprops.NewRayleighProfile(seaLevel, scaleHeight)
	case "tabulated":
		return tabulatedProvider(sub)
	default:
		return nil, errors.New("unknown radiative property profile").
			WithType(core.ErrTypeUnknownType).
			WithTag("category", "radprops").
			WithTag("type", kind)
	}
}

func tabulatedProvider(cfg factory.Config) (radprops.Provider, error) {
	wavelengths, err := cfg.Floats("wavelengths")
	if err != nil {
		return nil, err
	}
	altitudes, err := cfg.Floats("altitudes")
	if err != nil {
		return nil, err
	}
	absorption, err := floatMatrix(cfg, "absorption")
	if err != nil {
		return nil, err
	}
	scattering, err := floatMatrix(cfg, "scattering")
	if err != nil {
		return nil, err
	}
	return radprops.NewProfile(wavelengths, altitudes, absorption, scattering)
}

// floatMatrix reads a list of numeric rows, one per altitude
func floatMatrix(cfg factory.Config, key string) ([][]float64, error) {
	raw, ok := cfg[key]
	if !ok {
		return nil, errors.New("missing configuration key").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("key", key)
	}
	rows, ok := raw.([]any)
	if !ok {
		return nil, errors.New("configuration key must be a list of numeric lists").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("key", key)
	}
	matrix := make([][]float64, len(rows))
	for i, rawRow := range rows {
		row := factory.Config{key: rawRow}
		values, err := row.Floats(key)
		if err != nil {
			return nil, errors.New("configuration row must be a numeric list").
				WithType(core.ErrTypeInvalidConfig).
				WithTag("key", key).
				WithTag("row", i).
				Wrap(err)
		}
		matrix[i] = values
	}
	return matrix, nil
}

// SigmaSID derives the identifier of an atmosphere's default scattering
// coefficient spectrum
func SigmaSID(id string) string { return id + "_sigma_s" }

// SigmaAID derives the identifier of an atmosphere's default absorption
// coefficient spectrum
func SigmaAID(id string) string { return id + "_sigma_a" }
