package spectral

import (
	"sort"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
)

// MeasureConfig enumerates the spectral contexts required to evaluate a
// measure. Implementations produce a non-empty, deterministically ordered
// sequence; iterating twice yields identical results.
type MeasureConfig interface {
	// Mode returns the spectral mode shared by all produced contexts.
	Mode() Mode

	// Contexts returns the ordered evaluation points. The compilation loop
	// compiles one kernel dictionary per returned context.
	Contexts() []Context
}

// MonoConfig holds an ordered set of distinct wavelengths
type MonoConfig struct {
	wavelengths []core.Quantity
}

// NewMonoConfig creates a monochromatic spectral config. Wavelengths are
// deduplicated and sorted ascending; an empty set is a configuration error.
func NewMonoConfig(wavelengths ...core.Quantity) (MonoConfig, error) {
	seen := make(map[float64]struct{}, len(wavelengths))
	nm := make([]float64, 0, len(wavelengths))

	for _, w := range wavelengths {
		v, err := w.ValueAs(core.Nanometre)
		if err != nil {
			return MonoConfig{}, errors.New("invalid wavelength").
				WithType(core.ErrTypeInvalidConfig).
				Wrap(err)
		}
		if v <= 0 {
			return MonoConfig{}, errors.New("wavelength must be positive").
				WithType(core.ErrTypeInvalidConfig).
				WithTag("wavelength_nm", v)
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		nm = append(nm, v)
	}

	if len(nm) == 0 {
		return MonoConfig{}, errors.New("mono spectral config needs at least one wavelength").
			WithType(core.ErrTypeEmptySpectralConfig)
	}

	sort.Float64s(nm)
	sorted := make([]core.Quantity, len(nm))
	for i, v := range nm {
		sorted[i] = core.Nanometres(v)
	}

	return MonoConfig{wavelengths: sorted}, nil
}

func (c MonoConfig) Mode() Mode { return ModeMono }

// Wavelengths returns the configured wavelengths in ascending order
func (c MonoConfig) Wavelengths() []core.Quantity {
	result := make([]core.Quantity, len(c.wavelengths))
	copy(result, c.wavelengths)
	return result
}

// Contexts returns one context per wavelength, ascending
func (c MonoConfig) Contexts() []Context {
	contexts := make([]Context, len(c.wavelengths))
	for i, w := range c.wavelengths {
		contexts[i] = MonoContext{wavelength: w}
	}
	return contexts
}

// CKDConfig holds an ordered set of spectral bins
type CKDConfig struct {
	bins []Bin
}

// NewCKDConfig creates a CKD spectral config from a bin set. An empty bin
// selection is a configuration error.
func NewCKDConfig(binSet BinSet) (CKDConfig, error) {
	return NewCKDConfigFromBins(binSet.Bins)
}

// NewCKDConfigFromBins creates a CKD spectral config from pre-selected bins,
// e.g. the result of BinSet.SelectInterval. Bin order follows ascending
// lower bound.
func NewCKDConfigFromBins(bins []Bin) (CKDConfig, error) {
	if len(bins) == 0 {
		return CKDConfig{}, errors.New("ckd spectral config needs at least one bin").
			WithType(core.ErrTypeEmptySpectralConfig)
	}

	sorted := make([]Bin, len(bins))
	copy(sorted, bins)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.wminNM() != b.wminNM() {
			return a.wminNM() < b.wminNM()
		}
		if a.wmaxNM() != b.wmaxNM() {
			return a.wmaxNM() < b.wmaxNM()
		}
		return a.ID < b.ID
	})

	return CKDConfig{bins: sorted}, nil
}

func (c CKDConfig) Mode() Mode { return ModeCKD }

// Bins returns the configured bins in ascending order
func (c CKDConfig) Bins() []Bin {
	result := make([]Bin, len(c.bins))
	copy(result, c.bins)
	return result
}

// Contexts returns one context per (bin, quadrature point) pair, in
// ascending bin order then ascending quadrature index. Downstream
// aggregation applies quadrature weights positionally, so this ordering is
// load-bearing.
func (c CKDConfig) Contexts() []Context {
	var contexts []Context
	for _, bin := range c.bins {
		contexts = append(contexts, bin.Contexts()...)
	}
	return contexts
}
