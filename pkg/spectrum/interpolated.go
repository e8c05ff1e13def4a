package spectrum

import (
	"sort"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/heliotrope-eo/heliotrope/pkg/kernel"
	"github.com/heliotrope-eo/heliotrope/pkg/spectral"
)

// Interpolated is a spectrum defined by tabulated values, linearly
// interpolated in wavelength and clamped outside the tabulated range
type Interpolated struct {
	id            string
	wavelengthsNM []float64
	values        []float64
	unit          core.Unit
}

// NewInterpolated creates an interpolated spectrum from tabulated values.
// Wavelengths are in nanometres and must be strictly ascending.
func NewInterpolated(id string, wavelengthsNM, values []float64, unit core.Unit) (*Interpolated, error) {
	if id == "" {
		id = DefaultID
	}
	if len(wavelengthsNM) == 0 {
		return nil, errors.New("interpolated spectrum needs at least one point").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("id", id)
	}
	if len(wavelengthsNM) != len(values) {
		return nil, errors.New("wavelength and value counts differ").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("id", id).
			WithTag("wavelengths", len(wavelengthsNM)).
			WithTag("values", len(values))
	}
	if !sort.Float64sAreSorted(wavelengthsNM) {
		return nil, errors.New("wavelengths must be ascending").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("id", id)
	}
	for i := 1; i < len(wavelengthsNM); i++ {
		if wavelengthsNM[i] == wavelengthsNM[i-1] {
			return nil, errors.New("wavelengths must be distinct").
				WithType(core.ErrTypeInvalidConfig).
				WithTag("id", id).
				WithTag("wavelength_nm", wavelengthsNM[i])
		}
	}

	w := make([]float64, len(wavelengthsNM))
	copy(w, wavelengthsNM)
	v := make([]float64, len(values))
	copy(v, values)

	return &Interpolated{id: id, wavelengthsNM: w, values: v, unit: unit}, nil
}

func (s *Interpolated) ID() string { return s.id }

func (s *Interpolated) Dimension() core.Dimension { return s.unit.Dim }

func (s *Interpolated) Eval(ctx spectral.Context) (core.Quantity, error) {
	w, err := ctx.Wavelength().ValueAs(core.Nanometre)
	if err != nil {
		return core.Quantity{}, err
	}
	return core.NewQuantity(interpolate(s.wavelengthsNM, s.values, w), s.unit), nil
}

func (s *Interpolated) KernelDict(ctx spectral.Context) (*kernel.Dict, error) {
	return elementDict(s, ctx)
}

// interpolate evaluates a piecewise-linear table at w, clamping at the ends
func interpolate(xs, ys []float64, w float64) float64 {
	if w <= xs[0] {
		return ys[0]
	}
	last := len(xs) - 1
	if w >= xs[last] {
		return ys[last]
	}

	hi := sort.SearchFloat64s(xs, w)
	lo := hi - 1
	t := (w - xs[lo]) / (xs[hi] - xs[lo])
	return ys[lo] + t*(ys[hi]-ys[lo])
}
