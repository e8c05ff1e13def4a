package spectrum

import (
	"testing"

	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/heliotrope-eo/heliotrope/pkg/kernel"
	"github.com/heliotrope-eo/heliotrope/pkg/spectral"
	"github.com/stretchr/testify/require"
)

func ctxAt(t *testing.T, nm float64) spectral.Context {
	t.Helper()
	ctx, err := spectral.NewMonoContext(core.Nanometres(nm))
	require.NoError(t, err)
	return ctx
}

func TestUniform_Eval(t *testing.T) {
	s, err := NewUniform("reflectance", core.Scalar(0.35))
	require.NoError(t, err)
	require.Equal(t, core.Dimensionless, s.Dimension())

	for _, nm := range []float64{400, 550, 2400} {
		v, err := s.Eval(ctxAt(t, nm))
		require.NoError(t, err)
		require.Equal(t, 0.35, v.Value)
	}
}

func TestInterpolated_Eval(t *testing.T) {
	s, err := NewInterpolated("r", []float64{400, 500, 600}, []float64{0.1, 0.3, 0.2}, core.Unitless)
	require.NoError(t, err)

	tests := []struct {
		name string
		nm   float64
		want float64
	}{
		{"node", 500, 0.3},
		{"midpoint", 450, 0.2},
		{"interior", 575, 0.225},
		{"clamped below", 300, 0.1},
		{"clamped above", 700, 0.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := s.Eval(ctxAt(t, tt.nm))
			require.NoError(t, err)
			require.InDelta(t, tt.want, v.Value, 1e-12)
		})
	}
}

func TestInterpolated_Validation(t *testing.T) {
	_, err := NewInterpolated("r", []float64{500, 400}, []float64{1, 2}, core.Unitless)
	require.Error(t, err)

	_, err = NewInterpolated("r", []float64{400, 400}, []float64{1, 2}, core.Unitless)
	require.Error(t, err)

	_, err = NewInterpolated("r", []float64{400, 500}, []float64{1}, core.Unitless)
	require.Error(t, err)
}

func TestAirScattering_Eval(t *testing.T) {
	s, err := NewAirScattering("sigma_s")
	require.NoError(t, err)
	require.Equal(t, core.CollisionCoefficient, s.Dimension())

	// Anchored value at 550 nm
	v, err := s.Eval(ctxAt(t, 550))
	require.NoError(t, err)
	got, err := v.ValueAs(core.PerKilometre)
	require.NoError(t, err)
	require.InDelta(t, 1.153e-2, got, 1e-12)

	// Halving the wavelength scales the coefficient by 2^4
	v2, err := s.Eval(ctxAt(t, 275))
	require.NoError(t, err)
	got2, err := v2.ValueAs(core.PerKilometre)
	require.NoError(t, err)
	require.InDelta(t, 16*got, got2, 1e-12)
}

func TestSolarIrradiance_Eval(t *testing.T) {
	s, err := NewSolarIrradiance("sun", 1)
	require.NoError(t, err)
	require.Equal(t, core.Irradiance, s.Dimension())

	v, err := s.Eval(ctxAt(t, 550))
	require.NoError(t, err)
	require.Greater(t, v.Value, 0.0)

	// The scale factor multiplies the tabulated value
	scaled, err := NewSolarIrradiance("sun", 2)
	require.NoError(t, err)
	v2, err := scaled.Eval(ctxAt(t, 550))
	require.NoError(t, err)
	require.InDelta(t, 2*v.Value, v2.Value, 1e-12)

	_, err = NewSolarIrradiance("sun", -1)
	require.Error(t, err)
}

func TestKernelValue_UsesKernelUnits(t *testing.T) {
	// 10 per kilometre is 0.01 per metre in kernel units
	s, err := NewUniform("sigma", core.NewQuantity(10, core.PerKilometre))
	require.NoError(t, err)

	value, err := KernelValue(s, ctxAt(t, 550))
	require.NoError(t, err)

	d, ok := value.(*kernel.Dict)
	require.True(t, ok)

	kind, _ := d.Get("type")
	require.Equal(t, "uniform", kind)
	mag, _ := d.Get("value")
	require.InDelta(t, 0.01, mag.(float64), 1e-15)
}

func TestConvert(t *testing.T) {
	registry := NewFactory()

	t.Run("bare number", func(t *testing.T) {
		s, err := Convert(0.5, core.Unitless, registry)
		require.NoError(t, err)
		v, err := s.Eval(ctxAt(t, 550))
		require.NoError(t, err)
		require.Equal(t, 0.5, v.Value)
	})

	t.Run("mapping routes through registry", func(t *testing.T) {
		s, err := Convert(map[string]any{
			"type":  "uniform",
			"value": 0.25,
		}, core.Unitless, registry)
		require.NoError(t, err)
		v, err := s.Eval(ctxAt(t, 550))
		require.NoError(t, err)
		require.Equal(t, 0.25, v.Value)
	})

	t.Run("garbage fails", func(t *testing.T) {
		_, err := Convert(true, core.Unitless, registry)
		require.Error(t, err)
	})
}
