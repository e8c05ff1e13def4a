package illumination

import (
	"testing"

	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/heliotrope-eo/heliotrope/pkg/factory"
	"github.com/heliotrope-eo/heliotrope/pkg/kernel"
	"github.com/heliotrope-eo/heliotrope/pkg/spectral"
	"github.com/heliotrope-eo/heliotrope/pkg/spectrum"
	"github.com/stretchr/testify/require"
)

func monoCtx(t *testing.T, nm float64) spectral.Context {
	t.Helper()
	ctx, err := spectral.NewMonoContext(core.Nanometres(nm))
	require.NoError(t, err)
	return ctx
}

func fragment(t *testing.T, d *kernel.Dict, id string) *kernel.Dict {
	t.Helper()
	raw, ok := d.Get(id)
	require.True(t, ok)
	entry, ok := raw.(*kernel.Dict)
	require.True(t, ok)
	return entry
}

func TestDirectionalDirection(t *testing.T) {
	tests := []struct {
		name    string
		zenith  core.Quantity
		azimuth core.Quantity
		want    core.Vec3
	}{
		{
			name:    "overhead sun points straight down",
			zenith:  core.Degrees(0),
			azimuth: core.Degrees(0),
			want:    core.NewVec3(0, 0, -1),
		},
		{
			name:    "sun on the horizon shines along -x",
			zenith:  core.Degrees(90),
			azimuth: core.Degrees(0),
			want:    core.NewVec3(-1, 0, 0),
		},
		{
			name:    "sun on the horizon at 90 degrees azimuth shines along -y",
			zenith:  core.Degrees(90),
			azimuth: core.Degrees(90),
			want:    core.NewVec3(0, -1, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewDirectional("sun", tt.zenith, tt.azimuth, nil)
			require.NoError(t, err)

			got := l.Direction()
			require.InDelta(t, tt.want.X, got.X, 1e-12)
			require.InDelta(t, tt.want.Y, got.Y, 1e-12)
			require.InDelta(t, tt.want.Z, got.Z, 1e-12)
		})
	}
}

func TestDirectionalKernelDict(t *testing.T) {
	irradiance, err := spectrum.NewUniform("", core.NewQuantity(1.5, core.WattPerSquareMetrePerNanometre))
	require.NoError(t, err)

	l, err := NewDirectional("sun", core.Degrees(30), core.Degrees(0), irradiance)
	require.NoError(t, err)

	d, err := l.KernelDict(monoCtx(t, 550))
	require.NoError(t, err)

	entry := fragment(t, d, "sun")
	typ, _ := entry.Get("type")
	require.Equal(t, "directional", typ)
	_, ok := entry.Get("direction")
	require.True(t, ok)
	_, ok = entry.Get("irradiance")
	require.True(t, ok)
}

func TestDirectionalDefaultsToSolarSpectrum(t *testing.T) {
	l, err := NewDirectional("sun", core.Degrees(0), core.Degrees(0), nil)
	require.NoError(t, err)

	d, err := l.KernelDict(monoCtx(t, 550))
	require.NoError(t, err)
	_, ok := fragment(t, d, "sun").Get("irradiance")
	require.True(t, ok)
}

func TestDirectionalZenithOutOfRange(t *testing.T) {
	for _, zenith := range []float64{-10, 91} {
		_, err := NewDirectional("sun", core.Degrees(zenith), core.Degrees(0), nil)
		require.Error(t, err)
	}
}

func TestDirectionalRejectsWrongDimension(t *testing.T) {
	radiance, err := spectrum.NewUniform("", core.Scalar(1))
	require.NoError(t, err)

	_, err = NewDirectional("sun", core.Degrees(0), core.Degrees(0), radiance)
	require.Error(t, err)
}

func TestConstantKernelDict(t *testing.T) {
	l, err := NewConstant("sky", nil)
	require.NoError(t, err)

	d, err := l.KernelDict(monoCtx(t, 550))
	require.NoError(t, err)

	entry := fragment(t, d, "sky")
	typ, _ := entry.Get("type")
	require.Equal(t, "constant", typ)
	_, ok := entry.Get("radiance")
	require.True(t, ok)
}

func TestIlluminationFactory(t *testing.T) {
	illuminations := NewFactory(spectrum.NewFactory())

	l, err := illuminations.Create(factory.Config{
		"type":    "directional",
		"id":      "sun",
		"zenith":  map[string]any{"value": 30.0, "unit": "deg"},
		"azimuth": 45.0,
	})
	require.NoError(t, err)
	require.Equal(t, "sun", l.ID())

	_, err = illuminations.Create(factory.Config{"type": "spot"})
	require.Error(t, err)
}
