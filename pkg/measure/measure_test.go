package measure

import (
	"testing"

	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/heliotrope-eo/heliotrope/pkg/factory"
	"github.com/heliotrope-eo/heliotrope/pkg/kernel"
	"github.com/heliotrope-eo/heliotrope/pkg/spectral"
	"github.com/stretchr/testify/require"
)

func monoCtx(t *testing.T, nm float64) spectral.Context {
	t.Helper()
	ctx, err := spectral.NewMonoContext(core.Nanometres(nm))
	require.NoError(t, err)
	return ctx
}

func monoConfig(t *testing.T, nm ...float64) spectral.MeasureConfig {
	t.Helper()
	wavelengths := make([]core.Quantity, len(nm))
	for i, v := range nm {
		wavelengths[i] = core.Nanometres(v)
	}
	cfg, err := spectral.NewMonoConfig(wavelengths...)
	require.NoError(t, err)
	return cfg
}

func fragment(t *testing.T, d *kernel.Dict, id string) *kernel.Dict {
	t.Helper()
	raw, ok := d.Get(id)
	require.True(t, ok)
	entry, ok := raw.(*kernel.Dict)
	require.True(t, ok)
	return entry
}

func nadirAngles() []ViewingAngle {
	return []ViewingAngle{
		{Zenith: core.Degrees(0), Azimuth: core.Degrees(0)},
		{Zenith: core.Degrees(30), Azimuth: core.Degrees(0)},
		{Zenith: core.Degrees(60), Azimuth: core.Degrees(90)},
	}
}

func TestViewingAngleDirection(t *testing.T) {
	d, err := ViewingAngle{Zenith: core.Degrees(0), Azimuth: core.Degrees(0)}.Direction()
	require.NoError(t, err)
	require.InDelta(t, 0, d.X, 1e-12)
	require.InDelta(t, 1, d.Z, 1e-12)

	d, err = ViewingAngle{Zenith: core.Degrees(90), Azimuth: core.Degrees(90)}.Direction()
	require.NoError(t, err)
	require.InDelta(t, 1, d.Y, 1e-12)
	require.InDelta(t, 0, d.Z, 1e-12)
}

func TestMultiDistantKernelDict(t *testing.T) {
	m, err := NewMultiDistant("brf", nadirAngles(), NewPointTarget(core.NewVec3(0, 0, 0)), monoConfig(t, 550), 0)
	require.NoError(t, err)

	d, err := m.KernelDict(monoCtx(t, 550))
	require.NoError(t, err)

	entry := fragment(t, d, "brf")
	typ, _ := entry.Get("type")
	require.Equal(t, "mdistant", typ)

	directions, _ := entry.Get("directions")
	flat, ok := directions.([]float64)
	require.True(t, ok)
	require.Len(t, flat, 9)

	// The film holds one pixel per direction.
	film, _ := entry.Get("film")
	width, _ := film.(*kernel.Dict).Get("width")
	require.Equal(t, 3, width)
	height, _ := film.(*kernel.Dict).Get("height")
	require.Equal(t, 1, height)

	target, ok := entry.Get("target")
	require.True(t, ok)
	targetType, _ := target.(*kernel.Dict).Get("type")
	require.Equal(t, "point", targetType)

	sampler, _ := entry.Get("sampler")
	spp, _ := sampler.(*kernel.Dict).Get("sample_count")
	require.Equal(t, defaultSampleCount, spp)
}

func TestMultiDistantWithoutTarget(t *testing.T) {
	m, err := NewMultiDistant("brf", nadirAngles(), nil, monoConfig(t, 550), 64)
	require.NoError(t, err)

	_, hasTarget := m.Target()
	require.False(t, hasTarget)

	d, err := m.KernelDict(monoCtx(t, 550))
	require.NoError(t, err)
	_, ok := fragment(t, d, "brf").Get("target")
	require.False(t, ok)
}

func TestMultiDistantValidation(t *testing.T) {
	_, err := NewMultiDistant("brf", nil, nil, monoConfig(t, 550), 0)
	require.Error(t, err)

	_, err = NewMultiDistant("brf", nadirAngles(), nil, nil, 0)
	require.Error(t, err)
}

func TestRadiancemeterKernelDict(t *testing.T) {
	m, err := NewRadiancemeter("meter", core.NewVec3(0, 0, 100), NewPointTarget(core.NewVec3(0, 0, 0)), monoConfig(t, 550), 128)
	require.NoError(t, err)

	d, err := m.KernelDict(monoCtx(t, 550))
	require.NoError(t, err)

	entry := fragment(t, d, "meter")
	direction, _ := entry.Get("direction")
	require.Equal(t, []float64{0, 0, -1}, direction)

	film, _ := entry.Get("film")
	width, _ := film.(*kernel.Dict).Get("width")
	require.Equal(t, 1, width)
}

func TestRadiancemeterRejectsCoincidentTarget(t *testing.T) {
	origin := core.NewVec3(1, 2, 3)
	_, err := NewRadiancemeter("meter", origin, NewPointTarget(origin), monoConfig(t, 550), 0)
	require.Error(t, err)
}

func TestPerspectiveKernelDict(t *testing.T) {
	m, err := NewPerspective("camera", core.NewVec3(10, 0, 10), NewPointTarget(core.NewVec3(0, 0, 0)),
		core.NewVec3(0, 0, 1), core.Degrees(50), 64, 48, monoConfig(t, 550), 32)
	require.NoError(t, err)

	d, err := m.KernelDict(monoCtx(t, 550))
	require.NoError(t, err)

	entry := fragment(t, d, "camera")
	fov, _ := entry.Get("fov")
	require.Equal(t, 50.0, fov)

	toWorld, _ := entry.Get("to_world")
	origin, _ := toWorld.(*kernel.Dict).Get("origin")
	require.Equal(t, []float64{10, 0, 10}, origin)

	film, _ := entry.Get("film")
	width, _ := film.(*kernel.Dict).Get("width")
	require.Equal(t, 64, width)
	height, _ := film.(*kernel.Dict).Get("height")
	require.Equal(t, 48, height)
}

func TestPerspectiveValidation(t *testing.T) {
	target := NewPointTarget(core.NewVec3(0, 0, 0))
	cfg := monoConfig(t, 550)

	// Up vector parallel to the viewing direction.
	_, err := NewPerspective("camera", core.NewVec3(0, 0, 10), target,
		core.NewVec3(0, 0, 1), core.Degrees(50), 0, 0, cfg, 0)
	require.Error(t, err)

	// Field of view out of range.
	_, err = NewPerspective("camera", core.NewVec3(10, 0, 10), target,
		core.NewVec3(0, 0, 1), core.Degrees(180), 0, 0, cfg, 0)
	require.Error(t, err)
}

func TestPointTargetIn(t *testing.T) {
	box := core.NewAABB(core.NewVec3(-1, -1, 0), core.NewVec3(1, 1, 10))
	require.True(t, NewPointTarget(core.NewVec3(0, 0, 5)).In(box))
	require.False(t, NewPointTarget(core.NewVec3(0, 0, 50)).In(box))
}

func TestRectangleTargetIn(t *testing.T) {
	box := core.NewAABB(core.NewVec3(-10, -10, 0), core.NewVec3(10, 10, 10))

	target, err := NewRectangleTarget(core.NewVec3(0, 0, 0), 10, 10)
	require.NoError(t, err)
	require.True(t, target.In(box))

	target, err = NewRectangleTarget(core.NewVec3(8, 0, 0), 10, 10)
	require.NoError(t, err)
	require.False(t, target.In(box))

	_, err = NewRectangleTarget(core.NewVec3(0, 0, 0), 0, 10)
	require.Error(t, err)
}

func TestMeasureFactoryMultiDistant(t *testing.T) {
	measures := NewFactory()

	m, err := measures.Create(factory.Config{
		"type": "multi_distant",
		"id":   "brf",
		"angles": []any{
			[]any{0.0, 0.0},
			[]any{30.0, 0.0},
		},
		"target": []any{0.0, 0.0, 0.0},
		"spp":    256,
	})
	require.NoError(t, err)

	md, ok := m.(*MultiDistant)
	require.True(t, ok)
	require.Len(t, md.Directions(), 2)

	target, hasTarget := m.Target()
	require.True(t, hasTarget)
	require.IsType(t, PointTarget{}, target)

	// The default spectral configuration is a single 550 nm wavelength.
	contexts := m.SpectralConfig().Contexts()
	require.Len(t, contexts, 1)
	require.Equal(t, "550nm", contexts[0].Key())
}

func TestMeasureFactorySpectralMono(t *testing.T) {
	measures := NewFactory()

	m, err := measures.Create(factory.Config{
		"type":   "multi_distant",
		"angles": []any{[]any{0.0, 0.0}},
		"spectral": map[string]any{
			"type":        "mono",
			"wavelengths": []any{660.0, 440.0, 550.0},
		},
	})
	require.NoError(t, err)

	contexts := m.SpectralConfig().Contexts()
	require.Len(t, contexts, 3)
	require.Equal(t, "440nm", contexts[0].Key())
	require.Equal(t, "660nm", contexts[2].Key())
}

func TestMeasureFactorySpectralCKD(t *testing.T) {
	measures := NewFactory()

	m, err := measures.Create(factory.Config{
		"type":   "multi_distant",
		"angles": []any{[]any{0.0, 0.0}},
		"spectral": map[string]any{
			"type": "ckd",
			"bins": []any{
				map[string]any{"id": "550", "wmin": 545.0, "wmax": 555.0},
			},
			"quadrature": map[string]any{"type": "gauss_legendre", "n": 4},
		},
	})
	require.NoError(t, err)

	contexts := m.SpectralConfig().Contexts()
	require.Len(t, contexts, 4)
	require.Equal(t, "550-0", contexts[0].Key())
}

func TestMeasureFactoryRectangleTarget(t *testing.T) {
	measures := NewFactory()

	m, err := measures.Create(factory.Config{
		"type":   "multi_distant",
		"angles": []any{[]any{0.0, 0.0}},
		"target": map[string]any{
			"type":   "rectangle",
			"edge_x": 100.0,
			"edge_y": 200.0,
		},
	})
	require.NoError(t, err)

	target, hasTarget := m.Target()
	require.True(t, hasTarget)
	rect, ok := target.(RectangleTarget)
	require.True(t, ok)
	require.Equal(t, 100.0, rect.EdgeX)
}

func TestMeasureFactoryRadiancemeterRequiresPointTarget(t *testing.T) {
	measures := NewFactory()

	_, err := measures.Create(factory.Config{
		"type":   "radiancemeter",
		"origin": []any{0.0, 0.0, 100.0},
		"target": map[string]any{
			"type":   "rectangle",
			"edge_x": 1.0,
			"edge_y": 1.0,
		},
	})
	require.Error(t, err)
}
