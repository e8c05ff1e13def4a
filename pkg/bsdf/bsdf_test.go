package bsdf

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

func asDict(t *testing.T, v kernel.Value) *kernel.Dict {
	t.Helper()
	d, ok := v.(*kernel.Dict)
	require.True(t, ok)
	return d
}

func TestLambertianKernelValue(t *testing.T) {
	reflectance, err := spectrum.NewUniform("", core.Scalar(0.35))
	require.NoError(t, err)

	b, err := NewLambertian("ground", reflectance)
	require.NoError(t, err)
	require.Equal(t, "ground", b.ID())

	value, err := b.KernelValue(monoCtx(t, 550))
	require.NoError(t, err)

	d := asDict(t, value)
	typ, _ := d.Get("type")
	require.Equal(t, "diffuse", typ)

	refl, ok := d.Get("reflectance")
	require.True(t, ok)
	rd := asDict(t, refl)
	v, _ := rd.Get("value")
	require.Equal(t, 0.35, v)
}

func TestLambertianReflectanceOutOfRange(t *testing.T) {
	reflectance, err := spectrum.NewUniform("", core.Scalar(1.2))
	require.NoError(t, err)

	b, err := NewLambertian("ground", reflectance)
	require.NoError(t, err)

	_, err = b.KernelValue(monoCtx(t, 550))
	require.Error(t, err)
}

func TestLambertianRejectsDimensionedReflectance(t *testing.T) {
	reflectance, err := spectrum.NewUniform("", core.Metres(0.5))
	require.NoError(t, err)

	_, err = NewLambertian("ground", reflectance)
	require.Error(t, err)
}

func TestLambertianDefaultID(t *testing.T) {
	reflectance, err := spectrum.NewUniform("", core.Scalar(0.5))
	require.NoError(t, err)

	b, err := NewLambertian("", reflectance)
	require.NoError(t, err)
	require.Equal(t, DefaultID, b.ID())
}

func TestRPVKernelValue(t *testing.T) {
	spectra := spectrum.NewFactory()
	bsdfs := NewFactory(spectra)

	b, err := bsdfs.Create(factory.Config{
		"type":  "rpv",
		"id":    "soil",
		"rho_0": 0.2,
	})
	require.NoError(t, err)
	require.Equal(t, "soil", b.ID())

	value, err := b.KernelValue(monoCtx(t, 550))
	require.NoError(t, err)

	d := asDict(t, value)
	typ, _ := d.Get("type")
	require.Equal(t, "rpv", typ)

	rho0, _ := d.Get("rho_0")
	require.Equal(t, 0.2, rho0)

	// Parameters not configured fall back to their defaults.
	k, _ := d.Get("k")
	require.Equal(t, 0.780, k)
	g, _ := d.Get("g")
	require.Equal(t, -0.1, g)
}

func TestBlackKernelValue(t *testing.T) {
	b := NewBlack("shadow")

	value, err := b.KernelValue(monoCtx(t, 550))
	require.NoError(t, err)

	d := asDict(t, value)
	refl, ok := d.Get("reflectance")
	require.True(t, ok)
	rd := asDict(t, refl)
	v, _ := rd.Get("value")
	require.Equal(t, 0.0, v)
}

func TestBSDFKernelDictKeysByID(t *testing.T) {
	spectra := spectrum.NewFactory()
	bsdfs := NewFactory(spectra)

	b, err := bsdfs.Create(factory.Config{
		"type":        "lambertian",
		"id":          "canopy_floor",
		"reflectance": 0.1,
	})
	require.NoError(t, err)

	d, err := b.KernelDict(monoCtx(t, 550))
	require.NoError(t, err)
	require.Equal(t, []string{"canopy_floor"}, d.Keys())
}

func TestBSDFFactoryUnknownType(t *testing.T) {
	spectra := spectrum.NewFactory()
	bsdfs := NewFactory(spectra)

	_, err := bsdfs.Create(factory.Config{"type": "mirror"})
	require.Error(t, err)
}
