package integrator

import (
	"testing"

	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/heliotrope-eo/heliotrope/pkg/factory"
	"github.com/heliotrope-eo/heliotrope/pkg/kernel"
	"github.com/heliotrope-eo/heliotrope/pkg/spectral"
	"github.com/stretchr/testify/require"
)

func monoCtx(t *testing.T) spectral.Context {
	t.Helper()
	ctx, err := spectral.NewMonoContext(core.Nanometres(550))
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

func TestPathKernelDict(t *testing.T) {
	i, err := NewPath("integrator", 8, 3)
	require.NoError(t, err)

	d, err := i.KernelDict(monoCtx(t))
	require.NoError(t, err)

	entry := fragment(t, d, "integrator")
	typ, _ := entry.Get("type")
	require.Equal(t, "path", typ)
	maxDepth, _ := entry.Get("max_depth")
	require.Equal(t, 8, maxDepth)
	rrDepth, _ := entry.Get("rr_depth")
	require.Equal(t, 3, rrDepth)
}

func TestPathOmitsZeroDepths(t *testing.T) {
	i, err := NewPath("", 0, 0)
	require.NoError(t, err)
	require.Equal(t, DefaultID, i.ID())

	d, err := i.KernelDict(monoCtx(t))
	require.NoError(t, err)

	entry := fragment(t, d, DefaultID)
	require.Equal(t, []string{"type"}, entry.Keys())
}

func TestVolPathKernelDict(t *testing.T) {
	i, err := NewVolPath("integrator", 16, 0)
	require.NoError(t, err)

	d, err := i.KernelDict(monoCtx(t))
	require.NoError(t, err)

	entry := fragment(t, d, "integrator")
	typ, _ := entry.Get("type")
	require.Equal(t, "volpath", typ)
	_, ok := entry.Get("rr_depth")
	require.False(t, ok)
}

func TestNegativeDepthsRejected(t *testing.T) {
	_, err := NewPath("integrator", -1, 0)
	require.Error(t, err)
	_, err = NewVolPath("integrator", 0, -1)
	require.Error(t, err)
}

func TestIntegratorFactory(t *testing.T) {
	integrators := NewFactory()

	i, err := integrators.Create(factory.Config{
		"type":      "volpath",
		"max_depth": 12,
	})
	require.NoError(t, err)

	d, err := i.KernelDict(monoCtx(t))
	require.NoError(t, err)
	maxDepth, _ := fragment(t, d, DefaultID).Get("max_depth")
	require.Equal(t, 12, maxDepth)

	_, err = integrators.Create(factory.Config{"type": "bidirectional"})
	require.Error(t, err)
}
