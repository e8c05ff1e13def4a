package kernel

import (
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/heliotrope-eo/heliotrope/pkg/spectral"
	"github.com/stretchr/testify/require"
)

// stubElement is a minimal element contributing a fixed fragment
type stubElement struct {
	id       string
	fragment func() *Dict
}

func (e stubElement) ID() string { return e.id }

func (e stubElement) KernelDict(spectral.Context) (*Dict, error) {
	return e.fragment(), nil
}

func monoCtx(t *testing.T) spectral.Context {
	t.Helper()
	ctx, err := spectral.NewMonoContext(core.Nanometres(550))
	require.NoError(t, err)
	return ctx
}

func TestDict_InsertPreservesOrder(t *testing.T) {
	d := NewDict()
	keys := []string{"integrator", "measure", "illumination", "surface", "atmosphere"}
	for _, k := range keys {
		require.NoError(t, d.Insert(k, 1))
	}
	require.Equal(t, keys, d.Keys())
}

func TestDict_InsertCollision(t *testing.T) {
	d := NewDict()
	require.NoError(t, d.Insert("surface", 1))

	err := d.Insert("surface", 2)
	require.Error(t, err)
	require.True(t, errors.IsType(err, core.ErrTypeDuplicateIdentifier))

	// The original value survives
	v, ok := d.Get("surface")
	require.True(t, ok)
	require.Equal(t, 1, v)
}

func TestDict_SetOverwritesWithoutDuplicatingKey(t *testing.T) {
	d := NewDict().Set("type", "sphere").Set("type", "cuboid")
	require.Equal(t, 1, d.Len())

	v, _ := d.Get("type")
	require.Equal(t, "cuboid", v)
}

func TestDict_MergeFailsOnCollision(t *testing.T) {
	a := NewDict().Set("x", 1).Set("y", 2)
	b := NewDict().Set("z", 3).Set("y", 4)

	err := a.Merge(b)
	require.Error(t, err)
	require.True(t, errors.IsType(err, core.ErrTypeDuplicateIdentifier))
}

func TestDict_AddMergesElementFragments(t *testing.T) {
	d := NewDict()
	err := d.Add(monoCtx(t),
		stubElement{id: "a", fragment: func() *Dict { return NewDict().Set("a", 1) }},
		stubElement{id: "b", fragment: func() *Dict { return NewDict().Set("b", 2) }},
	)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, d.Keys())
}

func TestDict_AddWrapsCollisionWithElementID(t *testing.T) {
	d := NewDict()
	siblings := []Element{
		stubElement{id: "surface", fragment: func() *Dict { return NewDict().Set("surface", 1) }},
		stubElement{id: "surface", fragment: func() *Dict { return NewDict().Set("surface", 2) }},
	}

	err := d.Add(monoCtx(t), siblings...)
	require.Error(t, err)
	require.True(t, errors.IsType(err, core.ErrTypeDuplicateIdentifier))
}

func TestCheckReferences(t *testing.T) {
	t.Run("closed dictionary passes", func(t *testing.T) {
		d := NewDict().
			Set("bsdf_surface", NewDict().Set("type", "diffuse")).
			Set("shape_surface", NewDict().
				Set("type", "rectangle").
				Set("bsdf", NewRef("bsdf_surface")))
		require.NoError(t, d.CheckReferences())
	})

	t.Run("dangling reference fails", func(t *testing.T) {
		d := NewDict().
			Set("shape_surface", NewDict().
				Set("type", "rectangle").
				Set("bsdf", NewRef("bsdf_missing")))
		err := d.CheckReferences()
		require.Error(t, err)
		require.True(t, errors.IsType(err, core.ErrTypeUnresolvedReference))
	})

	t.Run("nested references are checked", func(t *testing.T) {
		d := NewDict().
			Set("medium", NewDict().
				Set("type", "homogeneous").
				Set("phase", NewDict().
					Set("inner", NewRef("phase_gone"))))
		err := d.CheckReferences()
		require.Error(t, err)
	})
}

func TestReferences(t *testing.T) {
	d := NewDict().
		Set("a", NewRef("x")).
		Set("b", NewDict().Set("r", NewRef("y"))).
		Set("c", NewRef("x"))

	refs := d.References()
	require.Equal(t, []string{"x", "y"}, refs)
}
