package spectral

import (
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/stretchr/testify/require"
)

func TestNewMonoConfig(t *testing.T) {
	t.Run("sorts and deduplicates", func(t *testing.T) {
		cfg, err := NewMonoConfig(
			core.Nanometres(660),
			core.Nanometres(440),
			core.Nanometres(550),
			core.Nanometres(440),
		)
		require.NoError(t, err)

		contexts := cfg.Contexts()
		require.Len(t, contexts, 3)
		require.Equal(t, "440nm", contexts[0].Key())
		require.Equal(t, "550nm", contexts[1].Key())
		require.Equal(t, "660nm", contexts[2].Key())
	})

	t.Run("empty set fails", func(t *testing.T) {
		_, err := NewMonoConfig()
		require.Error(t, err)
		require.True(t, errors.IsType(err, core.ErrTypeEmptySpectralConfig))
	})

	t.Run("iterating twice yields equal sequences", func(t *testing.T) {
		cfg, err := NewMonoConfig(core.Nanometres(550), core.Nanometres(440))
		require.NoError(t, err)
		require.Equal(t, cfg.Contexts(), cfg.Contexts())
	})
}

func TestNewCKDConfig(t *testing.T) {
	quad, err := NewGaussLegendre(4)
	require.NoError(t, err)

	bin := func(id string, wmin, wmax float64) Bin {
		b, err := NewBin(id, core.Nanometres(wmin), core.Nanometres(wmax), quad)
		require.NoError(t, err)
		return b
	}

	t.Run("two bins of four points yield eight ordered contexts", func(t *testing.T) {
		// Bins deliberately out of order; the config sorts them
		cfg, err := NewCKDConfigFromBins([]Bin{
			bin("560", 555, 565),
			bin("550", 545, 555),
		})
		require.NoError(t, err)

		contexts := cfg.Contexts()
		require.Len(t, contexts, 8)

		wantKeys := []string{
			"550-0", "550-1", "550-2", "550-3",
			"560-0", "560-1", "560-2", "560-3",
		}
		for i, ctx := range contexts {
			require.Equal(t, wantKeys[i], ctx.Key())
			require.Equal(t, ModeCKD, ctx.Mode())
		}
	})

	t.Run("contexts carry bin center wavelength and quadrature data", func(t *testing.T) {
		cfg, err := NewCKDConfigFromBins([]Bin{bin("550", 545, 555)})
		require.NoError(t, err)

		ctx, ok := cfg.Contexts()[1].(CKDContext)
		require.True(t, ok)
		require.Equal(t, 1, ctx.Index())
		require.InDelta(t, 550, ctx.Wavelength().MustValueAs(core.Nanometre), 1e-12)
		require.Equal(t, quad.Nodes[1], ctx.Node())
		require.Equal(t, quad.Weights[1], ctx.Weight())
	})

	t.Run("empty bin set fails", func(t *testing.T) {
		_, err := NewCKDConfigFromBins(nil)
		require.Error(t, err)
		require.True(t, errors.IsType(err, core.ErrTypeEmptySpectralConfig))
	})

	t.Run("iterating twice yields equal sequences", func(t *testing.T) {
		cfg, err := NewCKDConfigFromBins([]Bin{bin("550", 545, 555), bin("560", 555, 565)})
		require.NoError(t, err)
		require.Equal(t, cfg.Contexts(), cfg.Contexts())
	})
}

func TestUniformBinSet(t *testing.T) {
	quad, err := NewGaussLegendre(2)
	require.NoError(t, err)

	set, err := UniformBinSet("vis", core.Nanometres(400), core.Nanometres(700), 3, quad)
	require.NoError(t, err)
	require.Len(t, set.Bins, 3)

	require.InDelta(t, 400, set.Bins[0].WMin.MustValueAs(core.Nanometre), 1e-9)
	require.InDelta(t, 500, set.Bins[0].WMax.MustValueAs(core.Nanometre), 1e-9)
	require.InDelta(t, 700, set.Bins[2].WMax.MustValueAs(core.Nanometre), 1e-9)
}

func TestBinSet_SelectInterval(t *testing.T) {
	quad, err := NewGaussLegendre(2)
	require.NoError(t, err)
	set, err := UniformBinSet("vis", core.Nanometres(400), core.Nanometres(700), 3, quad)
	require.NoError(t, err)

	bins, err := set.SelectInterval(core.Nanometres(450), core.Nanometres(550))
	require.NoError(t, err)
	require.Len(t, bins, 2)
}

func TestMonoContext_Key(t *testing.T) {
	ctx, err := NewMonoContext(core.Nanometres(550.5))
	require.NoError(t, err)
	require.Equal(t, "550.5nm", ctx.Key())

	_, err = NewMonoContext(core.Nanometres(-1))
	require.Error(t, err)
}
