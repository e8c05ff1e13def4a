package spectral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewGaussLegendre(t *testing.T) {
	t.Run("two points", func(t *testing.T) {
		q, err := NewGaussLegendre(2)
		require.NoError(t, err)

		node := 1 / math.Sqrt(3)
		require.InDelta(t, -node, q.Nodes[0], 1e-12)
		require.InDelta(t, node, q.Nodes[1], 1e-12)
		require.InDelta(t, 1, q.Weights[0], 1e-12)
		require.InDelta(t, 1, q.Weights[1], 1e-12)
	})

	t.Run("nodes ascend and weights sum to two", func(t *testing.T) {
		for _, n := range []int{1, 3, 5, 8, 16} {
			q, err := NewGaussLegendre(n)
			require.NoError(t, err)
			require.Len(t, q.Nodes, n)

			sum := 0.0
			for i, w := range q.Weights {
				sum += w
				if i > 0 {
					require.Greater(t, q.Nodes[i], q.Nodes[i-1])
				}
			}
			require.InDelta(t, 2, sum, 1e-12)
		}
	})

	t.Run("invalid count", func(t *testing.T) {
		_, err := NewGaussLegendre(0)
		require.Error(t, err)
	})
}

func TestNewGaussLobatto(t *testing.T) {
	q, err := NewGaussLobatto(3)
	require.NoError(t, err)

	// The 3-point rule is (-1, 0, 1) with weights (1/3, 4/3, 1/3)
	require.InDelta(t, -1, q.Nodes[0], 1e-12)
	require.InDelta(t, 0, q.Nodes[1], 1e-12)
	require.InDelta(t, 1, q.Nodes[2], 1e-12)
	require.InDelta(t, 1.0/3, q.Weights[0], 1e-12)
	require.InDelta(t, 4.0/3, q.Weights[1], 1e-12)
	require.InDelta(t, 1.0/3, q.Weights[2], 1e-12)
}

func TestQuad_Integrate(t *testing.T) {
	// 3-point Gauss-Legendre integrates degree-5 polynomials exactly
	q, err := NewGaussLegendre(3)
	require.NoError(t, err)

	a, b := 2.0, 5.0
	nodes := q.EvalNodes(a, b)
	values := make([]float64, len(nodes))
	for i, x := range nodes {
		values[i] = x*x*x - 2*x
	}

	got, err := q.Integrate(values, a, b)
	require.NoError(t, err)

	exact := (math.Pow(b, 4)/4 - b*b) - (math.Pow(a, 4)/4 - a*a)
	require.InDelta(t, exact, got, 1e-9)
}

func TestNewQuad(t *testing.T) {
	q, err := NewQuad(GaussLobatto, 4)
	require.NoError(t, err)
	require.Equal(t, GaussLobatto, q.Type)
	require.Equal(t, 4, q.N())

	_, err = NewQuad("simpson", 4)
	require.Error(t, err)
}
