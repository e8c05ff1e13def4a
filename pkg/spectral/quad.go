// Package spectral provides the spectral discretization used to drive scene
// compilation: quadrature rules, CKD bins and the spectral contexts measures
// are evaluated at.
package spectral

import (
	"math"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
)

// QuadType identifies a quadrature rule family
type QuadType string

const (
	GaussLegendre QuadType = "gauss_legendre"
	GaussLobatto  QuadType = "gauss_lobatto"
)

// Quad stores a quadrature rule. Nodes and weights are defined on the
// [-1, 1] reference interval.
type Quad struct {
	Type    QuadType
	Nodes   []float64
	Weights []float64
}

const newtonTolerance = 1e-14

// NewQuad creates a quadrature rule of the given type with n points
func NewQuad(quadType QuadType, n int) (Quad, error) {
	switch quadType {
	case GaussLegendre:
		return NewGaussLegendre(n)
	case GaussLobatto:
		return NewGaussLobatto(n)
	default:
		return Quad{}, errors.New("unknown quadrature type").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("quadrature_type", string(quadType))
	}
}

// NewGaussLegendre creates an n-point Gauss-Legendre rule
func NewGaussLegendre(n int) (Quad, error) {
	if n < 1 {
		return Quad{}, errors.New("gauss-legendre rule needs at least one point").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("n", n)
	}

	nodes := make([]float64, n)
	weights := make([]float64, n)

	// Nodes are the roots of P_n, refined by Newton iteration from the
	// Chebyshev-based initial guess. Roots are symmetric about zero, so only
	// the first half is computed.
	for i := 0; i < (n+1)/2; i++ {
		x := math.Cos(math.Pi * (float64(i) + 0.75) / (float64(n) + 0.5))

		var dp float64
		for iter := 0; iter < 100; iter++ {
			p, d := legendre(n, x)
			dp = d
			dx := p / d
			x -= dx
			if math.Abs(dx) < newtonTolerance {
				break
			}
		}

		w := 2.0 / ((1.0 - x*x) * dp * dp)
		nodes[i] = -x
		weights[i] = w
		nodes[n-1-i] = x
		weights[n-1-i] = w
	}

	return Quad{Type: GaussLegendre, Nodes: nodes, Weights: weights}, nil
}

// NewGaussLobatto creates an n-point Gauss-Lobatto rule. The rule includes
// both interval endpoints, so it needs at least two points.
func NewGaussLobatto(n int) (Quad, error) {
	if n < 2 {
		return Quad{}, errors.New("gauss-lobatto rule needs at least two points").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("n", n)
	}

	nodes := make([]float64, n)
	weights := make([]float64, n)
	m := n - 1

	endpointWeight := 2.0 / float64(n*m)
	nodes[0], weights[0] = -1, endpointWeight
	nodes[m], weights[m] = 1, endpointWeight

	// Interior nodes are the roots of P'_{n-1}
	for i := 1; i < m; i++ {
		x := math.Cos(math.Pi * float64(i) / float64(m))

		for iter := 0; iter < 100; iter++ {
			p, d := legendre(m, x)
			// P''_m from the Legendre differential equation
			d2 := (2*x*d - float64(m*(m+1))*p) / (1 - x*x)
			dx := d / d2
			x -= dx
			if math.Abs(dx) < newtonTolerance {
				break
			}
		}

		p, _ := legendre(m, x)
		nodes[m-i] = x
		weights[m-i] = 2.0 / (float64(n*m) * p * p)
	}

	return Quad{Type: GaussLobatto, Nodes: nodes, Weights: weights}, nil
}

// legendre evaluates the Legendre polynomial P_n and its derivative at x
func legendre(n int, x float64) (p, dp float64) {
	p0, p1 := 1.0, x
	if n == 0 {
		return p0, 0
	}
	for k := 2; k <= n; k++ {
		p0, p1 = p1, ((2*float64(k)-1)*x*p1-(float64(k)-1)*p0)/float64(k)
	}
	return p1, float64(n) * (x*p1 - p0) / (x*x - 1)
}

// N returns the number of quadrature points
func (q Quad) N() int {
	return len(q.Nodes)
}

// EvalNodes returns the rule's nodes scaled to the [a, b] interval
func (q Quad) EvalNodes(a, b float64) []float64 {
	scaled := make([]float64, len(q.Nodes))
	for i, x := range q.Nodes {
		scaled[i] = 0.5 * (a + b + (b-a)*x)
	}
	return scaled
}

// Integrate evaluates the rule on function values sampled at the scaled
// nodes, accounting for interval scaling. Weights are applied positionally.
func (q Quad) Integrate(values []float64, a, b float64) (float64, error) {
	if len(values) != len(q.Weights) {
		return 0, errors.New("value count does not match quadrature size").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("values", len(values)).
			WithTag("n", len(q.Weights))
	}

	var sum float64
	for i, w := range q.Weights {
		sum += w * values[i]
	}
	return 0.5 * (b - a) * sum, nil
}
