package spectral

import (
	"strconv"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
)

// Mode identifies the spectral discretization strategy
type Mode string

const (
	// ModeMono evaluates the scene at individual wavelengths
	ModeMono Mode = "mono"
	// ModeCKD evaluates the scene at correlated-k quadrature points
	ModeCKD Mode = "ckd"
)

// Context describes one spectral evaluation point. Scene elements use it to
// parameterize their kernel dictionary contributions; it never affects
// geometry.
type Context interface {
	// Mode returns the spectral mode the context belongs to.
	Mode() Mode

	// Wavelength returns the evaluation wavelength. In CKD mode this is the
	// central wavelength of the context's bin.
	Wavelength() core.Quantity

	// Key returns a stable identifier for the context, unique within the
	// measure spectral config that produced it. Result aggregation keys raw
	// kernel samples with it.
	Key() string
}

// MonoContext is a monochromatic evaluation point
type MonoContext struct {
	wavelength core.Quantity
}

// NewMonoContext creates a context for a single wavelength
func NewMonoContext(wavelength core.Quantity) (MonoContext, error) {
	w, err := wavelength.ValueAs(core.Nanometre)
	if err != nil {
		return MonoContext{}, errors.New("invalid wavelength").
			WithType(core.ErrTypeInvalidConfig).
			Wrap(err)
	}
	if w <= 0 {
		return MonoContext{}, errors.New("wavelength must be positive").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("wavelength_nm", w)
	}
	return MonoContext{wavelength: wavelength}, nil
}

func (c MonoContext) Mode() Mode { return ModeMono }

func (c MonoContext) Wavelength() core.Quantity { return c.wavelength }

func (c MonoContext) Key() string {
	return formatWavelength(c.wavelength.MustValueAs(core.Nanometre)) + "nm"
}

// CKDContext is one (bin, quadrature point) evaluation point
type CKDContext struct {
	bin   Bin
	index int
}

// NewCKDContext creates a context for a bin and a quadrature point index
func NewCKDContext(bin Bin, index int) (CKDContext, error) {
	if index < 0 || index >= bin.Quad.N() {
		return CKDContext{}, errors.New("quadrature index out of range").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("bin", bin.ID).
			WithTag("index", index).
			WithTag("n", bin.Quad.N())
	}
	return CKDContext{bin: bin, index: index}, nil
}

func (c CKDContext) Mode() Mode { return ModeCKD }

// Wavelength returns the central wavelength of the context's bin
func (c CKDContext) Wavelength() core.Quantity { return c.bin.Center() }

func (c CKDContext) Key() string {
	return c.bin.ID + "-" + strconv.Itoa(c.index)
}

// Bin returns the bin the context was derived from
func (c CKDContext) Bin() Bin { return c.bin }

// Index returns the quadrature point index within the bin
func (c CKDContext) Index() int { return c.index }

// Node returns the quadrature node associated with the context
func (c CKDContext) Node() float64 { return c.bin.Quad.Nodes[c.index] }

// Weight returns the quadrature weight downstream aggregation applies to the
// kernel samples computed under this context
func (c CKDContext) Weight() float64 { return c.bin.Quad.Weights[c.index] }

func formatWavelength(nm float64) string {
	return strconv.FormatFloat(nm, 'f', -1, 64)
}
