package atmosphere

import (
	"math"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/heliotrope-eo/heliotrope/pkg/kernel"
	"github.com/heliotrope-eo/heliotrope/pkg/phase"
	"github.com/heliotrope-eo/heliotrope/pkg/shape"
	"github.com/heliotrope-eo/heliotrope/pkg/spectral"
	"github.com/heliotrope-eo/heliotrope/pkg/spectrum"
)

// Reference wavelength used for geometry auto-sizing. Geometry must not vary
// with the spectral context, so the mean free path estimate is pinned here.
var referenceWavelength = core.Nanometres(550)

// Homogeneous is an atmosphere with uniform scattering and absorption
// coefficients. Its stencil, and therefore its bounding box, is fixed at
// construction; only the medium coefficients vary with the spectral context.
type Homogeneous struct {
	id      string
	bottom  core.Quantity
	top     core.Quantity
	sigmaS  spectrum.Spectrum
	sigmaA  spectrum.Spectrum
	phase   phase.Function
	stencil shape.Shape
}

// NewHomogeneous creates a homogeneous atmosphere. Both coefficient spectra
// must carry the collision coefficient dimension.
func NewHomogeneous(id string, bottom, top core.Quantity, sigmaS, sigmaA spectrum.Spectrum, phaseFn phase.Function, geometry Geometry) (*Homogeneous, error) {
	if id == "" {
		id = DefaultID
	}
	if geometry == nil {
		geometry = PlaneParallel{}
	}
	if phaseFn == nil {
		phaseFn = phase.NewRayleigh(PhaseID(id))
	}

	for name, s := range map[string]spectrum.Spectrum{"sigma_s": sigmaS, "sigma_a": sigmaA} {
		if s.Dimension() != core.CollisionCoefficient {
			return nil, errors.New("coefficient spectrum must be a collision coefficient").
				WithType(core.ErrTypeInvalidConfig).
				WithTag("id", id).
				WithTag("coefficient", name).
				WithTag("dimension", string(s.Dimension()))
		}
	}

	bottomM, topM, err := verticalExtent(id, bottom, top)
	if err != nil {
		return nil, err
	}

	mfpM, err := meanFreePath(sigmaS)
	if err != nil {
		return nil, err
	}
	stencil, err := geometry.stencil(id, bottomM, topM, mfpM, MediumID(id))
	if err != nil {
		return nil, err
	}

	return &Homogeneous{
		id:      id,
		bottom:  bottom,
		top:     top,
		sigmaS:  sigmaS,
		sigmaA:  sigmaA,
		phase:   phaseFn,
		stencil: stencil,
	}, nil
}

// meanFreePath estimates the scattering mean free path at the reference
// wavelength, +Inf for a non-scattering medium
func meanFreePath(sigmaS spectrum.Spectrum) (float64, error) {
	ctx, err := spectral.NewMonoContext(referenceWavelength)
	if err != nil {
		return 0, err
	}
	value, err := sigmaS.Eval(ctx)
	if err != nil {
		return 0, err
	}
	perMetre, err := value.ValueAs(core.PerMetre)
	if err != nil {
		return 0, err
	}
	if perMetre <= 0 {
		return math.Inf(1), nil
	}
	return 1 / perMetre, nil
}

func (a *Homogeneous) ID() string { return a.id }

func (a *Homogeneous) Bottom() core.Quantity { return a.bottom }

func (a *Homogeneous) Top() core.Quantity { return a.top }

func (a *Homogeneous) BoundingBox() core.AABB { return a.stencil.BoundingBox() }

func (a *Homogeneous) KernelDict(ctx spectral.Context) (*kernel.Dict, error) {
	d := kernel.NewDict()

	if err := d.Add(ctx, a.phase); err != nil {
		return nil, err
	}

	sigmaS, err := evalCoefficient(a.sigmaS, ctx)
	if err != nil {
		return nil, err
	}
	sigmaA, err := evalCoefficient(a.sigmaA, ctx)
	if err != nil {
		return nil, err
	}
	sigmaT := sigmaS + sigmaA
	albedo := 0.0
	if sigmaT > 0 {
		albedo = sigmaS / sigmaT
	}

	if err := d.Insert(MediumID(a.id), kernel.NewDict().
		Set("type", "homogeneous").
		Set("sigma_t", sigmaT).
		Set("albedo", albedo).
		Set("phase", kernel.NewRef(a.phase.ID()))); err != nil {
		return nil, err
	}

	if err := d.Add(ctx, a.stencil); err != nil {
		return nil, err
	}
	return d, nil
}

func evalCoefficient(s spectrum.Spectrum, ctx spectral.Context) (float64, error) {
	value, err := s.Eval(ctx)
	if err != nil {
		return 0, err
	}
	return value.ValueAs(core.PerMetre)
}
