package atmosphere

import (
	"math"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/heliotrope-eo/heliotrope/pkg/kernel"
	"github.com/heliotrope-eo/heliotrope/pkg/phase"
	"github.com/heliotrope-eo/heliotrope/pkg/radprops"
	"github.com/heliotrope-eo/heliotrope/pkg/shape"
	"github.com/heliotrope-eo/heliotrope/pkg/spectral"
)

// defaultLayerCount discretizes the vertical extent when none is configured
const defaultLayerCount = 32

// Molecular is a vertically stratified atmosphere whose radiative properties
// come from a profile provider. The vertical extent is discretized into
// uniform layers; each layer is assigned the provider's coefficients sampled
// at its mid altitude.
type Molecular struct {
	id       string
	bottom   core.Quantity
	top      core.Quantity
	provider radprops.Provider
	layers   int
	phase    phase.Function
	stencil  shape.Shape
}

// NewMolecular creates a molecular atmosphere backed by the given profile
// provider
func NewMolecular(id string, bottom, top core.Quantity, provider radprops.Provider, layers int, geometry Geometry) (*Molecular, error) {
	if id == "" {
		id = DefaultID
	}
	if geometry == nil {
		geometry = PlaneParallel{}
	}
	if provider == nil {
		return nil, errors.New("molecular atmosphere requires a radiative property provider").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("id", id)
	}
	if layers == 0 {
		layers = defaultLayerCount
	}
	if layers < 1 {
		return nil, errors.New("layer count must be positive").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("id", id).
			WithTag("layers", layers)
	}

	bottomM, topM, err := verticalExtent(id, bottom, top)
	if err != nil {
		return nil, err
	}

	mfpM, err := profileMeanFreePath(provider, bottom)
	if err != nil {
		return nil, err
	}
	stencil, err := geometry.stencil(id, bottomM, topM, mfpM, MediumID(id))
	if err != nil {
		return nil, err
	}

	return &Molecular{
		id:       id,
		bottom:   bottom,
		top:      top,
		provider: provider,
		layers:   layers,
		phase:    phase.NewRayleigh(PhaseID(id)),
		stencil:  stencil,
	}, nil
}

// profileMeanFreePath estimates the scattering mean free path at the bottom
// of the profile and the reference wavelength
func profileMeanFreePath(provider radprops.Provider, bottom core.Quantity) (float64, error) {
	sigmaS, err := provider.Scattering(referenceWavelength, bottom)
	if err != nil {
		return 0, err
	}
	perMetre, err := sigmaS.ValueAs(core.PerMetre)
	if err != nil {
		return 0, err
	}
	if perMetre <= 0 {
		return math.Inf(1), nil
	}
	return 1 / perMetre, nil
}

func (a *Molecular) ID() string { return a.id }

func (a *Molecular) Bottom() core.Quantity { return a.bottom }

func (a *Molecular) Top() core.Quantity { return a.top }

func (a *Molecular) BoundingBox() core.AABB { return a.stencil.BoundingBox() }

func (a *Molecular) KernelDict(ctx spectral.Context) (*kernel.Dict, error) {
	d := kernel.NewDict()

	if err := d.Add(ctx, a.phase); err != nil {
		return nil, err
	}

	sigmaT, albedo, err := a.layerCoefficients(ctx.Wavelength())
	if err != nil {
		return nil, err
	}

	bottomM := a.bottom.MustValueAs(core.Metre)
	topM := a.top.MustValueAs(core.Metre)
	if err := d.Insert(MediumID(a.id), kernel.NewDict().
		Set("type", "heterogeneous").
		Set("bottom", bottomM).
		Set("top", topM).
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

// layerCoefficients samples the provider at each layer's mid altitude and
// returns per-layer extinction coefficients and single scattering albedos,
// ordered bottom to top
func (a *Molecular) layerCoefficients(wavelength core.Quantity) (sigmaT, albedo []float64, err error) {
	bottomM := a.bottom.MustValueAs(core.Metre)
	topM := a.top.MustValueAs(core.Metre)
	widthM := (topM - bottomM) / float64(a.layers)

	sigmaT = make([]float64, a.layers)
	albedo = make([]float64, a.layers)
	for i := range sigmaT {
		mid := core.Metres(bottomM + (float64(i)+0.5)*widthM)

		scattering, err := a.provider.Scattering(wavelength, mid)
		if err != nil {
			return nil, nil, err
		}
		absorption, err := a.provider.Absorption(wavelength, mid)
		if err != nil {
			return nil, nil, err
		}
		s, err := scattering.ValueAs(core.PerMetre)
		if err != nil {
			return nil, nil, err
		}
		k, err := absorption.ValueAs(core.PerMetre)
		if err != nil {
			return nil, nil, err
		}

		sigmaT[i] = s + k
		if sigmaT[i] > 0 {
			albedo[i] = s / sigmaT[i]
		}
	}
	return sigmaT, albedo, nil
}
