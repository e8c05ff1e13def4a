package scene

import (
	"github.com/heliotrope-eo/heliotrope/pkg/atmosphere"
	"github.com/heliotrope-eo/heliotrope/pkg/bsdf"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/heliotrope-eo/heliotrope/pkg/illumination"
	"github.com/heliotrope-eo/heliotrope/pkg/measure"
	"github.com/heliotrope-eo/heliotrope/pkg/spectral"
	"github.com/heliotrope-eo/heliotrope/pkg/spectrum"
	"github.com/heliotrope-eo/heliotrope/pkg/surface"
)

// NewDefaultScene creates a ready-made observation scene: a 50% reflective
// Lambertian surface under a homogeneous Rayleigh atmosphere, solar
// illumination at 30 degrees zenith, observed by a nadir plus two oblique
// viewing directions at 550 nm.
func NewDefaultScene() (*Scene, error) {
	reflectance, err := spectrum.NewUniform("", core.Scalar(0.5))
	if err != nil {
		return nil, err
	}
	lambertian, err := bsdf.NewLambertian(surface.BSDFID("surface"), reflectance)
	if err != nil {
		return nil, err
	}
	surf, err := surface.NewBasic("surface", core.Quantity{}, lambertian)
	if err != nil {
		return nil, err
	}

	sigmaS, err := spectrum.NewAirScattering(atmosphere.SigmaSID("atmosphere"))
	if err != nil {
		return nil, err
	}
	sigmaA, err := spectrum.NewUniform(atmosphere.SigmaAID("atmosphere"), core.NewQuantity(0, core.PerKilometre))
	if err != nil {
		return nil, err
	}
	atm, err := atmosphere.NewHomogeneous("atmosphere", core.Kilometres(0), core.Kilometres(10), sigmaS, sigmaA, nil, nil)
	if err != nil {
		return nil, err
	}

	sun, err := illumination.NewDirectional("illumination", core.Degrees(30), core.Degrees(0), nil)
	if err != nil {
		return nil, err
	}

	spectralCfg, err := spectral.NewMonoConfig(core.Nanometres(550))
	if err != nil {
		return nil, err
	}
	angles := []measure.ViewingAngle{
		{Zenith: core.Degrees(0), Azimuth: core.Degrees(0)},
		{Zenith: core.Degrees(30), Azimuth: core.Degrees(0)},
		{Zenith: core.Degrees(60), Azimuth: core.Degrees(0)},
	}
	target := measure.NewPointTarget(core.NewVec3(0, 0, 0))
	m, err := measure.NewMultiDistant("measure", angles, target, spectralCfg, 0)
	if err != nil {
		return nil, err
	}

	return New(Params{
		Surface:       surf,
		Atmosphere:    atm,
		Illuminations: []illumination.Illumination{sun},
		Measures:      []measure.Measure{m},
	})
}
