package surface

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/heliotrope-eo/heliotrope/pkg/bsdf"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/heliotrope-eo/heliotrope/pkg/factory"
	"github.com/heliotrope-eo/heliotrope/pkg/kernel"
	"github.com/heliotrope-eo/heliotrope/pkg/shape"
	"github.com/heliotrope-eo/heliotrope/pkg/spectral"
)

// patchLiftM keeps the patch off the background plane so the kernel never
// sees two coplanar shapes
const patchLiftM = 1e-4

// CentralPatch is a surface whose central square region carries a different
// scattering model than the background
type CentralPatch struct {
	id         string
	width      core.Quantity
	patchWidth core.Quantity
	auto       bool
	patchAuto  bool
	background bsdf.BSDF
	patch      bsdf.BSDF
	ground     *shape.Rectangle
	inset      *shape.Rectangle
}

// NewCentralPatch creates a central patch surface. A zero width leaves the
// horizontal extent unspecified; a zero patch width defaults to a third of
// the surface width.
func NewCentralPatch(id string, width, patchWidth core.Quantity, background, patch bsdf.BSDF) (*CentralPatch, error) {
	if id == "" {
		id = DefaultID
	}
	if background == nil || patch == nil {
		return nil, errors.New("central patch surface requires background and patch scattering models").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("id", id)
	}

	auto := width == core.Quantity{}
	widthM := defaultWidthM
	if !auto {
		var err error
		widthM, err = width.ValueAs(core.Metre)
		if err != nil {
			return nil, err
		}
		if widthM <= 0 {
			return nil, errors.New("surface width must be positive").
				WithType(core.ErrTypeInvalidConfig).
				WithTag("id", id).
				WithTag("width_m", widthM)
		}
	}

	patchAuto := patchWidth == core.Quantity{}
	patchM := widthM / 3
	if !patchAuto {
		var err error
		patchM, err = patchWidth.ValueAs(core.Metre)
		if err != nil {
			return nil, err
		}
	}
	if patchM <= 0 || patchM >= widthM {
		return nil, errors.New("patch width must be positive and smaller than the surface width").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("id", id).
			WithTag("width_m", widthM).
			WithTag("patch_width_m", patchM)
	}

	ground, err := shape.NewRectangle(ShapeID(id), core.NewVec3(0, 0, 0), widthM, widthM, shape.RefBSDF(background.ID()))
	if err != nil {
		return nil, err
	}
	inset, err := shape.NewRectangle(ShapeID(id)+"_patch", core.NewVec3(0, 0, patchLiftM), patchM, patchM, shape.RefBSDF(patch.ID()))
	if err != nil {
		return nil, err
	}

	return &CentralPatch{
		id:         id,
		width:      core.Metres(widthM),
		patchWidth: core.Metres(patchM),
		auto:       auto,
		patchAuto:  patchAuto,
		background: background,
		patch:      patch,
		ground:     ground,
		inset:      inset,
	}, nil
}

func (s *CentralPatch) ID() string { return s.id }

func (s *CentralPatch) AutoWidth() bool { return s.auto }

// WithWidth resizes the surface. An auto-sized patch keeps tracking a third
// of the new width; an explicit patch width is preserved.
func (s *CentralPatch) WithWidth(width core.Quantity) (Surface, error) {
	patchWidth := s.patchWidth
	if s.patchAuto {
		patchWidth = core.Quantity{}
	}
	return NewCentralPatch(s.id, width, patchWidth, s.background, s.patch)
}

func (s *CentralPatch) BoundingBox() core.AABB {
	return s.ground.BoundingBox().Union(s.inset.BoundingBox())
}

func (s *CentralPatch) KernelDict(ctx spectral.Context) (*kernel.Dict, error) {
	d := kernel.NewDict()
	for _, b := range []bsdf.BSDF{s.background, s.patch} {
		value, err := b.KernelValue(ctx)
		if err != nil {
			return nil, err
		}
		if err := d.Insert(b.ID(), value); err != nil {
			return nil, err
		}
	}
	if err := d.Add(ctx, s.ground, s.inset); err != nil {
		return nil, err
	}
	return d, nil
}

func buildCentralPatch(cfg factory.Config, bsdfs *factory.Registry[bsdf.BSDF]) (Surface, error) {
	id, err := cfg.StringOr("id", DefaultID)
	if err != nil {
		return nil, err
	}
	width, err := surfaceWidth(cfg)
	if err != nil {
		return nil, err
	}
	var patchWidth core.Quantity
	if cfg.Has("patch_width") {
		patchWidth, err = cfg.Quantity("patch_width", core.Metre)
		if err != nil {
			return nil, err
		}
	}
	background, err := surfaceBSDF(cfg, "bsdf", BSDFID(id), bsdfs)
	if err != nil {
		return nil, err
	}
	patch, err := surfaceBSDF(cfg, "patch_bsdf", BSDFID(id)+"_patch", bsdfs)
	if err != nil {
		return nil, err
	}
	return NewCentralPatch(id, width, patchWidth, background, patch)
}
