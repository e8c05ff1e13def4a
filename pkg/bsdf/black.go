package bsdf

import (
	"github.com/heliotrope-eo/heliotrope/pkg/factory"
	"github.com/heliotrope-eo/heliotrope/pkg/kernel"
	"github.com/heliotrope-eo/heliotrope/pkg/spectral"
)

// Black is a perfectly absorbing BSDF
type Black struct {
	id string
}

// NewBlack creates a black BSDF
func NewBlack(id string) *Black {
	if id == "" {
		id = DefaultID
	}
	return &Black{id: id}
}

func (b *Black) ID() string { return b.id }

func (b *Black) KernelValue(spectral.Context) (kernel.Value, error) {
	return kernel.NewDict().
		Set("type", "diffuse").
		Set("reflectance", kernel.NewDict().
			Set("type", "uniform").
			Set("value", 0.0)), nil
}

func (b *Black) KernelDict(ctx spectral.Context) (*kernel.Dict, error) {
	value, err := b.KernelValue(ctx)
	if err != nil {
		return nil, err
	}
	return kernel.NewDict().Set(b.id, value), nil
}

func buildBlack(cfg factory.Config) (BSDF, error) {
	id, err := cfg.StringOr("id", DefaultID)
	if err != nil {
		return nil, err
	}
	return NewBlack(id), nil
}
