package spectrum

import (
	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/heliotrope-eo/heliotrope/pkg/kernel"
	"github.com/heliotrope-eo/heliotrope/pkg/spectral"
)

// Uniform is a spectrum with the same value at every wavelength
type Uniform struct {
	id    string
	value core.Quantity
}

// NewUniform creates a uniform spectrum
func NewUniform(id string, value core.Quantity) (*Uniform, error) {
	if id == "" {
		id = DefaultID
	}
	return &Uniform{id: id, value: value}, nil
}

func (s *Uniform) ID() string { return s.id }

func (s *Uniform) Dimension() core.Dimension { return s.value.Unit.Dim }

func (s *Uniform) Eval(spectral.Context) (core.Quantity, error) {
	return s.value, nil
}

func (s *Uniform) KernelDict(ctx spectral.Context) (*kernel.Dict, error) {
	return elementDict(s, ctx)
}
