package core

import (
	"math"

	"github.com/aukilabs/go-tooling/pkg/errors"
)

// Dimension identifies the physical dimension of a quantity
type Dimension string

const (
	Length               Dimension = "length"
	Angle                Dimension = "angle"
	Dimensionless        Dimension = "dimensionless"
	Irradiance           Dimension = "irradiance"
	CollisionCoefficient Dimension = "collision_coefficient"
)

// Unit is a scale factor to the base unit of its dimension.
// Base units: metre, radian, W/m^2/nm, 1/m.
type Unit struct {
	Symbol string
	Dim    Dimension
	Scale  float64
}

var (
	Metre      = Unit{Symbol: "m", Dim: Length, Scale: 1}
	Kilometre  = Unit{Symbol: "km", Dim: Length, Scale: 1e3}
	Micrometre = Unit{Symbol: "um", Dim: Length, Scale: 1e-6}
	Nanometre  = Unit{Symbol: "nm", Dim: Length, Scale: 1e-9}

	Radian = Unit{Symbol: "rad", Dim: Angle, Scale: 1}
	Degree = Unit{Symbol: "deg", Dim: Angle, Scale: math.Pi / 180}

	Unitless = Unit{Symbol: "", Dim: Dimensionless, Scale: 1}

	WattPerSquareMetrePerNanometre = Unit{Symbol: "W/m^2/nm", Dim: Irradiance, Scale: 1}

	PerMetre     = Unit{Symbol: "1/m", Dim: CollisionCoefficient, Scale: 1}
	PerKilometre = Unit{Symbol: "1/km", Dim: CollisionCoefficient, Scale: 1e-3}
)

var unitsBySymbol = map[string]Unit{
	"m":        Metre,
	"km":       Kilometre,
	"um":       Micrometre,
	"nm":       Nanometre,
	"rad":      Radian,
	"deg":      Degree,
	"":         Unitless,
	"W/m^2/nm": WattPerSquareMetrePerNanometre,
	"1/m":      PerMetre,
	"1/km":     PerKilometre,
}

// ParseUnit resolves a unit symbol used in scene configurations
func ParseUnit(symbol string) (Unit, error) {
	unit, ok := unitsBySymbol[symbol]
	if !ok {
		return Unit{}, errors.New("unknown unit symbol").
			WithType(ErrTypeInvalidConfig).
			WithTag("unit", symbol)
	}
	return unit, nil
}

// KernelUnit returns the unit the rendering kernel expects for a dimension.
// Compiled dictionary values are always expressed in kernel units.
func KernelUnit(dim Dimension) Unit {
	switch dim {
	case Length:
		return Metre
	case Angle:
		return Radian
	case Irradiance:
		return WattPerSquareMetrePerNanometre
	case CollisionCoefficient:
		return PerMetre
	default:
		return Unitless
	}
}

// Quantity is a physical value carrying an explicit unit
type Quantity struct {
	Value float64
	Unit  Unit
}

// NewQuantity creates a quantity from a value and a unit
func NewQuantity(value float64, unit Unit) Quantity {
	return Quantity{Value: value, Unit: unit}
}

// Convenience constructors for the most common quantities
func Metres(v float64) Quantity     { return NewQuantity(v, Metre) }
func Kilometres(v float64) Quantity { return NewQuantity(v, Kilometre) }
func Nanometres(v float64) Quantity { return NewQuantity(v, Nanometre) }
func Degrees(v float64) Quantity    { return NewQuantity(v, Degree) }
func Radians(v float64) Quantity    { return NewQuantity(v, Radian) }
func Scalar(v float64) Quantity     { return NewQuantity(v, Unitless) }

// ConvertTo expresses the quantity in another unit of the same dimension.
// Mismatched dimensionality is a construction-time error, not a runtime one.
func (q Quantity) ConvertTo(unit Unit) (Quantity, error) {
	if q.Unit.Dim != unit.Dim {
		return Quantity{}, errors.New("quantity dimension mismatch").
			WithType(ErrTypeInvalidConfig).
			WithTag("from", string(q.Unit.Dim)).
			WithTag("to", string(unit.Dim))
	}
	return Quantity{Value: q.Value * q.Unit.Scale / unit.Scale, Unit: unit}, nil
}

// ValueAs returns the magnitude of the quantity expressed in the given unit
func (q Quantity) ValueAs(unit Unit) (float64, error) {
	converted, err := q.ConvertTo(unit)
	if err != nil {
		return 0, err
	}
	return converted.Value, nil
}

// MustValueAs is ValueAs for quantities whose dimension is already validated.
// It panics on dimension mismatch and is reserved for post-construction code
// paths where the dimension invariant is guaranteed by a factory.
func (q Quantity) MustValueAs(unit Unit) float64 {
	v, err := q.ValueAs(unit)
	if err != nil {
		panic(err)
	}
	return v
}

// Less compares two quantities of the same dimension
func (q Quantity) Less(other Quantity) (bool, error) {
	v, err := other.ValueAs(q.Unit)
	if err != nil {
		return false, err
	}
	return q.Value < v, nil
}
