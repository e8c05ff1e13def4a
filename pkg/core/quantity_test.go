package core

import (
	"math"
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestQuantity_ConvertTo(t *testing.T) {
	tests := []struct {
		name string
		q    Quantity
		unit Unit
		want float64
	}{
		{"km to m", Kilometres(1.5), Metre, 1500},
		{"m to km", Metres(250), Kilometre, 0.25},
		{"nm to m", Nanometres(550), Metre, 550e-9},
		{"deg to rad", Degrees(180), Radian, math.Pi},
		{"per km to per m", NewQuantity(10, PerKilometre), PerMetre, 0.01},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.q.ValueAs(tt.unit)
			require.NoError(t, err)
			require.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestQuantity_ConvertToDimensionMismatch(t *testing.T) {
	_, err := Metres(1).ConvertTo(Radian)
	require.Error(t, err)
	require.True(t, errors.IsType(err, ErrTypeInvalidConfig))
}

func TestQuantity_Less(t *testing.T) {
	less, err := Metres(500).Less(Kilometres(1))
	require.NoError(t, err)
	require.True(t, less)

	less, err = Kilometres(2).Less(Metres(500))
	require.NoError(t, err)
	require.False(t, less)

	_, err = Metres(1).Less(Degrees(1))
	require.Error(t, err)
}

func TestParseUnit(t *testing.T) {
	for _, symbol := range []string{"m", "km", "um", "nm", "rad", "deg", "", "W/m^2/nm", "1/m", "1/km"} {
		unit, err := ParseUnit(symbol)
		require.NoError(t, err)
		require.Equal(t, symbol, unit.Symbol)
	}

	_, err := ParseUnit("furlong")
	require.Error(t, err)
	require.True(t, errors.IsType(err, ErrTypeInvalidConfig))
}

func TestKernelUnit(t *testing.T) {
	require.Equal(t, Metre, KernelUnit(Length))
	require.Equal(t, Radian, KernelUnit(Angle))
	require.Equal(t, WattPerSquareMetrePerNanometre, KernelUnit(Irradiance))
	require.Equal(t, PerMetre, KernelUnit(CollisionCoefficient))
	require.Equal(t, Unitless, KernelUnit(Dimensionless))
}
