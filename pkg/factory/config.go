// Package factory provides the typed construction machinery turning
// user-facing configuration mappings into scene element instances.
package factory

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
)

// TypeKey is the reserved configuration key holding the type discriminator
const TypeKey = "type"

// Config is a configuration mapping, typically decoded from JSON. Values are
// scalars, nested mappings or lists.
type Config map[string]any

// Has reports whether a key is present
func (c Config) Has(key string) bool {
	_, ok := c[key]
	return ok
}

// Rest returns a copy of the config without the reserved type key
func (c Config) Rest() Config {
	rest := make(Config, len(c))
	for key, value := range c {
		if key == TypeKey {
			continue
		}
		rest[key] = value
	}
	return rest
}

func missingKey(key string) error {
	return errors.New("missing configuration key").
		WithType(core.ErrTypeInvalidConfig).
		WithTag("key", key)
}

func badKind(key string, want string, got any) error {
	return errors.Newf("configuration key is not a %s", want).
		WithType(core.ErrTypeInvalidConfig).
		WithTag("key", key).
		WithTag("value", got)
}

// String returns a required string value
func (c Config) String(key string) (string, error) {
	raw, ok := c[key]
	if !ok {
		return "", missingKey(key)
	}
	s, ok := raw.(string)
	if !ok {
		return "", badKind(key, "string", raw)
	}
	return s, nil
}

// StringOr returns a string value or a default when the key is absent
func (c Config) StringOr(key, fallback string) (string, error) {
	if !c.Has(key) {
		return fallback, nil
	}
	return c.String(key)
}

func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// Float returns a required numeric value
func (c Config) Float(key string) (float64, error) {
	raw, ok := c[key]
	if !ok {
		return 0, missingKey(key)
	}
	f, ok := toFloat(raw)
	if !ok {
		return 0, badKind(key, "number", raw)
	}
	return f, nil
}

// FloatOr returns a numeric value or a default when the key is absent
func (c Config) FloatOr(key string, fallback float64) (float64, error) {
	if !c.Has(key) {
		return fallback, nil
	}
	return c.Float(key)
}

// Int returns a required integer value
func (c Config) Int(key string) (int, error) {
	f, err := c.Float(key)
	if err != nil {
		return 0, err
	}
	i := int(f)
	if float64(i) != f {
		return 0, badKind(key, "integer", f)
	}
	return i, nil
}

// IntOr returns an integer value or a default when the key is absent
func (c Config) IntOr(key string, fallback int) (int, error) {
	if !c.Has(key) {
		return fallback, nil
	}
	return c.Int(key)
}

// Floats returns a required list of numbers
func (c Config) Floats(key string) ([]float64, error) {
	raw, ok := c[key]
	if !ok {
		return nil, missingKey(key)
	}

	switch list := raw.(type) {
	case []float64:
		result := make([]float64, len(list))
		copy(result, list)
		return result, nil
	case []any:
		result := make([]float64, len(list))
		for i, item := range list {
			f, ok := toFloat(item)
			if !ok {
				return nil, badKind(key, "number list", raw)
			}
			result[i] = f
		}
		return result, nil
	default:
		return nil, badKind(key, "number list", raw)
	}
}

// Vec3 returns a required 3-component vector
func (c Config) Vec3(key string) (core.Vec3, error) {
	values, err := c.Floats(key)
	if err != nil {
		return core.Vec3{}, err
	}
	if len(values) != 3 {
		return core.Vec3{}, errors.New("configuration key is not a 3-component vector").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("key", key).
			WithTag("components", len(values))
	}
	return core.NewVec3(values[0], values[1], values[2]), nil
}

// Sub returns a required nested configuration mapping
func (c Config) Sub(key string) (Config, error) {
	raw, ok := c[key]
	if !ok {
		return nil, missingKey(key)
	}
	switch m := raw.(type) {
	case Config:
		return m, nil
	case map[string]any:
		return Config(m), nil
	default:
		return nil, badKind(key, "mapping", raw)
	}
}

// SubList returns a required list of nested configuration mappings
func (c Config) SubList(key string) ([]Config, error) {
	raw, ok := c[key]
	if !ok {
		return nil, missingKey(key)
	}

	switch list := raw.(type) {
	case []Config:
		result := make([]Config, len(list))
		copy(result, list)
		return result, nil
	case []any:
		result := make([]Config, len(list))
		for i, item := range list {
			m, ok := item.(map[string]any)
			if !ok {
				if cfg, ok := item.(Config); ok {
					result[i] = cfg
					continue
				}
				return nil, badKind(key, "mapping list", raw)
			}
			result[i] = Config(m)
		}
		return result, nil
	default:
		return nil, badKind(key, "mapping list", raw)
	}
}

// Quantity returns a required physical quantity. A bare number is interpreted
// in the given default unit; a mapping carries explicit "value" and "unit"
// keys whose unit must match the default unit's dimension.
func (c Config) Quantity(key string, defaultUnit core.Unit) (core.Quantity, error) {
	raw, ok := c[key]
	if !ok {
		return core.Quantity{}, missingKey(key)
	}

	if f, ok := toFloat(raw); ok {
		return core.NewQuantity(f, defaultUnit), nil
	}

	sub, err := c.Sub(key)
	if err != nil {
		return core.Quantity{}, badKind(key, "quantity", raw)
	}

	value, err := sub.Float("value")
	if err != nil {
		return core.Quantity{}, errors.New("invalid quantity value").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("key", key).
			Wrap(err)
	}
	symbol, err := sub.String("unit")
	if err != nil {
		return core.Quantity{}, errors.New("invalid quantity unit").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("key", key).
			Wrap(err)
	}
	unit, err := core.ParseUnit(symbol)
	if err != nil {
		return core.Quantity{}, err
	}
	if unit.Dim != defaultUnit.Dim {
		return core.Quantity{}, errors.New("quantity dimension mismatch").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("key", key).
			WithTag("want", string(defaultUnit.Dim)).
			WithTag("got", string(unit.Dim))
	}

	return core.NewQuantity(value, unit), nil
}

// QuantityOr returns a physical quantity or a default when the key is absent
func (c Config) QuantityOr(key string, fallback core.Quantity) (core.Quantity, error) {
	if !c.Has(key) {
		return fallback, nil
	}
	return c.Quantity(key, fallback.Unit)
}
