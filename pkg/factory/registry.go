package factory

import (
	"reflect"
	"sort"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
)

// Builder constructs an element of category T from a configuration mapping.
// The mapping passed to a builder no longer contains the reserved type key.
type Builder[T any] func(cfg Config) (T, error)

// Registry maps type discriminators to builders for one scene element
// category. Registries are explicit values built at startup and passed to
// configuration-loading call sites; registration is additive and idempotent.
type Registry[T any] struct {
	category string
	builders map[string]Builder[T]
}

// NewRegistry creates an empty registry for the named element category
func NewRegistry[T any](category string) *Registry[T] {
	return &Registry[T]{
		category: category,
		builders: make(map[string]Builder[T]),
	}
}

// Category returns the element category the registry serves
func (r *Registry[T]) Category() string {
	return r.category
}

// Register associates a type discriminator with a builder. Re-registering
// the same tag with the identical builder is a no-op; re-registering it with
// a different builder is an error.
func (r *Registry[T]) Register(tag string, builder Builder[T]) error {
	if builder == nil {
		return errors.New("nil builder").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("category", r.category).
			WithTag("type", tag)
	}

	if existing, ok := r.builders[tag]; ok {
		if reflect.ValueOf(existing).Pointer() == reflect.ValueOf(builder).Pointer() {
			return nil
		}
		return errors.New("type already registered with a different builder").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("category", r.category).
			WithTag("type", tag)
	}

	r.builders[tag] = builder
	return nil
}

// MustRegister is Register for startup wiring where a registration conflict
// is a programming error
func (r *Registry[T]) MustRegister(tag string, builder Builder[T]) {
	if err := r.Register(tag, builder); err != nil {
		panic(err)
	}
}

// Create reads the reserved type key from the configuration, looks up the
// builder and invokes it with the remaining keys
func (r *Registry[T]) Create(cfg Config) (T, error) {
	var zero T

	tag, err := cfg.String(TypeKey)
	if err != nil {
		return zero, errors.New("missing type discriminator").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("category", r.category).
			Wrap(err)
	}

	builder, ok := r.builders[tag]
	if !ok {
		return zero, errors.New("no builder registered for type").
			WithType(core.ErrTypeUnknownType).
			WithTag("category", r.category).
			WithTag("type", tag)
	}

	element, err := builder(cfg.Rest())
	if err != nil {
		return zero, errors.New("building element failed").
			WithTag("category", r.category).
			WithTag("type", tag).
			Wrap(err)
	}
	return element, nil
}

// Tags returns the registered discriminators in lexical order
func (r *Registry[T]) Tags() []string {
	tags := make([]string, 0, len(r.builders))
	for tag := range r.builders {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
