// Package kernel assembles the nested key-value dictionaries consumed by the
// external rendering kernel. A Dict is created fresh per spectral context,
// populated by a single traversal of the scene element graph, then handed off
// immutable to the kernel.
package kernel

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
	"github.com/heliotrope-eo/heliotrope/pkg/spectral"
)

// Value is a kernel dictionary value: a scalar (float64, int, bool, string),
// a []float64 vector, a nested *Dict or a Ref to another top-level entry.
type Value any

// Ref is a named reference to another top-level dictionary entry
type Ref struct {
	ID string
}

// NewRef creates a reference to the entry with the given identifier
func NewRef(id string) Ref {
	return Ref{ID: id}
}

// Element is the capability interface implemented by every constructible
// scene element. Elements are immutable after construction; only their
// dictionary contribution varies with the spectral context.
type Element interface {
	// ID returns the element's identifier, unique within a compiled scene.
	ID() string

	// KernelDict returns the element's dictionary contribution for the given
	// spectral context. Composite elements aggregate child contributions
	// before adding their own.
	KernelDict(ctx spectral.Context) (*Dict, error)
}

// Spatial is implemented by elements with a spatial extent. The reported box
// must remain valid for every spectral context the element can be asked to
// contribute under: spectral variation affects optical properties, never
// geometry.
type Spatial interface {
	BoundingBox() core.AABB
}

// Dict is an insertion-ordered mapping from string keys to kernel values
type Dict struct {
	keys   []string
	values map[string]Value
}

// NewDict creates an empty kernel dictionary
func NewDict() *Dict {
	return &Dict{values: make(map[string]Value)}
}

// Set stores a value under a key, overwriting any previous value. It is
// meant for elements assembling their own fragment, where the author
// controls the key space. Set returns the dictionary for chaining.
func (d *Dict) Set(key string, value Value) *Dict {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
	return d
}

// Insert stores a value under a key and fails if the key is already present.
// Collisions between unrelated elements are an error, never a silent
// overwrite.
func (d *Dict) Insert(key string, value Value) error {
	if _, ok := d.values[key]; ok {
		return errors.New("identifier already registered in kernel dictionary").
			WithType(core.ErrTypeDuplicateIdentifier).
			WithTag("id", key)
	}
	d.Set(key, value)
	return nil
}

// Get returns the value stored under a key
func (d *Dict) Get(key string) (Value, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Len returns the number of entries
func (d *Dict) Len() int {
	return len(d.keys)
}

// Keys returns the keys in insertion order
func (d *Dict) Keys() []string {
	keys := make([]string, len(d.keys))
	copy(keys, d.keys)
	return keys
}

// Merge inserts all entries of another dictionary into this one, preserving
// the other dictionary's order and failing on key collision
func (d *Dict) Merge(other *Dict) error {
	for _, key := range other.keys {
		if err := d.Insert(key, other.values[key]); err != nil {
			return err
		}
	}
	return nil
}

// Add merges the contributions of one or more scene elements for the given
// spectral context
func (d *Dict) Add(ctx spectral.Context, elements ...Element) error {
	for _, element := range elements {
		fragment, err := element.KernelDict(ctx)
		if err != nil {
			return errors.New("generating kernel dictionary fragment failed").
				WithTag("id", element.ID()).
				Wrap(err)
		}
		if err := d.Merge(fragment); err != nil {
			return errors.New("merging kernel dictionary fragment failed").
				WithTag("id", element.ID()).
				Wrap(err)
		}
	}
	return nil
}

// FromElements creates a dictionary from the contributions of one or more
// scene elements
func FromElements(ctx spectral.Context, elements ...Element) (*Dict, error) {
	d := NewDict()
	if err := d.Add(ctx, elements...); err != nil {
		return nil, err
	}
	return d, nil
}
