package kernel

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
)

// CheckReferences verifies the resolution closure of the dictionary: every
// reference embedded anywhere in the dictionary must resolve to a top-level
// entry of the same dictionary. The kernel rejects unresolved references, so
// this check runs before any hand-off.
func (d *Dict) CheckReferences() error {
	for _, key := range d.keys {
		if err := d.checkValue(key, d.values[key]); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dict) checkValue(owner string, value Value) error {
	switch v := value.(type) {
	case Ref:
		if _, ok := d.values[v.ID]; !ok {
			return errors.New("reference does not resolve to a compiled entry").
				WithType(core.ErrTypeUnresolvedReference).
				WithTag("id", owner).
				WithTag("reference", v.ID)
		}
	case *Dict:
		for _, key := range v.keys {
			if err := d.checkValue(owner, v.values[key]); err != nil {
				return err
			}
		}
	}
	return nil
}

// References returns the identifiers referenced anywhere in the dictionary,
// in traversal order with duplicates removed
func (d *Dict) References() []string {
	var refs []string
	seen := make(map[string]struct{})

	var walk func(Value)
	walk = func(value Value) {
		switch v := value.(type) {
		case Ref:
			if _, ok := seen[v.ID]; !ok {
				seen[v.ID] = struct{}{}
				refs = append(refs, v.ID)
			}
		case *Dict:
			for _, key := range v.keys {
				walk(v.values[key])
			}
		}
	}

	for _, key := range d.keys {
		walk(d.values[key])
	}
	return refs
}
