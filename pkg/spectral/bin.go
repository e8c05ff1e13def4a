package spectral

import (
	"sort"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/heliotrope-eo/heliotrope/pkg/core"
)

// Bin is a spectral bin used in CKD mode. Its bounds are wavelength
// quantities with WMin strictly below WMax, and it carries the quadrature
// rule approximating absorption within the bin.
type Bin struct {
	ID   string
	WMin core.Quantity
	WMax core.Quantity
	Quad Quad
}

// NewBin creates a spectral bin, validating bound ordering and dimensions
func NewBin(id string, wmin, wmax core.Quantity, quad Quad) (Bin, error) {
	lo, err := wmin.ValueAs(core.Nanometre)
	if err != nil {
		return Bin{}, errors.New("invalid bin lower bound").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("bin", id).
			Wrap(err)
	}
	hi, err := wmax.ValueAs(core.Nanometre)
	if err != nil {
		return Bin{}, errors.New("invalid bin upper bound").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("bin", id).
			Wrap(err)
	}
	if lo >= hi {
		return Bin{}, errors.New("bin lower bound must be below upper bound").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("bin", id).
			WithTag("wmin_nm", lo).
			WithTag("wmax_nm", hi)
	}
	if quad.N() == 0 {
		return Bin{}, errors.New("bin needs a quadrature rule").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("bin", id)
	}

	return Bin{ID: id, WMin: wmin, WMax: wmax, Quad: quad}, nil
}

// Width returns the spectral width of the bin
func (b Bin) Width() core.Quantity {
	return core.Nanometres(b.wmaxNM() - b.wminNM())
}

// Center returns the central wavelength of the bin
func (b Bin) Center() core.Quantity {
	return core.Nanometres(0.5 * (b.wminNM() + b.wmaxNM()))
}

func (b Bin) wminNM() float64 { return b.WMin.MustValueAs(core.Nanometre) }
func (b Bin) wmaxNM() float64 { return b.WMax.MustValueAs(core.Nanometre) }

// Contexts returns one spectral context per quadrature point, in ascending
// quadrature index order
func (b Bin) Contexts() []Context {
	contexts := make([]Context, b.Quad.N())
	for i := range contexts {
		contexts[i] = CKDContext{bin: b, index: i}
	}
	return contexts
}

// BinSet is an ordered collection of spectral bins sharing a quadrature
// definition. Bins are sorted by (lower bound, upper bound, id) upon
// construction so iteration order is deterministic.
type BinSet struct {
	ID   string
	Bins []Bin
}

// NewBinSet creates a bin set from a list of bins
func NewBinSet(id string, bins []Bin) (BinSet, error) {
	if len(bins) == 0 {
		return BinSet{}, errors.New("bin set needs at least one bin").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("bin_set", id)
	}

	sorted := make([]Bin, len(bins))
	copy(sorted, bins)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.wminNM() != b.wminNM() {
			return a.wminNM() < b.wminNM()
		}
		if a.wmaxNM() != b.wmaxNM() {
			return a.wmaxNM() < b.wmaxNM()
		}
		return a.ID < b.ID
	})

	return BinSet{ID: id, Bins: sorted}, nil
}

// UniformBinSet builds a bin set covering [wmin, wmax] with bins of equal
// width, each carrying the same quadrature rule. Bin identifiers are the
// integer central wavelength in nanometres.
func UniformBinSet(id string, wmin, wmax core.Quantity, count int, quad Quad) (BinSet, error) {
	if count < 1 {
		return BinSet{}, errors.New("bin count must be positive").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("bin_set", id).
			WithTag("count", count)
	}
	lo, err := wmin.ValueAs(core.Nanometre)
	if err != nil {
		return BinSet{}, err
	}
	hi, err := wmax.ValueAs(core.Nanometre)
	if err != nil {
		return BinSet{}, err
	}

	width := (hi - lo) / float64(count)
	bins := make([]Bin, 0, count)
	for i := 0; i < count; i++ {
		bMin := lo + float64(i)*width
		bMax := bMin + width
		bin, err := NewBin(formatWavelength(0.5*(bMin+bMax)), core.Nanometres(bMin), core.Nanometres(bMax), quad)
		if err != nil {
			return BinSet{}, err
		}
		bins = append(bins, bin)
	}

	return NewBinSet(id, bins)
}

// SelectInterval returns the bins overlapping [wmin, wmax], in set order
func (s BinSet) SelectInterval(wmin, wmax core.Quantity) ([]Bin, error) {
	lo, err := wmin.ValueAs(core.Nanometre)
	if err != nil {
		return nil, err
	}
	hi, err := wmax.ValueAs(core.Nanometre)
	if err != nil {
		return nil, err
	}
	if lo > hi {
		return nil, errors.New("selection lower bound above upper bound").
			WithType(core.ErrTypeInvalidConfig).
			WithTag("wmin_nm", lo).
			WithTag("wmax_nm", hi)
	}

	var selected []Bin
	for _, bin := range s.Bins {
		if bin.wmaxNM() > lo && bin.wminNM() < hi {
			selected = append(selected, bin)
		}
	}
	return selected, nil
}

// SelectIDs returns the bins with matching identifiers, in set order
func (s BinSet) SelectIDs(ids ...string) []Bin {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	var selected []Bin
	for _, bin := range s.Bins {
		if _, ok := wanted[bin.ID]; ok {
			selected = append(selected, bin)
		}
	}
	return selected
}
