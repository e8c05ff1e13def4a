package core

// Error types attached to errors raised during scene construction and
// compilation. All of them surface before any kernel invocation: a malformed
// scene never reaches the rendering kernel.
//
// Use with github.com/aukilabs/go-tooling/pkg/errors:
//
//	errors.New("no builder registered").
//		WithType(core.ErrTypeUnknownType).
//		WithTag("type", tag)
//
// Callers discriminate with errors.IsType(err, core.ErrTypeUnknownType).
const (
	// ErrTypeUnknownType reports an unregistered factory discriminator.
	ErrTypeUnknownType = "unknown_type"

	// ErrTypeInvalidConfig reports a missing, malformed or unit-mismatched
	// configuration field.
	ErrTypeInvalidConfig = "invalid_config"

	// ErrTypeDuplicateIdentifier reports two elements claiming the same
	// compiled identifier.
	ErrTypeDuplicateIdentifier = "duplicate_identifier"

	// ErrTypeUnresolvedReference reports a dictionary fragment referencing an
	// identifier never compiled.
	ErrTypeUnresolvedReference = "unresolved_reference"

	// ErrTypeEmptySpectralConfig reports a measure yielding zero spectral
	// contexts.
	ErrTypeEmptySpectralConfig = "empty_spectral_config"

	// ErrTypeOutOfBoundsTarget reports a measure target outside the scene's
	// spatial extent.
	ErrTypeOutOfBoundsTarget = "out_of_bounds_target"
)
