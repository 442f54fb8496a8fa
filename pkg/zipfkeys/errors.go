package zipfkeys

import "errors"

// Sentinel errors for common error conditions. Every one of them means the
// call produced no result.
var (
	// Strategy selection errors
	ErrUnknownStrategy   = errors.New("unknown key set strategy")
	ErrMalformedStrategy = errors.New("malformed key set strategy")

	// Parameter range errors
	ErrInvalidDensity    = errors.New("int density out of range [0.05, 1.0]")
	ErrInvalidPartitions = errors.New("partition count must be at least 1")
	ErrKeyspaceTooLarge  = errors.New("int keyspace exceeds configured ceiling")
	ErrCountTooLarge     = errors.New("requested count too large for strategy")
	ErrDomainTooSmall    = errors.New("value domain not larger than requested count")
	ErrEmptyKeySpace     = errors.New("key count is zero but samples were requested")
	ErrInvalidRange      = errors.New("range minimum exceeds maximum")
	ErrRangeOverflow     = errors.New("range maximum overflows when incremented")

	// Corpus errors
	ErrCorpusTooShort = errors.New("corpus has fewer lines than requested")
	ErrInvalidCorpus  = errors.New("corpus line is not valid UTF-8")

	// Export format errors
	ErrIncompatibleVersion = errors.New("incompatible export format version")
	ErrMissingMeta         = errors.New("export has no metadata")
)
