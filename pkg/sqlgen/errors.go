package sqlgen

import "errors"

var (
	// ErrNoFields is returned when a query selects no metrics and no
	// dimensions; an empty SELECT list is rejected up front.
	ErrNoFields = errors.New("query selects no metrics and no dimensions")

	// ErrIncompatibleBlend is returned when a blend names fewer than two
	// platforms or a blend key is not a shared join key.
	ErrIncompatibleBlend = errors.New("incompatible blend")

	// ErrMalformedFilter is returned when a filter value's shape does not
	// match its operator (e.g. BETWEEN without exactly two values).
	ErrMalformedFilter = errors.New("malformed filter value")

	// ErrUnsafeIdentifier is returned for field names that are not plain
	// SQL identifiers and therefore cannot be embedded safely.
	ErrUnsafeIdentifier = errors.New("unsafe SQL identifier")

	// ErrInvalidDateRange is returned for ranges that do not parse as
	// YYYY-MM-DD or whose end precedes their start.
	ErrInvalidDateRange = errors.New("invalid date range")
)
