package chronatrix

import (
	"errors"
	"fmt"
)

// Sentinel errors for invalid static inputs. These are the only hard
// failures; every provider problem degrades keys instead.
var (
	// ErrLatitudeRange indicates a latitude outside [-90, 90].
	ErrLatitudeRange = errors.New("latitude out of range")

	// ErrLongitudeRange indicates a longitude outside [-180, 180].
	ErrLongitudeRange = errors.New("longitude out of range")

	// ErrUnknownTimezone indicates an unresolvable IANA time zone id.
	ErrUnknownTimezone = errors.New("unknown time zone")

	// ErrBadReferenceMoment indicates an unparsable reference moment.
	ErrBadReferenceMoment = errors.New("unparsable reference moment")

	// ErrBadOverrideValue indicates an override value of an unsupported
	// Go type.
	ErrBadOverrideValue = errors.New("unsupported override value type")
)

// BuildError wraps a static-input failure with the offending field.
type BuildError struct {
	// Field is the input that failed ("latitude", "timezone", ...).
	Field string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	return fmt.Sprintf("build context: %s: %v", e.Field, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *BuildError) Unwrap() error {
	return e.Err
}
