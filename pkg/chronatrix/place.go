package chronatrix

import (
	"time"
)

// Place is the static location descriptor a context is built for.
// It is supplied once by the caller and never mutated.
type Place struct {
	// Name is the human-readable place name ("Paris").
	Name string
	// CountryCode is the ISO 3166-1 alpha-2 code ("FR").
	CountryCode string
	// CountryName is the human-readable country name ("France").
	CountryName string
	// Timezone is the IANA time zone id ("Europe/Paris").
	Timezone string
	// Latitude in degrees, [-90, 90].
	Latitude float64
	// Longitude in degrees, [-180, 180].
	Longitude float64
}

// Validate checks the static inputs and resolves the time zone.
// It must pass before any build stage runs.
func (p Place) Validate() (*time.Location, error) {
	if p.Latitude < -90 || p.Latitude > 90 {
		return nil, &BuildError{Field: "latitude", Err: ErrLatitudeRange}
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return nil, &BuildError{Field: "longitude", Err: ErrLongitudeRange}
	}
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return nil, &BuildError{Field: "timezone", Err: ErrUnknownTimezone}
	}
	return loc, nil
}

// ParseMoment parses a reference moment. Accepted forms are RFC 3339
// ("2024-04-12T20:00:00+02:00") and the same layout without an offset,
// in which case loc (normally the Place's zone) is assumed.
func ParseMoment(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04:05", s, loc); err == nil {
		return t, nil
	}
	return time.Time{}, &BuildError{Field: "reference_moment", Err: ErrBadReferenceMoment}
}
