// Package solar computes sunrise and sunset times.
//
// The computation is pure (no network, no state) and uses the NOAA
// algorithm via github.com/nathan-osman/go-sunrise. Polar day and polar
// night, where the sun never crosses the horizon, are reported as
// unavailable rather than as zero times.
package solar

import (
	"context"
	"errors"
	"time"

	"github.com/nathan-osman/go-sunrise"
)

// ErrUnavailable indicates no sunrise/sunset exists for the requested
// date and location (polar day or polar night).
var ErrUnavailable = errors.New("sunrise/sunset unavailable")

// Provider computes sunrise and sunset for a civil date. The zero
// value is ready to use.
type Provider struct{}

// SunriseSunset returns sunrise and sunset in UTC for the given
// coordinates on date's calendar day. The context is accepted for
// interface symmetry with the network providers; the computation
// itself never blocks.
func (Provider) SunriseSunset(_ context.Context, lat, lon float64, date time.Time) (rise, set time.Time, err error) {
	rise, set = sunrise.SunriseSunset(lat, lon, date.Year(), date.Month(), date.Day())
	if rise.IsZero() || set.IsZero() {
		return time.Time{}, time.Time{}, ErrUnavailable
	}
	return rise, set, nil
}
