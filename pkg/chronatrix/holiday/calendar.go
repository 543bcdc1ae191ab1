package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Calendar answers "is this date a holiday?" questions by combining
// the public- and school-holiday clients with a year-level cache.
// It implements the context builder's BankHolidayProvider and
// SchoolHolidayProvider contracts.
type Calendar struct {
	public *PublicClient
	school *SchoolClient
	store  Store
}

// CalendarOption configures a Calendar.
type CalendarOption func(*Calendar)

// WithPublicClient replaces the default Nager.Date client.
func WithPublicClient(c *PublicClient) CalendarOption {
	return func(cal *Calendar) {
		cal.public = c
	}
}

// WithSchoolClient replaces the default OpenHolidays client.
func WithSchoolClient(c *SchoolClient) CalendarOption {
	return func(cal *Calendar) {
		cal.school = c
	}
}

// WithStore replaces the default in-memory cache, e.g. with a
// SQLiteStore for persistence across invocations.
func WithStore(s Store) CalendarOption {
	return func(cal *Calendar) {
		cal.store = s
	}
}

// NewCalendar creates a Calendar with default clients and an
// in-memory cache.
func NewCalendar(opts ...CalendarOption) *Calendar {
	cal := &Calendar{
		public: NewPublicClient(),
		school: NewSchoolClient(),
		store:  NewMemoryStore(),
	}
	for _, opt := range opts {
		opt(cal)
	}
	return cal
}

// HolidayFor returns the name of the bank holiday falling on date in
// the given country, if any. The full year is fetched and cached on
// first use.
func (cal *Calendar) HolidayFor(ctx context.Context, countryCode string, date time.Time) (string, bool, error) {
	key := fmt.Sprintf("public/%s/%d", strings.ToUpper(countryCode), date.Year())

	var holidays []PublicHoliday
	if !cal.cached(key, &holidays) {
		fetched, err := cal.public.Holidays(ctx, countryCode, date.Year())
		if err != nil {
			return "", false, err
		}
		holidays = fetched
		cal.remember(key, holidays)
	}

	day := date.Format("2006-01-02")
	for _, h := range holidays {
		if h.Date == day {
			if h.LocalName != "" {
				return h.LocalName, true, nil
			}
			return h.Name, true, nil
		}
	}
	return "", false, nil
}

// SchoolHolidayFor returns the name of the school-holiday span
// covering date in the given country subdivision, if any.
func (cal *Calendar) SchoolHolidayFor(ctx context.Context, countryCode, zone string, date time.Time) (string, bool, error) {
	key := fmt.Sprintf("school/%s/%s/%d",
		strings.ToUpper(countryCode), strings.ToUpper(zone), date.Year())

	var holidays []SchoolHoliday
	if !cal.cached(key, &holidays) {
		fetched, err := cal.school.SchoolHolidays(ctx, countryCode, zone, date.Year())
		if err != nil {
			return "", false, err
		}
		holidays = fetched
		cal.remember(key, holidays)
	}

	day := date.Format("2006-01-02")
	for _, h := range holidays {
		if h.StartDate <= day && day <= h.EndDate {
			for _, name := range h.Name {
				if name.Text != "" {
					return name.Text, true, nil
				}
			}
		}
	}
	return "", false, nil
}

// cached loads and decodes a cache entry into out. A miss, a decode
// failure, or a closed store all read as "not cached".
func (cal *Calendar) cached(key string, out any) bool {
	data, err := cal.store.Get(key)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, out) == nil
}

// remember encodes and stores a cache entry. Cache failures are
// ignored; the result was already fetched.
func (cal *Calendar) remember(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = cal.store.Put(key, data)
}
