package chronatrix

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/coality/chronatrix/pkg/chronatrix/observability"
	"github.com/coality/chronatrix/pkg/chronatrix/value"
)

// locationStage copies the Place fields, lowercasing the string ones.
func locationStage(c *Context, place Place) {
	c.set("location_name", value.String(strings.ToLower(place.Name)))
	c.set("country_code", value.String(strings.ToLower(place.CountryCode)))
	c.set("country_name", value.String(strings.ToLower(place.CountryName)))
	c.set("timezone", value.String(strings.ToLower(place.Timezone)))
	c.set("latitude", value.Float(place.Latitude))
	c.set("longitude", value.Float(place.Longitude))
}

// timeStage derives every calendar key from the effective moment,
// already localized to the Place's zone.
//
// Clock buckets are decided by the whole local hour, so an exact
// boundary instant (17:00:00.000) belongs to the bucket whose range
// starts there.
func timeStage(c *Context, moment time.Time) {
	hour := moment.Hour()
	month := int(moment.Month())
	year := moment.Year()
	day := moment.Day()

	c.set("current_time", value.TimeOfDayFrom(moment))
	c.set("current_date", value.Date(moment))
	c.set("current_datetime", value.DateTime(moment))
	c.set("current_hour", value.Int(int64(hour)))
	c.set("current_month", value.Int(int64(month)))
	c.set("current_month_name", value.String(strings.ToLower(moment.Month().String())))
	c.set("current_quarter", value.String(fmt.Sprintf("q%d", (month-1)/3+1)))
	c.set("current_year", value.Int(int64(year)))

	// 0=Monday .. 6=Sunday, unlike time.Weekday's Sunday-first numbering.
	weekday := (int(moment.Weekday()) + 6) % 7
	c.set("current_weekday", value.Int(int64(weekday)))
	c.set("week_day_name", value.String(strings.ToLower(moment.Weekday().String())))
	weekend := weekday >= 5
	c.set("is_weekend", value.Bool(weekend))
	c.set("is_workday", value.Bool(!weekend))

	c.set("is_leap_year", value.Bool(isLeapYear(year)))

	lastDay := daysInMonth(year, moment.Month(), moment.Location())
	c.set("is_last_week_of_month", value.Bool(lastDay-day < 7))
	c.set("days_until_end_of_month", value.Int(int64(lastDay-day)))
	endOfYear := time.Date(year, 12, 31, 0, 0, 0, 0, moment.Location())
	c.set("days_until_end_of_year", value.Int(int64(endOfYear.YearDay()-moment.YearDay())))

	workday := !weekend
	c.set("is_morning", value.Bool(hour >= 5 && hour <= 11))
	c.set("is_afternoon", value.Bool(hour >= 12 && hour <= 16))
	c.set("is_evening", value.Bool(hour >= 17 && hour <= 22))
	c.set("is_night", value.Bool(hour >= 23 || hour <= 4))
	c.set("is_business_hours", value.Bool(workday && hour >= 9 && hour <= 16))
	c.set("is_lunch_time", value.Bool(workday && hour >= 12 && hour <= 13))
}

// solarStage asks the solar provider for sunrise/sunset and derives
// is_daytime and the season. Provider failure nulls the solar keys;
// the season needs no provider and is always present.
func (b *Builder) solarStage(ctx context.Context, c *Context, place Place, moment time.Time, loc *time.Location, buildID string) {
	ctx, span := b.spans.StartStageSpan(ctx, "solar")

	rise, set, err := b.callSolar(ctx, place, moment)
	if err != nil {
		observability.LogStageDegraded(b.logger, buildID, "solar", err)
		c.set("sunrise_time", value.Null())
		c.set("sunset_time", value.Null())
		c.set("is_daytime", value.Null())
	} else {
		riseLocal := value.TimeOfDayFrom(rise.In(loc))
		setLocal := value.TimeOfDayFrom(set.In(loc))
		c.set("sunrise_time", riseLocal)
		c.set("sunset_time", setLocal)

		nowSec := moment.Hour()*3600 + moment.Minute()*60 + moment.Second()
		riseSec, _ := riseLocal.ClockSeconds()
		setSec, _ := setLocal.ClockSeconds()
		c.set("is_daytime", value.Bool(nowSec >= riseSec && nowSec <= setSec))
	}

	c.set("current_season", value.String(seasonFor(int(moment.Month()), place.Latitude)))
	b.spans.EndSpanWithError(span, err)
}

func (b *Builder) callSolar(ctx context.Context, place Place, moment time.Time) (rise, set time.Time, err error) {
	if b.solar == nil {
		return time.Time{}, time.Time{}, errProviderDisabled
	}
	ctx, cancel := context.WithTimeout(ctx, b.providerTimeout)
	defer cancel()

	start := time.Now()
	rise, set, err = b.solar.SunriseSunset(ctx, place.Latitude, place.Longitude, moment)
	b.metrics.RecordProviderCall(ctx, "solar", time.Since(start), err)
	return rise, set, err
}

// weatherStage maps the provider's WMO code to a label and records the
// temperature. Any failure degrades to "unknown"/null.
func (b *Builder) weatherStage(ctx context.Context, c *Context, place Place, buildID string) {
	ctx, span := b.spans.StartStageSpan(ctx, "weather")

	code, temperature, err := b.callWeather(ctx, place)
	if err != nil {
		observability.LogStageDegraded(b.logger, buildID, "weather", err)
		c.set("current_weather", value.String("unknown"))
		c.set("temperature", value.Null())
	} else {
		c.set("current_weather", value.String(WeatherLabel(code)))
		c.set("temperature", value.Float(temperature))
	}
	b.spans.EndSpanWithError(span, err)
}

func (b *Builder) callWeather(ctx context.Context, place Place) (code int, temperature float64, err error) {
	if b.weather == nil {
		return 0, 0, errProviderDisabled
	}
	ctx, cancel := context.WithTimeout(ctx, b.providerTimeout)
	defer cancel()

	start := time.Now()
	code, temperature, err = b.weather.CurrentWeather(ctx, place.Latitude, place.Longitude)
	b.metrics.RecordProviderCall(ctx, "weather", time.Since(start), err)
	return code, temperature, err
}

// holidayStage resolves bank and school holidays for the effective
// date. Unsupported countries, missing zones, and lookup failures all
// read as "not a holiday".
func (b *Builder) holidayStage(ctx context.Context, c *Context, place Place, moment time.Time, zone, buildID string) {
	ctx, span := b.spans.StartStageSpan(ctx, "holiday")

	bankName, bankOK, err := b.callBankHoliday(ctx, place, moment)
	if err != nil {
		observability.LogStageDegraded(b.logger, buildID, "holiday", err)
		bankName, bankOK = "", false
	}
	c.set("is_bank_holiday", value.Bool(bankOK))
	if bankOK {
		c.set("current_bank_holiday_name", value.String(strings.ToLower(bankName)))
	} else {
		c.set("current_bank_holiday_name", value.Null())
	}

	var schoolErr error
	schoolName, schoolOK := "", false
	if zone != "" {
		schoolName, schoolOK, schoolErr = b.callSchoolHoliday(ctx, place, zone, moment)
		if schoolErr != nil {
			observability.LogStageDegraded(b.logger, buildID, "holiday", schoolErr)
			schoolName, schoolOK = "", false
		}
	}
	c.set("is_school_holiday", value.Bool(schoolOK))
	if schoolOK {
		c.set("current_school_holiday_name", value.String(strings.ToLower(schoolName)))
	} else {
		c.set("current_school_holiday_name", value.Null())
	}

	if err == nil {
		err = schoolErr
	}
	b.spans.EndSpanWithError(span, err)
}

func (b *Builder) callBankHoliday(ctx context.Context, place Place, moment time.Time) (string, bool, error) {
	if b.bank == nil {
		return "", false, nil
	}
	ctx, cancel := context.WithTimeout(ctx, b.providerTimeout)
	defer cancel()

	start := time.Now()
	name, ok, err := b.bank.HolidayFor(ctx, place.CountryCode, moment)
	b.metrics.RecordProviderCall(ctx, "bank_holiday", time.Since(start), err)
	return name, ok, err
}

func (b *Builder) callSchoolHoliday(ctx context.Context, place Place, zone string, moment time.Time) (string, bool, error) {
	if b.school == nil {
		return "", false, nil
	}
	ctx, cancel := context.WithTimeout(ctx, b.providerTimeout)
	defer cancel()

	start := time.Now()
	name, ok, err := b.school.SchoolHolidayFor(ctx, place.CountryCode, zone, moment)
	b.metrics.RecordProviderCall(ctx, "school_holiday", time.Since(start), err)
	return name, ok, err
}

// errProviderDisabled marks a provider deliberately configured away.
var errProviderDisabled = fmt.Errorf("provider disabled")

// seasonFor maps month and hemisphere to a season name. Southern
// latitudes shift the northern table by two quarters.
func seasonFor(month int, latitude float64) string {
	var season string
	switch {
	case month == 12 || month <= 2:
		season = "winter"
	case month <= 5:
		season = "spring"
	case month <= 8:
		season = "summer"
	default:
		season = "autumn"
	}
	if latitude >= 0 {
		return season
	}
	return map[string]string{
		"winter": "summer",
		"spring": "autumn",
		"summer": "winter",
		"autumn": "spring",
	}[season]
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// daysInMonth returns the last day of the month containing the moment.
func daysInMonth(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
