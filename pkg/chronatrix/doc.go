/*
Package chronatrix answers one question: does this boolean condition
hold right now, at this place?

# Overview

chronatrix assembles a flat, typed snapshot of the current moment and
location (calendar facts, solar state, season, weather, holiday flags),
called the context, and evaluates a small, restricted expression against
it. The evaluator is an allow-listed grammar, not a scripting language:
a condition string can read context values and combine them with logic,
comparison, and arithmetic, and can do nothing else.

# Basic Usage

	place := chronatrix.Place{
	    Name:        "Paris",
	    CountryCode: "FR",
	    CountryName: "France",
	    Timezone:    "Europe/Paris",
	    Latitude:    48.8566,
	    Longitude:   2.3522,
	}

	ctx := context.Background()
	snapshot, err := chronatrix.BuildContext(ctx, place)
	if err != nil {
	    log.Fatal(err)
	}

	if chronatrix.EvaluateCondition("is_evening and not is_weekend", snapshot) {
	    fmt.Println("quiet weekday evening")
	}

# Context Keys

A successful build always defines the full key set: location keys
(location_name, country_code, country_name, timezone, latitude,
longitude), calendar keys (current_time, current_date, current_datetime,
current_hour, current_month, current_month_name, current_quarter,
current_year, current_weekday, week_day_name, is_weekend, is_workday,
is_leap_year, is_last_week_of_month, days_until_end_of_month,
days_until_end_of_year, is_morning, is_afternoon, is_evening, is_night,
is_business_hours, is_lunch_time), solar keys (sunrise_time,
sunset_time, is_daytime, current_season), weather keys (current_weather,
temperature), and holiday keys (is_bank_holiday,
current_bank_holiday_name, is_school_holiday,
current_school_holiday_name).

All builder-produced strings are lowercase, so conditions compare
case-insensitively by construction. Optional keys (temperature, the
holiday names, the solar keys on provider failure) hold null; null never
satisfies a numeric comparison.

# Degradation

External lookups (solar, weather, holidays) run with a bounded timeout
and degrade to their unknown defaults on any failure. A build only fails
on invalid static inputs: out-of-range coordinates, an unresolvable time
zone, an unparsable reference moment, or an override value of an
unsupported type.

# Reference Moments and Overrides

Both "now" and any computed key can be pinned per call:

	snapshot, err := builder.Build(ctx, place,
	    chronatrix.WithReferenceMoment(moment),
	    chronatrix.WithOverrides(map[string]any{"temperature": 21.5}),
	    chronatrix.WithHolidayZone("FR-C"),
	)

Overrides are applied last and win over every computed key.
*/
package chronatrix
