package chronatrix

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coality/chronatrix/pkg/chronatrix/value"
)

func timeSnapshot(t *testing.T, moment time.Time) *Context {
	t.Helper()
	c := newContext()
	timeStage(c, moment)
	return c
}

func boolKey(t *testing.T, c *Context, key string) bool {
	t.Helper()
	v, ok := c.Get(key)
	require.True(t, ok, "missing key %s", key)
	b, ok := v.BoolVal()
	require.True(t, ok, "key %s is not boolean", key)
	return b
}

func TestTimeStage_Calendar(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)
	// A Friday evening in spring.
	c := timeSnapshot(t, time.Date(2024, 4, 12, 20, 0, 0, 0, paris))

	want := map[string]value.Value{
		"current_hour":            value.Int(20),
		"current_month":           value.Int(4),
		"current_month_name":      value.String("april"),
		"current_quarter":         value.String("q2"),
		"current_year":            value.Int(2024),
		"current_weekday":         value.Int(4),
		"week_day_name":           value.String("friday"),
		"is_weekend":              value.Bool(false),
		"is_workday":              value.Bool(true),
		"is_leap_year":            value.Bool(true),
		"is_last_week_of_month":   value.Bool(false),
		"days_until_end_of_month": value.Int(18),
		"days_until_end_of_year":  value.Int(263),
		"current_time":            value.TimeOfDay(20, 0, 0),
	}
	for key, expected := range want {
		got, ok := c.Get(key)
		require.True(t, ok, "missing key %s", key)
		assert.True(t, value.Equal(got, expected), "%s = %v, want %v", key, got, expected)
	}
}

func TestTimeStage_WeekdayNumbering(t *testing.T) {
	// Monday is 0, Sunday is 6.
	tests := []struct {
		day     int // April 2024: the 1st is a Monday
		weekday int64
		weekend bool
	}{
		{1, 0, false},
		{2, 1, false},
		{5, 4, false},
		{6, 5, true},
		{7, 6, true},
	}
	for _, tt := range tests {
		c := timeSnapshot(t, time.Date(2024, 4, tt.day, 12, 0, 0, 0, time.UTC))
		v, _ := c.Get("current_weekday")
		assert.True(t, value.Equal(v, value.Int(tt.weekday)), "day %d", tt.day)
		assert.Equal(t, tt.weekend, boolKey(t, c, "is_weekend"), "day %d", tt.day)
		assert.Equal(t, !tt.weekend, boolKey(t, c, "is_workday"), "day %d", tt.day)
	}
}

func TestTimeStage_ClockBuckets(t *testing.T) {
	tests := []struct {
		hour                               int
		morning, afternoon, evening, night bool
	}{
		{4, false, false, false, true},
		{5, true, false, false, false},
		{11, true, false, false, false},
		{12, false, true, false, false},
		{16, false, true, false, false},
		{17, false, false, true, false},
		{22, false, false, true, false},
		{23, false, false, false, true},
		{0, false, false, false, true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("hour_%02d", tt.hour), func(t *testing.T) {
			// A workday, so business/lunch keys are hour-driven.
			c := timeSnapshot(t, time.Date(2024, 4, 10, tt.hour, 0, 0, 0, time.UTC))
			assert.Equal(t, tt.morning, boolKey(t, c, "is_morning"))
			assert.Equal(t, tt.afternoon, boolKey(t, c, "is_afternoon"))
			assert.Equal(t, tt.evening, boolKey(t, c, "is_evening"))
			assert.Equal(t, tt.night, boolKey(t, c, "is_night"))
		})
	}
}

func TestTimeStage_BusinessAndLunch(t *testing.T) {
	weekday := time.Date(2024, 4, 10, 12, 30, 0, 0, time.UTC) // Wednesday
	weekend := time.Date(2024, 4, 13, 12, 30, 0, 0, time.UTC) // Saturday

	c := timeSnapshot(t, weekday)
	assert.True(t, boolKey(t, c, "is_business_hours"))
	assert.True(t, boolKey(t, c, "is_lunch_time"))

	// Same clock on a weekend: both off.
	c = timeSnapshot(t, weekend)
	assert.False(t, boolKey(t, c, "is_business_hours"))
	assert.False(t, boolKey(t, c, "is_lunch_time"))

	// Workday outside the windows.
	c = timeSnapshot(t, time.Date(2024, 4, 10, 8, 59, 0, 0, time.UTC))
	assert.False(t, boolKey(t, c, "is_business_hours"))
	c = timeSnapshot(t, time.Date(2024, 4, 10, 17, 0, 0, 0, time.UTC))
	assert.False(t, boolKey(t, c, "is_business_hours"))
	assert.False(t, boolKey(t, c, "is_lunch_time"))
}

func TestTimeStage_LastWeekOfMonth(t *testing.T) {
	tests := []struct {
		date string
		want bool
	}{
		{"2024-04-23", false}, // 30-23 = 7
		{"2024-04-24", true},  // 30-24 = 6
		{"2024-04-30", true},
		{"2024-02-22", false}, // leap February, 29-22 = 7
		{"2024-02-23", true},
		{"2023-02-22", true}, // 28-22 = 6
	}
	for _, tt := range tests {
		date, err := time.Parse("2006-01-02", tt.date)
		require.NoError(t, err)
		c := timeSnapshot(t, date)
		assert.Equal(t, tt.want, boolKey(t, c, "is_last_week_of_month"), "date %s", tt.date)
	}
}

func TestTimeStage_Quarters(t *testing.T) {
	tests := []struct {
		month time.Month
		want  string
	}{
		{time.January, "q1"}, {time.March, "q1"},
		{time.April, "q2"}, {time.June, "q2"},
		{time.July, "q3"}, {time.September, "q3"},
		{time.October, "q4"}, {time.December, "q4"},
	}
	for _, tt := range tests {
		c := timeSnapshot(t, time.Date(2024, tt.month, 15, 0, 0, 0, 0, time.UTC))
		v, _ := c.Get("current_quarter")
		assert.True(t, value.Equal(v, value.String(tt.want)), "month %s", tt.month)
	}
}

func TestSeasonFor(t *testing.T) {
	tests := []struct {
		month    int
		latitude float64
		want     string
	}{
		{1, 48.85, "winter"},
		{2, 48.85, "winter"},
		{12, 48.85, "winter"},
		{3, 48.85, "spring"},
		{5, 48.85, "spring"},
		{6, 48.85, "summer"},
		{8, 48.85, "summer"},
		{9, 48.85, "autumn"},
		{11, 48.85, "autumn"},
		// Southern hemisphere inverts by two quarters.
		{1, -33.87, "summer"},
		{4, -33.87, "autumn"},
		{7, -33.87, "winter"},
		{10, -33.87, "spring"},
		// The equator counts as northern.
		{1, 0, "winter"},
	}
	for _, tt := range tests {
		got := seasonFor(tt.month, tt.latitude)
		assert.Equal(t, tt.want, got, "month %d latitude %v", tt.month, tt.latitude)
	}
}

func TestIsLeapYear(t *testing.T) {
	assert.True(t, isLeapYear(2024))
	assert.True(t, isLeapYear(2000))
	assert.False(t, isLeapYear(1900))
	assert.False(t, isLeapYear(2023))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, daysInMonth(2024, time.February, time.UTC))
	assert.Equal(t, 28, daysInMonth(2023, time.February, time.UTC))
	assert.Equal(t, 31, daysInMonth(2024, time.December, time.UTC))
	assert.Equal(t, 30, daysInMonth(2024, time.April, time.UTC))
}
