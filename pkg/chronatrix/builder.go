package chronatrix

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/coality/chronatrix/pkg/chronatrix/holiday"
	"github.com/coality/chronatrix/pkg/chronatrix/observability"
	"github.com/coality/chronatrix/pkg/chronatrix/solar"
	"github.com/coality/chronatrix/pkg/chronatrix/value"
	"github.com/coality/chronatrix/pkg/chronatrix/weather"
)

// SolarProvider computes sunrise and sunset for a civil date.
type SolarProvider interface {
	// SunriseSunset returns sunrise and sunset for the coordinates on
	// date's calendar day. Polar day/night is an error.
	SunriseSunset(ctx context.Context, lat, lon float64, date time.Time) (rise, set time.Time, err error)
}

// WeatherProvider reports current conditions for coordinates.
type WeatherProvider interface {
	// CurrentWeather returns the WMO weather code and the temperature
	// in degrees Celsius.
	CurrentWeather(ctx context.Context, lat, lon float64) (code int, temperature float64, err error)
}

// BankHolidayProvider resolves national bank holidays.
type BankHolidayProvider interface {
	// HolidayFor returns the holiday name for a country and date.
	// ok is false when the date is no holiday or the country is not
	// covered.
	HolidayFor(ctx context.Context, countryCode string, date time.Time) (name string, ok bool, err error)
}

// SchoolHolidayProvider resolves school holidays for a subdivision.
type SchoolHolidayProvider interface {
	// SchoolHolidayFor returns the school-holiday name covering date
	// in the given country subdivision (zone).
	SchoolHolidayFor(ctx context.Context, countryCode, zone string, date time.Time) (name string, ok bool, err error)
}

// Compile-time checks that the bundled providers satisfy the contracts.
var (
	_ SolarProvider         = solar.Provider{}
	_ WeatherProvider       = (*weather.Client)(nil)
	_ BankHolidayProvider   = (*holiday.Calendar)(nil)
	_ SchoolHolidayProvider = (*holiday.Calendar)(nil)
)

// DefaultProviderTimeout bounds each external provider call.
const DefaultProviderTimeout = 5 * time.Second

// Builder assembles context snapshots. It is safe for concurrent use:
// Build operates only on its inputs and produces a fresh Context.
type Builder struct {
	solar   SolarProvider
	weather WeatherProvider
	bank    BankHolidayProvider
	school  SchoolHolidayProvider

	logger          *slog.Logger
	metrics         observability.MetricsRecorder
	spans           observability.SpanManager
	providerTimeout time.Duration
	clock           func() time.Time
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithSolarProvider replaces the default astronomical computation.
func WithSolarProvider(p SolarProvider) BuilderOption {
	return func(b *Builder) { b.solar = p }
}

// WithWeatherProvider replaces the default Open-Meteo client.
// Pass nil to skip the weather stage's network call entirely; its keys
// degrade to their unknown defaults.
func WithWeatherProvider(p WeatherProvider) BuilderOption {
	return func(b *Builder) { b.weather = p }
}

// WithBankHolidayProvider replaces the default holiday calendar.
// Pass nil to skip the lookup; holiday keys degrade to false/null.
func WithBankHolidayProvider(p BankHolidayProvider) BuilderOption {
	return func(b *Builder) { b.bank = p }
}

// WithSchoolHolidayProvider replaces the default holiday calendar.
func WithSchoolHolidayProvider(p SchoolHolidayProvider) BuilderOption {
	return func(b *Builder) { b.school = p }
}

// WithLogger sets the diagnostics logger. Default: no logging.
func WithLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) { b.logger = logger }
}

// WithMetrics sets the metrics recorder. Default: NoopMetrics.
func WithMetrics(m observability.MetricsRecorder) BuilderOption {
	return func(b *Builder) { b.metrics = m }
}

// WithSpanManager sets the tracing span manager. Default: NoopSpanManager.
func WithSpanManager(s observability.SpanManager) BuilderOption {
	return func(b *Builder) { b.spans = s }
}

// WithProviderTimeout bounds each external provider call.
// Default: DefaultProviderTimeout. A timeout degrades the stage's keys
// exactly like a lookup failure.
func WithProviderTimeout(d time.Duration) BuilderOption {
	return func(b *Builder) {
		if d > 0 {
			b.providerTimeout = d
		}
	}
}

// WithClock replaces the wall clock. Tests use this to pin "now".
func WithClock(clock func() time.Time) BuilderOption {
	return func(b *Builder) {
		if clock != nil {
			b.clock = clock
		}
	}
}

// NewBuilder creates a Builder with the bundled providers: NOAA solar
// computation, the Open-Meteo weather client, and the Nager.Date /
// OpenHolidays calendar with an in-memory cache.
func NewBuilder(opts ...BuilderOption) *Builder {
	cal := holiday.NewCalendar()
	b := &Builder{
		solar:           solar.Provider{},
		weather:         weather.NewClient(),
		bank:            cal,
		school:          cal,
		metrics:         observability.NoopMetrics{},
		spans:           observability.NoopSpanManager{},
		providerTimeout: DefaultProviderTimeout,
		clock:           time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// buildParams holds the per-call inputs of one Build.
type buildParams struct {
	reference    time.Time
	referenceSet bool
	overrides    map[string]any
	holidayZone  string
}

// BuildOption configures one Build call.
type BuildOption func(*buildParams)

// WithReferenceMoment overrides "now" for every calendar, solar, and
// holiday computation. The moment is converted into the Place's zone.
func WithReferenceMoment(t time.Time) BuildOption {
	return func(p *buildParams) {
		p.reference = t
		p.referenceSet = true
	}
}

// WithOverrides supplies custom key/value pairs applied after every
// computed stage, so they win on collision. Values may be strings
// (lowercased), bools, ints, floats, time.Time, or value.Value.
func WithOverrides(overrides map[string]any) BuildOption {
	return func(p *buildParams) {
		p.overrides = overrides
	}
}

// WithHolidayZone sets the school-holiday subdivision code
// (e.g. "FR-C"). Without it the school-holiday keys stay false/null.
func WithHolidayZone(zone string) BuildOption {
	return func(p *buildParams) {
		p.holidayZone = zone
	}
}

// BuildContext builds a context snapshot with a default Builder.
// Library users who build repeatedly should hold a Builder instead, so
// the holiday cache survives between calls.
func BuildContext(ctx context.Context, place Place, opts ...BuildOption) (*Context, error) {
	return NewBuilder().Build(ctx, place, opts...)
}

// Build assembles a context snapshot for place. Stages run in fixed
// order (location, time, solar/season, weather, holiday, overrides) and
// each stage's keys are disjoint from every other stage's. Provider
// failures degrade their stage's keys to unknown defaults and never
// fail the build; the only errors are invalid static inputs.
func (b *Builder) Build(ctx context.Context, place Place, opts ...BuildOption) (*Context, error) {
	var params buildParams
	for _, opt := range opts {
		opt(&params)
	}

	loc, err := place.Validate()
	if err != nil {
		return nil, err
	}
	overrides, err := convertOverrides(params.overrides)
	if err != nil {
		return nil, err
	}

	buildID := uuid.New().String()
	moment := params.reference
	if !params.referenceSet {
		moment = b.clock()
	}
	moment = moment.In(loc)

	observability.LogBuildStart(b.logger, buildID, place.Name)
	ctx, span := b.spans.StartBuildSpan(ctx, place.Name, buildID)
	start := time.Now()

	snapshot := newContext()
	locationStage(snapshot, place)
	timeStage(snapshot, moment)
	b.solarStage(ctx, snapshot, place, moment, loc, buildID)
	b.weatherStage(ctx, snapshot, place, buildID)
	b.holidayStage(ctx, snapshot, place, moment, params.holidayZone, buildID)
	if len(overrides) > 0 {
		snapshot = snapshot.WithOverrides(overrides)
	}

	b.metrics.RecordBuild(ctx, true, time.Since(start))
	b.spans.EndSpanWithError(span, nil)
	observability.LogBuildComplete(b.logger, buildID,
		float64(time.Since(start).Milliseconds()), snapshot.Len())
	return snapshot, nil
}

// convertOverrides maps native override values into the value union.
func convertOverrides(raw map[string]any) (map[string]value.Value, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[string]value.Value, len(raw))
	for k, v := range raw {
		converted, ok := value.FromAny(v)
		if !ok {
			return nil, &BuildError{
				Field: "overrides",
				Err:   fmt.Errorf("%w: key %q (%T)", ErrBadOverrideValue, k, v),
			}
		}
		out[k] = converted
	}
	return out, nil
}
