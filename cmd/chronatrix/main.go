// Command chronatrix evaluates a temporal/contextual condition for a
// place and prints true or false.
//
// Exit codes: 0 when the condition holds, 1 when it does not, 2 on
// invalid inputs.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coality/chronatrix/pkg/chronatrix"
	"github.com/coality/chronatrix/pkg/chronatrix/config"
	"github.com/coality/chronatrix/pkg/chronatrix/holiday"
)

var flags struct {
	name        string
	countryCode string
	countryName string
	timezone    string
	latitude    float64
	longitude   float64

	placesFile string
	placeName  string

	at          string
	set         []string
	holidayZone string
	cachePath   string
	showContext bool
	offline     bool
	verbose     bool
}

var rootCmd = &cobra.Command{
	Use:   "chronatrix [flags] CONDITION",
	Short: "Evaluate temporal and contextual conditions for a place",
	Long: `Chronatrix builds a typed snapshot of "now, here" (calendar, solar
state, season, weather, holidays) and evaluates a restricted boolean
condition against it.

Examples:
  chronatrix "is_evening and not is_weekend"
  chronatrix --timezone America/New_York --latitude 40.71 --longitude -74.00 "is_daytime"
  chronatrix --at 2024-04-12T20:00:00+02:00 "current_hour >= 18"
  chronatrix --set temperature=21.5 "temperature > 20" --show-context`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&flags.name, "name", "Paris", "place name")
	rootCmd.Flags().StringVar(&flags.countryCode, "country-code", "FR", "ISO country code")
	rootCmd.Flags().StringVar(&flags.countryName, "country-name", "France", "country name")
	rootCmd.Flags().StringVar(&flags.timezone, "timezone", "Europe/Paris", "IANA time zone")
	rootCmd.Flags().Float64Var(&flags.latitude, "latitude", 48.8566, "latitude in degrees")
	rootCmd.Flags().Float64Var(&flags.longitude, "longitude", 2.3522, "longitude in degrees")

	rootCmd.Flags().StringVar(&flags.placesFile, "places", "", "places file (YAML or JSON)")
	rootCmd.Flags().StringVar(&flags.placeName, "place", "", "place name from the places file")

	rootCmd.Flags().StringVar(&flags.at, "at", "", "reference moment (RFC 3339; place zone assumed without offset)")
	rootCmd.Flags().StringArrayVar(&flags.set, "set", nil, "context override key=value (repeatable)")
	rootCmd.Flags().StringVar(&flags.holidayZone, "holiday-zone", "", "school-holiday subdivision code (e.g. FR-C)")
	rootCmd.Flags().StringVar(&flags.cachePath, "cache", "", "SQLite holiday cache path (default: in-memory)")
	rootCmd.Flags().BoolVar(&flags.showContext, "show-context", false, "print the generated context as JSON")
	rootCmd.Flags().BoolVar(&flags.offline, "offline", false, "skip weather and holiday network lookups")
	rootCmd.Flags().BoolVar(&flags.verbose, "verbose", false, "debug logging to stderr")
}

func run(cmd *cobra.Command, args []string) error {
	condition := args[0]

	place, zone, err := resolvePlace()
	if err != nil {
		return err
	}
	if flags.holidayZone != "" {
		zone = flags.holidayZone
	}

	var logger *slog.Logger
	if flags.verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	builderOpts := []chronatrix.BuilderOption{
		chronatrix.WithLogger(logger),
	}
	if flags.offline {
		builderOpts = append(builderOpts,
			chronatrix.WithWeatherProvider(nil),
			chronatrix.WithBankHolidayProvider(nil),
			chronatrix.WithSchoolHolidayProvider(nil),
		)
	} else if flags.cachePath != "" {
		store, err := holiday.NewSQLiteStore(flags.cachePath)
		if err != nil {
			return fmt.Errorf("open holiday cache: %w", err)
		}
		defer store.Close()
		cal := holiday.NewCalendar(holiday.WithStore(store))
		builderOpts = append(builderOpts,
			chronatrix.WithBankHolidayProvider(cal),
			chronatrix.WithSchoolHolidayProvider(cal),
		)
	}

	buildOpts := []chronatrix.BuildOption{
		chronatrix.WithHolidayZone(zone),
	}
	if flags.at != "" {
		loc, err := place.Validate()
		if err != nil {
			return err
		}
		moment, err := chronatrix.ParseMoment(flags.at, loc)
		if err != nil {
			return err
		}
		buildOpts = append(buildOpts, chronatrix.WithReferenceMoment(moment))
	}
	if len(flags.set) > 0 {
		overrides, err := parseOverrides(flags.set)
		if err != nil {
			return err
		}
		buildOpts = append(buildOpts, chronatrix.WithOverrides(overrides))
	}

	builder := chronatrix.NewBuilder(builderOpts...)
	snapshot, err := builder.Build(context.Background(), place, buildOpts...)
	if err != nil {
		return err
	}

	evaluator := chronatrix.NewConditionEvaluator(
		chronatrix.WithEvaluatorLogger(logger),
	)
	result := evaluator.Evaluate(context.Background(), condition, snapshot)
	fmt.Println(result)

	if flags.showContext {
		fmt.Println(snapshot.Render())
	}

	if !result {
		os.Exit(1)
	}
	return nil
}

// resolvePlace builds the Place from either a places file or the
// individual flags.
func resolvePlace() (chronatrix.Place, string, error) {
	if flags.placesFile == "" {
		if flags.placeName != "" {
			return chronatrix.Place{}, "", fmt.Errorf("--place requires --places")
		}
		return chronatrix.Place{
			Name:        flags.name,
			CountryCode: flags.countryCode,
			CountryName: flags.countryName,
			Timezone:    flags.timezone,
			Latitude:    flags.latitude,
			Longitude:   flags.longitude,
		}, "", nil
	}

	file, err := config.FromFile(flags.placesFile)
	if err != nil {
		return chronatrix.Place{}, "", err
	}
	spec, ok := file.Place(flags.placeName)
	if !ok {
		return chronatrix.Place{}, "", fmt.Errorf("place %q not found in %s", flags.placeName, flags.placesFile)
	}
	return chronatrix.Place{
		Name:        spec.Name,
		CountryCode: spec.CountryCode,
		CountryName: spec.CountryName,
		Timezone:    spec.Timezone,
		Latitude:    spec.Latitude,
		Longitude:   spec.Longitude,
	}, spec.HolidayZone, nil
}

// parseOverrides turns repeated key=value flags into typed overrides.
// Values parse as bool, then int, then float, falling back to string.
func parseOverrides(pairs []string) (map[string]any, error) {
	overrides := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, raw, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --set %q, want key=value", pair)
		}
		switch {
		case raw == "true" || raw == "false":
			overrides[key] = raw == "true"
		default:
			if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
				overrides[key] = i
			} else if f, err := strconv.ParseFloat(raw, 64); err == nil {
				overrides[key] = f
			} else {
				overrides[key] = raw
			}
		}
	}
	return overrides, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "chronatrix:", err)
		os.Exit(2)
	}
}
