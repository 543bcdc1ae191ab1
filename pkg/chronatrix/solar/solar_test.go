package solar_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/coality/chronatrix/pkg/chronatrix/solar"
)

func TestSunriseSunset(t *testing.T) {
	p := solar.Provider{}
	date := time.Date(2024, 4, 12, 0, 0, 0, 0, time.UTC)

	rise, set, err := p.SunriseSunset(context.Background(), 48.8566, 2.3522, date)
	if err != nil {
		t.Fatalf("SunriseSunset: %v", err)
	}

	if !rise.Before(set) {
		t.Errorf("sunrise %v not before sunset %v", rise, set)
	}
	if rise.UTC().Year() != 2024 || rise.UTC().Month() != time.April || rise.UTC().Day() != 12 {
		t.Errorf("sunrise %v not on requested day", rise)
	}
	// Mid-April Paris: sunrise well before noon UTC, sunset well after.
	noon := time.Date(2024, 4, 12, 12, 0, 0, 0, time.UTC)
	if !rise.Before(noon) || !set.After(noon) {
		t.Errorf("rise %v / set %v do not bracket solar noon", rise, set)
	}
}

func TestSunriseSunset_PolarNight(t *testing.T) {
	p := solar.Provider{}
	// Svalbard in mid-winter: the sun never rises.
	date := time.Date(2024, 12, 21, 0, 0, 0, 0, time.UTC)

	_, _, err := p.SunriseSunset(context.Background(), 78.2232, 15.6267, date)
	if !errors.Is(err, solar.ErrUnavailable) {
		t.Errorf("polar night err = %v, want ErrUnavailable", err)
	}
}

func TestSunriseSunset_PolarDay(t *testing.T) {
	p := solar.Provider{}
	// Svalbard in mid-summer: the sun never sets.
	date := time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)

	_, _, err := p.SunriseSunset(context.Background(), 78.2232, 15.6267, date)
	if !errors.Is(err, solar.ErrUnavailable) {
		t.Errorf("polar day err = %v, want ErrUnavailable", err)
	}
}
