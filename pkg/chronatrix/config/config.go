// Package config loads place definitions for the chronatrix CLI.
//
// A places file maps short names to full place descriptors so a
// condition can be checked with `--place paris` instead of six
// coordinate flags:
//
//	default_place: paris
//	places:
//	  paris:
//	    name: Paris
//	    country_code: FR
//	    country_name: France
//	    timezone: Europe/Paris
//	    latitude: 48.8566
//	    longitude: 2.3522
//	    holiday_zone: FR-C
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// PlaceSpec is one place definition as written in a places file.
type PlaceSpec struct {
	Name        string  `yaml:"name" json:"name"`
	CountryCode string  `yaml:"country_code" json:"country_code"`
	CountryName string  `yaml:"country_name" json:"country_name"`
	Timezone    string  `yaml:"timezone" json:"timezone"`
	Latitude    float64 `yaml:"latitude" json:"latitude"`
	Longitude   float64 `yaml:"longitude" json:"longitude"`
	// HolidayZone is the optional school-holiday subdivision code
	// (e.g. "FR-C").
	HolidayZone string `yaml:"holiday_zone" json:"holiday_zone"`
}

// File is a parsed places file.
type File struct {
	// DefaultPlace names the place used when the caller doesn't pick one.
	DefaultPlace string `yaml:"default_place" json:"default_place"`
	// Places maps short names to place definitions.
	Places map[string]PlaceSpec `yaml:"places" json:"places"`
}

// FromFile loads a places file, auto-detecting format by extension.
// Supported extensions: .yaml, .yml, .json
func FromFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read places file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FromYAML(data)
	case ".json":
		return FromJSON(data)
	default:
		return File{}, fmt.Errorf("unsupported places file extension: %s", ext)
	}
}

// FromYAML parses YAML data into a File.
func FromYAML(data []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse yaml: %w", err)
	}
	return f, nil
}

// FromJSON parses JSON data into a File.
func FromJSON(data []byte) (File, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse json: %w", err)
	}
	return f, nil
}

// Place looks up a place by short name. An empty name selects the
// file's default place.
func (f File) Place(name string) (PlaceSpec, bool) {
	if name == "" {
		name = f.DefaultPlace
	}
	spec, ok := f.Places[name]
	return spec, ok
}
