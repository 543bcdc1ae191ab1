package chronatrix

// weatherLabels is the closed WMO code→label table. Codes are the
// standard weather interpretation codes reported by Open-Meteo.
var weatherLabels = map[int]string{
	0:  "clear",
	1:  "mainly_clear",
	2:  "partly_cloudy",
	3:  "overcast",
	45: "fog",
	48: "depositing_rime_fog",
	51: "light_drizzle",
	53: "moderate_drizzle",
	55: "dense_drizzle",
	56: "light_freezing_drizzle",
	57: "dense_freezing_drizzle",
	61: "light_rain",
	63: "moderate_rain",
	65: "heavy_rain",
	66: "light_freezing_rain",
	67: "heavy_freezing_rain",
	71: "light_snow",
	73: "moderate_snow",
	75: "heavy_snow",
	77: "snow_grains",
	80: "light_rain_showers",
	81: "moderate_rain_showers",
	82: "violent_rain_showers",
	85: "light_snow_showers",
	86: "heavy_snow_showers",
	95: "thunderstorm",
	96: "thunderstorm_with_light_hail",
	99: "thunderstorm_with_heavy_hail",
}

// WeatherLabel maps a WMO weather code to its label, or "unknown" for
// any unrecognized code.
func WeatherLabel(code int) string {
	if label, ok := weatherLabels[code]; ok {
		return label
	}
	return "unknown"
}
