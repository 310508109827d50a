package weather

import (
	"fmt"
	"time"
)

// ConditionKind is the engine's closed set of weather-condition categories.
// All scoring and classification tables are keyed by it.
type ConditionKind string

const (
	ConditionSunny        ConditionKind = "sunny"
	ConditionPartlyCloudy ConditionKind = "partlyCloudy"
	ConditionOvercast     ConditionKind = "overcast"
	ConditionDrizzle      ConditionKind = "drizzle"
	ConditionLightRain    ConditionKind = "lightRain"
	ConditionHeavyRain    ConditionKind = "heavyRain"
	ConditionThunderstorm ConditionKind = "thunderstorm"
	ConditionFog          ConditionKind = "fog"
	ConditionSnow         ConditionKind = "snow"
)

// AlertSeverity mirrors the provider's four-value severity scale.
type AlertSeverity string

const (
	SeverityMinor    AlertSeverity = "minor"
	SeverityModerate AlertSeverity = "moderate"
	SeveritySevere   AlertSeverity = "severe"
	SeverityExtreme  AlertSeverity = "extreme"
)

// GolfImpact grades how much an alert should affect a round of golf.
type GolfImpact string

const (
	ImpactMinimal     GolfImpact = "minimal"
	ImpactModerate    GolfImpact = "moderate"
	ImpactSignificant GolfImpact = "significant"
	ImpactProhibitive GolfImpact = "prohibitive"
)

// Coordinate is a geographic point in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Key returns a canonical string for indexing this coordinate in caches.
// Coordinates are rounded to four decimals (~11 m) so nearby queries share entries.
func (c Coordinate) Key() string {
	return fmt.Sprintf("%.4f_%.4f", c.Lat, c.Lon)
}

// Valid reports whether the coordinate is within the WGS84 range.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// WeatherConditions is a normalized point-in-time observation in the engine's
// canonical units (°F, mph, inches, miles). Immutable once constructed.
type WeatherConditions struct {
	Coordinate    Coordinate    `json:"coordinate"`
	Timestamp     time.Time     `json:"timestamp"` // always UTC
	TemperatureF  float64       `json:"temperatureF"`
	HumidityPct   float64       `json:"humidityPercent"`
	WindSpeedMPH  float64       `json:"windSpeedMph"`
	WindDirection string        `json:"windDirection"` // 16-point compass label
	PrecipIn      float64       `json:"precipitationInches"`
	Condition     ConditionKind `json:"condition"`
	VisibilityMi  float64       `json:"visibilityMiles"`
	UVIndex       int           `json:"uvIndex"`
	Sunrise       string        `json:"sunrise"` // local time of day, "15:04"
	Sunset        string        `json:"sunset"`
}

// HourlyForecastPoint is one hour's projection. Unlike an observation it
// carries a precipitation probability, not just an observed condition.
type HourlyForecastPoint struct {
	Timestamp       time.Time     `json:"timestamp"`
	TemperatureF    float64       `json:"temperatureF"`
	HumidityPct     float64       `json:"humidityPercent"`
	WindSpeedMPH    float64       `json:"windSpeedMph"`
	WindDirection   string        `json:"windDirection"`
	PrecipChancePct float64       `json:"precipChancePercent"`
	PrecipIn        float64       `json:"precipitationInches"`
	Condition       ConditionKind `json:"condition"`
	UVIndex         int           `json:"uvIndex"`
	VisibilityMi    float64       `json:"visibilityMiles"`
}

// DailyForecastPoint summarizes one calendar day.
type DailyForecastPoint struct {
	Date            time.Time     `json:"date"`
	HighTempF       float64       `json:"highTempF"`
	LowTempF        float64       `json:"lowTempF"`
	HumidityPct     float64       `json:"humidityPercent"`
	WindSpeedMPH    float64       `json:"windSpeedMph"`
	PrecipChancePct float64       `json:"precipChancePercent"`
	PrecipIn        float64       `json:"precipitationInches"`
	Condition       ConditionKind `json:"condition"`
	UVIndex         int           `json:"uvIndex"`
	Sunrise         string        `json:"sunrise"`
	Sunset          string        `json:"sunset"`
}

// ForecastBundle is the normalized view of one provider forecast response.
// Hourly covers the near term; Daily extends beyond hourly coverage. The
// forecast cache stores the bundle whole so hourly and daily queries share
// one provider call.
type ForecastBundle struct {
	Hourly []HourlyForecastPoint `json:"hourly"`
	Daily  []DailyForecastPoint  `json:"daily"`
}

// WeatherAlert is a classified active alert. Alerts are derived fresh on every
// query and never cached, so they always reflect the provider's latest state.
type WeatherAlert struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Severity    AlertSeverity `json:"severity"`
	Start       time.Time     `json:"start"`
	End         *time.Time    `json:"end,omitempty"`
	Impact      GolfImpact    `json:"golfImpact"`
}
