package weather

import (
	"context"
	"time"
)

// ProviderSnapshot is a provider-native current observation. Units are the
// provider contract: °C, m/s, millimeters, meters, degrees. Optional fields
// are pointers; the normalizer substitutes documented defaults for nil.
type ProviderSnapshot struct {
	Timestamp        time.Time
	TemperatureC     float64
	HumidityPct      *float64
	WindSpeedMS      float64
	WindDirectionDeg float64
	PrecipMM         float64
	WeatherCode      int // WMO weather interpretation code
	VisibilityM      *float64
	UVIndex          float64
}

// ProviderHourly is one provider-native hourly forecast step.
type ProviderHourly struct {
	Timestamp        time.Time
	TemperatureC     float64
	HumidityPct      *float64
	WindSpeedMS      float64
	WindDirectionDeg float64
	PrecipChancePct  float64
	PrecipMM         float64
	WeatherCode      int
	VisibilityM      *float64
	UVIndex          float64
}

// ProviderDaily is one provider-native daily forecast summary.
type ProviderDaily struct {
	Date            time.Time
	TempMaxC        float64
	TempMinC        float64
	HumidityPct     *float64
	WindSpeedMS     float64
	PrecipChancePct float64
	PrecipMM        float64
	WeatherCode     int
	UVIndex         float64
}

// ProviderForecastBundle is a provider's full forecast response. Hourly points
// are chronological and expected to cover at least the next 24 hours.
type ProviderForecastBundle struct {
	Hourly []ProviderHourly
	Daily  []ProviderDaily
}

// ProviderAlert is a raw active alert as reported by the provider. Severity is
// free text and classified downstream.
type ProviderAlert struct {
	Title       string
	Description string
	Severity    string
	Start       time.Time
	End         *time.Time
}

// Provider abstracts the upstream weather data source. Implementations may be
// slow or rate limited; all calls honor context cancellation.
type Provider interface {
	Name() string
	FetchCurrent(ctx context.Context, coord Coordinate) (ProviderSnapshot, error)
	FetchForecast(ctx context.Context, coord Coordinate) (ProviderForecastBundle, error)
	FetchAlerts(ctx context.Context, coord Coordinate) ([]ProviderAlert, error)
}
