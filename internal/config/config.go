package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/golfcast/internal/weather"
)

type AppConfig struct {
	Port string

	// Cache tuning. Forecast data changes less often than live observation,
	// hence the longer TTL.
	CurrentTTL      time.Duration
	ForecastTTL     time.Duration
	CacheMaxEntries int
	CacheMaxBytes   int

	// Outbound HTTP.
	HTTPTimeout   time.Duration
	ProviderRPS   float64
	ProviderBurst int
	ForecastURL   string
	AlertsURL     string

	// Coordinates refreshed by the background monitor.
	MonitorCoordinates []weather.Coordinate
	MonitorInterval    time.Duration
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		Port:            getenvDefault("PORT", "8080"),
		CacheMaxEntries: getenvInt("CACHE_MAX_ENTRIES", 50),
		CacheMaxBytes:   getenvInt("CACHE_MAX_BYTES", 512*1024),
		ProviderRPS:     getenvFloat("PROVIDER_RPS", 2),
		ProviderBurst:   getenvInt("PROVIDER_BURST", 5),
		ForecastURL:     os.Getenv("FORECAST_BASE_URL"),
		AlertsURL:       os.Getenv("ALERTS_BASE_URL"),
	}

	var err error
	if cfg.CurrentTTL, err = getenvDuration("CURRENT_TTL", "10m"); err != nil {
		return nil, err
	}
	if cfg.ForecastTTL, err = getenvDuration("FORECAST_TTL", "30m"); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.MonitorInterval, err = getenvDuration("MONITOR_INTERVAL", "5m"); err != nil {
		return nil, err
	}

	coords, err := parseCoordinates(os.Getenv("MONITOR_COORDINATES"))
	if err != nil {
		return nil, err
	}
	cfg.MonitorCoordinates = coords

	return cfg, nil
}

// parseCoordinates parses "lat,lon;lat,lon" pairs. An empty value disables
// the monitor.
func parseCoordinates(s string) ([]weather.Coordinate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var coords []weather.Coordinate
	for _, pair := range strings.Split(s, ";") {
		parts := strings.Split(pair, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid MONITOR_COORDINATES entry %q", pair)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude in %q: %w", pair, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude in %q: %w", pair, err)
		}
		coord := weather.Coordinate{Lat: lat, Lon: lon}
		if !coord.Valid() {
			return nil, fmt.Errorf("coordinate out of range: %q", pair)
		}
		coords = append(coords, coord)
	}
	return coords, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	v := getenvDefault(key, def)
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
