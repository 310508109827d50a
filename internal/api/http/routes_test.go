package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/golfcast/internal/engine"
	"github.com/i474232898/golfcast/internal/weather"
)

// stubProvider serves fixed data so handlers can be exercised without network.
type stubProvider struct {
	fail bool
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) FetchCurrent(_ context.Context, _ weather.Coordinate) (weather.ProviderSnapshot, error) {
	if s.fail {
		return weather.ProviderSnapshot{}, fmt.Errorf("provider down")
	}
	return weather.ProviderSnapshot{
		Timestamp:    time.Now().UTC(),
		TemperatureC: 22,
		WeatherCode:  0,
	}, nil
}

func (s *stubProvider) FetchForecast(_ context.Context, _ weather.Coordinate) (weather.ProviderForecastBundle, error) {
	if s.fail {
		return weather.ProviderForecastBundle{}, fmt.Errorf("provider down")
	}
	var bundle weather.ProviderForecastBundle
	base := time.Now().UTC().Truncate(time.Hour)
	for h := 0; h < 24; h++ {
		bundle.Hourly = append(bundle.Hourly, weather.ProviderHourly{
			Timestamp:    base.Add(time.Duration(h) * time.Hour),
			TemperatureC: 20,
			WeatherCode:  1,
		})
	}
	return bundle, nil
}

func (s *stubProvider) FetchAlerts(_ context.Context, _ weather.Coordinate) ([]weather.ProviderAlert, error) {
	return nil, nil
}

func newTestApp(prov weather.Provider) *fiber.App {
	app := fiber.New()
	eng := engine.New(prov, engine.Config{})
	RegisterRoutes(app, eng)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return resp
}

func TestCoordinateValidation(t *testing.T) {
	app := newTestApp(&stubProvider{})

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"missing lat/lon", "/api/v1/weather/current", http.StatusBadRequest},
		{"latitude out of range", "/api/v1/weather/current?lat=91&lon=0", http.StatusBadRequest},
		{"longitude out of range", "/api/v1/weather/current?lat=0&lon=181", http.StatusBadRequest},
		{"non-numeric", "/api/v1/weather/current?lat=abc&lon=0", http.StatusBadRequest},
		{"valid", "/api/v1/weather/current?lat=37.77&lon=-122.42", http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, app, http.MethodGet, tc.target)
			if resp.StatusCode != tc.want {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tc.want)
			}
		})
	}
}

func TestForecastCountValidation(t *testing.T) {
	app := newTestApp(&stubProvider{})

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"hours too large", "/api/v1/weather/hourly?lat=37.77&lon=-122.42&hours=25", http.StatusBadRequest},
		{"hours zero", "/api/v1/weather/hourly?lat=37.77&lon=-122.42&hours=0", http.StatusBadRequest},
		{"hours valid", "/api/v1/weather/hourly?lat=37.77&lon=-122.42&hours=6", http.StatusOK},
		{"days too large", "/api/v1/weather/daily?lat=37.77&lon=-122.42&days=8", http.StatusBadRequest},
		{"days valid", "/api/v1/weather/daily?lat=37.77&lon=-122.42&days=1", http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, app, http.MethodGet, tc.target)
			if resp.StatusCode != tc.want {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tc.want)
			}
		})
	}
}

func TestHourlyPointsCarryPlayabilityScores(t *testing.T) {
	app := newTestApp(&stubProvider{})

	resp := doRequest(t, app, http.MethodGet, "/api/v1/weather/hourly?lat=37.77&lon=-122.42&hours=3")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	defer resp.Body.Close()

	var body struct {
		Points []struct {
			TemperatureF         float64 `json:"temperatureF"`
			GolfPlayabilityScore int     `json:"golfPlayabilityScore"`
		} `json:"points"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	if len(body.Points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(body.Points))
	}
	for i, p := range body.Points {
		// Mild, dry, calm conditions score a perfect 10.
		if p.GolfPlayabilityScore != 10 {
			t.Errorf("point %d score = %d, want 10", i, p.GolfPlayabilityScore)
		}
		if p.TemperatureF != 68 {
			t.Errorf("point %d temperature = %v, want 68", i, p.TemperatureF)
		}
	}
}

func TestCachedWeatherEndpoint(t *testing.T) {
	app := newTestApp(&stubProvider{})

	// Nothing cached yet.
	resp := doRequest(t, app, http.MethodGet, "/api/v1/weather/cached?lat=37.77&lon=-122.42")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 before any fetch", resp.StatusCode)
	}

	// A successful current-weather fetch populates the cache.
	resp = doRequest(t, app, http.MethodGet, "/api/v1/weather/current?lat=37.77&lon=-122.42")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	resp = doRequest(t, app, http.MethodGet, "/api/v1/weather/cached?lat=37.77&lon=-122.42")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 after fetch", resp.StatusCode)
	}

	// Clearing the cache empties it again.
	resp = doRequest(t, app, http.MethodDelete, "/api/v1/cache")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", resp.StatusCode)
	}
	resp = doRequest(t, app, http.MethodGet, "/api/v1/weather/cached?lat=37.77&lon=-122.42")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 after clear", resp.StatusCode)
	}
}

func TestProviderFailureMapsToBadGateway(t *testing.T) {
	app := newTestApp(&stubProvider{fail: true})

	resp := doRequest(t, app, http.MethodGet, "/api/v1/weather/current?lat=37.77&lon=-122.42")
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", resp.StatusCode)
	}
}

func TestTeeTimesDateValidation(t *testing.T) {
	app := newTestApp(&stubProvider{})

	resp := doRequest(t, app, http.MethodGet, "/api/v1/golf/tee-times?lat=37.77&lon=-122.42&date=yesterday")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for malformed date", resp.StatusCode)
	}

	resp = doRequest(t, app, http.MethodGet, "/api/v1/golf/tee-times?lat=37.77&lon=-122.42")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestAlertsDegradeGracefully(t *testing.T) {
	app := newTestApp(&stubProvider{fail: true})

	resp := doRequest(t, app, http.MethodGet, "/api/v1/weather/alerts?lat=37.77&lon=-122.42")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 even when the alert feed is down", resp.StatusCode)
	}
}
