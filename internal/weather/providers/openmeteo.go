package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/i474232898/golfcast/internal/weather"
)

const (
	defaultForecastURL = "https://api.open-meteo.com/v1/forecast"
	defaultAlertsURL   = "https://api.weather.gov/alerts/active"
)

// OpenMeteoProvider implements the weather.Provider interface against
// Open-Meteo for observations and forecasts (no API key required) and the NWS
// active-alerts endpoint, since Open-Meteo carries no alert feed.
type OpenMeteoProvider struct {
	name        string
	forecastURL string
	alertsURL   string
	httpCfg     HTTPClientConfig
	forecastCB  *gobreaker.CircuitBreaker
	alertsCB    *gobreaker.CircuitBreaker
}

// Options tunes the provider. Zero values take defaults.
type Options struct {
	ForecastURL string
	AlertsURL   string
	// RPS and Burst configure the local limiter; upstream free tiers are
	// generous but not unlimited. RPS <= 0 disables limiting.
	RPS   float64
	Burst int
}

func NewOpenMeteoProvider(client *http.Client, opts Options) *OpenMeteoProvider {
	if opts.ForecastURL == "" {
		opts.ForecastURL = defaultForecastURL
	}
	if opts.AlertsURL == "" {
		opts.AlertsURL = defaultAlertsURL
	}

	var limiter *rate.Limiter
	if opts.RPS > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RPS), burst)
	}

	newCB := func(name string) *gobreaker.CircuitBreaker {
		return gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: 5,
			Interval:    1 * time.Minute,
			Timeout:     2 * time.Minute,
		})
	}

	return &OpenMeteoProvider{
		name:        "openmeteo",
		forecastURL: opts.ForecastURL,
		alertsURL:   opts.AlertsURL,
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      3,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
			Limiter: limiter,
		},
		forecastCB: newCB("openmeteo"),
		alertsCB:   newCB("nws-alerts"),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

func (p *OpenMeteoProvider) FetchCurrent(ctx context.Context, coord weather.Coordinate) (weather.ProviderSnapshot, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", coord.Lat))
		values.Set("longitude", fmt.Sprintf("%f", coord.Lon))
		values.Set("current", "temperature_2m,relative_humidity_2m,wind_speed_10m,wind_direction_10m,precipitation,weather_code,uv_index")
		values.Set("wind_speed_unit", "ms")
		values.Set("timeformat", "iso8601")
		values.Set("timezone", "UTC")

		u := fmt.Sprintf("%s?%s", p.forecastURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.forecastCB, buildRequest)
	if err != nil {
		return weather.ProviderSnapshot{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Current struct {
			Time             string   `json:"time"`
			Temperature2M    float64  `json:"temperature_2m"`
			RelativeHumidity *float64 `json:"relative_humidity_2m"`
			WindSpeed10M     float64  `json:"wind_speed_10m"`
			WindDirection10M float64  `json:"wind_direction_10m"`
			Precipitation    float64  `json:"precipitation"`
			WeatherCode      int      `json:"weather_code"`
			UVIndex          float64  `json:"uv_index"`
		} `json:"current"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.ProviderSnapshot{}, err
	}

	ts, err := time.Parse("2006-01-02T15:04", payload.Current.Time)
	if err != nil {
		ts = time.Now().UTC()
	} else {
		ts = ts.UTC()
	}

	return weather.ProviderSnapshot{
		Timestamp:        ts,
		TemperatureC:     payload.Current.Temperature2M,
		HumidityPct:      payload.Current.RelativeHumidity,
		WindSpeedMS:      payload.Current.WindSpeed10M,
		WindDirectionDeg: payload.Current.WindDirection10M,
		PrecipMM:         payload.Current.Precipitation,
		WeatherCode:      payload.Current.WeatherCode,
		// Open-Meteo's current block carries no visibility; the normalizer
		// substitutes the documented default.
		UVIndex: payload.Current.UVIndex,
	}, nil
}

func (p *OpenMeteoProvider) FetchForecast(ctx context.Context, coord weather.Coordinate) (weather.ProviderForecastBundle, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", coord.Lat))
		values.Set("longitude", fmt.Sprintf("%f", coord.Lon))
		values.Set("hourly", "temperature_2m,relative_humidity_2m,wind_speed_10m,wind_direction_10m,precipitation_probability,precipitation,weather_code,uv_index,visibility")
		values.Set("daily", "temperature_2m_max,temperature_2m_min,wind_speed_10m_max,precipitation_probability_max,precipitation_sum,weather_code,uv_index_max")
		// Seven days keeps daily summaries available well past hourly
		// coverage; hourly consumers truncate to what they need.
		values.Set("forecast_days", "7")
		values.Set("wind_speed_unit", "ms")
		values.Set("timeformat", "iso8601")
		values.Set("timezone", "UTC")

		u := fmt.Sprintf("%s?%s", p.forecastURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.forecastCB, buildRequest)
	if err != nil {
		return weather.ProviderForecastBundle{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Hourly struct {
			Time             []string   `json:"time"`
			Temperature2M    []float64  `json:"temperature_2m"`
			RelativeHumidity []*float64 `json:"relative_humidity_2m"`
			WindSpeed10M     []float64  `json:"wind_speed_10m"`
			WindDirection10M []float64  `json:"wind_direction_10m"`
			PrecipProb       []float64  `json:"precipitation_probability"`
			Precipitation    []float64  `json:"precipitation"`
			WeatherCode      []int      `json:"weather_code"`
			UVIndex          []float64  `json:"uv_index"`
			Visibility       []*float64 `json:"visibility"`
		} `json:"hourly"`
		Daily struct {
			Time          []string  `json:"time"`
			TempMax       []float64 `json:"temperature_2m_max"`
			TempMin       []float64 `json:"temperature_2m_min"`
			WindSpeedMax  []float64 `json:"wind_speed_10m_max"`
			PrecipProbMax []float64 `json:"precipitation_probability_max"`
			PrecipSum     []float64 `json:"precipitation_sum"`
			WeatherCode   []int     `json:"weather_code"`
			UVIndexMax    []float64 `json:"uv_index_max"`
		} `json:"daily"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.ProviderForecastBundle{}, err
	}

	var bundle weather.ProviderForecastBundle
	for i, raw := range payload.Hourly.Time {
		ts, err := time.Parse("2006-01-02T15:04", raw)
		if err != nil {
			continue
		}
		h := weather.ProviderHourly{Timestamp: ts.UTC()}
		h.TemperatureC = at(payload.Hourly.Temperature2M, i)
		h.WindSpeedMS = at(payload.Hourly.WindSpeed10M, i)
		h.WindDirectionDeg = at(payload.Hourly.WindDirection10M, i)
		h.PrecipChancePct = at(payload.Hourly.PrecipProb, i)
		h.PrecipMM = at(payload.Hourly.Precipitation, i)
		h.UVIndex = at(payload.Hourly.UVIndex, i)
		if i < len(payload.Hourly.WeatherCode) {
			h.WeatherCode = payload.Hourly.WeatherCode[i]
		}
		if i < len(payload.Hourly.RelativeHumidity) {
			h.HumidityPct = payload.Hourly.RelativeHumidity[i]
		}
		if i < len(payload.Hourly.Visibility) {
			h.VisibilityM = payload.Hourly.Visibility[i]
		}
		bundle.Hourly = append(bundle.Hourly, h)
	}

	for i, raw := range payload.Daily.Time {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			continue
		}
		d := weather.ProviderDaily{Date: date.UTC()}
		d.TempMaxC = at(payload.Daily.TempMax, i)
		d.TempMinC = at(payload.Daily.TempMin, i)
		d.WindSpeedMS = at(payload.Daily.WindSpeedMax, i)
		d.PrecipChancePct = at(payload.Daily.PrecipProbMax, i)
		d.PrecipMM = at(payload.Daily.PrecipSum, i)
		d.UVIndex = at(payload.Daily.UVIndexMax, i)
		if i < len(payload.Daily.WeatherCode) {
			d.WeatherCode = payload.Daily.WeatherCode[i]
		}
		bundle.Daily = append(bundle.Daily, d)
	}

	return bundle, nil
}

func (p *OpenMeteoProvider) FetchAlerts(ctx context.Context, coord weather.Coordinate) ([]weather.ProviderAlert, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("point", fmt.Sprintf("%f,%f", coord.Lat, coord.Lon))

		u := fmt.Sprintf("%s?%s", p.alertsURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		// weather.gov requires an identifying user agent.
		req.Header.Set("User-Agent", "golfcast (github.com/i474232898/golfcast)")
		req.Header.Set("Accept", "application/geo+json")
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.alertsCB, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Features []struct {
			Properties struct {
				Event       string     `json:"event"`
				Headline    string     `json:"headline"`
				Description string     `json:"description"`
				Severity    string     `json:"severity"`
				Onset       time.Time  `json:"onset"`
				Ends        *time.Time `json:"ends"`
			} `json:"properties"`
		} `json:"features"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	alerts := make([]weather.ProviderAlert, 0, len(payload.Features))
	for _, f := range payload.Features {
		desc := f.Properties.Headline
		if desc == "" {
			desc = f.Properties.Description
		}
		alerts = append(alerts, weather.ProviderAlert{
			Title:       f.Properties.Event,
			Description: desc,
			Severity:    f.Properties.Severity,
			Start:       f.Properties.Onset,
			End:         f.Properties.Ends,
		})
	}
	return alerts, nil
}

// at is a bounds-checked slice index; Open-Meteo arrays are parallel but not
// guaranteed equal-length on partial outages.
func at(vals []float64, i int) float64 {
	if i < len(vals) {
		return vals[i]
	}
	return 0
}
