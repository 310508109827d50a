// Package engine is the facade over the weather provider, the two TTL caches,
// and the playability derivations. On any public query it checks the relevant
// cache, calls the provider on a miss, normalizes, caches, and returns.
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/i474232898/golfcast/internal/cache"
	"github.com/i474232898/golfcast/internal/playability"
	"github.com/i474232898/golfcast/internal/weather"
)

const (
	// DefaultCurrentTTL and DefaultForecastTTL differ because forecast data
	// changes far less often than live observation; the longer window also
	// amortizes provider calls for the hourly-then-daily derivation pattern.
	DefaultCurrentTTL  = 10 * time.Minute
	DefaultForecastTTL = 30 * time.Minute

	DefaultMaxEntries = 50
	DefaultMaxBytes   = 512 * 1024

	// fullForecastHours is the canonical hourly fetch length. The daily path
	// re-derives from this entry instead of issuing a second provider call.
	fullForecastHours = 24

	defaultFetchTimeout = 15 * time.Second
)

// Config tunes the engine. Zero values take the documented defaults.
type Config struct {
	CurrentTTL   time.Duration
	ForecastTTL  time.Duration
	MaxEntries   int
	MaxBytes     int
	FetchTimeout time.Duration
	Clock        clockwork.Clock
}

// Engine orchestrates provider fetches, normalization, caching, and scoring.
// The caches are owned by the engine and constructed once; callers receive an
// engine handle rather than reaching into shared state. Safe for concurrent
// use; no locks are held across provider calls.
type Engine struct {
	provider     weather.Provider
	current      *cache.Cache[weather.WeatherConditions]
	forecast     *cache.Cache[weather.ForecastBundle]
	clock        clockwork.Clock
	fetchTimeout time.Duration
}

// New creates an Engine around the given provider.
func New(provider weather.Provider, cfg Config) *Engine {
	if cfg.CurrentTTL <= 0 {
		cfg.CurrentTTL = DefaultCurrentTTL
	}
	if cfg.ForecastTTL <= 0 {
		cfg.ForecastTTL = DefaultForecastTTL
	}
	if cfg.MaxEntries == 0 {
		cfg.MaxEntries = DefaultMaxEntries
	}
	if cfg.MaxBytes == 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = defaultFetchTimeout
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}

	return &Engine{
		provider:     provider,
		current:      cache.New(cfg.CurrentTTL, cfg.MaxEntries, cfg.MaxBytes, jsonSize[weather.WeatherConditions], cfg.Clock),
		forecast:     cache.New(cfg.ForecastTTL, cfg.MaxEntries, cfg.MaxBytes, jsonSize[weather.ForecastBundle], cfg.Clock),
		clock:        cfg.Clock,
		fetchTimeout: cfg.FetchTimeout,
	}
}

// CurrentWeather returns normalized current conditions, serving from the
// current-conditions cache within its TTL.
func (e *Engine) CurrentWeather(ctx context.Context, coord weather.Coordinate) (weather.WeatherConditions, error) {
	if !coord.Valid() {
		return weather.WeatherConditions{}, weather.ErrLocationUnavailable
	}

	key := currentKey(coord)
	if cond, ok := e.current.Get(key); ok {
		return cond, nil
	}

	fetchCtx, cancel := context.WithTimeout(ctx, e.fetchTimeout)
	defer cancel()

	snap, err := e.provider.FetchCurrent(fetchCtx, coord)
	if err != nil {
		return weather.WeatherConditions{}, wrapFetchErr(weather.ErrFetchFailed, err)
	}
	if ctx.Err() != nil {
		// Cancelled fetches never reach the cache.
		return weather.WeatherConditions{}, ctx.Err()
	}

	cond := weather.NormalizeCurrent(coord, snap)
	e.current.Put(key, cond)
	return cond, nil
}

// CachedWeather returns the cached current conditions for a coordinate, or nil
// if none are within the TTL. It never triggers a provider call.
func (e *Engine) CachedWeather(coord weather.Coordinate) *weather.WeatherConditions {
	if cond, ok := e.current.Get(currentKey(coord)); ok {
		return &cond
	}
	return nil
}

// HourlyForecast returns up to `hours` chronological forecast points. The
// cache key includes the requested count, so distinct counts populate distinct
// entries; a miss falls back to the canonical 24-hour entry and serves a
// subset from it before going to the provider.
func (e *Engine) HourlyForecast(ctx context.Context, coord weather.Coordinate, hours int) ([]weather.HourlyForecastPoint, error) {
	if !coord.Valid() {
		return nil, weather.ErrLocationUnavailable
	}
	if hours <= 0 {
		return nil, fmt.Errorf("%w: hours must be positive", weather.ErrForecastFailed)
	}

	if b, ok := e.forecast.Get(hourlyKey(coord, hours)); ok {
		return b.Hourly, nil
	}
	if hours < fullForecastHours {
		if b, ok := e.forecast.Get(hourlyKey(coord, fullForecastHours)); ok {
			return truncateHours(b.Hourly, hours), nil
		}
	}

	b, err := e.fetchForecast(ctx, coord, hours)
	if err != nil {
		return nil, err
	}
	return b.Hourly, nil
}

// DailyForecast returns up to `days` daily summaries. Internally it reads the
// canonical 24-hour forecast-cache entry rather than issuing a second provider
// call: near-term days are re-derived from the hourly points, and later days
// come from the provider daily summaries cached alongside them in the same
// bundle. This coupling is intentional.
func (e *Engine) DailyForecast(ctx context.Context, coord weather.Coordinate, days int) ([]weather.DailyForecastPoint, error) {
	if !coord.Valid() {
		return nil, weather.ErrLocationUnavailable
	}
	if days <= 0 {
		return nil, fmt.Errorf("%w: days must be positive", weather.ErrForecastFailed)
	}

	bundle, ok := e.forecast.Get(hourlyKey(coord, fullForecastHours))
	if !ok {
		var err error
		bundle, err = e.fetchForecast(ctx, coord, fullForecastHours)
		if err != nil {
			return nil, err
		}
	}

	daily := extendDaily(deriveDaily(coord, bundle.Hourly), bundle.Daily)
	if len(daily) > days {
		daily = daily[:days]
	}
	return daily, nil
}

// PlayabilityScore computes the six-factor score from current conditions.
// Scores are never cached separately; they are cheap to recompute from the
// cached conditions they derive from.
func (e *Engine) PlayabilityScore(ctx context.Context, coord weather.Coordinate) (playability.Score, error) {
	cond, err := e.CurrentWeather(ctx, coord)
	if err != nil {
		return playability.Score{}, err
	}
	return playability.ScoreConditions(cond, e.clock.Now().UTC()), nil
}

// OptimalTeeTimes ranks candidate round-start windows on the target date,
// best-first, from the 24-hour hourly forecast.
func (e *Engine) OptimalTeeTimes(ctx context.Context, coord weather.Coordinate, date time.Time) ([]playability.TeeTimeWindow, error) {
	pts, err := e.HourlyForecast(ctx, coord, fullForecastHours)
	if err != nil {
		return nil, err
	}
	return playability.OptimalTeeTimes(pts, date, e.clock.Now(), playability.DefaultRoundDuration), nil
}

// Alerts returns classified active alerts. Alerts always bypass the caches,
// and provider failure degrades to an empty list rather than an error: a
// missing alert feed should not block anything else, and absence of alerts is
// a safe default.
func (e *Engine) Alerts(ctx context.Context, coord weather.Coordinate) ([]weather.WeatherAlert, error) {
	if !coord.Valid() {
		return nil, weather.ErrLocationUnavailable
	}

	fetchCtx, cancel := context.WithTimeout(ctx, e.fetchTimeout)
	defer cancel()

	raw, err := e.provider.FetchAlerts(fetchCtx, coord)
	if err != nil {
		log.Printf("alerts fetch failed for %s: %v", coord.Key(), err)
		return []weather.WeatherAlert{}, nil
	}

	alerts := make([]weather.WeatherAlert, 0, len(raw))
	for _, a := range raw {
		alerts = append(alerts, playability.ClassifyAlert(a))
	}
	return alerts, nil
}

// ClearCache removes all cached entries from both caches.
func (e *Engine) ClearCache() {
	e.current.Clear()
	e.forecast.Clear()
}

func (e *Engine) fetchForecast(ctx context.Context, coord weather.Coordinate, hours int) (weather.ForecastBundle, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, e.fetchTimeout)
	defer cancel()

	raw, err := e.provider.FetchForecast(fetchCtx, coord)
	if err != nil {
		return weather.ForecastBundle{}, wrapFetchErr(weather.ErrForecastFailed, err)
	}
	if ctx.Err() != nil {
		return weather.ForecastBundle{}, ctx.Err()
	}

	bundle := weather.ForecastBundle{
		Hourly: make([]weather.HourlyForecastPoint, 0, len(raw.Hourly)),
		Daily:  make([]weather.DailyForecastPoint, 0, len(raw.Daily)),
	}
	for _, h := range raw.Hourly {
		bundle.Hourly = append(bundle.Hourly, weather.NormalizeHourly(h))
	}
	bundle.Hourly = truncateHours(bundle.Hourly, hours)
	for _, d := range raw.Daily {
		bundle.Daily = append(bundle.Daily, weather.NormalizeDaily(coord, d))
	}

	e.forecast.Put(hourlyKey(coord, hours), bundle)
	return bundle, nil
}

// extendDaily appends provider daily summaries for dates past the last day
// derivable from hourly coverage. Both inputs are chronological.
func extendDaily(derived, provider []weather.DailyForecastPoint) []weather.DailyForecastPoint {
	out := derived
	for _, d := range provider {
		if len(out) == 0 || d.Date.After(out[len(out)-1].Date) {
			out = append(out, d)
		}
	}
	return out
}

// deriveDaily groups hourly points by UTC calendar day and rolls each group
// up into a daily summary. The dominant condition is a majority vote; high
// and low come from the group's extremes.
func deriveDaily(coord weather.Coordinate, pts []weather.HourlyForecastPoint) []weather.DailyForecastPoint {
	byDay := make(map[string][]weather.HourlyForecastPoint)
	for _, p := range pts {
		day := p.Timestamp.UTC().Format("2006-01-02")
		byDay[day] = append(byDay[day], p)
	}

	days := make([]string, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Strings(days)

	out := make([]weather.DailyForecastPoint, 0, len(days))
	for _, d := range days {
		group := byDay[d]
		date, _ := time.Parse("2006-01-02", d)

		dp := weather.DailyForecastPoint{
			Date:      date,
			HighTempF: group[0].TemperatureF,
			LowTempF:  group[0].TemperatureF,
			Condition: dominantCondition(group),
		}
		rise, set := weather.SunTimes(coord, date)
		dp.Sunrise, dp.Sunset = rise, set

		var sumHumidity float64
		for _, p := range group {
			if p.TemperatureF > dp.HighTempF {
				dp.HighTempF = p.TemperatureF
			}
			if p.TemperatureF < dp.LowTempF {
				dp.LowTempF = p.TemperatureF
			}
			if p.WindSpeedMPH > dp.WindSpeedMPH {
				dp.WindSpeedMPH = p.WindSpeedMPH
			}
			if p.PrecipChancePct > dp.PrecipChancePct {
				dp.PrecipChancePct = p.PrecipChancePct
			}
			if p.UVIndex > dp.UVIndex {
				dp.UVIndex = p.UVIndex
			}
			dp.PrecipIn += p.PrecipIn
			sumHumidity += p.HumidityPct
		}
		dp.HumidityPct = sumHumidity / float64(len(group))

		out = append(out, dp)
	}
	return out
}

func dominantCondition(group []weather.HourlyForecastPoint) weather.ConditionKind {
	counts := make(map[weather.ConditionKind]int)
	best := group[0].Condition
	bestCount := 0
	for _, p := range group {
		counts[p.Condition]++
		if counts[p.Condition] > bestCount {
			bestCount = counts[p.Condition]
			best = p.Condition
		}
	}
	return best
}

func truncateHours(pts []weather.HourlyForecastPoint, hours int) []weather.HourlyForecastPoint {
	if len(pts) > hours {
		return pts[:hours]
	}
	return pts
}

func currentKey(coord weather.Coordinate) string {
	return "current:" + coord.Key()
}

func hourlyKey(coord weather.Coordinate, hours int) string {
	return fmt.Sprintf("hourly:%s:%d", coord.Key(), hours)
}

func wrapFetchErr(kind error, err error) error {
	if errors.Is(err, weather.ErrRateLimited) {
		return err
	}
	return fmt.Errorf("%w: %v", kind, err)
}

// jsonSize estimates an entry's byte cost as the length of its JSON encoding.
func jsonSize[T any](v T) int {
	b, err := json.Marshal(v)
	if err != nil {
		return 0
	}
	return len(b)
}
