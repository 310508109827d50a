package weather

import "errors"

var (
	// ErrFetchFailed is returned when a current-conditions provider call fails.
	ErrFetchFailed = errors.New("weather fetch failed")

	// ErrForecastFailed is returned when a forecast fetch or derivation fails.
	ErrForecastFailed = errors.New("forecast fetch failed")

	// ErrLocationUnavailable is returned for coordinates outside the valid range.
	ErrLocationUnavailable = errors.New("location unavailable")

	// ErrRateLimited is returned when the provider quota is exhausted.
	ErrRateLimited = errors.New("rate limit exceeded")
)
