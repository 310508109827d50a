package httpapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/golfcast/internal/engine"
	"github.com/i474232898/golfcast/internal/playability"
	"github.com/i474232898/golfcast/internal/weather"
)

// dailyView decorates a daily point with its derived playable hours.
type dailyView struct {
	weather.DailyForecastPoint
	OptimalGolfHours []int `json:"optimalGolfHours"`
}

// hourlyView decorates an hourly point with its derived playability score.
type hourlyView struct {
	weather.HourlyForecastPoint
	GolfPlayabilityScore int `json:"golfPlayabilityScore"`
}

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, eng *engine.Engine) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		coord, err := parseCoordinateQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		cond, err := eng.CurrentWeather(c.Context(), coord)
		if err != nil {
			return apiError(err)
		}
		return c.JSON(cond)
	})

	v1.Get("/weather/cached", func(c *fiber.Ctx) error {
		coord, err := parseCoordinateQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		cond := eng.CachedWeather(coord)
		if cond == nil {
			return fiber.NewError(fiber.StatusNotFound, "no cached weather for requested location")
		}
		return c.JSON(cond)
	})

	v1.Get("/weather/hourly", func(c *fiber.Ctx) error {
		var req forecastQuery
		if err := req.bind(c, "hours", 12); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		points, err := eng.HourlyForecast(c.Context(), req.coordinate(), req.Count)
		if err != nil {
			return apiError(err)
		}

		hours := make([]hourlyView, 0, len(points))
		for _, p := range points {
			hours = append(hours, hourlyView{
				HourlyForecastPoint:  p,
				GolfPlayabilityScore: playability.ScoreHourly(p),
			})
		}
		return c.JSON(fiber.Map{
			"coordinate": req.coordinate(),
			"hours":      req.Count,
			"points":     hours,
		})
	})

	v1.Get("/weather/daily", func(c *fiber.Ctx) error {
		var req forecastQuery
		if err := req.bind(c, "days", 1); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Count > 7 {
			return fiber.NewError(fiber.StatusBadRequest, "days must be between 1 and 7")
		}

		points, err := eng.DailyForecast(c.Context(), req.coordinate(), req.Count)
		if err != nil {
			return apiError(err)
		}

		days := make([]dailyView, 0, len(points))
		for _, p := range points {
			days = append(days, dailyView{
				DailyForecastPoint: p,
				OptimalGolfHours:   playability.OptimalGolfHours(p),
			})
		}
		return c.JSON(fiber.Map{
			"coordinate": req.coordinate(),
			"days":       req.Count,
			"points":     days,
		})
	})

	v1.Get("/weather/alerts", func(c *fiber.Ctx) error {
		coord, err := parseCoordinateQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		alerts, err := eng.Alerts(c.Context(), coord)
		if err != nil {
			return apiError(err)
		}
		return c.JSON(fiber.Map{
			"coordinate": coord,
			"alerts":     alerts,
		})
	})

	v1.Get("/golf/playability", func(c *fiber.Ctx) error {
		coord, err := parseCoordinateQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		score, err := eng.PlayabilityScore(c.Context(), coord)
		if err != nil {
			return apiError(err)
		}
		return c.JSON(score)
	})

	v1.Get("/golf/tee-times", func(c *fiber.Ctx) error {
		coord, err := parseCoordinateQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		date := time.Now().UTC()
		if raw := c.Query("date"); raw != "" {
			parsed, err := time.Parse("2006-01-02", raw)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "invalid date; use YYYY-MM-DD")
			}
			date = parsed
		}

		windows, err := eng.OptimalTeeTimes(c.Context(), coord, date)
		if err != nil {
			return apiError(err)
		}
		return c.JSON(fiber.Map{
			"coordinate": coord,
			"date":       date.Format("2006-01-02"),
			"windows":    windows,
		})
	})

	v1.Delete("/cache", func(c *fiber.Ctx) error {
		eng.ClearCache()
		return c.SendStatus(fiber.StatusNoContent)
	})
}

// coordinateQuery holds the lat/lon query parameters.
type coordinateQuery struct {
	Lat float64 `validate:"gte=-90,lte=90"`
	Lon float64 `validate:"gte=-180,lte=180"`
}

func parseCoordinateQuery(c *fiber.Ctx) (weather.Coordinate, error) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" || lonStr == "" {
		return weather.Coordinate{}, errors.New("lat and lon query parameters are required")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return weather.Coordinate{}, errors.New("invalid lat value")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return weather.Coordinate{}, errors.New("invalid lon value")
	}

	q := coordinateQuery{Lat: lat, Lon: lon}
	if err := validate.Struct(q); err != nil {
		return weather.Coordinate{}, err
	}

	return weather.Coordinate{Lat: lat, Lon: lon}, nil
}

// forecastQuery holds coordinates plus a forecast length parameter.
type forecastQuery struct {
	Coord weather.Coordinate
	Count int `validate:"gte=1,lte=24"`
}

func (f *forecastQuery) bind(c *fiber.Ctx, param string, def int) error {
	coord, err := parseCoordinateQuery(c)
	if err != nil {
		return err
	}
	f.Coord = coord

	f.Count = def
	if raw := c.Query(param); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return errors.New("invalid " + param + " value")
		}
		f.Count = n
	}

	return validate.Struct(f)
}

func (f forecastQuery) coordinate() weather.Coordinate {
	return f.Coord
}

// apiError maps engine errors onto HTTP statuses.
func apiError(err error) error {
	switch {
	case errors.Is(err, weather.ErrLocationUnavailable):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, weather.ErrRateLimited):
		return fiber.NewError(fiber.StatusTooManyRequests, err.Error())
	case errors.Is(err, weather.ErrFetchFailed), errors.Is(err, weather.ErrForecastFailed):
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "internal error")
	}
}
