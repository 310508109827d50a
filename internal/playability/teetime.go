package playability

import (
	"math"
	"sort"
	"time"

	"github.com/i474232898/golfcast/internal/weather"
)

// DefaultRoundDuration is the length of a standard round.
const DefaultRoundDuration = 4 * time.Hour

// Candidate round starts run from 06:00 to 19:00 inclusive.
const (
	earliestStartHour = 6
	latestStartHour   = 19
)

// optimalHourCandidates is the coarse candidate set used for daily summaries,
// where only low/high temperatures are available.
var optimalHourCandidates = []int{7, 8, 9, 10, 16, 17, 18}

// TeeTimeWindow is a candidate round, scored over its full duration.
// Wind and precipitation chance are window maxima: golfers care about the
// worst moment, not the average.
type TeeTimeWindow struct {
	Start           time.Time             `json:"start"`
	End             time.Time             `json:"end"`
	Score           int                   `json:"score"`
	AvgTemperatureF float64               `json:"avgTemperatureF"`
	MaxWindMPH      float64               `json:"maxWindMph"`
	MaxPrecipChance float64               `json:"maxPrecipChancePercent"`
	WorstCondition  weather.ConditionKind `json:"worstCondition"`
	Recommendation  string                `json:"recommendation"`
}

// OptimalTeeTimes enumerates candidate round starts on the target date, scores
// each window of hourly points, and returns all valid candidates best-first.
// Candidates whose start has already passed, or with no forecast coverage, are
// skipped; an empty result is not an error. Equal scores keep chronological
// order.
func OptimalTeeTimes(points []weather.HourlyForecastPoint, date, now time.Time, duration time.Duration) []TeeTimeWindow {
	if duration <= 0 {
		duration = DefaultRoundDuration
	}

	var windows []TeeTimeWindow
	for hour := earliestStartHour; hour <= latestStartHour; hour++ {
		start := time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, date.Location())
		if start.Before(now) {
			continue
		}
		end := start.Add(duration)

		inWindow := selectWindow(points, start, end)
		if len(inWindow) == 0 {
			continue
		}

		win := aggregateWindow(inWindow, start, end)
		windows = append(windows, win)
	}

	sort.SliceStable(windows, func(i, j int) bool {
		return windows[i].Score > windows[j].Score
	})
	return windows
}

func selectWindow(points []weather.HourlyForecastPoint, start, end time.Time) []weather.HourlyForecastPoint {
	var out []weather.HourlyForecastPoint
	for _, p := range points {
		if !p.Timestamp.Before(start) && !p.Timestamp.After(end) {
			out = append(out, p)
		}
	}
	return out
}

func aggregateWindow(points []weather.HourlyForecastPoint, start, end time.Time) TeeTimeWindow {
	var (
		sumTemp   float64
		maxWind   float64
		maxChance float64
	)

	// The representative condition is the condition of the single worst
	// scoring hour, not a majority vote; one severe hour should dominate.
	worst := points[0].Condition
	worstScore := ScoreHourly(points[0])

	for _, p := range points {
		sumTemp += p.TemperatureF
		maxWind = math.Max(maxWind, p.WindSpeedMPH)
		maxChance = math.Max(maxChance, p.PrecipChancePct)

		if s := ScoreHourly(p); s < worstScore {
			worstScore = s
			worst = p.Condition
		}
	}

	avgTemp := sumTemp / float64(len(points))
	score := AdditiveScore(avgTemp, maxWind, maxChance, worst)

	return TeeTimeWindow{
		Start:           start,
		End:             end,
		Score:           score,
		AvgTemperatureF: avgTemp,
		MaxWindMPH:      maxWind,
		MaxPrecipChance: maxChance,
		WorstCondition:  worst,
		Recommendation:  windowRecommendation(score, avgTemp, maxWind, maxChance),
	}
}

func windowRecommendation(score int, tempF, windMPH, precipChance float64) string {
	switch {
	case score >= 9:
		return "Perfect conditions for golf"
	case score >= 7:
		return "Great time to get a round in"
	case score >= 5:
		switch {
		case tempF < 50:
			return "Playable, but dress warm"
		case windMPH > 15:
			return "Playable, but expect a strong breeze"
		case precipChance > 40:
			return "Playable, but pack rain gear"
		default:
			return "Decent conditions overall"
		}
	case score >= 3:
		return "Tough conditions, consider another time"
	default:
		return "Not recommended"
	}
}

// OptimalGolfHours finds playable hours from a daily summary alone. It is
// intentionally coarser than the window search: a fixed candidate set, an
// interpolated hour-of-day temperature between the day's low and high, and a
// pass/fail threshold.
func OptimalGolfHours(day weather.DailyForecastPoint) []int {
	var hours []int
	for _, h := range optimalHourCandidates {
		est := day.LowTempF + (day.HighTempF-day.LowTempF)*hourTempFactor(h)

		score := 10
		score -= temperaturePenalty(est)
		if day.PrecipChancePct > 50 {
			score -= 4
		}
		if day.WindSpeedMPH > 20 {
			score -= 4
		}

		if clampScore(score) >= 6 {
			hours = append(hours, h)
		}
	}
	return hours
}

// hourTempFactor estimates how far between the daily low and high the
// temperature sits at a given hour, peaking at 15:00.
func hourTempFactor(hour int) float64 {
	f := 1 - math.Abs(15-float64(hour))/9
	return math.Min(1, math.Max(0, f))
}
