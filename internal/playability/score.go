// Package playability derives golf-specific views from normalized weather
// data: playability scores, ranked tee-time windows, and alert classification.
package playability

import (
	"time"

	"github.com/i474232898/golfcast/internal/weather"
)

// Recommendation labels the overall playability tier.
type Recommendation string

const (
	RecommendationExcellent Recommendation = "excellent"
	RecommendationGood      Recommendation = "good"
	RecommendationFair      Recommendation = "fair"
	RecommendationPoor      Recommendation = "poor"
	RecommendationDangerous Recommendation = "dangerous"
)

// Score is the six-factor playability breakdown for observed conditions.
// Overall is the integer-truncated mean of the six sub-scores, each in [0,10].
type Score struct {
	Coordinate     weather.Coordinate        `json:"coordinate"`
	ComputedAt     time.Time                 `json:"computedAt"`
	Overall        int                       `json:"overallScore"`
	Temperature    int                       `json:"temperatureScore"`
	Wind           int                       `json:"windScore"`
	Precipitation  int                       `json:"precipitationScore"`
	Visibility     int                       `json:"visibilityScore"`
	UV             int                       `json:"uvScore"`
	Condition      int                       `json:"conditionScore"`
	Conditions     weather.WeatherConditions `json:"conditions"`
	Recommendation Recommendation            `json:"recommendation"`
}

// precipScoreByCondition scores observed precipitation by condition category,
// not raw amount.
var precipScoreByCondition = map[weather.ConditionKind]int{
	weather.ConditionSunny:        10,
	weather.ConditionPartlyCloudy: 10,
	weather.ConditionOvercast:     8,
	weather.ConditionFog:          6,
	weather.ConditionDrizzle:      4,
	weather.ConditionLightRain:    2,
	weather.ConditionHeavyRain:    0,
	weather.ConditionThunderstorm: 0,
	weather.ConditionSnow:         0,
}

var overallScoreByCondition = map[weather.ConditionKind]int{
	weather.ConditionSunny:        10,
	weather.ConditionPartlyCloudy: 9,
	weather.ConditionOvercast:     7,
	weather.ConditionFog:          5,
	weather.ConditionDrizzle:      4,
	weather.ConditionLightRain:    2,
	weather.ConditionHeavyRain:    0,
	weather.ConditionThunderstorm: 0,
	weather.ConditionSnow:         0,
}

// additivePenaltyByCondition is the condition penalty for the additive scorer.
var additivePenaltyByCondition = map[weather.ConditionKind]int{
	weather.ConditionThunderstorm: 6,
	weather.ConditionHeavyRain:    6,
	weather.ConditionSnow:         6,
	weather.ConditionLightRain:    3,
	weather.ConditionDrizzle:      3,
	weather.ConditionFog:          2,
	weather.ConditionOvercast:     1,
}

// ScoreConditions computes the six-factor playability score for an observed
// snapshot. Scores are recomputed fresh on every call; they are cheap to
// derive from cached conditions.
func ScoreConditions(cond weather.WeatherConditions, at time.Time) Score {
	temp := temperatureScore(cond.TemperatureF)
	wind := windScore(cond.WindSpeedMPH)
	precip := precipScoreByCondition[cond.Condition]
	vis := visibilityScore(cond.VisibilityMi)
	uv := uvScore(cond.UVIndex)
	overallCond := overallScoreByCondition[cond.Condition]

	// Integer truncation of the mean is intentional and pinned by tests.
	overall := (temp + wind + precip + vis + uv + overallCond) / 6

	return Score{
		Coordinate:     cond.Coordinate,
		ComputedAt:     at,
		Overall:        overall,
		Temperature:    temp,
		Wind:           wind,
		Precipitation:  precip,
		Visibility:     vis,
		UV:             uv,
		Condition:      overallCond,
		Conditions:     cond,
		Recommendation: recommendationFor(overall),
	}
}

// AdditiveScore is the penalty-subtraction variant used for hourly points and
// tee-time windows, where precipitation is a probability rather than an
// observed condition. Starts at 10 and clamps to [0,10].
func AdditiveScore(tempF, windMPH, precipChancePct float64, cond weather.ConditionKind) int {
	score := 10
	score -= temperaturePenalty(tempF)
	score -= windPenalty(windMPH)
	score -= precipChancePenalty(precipChancePct)
	score -= additivePenaltyByCondition[cond]
	return clampScore(score)
}

// ScoreHourly derives the playability score of a single forecast hour.
func ScoreHourly(p weather.HourlyForecastPoint) int {
	return AdditiveScore(p.TemperatureF, p.WindSpeedMPH, p.PrecipChancePct, p.Condition)
}

func temperatureScore(f float64) int {
	switch {
	case f >= 65 && f <= 80:
		return 10
	case f >= 55 && f <= 90:
		return 8
	case f >= 45 && f <= 95:
		return 6
	case f >= 35 && f <= 100:
		return 4
	default:
		return 2
	}
}

func windScore(mph float64) int {
	switch {
	case mph <= 5:
		return 10
	case mph <= 10:
		return 8
	case mph <= 15:
		return 6
	case mph <= 25:
		return 4
	default:
		return 2
	}
}

func visibilityScore(miles float64) int {
	switch {
	case miles >= 10:
		return 10
	case miles >= 5:
		return 8
	case miles >= 2:
		return 6
	case miles >= 1:
		return 4
	default:
		return 2
	}
}

func uvScore(index int) int {
	switch {
	case index <= 2:
		return 10
	case index <= 5:
		return 9
	case index <= 7:
		return 7
	case index <= 10:
		return 5
	default:
		return 3
	}
}

func temperaturePenalty(f float64) int {
	switch {
	case f < 40 || f > 95:
		return 4
	case f < 50 || f > 90:
		return 2
	default:
		return 0
	}
}

func windPenalty(mph float64) int {
	switch {
	case mph > 25:
		return 4
	case mph > 15:
		return 2
	default:
		return 0
	}
}

func precipChancePenalty(pct float64) int {
	switch {
	case pct >= 70:
		return 5
	case pct >= 40:
		return 3
	case pct >= 20:
		return 1
	default:
		return 0
	}
}

func recommendationFor(overall int) Recommendation {
	switch {
	case overall >= 9:
		return RecommendationExcellent
	case overall >= 7:
		return RecommendationGood
	case overall >= 5:
		return RecommendationFair
	case overall >= 3:
		return RecommendationPoor
	default:
		return RecommendationDangerous
	}
}

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 10 {
		return 10
	}
	return n
}
