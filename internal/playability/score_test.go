package playability

import (
	"testing"
	"time"

	"github.com/i474232898/golfcast/internal/weather"
)

func baseConditions() weather.WeatherConditions {
	return weather.WeatherConditions{
		Coordinate:   weather.Coordinate{Lat: 37.7749, Lon: -122.4194},
		Timestamp:    time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		TemperatureF: 72,
		HumidityPct:  50,
		WindSpeedMPH: 8,
		Condition:    weather.ConditionSunny,
		VisibilityMi: 10,
		UVIndex:      4,
	}
}

func TestScoreConditionsExample(t *testing.T) {
	// 72°F, 8 mph wind, sunny, 10 mi visibility, UV 4 → sub-scores
	// (10,8,10,10,9,10), overall 9, excellent.
	s := ScoreConditions(baseConditions(), time.Now())

	if s.Temperature != 10 || s.Wind != 8 || s.Precipitation != 10 ||
		s.Visibility != 10 || s.UV != 9 || s.Condition != 10 {
		t.Fatalf("sub-scores = (%d,%d,%d,%d,%d,%d), want (10,8,10,10,9,10)",
			s.Temperature, s.Wind, s.Precipitation, s.Visibility, s.UV, s.Condition)
	}
	if s.Overall != 9 {
		t.Fatalf("overall = %d, want 9", s.Overall)
	}
	if s.Recommendation != RecommendationExcellent {
		t.Fatalf("recommendation = %q, want excellent", s.Recommendation)
	}
}

func TestScoreConditionsSubScoresInRange(t *testing.T) {
	conds := []weather.WeatherConditions{
		{TemperatureF: -20, WindSpeedMPH: 60, Condition: weather.ConditionThunderstorm, VisibilityMi: 0, UVIndex: 14},
		{TemperatureF: 120, WindSpeedMPH: 0, Condition: weather.ConditionSnow, VisibilityMi: 50, UVIndex: 0},
		baseConditions(),
	}

	for _, cond := range conds {
		s := ScoreConditions(cond, time.Now())
		for name, v := range map[string]int{
			"temperature": s.Temperature, "wind": s.Wind, "precipitation": s.Precipitation,
			"visibility": s.Visibility, "uv": s.UV, "condition": s.Condition, "overall": s.Overall,
		} {
			if v < 0 || v > 10 {
				t.Errorf("%s score %d out of [0,10]", name, v)
			}
		}

		sum := s.Temperature + s.Wind + s.Precipitation + s.Visibility + s.UV + s.Condition
		if s.Overall != sum/6 {
			t.Errorf("overall %d != floor(%d/6)", s.Overall, sum)
		}
	}
}

func TestOverallTruncatesTowardZero(t *testing.T) {
	// 55°F/8/overcast/10mi/UV4: sub-scores (8,8,8,10,9,7) sum 50, 50/6 = 8.33 → 8.
	cond := baseConditions()
	cond.TemperatureF = 55
	cond.Condition = weather.ConditionOvercast

	s := ScoreConditions(cond, time.Now())
	if s.Overall != 8 {
		t.Fatalf("overall = %d, want 8 (truncated)", s.Overall)
	}
	if s.Recommendation != RecommendationGood {
		t.Fatalf("recommendation = %q, want good", s.Recommendation)
	}
}

func TestAdditiveScoreClampsAtZero(t *testing.T) {
	// 10 −4(temp 98) −4(wind 30) −5(chance 80) −6(thunderstorm) = −9 → 0.
	got := AdditiveScore(98, 30, 80, weather.ConditionThunderstorm)
	if got != 0 {
		t.Fatalf("AdditiveScore = %d, want 0", got)
	}
}

func TestAdditiveScorePerfect(t *testing.T) {
	if got := AdditiveScore(72, 5, 0, weather.ConditionSunny); got != 10 {
		t.Fatalf("AdditiveScore = %d, want 10", got)
	}
}

func TestAdditiveScorePenalties(t *testing.T) {
	tests := []struct {
		name   string
		tempF  float64
		wind   float64
		chance float64
		cond   weather.ConditionKind
		want   int
	}{
		{"mild cold", 46, 5, 0, weather.ConditionSunny, 8},
		{"strong breeze", 72, 18, 0, weather.ConditionSunny, 8},
		{"likely rain", 72, 5, 45, weather.ConditionSunny, 7},
		{"slight chance", 72, 5, 25, weather.ConditionPartlyCloudy, 9},
		{"drizzle", 72, 5, 0, weather.ConditionDrizzle, 7},
		{"fog", 72, 5, 0, weather.ConditionFog, 8},
		{"overcast", 72, 5, 0, weather.ConditionOvercast, 9},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := AdditiveScore(tc.tempF, tc.wind, tc.chance, tc.cond); got != tc.want {
				t.Errorf("AdditiveScore = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestRecommendationTiers(t *testing.T) {
	tests := []struct {
		overall int
		want    Recommendation
	}{
		{10, RecommendationExcellent},
		{9, RecommendationExcellent},
		{8, RecommendationGood},
		{7, RecommendationGood},
		{6, RecommendationFair},
		{5, RecommendationFair},
		{4, RecommendationPoor},
		{3, RecommendationPoor},
		{2, RecommendationDangerous},
		{0, RecommendationDangerous},
	}
	for _, tc := range tests {
		if got := recommendationFor(tc.overall); got != tc.want {
			t.Errorf("recommendationFor(%d) = %q, want %q", tc.overall, got, tc.want)
		}
	}
}
