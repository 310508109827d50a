package weather

import (
	"math"
	"testing"
	"time"
)

func TestCompassFromDegrees(t *testing.T) {
	tests := []struct {
		deg  float64
		want string
	}{
		{0, "N"},
		{5, "N"},
		{11.2, "N"},
		{348.75, "N"},
		{355, "N"},
		{360, "N"},
		{22.5, "NNE"},
		{45, "NE"},
		{90, "E"},
		{135, "SE"},
		{180, "S"},
		{225, "SW"},
		{270, "W"},
		{315, "NW"},
		{337.5, "NNW"},
	}

	for _, tc := range tests {
		if got := CompassFromDegrees(tc.deg); got != tc.want {
			t.Errorf("CompassFromDegrees(%v) = %q, want %q", tc.deg, got, tc.want)
		}
	}
}

func TestCompassIsPeriodic(t *testing.T) {
	for deg := 0.0; deg < 360; deg += 7.3 {
		if CompassFromDegrees(deg) != CompassFromDegrees(deg+360) {
			t.Errorf("labels differ for %v and %v", deg, deg+360)
		}
	}
}

func TestUnitConversions(t *testing.T) {
	if got := MPHFromMS(10); math.Abs(got-22.36936) > 1e-4 {
		t.Errorf("MPHFromMS(10) = %v", got)
	}
	if got := InchesFromMM(25.4); math.Abs(got-1) > 1e-3 {
		t.Errorf("InchesFromMM(25.4) = %v", got)
	}
	if got := MilesFromMeters(1609.344); math.Abs(got-1) > 1e-9 {
		t.Errorf("MilesFromMeters(1609.344) = %v", got)
	}
	if got := FahrenheitFromCelsius(20); got != 68 {
		t.Errorf("FahrenheitFromCelsius(20) = %v", got)
	}
}

func TestConditionFromCode(t *testing.T) {
	tests := []struct {
		code int
		want ConditionKind
	}{
		{0, ConditionSunny},
		{2, ConditionPartlyCloudy},
		{3, ConditionOvercast},
		{45, ConditionFog},
		{55, ConditionDrizzle},
		{61, ConditionLightRain},
		{82, ConditionHeavyRain},
		{75, ConditionSnow},
		{95, ConditionThunderstorm},
	}
	for _, tc := range tests {
		if got := ConditionFromCode(tc.code); got != tc.want {
			t.Errorf("ConditionFromCode(%d) = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestConditionFromUnknownCodeDefaults(t *testing.T) {
	// Unrecognized provider values map to partlyCloudy, not an error.
	if got := ConditionFromCode(42); got != ConditionPartlyCloudy {
		t.Errorf("unknown code mapped to %q, want partlyCloudy", got)
	}
}

func TestNormalizeCurrentDefaults(t *testing.T) {
	coord := Coordinate{Lat: 37.7749, Lon: -122.4194}
	snap := ProviderSnapshot{
		Timestamp:    time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		TemperatureC: 20,
		WindSpeedMS:  5,
		WeatherCode:  0,
	}

	cond := NormalizeCurrent(coord, snap)

	if cond.VisibilityMi != DefaultVisibilityMi {
		t.Errorf("missing visibility defaulted to %v, want %v", cond.VisibilityMi, DefaultVisibilityMi)
	}
	if cond.HumidityPct != DefaultHumidityPct {
		t.Errorf("missing humidity defaulted to %v, want %v", cond.HumidityPct, DefaultHumidityPct)
	}
	if cond.TemperatureF != 68 {
		t.Errorf("TemperatureF = %v, want 68", cond.TemperatureF)
	}
	if cond.Condition != ConditionSunny {
		t.Errorf("Condition = %q, want sunny", cond.Condition)
	}
	if cond.Sunrise == "" || cond.Sunset == "" {
		t.Error("expected sunrise/sunset to be populated")
	}
}

func TestNormalizeDaily(t *testing.T) {
	coord := Coordinate{Lat: 37.7749, Lon: -122.4194}
	d := ProviderDaily{
		Date:            time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		TempMaxC:        25,
		TempMinC:        15,
		WindSpeedMS:     5,
		PrecipChancePct: 30,
		PrecipMM:        25.4,
		WeatherCode:     61,
		UVIndex:         6.4,
	}

	dp := NormalizeDaily(coord, d)

	if dp.HighTempF != 77 || dp.LowTempF != 59 {
		t.Errorf("high/low = %v/%v, want 77/59", dp.HighTempF, dp.LowTempF)
	}
	if math.Abs(dp.WindSpeedMPH-11.18468) > 1e-4 {
		t.Errorf("wind = %v mph", dp.WindSpeedMPH)
	}
	if math.Abs(dp.PrecipIn-1) > 1e-3 {
		t.Errorf("precip = %v in, want 1", dp.PrecipIn)
	}
	if dp.Condition != ConditionLightRain {
		t.Errorf("condition = %q, want lightRain", dp.Condition)
	}
	if dp.UVIndex != 6 {
		t.Errorf("uv index = %d, want 6", dp.UVIndex)
	}
	if dp.HumidityPct != DefaultHumidityPct {
		t.Errorf("missing humidity defaulted to %v, want %v", dp.HumidityPct, DefaultHumidityPct)
	}
	if dp.Sunrise == "" || dp.Sunset == "" {
		t.Error("sunrise and sunset must be populated from the coordinate")
	}
}

func TestNormalizeHourlyClampsChance(t *testing.T) {
	h := ProviderHourly{
		Timestamp:       time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC),
		PrecipChancePct: 140,
	}
	p := NormalizeHourly(h)
	if p.PrecipChancePct != 100 {
		t.Errorf("PrecipChancePct = %v, want 100", p.PrecipChancePct)
	}
}

func TestCoordinateKeyRounds(t *testing.T) {
	a := Coordinate{Lat: 37.77491, Lon: -122.41941}
	b := Coordinate{Lat: 37.77493, Lon: -122.41943}
	if a.Key() != b.Key() {
		t.Errorf("nearby coordinates should share a key: %q vs %q", a.Key(), b.Key())
	}
}
