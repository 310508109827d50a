package weather

import (
	"math"
	"time"

	"github.com/nathan-osman/go-sunrise"
)

// Conversion factors from provider-native units to canonical units.
const (
	msToMPH      = 2.236936
	mmToInches   = 0.0393701
	metersPerMi  = 1609.344
	compassSlice = 22.5
)

// Defaults substituted for absent optional provider fields. These are product
// decisions inherited from upstream; changing them changes scores.
const (
	DefaultVisibilityMi = 10.0
	DefaultHumidityPct  = 50.0
)

var compassLabels = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// conditionByWMOCode maps WMO weather interpretation codes onto the engine's
// closed condition set. Unlisted codes fall back to partlyCloudy, a deliberately
// conservative default rather than an error.
var conditionByWMOCode = map[int]ConditionKind{
	0:  ConditionSunny,
	1:  ConditionPartlyCloudy,
	2:  ConditionPartlyCloudy,
	3:  ConditionOvercast,
	45: ConditionFog,
	48: ConditionFog,
	51: ConditionDrizzle,
	53: ConditionDrizzle,
	55: ConditionDrizzle,
	56: ConditionDrizzle,
	57: ConditionDrizzle,
	61: ConditionLightRain,
	63: ConditionLightRain,
	80: ConditionLightRain,
	81: ConditionLightRain,
	65: ConditionHeavyRain,
	66: ConditionHeavyRain,
	67: ConditionHeavyRain,
	82: ConditionHeavyRain,
	71: ConditionSnow,
	73: ConditionSnow,
	75: ConditionSnow,
	77: ConditionSnow,
	85: ConditionSnow,
	86: ConditionSnow,
	95: ConditionThunderstorm,
	96: ConditionThunderstorm,
	99: ConditionThunderstorm,
}

// ConditionFromCode translates a provider weather code to a ConditionKind.
func ConditionFromCode(code int) ConditionKind {
	if cond, ok := conditionByWMOCode[code]; ok {
		return cond
	}
	return ConditionPartlyCloudy
}

// MPHFromMS converts meters per second to miles per hour.
func MPHFromMS(ms float64) float64 {
	return ms * msToMPH
}

// InchesFromMM converts millimeters to inches.
func InchesFromMM(mm float64) float64 {
	return mm * mmToInches
}

// MilesFromMeters converts meters to miles.
func MilesFromMeters(m float64) float64 {
	return m / metersPerMi
}

// FahrenheitFromCelsius converts °C to °F.
func FahrenheitFromCelsius(c float64) float64 {
	return c*9/5 + 32
}

// CompassFromDegrees maps a bearing to the nearest of 16 compass labels.
// The mapping is periodic: deg and deg+360 produce the same label, and the
// sector 348.75–11.25 maps to "N".
func CompassFromDegrees(deg float64) string {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	idx := int((deg+compassSlice/2)/compassSlice) % 16
	return compassLabels[idx]
}

// SunTimes returns the local sunrise and sunset time-of-day strings for the
// coordinate on the given date.
func SunTimes(coord Coordinate, date time.Time) (string, string) {
	rise, set := sunrise.SunriseSunset(coord.Lat, coord.Lon, date.Year(), date.Month(), date.Day())
	return rise.Local().Format("15:04"), set.Local().Format("15:04")
}

// NormalizeCurrent converts a provider snapshot into canonical units.
// Normalization never fails; absent optional fields get plausible defaults.
func NormalizeCurrent(coord Coordinate, snap ProviderSnapshot) WeatherConditions {
	ts := snap.Timestamp.UTC()
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	rise, set := SunTimes(coord, ts)

	return WeatherConditions{
		Coordinate:    coord,
		Timestamp:     ts,
		TemperatureF:  FahrenheitFromCelsius(snap.TemperatureC),
		HumidityPct:   humidityOrDefault(snap.HumidityPct),
		WindSpeedMPH:  MPHFromMS(snap.WindSpeedMS),
		WindDirection: CompassFromDegrees(snap.WindDirectionDeg),
		PrecipIn:      InchesFromMM(snap.PrecipMM),
		Condition:     ConditionFromCode(snap.WeatherCode),
		VisibilityMi:  visibilityOrDefault(snap.VisibilityM),
		UVIndex:       int(math.Max(0, math.Round(snap.UVIndex))),
		Sunrise:       rise,
		Sunset:        set,
	}
}

// NormalizeHourly converts one provider hourly step into canonical units.
func NormalizeHourly(h ProviderHourly) HourlyForecastPoint {
	return HourlyForecastPoint{
		Timestamp:       h.Timestamp.UTC(),
		TemperatureF:    FahrenheitFromCelsius(h.TemperatureC),
		HumidityPct:     humidityOrDefault(h.HumidityPct),
		WindSpeedMPH:    MPHFromMS(h.WindSpeedMS),
		WindDirection:   CompassFromDegrees(h.WindDirectionDeg),
		PrecipChancePct: clampPct(h.PrecipChancePct),
		PrecipIn:        InchesFromMM(h.PrecipMM),
		Condition:       ConditionFromCode(h.WeatherCode),
		UVIndex:         int(math.Max(0, math.Round(h.UVIndex))),
		VisibilityMi:    visibilityOrDefault(h.VisibilityM),
	}
}

// NormalizeDaily converts one provider daily summary into canonical units.
// Sunrise and sunset are derived from the coordinate rather than trusted from
// the provider payload.
func NormalizeDaily(coord Coordinate, d ProviderDaily) DailyForecastPoint {
	rise, set := SunTimes(coord, d.Date)
	return DailyForecastPoint{
		Date:            d.Date.UTC(),
		HighTempF:       FahrenheitFromCelsius(d.TempMaxC),
		LowTempF:        FahrenheitFromCelsius(d.TempMinC),
		HumidityPct:     humidityOrDefault(d.HumidityPct),
		WindSpeedMPH:    MPHFromMS(d.WindSpeedMS),
		PrecipChancePct: clampPct(d.PrecipChancePct),
		PrecipIn:        InchesFromMM(d.PrecipMM),
		Condition:       ConditionFromCode(d.WeatherCode),
		UVIndex:         int(math.Max(0, math.Round(d.UVIndex))),
		Sunrise:         rise,
		Sunset:          set,
	}
}

func humidityOrDefault(v *float64) float64 {
	if v == nil {
		return DefaultHumidityPct
	}
	return clampPct(*v)
}

func visibilityOrDefault(meters *float64) float64 {
	if meters == nil {
		return DefaultVisibilityMi
	}
	return MilesFromMeters(*meters)
}

func clampPct(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}
