package playability

import (
	"strings"

	"github.com/i474232898/golfcast/internal/common"
	"github.com/i474232898/golfcast/internal/weather"
)

var severityByName = map[string]weather.AlertSeverity{
	"minor":    weather.SeverityMinor,
	"moderate": weather.SeverityModerate,
	"severe":   weather.SeveritySevere,
	"extreme":  weather.SeverityExtreme,
}

// ClassifySeverity maps the provider's severity value onto the engine's scale.
// An unrecognized value defaults to moderate so no alert is silently dropped.
func ClassifySeverity(s string) weather.AlertSeverity {
	if sev, ok := severityByName[strings.ToLower(strings.TrimSpace(s))]; ok {
		return sev
	}
	return weather.SeverityModerate
}

// ClassifyImpact grades the golf impact of an alert from its summary text via
// case-insensitive keyword matching. This is a best-effort heuristic, not a
// guarantee; it can mis-grade unusual phrasings. Prohibitive keywords are
// checked first since "severe thunderstorm" also contains "storm".
func ClassifyImpact(summary string) weather.GolfImpact {
	text := strings.ToLower(summary)
	switch {
	case common.HasAny(text, "tornado", "hurricane", "severe thunderstorm"):
		return weather.ImpactProhibitive
	case common.HasAny(text, "flood", "high wind", "storm"):
		return weather.ImpactSignificant
	case common.HasAny(text, "rain", "snow", "fog"):
		return weather.ImpactModerate
	default:
		return weather.ImpactMinimal
	}
}

// ClassifyAlert converts a raw provider alert into a classified WeatherAlert.
func ClassifyAlert(raw weather.ProviderAlert) weather.WeatherAlert {
	return weather.WeatherAlert{
		Title:       raw.Title,
		Description: raw.Description,
		Severity:    ClassifySeverity(raw.Severity),
		Start:       raw.Start,
		End:         raw.End,
		Impact:      ClassifyImpact(raw.Title + " " + raw.Description),
	}
}
