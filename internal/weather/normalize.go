package weather

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/draganm/sunspot/internal/solar"
)

// ErrMalformedPayload is returned when a provider payload lacks the fields
// required for normalization (main block or first weather entry).
var ErrMalformedPayload = errors.New("malformed provider payload")

// RawPayload mirrors the OpenWeatherMap current-weather response shape, as
// far as normalization needs it.
type RawPayload struct {
	Coord *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Main *struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Rain struct {
		OneH float64 `json:"1h"`
	} `json:"rain"`
	Weather []struct {
		ID   int    `json:"id"`
		Main string `json:"main"`
	} `json:"weather"`
	Dt int64 `json:"dt"`
}

// Valid reports whether the payload carries the fields normalization
// requires.
func (p *RawPayload) Valid() bool {
	return p.Main != nil && len(p.Weather) > 0
}

// ParseRaw decodes and shape-checks a raw provider response body.
func ParseRaw(body []byte) (*RawPayload, error) {
	var p RawPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if !p.Valid() {
		return nil, fmt.Errorf("%w: missing main or weather entry", ErrMalformedPayload)
	}
	return &p, nil
}

// Normalize converts a raw provider payload into a canonical snapshot.
//
// The condition label is mapped onto the canonical set, but IsSunny is
// derived from the raw pre-mapping condition: true iff it equals "clear"
// case-insensitively.
func Normalize(p *RawPayload) (Snapshot, error) {
	if p == nil || !p.Valid() {
		return Snapshot{}, fmt.Errorf("%w: missing main or weather entry", ErrMalformedPayload)
	}

	raw := p.Weather[0].Main

	snap := Snapshot{
		Temperature:   math.Round(p.Main.Temp),
		Condition:     MapCondition(raw),
		IsSunny:       strings.EqualFold(raw, "clear"),
		Precipitation: p.Rain.OneH,
		Humidity:      p.Main.Humidity,
		WindSpeed:     math.Round(p.Wind.Speed),
		Timestamp:     time.Now().UTC(),
	}

	if p.Coord != nil && p.Dt != 0 {
		hint := solar.HintAt(time.Unix(p.Dt, 0).UTC())
		snap.SunPosition = &hint
	}

	return snap, nil
}

// MapCondition maps an OpenWeatherMap condition group onto the canonical
// label set. Unmapped labels (Mist, Fog, ...) pass through unchanged.
func MapCondition(condition string) string {
	switch strings.ToLower(condition) {
	case "clear":
		return ConditionSunny
	case "clouds":
		return ConditionCloudy
	case "rain", "drizzle":
		return ConditionRainy
	case "thunderstorm":
		return ConditionStormy
	case "snow":
		return ConditionSnowy
	default:
		return condition
	}
}
