package weather

import (
	"fmt"
	"time"

	"github.com/draganm/sunspot/internal/solar"
)

// Canonical condition labels. Provider conditions are mapped onto these;
// labels without a mapping pass through unchanged.
const (
	ConditionSunny  = "Sunny"
	ConditionCloudy = "Cloudy"
	ConditionRainy  = "Rainy"
	ConditionStormy = "Stormy"
	ConditionSnowy  = "Snowy"
)

// Location identifies a point on the map in WGS84 degrees.
type Location struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// Key returns a canonical string key for indexing this location in stores.
// Coordinates are rounded so nearby float representations of the same point
// share history.
func (l Location) Key() string {
	return fmt.Sprintf("%.4f:%.4f", l.Lat, l.Lng)
}

// Snapshot is the normalized weather reading at a point in time.
//
// IsSunny is derived: it is true exactly when the raw provider condition was
// "clear" (case-insensitive), never set independently of the condition.
type Snapshot struct {
	Temperature   float64         `json:"temperature"` // °C
	Condition     string          `json:"condition"`
	IsSunny       bool            `json:"isSunny"`
	Precipitation float64         `json:"precipitation"`
	Humidity      float64         `json:"humidity"`  // percent [0,100]
	WindSpeed     float64         `json:"windSpeed"` // km/h
	SunPosition   *solar.Position `json:"sunPosition,omitempty"`
	Date          string          `json:"date,omitempty"` // ISO-8601 date
	Timestamp     time.Time       `json:"timestamp,omitempty"`
}
