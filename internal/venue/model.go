package venue

import (
	"github.com/draganm/sunspot/internal/solar"
	"github.com/draganm/sunspot/internal/weather"
)

// Category classifies a venue. The JSON name is "type" to match the wire
// shape the map client consumes.
type Category string

const (
	CategoryCafe       Category = "cafe"
	CategoryPub        Category = "pub"
	CategoryRestaurant Category = "restaurant"
)

// Hours is a single day's opening window.
type Hours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// Weather is the subset of a weather snapshot attached to a venue after an
// asynchronous fetch, plus a sun-position hint for the venue's marker icon.
type Weather struct {
	Temperature float64         `json:"temperature"`
	Condition   string          `json:"condition"`
	IsSunny     bool            `json:"isSunny"`
	SunPosition *solar.Position `json:"sunPosition,omitempty"`
}

// Venue is a point of interest on the map. Identity is the ID: two venues
// with the same ID are the same entity and must never coexist in a
// collection.
type Venue struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Category          Category         `json:"type"`
	Location          weather.Location `json:"location"`
	Address           string           `json:"address"`
	Rating            float64          `json:"rating"` // [0, 5]
	HasOutdoorSeating bool             `json:"hasOutdoorSeating"`
	Photos            []string         `json:"photos,omitempty"`
	OpeningHours      map[string]Hours `json:"openingHours,omitempty"`
	Weather           *Weather         `json:"weather,omitempty"`
}

// AttachedSubset trims a full snapshot down to the fields carried on a
// venue.
func AttachedSubset(snap weather.Snapshot) *Weather {
	return &Weather{
		Temperature: snap.Temperature,
		Condition:   snap.Condition,
		IsSunny:     snap.IsSunny,
		SunPosition: snap.SunPosition,
	}
}
