// Package search maps free-text search results (geocoder retrieve events)
// into the internal venue shape.
package search

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/kelvins/geocoder"

	"github.com/draganm/sunspot/internal/common"
	"github.com/draganm/sunspot/internal/venue"
	"github.com/draganm/sunspot/internal/weather"
)

// ErrMissingCoordinates rejects a feature whose geometry carries no usable
// coordinates. The caller must discard the result.
var ErrMissingCoordinates = errors.New("search feature has no coordinates")

// Feature is the GeoJSON-like payload a search widget emits when the user
// picks a result.
type Feature struct {
	ID       string `json:"id"`
	Geometry struct {
		Coordinates []float64 `json:"coordinates"` // [lng, lat]
	} `json:"geometry"`
	Properties struct {
		Name     string `json:"name"`
		Category string `json:"category"`
		Address  string `json:"address"`
	} `json:"properties"`
}

// Ingestor converts search features into venues. When a Google geocoding
// key is configured, features that arrive with an address but no
// coordinates are resolved through the geocoder instead of being rejected.
type Ingestor struct {
	geocodingEnabled bool
}

// NewIngestor creates an Ingestor. An empty apiKey disables the geocoding
// fallback; ingestion then rejects coordinate-less features outright.
func NewIngestor(apiKey string) *Ingestor {
	if apiKey != "" {
		geocoder.ApiKey = apiKey
	}
	return &Ingestor{geocodingEnabled: apiKey != ""}
}

// Ingest maps a feature to a venue. Rating and outdoor seating are explicit
// placeholders (4.5, false), not inferred from the feature.
func (ing *Ingestor) Ingest(f Feature) (venue.Venue, error) {
	loc, err := ing.resolveLocation(f)
	if err != nil {
		return venue.Venue{}, err
	}

	id := f.ID
	if id == "" {
		id = uuid.NewString()
	}

	name := f.Properties.Name
	if name == "" {
		name = "Unknown Venue"
	}

	return venue.Venue{
		ID:                id,
		Name:              name,
		Category:          InferCategory(f.Properties.Category),
		Location:          loc,
		Address:           f.Properties.Address,
		Rating:            4.5,
		HasOutdoorSeating: false,
	}, nil
}

func (ing *Ingestor) resolveLocation(f Feature) (weather.Location, error) {
	if coords := f.Geometry.Coordinates; len(coords) >= 2 {
		return weather.Location{Lng: coords[0], Lat: coords[1]}, nil
	}

	if !ing.geocodingEnabled || f.Properties.Address == "" {
		return weather.Location{}, ErrMissingCoordinates
	}

	loc, err := geocoder.Geocoding(geocoder.Address{Street: f.Properties.Address})
	if err != nil {
		log.Printf("search: geocoding %q failed: %v", f.Properties.Address, err)
		return weather.Location{}, fmt.Errorf("%w: geocoding failed", ErrMissingCoordinates)
	}
	return weather.Location{Lng: loc.Longitude, Lat: loc.Latitude}, nil
}

// InferCategory derives a venue category from a free-text tag. The
// cafe/coffee check deliberately precedes the pub/bar check; everything
// else, including an empty tag, is a restaurant.
func InferCategory(tag string) venue.Category {
	switch {
	case common.HasAny(tag, "cafe", "coffee"):
		return venue.CategoryCafe
	case common.HasAny(tag, "pub", "bar"):
		return venue.CategoryPub
	default:
		return venue.CategoryRestaurant
	}
}
