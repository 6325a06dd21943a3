package venue

import (
	"fmt"
	"sort"

	"github.com/draganm/sunspot/internal/weather"
)

// Strategy names a ranking policy for recommendations.
type Strategy string

const (
	StrategyWeatherBased Strategy = "weather"
	StrategyTopRated     Strategy = "top-rated"
	StrategyOutdoor      Strategy = "outdoor"
)

// ParseStrategy validates a strategy name from the wire.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyWeatherBased, StrategyTopRated, StrategyOutdoor:
		return Strategy(s), nil
	case "":
		return StrategyWeatherBased, nil
	default:
		return "", fmt.Errorf("unknown recommendation strategy %q", s)
	}
}

// maxRecommendations caps every strategy's result set.
const maxRecommendations = 3

// Recommend ranks venues under the given strategy and current city weather,
// returning at most three. It is pure: the input slice is never reordered or
// otherwise mutated, and ties in rating keep their original relative order.
func Recommend(venues []Venue, current *weather.Snapshot, strategy Strategy) []Venue {
	if len(venues) == 0 {
		return nil
	}

	var ranked []Venue
	switch strategy {
	case StrategyTopRated:
		ranked = topRated(venues)
	case StrategyOutdoor:
		ranked = outdoor(venues, current)
	default:
		ranked = weatherBased(venues, current)
	}

	if len(ranked) > maxRecommendations {
		ranked = ranked[:maxRecommendations]
	}
	return ranked
}

func topRated(venues []Venue) []Venue {
	out := append([]Venue(nil), venues...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rating > out[j].Rating
	})
	return out
}

func outdoor(venues []Venue, current *weather.Snapshot) []Venue {
	var out []Venue
	for _, v := range venues {
		if v.HasOutdoorSeating {
			out = append(out, v)
		}
	}

	if current != nil && current.IsSunny {
		// Sunny spots first, then rating.
		sort.SliceStable(out, func(i, j int) bool {
			si := out[i].Weather != nil && out[i].Weather.IsSunny
			sj := out[j].Weather != nil && out[j].Weather.IsSunny
			if si != sj {
				return si
			}
			return out[i].Rating > out[j].Rating
		})
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rating > out[j].Rating
	})
	return out
}

func weatherBased(venues []Venue, current *weather.Snapshot) []Venue {
	if current == nil {
		return topRated(venues)
	}

	if current.IsSunny && current.Temperature > 18 {
		var sunnyOutdoor []Venue
		for _, v := range venues {
			if v.HasOutdoorSeating && v.Weather != nil && v.Weather.IsSunny {
				sunnyOutdoor = append(sunnyOutdoor, v)
			}
		}
		if len(sunnyOutdoor) == 0 {
			return topRated(venues)
		}
		sort.SliceStable(sunnyOutdoor, func(i, j int) bool {
			return sunnyOutdoor[i].Rating > sunnyOutdoor[j].Rating
		})
		return sunnyOutdoor
	}

	if current.Temperature < 12 || current.Precipitation > 0 {
		var indoor []Venue
		for _, v := range venues {
			if !v.HasOutdoorSeating {
				indoor = append(indoor, v)
			}
		}
		if len(indoor) == 0 {
			return topRated(venues)
		}
		sort.SliceStable(indoor, func(i, j int) bool {
			return indoor[i].Rating > indoor[j].Rating
		})
		return indoor
	}

	return topRated(venues)
}
