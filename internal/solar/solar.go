package solar

import (
	"math"
	"time"

	"github.com/nathan-osman/go-sunrise"
)

// Position describes the apparent position of the sun as a horizontal
// (azimuth) and vertical (altitude) angle in degrees.
type Position struct {
	Azimuth  float64 `json:"azimuth"`  // [0, 360)
	Altitude float64 `json:"altitude"` // [0, 90] here; night is clamped to 0
}

// At computes the sun position from wall-clock time alone. This is the
// approximation driving the map light animation: a single sinusoidal arch
// peaking at noon, anchored so that sunrise reads as due east. It is not an
// ephemeris and does not depend on location.
func At(t time.Time) Position {
	h := float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600

	azimuth := math.Mod((h/24)*360+90, 360)
	if azimuth < 0 {
		azimuth += 360
	}

	altitude := math.Sin((h/24)*math.Pi) * 90
	if altitude < 0 {
		altitude = 0
	}

	return Position{Azimuth: azimuth, Altitude: altitude}
}

// HintAt computes the day-segment approximation used for per-venue sun-icon
// hints: linear altitude between 06:00 and 18:00, zero outside that window.
// It deliberately does not agree with At; the two are independent
// simplifications and are kept as separate functions.
func HintAt(t time.Time) Position {
	hour := float64(t.Hour())

	var altitude, azimuth float64
	switch {
	case hour >= 6 && hour <= 18:
		altitude = 90 - math.Abs(hour-12)*7.5
		azimuth = 90 + (hour-6)*15
	case hour > 18:
		azimuth = 270 + (hour-18)*15
	default:
		azimuth = 270 + (hour+6)*15
	}

	return Position{Azimuth: math.Mod(azimuth, 360), Altitude: altitude}
}

// DayInfo summarizes the solar day at a location: sunrise, solar noon and
// sunset, plus the ordinal day of the year shown on the control panel.
type DayInfo struct {
	Sunrise   time.Time `json:"sunrise"`
	SolarNoon time.Time `json:"solarNoon"`
	Sunset    time.Time `json:"sunset"`
	DayOfYear int       `json:"dayOfYear"`
}

// Day computes DayInfo for the calendar day containing t at (lat, lng).
func Day(lat, lng float64, t time.Time) DayInfo {
	rise, set := sunrise.SunriseSunset(lat, lng, t.Year(), t.Month(), t.Day())
	return DayInfo{
		Sunrise:   rise,
		SolarNoon: rise.Add(set.Sub(rise) / 2),
		Sunset:    set,
		DayOfYear: t.YearDay(),
	}
}
