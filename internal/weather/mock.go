package weather

import (
	"math"
	"time"

	"github.com/draganm/sunspot/internal/solar"
)

// Mock generates a deterministic weather snapshot from coordinates alone.
// It is the availability backstop: it never fails, and identical inputs
// always yield identical output. The seed arithmetic uses floating-point
// mod so the fractional part of the coordinates contributes.
func Mock(lng, lat float64) Snapshot {
	seed := math.Mod(lng*100+lat*100, 100)

	isSunny := seed > 30

	var precipitation float64
	if !isSunny {
		precipitation = math.Floor(math.Mod(seed, 30))
	}

	condition := ConditionCloudy
	if isSunny {
		condition = ConditionSunny
	}

	now := time.Now().UTC()

	return Snapshot{
		Temperature:   math.Floor(20 + math.Mod(seed, 10)),
		Condition:     condition,
		IsSunny:       isSunny,
		Precipitation: precipitation,
		Humidity:      40 + math.Floor(math.Mod(seed, 40)),
		WindSpeed:     math.Floor(math.Mod(seed, 15)),
		SunPosition: &solar.Position{
			Azimuth:  math.Mod(seed, 360),
			Altitude: 30 + math.Mod(seed, 60),
		},
		Date:      now.Format("2006-01-02"),
		Timestamp: now,
	}
}
