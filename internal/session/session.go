// Package session owns the live state of one browsing session: the venue
// collection, the control clock, and the sun-light animation driver. The
// original design kept these as scattered globals with effect-style
// cleanup; here they are acquired in Open and released in Close so no timer
// or animation loop can outlive the session.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/draganm/sunspot/internal/solar"
	"github.com/draganm/sunspot/internal/timectl"
	"github.com/draganm/sunspot/internal/venue"
	"github.com/draganm/sunspot/internal/weather"
)

// Config carries the session dependencies and tunables.
type Config struct {
	Weather *weather.Service
	Venues  *venue.Store

	// Center is the city-center location used for the session-wide
	// weather snapshot.
	Center weather.Location

	// AnimationInterval is the sun-light tick cadence.
	AnimationInterval time.Duration

	// ClockInterval is the real-time refresh cadence (default 1s).
	ClockInterval time.Duration
}

// Session is the owned, explicitly torn-down replacement for the original
// view-level globals.
type Session struct {
	weather *weather.Service
	venues  *venue.Store
	center  weather.Location

	clock  *timectl.Clock
	driver *solar.Driver

	mu        sync.RWMutex
	lastLight solar.Position
}

// Open initializes a session: the clock starts in real-time mode and the
// driver starts animating.
func Open(cfg Config) *Session {
	if cfg.AnimationInterval <= 0 {
		cfg.AnimationInterval = 250 * time.Millisecond
	}

	s := &Session{
		weather: cfg.Weather,
		venues:  cfg.Venues,
		center:  cfg.Center,
	}

	s.driver = solar.NewDriver(s, cfg.AnimationInterval)

	clockOpts := []timectl.Option{timectl.WithModeChange(s.onClockChange)}
	if cfg.ClockInterval > 0 {
		clockOpts = append(clockOpts, timectl.WithInterval(cfg.ClockInterval))
	}
	s.clock = timectl.New(clockOpts...)

	s.driver.Start()
	return s
}

// Close releases the clock refresh and the animation loop.
func (s *Session) Close() {
	s.clock.Close()
	s.driver.Close()
}

// ApplyLight implements solar.LightSink: the most recent light parameters
// are kept for the map layer (and the /sun/light endpoint) to read.
func (s *Session) ApplyLight(p solar.Position) {
	s.mu.Lock()
	s.lastLight = p
	s.mu.Unlock()
}

// Light returns the last applied sun-light parameters.
func (s *Session) Light() solar.Position {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastLight
}

// onClockChange flips the driver between animated and static mode. A scrub
// pins the light to the scrubbed instant; resuming real time resumes the
// animation. The driver cancels its previous tick source on every switch.
func (s *Session) onClockChange(st timectl.State) {
	if st.IsRealTime {
		s.driver.ClearOverride()
	} else {
		s.driver.SetOverride(st.ControlDate)
	}
}

// Clock exposes the time-control model.
func (s *Session) Clock() *timectl.Clock {
	return s.clock
}

// Venues exposes the venue collection.
func (s *Session) Venues() *venue.Store {
	return s.venues
}

// CityWeather returns the current normalized weather at the session center.
func (s *Session) CityWeather(ctx context.Context) weather.Snapshot {
	return s.weather.Current(ctx, s.center)
}

// Recommend ranks the current collection under the given strategy using the
// current city weather.
func (s *Session) Recommend(ctx context.Context, strategy venue.Strategy) []venue.Venue {
	snap := s.CityWeather(ctx)
	return venue.Recommend(s.venues.All(), &snap, strategy)
}

// AttachWeather fetches weather for every venue concurrently, attaching the
// per-venue subset plus a sun-position hint to an annotated copy that is
// published atomically once every fetch has finished. Fetches are
// independent: a slow or failing venue never blocks the others, and each
// failure falls back to mock data on its own.
func (s *Session) AttachWeather(ctx context.Context) {
	venues := s.venues.All()

	var wg sync.WaitGroup
	for i := range venues {
		wg.Add(1)
		go func(v *venue.Venue) {
			defer wg.Done()
			v.Weather = s.attachSubset(ctx, v.Location)
		}(&venues[i])
	}
	wg.Wait()

	s.venues.Replace(venues)
}

func (s *Session) attachSubset(ctx context.Context, loc weather.Location) *venue.Weather {
	snap := s.weather.Current(ctx, loc)
	subset := venue.AttachedSubset(snap)
	if subset.SunPosition == nil {
		hint := solar.HintAt(s.clock.State().ControlDate)
		subset.SunPosition = &hint
	}
	return subset
}

// AddVenue appends an ingested venue to the collection and attaches its
// current weather, so a freshly added venue is never the one marker without
// a snapshot. The attached copy is returned.
func (s *Session) AddVenue(ctx context.Context, v venue.Venue) (venue.Venue, error) {
	if err := s.venues.Add(v); err != nil {
		return venue.Venue{}, err
	}
	subset := s.attachSubset(ctx, v.Location)
	if err := s.venues.SetWeather(v.ID, subset); err != nil {
		return venue.Venue{}, err
	}
	v.Weather = subset
	return v, nil
}

// SunPanel describes the sun at a given instant for the control panel: both
// position approximations plus the solar day at the session center.
type SunPanel struct {
	Position solar.Position `json:"position"`
	Hint     solar.Position `json:"hint"`
	Day      solar.DayInfo  `json:"day"`
}

// Sun computes the panel for t, defaulting to the control clock's date.
func (s *Session) Sun(t time.Time) SunPanel {
	if t.IsZero() {
		t = s.clock.State().ControlDate
	}
	return SunPanel{
		Position: solar.At(t),
		Hint:     solar.HintAt(t),
		Day:      solar.Day(s.center.Lat, s.center.Lng, t),
	}
}
