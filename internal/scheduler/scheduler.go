package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/draganm/sunspot/internal/session"
)

// Scheduler periodically refreshes the city weather snapshot and re-attaches
// per-venue weather, keeping the map reasonably fresh without any client
// action.
type Scheduler struct {
	scheduler *gocron.Scheduler
	session   *session.Session
	interval  time.Duration
}

// New creates a new Scheduler.
func New(sess *session.Session, interval time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		session:   sess,
		interval:  interval,
	}
}

// Start schedules the periodic refresh job and starts the underlying
// scheduler.
func (s *Scheduler) Start() error {
	interval := s.interval
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	_, err := s.scheduler.Every(interval).Do(func() {
		log.Println("scheduler: refreshing weather")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		s.session.CityWeather(ctx)
		s.session.AttachWeather(ctx)

		log.Println("scheduler: weather refresh complete")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
