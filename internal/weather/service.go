package weather

import (
	"context"
	"log"
	"time"
)

// RawProvider abstracts the upstream weather source. It returns the
// provider-native JSON body; normalization happens here in the service.
type RawProvider interface {
	Name() string
	Configured() bool
	FetchRaw(ctx context.Context, lat, lng float64) ([]byte, error)
}

// HistoryStore is the contract the in-memory snapshot store satisfies.
type HistoryStore interface {
	SaveSnapshot(loc Location, snap Snapshot)
	GetLatest(loc Location) (Snapshot, error)
	GetRange(loc Location, from, to time.Time) ([]Snapshot, error)
}

// Service fetches weather for a location with the deterministic mock as its
// availability backstop: a provider failure of any kind (transport,
// status, malformed payload) is swallowed and replaced by Mock, so callers
// never observe a failure state for weather.
type Service struct {
	provider RawProvider
	store    HistoryStore
}

func NewService(provider RawProvider, store HistoryStore) *Service {
	return &Service{provider: provider, store: store}
}

// Current returns the normalized weather for a location. It is total.
func (s *Service) Current(ctx context.Context, loc Location) Snapshot {
	snap, fromProvider := s.fetch(ctx, loc)
	if !fromProvider {
		log.Printf("weather: falling back to mock data for %s", loc.Key())
	}
	if s.store != nil {
		s.store.SaveSnapshot(loc, snap)
	}
	return snap
}

func (s *Service) fetch(ctx context.Context, loc Location) (Snapshot, bool) {
	if s.provider == nil || !s.provider.Configured() {
		return Mock(loc.Lng, loc.Lat), false
	}

	body, err := s.provider.FetchRaw(ctx, loc.Lat, loc.Lng)
	if err != nil {
		log.Printf("weather: provider %s fetch failed for %s: %v", s.provider.Name(), loc.Key(), err)
		return Mock(loc.Lng, loc.Lat), false
	}

	raw, err := ParseRaw(body)
	if err != nil {
		log.Printf("weather: provider %s payload invalid for %s: %v", s.provider.Name(), loc.Key(), err)
		return Mock(loc.Lng, loc.Lat), false
	}

	snap, err := Normalize(raw)
	if err != nil {
		return Mock(loc.Lng, loc.Lat), false
	}
	return snap, true
}

// FetchRawValidated returns the provider-native body for the proxy
// endpoint, after shape validation. Unlike Current it propagates errors;
// the proxy contract surfaces them as distinct HTTP statuses.
func (s *Service) FetchRawValidated(ctx context.Context, loc Location) ([]byte, error) {
	body, err := s.provider.FetchRaw(ctx, loc.Lat, loc.Lng)
	if err != nil {
		return nil, err
	}
	if _, err := ParseRaw(body); err != nil {
		return nil, err
	}
	return body, nil
}

// Latest returns the most recent stored snapshot for a location.
func (s *Service) Latest(loc Location) (Snapshot, error) {
	return s.store.GetLatest(loc)
}

// Range returns stored snapshots for a location between from and to.
func (s *Service) Range(loc Location, from, to time.Time) ([]Snapshot, error) {
	return s.store.GetRange(loc, from, to)
}
