package venue

import (
	"errors"
	"sync"
)

var (
	// ErrNotFound is returned when no venue exists for a given id.
	ErrNotFound = errors.New("venue not found")

	// ErrDuplicateID is returned when adding a venue whose id is already
	// present in the collection.
	ErrDuplicateID = errors.New("venue id already in collection")
)

// Store holds the venue collection. Every mutation replaces the whole slice
// (append-via-copy); readers always get their own copy, so a slow consumer
// never observes a half-applied update and concurrent adders cannot lose
// each other's writes.
type Store struct {
	mu     sync.RWMutex
	venues []Venue
}

// NewStore creates a store preloaded with the given venues.
func NewStore(initial []Venue) *Store {
	return &Store{venues: append([]Venue(nil), initial...)}
}

// All returns a copy of the current collection.
func (s *Store) All() []Venue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Venue(nil), s.venues...)
}

// Get returns the venue with the given id.
func (s *Store) Get(id string) (Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.venues {
		if v.ID == id {
			return v, nil
		}
	}
	return Venue{}, ErrNotFound
}

// Filter returns venues matching a named filter: "cafe", "pub", or
// "outdoor". Any other filter returns the full collection, matching the
// original endpoint's permissive behavior.
func (s *Store) Filter(filter string) []Venue {
	all := s.All()

	var keep func(Venue) bool
	switch filter {
	case "cafe":
		keep = func(v Venue) bool { return v.Category == CategoryCafe }
	case "pub":
		keep = func(v Venue) bool { return v.Category == CategoryPub }
	case "outdoor":
		keep = func(v Venue) bool { return v.HasOutdoorSeating }
	default:
		return all
	}

	out := make([]Venue, 0, len(all))
	for _, v := range all {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// Add appends a venue via whole-collection replacement. Venue identity is
// the id; adding an id that is already present is rejected.
func (s *Store) Add(v Venue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.venues {
		if existing.ID == v.ID {
			return ErrDuplicateID
		}
	}
	next := make([]Venue, 0, len(s.venues)+1)
	next = append(next, s.venues...)
	next = append(next, v)
	s.venues = next
	return nil
}

// Replace swaps in a whole new collection. Used by the weather attachment
// fan-out, which builds an annotated copy and publishes it atomically.
func (s *Store) Replace(venues []Venue) {
	next := append([]Venue(nil), venues...)
	s.mu.Lock()
	s.venues = next
	s.mu.Unlock()
}

// SetWeather attaches a weather subset to the venue with the given id,
// again by replacement rather than in-place mutation.
func (s *Store) SetWeather(id string, w *Weather) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, v := range s.venues {
		if v.ID != id {
			continue
		}
		next := append([]Venue(nil), s.venues...)
		next[i].Weather = w
		s.venues = next
		return nil
	}
	return ErrNotFound
}

// Len reports the collection size.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.venues)
}
