package venue

import (
	"errors"
	"testing"
)

func TestStoreAddRejectsDuplicateID(t *testing.T) {
	s := NewStore(Seed())
	if err := s.Add(Venue{ID: "1", Name: "Impostor"}); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if s.Len() != 5 {
		t.Fatalf("collection size changed on rejected add: %d", s.Len())
	}
}

func TestStoreAllReturnsCopy(t *testing.T) {
	s := NewStore(Seed())
	all := s.All()
	all[0].Name = "clobbered"

	fresh, err := s.Get(all[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if fresh.Name == "clobbered" {
		t.Fatal("mutating a returned slice leaked into the store")
	}
}

func TestStoreFilter(t *testing.T) {
	s := NewStore(Seed())

	for _, v := range s.Filter("cafe") {
		if v.Category != CategoryCafe {
			t.Errorf("filter=cafe returned %s (%s)", v.ID, v.Category)
		}
	}
	for _, v := range s.Filter("pub") {
		if v.Category != CategoryPub {
			t.Errorf("filter=pub returned %s (%s)", v.ID, v.Category)
		}
	}
	for _, v := range s.Filter("outdoor") {
		if !v.HasOutdoorSeating {
			t.Errorf("filter=outdoor returned indoor venue %s", v.ID)
		}
	}
	if got := len(s.Filter("everything-else")); got != 5 {
		t.Errorf("unknown filter should return all venues, got %d", got)
	}
}

func TestStoreReplaceDetachesFromInput(t *testing.T) {
	s := NewStore(Seed())

	next := s.All()
	w := &Weather{Temperature: 24, Condition: "Sunny", IsSunny: true}
	for i := range next {
		next[i].Weather = w
	}
	s.Replace(next)

	// The store owns its own copy: later mutation of the input slice must
	// not leak in.
	next[0].Name = "clobbered"

	all := s.All()
	if len(all) != 5 {
		t.Fatalf("expected 5 venues after replace, got %d", len(all))
	}
	for _, v := range all {
		if v.Weather == nil || !v.Weather.IsSunny {
			t.Fatalf("venue %s lost its weather on replace: %+v", v.ID, v.Weather)
		}
		if v.Name == "clobbered" {
			t.Fatal("mutating the replaced slice leaked into the store")
		}
	}
}

func TestStoreSetWeather(t *testing.T) {
	s := NewStore(Seed())
	w := &Weather{Temperature: 24, Condition: "Sunny", IsSunny: true}

	if err := s.SetWeather("3", w); err != nil {
		t.Fatal(err)
	}
	v, err := s.Get("3")
	if err != nil {
		t.Fatal(err)
	}
	if v.Weather == nil || !v.Weather.IsSunny {
		t.Fatalf("weather not attached: %+v", v.Weather)
	}

	if err := s.SetWeather("nope", w); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreGetUnknown(t *testing.T) {
	s := NewStore(nil)
	if _, err := s.Get("42"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
