package venue

import "github.com/draganm/sunspot/internal/weather"

// Seed returns the built-in Belgrade venue catalog. There is no system of
// record behind it; the slice is fresh on every call so callers may attach
// weather without sharing state.
func Seed() []Venue {
	return []Venue{
		{
			ID:                "1",
			Name:              "Kafeterija",
			Category:          CategoryCafe,
			Location:          weather.Location{Lng: 20.4612, Lat: 44.8186},
			Address:           "Kralja Petra 16, Belgrade",
			Rating:            4.7,
			HasOutdoorSeating: true,
			Photos:            []string{"/venues/kafeterija1.jpg", "/venues/kafeterija2.jpg"},
			OpeningHours: map[string]Hours{
				"mon": {Open: "08:00", Close: "22:00"},
				"tue": {Open: "08:00", Close: "22:00"},
				"wed": {Open: "08:00", Close: "22:00"},
				"thu": {Open: "08:00", Close: "22:00"},
				"fri": {Open: "08:00", Close: "23:00"},
				"sat": {Open: "09:00", Close: "23:00"},
				"sun": {Open: "10:00", Close: "21:00"},
			},
		},
		{
			ID:                "2",
			Name:              "Miners Pub",
			Category:          CategoryPub,
			Location:          weather.Location{Lng: 20.4583, Lat: 44.8172},
			Address:           "Rige od Fere 16, Belgrade",
			Rating:            4.5,
			HasOutdoorSeating: true,
			Photos:            []string{"/venues/miners1.jpg", "/venues/miners2.jpg"},
			OpeningHours: map[string]Hours{
				"mon": {Open: "12:00", Close: "01:00"},
				"tue": {Open: "12:00", Close: "01:00"},
				"wed": {Open: "12:00", Close: "01:00"},
				"thu": {Open: "12:00", Close: "01:00"},
				"fri": {Open: "12:00", Close: "03:00"},
				"sat": {Open: "12:00", Close: "03:00"},
				"sun": {Open: "12:00", Close: "00:00"},
			},
		},
		{
			ID:                "3",
			Name:              "Aviator Coffee",
			Category:          CategoryCafe,
			Location:          weather.Location{Lng: 20.4548, Lat: 44.8138},
			Address:           "Bulevar Kralja Aleksandra 32, Belgrade",
			Rating:            4.8,
			HasOutdoorSeating: true,
			Photos:            []string{"/venues/aviator1.jpg", "/venues/aviator2.jpg"},
			OpeningHours: map[string]Hours{
				"mon": {Open: "08:00", Close: "22:00"},
				"tue": {Open: "08:00", Close: "22:00"},
				"wed": {Open: "08:00", Close: "22:00"},
				"thu": {Open: "08:00", Close: "22:00"},
				"fri": {Open: "08:00", Close: "22:00"},
				"sat": {Open: "09:00", Close: "22:00"},
				"sun": {Open: "09:00", Close: "20:00"},
			},
		},
		{
			ID:                "4",
			Name:              "Blaznavac",
			Category:          CategoryPub,
			Location:          weather.Location{Lng: 20.4632, Lat: 44.8079},
			Address:           "Kneginje Ljubice 18, Belgrade",
			Rating:            4.6,
			HasOutdoorSeating: true,
			Photos:            []string{"/venues/blaznavac1.jpg", "/venues/blaznavac2.jpg"},
			OpeningHours: map[string]Hours{
				"mon": {Open: "09:00", Close: "01:00"},
				"tue": {Open: "09:00", Close: "01:00"},
				"wed": {Open: "09:00", Close: "01:00"},
				"thu": {Open: "09:00", Close: "01:00"},
				"fri": {Open: "09:00", Close: "02:00"},
				"sat": {Open: "09:00", Close: "02:00"},
				"sun": {Open: "09:00", Close: "00:00"},
			},
		},
		{
			ID:                "5",
			Name:              "Greenet",
			Category:          CategoryCafe,
			Location:          weather.Location{Lng: 20.4656, Lat: 44.8141},
			Address:           "Nušićeva 3, Belgrade",
			Rating:            4.9,
			HasOutdoorSeating: false,
			Photos:            []string{"/venues/greenet1.jpg", "/venues/greenet2.jpg"},
			OpeningHours: map[string]Hours{
				"mon": {Open: "07:30", Close: "21:00"},
				"tue": {Open: "07:30", Close: "21:00"},
				"wed": {Open: "07:30", Close: "21:00"},
				"thu": {Open: "07:30", Close: "21:00"},
				"fri": {Open: "07:30", Close: "21:00"},
				"sat": {Open: "08:30", Close: "21:00"},
				"sun": {Open: "09:30", Close: "20:00"},
			},
		},
	}
}
