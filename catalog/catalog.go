// Package catalog holds the static flight, hotel and place collections a trip is
// planned from, together with the selectors that filter them.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ─── Records ──────────────────────────────────────────────────────────────────

type Flight struct {
	From    string  `json:"from"`
	To      string  `json:"to"`
	Airline string  `json:"airline"`
	Price   float64 `json:"price"`
}

type Hotel struct {
	City          string  `json:"city"`
	Name          string  `json:"name"`
	PricePerNight float64 `json:"price_per_night"`
	Stars         int     `json:"stars"`
}

type Place struct {
	City   string  `json:"city"`
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
}

// ─── Catalog ──────────────────────────────────────────────────────────────────

// Catalog is read-only once built. It is safe to share between goroutines.
type Catalog struct {
	flights []Flight
	hotels  []Hotel
	places  []Place
}

// New copies the given records so later changes by the caller are not observed.
func New(flights []Flight, hotels []Hotel, places []Place) *Catalog {
	return &Catalog{
		flights: append([]Flight(nil), flights...),
		hotels:  append([]Hotel(nil), hotels...),
		places:  append([]Place(nil), places...),
	}
}

const (
	FlightsFile = "flights.json"
	HotelsFile  = "hotels.json"
	PlacesFile  = "places.json"
)

// LoadDir reads flights.json, hotels.json and places.json from dir.
func LoadDir(dir string) (*Catalog, error) {
	var (
		flights []Flight
		hotels  []Hotel
		places  []Place
	)

	if err := readJSON(filepath.Join(dir, FlightsFile), &flights); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, HotelsFile), &hotels); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, PlacesFile), &places); err != nil {
		return nil, err
	}

	return New(flights, hotels, places), nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("read catalog %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode catalog %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (c *Catalog) Flights() []Flight { return append([]Flight(nil), c.flights...) }
func (c *Catalog) Hotels() []Hotel   { return append([]Hotel(nil), c.hotels...) }
func (c *Catalog) Places() []Place   { return append([]Place(nil), c.places...) }

// Counts reports the number of flights, hotels and places.
func (c *Catalog) Counts() (flights, hotels, places int) {
	return len(c.flights), len(c.hotels), len(c.places)
}

// Cities returns every city that appears as a flight origin or destination, sorted.
func (c *Catalog) Cities() []string {
	seen := make(map[string]struct{}, len(c.flights))
	for _, f := range c.flights {
		seen[f.From] = struct{}{}
		seen[f.To] = struct{}{}
	}
	cities := make([]string, 0, len(seen))
	for city := range seen {
		cities = append(cities, city)
	}
	sort.Strings(cities)
	return cities
}
