package catalog

import "sort"

// DefaultTopN is how many offers the flight and hotel searches return by default.
const DefaultTopN = 5

// SearchFlights returns up to topN flights from source to destination, cheapest first.
// An empty result means there is no offer for the route, not an error.
func (c *Catalog) SearchFlights(source, destination string, topN int) []Flight {
	if topN <= 0 {
		return []Flight{}
	}

	var result []Flight
	for _, f := range c.flights {
		if f.From == source && f.To == destination {
			result = append(result, f)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Price < result[j].Price
	})
	return head(result, topN)
}

// FindHotels returns up to topN hotels in city priced at or below maxPrice per night,
// cheapest first.
func (c *Catalog) FindHotels(city string, maxPrice float64, topN int) []Hotel {
	if topN <= 0 {
		return []Hotel{}
	}

	var result []Hotel
	for _, h := range c.hotels {
		if h.City == city && h.PricePerNight <= maxPrice {
			result = append(result, h)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].PricePerNight < result[j].PricePerNight
	})
	return head(result, topN)
}

// DiscoverPlaces returns up to topN places in city, best rated first.
// Equal ratings keep catalog order.
func (c *Catalog) DiscoverPlaces(city string, topN int) []Place {
	if topN <= 0 {
		return []Place{}
	}

	var result []Place
	for _, p := range c.places {
		if p.City == city {
			result = append(result, p)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Rating > result[j].Rating
	})
	return head(result, topN)
}

// PlaceNames extracts the names in order.
func PlaceNames(places []Place) []string {
	names := make([]string, 0, len(places))
	for _, p := range places {
		names = append(names, p.Name)
	}
	return names
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
