package services

// PlacesPerDay is how many sights the itinerary schedules each day.
const PlacesPerDay = 2

type DayPlan struct {
	Day    int                  `json:"day"`
	Places [PlacesPerDay]string `json:"places"`
}

// BuildItinerary hands out places round-robin, two per day, wrapping around when
// there are fewer places than slots. It returns nil when there is nothing to schedule.
func BuildItinerary(places []string, days int) []DayPlan {
	total := len(places)
	if total == 0 || days <= 0 {
		return nil
	}

	plan := make([]DayPlan, 0, days)
	for i := 0; i < days; i++ {
		plan = append(plan, DayPlan{
			Day: i + 1,
			Places: [PlacesPerDay]string{
				places[(i*2)%total],
				places[(i*2+1)%total],
			},
		})
	}
	return plan
}
