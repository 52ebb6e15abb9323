package services

// FoodDailyRate is the flat per-day allowance for food and local travel.
const FoodDailyRate = 1000.0

// Budget line labels, in display order.
const (
	BudgetFlight        = "Flight"
	BudgetHotel         = "Hotel"
	BudgetFoodAndTravel = "Food & Travel"
	BudgetTotal         = "Total"
)

type Budget struct {
	Flight        float64 `json:"flight"`
	Hotel         float64 `json:"hotel"`
	FoodAndTravel float64 `json:"food_and_travel"`
	Total         float64 `json:"total"`
}

type BudgetLine struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

func EstimateBudget(flightPrice, hotelNightly float64, days int) Budget {
	hotelTotal := hotelNightly * float64(days)
	food := FoodDailyRate * float64(days)
	return Budget{
		Flight:        flightPrice,
		Hotel:         hotelTotal,
		FoodAndTravel: food,
		Total:         flightPrice + hotelTotal + food,
	}
}

// Lines returns the breakdown with the total last.
func (b Budget) Lines() []BudgetLine {
	return []BudgetLine{
		{Label: BudgetFlight, Amount: b.Flight},
		{Label: BudgetHotel, Amount: b.Hotel},
		{Label: BudgetFoodAndTravel, Amount: b.FoodAndTravel},
		{Label: BudgetTotal, Amount: b.Total},
	}
}
