package services

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

const NoOfferMessage = "No suitable flights or hotels found."

// FormatAmount drops a trailing ".0": 5000 → "5000", 1250.5 → "1250.5".
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RenderText writes the plan as plain text sections: flight, hotel, weather,
// itinerary, budget and total.
func RenderText(w io.Writer, plan *TripPlan, currency string) error {
	var b strings.Builder
	req := plan.Request

	fmt.Fprintf(&b, "Your %d-Day Trip to %s\n\n", req.Days, req.Destination)

	b.WriteString("✈️  Flight Selected\n")
	fmt.Fprintf(&b, "- %s (%s%s)\n\n", plan.Flight.Airline, currency, FormatAmount(plan.Flight.Price))

	b.WriteString("🏨 Hotel Booked\n")
	fmt.Fprintf(&b, "- %s (%s%s/night, %d-star)\n\n",
		plan.Hotel.Name, currency, FormatAmount(plan.Hotel.PricePerNight), plan.Hotel.Stars)

	b.WriteString("☀️  Weather")
	if plan.Weather.Source == ForecastEstimated {
		b.WriteString(" (estimated)")
	}
	b.WriteString("\n")
	for i, temp := range plan.Weather.Days {
		fmt.Fprintf(&b, "- Day %d: %s\n", i+1, temp)
	}
	b.WriteString("\n")

	b.WriteString("📍 Itinerary\n")
	if len(plan.Itinerary) == 0 {
		fmt.Fprintf(&b, "No sightseeing places listed for %s.\n", req.Destination)
	}
	for _, d := range plan.Itinerary {
		fmt.Fprintf(&b, "Day %d: %s\n", d.Day, strings.Join(d.Places[:], ", "))
	}
	b.WriteString("\n")

	b.WriteString("💰 Estimated Budget\n")
	for _, line := range plan.Budget.Lines() {
		fmt.Fprintf(&b, "- %s: %s%s\n", line.Label, currency, FormatAmount(line.Amount))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "✅ Total Cost: %s%s\n", currency, FormatAmount(plan.Budget.Total))

	if plan.Notes != "" {
		b.WriteString("\n📝 Travel Notes\n")
		b.WriteString(strings.TrimSpace(plan.Notes))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func RenderNoOffer(w io.Writer) error {
	_, err := fmt.Fprintln(w, NoOfferMessage)
	return err
}
