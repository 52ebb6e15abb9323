package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// GeneratePlanPDF renders the plan and returns raw bytes. Nothing is written to disk.
func GeneratePlanPDF(plan *TripPlan, currency string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// Core fonts are cp1252; translate so "°C" survives.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	currency = pdfCurrency(currency)
	money := func(v float64) string { return currency + FormatAmount(v) }

	// ── Header Bar ───────────────────────────────────────────
	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "Trip Planner", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(212, 168, 67)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, tr(fmt.Sprintf("Your %d-Day Trip to %s", plan.Request.Days, plan.Request.Destination)),
		"", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	// ── Disclaimer ───────────────────────────────────────────
	pdf.SetFillColor(255, 248, 225)
	pdf.SetDrawColor(212, 168, 67)
	pdf.SetTextColor(130, 90, 20)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetLineWidth(0.4)
	y := pdf.GetY()
	pdf.Rect(20, y, 170, 12, "FD")
	pdf.SetXY(23, y+2)
	disclaimer := "This is NOT a booking confirmation. Prices come from a static catalog and are estimates."
	if plan.Weather.Source == ForecastEstimated {
		disclaimer += " Weather could not be fetched; temperatures shown are simulated."
	}
	pdf.MultiCell(164, 4, disclaimer, "", "C", false)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.Ln(6)

	// ── Section Helper ───────────────────────────────────────
	sectionHeader := func(title string) {
		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, tr(label), "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, tr(value), "", 1, "L", false, 0, "")
	}

	// ── Trip Overview ─────────────────────────────────────────
	sectionHeader("Trip Overview")
	row("Route", fmt.Sprintf("%s - %s", plan.Request.Source, plan.Request.Destination))
	row("Duration", fmt.Sprintf("%d days", plan.Request.Days))
	row("Hotel ceiling", money(plan.Request.MaxHotelPrice)+" / night")
	row("Generated", time.Now().Format("02 Jan 2006, 15:04"))
	pdf.Ln(4)

	// ── Selected Flight ───────────────────────────────────────
	sectionHeader("Flight Selected")
	row("Airline", plan.Flight.Airline)
	row("Price", money(plan.Flight.Price))
	pdf.Ln(4)

	// ── Selected Hotel ────────────────────────────────────────
	sectionHeader("Hotel Booked")
	row("Hotel", plan.Hotel.Name)
	row("Rating", fmt.Sprintf("%d-star", plan.Hotel.Stars))
	row("Price", fmt.Sprintf("%s/night x %d nights = %s",
		money(plan.Hotel.PricePerNight), plan.Request.Days, money(plan.Budget.Hotel)))
	pdf.Ln(4)

	// ── Weather ───────────────────────────────────────────────
	weatherTitle := "Weather"
	if plan.Weather.Source == ForecastEstimated {
		weatherTitle += " (estimated)"
	}
	sectionHeader(weatherTitle)
	for i, temp := range plan.Weather.Days {
		row(fmt.Sprintf("Day %d", i+1), temp)
	}
	pdf.Ln(4)

	// ── Itinerary ─────────────────────────────────────────────
	sectionHeader("Itinerary")
	if len(plan.Itinerary) == 0 {
		row("", "No sightseeing places listed for "+plan.Request.Destination)
	}
	for _, d := range plan.Itinerary {
		row(fmt.Sprintf("Day %d", d.Day), strings.Join(d.Places[:], ", "))
	}
	pdf.Ln(4)

	// ── Cost Summary ──────────────────────────────────────────
	sectionHeader("Estimated Budget")
	lines := plan.Budget.Lines()
	for _, line := range lines[:len(lines)-1] {
		row(line.Label, money(line.Amount))
	}

	pdf.SetFillColor(212, 168, 67)
	pdf.SetTextColor(13, 24, 37)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(55, 9, "TOTAL COST", "", 0, "L", true, 0, "")
	pdf.CellFormat(115, 9, tr(money(plan.Budget.Total)), "", 1, "L", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	// ── Travel Notes ──────────────────────────────────────────
	if plan.Notes != "" {
		sectionHeader("Travel Notes")
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(40, 40, 40)
		pdf.MultiCell(170, 5, tr(plan.Notes), "", "L", false)
		pdf.Ln(4)
	}

	// ── Footer ────────────────────────────────────────────────
	pdf.SetY(-22)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 8,
		"Generated by Trip Planner - Not a booking confirmation - Prices subject to change",
		"", 0, "C", false, 0, "")

	// ── Write to buffer ───────────────────────────────────────
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}

// pdfCurrency swaps symbols the core fonts cannot draw.
func pdfCurrency(symbol string) string {
	switch symbol {
	case "₹":
		return "Rs."
	case "":
		return ""
	}
	return symbol
}
