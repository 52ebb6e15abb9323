package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
	"tripagent/metrics"
)

const (
	NotesSourceAI       = "ai"
	NotesSourceFallback = "fallback"
)

// AIClient writes short travel notes for a finished plan through the
// Hugging Face inference API.
type AIClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewAIClient(apiKey, model, baseURL string, timeout time.Duration) *AIClient {
	c := &AIClient{
		apiKey:     apiKey,
		model:      model,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}

	if apiKey != "" {
		log.Println("✅ AI (HuggingFace) initialized with model:", model)
	} else {
		log.Println("⚠️  HUGGINGFACE_API_KEY not set, travel notes will use fallback text")
	}
	return c
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
}

type hfResponse []struct {
	GeneratedText string `json:"generated_text"`
}

// TravelNotes asks the model for notes on the plan.
func (c *AIClient) TravelNotes(ctx context.Context, plan *TripPlan) (string, error) {
	if c == nil || c.apiKey == "" {
		return "", fmt.Errorf("huggingface API key not configured")
	}

	reqBody := hfRequest{
		Inputs: buildNotesPrompt(plan),
		Parameters: hfParameters{
			MaxNewTokens:   300,
			Temperature:    0.6,
			ReturnFullText: false,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode == http.StatusServiceUnavailable {
		return "", fmt.Errorf("AI model is loading, please retry in a few seconds")
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HuggingFace API error (%d): %s", resp.StatusCode, string(body))
	}

	var hfResp hfResponse
	if err := json.Unmarshal(body, &hfResp); err != nil {
		return "", fmt.Errorf("failed to parse AI response: %w", err)
	}
	if len(hfResp) == 0 || strings.TrimSpace(hfResp[0].GeneratedText) == "" {
		return "", fmt.Errorf("empty response from AI")
	}

	return strings.TrimSpace(hfResp[0].GeneratedText), nil
}

// NotesFor never fails: any AI error is logged and FallbackNotes is used.
func (c *AIClient) NotesFor(ctx context.Context, plan *TripPlan) string {
	notes, err := c.TravelNotes(ctx, plan)
	if err != nil {
		log.Printf("⚠️  Travel notes fallback for %s: %v", plan.Request.Destination, err)
		metrics.NotesTotal.WithLabelValues(NotesSourceFallback).Inc()
		return FallbackNotes(plan)
	}
	metrics.NotesTotal.WithLabelValues(NotesSourceAI).Inc()
	return notes
}

func buildNotesPrompt(plan *TripPlan) string {
	var b strings.Builder
	req := plan.Request

	fmt.Fprintf(&b, "[INST] You are a helpful travel assistant. Write brief, practical notes for this trip.\n\n")
	fmt.Fprintf(&b, "Trip: %s to %s | %d day(s)\n", req.Source, req.Destination, req.Days)
	fmt.Fprintf(&b, "Flight: %s\n", plan.Flight.Airline)
	fmt.Fprintf(&b, "Hotel: %s (%d-star)\n", plan.Hotel.Name, plan.Hotel.Stars)

	if len(plan.Weather.Days) > 0 {
		fmt.Fprintf(&b, "Daily max temperature: %s", strings.Join(plan.Weather.Days, ", "))
		if plan.Weather.Source == ForecastEstimated {
			b.WriteString(" (estimated, live forecast unavailable)")
		}
		b.WriteString("\n")
	}
	for _, d := range plan.Itinerary {
		fmt.Fprintf(&b, "Day %d: %s\n", d.Day, strings.Join(d.Places[:], ", "))
	}

	b.WriteString("\nIn 100 words or fewer, suggest what to pack and how to pace the days. Be direct. [/INST]")
	return b.String()
}

// FallbackNotes builds deterministic notes from the plan alone.
func FallbackNotes(plan *TripPlan) string {
	var notes []string

	if hottest, ok := hottestDay(plan.Weather.Days); ok {
		switch {
		case hottest >= 32:
			notes = append(notes, "Expect hot afternoons: carry water and sunscreen, and plan outdoor visits for the morning.")
		case hottest <= 15:
			notes = append(notes, "Evenings will be cool, so pack a warm layer.")
		default:
			notes = append(notes, "The weather looks mild; light clothing should be enough.")
		}
		if plan.Weather.Source == ForecastEstimated {
			notes = append(notes, "Temperatures are estimates, so check a live forecast before you leave.")
		}
	} else {
		notes = append(notes, "No forecast is available, so check the weather before you leave.")
	}

	if len(plan.Itinerary) > 0 {
		first := plan.Itinerary[0].Places[0]
		notes = append(notes, fmt.Sprintf("Start with %s on day 1 while you are fresh.", first))
	} else {
		notes = append(notes, fmt.Sprintf("No sightseeing places are listed for %s; ask your hotel for local tips.", plan.Request.Destination))
	}

	notes = append(notes, fmt.Sprintf("Keep %s per day aside for food and local travel.", FormatAmount(FoodDailyRate)))
	return strings.Join(notes, " ")
}

func hottestDay(days []string) (float64, bool) {
	found := false
	var hottest float64
	for _, d := range days {
		v, err := ParseCelsius(d)
		if err != nil {
			continue
		}
		if !found || v > hottest {
			hottest = v
			found = true
		}
	}
	return hottest, found
}
