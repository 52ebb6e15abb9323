package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"tripagent/metrics"
)

// ─── Types ────────────────────────────────────────────────────────────────────

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

var ErrLocationNotFound = errors.New("location not found")

type Geocoder interface {
	Geocode(ctx context.Context, city string) (Coordinates, error)
}

// Forecaster returns one daily maximum temperature (°C) per day starting at start.
type Forecaster interface {
	DailyMaxTemperatures(ctx context.Context, at Coordinates, start time.Time, days int) ([]float64, error)
}

type ForecastSource string

const (
	ForecastLive        ForecastSource = "live"
	ForecastEstimated   ForecastSource = "estimated"
	ForecastUnavailable ForecastSource = "unavailable"
)

const WeatherUnavailable = "Weather unavailable"

// Fallback temperatures are drawn uniformly from this range.
const (
	FallbackMinTemp = 28.0
	FallbackMaxTemp = 35.0
)

// Forecast always has one entry per requested day. Source tells a real forecast
// apart from a simulated one.
type Forecast struct {
	Days   []string       `json:"days"`
	Source ForecastSource `json:"source"`
}

// ─── Nominatim Geocoder ───────────────────────────────────────────────────────

type NominatimClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

func NewNominatimClient(baseURL, userAgent string, timeout time.Duration) *NominatimClient {
	return &NominatimClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *NominatimClient) Geocode(ctx context.Context, city string) (Coordinates, error) {
	u := fmt.Sprintf("%s/search?q=%s&format=json&limit=1", c.baseURL, url.QueryEscape(city))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Coordinates{}, err
	}
	// Nominatim rejects requests without an identifying User-Agent
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Coordinates{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Coordinates{}, fmt.Errorf("nominatim error (%d): %s", resp.StatusCode, string(body))
	}

	var result []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Coordinates{}, fmt.Errorf("failed to parse geocoding response: %w", err)
	}
	if len(result) == 0 {
		return Coordinates{}, fmt.Errorf("%w: %s", ErrLocationNotFound, city)
	}

	lat, err := strconv.ParseFloat(result[0].Lat, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("invalid latitude %q: %w", result[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(result[0].Lon, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("invalid longitude %q: %w", result[0].Lon, err)
	}
	return Coordinates{Latitude: lat, Longitude: lon}, nil
}

// ─── Open-Meteo Forecaster ────────────────────────────────────────────────────

type OpenMeteoClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewOpenMeteoClient(baseURL string, timeout time.Duration) *OpenMeteoClient {
	return &OpenMeteoClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type openMeteoResponse struct {
	Daily *struct {
		Time             []string   `json:"time"`
		Temperature2mMax []*float64 `json:"temperature_2m_max"`
	} `json:"daily"`
}

func (c *OpenMeteoClient) DailyMaxTemperatures(ctx context.Context, at Coordinates, start time.Time, days int) ([]float64, error) {
	startDate := start.Format("2006-01-02")
	endDate := start.AddDate(0, 0, days-1).Format("2006-01-02")

	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(at.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(at.Longitude, 'f', -1, 64))
	q.Set("daily", "temperature_2m_max")
	q.Set("timezone", "auto")
	q.Set("start_date", startDate)
	q.Set("end_date", endDate)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/forecast?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("open-meteo error (%d): %s", resp.StatusCode, string(body))
	}

	var parsed openMeteoResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse forecast: %w", err)
	}
	if parsed.Daily == nil {
		return nil, fmt.Errorf("forecast response has no daily block")
	}
	if len(parsed.Daily.Temperature2mMax) != days {
		return nil, fmt.Errorf("forecast returned %d days, want %d", len(parsed.Daily.Temperature2mMax), days)
	}

	temps := make([]float64, 0, days)
	for i, t := range parsed.Daily.Temperature2mMax {
		if t == nil {
			return nil, fmt.Errorf("forecast day %d has no temperature", i+1)
		}
		temps = append(temps, *t)
	}
	return temps, nil
}

// ─── Weather Estimator ────────────────────────────────────────────────────────

type WeatherEstimator struct {
	geocoder   Geocoder
	forecaster Forecaster
	rng        RandomSource
	now        func() time.Time
}

// NewWeatherEstimator uses a crypto-backed random source when rng is nil.
func NewWeatherEstimator(geocoder Geocoder, forecaster Forecaster, rng RandomSource) *WeatherEstimator {
	if rng == nil {
		rng = NewSafeRand()
	}
	return &WeatherEstimator{
		geocoder:   geocoder,
		forecaster: forecaster,
		rng:        rng,
		now:        time.Now,
	}
}

// Estimate never fails: a city that cannot be located yields placeholder entries and a
// failed forecast yields simulated temperatures.
func (w *WeatherEstimator) Estimate(ctx context.Context, city string, days int) Forecast {
	if days <= 0 {
		return Forecast{Days: []string{}, Source: ForecastUnavailable}
	}

	forecast := w.estimate(ctx, city, days)
	metrics.ForecastsTotal.WithLabelValues(string(forecast.Source)).Inc()
	return forecast
}

func (w *WeatherEstimator) estimate(ctx context.Context, city string, days int) Forecast {
	coords, err := w.geocoder.Geocode(ctx, city)
	if err != nil {
		log.Printf("⚠️  Geocoding %q failed: %v — weather unavailable", city, err)
		return unavailableForecast(days)
	}

	temps, err := w.forecaster.DailyMaxTemperatures(ctx, coords, w.now(), days)
	if err == nil && len(temps) != days {
		err = fmt.Errorf("forecast returned %d days, want %d", len(temps), days)
	}
	if err != nil {
		log.Printf("⚠️  Forecast for %q failed: %v — using estimated temperatures", city, err)
		return w.fallbackForecast(days)
	}

	labels := make([]string, len(temps))
	for i, t := range temps {
		labels[i] = formatCelsius(t)
	}
	return Forecast{Days: labels, Source: ForecastLive}
}

func unavailableForecast(days int) Forecast {
	labels := make([]string, days)
	for i := range labels {
		labels[i] = WeatherUnavailable
	}
	return Forecast{Days: labels, Source: ForecastUnavailable}
}

func (w *WeatherEstimator) fallbackForecast(days int) Forecast {
	labels := make([]string, days)
	for i := range labels {
		t := FallbackMinTemp + w.rng.Float64()*(FallbackMaxTemp-FallbackMinTemp)
		labels[i] = formatCelsius(math.Round(t*10) / 10)
	}
	return Forecast{Days: labels, Source: ForecastEstimated}
}

// formatCelsius keeps at least one decimal: 31 → "31.0°C", 30.25 → "30.25°C".
func formatCelsius(t float64) string {
	s := strconv.FormatFloat(t, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s + "°C"
}

// ParseCelsius reverses formatCelsius.
func ParseCelsius(label string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSuffix(label, "°C"), 64)
}
