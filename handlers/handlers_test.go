package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"tripagent/catalog"
	"tripagent/services"

	"github.com/gin-gonic/gin"
)

type stubGeocoder struct{}

func (stubGeocoder) Geocode(ctx context.Context, city string) (services.Coordinates, error) {
	return services.Coordinates{Latitude: 15.3, Longitude: 74.1}, nil
}

type stubForecaster struct{}

func (stubForecaster) DailyMaxTemperatures(ctx context.Context, at services.Coordinates, start time.Time, days int) ([]float64, error) {
	temps := make([]float64, days)
	for i := range temps {
		temps[i] = 31
	}
	return temps, nil
}

func testRouter() *gin.Engine {
	r, err := newTestRouter(nil)
	if err != nil {
		panic(err)
	}
	return r
}

func newTestRouter(trustedProxies []string) (*gin.Engine, error) {
	gin.SetMode(gin.TestMode)

	cat := catalog.New(
		[]catalog.Flight{
			{From: "Delhi", To: "Goa", Airline: "IndiGo", Price: 5400},
			{From: "Delhi", To: "Goa", Airline: "SpiceJet", Price: 4800},
		},
		[]catalog.Hotel{
			{City: "Goa", Name: "Casa Baga", PricePerNight: 4200, Stars: 4},
			{City: "Goa", Name: "Zostel", PricePerNight: 1200, Stars: 2},
		},
		[]catalog.Place{
			{City: "Goa", Name: "Baga Beach", Rating: 4.5},
			{City: "Goa", Name: "Bom Jesus", Rating: 4.7},
		},
	)
	planner := services.NewPlanner(cat, services.NewWeatherEstimator(stubGeocoder{}, stubForecaster{}, nil))
	ai := services.NewAIClient("", "m", "http://127.0.0.1:0", time.Second)
	return NewRouter(New(planner, cat, ai, "₹"), []string{"http://localhost:5173"}, trustedProxies)
}

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPlanHandler(t *testing.T) {
	r := testRouter()

	w := postJSON(r, "/api/plan", `{"source":"Delhi","destination":"Goa","days":2,"max_hotel_price":5000}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("missing X-Request-ID header")
	}

	var resp struct {
		PlanID  string            `json:"plan_id"`
		Flight  catalog.Flight    `json:"flight"`
		Hotel   catalog.Hotel     `json:"hotel"`
		Weather services.Forecast `json:"weather"`
		Budget  services.Budget   `json:"budget"`
		Notes   string            `json:"notes"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.PlanID == "" {
		t.Fatalf("missing plan_id")
	}
	if resp.Flight.Airline != "SpiceJet" || resp.Hotel.Name != "Zostel" {
		t.Fatalf("flight = %+v, hotel = %+v", resp.Flight, resp.Hotel)
	}
	if resp.Weather.Source != services.ForecastLive || len(resp.Weather.Days) != 2 {
		t.Fatalf("weather = %+v", resp.Weather)
	}
	if resp.Budget.Total != 9200 {
		t.Fatalf("total = %v, want 9200", resp.Budget.Total)
	}
	if resp.Notes != "" {
		t.Fatalf("notes should be empty unless requested")
	}
}

func TestPlanHandlerDefaultCeilingAndNotes(t *testing.T) {
	r := testRouter()

	w := postJSON(r, "/api/plan", `{"source":"Delhi","destination":"Goa","days":1,"notes":true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Request services.TripRequest `json:"request"`
		Notes   string               `json:"notes"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Request.MaxHotelPrice != services.DefaultMaxHotelPrice {
		t.Fatalf("max_hotel_price = %v, want default", resp.Request.MaxHotelPrice)
	}
	if resp.Notes == "" {
		t.Fatalf("expected fallback notes")
	}
}

func TestPlanHandlerNoOffer(t *testing.T) {
	r := testRouter()

	w := postJSON(r, "/api/plan", `{"source":"Goa","destination":"Delhi","days":2,"max_hotel_price":5000}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if !strings.Contains(w.Body.String(), services.NoOfferMessage) {
		t.Fatalf("body = %s", w.Body.String())
	}

	// ceiling below every hotel
	w = postJSON(r, "/api/plan", `{"source":"Delhi","destination":"Goa","days":2,"max_hotel_price":500}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestPlanHandlerBadRequest(t *testing.T) {
	r := testRouter()

	for _, body := range []string{
		`{"source":"Delhi","destination":"Goa","days":0}`,
		`{"source":"Delhi","destination":"Goa","days":-2}`,
		`{"source":"Delhi","destination":"Goa","days":31}`,
		`{"source":"Delhi","destination":"Goa","days":35184372088832}`,
		`{"source":"Delhi","destination":"Goa","days":2,"max_hotel_price":-1}`,
		`{"source":" ","destination":"Goa","days":2}`,
		`{"destination":"Goa","days":2}`,
		`not json`,
	} {
		if w := postJSON(r, "/api/plan", body); w.Code != http.StatusBadRequest {
			t.Fatalf("body %s: status = %d, want 400", body, w.Code)
		}
	}
}

func TestPlanPDFHandler(t *testing.T) {
	r := testRouter()

	w := postJSON(r, "/api/plan/pdf", `{"source":"Delhi","destination":"Goa","days":2}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.Contains(w.Header().Get("Content-Disposition"), "trip-goa-2d.pdf") {
		t.Fatalf("content disposition = %q", w.Header().Get("Content-Disposition"))
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")) {
		t.Fatalf("body is not a PDF")
	}
}

func TestCitiesHandler(t *testing.T) {
	r := testRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/cities", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp struct {
		Cities []string `json:"cities"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Cities) != 2 || resp.Cities[0] != "Delhi" || resp.Cities[1] != "Goa" {
		t.Fatalf("cities = %v", resp.Cities)
	}
}

func TestHealthHandler(t *testing.T) {
	r := testRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp struct {
		Status   string         `json:"status"`
		Catalog  map[string]int `json:"catalog"`
		Database string         `json:"database"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "ok" || resp.Catalog["flights"] != 2 || resp.Catalog["places"] != 2 {
		t.Fatalf("health = %+v", resp)
	}
	if resp.Database != "not initialized" {
		t.Fatalf("database = %q", resp.Database)
	}
}

func TestRequestIDIsKept(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Fatalf("X-Request-ID = %q", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := testRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestTrustedProxies(t *testing.T) {
	clientIP := func(r *gin.Engine) string {
		r.GET("/ip", func(c *gin.Context) { c.String(http.StatusOK, c.ClientIP()) })
		req := httptest.NewRequest(http.MethodGet, "/ip", nil)
		req.RemoteAddr = "192.0.2.10:4321"
		req.Header.Set("X-Forwarded-For", "203.0.113.7")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Body.String()
	}

	if got := clientIP(testRouter()); got != "192.0.2.10" {
		t.Fatalf("untrusted proxy: client ip = %q, want remote addr", got)
	}

	r, err := newTestRouter([]string{"192.0.2.0/24"})
	if err != nil {
		t.Fatalf("newTestRouter returned error: %v", err)
	}
	if got := clientIP(r); got != "203.0.113.7" {
		t.Fatalf("trusted proxy: client ip = %q, want forwarded addr", got)
	}

	if _, err := newTestRouter([]string{"not-an-ip"}); err == nil {
		t.Fatalf("expected error for invalid proxy")
	}
}
