package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"tripagent/catalog"
	"tripagent/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler carries what the routes share. Everything in it is safe for
// concurrent use: the catalog is read-only and the clients hold no state.
type Handler struct {
	planner  *services.Planner
	catalog  *catalog.Catalog
	ai       *services.AIClient
	currency string
}

func New(planner *services.Planner, cat *catalog.Catalog, ai *services.AIClient, currency string) *Handler {
	return &Handler{planner: planner, catalog: cat, ai: ai, currency: currency}
}

type PlanRequest struct {
	Source        string   `json:"source" binding:"required"`
	Destination   string   `json:"destination" binding:"required"`
	Days          int      `json:"days" binding:"required,min=1,max=30"`
	MaxHotelPrice *float64 `json:"max_hotel_price" binding:"omitempty,gte=0"`
	Notes         bool     `json:"notes"`
}

func (r PlanRequest) tripRequest() services.TripRequest {
	maxPrice := services.DefaultMaxHotelPrice
	if r.MaxHotelPrice != nil {
		maxPrice = *r.MaxHotelPrice
	}
	return services.TripRequest{
		Source:        strings.TrimSpace(r.Source),
		Destination:   strings.TrimSpace(r.Destination),
		Days:          r.Days,
		MaxHotelPrice: maxPrice,
	}
}

type PlanResponse struct {
	PlanID string `json:"plan_id"`
	*services.TripPlan
}

func (h *Handler) PlanHandler(c *gin.Context) {
	plan, ok := h.plan(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, PlanResponse{
		PlanID:   uuid.New().String(),
		TripPlan: plan,
	})
}

// plan binds the body, runs the planner and writes the error response itself
// when it returns false.
func (h *Handler) plan(c *gin.Context) (*services.TripPlan, bool) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return nil, false
	}

	plan, err := h.planner.Plan(c.Request.Context(), req.tripRequest())
	switch {
	case errors.Is(err, services.ErrNoOffer):
		c.JSON(http.StatusNotFound, gin.H{"error": services.NoOfferMessage})
		return nil, false
	case services.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	case err != nil:
		log.Printf("❌ Planning failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to plan trip"})
		return nil, false
	}

	if req.Notes {
		plan.Notes = h.ai.NotesFor(c.Request.Context(), plan)
	}
	return plan, true
}
