package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"tripagent/database"
	"tripagent/services"

	"github.com/gin-gonic/gin"
)

// PlanPDFHandler plans like PlanHandler and streams the result as a PDF.
// The document is built per request and never stored.
func (h *Handler) PlanPDFHandler(c *gin.Context) {
	plan, ok := h.plan(c)
	if !ok {
		return
	}

	pdfBytes, err := services.GeneratePlanPDF(plan, h.currency)
	if err != nil {
		log.Printf("❌ PDF generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		return
	}

	filename := fmt.Sprintf("trip-%s-%dd.pdf", strings.ToLower(strings.ReplaceAll(plan.Request.Destination, " ", "-")), plan.Request.Days)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func (h *Handler) CitiesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cities": h.catalog.Cities()})
}

func (h *Handler) HealthHandler(c *gin.Context) {
	flights, hotels, places := h.catalog.Counts()

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "tripagent",
		"catalog": gin.H{
			"flights": flights,
			"hotels":  hotels,
			"places":  places,
		},
		"database": database.Ping(c.Request.Context()),
	})
}
