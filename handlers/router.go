package handlers

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter trusts only the given proxies for X-Forwarded-For; nil trusts none.
func NewRouter(h *Handler, allowedOrigins, trustedProxies []string) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), Logger())

	if err := r.SetTrustedProxies(trustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", h.HealthHandler)
		api.GET("/cities", h.CitiesHandler)
		api.POST("/plan", h.PlanHandler)
		api.POST("/plan/pdf", h.PlanPDFHandler)
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r, nil
}
