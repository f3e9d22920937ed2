// Package httpapi exposes the application over HTTP/JSON for the browser
// frontend.
package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine: CORS for the frontend origin, public
// auth endpoints, and the token-guarded application surface.
func NewRouter(h *Handlers, corsOrigin string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{corsOrigin},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/api/healthz", h.Healthz)

	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/signup", h.Signup)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/face-scan", h.FaceScan)
		authGroup.POST("/reset/request", h.ResetRequest)
		authGroup.POST("/reset/complete", h.ResetComplete)
	}

	apiGroup := r.Group("/api", h.RequireToken())
	{
		apiGroup.GET("/me", h.Me)
		apiGroup.GET("/forecast/last", h.LastForecast)
		apiGroup.POST("/forecast", h.GenerateForecast)
	}

	return r
}
