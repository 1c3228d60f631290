package controllers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/streamnexus/nexusbackend/middleware"
	"go.uber.org/zap"
)

// NewRouter builds the engine with the full middleware stack, the API route
// table and the /metrics endpoint.
func NewRouter(app *App, allowedOrigins []string) *gin.Engine {
	r := gin.New()

	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}
	app.Logger.Info("CORS allow-list", zap.Strings("origins", allowedOrigins))

	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware(app.Logger))
	r.Use(middleware.RecoveryMiddleware(app.Logger))
	if app.Metrics != nil {
		r.Use(app.Metrics.Middleware())
	}
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			ok := allowed[origin]
			if !ok {
				app.Logger.Debug("CORS origin rejected", zap.String("origin", origin))
			}
			return ok
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	app.RegisterRoutes(r)
	if app.Metrics != nil {
		r.GET("/metrics", app.Metrics.Handler())
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	})
	return r
}
