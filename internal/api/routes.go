package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/adilg123/lz77-elias-codec/internal/config"
)

// RequestIDHeader carries the per-request identifier.
const RequestIDHeader = "X-Request-ID"

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, cfg *config.Config) {
	h := &handlers{cfg: cfg}

	// CORS middleware for public API access
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})
	router.Use(requestID)

	// Health check endpoint
	router.GET("/health", HandleHealth)

	// Service information endpoint
	router.GET("/info", h.HandleInfo)
	router.GET("/", h.HandleInfo) // Root endpoint shows info

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/compress", h.HandleCompress)
		v1.POST("/decompress", h.HandleDecompress)
		v1.POST("/inspect", h.HandleInspect)
		v1.GET("/info", h.HandleInfo)
		v1.GET("/health", HandleHealth)
	}

	// Legacy routes for backward compatibility
	router.POST("/compress", h.HandleCompress)
	router.POST("/decompress", h.HandleDecompress)
}

// requestID tags every request with an identifier, reusing one supplied by
// the caller.
func requestID(c *gin.Context) {
	id := c.GetHeader(RequestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.New().String()
	}
	c.Set("requestID", id)
	c.Header(RequestIDHeader, id)
	c.Next()
}
