package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/menucraft/backend/internal/api"
	"github.com/menucraft/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	authHandler *api.AuthHandler,
	menuHandler *api.MenuHandler,
	allowedOrigins []string,
) *gin.Engine {
	router := gin.Default()

	// CORS middleware
	router.Use(middleware.CORS(allowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	authHandler.RegisterRoutes(v1)
	menuHandler.RegisterRoutes(v1)

	return router
}
