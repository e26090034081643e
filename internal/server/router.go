package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RouteRegistrar defines anything that can wire its routes into a Gin group.
type RouteRegistrar interface {
	// RegisterRoutes should add one or more routes on the provided router group.
	RegisterRoutes(rg *gin.RouterGroup)
}

// RegistrarFunc adapts a plain registration func to RouteRegistrar, so a
// handler can expose separate public and protected route sets.
type RegistrarFunc func(rg *gin.RouterGroup)

// RegisterRoutes implements RouteRegistrar.
func (f RegistrarFunc) RegisterRoutes(rg *gin.RouterGroup) { f(rg) }

// RegisterRoutes wires up health, public, and protected routes.
func RegisterRoutes(
	r *gin.Engine,
	authMiddleware gin.HandlerFunc,
	publicRegs []RouteRegistrar,
	protectedRegs []RouteRegistrar,
) {
	// Global middleware
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to da-crawl!"})
	})
	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public API v1
	public := r.Group("/api/v1")
	for _, reg := range publicRegs {
		reg.RegisterRoutes(public)
	}

	// Protected API v1
	protected := r.Group("/api/v1")
	if authMiddleware != nil {
		protected.Use(authMiddleware)
	}
	for _, reg := range protectedRegs {
		reg.RegisterRoutes(protected)
	}
}
