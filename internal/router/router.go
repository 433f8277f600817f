package router

import (
	"log"

	"github.com/anonto42/blogcms/internal/handlers"
	"github.com/anonto42/blogcms/internal/middleware"
	"github.com/anonto42/blogcms/internal/repositories"
	"github.com/labstack/echo/v4"
)

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, postRepo repositories.PostRepository, formTokens *middleware.FormTokenSigner) {
	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// Static pages
	e.GET("/about", handlers.About)
	e.GET("/contact", handlers.Contact)

	// Post routes
	postHandler := handlers.NewPostHandler(postRepo, formTokens)
	postHandler.RegisterPostRoutes(e)
	log.Println("Post routes configured.")

	log.Println("All routes configured.")
}
