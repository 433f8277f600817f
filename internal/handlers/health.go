package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthCheck reports that the server is up
func HealthCheck(e echo.Context) error {
	return e.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "blogcms",
	})
}

// About renders the static about page
func About(c echo.Context) error {
	return c.Render(http.StatusOK, "about.html", nil)
}

// Contact renders the static contact page
func Contact(c echo.Context) error {
	return c.Render(http.StatusOK, "contact.html", nil)
}
