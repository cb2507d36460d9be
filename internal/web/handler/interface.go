// Package handler holds what the page handlers share.
package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Service is implemented by every page handler; Init registers its routes.
type Service interface {
	Init(app *fiber.App)
}

// ExternalURL returns the absolute URL of path. baseURL is the configured
// external base URL; when empty the base URL of the request is used.
func ExternalURL(c *fiber.Ctx, baseURL, path string) string {
	if baseURL == "" {
		baseURL = c.BaseURL()
	}

	return strings.TrimSuffix(baseURL, "/") + path
}
