// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetDashboardStats handles GET /admin/stats
func (s *Server) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := s.statsService.Dashboard(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(stats)
}
