// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"postpilot/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ListAnalytics handles GET /api/analytics
// @Summary List analytics
// @Description Returns analytics for every posted post, in promotion order
// @Tags analytics
// @Produce json
// @Success 200 {array} models.Analytics
// @Router /analytics [get]
func (s *Server) ListAnalytics(c *fiber.Ctx) error {
	return c.JSON(s.store.Analytics())
}

// GetEngagementTotals handles GET /api/analytics/totals
// @Summary Engagement totals
// @Tags analytics
// @Produce json
// @Success 200 {object} models.EngagementTotals
// @Router /analytics/totals [get]
func (s *Server) GetEngagementTotals(c *fiber.Ctx) error {
	return c.JSON(s.store.EngagementTotals())
}

// GetPostAnalytics handles GET /api/analytics/:postId
// @Summary Analytics for one post
// @Tags analytics
// @Produce json
// @Param postId path string true "Post ID"
// @Success 200 {object} models.Analytics
// @Failure 404 {object} object{error=string}
// @Router /analytics/{postId} [get]
func (s *Server) GetPostAnalytics(c *fiber.Ctx) error {
	postID := c.Params("postId")

	analytics, ok := s.store.AnalyticsFor(postID)
	if !ok {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("analytics", postID))
	}

	return c.JSON(analytics)
}
