// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"strings"

	"postpilot/internal/generator"
	"postpilot/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GenerateContent handles POST /api/generate
// @Summary Generate post content
// @Description Produces a deterministic caption, hashtag set, and image URL for a category and topic
// @Tags generate
// @Accept json
// @Produce json
// @Param request body object{category=string,topic=string} true "Generation request"
// @Success 200 {object} generator.Content
// @Failure 400 {object} object{error=string}
// @Router /generate [post]
func (s *Server) GenerateContent(c *fiber.Ctx) error {
	var req struct {
		Category string `json:"category"`
		Topic    string `json:"topic"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if strings.TrimSpace(req.Category) == "" || strings.TrimSpace(req.Topic) == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Category and topic are required"))
	}

	return c.JSON(generator.Generate(req.Category, req.Topic))
}
