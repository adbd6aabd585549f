// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"errors"

	"postpilot/internal/models"
	"postpilot/internal/store"

	"github.com/gofiber/fiber/v2"
)

// ListAccounts handles GET /api/accounts
// @Summary List accounts
// @Description Returns all connected accounts in creation order
// @Tags accounts
// @Produce json
// @Success 200 {array} models.Account
// @Router /accounts [get]
func (s *Server) ListAccounts(c *fiber.Ctx) error {
	return c.JSON(s.store.Accounts())
}

// CreateAccount handles POST /api/accounts
// @Summary Connect an account
// @Description Registers a new active account for a platform
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body object{platform=string,name=string} true "Account request"
// @Success 201 {object} models.Account
// @Failure 400 {object} object{error=string}
// @Router /accounts [post]
func (s *Server) CreateAccount(c *fiber.Ctx) error {
	var req struct {
		Platform string `json:"platform"`
		Name     string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	platform, ok := models.ParsePlatform(req.Platform)
	if !ok {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unsupported platform: "+req.Platform))
	}

	account, err := s.store.AddAccount(store.AddAccountInput{
		Platform: platform,
		Name:     req.Name,
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	s.publishEvent(EventAccountAdded, map[string]interface{}{
		"account_id": account.ID,
		"platform":   account.Platform,
		"name":       account.Name,
	})

	return c.Status(fiber.StatusCreated).JSON(account)
}

// ToggleAccount handles POST /api/accounts/:id/toggle
// @Summary Toggle an account
// @Description Flips the active flag of an account; unknown ids are a no-op
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} models.Account
// @Success 204 "Unknown id, nothing changed"
// @Router /accounts/{id}/toggle [post]
func (s *Server) ToggleAccount(c *fiber.Ctx) error {
	id := c.Params("id")

	account := s.store.ToggleAccountActive(id)
	if account == nil {
		// Unknown ids are tolerated; the dashboard only toggles ids it
		// rendered, so a miss means a stale view, not an error.
		return c.SendStatus(fiber.StatusNoContent)
	}

	s.publishEvent(EventAccountToggled, map[string]interface{}{
		"account_id": account.ID,
		"platform":   account.Platform,
		"active":     account.Active,
	})

	return c.JSON(account)
}

// PlatformSummary handles GET /api/platforms
func (s *Server) PlatformSummary(c *fiber.Ctx) error {
	summary := make([]fiber.Map, 0, len(models.Platforms))
	for _, platform := range models.Platforms {
		summary = append(summary, fiber.Map{
			"platform":        platform,
			"active_accounts": s.store.ActiveAccountCount(platform),
		})
	}
	return c.JSON(summary)
}
