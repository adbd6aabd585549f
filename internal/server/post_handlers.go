// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"errors"
	"time"

	"postpilot/internal/models"
	"postpilot/internal/store"

	"github.com/gofiber/fiber/v2"
)

// SchedulePost handles POST /api/posts
// @Summary Schedule a post
// @Description Schedules a post for the requested platforms. Platforms without an active account are filtered out.
// @Tags posts
// @Accept json
// @Produce json
// @Param request body object{platforms=[]string,caption=string,hashtags=[]string,image_url=string,scheduled_at=string} true "Post request"
// @Success 201 {object} models.ScheduledPost
// @Failure 400 {object} object{error=string}
// @Router /posts [post]
func (s *Server) SchedulePost(c *fiber.Ctx) error {
	var req struct {
		Platforms   []string `json:"platforms"`
		Caption     string   `json:"caption"`
		Hashtags    []string `json:"hashtags,omitempty"`
		ImageURL    string   `json:"image_url,omitempty"`
		ScheduledAt string   `json:"scheduled_at"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	// Caption is a composer-level requirement, enforced here rather than in
	// the engine so programmatic seeding stays unconstrained.
	if req.Caption == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Caption is required"))
	}
	if len(req.Platforms) == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("At least one platform is required"))
	}

	platforms := make([]models.Platform, 0, len(req.Platforms))
	for _, raw := range req.Platforms {
		platform, ok := models.ParsePlatform(raw)
		if !ok {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Unsupported platform: "+raw))
		}
		platforms = append(platforms, platform)
	}

	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("scheduled_at must be an RFC 3339 timestamp"))
	}

	post, err := s.store.AddScheduledPost(store.AddScheduledPostInput{
		Platforms:   platforms,
		Caption:     req.Caption,
		Hashtags:    req.Hashtags,
		ImageURL:    req.ImageURL,
		ScheduledAt: scheduledAt,
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	s.publishEvent(EventPostScheduled, map[string]interface{}{
		"post_id":      post.ID,
		"platforms":    post.Platforms,
		"scheduled_at": post.ScheduledAt,
	})

	return c.Status(fiber.StatusCreated).JSON(post)
}

// ListScheduledPosts handles GET /api/posts/scheduled
// @Summary List scheduled posts
// @Tags posts
// @Produce json
// @Success 200 {array} models.ScheduledPost
// @Router /posts/scheduled [get]
func (s *Server) ListScheduledPosts(c *fiber.Ctx) error {
	return c.JSON(s.store.ScheduledPosts())
}

// ListPostedPosts handles GET /api/posts/posted
// @Summary List posted posts
// @Tags posts
// @Produce json
// @Success 200 {array} models.PostedPost
// @Router /posts/posted [get]
func (s *Server) ListPostedPosts(c *fiber.Ctx) error {
	return c.JSON(s.store.PostedPosts())
}

// GetTimeline handles GET /api/timeline
// @Summary Unified timeline
// @Description Returns scheduled and posted posts merged in chronological order, with overdue scheduled posts labeled missed
// @Tags posts
// @Produce json
// @Success 200 {array} models.TimelineEntry
// @Router /timeline [get]
func (s *Server) GetTimeline(c *fiber.Ctx) error {
	return c.JSON(s.store.Timeline(time.Now()))
}

// TriggerTick handles POST /api/tick
// @Summary Run one tick immediately
// @Description Promotes due posts and applies one engagement growth step, same as the background scheduler
// @Tags posts
// @Produce json
// @Success 200 {object} object{promoted=int,scheduled=int,posted=int}
// @Router /tick [post]
func (s *Server) TriggerTick(c *fiber.Ctx) error {
	res := s.store.Tick(time.Now())
	s.PublishTickResult(res)

	return c.JSON(fiber.Map{
		"promoted":  len(res.Promoted),
		"scheduled": res.ScheduledCount,
		"posted":    res.PostedCount,
	})
}
