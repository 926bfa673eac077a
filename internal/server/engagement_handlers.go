// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"civictide/internal/models"
	"civictide/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// ToggleVote handles POST /engagement/reports/:id/vote
func (s *Server) ToggleVote(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	result, err := s.engagementService.ToggleVote(c.Context(), userID, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	direction := "removed"
	if result.UserHasVoted {
		direction = "added"
	}
	observability.VotesToggled.WithLabelValues(direction).Inc()
	return c.JSON(result)
}

// GetVotes handles GET /engagement/reports/:id/votes
func (s *Server) GetVotes(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	result, err := s.engagementService.GetVotes(c.Context(), userID, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(result)
}

// GetComments handles GET /engagement/reports/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comments, err := s.engagementService.ListComments(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comments)
}

// CreateComment handles POST /engagement/reports/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	user, err := s.currentUser(c)
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.engagementService.AddComment(c.Context(), user, id, req.Content)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// DeleteComment handles DELETE /engagement/comments/:id. Only the comment's
// author or an admin may delete it.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	user, err := s.currentUser(c)
	if err != nil {
		return nil
	}

	if err := s.engagementService.DeleteComment(c.Context(), user, id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
