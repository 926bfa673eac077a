// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"io"
	"strconv"

	"civictide/internal/models"
	"civictide/internal/observability"
	"civictide/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateReport handles POST /reports. The request is multipart form data so
// a photo can ride along with the report fields.
func (s *Server) CreateReport(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return nil
	}

	latitude, err := strconv.ParseFloat(c.FormValue("latitude"), 64)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid latitude"))
	}
	longitude, err := strconv.ParseFloat(c.FormValue("longitude"), 64)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid longitude"))
	}

	input := service.CreateReportInput{
		Author:      user,
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Category:    models.ReportCategory(c.FormValue("category")),
		Latitude:    latitude,
		Longitude:   longitude,
		Address:     c.FormValue("address"),
	}

	// Photo is optional.
	if fileHeader, fileErr := c.FormFile("image"); fileErr == nil && fileHeader != nil {
		file, openErr := fileHeader.Open()
		if openErr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Could not read uploaded image"))
		}
		data, readErr := io.ReadAll(file)
		_ = file.Close()
		if readErr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Could not read uploaded image"))
		}
		input.Image = &service.ImageInput{
			Data:        data,
			ContentType: fileHeader.Header.Get("Content-Type"),
		}
	}

	report, err := s.reportService.Create(c.Context(), input)
	if err != nil {
		return respondServiceError(c, err)
	}
	observability.ReportsCreated.WithLabelValues(string(report.Category)).Inc()

	return c.Status(fiber.StatusCreated).JSON(report)
}

// GetReports handles GET /reports with optional category/status filters and
// skip/limit pagination.
func (s *Server) GetReports(c *fiber.Ctx) error {
	page := parsePagination(c)

	total, reports, err := s.reportService.List(c.Context(), service.ListReportsInput{
		Category: models.ReportCategory(c.Query("category")),
		Status:   models.ReportStatus(c.Query("status")),
		Skip:     page.Skip,
		Limit:    page.Limit,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"total":   total,
		"reports": reports,
	})
}

// GetMyReports handles GET /reports/my/reports
func (s *Server) GetMyReports(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return nil
	}

	reports, err := s.reportService.ListByAuthor(c.Context(), user)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(reports)
}

// GetReport handles GET /reports/:id
func (s *Server) GetReport(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	report, err := s.reportService.Get(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(report)
}

// UpdateReportStatus handles PATCH /reports/:id/status (admin only)
func (s *Server) UpdateReportStatus(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Status          string `json:"status"`
		ResolutionNotes string `json:"resolution_notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	report, err := s.reportService.UpdateStatus(c.Context(), service.UpdateStatusInput{
		ReportID: id,
		Status:   models.ReportStatus(req.Status),
		Notes:    req.ResolutionNotes,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	observability.StatusTransitions.WithLabelValues(string(report.Status)).Inc()
	return c.JSON(report)
}

// DeleteReport handles DELETE /reports/:id (admin only). The report's votes
// and comments go with it.
func (s *Server) DeleteReport(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.reportService.Delete(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
