// Package service implements the business rules of the report lifecycle and
// engagement subsystem.
package service

import (
	"context"
	"log/slog"

	"civictide/internal/media"
	"civictide/internal/middleware"
	"civictide/internal/models"
	"civictide/internal/repository"
)

// Notifier is the narrow interface the report service uses to send
// transactional email. Implementations never surface transport errors; a
// notification failure must not affect the operation that triggered it.
type Notifier interface {
	NotifyNewReport(adminEmail, title, category, reporterName string)
	NotifyStatusChange(authorEmail, authorName, reportTitle string, newStatus models.ReportStatus, notes string)
}

// ReportService owns the report lifecycle: creation with optional image
// upload, listing, admin status updates, and deletion.
type ReportService struct {
	reports  repository.ReportRepository
	users    repository.UserRepository
	notifier Notifier
	images   media.Store
	logger   *slog.Logger
}

// NewReportService wires a ReportService. images may be nil when no object
// store is configured; reports are then created without images.
func NewReportService(
	reports repository.ReportRepository,
	users repository.UserRepository,
	notifier Notifier,
	images media.Store,
) *ReportService {
	return &ReportService{
		reports:  reports,
		users:    users,
		notifier: notifier,
		images:   images,
		logger:   middleware.Logger,
	}
}

// ImageInput carries a raw image payload from a multipart upload.
type ImageInput struct {
	Data        []byte
	ContentType string
}

type CreateReportInput struct {
	Author      *models.User
	Title       string
	Description string
	Category    models.ReportCategory
	Latitude    float64
	Longitude   float64
	Address     string
	Image       *ImageInput
}

type ListReportsInput struct {
	Category models.ReportCategory
	Status   models.ReportStatus
	Skip     int
	Limit    int
}

type UpdateStatusInput struct {
	ReportID uint
	Status   models.ReportStatus
	Notes    string
}

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

// Create persists a new report with status "reported" and alerts every
// administrator by email. The image upload is best-effort: on failure the
// report is still created without an image and only the event is logged.
func (s *ReportService) Create(ctx context.Context, in CreateReportInput) (*models.Report, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if in.Description == "" {
		return nil, models.NewValidationError("Description is required")
	}
	if !in.Category.Valid() {
		return nil, models.NewValidationError("Unknown report category")
	}

	var imageURL, imageKey string
	if in.Image != nil && s.images != nil {
		upload, err := s.images.Upload(ctx, in.Image.Data, in.Image.ContentType, "civictide/reports")
		if err != nil {
			s.logger.ErrorContext(ctx, "report image upload failed",
				slog.String("title", in.Title),
				slog.String("error", err.Error()),
			)
		} else {
			imageURL = upload.URL
			imageKey = upload.Key
		}
	}

	report := &models.Report{
		Title:         in.Title,
		Description:   in.Description,
		Category:      in.Category,
		Status:        models.StatusReported,
		Latitude:      in.Latitude,
		Longitude:     in.Longitude,
		Address:       in.Address,
		ImageURL:      imageURL,
		ImagePublicID: imageKey,
		UserID:        in.Author.ID,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}

	// Alert every admin, one send per account. Lookup or send failures are
	// logged and never surfaced to the reporting citizen.
	admins, err := s.users.ListAdmins(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "could not list admins for new-report alert",
			slog.String("error", err.Error()))
	} else {
		for _, admin := range admins {
			s.notifier.NotifyNewReport(admin.Email, report.Title, string(report.Category), in.Author.FullName)
		}
	}

	report.AuthorName = in.Author.FullName
	return report, nil
}

// List returns the total match count and one page of reports, newest first.
func (s *ReportService) List(ctx context.Context, in ListReportsInput) (int64, []models.Report, error) {
	if in.Category != "" && !in.Category.Valid() {
		return 0, nil, models.NewValidationError("Unknown report category")
	}
	if in.Status != "" && !in.Status.Valid() {
		return 0, nil, models.NewValidationError("Unknown report status")
	}
	if in.Skip < 0 {
		in.Skip = 0
	}
	if in.Limit <= 0 {
		in.Limit = defaultPageSize
	}
	if in.Limit > maxPageSize {
		in.Limit = maxPageSize
	}

	total, reports, err := s.reports.List(ctx, repository.ReportFilter{
		Category: in.Category,
		Status:   in.Status,
		Skip:     in.Skip,
		Limit:    in.Limit,
	})
	if err != nil {
		return 0, nil, err
	}

	for i := range reports {
		if reports[i].Author != nil {
			reports[i].AuthorName = reports[i].Author.FullName
		}
	}
	return total, reports, nil
}

// Get returns one report by ID with its author name resolved.
func (s *ReportService) Get(ctx context.Context, id uint) (*models.Report, error) {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report.Author != nil {
		report.AuthorName = report.Author.FullName
	}
	return report, nil
}

// ListByAuthor returns all of the user's own reports, newest first.
func (s *ReportService) ListByAuthor(ctx context.Context, author *models.User) ([]models.Report, error) {
	reports, err := s.reports.ListByUser(ctx, author.ID)
	if err != nil {
		return nil, err
	}
	for i := range reports {
		reports[i].AuthorName = author.FullName
	}
	return reports, nil
}

// UpdateStatus sets a report's status and optionally its resolution notes,
// then emails the report's author. Any current status may be replaced by any
// known status; no transition graph is enforced. Empty notes leave the stored
// notes untouched.
func (s *ReportService) UpdateStatus(ctx context.Context, in UpdateStatusInput) (*models.Report, error) {
	if !in.Status.Valid() {
		return nil, models.NewValidationError("Unknown report status")
	}

	report, err := s.reports.GetByID(ctx, in.ReportID)
	if err != nil {
		return nil, err
	}

	report.Status = in.Status
	if in.Notes != "" {
		report.ResolutionNotes = in.Notes
	}
	if err := s.reports.Update(ctx, report); err != nil {
		return nil, err
	}

	// Email the author after commit. The status change stands whether or not
	// the notification goes out.
	author := report.Author
	if author == nil {
		author, err = s.users.GetByID(ctx, report.UserID)
		if err != nil {
			s.logger.ErrorContext(ctx, "could not load author for status-update email",
				slog.Uint64("report_id", uint64(report.ID)),
				slog.String("error", err.Error()),
			)
			author = nil
		}
	}
	if author != nil {
		s.notifier.NotifyStatusChange(author.Email, author.FullName, report.Title, report.Status, in.Notes)
		report.AuthorName = author.FullName
	}

	return report, nil
}

// Delete removes a report together with its votes and comments.
func (s *ReportService) Delete(ctx context.Context, id uint) error {
	if _, err := s.reports.GetByID(ctx, id); err != nil {
		return err
	}
	return s.reports.Delete(ctx, id)
}
