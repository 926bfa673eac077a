package repository

import (
	"context"
	"errors"

	"civictide/internal/models"

	"gorm.io/gorm"
)

// ReportFilter narrows report listings. Zero values mean "no filter".
type ReportFilter struct {
	Category models.ReportCategory
	Status   models.ReportStatus
	Skip     int
	Limit    int
}

// ReportRepository defines persistence operations for reports.
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id uint) (*models.Report, error)
	List(ctx context.Context, filter ReportFilter) (int64, []models.Report, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Report, error)
	Update(ctx context.Context, report *models.Report) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) (map[models.ReportStatus]int64, error)
	CountByCategory(ctx context.Context) (map[models.ReportCategory]int64, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository returns a new ReportRepository implementation.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) GetByID(ctx context.Context, id uint) (*models.Report, error) {
	var report models.Report
	if err := r.db.WithContext(ctx).Preload("Author").First(&report, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Report", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &report, nil
}

// List returns the total number of reports matching the filter and one page of
// them, newest first.
func (r *reportRepository) List(ctx context.Context, filter ReportFilter) (int64, []models.Report, error) {
	query := r.db.WithContext(ctx).Model(&models.Report{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, nil, models.NewInternalError(err)
	}

	var reports []models.Report
	if err := query.
		Preload("Author").
		Order("created_at DESC").
		Offset(filter.Skip).
		Limit(filter.Limit).
		Find(&reports).Error; err != nil {
		return 0, nil, models.NewInternalError(err)
	}

	return total, reports, nil
}

func (r *reportRepository) ListByUser(ctx context.Context, userID uint) ([]models.Report, error) {
	var reports []models.Report
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reports).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reports, nil
}

func (r *reportRepository) Update(ctx context.Context, report *models.Report) error {
	return r.db.WithContext(ctx).Save(report).Error
}

// Delete removes the report and its dependent votes and comments in a single
// transaction, so no orphaned engagement rows survive.
func (r *reportRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("report_id = ?", id).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("report_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Report{}, id).Error
	})
}

func (r *reportRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Report{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

type statusCount struct {
	Status models.ReportStatus
	Count  int64
}

func (r *reportRepository) CountByStatus(ctx context.Context) (map[models.ReportStatus]int64, error) {
	var rows []statusCount
	if err := r.db.WithContext(ctx).Model(&models.Report{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	counts := make(map[models.ReportStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

type categoryCount struct {
	Category models.ReportCategory
	Count    int64
}

func (r *reportRepository) CountByCategory(ctx context.Context) (map[models.ReportCategory]int64, error) {
	var rows []categoryCount
	if err := r.db.WithContext(ctx).Model(&models.Report{}).
		Select("category, count(*) as count").
		Group("category").
		Scan(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	counts := make(map[models.ReportCategory]int64, len(rows))
	for _, row := range rows {
		counts[row.Category] = row.Count
	}
	return counts, nil
}
