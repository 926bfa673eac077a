package service

import (
	"context"
	"errors"
	"testing"

	"civictide/internal/media"
	"civictide/internal/models"
	"civictide/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportService_Create_Validation(t *testing.T) {
	t.Parallel()

	svc := NewReportService(noopReportRepo(), noopUserRepo(), &notifierSpy{}, nil)
	ctx := context.Background()
	author := &models.User{ID: 1, FullName: "Ama Mensah"}

	t.Run("missing title", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Create(ctx, CreateReportInput{Author: author, Description: "d", Category: models.CategoryOther})
		assertValidationError(t, err)
	})

	t.Run("missing description", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Create(ctx, CreateReportInput{Author: author, Title: "t", Category: models.CategoryOther})
		assertValidationError(t, err)
	})

	t.Run("unknown category", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Create(ctx, CreateReportInput{Author: author, Title: "t", Description: "d", Category: "potholes"})
		assertValidationError(t, err)
	})
}

func TestReportService_Create_Success(t *testing.T) {
	t.Parallel()

	reports := noopReportRepo()
	reports.createFn = func(_ context.Context, r *models.Report) error {
		r.ID = 7
		return nil
	}
	spy := &notifierSpy{}
	svc := NewReportService(reports, noopUserRepo(), spy, nil)

	report, err := svc.Create(context.Background(), CreateReportInput{
		Author:      &models.User{ID: 3, FullName: "Ama Mensah"},
		Title:       "Pothole on Main St",
		Description: "Deep pothole near the junction",
		Category:    models.CategoryRoadDamage,
		Latitude:    5.56,
		Longitude:   -0.19,
	})
	require.NoError(t, err)
	assert.Equal(t, uint(7), report.ID)
	assert.Equal(t, models.StatusReported, report.Status)
	assert.Equal(t, uint(3), report.UserID)
	assert.Equal(t, "Ama Mensah", report.AuthorName)
}

func TestReportService_Create_NotifiesEveryAdmin(t *testing.T) {
	t.Parallel()

	users := noopUserRepo()
	users.listAdminsFn = func(_ context.Context) ([]models.User, error) {
		return []models.User{
			{ID: 1, Email: "admin1@city.gov", IsAdmin: true},
			{ID: 2, Email: "admin2@city.gov", IsAdmin: true},
		}, nil
	}
	spy := &notifierSpy{}
	svc := NewReportService(noopReportRepo(), users, spy, nil)

	_, err := svc.Create(context.Background(), CreateReportInput{
		Author:      &models.User{ID: 3, FullName: "Kofi Boateng"},
		Title:       "Broken streetlight",
		Description: "Dark corner at night",
		Category:    models.CategoryStreetlight,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"admin1@city.gov", "admin2@city.gov"}, spy.newReports)
}

func TestReportService_Create_ImageUploadFailureDoesNotFailCreate(t *testing.T) {
	t.Parallel()

	created := false
	reports := noopReportRepo()
	reports.createFn = func(_ context.Context, r *models.Report) error {
		created = true
		return nil
	}
	store := &storeStub{
		uploadFn: func(_ context.Context, _ []byte, _, _ string) (*media.Upload, error) {
			return nil, errors.New("image host unreachable")
		},
	}
	svc := NewReportService(reports, noopUserRepo(), &notifierSpy{}, store)

	report, err := svc.Create(context.Background(), CreateReportInput{
		Author:      &models.User{ID: 1, FullName: "Ama Mensah"},
		Title:       "Flooded road",
		Description: "Impassable after rain",
		Category:    models.CategoryFlooding,
		Image:       &ImageInput{Data: []byte("jpeg-bytes"), ContentType: "image/jpeg"},
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Empty(t, report.ImageURL)
}

func TestReportService_Create_ImageUploadSuccess(t *testing.T) {
	t.Parallel()

	store := &storeStub{
		uploadFn: func(_ context.Context, _ []byte, _, folder string) (*media.Upload, error) {
			assert.Equal(t, "civictide/reports", folder)
			return &media.Upload{URL: "https://cdn.civictide.app/reports/abc.jpg", Key: "reports/abc.jpg"}, nil
		},
	}
	svc := NewReportService(noopReportRepo(), noopUserRepo(), &notifierSpy{}, store)

	report, err := svc.Create(context.Background(), CreateReportInput{
		Author:      &models.User{ID: 1, FullName: "Ama Mensah"},
		Title:       "Overflowing bin",
		Description: "Not collected for two weeks",
		Category:    models.CategorySanitation,
		Image:       &ImageInput{Data: []byte("jpeg-bytes"), ContentType: "image/jpeg"},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.civictide.app/reports/abc.jpg", report.ImageURL)
	assert.Equal(t, "reports/abc.jpg", report.ImagePublicID)
}

func TestReportService_List_Pagination(t *testing.T) {
	t.Parallel()

	var captured repository.ReportFilter
	reports := noopReportRepo()
	reports.listFn = func(_ context.Context, f repository.ReportFilter) (int64, []models.Report, error) {
		captured = f
		return 0, nil, nil
	}
	svc := NewReportService(reports, noopUserRepo(), &notifierSpy{}, nil)
	ctx := context.Background()

	t.Run("defaults", func(t *testing.T) {
		_, _, err := svc.List(ctx, ListReportsInput{})
		require.NoError(t, err)
		assert.Equal(t, 0, captured.Skip)
		assert.Equal(t, 50, captured.Limit)
	})

	t.Run("limit capped at 100", func(t *testing.T) {
		_, _, err := svc.List(ctx, ListReportsInput{Limit: 500})
		require.NoError(t, err)
		assert.Equal(t, 100, captured.Limit)
	})

	t.Run("negative skip clamped", func(t *testing.T) {
		_, _, err := svc.List(ctx, ListReportsInput{Skip: -5, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 0, captured.Skip)
		assert.Equal(t, 10, captured.Limit)
	})

	t.Run("unknown status filter rejected", func(t *testing.T) {
		_, _, err := svc.List(ctx, ListReportsInput{Status: "archived"})
		assertValidationError(t, err)
	})
}

func TestReportService_UpdateStatus(t *testing.T) {
	t.Parallel()

	newRepoWithReport := func(report *models.Report) *reportRepoStub {
		reports := noopReportRepo()
		reports.getByIDFn = func(_ context.Context, _ uint) (*models.Report, error) { return report, nil }
		return reports
	}

	t.Run("sets status and notes, notifies author once", func(t *testing.T) {
		t.Parallel()
		report := &models.Report{
			ID:     5,
			Title:  "Pothole on Main St",
			Status: models.StatusReported,
			UserID: 3,
			Author: &models.User{ID: 3, FullName: "Ama Mensah", Email: "ama@example.com"},
		}
		spy := &notifierSpy{}
		svc := NewReportService(newRepoWithReport(report), noopUserRepo(), spy, nil)

		updated, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
			ReportID: 5,
			Status:   models.StatusResolved,
			Notes:    "Fixed on 2024-01-01",
		})
		require.NoError(t, err)
		assert.Equal(t, models.StatusResolved, updated.Status)
		assert.Equal(t, "Fixed on 2024-01-01", updated.ResolutionNotes)

		require.Len(t, spy.statusChanges, 1)
		call := spy.statusChanges[0]
		assert.Equal(t, "ama@example.com", call.Email)
		assert.Equal(t, models.StatusResolved, call.Status)
		assert.Equal(t, "Fixed on 2024-01-01", call.Notes)
	})

	t.Run("empty notes leave stored notes untouched", func(t *testing.T) {
		t.Parallel()
		report := &models.Report{
			ID:              5,
			Status:          models.StatusInProgress,
			ResolutionNotes: "Crew dispatched",
			UserID:          3,
			Author:          &models.User{ID: 3, Email: "ama@example.com"},
		}
		svc := NewReportService(newRepoWithReport(report), noopUserRepo(), &notifierSpy{}, nil)

		updated, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
			ReportID: 5,
			Status:   models.StatusResolved,
		})
		require.NoError(t, err)
		assert.Equal(t, "Crew dispatched", updated.ResolutionNotes)
	})

	t.Run("any status may follow any status", func(t *testing.T) {
		t.Parallel()
		report := &models.Report{
			ID:     5,
			Status: models.StatusResolved,
			UserID: 3,
			Author: &models.User{ID: 3, Email: "ama@example.com"},
		}
		svc := NewReportService(newRepoWithReport(report), noopUserRepo(), &notifierSpy{}, nil)

		updated, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
			ReportID: 5,
			Status:   models.StatusReported,
		})
		require.NoError(t, err)
		assert.Equal(t, models.StatusReported, updated.Status)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewReportService(noopReportRepo(), noopUserRepo(), &notifierSpy{}, nil)
		_, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{ReportID: 5, Status: "archived"})
		assertValidationError(t, err)
	})

	t.Run("missing report propagates not found", func(t *testing.T) {
		t.Parallel()
		reports := noopReportRepo()
		reports.getByIDFn = func(_ context.Context, id uint) (*models.Report, error) {
			return nil, models.NewNotFoundError("Report", id)
		}
		svc := NewReportService(reports, noopUserRepo(), &notifierSpy{}, nil)
		_, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{ReportID: 99, Status: models.StatusResolved})
		assertNotFoundError(t, err)
	})

	t.Run("status change stands when author lookup fails", func(t *testing.T) {
		t.Parallel()
		report := &models.Report{ID: 5, Status: models.StatusReported, UserID: 3}
		users := noopUserRepo()
		users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return nil, models.NewNotFoundError("User", id)
		}
		updated := false
		reports := newRepoWithReport(report)
		reports.updateFn = func(_ context.Context, _ *models.Report) error {
			updated = true
			return nil
		}
		spy := &notifierSpy{}
		svc := NewReportService(reports, users, spy, nil)

		result, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{ReportID: 5, Status: models.StatusRejected})
		require.NoError(t, err)
		assert.True(t, updated)
		assert.Equal(t, models.StatusRejected, result.Status)
		assert.Empty(t, spy.statusChanges)
	})
}

func TestReportService_Delete(t *testing.T) {
	t.Parallel()

	t.Run("missing report", func(t *testing.T) {
		t.Parallel()
		reports := noopReportRepo()
		reports.getByIDFn = func(_ context.Context, id uint) (*models.Report, error) {
			return nil, models.NewNotFoundError("Report", id)
		}
		svc := NewReportService(reports, noopUserRepo(), &notifierSpy{}, nil)
		assertNotFoundError(t, svc.Delete(context.Background(), 42))
	})

	t.Run("deletes existing report", func(t *testing.T) {
		t.Parallel()
		var deletedID uint
		reports := noopReportRepo()
		reports.deleteFn = func(_ context.Context, id uint) error {
			deletedID = id
			return nil
		}
		svc := NewReportService(reports, noopUserRepo(), &notifierSpy{}, nil)
		require.NoError(t, svc.Delete(context.Background(), 42))
		assert.Equal(t, uint(42), deletedID)
	})
}
