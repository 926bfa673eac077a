package service

import (
	"context"
	"sync"
	"testing"

	"civictide/internal/media"
	"civictide/internal/models"
	"civictide/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reportRepoStub is a stub for repository.ReportRepository.
type reportRepoStub struct {
	createFn          func(context.Context, *models.Report) error
	getByIDFn         func(context.Context, uint) (*models.Report, error)
	listFn            func(context.Context, repository.ReportFilter) (int64, []models.Report, error)
	listByUserFn      func(context.Context, uint) ([]models.Report, error)
	updateFn          func(context.Context, *models.Report) error
	deleteFn          func(context.Context, uint) error
	countFn           func(context.Context) (int64, error)
	countByStatusFn   func(context.Context) (map[models.ReportStatus]int64, error)
	countByCategoryFn func(context.Context) (map[models.ReportCategory]int64, error)
}

func (s *reportRepoStub) Create(ctx context.Context, r *models.Report) error {
	return s.createFn(ctx, r)
}
func (s *reportRepoStub) GetByID(ctx context.Context, id uint) (*models.Report, error) {
	return s.getByIDFn(ctx, id)
}
func (s *reportRepoStub) List(ctx context.Context, f repository.ReportFilter) (int64, []models.Report, error) {
	return s.listFn(ctx, f)
}
func (s *reportRepoStub) ListByUser(ctx context.Context, userID uint) ([]models.Report, error) {
	return s.listByUserFn(ctx, userID)
}
func (s *reportRepoStub) Update(ctx context.Context, r *models.Report) error {
	return s.updateFn(ctx, r)
}
func (s *reportRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *reportRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *reportRepoStub) CountByStatus(ctx context.Context) (map[models.ReportStatus]int64, error) {
	return s.countByStatusFn(ctx)
}
func (s *reportRepoStub) CountByCategory(ctx context.Context) (map[models.ReportCategory]int64, error) {
	return s.countByCategoryFn(ctx)
}

func noopReportRepo() *reportRepoStub {
	return &reportRepoStub{
		createFn:  func(_ context.Context, _ *models.Report) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Report, error) { return &models.Report{ID: id}, nil },
		listFn: func(_ context.Context, _ repository.ReportFilter) (int64, []models.Report, error) {
			return 0, nil, nil
		},
		listByUserFn: func(_ context.Context, _ uint) ([]models.Report, error) { return nil, nil },
		updateFn:     func(_ context.Context, _ *models.Report) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
		countFn:      func(_ context.Context) (int64, error) { return 0, nil },
		countByStatusFn: func(_ context.Context) (map[models.ReportStatus]int64, error) {
			return map[models.ReportStatus]int64{}, nil
		},
		countByCategoryFn: func(_ context.Context) (map[models.ReportCategory]int64, error) {
			return map[models.ReportCategory]int64{}, nil
		},
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	listAdminsFn    func(context.Context) ([]models.User, error)
	countCitizensFn func(context.Context) (int64, error)
	isAdminFn       func(context.Context, uint) (bool, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, u *models.User) error {
	return s.createFn(ctx, u)
}
func (s *userRepoStub) ListAdmins(ctx context.Context) ([]models.User, error) {
	return s.listAdminsFn(ctx)
}
func (s *userRepoStub) CountCitizens(ctx context.Context) (int64, error) {
	return s.countCitizensFn(ctx)
}
func (s *userRepoStub) IsAdmin(ctx context.Context, id uint) (bool, error) {
	return s.isAdminFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		listAdminsFn:    func(_ context.Context) ([]models.User, error) { return nil, nil },
		countCitizensFn: func(_ context.Context) (int64, error) { return 0, nil },
		isAdminFn:       func(_ context.Context, _ uint) (bool, error) { return false, nil },
	}
}

// voteRepoStub is a stub for repository.VoteRepository.
type voteRepoStub struct {
	findFn          func(context.Context, uint, uint) (*models.Vote, error)
	createFn        func(context.Context, *models.Vote) error
	deleteFn        func(context.Context, uint) error
	countByReportFn func(context.Context, uint) (int64, error)
}

func (s *voteRepoStub) Find(ctx context.Context, userID, reportID uint) (*models.Vote, error) {
	return s.findFn(ctx, userID, reportID)
}
func (s *voteRepoStub) Create(ctx context.Context, v *models.Vote) error {
	return s.createFn(ctx, v)
}
func (s *voteRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *voteRepoStub) CountByReport(ctx context.Context, reportID uint) (int64, error) {
	return s.countByReportFn(ctx, reportID)
}

func noopVoteRepo() *voteRepoStub {
	return &voteRepoStub{
		findFn:          func(_ context.Context, _, _ uint) (*models.Vote, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.Vote) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
		countByReportFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn       func(context.Context, *models.Comment) error
	getByIDFn      func(context.Context, uint) (*models.Comment, error)
	listByReportFn func(context.Context, uint) ([]models.Comment, error)
	deleteFn       func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, c *models.Comment) error {
	return s.createFn(ctx, c)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByReport(ctx context.Context, reportID uint) ([]models.Comment, error) {
	return s.listByReportFn(ctx, reportID)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:       func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:      func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listByReportFn: func(_ context.Context, _ uint) ([]models.Comment, error) { return nil, nil },
		deleteFn:       func(_ context.Context, _ uint) error { return nil },
	}
}

// notifierSpy records notification calls for assertions.
type notifierSpy struct {
	mu            sync.Mutex
	newReports    []string // admin emails, in send order
	statusChanges []statusChangeCall
}

type statusChangeCall struct {
	Email  string
	Name   string
	Title  string
	Status models.ReportStatus
	Notes  string
}

func (n *notifierSpy) NotifyNewReport(adminEmail, title, category, reporterName string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.newReports = append(n.newReports, adminEmail)
}

func (n *notifierSpy) NotifyStatusChange(authorEmail, authorName, reportTitle string, newStatus models.ReportStatus, notes string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.statusChanges = append(n.statusChanges, statusChangeCall{
		Email:  authorEmail,
		Name:   authorName,
		Title:  reportTitle,
		Status: newStatus,
		Notes:  notes,
	})
}

// storeStub is a stub for media.Store.
type storeStub struct {
	uploadFn func(context.Context, []byte, string, string) (*media.Upload, error)
}

func (s *storeStub) Upload(ctx context.Context, data []byte, contentType, folder string) (*media.Upload, error) {
	return s.uploadFn(ctx, data, contentType, folder)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T", err)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T", err)
	assert.Equal(t, "FORBIDDEN", appErr.Code)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T", err)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
