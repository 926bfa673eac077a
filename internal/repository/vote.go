package repository

import (
	"context"
	"errors"

	"civictide/internal/models"

	"gorm.io/gorm"
)

// ErrDuplicateVote is returned when the (user_id, report_id) uniqueness
// constraint rejects a vote insert. Concurrent toggles by the same user race
// on this constraint; the loser observes this error.
var ErrDuplicateVote = errors.New("vote already exists")

// VoteRepository defines persistence operations for votes.
type VoteRepository interface {
	Find(ctx context.Context, userID, reportID uint) (*models.Vote, error)
	Create(ctx context.Context, vote *models.Vote) error
	Delete(ctx context.Context, id uint) error
	CountByReport(ctx context.Context, reportID uint) (int64, error)
}

type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository returns a new VoteRepository implementation.
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

// Find returns (nil, nil) when the user has not voted on the report.
func (r *voteRepository) Find(ctx context.Context, userID, reportID uint) (*models.Vote, error) {
	var vote models.Vote
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND report_id = ?", userID, reportID).
		First(&vote).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &vote, nil
}

func (r *voteRepository) Create(ctx context.Context, vote *models.Vote) error {
	if err := r.db.WithContext(ctx).Create(vote).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateVote
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *voteRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Vote{}, id).Error
}

func (r *voteRepository) CountByReport(ctx context.Context, reportID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Vote{}).
		Where("report_id = ?", reportID).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
