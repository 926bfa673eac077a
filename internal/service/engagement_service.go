package service

import (
	"context"
	"errors"

	"civictide/internal/models"
	"civictide/internal/repository"
)

// EngagementService owns votes and comments on reports.
type EngagementService struct {
	votes    repository.VoteRepository
	comments repository.CommentRepository
	reports  repository.ReportRepository
}

// NewEngagementService wires an EngagementService.
func NewEngagementService(
	votes repository.VoteRepository,
	comments repository.CommentRepository,
	reports repository.ReportRepository,
) *EngagementService {
	return &EngagementService{
		votes:    votes,
		comments: comments,
		reports:  reports,
	}
}

// VoteResult is the vote state of a report as seen by one user.
type VoteResult struct {
	ReportID     uint  `json:"report_id"`
	VoteCount    int64 `json:"vote_count"`
	UserHasVoted bool  `json:"user_has_voted"`
}

// ToggleVote adds the user's vote if absent and removes it if present, then
// returns the resulting count. The storage layer's (user_id, report_id)
// uniqueness constraint is the conflict detector: if a concurrent toggle wins
// the insert race, this call reports the existing-vote state instead of
// creating a duplicate row.
func (s *EngagementService) ToggleVote(ctx context.Context, userID, reportID uint) (*VoteResult, error) {
	if _, err := s.reports.GetByID(ctx, reportID); err != nil {
		return nil, err
	}

	existing, err := s.votes.Find(ctx, userID, reportID)
	if err != nil {
		return nil, err
	}

	var hasVoted bool
	if existing != nil {
		if err := s.votes.Delete(ctx, existing.ID); err != nil {
			return nil, err
		}
		hasVoted = false
	} else {
		err := s.votes.Create(ctx, &models.Vote{UserID: userID, ReportID: reportID})
		if err != nil && !errors.Is(err, repository.ErrDuplicateVote) {
			return nil, err
		}
		hasVoted = true
	}

	count, err := s.votes.CountByReport(ctx, reportID)
	if err != nil {
		return nil, err
	}

	return &VoteResult{ReportID: reportID, VoteCount: count, UserHasVoted: hasVoted}, nil
}

// GetVotes returns a report's vote count and whether the user has voted,
// without mutating anything.
func (s *EngagementService) GetVotes(ctx context.Context, userID, reportID uint) (*VoteResult, error) {
	count, err := s.votes.CountByReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	existing, err := s.votes.Find(ctx, userID, reportID)
	if err != nil {
		return nil, err
	}
	return &VoteResult{ReportID: reportID, VoteCount: count, UserHasVoted: existing != nil}, nil
}

// ListComments returns a report's comments oldest first, each enriched with
// the author's display name. Comments whose author record is gone fall back
// to "Anonymous".
func (s *EngagementService) ListComments(ctx context.Context, reportID uint) ([]models.Comment, error) {
	comments, err := s.comments.ListByReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	for i := range comments {
		if comments[i].User != nil {
			comments[i].AuthorName = comments[i].User.FullName
		} else {
			comments[i].AuthorName = "Anonymous"
		}
	}
	return comments, nil
}

// AddComment attaches a comment by author to the report.
func (s *EngagementService) AddComment(ctx context.Context, author *models.User, reportID uint, content string) (*models.Comment, error) {
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if _, err := s.reports.GetByID(ctx, reportID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content:  content,
		UserID:   author.ID,
		ReportID: reportID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	comment.AuthorName = author.FullName
	return comment, nil
}

// DeleteComment removes a comment. Only the comment's author or an admin may
// delete it.
func (s *EngagementService) DeleteComment(ctx context.Context, actor *models.User, commentID uint) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != actor.ID && !actor.IsAdmin {
		return models.NewForbiddenError("Not allowed")
	}
	return s.comments.Delete(ctx, commentID)
}
