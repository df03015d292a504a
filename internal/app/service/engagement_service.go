package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"penhub-service/internal/domain"
)

// EngagementService handles favorites, comments and follow edges.
// These are the side actions that adjust the counters the trending
// score reads.
type EngagementService struct {
	works      domain.WorkRepository
	engagement domain.EngagementRepository
	logger     *zap.Logger
}

// NewEngagementService creates a new EngagementService.
func NewEngagementService(
	works domain.WorkRepository,
	engagement domain.EngagementRepository,
	logger *zap.Logger,
) *EngagementService {
	return &EngagementService{
		works:      works,
		engagement: engagement,
		logger:     logger,
	}
}

// Favorite marks the work as a favorite of userID. Idempotent.
func (s *EngagementService) Favorite(ctx context.Context, userID string, workID int64) error {
	if err := s.requireVisibleWork(ctx, workID, userID); err != nil {
		return err
	}

	if err := s.engagement.AddFavorite(ctx, userID, workID); err != nil {
		s.logger.Error("favorite failed", zap.Int64("work_id", workID), zap.Error(err))
		return err
	}

	return nil
}

// Unfavorite removes userID's favorite of the work. Idempotent.
func (s *EngagementService) Unfavorite(ctx context.Context, userID string, workID int64) error {
	if err := s.engagement.RemoveFavorite(ctx, userID, workID); err != nil {
		s.logger.Error("unfavorite failed", zap.Int64("work_id", workID), zap.Error(err))
		return err
	}

	return nil
}

// Comment posts a comment on the work.
func (s *EngagementService) Comment(ctx context.Context, userID string, workID int64, content string) (*domain.Comment, error) {
	if err := s.requireVisibleWork(ctx, workID, userID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		WorkID:  workID,
		UserID:  userID,
		Content: content,
	}
	if err := s.engagement.AddComment(ctx, comment); err != nil {
		s.logger.Error("comment failed", zap.Int64("work_id", workID), zap.Error(err))
		return nil, err
	}

	return comment, nil
}

// DeleteComment removes userID's own comment. A missing comment (or
// one owned by someone else) surfaces as domain.ErrNotFound; datastore
// failures propagate unchanged so they map to a server error, not a
// 404.
func (s *EngagementService) DeleteComment(ctx context.Context, userID string, commentID int64) error {
	if err := s.engagement.DeleteComment(ctx, commentID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Debug("delete of unknown comment",
				zap.Int64("comment_id", commentID),
				zap.String("user_id", userID),
			)

			return domain.ErrNotFound
		}

		s.logger.Error("delete comment failed",
			zap.Int64("comment_id", commentID),
			zap.Error(err),
		)

		return err
	}

	return nil
}

// Comments lists a work's comments, newest first.
func (s *EngagementService) Comments(ctx context.Context, workID int64, viewerID string) ([]*domain.Comment, error) {
	if err := s.requireVisibleWork(ctx, workID, viewerID); err != nil {
		return nil, err
	}

	comments, err := s.engagement.ListComments(ctx, workID)
	if err != nil {
		s.logger.Error("listing comments failed", zap.Int64("work_id", workID), zap.Error(err))
		return nil, err
	}

	return comments, nil
}

// Follow creates a follow edge from followerID to followedID.
func (s *EngagementService) Follow(ctx context.Context, followerID, followedID string) error {
	if followerID == followedID {
		return domain.ErrSelfFollow
	}

	if err := s.engagement.Follow(ctx, followerID, followedID); err != nil {
		s.logger.Error("follow failed",
			zap.String("follower", followerID),
			zap.String("followed", followedID),
			zap.Error(err),
		)

		return err
	}

	return nil
}

// Unfollow removes the edge. Idempotent.
func (s *EngagementService) Unfollow(ctx context.Context, followerID, followedID string) error {
	if err := s.engagement.Unfollow(ctx, followerID, followedID); err != nil {
		s.logger.Error("unfollow failed",
			zap.String("follower", followerID),
			zap.String("followed", followedID),
			zap.Error(err),
		)

		return err
	}

	return nil
}

// requireVisibleWork rejects engagement on works the caller cannot
// see: missing, deleted, trashed, or private to someone else.
func (s *EngagementService) requireVisibleWork(ctx context.Context, workID int64, viewerID string) error {
	work, err := s.works.GetByID(ctx, workID)
	if err != nil {
		return err
	}
	if work == nil || !work.VisibleTo(viewerID) {
		return domain.ErrNotFound
	}

	return nil
}
