package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"penhub-service/internal/domain"
)

type stubEngagementRepo struct {
	deleteCommentFn func(ctx context.Context, commentID int64, userID string) error
	followFn        func(ctx context.Context, followerID, followedID string) error
}

func (s *stubEngagementRepo) AddFavorite(context.Context, string, int64) error    { return nil }
func (s *stubEngagementRepo) RemoveFavorite(context.Context, string, int64) error { return nil }
func (s *stubEngagementRepo) AddComment(context.Context, *domain.Comment) error   { return nil }

func (s *stubEngagementRepo) DeleteComment(ctx context.Context, commentID int64, userID string) error {
	if s.deleteCommentFn != nil {
		return s.deleteCommentFn(ctx, commentID, userID)
	}

	return nil
}

func (s *stubEngagementRepo) ListComments(context.Context, int64) ([]*domain.Comment, error) {
	return nil, nil
}

func (s *stubEngagementRepo) Follow(ctx context.Context, followerID, followedID string) error {
	if s.followFn != nil {
		return s.followFn(ctx, followerID, followedID)
	}

	return nil
}

func (s *stubEngagementRepo) Unfollow(context.Context, string, string) error { return nil }

func (s *stubEngagementRepo) FollowedIDs(context.Context, string) ([]string, error) {
	return nil, nil
}

func TestDeleteComment_PropagatesDatastoreError(t *testing.T) {
	repoErr := errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")
	repo := &stubEngagementRepo{
		deleteCommentFn: func(context.Context, int64, string) error {
			return fmt.Errorf("deleting comment: %w", repoErr)
		},
	}
	svc := NewEngagementService(nil, repo, zap.NewNop())

	err := svc.DeleteComment(context.Background(), "user-1", 42)

	require.Error(t, err)
	assert.ErrorIs(t, err, repoErr)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteComment_MissingCommentIsNotFound(t *testing.T) {
	repo := &stubEngagementRepo{
		deleteCommentFn: func(context.Context, int64, string) error {
			return domain.ErrNotFound
		},
	}
	svc := NewEngagementService(nil, repo, zap.NewNop())

	err := svc.DeleteComment(context.Background(), "user-1", 42)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFollow_RejectsSelf(t *testing.T) {
	called := false
	repo := &stubEngagementRepo{
		followFn: func(context.Context, string, string) error {
			called = true

			return nil
		},
	}
	svc := NewEngagementService(nil, repo, zap.NewNop())

	err := svc.Follow(context.Background(), "user-1", "user-1")

	assert.ErrorIs(t, err, domain.ErrSelfFollow)
	assert.False(t, called, "self-follow must not reach the repository")
}
