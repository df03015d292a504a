package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"penhub-service/internal/domain"
)

// EngagementRepository implements domain.EngagementRepository. Every
// counter change rides in the same transaction as the row mutation
// that causes it, so the counters only ever move by the actions that
// affect them.
type EngagementRepository struct {
	db *gorm.DB
}

// NewEngagementRepository creates a new engagement repository.
func NewEngagementRepository(db *gorm.DB) *EngagementRepository {
	return &EngagementRepository{db: db}
}

// AddFavorite records the favorite and bumps the work's counter.
// Favoriting twice is a no-op.
func (r *EngagementRepository) AddFavorite(ctx context.Context, userID string, workID int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fav := FavoriteModel{UserID: userID, WorkID: workID}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&fav)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil // already favorited
		}

		return tx.Model(&WorkModel{}).Where("id = ?", workID).
			UpdateColumn("favorites_count", gorm.Expr("favorites_count + 1")).Error
	})
	if err != nil {
		return fmt.Errorf("adding favorite: %w", err)
	}

	return nil
}

// RemoveFavorite deletes the favorite and decrements the counter.
// Removing a favorite that does not exist is a no-op.
func (r *EngagementRepository) RemoveFavorite(ctx context.Context, userID string, workID int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND work_id = ?", userID, workID).Delete(&FavoriteModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		return tx.Model(&WorkModel{}).Where("id = ? AND favorites_count > 0", workID).
			UpdateColumn("favorites_count", gorm.Expr("favorites_count - 1")).Error
	})
	if err != nil {
		return fmt.Errorf("removing favorite: %w", err)
	}

	return nil
}

// AddComment inserts the comment and bumps the work's counter.
func (r *EngagementRepository) AddComment(ctx context.Context, c *domain.Comment) error {
	model := CommentModel{
		WorkID:  c.WorkID,
		UserID:  c.UserID,
		Content: c.Content,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model).Error; err != nil {
			return err
		}

		return tx.Model(&WorkModel{}).Where("id = ?", c.WorkID).
			UpdateColumn("comments_count", gorm.Expr("comments_count + 1")).Error
	})
	if err != nil {
		return fmt.Errorf("adding comment: %w", err)
	}

	c.ID = model.ID
	c.CreatedAt = model.CreatedAt

	return nil
}

// DeleteComment removes the comment if it belongs to userID and
// decrements the counter of the affected work. Returns
// domain.ErrNotFound when no such comment exists for that user; any
// other error is a datastore failure and passes through wrapped.
func (r *EngagementRepository) DeleteComment(ctx context.Context, commentID int64, userID string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model CommentModel
		if err := tx.Where("id = ? AND user_id = ?", commentID, userID).First(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}

			return err
		}

		if err := tx.Delete(&CommentModel{}, model.ID).Error; err != nil {
			return err
		}

		return tx.Model(&WorkModel{}).Where("id = ? AND comments_count > 0", model.WorkID).
			UpdateColumn("comments_count", gorm.Expr("comments_count - 1")).Error
	})
	if err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}

	return nil
}

// ListComments returns a work's comments, newest first, with the
// commenter's username attached.
func (r *EngagementRepository) ListComments(ctx context.Context, workID int64) ([]*domain.Comment, error) {
	var rows []struct {
		CommentModel
		Username string
	}

	err := r.db.WithContext(ctx).Model(&CommentModel{}).
		Select("comments.*, users.username AS username").
		Joins("INNER JOIN users ON users.id = comments.user_id").
		Where("comments.work_id = ?", workID).
		Order("comments.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}

	comments := make([]*domain.Comment, len(rows))
	for i := range rows {
		c := rows[i].CommentModel.ToDomain()
		c.Username = rows[i].Username
		comments[i] = c
	}

	return comments, nil
}

// Follow creates the directed edge. Following twice is a no-op.
func (r *EngagementRepository) Follow(ctx context.Context, followerID, followedID string) error {
	edge := FollowModel{FollowerID: followerID, FollowedID: followedID}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error
	if err != nil {
		return fmt.Errorf("creating follow edge: %w", err)
	}

	return nil
}

// Unfollow removes the edge. Idempotent.
func (r *EngagementRepository) Unfollow(ctx context.Context, followerID, followedID string) error {
	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&FollowModel{}).Error
	if err != nil {
		return fmt.Errorf("removing follow edge: %w", err)
	}

	return nil
}

// FollowedIDs resolves the author set for the following feed.
func (r *EngagementRepository) FollowedIDs(ctx context.Context, followerID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&FollowModel{}).
		Where("follower_id = ?", followerID).
		Pluck("followed_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("resolving followed ids: %w", err)
	}

	return ids, nil
}
